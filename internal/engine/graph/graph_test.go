package graph_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/quire/internal/core/domain"
	"go.trai.ch/quire/internal/engine/graph"
)

func counterNode(id graph.ID, calls *atomic.Int32, value int) graph.Node[int] {
	return graph.Node[int]{
		ID: id,
		Run: func(context.Context, *graph.Graph) (int, error) {
			calls.Add(1)
			return value, nil
		},
	}
}

func TestCompute_Memoizes(t *testing.T) {
	var calls atomic.Int32
	node := counterNode("answer", &calls, 42)
	g := graph.New(graph.Snapshot{})

	first, err := graph.Compute(t.Context(), g, node)
	require.NoError(t, err)
	second, err := graph.Compute(t.Context(), g, node)
	require.NoError(t, err)

	assert.Equal(t, 42, first)
	assert.Equal(t, 42, second)
	assert.Equal(t, int32(1), calls.Load())
}

func TestCompute_ConcurrentFirstComputationRunsOnce(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})
	node := graph.Node[string]{
		ID: "slow",
		Run: func(context.Context, *graph.Graph) (string, error) {
			calls.Add(1)
			<-release
			return "done", nil
		},
	}
	g := graph.New(graph.Snapshot{})

	const workers = 16
	results := make([]string, workers)
	var wg sync.WaitGroup
	for i := range workers {
		wg.Go(func() {
			v, err := graph.Compute(context.Background(), g, node)
			assert.NoError(t, err)
			results[i] = v
		})
	}
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, r := range results {
		assert.Equal(t, "done", r)
	}
}

func TestCompute_ErrorsAreNotCached(t *testing.T) {
	errBoom := errors.New("boom")
	var calls atomic.Int32
	node := graph.Node[int]{
		ID: "flaky",
		Run: func(context.Context, *graph.Graph) (int, error) {
			if calls.Add(1) == 1 {
				return 0, errBoom
			}
			return 7, nil
		},
	}
	g := graph.New(graph.Snapshot{})

	_, err := graph.Compute(t.Context(), g, node)
	require.ErrorIs(t, err, errBoom)

	_, ok := graph.Get(g, node)
	assert.False(t, ok, "failed computation must leave the slot empty")

	v, err := graph.Compute(t.Context(), g, node)
	require.NoError(t, err)
	assert.Equal(t, 7, v)
	assert.Equal(t, int32(2), calls.Load())
}

func TestCompute_CanceledContext(t *testing.T) {
	var calls atomic.Int32
	node := counterNode("canceled", &calls, 1)
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := graph.Compute(ctx, graph.New(graph.Snapshot{}), node)
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, calls.Load())
}

func TestGet_NeverComputes(t *testing.T) {
	var calls atomic.Int32
	node := counterNode("lazy", &calls, 1)
	g := graph.New(graph.Snapshot{})

	_, ok := graph.Get(g, node)
	assert.False(t, ok)
	assert.Zero(t, calls.Load())
}

func TestProvide_FirstValueWins(t *testing.T) {
	var calls atomic.Int32
	node := counterNode("provided", &calls, 1)
	g := graph.New(graph.Snapshot{})

	assert.True(t, graph.Provide(g, node, 10))
	assert.False(t, graph.Provide(g, node, 20))

	v, err := graph.Compute(t.Context(), g, node)
	require.NoError(t, err)
	assert.Equal(t, 10, v)
	assert.Zero(t, calls.Load())
}

func TestMustGet(t *testing.T) {
	var calls atomic.Int32
	node := counterNode("required", &calls, 3)
	g := graph.New(graph.Snapshot{})

	_, err := graph.MustGet(g, node)
	require.ErrorContains(t, err, domain.ErrNodeNotProvided.Error())

	graph.Provide(g, node, 3)
	v, err := graph.MustGet(g, node)
	require.NoError(t, err)
	assert.Equal(t, 3, v)
}

func TestFork_SharesGlobalSlots(t *testing.T) {
	var calls atomic.Int32
	node := counterNode("shared", &calls, 5)
	root := graph.New(graph.Snapshot{})
	child := root.Fork()

	_, err := graph.Compute(t.Context(), child, node)
	require.NoError(t, err)

	v, ok := graph.Get(root, node)
	require.True(t, ok)
	assert.Equal(t, 5, v)
	assert.Same(t, root, child.Root())
}

func TestFork_LocalSlotsArePerGraph(t *testing.T) {
	var calls atomic.Int32
	node := graph.Node[string]{
		ID:    "per-task",
		Local: true,
		Run: func(_ context.Context, g *graph.Graph) (string, error) {
			calls.Add(1)
			return graph.MustConfig[string](g)
		},
	}
	root := graph.New(graph.Snapshot{})
	a, b := root.Fork(), root.Fork()
	graph.ProvideConfig(a, "a")
	graph.ProvideConfig(b, "b")

	va, err := graph.Compute(t.Context(), a, node)
	require.NoError(t, err)
	vb, err := graph.Compute(t.Context(), b, node)
	require.NoError(t, err)

	assert.Equal(t, "a", va)
	assert.Equal(t, "b", vb)
	assert.Equal(t, int32(2), calls.Load())
	_, ok := graph.Get(root, node)
	assert.False(t, ok)
}

func TestConfig_ShadowsAncestors(t *testing.T) {
	root := graph.New(graph.Snapshot{})
	child := root.Fork()

	_, err := graph.MustConfig[int](child)
	require.ErrorContains(t, err, domain.ErrConfigNotProvided.Error())

	graph.ProvideConfig(root, 1)
	v, ok := graph.Config[int](child)
	require.True(t, ok)
	assert.Equal(t, 1, v)

	graph.ProvideConfig(child, 2)
	v, _ = graph.Config[int](child)
	assert.Equal(t, 2, v)
	v, _ = graph.Config[int](root)
	assert.Equal(t, 1, v)
}

type pagedFlag struct{}

func TestSetFlag_FirstWriterWins(t *testing.T) {
	root := graph.New(graph.Snapshot{})
	child := root.Fork()

	_, ok := graph.Flag[pagedFlag](root)
	assert.False(t, ok)

	assert.True(t, graph.SetFlag[pagedFlag](child, true))
	assert.False(t, graph.SetFlag[pagedFlag](root, false))

	v, ok := graph.Flag[pagedFlag](root)
	require.True(t, ok)
	assert.True(t, v)
}

func TestSnapshot_Revision(t *testing.T) {
	assert.Empty(t, graph.Snapshot{}.Revision())
	g := graph.New(graph.Snapshot{Signal: domain.ExplicitSignal()})
	assert.True(t, g.Fork().Snapshot().Signal.Explicit)
}
