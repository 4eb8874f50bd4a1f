// Package graph implements a memoized computation store scoped to one source snapshot.
//
// A Graph holds at most one value per slot. Slots are keyed by node identity,
// by configuration type, or by flag type. A slot moves from absent to present
// exactly once; failed computations leave it absent so they can be retried.
//
// Nodes must form an acyclic catalog: a node that computes itself, directly
// or through other nodes, deadlocks on its own slot.
package graph

import (
	"context"
	"reflect"
	"sync"

	"go.trai.ch/quire/internal/core/domain"
	"go.trai.ch/quire/internal/core/ports"
	"go.trai.ch/zerr"
)

// ID identifies a node kind.
type ID string

// Node describes how to compute a value of type T.
type Node[T any] struct {
	ID ID
	// Local nodes are cached in the graph they are computed on instead of the root,
	// so every fork computes its own value.
	Local bool
	Run   func(ctx context.Context, g *Graph) (T, error)
}

// Snapshot is the immutable input of a graph.
type Snapshot struct {
	World  ports.World
	Signal domain.ExportSignal
}

// Revision returns the revision of the snapshot's world, or "" without one.
func (s Snapshot) Revision() string {
	if s.World == nil {
		return ""
	}
	return s.World.Revision()
}

type (
	nodeKey   struct{ id ID }
	configKey struct{ t reflect.Type }
	flagKey   struct{ t reflect.Type }
)

type slot struct {
	// compute serializes the first computation of the slot.
	compute sync.Mutex

	mu    sync.RWMutex
	set   bool
	value any
}

func (s *slot) load() (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value, s.set
}

func (s *slot) store(v any) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.set {
		return false
	}
	s.value = v
	s.set = true
	return true
}

// Graph is a memoization scope for one snapshot.
type Graph struct {
	snap   Snapshot
	parent *Graph

	mu    sync.Mutex
	slots map[any]*slot
}

// New creates an empty graph for snap.
func New(snap Snapshot) *Graph {
	return &Graph{
		snap:  snap,
		slots: make(map[any]*slot),
	}
}

// Fork creates a child graph sharing the snapshot and every non-local slot of g.
// Configurations provided on the child shadow those of its ancestors.
func (g *Graph) Fork() *Graph {
	return &Graph{
		snap:   g.snap,
		parent: g,
		slots:  make(map[any]*slot),
	}
}

// Snapshot returns the snapshot the graph was created for.
func (g *Graph) Snapshot() Snapshot {
	return g.snap
}

// Root returns the outermost ancestor of g.
func (g *Graph) Root() *Graph {
	root := g
	for root.parent != nil {
		root = root.parent
	}
	return root
}

func (g *Graph) slot(key any) *slot {
	g.mu.Lock()
	defer g.mu.Unlock()
	s, ok := g.slots[key]
	if !ok {
		s = &slot{}
		g.slots[key] = s
	}
	return s
}

func (g *Graph) lookup(key any) (*slot, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	s, ok := g.slots[key]
	return s, ok
}

func (g *Graph) owner(local bool) *Graph {
	if local {
		return g
	}
	return g.Root()
}

func cast[T any](v any) (T, error) {
	t, ok := v.(T)
	if !ok {
		var zero T
		return zero, zerr.With(domain.ErrNodeTypeMismatch, "type", reflect.TypeFor[T]().String())
	}
	return t, nil
}

// Get returns the cached value of node without computing it.
func Get[T any](g *Graph, node Node[T]) (T, bool) {
	var zero T
	s, ok := g.owner(node.Local).lookup(nodeKey{node.ID})
	if !ok {
		return zero, false
	}
	v, ok := s.load()
	if !ok {
		return zero, false
	}
	t, err := cast[T](v)
	if err != nil {
		return zero, false
	}
	return t, true
}

// Provide stores v for node if nothing is cached yet and reports whether it did.
func Provide[T any](g *Graph, node Node[T], v T) bool {
	return g.owner(node.Local).slot(nodeKey{node.ID}).store(v)
}

// Compute returns the cached value of node, computing it first if needed.
// Concurrent first computations of the same node run Run once; the others
// wait and share its result. Errors are returned but not cached.
func Compute[T any](ctx context.Context, g *Graph, node Node[T]) (T, error) {
	var zero T
	owner := g.owner(node.Local)
	s := owner.slot(nodeKey{node.ID})

	if v, ok := s.load(); ok {
		return cast[T](v)
	}

	s.compute.Lock()
	defer s.compute.Unlock()

	if v, ok := s.load(); ok {
		return cast[T](v)
	}
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	v, err := node.Run(ctx, owner)
	if err != nil {
		return zero, err
	}
	if !s.store(v) {
		// Provided while computing; the first value wins.
		stored, _ := s.load()
		return cast[T](stored)
	}
	return v, nil
}

// MustGet returns the cached value of node or domain.ErrNodeNotProvided. It never computes.
func MustGet[T any](g *Graph, node Node[T]) (T, error) {
	v, ok := Get(g, node)
	if !ok {
		var zero T
		return zero, zerr.With(domain.ErrNodeNotProvided, "node", string(node.ID))
	}
	return v, nil
}

// ProvideConfig stores a configuration value of type T on g if g has none yet.
func ProvideConfig[T any](g *Graph, v T) bool {
	return g.slot(configKey{reflect.TypeFor[T]()}).store(v)
}

// Config returns the configuration of type T, searching g and then its ancestors.
func Config[T any](g *Graph) (T, bool) {
	key := configKey{reflect.TypeFor[T]()}
	for cur := g; cur != nil; cur = cur.parent {
		s, ok := cur.lookup(key)
		if !ok {
			continue
		}
		if v, ok := s.load(); ok {
			if t, err := cast[T](v); err == nil {
				return t, true
			}
		}
	}
	var zero T
	return zero, false
}

// MustConfig returns the configuration of type T or domain.ErrConfigNotProvided.
func MustConfig[T any](g *Graph) (T, error) {
	v, ok := Config[T](g)
	if !ok {
		return v, zerr.With(domain.ErrConfigNotProvided, "config", reflect.TypeFor[T]().String())
	}
	return v, nil
}

// SetFlag records the boolean decision keyed by T on the root graph.
// The first decision wins; it reports whether this call made it.
func SetFlag[T any](g *Graph, v bool) bool {
	return g.Root().slot(flagKey{reflect.TypeFor[T]()}).store(v)
}

// Flag returns the decision keyed by T and whether one was made.
func Flag[T any](g *Graph) (value, ok bool) {
	s, found := g.Root().lookup(flagKey{reflect.TypeFor[T]()})
	if !found {
		return false, false
	}
	v, set := s.load()
	if !set {
		return false, false
	}
	b, _ := v.(bool)
	return b, true
}
