package timing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/quire/internal/core/domain"
	"go.trai.ch/quire/internal/engine/graph"
	"go.trai.ch/quire/internal/engine/timing"
)

var (
	explicit = domain.ExplicitSignal()
	onSave   = domain.ExportSignal{ByFsEvents: true}
	onType   = domain.ExportSignal{ByMemEvents: true}
	scripted = domain.ExportSignal{ByScript: true}

	titled   = &domain.Document{Title: "Notes"}
	untitled = &domain.Document{}
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name   string
		signal domain.ExportSignal
		when   domain.TaskWhen
		doc    *domain.Document
		want   bool
	}{
		{"unset runs on typing", onType, domain.WhenUnset, nil, true},
		{"never skips typing", onType, domain.WhenNever, nil, false},
		{"never skips save", onSave, domain.WhenNever, nil, false},
		{"never runs explicitly", explicit, domain.WhenNever, nil, true},
		{"on-type runs on typing", onType, domain.WhenOnType, nil, true},
		{"on-type runs on save", onSave, domain.WhenOnType, nil, true},
		{"on-save skips typing", onType, domain.WhenOnSave, nil, false},
		{"on-save runs on save", onSave, domain.WhenOnSave, nil, true},
		{"on-save runs explicitly", explicit, domain.WhenOnSave, nil, true},
		{"script skips save", onSave, domain.WhenScript, nil, false},
		{"script runs for scripts", scripted, domain.WhenScript, nil, true},
		{"script runs explicitly", explicit, domain.WhenScript, nil, true},
		{"title skips typing", onType, domain.WhenOnDocumentHasTitle, titled, false},
		{"title runs on save with title", onSave, domain.WhenOnDocumentHasTitle, titled, true},
		{"title skips save without title", onSave, domain.WhenOnDocumentHasTitle, untitled, false},
		{"title runs explicitly with title", explicit, domain.WhenOnDocumentHasTitle, titled, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := timing.Evaluate(tt.signal, tt.when, tt.doc)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEvaluate_Errors(t *testing.T) {
	_, err := timing.Evaluate(onSave, domain.WhenOnDocumentHasTitle, nil)
	require.ErrorIs(t, err, domain.ErrDocumentRequired)

	_, err = timing.Evaluate(onSave, "on-full-moon", nil)
	require.ErrorContains(t, err, domain.ErrUnknownTaskWhen.Error())
}

func TestNeedsRun_FailsOpen(t *testing.T) {
	save := graph.Snapshot{Signal: onSave}

	assert.True(t, timing.NeedsRun(save, domain.WhenOnDocumentHasTitle, nil))
	assert.True(t, timing.NeedsRun(save, "on-full-moon", nil))
	assert.False(t, timing.NeedsRun(save, domain.WhenScript, nil))
	assert.False(t, timing.NeedsRun(graph.Snapshot{Signal: onType}, domain.WhenOnDocumentHasTitle, nil))
}
