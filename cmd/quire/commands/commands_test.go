package commands_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/quire/cmd/quire/commands"
	"go.trai.ch/quire/internal/app"
	"go.trai.ch/quire/internal/build"
)

type mockApp struct {
	exportFunc func(ctx context.Context, opts app.ExportOptions) error
	watchFunc  func(ctx context.Context, opts app.WatchOptions) error
	statusFunc func(ctx context.Context, dir string, w io.Writer) error
}

func (m *mockApp) Export(ctx context.Context, opts app.ExportOptions) error {
	if m.exportFunc != nil {
		return m.exportFunc(ctx, opts)
	}
	return nil
}

func (m *mockApp) Watch(ctx context.Context, opts app.WatchOptions) error {
	if m.watchFunc != nil {
		return m.watchFunc(ctx, opts)
	}
	return nil
}

func (m *mockApp) Status(ctx context.Context, dir string, w io.Writer) error {
	if m.statusFunc != nil {
		return m.statusFunc(ctx, dir, w)
	}
	return nil
}

func TestCommands_Export(t *testing.T) {
	t.Run("passes tasks and directory", func(t *testing.T) {
		var captured app.ExportOptions
		mock := &mockApp{
			exportFunc: func(_ context.Context, opts app.ExportOptions) error {
				captured = opts
				return nil
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"export", "-C", "docs", "pdf", "html"})
		require.NoError(t, cli.Execute(context.Background()))

		assert.Equal(t, "docs", captured.Dir)
		assert.Equal(t, []string{"pdf", "html"}, captured.Tasks)
	})

	t.Run("defaults to every task", func(t *testing.T) {
		var captured app.ExportOptions
		mock := &mockApp{
			exportFunc: func(_ context.Context, opts app.ExportOptions) error {
				captured = opts
				return nil
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"export"})
		require.NoError(t, cli.Execute(context.Background()))

		assert.Equal(t, ".", captured.Dir)
		assert.Empty(t, captured.Tasks)
	})

	t.Run("returns error on export failure", func(t *testing.T) {
		mock := &mockApp{
			exportFunc: func(context.Context, app.ExportOptions) error {
				return errors.New("simulated error")
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"export"})
		cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))

		err := cli.Execute(context.Background())
		require.ErrorContains(t, err, "simulated error")
	})
}

func TestCommands_Watch(t *testing.T) {
	var captured app.WatchOptions
	mock := &mockApp{
		watchFunc: func(_ context.Context, opts app.WatchOptions) error {
			captured = opts
			return nil
		},
	}

	cli := commands.New(mock)
	cli.SetArgs([]string{"watch", "--ignore", "*.tmp,build/", "pdf"})
	require.NoError(t, cli.Execute(context.Background()))

	assert.Equal(t, []string{"pdf"}, captured.Tasks)
	assert.Equal(t, []string{"*.tmp", "build/"}, captured.Ignore)
}

func TestCommands_Status(t *testing.T) {
	mock := &mockApp{
		statusFunc: func(_ context.Context, dir string, w io.Writer) error {
			_, err := io.WriteString(w, "status of "+dir+"\n")
			return err
		},
	}

	cli := commands.New(mock)
	out := new(bytes.Buffer)
	cli.SetOutput(out, out)
	cli.SetArgs([]string{"status", "--dir", "/project"})
	require.NoError(t, cli.Execute(context.Background()))

	assert.Equal(t, "status of /project\n", out.String())
}

func TestCommands_Status_RejectsArgs(t *testing.T) {
	cli := commands.New(&mockApp{})
	cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))
	cli.SetArgs([]string{"status", "pdf"})
	require.Error(t, cli.Execute(context.Background()))
}

func TestCommands_Version(t *testing.T) {
	cli := commands.New(&mockApp{})
	out := new(bytes.Buffer)
	cli.SetOutput(out, out)
	cli.SetArgs([]string{"version"})
	require.NoError(t, cli.Execute(context.Background()))

	assert.Equal(t,
		"quire version "+build.Version+" (commit: "+build.Commit+", date: "+build.Date+")\n",
		out.String())
}

func TestCommands_VersionFlag(t *testing.T) {
	cli := commands.New(&mockApp{})
	out := new(bytes.Buffer)
	cli.SetOutput(out, out)
	cli.SetArgs([]string{"--version"})
	require.NoError(t, cli.Execute(context.Background()))

	assert.Contains(t, out.String(), "quire version "+build.Version)
}
