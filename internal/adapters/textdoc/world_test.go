package textdoc_test

import (
	"io/fs"

	"go.trai.ch/quire/internal/core/domain"
)

// memWorld is an in-memory ports.World.
type memWorld struct {
	main  string
	files map[string]string
}

func (w memWorld) EntryState() domain.EntryState {
	return domain.EntryState{Root: "/project", Main: w.main}
}

func (w memWorld) ReadFile(path string) ([]byte, error) {
	data, ok := w.files[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return []byte(data), nil
}

func (w memWorld) Revision() string { return "rev" }

func sampleWorld() memWorld {
	return memWorld{
		main: "main.qd",
		files: map[string]string{
			"main.qd": "#title: Field Notes\n" +
				"= Introduction\n" +
				"Quire exports <documents> & more.\n" +
				"\n" +
				"#include: chapters/one.qd\n",
			"chapters/one.qd": "== Details\n" +
				"Second paragraph\n" +
				"spans two lines.\n" +
				"#pagebreak\n" +
				"Last page.\n",
		},
	}
}
