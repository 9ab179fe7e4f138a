// Package layouts holds the classic embedded layouts, and loads layouts by name or from a file.
package layouts

import (
	"embed"
	"github.com/janpfeifer/pacmanGo/internal/state"
	"github.com/pkg/errors"
	"io/fs"
	"os"
	"path"
	"slices"
	"strings"
)

//go:embed *.lay
var embedded embed.FS

const extension = ".lay"

// Names returns the sorted names of the embedded layouts.
func Names() []string {
	entries, _ := fs.ReadDir(embedded, ".")
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, strings.TrimSuffix(entry.Name(), extension))
	}
	slices.Sort(names)
	return names
}

// Load returns the embedded layout with the given name (e.g. "smallClassic"),
// or if there isn't one, parses the file at the given path.
func Load(nameOrPath string) (*state.Layout, error) {
	name := strings.TrimSuffix(nameOrPath, extension)
	if data, err := embedded.ReadFile(name + extension); err == nil {
		return state.ParseLayout(name, string(data))
	}
	data, err := os.ReadFile(nameOrPath)
	if err != nil {
		return nil, errors.Wrapf(err, "layout %q is not one of %q and failed to read it as a file", nameOrPath, Names())
	}
	return state.ParseLayout(strings.TrimSuffix(path.Base(nameOrPath), extension), string(data))
}
