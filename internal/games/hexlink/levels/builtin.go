package levels

import (
	"embed"
	"errors"
	"io/fs"

	"github.com/vovakirdan/hexroute/internal/games/hexlink/core"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// Builtin returns a loader over the levels shipped with the binary.
func Builtin() *Loader {
	sub, err := fs.Sub(builtinFS, "builtin")
	if err != nil {
		panic(err)
	}
	return NewFSLoader("builtin", sub)
}

// FromLayout wraps an in-code layout as a level.
func FromLayout(l core.Layout) Level {
	return Level{ID: l.ID, Name: l.Name, Layout: l}
}

// Resolve finds a level by id. A non-empty dir is searched first, then the
// built-in set, then the default grid.
func Resolve(dir, id string) (Level, error) {
	if id == "" || id == core.DefaultLayoutID {
		return FromLayout(core.DefaultLayout()), nil
	}

	if dir != "" {
		lvl, err := NewLoader(dir).LoadByID(id)
		if err == nil {
			return lvl, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return Level{}, err
		}
	}
	return Builtin().LoadByID(id)
}

// All lists the default grid, then levels from dir when set, then the
// built-in set. Ids already listed are not repeated, matching Resolve.
func All(dir string) ([]Level, error) {
	out := []Level{FromLayout(core.DefaultLayout())}
	seen := map[string]bool{core.DefaultLayoutID: true}

	var loaders []*Loader
	if dir != "" {
		loaders = append(loaders, NewLoader(dir))
	}
	loaders = append(loaders, Builtin())
	for _, ld := range loaders {
		lvls, err := ld.LoadAll()
		if err != nil {
			return nil, err
		}
		for _, lvl := range lvls {
			if seen[lvl.ID] {
				continue
			}
			seen[lvl.ID] = true
			out = append(out, lvl)
		}
	}
	return out, nil
}
