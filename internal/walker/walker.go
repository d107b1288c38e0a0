package walker

import (
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

type Kind int

const (
	File Kind = iota
	Dir
	Symlink
)

// Entry is one direct child of a directory, classified by lstat
// semantics: a symlink is always Symlink, whatever it points at.
type Entry struct {
	Name string
	Kind Kind
}

type ListOptions struct {
	IgnoreHidden   bool
	IgnoreSymlinks bool
	Exclude        []string
}

// List returns the direct children of path, filtered according to opts
// and sorted lexicographically by name. Directory iteration order is
// filesystem-dependent, so the sort keeps report output deterministic.
// A listing failure is returned to the caller, which treats it as
// "no children".
func List(path string, opts ListOptions) ([]Entry, error) {
	dirEntries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, d := range dirEntries {
		name := d.Name()
		if opts.IgnoreHidden && strings.HasPrefix(name, ".") {
			continue
		}
		kind := classify(d)
		if opts.IgnoreSymlinks && kind == Symlink {
			continue
		}
		if shouldExclude(name, kind, opts.Exclude) {
			continue
		}
		entries = append(entries, Entry{Name: name, Kind: kind})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})

	return entries, nil
}

func classify(d os.DirEntry) Kind {
	mode := d.Type()
	switch {
	case mode&os.ModeSymlink != 0:
		return Symlink
	case mode.IsDir():
		return Dir
	default:
		return File
	}
}

func shouldExclude(name string, kind Kind, exclusions []string) bool {
	for _, pattern := range exclusions {
		// Patterns ending with / only apply to directories
		if strings.HasSuffix(pattern, "/") {
			if kind != Dir {
				continue
			}
			dirPattern := strings.TrimSuffix(pattern, "/")
			if matched, _ := filepath.Match(dirPattern, name); matched {
				return true
			}
			if name == dirPattern {
				return true
			}
		} else {
			if matched, err := filepath.Match(pattern, name); err == nil && matched {
				return true
			}
		}
	}
	return false
}

// Count walks the subtree rooted at path and returns the number of
// entries a snapshot run will process: every file and symlink, plus one
// unit per directory. It feeds the progress-bar total and the dry-run
// output; sizes are not read. Subdirectories are counted concurrently.
func Count(path string, opts ListOptions) int64 {
	var total atomic.Int64

	g := new(errgroup.Group)
	g.SetLimit(runtime.NumCPU() * 2)

	var count func(dir string)
	count = func(dir string) {
		// The directory itself is one progress unit.
		total.Add(1)

		entries, err := List(dir, opts)
		if err != nil {
			return
		}
		for _, entry := range entries {
			switch entry.Kind {
			case Dir:
				child := filepath.Join(dir, entry.Name)
				// TryGo: counting goroutines spawn more of their own,
				// so blocking on a full pool could deadlock. Recurse
				// inline instead when no worker slot is free.
				if !g.TryGo(func() error {
					count(child)
					return nil
				}) {
					count(child)
				}
			default:
				total.Add(1)
			}
		}
	}

	count(path)
	_ = g.Wait()

	return total.Load()
}
