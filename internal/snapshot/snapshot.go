package snapshot

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"dirsnap/internal/config"
	"dirsnap/internal/progress"
	"dirsnap/internal/report"
	"dirsnap/internal/walker"
)

// Result is the outcome of snapshotting one directory: either a byte
// total, or the self-reference marker. Keeping the two apart means a
// caller can never fold an out-of-band signal into a running sum.
type Result struct {
	Bytes   int64
	SelfRef bool
}

// Stats counts what a run actually processed.
type Stats struct {
	Files      int64
	Dirs       int64
	Symlinks   int64
	Skipped    int64
	TotalBytes int64
}

// Snapshotter walks a source tree depth-first and emits one mirror
// directory plus one report document per visited directory. destRoot is
// the original destination root, captured once: reaching it during the
// walk means the destination lies inside the source tree, and recursing
// further would never terminate.
type Snapshotter struct {
	destRoot string
	opts     config.Options
	log      *zap.SugaredLogger
	bar      progress.Indicator
	stats    Stats
}

func New(opts config.Options, log *zap.SugaredLogger, bar progress.Indicator) *Snapshotter {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	if bar == nil {
		bar = progress.Noop{}
	}
	return &Snapshotter{
		destRoot: filepath.Clean(opts.DestinationPath),
		opts:     opts,
		log:      log,
		bar:      bar,
	}
}

func (s *Snapshotter) Stats() Stats {
	return s.stats
}

// Run snapshots the configured source tree into the destination.
func (s *Snapshotter) Run() (Result, error) {
	res, err := s.Snapshot(s.opts.SourcePath, s.opts.DestinationPath, s.opts.MaxDepth)
	if err == nil {
		s.stats.TotalBytes = res.Bytes
	}
	return res, err
}

// Snapshot processes one source directory: it resets the mirror
// directory under destParent, writes the report document section by
// section, recurses into subdirectories with depth-1, and returns the
// recursive byte total of everything it processed. Each recursive call
// completes fully before the caller sums its contribution, so a
// parent's footer is never finalized before all child totals are known.
func (s *Snapshotter) Snapshot(srcPath, destParent string, depth int) (Result, error) {
	name := filepath.Base(srcPath)
	mirror := filepath.Join(destParent, name)

	// Unconditional destructive reset: a rerun never merges with the
	// previous mirror's content.
	if err := os.RemoveAll(mirror); err != nil {
		return Result{}, fmt.Errorf("failed to reset mirror directory: %w", err)
	}
	if err := os.MkdirAll(mirror, 0755); err != nil {
		return Result{}, fmt.Errorf("failed to create mirror directory: %w", err)
	}

	doc := report.New(filepath.Join(mirror, name+".html"))
	if err := doc.Create(); err != nil {
		return Result{}, fmt.Errorf("failed to create report document: %w", err)
	}

	if filepath.Clean(srcPath) == s.destRoot {
		s.log.Warnf("original destination path reached at %q, stopping this branch", srcPath)
		if err := doc.WriteSelfReference(); err != nil {
			return Result{}, fmt.Errorf("failed to write self-reference marker: %w", err)
		}
		return Result{SelfRef: true}, nil
	}

	entries, err := walker.List(srcPath, s.listOptions())
	if err != nil {
		// Unlistable directory: no children, size 0. The empty document
		// stays behind as the record of the visit.
		s.log.Warnf("cannot list directory %q: %v", srcPath, err)
		return Result{}, nil
	}

	var files, dirs, symlinks []walker.Entry
	for _, entry := range entries {
		switch entry.Kind {
		case walker.Dir:
			dirs = append(dirs, entry)
		case walker.Symlink:
			symlinks = append(symlinks, entry)
		default:
			files = append(files, entry)
		}
	}

	if err := doc.WriteHeader(name); err != nil {
		return Result{}, fmt.Errorf("failed to write report header: %w", err)
	}

	var total int64

	if err := doc.BeginFilesTable(); err != nil {
		return Result{}, err
	}
	if len(files) == 0 {
		if err := doc.NoFiles(); err != nil {
			return Result{}, err
		}
	}
	for _, entry := range files {
		size, err := s.processFile(srcPath, entry.Name, doc)
		if err != nil {
			s.log.Errorf("error while processing file %q: %v", filepath.Join(srcPath, entry.Name), err)
			s.stats.Skipped++
			continue
		}
		total += size
		s.stats.Files++
	}
	if err := doc.EndTable(); err != nil {
		return Result{}, err
	}

	if err := doc.BeginDirsTable(); err != nil {
		return Result{}, err
	}
	if len(dirs) == 0 {
		if err := doc.NoDirs(); err != nil {
			return Result{}, err
		}
	} else if depth == 0 {
		// Subdirectories are neither listed nor recursed into once the
		// limit is exhausted; they contribute nothing to the total.
		if err := doc.DepthLimit(); err != nil {
			return Result{}, err
		}
		dirs = nil
	}
	for _, entry := range dirs {
		res, err := s.Snapshot(filepath.Join(srcPath, entry.Name), mirror, depth-1)
		if err != nil {
			s.log.Errorf("error while processing directory %q: %v", filepath.Join(srcPath, entry.Name), err)
			s.stats.Skipped++
			continue
		}
		// A self-reference branch contributes nothing; Result.Bytes is
		// zero there, so the row shows 0 B and the sum stays honest.
		total += res.Bytes
		if err := doc.DirRow(entry.Name, res.Bytes); err != nil {
			s.log.Errorf("error while processing directory %q: %v", filepath.Join(srcPath, entry.Name), err)
			s.stats.Skipped++
			continue
		}
		s.stats.Dirs++
	}
	if err := doc.EndTable(); err != nil {
		return Result{}, err
	}

	if !s.opts.IgnoreSymlinks {
		if err := doc.BeginSymlinksTable(); err != nil {
			return Result{}, err
		}
		if len(symlinks) == 0 {
			if err := doc.NoSymlinks(); err != nil {
				return Result{}, err
			}
		}
		for _, entry := range symlinks {
			if err := s.processSymlink(srcPath, entry.Name, doc); err != nil {
				s.log.Errorf("error while processing symlink %q: %v", filepath.Join(srcPath, entry.Name), err)
				s.stats.Skipped++
				continue
			}
			s.stats.Symlinks++
		}
		if err := doc.EndTable(); err != nil {
			return Result{}, err
		}
	}

	if err := doc.WriteFooter(total); err != nil {
		return Result{}, err
	}
	s.bar.Increment()

	return Result{Bytes: total}, nil
}

// processFile writes the file's row and returns its size. Failures
// (permission errors, the entry vanishing mid-walk) are the caller's
// per-entry isolation case: the file's size is then not part of any
// total.
func (s *Snapshotter) processFile(srcPath, name string, doc *report.Document) (int64, error) {
	info, err := os.Lstat(filepath.Join(srcPath, name))
	if err != nil {
		return 0, err
	}
	if err := doc.FileRow(name, info.Size()); err != nil {
		return 0, err
	}
	s.bar.Increment()
	return info.Size(), nil
}

// processSymlink writes the symlink's row with its fully resolved
// target's base name. The link is never followed for recursion or
// counted toward any size.
func (s *Snapshotter) processSymlink(srcPath, name string, doc *report.Document) error {
	resolved, err := filepath.EvalSymlinks(filepath.Join(srcPath, name))
	if err != nil {
		return err
	}
	if err := doc.SymlinkRow(name, filepath.Base(resolved)); err != nil {
		return err
	}
	s.bar.Increment()
	return nil
}

func (s *Snapshotter) listOptions() walker.ListOptions {
	return walker.ListOptions{
		IgnoreHidden:   s.opts.IgnoreHidden,
		IgnoreSymlinks: s.opts.IgnoreSymlinks,
		Exclude:        s.opts.Exclude,
	}
}
