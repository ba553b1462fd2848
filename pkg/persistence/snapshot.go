package persistence

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/aretw0/cipollino/pkg/domain"
	"github.com/aretw0/cipollino/pkg/project"
)

// Snapshot encodes p without touching the disk. Callers that share the
// project behind a lock take the snapshot under it and Flush after
// releasing it.
func Snapshot(ctx context.Context, p *project.Project, opts ...Option) (Files, *SaveReport) {
	snap := Files{}
	report := SaveTo(ctx, p, snap, nil, opts...)
	return snap, report
}

// Flush writes a snapshot into dir, descriptor last, and prunes stale asset
// files when asked to. encoded is the report Snapshot returned with snap; its
// errors lead the returned report, and files it skipped as duplicates are
// never pruned.
func Flush(ctx context.Context, snap Files, encoded *SaveReport, dir string, opts ...Option) (*SaveReport, error) {
	if dir == "" {
		return nil, ErrNoDirectory
	}
	sink := DirSink{Root: dir}
	if err := sink.MkdirAll("."); err != nil {
		return nil, fmt.Errorf("failed to create project directory: %w", err)
	}

	c := newConfig(opts)
	s := &saver{
		sink:    sink,
		cfg:     c,
		logger:  c.logger.With("project", dir),
		report:  &SaveReport{},
		written: make(map[string]bool),
		keep:    make(map[string]bool),
	}
	if encoded != nil {
		s.report.Errors = append(s.report.Errors, encoded.Errors...)
		for _, e := range encoded.Errors {
			if errors.Is(e.Err, ErrDuplicateName) {
				s.keep[e.Path] = true
			}
		}
	}

	names := make([]string, 0, len(snap))
	for name := range snap {
		names = append(names, name)
	}
	// Parents sort before their children.
	sort.Strings(names)

	for _, name := range names {
		if err := ctx.Err(); err != nil {
			s.fail(ctx, name, "save", kindOfFile(name), err)
			return s.report, nil
		}
		data := snap[name]
		if data == nil {
			if err := sink.MkdirAll(name); err != nil {
				s.fail(ctx, name, "create", "folder", err)
			}
			continue
		}
		if name == DescriptorName {
			continue
		}
		s.write(ctx, name, kindOfFile(name), data)
	}
	if data, ok := snap[DescriptorName]; ok {
		s.write(ctx, DescriptorName, "descriptor", data)
	}

	if c.prune {
		s.prune(ctx, os.DirFS(dir))
	}
	return s.report, nil
}

func kindOfFile(name string) string {
	switch extOf(name) {
	case domain.ExtGraphic:
		return "graphic"
	case domain.ExtPalette:
		return "palette"
	}
	if name == DescriptorName {
		return "descriptor"
	}
	return "file"
}
