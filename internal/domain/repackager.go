package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"strings"

	"tracehook.dev/pkg/tracehook/internal/adapter"
	m "tracehook.dev/pkg/tracehook/internal/model"
)

// Repackager writes a package archive with some module entries replaced.
type Repackager interface {
	// Repack copies every entry of source to dest, substituting the entries
	// named in modules. dest only becomes visible once complete.
	Repack(ctx context.Context, source adapter.ArchiveReader, modules map[string][]byte, dest m.Path) error
}

// RepackOptions configures a Repackager.
type RepackOptions struct {
	// StripSignatures drops the META-INF signature files, which no longer
	// match once a module changes.
	StripSignatures bool
}

type repackager struct {
	archive adapter.ArchiveAdapter
	opts    RepackOptions
}

// NewRepackager constructs a Repackager.
func NewRepackager(archive adapter.ArchiveAdapter, opts RepackOptions) Repackager {
	return &repackager{archive: archive, opts: opts}
}

func (r *repackager) Repack(ctx context.Context, source adapter.ArchiveReader, modules map[string][]byte, dest m.Path) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	present := make(map[string]bool)
	for _, e := range source.Entries() {
		present[e.Name] = true
	}

	for name := range modules {
		if !present[name] {
			return fmt.Errorf("%w: module %q is not in %s", ErrIO, name, source.Path())
		}
	}

	w, err := r.archive.Create(dest)
	if err != nil {
		return classifyWriteError(err)
	}

	copied, replaced, stripped := 0, 0, 0

	for _, entry := range source.Entries() {
		if r.opts.StripSignatures && isSignatureFile(entry.Name) {
			stripped++
			continue
		}

		if data, ok := modules[entry.Name]; ok {
			err = w.Write(entry, data)
			replaced++
		} else {
			err = w.CopyRaw(source, entry)
			copied++
		}

		if err != nil {
			_ = w.Abort()
			slog.Error("Failed to write entry", "entry", entry.Name, "dest", dest, "error", err)

			return fmt.Errorf("%w: %w", ErrIO, err)
		}
	}

	if err := w.Commit(); err != nil {
		return classifyWriteError(err)
	}

	slog.Debug("repacked package", "dest", dest, "copied", copied, "replaced", replaced, "stripped", stripped)

	return nil
}

func classifyWriteError(err error) error {
	if errors.Is(err, adapter.ErrNotWritable) {
		return fmt.Errorf("%w: %w", ErrDestinationNotWritable, err)
	}

	return fmt.Errorf("%w: %w", ErrIO, err)
}

func isSignatureFile(name string) bool {
	dir, file := path.Split(name)
	if dir != "META-INF/" {
		return false
	}

	if file == "MANIFEST.MF" {
		return true
	}

	switch strings.ToUpper(path.Ext(file)) {
	case ".SF", ".RSA", ".DSA", ".EC":
		return true
	default:
		return false
	}
}
