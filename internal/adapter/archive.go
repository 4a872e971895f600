package adapter

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	m "tracehook.dev/pkg/tracehook/internal/model"
)

var (
	// ErrMalformedArchive is returned when a package is not a readable zip or
	// carries unsafe or duplicate entry names.
	ErrMalformedArchive = errors.New("malformed archive")
	// ErrNotWritable is returned when the destination directory cannot be
	// created or written.
	ErrNotWritable = errors.New("destination not writable")
)

// ArchiveEntry describes one entry of a package archive.
type ArchiveEntry struct {
	Name             string
	Method           uint16
	Modified         time.Time
	CompressedSize   uint64
	UncompressedSize uint64

	header zip.FileHeader
}

// ArchiveReader gives access to the entries of an opened package.
type ArchiveReader interface {
	// Path returns the archive location on disk.
	Path() m.Path

	// Entries returns the entries in archive order.
	Entries() []ArchiveEntry

	// Read returns the decompressed content of an entry.
	Read(name string) ([]byte, error)

	// Raw returns the still-compressed bytes of an entry.
	Raw(name string) (io.Reader, error)

	Close() error
}

// ArchiveWriter builds a package next to its destination and only makes it
// visible on Commit.
type ArchiveWriter interface {
	// CopyRaw copies an entry of src without recompressing it, keeping its header.
	CopyRaw(src ArchiveReader, entry ArchiveEntry) error

	// Write stores data under the name, method and timestamp of entry.
	Write(entry ArchiveEntry, data []byte) error

	// Commit finishes the archive and renames it into place.
	Commit() error

	// Abort discards the partial archive.
	Abort() error
}

// ArchiveAdapter opens and creates package archives.
type ArchiveAdapter interface {
	Open(path m.Path) (ArchiveReader, error)
	Create(dest m.Path) (ArchiveWriter, error)
}

// ZipArchiveAdapter implements ArchiveAdapter over archive/zip.
type ZipArchiveAdapter struct{}

// NewZipArchiveAdapter constructs a ZipArchiveAdapter.
func NewZipArchiveAdapter() *ZipArchiveAdapter {
	return &ZipArchiveAdapter{}
}

type zipReader struct {
	path    m.Path
	rc      *zip.ReadCloser
	entries []ArchiveEntry
	files   map[string]*zip.File
}

// Open opens a zip archive and validates its entry names.
func (a *ZipArchiveAdapter) Open(p m.Path) (ArchiveReader, error) {
	rc, err := zip.OpenReader(string(p))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, err
		}

		return nil, fmt.Errorf("%w: %w", ErrMalformedArchive, err)
	}

	r := &zipReader{path: p, rc: rc, files: make(map[string]*zip.File, len(rc.File))}

	for _, f := range rc.File {
		if err := checkEntryName(f.Name); err != nil {
			_ = rc.Close()
			return nil, err
		}

		if _, dup := r.files[f.Name]; dup {
			_ = rc.Close()
			return nil, fmt.Errorf("%w: duplicate entry %q", ErrMalformedArchive, f.Name)
		}

		r.files[f.Name] = f
		r.entries = append(r.entries, ArchiveEntry{
			Name:             f.Name,
			Method:           f.Method,
			Modified:         f.Modified,
			CompressedSize:   f.CompressedSize64,
			UncompressedSize: f.UncompressedSize64,
			header:           f.FileHeader,
		})
	}

	slog.Debug("opened archive", "path", p, "entries", len(r.entries))

	return r, nil
}

func checkEntryName(name string) error {
	if name == "" || strings.Contains(name, "\\") || path.IsAbs(name) {
		return fmt.Errorf("%w: unsafe entry name %q", ErrMalformedArchive, name)
	}

	for _, part := range strings.Split(name, "/") {
		if part == ".." {
			return fmt.Errorf("%w: unsafe entry name %q", ErrMalformedArchive, name)
		}
	}

	return nil
}

func (r *zipReader) Path() m.Path { return r.path }

func (r *zipReader) Entries() []ArchiveEntry {
	return append([]ArchiveEntry(nil), r.entries...)
}

func (r *zipReader) Read(name string) ([]byte, error) {
	f, ok := r.files[name]
	if !ok {
		return nil, fmt.Errorf("entry %q: %w", name, os.ErrNotExist)
	}

	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open entry %q: %w", name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to read entry %q: %w", name, err)
	}

	return data, nil
}

func (r *zipReader) Raw(name string) (io.Reader, error) {
	f, ok := r.files[name]
	if !ok {
		return nil, fmt.Errorf("entry %q: %w", name, os.ErrNotExist)
	}

	return f.OpenRaw()
}

func (r *zipReader) Close() error {
	return r.rc.Close()
}

type zipWriter struct {
	dest m.Path
	tmp  *os.File
	zw   *zip.Writer
	done bool
}

// Create starts a new archive in a temporary file beside dest.
func (a *ZipArchiveAdapter) Create(dest m.Path) (ArchiveWriter, error) {
	dir := filepath.Dir(string(dest))
	if err := os.MkdirAll(dir, 0o750); err != nil {
		slog.Error("Failed to create destination directory", "dir", dir, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrNotWritable, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(string(dest))+".*.tmp")
	if err != nil {
		slog.Error("Failed to create temp archive", "dir", dir, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrNotWritable, err)
	}

	return &zipWriter{dest: dest, tmp: tmp, zw: zip.NewWriter(tmp)}, nil
}

func (w *zipWriter) CopyRaw(src ArchiveReader, entry ArchiveEntry) error {
	raw, err := src.Raw(entry.Name)
	if err != nil {
		return err
	}

	header := entry.header

	dst, err := w.zw.CreateRaw(&header)
	if err != nil {
		return fmt.Errorf("failed to create raw entry %q: %w", entry.Name, err)
	}

	if _, err := io.Copy(dst, raw); err != nil {
		return fmt.Errorf("failed to copy entry %q: %w", entry.Name, err)
	}

	return nil
}

func (w *zipWriter) Write(entry ArchiveEntry, data []byte) error {
	header := entry.header
	header.Name = entry.Name
	header.Method = entry.Method
	header.Modified = entry.Modified
	header.CRC32 = 0
	header.CompressedSize64 = 0
	header.UncompressedSize64 = 0
	header.Extra = nil

	dst, err := w.zw.CreateHeader(&header)
	if err != nil {
		return fmt.Errorf("failed to create entry %q: %w", entry.Name, err)
	}

	if _, err := dst.Write(data); err != nil {
		return fmt.Errorf("failed to write entry %q: %w", entry.Name, err)
	}

	return nil
}

func (w *zipWriter) Commit() error {
	if w.done {
		return errors.New("archive already finished")
	}

	w.done = true

	if err := w.zw.Close(); err != nil {
		w.discard()
		return fmt.Errorf("failed to finish archive: %w", err)
	}

	if err := w.tmp.Sync(); err != nil {
		w.discard()
		return fmt.Errorf("failed to sync archive: %w", err)
	}

	if err := w.tmp.Close(); err != nil {
		_ = os.Remove(w.tmp.Name())
		return fmt.Errorf("failed to close archive: %w", err)
	}

	if err := os.Rename(w.tmp.Name(), string(w.dest)); err != nil {
		_ = os.Remove(w.tmp.Name())
		slog.Error("Failed to move archive into place", "dest", w.dest, "error", err)

		return fmt.Errorf("%w: %w", ErrNotWritable, err)
	}

	slog.Debug("committed archive", "dest", w.dest)

	return nil
}

func (w *zipWriter) Abort() error {
	if w.done {
		return nil
	}

	w.done = true
	w.discard()

	return nil
}

func (w *zipWriter) discard() {
	_ = w.tmp.Close()

	if err := os.Remove(w.tmp.Name()); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("Failed to remove temp archive", "path", w.tmp.Name(), "error", err)
	}
}
