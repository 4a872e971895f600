// Package pkg holds helpers shared by tracehook commands that do not belong
// to the domain layer.
package pkg

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// ErrTruncated is returned when a spill file ends inside a record.
var ErrTruncated = errors.New("spill: truncated record")

// FileSpill is an append-only, indexed log of items of type T kept on disk.
// Every record is a uvarint length followed by a self-contained gob value,
// so any record can be decoded on its own.
type FileSpill[T any] interface {
	Len() uint64
	Path() string
	Append(item T) error
	AppendBatch(items []T) error
	Get(index uint64) (T, error)
	Range(f func(index uint64, item T) error) error
	Close() error
}

type record struct {
	offset int64
	length int64
}

type fileSpill[T any] struct {
	path string

	mu      sync.Mutex
	file    *os.File
	size    int64
	records []record
}

// DefaultSpillDir is where NewFileSpill places its files.
var DefaultSpillDir = filepath.Join(os.TempDir(), "tracehook-spill")

// NewFileSpill creates a new FileSpill for items of type T in DefaultSpillDir.
func NewFileSpill[T any]() (FileSpill[T], error) {
	return NewFileSpillIn[T](DefaultSpillDir, "spill")
}

// NewFileSpillIn creates "<dir>/<prefix>-*.gob" for items of type T.
func NewFileSpillIn[T any](dir, prefix string) (FileSpill[T], error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		slog.Error("Failed to create spill directory", "path", dir, "error", err)
		return nil, fmt.Errorf("failed to create spill directory: %w", err)
	}

	file, err := os.CreateTemp(dir, prefix+"-*.gob")
	if err != nil {
		slog.Error("Failed to create spill file", "path", dir, "error", err)
		return nil, fmt.Errorf("failed to create spill file: %w", err)
	}

	slog.Debug("created spill", "path", file.Name())

	return &fileSpill[T]{path: file.Name(), file: file}, nil
}

// OpenFileSpill reopens an existing spill file, rebuilding its index.
// Appends continue after the last record.
func OpenFileSpill[T any](path string) (FileSpill[T], error) {
	file, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to open spill: %w", err)
	}

	s := &fileSpill[T]{path: path, file: file}

	if err := s.scan(); err != nil {
		_ = file.Close()
		slog.Error("Failed to index spill", "path", path, "error", err)

		return nil, err
	}

	slog.Debug("opened spill", "path", path, "length", len(s.records))

	return s, nil
}

func (s *fileSpill[T]) scan() error {
	r := bufio.NewReader(s.file)

	var offset int64

	for {
		n, err := binary.ReadUvarint(r)
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return fmt.Errorf("%w at offset %d", ErrTruncated, offset)
		}

		header := int64(uvarintLen(n))
		if _, err := r.Discard(int(n)); err != nil {
			return fmt.Errorf("%w at offset %d", ErrTruncated, offset)
		}

		s.records = append(s.records, record{offset: offset + header, length: int64(n)})
		offset += header + int64(n)
	}

	s.size = offset

	return nil
}

func uvarintLen(n uint64) int {
	var buf [binary.MaxVarintLen64]byte
	return binary.PutUvarint(buf[:], n)
}

func (s *fileSpill[T]) Path() string {
	return s.path
}

func (s *fileSpill[T]) Len() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return uint64(len(s.records))
}

func (s *fileSpill[T]) Append(item T) error {
	var payload bytes.Buffer
	if err := gob.NewEncoder(&payload).Encode(item); err != nil {
		return fmt.Errorf("failed to encode item: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file == nil {
		return os.ErrClosed
	}

	buf := binary.AppendUvarint(nil, uint64(payload.Len()))
	header := int64(len(buf))
	buf = append(buf, payload.Bytes()...)

	if _, err := s.file.WriteAt(buf, s.size); err != nil {
		slog.Error("Failed to append to spill", "path", s.path, "index", len(s.records), "error", err)
		return fmt.Errorf("failed to write item: %w", err)
	}

	s.records = append(s.records, record{offset: s.size + header, length: int64(payload.Len())})
	s.size += int64(len(buf))

	return nil
}

func (s *fileSpill[T]) AppendBatch(items []T) error {
	for _, item := range items {
		if err := s.Append(item); err != nil {
			return err
		}
	}

	return nil
}

func (s *fileSpill[T]) Get(index uint64) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.get(index)
}

func (s *fileSpill[T]) get(index uint64) (T, error) {
	var item T

	if index >= uint64(len(s.records)) {
		return item, fmt.Errorf("index %d out of bounds (length %d)", index, len(s.records))
	}

	if s.file == nil {
		return item, os.ErrClosed
	}

	rec := s.records[index]
	section := io.NewSectionReader(s.file, rec.offset, rec.length)

	if err := gob.NewDecoder(section).Decode(&item); err != nil {
		slog.Error("Failed to decode spill record", "path", s.path, "index", index, "error", err)
		return item, fmt.Errorf("failed to decode item at index %d: %w", index, err)
	}

	return item, nil
}

func (s *fileSpill[T]) Range(fn func(index uint64, item T) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range uint64(len(s.records)) {
		item, err := s.get(i)
		if err != nil {
			return err
		}

		if err := fn(i, item); err != nil {
			return err
		}
	}

	return nil
}

// Close flushes the file. Further calls return nil.
func (s *fileSpill[T]) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file == nil {
		return nil
	}

	file := s.file
	s.file = nil

	if err := file.Sync(); err != nil {
		_ = file.Close()
		return fmt.Errorf("failed to sync spill: %w", err)
	}

	if err := file.Close(); err != nil {
		slog.Error("Failed to close spill", "path", s.path, "error", err)
		return err
	}

	slog.Debug("closed spill", "path", s.path, "length", len(s.records))

	return nil
}
