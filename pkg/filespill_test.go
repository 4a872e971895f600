package pkg

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type spillEvent struct {
	Kind   string
	Method string
	Token  int64
	Args   []string
}

func TestNewFileSpillIn(t *testing.T) {
	// Arrange
	dir := filepath.Join(t.TempDir(), "traces")

	// Act
	spill, err := NewFileSpillIn[spillEvent](dir, "trace")
	require.NoError(t, err)
	defer spill.Close()

	// Assert
	assert.Equal(t, dir, filepath.Dir(spill.Path()))
	assert.True(t, strings.HasPrefix(filepath.Base(spill.Path()), "trace-"))
	assert.Equal(t, uint64(0), spill.Len())
}

func TestNewFileSpill_UsesDefaultDir(t *testing.T) {
	saved := DefaultSpillDir
	DefaultSpillDir = t.TempDir()
	t.Cleanup(func() { DefaultSpillDir = saved })

	spill, err := NewFileSpill[int]()
	require.NoError(t, err)
	defer spill.Close()

	assert.Equal(t, DefaultSpillDir, filepath.Dir(spill.Path()))
}

func TestFileSpill_AppendGetRange(t *testing.T) {
	// Arrange
	spill, err := NewFileSpillIn[spillEvent](t.TempDir(), "trace")
	require.NoError(t, err)
	defer spill.Close()

	events := []spillEvent{
		{Kind: "enter", Method: "Demo.App.Calculator::Add(int32,int32)", Token: 1, Args: []string{"2", "3"}},
		{Kind: "exit", Method: "Demo.App.Calculator::Add(int32,int32)", Token: 1},
	}

	// Act
	require.NoError(t, spill.Append(events[0]))
	require.NoError(t, spill.AppendBatch(events[1:]))

	// Assert
	require.Equal(t, uint64(2), spill.Len())

	got, err := spill.Get(1)
	require.NoError(t, err)
	assert.Equal(t, events[1].Kind, got.Kind)
	assert.Equal(t, events[1].Token, got.Token)

	var collected []spillEvent
	require.NoError(t, spill.Range(func(_ uint64, item spillEvent) error {
		collected = append(collected, item)
		return nil
	}))
	require.Len(t, collected, 2)
	assert.Equal(t, events[0].Args, collected[0].Args)
}

func TestFileSpill_Get(t *testing.T) {
	tests := []struct {
		name    string
		items   []string
		index   uint64
		want    string
		wantErr bool
	}{
		{name: "first", items: []string{"a", "b"}, index: 0, want: "a"},
		{name: "last", items: []string{"a", "b"}, index: 1, want: "b"},
		{name: "empty string", items: []string{""}, index: 0, want: ""},
		{name: "out of range", items: []string{"a"}, index: 3, wantErr: true},
		{name: "empty spill", index: 0, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spill, err := NewFileSpillIn[string](t.TempDir(), "s")
			require.NoError(t, err)
			defer spill.Close()

			require.NoError(t, spill.AppendBatch(tt.items))

			got, err := spill.Get(tt.index)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFileSpill_RangeStopsOnError(t *testing.T) {
	spill, err := NewFileSpillIn[int](t.TempDir(), "n")
	require.NoError(t, err)
	defer spill.Close()

	require.NoError(t, spill.AppendBatch([]int{1, 2, 3}))

	stop := errors.New("stop")
	count := 0

	err = spill.Range(func(index uint64, _ int) error {
		count++
		if index == 1 {
			return stop
		}

		return nil
	})

	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 2, count)
}

func TestFileSpill_ClosedSpillRejectsAccess(t *testing.T) {
	spill, err := NewFileSpillIn[int](t.TempDir(), "n")
	require.NoError(t, err)

	require.NoError(t, spill.Append(7))
	require.NoError(t, spill.Close())
	require.NoError(t, spill.Close())

	_, err = spill.Get(0)
	assert.ErrorIs(t, err, os.ErrClosed)
	assert.ErrorIs(t, spill.Append(8), os.ErrClosed)
}

func TestOpenFileSpill(t *testing.T) {
	// Arrange
	spill, err := NewFileSpillIn[spillEvent](t.TempDir(), "trace")
	require.NoError(t, err)

	first := spillEvent{Kind: "enter", Method: "Demo.Lib.Util::Twice(int64)", Token: 1, Args: []string{"21L"}}
	require.NoError(t, spill.Append(first))
	require.NoError(t, spill.Close())

	// Act
	reopened, err := OpenFileSpill[spillEvent](spill.Path())
	require.NoError(t, err)
	defer reopened.Close()

	require.NoError(t, reopened.Append(spillEvent{Kind: "exit", Token: 1}))

	// Assert
	require.Equal(t, uint64(2), reopened.Len())

	got, err := reopened.Get(0)
	require.NoError(t, err)
	assert.Equal(t, first, got)

	got, err = reopened.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "exit", got.Kind)
}

func TestOpenFileSpill_Errors(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		_, err := OpenFileSpill[int](filepath.Join(t.TempDir(), "none.gob"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("truncated", func(t *testing.T) {
		spill, err := NewFileSpillIn[string](t.TempDir(), "s")
		require.NoError(t, err)
		require.NoError(t, spill.AppendBatch([]string{"alpha", "beta"}))
		require.NoError(t, spill.Close())

		info, err := os.Stat(spill.Path())
		require.NoError(t, err)
		require.NoError(t, os.Truncate(spill.Path(), info.Size()-2))

		_, err = OpenFileSpill[string](spill.Path())
		assert.ErrorIs(t, err, ErrTruncated)
	})

	t.Run("empty file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "empty.gob")
		require.NoError(t, os.WriteFile(path, nil, 0o600))

		spill, err := OpenFileSpill[string](path)
		require.NoError(t, err)
		defer spill.Close()

		assert.Equal(t, uint64(0), spill.Len())
	})
}

func BenchmarkFileSpill_Append(b *testing.B) {
	spill, err := NewFileSpillIn[spillEvent](b.TempDir(), "bench")
	if err != nil {
		b.Fatalf("failed to create filespill: %v", err)
	}
	defer spill.Close()

	ev := spillEvent{Kind: "enter", Method: "Demo.Lib.Util::Twice(int64)", Args: []string{"21L"}}

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		ev.Token = int64(i)
		_ = spill.Append(ev)
	}
}
