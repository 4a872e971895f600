package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"tracehook.dev/pkg/tracehook/internal/domain"
	m "tracehook.dev/pkg/tracehook/internal/model"
)

func TestHookSet_ToggleReplacesInPlace(t *testing.T) {
	// Arrange
	add := appMethod(calculator, "Add", "(int32,int32)")
	sign := appMethod(calculator, "Sign", "(int32)")
	set := domain.NewHookSet()

	// Act
	set.Toggle(add, true, false, false)
	set.Toggle(sign, true, true, true)
	set.Toggle(add, false, false, true)

	// Assert
	all := set.All()
	require.Len(t, all, 2)
	assert.Equal(t, add, all[0].Method)
	assert.False(t, all[0].LogName)
	assert.True(t, all[0].LogReturn)
	assert.Equal(t, sign, all[1].Method)
}

func TestHookSet_Find(t *testing.T) {
	add := appMethod(calculator, "Add", "(int32,int32)")
	set := domain.NewHookSet(m.HookDescriptor{Method: add, LogName: true, LogReturn: true})

	tests := []struct {
		name    string
		key     string
		wantErr bool
	}{
		{name: "display key with flags", key: "assemblies/Demo.App.dll!Demo.App.Calculator::Add(int32,int32) [name,return]"},
		{name: "bare identity", key: "assemblies/Demo.App.dll!Demo.App.Calculator::Add(int32,int32)"},
		{name: "surrounding space", key: "  assemblies/Demo.App.dll!Demo.App.Calculator::Add(int32,int32)  "},
		{name: "wrong flags", key: "assemblies/Demo.App.dll!Demo.App.Calculator::Add(int32,int32) [name]", wantErr: true},
		{name: "unknown method", key: "assemblies/Demo.App.dll!Demo.App.Calculator::Sub(int32,int32)", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := set.Find(tt.key)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrNotFound)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, add, h.Method)
		})
	}
}

func TestHookSet_Remove(t *testing.T) {
	add := appMethod(calculator, "Add", "(int32,int32)")
	set := domain.NewHookSet(fullHook(add))

	require.NoError(t, set.Remove(add))
	assert.Equal(t, 0, set.Len())
	assert.ErrorIs(t, set.Remove(add), domain.ErrNotFound)
}

func TestHookSet_SnapshotIsIndependent(t *testing.T) {
	// Arrange
	add := appMethod(calculator, "Add", "(int32,int32)")
	set := domain.NewHookSet(fullHook(add))

	// Act
	snap := set.Snapshot()
	set.Clear()
	set.Toggle(appMethod(calculator, "Sign", "(int32)"), true, false, false)

	// Assert
	require.Equal(t, 1, snap.Len())
	h, ok := snap.Get(add)
	assert.True(t, ok)
	assert.True(t, h.LogParameters)
}

func TestHookSet_NewDeduplicates(t *testing.T) {
	add := appMethod(calculator, "Add", "(int32,int32)")

	set := domain.NewHookSet(fullHook(add), m.HookDescriptor{Method: add, LogName: true})

	require.Equal(t, 1, set.Len())
	h, _ := set.Get(add)
	assert.Equal(t, "name", h.Flags())
}
