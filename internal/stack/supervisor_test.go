package stack

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"nhost/internal/containerizer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockRuntime struct {
	calls       []string
	validateErr error
	startErr    error
	onStart     func()
}

func (m *mockRuntime) Validate(ctx context.Context, definitionPath string) error {
	m.calls = append(m.calls, "validate:"+definitionPath)
	return m.validateErr
}

func (m *mockRuntime) StartDetached(ctx context.Context, definitionPath string) error {
	m.calls = append(m.calls, "start:"+definitionPath)
	if m.onStart != nil {
		m.onStart()
	}
	return m.startErr
}

func TestSupervisor_Up_FirstRun(t *testing.T) {
	storage := filepath.Join(t.TempDir(), "db_data")
	rt := &mockRuntime{
		// The runtime creates the storage directory while starting.
		onStart: func() { _ = os.Mkdir(storage, 0755) },
	}

	firstRun, err := NewSupervisor(rt, storage).Up(context.Background(), "def.yaml")
	require.NoError(t, err)
	assert.True(t, firstRun, "detection must happen before startup creates the directory")
	assert.Equal(t, []string{"validate:def.yaml", "start:def.yaml"}, rt.calls)
}

func TestSupervisor_Up_ExistingStorage(t *testing.T) {
	storage := filepath.Join(t.TempDir(), "db_data")
	require.NoError(t, os.Mkdir(storage, 0755))
	rt := &mockRuntime{}

	firstRun, err := NewSupervisor(rt, storage).Up(context.Background(), "def.yaml")
	require.NoError(t, err)
	assert.False(t, firstRun)
}

func TestSupervisor_Up_InvalidDefinitionSkipsStart(t *testing.T) {
	rt := &mockRuntime{
		validateErr: errors.Join(containerizer.ErrInvalidServiceDefinition, errors.New("bad yaml")),
	}

	_, err := NewSupervisor(rt, t.TempDir()).Up(context.Background(), "def.yaml")
	require.Error(t, err)
	assert.ErrorIs(t, err, containerizer.ErrInvalidServiceDefinition)
	assert.Equal(t, []string{"validate:def.yaml"}, rt.calls)
}

func TestSupervisor_Up_StartFailure(t *testing.T) {
	storage := filepath.Join(t.TempDir(), "db_data")
	rt := &mockRuntime{startErr: containerizer.ErrStartFailed}

	firstRun, err := NewSupervisor(rt, storage).Up(context.Background(), "def.yaml")
	assert.ErrorIs(t, err, containerizer.ErrStartFailed)
	assert.True(t, firstRun)
}

func TestIsFirstRun(t *testing.T) {
	dir := t.TempDir()
	assert.True(t, IsFirstRun(filepath.Join(dir, "missing")))
	assert.False(t, IsFirstRun(dir))
}
