package pidfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquireAndRelease(t *testing.T) {
	// Arrange
	path := filepath.Join(t.TempDir(), "craftreq.pid")
	p := New(path)

	// Act
	require.NoError(t, p.Acquire())

	// Assert
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("%d\n", os.Getpid()), string(data))

	require.NoError(t, p.Release())
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
	assert.NoError(t, p.Release())
}

func TestAcquire_RejectsLiveProcess(t *testing.T) {
	path := filepath.Join(t.TempDir(), "craftreq.pid")
	require.NoError(t, os.WriteFile(path, []byte(fmt.Sprintf("%d\n", os.Getpid())), 0644))

	err := New(path).Acquire()

	var running *ErrAlreadyRunning
	require.True(t, errors.As(err, &running))
	assert.Equal(t, os.Getpid(), running.PID)
}

func TestAcquire_ReplacesStaleFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "craftreq.pid")
	require.NoError(t, os.WriteFile(path, []byte("not-a-pid\n"), 0644))

	assert.NoError(t, New(path).Acquire())
}
