package docker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDockerScript answers like the docker CLI for the argument shapes the
// engine produces. Containers and images named "gone" do not exist.
const fakeDockerScript = `#!/bin/sh
case "$1" in
version) echo "99.0.0" ;;
tag)
	if [ "$3" = "gone:latest" ]; then
		echo "Error response from daemon: No such image: $3" >&2
		exit 1
	fi ;;
run) echo "f2f0b5a1c3d4" ;;
stop|rm)
	if [ "$2" = "gone" ]; then
		echo "Error response from daemon: No such container: $2" >&2
		exit 1
	fi ;;
container)
	if [ "$3" = "gone" ]; then
		echo "Error: No such container: $3" >&2
		exit 1
	fi ;;
esac
exit 0
`

func fakeEngine(t *testing.T) *Engine {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake docker CLI is a shell script")
	}

	binPath := filepath.Join(t.TempDir(), "docker")
	require.NoError(t, os.WriteFile(binPath, []byte(fakeDockerScript), 0o755))
	return &Engine{binPath: binPath}
}

func TestEngineTag(t *testing.T) {
	t.Parallel()

	engine := fakeEngine(t)
	ctx := context.Background()

	assert.NoError(t, engine.Tag(ctx, "shortly:latest", "shortly:stable"))

	err := engine.Tag(ctx, "shortly:latest", "gone:latest")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "No such image")
}

func TestEngineRunReturnsContainerID(t *testing.T) {
	t.Parallel()

	engine := fakeEngine(t)

	id, err := engine.Run(context.Background(), RunOptions{
		Image: "shortly:latest",
		Name:  "shortly",
		Port:  "5000:5000",
	})
	require.NoError(t, err)
	assert.Equal(t, "f2f0b5a1c3d4", id)
}

func TestEngineStopRemoveTolerateAbsent(t *testing.T) {
	t.Parallel()

	engine := fakeEngine(t)
	ctx := context.Background()

	assert.NoError(t, engine.Stop(ctx, "gone"))
	assert.NoError(t, engine.Remove(ctx, "gone"))

	assert.NoError(t, engine.Stop(ctx, "shortly"))
	assert.NoError(t, engine.Remove(ctx, "shortly"))
}

func TestEngineContainerExists(t *testing.T) {
	t.Parallel()

	engine := fakeEngine(t)
	ctx := context.Background()

	assert.True(t, engine.ContainerExists(ctx, "shortly"))
	assert.False(t, engine.ContainerExists(ctx, "gone"))
}

func TestIsAbsent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "missing container",
			err: &cliError{
				args:   []string{"stop", "shortly"},
				stderr: `Error response from daemon: No such container: shortly`,
			},
			want: true,
		},
		{
			name: "daemon error",
			err: &cliError{
				args:   []string{"stop", "shortly"},
				stderr: "Cannot connect to the Docker daemon",
			},
			want: false,
		},
		{
			name: "not a cli error",
			err:  errors.New("No such container: shortly"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, isAbsent(tt.err))
		})
	}
}

func TestCLIError(t *testing.T) {
	t.Parallel()

	cause := errors.New("exit status 1")

	withStderr := &cliError{
		args:   []string{"rm", "shortly"},
		stderr: "Error: No such container: shortly",
		cause:  cause,
	}
	assert.Equal(t, "docker rm shortly: Error: No such container: shortly", withStderr.Error())
	assert.ErrorIs(t, withStderr, cause)

	noStderr := &cliError{
		args:  []string{"version"},
		cause: cause,
	}
	assert.Equal(t, "docker version: exit status 1", noStderr.Error())
}
