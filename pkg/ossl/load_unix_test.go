//go:build linux && !android

package ossl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLibraryWithoutInitSymbol(t *testing.T) {
	reset(t, loadInit)
	t.Setenv(LibraryEnv, "libc.so.6")

	err := Init()
	require.Error(t, err)
	assert.Equal(t, err, Init())
}
