// Copyright (c) 2025, Kamaran Layne <kamaran@layne.dev>
// See LICENSE for licensing information

package console

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDebugConsoleIsInert(t *testing.T) {
	c := New(true)

	assert.NoError(t, c.Attach())
	assert.NoError(t, c.Spawn())
	assert.NoError(t, c.Detach())
	assert.NoError(t, c.Free())
	assert.False(t, c.Bound())
	assert.Same(t, os.Stdout, c.stdout)
}

func TestDetachWithoutAttach(t *testing.T) {
	c := New(false)
	err := c.Detach()
	if supported {
		assert.ErrorIs(t, err, ErrNotBound)
		return
	}
	assert.NoError(t, err)
}
