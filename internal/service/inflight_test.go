package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tapcard/internal/errors"
)

func TestInFlight(t *testing.T) {
	g := NewInFlight()

	release, err := g.Acquire("a")
	require.NoError(t, err)

	_, err = g.Acquire("a")
	assert.ErrorIs(t, err, errors.ErrRequestInFlight)

	other, err := g.Acquire("b")
	require.NoError(t, err)
	other()

	release()
	release()

	again, err := g.Acquire("a")
	require.NoError(t, err)
	again()
}
