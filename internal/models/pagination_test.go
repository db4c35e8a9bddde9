package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewPagination(t *testing.T) {
	p := NewPagination(1, 10, 25)
	require.Equal(t, 3, p.TotalPages)
	require.True(t, p.HasNext)
	require.False(t, p.HasPrev)

	p = NewPagination(3, 10, 25)
	require.False(t, p.HasNext)
	require.True(t, p.HasPrev)

	p = NewPagination(1, 10, 0)
	require.Equal(t, 0, p.TotalPages)
	require.False(t, p.HasNext)
	require.False(t, p.HasPrev)

	p = NewPagination(2, 5, 10)
	require.Equal(t, 2, p.TotalPages)
	require.False(t, p.HasNext)
}
