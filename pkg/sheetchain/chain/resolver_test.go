package chain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/sheetchain-go/pkg/sheetchain/models"
)

func newMemorySource() *memorySource {
	return &memorySource{
		scopes: []string{"Sheet1", "My Sheet"},
		cells: map[string]models.Table{
			"Sheet1!A1:B2":   {{"x", int64(1)}, {"y", int64(2)}},
			"My Sheet!C1":    {{"z"}},
			"Sheet1!SALES":   {{"address", "wins"}},
			"My Sheet!A1:A3": {{"a"}, {"b"}, {"c"}},
		},
		names: map[string]models.Table{
			"sales": {{"named", "wins"}},
		},
	}
}

func TestResolveEmpty(t *testing.T) {
	src := newMemorySource()
	r := NewResolver(src, "Sheet1")

	got, err := r.Resolve("   ")
	require.NoError(t, err)
	assert.True(t, got.IsEmpty())
	assert.Empty(t, src.calls)
}

func TestResolveAddressInCurrentScope(t *testing.T) {
	r := NewResolver(newMemorySource(), "Sheet1")

	got, err := r.Resolve(" A1:B2 ")
	require.NoError(t, err)
	assert.Equal(t, models.Table{{"x", int64(1)}, {"y", int64(2)}}, got)
}

func TestResolveScoped(t *testing.T) {
	r := NewResolver(newMemorySource(), "Sheet1")

	got, err := r.Resolve("'My Sheet'!A1:A3")
	require.NoError(t, err)
	assert.Len(t, got, 3)

	got, err = r.Resolve("my sheet!C1")
	require.NoError(t, err)
	assert.Equal(t, models.Table{{"z"}}, got)

	// Formula-style references are accepted too
	got, err = r.Resolve("='My Sheet'!C1")
	require.NoError(t, err)
	assert.Equal(t, models.Table{{"z"}}, got)
}

func TestResolveScopeNotFound(t *testing.T) {
	r := NewResolver(newMemorySource(), "Sheet1")

	_, err := r.Resolve("Sheet2!A1:A3")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrScopeNotFound))

	var refErr *ReferenceError
	require.True(t, errors.As(err, &refErr))
	assert.Equal(t, "Sheet2", refErr.Scope)
	assert.Equal(t, "Sheet2!A1:A3", refErr.Reference)
}

func TestResolveNamedBeforeAddress(t *testing.T) {
	src := newMemorySource()
	r := NewResolver(src, "Sheet1")

	got, err := r.Resolve("Sales")
	require.NoError(t, err)
	assert.Equal(t, models.Table{{"named", "wins"}}, got)
	assert.Equal(t, []string{"name:Sales"}, src.calls)
}

func TestResolveInvalidAddressSurfacesAddressError(t *testing.T) {
	r := NewResolver(newMemorySource(), "Sheet1")

	_, err := r.Resolve("ZZ99")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidAddress))
	assert.Contains(t, err.Error(), `bad address "ZZ99"`)

	_, err = r.Resolve("My Sheet!nowhere")
	assert.True(t, errors.Is(err, ErrInvalidAddress))
}

func TestResolveIdempotent(t *testing.T) {
	r := NewResolver(newMemorySource(), "Sheet1")

	first, err := r.Resolve("A1:B2")
	require.NoError(t, err)
	second, err := r.Resolve("A1:B2")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// Results are copies owned by the caller
	first[0][0] = "changed"
	third, err := r.Resolve("A1:B2")
	require.NoError(t, err)
	assert.Equal(t, "x", third[0][0])
}
