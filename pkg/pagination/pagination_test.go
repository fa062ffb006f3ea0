package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, Params{Page: 1, PageSize: 12}, Params{}.Normalize())
	assert.Equal(t, Params{Page: 3, PageSize: 100}, Params{Page: 3, PageSize: 500}.Normalize())
	assert.Equal(t, 24, Params{Page: 3, PageSize: 12}.Offset())
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 5, TotalPages(51, 12))
	assert.Equal(t, 1, TotalPages(12, 12))
	assert.Equal(t, 0, TotalPages(0, 12))
}

func TestNewPageEmpty(t *testing.T) {
	page := NewPage[string](nil, 0, Params{})
	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 0, page.TotalPages)
}
