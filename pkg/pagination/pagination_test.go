package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_Defaults(t *testing.T) {
	p := Params{}.Normalize()
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, DefaultLimit, p.Limit)
}

func TestNormalize_PageClamp(t *testing.T) {
	assert.Equal(t, 1, Params{Page: 0, Limit: 10}.Normalize().Page)
	assert.Equal(t, 1, Params{Page: -3, Limit: 10}.Normalize().Page)
	assert.Equal(t, 7, Params{Page: 7, Limit: 10}.Normalize().Page)
}

func TestNormalize_LimitClamp(t *testing.T) {
	assert.Equal(t, DefaultLimit, Params{Page: 1}.Normalize().Limit)
	assert.Equal(t, 1, Params{Page: 1, Limit: -5}.Normalize().Limit)
	assert.Equal(t, MaxLimit, Params{Page: 1, Limit: 500}.Normalize().Limit)
	assert.Equal(t, MaxLimit, Params{Page: 1, Limit: MaxLimit}.Normalize().Limit)
	assert.Equal(t, 42, Params{Page: 1, Limit: 42}.Normalize().Limit)
}

func TestOffset(t *testing.T) {
	tests := []struct {
		page   int
		limit  int
		offset int
	}{
		{1, 10, 0},
		{2, 10, 10},
		{3, 25, 50},
		{5, 20, 80},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.offset, Params{Page: tt.page, Limit: tt.limit}.Offset())
	}
}

func TestNewMeta_PagesIsCeil(t *testing.T) {
	tests := []struct {
		total int
		limit int
		pages int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{25, 10, 3},
		{100, 100, 1},
		{101, 100, 2},
	}
	for _, tt := range tests {
		meta := NewMeta(Params{Page: 1, Limit: tt.limit}, tt.total)
		assert.Equal(t, tt.pages, meta.Pages, "total=%d limit=%d", tt.total, tt.limit)
		assert.Equal(t, tt.total, meta.Total)
		assert.Equal(t, tt.limit, meta.Limit)
	}
}

func TestNewMeta_EchoesPage(t *testing.T) {
	meta := NewMeta(Params{Page: 4, Limit: 10}, 55)
	assert.Equal(t, 4, meta.Page)
	assert.Equal(t, 6, meta.Pages)
}
