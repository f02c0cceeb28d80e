package pagination

// DefaultLimit and MaxLimit bound the page size accepted on list endpoints.
const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// Params holds the requested page and page size.
type Params struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Normalize clamps the parameters into their valid ranges: page >= 1 and
// limit in [1, MaxLimit], with a zero limit falling back to DefaultLimit.
func (p Params) Normalize() Params {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit == 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit < 1 {
		p.Limit = 1
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}

// Offset returns the row offset for the current page.
func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Meta describes the page of results returned alongside list data.
type Meta struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// NewMeta computes the response metadata for a page. Pages is
// ceil(total/limit), zero when there are no rows.
func NewMeta(p Params, total int) Meta {
	pages := total / p.Limit
	if total%p.Limit > 0 {
		pages++
	}
	return Meta{
		Page:  p.Page,
		Limit: p.Limit,
		Total: total,
		Pages: pages,
	}
}
