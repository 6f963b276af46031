package schema

// PaginationResponse is the generic envelope returned by list endpoints.
type PaginationResponse[T any] struct {
	Data     []T `json:"data"`
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
	Total    int `json:"total"`
}

// ListQuery holds the parameters accepted by the owner list operation.
type ListQuery struct {
	Page     int    `json:"page,omitempty"`
	PageSize int    `json:"pageSize,omitempty"`
	Search   string `json:"search,omitempty"`
}

// WithDefaults fills a zero Page or PageSize, which callers use to mean
// "not given". Any other value is kept as is.
func (q ListQuery) WithDefaults() ListQuery {
	if q.Page == 0 {
		q.Page = DefaultPage
	}
	if q.PageSize == 0 {
		q.PageSize = DefaultPageSize
	}
	return q
}

const (
	DefaultPage          = 1
	DefaultPageSize      = 10
	DefaultAuditPageSize = 25
)
