package pagination

// Params holds page-based pagination parameters from a request
type Params struct {
	Page     int
	PageSize int
}

// Offset converts the page number to a row offset
func (p Params) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// Meta holds pagination metadata for a response
type Meta struct {
	Total    int  `json:"total"`
	Page     int  `json:"page"`
	PageSize int  `json:"page_size"`
	HasMore  bool `json:"has_more"`
}

// NewMeta creates pagination metadata from params and total count
func NewMeta(params Params, total int) Meta {
	return Meta{
		Total:    total,
		Page:     params.Page,
		PageSize: params.PageSize,
		HasMore:  params.Offset()+params.PageSize < total,
	}
}

// DefaultParams returns pagination params with defaults applied
func DefaultParams(page, pageSize, defaultPageSize, maxPageSize int) Params {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	return Params{
		Page:     page,
		PageSize: pageSize,
	}
}
