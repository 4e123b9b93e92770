package dto

// Pagination - общие параметры постраничного вывода
type Pagination struct {
	Page     int `form:"page,default=1" binding:"omitempty,min=1"`
	PageSize int `form:"page_size,default=20" binding:"omitempty,min=1,max=100"`
}

func (p Pagination) Limit() int {
	if p.PageSize < 1 || p.PageSize > 100 {
		return 20
	}
	return p.PageSize
}

func (p Pagination) Offset() int {
	page := p.Page
	if page < 1 {
		page = 1
	}
	return (page - 1) * p.Limit()
}

// ListMeta - метаданные списка в ответе
type ListMeta struct {
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
}

func NewListMeta(total int64, p Pagination) ListMeta {
	page := p.Page
	if page < 1 {
		page = 1
	}
	return ListMeta{Total: total, Page: page, PageSize: p.Limit()}
}
