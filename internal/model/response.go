package model

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

type APIResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

type Pagination struct {
	CurrentPage int `json:"currentPage"`
	Total       int `json:"total"`
	PerPage     int `json:"perPage"`
	TotalPages  int `json:"totalPages"`
}

func NewPagination(page int, perPage int, total int) Pagination {
	totalPages := 0
	if total > 0 && perPage > 0 {
		totalPages = (total + perPage - 1) / perPage
	}
	return Pagination{CurrentPage: page, Total: total, PerPage: perPage, TotalPages: totalPages}
}
