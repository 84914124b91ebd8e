// Package pagination computes page windows and navigation links for list
// endpoints. Pages are 1-based; a page past the end yields an empty result
// set rather than an error.
package pagination

import "fmt"

// Page is the sliced window plus the metadata handlers serialize. Next and
// Previous are nil when there is no page in that direction.
type Page[T any] struct {
	Count       int64   `json:"count"`
	CurrentPage int     `json:"current_page"`
	TotalPages  int     `json:"total_pages"`
	Next        *string `json:"next,omitempty"`
	Previous    *string `json:"previous,omitempty"`
	Results     []T     `json:"results"`
}

// New slices a fully materialized item list into the requested page.
func New[T any](items []T, page, size int, basePath string) (*Page[T], error) {
	if err := validate(page, size); err != nil {
		return nil, err
	}

	total := int64(len(items))
	offset := (page - 1) * size
	var results []T
	if offset < len(items) {
		end := offset + size
		if end > len(items) {
			end = len(items)
		}
		results = items[offset:end]
	}

	return build(results, total, page, size, basePath), nil
}

// NewFromCount builds page metadata around an already-sliced repository page
// and its pre-slice total.
func NewFromCount[T any](results []T, total int64, page, size int, basePath string) (*Page[T], error) {
	if err := validate(page, size); err != nil {
		return nil, err
	}
	return build(results, total, page, size, basePath), nil
}

func validate(page, size int) error {
	if size <= 0 {
		return fmt.Errorf("page size must be positive, got %d", size)
	}
	if page < 1 {
		return fmt.Errorf("page number must be at least 1, got %d", page)
	}
	return nil
}

func build[T any](results []T, total int64, page, size int, basePath string) *Page[T] {
	totalPages := int((total + int64(size) - 1) / int64(size))

	p := &Page[T]{
		Count:       total,
		CurrentPage: page,
		TotalPages:  totalPages,
		Results:     results,
	}
	if page < totalPages {
		p.Next = link(basePath, page+1, size)
	}
	if page > 1 {
		p.Previous = link(basePath, page-1, size)
	}
	return p
}

func link(basePath string, page, size int) *string {
	url := fmt.Sprintf("%s?page=%d&limit=%d", basePath, page, size)
	return &url
}
