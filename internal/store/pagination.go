package store

import "gorm.io/gorm"

// PaginationMeta defines the structure for pagination metadata.
type PaginationMeta struct {
	TotalItems  int64 `json:"total_items"`
	TotalPages  int   `json:"total_pages"`
	CurrentPage int   `json:"current_page"`
	PageSize    int   `json:"page_size"`
}

// Page defines the structure for a paginated list of any type.
type Page[T any] struct {
	Data []T            `json:"data"`
	Meta PaginationMeta `json:"meta"`
}

// HasPrev reports whether a page precedes this one.
func (p *Page[T]) HasPrev() bool { return p.Meta.CurrentPage > 1 }

// HasNext reports whether a page follows this one.
func (p *Page[T]) HasNext() bool { return p.Meta.CurrentPage < p.Meta.TotalPages }

// NewPage creates a new Page.
func NewPage[T any](data []T, totalItems int64, page, limit int) Page[T] {
	if limit <= 0 {
		limit = 1
	}
	return Page[T]{
		Data: data,
		Meta: PaginationMeta{
			TotalItems:  totalItems,
			TotalPages:  (int(totalItems) + limit - 1) / limit,
			CurrentPage: page,
			PageSize:    limit,
		},
	}
}

// NormalizePage clamps page and limit to sane values.
func NormalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100 // Max limit
	}
	return page, limit
}

// Paginate counts the rows matched by db and loads one page of them.
// findScopes apply to the page query only (ordering, preloads).
func Paginate[T any](db *gorm.DB, page, limit int, findScopes ...func(*gorm.DB) *gorm.DB) (*Page[T], error) {
	page, limit = NormalizePage(page, limit)
	db = db.Session(&gorm.Session{})

	var totalItems int64
	if err := db.Model(new(T)).Count(&totalItems).Error; err != nil {
		return nil, err
	}

	var results []T
	offset := (page - 1) * limit
	if err := db.Scopes(findScopes...).Offset(offset).Limit(limit).Find(&results).Error; err != nil {
		return nil, err
	}

	response := NewPage(results, totalItems, page, limit)
	return &response, nil
}
