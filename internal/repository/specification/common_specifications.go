package specification

import (
	"fmt"

	"rag-chat-be/internal/repository/contract"

	"gorm.io/gorm"
)

// OrderBy sorts by a trusted column name.
type OrderBy struct {
	Field string
	Desc  bool
}

func (s OrderBy) Apply(db *gorm.DB) *gorm.DB {
	direction := "ASC"
	if s.Desc {
		direction = "DESC"
	}
	return db.Order(fmt.Sprintf("%s %s", s.Field, direction))
}

// Pagination windows a listing. A zero Limit returns every row after Offset.
type Pagination struct {
	Page contract.Page
}

func (s Pagination) Apply(db *gorm.DB) *gorm.DB {
	if s.Page.Limit > 0 {
		db = db.Limit(s.Page.Limit)
	}
	if s.Page.Offset > 0 {
		db = db.Offset(s.Page.Offset)
	}
	return db
}
