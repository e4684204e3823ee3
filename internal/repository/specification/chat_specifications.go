package specification

import (
	"gorm.io/gorm"
)

// BySessionID is the isolation filter; every session-scoped query must apply it.
type BySessionID struct {
	SessionID string
}

func (s BySessionID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("session_id = ?", s.SessionID)
}

// ByDocumentType narrows to one source type. An empty type matches everything.
type ByDocumentType struct {
	Type string
}

func (s ByDocumentType) Apply(db *gorm.DB) *gorm.DB {
	if s.Type == "" {
		return db
	}
	return db.Where("type = ?", s.Type)
}

type ByScope struct {
	Scope string
}

func (s ByScope) Apply(db *gorm.DB) *gorm.DB {
	if s.Scope == "" {
		return db
	}
	return db.Where("scope = ?", s.Scope)
}
