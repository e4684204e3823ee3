package specification

import (
	"testing"

	"rag-chat-be/internal/repository/contract"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type row struct {
	Id string
}

func dryRun(t *testing.T) *gorm.DB {
	db, err := gorm.Open(postgres.New(postgres.Config{DSN: "host=localhost"}), &gorm.Config{
		DryRun:                 true,
		DisableAutomaticPing:   true,
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Skipf("dry run dialector unavailable: %v", err)
	}
	return db
}

func TestSpecifications_SQL(t *testing.T) {
	db := dryRun(t)

	var rows []row
	stmt := BySessionID{SessionID: "s1"}.Apply(db.Table("chunks"))
	stmt = ByDocumentType{Type: "pdf"}.Apply(stmt)
	stmt = OrderBy{Field: "created_at", Desc: true}.Apply(stmt)
	stmt = Pagination{Page: contract.Page{Limit: 4}}.Apply(stmt)
	sql := stmt.Find(&rows).Statement.SQL.String()

	assert.Contains(t, sql, "session_id = $1")
	assert.Contains(t, sql, "type = $2")
	assert.Contains(t, sql, "ORDER BY created_at DESC")
	assert.Contains(t, sql, "LIMIT $3")
}

func TestSpecifications_EmptyFiltersAreNoops(t *testing.T) {
	db := dryRun(t)

	var rows []row
	stmt := ByDocumentType{}.Apply(db.Table("chunks"))
	stmt = ByScope{}.Apply(stmt)
	stmt = Pagination{}.Apply(stmt)
	sql := stmt.Find(&rows).Statement.SQL.String()

	assert.NotContains(t, sql, "WHERE")
	assert.NotContains(t, sql, "LIMIT")
	assert.NotContains(t, sql, "OFFSET")
}
