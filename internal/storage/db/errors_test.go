package db_test

import (
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/tuanvumaihuynh/pos-backoffice/internal/storage/db"
)

func TestPgErrors(t *testing.T) {
	uniqueErr := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", ConstraintName: "products_sku_key"})
	fkErr := &pgconn.PgError{Code: "23503", ConstraintName: "products_category_id_fkey"}

	assert.True(t, db.IsUniqueViolation(uniqueErr, ""))
	assert.True(t, db.IsUniqueViolation(uniqueErr, "products_sku_key"))
	assert.False(t, db.IsUniqueViolation(uniqueErr, "categories_name_key"))
	assert.False(t, db.IsUniqueViolation(fkErr, ""))

	assert.True(t, db.IsForeignKeyViolation(fkErr, "products_category_id_fkey"))
	assert.False(t, db.IsForeignKeyViolation(uniqueErr, ""))

	assert.True(t, db.IsNoRows(fmt.Errorf("get: %w", pgx.ErrNoRows)))
	assert.False(t, db.IsNoRows(fkErr))
}
