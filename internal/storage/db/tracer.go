package db

import (
	"github.com/exaring/otelpgx"
	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("internal/storage/db")

// Query parameters stay out of spans, user rows carry password hashes.
func newTracer() pgx.QueryTracer {
	return otelpgx.NewTracer(
		otelpgx.WithTrimSQLInSpanName(),
	)
}
