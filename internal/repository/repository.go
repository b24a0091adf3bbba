package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/tuanvumaihuynh/pos-backoffice/internal/storage/db"
)

var (
	// ErrNotFound is returned when the requested row does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when an insert or update violates a unique constraint.
	ErrDuplicate = errors.New("duplicate record")
	// ErrReferenceMissing is returned when a foreign key points at a missing row.
	ErrReferenceMissing = errors.New("referenced record missing")
	// ErrInsufficientQuantity is returned by a conditional decrement that would go below zero.
	ErrInsufficientQuantity = errors.New("insufficient quantity")
)

func toNumeric(d decimal.Decimal) pgtype.Numeric {
	return pgtype.Numeric{
		Int:   d.Coefficient(),
		Exp:   d.Exponent(),
		Valid: true,
	}
}

func fromNumeric(n pgtype.Numeric) (decimal.Decimal, error) {
	if !n.Valid {
		return decimal.Zero, errors.New("numeric is null")
	}
	if n.NaN || n.InfinityModifier != pgtype.Finite {
		return decimal.Zero, fmt.Errorf("numeric is not finite")
	}
	if n.Int == nil {
		return decimal.Zero, nil
	}
	return decimal.NewFromBigInt(n.Int, n.Exp), nil
}

// constraintErr translates constraint violations into repository errors and leaves other errors untouched.
func constraintErr(err error) error {
	switch {
	case db.IsUniqueViolation(err, ""):
		return ErrDuplicate
	case db.IsForeignKeyViolation(err, ""):
		return ErrReferenceMissing
	default:
		return err
	}
}
