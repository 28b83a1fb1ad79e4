package dberr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func TestIsUniqueViolation(t *testing.T) {
	pg := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})
	if !IsUniqueViolation(pg) {
		t.Fatalf("expected pg unique violation")
	}
	if IsUniqueViolation(&pgconn.PgError{Code: "23503"}) {
		t.Fatalf("foreign key violation is not unique violation")
	}
	if !IsUniqueViolation(gorm.ErrDuplicatedKey) {
		t.Fatalf("expected gorm duplicated key")
	}
	if IsUniqueViolation(nil) || IsUniqueViolation(errors.New("x")) {
		t.Fatalf("unexpected match")
	}
}

func TestMap(t *testing.T) {
	if err := Map(gorm.ErrDuplicatedKey); !errors.Is(err, ErrConflict) || !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("expected conflict wrapping original, got %v", err)
	}
	other := errors.New("boom")
	if Map(other) != other {
		t.Fatalf("expected passthrough")
	}
}
