package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestIsUniqueViolation_PgError(t *testing.T) {
	err := &pgconn.PgError{Code: "23505", ConstraintName: "video_records_content_hash_live"}

	if !IsUniqueViolation(err, "") {
		t.Fatal("expected any-constraint match")
	}
	if !IsUniqueViolation(err, "video_records_content_hash_live") {
		t.Fatal("expected named constraint match")
	}
	if IsUniqueViolation(err, "other_constraint") {
		t.Fatal("unexpected match on wrong constraint")
	}
	if IsUniqueViolation(&pgconn.PgError{Code: "23503"}, "") {
		t.Fatal("foreign key violation must not match")
	}
}

func TestIsUniqueViolation_Wrapped(t *testing.T) {
	inner := &pgconn.PgError{Code: "23505"}
	if !IsUniqueViolation(fmt.Errorf("insert video: %w", inner), "") {
		t.Fatal("expected wrapped pg error to match")
	}
}

func TestIsUniqueViolation_SQLiteText(t *testing.T) {
	err := errors.New("UNIQUE constraint failed: video_records.content_hash")
	if !IsUniqueViolation(err, "") {
		t.Fatal("expected sqlite text match")
	}
}
