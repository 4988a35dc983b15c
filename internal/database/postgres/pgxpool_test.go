package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"learnmatch/internal/config"
	"learnmatch/internal/database"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestDSN(t *testing.T) {
	got := DSN(config.DatabaseConfig{
		DBHost:     " db ",
		DBPort:     "5432",
		DBUser:     "app",
		DBPassword: "s3cret",
		DBName:     "learnmatch",
		DBSSLMode:  "disable",
	})
	want := "host=db port=5432 user=app password=s3cret dbname=learnmatch sslmode=disable"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestIsUniqueViolation(t *testing.T) {
	dup := &pgconn.PgError{Code: "23505"}
	if !IsUniqueViolation(fmt.Errorf("insert: %w", dup)) {
		t.Fatalf("expected wrapped 23505 to be a unique violation")
	}
	if IsUniqueViolation(&pgconn.PgError{Code: "23503"}) {
		t.Fatalf("foreign key violation is not a unique violation")
	}
	if IsUniqueViolation(errors.New("boom")) {
		t.Fatalf("plain error is not a unique violation")
	}
}

func TestIsNoRows(t *testing.T) {
	if !IsNoRows(fmt.Errorf("scan: %w", pgx.ErrNoRows)) {
		t.Fatalf("expected pgx.ErrNoRows to match")
	}
	if IsNoRows(errors.New("boom")) {
		t.Fatalf("plain error must not match")
	}
}

func TestNilPool(t *testing.T) {
	var p *Pool
	if err := p.Ping(context.Background()); !errors.Is(err, database.ErrNilDB) {
		t.Fatalf("expected ErrNilDB, got %v", err)
	}
	if err := p.QueryRow(context.Background(), "SELECT 1").Scan(); !errors.Is(err, database.ErrNilDB) {
		t.Fatalf("expected ErrNilDB from nil row, got %v", err)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("close on nil pool must be a no-op, got %v", err)
	}
}
