package migrations

import (
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestUp_DBError(t *testing.T) {
	// A mock with no expectations rejects every query goose issues.
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	err = Up(db)
	if err == nil {
		t.Fatal("expected error from Up, got nil")
	}

	if !strings.Contains(err.Error(), "migration up error") {
		t.Errorf("expected wrapped migration error, got: %v", err)
	}
}

func TestDown_DBError(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	err = Down(db)
	if err == nil {
		t.Fatal("expected error from Down, got nil")
	}

	if !strings.Contains(err.Error(), "migration down error") {
		t.Errorf("expected wrapped migration error, got: %v", err)
	}
}
