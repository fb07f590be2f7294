package qr

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupStoreMock(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open gorm: %v", err)
	}

	return NewStore(gdb), mock
}

func TestStore_Create(t *testing.T) {
	store, mock := setupStoreMock(t)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "app_qr"."qr_codes"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	code := QRCode{
		ID:        "qr-1",
		UserID:    "user-1",
		QRText:    "hello",
		QRImage:   "data:image/png;base64,aGVsbG8=",
		CreatedAt: time.Now().UTC(),
	}
	if err := store.Create(context.Background(), &code); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestStore_ListByOwner_NewestFirst(t *testing.T) {
	store, mock := setupStoreMock(t)

	now := time.Now().UTC()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "app_qr"."qr_codes" WHERE user_id = $1 ORDER BY created_at DESC`)).
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "qr_text", "qr_image", "created_at"}).
			AddRow("qr-2", "user-1", "newer", "data:image/png;base64,bg==", now).
			AddRow("qr-1", "user-1", "older", "data:image/png;base64,bw==", now.Add(-time.Hour)))

	codes, err := store.ListByOwner(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(codes) != 2 {
		t.Fatalf("expected 2 codes, got %d", len(codes))
	}
	if codes[0].QRText != "newer" || codes[1].QRText != "older" {
		t.Errorf("expected newest-first order, got %q then %q", codes[0].QRText, codes[1].QRText)
	}
	for i := 1; i < len(codes); i++ {
		if codes[i].CreatedAt.After(codes[i-1].CreatedAt) {
			t.Errorf("timestamps not non-increasing at index %d", i)
		}
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestStore_DeleteOwned(t *testing.T) {
	store, mock := setupStoreMock(t)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "app_qr"."qr_codes" WHERE id = $1 AND user_id = $2`)).
		WithArgs("qr-1", "user-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := store.DeleteOwned(context.Background(), "user-1", "qr-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

// TestStore_DeleteOwned_NotOwner verifies the ownership predicate: a delete
// that matches no (id, user_id) pair reports not-found rather than removing
// someone else's record.
func TestStore_DeleteOwned_NotOwner(t *testing.T) {
	store, mock := setupStoreMock(t)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "app_qr"."qr_codes" WHERE id = $1 AND user_id = $2`)).
		WithArgs("qr-owned-by-b", "user-a").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := store.DeleteOwned(context.Background(), "user-a", "qr-owned-by-b")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}
