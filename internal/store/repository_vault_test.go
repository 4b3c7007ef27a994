package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/mattn/go-sqlite3"

	"movievault/internal/logger"
	"movievault/models"
)

func newTestVaultRepo(t *testing.T) (*sqliteVaultRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	repo := &sqliteVaultRepository{
		DB:     &DB{DB: db, logger: l},
		logger: l,
	}
	return repo, mock, db
}

func uniqueViolation() error {
	return sqlite3.Error{
		Code:         sqlite3.ErrConstraint,
		ExtendedCode: sqlite3.ErrConstraintUnique,
	}
}

func itemRows(items ...models.VaultItem) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "source_id", "media_type", "title", "poster_path",
		"overview", "release_date", "rating", "is_watched", "added_at",
	})
	for _, item := range items {
		rows.AddRow(
			item.ID, item.SourceID, string(item.MediaType), item.Title, item.PosterPath,
			item.Overview, item.ReleaseDate, item.Rating, item.IsWatched, item.AddedAt,
		)
	}
	return rows
}

func TestSaveItem_Success(t *testing.T) {
	repo, mock, db := newTestVaultRepo(t)
	defer db.Close()

	item := models.VaultItem{
		ID:        "item-1",
		SourceID:  550,
		MediaType: models.Movie,
		Title:     "Fight Club",
		AddedAt:   time.Now(),
	}

	mock.ExpectExec("INSERT INTO vault_items").
		WithArgs(
			item.ID, item.SourceID, "movie", item.Title, nil,
			"", "", 0.0, false, item.AddedAt,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.SaveItem(context.Background(), item); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSaveItem_DuplicateSource(t *testing.T) {
	repo, mock, db := newTestVaultRepo(t)
	defer db.Close()

	mock.ExpectExec("INSERT INTO vault_items").
		WillReturnError(uniqueViolation())

	err := repo.SaveItem(context.Background(), models.VaultItem{ID: "item-1"})
	if !errors.Is(err, ErrItemAlreadyExists) {
		t.Fatalf("expected ErrItemAlreadyExists, got %v", err)
	}
}

func TestItemByID_NotFound(t *testing.T) {
	repo, mock, db := newTestVaultRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT").
		WithArgs("missing").
		WillReturnRows(itemRows())

	_, err := repo.ItemByID(context.Background(), "missing")
	if !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}

func TestItemByID_MergesMemberships(t *testing.T) {
	repo, mock, db := newTestVaultRepo(t)
	defer db.Close()

	item := models.VaultItem{
		ID:        "item-1",
		SourceID:  550,
		MediaType: models.Movie,
		Title:     "Fight Club",
		AddedAt:   time.Now(),
	}

	mock.ExpectQuery("SELECT").
		WithArgs("item-1").
		WillReturnRows(itemRows(item))
	mock.ExpectQuery("SELECT collection_id, item_id").
		WillReturnRows(sqlmock.NewRows([]string{"collection_id", "item_id"}).
			AddRow("col-1", "item-1").
			AddRow("col-2", "item-1").
			AddRow("col-3", "item-2"))

	found, err := repo.ItemByID(context.Background(), "item-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(found.CollectionIDs) != 2 || found.CollectionIDs[0] != "col-1" || found.CollectionIDs[1] != "col-2" {
		t.Errorf("expected memberships col-1, col-2, got %v", found.CollectionIDs)
	}
}

func TestItemBySource_Success(t *testing.T) {
	repo, mock, db := newTestVaultRepo(t)
	defer db.Close()

	item := models.VaultItem{
		ID:        "item-1",
		SourceID:  550,
		MediaType: models.Movie,
		Title:     "Fight Club",
		AddedAt:   time.Now(),
	}

	mock.ExpectQuery("SELECT").
		WithArgs(int64(550), "movie").
		WillReturnRows(itemRows(item))
	mock.ExpectQuery("SELECT collection_id, item_id").
		WillReturnRows(sqlmock.NewRows([]string{"collection_id", "item_id"}).
			AddRow("col-1", "item-1"))

	found, err := repo.ItemBySource(context.Background(), 550, models.Movie)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.Title != "Fight Club" {
		t.Errorf("expected title Fight Club, got %s", found.Title)
	}
	if len(found.CollectionIDs) != 1 || found.CollectionIDs[0] != "col-1" {
		t.Errorf("expected membership in col-1, got %v", found.CollectionIDs)
	}
}

func TestItems_MergesMemberships(t *testing.T) {
	repo, mock, db := newTestVaultRepo(t)
	defer db.Close()

	first := models.VaultItem{ID: "item-1", SourceID: 550, MediaType: models.Movie, Title: "Fight Club", AddedAt: time.Now()}
	second := models.VaultItem{ID: "item-2", SourceID: 1399, MediaType: models.Series, Title: "Game of Thrones", AddedAt: time.Now()}

	mock.ExpectQuery("SELECT").
		WillReturnRows(itemRows(first, second))
	mock.ExpectQuery("SELECT collection_id, item_id").
		WillReturnRows(sqlmock.NewRows([]string{"collection_id", "item_id"}).
			AddRow("col-1", "item-2").
			AddRow("col-2", "item-2"))

	items, err := repo.Items(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if len(items[0].CollectionIDs) != 0 {
		t.Errorf("expected item-1 to have no memberships, got %v", items[0].CollectionIDs)
	}
	if len(items[1].CollectionIDs) != 2 {
		t.Errorf("expected item-2 to have 2 memberships, got %v", items[1].CollectionIDs)
	}
}

func TestItems_KeepInsertionOrder(t *testing.T) {
	repo, mock, db := newTestVaultRepo(t)
	defer db.Close()

	first := models.VaultItem{ID: "item-1", SourceID: 550, MediaType: models.Movie, Title: "Fight Club", AddedAt: time.Now()}

	// rows must come back in insertion order, not recency order
	mock.ExpectQuery("ORDER BY rowid").
		WillReturnRows(itemRows(first))
	mock.ExpectQuery("SELECT collection_id, item_id").
		WillReturnRows(sqlmock.NewRows([]string{"collection_id", "item_id"}))

	if _, err := repo.Items(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdateItem_NotFound(t *testing.T) {
	repo, mock, db := newTestVaultRepo(t)
	defer db.Close()

	watched := true
	mock.ExpectExec("UPDATE vault_items").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateItem(context.Background(), "missing", models.VaultItemUpdate{IsWatched: &watched})
	if !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}

func TestUpdateItem_EmptyPatchIsNoOp(t *testing.T) {
	repo, mock, db := newTestVaultRepo(t)
	defer db.Close()

	// no expectations set: an empty patch must not touch the database
	if err := repo.UpdateItem(context.Background(), "item-1", models.VaultItemUpdate{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unexpected database access: %v", err)
	}
}

func TestDeleteItem_RemovesMembershipsInSameTransaction(t *testing.T) {
	repo, mock, db := newTestVaultRepo(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM collection_items").
		WithArgs("item-1").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("DELETE FROM vault_items").
		WithArgs("item-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := repo.DeleteItem(context.Background(), "item-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDeleteItem_NotFoundRollsBack(t *testing.T) {
	repo, mock, db := newTestVaultRepo(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM collection_items").
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM vault_items").
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.DeleteItem(context.Background(), "missing")
	if !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}

func TestDeleteCollection_RemovesMembershipsInSameTransaction(t *testing.T) {
	repo, mock, db := newTestVaultRepo(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM collection_items").
		WithArgs("col-1").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("DELETE FROM collections").
		WithArgs("col-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := repo.DeleteCollection(context.Background(), "col-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDeleteCollection_NotFound(t *testing.T) {
	repo, mock, db := newTestVaultRepo(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM collection_items").
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM collections").
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.DeleteCollection(context.Background(), "missing")
	if !errors.Is(err, ErrCollectionNotFound) {
		t.Fatalf("expected ErrCollectionNotFound, got %v", err)
	}
}

func TestAddItemToCollection_Idempotent(t *testing.T) {
	repo, mock, db := newTestVaultRepo(t)
	defer db.Close()

	// second insert of the same pair affects zero rows and succeeds
	mock.ExpectExec("INSERT OR IGNORE INTO collection_items").
		WithArgs("col-1", "item-1", "col-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.AddItemToCollection(context.Background(), "col-1", "item-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRemoveItemFromCollection_MissingPairIsNoOp(t *testing.T) {
	repo, mock, db := newTestVaultRepo(t)
	defer db.Close()

	mock.ExpectExec("DELETE FROM collection_items").
		WithArgs("col-1", "item-404").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.RemoveItemFromCollection(context.Background(), "col-1", "item-404"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCollectionItems_OrderedByPosition(t *testing.T) {
	repo, mock, db := newTestVaultRepo(t)
	defer db.Close()

	first := models.VaultItem{ID: "item-2", SourceID: 1399, MediaType: models.Series, Title: "Game of Thrones", AddedAt: time.Now()}
	second := models.VaultItem{ID: "item-1", SourceID: 550, MediaType: models.Movie, Title: "Fight Club", AddedAt: time.Now()}

	mock.ExpectQuery("FROM collection_items ci").
		WithArgs("col-1").
		WillReturnRows(itemRows(first, second))
	mock.ExpectQuery("SELECT collection_id, item_id").
		WillReturnRows(sqlmock.NewRows([]string{"collection_id", "item_id"}).
			AddRow("col-1", "item-2").
			AddRow("col-1", "item-1"))

	items, err := repo.CollectionItems(context.Background(), "col-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].ID != "item-2" || items[1].ID != "item-1" {
		t.Errorf("expected membership order preserved, got %s, %s", items[0].ID, items[1].ID)
	}
}
