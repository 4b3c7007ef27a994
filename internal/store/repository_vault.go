package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"

	"movievault/internal/logger"
	"movievault/models"
)

type sqliteVaultRepository struct {
	*DB
	logger *logger.Logger
}

func NewSQLiteVaultRepository(db *DB, logger *logger.Logger) VaultRepository {
	return &sqliteVaultRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *sqliteVaultRepository) Items(ctx context.Context) ([]models.VaultItem, error) {
	log := logger.FromContext(ctx)

	rows, err := r.DB.QueryContext(ctx, getAllItems)
	if err != nil {
		log.Err(err).
			Str("func", "sqliteVaultRepository.Items").
			Msg("failed to execute query for getting all vault items")
		return nil, fmt.Errorf("failed to query all vault items: %w", err)
	}
	defer rows.Close()

	var items []models.VaultItem

	for rows.Next() {
		item, scanErr := scanItem(rows)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "sqliteVaultRepository.Items").
				Msg("failed to scan vault item row")
			return nil, fmt.Errorf("failed to scan vault item row: %w", scanErr)
		}
		items = append(items, item)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "sqliteVaultRepository.Items").
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("error iterating vault item rows: %w", rowsErr)
	}

	memberships, err := r.memberships(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		items[i].CollectionIDs = memberships[items[i].ID]
	}

	return items, nil
}

func (r *sqliteVaultRepository) ItemByID(ctx context.Context, itemID string) (models.VaultItem, error) {
	return r.getItem(ctx, "sqliteVaultRepository.ItemByID", getItemByID, itemID)
}

func (r *sqliteVaultRepository) ItemBySource(ctx context.Context, sourceID int64, mediaType models.MediaType) (models.VaultItem, error) {
	return r.getItem(ctx, "sqliteVaultRepository.ItemBySource", getItemBySource, sourceID, string(mediaType))
}

func (r *sqliteVaultRepository) getItem(ctx context.Context, funcName, query string, args ...any) (models.VaultItem, error) {
	log := logger.FromContext(ctx)

	row := r.DB.QueryRowContext(ctx, query, args...)
	item, scanErr := scanItem(row)
	if scanErr != nil {
		if errors.Is(scanErr, sql.ErrNoRows) {
			return models.VaultItem{}, ErrItemNotFound
		}
		log.Err(scanErr).
			Str("func", funcName).
			Msg("failed to scan vault item row")
		return models.VaultItem{}, fmt.Errorf("failed to scan vault item row: %w", scanErr)
	}

	collectionIDs, err := r.itemCollectionIDs(ctx, item.ID)
	if err != nil {
		return models.VaultItem{}, err
	}
	item.CollectionIDs = collectionIDs

	return item, nil
}

func (r *sqliteVaultRepository) SaveItem(ctx context.Context, item models.VaultItem) error {
	log := logger.FromContext(ctx)

	_, err := r.DB.ExecContext(ctx, saveItem,
		item.ID,
		item.SourceID,
		string(item.MediaType),
		item.Title,
		item.PosterPath,
		item.Overview,
		item.ReleaseDate,
		item.Rating,
		item.IsWatched,
		item.AddedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrItemAlreadyExists
		}
		log.Err(err).
			Str("func", "sqliteVaultRepository.SaveItem").
			Str("id", item.ID).
			Msg("failed to execute insert for vault item")
		return fmt.Errorf("failed to save vault item (id=%s): %w", item.ID, err)
	}

	return nil
}

func (r *sqliteVaultRepository) UpdateItem(ctx context.Context, itemID string, update models.VaultItemUpdate) error {
	log := logger.FromContext(ctx)

	if update.IsZero() {
		return nil
	}

	query, args, err := buildUpdateItemQuery(itemID, update)
	if err != nil {
		log.Err(err).
			Str("func", "sqliteVaultRepository.UpdateItem").
			Str("id", itemID).
			Msg("failed to build update query")
		return errors.Join(ErrBuildingSQLQuery, err)
	}

	result, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "sqliteVaultRepository.UpdateItem").
			Str("id", itemID).
			Msg("failed to execute update for vault item")
		return errors.Join(ErrExecutingStatement, err)
	}

	if affected, _ := result.RowsAffected(); affected == 0 {
		return ErrItemNotFound
	}

	return nil
}

func (r *sqliteVaultRepository) DeleteItem(ctx context.Context, itemID string) error {
	log := logger.FromContext(ctx)

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "sqliteVaultRepository.DeleteItem").
			Msg("failed to begin transaction")
		return errors.Join(ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, deleteItemMemberships, itemID); err != nil {
		log.Err(err).
			Str("func", "sqliteVaultRepository.DeleteItem").
			Str("id", itemID).
			Msg("failed to detach vault item from collections")
		return errors.Join(ErrExecutingStatement, err)
	}

	result, err := tx.ExecContext(ctx, deleteItem, itemID)
	if err != nil {
		log.Err(err).
			Str("func", "sqliteVaultRepository.DeleteItem").
			Str("id", itemID).
			Msg("failed to delete vault item")
		return errors.Join(ErrExecutingStatement, err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return ErrItemNotFound
	}

	if err := tx.Commit(); err != nil {
		log.Err(err).
			Str("func", "sqliteVaultRepository.DeleteItem").
			Str("id", itemID).
			Msg("failed to commit transaction")
		return errors.Join(ErrCommitingTransaction, err)
	}

	return nil
}

func (r *sqliteVaultRepository) Collections(ctx context.Context) ([]models.Collection, error) {
	log := logger.FromContext(ctx)

	rows, err := r.DB.QueryContext(ctx, getAllCollections)
	if err != nil {
		log.Err(err).
			Str("func", "sqliteVaultRepository.Collections").
			Msg("failed to execute query for getting all collections")
		return nil, fmt.Errorf("failed to query all collections: %w", err)
	}
	defer rows.Close()

	var collections []models.Collection

	for rows.Next() {
		var c models.Collection
		if scanErr := rows.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt); scanErr != nil {
			log.Err(scanErr).
				Str("func", "sqliteVaultRepository.Collections").
				Msg("failed to scan collection row")
			return nil, fmt.Errorf("failed to scan collection row: %w", scanErr)
		}
		collections = append(collections, c)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "sqliteVaultRepository.Collections").
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("error iterating collection rows: %w", rowsErr)
	}

	memberIDs, err := r.collectionMemberIDs(ctx)
	if err != nil {
		return nil, err
	}
	for i := range collections {
		collections[i].ItemIDs = memberIDs[collections[i].ID]
	}

	return collections, nil
}

func (r *sqliteVaultRepository) CollectionByID(ctx context.Context, collectionID string) (models.Collection, error) {
	log := logger.FromContext(ctx)

	var c models.Collection
	row := r.DB.QueryRowContext(ctx, getCollectionByID, collectionID)
	if scanErr := row.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt); scanErr != nil {
		if errors.Is(scanErr, sql.ErrNoRows) {
			return models.Collection{}, ErrCollectionNotFound
		}
		log.Err(scanErr).
			Str("func", "sqliteVaultRepository.CollectionByID").
			Str("id", collectionID).
			Msg("failed to scan collection row")
		return models.Collection{}, fmt.Errorf("failed to scan collection row: %w", scanErr)
	}

	memberIDs, err := r.collectionMemberIDs(ctx)
	if err != nil {
		return models.Collection{}, err
	}
	c.ItemIDs = memberIDs[c.ID]

	return c, nil
}

func (r *sqliteVaultRepository) SaveCollection(ctx context.Context, collection models.Collection) error {
	log := logger.FromContext(ctx)

	_, err := r.DB.ExecContext(ctx, saveCollection,
		collection.ID,
		collection.Name,
		collection.Description,
		collection.CreatedAt,
	)
	if err != nil {
		log.Err(err).
			Str("func", "sqliteVaultRepository.SaveCollection").
			Str("id", collection.ID).
			Msg("failed to execute insert for collection")
		return fmt.Errorf("failed to save collection (id=%s): %w", collection.ID, err)
	}

	return nil
}

func (r *sqliteVaultRepository) UpdateCollection(ctx context.Context, collectionID string, update models.CollectionUpdate) error {
	log := logger.FromContext(ctx)

	if update.Name == nil && update.Description == nil {
		return nil
	}

	query, args, err := buildUpdateCollectionQuery(collectionID, update)
	if err != nil {
		log.Err(err).
			Str("func", "sqliteVaultRepository.UpdateCollection").
			Str("id", collectionID).
			Msg("failed to build update query")
		return errors.Join(ErrBuildingSQLQuery, err)
	}

	result, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "sqliteVaultRepository.UpdateCollection").
			Str("id", collectionID).
			Msg("failed to execute update for collection")
		return errors.Join(ErrExecutingStatement, err)
	}

	if affected, _ := result.RowsAffected(); affected == 0 {
		return ErrCollectionNotFound
	}

	return nil
}

func (r *sqliteVaultRepository) DeleteCollection(ctx context.Context, collectionID string) error {
	log := logger.FromContext(ctx)

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "sqliteVaultRepository.DeleteCollection").
			Msg("failed to begin transaction")
		return errors.Join(ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, deleteCollectionMemberships, collectionID); err != nil {
		log.Err(err).
			Str("func", "sqliteVaultRepository.DeleteCollection").
			Str("id", collectionID).
			Msg("failed to detach items from collection")
		return errors.Join(ErrExecutingStatement, err)
	}

	result, err := tx.ExecContext(ctx, deleteCollection, collectionID)
	if err != nil {
		log.Err(err).
			Str("func", "sqliteVaultRepository.DeleteCollection").
			Str("id", collectionID).
			Msg("failed to delete collection")
		return errors.Join(ErrExecutingStatement, err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return ErrCollectionNotFound
	}

	if err := tx.Commit(); err != nil {
		log.Err(err).
			Str("func", "sqliteVaultRepository.DeleteCollection").
			Str("id", collectionID).
			Msg("failed to commit transaction")
		return errors.Join(ErrCommitingTransaction, err)
	}

	return nil
}

func (r *sqliteVaultRepository) AddItemToCollection(ctx context.Context, collectionID, itemID string) error {
	log := logger.FromContext(ctx)

	_, err := r.DB.ExecContext(ctx, addMembership, collectionID, itemID, collectionID)
	if err != nil {
		if isForeignKeyViolation(err) {
			// either side of the membership is gone
			if _, lookupErr := r.CollectionByID(ctx, collectionID); lookupErr != nil {
				return lookupErr
			}
			return ErrItemNotFound
		}
		log.Err(err).
			Str("func", "sqliteVaultRepository.AddItemToCollection").
			Str("collection_id", collectionID).
			Str("item_id", itemID).
			Msg("failed to attach item to collection")
		return errors.Join(ErrExecutingStatement, err)
	}

	return nil
}

func (r *sqliteVaultRepository) RemoveItemFromCollection(ctx context.Context, collectionID, itemID string) error {
	log := logger.FromContext(ctx)

	_, err := r.DB.ExecContext(ctx, removeMembership, collectionID, itemID)
	if err != nil {
		log.Err(err).
			Str("func", "sqliteVaultRepository.RemoveItemFromCollection").
			Str("collection_id", collectionID).
			Str("item_id", itemID).
			Msg("failed to detach item from collection")
		return errors.Join(ErrExecutingStatement, err)
	}

	return nil
}

func (r *sqliteVaultRepository) CollectionItems(ctx context.Context, collectionID string) ([]models.VaultItem, error) {
	log := logger.FromContext(ctx)

	rows, err := r.DB.QueryContext(ctx, getCollectionItems, collectionID)
	if err != nil {
		log.Err(err).
			Str("func", "sqliteVaultRepository.CollectionItems").
			Str("collection_id", collectionID).
			Msg("failed to execute query for collection items")
		return nil, fmt.Errorf("failed to query collection items: %w", err)
	}
	defer rows.Close()

	var items []models.VaultItem

	for rows.Next() {
		item, scanErr := scanItem(rows)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "sqliteVaultRepository.CollectionItems").
				Str("collection_id", collectionID).
				Msg("failed to scan vault item row")
			return nil, fmt.Errorf("failed to scan vault item row: %w", scanErr)
		}
		items = append(items, item)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "sqliteVaultRepository.CollectionItems").
			Str("collection_id", collectionID).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("error iterating vault item rows: %w", rowsErr)
	}

	memberships, err := r.memberships(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		items[i].CollectionIDs = memberships[items[i].ID]
	}

	return items, nil
}

// itemCollectionIDs returns the collection ids a single item belongs to.
func (r *sqliteVaultRepository) itemCollectionIDs(ctx context.Context, itemID string) ([]string, error) {
	memberships, err := r.memberships(ctx)
	if err != nil {
		return nil, err
	}
	return memberships[itemID], nil
}

// memberships returns collection ids keyed by item id.
func (r *sqliteVaultRepository) memberships(ctx context.Context) (map[string][]string, error) {
	byItem := map[string][]string{}
	err := r.scanMemberships(ctx, func(collectionID, itemID string) {
		byItem[itemID] = append(byItem[itemID], collectionID)
	})
	return byItem, err
}

// collectionMemberIDs returns item ids keyed by collection id, in membership
// order.
func (r *sqliteVaultRepository) collectionMemberIDs(ctx context.Context) (map[string][]string, error) {
	byCollection := map[string][]string{}
	err := r.scanMemberships(ctx, func(collectionID, itemID string) {
		byCollection[collectionID] = append(byCollection[collectionID], itemID)
	})
	return byCollection, err
}

func (r *sqliteVaultRepository) scanMemberships(ctx context.Context, visit func(collectionID, itemID string)) error {
	log := logger.FromContext(ctx)

	rows, err := r.DB.QueryContext(ctx, getAllMemberships)
	if err != nil {
		log.Err(err).
			Str("func", "sqliteVaultRepository.scanMemberships").
			Msg("failed to execute query for memberships")
		return fmt.Errorf("failed to query memberships: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var collectionID, itemID string
		if scanErr := rows.Scan(&collectionID, &itemID); scanErr != nil {
			log.Err(scanErr).
				Str("func", "sqliteVaultRepository.scanMemberships").
				Msg("failed to scan membership row")
			return fmt.Errorf("failed to scan membership row: %w", scanErr)
		}
		visit(collectionID, itemID)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "sqliteVaultRepository.scanMemberships").
			Msg("error occurred during rows iteration")
		return fmt.Errorf("error iterating membership rows: %w", rowsErr)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (models.VaultItem, error) {
	var item models.VaultItem
	var mediaType string

	err := row.Scan(
		&item.ID,
		&item.SourceID,
		&mediaType,
		&item.Title,
		&item.PosterPath,
		&item.Overview,
		&item.ReleaseDate,
		&item.Rating,
		&item.IsWatched,
		&item.AddedAt,
	)
	if err != nil {
		return models.VaultItem{}, err
	}

	item.MediaType = models.MediaType(mediaType)
	return item, nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) &&
		(sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey)
}

func isForeignKeyViolation(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) &&
		sqliteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey
}
