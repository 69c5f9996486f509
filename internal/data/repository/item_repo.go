package repository

import (
	"context"
	"errors"
	"fmt"

	"shareit/internal/data/entity"
	"shareit/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Item, error)
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Item, error)
	FindIDsByOwner(ctx context.Context, ownerID uuid.UUID) ([]uuid.UUID, error)
	Update(ctx context.Context, item *entity.Item) error
}

type itemRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewItemRepository(db database.PgxIface, log *zap.Logger) ItemRepository {
	return &itemRepository{
		db:  db,
		log: log.With(zap.String("repository", "item")),
	}
}

func (r *itemRepository) Create(ctx context.Context, item *entity.Item) error {
	query := `
		INSERT INTO items (id, name, description, available, owner_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		item.ID,
		item.Name,
		item.Description,
		item.Available,
		item.OwnerID,
		item.CreatedAt,
		item.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create item",
			zap.Error(err),
			zap.String("name", item.Name),
			zap.String("owner_id", item.OwnerID.String()),
		)
		return fmt.Errorf("create item %s: %w", item.Name, err)
	}

	return nil
}

func (r *itemRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Item, error) {
	query := `
		SELECT id, name, description, available, owner_id, created_at, updated_at
		FROM items
		WHERE id = $1
	`

	item, err := scanItem(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.log.Error("Failed to find item by ID", zap.Error(err), zap.String("item_id", id.String()))
		return nil, fmt.Errorf("find item by id %s: %w", id, err)
	}

	return item, nil
}

func (r *itemRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Item, error) {
	query := `
		SELECT id, name, description, available, owner_id, created_at, updated_at
		FROM items
		WHERE owner_id = $1
		ORDER BY created_at ASC
	`

	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		r.log.Error("Failed to find items by owner", zap.Error(err), zap.String("owner_id", ownerID.String()))
		return nil, fmt.Errorf("find items by owner %s: %w", ownerID, err)
	}
	defer rows.Close()

	var items []*entity.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate items: %w", err)
	}

	return items, nil
}

// FindIDsByOwner returns only the ids, which is all the owner booking listing needs.
func (r *itemRepository) FindIDsByOwner(ctx context.Context, ownerID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx, `SELECT id FROM items WHERE owner_id = $1`, ownerID)
	if err != nil {
		r.log.Error("Failed to find item ids by owner", zap.Error(err), zap.String("owner_id", ownerID.String()))
		return nil, fmt.Errorf("find item ids by owner %s: %w", ownerID, err)
	}

	ids, err := pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
	if err != nil {
		return nil, fmt.Errorf("collect item ids: %w", err)
	}

	return ids, nil
}

func (r *itemRepository) Update(ctx context.Context, item *entity.Item) error {
	query := `
		UPDATE items
		SET name = $2, description = $3, available = $4, updated_at = $5
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		item.ID,
		item.Name,
		item.Description,
		item.Available,
		item.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update item", zap.Error(err), zap.String("item_id", item.ID.String()))
		return fmt.Errorf("update item %s: %w", item.ID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", entity.ErrItemNotFound, item.ID)
	}

	return nil
}

func scanItem(row pgx.Row) (*entity.Item, error) {
	var item entity.Item
	err := row.Scan(
		&item.ID,
		&item.Name,
		&item.Description,
		&item.Available,
		&item.OwnerID,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &item, nil
}
