package usecase

import (
	"context"
	"fmt"

	"shareit/internal/data/entity"
	"shareit/internal/data/repository"
	"shareit/internal/dto/request"
	"shareit/internal/dto/response"
	"shareit/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ItemService interface {
	CreateItem(ctx context.Context, ownerID uuid.UUID, req *request.CreateItemRequest) (*response.ItemResponse, error)
	GetItem(ctx context.Context, itemID uuid.UUID) (*response.ItemResponse, error)
	ListOwnerItems(ctx context.Context, ownerID uuid.UUID) ([]*response.ItemResponse, error)
	// UpdateItem applies a partial update. Only the owner may update an item.
	UpdateItem(ctx context.Context, actorID, itemID uuid.UUID, req *request.UpdateItemRequest) (*response.ItemResponse, error)
}

type itemService struct {
	repo *repository.Repository
	now  Clock
	log  *zap.Logger
}

func NewItemService(repo *repository.Repository, clock Clock, log *zap.Logger) ItemService {
	return &itemService{
		repo: repo,
		now:  clock,
		log:  log.With(zap.String("service", "item")),
	}
}

func (s *itemService) CreateItem(ctx context.Context, ownerID uuid.UUID, req *request.CreateItemRequest) (*response.ItemResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create item validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", utils.ErrValidation, utils.FormatValidationErrors(errs))
	}

	owner, err := s.repo.User.FindByID(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("find user %s: %w", ownerID, err)
	}
	if owner == nil {
		return nil, fmt.Errorf("%w: %s", entity.ErrUserNotFound, ownerID)
	}

	now := s.now()
	item := &entity.Item{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:        req.Name,
		Description: req.Description,
		Available:   *req.Available,
		OwnerID:     ownerID,
	}

	if err := s.repo.Item.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}

	s.log.Info("Item created",
		zap.String("item_id", item.ID.String()),
		zap.String("owner_id", ownerID.String()),
	)

	return response.ItemToResponse(item), nil
}

func (s *itemService) GetItem(ctx context.Context, itemID uuid.UUID) (*response.ItemResponse, error) {
	item, err := s.repo.Item.FindByID(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("find item %s: %w", itemID, err)
	}
	if item == nil {
		return nil, fmt.Errorf("%w: %s", entity.ErrItemNotFound, itemID)
	}

	return response.ItemToResponse(item), nil
}

func (s *itemService) ListOwnerItems(ctx context.Context, ownerID uuid.UUID) ([]*response.ItemResponse, error) {
	items, err := s.repo.Item.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list items of owner %s: %w", ownerID, err)
	}

	return response.ItemsToResponse(items), nil
}

func (s *itemService) UpdateItem(ctx context.Context, actorID, itemID uuid.UUID, req *request.UpdateItemRequest) (*response.ItemResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", utils.ErrValidation, utils.FormatValidationErrors(errs))
	}

	item, err := s.repo.Item.FindByID(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("find item %s: %w", itemID, err)
	}
	if item == nil {
		return nil, fmt.Errorf("%w: %s", entity.ErrItemNotFound, itemID)
	}

	// Items report ownership violations openly, unlike bookings.
	if !item.IsOwnedBy(actorID) {
		s.log.Warn("Item update by non-owner rejected",
			zap.String("item_id", itemID.String()),
			zap.String("actor_id", actorID.String()),
		)
		return nil, fmt.Errorf("%w: user %s does not own item %s", entity.ErrForbidden, actorID, itemID)
	}

	updated := false

	if req.Name != nil && *req.Name != item.Name {
		item.Name = *req.Name
		updated = true
	}

	if req.Description != nil && *req.Description != item.Description {
		item.Description = *req.Description
		updated = true
	}

	if req.Available != nil && *req.Available != item.Available {
		item.Available = *req.Available
		updated = true
	}

	if updated {
		item.UpdatedAt = s.now()
		if err := s.repo.Item.Update(ctx, item); err != nil {
			return nil, fmt.Errorf("update item %s: %w", itemID, err)
		}
	}

	s.log.Info("Item updated",
		zap.String("item_id", itemID.String()),
		zap.Bool("was_updated", updated),
	)

	return response.ItemToResponse(item), nil
}
