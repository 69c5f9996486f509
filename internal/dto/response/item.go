package response

import (
	"time"

	"shareit/internal/data/entity"
)

type ItemResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Available   bool      `json:"available"`
	OwnerID     string    `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func ItemToResponse(item *entity.Item) *ItemResponse {
	return &ItemResponse{
		ID:          item.ID.String(),
		Name:        item.Name,
		Description: item.Description,
		Available:   item.Available,
		OwnerID:     item.OwnerID.String(),
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}

func ItemsToResponse(items []*entity.Item) []*ItemResponse {
	result := make([]*ItemResponse, 0, len(items))
	for _, item := range items {
		result = append(result, ItemToResponse(item))
	}
	return result
}
