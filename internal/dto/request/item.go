package request

type CreateItemRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=255"`
	Description string `json:"description" validate:"max=512"`
	Available   *bool  `json:"available" validate:"required"`
}

type UpdateItemRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=512"`
	Available   *bool   `json:"available,omitempty"`
}
