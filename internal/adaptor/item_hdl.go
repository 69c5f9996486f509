package adaptor

import (
	"encoding/json"
	"net/http"

	"shareit/internal/dto/request"
	"shareit/internal/usecase"
	"shareit/pkg/utils"

	"go.uber.org/zap"
)

type ItemHandler struct {
	service usecase.ItemService
	log     *zap.Logger
}

func NewItemHandler(service usecase.ItemService, log *zap.Logger) *ItemHandler {
	return &ItemHandler{
		service: service,
		log:     log.With(zap.String("handler", "item")),
	}
}

// CreateItem handles POST /items
func (h *ItemHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Actor required")
		return
	}

	var req request.CreateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	item, err := h.service.CreateItem(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create item")
		return
	}

	utils.ResponseCreated(w, "Item created", item)
}

// GetItem handles GET /items/{id}
func (h *ItemHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := uuidParam(r, "id")
	if err != nil {
		handleServiceError(h.log, w, err, "get item")
		return
	}

	item, err := h.service.GetItem(r.Context(), itemID)
	if err != nil {
		handleServiceError(h.log, w, err, "get item")
		return
	}

	utils.ResponseSuccess(w, "success", item)
}

// ListOwnerItems handles GET /items
func (h *ItemHandler) ListOwnerItems(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Actor required")
		return
	}

	items, err := h.service.ListOwnerItems(r.Context(), userID)
	if err != nil {
		handleServiceError(h.log, w, err, "list items")
		return
	}

	utils.ResponseSuccess(w, "success", items)
}

// UpdateItem handles PATCH /items/{id}
func (h *ItemHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Actor required")
		return
	}

	itemID, err := uuidParam(r, "id")
	if err != nil {
		handleServiceError(h.log, w, err, "update item")
		return
	}

	var req request.UpdateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	item, err := h.service.UpdateItem(r.Context(), userID, itemID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update item")
		return
	}

	utils.ResponseSuccess(w, "Item updated", item)
}
