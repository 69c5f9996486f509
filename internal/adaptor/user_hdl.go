package adaptor

import (
	"encoding/json"
	"net/http"

	"shareit/internal/dto/request"
	"shareit/internal/usecase"
	"shareit/pkg/utils"

	"go.uber.org/zap"
)

type UserHandler struct {
	service usecase.UserService
	log     *zap.Logger
}

func NewUserHandler(service usecase.UserService, log *zap.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		log:     log.With(zap.String("handler", "user")),
	}
}

// CreateUser handles POST /users
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req request.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	user, err := h.service.CreateUser(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create user")
		return
	}

	utils.ResponseCreated(w, "User created", user)
}

// GetUser handles GET /users/{id}
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	userID, err := uuidParam(r, "id")
	if err != nil {
		handleServiceError(h.log, w, err, "get user")
		return
	}

	user, err := h.service.GetUser(r.Context(), userID)
	if err != nil {
		handleServiceError(h.log, w, err, "get user")
		return
	}

	utils.ResponseSuccess(w, "success", user)
}
