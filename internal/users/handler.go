package users

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gestaopro/gestaopro/internal/platform/httpx"
	"github.com/gestaopro/gestaopro/internal/shared"
)

// Handler serves the login endpoint.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, service: service}
}

type loginResponse struct {
	Message string         `json:"message"`
	User    map[string]any `json:"user"`
}

// Login checks the submitted credential pair and returns the user record on
// success, 401 otherwise.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %v", httpx.ErrValidation, err))
		return
	}
	if err := shared.ValidateStruct(req); err != nil {
		httpx.RespondError(w, err)
		return
	}

	user, err := h.service.Authenticate(r.Context(), req.Username, req.PasswordHash)
	if err != nil {
		h.logger.Warn("login recusado", slog.String("username", req.Username))
		httpx.RespondError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, loginResponse{
		Message: "login realizado com sucesso",
		User:    user.Payload(),
	})
}
