// Package backup acknowledges backup submissions without persisting them.
package backup

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/gestaopro/gestaopro/internal/platform/httpx"
)

const maxBackupBytes = 8 << 20

// Handler receives backup payloads.
type Handler struct {
	logger *slog.Logger
}

func NewHandler(logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger}
}

// Receive logs the submission and answers 201. Nothing is written anywhere.
func (h *Handler) Receive(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBackupBytes))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}

	h.logger.Info("backup recebido",
		slog.String("timestamp", chi.URLParam(r, "timestamp")),
		slog.Int("bytes", len(body)),
		slog.String("receipt", uuid.NewString()),
	)

	httpx.Message(w, http.StatusCreated, "backup recebido com sucesso")
}
