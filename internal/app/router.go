package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/gestaopro/gestaopro/internal/backup"
	"github.com/gestaopro/gestaopro/internal/dispatch"
	"github.com/gestaopro/gestaopro/internal/media"
	"github.com/gestaopro/gestaopro/internal/platform/httpx"
	"github.com/gestaopro/gestaopro/internal/users"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger          *slog.Logger
	Config          *Config
	DispatchHandler *dispatch.Handler
	LoginHandler    *users.Handler
	MediaHandler    *media.Handler
	BackupHandler   *backup.Handler
}

// NewRouter constructs the chi.Router. The literal routes under /bancoexterno
// (login, upload_audio, backups) take precedence over the generic {entity}
// pattern.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(params.Config) {
		r.Use(mw)
	}
	r.Use(chimw.Logger)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httpx.Message(w, http.StatusNotFound, "rota não encontrada")
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/bancoexterno", func(r chi.Router) {
		r.Post("/login", params.LoginHandler.Login)
		r.Post("/upload_audio", params.MediaHandler.Upload)
		r.Post("/backups/{timestamp}", params.BackupHandler.Receive)
		params.DispatchHandler.MountRoutes(r)
	})

	r.Get("/uploads/{filename}", params.MediaHandler.Serve)
	r.Get("/audios/{filename}", params.MediaHandler.Lookup)

	return r
}
