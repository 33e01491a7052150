package media

import (
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"

	"github.com/gestaopro/gestaopro/internal/platform/httpx"
)

const maxUploadBytes = 32 << 20

// Handler serves the audio upload and retrieval endpoints.
type Handler struct {
	logger *slog.Logger
	dir    string
}

func NewHandler(logger *slog.Logger, dir string) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, dir: dir}
}

type uploadResponse struct {
	URL string `json:"url"`
}

// Upload persists the multipart "audio" field synchronously and answers with
// the retrieval URL. Re-uploading the same filename replaces the blob.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		httpx.Message(w, http.StatusBadRequest, "arquivo de áudio ausente")
		return
	}
	file, header, err := r.FormFile("audio")
	if err != nil {
		httpx.Message(w, http.StatusBadRequest, "arquivo de áudio ausente")
		return
	}
	defer file.Close()

	name := SanitizeFilename(header.Filename)
	if name == "" {
		httpx.Message(w, http.StatusBadRequest, "nome de arquivo vazio")
		return
	}

	dst, err := os.Create(filepath.Join(h.dir, name))
	if err != nil {
		h.logger.Error("create upload file", slog.String("name", name), slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		h.logger.Error("write upload file", slog.String("name", name), slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, uploadResponse{URL: "/uploads/" + name})
}

// Serve streams a stored blob. The filename goes through the same
// sanitization as upload, so a traversal path can never escape the dir.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	name := SanitizeFilename(chi.URLParam(r, "filename"))
	if name == "" {
		httpx.RespondError(w, httpx.ErrNotFound)
		return
	}
	path := filepath.Join(h.dir, name)
	if _, err := os.Stat(path); err != nil {
		httpx.RespondError(w, httpx.ErrNotFound)
		return
	}
	http.ServeFile(w, r, path)
}

// Lookup answers the legacy /audios/{filename} route: it returns the upload
// URL without touching disk.
func (h *Handler) Lookup(w http.ResponseWriter, r *http.Request) {
	name := SanitizeFilename(chi.URLParam(r, "filename"))
	if name == "" {
		httpx.RespondError(w, httpx.ErrNotFound)
		return
	}
	httpx.JSON(w, http.StatusOK, uploadResponse{URL: "/uploads/" + name})
}
