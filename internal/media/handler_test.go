package media

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) (chi.Router, string) {
	t.Helper()
	dir := t.TempDir()
	h := NewHandler(nil, dir)
	r := chi.NewRouter()
	r.Post("/bancoexterno/upload_audio", h.Upload)
	r.Get("/uploads/{filename}", h.Serve)
	r.Get("/audios/{filename}", h.Lookup)
	return r, dir
}

func multipartBody(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestUploadAndServeRoundTrip(t *testing.T) {
	router, _ := newTestRouter(t)
	audio := []byte("fake mp3 bytes")

	body, contentType := multipartBody(t, "audio", "novo_pedido.mp3", audio)
	req := httptest.NewRequest(http.MethodPost, "/bancoexterno/upload_audio", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp struct {
		URL string `json:"url"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "/uploads/novo_pedido.mp3", resp.URL)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, resp.URL, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, audio, rec.Body.Bytes())
}

func TestUploadSanitizesTraversalNames(t *testing.T) {
	router, _ := newTestRouter(t)
	audio := []byte("payload")

	body, contentType := multipartBody(t, "audio", "../../etc/passwd", audio)
	req := httptest.NewRequest(http.MethodPost, "/bancoexterno/upload_audio", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp struct {
		URL string `json:"url"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "/uploads/passwd", resp.URL)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/uploads/passwd", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, audio, rec.Body.Bytes())
}

func TestUploadRejectsMissingFile(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/bancoexterno/upload_audio", bytes.NewBufferString("{}"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "message")
}

func TestServeUnknownFileIs404(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/uploads/nao_existe.mp3", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLookupReturnsUploadURL(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/audios/alerta_geral.mp3", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"url":"/uploads/alerta_geral.mp3"}`, rec.Body.String())
}
