package photo

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/assetvault/asset-management/internal/transport"
	"github.com/assetvault/asset-management/pkg/logger"
)

const maxUploadBytes = 32 << 20

type ServiceAPI interface {
	ListForItem(itemID string) ([]*Photo, error)
	AddPhotos(itemID string, uploads []Upload) ([]*Photo, error)
	DeletePhoto(itemID string, photoID int64) error
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

func (h *Handler) ListForItem(w http.ResponseWriter, r *http.Request) {
	photos, err := h.Service.ListForItem(chi.URLParam(r, "id"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, photos)
}

// AddPhotos handles multipart uploads under the "files" field; a single
// "file" field is accepted as well.
func (h *Handler) AddPhotos(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "id")

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		h.WriteError(w, http.StatusBadRequest, "expected multipart form data")
		return
	}

	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		headers = r.MultipartForm.File["file"]
	}

	uploads := make([]Upload, 0, len(headers))
	closers := make([]func() error, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			h.WriteError(w, http.StatusBadRequest, "could not read uploaded file")
			return
		}
		closers = append(closers, f.Close)
		uploads = append(uploads, Upload{Filename: fh.Filename, Reader: f})
	}
	defer func() {
		for _, c := range closers {
			_ = c()
		}
	}()

	photos, err := h.Service.AddPhotos(itemID, uploads)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, photos)
}

func (h *Handler) DeletePhoto(w http.ResponseWriter, r *http.Request) {
	photoID, err := strconv.ParseInt(chi.URLParam(r, "photoID"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid photo id")
		return
	}

	if err := h.Service.DeletePhoto(chi.URLParam(r, "id"), photoID); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
