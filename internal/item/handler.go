package item

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi"

	"github.com/assetvault/asset-management/internal/auth"
	"github.com/assetvault/asset-management/internal/transport"
	"github.com/assetvault/asset-management/pkg/logger"
)

type ServiceAPI interface {
	ListItems() ([]*Item, error)
	SearchItems(q string) ([]*Item, error)
	GetItem(itemID string) (*Item, error)
	GetItemBySerial(serialNo string) (*Item, error)
	CreateItem(dto CreateItemDTO, createdBy string) (*Item, error)
	UpdateItem(itemID string, dto UpdateItemDTO) (*Item, error)
	DeleteItem(itemID string) error
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

func (h *Handler) ListItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.Service.ListItems()
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, items)
}

func (h *Handler) SearchItems(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		h.WriteError(w, http.StatusBadRequest, "query parameter q is required")
		return
	}

	items, err := h.Service.SearchItems(q)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, items)
}

func (h *Handler) GetItem(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "id")

	it, err := h.Service.GetItem(itemID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, it)
}

func (h *Handler) GetItemBySerial(w http.ResponseWriter, r *http.Request) {
	serial := chi.URLParam(r, "serial")

	it, err := h.Service.GetItemBySerial(serial)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, it)
}

func (h *Handler) CreateItem(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	dto, err := decodeCreateItem(r)
	if err != nil {
		h.Logger.Error("CreateItem: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	it, err := h.Service.CreateItem(dto, user.Username)
	if err != nil {
		h.Logger.Error("CreateItem: service error", "error", err, "item_id", dto.ItemID)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("CreateItem: item created", "item_id", it.ItemID, "by", user.Username)
	h.WriteJSON(w, http.StatusCreated, it)
}

// decodeCreateItem accepts multipart/url-encoded form fields (the web
// client) as well as a JSON body.
func decodeCreateItem(r *http.Request) (CreateItemDTO, error) {
	var dto CreateItemDTO

	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "multipart/form-data") || strings.HasPrefix(ct, "application/x-www-form-urlencoded") {
		if strings.HasPrefix(ct, "multipart/form-data") {
			if err := r.ParseMultipartForm(1 << 20); err != nil {
				return dto, err
			}
		} else if err := r.ParseForm(); err != nil {
			return dto, err
		}

		dto.ItemID = r.PostFormValue("item_id")
		dto.Name = r.PostFormValue("name")
		if qty := r.PostFormValue("quantity"); qty != "" {
			n, err := strconv.Atoi(qty)
			if err != nil {
				return dto, err
			}
			dto.Quantity = n
		}
		dto.SerialNo = optionalFormValue(r, "serial_no")
		dto.ModelNo = optionalFormValue(r, "model_no")
		dto.Department = optionalFormValue(r, "department")
		dto.Owner = optionalFormValue(r, "owner")
		dto.TransferFrom = optionalFormValue(r, "transfer_from")
		dto.TransferTo = optionalFormValue(r, "transfer_to")
		dto.Notes = optionalFormValue(r, "notes")
		dto.Category = optionalFormValue(r, "category")
		return dto, nil
	}

	err := json.NewDecoder(r.Body).Decode(&dto)
	return dto, err
}

func optionalFormValue(r *http.Request, key string) *string {
	v := r.PostFormValue(key)
	if v == "" {
		return nil
	}
	return &v
}

func (h *Handler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "id")

	var dto UpdateItemDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	it, err := h.Service.UpdateItem(itemID, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, it)
}

func (h *Handler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "id")

	if err := h.Service.DeleteItem(itemID); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
