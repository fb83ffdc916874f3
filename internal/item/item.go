package item

import (
	"time"

	itemDatamodel "github.com/assetvault/asset-management/internal/core/datamodel/item"
)

// Item is the API view of an equipment record, photos included.
type Item struct {
	ItemID       string  `json:"item_id"`
	Name         string  `json:"name"`
	Quantity     int     `json:"quantity"`
	SerialNo     *string `json:"serial_no"`
	ModelNo      *string `json:"model_no"`
	Department   *string `json:"department"`
	Owner        *string `json:"owner"`
	TransferFrom *string `json:"transfer_from"`
	TransferTo   *string `json:"transfer_to"`
	Notes        *string `json:"notes"`
	Category     *string `json:"category"`
	PhotoURL     *string `json:"photo_url"`
	CreatedBy    *string `json:"created_by"`
	CreatedAt    *string `json:"created_at"`
	Photos       []Photo `json:"photos"`
}

// Photo is the attachment view embedded in item responses.
type Photo struct {
	ID       int64  `json:"id"`
	PhotoURL string `json:"photo_url"`
}

func FromDataModel(m *itemDatamodel.Item, photos []itemDatamodel.Photo) *Item {
	out := &Item{
		ItemID:       m.ItemID,
		Name:         m.Name,
		Quantity:     m.Quantity,
		SerialNo:     m.SerialNo,
		ModelNo:      m.ModelNo,
		Department:   m.Department,
		Owner:        m.Owner,
		TransferFrom: m.TransferFrom,
		TransferTo:   m.TransferTo,
		Notes:        m.Notes,
		Category:     m.Category,
		PhotoURL:     m.PhotoURL,
		CreatedBy:    m.CreatedBy,
		Photos:       make([]Photo, 0, len(photos)),
	}
	if !m.CreatedAt.IsZero() {
		s := m.CreatedAt.Format(time.DateTime)
		out.CreatedAt = &s
	}
	for _, p := range photos {
		out.Photos = append(out.Photos, Photo{ID: p.ID, PhotoURL: p.PhotoURL})
	}
	return out
}
