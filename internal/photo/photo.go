package photo

import (
	"io"

	itemDatamodel "github.com/assetvault/asset-management/internal/core/datamodel/item"
)

// MaxPhotosPerItem caps how many attachments a single item may carry.
const MaxPhotosPerItem = 5

// Photo is the API view of a stored attachment.
type Photo struct {
	ID       int64  `json:"id"`
	ItemID   string `json:"item_id"`
	PhotoURL string `json:"photo_url"`
}

// Upload is one file received from a multipart request.
type Upload struct {
	Filename string
	Reader   io.Reader
}

func FromDataModel(m *itemDatamodel.Photo) *Photo {
	return &Photo{
		ID:       m.ID,
		ItemID:   m.ItemID,
		PhotoURL: m.PhotoURL,
	}
}
