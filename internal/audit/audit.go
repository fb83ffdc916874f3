package audit

import (
	"time"

	auditDatamodel "github.com/assetvault/asset-management/internal/core/datamodel/audit"
)

// Entry is the API view of one audit row.
type Entry struct {
	ID         int64   `json:"id"`
	EventTime  string  `json:"event_time"`
	Event      string  `json:"event"`
	ItemID     string  `json:"item_id"`
	FromHolder *string `json:"from_holder"`
	ToHolder   *string `json:"to_holder"`
	ByUser     *string `json:"by_user"`
	Notes      *string `json:"notes"`
}

func FromDataModel(m *auditDatamodel.Entry) *Entry {
	return &Entry{
		ID:         m.ID,
		EventTime:  m.EventTime.Format(time.DateTime),
		Event:      m.Event,
		ItemID:     m.ItemID,
		FromHolder: m.FromHolder,
		ToHolder:   m.ToHolder,
		ByUser:     m.ByUser,
		Notes:      m.Notes,
	}
}
