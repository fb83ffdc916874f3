package servicelog

import (
	"time"

	servicelogDatamodel "github.com/assetvault/asset-management/internal/core/datamodel/servicelog"
)

// Record is the API view of one maintenance event.
type Record struct {
	ID          int64   `json:"id"`
	ItemID      string  `json:"item_id"`
	ServiceDate string  `json:"service_date"`
	Serviced    bool    `json:"serviced"`
	Location    *string `json:"location"`
	Notes       *string `json:"notes"`
	CreatedBy   *string `json:"created_by"`
	CreatedAt   *string `json:"created_at"`
}

// OverviewRow is one line of the fleet service table.
type OverviewRow struct {
	ItemID          string  `json:"item_id"`
	Name            string  `json:"name"`
	SerialNo        *string `json:"serial_no"`
	Department      *string `json:"department"`
	LastServiceDate *string `json:"last_service_date"`
	RecordCount     int64   `json:"record_count"`
	Status          string  `json:"status"`
}

func FromDataModel(m *servicelogDatamodel.Record) *Record {
	out := &Record{
		ID:          m.ID,
		ItemID:      m.ItemID,
		ServiceDate: m.ServiceDate,
		Serviced:    m.Serviced,
		Location:    m.Location,
		Notes:       m.Notes,
		CreatedBy:   m.CreatedBy,
	}
	if !m.CreatedAt.IsZero() {
		s := m.CreatedAt.Format(time.DateTime)
		out.CreatedAt = &s
	}
	return out
}
