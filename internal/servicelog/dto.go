package servicelog

import (
	"errors"
	"time"
)

// CreateRecordDTO logs one maintenance event. ServiceDate defaults to
// today when omitted.
type CreateRecordDTO struct {
	ServiceDate *string `json:"service_date"`
	Serviced    bool    `json:"serviced"`
	Location    *string `json:"location"`
	Notes       *string `json:"notes"`
}

func (dto CreateRecordDTO) Validate() error {
	if dto.ServiceDate != nil && *dto.ServiceDate != "" {
		if _, err := time.Parse(DateLayout, *dto.ServiceDate); err != nil {
			return errors.New("service_date must be YYYY-MM-DD")
		}
	}
	return nil
}
