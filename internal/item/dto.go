package item

import "errors"

// CreateItemDTO carries the fields of a new item. The web client posts
// these as form fields; JSON bodies carry the same names.
type CreateItemDTO struct {
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
}

func (dto CreateItemDTO) Validate() error {
	if dto.ItemID == "" {
		return errors.New("item_id is required")
	}
	if dto.Name == "" {
		return errors.New("name is required")
	}
	if dto.Quantity < 0 {
		return errors.New("quantity cannot be negative")
	}
	return nil
}

// UpdateItemDTO is a partial update; nil fields keep their stored value.
type UpdateItemDTO struct {
	Name         *string `json:"name"`
	Quantity     *int    `json:"quantity"`
	SerialNo     *string `json:"serial_no"`
	ModelNo      *string `json:"model_no"`
	Department   *string `json:"department"`
	Owner        *string `json:"owner"`
	TransferFrom *string `json:"transfer_from"`
	TransferTo   *string `json:"transfer_to"`
	Notes        *string `json:"notes"`
	Category     *string `json:"category"`
}

func (dto UpdateItemDTO) Validate() error {
	if dto.Name != nil && *dto.Name == "" {
		return errors.New("name cannot be empty")
	}
	if dto.Quantity != nil && *dto.Quantity < 0 {
		return errors.New("quantity cannot be negative")
	}
	return nil
}
