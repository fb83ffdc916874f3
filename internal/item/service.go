package item

import (
	"log/slog"
	"time"

	"github.com/assetvault/asset-management/internal"
	itemDatamodel "github.com/assetvault/asset-management/internal/core/datamodel/item"
)

// Repository defines the data access methods for items.
type Repository interface {
	List() ([]*itemDatamodel.Item, error)
	Search(q string) ([]*itemDatamodel.Item, error)
	GetByID(itemID string) (*itemDatamodel.Item, error)
	GetBySerial(serialNo string) (*itemDatamodel.Item, error)
	Exists(itemID string) (bool, error)
	Create(m *itemDatamodel.Item) error
	Update(m *itemDatamodel.Item) error
	Delete(itemID string) (int64, error)
	PhotosForItem(itemID string) ([]itemDatamodel.Photo, error)
}

// Service handles item business logic.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) ListItems() ([]*Item, error) {
	rows, err := s.repo.List()
	if err != nil {
		s.logger.Error("failed to list items", "error", err)
		return nil, err
	}
	return s.withPhotos(rows)
}

func (s *Service) SearchItems(q string) ([]*Item, error) {
	rows, err := s.repo.Search(q)
	if err != nil {
		s.logger.Error("item search failed", "error", err, "q", q)
		return nil, err
	}
	return s.withPhotos(rows)
}

func (s *Service) GetItem(itemID string) (*Item, error) {
	m, err := s.repo.GetByID(itemID)
	if err != nil {
		return nil, internal.ErrItemNotFound
	}
	photos, err := s.repo.PhotosForItem(itemID)
	if err != nil {
		s.logger.Error("failed to load item photos", "error", err, "item_id", itemID)
		return nil, err
	}
	return FromDataModel(m, photos), nil
}

func (s *Service) GetItemBySerial(serialNo string) (*Item, error) {
	m, err := s.repo.GetBySerial(serialNo)
	if err != nil {
		return nil, internal.ErrItemNotFound
	}
	photos, err := s.repo.PhotosForItem(m.ItemID)
	if err != nil {
		return nil, err
	}
	return FromDataModel(m, photos), nil
}

func (s *Service) CreateItem(dto CreateItemDTO, createdBy string) (*Item, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	exists, err := s.repo.Exists(dto.ItemID)
	if err != nil {
		s.logger.Error("item existence check failed", "error", err, "item_id", dto.ItemID)
		return nil, err
	}
	if exists {
		return nil, internal.ErrItemExists
	}

	m := &itemDatamodel.Item{
		ItemID:       dto.ItemID,
		Name:         dto.Name,
		Quantity:     dto.Quantity,
		SerialNo:     dto.SerialNo,
		ModelNo:      dto.ModelNo,
		Department:   dto.Department,
		Owner:        dto.Owner,
		TransferFrom: dto.TransferFrom,
		TransferTo:   dto.TransferTo,
		Notes:        dto.Notes,
		Category:     dto.Category,
		CreatedBy:    &createdBy,
		CreatedAt:    time.Now(),
	}

	if err := s.repo.Create(m); err != nil {
		s.logger.Error("failed to create item", "error", err, "item_id", dto.ItemID)
		return nil, err
	}

	s.logger.Info("item created", "item_id", dto.ItemID, "created_by", createdBy)
	return s.GetItem(dto.ItemID)
}

// UpdateItem applies a partial update; omitted fields keep prior values.
func (s *Service) UpdateItem(itemID string, dto UpdateItemDTO) (*Item, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	m, err := s.repo.GetByID(itemID)
	if err != nil {
		return nil, internal.ErrItemNotFound
	}

	if dto.Name != nil {
		m.Name = *dto.Name
	}
	if dto.Quantity != nil {
		m.Quantity = *dto.Quantity
	}
	if dto.SerialNo != nil {
		m.SerialNo = dto.SerialNo
	}
	if dto.ModelNo != nil {
		m.ModelNo = dto.ModelNo
	}
	if dto.Department != nil {
		m.Department = dto.Department
	}
	if dto.Owner != nil {
		m.Owner = dto.Owner
	}
	if dto.TransferFrom != nil {
		m.TransferFrom = dto.TransferFrom
	}
	if dto.TransferTo != nil {
		m.TransferTo = dto.TransferTo
	}
	if dto.Notes != nil {
		m.Notes = dto.Notes
	}
	if dto.Category != nil {
		m.Category = dto.Category
	}

	if err := s.repo.Update(m); err != nil {
		s.logger.Error("failed to update item", "error", err, "item_id", itemID)
		return nil, err
	}

	return s.GetItem(itemID)
}

func (s *Service) DeleteItem(itemID string) error {
	affected, err := s.repo.Delete(itemID)
	if err != nil {
		s.logger.Error("failed to delete item", "error", err, "item_id", itemID)
		return err
	}
	if affected == 0 {
		return internal.ErrItemNotFound
	}
	s.logger.Info("item deleted", "item_id", itemID)
	return nil
}

func (s *Service) withPhotos(rows []*itemDatamodel.Item) ([]*Item, error) {
	out := make([]*Item, 0, len(rows))
	for _, m := range rows {
		photos, err := s.repo.PhotosForItem(m.ItemID)
		if err != nil {
			return nil, err
		}
		out = append(out, FromDataModel(m, photos))
	}
	return out, nil
}
