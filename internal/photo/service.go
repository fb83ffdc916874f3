package photo

import (
	"log/slog"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/assetvault/asset-management/internal"
	itemDatamodel "github.com/assetvault/asset-management/internal/core/datamodel/item"
)

// Repository defines the data access methods for item photos.
type Repository interface {
	Insert(p *itemDatamodel.Photo) error
	GetByID(id int64) (*itemDatamodel.Photo, error)
	ListForItem(itemID string) ([]itemDatamodel.Photo, error)
	CountForItem(itemID string) (int64, error)
	Delete(id int64) (int64, error)
}

// ItemStore is the slice of the item repository the photo service needs
// to verify ownership and maintain the legacy cover photo column.
type ItemStore interface {
	GetByID(itemID string) (*itemDatamodel.Item, error)
	Update(m *itemDatamodel.Item) error
}

// Service handles photo upload, storage and removal.
type Service struct {
	repo      Repository
	items     ItemStore
	store     FileStore
	publicURL string
	logger    *slog.Logger
}

func NewService(repo Repository, items ItemStore, store FileStore, publicURL string, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		items:     items,
		store:     store,
		publicURL: strings.TrimRight(publicURL, "/"),
		logger:    logger,
	}
}

// ListForItem returns an item's photos in upload order.
func (s *Service) ListForItem(itemID string) ([]*Photo, error) {
	if _, err := s.items.GetByID(itemID); err != nil {
		return nil, internal.ErrItemNotFound
	}

	rows, err := s.repo.ListForItem(itemID)
	if err != nil {
		s.logger.Error("failed to list item photos", "error", err, "item_id", itemID)
		return nil, err
	}

	out := make([]*Photo, 0, len(rows))
	for i := range rows {
		out = append(out, FromDataModel(&rows[i]))
	}
	return out, nil
}

// AddPhotos processes and stores uploads for an item, returning the
// item's full photo list afterwards. Every payload is sniffed and
// re-encoded; a rejected file fails the whole request before anything
// is written.
func (s *Service) AddPhotos(itemID string, uploads []Upload) ([]*Photo, error) {
	if len(uploads) == 0 {
		return nil, internal.NewValidationError("No files uploaded", internal.ErrCodeValidationFailed)
	}

	item, err := s.items.GetByID(itemID)
	if err != nil {
		return nil, internal.ErrItemNotFound
	}

	existing, err := s.repo.CountForItem(itemID)
	if err != nil {
		s.logger.Error("failed to count item photos", "error", err, "item_id", itemID)
		return nil, err
	}
	if existing+int64(len(uploads)) > MaxPhotosPerItem {
		return nil, internal.NewValidationError("Max 5 photos per item", internal.ErrCodePhotoLimit)
	}

	processed := make([][]byte, 0, len(uploads))
	for _, up := range uploads {
		data, err := processImage(up.Reader)
		if err != nil {
			s.logger.Warn("rejected photo upload", "item_id", itemID, "filename", up.Filename, "error", err)
			return nil, internal.ErrNotAnImage
		}
		processed = append(processed, data)
	}

	out := make([]*Photo, 0, len(processed))
	for _, data := range processed {
		name := uuid.NewString() + ".jpg"
		if err := s.store.Save(name, data); err != nil {
			s.logger.Error("failed to store photo", "error", err, "item_id", itemID)
			return nil, internal.NewInternalError("Could not store photo", err)
		}

		row := &itemDatamodel.Photo{
			ItemID:   itemID,
			PhotoURL: s.publicURL + "/" + name,
		}
		if err := s.repo.Insert(row); err != nil {
			// The file is already on disk; clean it up so disk and DB agree.
			if rmErr := s.store.Remove(name); rmErr != nil {
				s.logger.Warn("failed to remove orphaned photo file", "error", rmErr, "file", name)
			}
			s.logger.Error("failed to insert photo row", "error", err, "item_id", itemID)
			return nil, err
		}
		out = append(out, FromDataModel(row))
	}

	// The first photo ever uploaded becomes the item's cover.
	if item.PhotoURL == nil && len(out) > 0 {
		item.PhotoURL = &out[0].PhotoURL
		if err := s.items.Update(item); err != nil {
			s.logger.Warn("failed to set item cover photo", "error", err, "item_id", itemID)
		}
	}

	s.logger.Info("photos added", "item_id", itemID, "count", len(out))

	all, err := s.repo.ListForItem(itemID)
	if err != nil {
		s.logger.Error("failed to list item photos", "error", err, "item_id", itemID)
		return nil, err
	}
	result := make([]*Photo, 0, len(all))
	for i := range all {
		result = append(result, FromDataModel(&all[i]))
	}
	return result, nil
}

// DeletePhoto removes the database row and best-effort deletes the file.
// The photo must belong to the given item; a mismatched pair is treated
// as not found.
func (s *Service) DeletePhoto(itemID string, photoID int64) error {
	row, err := s.repo.GetByID(photoID)
	if err != nil {
		return internal.ErrPhotoNotFound
	}
	if row.ItemID != itemID {
		return internal.ErrPhotoNotFound
	}

	affected, err := s.repo.Delete(photoID)
	if err != nil {
		s.logger.Error("failed to delete photo row", "error", err, "photo_id", photoID)
		return err
	}
	if affected == 0 {
		return internal.ErrPhotoNotFound
	}

	// Missing files are not an error; the row is already gone.
	if name := path.Base(row.PhotoURL); name != "" && name != "." {
		if err := s.store.Remove(name); err != nil {
			s.logger.Warn("failed to remove photo file", "error", err, "photo_id", photoID, "file", name)
		}
	}

	// Clear the cover reference if it pointed at the removed photo.
	if item, err := s.items.GetByID(row.ItemID); err == nil {
		if item.PhotoURL != nil && *item.PhotoURL == row.PhotoURL {
			item.PhotoURL = nil
			if err := s.items.Update(item); err != nil {
				s.logger.Warn("failed to clear item cover photo", "error", err, "item_id", row.ItemID)
			}
		}
	}

	s.logger.Info("photo deleted", "photo_id", photoID)
	return nil
}
