package audit

import (
	"log/slog"

	auditDatamodel "github.com/assetvault/asset-management/internal/core/datamodel/audit"
)

// Repository defines the data access for audit entries. The log is
// append-only; there is no update or delete.
type Repository interface {
	Insert(e *auditDatamodel.Entry) error
	List() ([]*auditDatamodel.Entry, error)
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// ListEntries returns the full log, newest first.
func (s *Service) ListEntries() ([]*Entry, error) {
	rows, err := s.repo.List()
	if err != nil {
		s.logger.Error("failed to list audit entries", "error", err)
		return nil, err
	}
	out := make([]*Entry, 0, len(rows))
	for _, m := range rows {
		out = append(out, FromDataModel(m))
	}
	return out, nil
}

// Record appends one entry. Failures are reported but must not abort
// the caller's own work once its transaction has committed.
func (s *Service) Record(e *auditDatamodel.Entry) error {
	if err := s.repo.Insert(e); err != nil {
		s.logger.Error("failed to record audit entry", "error", err, "event", e.Event, "item_id", e.ItemID)
		return err
	}
	return nil
}
