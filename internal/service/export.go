package service

import (
	"time"

	"github.com/templui/goalpost/internal/repository"
)

// Export is the downloadable copy of the whole application state.
type Export struct {
	ExportedAt time.Time `json:"exportedAt"`
	repository.Snapshot
}

type ExportService struct {
	repo repository.SnapshotRepository
	now  func() time.Time
}

func NewExportService(repo repository.SnapshotRepository) *ExportService {
	return &ExportService{
		repo: repo,
		now:  time.Now,
	}
}

func (s *ExportService) Export() Export {
	return Export{
		ExportedAt: s.now().UTC(),
		Snapshot:   s.repo.Snapshot(),
	}
}
