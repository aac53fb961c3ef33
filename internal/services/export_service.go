package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ci-research/learninghub-service/internal/export"
	"github.com/ci-research/learninghub-service/internal/store"
)

type exportService struct {
	store  *store.Store
	logger *slog.Logger
}

func NewExportService(st *store.Store, logger *slog.Logger) ExportService {
	return &exportService{
		store:  st,
		logger: logger,
	}
}

// SnapshotJSON serializes the complete state, session included, in the
// same shape the local slot stores.
func (s *exportService) SnapshotJSON(ctx context.Context) ([]byte, error) {
	snap := s.store.Snapshot()
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize snapshot: %w", err)
	}

	s.logger.Info("snapshot exported", "bytes", len(data))
	return data, nil
}

func (s *exportService) StatsWorkbook(ctx context.Context) ([]byte, error) {
	snap := s.store.Snapshot()
	data, err := export.BuildWorkbook(snap)
	if err != nil {
		return nil, fmt.Errorf("failed to build workbook: %w", err)
	}

	s.logger.Info("stats workbook exported", "bytes", len(data))
	return data, nil
}
