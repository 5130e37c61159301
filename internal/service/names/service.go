package names

import (
	"context"

	"go.uber.org/zap"

	"names_demo/internal/model"
	"names_demo/internal/repository"
)

type Service struct {
	store repository.RecordRepository
	log   *zap.Logger
}

func NewService(store repository.RecordRepository, logger *zap.Logger) *Service {
	return &Service{store: store, log: logger}
}

func (s *Service) List(ctx context.Context) ([]model.Record, error) {
	records, err := s.store.ListRecords(ctx)
	if err != nil {
		s.log.Error("store list records failed", zap.Error(err))
		return nil, err
	}
	return records, nil
}
