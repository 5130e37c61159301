package repository

import (
	"context"

	"names_demo/internal/model"
)

type RecordRepository interface {
	ListRecords(ctx context.Context) ([]model.Record, error)
}
