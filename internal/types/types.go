package types

import (
	"context"

	"github.com/xhad/ltcc/internal/models"
)

// Core interfaces
type LinkCollector interface {
	CollectLinks(ctx context.Context, indexURL string) ([]models.Link, error)
}

type RecordStore interface {
	Store(ctx context.Context, records []models.Record) error
	Close()
}
