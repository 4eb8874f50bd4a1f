package ports

import "go.trai.ch/quire/internal/core/domain"

// ExportLedger records the last artifact written for each task.
//
//go:generate go run go.uber.org/mock/mockgen -source=ledger.go -destination=mocks/mock_ledger.go -package=mocks
type ExportLedger interface {
	// Get returns the record for a task, or nil, nil if none exists.
	Get(root, taskID string) (*domain.ExportRecord, error)

	// Put stores a record, replacing the previous one.
	Put(root string, record domain.ExportRecord) error

	// List returns all records under root.
	List(root string) ([]domain.ExportRecord, error)
}
