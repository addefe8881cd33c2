// Package storage selects a StorageManager implementation from config.
package storage

import (
	"github.com/quantlab/stockdash/internal/common"
	"github.com/quantlab/stockdash/internal/config"
	"github.com/quantlab/stockdash/internal/interfaces"
	"github.com/quantlab/stockdash/internal/storage/badger"
)

// NewStorageManager creates a new storage manager based on config.
func NewStorageManager(logger *common.Logger, cfg *config.Config) (interfaces.StorageManager, error) {
	return badger.NewManager(logger, &cfg.Storage.Badger)
}
