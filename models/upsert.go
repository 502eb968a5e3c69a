package models

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mmdatafocus/recon_backend/config"
	"github.com/mmdatafocus/recon_backend/utils"
)

// upsertChunkSize bounds the size of a single INSERT ... ON DUPLICATE KEY
// UPDATE statement.
const upsertChunkSize = 200

// upsertInChunks writes the batch inside one transaction, chunked into
// sequential statements. On conflict with the business key only the listed
// columns are overwritten. Any chunk failure rolls the whole batch back and
// surfaces as a client-input error carrying the storage detail.
func upsertInChunks[T any](ctx context.Context, db *gorm.DB, records []*T, conflictColumn string, overwrite []string) error {
	if len(records) == 0 {
		return nil
	}

	tx := db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	for _, batch := range utils.Chunk(records, upsertChunkSize) {
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: conflictColumn}},
			DoUpdates: clause.AssignmentColumns(overwrite),
		}).Create(&batch).Error
		if err != nil {
			logger := config.GetLogger()
			config.LogError(logger, "upsert.go", "upsertInChunks", "tx.Create", nil, err)
			tx.Rollback()
			return utils.NewBadRequest(err)
		}
	}

	if err := tx.Commit().Error; err != nil {
		return utils.NewBadRequest(err)
	}
	return nil
}
