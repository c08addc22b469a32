package repository

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// softDelete stamps the deleted flag and deleted_at in a single update.
// GORM's DeletedAt scoping then hides the row from every query, keeping the
// invariant that both fields are written only by the persistence layer.
func softDelete(db *gorm.DB, model interface{}, id uuid.UUID) error {
	return db.Model(model).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"deleted":    true,
			"deleted_at": time.Now(),
		}).Error
}
