package database

import (
	"database/sql"
	"reflect"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var uuidType = reflect.TypeOf(uuid.UUID{})

// MetricsRecorder is an interface for recording database metrics
type MetricsRecorder interface {
	RecordDBQuery(operation, table string, duration time.Duration, err error)
	UpdateDBStats(stats sql.DBStats)
}

// RegisterUUIDCallback assigns UUIDs on insert for databases without a
// server-side uuid default, such as the sqlite used in tests
func RegisterUUIDCallback(db *gorm.DB) {
	db.Callback().Create().Before("gorm:create").Register("app:assign_uuid", func(db *gorm.DB) {
		if db.Statement.Schema == nil {
			return
		}
		field := db.Statement.Schema.LookUpField("ID")
		if field == nil || field.FieldType != uuidType {
			return
		}
		value, zero := field.ValueOf(db.Statement.Context, db.Statement.ReflectValue)
		if !zero {
			if id, ok := value.(uuid.UUID); ok && id != uuid.Nil {
				return
			}
		}
		_ = field.Set(db.Statement.Context, db.Statement.ReflectValue, uuid.New())
	})
}

// RegisterMetricsCallbacks registers GORM callbacks for metrics collection
func RegisterMetricsCallbacks(db *gorm.DB, recorder MetricsRecorder) {
	// Query callbacks
	db.Callback().Query().Before("gorm:query").Register("metrics:query_before", func(db *gorm.DB) {
		db.InstanceSet("query_start_time", time.Now())
	})
	db.Callback().Query().After("gorm:query").Register("metrics:query_after", func(db *gorm.DB) {
		recordQuery(db, recorder, "select")
	})

	// Create callbacks
	db.Callback().Create().Before("gorm:create").Register("metrics:create_before", func(db *gorm.DB) {
		db.InstanceSet("query_start_time", time.Now())
	})
	db.Callback().Create().After("gorm:create").Register("metrics:create_after", func(db *gorm.DB) {
		recordQuery(db, recorder, "insert")
	})

	// Update callbacks
	db.Callback().Update().Before("gorm:update").Register("metrics:update_before", func(db *gorm.DB) {
		db.InstanceSet("query_start_time", time.Now())
	})
	db.Callback().Update().After("gorm:update").Register("metrics:update_after", func(db *gorm.DB) {
		recordQuery(db, recorder, "update")
	})

	// Delete callbacks
	db.Callback().Delete().Before("gorm:delete").Register("metrics:delete_before", func(db *gorm.DB) {
		db.InstanceSet("query_start_time", time.Now())
	})
	db.Callback().Delete().After("gorm:delete").Register("metrics:delete_after", func(db *gorm.DB) {
		recordQuery(db, recorder, "delete")
	})
}

func recordQuery(db *gorm.DB, recorder MetricsRecorder, operation string) {
	startTime, ok := db.InstanceGet("query_start_time")
	if !ok {
		return
	}
	duration := time.Since(startTime.(time.Time))
	table := db.Statement.Table
	if table == "" {
		table = "unknown"
	}
	recorder.RecordDBQuery(operation, table, duration, db.Error)
}

// StartDBStatsCollector starts periodic DB stats collection
func StartDBStatsCollector(db *gorm.DB, recorder MetricsRecorder) chan struct{} {
	done := make(chan struct{})

	go func() {
		ticker := time.NewTicker(15 * time.Second)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				sqlDB, err := db.DB()
				if err != nil {
					continue
				}
				recorder.UpdateDBStats(sqlDB.Stats())
			case <-done:
				return
			}
		}
	}()

	return done
}
