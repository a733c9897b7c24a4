package repository

import (
	"errors"

	"github.com/evsyukovmv/migratekit/internal/models"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("record not found")

type Order string

const (
	OrderASC  Order = "ASC"
	OrderDESC Order = "DESC"
)

func HasMigrationsTable(db *gorm.DB) bool {
	return db.Migrator().HasTable(models.MigrationRecord{}.TableName())
}

func CreateMigrationsTable(db *gorm.DB) error {
	return db.Exec(`
		CREATE TABLE IF NOT EXISTS migrations (
			id SERIAL PRIMARY KEY,
			version TEXT NOT NULL UNIQUE,
			description TEXT NOT NULL,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			checksum TEXT,
			execution_time_ms BIGINT,
			status TEXT NOT NULL DEFAULT 'success'
		)
	`).Error
}

// GetMigrationsSorted returns every tracking record ordered by version.
// Versions are zero-padded digit strings, so lexical order is version order.
func GetMigrationsSorted(db *gorm.DB, order Order) ([]models.MigrationRecord, error) {
	var rows []models.MigrationRecord
	res := db.Order("version " + string(order)).Find(&rows)
	if res.Error != nil {
		return nil, res.Error
	}
	return rows, nil
}

func GetMigration(db *gorm.DB, version models.Version) (models.MigrationRecord, error) {
	var row models.MigrationRecord
	res := db.Where("version = ?", version).First(&row)

	if res.Error != nil {
		switch {
		case errors.Is(res.Error, gorm.ErrRecordNotFound):
			return models.MigrationRecord{}, ErrNotFound
		default:
			return models.MigrationRecord{}, res.Error
		}
	}

	return row, nil
}

type SaveMigrationRequest struct {
	Version     models.Version
	Description string
	Checksum    string
	State       models.MigrationState
}

func InsertMigration(db *gorm.DB, req SaveMigrationRequest) (models.MigrationRecord, error) {
	row := models.MigrationRecord{
		Version:     req.Version,
		Description: req.Description,
		AppliedAt:   models.Now(),
		Checksum:    req.Checksum,
		Status:      req.State,
	}

	err := db.Create(&row).Error
	if err != nil {
		return models.MigrationRecord{}, err
	}
	return row, nil
}

func UpdateMigrationState(db *gorm.DB, record *models.MigrationRecord, state models.MigrationState) error {
	record.Status = state
	return db.Model(record).Update("status", state).Error
}

// UpdateMigrationStateExecuted records the terminal state of an attempt
// together with its measured execution time.
func UpdateMigrationStateExecuted(db *gorm.DB, record *models.MigrationRecord, state models.MigrationState, elapsedMs int64) error {
	record.Status = state
	record.ExecutionTimeMs = &elapsedMs
	return db.Model(record).Updates(map[string]interface{}{
		"status":            state,
		"execution_time_ms": elapsedMs,
	}).Error
}

func DeleteMigration(db *gorm.DB, version models.Version) error {
	return db.Where("version = ?", version).Delete(&models.MigrationRecord{}).Error
}
