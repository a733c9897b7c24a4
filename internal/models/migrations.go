package models

type MigrationState string

const (
	StateRunning MigrationState = "running"
	StateSuccess MigrationState = "success"
	StateFailed  MigrationState = "failed"
)

type MigrationRecord struct {
	Id              uint32  `gorm:"primaryKey"`
	Version         Version `gorm:"uniqueIndex"`
	Description     string
	AppliedAt       CustomTime `gorm:"type:timestamp"`
	Checksum        string
	ExecutionTimeMs *int64
	Status          MigrationState
}

func (v MigrationRecord) TableName() string {
	return "migrations"
}
