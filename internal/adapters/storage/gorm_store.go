package storage

import (
	"context"
	stderrors "errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"weathernow.app/pkg/errors"
)

// PreferenceModel is the database representation of one preference slot
type PreferenceModel struct {
	Key       string `gorm:"primaryKey;column:key"`
	Value     string `gorm:"column:value;not null"`
	UpdatedAt time.Time
}

// TableName specifies the table name for GORM
func (PreferenceModel) TableName() string {
	return "preferences"
}

// GormStore implements the KeyValueStore port on a relational database
// through GORM. Works with both the sqlite and postgres drivers.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store and runs its migration
func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if db == nil {
		return nil, errors.NewConfigurationError("database handle cannot be nil", nil)
	}

	if err := db.AutoMigrate(&PreferenceModel{}); err != nil {
		return nil, errors.NewStorageError("migrate preferences table", err)
	}

	return &GormStore{db: db}, nil
}

func (s *GormStore) Get(ctx context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, errors.NewValidationError("store key cannot be empty")
	}

	var pref PreferenceModel
	err := s.db.WithContext(ctx).First(&pref, "key = ?", key).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, errors.NewStorageError("read preference", err)
	}

	return pref.Value, true, nil
}

func (s *GormStore) Put(ctx context.Context, key, value string) error {
	if key == "" {
		return errors.NewValidationError("store key cannot be empty")
	}

	pref := PreferenceModel{Key: key, Value: value, UpdatedAt: time.Now()}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&pref).Error
	if err != nil {
		return errors.NewStorageError("write preference", err)
	}

	return nil
}

func (s *GormStore) Remove(ctx context.Context, key string) error {
	if key == "" {
		return errors.NewValidationError("store key cannot be empty")
	}

	if err := s.db.WithContext(ctx).Delete(&PreferenceModel{}, "key = ?", key).Error; err != nil {
		return errors.NewStorageError("remove preference", err)
	}

	return nil
}

// Close releases the underlying database connection
func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
