package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"sallyo/internal/models/db_models"
)

type PreferencesRepository interface {
	// Upsert writes the row for prefs.AccountID, replacing any earlier value.
	Upsert(ctx context.Context, prefs *db_models.StoredPreferences) error
	FindByAccount(ctx context.Context, accountID uuid.UUID) (*db_models.StoredPreferences, error)
	UpdateSearchBrief(ctx context.Context, accountID uuid.UUID, brief string) error
}

type preferencesRepository struct {
	db *gorm.DB
}

func NewPreferencesRepository(db *gorm.DB) PreferencesRepository {
	return &preferencesRepository{db: db}
}

func (r *preferencesRepository) Upsert(ctx context.Context, prefs *db_models.StoredPreferences) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "account_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"key", "value", "trip_context", "budget_range", "embedding", "search_brief", "updated_at", "deleted_at",
			}),
		}).
		Create(prefs).Error
}

func (r *preferencesRepository) FindByAccount(ctx context.Context, accountID uuid.UUID) (*db_models.StoredPreferences, error) {
	var prefs db_models.StoredPreferences
	err := r.db.WithContext(ctx).Where("account_id = ?", accountID).First(&prefs).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &prefs, nil
}

func (r *preferencesRepository) UpdateSearchBrief(ctx context.Context, accountID uuid.UUID, brief string) error {
	return r.db.WithContext(ctx).
		Model(&db_models.StoredPreferences{}).
		Where("account_id = ?", accountID).
		Update("search_brief", brief).Error
}
