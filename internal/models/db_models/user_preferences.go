package db_models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

// PreferenceVectorDims must match onboarding.VectorDims.
const PreferenceVectorDims = 29

// StoredPreferences holds the serialized wizard record for one account under
// a single key. TripContext, BudgetRange and Embedding are projections of
// Value kept for search. Upsert conflicts on account_id and clears
// deleted_at, so one live row per account is overwritten in place.
type StoredPreferences struct {
	BaseModel
	AccountID   uuid.UUID       `gorm:"type:uuid;uniqueIndex"`
	Key         string          `gorm:"column:key;size:64"`
	Value       datatypes.JSON  `gorm:"type:jsonb"`
	TripContext pq.StringArray  `gorm:"type:text[]"`
	BudgetRange string          `gorm:"size:32"`
	Embedding   pgvector.Vector `gorm:"type:vector(29)"`
	SearchBrief string
}

func (StoredPreferences) TableName() string {
	return "user_preferences"
}
