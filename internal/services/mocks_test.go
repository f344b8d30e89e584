package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"sallyo/internal/models/db_models"
	"sallyo/internal/onboarding"
)

type MockPreferencesRepository struct {
	mock.Mock
}

func (m *MockPreferencesRepository) Upsert(ctx context.Context, prefs *db_models.StoredPreferences) error {
	args := m.Called(ctx, prefs)
	return args.Error(0)
}

func (m *MockPreferencesRepository) FindByAccount(ctx context.Context, accountID uuid.UUID) (*db_models.StoredPreferences, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*db_models.StoredPreferences), args.Error(1)
}

func (m *MockPreferencesRepository) UpdateSearchBrief(ctx context.Context, accountID uuid.UUID, brief string) error {
	args := m.Called(ctx, accountID, brief)
	return args.Error(0)
}

type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) InsertTx(account *db_models.Account, ctx context.Context) error {
	args := m.Called(account, ctx)
	return args.Error(0)
}

func (m *MockAccountRepository) Update(ctx context.Context, account *db_models.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) FindById(ctx context.Context, id uuid.UUID) (*db_models.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*db_models.Account), args.Error(1)
}

func (m *MockAccountRepository) FindByEmail(ctx context.Context, email string) (*db_models.Account, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*db_models.Account), args.Error(1)
}

func (m *MockAccountRepository) FindByGoogleSubject(ctx context.Context, subject string) (*db_models.Account, error) {
	args := m.Called(ctx, subject)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*db_models.Account), args.Error(1)
}

type MockGoogleVerifier struct {
	mock.Mock
}

func (m *MockGoogleVerifier) Verify(ctx context.Context, rawIDToken string) (GoogleIdentity, error) {
	args := m.Called(ctx, rawIDToken)
	return args.Get(0).(GoogleIdentity), args.Error(1)
}

type MockTextClient struct {
	mock.Mock
}

func (m *MockTextClient) Complete(ctx context.Context, system, prompt string) (string, error) {
	args := m.Called(ctx, system, prompt)
	return args.String(0), args.Error(1)
}

type recordingCompletion struct {
	accounts []uuid.UUID
	prefs    []onboarding.UserPreferences
}

func (r *recordingCompletion) HandOff(_ context.Context, accountID uuid.UUID, prefs onboarding.UserPreferences) {
	r.accounts = append(r.accounts, accountID)
	r.prefs = append(r.prefs, prefs)
}
