package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"sallyo/internal/models/db_models"
	"sallyo/internal/models/response_models"
	"sallyo/internal/onboarding"
	"sallyo/internal/repositories"
	mem "sallyo/pkg/memcache"
	"sallyo/pkg/utils"
)

type OnboardingServiceInterface interface {
	Steps() []response_models.StepResponse
	Start(ctx context.Context, accountID uuid.UUID) (response_models.SessionResponse, error)
	Get(ctx context.Context, accountID uuid.UUID, sessionID string) (response_models.SessionResponse, error)
	Toggle(ctx context.Context, accountID uuid.UUID, sessionID, field, value string) (response_models.SessionResponse, error)
	Select(ctx context.Context, accountID uuid.UUID, sessionID, field string, value interface{}) (response_models.SessionResponse, error)
	IncrementGuests(ctx context.Context, accountID uuid.UUID, sessionID string) (response_models.SessionResponse, error)
	DecrementGuests(ctx context.Context, accountID uuid.UUID, sessionID string) (response_models.SessionResponse, error)
	Advance(ctx context.Context, accountID uuid.UUID, sessionID string) (response_models.SessionResponse, error)
	Retreat(ctx context.Context, accountID uuid.UUID, sessionID string) (response_models.SessionResponse, error)
	GetPreferences(ctx context.Context, accountID uuid.UUID) (response_models.PreferencesResponse, error)
}

// WizardSession is a registry entry: one engine session plus its owner.
type WizardSession struct {
	mu        sync.Mutex
	accountID uuid.UUID
	engine    *onboarding.Session
}

type OnboardingService struct {
	sessions   mem.Store[*WizardSession]
	byAccount  mem.Store[string]
	prefsRepo  repositories.PreferencesRepository
	completion CompletionHandler
	steps      []onboarding.Step
	ttl        time.Duration
	logger     *zap.Logger
}

func NewOnboardingService(
	sessions mem.Store[*WizardSession],
	prefsRepo repositories.PreferencesRepository,
	completion CompletionHandler,
	ttl time.Duration,
	logger *zap.Logger,
) *OnboardingService {
	return &OnboardingService{
		sessions:   sessions,
		byAccount:  mem.NewTTLStore[string](),
		prefsRepo:  prefsRepo,
		completion: completion,
		steps:      onboarding.DefaultSteps,
		ttl:        ttl,
		logger:     logger,
	}
}

func (o *OnboardingService) Steps() []response_models.StepResponse {
	out := make([]response_models.StepResponse, 0, len(o.steps))
	for i, step := range o.steps {
		out = append(out, response_models.StepResponse{
			Index:    i,
			ID:       step.ID,
			Title:    step.Title,
			Subtitle: step.Subtitle,
			Optional: step.Optional,
			Fields:   onboarding.StepFields(step),
		})
	}
	return out
}

// Start opens a fresh wizard for the account. An earlier open session of the
// same account is discarded.
func (o *OnboardingService) Start(ctx context.Context, accountID uuid.UUID) (response_models.SessionResponse, error) {
	if previous, ok := o.byAccount.Consume(accountID.String()); ok {
		o.sessions.Consume(previous)
		o.logger.Debug("superseded onboarding session", zap.String("session_id", previous))
	}

	sessionID := uuid.New().String()
	ws := &WizardSession{accountID: accountID}
	ws.engine = onboarding.NewSession(o.steps, onboarding.Hooks{
		Persist: func(ctx context.Context, prefs onboarding.UserPreferences) error {
			return o.persist(ctx, accountID, prefs)
		},
		Complete: func(ctx context.Context, prefs onboarding.UserPreferences) {
			if o.completion != nil {
				o.completion.HandOff(ctx, accountID, prefs)
			}
		},
		Exit: func() {
			o.logger.Info("onboarding exited from first step", zap.String("session_id", sessionID))
		},
	})

	o.sessions.Set(sessionID, ws, o.ttl)
	o.byAccount.Set(accountID.String(), sessionID, o.ttl)
	o.logger.Info("onboarding session started",
		zap.String("session_id", sessionID), zap.String("account_id", accountID.String()))

	return response_models.SessionResponse{SessionID: sessionID, Snapshot: ws.engine.Snapshot()}, nil
}

func (o *OnboardingService) Get(ctx context.Context, accountID uuid.UUID, sessionID string) (response_models.SessionResponse, error) {
	return o.with(accountID, sessionID, func(s *onboarding.Session) (onboarding.Outcome, error) {
		return "", nil
	})
}

func (o *OnboardingService) Toggle(ctx context.Context, accountID uuid.UUID, sessionID, field, value string) (response_models.SessionResponse, error) {
	return o.with(accountID, sessionID, func(s *onboarding.Session) (onboarding.Outcome, error) {
		return "", s.Toggle(onboarding.Field(field), value)
	})
}

func (o *OnboardingService) Select(ctx context.Context, accountID uuid.UUID, sessionID, field string, value interface{}) (response_models.SessionResponse, error) {
	return o.with(accountID, sessionID, func(s *onboarding.Session) (onboarding.Outcome, error) {
		return "", s.Select(onboarding.Field(field), value)
	})
}

func (o *OnboardingService) IncrementGuests(ctx context.Context, accountID uuid.UUID, sessionID string) (response_models.SessionResponse, error) {
	return o.with(accountID, sessionID, func(s *onboarding.Session) (onboarding.Outcome, error) {
		return "", s.IncrementGuests()
	})
}

func (o *OnboardingService) DecrementGuests(ctx context.Context, accountID uuid.UUID, sessionID string) (response_models.SessionResponse, error) {
	return o.with(accountID, sessionID, func(s *onboarding.Session) (onboarding.Outcome, error) {
		return "", s.DecrementGuests()
	})
}

func (o *OnboardingService) Advance(ctx context.Context, accountID uuid.UUID, sessionID string) (response_models.SessionResponse, error) {
	return o.with(accountID, sessionID, func(s *onboarding.Session) (onboarding.Outcome, error) {
		return s.Advance(ctx)
	})
}

func (o *OnboardingService) Retreat(ctx context.Context, accountID uuid.UUID, sessionID string) (response_models.SessionResponse, error) {
	return o.with(accountID, sessionID, func(s *onboarding.Session) (onboarding.Outcome, error) {
		return s.Retreat()
	})
}

func (o *OnboardingService) GetPreferences(ctx context.Context, accountID uuid.UUID) (response_models.PreferencesResponse, error) {
	stored, err := o.prefsRepo.FindByAccount(ctx, accountID)
	if err != nil {
		return response_models.PreferencesResponse{}, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if stored == nil {
		return response_models.PreferencesResponse{}, utils.ErrPreferencesNotFound
	}

	prefs := onboarding.DefaultPreferences()
	if err := json.Unmarshal(stored.Value, &prefs); err != nil {
		return response_models.PreferencesResponse{}, fmt.Errorf("decode stored preferences: %w", err)
	}
	return response_models.PreferencesResponse{
		Key:         stored.Key,
		Preferences: prefs,
		SearchBrief: stored.SearchBrief,
		UpdatedAt:   stored.UpdatedAt,
	}, nil
}

// with runs fn against the account's session under the session lock. Sessions
// that finish or exit are removed from the registry afterwards.
func (o *OnboardingService) with(
	accountID uuid.UUID,
	sessionID string,
	fn func(s *onboarding.Session) (onboarding.Outcome, error),
) (response_models.SessionResponse, error) {
	ws, ok := o.sessions.Peek(sessionID)
	if !ok || ws.accountID != accountID {
		return response_models.SessionResponse{}, utils.ErrSessionNotFound
	}

	ws.mu.Lock()
	defer ws.mu.Unlock()

	outcome, err := fn(ws.engine)
	if err != nil {
		return response_models.SessionResponse{}, err
	}

	switch outcome {
	case onboarding.OutcomeFinalized, onboarding.OutcomeExited:
		o.sessions.Consume(sessionID)
		if current, ok := o.byAccount.Peek(accountID.String()); ok && current == sessionID {
			o.byAccount.Consume(accountID.String())
		}
		o.logger.Info("onboarding session closed",
			zap.String("session_id", sessionID), zap.String("outcome", string(outcome)))
	default:
		o.sessions.Touch(sessionID, o.ttl)
		o.byAccount.Touch(accountID.String(), o.ttl)
	}

	return response_models.SessionResponse{
		SessionID: sessionID,
		Outcome:   outcome,
		Snapshot:  ws.engine.Snapshot(),
	}, nil
}

func (o *OnboardingService) persist(ctx context.Context, accountID uuid.UUID, prefs onboarding.UserPreferences) error {
	raw, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}

	row := &db_models.StoredPreferences{
		AccountID:   accountID,
		Key:         onboarding.PreferencesKey,
		Value:       datatypes.JSON(raw),
		TripContext: prefs.TripContext,
		BudgetRange: string(prefs.BudgetRange),
		Embedding:   pgvector.NewVector(prefs.Vector()),
	}
	if err := o.prefsRepo.Upsert(ctx, row); err != nil {
		return fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	o.logger.Info("preferences saved", zap.String("account_id", accountID.String()))
	return nil
}

// Sweep evicts expired sessions and account pointers.
func (o *OnboardingService) Sweep() int {
	o.byAccount.Sweep()
	return o.sessions.Sweep()
}
