package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"sallyo/internal/onboarding"
	"sallyo/internal/repositories"
	"sallyo/pkg/utils"
)

// CompletionHandler receives the finished record of a wizard session.
type CompletionHandler interface {
	HandOff(ctx context.Context, accountID uuid.UUID, prefs onboarding.UserPreferences)
}

const briefSystemPrompt = `You turn hotel-booking preferences into one short search brief for a hotel search engine.
Answer with a single sentence under 40 words. No markdown, no lists.`

type SearchBriefService struct {
	client    utils.TextClientInterface
	prefsRepo repositories.PreferencesRepository
	timeout   time.Duration
	logger    *zap.Logger
}

// NewSearchBriefService builds the completion hand-off. client may be nil, in
// which case the brief is built from a template.
func NewSearchBriefService(
	client utils.TextClientInterface,
	prefsRepo repositories.PreferencesRepository,
	timeout time.Duration,
	logger *zap.Logger,
) *SearchBriefService {
	return &SearchBriefService{
		client:    client,
		prefsRepo: prefsRepo,
		timeout:   timeout,
		logger:    logger,
	}
}

func (s *SearchBriefService) HandOff(ctx context.Context, accountID uuid.UUID, prefs onboarding.UserPreferences) {
	brief := s.Brief(ctx, prefs)
	if err := s.prefsRepo.UpdateSearchBrief(ctx, accountID, brief); err != nil {
		s.logger.Warn("store search brief failed", zap.String("account_id", accountID.String()), zap.Error(err))
		return
	}
	s.logger.Info("search brief ready", zap.String("account_id", accountID.String()))
}

// Brief asks the language model for a search brief and falls back to the
// template when no model is configured or the call fails.
func (s *SearchBriefService) Brief(ctx context.Context, prefs onboarding.UserPreferences) string {
	if s.client == nil {
		return TemplateBrief(prefs)
	}

	raw, err := json.Marshal(prefs)
	if err != nil {
		return TemplateBrief(prefs)
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	out, err := s.client.Complete(ctx, briefSystemPrompt, "Preferences (JSON):\n"+string(raw))
	if err != nil || out == "" {
		s.logger.Warn("llm search brief failed, using template", zap.Error(err))
		return TemplateBrief(prefs)
	}
	return out
}

func TemplateBrief(p onboarding.UserPreferences) string {
	var b strings.Builder

	guests := "guests"
	if p.GuestCount == 1 {
		guests = "guest"
	}
	fmt.Fprintf(&b, "%s hotel for %d %s", budgetLabel(p.BudgetRange), p.GuestCount, guests)
	if len(p.TripContext) > 0 {
		fmt.Fprintf(&b, " on a %s trip", strings.Join(labels(onboarding.TripContextOptions, p.TripContext), "/"))
	}
	if len(p.LocationExperience) > 0 {
		fmt.Fprintf(&b, ", %s", strings.ToLower(strings.Join(labels(onboarding.LocationOptions, p.LocationExperience), " or ")))
	}
	if len(p.Amenities) > 0 {
		fmt.Fprintf(&b, ", with %s", strings.ToLower(strings.Join(labels(onboarding.AmenityOptions, p.Amenities), ", ")))
	}

	var rooms []string
	if p.ConnectingRooms {
		rooms = append(rooms, "connecting rooms")
	}
	if p.LargerRooms {
		rooms = append(rooms, "larger rooms or suites")
	}
	if len(rooms) > 0 {
		fmt.Fprintf(&b, ", %s", strings.Join(rooms, " and "))
	}

	if p.BookingType != onboarding.BookingUnset {
		fmt.Fprintf(&b, ", %s rate", p.BookingType)
	}
	if len(p.Priorities) > 0 {
		fmt.Fprintf(&b, ", prioritising %s", strings.ToLower(strings.Join(labels(onboarding.PriorityOptions, p.Priorities), " and ")))
	}
	b.WriteString(".")
	return b.String()
}

func budgetLabel(b onboarding.BudgetRange) string {
	for _, o := range onboarding.BudgetOptions {
		if o.ID == string(b) {
			return o.Label
		}
	}
	return "Any"
}

func labels(options []onboarding.Option, ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		label := id
		for _, o := range options {
			if o.ID == id {
				label = o.Label
				break
			}
		}
		out = append(out, label)
	}
	return out
}
