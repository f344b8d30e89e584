package onboarding

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sallyo/pkg/utils"
)

type recorder struct {
	persisted []UserPreferences
	completed []UserPreferences
	exits     int
	failNext  error
}

func (r *recorder) hooks() Hooks {
	return Hooks{
		Persist: func(_ context.Context, p UserPreferences) error {
			if r.failNext != nil {
				err := r.failNext
				r.failNext = nil
				return err
			}
			r.persisted = append(r.persisted, p)
			return nil
		},
		Complete: func(_ context.Context, p UserPreferences) { r.completed = append(r.completed, p) },
		Exit:     func() { r.exits++ },
	}
}

// fill makes the current step ready using the smallest valid input.
func fill(t *testing.T, s *Session) {
	t.Helper()
	switch s.Step().ID {
	case StepTripContext:
		require.NoError(t, s.Toggle(FieldTripContext, "solo"))
	case StepBooking:
		require.NoError(t, s.Select(FieldBookingType, "refundable"))
		require.NoError(t, s.Toggle(FieldPriorities, "price"))
	case StepLocation:
		require.NoError(t, s.Toggle(FieldLocationExperience, "quiet"))
	case StepBudget:
		require.NoError(t, s.Select(FieldBudgetRange, "budget"))
	}
}

func walkTo(t *testing.T, s *Session, step int) {
	t.Helper()
	for s.CurrentStep() < step {
		fill(t, s)
		out, err := s.Advance(context.Background())
		require.NoError(t, err)
		require.Equal(t, OutcomeMoved, out)
	}
}

func TestNewSessionDefaults(t *testing.T) {
	s := NewSession(nil, Hooks{})

	assert.Equal(t, 0, s.CurrentStep())
	assert.Equal(t, 6, s.TotalSteps())
	assert.Equal(t, DefaultPreferences(), s.Preferences())
	assert.False(t, s.Finished())

	raw, err := json.Marshal(s.Preferences())
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"tripContext": [], "guestCount": 2, "connectingRooms": false, "largerRooms": false,
		"amenities": [], "bookingType": "", "priorities": [], "locationExperience": [], "budgetRange": ""
	}`, string(raw))
}

func TestAdvanceBlockedUntilReady(t *testing.T) {
	blockedAt := map[StepID]bool{
		StepTripContext: true,
		StepGuestsRooms: false,
		StepAmenities:   false,
		StepBooking:     true,
		StepLocation:    true,
		StepBudget:      true,
	}

	s := NewSession(nil, Hooks{})
	for i := 0; i < s.TotalSteps()-1; i++ {
		id := s.Step().ID
		if blockedAt[id] {
			before := s.Preferences()
			out, err := s.Advance(context.Background())
			require.NoError(t, err)
			assert.Equal(t, OutcomeBlocked, out, "step %s", id)
			assert.Equal(t, i, s.CurrentStep())
			assert.Equal(t, before, s.Preferences())
		}
		fill(t, s)
		out, err := s.Advance(context.Background())
		require.NoError(t, err)
		assert.Equal(t, OutcomeMoved, out)
		assert.Equal(t, i+1, s.CurrentStep())
	}
}

func TestToggleIsInvolution(t *testing.T) {
	tests := []struct {
		field   Field
		options []Option
		get     func(UserPreferences) []string
	}{
		{FieldTripContext, TripContextOptions, func(p UserPreferences) []string { return p.TripContext }},
		{FieldAmenities, AmenityOptions, func(p UserPreferences) []string { return p.Amenities }},
		{FieldPriorities, PriorityOptions, func(p UserPreferences) []string { return p.Priorities }},
		{FieldLocationExperience, LocationOptions, func(p UserPreferences) []string { return p.LocationExperience }},
	}

	for _, tt := range tests {
		t.Run(string(tt.field), func(t *testing.T) {
			s := NewSession(nil, Hooks{})
			require.NoError(t, s.Toggle(tt.field, tt.options[0].ID))
			before := tt.get(s.Preferences())

			for _, opt := range tt.options {
				require.NoError(t, s.Toggle(tt.field, opt.ID))
				require.NoError(t, s.Toggle(tt.field, opt.ID))
				assert.ElementsMatch(t, before, tt.get(s.Preferences()))
			}
		})
	}
}

func TestToggleRejectsBadInput(t *testing.T) {
	s := NewSession(nil, Hooks{})

	assert.ErrorIs(t, s.Toggle("nope", "x"), utils.ErrUnknownField)
	assert.ErrorIs(t, s.Toggle(FieldBudgetRange, "luxury"), utils.ErrNotSetField)
	assert.ErrorIs(t, s.Toggle(FieldTripContext, "honeymoon"), utils.ErrUnknownOption)
	assert.Empty(t, s.Preferences().TripContext)
}

func TestSelectValidation(t *testing.T) {
	s := NewSession(nil, Hooks{})

	assert.ErrorIs(t, s.Select(FieldBudgetRange, "cheap"), utils.ErrUnknownOption)
	assert.ErrorIs(t, s.Select(FieldBudgetRange, 3), utils.ErrInvalidValue)
	assert.ErrorIs(t, s.Select(FieldGuestCount, 2.5), utils.ErrInvalidValue)
	assert.ErrorIs(t, s.Select(FieldGuestCount, 1e20), utils.ErrInvalidValue)
	assert.ErrorIs(t, s.Select(FieldGuestCount, -1e20), utils.ErrInvalidValue)
	assert.ErrorIs(t, s.Select(FieldGuestCount, math.Inf(1)), utils.ErrInvalidValue)
	assert.Equal(t, DefaultGuestCount, s.Preferences().GuestCount)
	assert.ErrorIs(t, s.Select(FieldLargerRooms, "yes"), utils.ErrInvalidValue)
	assert.ErrorIs(t, s.Select(FieldAmenities, "pool"), utils.ErrNotScalarField)

	require.NoError(t, s.Select(FieldConnectingRooms, true))
	require.NoError(t, s.Select(FieldLargerRooms, true))
	require.NoError(t, s.Select(FieldGuestCount, float64(5)))
	require.NoError(t, s.Select(FieldBookingType, "non-refundable"))
	require.NoError(t, s.Select(FieldBookingType, "refundable"))

	p := s.Preferences()
	assert.True(t, p.ConnectingRooms)
	assert.True(t, p.LargerRooms)
	assert.Equal(t, 5, p.GuestCount)
	assert.Equal(t, BookingRefundable, p.BookingType)
}

func TestGuestCountNeverBelowOne(t *testing.T) {
	for _, start := range []int{1, 2, 7} {
		s := NewSession(nil, Hooks{})
		s.SetGuestCount(start)
		for i := 0; i < start+5; i++ {
			require.NoError(t, s.DecrementGuests())
			assert.GreaterOrEqual(t, s.Preferences().GuestCount, 1)
		}
		assert.Equal(t, 1, s.Preferences().GuestCount)
	}

	s := NewSession(nil, Hooks{})
	require.NoError(t, s.Select(FieldGuestCount, -4))
	assert.Equal(t, 1, s.Preferences().GuestCount)
	for i := 0; i < 50; i++ {
		require.NoError(t, s.IncrementGuests())
	}
	assert.Equal(t, 51, s.Preferences().GuestCount)
}

func TestIncrementGuestsSaturates(t *testing.T) {
	s := NewSession(nil, Hooks{})
	s.SetGuestCount(math.MaxInt)
	require.NoError(t, s.IncrementGuests())
	assert.Equal(t, math.MaxInt, s.Preferences().GuestCount)
}

func TestRetreatFromFirstStepExits(t *testing.T) {
	rec := &recorder{}
	s := NewSession(nil, rec.hooks())

	out, err := s.Retreat()
	require.NoError(t, err)
	assert.Equal(t, OutcomeExited, out)
	assert.Equal(t, 0, s.CurrentStep())
	assert.Equal(t, 1, rec.exits)

	out, err = s.Retreat()
	require.NoError(t, err)
	assert.Equal(t, OutcomeExited, out)
	assert.Equal(t, 2, rec.exits)
}

func TestRetreatSkipsValidation(t *testing.T) {
	rec := &recorder{}
	s := NewSession(nil, rec.hooks())
	walkTo(t, s, 4)

	require.NoError(t, s.Toggle(FieldPriorities, "price"))
	out, err := s.Retreat()
	require.NoError(t, err)
	assert.Equal(t, OutcomeMoved, out)
	assert.Equal(t, 3, s.CurrentStep())
	assert.False(t, s.CanAdvance())
	assert.Zero(t, rec.exits)
}

func TestFinalizeOnceFromLastStep(t *testing.T) {
	rec := &recorder{}
	s := NewSession(nil, rec.hooks())
	walkTo(t, s, 5)
	assert.Empty(t, rec.persisted)

	fill(t, s)
	out, err := s.Advance(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OutcomeFinalized, out)
	assert.True(t, s.Finished())
	require.Len(t, rec.persisted, 1)
	require.Len(t, rec.completed, 1)
	assert.Equal(t, rec.persisted[0], rec.completed[0])

	_, err = s.Advance(context.Background())
	assert.ErrorIs(t, err, utils.ErrSessionEnded)
	_, err = s.Retreat()
	assert.ErrorIs(t, err, utils.ErrSessionEnded)
	assert.ErrorIs(t, s.Toggle(FieldTripContext, "couple"), utils.ErrSessionEnded)
	assert.ErrorIs(t, s.Select(FieldBudgetRange, "luxury"), utils.ErrSessionEnded)
	assert.ErrorIs(t, s.IncrementGuests(), utils.ErrSessionEnded)
	assert.Len(t, rec.completed, 1)
	assert.Equal(t, BudgetBudget, s.Preferences().BudgetRange)
}

func TestCompletionReceivesCopy(t *testing.T) {
	rec := &recorder{}
	s := NewSession(nil, rec.hooks())
	walkTo(t, s, 5)
	fill(t, s)
	_, err := s.Advance(context.Background())
	require.NoError(t, err)

	rec.completed[0].TripContext[0] = "mutated"
	assert.Equal(t, []string{"solo"}, s.Preferences().TripContext)
}

func TestPersistFailureKeepsSessionOpen(t *testing.T) {
	rec := &recorder{failNext: errors.New("disk full")}
	s := NewSession(nil, rec.hooks())
	walkTo(t, s, 5)
	fill(t, s)

	_, err := s.Advance(context.Background())
	require.Error(t, err)
	assert.False(t, s.Finished())
	assert.Equal(t, 5, s.CurrentStep())
	assert.Empty(t, rec.completed)

	out, err := s.Advance(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OutcomeFinalized, out)
	assert.Len(t, rec.completed, 1)
}

func TestProgress(t *testing.T) {
	s := NewSession(nil, Hooks{})
	assert.InDelta(t, 1.0/6, s.ProgressFraction(), 1e-9)
	assert.Equal(t, 17, s.ProgressPercent())

	walkTo(t, s, 5)
	assert.InDelta(t, 1.0, s.ProgressFraction(), 1e-9)
	assert.Equal(t, 100, s.ProgressPercent())
}

func TestCustomStepTable(t *testing.T) {
	steps := []Step{DefaultSteps[5], DefaultSteps[0]}
	rec := &recorder{}
	s := NewSession(steps, rec.hooks())

	assert.Equal(t, 2, s.TotalSteps())
	assert.Equal(t, StepBudget, s.Step().ID)
	require.NoError(t, s.Select(FieldBudgetRange, "premium"))
	out, err := s.Advance(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OutcomeMoved, out)

	require.NoError(t, s.Toggle(FieldTripContext, "business"))
	out, err = s.Advance(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OutcomeFinalized, out)
}

func TestScenarioA(t *testing.T) {
	s := NewSession(nil, Hooks{})
	require.NoError(t, s.Toggle(FieldTripContext, "couple"))
	require.NoError(t, s.Toggle(FieldTripContext, "leisure"))

	out, err := s.Advance(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OutcomeMoved, out)
	assert.Equal(t, 1, s.CurrentStep())

	require.NoError(t, s.Toggle(FieldTripContext, "couple"))
	assert.Equal(t, []string{"leisure"}, s.Preferences().TripContext)
	assert.True(t, s.CanAdvance())
}

func TestScenarioB(t *testing.T) {
	s := NewSession(nil, Hooks{})
	walkTo(t, s, 1)

	require.NoError(t, s.Select(FieldGuestCount, 1))
	require.NoError(t, s.DecrementGuests())
	assert.Equal(t, 1, s.Preferences().GuestCount)
}

func TestScenarioC(t *testing.T) {
	rec := &recorder{}
	s := NewSession(nil, rec.hooks())
	walkTo(t, s, 5)

	out, err := s.Advance(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OutcomeBlocked, out)
	assert.Empty(t, rec.persisted)

	require.NoError(t, s.Select(FieldBudgetRange, "luxury"))
	out, err = s.Advance(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OutcomeFinalized, out)

	require.Len(t, rec.persisted, 1)
	assert.Equal(t, BudgetLuxury, rec.persisted[0].BudgetRange)
	require.Len(t, rec.completed, 1)
	assert.Equal(t, rec.persisted[0], rec.completed[0])
	assert.Equal(t, []string{"solo"}, rec.completed[0].TripContext)
}

func TestScenarioD(t *testing.T) {
	s := NewSession(nil, Hooks{})
	walkTo(t, s, 3)
	assert.False(t, s.CanAdvance())

	require.NoError(t, s.Select(FieldBookingType, "refundable"))
	assert.False(t, s.CanAdvance())
	require.NoError(t, s.Toggle(FieldPriorities, "price"))
	assert.True(t, s.CanAdvance())
	require.NoError(t, s.Toggle(FieldPriorities, "price"))
	assert.False(t, s.CanAdvance())
}

func TestSnapshot(t *testing.T) {
	s := NewSession(nil, Hooks{})
	walkTo(t, s, 3)

	snap := s.Snapshot()
	assert.Equal(t, 3, snap.Step)
	assert.Equal(t, StepBooking, snap.StepID)
	assert.Equal(t, 6, snap.TotalSteps)
	assert.Equal(t, 67, snap.ProgressPercent)
	assert.False(t, snap.CanAdvance)
	assert.False(t, snap.IsLastStep)
	require.Len(t, snap.Fields, 2)
	assert.Equal(t, FieldBookingType, snap.Fields[0].Field)
	assert.Equal(t, KindSet, snap.Fields[1].Kind)
}
