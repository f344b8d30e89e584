package onboarding

import (
	"context"
	"fmt"
	"math"

	"sallyo/pkg/utils"
)

type Outcome string

const (
	OutcomeBlocked   Outcome = "blocked"
	OutcomeMoved     Outcome = "moved"
	OutcomeFinalized Outcome = "finalized"
	OutcomeExited    Outcome = "exited"
)

// Hooks are the collaborators a session talks to. Persist runs before Complete
// on finalization; a Persist error keeps the session open on the last step.
type Hooks struct {
	Persist  func(ctx context.Context, prefs UserPreferences) error
	Complete func(ctx context.Context, prefs UserPreferences)
	Exit     func()
}

// Session is one run of the wizard. It is not safe for concurrent use; the
// owner serializes calls.
type Session struct {
	steps    []Step
	hooks    Hooks
	current  int
	prefs    UserPreferences
	finished bool
}

func NewSession(steps []Step, hooks Hooks) *Session {
	if len(steps) == 0 {
		steps = DefaultSteps
	}
	return &Session{
		steps: steps,
		hooks: hooks,
		prefs: DefaultPreferences(),
	}
}

func (s *Session) CurrentStep() int { return s.current }

func (s *Session) TotalSteps() int { return len(s.steps) }

func (s *Session) Step() Step { return s.steps[s.current] }

func (s *Session) Finished() bool { return s.finished }

func (s *Session) Preferences() UserPreferences { return s.prefs.Clone() }

func (s *Session) CanAdvance() bool {
	return s.steps[s.current].Ready(s.prefs)
}

func (s *Session) ProgressFraction() float64 {
	return float64(s.current+1) / float64(len(s.steps))
}

func (s *Session) ProgressPercent() int {
	return int(math.Round(s.ProgressFraction() * 100))
}

// Toggle flips membership of value in a set-valued field.
func (s *Session) Toggle(field Field, value string) error {
	if s.finished {
		return utils.ErrSessionEnded
	}
	spec, ok := fieldSpecs[field]
	if !ok {
		return fmt.Errorf("%w: %q", utils.ErrUnknownField, field)
	}
	if spec.Kind != KindSet {
		return fmt.Errorf("%w: %q", utils.ErrNotSetField, field)
	}
	if !spec.Accepts(value) {
		return fmt.Errorf("%w: %q for %s", utils.ErrUnknownOption, value, field)
	}
	set := s.prefs.setPtr(field)
	*set = toggle(*set, value)
	return nil
}

// Select overwrites a scalar field. Values arrive decoded from JSON, so counts
// may be float64 and enumerations plain strings.
func (s *Session) Select(field Field, value any) error {
	if s.finished {
		return utils.ErrSessionEnded
	}
	spec, ok := fieldSpecs[field]
	if !ok {
		return fmt.Errorf("%w: %q", utils.ErrUnknownField, field)
	}

	switch spec.Kind {
	case KindCount:
		n, ok := asInt(value)
		if !ok {
			return fmt.Errorf("%w: %s expects a whole number", utils.ErrInvalidValue, field)
		}
		s.SetGuestCount(n)
	case KindFlag:
		b, ok := value.(bool)
		if !ok {
			return fmt.Errorf("%w: %s expects a boolean", utils.ErrInvalidValue, field)
		}
		if field == FieldConnectingRooms {
			s.prefs.ConnectingRooms = b
		} else {
			s.prefs.LargerRooms = b
		}
	case KindSingle:
		v, ok := value.(string)
		if !ok {
			return fmt.Errorf("%w: %s expects a string", utils.ErrInvalidValue, field)
		}
		if !spec.Accepts(v) {
			return fmt.Errorf("%w: %q for %s", utils.ErrUnknownOption, v, field)
		}
		if field == FieldBookingType {
			s.prefs.BookingType = BookingType(v)
		} else {
			s.prefs.BudgetRange = BudgetRange(v)
		}
	default:
		return fmt.Errorf("%w: %q", utils.ErrNotScalarField, field)
	}
	return nil
}

// SetGuestCount stores n, clamped to a minimum of one guest.
func (s *Session) SetGuestCount(n int) {
	if s.finished {
		return
	}
	s.prefs.GuestCount = max(1, n)
}

func (s *Session) IncrementGuests() error {
	if s.finished {
		return utils.ErrSessionEnded
	}
	if s.prefs.GuestCount < math.MaxInt {
		s.SetGuestCount(s.prefs.GuestCount + 1)
	}
	return nil
}

func (s *Session) DecrementGuests() error {
	if s.finished {
		return utils.ErrSessionEnded
	}
	s.SetGuestCount(s.prefs.GuestCount - 1)
	return nil
}

// Advance moves to the next step when the current one is ready. On the last
// step it persists the record and hands a copy to the completion hook.
func (s *Session) Advance(ctx context.Context) (Outcome, error) {
	if s.finished {
		return "", utils.ErrSessionEnded
	}
	if !s.CanAdvance() {
		return OutcomeBlocked, nil
	}
	if s.current < len(s.steps)-1 {
		s.current++
		return OutcomeMoved, nil
	}

	final := s.prefs.Clone()
	if s.hooks.Persist != nil {
		if err := s.hooks.Persist(ctx, final); err != nil {
			return "", err
		}
	}
	s.finished = true
	if s.hooks.Complete != nil {
		s.hooks.Complete(ctx, final.Clone())
	}
	return OutcomeFinalized, nil
}

// Retreat goes back one step without validation. From the first step it asks
// the exit hook to leave the wizard and leaves the step untouched.
func (s *Session) Retreat() (Outcome, error) {
	if s.finished {
		return "", utils.ErrSessionEnded
	}
	if s.current > 0 {
		s.current--
		return OutcomeMoved, nil
	}
	if s.hooks.Exit != nil {
		s.hooks.Exit()
	}
	return OutcomeExited, nil
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		if n > math.MaxInt || n < math.MinInt {
			return 0, false
		}
		return int(n), true
	case float64:
		// float64(math.MaxInt) rounds up to 2^63, so the upper bound is exclusive.
		if n != math.Trunc(n) || n >= math.MaxInt || n < math.MinInt {
			return 0, false
		}
		return int(n), true
	}
	return 0, false
}
