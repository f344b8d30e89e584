package onboarding

import "slices"

// PreferencesKey is the storage key the completed record is written under.
const PreferencesKey = "userPreferences"

const DefaultGuestCount = 2

type BookingType string

const (
	BookingUnset         BookingType = ""
	BookingRefundable    BookingType = "refundable"
	BookingNonRefundable BookingType = "non-refundable"
)

type BudgetRange string

const (
	BudgetUnset    BudgetRange = ""
	BudgetBudget   BudgetRange = "budget"
	BudgetMidRange BudgetRange = "mid-range"
	BudgetPremium  BudgetRange = "premium"
	BudgetLuxury   BudgetRange = "luxury"
)

// UserPreferences is the record collected by the wizard. Set-valued fields are
// presence-only; slices keep insertion order so the JSON form is stable.
type UserPreferences struct {
	TripContext        []string    `json:"tripContext"`
	GuestCount         int         `json:"guestCount"`
	ConnectingRooms    bool        `json:"connectingRooms"`
	LargerRooms        bool        `json:"largerRooms"`
	Amenities          []string    `json:"amenities"`
	BookingType        BookingType `json:"bookingType"`
	Priorities         []string    `json:"priorities"`
	LocationExperience []string    `json:"locationExperience"`
	BudgetRange        BudgetRange `json:"budgetRange"`
}

func DefaultPreferences() UserPreferences {
	return UserPreferences{
		TripContext:        []string{},
		GuestCount:         DefaultGuestCount,
		Amenities:          []string{},
		Priorities:         []string{},
		LocationExperience: []string{},
	}
}

// Clone returns a deep copy; callers outside the engine only ever see clones.
func (p UserPreferences) Clone() UserPreferences {
	out := p
	out.TripContext = cloneSet(p.TripContext)
	out.Amenities = cloneSet(p.Amenities)
	out.Priorities = cloneSet(p.Priorities)
	out.LocationExperience = cloneSet(p.LocationExperience)
	return out
}

func (p UserPreferences) Has(field Field, value string) bool {
	set := p.setPtr(field)
	if set == nil {
		return false
	}
	return slices.Contains(*set, value)
}

func (p *UserPreferences) setPtr(field Field) *[]string {
	switch field {
	case FieldTripContext:
		return &p.TripContext
	case FieldAmenities:
		return &p.Amenities
	case FieldPriorities:
		return &p.Priorities
	case FieldLocationExperience:
		return &p.LocationExperience
	}
	return nil
}

func toggle(set []string, value string) []string {
	if i := slices.Index(set, value); i >= 0 {
		return slices.Delete(cloneSet(set), i, i+1)
	}
	return append(cloneSet(set), value)
}

func cloneSet(set []string) []string {
	if set == nil {
		return []string{}
	}
	return slices.Clone(set)
}
