package onboarding

type StepID string

const (
	StepTripContext StepID = "trip-context"
	StepGuestsRooms StepID = "guests-rooms"
	StepAmenities   StepID = "amenities"
	StepBooking     StepID = "booking"
	StepLocation    StepID = "location"
	StepBudget      StepID = "budget"
)

// Step describes one page of the wizard. Ready decides whether the user may
// move past it and only reads the fields the step owns.
type Step struct {
	ID       StepID
	Title    string
	Subtitle string
	Fields   []Field
	Optional bool
	Ready    func(p UserPreferences) bool
}

// DefaultSteps is the wizard in display order. Reordering or dropping entries
// here is enough to change the flow.
var DefaultSteps = []Step{
	{
		ID:       StepTripContext,
		Title:    "What's your trip about?",
		Subtitle: "Tell us about your travel style",
		Fields:   []Field{FieldTripContext},
		Ready:    func(p UserPreferences) bool { return len(p.TripContext) > 0 },
	},
	{
		ID:       StepGuestsRooms,
		Title:    "Room & Guest Details",
		Subtitle: "Let's set up your perfect stay",
		Fields:   []Field{FieldGuestCount, FieldConnectingRooms, FieldLargerRooms},
		Ready:    func(p UserPreferences) bool { return p.GuestCount > 0 },
	},
	{
		ID:       StepAmenities,
		Title:    "What amenities matter?",
		Subtitle: "Choose what makes your stay special",
		Fields:   []Field{FieldAmenities},
		Optional: true,
		Ready:    func(UserPreferences) bool { return true },
	},
	{
		ID:       StepBooking,
		Title:    "Booking Preferences",
		Subtitle: "How do you like to book?",
		Fields:   []Field{FieldBookingType, FieldPriorities},
		Ready: func(p UserPreferences) bool {
			return p.BookingType != BookingUnset && len(p.Priorities) > 0
		},
	},
	{
		ID:       StepLocation,
		Title:    "Location & Experience",
		Subtitle: "Where do you want to be?",
		Fields:   []Field{FieldLocationExperience},
		Ready:    func(p UserPreferences) bool { return len(p.LocationExperience) > 0 },
	},
	{
		ID:       StepBudget,
		Title:    "What's your budget?",
		Subtitle: "Choose your comfort level",
		Fields:   []Field{FieldBudgetRange},
		Ready:    func(p UserPreferences) bool { return p.BudgetRange != BudgetUnset },
	},
}
