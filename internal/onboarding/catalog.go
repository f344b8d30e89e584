package onboarding

// Field names a single attribute of UserPreferences, using its JSON key.
type Field string

const (
	FieldTripContext        Field = "tripContext"
	FieldGuestCount         Field = "guestCount"
	FieldConnectingRooms    Field = "connectingRooms"
	FieldLargerRooms        Field = "largerRooms"
	FieldAmenities          Field = "amenities"
	FieldBookingType        Field = "bookingType"
	FieldPriorities         Field = "priorities"
	FieldLocationExperience Field = "locationExperience"
	FieldBudgetRange        Field = "budgetRange"
)

type FieldKind string

const (
	KindSet    FieldKind = "set"
	KindSingle FieldKind = "single"
	KindCount  FieldKind = "count"
	KindFlag   FieldKind = "flag"
)

type Option struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// FieldSpec describes how a field is edited and which values it accepts.
// Options is empty for counts and flags.
type FieldSpec struct {
	Field   Field     `json:"field"`
	Label   string    `json:"label"`
	Kind    FieldKind `json:"kind"`
	Options []Option  `json:"options,omitempty"`
}

var (
	TripContextOptions = []Option{
		{ID: "solo", Label: "Solo"},
		{ID: "couple", Label: "Couple"},
		{ID: "family", Label: "Family with kids"},
		{ID: "friends", Label: "Group of friends"},
		{ID: "business", Label: "Business"},
		{ID: "leisure", Label: "Leisure"},
		{ID: "special", Label: "Special occasion"},
	}

	AmenityOptions = []Option{
		{ID: "breakfast", Label: "Breakfast"},
		{ID: "pool", Label: "Pool"},
		{ID: "gym", Label: "Gym"},
		{ID: "spa", Label: "Spa"},
		{ID: "kids-club", Label: "Kids Club"},
		{ID: "pet-friendly", Label: "Pet-friendly"},
	}

	BookingTypeOptions = []Option{
		{ID: string(BookingRefundable), Label: "Refundable (flexible)"},
		{ID: string(BookingNonRefundable), Label: "Non-refundable (better price)"},
	}

	PriorityOptions = []Option{
		{ID: "price", Label: "Price"},
		{ID: "location", Label: "Location"},
		{ID: "comfort", Label: "Comfort"},
	}

	LocationOptions = []Option{
		{ID: "city-center", Label: "City center"},
		{ID: "quiet", Label: "Quiet area"},
		{ID: "attractions", Label: "Near attractions"},
		{ID: "local", Label: "Local experiences"},
	}

	BudgetOptions = []Option{
		{ID: string(BudgetBudget), Label: "Budget"},
		{ID: string(BudgetMidRange), Label: "Mid-range"},
		{ID: string(BudgetPremium), Label: "Premium"},
		{ID: string(BudgetLuxury), Label: "Luxury"},
	}
)

var fieldSpecs = map[Field]FieldSpec{
	FieldTripContext:        {Field: FieldTripContext, Label: "What's your trip about?", Kind: KindSet, Options: TripContextOptions},
	FieldGuestCount:         {Field: FieldGuestCount, Label: "Number of Guests", Kind: KindCount},
	FieldConnectingRooms:    {Field: FieldConnectingRooms, Label: "Connecting rooms", Kind: KindFlag},
	FieldLargerRooms:        {Field: FieldLargerRooms, Label: "Larger rooms/suites", Kind: KindFlag},
	FieldAmenities:          {Field: FieldAmenities, Label: "What amenities matter?", Kind: KindSet, Options: AmenityOptions},
	FieldBookingType:        {Field: FieldBookingType, Label: "Booking Type", Kind: KindSingle, Options: BookingTypeOptions},
	FieldPriorities:         {Field: FieldPriorities, Label: "What matters most?", Kind: KindSet, Options: PriorityOptions},
	FieldLocationExperience: {Field: FieldLocationExperience, Label: "Where do you want to be?", Kind: KindSet, Options: LocationOptions},
	FieldBudgetRange:        {Field: FieldBudgetRange, Label: "What's your budget?", Kind: KindSingle, Options: BudgetOptions},
}

func LookupField(name string) (FieldSpec, bool) {
	spec, ok := fieldSpecs[Field(name)]
	return spec, ok
}

func (s FieldSpec) Accepts(value string) bool {
	for _, o := range s.Options {
		if o.ID == value {
			return true
		}
	}
	return false
}

// Dimensions lists every enumerated option of the set and single fields in a
// fixed order. It is the basis of the preference vector.
func Dimensions() []string {
	groups := []struct {
		field   Field
		options []Option
	}{
		{FieldTripContext, TripContextOptions},
		{FieldAmenities, AmenityOptions},
		{FieldBookingType, BookingTypeOptions},
		{FieldPriorities, PriorityOptions},
		{FieldLocationExperience, LocationOptions},
		{FieldBudgetRange, BudgetOptions},
	}
	var dims []string
	for _, g := range groups {
		for _, o := range g.options {
			dims = append(dims, string(g.field)+":"+o.ID)
		}
	}
	return dims
}
