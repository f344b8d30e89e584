package onboarding

import (
	"slices"
	"strings"
)

// VectorDims is the length of the vector returned by Vector: one slot per
// catalogue option plus guests, connecting rooms and larger rooms.
var VectorDims = len(Dimensions()) + 3

const guestScale = 10

// Vector encodes the record as a fixed-length vector for similarity search.
// Selected options are 1, guests are scaled into [0,1] and saturate at ten.
func (p UserPreferences) Vector() []float32 {
	dims := Dimensions()
	out := make([]float32, 0, len(dims)+3)
	for _, d := range dims {
		var v float32
		if p.selected(d) {
			v = 1
		}
		out = append(out, v)
	}
	out = append(out,
		float32(min(p.GuestCount, guestScale))/guestScale,
		boolToFloat(p.ConnectingRooms),
		boolToFloat(p.LargerRooms),
	)
	return out
}

func (p UserPreferences) selected(dim string) bool {
	for _, f := range []Field{FieldTripContext, FieldAmenities, FieldPriorities, FieldLocationExperience} {
		if id, ok := strings.CutPrefix(dim, string(f)+":"); ok {
			return slices.Contains(*p.setPtr(f), id)
		}
	}
	switch dim {
	case string(FieldBookingType) + ":" + string(p.BookingType),
		string(FieldBudgetRange) + ":" + string(p.BudgetRange):
		return true
	}
	return false
}

func boolToFloat(b bool) float32 {
	if b {
		return 1
	}
	return 0
}
