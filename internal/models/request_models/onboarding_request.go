package request_models

type ToggleRequest struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value" binding:"required"`
}

// SelectRequest carries the raw JSON value; its type depends on the field
// (number for guestCount, bool for room flags, string otherwise).
type SelectRequest struct {
	Field string      `json:"field" binding:"required"`
	Value interface{} `json:"value"`
}
