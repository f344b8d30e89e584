package response_models

type AccountLoginResponse struct {
	Token     string `json:"token"`
	AccountID string `json:"account_id"`
	Name      string `json:"name"`
	IsNew     bool   `json:"is_new"`
}

// AccountResponse backs the dashboard placeholder.
type AccountResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Onboarded bool   `json:"onboarded"`
}
