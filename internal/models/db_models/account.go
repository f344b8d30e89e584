package db_models

// Account is a signed-in user. Email is nil for Google accounts whose address
// is unverified or already owned by another account.
type Account struct {
	BaseModel
	Name          string
	Email         *string `gorm:"uniqueIndex"`
	PasswordHash  string
	GoogleSubject *string `gorm:"uniqueIndex"`
	Role          string
}

func (a *Account) EmailAddress() string {
	if a.Email == nil {
		return ""
	}
	return *a.Email
}
