package models

// NotificationPrefs holds the independent email notification toggles.
type NotificationPrefs struct {
	OrderStatuses   bool `json:"order_statuses"`
	PasswordChanges bool `json:"password_changes"`
	SpecialOffers   bool `json:"special_offers"`
	Newsletter      bool `json:"newsletter"`
}

// Profile is the typed view of the user's stored account data.
// Booleans are real booleans here; the string encoding ("true"/"false")
// happens only at the key-value store boundary.
type Profile struct {
	FirstName     string            `json:"first_name"`
	LastName      string            `json:"last_name"`
	Email         string            `json:"email"`
	Phone         string            `json:"phone"`
	AvatarURL     string            `json:"avatar_url"`
	Notifications NotificationPrefs `json:"notifications"`
}
