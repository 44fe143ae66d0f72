package dto

type SettingsResponse struct {
	Currency          string  `json:"currency"`
	Timezone          string  `json:"timezone"`
	NotificationEmail string  `json:"notification_email"`
	AlertLimit        float64 `json:"alert_limit"`
}

// UpdateSettingsRequest is a partial patch: nil fields stay untouched.
// AlertLimit is untyped so numbers and numeric strings both coerce.
type UpdateSettingsRequest struct {
	Currency          *string `json:"currency"`
	Timezone          *string `json:"timezone"`
	NotificationEmail *string `json:"notification_email"`
	AlertLimit        any     `json:"alert_limit"`
}
