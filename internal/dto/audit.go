package dto

// AuditLogQuery holds raw query parameters of the admin audit-log listing.
type AuditLogQuery struct {
	Days   string
	Action string
	UserID string
}

type AuditLogResponse struct {
	ID        string `json:"id"`
	Action    string `json:"action"`
	Resource  string `json:"resource"`
	Details   string `json:"details"`
	IP        string `json:"ip"`
	UserID    string `json:"user_id"`
	CreatedAt string `json:"created_at"`
}
