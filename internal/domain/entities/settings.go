package entities

import "time"

// CompanySettings is the per-user letterhead printed on budget documents.
// It is overwritten wholesale on save.
type CompanySettings struct {
	UserID          string    `json:"user_id"`
	CompanyName     string    `json:"company_name"`
	CompanySubtitle string    `json:"company_subtitle"`
	Phone           string    `json:"phone"`
	FooterText      string    `json:"footer_text"`
	UpdatedAt       time.Time `json:"updated_at"`
}
