package response

import (
	"time"

	"instala_control/internal/domain/entities"
)

type SettingsResponse struct {
	CompanyName     string    `json:"company_name"`
	CompanySubtitle string    `json:"company_subtitle"`
	Phone           string    `json:"phone"`
	FooterText      string    `json:"footer_text"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func FromSettings(s entities.CompanySettings) SettingsResponse {
	return SettingsResponse{
		CompanyName:     s.CompanyName,
		CompanySubtitle: s.CompanySubtitle,
		Phone:           s.Phone,
		FooterText:      s.FooterText,
		UpdatedAt:       s.UpdatedAt,
	}
}
