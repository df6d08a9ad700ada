package request

import "instala_control/internal/domain/entities"

type SettingsRequest struct {
	CompanyName     string `json:"company_name"`
	CompanySubtitle string `json:"company_subtitle"`
	Phone           string `json:"phone"`
	FooterText      string `json:"footer_text"`
}

func (r SettingsRequest) ToEntity() entities.CompanySettings {
	return entities.CompanySettings{
		CompanyName:     r.CompanyName,
		CompanySubtitle: r.CompanySubtitle,
		Phone:           r.Phone,
		FooterText:      r.FooterText,
	}
}
