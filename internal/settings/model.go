package settings

import "time"

// Settings is the single-row company configuration. All money in the system
// is stored in CNY; DisplayCurrency and ExchangeRate only drive the
// display-time projection in reports.
type Settings struct {
	CompanyName     string    `json:"company_name"`
	CompanyNameZh   string    `json:"company_name_zh"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	Address         string    `json:"address"`
	DisplayCurrency string    `json:"display_currency"`
	ExchangeRate    float64   `json:"exchange_rate"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Defaults returns the settings used before anything was saved.
func Defaults() Settings {
	return Settings{
		CompanyName:     "SinoBridge Trading Co., Ltd.",
		CompanyNameZh:   "华桥贸易有限公司",
		DisplayCurrency: "USD",
		ExchangeRate:    0.14,
	}
}
