package model

import "time"

// Theme is the UI color preference.
type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

// Valid reports whether t is a known theme.
func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark || t == ThemeSystem
}

// Settings is the singleton preferences record.
type Settings struct {
	Currency     string `json:"currency"`
	WeekStartsOn int    `json:"weekStartsOn"` // 0 = Sunday ... 6 = Saturday
	Theme        Theme  `json:"theme"`
	CompanyName  string `json:"companyName"`
	CNPJ         string `json:"cnpj"`
	Email        string `json:"email"`
}

// WeekStart returns WeekStartsOn as a time.Weekday, defaulting to Sunday when out of range.
func (s Settings) WeekStart() time.Weekday {
	if s.WeekStartsOn < 0 || s.WeekStartsOn > 6 {
		return time.Sunday
	}
	return time.Weekday(s.WeekStartsOn)
}

// SettingsPatch is a partial Settings update.
type SettingsPatch struct {
	Currency     *string
	WeekStartsOn *int
	Theme        *Theme
	CompanyName  *string
	CNPJ         *string
	Email        *string
}

// Apply merges the non-nil fields into s.
func (p SettingsPatch) Apply(s Settings) Settings {
	if p.Currency != nil {
		s.Currency = *p.Currency
	}
	if p.WeekStartsOn != nil {
		s.WeekStartsOn = *p.WeekStartsOn
	}
	if p.Theme != nil {
		s.Theme = *p.Theme
	}
	if p.CompanyName != nil {
		s.CompanyName = *p.CompanyName
	}
	if p.CNPJ != nil {
		s.CNPJ = *p.CNPJ
	}
	if p.Email != nil {
		s.Email = *p.Email
	}
	return s
}
