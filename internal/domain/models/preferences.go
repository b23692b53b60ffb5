package models

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// UserPreferences is stored whole; updates arrive as PreferencesUpdate.
type UserPreferences struct {
	PreferredCities   []string `json:"preferredCities"`
	PreferredBusTypes []string `json:"preferredBusTypes"`
	Theme             Theme    `json:"theme"`
	Notifications     bool     `json:"notifications"`
}

func DefaultPreferences() UserPreferences {
	return UserPreferences{
		PreferredCities:   []string{},
		PreferredBusTypes: []string{},
		Theme:             ThemeLight,
		Notifications:     true,
	}
}

// PreferencesUpdate supports PATCH-style updates via key presence.
type PreferencesUpdate struct {
	PreferredCities   *[]string `json:"preferredCities"`
	PreferredBusTypes *[]string `json:"preferredBusTypes"`
	Theme             *Theme    `json:"theme"`
	Notifications     *bool     `json:"notifications"`
}

// Apply merges the present fields over p.
func (u PreferencesUpdate) Apply(p UserPreferences) UserPreferences {
	if u.PreferredCities != nil {
		p.PreferredCities = append([]string{}, (*u.PreferredCities)...)
	}
	if u.PreferredBusTypes != nil {
		p.PreferredBusTypes = append([]string{}, (*u.PreferredBusTypes)...)
	}
	if u.Theme != nil {
		p.Theme = *u.Theme
	}
	if u.Notifications != nil {
		p.Notifications = *u.Notifications
	}
	return p
}
