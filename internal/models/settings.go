package models

// Settings is a singleton record, always stored under the "default" id.
type Settings struct {
	TodayTaskLimit      int    `json:"todayTaskLimit"`
	AutoIncludeDueToday bool   `json:"autoIncludeDueToday"`
	Theme               string `json:"theme"`
	StartOfWeek         int    `json:"startOfWeek"`
}

// DefaultSettings returns the settings new installations start with.
func DefaultSettings() Settings {
	return Settings{
		TodayTaskLimit:      7,
		AutoIncludeDueToday: true,
		Theme:               "dark",
		StartOfWeek:         1,
	}
}
