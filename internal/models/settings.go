package models

// Settings is a singleton row (id = 1) holding the application display name.
type Settings struct {
	ID      uint   `json:"-" gorm:"primaryKey"`
	AppName string `json:"appName" gorm:"not null" validate:"required,min=1"`
}

func (Settings) TableName() string {
	return "settings"
}

// SettingsID is the fixed primary key of the singleton settings row.
const SettingsID uint = 1

// DefaultAppName is served when the settings row is missing and seeded on
// first run.
const DefaultAppName = "Esthétique Quiz"
