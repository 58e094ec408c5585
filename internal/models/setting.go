package models

import "time"

// Setting is a key-value site option
type Setting struct {
	Key       string    `json:"key" db:"key"`
	Value     string    `json:"value" db:"value"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

const (
	SettingBlogTitle       = "blog_title"
	SettingBlogDescription = "blog_description"
)

// WritableSettings defines the keys accepted by POST /api/settings
var WritableSettings = map[string]bool{
	SettingBlogTitle:       true,
	SettingBlogDescription: true,
}

// SettingsUpdateResult reports which submitted keys were applied
type SettingsUpdateResult struct {
	Updated []string
	Ignored []string
}
