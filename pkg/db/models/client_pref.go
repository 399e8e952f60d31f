package models

import "time"

// ClientPref is one persisted client preference.
type ClientPref struct {
	Key       string    `gorm:"column:pref_key;primaryKey;size:64"`
	Value     string    `gorm:"column:pref_value;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (ClientPref) TableName() string {
	return "client_prefs"
}
