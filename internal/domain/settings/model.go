// Package settings provides per-account preferences with lazy
// defaults: the row is created the first time the account reads or
// writes its settings.
package settings

import (
	"context"
	"time"

	"agrostock/internal/core/apperror"
)

// Settings holds per-account preferences.
type Settings struct {
	ID      int64 `db:"id" json:"id"`
	OwnerID int64 `db:"owner_id" json:"ownerId"`

	DarkMode bool `db:"dark_mode" json:"darkMode"`

	AutoBackupEnabled  bool `db:"auto_backup_enabled" json:"autoBackupEnabled"`
	AutoBackupInterval int  `db:"auto_backup_interval" json:"autoBackupInterval"` // minutes
	AutoBackupMaxCount int  `db:"auto_backup_max_count" json:"autoBackupMaxCount"`

	LastBackupTime *time.Time `db:"last_backup_time" json:"lastBackupTime,omitempty"`

	ShowOnlineUsers bool `db:"show_online_users" json:"showOnlineUsers"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// Defaults returns the settings a fresh account starts with.
func Defaults(ownerID int64) *Settings {
	return &Settings{
		OwnerID:            ownerID,
		DarkMode:           false,
		AutoBackupEnabled:  false,
		AutoBackupInterval: 15,
		AutoBackupMaxCount: 20,
		ShowOnlineUsers:    true,
	}
}

// Validate checks settings invariants.
func (s *Settings) Validate(ctx context.Context) error {
	if s.AutoBackupInterval < 1 {
		return apperror.NewValidation("backup interval must be at least 1 minute").
			WithDetail("field", "autoBackupInterval")
	}
	if s.AutoBackupMaxCount < 1 {
		return apperror.NewValidation("backup count must be at least 1").
			WithDetail("field", "autoBackupMaxCount")
	}
	return nil
}

// Patch describes a partial settings update; nil fields are left
// unchanged.
type Patch struct {
	DarkMode           *bool      `json:"darkMode,omitempty"`
	AutoBackupEnabled  *bool      `json:"autoBackupEnabled,omitempty"`
	AutoBackupInterval *int       `json:"autoBackupInterval,omitempty"`
	AutoBackupMaxCount *int       `json:"autoBackupMaxCount,omitempty"`
	LastBackupTime     *time.Time `json:"lastBackupTime,omitempty"`
	ShowOnlineUsers    *bool      `json:"showOnlineUsers,omitempty"`
}

// Apply merges the patch into the settings.
func (p Patch) Apply(s *Settings) {
	if p.DarkMode != nil {
		s.DarkMode = *p.DarkMode
	}
	if p.AutoBackupEnabled != nil {
		s.AutoBackupEnabled = *p.AutoBackupEnabled
	}
	if p.AutoBackupInterval != nil {
		s.AutoBackupInterval = *p.AutoBackupInterval
	}
	if p.AutoBackupMaxCount != nil {
		s.AutoBackupMaxCount = *p.AutoBackupMaxCount
	}
	if p.LastBackupTime != nil {
		s.LastBackupTime = p.LastBackupTime
	}
	if p.ShowOnlineUsers != nil {
		s.ShowOnlineUsers = *p.ShowOnlineUsers
	}
}
