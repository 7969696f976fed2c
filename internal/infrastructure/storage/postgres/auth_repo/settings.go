package auth_repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"agrostock/internal/core/apperror"
	"agrostock/internal/domain/settings"
	"agrostock/internal/infrastructure/storage/postgres"
)

// SettingsRepo implements settings.Repository.
type SettingsRepo struct {
	txm *postgres.TxManager
}

// NewSettingsRepo creates a new settings repository.
func NewSettingsRepo(txm *postgres.TxManager) *SettingsRepo {
	return &SettingsRepo{txm: txm}
}

var _ settings.Repository = (*SettingsRepo)(nil)

const settingsColumns = `
	id, owner_id, dark_mode, auto_backup_enabled, auto_backup_interval,
	auto_backup_max_count, last_backup_time, show_online_users,
	created_at, updated_at
`

// GetByOwner retrieves the settings row for one account.
func (r *SettingsRepo) GetByOwner(ctx context.Context, ownerID int64) (*settings.Settings, error) {
	q := r.txm.GetQuerier(ctx)

	query := `SELECT ` + settingsColumns + ` FROM settings WHERE owner_id = $1`

	var s settings.Settings
	err := q.QueryRow(ctx, query, ownerID).Scan(
		&s.ID, &s.OwnerID, &s.DarkMode, &s.AutoBackupEnabled, &s.AutoBackupInterval,
		&s.AutoBackupMaxCount, &s.LastBackupTime, &s.ShowOnlineUsers,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, apperror.NewNotFound("settings", ownerID)
	}
	if err != nil {
		return nil, fmt.Errorf("query settings: %w", err)
	}

	return &s, nil
}

// Create inserts a settings row. ON CONFLICT keeps the existing row so
// concurrent first reads do not race.
func (r *SettingsRepo) Create(ctx context.Context, s *settings.Settings) error {
	q := r.txm.GetQuerier(ctx)

	query := `
		INSERT INTO settings (
			owner_id, dark_mode, auto_backup_enabled, auto_backup_interval,
			auto_backup_max_count, last_backup_time, show_online_users,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())
		ON CONFLICT (owner_id) DO NOTHING
	`

	_, err := q.Exec(ctx, query,
		s.OwnerID, s.DarkMode, s.AutoBackupEnabled, s.AutoBackupInterval,
		s.AutoBackupMaxCount, s.LastBackupTime, s.ShowOnlineUsers,
	)
	if err != nil {
		return fmt.Errorf("insert settings: %w", err)
	}

	return nil
}

// Update rewrites the settings row for the owner.
func (r *SettingsRepo) Update(ctx context.Context, s *settings.Settings) error {
	q := r.txm.GetQuerier(ctx)

	query := `
		UPDATE settings SET
			dark_mode = $2,
			auto_backup_enabled = $3,
			auto_backup_interval = $4,
			auto_backup_max_count = $5,
			last_backup_time = $6,
			show_online_users = $7,
			updated_at = now()
		WHERE owner_id = $1
	`

	result, err := q.Exec(ctx, query,
		s.OwnerID, s.DarkMode, s.AutoBackupEnabled, s.AutoBackupInterval,
		s.AutoBackupMaxCount, s.LastBackupTime, s.ShowOnlineUsers,
	)
	if err != nil {
		return fmt.Errorf("update settings: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("settings", s.OwnerID)
	}

	return nil
}
