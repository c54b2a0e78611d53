package repository

import (
	"context"
	"database/sql"
	"fmt"

	"fieldops/internal/domain"
	"fieldops/internal/errors"
)

type MySQLSettingsRepository struct {
	db *sql.DB
}

func NewMySQLSettingsRepository(db *sql.DB) *MySQLSettingsRepository {
	return &MySQLSettingsRepository{db: db}
}

const settingsColumns = `id, masterId, masterPaid, masterBalance, curator, company, isActive, createdAt, updatedAt`

func scanSettings(row interface{ Scan(...interface{}) error }) (*domain.ProfitSettings, error) {
	var settings domain.ProfitSettings
	var masterID sql.NullInt64
	err := row.Scan(
		&settings.ID, &masterID, &settings.MasterPaid, &settings.MasterBalance,
		&settings.Curator, &settings.Company, &settings.IsActive,
		&settings.CreatedAt, &settings.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if masterID.Valid {
		id := uint(masterID.Int64)
		settings.MasterID = &id
	}
	return &settings, nil
}

// ResolveForMaster returns the active individual settings for the master if
// present, the global record otherwise. NotFoundError when neither exists.
func (r *MySQLSettingsRepository) ResolveForMaster(ctx context.Context, masterID uint) (*domain.ProfitSettings, error) {
	query := `
		SELECT ` + settingsColumns + `
		FROM ProfitSettings
		WHERE masterId = ? AND isActive = 1
	`

	settings, err := scanSettings(r.db.QueryRowContext(ctx, query, masterID))
	if err == nil {
		return settings, nil
	}
	if err != sql.ErrNoRows {
		return nil, fmt.Errorf("querying individual profit settings: %w", err)
	}

	return r.FindGlobal(ctx)
}

func (r *MySQLSettingsRepository) FindGlobal(ctx context.Context) (*domain.ProfitSettings, error) {
	query := `
		SELECT ` + settingsColumns + `
		FROM ProfitSettings
		WHERE masterId IS NULL AND isActive = 1
	`

	settings, err := scanSettings(r.db.QueryRowContext(ctx, query))
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError("global profit settings not found")
	}
	if err != nil {
		return nil, fmt.Errorf("querying global profit settings: %w", err)
	}

	return settings, nil
}

// UpsertForMaster creates or replaces the individual settings record for a
// master.
func (r *MySQLSettingsRepository) UpsertForMaster(ctx context.Context, masterID uint, settings domain.ProfitSettings) error {
	query := `
		INSERT INTO ProfitSettings (masterId, masterPaid, masterBalance, curator, company, isActive)
		VALUES (?, ?, ?, ?, ?, 1)
		ON DUPLICATE KEY UPDATE
			masterPaid = VALUES(masterPaid),
			masterBalance = VALUES(masterBalance),
			curator = VALUES(curator),
			company = VALUES(company),
			isActive = 1
	`

	_, err := r.db.ExecContext(ctx, query,
		masterID, settings.MasterPaid, settings.MasterBalance, settings.Curator, settings.Company,
	)
	if err != nil {
		return fmt.Errorf("upserting profit settings: %w", err)
	}

	return nil
}

// DeleteForMaster removes the individual record so the master falls back to
// the global settings.
func (r *MySQLSettingsRepository) DeleteForMaster(ctx context.Context, masterID uint) error {
	query := `DELETE FROM ProfitSettings WHERE masterId = ?`

	result, err := r.db.ExecContext(ctx, query, masterID)
	if err != nil {
		return fmt.Errorf("deleting profit settings: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("profit settings for master %d not found", masterID))
	}

	return nil
}
