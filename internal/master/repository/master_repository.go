package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"fieldops/internal/domain"
	"fieldops/internal/errors"
)

type MySQLMasterRepository struct {
	db *sql.DB
}

func NewMySQLMasterRepository(db *sql.DB) *MySQLMasterRepository {
	return &MySQLMasterRepository{db: db}
}

func (r *MySQLMasterRepository) FindByID(ctx context.Context, id uint) (*domain.Master, error) {
	query := `
		SELECT id, email, balance, tierMode, manualTier, createdAt, updatedAt
		FROM Masters
		WHERE id = ?
	`

	var master domain.Master
	var manualTier sql.NullInt64
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&master.ID, &master.Email, &master.Balance, &master.TierMode,
		&manualTier, &master.CreatedAt, &master.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("master with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying master by id: %w", err)
	}

	if manualTier.Valid {
		tier := int(manualTier.Int64)
		master.ManualTier = &tier
	}

	return &master, nil
}

func (r *MySQLMasterRepository) FindAll(ctx context.Context) ([]domain.Master, error) {
	query := `
		SELECT id, email, balance, tierMode, manualTier, createdAt, updatedAt
		FROM Masters
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying masters: %w", err)
	}
	defer rows.Close()

	var masters []domain.Master
	for rows.Next() {
		var master domain.Master
		var manualTier sql.NullInt64
		if err := rows.Scan(
			&master.ID, &master.Email, &master.Balance, &master.TierMode,
			&manualTier, &master.CreatedAt, &master.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning master: %w", err)
		}
		if manualTier.Valid {
			tier := int(manualTier.Int64)
			master.ManualTier = &tier
		}
		masters = append(masters, master)
	}

	return masters, rows.Err()
}

// SetTierMode pins or unpins a master's distance tier. manualTier must be
// non-nil for MANUAL mode and nil for AUTOMATIC.
func (r *MySQLMasterRepository) SetTierMode(ctx context.Context, id uint, mode string, manualTier *int) error {
	query := `UPDATE Masters SET tierMode = ?, manualTier = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, mode, manualTier, id)
	if err != nil {
		return fmt.Errorf("updating master tier mode: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("master with id %d not found", id))
	}

	return nil
}

// FindByIDForUpdate locks the master row inside the given transaction. Used
// by balance mutations so concurrent credits serialize on the row.
func (r *MySQLMasterRepository) FindByIDForUpdate(ctx context.Context, tx *sql.Tx, id uint) (*domain.Master, error) {
	query := `
		SELECT id, email, balance, tierMode, manualTier, createdAt, updatedAt
		FROM Masters
		WHERE id = ?
		FOR UPDATE
	`

	var master domain.Master
	var manualTier sql.NullInt64
	err := tx.QueryRowContext(ctx, query, id).Scan(
		&master.ID, &master.Email, &master.Balance, &master.TierMode,
		&manualTier, &master.CreatedAt, &master.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("master with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying master for update: %w", err)
	}

	if manualTier.Valid {
		tier := int(manualTier.Int64)
		master.ManualTier = &tier
	}

	return &master, nil
}

func (r *MySQLMasterRepository) UpdateBalance(ctx context.Context, tx *sql.Tx, id uint, balance decimal.Decimal) error {
	query := `UPDATE Masters SET balance = ? WHERE id = ?`

	result, err := tx.ExecContext(ctx, query, balance, id)
	if err != nil {
		return fmt.Errorf("updating master balance: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("master with id %d not found", id))
	}

	return nil
}
