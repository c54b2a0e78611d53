package repository

import (
	"context"
	"database/sql"
	"fmt"

	"fieldops/internal/domain"
)

// MySQLBalanceLogRepository writes the append-only ledger of balance
// modifications. Entries are never updated or deleted.
type MySQLBalanceLogRepository struct {
	db *sql.DB
}

func NewMySQLBalanceLogRepository(db *sql.DB) *MySQLBalanceLogRepository {
	return &MySQLBalanceLogRepository{db: db}
}

func (r *MySQLBalanceLogRepository) Insert(ctx context.Context, tx *sql.Tx, entry domain.BalanceLogEntry) (uint, error) {
	query := `
		INSERT INTO BalanceLog (masterId, orderId, delta, balanceBefore, balanceAfter, reason, actor)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	result, err := tx.ExecContext(ctx, query,
		entry.MasterID, entry.OrderID, entry.Delta,
		entry.BalanceBefore, entry.BalanceAfter, entry.Reason, entry.Actor,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting balance log entry: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting balance log id: %w", err)
	}

	return uint(id), nil
}

func (r *MySQLBalanceLogRepository) ListByMaster(ctx context.Context, masterID uint, limit int) ([]domain.BalanceLogEntry, error) {
	query := `
		SELECT id, masterId, orderId, delta, balanceBefore, balanceAfter, reason, actor, createdAt
		FROM BalanceLog
		WHERE masterId = ?
		ORDER BY id DESC
		LIMIT ?
	`

	rows, err := r.db.QueryContext(ctx, query, masterID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying balance log: %w", err)
	}
	defer rows.Close()

	var entries []domain.BalanceLogEntry
	for rows.Next() {
		var entry domain.BalanceLogEntry
		var orderID sql.NullInt64
		if err := rows.Scan(
			&entry.ID, &entry.MasterID, &orderID, &entry.Delta,
			&entry.BalanceBefore, &entry.BalanceAfter, &entry.Reason,
			&entry.Actor, &entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning balance log entry: %w", err)
		}
		if orderID.Valid {
			id := uint(orderID.Int64)
			entry.OrderID = &id
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}
