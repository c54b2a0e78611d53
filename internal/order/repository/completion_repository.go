package repository

import (
	"context"
	"database/sql"
	"fmt"

	"fieldops/internal/domain"
)

type MySQLCompletionRepository struct {
	db *sql.DB
}

func NewMySQLCompletionRepository(db *sql.DB) *MySQLCompletionRepository {
	return &MySQLCompletionRepository{db: db}
}

func (r *MySQLCompletionRepository) Insert(ctx context.Context, tx *sql.Tx, completion domain.Completion) (uint, error) {
	query := `
		INSERT INTO OrderCompletions (orderId, masterId, description, expensesTotal, receivedAmount)
		VALUES (?, ?, ?, ?, ?)
	`

	result, err := tx.ExecContext(ctx, query,
		completion.OrderID, completion.MasterID, completion.Description,
		completion.ExpensesTotal, completion.ReceivedAmount,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting completion: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting completion id: %w", err)
	}

	return uint(id), nil
}

func (r *MySQLCompletionRepository) FindByOrderID(ctx context.Context, orderID uint) (*domain.Completion, error) {
	query := `
		SELECT id, orderId, masterId, description, expensesTotal, receivedAmount, createdAt
		FROM OrderCompletions
		WHERE orderId = ?
		ORDER BY createdAt DESC
		LIMIT 1
	`

	var completion domain.Completion
	err := r.db.QueryRowContext(ctx, query, orderID).Scan(
		&completion.ID, &completion.OrderID, &completion.MasterID,
		&completion.Description, &completion.ExpensesTotal,
		&completion.ReceivedAmount, &completion.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying completion: %w", err)
	}

	return &completion, nil
}
