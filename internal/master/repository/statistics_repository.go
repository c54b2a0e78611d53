package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"fieldops/internal/domain"
)

// MySQLStatisticsRepository reads the completed-order slices that the
// statistics aggregator works from. Completion time is the completion
// record's creation time, expenses come from the same record.
type MySQLStatisticsRepository struct {
	db *sql.DB
}

func NewMySQLStatisticsRepository(db *sql.DB) *MySQLStatisticsRepository {
	return &MySQLStatisticsRepository{db: db}
}

func (r *MySQLStatisticsRepository) LastCompletedCosts(ctx context.Context, masterID uint, limit int) ([]decimal.Decimal, error) {
	query := `
		SELECT o.finalCost
		FROM Orders o
		WHERE o.masterId = ? AND o.status = ? AND o.finalCost IS NOT NULL
		ORDER BY o.updatedAt DESC
		LIMIT ?
	`

	rows, err := r.db.QueryContext(ctx, query, masterID, domain.OrderStatusCompleted, limit)
	if err != nil {
		return nil, fmt.Errorf("querying last completed costs: %w", err)
	}
	defer rows.Close()

	var costs []decimal.Decimal
	for rows.Next() {
		var cost decimal.Decimal
		if err := rows.Scan(&cost); err != nil {
			return nil, fmt.Errorf("scanning completed cost: %w", err)
		}
		costs = append(costs, cost)
	}

	return costs, rows.Err()
}

func (r *MySQLStatisticsRepository) CompletedSince(ctx context.Context, masterID uint, since time.Time) ([]domain.CompletedOrderRecord, error) {
	query := `
		SELECT o.finalCost, c.expensesTotal, c.createdAt
		FROM Orders o
		INNER JOIN OrderCompletions c ON c.orderId = o.id
		WHERE o.masterId = ? AND o.status = ? AND o.finalCost IS NOT NULL
		  AND c.createdAt >= ?
	`

	rows, err := r.db.QueryContext(ctx, query, masterID, domain.OrderStatusCompleted, since)
	if err != nil {
		return nil, fmt.Errorf("querying completed orders since %s: %w", since.Format(time.RFC3339), err)
	}
	defer rows.Close()

	var records []domain.CompletedOrderRecord
	for rows.Next() {
		var rec domain.CompletedOrderRecord
		if err := rows.Scan(&rec.FinalCost, &rec.Expenses, &rec.CompletedAt); err != nil {
			return nil, fmt.Errorf("scanning completed order: %w", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}
