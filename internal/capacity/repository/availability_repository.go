package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"fieldops/internal/domain"
)

type MySQLAvailabilityRepository struct {
	db *sql.DB
}

func NewMySQLAvailabilityRepository(db *sql.DB) *MySQLAvailabilityRepository {
	return &MySQLAvailabilityRepository{db: db}
}

// SlotCountsForDate returns the number of availability slots per master for
// the given date. Masters without slots are absent from the map.
func (r *MySQLAvailabilityRepository) SlotCountsForDate(ctx context.Context, date time.Time) (map[uint]int, error) {
	query := `
		SELECT masterId, COUNT(*)
		FROM AvailabilitySlots
		WHERE date = ?
		GROUP BY masterId
	`

	rows, err := r.db.QueryContext(ctx, query, date.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("querying slot counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[uint]int)
	for rows.Next() {
		var masterID uint
		var count int
		if err := rows.Scan(&masterID, &count); err != nil {
			return nil, fmt.Errorf("scanning slot count: %w", err)
		}
		counts[masterID] = count
	}

	return counts, rows.Err()
}

// AssignedCountsForDate returns the number of active orders per master that
// were assigned on the given date.
func (r *MySQLAvailabilityRepository) AssignedCountsForDate(ctx context.Context, date time.Time) (map[uint]int, error) {
	query := `
		SELECT masterId, COUNT(*)
		FROM Orders
		WHERE masterId IS NOT NULL
		  AND DATE(assignedAt) = ?
		  AND status IN (?, ?, ?)
		GROUP BY masterId
	`

	rows, err := r.db.QueryContext(ctx, query, date.Format("2006-01-02"),
		domain.OrderStatusAssigned, domain.OrderStatusInProgress, domain.OrderStatusUnderReview)
	if err != nil {
		return nil, fmt.Errorf("querying assigned counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[uint]int)
	for rows.Next() {
		var masterID uint
		var count int
		if err := rows.Scan(&masterID, &count); err != nil {
			return nil, fmt.Errorf("scanning assigned count: %w", err)
		}
		counts[masterID] = count
	}

	return counts, rows.Err()
}
