package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"fieldops/internal/domain"
	"fieldops/internal/errors"
)

type MySQLOrderRepository struct {
	db *sql.DB
}

func NewMySQLOrderRepository(db *sql.DB) *MySQLOrderRepository {
	return &MySQLOrderRepository{db: db}
}

const orderColumns = `id, status, masterId, street, house, apartment, entrance, phone, finalCost, assignedAt, createdAt, updatedAt`

func scanOrder(row interface{ Scan(...interface{}) error }) (*domain.Order, error) {
	var order domain.Order
	var masterID sql.NullInt64
	var finalCost decimal.NullDecimal
	var assignedAt sql.NullTime
	err := row.Scan(
		&order.ID, &order.Status, &masterID, &order.Street, &order.House,
		&order.Apartment, &order.Entrance, &order.Phone, &finalCost,
		&assignedAt, &order.CreatedAt, &order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if masterID.Valid {
		id := uint(masterID.Int64)
		order.MasterID = &id
	}
	if finalCost.Valid {
		order.FinalCost = &finalCost.Decimal
	}
	if assignedAt.Valid {
		order.AssignedAt = &assignedAt.Time
	}
	return &order, nil
}

func (r *MySQLOrderRepository) FindByID(ctx context.Context, id uint) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM Orders WHERE id = ?`

	order, err := scanOrder(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("order with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying order by id: %w", err)
	}

	return order, nil
}

// ListUnclaimedSince returns pending orders (NEW or IN_PROCESSING, no master)
// created at or after the cutoff, newest first.
func (r *MySQLOrderRepository) ListUnclaimedSince(ctx context.Context, cutoff time.Time) ([]domain.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM Orders
		WHERE status IN (?, ?) AND masterId IS NULL AND createdAt >= ?
		ORDER BY createdAt DESC
	`

	rows, err := r.db.QueryContext(ctx, query, domain.OrderStatusNew, domain.OrderStatusInProcessing, cutoff)
	if err != nil {
		return nil, fmt.Errorf("querying unclaimed orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning order: %w", err)
		}
		orders = append(orders, *order)
	}

	return orders, rows.Err()
}

// Claim atomically assigns an unclaimed IN_PROCESSING order to a master. The
// check and the write are a single conditional UPDATE, so exactly one of N
// concurrent claimants succeeds. Losers get a StateConflictError naming the
// order's current status.
func (r *MySQLOrderRepository) Claim(ctx context.Context, orderID uint, masterID uint) error {
	query := `
		UPDATE Orders
		SET masterId = ?, status = ?, assignedAt = NOW()
		WHERE id = ? AND status = ? AND masterId IS NULL
	`

	result, err := r.db.ExecContext(ctx, query, masterID, domain.OrderStatusAssigned, orderID, domain.OrderStatusInProcessing)
	if err != nil {
		return fmt.Errorf("claiming order: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return r.claimRejection(ctx, orderID)
	}

	return nil
}

func (r *MySQLOrderRepository) claimRejection(ctx context.Context, orderID uint) error {
	order, err := r.FindByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order.MasterID != nil {
		return errors.NewStateConflictError("order is already assigned", order.Status)
	}
	return errors.NewStateConflictError("order is not in processing", order.Status)
}

// TransitionForHolder moves an order held by the given master from one status
// to another.
func (r *MySQLOrderRepository) TransitionForHolder(ctx context.Context, orderID, masterID uint, from, to string) error {
	query := `UPDATE Orders SET status = ? WHERE id = ? AND masterId = ? AND status = ?`

	result, err := r.db.ExecContext(ctx, query, to, orderID, masterID, from)
	if err != nil {
		return fmt.Errorf("transitioning order: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return r.transitionRejection(ctx, orderID, masterID)
	}

	return nil
}

// SubmitForReview moves an order held by the master from ASSIGNED or
// IN_PROGRESS to UNDER_REVIEW inside the given transaction.
func (r *MySQLOrderRepository) SubmitForReview(ctx context.Context, tx *sql.Tx, orderID, masterID uint) error {
	query := `
		UPDATE Orders
		SET status = ?
		WHERE id = ? AND masterId = ? AND status IN (?, ?)
	`

	result, err := tx.ExecContext(ctx, query, domain.OrderStatusUnderReview, orderID, masterID,
		domain.OrderStatusAssigned, domain.OrderStatusInProgress)
	if err != nil {
		return fmt.Errorf("submitting order for review: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return r.transitionRejection(ctx, orderID, masterID)
	}

	return nil
}

func (r *MySQLOrderRepository) transitionRejection(ctx context.Context, orderID, masterID uint) error {
	order, err := r.FindByID(ctx, orderID)
	if err != nil {
		return err
	}
	if !order.HeldBy(masterID) {
		return errors.NewStateConflictError("order is not held by this master", order.Status)
	}
	return errors.NewStateConflictError("order is not in a valid state for this transition", order.Status)
}

// CompleteWithCost moves an UNDER_REVIEW order to COMPLETED and fixes its
// final cost, inside the given transaction.
func (r *MySQLOrderRepository) CompleteWithCost(ctx context.Context, tx *sql.Tx, orderID uint, finalCost decimal.Decimal) error {
	query := `UPDATE Orders SET status = ?, finalCost = ? WHERE id = ? AND status = ?`

	result, err := tx.ExecContext(ctx, query, domain.OrderStatusCompleted, finalCost, orderID, domain.OrderStatusUnderReview)
	if err != nil {
		return fmt.Errorf("completing order: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		order, err := r.FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		return errors.NewStateConflictError("order is not under review", order.Status)
	}

	return nil
}

// Transfer reassigns an active order to a different (e.g. warranty) master.
func (r *MySQLOrderRepository) Transfer(ctx context.Context, orderID, newMasterID uint) error {
	query := `
		UPDATE Orders
		SET masterId = ?, status = ?, assignedAt = NOW()
		WHERE id = ? AND status IN (?, ?)
	`

	result, err := r.db.ExecContext(ctx, query, newMasterID, domain.OrderStatusTransferred, orderID,
		domain.OrderStatusAssigned, domain.OrderStatusInProgress)
	if err != nil {
		return fmt.Errorf("transferring order: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		order, err := r.FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		return errors.NewStateConflictError("order cannot be transferred", order.Status)
	}

	return nil
}

// Unassign clears the holder and returns the order to IN_PROCESSING,
// regardless of who held it. Admin-only operation.
func (r *MySQLOrderRepository) Unassign(ctx context.Context, orderID uint) error {
	query := `
		UPDATE Orders
		SET masterId = NULL, status = ?, assignedAt = NULL
		WHERE id = ? AND status IN (?, ?)
	`

	result, err := r.db.ExecContext(ctx, query, domain.OrderStatusInProcessing, orderID,
		domain.OrderStatusAssigned, domain.OrderStatusInProgress)
	if err != nil {
		return fmt.Errorf("unassigning order: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		order, err := r.FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		return errors.NewStateConflictError("order cannot be unassigned", order.Status)
	}

	return nil
}

// CountPendingByStatus returns the number of unclaimed orders per pending
// status. Consumed by the capacity aggregator.
func (r *MySQLOrderRepository) CountPendingByStatus(ctx context.Context) (map[string]int, error) {
	query := `
		SELECT status, COUNT(*)
		FROM Orders
		WHERE status IN (?, ?) AND masterId IS NULL
		GROUP BY status
	`

	rows, err := r.db.QueryContext(ctx, query, domain.OrderStatusNew, domain.OrderStatusInProcessing)
	if err != nil {
		return nil, fmt.Errorf("counting pending orders: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("scanning pending count: %w", err)
		}
		counts[status] = count
	}

	return counts, rows.Err()
}
