package repository

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fieldops/internal/domain"
	apperrors "fieldops/internal/errors"
	"fieldops/internal/testutil"
)

func insertMaster(t *testing.T, db *sql.DB, email string) uint {
	result, err := db.Exec(`INSERT INTO Masters (email) VALUES (?)`, email)
	require.NoError(t, err)
	id, err := result.LastInsertId()
	require.NoError(t, err)
	return uint(id)
}

func insertOrder(t *testing.T, db *sql.DB, status string, createdAt time.Time) uint {
	result, err := db.Exec(
		`INSERT INTO Orders (status, street, house, createdAt) VALUES (?, ?, ?, ?)`,
		status, "Lenina", "12", createdAt,
	)
	require.NoError(t, err)
	id, err := result.LastInsertId()
	require.NoError(t, err)
	return uint(id)
}

func TestClaim_ExactlyOneWinner(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	testutil.SetupTestTables(t, db)

	repo := NewMySQLOrderRepository(db)
	ctx := context.Background()

	orderID := insertOrder(t, db, domain.OrderStatusInProcessing, time.Now())

	const claimants = 20
	masterIDs := make([]uint, claimants)
	for i := range masterIDs {
		masterIDs[i] = insertMaster(t, db, "claimant@example.com")
	}

	var wg sync.WaitGroup
	errs := make([]error, claimants)
	for i := 0; i < claimants; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = repo.Claim(ctx, orderID, masterIDs[i])
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
			continue
		}
		sc, ok := apperrors.IsStateConflictError(err)
		require.True(t, ok, "loser must get a state conflict, got %v", err)
		assert.Equal(t, domain.OrderStatusAssigned, sc.CurrentStatus)
	}
	assert.Equal(t, 1, winners)

	order, err := repo.FindByID(ctx, orderID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusAssigned, order.Status)
	require.NotNil(t, order.MasterID)
	require.NotNil(t, order.AssignedAt)
}

func TestClaim_RejectedForWrongStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	testutil.SetupTestTables(t, db)

	repo := NewMySQLOrderRepository(db)
	ctx := context.Background()

	masterID := insertMaster(t, db, "master@example.com")
	orderID := insertOrder(t, db, domain.OrderStatusNew, time.Now())

	err := repo.Claim(ctx, orderID, masterID)
	sc, ok := apperrors.IsStateConflictError(err)
	require.True(t, ok)
	assert.Equal(t, domain.OrderStatusNew, sc.CurrentStatus)
}

func TestListUnclaimedSince_BoundaryIsInclusive(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	testutil.SetupTestTables(t, db)

	repo := NewMySQLOrderRepository(db)
	ctx := context.Background()

	cutoff := time.Now().Add(-24 * time.Hour).Truncate(time.Second)
	onBoundary := insertOrder(t, db, domain.OrderStatusInProcessing, cutoff)
	insertOrder(t, db, domain.OrderStatusInProcessing, cutoff.Add(-time.Second))
	fresh := insertOrder(t, db, domain.OrderStatusInProcessing, time.Now())

	orders, err := repo.ListUnclaimedSince(ctx, cutoff)
	require.NoError(t, err)
	require.Len(t, orders, 2)

	ids := []uint{orders[0].ID, orders[1].ID}
	assert.Contains(t, ids, onBoundary)
	assert.Contains(t, ids, fresh)
}

func TestListUnclaimedSince_SkipsClaimedOrders(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	testutil.SetupTestTables(t, db)

	repo := NewMySQLOrderRepository(db)
	ctx := context.Background()

	masterID := insertMaster(t, db, "master@example.com")
	claimed := insertOrder(t, db, domain.OrderStatusInProcessing, time.Now())
	require.NoError(t, repo.Claim(ctx, claimed, masterID))
	open := insertOrder(t, db, domain.OrderStatusInProcessing, time.Now())

	orders, err := repo.ListUnclaimedSince(ctx, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, open, orders[0].ID)
}

func TestUnassign_ReturnsOrderToPool(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	testutil.SetupTestTables(t, db)

	repo := NewMySQLOrderRepository(db)
	ctx := context.Background()

	masterID := insertMaster(t, db, "master@example.com")
	orderID := insertOrder(t, db, domain.OrderStatusInProcessing, time.Now())
	require.NoError(t, repo.Claim(ctx, orderID, masterID))

	require.NoError(t, repo.Unassign(ctx, orderID))

	order, err := repo.FindByID(ctx, orderID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusInProcessing, order.Status)
	assert.Nil(t, order.MasterID)
	assert.Nil(t, order.AssignedAt)

	// The released order is claimable again.
	other := insertMaster(t, db, "other@example.com")
	assert.NoError(t, repo.Claim(ctx, orderID, other))
}

func TestCountPendingByStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	testutil.SetupTestTables(t, db)

	repo := NewMySQLOrderRepository(db)
	ctx := context.Background()

	insertOrder(t, db, domain.OrderStatusNew, time.Now())
	insertOrder(t, db, domain.OrderStatusNew, time.Now())
	insertOrder(t, db, domain.OrderStatusInProcessing, time.Now())

	counts, err := repo.CountPendingByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, counts[domain.OrderStatusNew])
	assert.Equal(t, 1, counts[domain.OrderStatusInProcessing])
}
