package testutil

import (
	"database/sql"
	"fmt"
	"testing"

	_ "github.com/go-sql-driver/mysql"
)

// SetupTestDB opens the integration-test database. Expects a MySQL instance
// on localhost:3306 with a database named 'fieldops_test'; tests skip when it
// is unreachable.
func SetupTestDB(t *testing.T) *sql.DB {
	// clientFoundRows matches the production connection: RowsAffected
	// reports matched rows, not changed rows.
	dsn := "root:@tcp(localhost:3306)/fieldops_test?parseTime=true&clientFoundRows=true"
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.Ping()
	if err != nil {
		t.Skipf("test database not available: %v", err)
	}

	return db
}

// CleanupTestDB empties the test tables and closes the connection.
func CleanupTestDB(t *testing.T, db *sql.DB) {
	if db == nil {
		return
	}

	tables := []string{"BalanceLog", "OrderCompletions", "AvailabilitySlots", "ProfitSettings", "Orders", "Masters"}
	for _, table := range tables {
		_, err := db.Exec(fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}

	db.Close()
}

// SetupTestTables creates the tables the integration tests need.
func SetupTestTables(t *testing.T, db *sql.DB) {
	createMastersTable := `
	CREATE TABLE IF NOT EXISTS Masters (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		email VARCHAR(150) NOT NULL,
		balance DECIMAL(12,2) NOT NULL DEFAULT 0.00,
		tierMode VARCHAR(20) NOT NULL DEFAULT 'AUTOMATIC',
		manualTier INT,
		createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updatedAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	)`

	createOrdersTable := `
	CREATE TABLE IF NOT EXISTS Orders (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		status VARCHAR(50) NOT NULL DEFAULT 'NEW',
		masterId INT UNSIGNED,
		street VARCHAR(255) NOT NULL,
		house VARCHAR(30) NOT NULL,
		apartment VARCHAR(30),
		entrance VARCHAR(30),
		phone VARCHAR(30),
		finalCost DECIMAL(12,2),
		assignedAt DATETIME,
		createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updatedAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		INDEX idx_status_master (status, masterId),
		INDEX idx_created (createdAt)
	)`

	createCompletionsTable := `
	CREATE TABLE IF NOT EXISTS OrderCompletions (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		orderId INT UNSIGNED NOT NULL,
		masterId INT UNSIGNED NOT NULL,
		description TEXT,
		expensesTotal DECIMAL(12,2) NOT NULL DEFAULT 0.00,
		receivedAmount DECIMAL(12,2) NOT NULL,
		createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (orderId) REFERENCES Orders(id) ON DELETE CASCADE,
		INDEX idx_order (orderId)
	)`

	createSlotsTable := `
	CREATE TABLE IF NOT EXISTS AvailabilitySlots (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		masterId INT UNSIGNED NOT NULL,
		date DATE NOT NULL,
		startTime VARCHAR(8) NOT NULL,
		endTime VARCHAR(8) NOT NULL,
		INDEX idx_master_date (masterId, date)
	)`

	createProfitSettingsTable := `
	CREATE TABLE IF NOT EXISTS ProfitSettings (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		masterId INT UNSIGNED UNIQUE,
		masterPaid INT NOT NULL,
		masterBalance INT NOT NULL,
		curator INT NOT NULL,
		company INT NOT NULL,
		isActive TINYINT(1) NOT NULL DEFAULT 1,
		createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updatedAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	)`

	createBalanceLogTable := `
	CREATE TABLE IF NOT EXISTS BalanceLog (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		masterId INT UNSIGNED NOT NULL,
		orderId INT UNSIGNED,
		delta DECIMAL(12,2) NOT NULL,
		balanceBefore DECIMAL(12,2) NOT NULL,
		balanceAfter DECIMAL(12,2) NOT NULL,
		reason VARCHAR(50) NOT NULL,
		actor VARCHAR(100) NOT NULL,
		createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		INDEX idx_master (masterId)
	)`

	tables := []struct {
		name  string
		query string
	}{
		{"Masters", createMastersTable},
		{"Orders", createOrdersTable},
		{"OrderCompletions", createCompletionsTable},
		{"AvailabilitySlots", createSlotsTable},
		{"ProfitSettings", createProfitSettingsTable},
		{"BalanceLog", createBalanceLogTable},
	}

	for _, tbl := range tables {
		_, err := db.Exec(tbl.query)
		if err != nil {
			t.Logf("failed to create table %s: %v", tbl.name, err)
		}
	}
}
