package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"

	_ "github.com/go-sql-driver/mysql"

	"fonda/internal/infrastructure/mysql"
)

const defaultTestDSN = "root:@tcp(localhost:3306)/fonda_test?parseTime=true"

// SetupTestDB abre la base de prueba (TEST_DB_DSN o localhost/fonda_test).
// Si no hay servidor el test se salta.
func SetupTestDB(t *testing.T) *sql.DB {
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		dsn = defaultTestDSN
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("test database not available: %v", err)
	}

	return db
}

// SetupTestTables aplica las mismas migraciones que el servidor.
func SetupTestTables(t *testing.T, db *sql.DB) {
	if err := mysql.Migrate(context.Background(), db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	truncateAll(t, db)
}

// CleanupTestDB limpia las tablas y cierra la conexion.
func CleanupTestDB(t *testing.T, db *sql.DB) {
	if db == nil {
		return
	}
	truncateAll(t, db)
	db.Close()
}

func truncateAll(t *testing.T, db *sql.DB) {
	// hijos antes que padres por las llaves foraneas
	tables := []string{
		"OrderItems", "OrderHistory", "DayCloseBatch", "Orders",
		"Comment", "Customer", "Product", "Guisado", "PaymentMethod", "Admin",
	}
	for _, table := range tables {
		if _, err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)); err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}
}
