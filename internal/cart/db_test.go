package cart

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/grocerly/grocerly-backend/pkg/config"
	"github.com/grocerly/grocerly-backend/pkg/db"
	"github.com/grocerly/grocerly-backend/pkg/db/models"
)

func testDSN() string {
	return fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open(testDSN()), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&models.Product{}, &models.CartItem{}, &models.PendingQuantity{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return conn
}

func openTestClient(t *testing.T) *db.Client {
	t.Helper()

	client, err := db.New(context.Background(), config.DBConfig{
		Driver: config.DriverSQLite,
		DSN:    testDSN(),
	}, nil)
	if err != nil {
		t.Fatalf("failed to open test client: %v", err)
	}
	t.Cleanup(func() {
		_ = client.Close()
	})
	if err := client.DB().AutoMigrate(&models.Product{}, &models.CartItem{}, &models.PendingQuantity{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return client
}
