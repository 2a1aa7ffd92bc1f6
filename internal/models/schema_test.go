package models

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	pkgdb "github.com/Skotchmaster/sharded_shop/pkg/db"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "master-a.db") + "?_pragma=foreign_keys(1)"
	db, err := pkgdb.Open(context.Background(), pkgdb.DriverSQLite, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pkgdb.Close(db) })
	return db
}

func TestMaterializeCreatesAllTables(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	created, err := NewSchema().Materialize(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, []string{"product_categories", "products", "users", "orders", "order_items"}, created)

	for _, table := range created {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
}

func TestMaterializeIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	schema := NewSchema()

	_, err := schema.Materialize(ctx, db)
	require.NoError(t, err)

	require.NoError(t, db.Create(&ProductCategory{Name: "books"}).Error)

	created, err := schema.Materialize(ctx, db)
	require.NoError(t, err)
	assert.Empty(t, created)

	var count int64
	require.NoError(t, db.Model(&ProductCategory{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestOrderStatusDefaultsToPending(t *testing.T) {
	db := openTestDB(t)
	_, err := NewSchema().Materialize(context.Background(), db)
	require.NoError(t, err)

	user := User{Email: "buyer@example.com", IsActive: true}
	require.NoError(t, db.Create(&user).Error)

	order := Order{UserID: user.ID, TotalAmount: 12.5}
	require.NoError(t, db.Create(&order).Error)

	var stored Order
	require.NoError(t, db.First(&stored, order.ID).Error)
	assert.Equal(t, OrderStatusPending, stored.Status)
	assert.True(t, stored.Status.Valid())
	assert.False(t, OrderStatus("lost").Valid())
}

func TestSchemaModelsIsACopy(t *testing.T) {
	s := NewSchema()
	m := s.Models()
	m[0] = nil
	assert.NotNil(t, s.Models()[0])
}
