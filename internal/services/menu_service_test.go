package services

import (
	"context"
	"testing"

	"github.com/franciscosanchezn/little-lemon-app/internal/kvstore"
	"github.com/franciscosanchezn/little-lemon-app/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.MenuItem{}, &models.Category{})
	require.NoError(t, err)

	return db
}

func setupTestKV(t *testing.T) kvstore.Store {
	kv, err := kvstore.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { kv.Close() })
	return kv
}

func setupMenuService(t *testing.T) (MenuService, *gorm.DB, kvstore.Store) {
	db := setupTestDB(t)
	kv := setupTestKV(t)
	return NewMenuService(db, kv), db, kv
}

func countItems(t *testing.T, db *gorm.DB) int64 {
	var count int64
	require.NoError(t, db.Model(&models.MenuItem{}).Count(&count).Error)
	return count
}

func TestSeedIsIdempotent(t *testing.T) {
	service, db, _ := setupMenuService(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, service.Seed(ctx))
	}

	assert.Equal(t, int64(len(SampleMenuItems)), countItems(t, db))
}

func TestSeedRepairsUnsetFlag(t *testing.T) {
	service, db, kv := setupMenuService(t)
	ctx := context.Background()

	// Data exists but the flag was never written
	item := models.MenuItem{Name: "Pasta", Price: 18.99, Category: "Mains"}
	require.NoError(t, db.Create(&item).Error)

	require.NoError(t, service.Seed(ctx))

	// The flag must be repaired without inserting more rows
	assert.Equal(t, int64(1), countItems(t, db))
	flag, err := kv.Get("databaseSeeded")
	require.NoError(t, err)
	assert.Equal(t, "true", flag)
}

func TestSeedSetsFlag(t *testing.T) {
	service, _, kv := setupMenuService(t)

	require.NoError(t, service.Seed(context.Background()))

	flag, err := kv.Get("databaseSeeded")
	require.NoError(t, err)
	assert.Equal(t, "true", flag)
}

func TestEnsureReadyInitializesAndSeeds(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	kv := setupTestKV(t)
	service := NewMenuService(db, kv)

	// No AutoMigrate beforehand: EnsureReady owns schema creation
	require.NoError(t, service.EnsureReady(context.Background()))
	require.NoError(t, service.EnsureReady(context.Background()))

	assert.Equal(t, int64(len(SampleMenuItems)), countItems(t, db))
}

func TestListAllOrderedByName(t *testing.T) {
	service, _, _ := setupMenuService(t)
	ctx := context.Background()
	require.NoError(t, service.Seed(ctx))

	items, err := service.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, items, 5)

	names := make([]string, 0, len(items))
	for _, item := range items {
		names = append(names, item.Name)
	}
	assert.Equal(t, []string{"Bruschetta", "Greek Salad", "Grilled Fish", "Lemon Dessert", "Pasta"}, names)
}

func TestListByCategory(t *testing.T) {
	service, _, _ := setupMenuService(t)
	ctx := context.Background()
	require.NoError(t, service.Seed(ctx))

	items, err := service.ListByCategory(ctx, "Mains")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Grilled Fish", items[0].Name)
	assert.Equal(t, "Pasta", items[1].Name)

	// Exact match only
	empty, err := service.ListByCategory(ctx, "mains")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestInsertAssignsID(t *testing.T) {
	service, _, _ := setupMenuService(t)
	ctx := context.Background()

	id, err := service.Insert(ctx, models.MenuItem{
		Name:     "Lemonade",
		Price:    3.50,
		Category: "Drinks",
	})
	require.NoError(t, err)
	assert.Greater(t, id, 0)

	second, err := service.Insert(ctx, models.MenuItem{
		Name:     "Iced Tea",
		Price:    3.00,
		Category: "Drinks",
	})
	require.NoError(t, err)
	assert.NotEqual(t, id, second)
}

func TestInsertValidation(t *testing.T) {
	service, db, _ := setupMenuService(t)
	ctx := context.Background()

	testCases := []struct {
		name  string
		item  models.MenuItem
		field string
	}{
		{
			name:  "empty name rejected",
			item:  models.MenuItem{Name: "   ", Price: 5, Category: "Drinks"},
			field: "name",
		},
		{
			name:  "negative price rejected",
			item:  models.MenuItem{Name: "Lemonade", Price: -1, Category: "Drinks"},
			field: "price",
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Insert(ctx, tt.item)
			require.Error(t, err)

			fieldErr, ok := err.(*models.FieldError)
			require.True(t, ok, "expected a FieldError, got %T", err)
			assert.Equal(t, tt.field, fieldErr.Field)
		})
	}

	assert.Equal(t, int64(0), countItems(t, db))
}

func TestDeleteIsIdempotent(t *testing.T) {
	service, db, _ := setupMenuService(t)
	ctx := context.Background()

	id, err := service.Insert(ctx, models.MenuItem{Name: "Lemonade", Price: 3.5, Category: "Drinks"})
	require.NoError(t, err)

	require.NoError(t, service.Delete(ctx, id))
	assert.Equal(t, int64(0), countItems(t, db))

	// Deleting an absent id is not an error
	assert.NoError(t, service.Delete(ctx, id))
	assert.NoError(t, service.Delete(ctx, 9999))
}

func TestDistinctCategoriesSorted(t *testing.T) {
	service, _, _ := setupMenuService(t)
	ctx := context.Background()
	require.NoError(t, service.Seed(ctx))

	categories, err := service.DistinctCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Desserts", "Mains", "Starters"}, categories)
}

func TestDistinctCategoriesEmptyStoreIsNotAnError(t *testing.T) {
	service, _, _ := setupMenuService(t)

	// A successful empty result stays empty; the fallback list is only for
	// the error case and is applied by the caller
	categories, err := service.DistinctCategories(context.Background())
	require.NoError(t, err)
	assert.Empty(t, categories)
}

func TestDistinctCategoriesErrorOnBrokenStore(t *testing.T) {
	service, db, _ := setupMenuService(t)
	ctx := context.Background()
	require.NoError(t, service.Seed(ctx))

	// Close the underlying connection: the query must fail with an error,
	// not report an empty category set
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	categories, err := service.DistinctCategories(ctx)
	require.Error(t, err)
	assert.Empty(t, categories)
}

func TestResetAllClearsDataAndFlag(t *testing.T) {
	service, db, kv := setupMenuService(t)
	ctx := context.Background()
	require.NoError(t, service.Seed(ctx))

	require.NoError(t, service.ResetAll(ctx))

	assert.Equal(t, int64(0), countItems(t, db))
	flag, err := kv.Get("databaseSeeded")
	require.NoError(t, err)
	assert.Equal(t, "false", flag)

	// A reset store can be seeded again
	require.NoError(t, service.Seed(ctx))
	assert.Equal(t, int64(len(SampleMenuItems)), countItems(t, db))
}
