package memory

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nursery/pkg/nursery"
)

func seeded(t *testing.T) *Repository {
	t.Helper()
	repo := New()
	repo.AddPlant(nursery.NewFloweringPlant("Rose", "Rosa", 6, 45, 60, true))
	repo.AddPlant(nursery.NewFloweringPlant("Tulip", "Tulipa", 5, 16, 10, false))
	repo.AddPlant(nursery.NewPlant("Fern", "Pteridophyte", 3, 40, 55))
	return repo
}

func TestRepository(t *testing.T) {
	repo := seeded(t)

	assert.Equal(t, 125.0, repo.TotalRevenue())
	assert.Equal(t, 2, repo.CountFloweringPlants())
	assert.Equal(t, 55.0, repo.AverageNonFloweringPrice())

	cheapest, ok := repo.CheapestPlant()
	require.True(t, ok)
	assert.Equal(t, "Tulip", cheapest.Name)

	assert.Equal(t, 1, repo.CountBySpecies("Rosa"))
	assert.False(t, repo.HasMonocotWithPrice(5))
	assert.True(t, repo.HasMonocotWithPrice(60))
	assert.InDelta(t, 14.0/3.0, repo.AverageAge(), 1e-9)
}

func TestRepository_Empty(t *testing.T) {
	repo := New()

	assert.Zero(t, repo.TotalRevenue())
	assert.Zero(t, repo.CountFloweringPlants())
	assert.Zero(t, repo.AverageNonFloweringPrice())
	assert.Zero(t, repo.AverageAge())
	assert.Zero(t, repo.TotalCustomerPurchases())
	assert.Empty(t, repo.Plants())

	_, ok := repo.CheapestPlant()
	assert.False(t, ok)
	_, ok = repo.FindPlantByName("Rose")
	assert.False(t, ok)
}

func TestAddPlant_AssignsID(t *testing.T) {
	repo := New()
	p := repo.AddPlant(nursery.NewPlant("Fern", "Pteridophyte", 3, 40, 55))
	require.NotEqual(t, uuid.Nil, p.ID)

	got, ok := repo.Plant(p.ID)
	require.True(t, ok)
	assert.Equal(t, p, got)

	id := uuid.New()
	kept := repo.AddPlant(nursery.Plant{ID: id, Name: "Moss"})
	assert.Equal(t, id, kept.ID)
}

func TestAddPlant_AllowsDuplicateNames(t *testing.T) {
	repo := New()
	first := repo.AddPlant(nursery.NewPlant("Fern", "Pteridophyte", 3, 40, 55))
	repo.AddPlant(nursery.NewPlant("fern", "Pteridophyte", 1, 10, 20))

	assert.Len(t, repo.Plants(), 2)
	got, ok := repo.FindPlantByName("FERN")
	require.True(t, ok)
	assert.Equal(t, first.ID, got.ID)
}

func TestPlants_PreservesInsertionOrder(t *testing.T) {
	repo := seeded(t)
	var names []string
	for _, p := range repo.Plants() {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"Rose", "Tulip", "Fern"}, names)
}

func TestRemovePlant(t *testing.T) {
	repo := seeded(t)
	tulip, ok := repo.FindPlantByName("tulip")
	require.True(t, ok)

	repo.RemovePlant(tulip)

	assert.Len(t, repo.Plants(), 2)
	_, ok = repo.Plant(tulip.ID)
	assert.False(t, ok)
	assert.Equal(t, 115.0, repo.TotalRevenue())
}

func TestRemovePlant_NotFound(t *testing.T) {
	repo := seeded(t)
	before := repo.Plants()

	repo.RemovePlant(nursery.NewPlant("Cactus", "Cactaceae", 1, 5, 5))

	assert.Equal(t, before, repo.Plants())
}

func TestCheapestPlant_TieKeepsFirst(t *testing.T) {
	repo := New()
	repo.AddPlant(nursery.NewPlant("Ivy", "Hedera", 2, 30, 20))
	first := repo.AddPlant(nursery.NewPlant("Moss", "Bryophyta", 1, 2, 8))
	repo.AddPlant(nursery.NewFloweringPlant("Daisy", "Bellis", 1, 10, 8, false))

	got, ok := repo.CheapestPlant()
	require.True(t, ok)
	assert.Equal(t, first.ID, got.ID)
}

func TestCountBySpecies_IgnoresCase(t *testing.T) {
	repo := seeded(t)
	repo.AddPlant(nursery.NewPlant("Wild rose", "ROSA", 2, 20, 15))

	assert.Equal(t, 2, repo.CountBySpecies("rosa"))
	assert.Equal(t, 2, repo.CountBySpecies("ROSA"))
	assert.Equal(t, 2, repo.CountBySpecies("Rosa"))
	assert.Zero(t, repo.CountBySpecies("Ros"))
}

func TestHasMonocotWithPrice(t *testing.T) {
	repo := New()
	repo.AddPlant(nursery.NewPlant("Fern", "Pteridophyte", 3, 40, 5))
	repo.AddPlant(nursery.NewFloweringPlant("Tulip", "Tulipa", 5, 16, 5, false))
	assert.False(t, repo.HasMonocotWithPrice(5))

	repo.AddPlant(nursery.NewFloweringPlant("Lily", "Lilium", 2, 30, 5, true))
	assert.True(t, repo.HasMonocotWithPrice(5))
	assert.False(t, repo.HasMonocotWithPrice(5.0000001))
}

func TestAverageNonFloweringPrice_OnlyFlowering(t *testing.T) {
	repo := New()
	repo.AddPlant(nursery.NewFloweringPlant("Tulip", "Tulipa", 5, 16, 10, false))
	assert.Zero(t, repo.AverageNonFloweringPrice())
}

func TestBulkDiscount(t *testing.T) {
	repo := New()
	assert.Zero(t, repo.BulkDiscount(100, 100))
	assert.Zero(t, repo.BulkDiscount(50, 100))
	assert.InDelta(t, 10.001, repo.BulkDiscount(100.01, 100), 1e-9)
}

func TestLoyaltyDiscount(t *testing.T) {
	repo := seeded(t)
	assert.Zero(t, repo.LoyaltyDiscount(4))
	assert.InDelta(t, 125*0.05, repo.LoyaltyDiscount(5), 1e-9)

	repo.AddPlant(nursery.NewPlant("Oak", "Quercus", 10, 200, 75))
	assert.InDelta(t, 200*0.05, repo.LoyaltyDiscount(5), 1e-9)
}

func TestCustomerPurchases(t *testing.T) {
	repo := seeded(t)
	for i := 0; i < 6; i++ {
		repo.RecordCustomerPurchase()
	}

	assert.Equal(t, 6, repo.TotalCustomerPurchases())
	assert.InDelta(t, repo.TotalRevenue()*0.05, repo.LoyaltyDiscount(repo.TotalCustomerPurchases()), 1e-9)
}

func TestRepository_FloweringTagSurvivesCopy(t *testing.T) {
	repo := New()
	stored := repo.AddPlant(nursery.NewFloweringPlant("Lily", "Lilium", 2, 30, 12, true))

	got, ok := repo.Plant(stored.ID)
	require.True(t, ok)
	assert.True(t, got.IsFlowering())
	assert.True(t, got.IsMonocot())
}

func TestRepository_CallerCannotMutateStoredPlant(t *testing.T) {
	repo := New()
	in := nursery.NewFloweringPlant("Lily", "Lilium", 2, 30, 5, false)
	stored := repo.AddPlant(in)

	in.Flowering.IsMonocot = true
	assert.False(t, repo.HasMonocotWithPrice(5))

	stored.Flowering.IsMonocot = true
	assert.False(t, repo.HasMonocotWithPrice(5))

	repo.Plants()[0].Flowering.IsMonocot = true
	assert.False(t, repo.HasMonocotWithPrice(5))

	got, ok := repo.Plant(stored.ID)
	require.True(t, ok)
	got.Flowering.IsMonocot = true
	cheapest, ok := repo.CheapestPlant()
	require.True(t, ok)
	cheapest.Flowering.IsMonocot = true
	found, ok := repo.FindPlantByName("lily")
	require.True(t, ok)
	found.Flowering.IsMonocot = true

	assert.False(t, repo.HasMonocotWithPrice(5))
	again, ok := repo.Plant(stored.ID)
	require.True(t, ok)
	assert.False(t, again.IsMonocot())
}

func TestRecordCustomerPurchase_ReturnsDistinctTotals(t *testing.T) {
	repo := New()
	const n = 50

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		totals = make(map[int]bool, n)
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			total := repo.RecordCustomerPurchase()
			mu.Lock()
			totals[total] = true
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Len(t, totals, n)
	for i := 1; i <= n; i++ {
		assert.True(t, totals[i], "missing total %d", i)
	}
	assert.Equal(t, n, repo.TotalCustomerPurchases())
}
