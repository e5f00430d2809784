// Package memory implements an in-memory nursery repository.
package memory

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"nursery/pkg/nursery"
)

var _ nursery.Repository = (*Repository)(nil)

// Repository provides an in-memory implementation of nursery.Repository.
// Plants keep their insertion order.
type Repository struct {
	mu        sync.RWMutex
	plants    []nursery.Plant
	purchases []nursery.Purchase
	now       func() time.Time
}

// New creates an empty repository.
func New() *Repository {
	return &Repository{
		plants:    make([]nursery.Plant, 0),
		purchases: make([]nursery.Purchase, 0),
		now:       time.Now,
	}
}

// AddPlant appends the plant, assigning an ID when it has none.
func (r *Repository) AddPlant(p nursery.Plant) nursery.Plant {
	p = p.Clone()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.plants = append(r.plants, p)
	return p.Clone()
}

// RemovePlant removes the first plant with the same ID as p.
func (r *Repository) RemovePlant(p nursery.Plant) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.plants {
		if r.plants[i].ID == p.ID {
			r.plants = append(r.plants[:i], r.plants[i+1:]...)
			return
		}
	}
}

// Plant retrieves a plant by ID.
func (r *Repository) Plant(id uuid.UUID) (nursery.Plant, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.plants {
		if p.ID == id {
			return p.Clone(), true
		}
	}
	return nursery.Plant{}, false
}

// Plants returns all plants in insertion order.
func (r *Repository) Plants() []nursery.Plant {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]nursery.Plant, len(r.plants))
	for i, p := range r.plants {
		out[i] = p.Clone()
	}
	return out
}

// TotalRevenue sums the price of every plant.
func (r *Repository) TotalRevenue() float64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.totalRevenue()
}

func (r *Repository) totalRevenue() float64 {
	var sum float64
	for _, p := range r.plants {
		sum += p.Price
	}
	return sum
}

// CountFloweringPlants counts flowering plants.
func (r *Repository) CountFloweringPlants() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, p := range r.plants {
		if p.IsFlowering() {
			n++
		}
	}
	return n
}

// AverageNonFloweringPrice is the mean price of non-flowering plants, or 0
// when there are none.
func (r *Repository) AverageNonFloweringPrice() float64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var (
		sum float64
		n   int
	)
	for _, p := range r.plants {
		if p.IsFlowering() {
			continue
		}
		sum += p.Price
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// CheapestPlant returns the lowest priced plant. On ties the earliest added
// plant wins.
func (r *Repository) CheapestPlant() (nursery.Plant, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(r.plants) == 0 {
		return nursery.Plant{}, false
	}
	cheapest := r.plants[0]
	for _, p := range r.plants[1:] {
		if p.Price < cheapest.Price {
			cheapest = p
		}
	}
	return cheapest.Clone(), true
}

// CountBySpecies counts plants whose species matches, ignoring case.
func (r *Repository) CountBySpecies(species string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, p := range r.plants {
		if strings.EqualFold(p.Species, species) {
			n++
		}
	}
	return n
}

// HasMonocotWithPrice reports whether a flowering monocot costs exactly price.
func (r *Repository) HasMonocotWithPrice(price float64) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.plants {
		if p.IsMonocot() && p.Price == price {
			return true
		}
	}
	return false
}

// FindPlantByName returns the first plant whose name matches, ignoring case.
func (r *Repository) FindPlantByName(name string) (nursery.Plant, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.plants {
		if strings.EqualFold(p.Name, name) {
			return p.Clone(), true
		}
	}
	return nursery.Plant{}, false
}

// AverageAge is the mean plant age, or 0 for an empty nursery.
func (r *Repository) AverageAge() float64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(r.plants) == 0 {
		return 0
	}
	total := 0
	for _, p := range r.plants {
		total += p.Age
	}
	return float64(total) / float64(len(r.plants))
}

// BulkDiscount see nursery.BulkDiscount.
func (r *Repository) BulkDiscount(totalAmount, threshold float64) float64 {
	return nursery.BulkDiscount(totalAmount, threshold)
}

// LoyaltyDiscount is computed against the current total revenue, not a
// customer's own spend.
func (r *Repository) LoyaltyDiscount(purchaseCount int) float64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return nursery.LoyaltyDiscount(r.totalRevenue(), purchaseCount)
}

// RecordCustomerPurchase appends a purchase worth one and returns the new
// purchase total.
func (r *Repository) RecordCustomerPurchase() int {
	p := nursery.Purchase{ID: uuid.New(), Count: 1, RecordedAt: r.now().UTC()}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.purchases = append(r.purchases, p)
	return r.totalPurchases()
}

// TotalCustomerPurchases sums the count of every purchase record.
func (r *Repository) TotalCustomerPurchases() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.totalPurchases()
}

func (r *Repository) totalPurchases() int {
	total := 0
	for _, p := range r.purchases {
		total += p.Count
	}
	return total
}
