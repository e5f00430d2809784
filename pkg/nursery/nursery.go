// Package nursery defines the plant and purchase records kept by a plant
// nursery and the repository contract that answers queries over them.
package nursery

import (
	"time"

	"github.com/google/uuid"
)

// Flowering holds the attributes only flowering plants carry.
type Flowering struct {
	IsMonocot bool `json:"is_monocot"`
}

// Plant is a single plant in stock. A plant with a non-nil Flowering is a
// flowering plant; the variant is chosen by the constructor and never changes.
type Plant struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Species   string     `json:"species"`
	Age       int        `json:"age"`
	Height    float64    `json:"height"`
	Price     float64    `json:"price"`
	Flowering *Flowering `json:"flowering,omitempty"`
}

// NewPlant returns a plain, non-flowering plant.
func NewPlant(name, species string, age int, height, price float64) Plant {
	return Plant{Name: name, Species: species, Age: age, Height: height, Price: price}
}

// NewFloweringPlant returns a flowering plant.
func NewFloweringPlant(name, species string, age int, height, price float64, monocot bool) Plant {
	p := NewPlant(name, species, age, height, price)
	p.Flowering = &Flowering{IsMonocot: monocot}
	return p
}

// Clone returns a copy of p that shares no memory with it.
func (p Plant) Clone() Plant {
	if p.Flowering != nil {
		f := *p.Flowering
		p.Flowering = &f
	}
	return p
}

// IsFlowering reports whether p is a flowering plant.
func (p Plant) IsFlowering() bool {
	return p.Flowering != nil
}

// IsMonocot reports whether p is a flowering monocot.
func (p Plant) IsMonocot() bool {
	return p.Flowering != nil && p.Flowering.IsMonocot
}

// Purchase records one customer purchase event.
type Purchase struct {
	ID         uuid.UUID `json:"id"`
	Count      int       `json:"count"`
	RecordedAt time.Time `json:"recorded_at"`
}

// Repository defines the operations the nursery exposes over its plants and
// purchases. Absent results are reported through the boolean return.
// Plants passed in and handed out are copies; RecordCustomerPurchase returns
// the purchase total including the new record.
type Repository interface {
	AddPlant(p Plant) Plant
	RemovePlant(p Plant)
	Plant(id uuid.UUID) (Plant, bool)
	Plants() []Plant

	TotalRevenue() float64
	CountFloweringPlants() int
	AverageNonFloweringPrice() float64
	CheapestPlant() (Plant, bool)
	CountBySpecies(species string) int
	HasMonocotWithPrice(price float64) bool
	FindPlantByName(name string) (Plant, bool)
	AverageAge() float64

	BulkDiscount(totalAmount, threshold float64) float64
	LoyaltyDiscount(purchaseCount int) float64

	RecordCustomerPurchase() int
	TotalCustomerPurchases() int
}

const (
	bulkDiscountRate    = 0.1
	loyaltyDiscountRate = 0.05
	// LoyaltyMinPurchases is the purchase count from which loyalty discounts apply.
	LoyaltyMinPurchases = 5
)

// BulkDiscount returns 10% of totalAmount when it is strictly greater than
// threshold.
func BulkDiscount(totalAmount, threshold float64) float64 {
	if totalAmount > threshold {
		return totalAmount * bulkDiscountRate
	}
	return 0
}

// LoyaltyDiscount returns 5% of revenue once purchaseCount reaches
// LoyaltyMinPurchases.
func LoyaltyDiscount(revenue float64, purchaseCount int) float64 {
	if purchaseCount >= LoyaltyMinPurchases {
		return revenue * loyaltyDiscountRate
	}
	return 0
}
