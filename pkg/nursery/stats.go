package nursery

// StatsOptions selects the parameters of the statistics report.
type StatsOptions struct {
	Species       string  `json:"species"`
	MonocotPrice  float64 `json:"monocot_price"`
	BulkThreshold float64 `json:"bulk_threshold"`
}

// DefaultStatsOptions mirrors the report the nursery staff print by default.
func DefaultStatsOptions() StatsOptions {
	return StatsOptions{Species: "Rosa", MonocotPrice: 5, BulkThreshold: 100}
}

// Statistics is a point-in-time summary of the nursery.
type Statistics struct {
	TotalRevenue             float64 `json:"total_revenue"`
	FloweringCount           int     `json:"flowering_count"`
	AverageNonFloweringPrice float64 `json:"average_non_flowering_price"`
	CheapestPlant            string  `json:"cheapest_plant"`
	Species                  string  `json:"species"`
	SpeciesCount             int     `json:"species_count"`
	MonocotPrice             float64 `json:"monocot_price"`
	HasMonocotWithPrice      bool    `json:"has_monocot_with_price"`
	BulkDiscount             float64 `json:"bulk_discount"`
	LoyaltyDiscount          float64 `json:"loyalty_discount"`
	AverageAge               float64 `json:"average_age"`
	TotalPurchases           int     `json:"total_purchases"`
}

// Summarize computes the statistics report from r.
func Summarize(r Repository, opts StatsOptions) Statistics {
	revenue := r.TotalRevenue()
	purchases := r.TotalCustomerPurchases()

	cheapest := "None"
	if p, ok := r.CheapestPlant(); ok {
		cheapest = p.Name
	}

	return Statistics{
		TotalRevenue:             revenue,
		FloweringCount:           r.CountFloweringPlants(),
		AverageNonFloweringPrice: r.AverageNonFloweringPrice(),
		CheapestPlant:            cheapest,
		Species:                  opts.Species,
		SpeciesCount:             r.CountBySpecies(opts.Species),
		MonocotPrice:             opts.MonocotPrice,
		HasMonocotWithPrice:      r.HasMonocotWithPrice(opts.MonocotPrice),
		BulkDiscount:             r.BulkDiscount(revenue, opts.BulkThreshold),
		LoyaltyDiscount:          r.LoyaltyDiscount(purchases),
		AverageAge:               r.AverageAge(),
		TotalPurchases:           purchases,
	}
}
