package domain

import (
	"math"
	"sort"
)

// Metrics is a derived snapshot of inventory financial health. It is
// computed on demand from the full car collection and never persisted.
type Metrics struct {
	GrossInventoryValue  float64 `json:"grossInventoryValue"`
	ProjectedRevenue     float64 `json:"projectedRevenue"`
	PotentialProfit      float64 `json:"potentialProfit"`
	RealizedProfit       float64 `json:"realizedProfit"`
	AvgMarkup            float64 `json:"avgMarkup"`
	ActiveInventoryCount int     `json:"activeInventoryCount"`
	SoldCount            int     `json:"soldCount"`
	TotalInventory       int     `json:"totalInventory"`
	TurnoverRate         float64 `json:"turnoverRate"`
	AvgDaysToSell        int     `json:"avgDaysToSell"`
}

// ProfitByMakeEntry is a per-make rollup over sold cars
type ProfitByMakeEntry struct {
	Make         string  `json:"make"`
	TotalProfit  float64 `json:"totalProfit"`
	TotalRevenue float64 `json:"totalRevenue"`
	TotalCost    float64 `json:"totalCost"`
	Count        int     `json:"count"`
	AvgProfit    float64 `json:"avgProfit"`
	AvgMarkup    float64 `json:"avgMarkup"`
}

// ProfitabilitySnapshot bundles the headline metrics with the per-make
// breakdown computed from the same collection
type ProfitabilitySnapshot struct {
	Metrics      Metrics             `json:"metrics"`
	ProfitByMake []ProfitByMakeEntry `json:"profitByMake"`
}

// DateRangePeriod echoes the requested bounds back in the report
type DateRangePeriod struct {
	StartDate string `json:"startDate,omitempty"`
	EndDate   string `json:"endDate,omitempty"`
}

// DateRangeMetrics summarizes sales performance over a pre-filtered set
// of cars (the caller applies the createdAt bounds upstream).
type DateRangeMetrics struct {
	Period              DateRangePeriod `json:"period"`
	CarsProcessed       int             `json:"carsProcessed"`
	CarsSold            int             `json:"carsSold"`
	TotalRevenue        float64         `json:"totalRevenue"`
	TotalCost           float64         `json:"totalCost"`
	TotalReconditioning float64         `json:"totalReconditioning"`
	TotalProfit         float64         `json:"totalProfit"`
	AvgProfitPerCar     float64         `json:"avgProfitPerCar"`
}

// ComputeMetrics computes a deterministic profitability snapshot from the
// full inventory. It is total over well-typed input: an empty collection
// yields zeroed metrics, never an error. Absent numeric fields count as 0
// so reporting stays available for partially populated legacy rows.
func ComputeMetrics(cars []*Car) ProfitabilitySnapshot {
	var active, sold []*Car
	for _, car := range cars {
		if car.IsSold() {
			sold = append(sold, car)
		} else {
			active = append(active, car)
		}
	}

	var gross, projected float64
	for _, car := range active {
		gross += car.EffectiveCost()
		projected += car.Price
	}

	var realized float64
	for _, car := range sold {
		realized += carProfit(car)
	}

	avgMarkup := 0.0
	if len(active) > 0 {
		var sum float64
		for _, car := range active {
			sum += markupPercent(car)
		}
		avgMarkup = sum / float64(len(active))
	}

	turnover := 0.0
	if len(cars) > 0 {
		turnover = float64(len(sold)) / float64(len(cars)) * 100
	}

	// Coarse velocity estimate derived from turnover, not measured from
	// actual sale timestamps.
	avgDaysToSell := 0
	if turnover > 0 {
		avgDaysToSell = int(math.Round(30 / (turnover / 100)))
	}

	return ProfitabilitySnapshot{
		Metrics: Metrics{
			GrossInventoryValue:  gross,
			ProjectedRevenue:     projected,
			PotentialProfit:      projected - gross,
			RealizedProfit:       realized,
			AvgMarkup:            avgMarkup,
			ActiveInventoryCount: len(active),
			SoldCount:            len(sold),
			TotalInventory:       len(cars),
			TurnoverRate:         round2(turnover),
			AvgDaysToSell:        avgDaysToSell,
		},
		ProfitByMake: profitByMake(sold),
	}
}

// ComputeDateRangeMetrics computes sales totals over a pre-filtered car
// collection. Same sold partition and defaulting rules as ComputeMetrics.
func ComputeDateRangeMetrics(cars []*Car, period DateRangePeriod) DateRangeMetrics {
	var sold []*Car
	for _, car := range cars {
		if car.IsSold() {
			sold = append(sold, car)
		}
	}

	var revenue, cost, reconditioning, profit float64
	for _, car := range sold {
		revenue += car.Price
		cost += car.EffectiveCost()
		reconditioning += car.EffectiveReconditioning()
		profit += carProfit(car)
	}

	avgProfit := 0.0
	if len(sold) > 0 {
		avgProfit = profit / float64(len(sold))
	}

	return DateRangeMetrics{
		Period:              period,
		CarsProcessed:       len(cars),
		CarsSold:            len(sold),
		TotalRevenue:        revenue,
		TotalCost:           cost,
		TotalReconditioning: reconditioning,
		TotalProfit:         profit,
		AvgProfitPerCar:     avgProfit,
	}
}

// profitByMake groups sold cars by make, accumulating totals in the order
// makes are first encountered so equal-profit ties keep discovery order.
func profitByMake(sold []*Car) []ProfitByMakeEntry {
	index := make(map[string]int)
	entries := []ProfitByMakeEntry{}

	for _, car := range sold {
		make := car.Make
		if make == "" {
			make = "Unknown"
		}
		i, ok := index[make]
		if !ok {
			i = len(entries)
			index[make] = i
			entries = append(entries, ProfitByMakeEntry{Make: make})
		}
		entries[i].TotalProfit += carProfit(car)
		entries[i].TotalRevenue += car.Price
		entries[i].TotalCost += car.EffectiveCost()
		entries[i].Count++
	}

	for i := range entries {
		e := &entries[i]
		e.AvgProfit = e.TotalProfit / float64(e.Count)
		divisor := e.TotalCost
		if divisor == 0 {
			divisor = e.TotalRevenue
		}
		if divisor != 0 {
			e.AvgMarkup = (e.TotalRevenue - e.TotalCost) / divisor * 100
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].TotalProfit > entries[j].TotalProfit
	})

	return entries
}

func carProfit(car *Car) float64 {
	return car.Price - car.EffectiveCost() - car.EffectiveReconditioning()
}

// markupPercent is the percentage by which listing price exceeds
// effective cost. Cost falls back to price when unset or zero; if the
// divisor is still zero the car contributes 0 rather than NaN.
func markupPercent(car *Car) float64 {
	cost := car.EffectiveCost()
	if cost == 0 {
		cost = car.Price
	}
	if cost == 0 {
		return 0
	}
	return (car.Price - cost) / cost * 100
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
