package domain

// CarUpdate is a partial update against a car. A nil field means the
// caller did not propose a value for it.
type CarUpdate struct {
	Make               *string     `json:"make,omitempty"`
	Model              *string     `json:"model,omitempty"`
	Year               *int        `json:"year,omitempty"`
	VIN                *string     `json:"vin,omitempty"`
	StockNumber        *string     `json:"stock_number,omitempty"`
	BodyType           *BodyType   `json:"body_type,omitempty"`
	FuelType           *FuelType   `json:"fuel_type,omitempty"`
	Transmission       *string     `json:"transmission,omitempty"`
	Drivetrain         *Drivetrain `json:"drivetrain,omitempty"`
	Mileage            *int        `json:"mileage,omitempty"`
	Location           *string     `json:"location,omitempty"`
	Description        *string     `json:"description,omitempty"`
	Price              *float64    `json:"price,omitempty"`
	CostPrice          *float64    `json:"cost_price,omitempty"`
	ReconditioningCost *float64    `json:"reconditioning_cost,omitempty"`
	Status             *CarStatus  `json:"status,omitempty"`
	Sold               *bool       `json:"sold,omitempty"`
}

// Diff is the minimal set of field-level before/after pairs produced by
// comparing a proposed update against the stored record, classified by
// the nature of the change.
type Diff struct {
	Details ChangeDetails `json:"details"`
	Action  Action        `json:"action"`
}

// IsEmpty reports whether nothing actually changed. An empty diff must
// not be written to the audit log.
func (d Diff) IsEmpty() bool {
	return len(d.Details) == 0
}

// ComputeDiff compares a proposed partial update against the current
// persisted snapshot of a car and records only the fields that genuinely
// changed. It is pure: same inputs always produce the same diff.
//
// Numeric fields compare by value. A nil cost against a proposed 0 is a
// real change (unset to zero) and is recorded; a proposed value equal to
// the stored one is dropped.
func ComputeDiff(current *Car, proposed CarUpdate) Diff {
	details := ChangeDetails{}

	if proposed.Make != nil && *proposed.Make != current.Make {
		details["make"] = FieldChange{Old: current.Make, New: *proposed.Make}
	}
	if proposed.Model != nil && *proposed.Model != current.Model {
		details["model"] = FieldChange{Old: current.Model, New: *proposed.Model}
	}
	if proposed.Year != nil && *proposed.Year != current.Year {
		details["year"] = FieldChange{Old: current.Year, New: *proposed.Year}
	}
	if proposed.VIN != nil && *proposed.VIN != current.VIN {
		details["vin"] = FieldChange{Old: current.VIN, New: *proposed.VIN}
	}
	if proposed.StockNumber != nil && *proposed.StockNumber != current.StockNumber {
		details["stockNumber"] = FieldChange{Old: current.StockNumber, New: *proposed.StockNumber}
	}
	if proposed.BodyType != nil && *proposed.BodyType != current.BodyType {
		details["bodyType"] = FieldChange{Old: current.BodyType, New: *proposed.BodyType}
	}
	if proposed.FuelType != nil && *proposed.FuelType != current.FuelType {
		details["fuelType"] = FieldChange{Old: current.FuelType, New: *proposed.FuelType}
	}
	if proposed.Transmission != nil && *proposed.Transmission != current.Transmission {
		details["transmission"] = FieldChange{Old: current.Transmission, New: *proposed.Transmission}
	}
	if proposed.Drivetrain != nil && *proposed.Drivetrain != current.Drivetrain {
		details["drivetrain"] = FieldChange{Old: current.Drivetrain, New: *proposed.Drivetrain}
	}
	if proposed.Mileage != nil && *proposed.Mileage != current.Mileage {
		details["mileage"] = FieldChange{Old: current.Mileage, New: *proposed.Mileage}
	}
	if proposed.Location != nil && *proposed.Location != current.Location {
		details["location"] = FieldChange{Old: current.Location, New: *proposed.Location}
	}
	if proposed.Description != nil && *proposed.Description != current.Description {
		details["description"] = FieldChange{Old: current.Description, New: *proposed.Description}
	}
	if proposed.Price != nil && *proposed.Price != current.Price {
		details["price"] = FieldChange{Old: current.Price, New: *proposed.Price}
	}
	if proposed.CostPrice != nil && !floatPtrEqual(proposed.CostPrice, current.CostPrice) {
		details["costPrice"] = FieldChange{Old: nullableFloat(current.CostPrice), New: *proposed.CostPrice}
	}
	if proposed.ReconditioningCost != nil && !floatPtrEqual(proposed.ReconditioningCost, current.ReconditioningCost) {
		details["reconditioningCost"] = FieldChange{Old: nullableFloat(current.ReconditioningCost), New: *proposed.ReconditioningCost}
	}
	if proposed.Status != nil && *proposed.Status != current.Status {
		details["status"] = FieldChange{Old: current.Status, New: *proposed.Status}
	}
	if proposed.Sold != nil && *proposed.Sold != current.Sold {
		details["sold"] = FieldChange{Old: current.Sold, New: *proposed.Sold}
	}

	return Diff{Details: details, Action: classify(details)}
}

// classify picks the action tag for a diff. First match wins: a status
// transition outranks a price change, which outranks an expense, which
// outranks a relocation.
func classify(details ChangeDetails) Action {
	if _, ok := details["status"]; ok {
		return ActionStatusChange
	}
	if _, ok := details["price"]; ok {
		return ActionPriceChange
	}
	if _, ok := details["reconditioningCost"]; ok {
		return ActionExpenseAdded
	}
	if _, ok := details["location"]; ok {
		return ActionLocationChange
	}
	return ActionUpdate
}

// floatPtrEqual compares two nullable numeric values. nil equals only
// nil: an unset cost is distinct from a zero cost.
func floatPtrEqual(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// nullableFloat unwraps a nullable numeric for the details payload,
// preserving null for unset values.
func nullableFloat(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}
