package domain

import (
	"encoding/json"
	"testing"
)

func floatPtr(v float64) *float64 { return &v }
func statusPtr(s CarStatus) *CarStatus { return &s }
func strPtr(s string) *string { return &s }

func testCar() *Car {
	return &Car{
		ID:        "car-1",
		Make:      "Toyota",
		Model:     "Camry",
		Year:      2021,
		Price:     20000,
		CostPrice: floatPtr(15000),
		Status:    CarStatusAvailable,
		Location:  "Main Lot",
	}
}

func TestComputeDiff_EmptyUpdate(t *testing.T) {
	diff := ComputeDiff(testCar(), CarUpdate{})

	if !diff.IsEmpty() {
		t.Error("expected empty diff for empty update")
	}
	if len(diff.Details) != 0 {
		t.Errorf("expected no details, got %v", diff.Details)
	}
}

func TestComputeDiff_IdenticalValues(t *testing.T) {
	car := testCar()
	proposed := CarUpdate{
		Make:      strPtr(car.Make),
		Model:     strPtr(car.Model),
		Year:      &car.Year,
		Price:     floatPtr(car.Price),
		CostPrice: floatPtr(*car.CostPrice),
		Status:    statusPtr(car.Status),
		Location:  strPtr(car.Location),
	}

	diff := ComputeDiff(car, proposed)
	if !diff.IsEmpty() {
		t.Errorf("proposing the stored values back must yield an empty diff, got %v", diff.Details)
	}
}

func TestComputeDiff_StatusChange(t *testing.T) {
	car := testCar()
	diff := ComputeDiff(car, CarUpdate{Status: statusPtr(CarStatusReserved)})

	if diff.Action != ActionStatusChange {
		t.Errorf("expected action %s, got %s", ActionStatusChange, diff.Action)
	}
	change, ok := diff.Details["status"]
	if !ok {
		t.Fatal("expected status in details")
	}
	if change.Old != CarStatusAvailable || change.New != CarStatusReserved {
		t.Errorf("unexpected status change pair: %+v", change)
	}
}

func TestComputeDiff_ActionPriority(t *testing.T) {
	tests := []struct {
		name     string
		proposed CarUpdate
		want     Action
	}{
		{
			name:     "status outranks price",
			proposed: CarUpdate{Status: statusPtr(CarStatusReserved), Price: floatPtr(22000)},
			want:     ActionStatusChange,
		},
		{
			name:     "price outranks expense",
			proposed: CarUpdate{Price: floatPtr(22000), ReconditioningCost: floatPtr(500)},
			want:     ActionPriceChange,
		},
		{
			name:     "expense outranks location",
			proposed: CarUpdate{ReconditioningCost: floatPtr(500), Location: strPtr("Back Lot")},
			want:     ActionExpenseAdded,
		},
		{
			name:     "location change",
			proposed: CarUpdate{Location: strPtr("Back Lot")},
			want:     ActionLocationChange,
		},
		{
			name:     "generic update",
			proposed: CarUpdate{Description: strPtr("One owner")},
			want:     ActionUpdate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diff := ComputeDiff(testCar(), tt.proposed)
			if diff.IsEmpty() {
				t.Fatal("expected non-empty diff")
			}
			if diff.Action != tt.want {
				t.Errorf("expected action %s, got %s", tt.want, diff.Action)
			}
		})
	}
}

func TestComputeDiff_NumericEquality(t *testing.T) {
	car := testCar()
	car.Price = 20000

	// Same numeric value must not register as a change.
	diff := ComputeDiff(car, CarUpdate{Price: floatPtr(20000.0)})
	if !diff.IsEmpty() {
		t.Errorf("20000 and 20000.0 are equal, got details %v", diff.Details)
	}
}

func TestComputeDiff_NullCostToZeroIsAChange(t *testing.T) {
	car := testCar()
	car.ReconditioningCost = nil

	diff := ComputeDiff(car, CarUpdate{ReconditioningCost: floatPtr(0)})
	if diff.IsEmpty() {
		t.Fatal("unset cost to zero cost is a real change")
	}

	change := diff.Details["reconditioningCost"]
	if change.Old != nil {
		t.Errorf("expected old value nil, got %v", change.Old)
	}
	if change.New != 0.0 {
		t.Errorf("expected new value 0, got %v", change.New)
	}
	if diff.Action != ActionExpenseAdded {
		t.Errorf("expected action %s, got %s", ActionExpenseAdded, diff.Action)
	}
}

func TestComputeDiff_Deterministic(t *testing.T) {
	proposed := CarUpdate{Price: floatPtr(22000), Status: statusPtr(CarStatusReserved)}

	first := ComputeDiff(testCar(), proposed)
	second := ComputeDiff(testCar(), proposed)

	if first.Action != second.Action || len(first.Details) != len(second.Details) {
		t.Error("diff must be deterministic for identical inputs")
	}
	for field, change := range first.Details {
		if second.Details[field] != change {
			t.Errorf("field %s differs between calls", field)
		}
	}
}

func TestChangeDetails_RoundTrip(t *testing.T) {
	details := ChangeDetails{
		"price":  {Old: 20000.0, New: 22000.0},
		"status": {Old: "available", New: "reserved"},
	}

	raw, err := json.Marshal(details)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded ChangeDetails
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if decoded["price"].Old != 20000.0 || decoded["price"].New != 22000.0 {
		t.Errorf("price pair lost in round trip: %+v", decoded["price"])
	}
	if decoded["status"].Old != "available" || decoded["status"].New != "reserved" {
		t.Errorf("status pair lost in round trip: %+v", decoded["status"])
	}
}
