package collections_test

import (
	"testing"

	"printquote/collections"
	"printquote/testhelpers"
)

func TestSeed_PopulatesCatalog(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	if err := collections.Seed(app); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	counts := map[string]int{
		"material_rolls":     5,
		"pricing_tiers":      3,
		"product_categories": 3,
		"products":           3,
	}
	for name, want := range counts {
		records, err := app.FindAllRecords(name)
		if err != nil {
			t.Fatalf("query %s: %v", name, err)
		}
		if len(records) != want {
			t.Errorf("%s: expected %d seeded records, got %d", name, want, len(records))
		}
	}
}

func TestSeed_Idempotent(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	if err := collections.Seed(app); err != nil {
		t.Fatalf("first Seed: %v", err)
	}
	if err := collections.Seed(app); err != nil {
		t.Fatalf("second Seed: %v", err)
	}

	records, err := app.FindAllRecords("material_rolls")
	if err != nil {
		t.Fatalf("query material_rolls: %v", err)
	}
	if len(records) != 5 {
		t.Errorf("expected seed to run once, got %d rolls", len(records))
	}
}

func TestSeed_ProductFloorsBelowPrices(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	if err := collections.Seed(app); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	products, err := app.FindAllRecords("products")
	if err != nil {
		t.Fatalf("query products: %v", err)
	}
	for _, p := range products {
		price := p.GetFloat("price")
		floor := p.GetFloat("floor_price")
		if floor > price {
			t.Errorf("product %q: floor %v above price %v", p.GetString("name"), floor, price)
		}
		if price <= 0 {
			t.Errorf("product %q: non-positive price %v", p.GetString("name"), price)
		}
	}
}
