package services_test

import (
	"testing"

	"printquote/services"
	"printquote/testhelpers"
)

func TestLoadMaterialRolls(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	rec := testhelpers.CreateTestRoll(t, app, "Vinyl Glossy", 1.06)

	rolls, err := services.LoadMaterialRolls(app)
	if err != nil {
		t.Fatalf("LoadMaterialRolls: %v", err)
	}
	if len(rolls) != 1 {
		t.Fatalf("expected 1 roll, got %d", len(rolls))
	}

	roll := rolls[0]
	if roll.ID != rec.Id {
		t.Errorf("expected id %q, got %q", rec.Id, roll.ID)
	}
	if roll.Name != "Vinyl Glossy" {
		t.Errorf("expected name %q, got %q", "Vinyl Glossy", roll.Name)
	}
	if roll.RollWidth != 1.06 {
		t.Errorf("expected roll width 1.06, got %v", roll.RollWidth)
	}
	if roll.StockLength != 50 {
		t.Errorf("expected stock length 50, got %v", roll.StockLength)
	}
}

func TestLoadPricingTiers(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestTier(t, app, "Standard Print", 3)
	testhelpers.CreateTestTier(t, app, "High Resolution", 5)

	tiers, err := services.LoadPricingTiers(app)
	if err != nil {
		t.Fatalf("LoadPricingTiers: %v", err)
	}
	if len(tiers) != 2 {
		t.Fatalf("expected 2 tiers, got %d", len(tiers))
	}
}

func TestLoadProducts_Attributes(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestProduct(t, app, "Custom T-Shirt", 95000, 80000)

	products, err := services.LoadProducts(app)
	if err != nil {
		t.Fatalf("LoadProducts: %v", err)
	}
	if len(products) != 1 {
		t.Fatalf("expected 1 product, got %d", len(products))
	}

	p := products[0]
	if p.Price != 95000 || p.FloorPrice != 80000 {
		t.Errorf("unexpected prices: %v / %v", p.Price, p.FloorPrice)
	}
	if len(p.Attributes) != 2 {
		t.Fatalf("expected 2 attributes, got %d", len(p.Attributes))
	}
	if p.Attributes[0].Label != "Size" || p.Attributes[0].Value != "L" {
		t.Errorf("unexpected first attribute: %+v", p.Attributes[0])
	}
}

func TestFindRoll(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	rec := testhelpers.CreateTestRoll(t, app, "One Way Vision", 1.27)

	roll, err := services.FindRoll(app, rec.Id)
	if err != nil {
		t.Fatalf("FindRoll: %v", err)
	}
	if roll.Name != "One Way Vision" {
		t.Errorf("expected name %q, got %q", "One Way Vision", roll.Name)
	}

	if _, err := services.FindRoll(app, "missing123456"); err == nil {
		t.Error("expected error for unknown roll id")
	}
}
