package services_test

import (
	"math"
	"testing"

	"printquote/services"
	"printquote/testhelpers"
)

func TestCreateSale(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	items := []services.LineItem{
		{ID: "manual_a", Kind: services.KindManual, Name: "Delivery", Quantity: 1, UnitPrice: 20000},
		{ID: "area_b", Kind: services.KindArea, Name: "Flexi China 280gsm 1.00m x 0.60m", Quantity: 2, UnitPrice: 30000},
	}

	saleID, err := services.CreateSale(app, items)
	if err != nil {
		t.Fatalf("CreateSale: %v", err)
	}
	if saleID == "" {
		t.Fatal("expected a sale id")
	}

	sale, err := app.FindRecordById("sales", saleID)
	if err != nil {
		t.Fatalf("sale record not found: %v", err)
	}
	if got, want := sale.GetFloat("total"), 80000.0; math.Abs(got-want) > 1e-9 {
		t.Errorf("expected total %v, got %v", want, got)
	}

	saved, err := app.FindRecordsByFilter(
		"sale_items",
		"sale = {:saleId}",
		"sort_order",
		0,
		0,
		map[string]any{"saleId": saleID},
	)
	if err != nil {
		t.Fatalf("failed to query sale_items: %v", err)
	}
	if len(saved) != 2 {
		t.Fatalf("expected 2 sale items, got %d", len(saved))
	}

	first := saved[0]
	if first.GetString("name") != "Delivery" {
		t.Errorf("expected first item by sort order to be Delivery, got %q", first.GetString("name"))
	}
	if first.GetString("kind") != "manual" {
		t.Errorf("expected kind manual, got %q", first.GetString("kind"))
	}
	if first.GetInt("qty") != 1 {
		t.Errorf("expected qty 1, got %d", first.GetInt("qty"))
	}

	second := saved[1]
	if second.GetFloat("unit_price") != 30000 {
		t.Errorf("expected unit price 30000, got %v", second.GetFloat("unit_price"))
	}
}
