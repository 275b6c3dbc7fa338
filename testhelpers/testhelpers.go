// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"encoding/json"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"printquote/collections"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app)

	return app
}

// CreateTestRoll creates a material roll record and returns it.
func CreateTestRoll(t *testing.T, app *pocketbase.PocketBase, name string, widthM float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("material_rolls")
	if err != nil {
		t.Fatalf("failed to find material_rolls collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("name", name)
	record.Set("category", "banner")
	record.Set("roll_width", widthM)
	record.Set("stock_length", 50.0)
	record.Set("reorder_level", 10.0)
	record.Set("last_price", 1850000.0)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test roll: %v", err)
	}

	return record
}

// CreateTestTier creates a pricing tier record with the given multiplier
// (rupiah per square centimeter) and returns it.
func CreateTestTier(t *testing.T, app *pocketbase.PocketBase, name string, multiplier float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("pricing_tiers")
	if err != nil {
		t.Fatalf("failed to find pricing_tiers collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("name", name)
	record.Set("category", "banner")
	record.Set("multiplier", multiplier)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test tier: %v", err)
	}

	return record
}

// CreateTestProduct creates a product record with the given preferred and
// floor prices and returns it.
func CreateTestProduct(t *testing.T, app *pocketbase.PocketBase, name string, price, floorPrice float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("products")
	if err != nil {
		t.Fatalf("failed to find products collection: %v", err)
	}

	attrs, err := json.Marshal([]map[string]string{
		{"label": "Size", "value": "L"},
		{"label": "Color", "value": "Black"},
	})
	if err != nil {
		t.Fatalf("failed to marshal test attributes: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("name", name)
	record.Set("category", "Apparel")
	record.Set("attributes", string(attrs))
	record.Set("price", price)
	record.Set("floor_price", floorPrice)
	record.Set("quantity", 10.0)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test product: %v", err)
	}

	return record
}
