package collections_test

import (
	"testing"

	"printquote/collections"
	"printquote/testhelpers"
)

// expectedCollections is the full list of collections that Setup() must create.
var expectedCollections = []string{
	"material_rolls",
	"pricing_tiers",
	"product_categories",
	"products",
	"sales",
	"sale_items",
}

func TestSetup_AllCollectionsExist(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	for _, name := range expectedCollections {
		col, err := app.FindCollectionByNameOrId(name)
		if err != nil {
			t.Errorf("collection %q not found after Setup(): %v", name, err)
			continue
		}
		if col.Name != name {
			t.Errorf("expected collection name %q, got %q", name, col.Name)
		}
	}
}

func TestSetup_Idempotent(t *testing.T) {
	app := testhelpers.NewTestApp(t) // Setup() already called once via NewTestApp

	// Collect IDs from first run
	ids := make(map[string]string)
	for _, name := range expectedCollections {
		col, _ := app.FindCollectionByNameOrId(name)
		ids[name] = col.Id
	}

	// Run Setup() again
	collections.Setup(app)

	// IDs should not change
	for _, name := range expectedCollections {
		col, err := app.FindCollectionByNameOrId(name)
		if err != nil {
			t.Errorf("collection %q missing after second Setup(): %v", name, err)
			continue
		}
		if col.Id != ids[name] {
			t.Errorf("collection %q id changed after second Setup(): %s -> %s", name, ids[name], col.Id)
		}
	}
}

func TestSetup_MaterialRollFields(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	col, _ := app.FindCollectionByNameOrId("material_rolls")

	requiredFields := []string{"name", "roll_width"}
	optionalFields := []string{"category", "stock_length", "reorder_level", "last_price", "created", "updated"}

	for _, f := range requiredFields {
		if col.Fields.GetByName(f) == nil {
			t.Errorf("material_rolls: missing required field %q", f)
		}
	}
	for _, f := range optionalFields {
		if col.Fields.GetByName(f) == nil {
			t.Errorf("material_rolls: missing field %q", f)
		}
	}
}

func TestSetup_SaleItemFields(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	col, _ := app.FindCollectionByNameOrId("sale_items")

	for _, f := range []string{"sale", "sort_order", "kind", "name", "qty", "unit_price"} {
		if col.Fields.GetByName(f) == nil {
			t.Errorf("sale_items: missing field %q", f)
		}
	}
}
