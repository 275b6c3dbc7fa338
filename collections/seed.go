package collections

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// ── Definition structs ───────────────────────────────────────────────────

type rollDef struct {
	name         string
	category     string
	rollWidth    float64
	stockLength  float64
	reorderLevel float64
	lastPrice    float64
}

type tierDef struct {
	name       string
	category   string
	multiplier float64
}

type attrFieldDef struct {
	Label   string   `json:"label"`
	Options []string `json:"options"`
}

type categoryDef struct {
	name   string
	fields []attrFieldDef
}

type attrDef struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type productDef struct {
	name       string
	category   string
	attributes []attrDef
	price      float64
	floorPrice float64
	quantity   float64
}

// ── Seed data ────────────────────────────────────────────────────────────

var seedRolls = []rollDef{
	{"Flexi China 280gsm", "banner", 3.2, 50, 10, 1850000},
	{"Flexi Korea 440gsm", "banner", 3.2, 42, 10, 2600000},
	{"Vinyl Glossy", "sticker", 1.06, 45, 8, 950000},
	{"One Way Vision", "sticker", 1.27, 30, 5, 1400000},
	{"Screen Film", "film", 0.61, 60, 12, 750000},
}

var seedTiers = []tierDef{
	{"Standard Print", "banner", 3},
	{"High Resolution", "banner", 5},
	{"Laminated Outdoor", "sticker", 7.5},
}

var seedCategories = []categoryDef{
	{
		name: "Apparel",
		fields: []attrFieldDef{
			{Label: "Size", Options: []string{"S", "M", "L", "XL", "XXL"}},
			{Label: "Color", Options: []string{"Black", "White", "Navy", "Maroon"}},
			{Label: "Material", Options: []string{"Cotton 24s", "Cotton 30s"}},
		},
	},
	{
		name: "Drinkware",
		fields: []attrFieldDef{
			{Label: "Type", Options: []string{"Ceramic", "Stainless"}},
			{Label: "Finish", Options: []string{"Glossy", "Matte"}},
		},
	},
	{
		name: "Stationery",
		fields: []attrFieldDef{
			{Label: "Paper", Options: []string{"Art Carton 260gsm", "HVS 100gsm"}},
			{Label: "Finish", Options: []string{"Glossy", "Doff"}},
			{Label: "Sides", Options: []string{"Single", "Double"}},
		},
	},
}

var seedProducts = []productDef{
	{
		name:     "Custom T-Shirt",
		category: "Apparel",
		attributes: []attrDef{
			{Label: "Size", Value: "L"},
			{Label: "Color", Value: "Black"},
			{Label: "Material", Value: "Cotton 30s"},
		},
		price: 95000, floorPrice: 80000, quantity: 48,
	},
	{
		name:     "Custom Mug",
		category: "Drinkware",
		attributes: []attrDef{
			{Label: "Type", Value: "Ceramic"},
			{Label: "Finish", Value: "Glossy"},
		},
		price: 25000, floorPrice: 20000, quantity: 120,
	},
	{
		name:     "Business Cards (box of 100)",
		category: "Stationery",
		attributes: []attrDef{
			{Label: "Paper", Value: "Art Carton 260gsm"},
			{Label: "Finish", Value: "Doff"},
			{Label: "Sides", Value: "Double"},
		},
		price: 45000, floorPrice: 35000, quantity: 60,
	},
}

// Seed inserts the default print-shop catalog. It is a no-op when the
// material_rolls collection already has records, so restarts never duplicate
// data.
func Seed(app *pocketbase.PocketBase) error {
	existing, err := app.FindAllRecords("material_rolls")
	if err != nil {
		return fmt.Errorf("seed: check material_rolls: %w", err)
	}
	if len(existing) > 0 {
		log.Println("Seed data already present, skipping.")
		return nil
	}

	rollsCol, err := app.FindCollectionByNameOrId("material_rolls")
	if err != nil {
		return fmt.Errorf("seed: material_rolls collection: %w", err)
	}
	for _, def := range seedRolls {
		rec := core.NewRecord(rollsCol)
		rec.Set("name", def.name)
		rec.Set("category", def.category)
		rec.Set("roll_width", def.rollWidth)
		rec.Set("stock_length", def.stockLength)
		rec.Set("reorder_level", def.reorderLevel)
		rec.Set("last_price", def.lastPrice)
		if err := app.Save(rec); err != nil {
			return fmt.Errorf("seed: save roll %q: %w", def.name, err)
		}
	}

	tiersCol, err := app.FindCollectionByNameOrId("pricing_tiers")
	if err != nil {
		return fmt.Errorf("seed: pricing_tiers collection: %w", err)
	}
	for _, def := range seedTiers {
		rec := core.NewRecord(tiersCol)
		rec.Set("name", def.name)
		rec.Set("category", def.category)
		rec.Set("multiplier", def.multiplier)
		if err := app.Save(rec); err != nil {
			return fmt.Errorf("seed: save tier %q: %w", def.name, err)
		}
	}

	categoriesCol, err := app.FindCollectionByNameOrId("product_categories")
	if err != nil {
		return fmt.Errorf("seed: product_categories collection: %w", err)
	}
	for _, def := range seedCategories {
		fields, err := json.Marshal(def.fields)
		if err != nil {
			return fmt.Errorf("seed: marshal fields for %q: %w", def.name, err)
		}
		rec := core.NewRecord(categoriesCol)
		rec.Set("name", def.name)
		rec.Set("fields", string(fields))
		if err := app.Save(rec); err != nil {
			return fmt.Errorf("seed: save category %q: %w", def.name, err)
		}
	}

	productsCol, err := app.FindCollectionByNameOrId("products")
	if err != nil {
		return fmt.Errorf("seed: products collection: %w", err)
	}
	for _, def := range seedProducts {
		attrs, err := json.Marshal(def.attributes)
		if err != nil {
			return fmt.Errorf("seed: marshal attributes for %q: %w", def.name, err)
		}
		rec := core.NewRecord(productsCol)
		rec.Set("name", def.name)
		rec.Set("category", def.category)
		rec.Set("attributes", string(attrs))
		rec.Set("price", def.price)
		rec.Set("floor_price", def.floorPrice)
		rec.Set("quantity", def.quantity)
		if err := app.Save(rec); err != nil {
			return fmt.Errorf("seed: save product %q: %w", def.name, err)
		}
	}

	log.Printf("Seeded %d rolls, %d tiers, %d categories, %d products",
		len(seedRolls), len(seedTiers), len(seedCategories), len(seedProducts))
	return nil
}
