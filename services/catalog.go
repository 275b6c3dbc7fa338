package services

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// The catalog loaders map PocketBase records into the engine's input structs.
// Handlers refresh these lists per request; the engine itself never queries.

func rollFromRecord(rec *core.Record) MaterialRoll {
	return MaterialRoll{
		ID:           rec.Id,
		Name:         rec.GetString("name"),
		Category:     rec.GetString("category"),
		RollWidth:    rec.GetFloat("roll_width"),
		StockLength:  rec.GetFloat("stock_length"),
		ReorderLevel: rec.GetFloat("reorder_level"),
		LastPrice:    rec.GetFloat("last_price"),
	}
}

func tierFromRecord(rec *core.Record) PricingTier {
	return PricingTier{
		ID:         rec.Id,
		Name:       rec.GetString("name"),
		Category:   rec.GetString("category"),
		Multiplier: rec.GetFloat("multiplier"),
	}
}

func productFromRecord(rec *core.Record) Product {
	p := Product{
		ID:         rec.Id,
		Name:       rec.GetString("name"),
		Category:   rec.GetString("category"),
		Price:      rec.GetFloat("price"),
		FloorPrice: rec.GetFloat("floor_price"),
		Quantity:   rec.GetFloat("quantity"),
	}
	if err := rec.UnmarshalJSONField("attributes", &p.Attributes); err != nil {
		log.Printf("catalog: product %s has malformed attributes: %v", rec.Id, err)
	}
	return p
}

func categoryFromRecord(rec *core.Record) CategoryConfig {
	c := CategoryConfig{
		Name: rec.GetString("name"),
	}
	if err := rec.UnmarshalJSONField("fields", &c.Fields); err != nil {
		log.Printf("catalog: category %s has malformed fields: %v", rec.Id, err)
	}
	return c
}

// LoadMaterialRolls returns all material rolls in the catalog.
func LoadMaterialRolls(app *pocketbase.PocketBase) ([]MaterialRoll, error) {
	records, err := app.FindAllRecords("material_rolls")
	if err != nil {
		return nil, fmt.Errorf("load material rolls: %w", err)
	}
	rolls := make([]MaterialRoll, 0, len(records))
	for _, rec := range records {
		rolls = append(rolls, rollFromRecord(rec))
	}
	return rolls, nil
}

// LoadPricingTiers returns all pricing tiers.
func LoadPricingTiers(app *pocketbase.PocketBase) ([]PricingTier, error) {
	records, err := app.FindAllRecords("pricing_tiers")
	if err != nil {
		return nil, fmt.Errorf("load pricing tiers: %w", err)
	}
	tiers := make([]PricingTier, 0, len(records))
	for _, rec := range records {
		tiers = append(tiers, tierFromRecord(rec))
	}
	return tiers, nil
}

// LoadProducts returns all catalog products.
func LoadProducts(app *pocketbase.PocketBase) ([]Product, error) {
	records, err := app.FindAllRecords("products")
	if err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}
	products := make([]Product, 0, len(records))
	for _, rec := range records {
		products = append(products, productFromRecord(rec))
	}
	return products, nil
}

// LoadCategoryConfigs returns all product category configurations.
func LoadCategoryConfigs(app *pocketbase.PocketBase) ([]CategoryConfig, error) {
	records, err := app.FindAllRecords("product_categories")
	if err != nil {
		return nil, fmt.Errorf("load product categories: %w", err)
	}
	configs := make([]CategoryConfig, 0, len(records))
	for _, rec := range records {
		configs = append(configs, categoryFromRecord(rec))
	}
	return configs, nil
}

// FindRoll resolves a material roll by record id.
func FindRoll(app *pocketbase.PocketBase, id string) (*MaterialRoll, error) {
	rec, err := app.FindRecordById("material_rolls", id)
	if err != nil {
		return nil, fmt.Errorf("material roll %s: %w", id, err)
	}
	roll := rollFromRecord(rec)
	return &roll, nil
}

// FindTier resolves a pricing tier by record id.
func FindTier(app *pocketbase.PocketBase, id string) (*PricingTier, error) {
	rec, err := app.FindRecordById("pricing_tiers", id)
	if err != nil {
		return nil, fmt.Errorf("pricing tier %s: %w", id, err)
	}
	tier := tierFromRecord(rec)
	return &tier, nil
}

// FindProduct resolves a catalog product by record id.
func FindProduct(app *pocketbase.PocketBase, id string) (*Product, error) {
	rec, err := app.FindRecordById("products", id)
	if err != nil {
		return nil, fmt.Errorf("product %s: %w", id, err)
	}
	product := productFromRecord(rec)
	return &product, nil
}
