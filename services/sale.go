package services

import (
	"fmt"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// CreateSale persists a submitted quote as a sale record with one sale_items
// child per line item, all in a single transaction. It returns the new sale's
// record id. The caller (Quote.Submit) guarantees a non-empty item list.
func CreateSale(app *pocketbase.PocketBase, items []LineItem) (string, error) {
	var saleID string

	err := app.RunInTransaction(func(txApp core.App) error {
		salesCol, err := txApp.FindCollectionByNameOrId("sales")
		if err != nil {
			return fmt.Errorf("sales collection not found: %w", err)
		}
		itemsCol, err := txApp.FindCollectionByNameOrId("sale_items")
		if err != nil {
			return fmt.Errorf("sale_items collection not found: %w", err)
		}

		sale := core.NewRecord(salesCol)
		sale.Set("total", ItemsTotal(items))
		if err := txApp.Save(sale); err != nil {
			return fmt.Errorf("save sale: %w", err)
		}

		for i, item := range items {
			rec := core.NewRecord(itemsCol)
			rec.Set("sale", sale.Id)
			rec.Set("sort_order", i+1)
			rec.Set("kind", string(item.Kind))
			rec.Set("name", item.Name)
			rec.Set("qty", item.Quantity)
			rec.Set("unit_price", item.UnitPrice)
			if err := txApp.Save(rec); err != nil {
				return fmt.Errorf("save sale item %d: %w", i+1, err)
			}
		}

		saleID = sale.Id
		return nil
	})
	if err != nil {
		return "", err
	}
	return saleID, nil
}
