package main

import (
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"printquote/collections"
	"printquote/handlers"
)

func main() {
	app := pocketbase.New()

	// Create collections and seed the default catalog on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		if err := collections.Seed(app); err != nil {
			log.Printf("Warning: seed data failed: %v", err)
		}
		return se.Next()
	})

	quotes := handlers.NewQuoteStore()

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		// ── Quote (per-session, in memory) ───────────────────────
		se.Router.GET("/quote", handlers.HandleQuoteView(app, quotes))
		se.Router.POST("/quote/items/area", handlers.HandleQuoteAddArea(app, quotes))
		se.Router.POST("/quote/items/film", handlers.HandleQuoteAddFilm(app, quotes))
		se.Router.POST("/quote/items/product", handlers.HandleQuoteAddProduct(app, quotes))
		se.Router.POST("/quote/items/manual", handlers.HandleQuoteAddManual(app, quotes))
		se.Router.DELETE("/quote/items/{index}", handlers.HandleQuoteRemoveItem(app, quotes))
		se.Router.DELETE("/quote", handlers.HandleQuoteClear(app, quotes))
		se.Router.POST("/quote/submit", handlers.HandleQuoteSubmit(app, quotes))

		// ── Catalog (read-only engine inputs) ────────────────────
		se.Router.GET("/catalog/rolls", handlers.HandleCatalogRolls(app))
		se.Router.GET("/catalog/tiers", handlers.HandleCatalogTiers(app))
		se.Router.GET("/catalog/products", handlers.HandleCatalogProducts(app))
		se.Router.GET("/catalog/categories", handlers.HandleCatalogCategories(app))
		se.Router.GET("/catalog/presets", handlers.HandleCatalogPresets(app))

		// ── Catalog import ───────────────────────────────────────
		se.Router.GET("/catalog/template", handlers.HandleCatalogTemplate(app))
		se.Router.POST("/catalog/import", handlers.HandleCatalogImport(app))

		// ── Unit conversion display ──────────────────────────────
		se.Router.GET("/convert", handlers.HandleConvertLength(app))

		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
