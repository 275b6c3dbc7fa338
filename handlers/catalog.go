package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"printquote/services"
)

// HandleCatalogRolls handles GET /catalog/rolls
func HandleCatalogRolls(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		rolls, err := services.LoadMaterialRolls(app)
		if err != nil {
			log.Printf("catalog: HandleCatalogRolls: %v", err)
			return apiError(e, http.StatusInternalServerError, "Could not load material rolls")
		}
		return e.JSON(http.StatusOK, map[string]any{"ok": true, "rolls": rolls})
	}
}

// HandleCatalogTiers handles GET /catalog/tiers
func HandleCatalogTiers(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		tiers, err := services.LoadPricingTiers(app)
		if err != nil {
			log.Printf("catalog: HandleCatalogTiers: %v", err)
			return apiError(e, http.StatusInternalServerError, "Could not load pricing tiers")
		}
		return e.JSON(http.StatusOK, map[string]any{"ok": true, "tiers": tiers})
	}
}

// HandleCatalogProducts handles GET /catalog/products
func HandleCatalogProducts(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		products, err := services.LoadProducts(app)
		if err != nil {
			log.Printf("catalog: HandleCatalogProducts: %v", err)
			return apiError(e, http.StatusInternalServerError, "Could not load products")
		}
		return e.JSON(http.StatusOK, map[string]any{"ok": true, "products": products})
	}
}

// HandleCatalogCategories handles GET /catalog/categories
func HandleCatalogCategories(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		categories, err := services.LoadCategoryConfigs(app)
		if err != nil {
			log.Printf("catalog: HandleCatalogCategories: %v", err)
			return apiError(e, http.StatusInternalServerError, "Could not load product categories")
		}
		return e.JSON(http.StatusOK, map[string]any{"ok": true, "categories": categories})
	}
}

// HandleCatalogPresets handles GET /catalog/presets
// Lists the fixed film sheet presets.
func HandleCatalogPresets(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		return e.JSON(http.StatusOK, map[string]any{"ok": true, "presets": services.FilmPresets})
	}
}

// HandleConvertLength handles GET /convert?value=&unit=
// Renders the given length in every supported unit for display.
func HandleConvertLength(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		unit, err := services.ParseLengthUnit(strings.TrimSpace(e.Request.URL.Query().Get("unit")))
		if err != nil {
			return apiError(e, http.StatusBadRequest, err.Error())
		}
		value := parseFloat(e.Request.URL.Query().Get("value"))
		return e.JSON(http.StatusOK, map[string]any{
			"ok":         true,
			"conversion": services.ConvertDisplay(value, unit),
		})
	}
}

// HandleCatalogTemplate handles GET /catalog/template
// Serves the Excel template for catalog import.
func HandleCatalogTemplate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		xlsxBytes, err := services.GenerateCatalogTemplate()
		if err != nil {
			log.Printf("catalog: HandleCatalogTemplate: failed to generate: %v", err)
			return apiError(e, http.StatusInternalServerError, "Failed to generate template")
		}

		filename := fmt.Sprintf("Catalog_Template_%d.xlsx", time.Now().Year())
		e.Response.Header().Set("Content-Type",
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition",
			fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(xlsxBytes)
		return nil
	}
}

// HandleCatalogImport handles POST /catalog/import
// Accepts an .xlsx upload, validates every row, and commits only when the
// whole file is clean; otherwise the row errors are returned.
func HandleCatalogImport(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		// Parse multipart form (max 10MB)
		if err := e.Request.ParseMultipartForm(10 << 20); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid upload")
		}

		file, header, err := e.Request.FormFile("file")
		if err != nil {
			return apiError(e, http.StatusBadRequest, "Missing file upload")
		}
		defer file.Close()

		if !strings.HasSuffix(strings.ToLower(header.Filename), ".xlsx") {
			return apiError(e, http.StatusBadRequest, "Unsupported file format: must be .xlsx")
		}

		imp, err := services.ParseCatalogWorkbook(file)
		if err != nil {
			return apiError(e, http.StatusBadRequest, err.Error())
		}

		result, err := services.CommitCatalogImport(app, imp)
		if err != nil {
			log.Printf("catalog: HandleCatalogImport: commit failed: %v", err)
			return apiError(e, http.StatusInternalServerError, "Import failed. Please try again.")
		}

		status := http.StatusOK
		if result.Failed > 0 {
			status = http.StatusUnprocessableEntity
		}
		return e.JSON(status, map[string]any{
			"ok":     result.Failed == 0,
			"result": result,
		})
	}
}
