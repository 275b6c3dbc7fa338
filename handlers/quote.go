package handlers

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"printquote/services"
)

// parseFloat parses a trimmed form value, treating blank or malformed input
// as zero so the engine's own validation reports the failure.
func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}

func parseInt(s string) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return v
}

// parseUnit maps a form value to a LengthUnit, recording a field error on
// unknown units. Blank defaults to centimeters, the dashboard's default.
func parseUnit(value, field string, errors map[string]string) services.LengthUnit {
	value = strings.TrimSpace(value)
	if value == "" {
		return services.UnitCentimeter
	}
	unit, err := services.ParseLengthUnit(value)
	if err != nil {
		errors[field] = "Unknown length unit"
		return services.UnitCentimeter
	}
	return unit
}

// resolveRoll turns a submitted roll id into an engine entity. A blank id
// yields nil so the builder reports the missing selection; a non-blank id
// that no longer exists is the exceptional case and is surfaced as not found.
func resolveRoll(app *pocketbase.PocketBase, id string) (*services.MaterialRoll, bool) {
	if id == "" {
		return nil, true
	}
	roll, err := services.FindRoll(app, id)
	if err != nil {
		log.Printf("quote: resolveRoll: %v", err)
		return nil, false
	}
	return roll, true
}

func resolveTier(app *pocketbase.PocketBase, id string) (*services.PricingTier, bool) {
	if id == "" {
		return nil, true
	}
	tier, err := services.FindTier(app, id)
	if err != nil {
		log.Printf("quote: resolveTier: %v", err)
		return nil, false
	}
	return tier, true
}

func resolveProduct(app *pocketbase.PocketBase, id string) (*services.Product, bool) {
	if id == "" {
		return nil, true
	}
	product, err := services.FindProduct(app, id)
	if err != nil {
		log.Printf("quote: resolveProduct: %v", err)
		return nil, false
	}
	return product, true
}

// HandleQuoteView handles GET /quote
// Returns the session's line items and derived total.
func HandleQuoteView(app *pocketbase.PocketBase, qs *QuoteStore) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		return quoteJSON(e, qs.Resolve(e))
	}
}

// HandleQuoteAddArea handles POST /quote/items/area
// Prices a dimensional cut (length x width x tier multiplier) and appends it.
func HandleQuoteAddArea(app *pocketbase.PocketBase, qs *QuoteStore) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid form data")
		}

		errors := make(map[string]string)
		in := services.AreaItemInput{
			Length:        parseFloat(e.Request.FormValue("length")),
			LengthUnit:    parseUnit(e.Request.FormValue("length_unit"), "length_unit", errors),
			Width:         parseFloat(e.Request.FormValue("width")),
			WidthUnit:     parseUnit(e.Request.FormValue("width_unit"), "width_unit", errors),
			Quantity:      parseInt(e.Request.FormValue("qty")),
			ExtraFee:      parseFloat(e.Request.FormValue("extra_fee")),
			ExtraFeeLabel: strings.TrimSpace(e.Request.FormValue("extra_fee_label")),
		}
		if len(errors) > 0 {
			return apiFieldErrors(e, errors)
		}

		roll, ok := resolveRoll(app, strings.TrimSpace(e.Request.FormValue("roll")))
		if !ok {
			return apiError(e, http.StatusNotFound, "Material roll not found")
		}
		tier, ok := resolveTier(app, strings.TrimSpace(e.Request.FormValue("tier")))
		if !ok {
			return apiError(e, http.StatusNotFound, "Pricing tier not found")
		}

		item, err := services.BuildAreaItem(in, roll, tier)
		if err != nil {
			return apiError(e, http.StatusBadRequest, err.Error())
		}

		quote := qs.Resolve(e)
		quote.Append(item)
		return quoteJSON(e, quote)
	}
}

// HandleQuoteAddFilm handles POST /quote/items/film
// Prices film stock at a preset's flat price or a custom per-meter rate.
func HandleQuoteAddFilm(app *pocketbase.PocketBase, qs *QuoteStore) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid form data")
		}

		errors := make(map[string]string)
		in := services.FilmItemInput{
			Length:        parseFloat(e.Request.FormValue("length")),
			LengthUnit:    parseUnit(e.Request.FormValue("length_unit"), "length_unit", errors),
			RatePerMeter:  parseFloat(e.Request.FormValue("rate_per_meter")),
			Quantity:      parseInt(e.Request.FormValue("qty")),
			ExtraFee:      parseFloat(e.Request.FormValue("extra_fee")),
			ExtraFeeLabel: strings.TrimSpace(e.Request.FormValue("extra_fee_label")),
		}

		presetName := strings.TrimSpace(e.Request.FormValue("preset"))
		if presetName != "" {
			in.Preset = services.FindFilmPreset(presetName)
			if in.Preset == nil {
				errors["preset"] = "Unknown film preset"
			}
		}
		if len(errors) > 0 {
			return apiFieldErrors(e, errors)
		}

		roll, ok := resolveRoll(app, strings.TrimSpace(e.Request.FormValue("roll")))
		if !ok {
			return apiError(e, http.StatusNotFound, "Material roll not found")
		}

		item, err := services.BuildFilmItem(in, roll)
		if err != nil {
			return apiError(e, http.StatusBadRequest, err.Error())
		}

		quote := qs.Resolve(e)
		quote.Append(item)
		return quoteJSON(e, quote)
	}
}

// HandleQuoteAddProduct handles POST /quote/items/product
// Appends a catalog product at a negotiated unit price, floor enforced.
func HandleQuoteAddProduct(app *pocketbase.PocketBase, qs *QuoteStore) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid form data")
		}

		in := services.ProductItemInput{
			NegotiatedPrice: parseFloat(e.Request.FormValue("negotiated_price")),
			Quantity:        parseInt(e.Request.FormValue("qty")),
			ExtraFee:        parseFloat(e.Request.FormValue("extra_fee")),
			ExtraFeeLabel:   strings.TrimSpace(e.Request.FormValue("extra_fee_label")),
		}

		product, ok := resolveProduct(app, strings.TrimSpace(e.Request.FormValue("product")))
		if !ok {
			return apiError(e, http.StatusNotFound, "Product not found")
		}

		item, err := services.BuildProductItem(in, product)
		if err != nil {
			return apiError(e, http.StatusBadRequest, err.Error())
		}

		quote := qs.Resolve(e)
		quote.Append(item)
		return quoteJSON(e, quote)
	}
}

// HandleQuoteAddManual handles POST /quote/items/manual
// Appends a free-text charge untied to any catalog entity.
func HandleQuoteAddManual(app *pocketbase.PocketBase, qs *QuoteStore) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid form data")
		}

		in := services.ManualItemInput{
			Name:      e.Request.FormValue("name"),
			UnitPrice: parseFloat(e.Request.FormValue("unit_price")),
			Quantity:  parseInt(e.Request.FormValue("qty")),
		}

		item, err := services.BuildManualItem(in)
		if err != nil {
			return apiError(e, http.StatusBadRequest, err.Error())
		}

		quote := qs.Resolve(e)
		quote.Append(item)
		return quoteJSON(e, quote)
	}
}

// HandleQuoteRemoveItem handles DELETE /quote/items/{index}
// Removes the item at the given display position.
func HandleQuoteRemoveItem(app *pocketbase.PocketBase, qs *QuoteStore) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		index, err := strconv.Atoi(e.Request.PathValue("index"))
		if err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid line item index")
		}

		quote := qs.Resolve(e)
		if err := quote.Remove(index); err != nil {
			return apiError(e, http.StatusNotFound, err.Error())
		}
		return quoteJSON(e, quote)
	}
}

// HandleQuoteClear handles DELETE /quote
// Discards all line items in the session's quote.
func HandleQuoteClear(app *pocketbase.PocketBase, qs *QuoteStore) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quote := qs.Resolve(e)
		quote.Clear()
		return quoteJSON(e, quote)
	}
}
