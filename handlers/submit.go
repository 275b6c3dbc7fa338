package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"printquote/services"
)

// HandleQuoteSubmit handles POST /quote/submit
// Hands the accumulated line items to the sale creation collaborator.
// An empty quote is refused; if the sale fails the quote is preserved so the
// user can retry, and on success the quote is cleared.
func HandleQuoteSubmit(app *pocketbase.PocketBase, qs *QuoteStore) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quote := qs.Resolve(e)
		total := quote.Total()

		var saleID string
		err := quote.Submit(func(items []services.LineItem) error {
			id, err := services.CreateSale(app, items)
			if err != nil {
				return err
			}
			saleID = id
			return nil
		})
		if errors.Is(err, services.ErrEmptyQuote) {
			return apiError(e, http.StatusBadRequest, "Cannot submit an empty quote")
		}
		if err != nil {
			log.Printf("submit: HandleQuoteSubmit: create sale failed: %v", err)
			return apiError(e, http.StatusInternalServerError, "Could not create the sale. Please try again.")
		}

		return e.JSON(http.StatusOK, map[string]any{
			"ok":      true,
			"sale_id": saleID,
			"total":   total,
		})
	}
}
