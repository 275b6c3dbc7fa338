package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"printquote/services"
)

// apiError writes a JSON error envelope with a human-readable message.
func apiError(e *core.RequestEvent, statusCode int, message string) error {
	return e.JSON(statusCode, map[string]any{
		"ok":    false,
		"error": message,
	})
}

// apiFieldErrors writes a JSON error envelope carrying per-field messages,
// for form input that failed before reaching the engine.
func apiFieldErrors(e *core.RequestEvent, errors map[string]string) error {
	return e.JSON(http.StatusBadRequest, map[string]any{
		"ok":           false,
		"error":        "Please fix the errors below",
		"field_errors": errors,
	})
}

// quoteJSON renders the current quote state: the ordered line items with
// their line totals, and the derived quote total.
func quoteJSON(e *core.RequestEvent, q *services.Quote) error {
	items := q.Items()
	rows := make([]map[string]any, 0, len(items))
	for _, item := range items {
		rows = append(rows, map[string]any{
			"id":         item.ID,
			"kind":       item.Kind,
			"name":       item.Name,
			"qty":        item.Quantity,
			"unit_price": item.UnitPrice,
			"line_total": item.LineTotal(),
		})
	}
	return e.JSON(http.StatusOK, map[string]any{
		"ok":    true,
		"items": rows,
		"total": q.Total(),
	})
}
