package handlers

import (
	"math"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"printquote/testhelpers"
)

func TestHandleQuoteSubmit_EmptyQuote(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	qs := NewQuoteStore()

	req := newFormRequest(http.MethodPost, "/quote/submit", url.Values{}, "sess1")
	rec := httptest.NewRecorder()

	if err := HandleQuoteSubmit(app, qs)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "empty quote") {
		t.Errorf("expected empty quote message, got %s", rec.Body.String())
	}
}

func TestHandleQuoteSubmit_CreatesSale(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	qs := NewQuoteStore()

	add := func(name, price, qty string) {
		t.Helper()
		form := url.Values{}
		form.Set("name", name)
		form.Set("unit_price", price)
		form.Set("qty", qty)
		req := newFormRequest(http.MethodPost, "/quote/items/manual", form, "sess1")
		rec := httptest.NewRecorder()
		if err := HandleQuoteAddManual(app, qs)(newTestRequestEvent(app, req, rec)); err != nil {
			t.Fatalf("add handler returned error: %v", err)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
		}
	}

	add("Delivery", "20000", "1")
	add("Design", "50000", "2")

	req := newFormRequest(http.MethodPost, "/quote/submit", url.Values{}, "sess1")
	rec := httptest.NewRecorder()
	if err := HandleQuoteSubmit(app, qs)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("submit handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	body := decodeJSON(t, rec)
	saleID, _ := body["sale_id"].(string)
	if saleID == "" {
		t.Fatal("expected a sale_id in the response")
	}
	if got := body["total"].(float64); math.Abs(got-120000) > 1e-6 {
		t.Errorf("expected total 120000, got %v", got)
	}

	sale, err := app.FindRecordById("sales", saleID)
	if err != nil {
		t.Fatalf("sale record not found: %v", err)
	}
	if got := sale.GetFloat("total"); math.Abs(got-120000) > 1e-6 {
		t.Errorf("expected persisted total 120000, got %v", got)
	}

	lines, err := app.FindRecordsByFilter("sale_items", "sale = {:sale}", "sort_order", 0, 0, map[string]any{"sale": saleID})
	if err != nil {
		t.Fatalf("failed to load sale items: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("expected 2 sale items, got %d", len(lines))
	}
	if got := lines[0].GetString("name"); got != "Delivery" {
		t.Errorf("expected first line Delivery, got %q", got)
	}
	if got := lines[1].GetString("name"); got != "Design" {
		t.Errorf("expected second line Design, got %q", got)
	}
	if got := lines[1].GetInt("qty"); got != 2 {
		t.Errorf("expected qty 2 on second line, got %d", got)
	}

	// A successful submit hands the items off and clears the quote.
	viewReq := newFormRequest(http.MethodGet, "/quote", url.Values{}, "sess1")
	viewRec := httptest.NewRecorder()
	if err := HandleQuoteView(app, qs)(newTestRequestEvent(app, viewReq, viewRec)); err != nil {
		t.Fatalf("view handler returned error: %v", err)
	}
	if items := quoteItems(t, decodeJSON(t, viewRec)); len(items) != 0 {
		t.Errorf("expected cleared quote after submit, got %d items", len(items))
	}
}

func TestHandleQuoteSubmit_DoubleSubmit(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	qs := NewQuoteStore()

	form := url.Values{}
	form.Set("name", "Delivery")
	form.Set("unit_price", "20000")
	form.Set("qty", "1")
	addReq := newFormRequest(http.MethodPost, "/quote/items/manual", form, "sess1")
	addRec := httptest.NewRecorder()
	if err := HandleQuoteAddManual(app, qs)(newTestRequestEvent(app, addReq, addRec)); err != nil {
		t.Fatalf("add handler returned error: %v", err)
	}

	first := httptest.NewRecorder()
	if err := HandleQuoteSubmit(app, qs)(newTestRequestEvent(app, newFormRequest(http.MethodPost, "/quote/submit", url.Values{}, "sess1"), first)); err != nil {
		t.Fatalf("submit handler returned error: %v", err)
	}
	if first.Code != http.StatusOK {
		t.Fatalf("expected status 200 on first submit, got %d", first.Code)
	}

	second := httptest.NewRecorder()
	if err := HandleQuoteSubmit(app, qs)(newTestRequestEvent(app, newFormRequest(http.MethodPost, "/quote/submit", url.Values{}, "sess1"), second)); err != nil {
		t.Fatalf("submit handler returned error: %v", err)
	}
	if second.Code != http.StatusBadRequest {
		t.Errorf("expected status 400 on a second submit of a cleared quote, got %d", second.Code)
	}
}
