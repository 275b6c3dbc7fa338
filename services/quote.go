package services

import (
	"errors"
	"fmt"
)

// ErrEmptyQuote is returned when submitting a quote with no line items.
var ErrEmptyQuote = errors.New("quote has no line items")

// Quote is the in-progress ordered list of line items for one session.
// Insertion order is display order. The total is derived on every read and
// never stored. Mutation happens only through Append, Remove and Clear.
type Quote struct {
	items []LineItem
}

// NewQuote returns an empty quote.
func NewQuote() *Quote {
	return &Quote{}
}

// Append adds an item to the end of the quote. Validation happened in the
// builders; identical items are kept as separate rows, never merged.
func (q *Quote) Append(item LineItem) {
	q.items = append(q.items, item)
}

// Remove deletes the item at the given position, preserving the order of the
// remaining items.
func (q *Quote) Remove(index int) error {
	if index < 0 || index >= len(q.items) {
		return fmt.Errorf("line item index %d out of range", index)
	}
	q.items = append(q.items[:index], q.items[index+1:]...)
	return nil
}

// Clear discards all line items.
func (q *Quote) Clear() {
	q.items = nil
}

// Items returns a copy of the line items in display order.
func (q *Quote) Items() []LineItem {
	out := make([]LineItem, len(q.items))
	copy(out, q.items)
	return out
}

// Len returns the number of line items.
func (q *Quote) Len() int {
	return len(q.items)
}

// Total recomputes the quote total from the items on every call.
func (q *Quote) Total() float64 {
	return ItemsTotal(q.items)
}

// ItemsTotal sums quantity x unit price over a list of line items.
func ItemsTotal(items []LineItem) float64 {
	var total float64
	for _, item := range items {
		total += item.LineTotal()
	}
	return total
}

// Submit hands the full item list to the sale-creation collaborator.
// An empty quote is refused before the collaborator is called. If the
// collaborator fails the quote is left untouched so the user can retry;
// on success the quote is cleared.
func (q *Quote) Submit(createSale func(items []LineItem) error) error {
	if len(q.items) == 0 {
		return ErrEmptyQuote
	}
	if err := createSale(q.Items()); err != nil {
		return err
	}
	q.Clear()
	return nil
}
