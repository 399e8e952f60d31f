// Package cart holds the storefront's client-side cart: an ordered list of
// catalog items with quantities, shared by every view for the lifetime of
// the process. Nothing is persisted; a restart starts from an empty cart.
package cart

import (
	"sync"

	"github.com/shopspring/decimal"
)

// Item is a catalog item plus the quantity selected by the customer.
type Item struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	ImageURL string          `json:"image_url"`
	Category string          `json:"category"`
	Quantity int             `json:"quantity"`
}

// Subtotal returns price × quantity for the entry.
func (i Item) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Candidate describes a catalog item being added to the cart. Only ID and
// Price are meaningful for the cart's invariants; the rest is carried as-is.
type Candidate struct {
	ID       int64
	Name     string
	Price    decimal.Decimal
	ImageURL string
	Category string
}

// Provider is the single shared holder of cart state. Every mutation builds a
// new slice from the previous one and swaps the reference, so snapshots
// handed out by Items are never modified afterwards.
//
// Operations never fail: inputs that cannot be applied are no-ops.
type Provider struct {
	mu    sync.Mutex
	items []Item
}

// NewProvider returns an empty cart.
func NewProvider() *Provider {
	return &Provider{items: []Item{}}
}

// AddItem increments the quantity of the entry sharing the candidate's ID,
// or appends a new entry with quantity 1. Fields of an existing entry other
// than quantity are left untouched.
func (p *Provider) AddItem(candidate Candidate) []Item {
	p.mu.Lock()
	defer p.mu.Unlock()

	next := make([]Item, 0, len(p.items)+1)
	found := false
	for _, item := range p.items {
		if item.ID == candidate.ID {
			item.Quantity++
			found = true
		}
		next = append(next, item)
	}
	if !found {
		next = append(next, Item{
			ID:       candidate.ID,
			Name:     candidate.Name,
			Price:    candidate.Price,
			ImageURL: candidate.ImageURL,
			Category: candidate.Category,
			Quantity: 1,
		})
	}
	p.items = next
	return clone(next)
}

// RemoveItem drops the entry at the zero-based position. A position outside
// the collection leaves the cart unchanged and reports false.
func (p *Provider) RemoveItem(position int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if position < 0 || position >= len(p.items) {
		return false
	}
	next := make([]Item, 0, len(p.items)-1)
	for i, item := range p.items {
		if i != position {
			next = append(next, item)
		}
	}
	p.items = next
	return true
}

// UpdateQuantity sets the quantity of the entry with the given ID. Quantities
// of zero or below are ignored rather than removing the entry.
func (p *Provider) UpdateQuantity(id int64, quantity int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if quantity <= 0 {
		return false
	}
	next := make([]Item, len(p.items))
	updated := false
	for i, item := range p.items {
		if item.ID == id {
			item.Quantity = quantity
			updated = true
		}
		next[i] = item
	}
	if updated {
		p.items = next
	}
	return updated
}

// Clear empties the cart.
func (p *Provider) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.items = []Item{}
}

// Items returns a copy of the entries in insertion order.
func (p *Provider) Items() []Item {
	p.mu.Lock()
	defer p.mu.Unlock()
	return clone(p.items)
}

// RemoveItemByID drops the entry with the given ID and reports whether one
// was present.
func (p *Provider) RemoveItemByID(id int64) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	position := p.indexOf(id)
	if position < 0 {
		return false
	}
	next := make([]Item, 0, len(p.items)-1)
	next = append(next, p.items[:position]...)
	p.items = append(next, p.items[position+1:]...)
	return true
}

// indexOf returns the position of the entry with the given ID, or -1. The
// caller holds p.mu.
func (p *Provider) indexOf(id int64) int {
	for i, item := range p.items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// Snapshot is a consistent read of the cart together with its derived values.
type Snapshot struct {
	Items []Item          `json:"items"`
	Count int             `json:"count"`
	Total decimal.Decimal `json:"total"`
}

// Snapshot reads items, count and total under a single lock.
func (p *Provider) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	items := clone(p.items)
	return Snapshot{Items: items, Count: Count(items), Total: Total(items)}
}

// Count is the badge count: the number of distinct entries, not the sum of
// quantities.
func Count(items []Item) int {
	return len(items)
}

// Total sums price × quantity over the entries.
func Total(items []Item) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}
	return total
}

func clone(items []Item) []Item {
	out := make([]Item, len(items))
	copy(out, items)
	return out
}
