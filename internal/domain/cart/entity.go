package cart

import (
	"slices"
	"sort"
)

// Cart is the session's view of what is in the cart. Every mutator validates before touching
// any field, so a rejected call leaves the cart unchanged.
type Cart struct {
	userID    string
	order     []string
	items     map[string]LineItem
	selected  map[string]struct{}
	pending   map[string]Mutation
	syncState SyncState
}

// Snapshot is a detached copy for readers.
type Snapshot struct {
	UserID    string
	Items     []LineItem
	Selected  []string
	Pending   []Mutation
	SyncState SyncState
}

// SelectedItems returns the selected lines in cart order.
func (s Snapshot) SelectedItems() []LineItem {
	ids := make(map[string]struct{}, len(s.Selected))
	for _, id := range s.Selected {
		ids[id] = struct{}{}
	}
	out := make([]LineItem, 0, len(ids))
	for _, item := range s.Items {
		if _, ok := ids[item.ProductID]; ok {
			out = append(out, item)
		}
	}
	return out
}

func New(userID string) *Cart {
	return &Cart{
		userID:    userID,
		items:     make(map[string]LineItem),
		selected:  make(map[string]struct{}),
		pending:   make(map[string]Mutation),
		syncState: SyncIdle,
	}
}

// Restore rebuilds a cart from persisted or server state. Selection ids that are not in items are dropped.
func Restore(userID string, items []LineItem, selected []string) *Cart {
	c := New(userID)
	for _, item := range items {
		if _, dup := c.items[item.ProductID]; dup {
			continue
		}
		c.order = append(c.order, item.ProductID)
		c.items[item.ProductID] = item
	}
	for _, id := range selected {
		if _, ok := c.items[id]; ok {
			c.selected[id] = struct{}{}
		}
	}
	return c
}

func (c *Cart) UserID() string { return c.userID }
func (c *Cart) IsGuest() bool  { return c.userID == "" }
func (c *Cart) Len() int       { return len(c.items) }
func (c *Cart) IsEmpty() bool  { return len(c.items) == 0 }

func (c *Cart) SyncState() SyncState { return c.syncState }

func (c *Cart) SetSyncState(s SyncState) {
	c.syncState = s
}

// Add merges qty into an existing line or creates a new one. The merged quantity must fit the stock.
func (c *Cart) Add(p Product, qty int) (LineItem, error) {
	if qty < 1 {
		return LineItem{}, ErrInvalidQuantity
	}
	if err := p.Validate(); err != nil {
		return LineItem{}, err
	}

	existing, ok := c.items[p.ID]
	if !ok {
		item, err := NewLineItem(p, qty)
		if err != nil {
			return LineItem{}, err
		}
		c.order = append(c.order, p.ID)
		c.items[p.ID] = item
		return item, nil
	}

	merged := existing.withProduct(p)
	if err := merged.ValidateQuantity(existing.Quantity + qty); err != nil {
		return LineItem{}, err
	}
	merged.Quantity = existing.Quantity + qty
	c.items[p.ID] = merged
	return merged, nil
}

func (c *Cart) SetQuantity(productID string, n int) (LineItem, error) {
	item, ok := c.items[productID]
	if !ok {
		return LineItem{}, ErrProductNotInCart
	}
	if err := item.ValidateQuantity(n); err != nil {
		return LineItem{}, err
	}
	item.Quantity = n
	c.items[productID] = item
	return item, nil
}

// Remove drops the line and its selection.
func (c *Cart) Remove(productID string) error {
	if _, ok := c.items[productID]; !ok {
		return ErrProductNotInCart
	}
	c.drop(productID)
	return nil
}

func (c *Cart) drop(productID string) {
	delete(c.items, productID)
	delete(c.selected, productID)
	c.order = slices.DeleteFunc(c.order, func(id string) bool { return id == productID })
}

func (c *Cart) Select(productID string) error {
	if _, ok := c.items[productID]; !ok {
		return ErrProductNotInCart
	}
	c.selected[productID] = struct{}{}
	return nil
}

func (c *Cart) Deselect(productID string) error {
	if _, ok := c.items[productID]; !ok {
		return ErrProductNotInCart
	}
	delete(c.selected, productID)
	return nil
}

func (c *Cart) SelectAll() {
	for id := range c.items {
		c.selected[id] = struct{}{}
	}
}

func (c *Cart) DeselectAll() {
	clear(c.selected)
}

// Clear empties items and selection. Pending mutations are left to the caller.
func (c *Cart) Clear() {
	c.order = nil
	clear(c.items)
	clear(c.selected)
}

// Replace swaps items wholesale, keeping selection only for products still present.
func (c *Cart) Replace(items []LineItem) {
	fresh := Restore(c.userID, items, nil)
	for id := range c.selected {
		if _, ok := fresh.items[id]; ok {
			fresh.selected[id] = struct{}{}
		}
	}
	c.order = fresh.order
	c.items = fresh.items
	c.selected = fresh.selected
}

// Reprice lays fresh catalog data over the lines found in products, keeping their quantities.
// The result may exceed the new stock; checkout rejects such lines.
func (c *Cart) Reprice(products map[string]Product) {
	for id, item := range c.items {
		if p, ok := products[id]; ok {
			item = item.withProduct(p)
			item.ProductID = id
			c.items[id] = item
		}
	}
}

// ReapplyPending lays unconfirmed local intent over server state after a Replace.
// A pending quantity that no longer fits the stock is left at the server value.
func (c *Cart) ReapplyPending() {
	for id, m := range c.pending {
		item, ok := c.items[id]
		if !ok {
			continue
		}
		switch m.Action {
		case ActionRemove:
			c.drop(id)
		case ActionSetQuantity:
			if item.ValidateQuantity(m.Quantity) == nil {
				item.Quantity = m.Quantity
				c.items[id] = item
			}
		}
	}
}

// RecordPending keeps one slot per product: the latest mutation wins.
func (c *Cart) RecordPending(m Mutation) {
	c.pending[m.ProductID] = m
}

func (c *Cart) PendingFor(productID string) (Mutation, bool) {
	m, ok := c.pending[productID]
	return m, ok
}

func (c *Cart) HasPending() bool {
	return len(c.pending) > 0
}

// TakePending returns the pending set ordered by product id and clears it.
func (c *Cart) TakePending() []Mutation {
	out := c.pendingList()
	clear(c.pending)
	return out
}

func (c *Cart) DiscardPending() {
	clear(c.pending)
}

func (c *Cart) pendingList() []Mutation {
	out := make([]Mutation, 0, len(c.pending))
	for _, m := range c.pending {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out
}

func (c *Cart) Item(productID string) (LineItem, bool) {
	item, ok := c.items[productID]
	return item, ok
}

func (c *Cart) Items() []LineItem {
	out := make([]LineItem, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.items[id])
	}
	return out
}

func (c *Cart) IsSelected(productID string) bool {
	_, ok := c.selected[productID]
	return ok
}

// Selected returns selected lines in cart order.
func (c *Cart) Selected() []LineItem {
	out := make([]LineItem, 0, len(c.selected))
	for _, id := range c.order {
		if _, ok := c.selected[id]; ok {
			out = append(out, c.items[id])
		}
	}
	return out
}

func (c *Cart) SelectedIDs() []string {
	out := make([]string, 0, len(c.selected))
	for _, id := range c.order {
		if _, ok := c.selected[id]; ok {
			out = append(out, id)
		}
	}
	return out
}

func (c *Cart) Snapshot() Snapshot {
	return Snapshot{
		UserID:    c.userID,
		Items:     c.Items(),
		Selected:  c.SelectedIDs(),
		Pending:   c.pendingList(),
		SyncState: c.syncState,
	}
}
