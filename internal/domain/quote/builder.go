// Package quote composes budgets (orçamentos): line items, derived total,
// save validation and sequential numbering.
package quote

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"instala_control/internal/domain/entities"

	"github.com/shopspring/decimal"
)

var (
	ErrBlankDescription = errors.New("item description is required")
	ErrInvalidItemPrice = errors.New("item price must be greater than zero")
	ErrInvalidItemQty   = errors.New("item quantity must be positive")
	ErrBlankClient      = errors.New("client name is required")
	ErrNoItems          = errors.New("at least one item is required")
	ErrItemNotFound     = errors.New("item not found")
	ErrFinalized        = errors.New("budget is finalized; enter edit mode first")
)

// State of the builder.
type State string

const (
	StateEmpty     State = "empty"
	StateDrafting  State = "drafting"
	StateFinalized State = "finalized"
)

// Builder is the quote editing state machine:
//
//	Empty --add--> Drafting --finalize--> Finalized --edit--> Drafting
//
// Removing the last item of a draft goes back to Empty.
type Builder struct {
	items     []entities.BudgetItem
	finalized bool
	ids       *IDSource
}

// NewBuilder starts an empty quote. A nil source uses the shared clock.
func NewBuilder(ids *IDSource) *Builder {
	if ids == nil {
		ids = defaultIDs
	}
	return &Builder{ids: ids}
}

// Edit re-enters drafting seeded with the items of a saved budget.
func Edit(b entities.Budget, ids *IDSource) *Builder {
	qb := NewBuilder(ids)
	qb.items = append(make([]entities.BudgetItem, 0, len(b.Items)), b.Items...)
	for i := range qb.items {
		if qb.items[i].ID == "" {
			qb.items[i].ID = qb.ids.Next()
		}
	}
	return qb
}

func (b *Builder) State() State {
	switch {
	case b.finalized:
		return StateFinalized
	case len(b.items) == 0:
		return StateEmpty
	default:
		return StateDrafting
	}
}

// Items returns a copy of the current lines.
func (b *Builder) Items() []entities.BudgetItem {
	return append(make([]entities.BudgetItem, 0, len(b.items)), b.items...)
}

// AddItem appends a line. A zero quantity means one unit.
func (b *Builder) AddItem(description string, qty int, price decimal.Decimal) (entities.BudgetItem, error) {
	return b.Put(entities.BudgetItem{Description: description, Qty: qty, Price: price})
}

// Put validates and appends item, keeping its id when it already has one.
func (b *Builder) Put(item entities.BudgetItem) (entities.BudgetItem, error) {
	description, qty, price := item.Description, item.Qty, item.Price
	if b.finalized {
		return entities.BudgetItem{}, ErrFinalized
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return entities.BudgetItem{}, ErrBlankDescription
	}
	if !price.IsPositive() {
		return entities.BudgetItem{}, ErrInvalidItemPrice
	}
	if qty == 0 {
		qty = 1
	}
	if qty < 0 {
		return entities.BudgetItem{}, ErrInvalidItemQty
	}

	id := strings.TrimSpace(item.ID)
	if id == "" || b.has(id) {
		id = b.ids.Next()
	}
	item = entities.BudgetItem{
		ID:          id,
		Description: description,
		Qty:         qty,
		Price:       price,
	}
	b.items = append(b.items, item)
	return item, nil
}

func (b *Builder) has(id string) bool {
	for _, it := range b.items {
		if it.ID == id {
			return true
		}
	}
	return false
}

// RemoveItem drops the line with id.
func (b *Builder) RemoveItem(id string) error {
	if b.finalized {
		return ErrFinalized
	}
	for i, it := range b.items {
		if it.ID == id {
			b.items = append(b.items[:i:i], b.items[i+1:]...)
			return nil
		}
	}
	return ErrItemNotFound
}

// Total is always derived from the live items.
func (b *Builder) Total() decimal.Decimal {
	return Total(b.items)
}

// Finalize checks the save preconditions and freezes the builder. On error
// nothing changes and no write must happen.
func (b *Builder) Finalize(clientName string) error {
	if strings.TrimSpace(clientName) == "" {
		return ErrBlankClient
	}
	if len(b.items) == 0 {
		return ErrNoItems
	}
	b.finalized = true
	return nil
}

// Total sums qty*price over items.
func Total(items []entities.BudgetItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Subtotal())
	}
	return total
}

// NextNumber scans existing budget numbers, takes the largest integer one and
// returns its successor zero-padded to three digits. Numbers that do not parse
// are ignored.
func NextNumber(existing []string) string {
	highest := 0
	for _, raw := range existing {
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil || n < 0 {
			continue
		}
		if n > highest {
			highest = n
		}
	}
	return fmt.Sprintf("%03d", highest+1)
}

// IDSource hands out millisecond timestamps as item ids, bumping by one when
// two ids would collide so the sequence stays strictly increasing.
type IDSource struct {
	mu   sync.Mutex
	now  func() time.Time
	last int64
}

var defaultIDs = NewIDSource(time.Now)

func NewIDSource(now func() time.Time) *IDSource {
	return &IDSource{now: now}
}

func (s *IDSource) Next() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := s.now().UnixMilli()
	if v <= s.last {
		v = s.last + 1
	}
	s.last = v
	return strconv.FormatInt(v, 10)
}
