// Package store owns the application state: the products, invoices and
// sets collections plus the enumerated mutation operations. The store
// is created by the composition root and passed by reference; there is
// no ambient singleton.
package store

import (
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Martinez-Cris/mueblefact-pro/internal/catalog"
	"github.com/Martinez-Cris/mueblefact-pro/internal/models"
	"github.com/Martinez-Cris/mueblefact-pro/internal/pricing"
	"github.com/Martinez-Cris/mueblefact-pro/internal/storage"
)

var (
	// ErrClientNameRequired rejects an invoice without a client name.
	ErrClientNameRequired = errors.New("client name required")
	// ErrNoItems rejects an invoice with an empty item list.
	ErrNoItems = errors.New("invoice needs at least one item")
)

// Store holds the in-memory state and rewrites the whole persisted
// snapshot after every mutation. A persistence failure is logged and
// the in-memory state stays authoritative.
type Store struct {
	mu      sync.Mutex
	state   models.State
	storage storage.Storage
}

// New creates a store seeded with the default catalog. storage may be
// nil for a purely in-memory store.
func New(st storage.Storage) *Store {
	return &Store{
		state:   models.State{Products: catalog.Seed(), Invoices: []models.Invoice{}, Sets: []models.SetDefinition{}},
		storage: st,
	}
}

// Load replaces the state from the persistence collaborator. Absent or
// unreadable state degrades to the seeded defaults: a missing products
// collection falls back to the seed catalog, missing invoices/sets to
// empty, and loaded prices are normalized.
func (s *Store) Load() error {
	if s.storage == nil {
		return nil
	}
	data, ok, err := s.storage.Load()
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	var loaded models.State
	if err := json.Unmarshal(data, &loaded); err != nil {
		log.Printf("stored state unreadable, keeping defaults: %v", err)
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if len(loaded.Products) > 0 || len(loaded.Invoices) > 0 || len(loaded.Sets) > 0 {
		if loaded.Products == nil {
			loaded.Products = catalog.Seed()
		}
		if loaded.Invoices == nil {
			loaded.Invoices = []models.Invoice{}
		}
		if loaded.Sets == nil {
			loaded.Sets = []models.SetDefinition{}
		}
		for i := range loaded.Products {
			loaded.Products[i].Price = pricing.NormalizePrice(loaded.Products[i].Price)
		}
		for i := range loaded.Sets {
			normalizeComponents(loaded.Sets[i].Items)
		}
		s.state = loaded
	}
	return nil
}

// Snapshot returns a deep copy of the current state. Exports and
// listings operate on the copy, so later mutations cannot reach into a
// render in progress.
func (s *Store) Snapshot() models.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// AddProduct appends a catalog product, minting an id when absent and
// clamping a malformed price to 0.
func (s *Store) AddProduct(p models.Product) models.Product {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.Price = pricing.NormalizePrice(p.Price)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Products = append(s.state.Products, p)
	s.persistLocked()
	return p
}

// DeleteProduct removes a product by id. Invoices and sets keep any
// references to it; consumers resolve those as unknown products.
func (s *Store) DeleteProduct(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Products = filterProducts(s.state.Products, id)
	s.persistLocked()
}

// AddSet appends a set definition, minting an id when absent and
// normalizing component quantities and prices.
func (s *Store) AddSet(def models.SetDefinition) models.SetDefinition {
	if def.ID == "" {
		def.ID = uuid.NewString()
	}
	def.Items = models.CloneComponents(def.Items)
	normalizeComponents(def.Items)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Sets = append(s.state.Sets, def)
	s.persistLocked()
	return def
}

// DeleteSet removes a set definition by id. Order items instantiated
// from it are snapshots and stay intact.
func (s *Store) DeleteSet(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.state.Sets[:0]
	for _, d := range s.state.Sets {
		if d.ID != id {
			out = append(out, d)
		}
	}
	s.state.Sets = out
	s.persistLocked()
}

// InstantiateSet builds a set order line from a stored definition,
// snapshotting its components at this moment.
func (s *Store) InstantiateSet(setID string, quantity int, unitPrice *float64) (models.OrderItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range s.state.Sets {
		if d.ID == setID {
			return models.NewSetInstance(d, pricing.NormalizeQuantity(quantity), unitPrice), true
		}
	}
	return models.OrderItem{}, false
}

// AddInvoice validates and stores a new invoice. Invoices are created
// once; there is no update operation.
func (s *Store) AddInvoice(client models.Client, items []models.OrderItem, includeIVA bool) (models.Invoice, error) {
	if client.Name == "" {
		return models.Invoice{}, ErrClientNameRequired
	}
	if len(items) == 0 {
		return models.Invoice{}, ErrNoItems
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	inv := models.Invoice{
		ID:         uuid.NewString(),
		Date:       time.Now().UTC(),
		Client:     client,
		Items:      make([]models.OrderItem, 0, len(items)),
		IncludeIVA: includeIVA,
	}
	for _, it := range items {
		inv.Items = append(inv.Items, s.normalizeItemLocked(it))
	}
	s.state.Invoices = append(s.state.Invoices, inv)
	s.persistLocked()
	return inv.Clone(), nil
}

// DeleteInvoice removes an invoice by id.
func (s *Store) DeleteInvoice(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.state.Invoices[:0]
	for _, inv := range s.state.Invoices {
		if inv.ID != id {
			out = append(out, inv)
		}
	}
	s.state.Invoices = out
	s.persistLocked()
}

// FindInvoice looks up a stored invoice by id, returning a deep copy.
func (s *Store) FindInvoice(id string) (models.Invoice, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, inv := range s.state.Invoices {
		if inv.ID == id {
			return inv.Clone(), true
		}
	}
	return models.Invoice{}, false
}

// normalizeItemLocked clamps quantities and prices and resolves a set
// line that arrived without its snapshot by copying the current
// definition's components.
func (s *Store) normalizeItemLocked(it models.OrderItem) models.OrderItem {
	it = it.Clone()
	if it.ID == "" {
		it.ID = uuid.NewString()
	}
	it.Quantity = pricing.NormalizeQuantity(it.Quantity)
	if it.UnitPrice != nil {
		p := pricing.NormalizePrice(*it.UnitPrice)
		it.UnitPrice = &p
	}
	if it.IsSet {
		if len(it.SetItems) == 0 && it.SetID != "" {
			for _, d := range s.state.Sets {
				if d.ID == it.SetID {
					if it.SetName == "" {
						it.SetName = d.Name
					}
					it.SetItems = models.CloneComponents(d.Items)
					break
				}
			}
		}
		normalizeComponents(it.SetItems)
	}
	return it
}

// persistLocked serializes the whole state and hands it to the
// persistence collaborator. Failures never abort the mutation.
func (s *Store) persistLocked() {
	if s.storage == nil {
		return
	}
	data, err := json.Marshal(s.state)
	if err != nil {
		log.Printf("state serialization failed: %v", err)
		return
	}
	if err := s.storage.Save(data); err != nil {
		log.Printf("state save failed, continuing in memory: %v", err)
	}
}

func normalizeComponents(items []models.SetComponent) {
	for i := range items {
		items[i].Quantity = pricing.NormalizeQuantity(items[i].Quantity)
		if items[i].UnitPrice != nil {
			p := pricing.NormalizePrice(*items[i].UnitPrice)
			items[i].UnitPrice = &p
		}
	}
}

func filterProducts(products []models.Product, id string) []models.Product {
	out := products[:0]
	for _, p := range products {
		if p.ID != id {
			out = append(out, p)
		}
	}
	return out
}
