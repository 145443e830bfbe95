package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Martinez-Cris/mueblefact-pro/internal/catalog"
	"github.com/Martinez-Cris/mueblefact-pro/internal/models"
	"github.com/Martinez-Cris/mueblefact-pro/internal/storage"
)

func fptr(v float64) *float64 { return &v }

func testClient() models.Client {
	return models.Client{Name: "Ana Pérez", Seller: "Luis", OrderNumber: "OP-1"}
}

func TestNewSeedsCatalog(t *testing.T) {
	s := New(nil)
	snap := s.Snapshot()
	assert.Equal(t, catalog.Seed(), snap.Products)
	assert.Empty(t, snap.Invoices)
	assert.Empty(t, snap.Sets)
}

func TestAddInvoiceValidation(t *testing.T) {
	s := New(nil)
	items := []models.OrderItem{{ProductID: "1", Quantity: 1}}

	_, err := s.AddInvoice(models.Client{}, items, false)
	assert.ErrorIs(t, err, ErrClientNameRequired)

	_, err = s.AddInvoice(testClient(), nil, false)
	assert.ErrorIs(t, err, ErrNoItems)

	assert.Empty(t, s.Snapshot().Invoices, "rejected invoices leave no state change")
}

func TestAddInvoiceNormalizesItems(t *testing.T) {
	s := New(nil)
	inv, err := s.AddInvoice(testClient(), []models.OrderItem{
		{ProductID: "1", Quantity: 0, UnitPrice: fptr(-50)},
	}, true)
	require.NoError(t, err)
	assert.Equal(t, 1, inv.Items[0].Quantity)
	assert.Equal(t, 0.0, *inv.Items[0].UnitPrice)
	assert.NotEmpty(t, inv.ID)
	assert.False(t, inv.Date.IsZero())
}

func TestAddInvoiceSnapshotsSetByID(t *testing.T) {
	s := New(nil)
	def := s.AddSet(models.SetDefinition{
		Name: "Sala Completa",
		Items: []models.SetComponent{
			{ProductID: "1", Size: "120x80", Color: "Nogal", Quantity: 1},
			{ProductID: "2", Quantity: 4},
		},
	})

	inv, err := s.AddInvoice(testClient(), []models.OrderItem{
		{IsSet: true, SetID: def.ID, Quantity: 1, UnitPrice: fptr(500)},
	}, false)
	require.NoError(t, err)
	require.Len(t, inv.Items[0].SetItems, 2)
	assert.Equal(t, "Sala Completa", inv.Items[0].SetName)

	// Deleting the definition must not touch the stored invoice.
	s.DeleteSet(def.ID)
	got, ok := s.FindInvoice(inv.ID)
	require.True(t, ok)
	assert.Len(t, got.Items[0].SetItems, 2)
}

func TestInstantiateSet(t *testing.T) {
	s := New(nil)
	def := s.AddSet(models.SetDefinition{
		Name:  "Comedor",
		Items: []models.SetComponent{{ProductID: "1", Quantity: 1}},
	})

	item, ok := s.InstantiateSet(def.ID, 0, fptr(300))
	require.True(t, ok)
	assert.True(t, item.IsSet)
	assert.Equal(t, 1, item.Quantity, "quantity clamps to 1")
	assert.Equal(t, def.Items, item.SetItems)

	_, ok = s.InstantiateSet("missing", 1, nil)
	assert.False(t, ok)
}

func TestDeleteProductKeepsInvoiceReferences(t *testing.T) {
	s := New(nil)
	inv, err := s.AddInvoice(testClient(), []models.OrderItem{
		{ProductID: "1", Quantity: 1},
	}, false)
	require.NoError(t, err)

	s.DeleteProduct("1")
	snap := s.Snapshot()
	assert.Len(t, snap.Products, 4)
	got, ok := s.FindInvoice(inv.ID)
	require.True(t, ok)
	assert.Equal(t, "1", got.Items[0].ProductID, "dangling reference is tolerated")
}

func TestSnapshotIsolation(t *testing.T) {
	s := New(nil)
	snap := s.Snapshot()
	snap.Products[0].Name = "mutated"
	assert.Equal(t, "Mesa Comedor", s.Snapshot().Products[0].Name)
}

func TestPersistenceRoundTrip(t *testing.T) {
	fs := storage.NewFile(filepath.Join(t.TempDir(), "state.json"))

	s1 := New(fs)
	s1.AddProduct(models.Product{Name: "Banco Rústico", Category: "Banco", Sizes: []string{"Único"}, Colors: []string{"Natural"}, Price: 120})
	def := s1.AddSet(models.SetDefinition{Name: "Comedor", Items: []models.SetComponent{{ProductID: "1", Quantity: 1, UnitPrice: fptr(250)}}})
	_, err := s1.AddInvoice(testClient(), []models.OrderItem{
		{IsSet: true, SetID: def.ID, Quantity: 1, UnitPrice: fptr(500)},
		{ProductID: "2", Size: "Estándar", Color: "Gris", Quantity: 2, UnitPrice: fptr(80)},
	}, true)
	require.NoError(t, err)

	s2 := New(fs)
	require.NoError(t, s2.Load())
	assert.Equal(t, s1.Snapshot(), s2.Snapshot())
}

func TestLoadAbsentStateKeepsSeed(t *testing.T) {
	fs := storage.NewFile(filepath.Join(t.TempDir(), "state.json"))
	s := New(fs)
	require.NoError(t, s.Load())
	assert.Equal(t, catalog.Seed(), s.Snapshot().Products)
}

func TestLoadEmptyCollectionsKeepsSeed(t *testing.T) {
	fs := storage.NewFile(filepath.Join(t.TempDir(), "state.json"))
	require.NoError(t, fs.Save([]byte(`{"products":[],"invoices":[],"sets":[]}`)))
	s := New(fs)
	require.NoError(t, s.Load())
	assert.Equal(t, catalog.Seed(), s.Snapshot().Products)
}

func TestLoadCorruptStateKeepsSeed(t *testing.T) {
	fs := storage.NewFile(filepath.Join(t.TempDir(), "state.json"))
	require.NoError(t, fs.Save([]byte("not json at all")))
	s := New(fs)
	require.NoError(t, s.Load())
	assert.Equal(t, catalog.Seed(), s.Snapshot().Products)
}

func TestLoadNormalizesPrices(t *testing.T) {
	fs := storage.NewFile(filepath.Join(t.TempDir(), "state.json"))
	require.NoError(t, fs.Save([]byte(`{"products":[{"id":"x","name":"Mesa Vieja","price":-10}],"sets":[{"id":"s","name":"S","items":[{"productId":"x","quantity":0,"unitPrice":-5}]}]}`)))
	s := New(fs)
	require.NoError(t, s.Load())

	snap := s.Snapshot()
	require.Len(t, snap.Products, 1)
	assert.Zero(t, snap.Products[0].Price)
	require.Len(t, snap.Sets, 1)
	assert.Equal(t, 1, snap.Sets[0].Items[0].Quantity)
	assert.Zero(t, *snap.Sets[0].Items[0].UnitPrice)
	assert.Empty(t, snap.Invoices, "missing collection defaults to empty")
}

// failingStorage always errors on save.
type failingStorage struct{}

func (failingStorage) Save([]byte) error { return assert.AnError }

func (failingStorage) Load() ([]byte, bool, error) { return nil, false, nil }

func TestPersistenceFailureDoesNotCorruptState(t *testing.T) {
	s := New(failingStorage{})
	inv, err := s.AddInvoice(testClient(), []models.OrderItem{{ProductID: "1", Quantity: 1}}, false)
	require.NoError(t, err, "a failed write never aborts the mutation")
	_, ok := s.FindInvoice(inv.ID)
	assert.True(t, ok)
}
