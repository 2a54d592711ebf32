package catalog

import (
	"context"
	"errors"
	"sync"
	"testing"

	"shopdesk/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryStore is an in-memory ProductStore.
type memoryStore struct {
	mu        sync.Mutex
	nextID    int64
	products  map[int64]*model.Product
	createErr error
	findErr   error
}

func newMemoryStore(names ...string) *memoryStore {
	s := &memoryStore{products: map[int64]*model.Product{}}
	for _, name := range names {
		_, _ = s.Create(context.Background(), model.ProductInput{Name: name, Price: 1})
	}
	return s
}

func (s *memoryStore) FindByName(ctx context.Context, name string) (*model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.findErr != nil {
		return nil, s.findErr
	}
	var found *model.Product
	for _, p := range s.products {
		if p.Name == name && (found == nil || p.ID < found.ID) {
			found = p
		}
	}
	return found, nil
}

func (s *memoryStore) Create(ctx context.Context, input model.ProductInput) (*model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		return nil, s.createErr
	}
	s.nextID++
	p := &model.Product{ID: s.nextID, Name: input.Name, Price: input.Price, Quantity: input.Quantity}
	s.products[p.ID] = p
	return p, nil
}

func (s *memoryStore) Update(ctx context.Context, id int64, input model.ProductInput) (*model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return nil, nil
	}
	p.Price = input.Price
	p.Quantity = input.Quantity
	return p, nil
}

func testCatalog() *Catalog {
	return &Catalog{
		Source: "test",
		Rows: []Row{
			{Line: 2, Input: model.ProductInput{Name: "Widget", Price: 12, Quantity: 4}},
			{Line: 3, Input: model.ProductInput{Name: "Gadget", Price: 20, Quantity: 1}},
		},
		Errors: []model.ImportError{{Row: 4, Message: "name is required"}},
	}
}

func TestImporter_Import_SkipMode(t *testing.T) {
	store := newMemoryStore("Widget")
	importer := NewImporter(store, zerolog.Nop())

	result, err := importer.Import(context.Background(), testCatalog(), ModeSkip)

	require.NoError(t, err)
	assert.Equal(t, 1, result.Created)
	assert.Equal(t, 0, result.Updated)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, []model.ImportError{{Row: 4, Message: "name is required"}}, result.Errors)

	widget, _ := store.FindByName(context.Background(), "Widget")
	assert.InDelta(t, 1.0, widget.Price, 0.001)
}

func TestImporter_Import_UpdateMode(t *testing.T) {
	store := newMemoryStore("Widget")
	importer := NewImporter(store, zerolog.Nop())

	result, err := importer.Import(context.Background(), testCatalog(), ModeUpdate)

	require.NoError(t, err)
	assert.Equal(t, 1, result.Created)
	assert.Equal(t, 1, result.Updated)
	assert.Equal(t, 0, result.Skipped)

	widget, _ := store.FindByName(context.Background(), "Widget")
	assert.InDelta(t, 12.0, widget.Price, 0.001)
	assert.Equal(t, 4, widget.Quantity)
}

func TestImporter_Import_RejectedRowsAreCollected(t *testing.T) {
	store := newMemoryStore()
	store.createErr = model.ErrInvalidPrice
	importer := NewImporter(store, zerolog.Nop())

	result, err := importer.Import(context.Background(), testCatalog(), ModeSkip)

	require.NoError(t, err)
	assert.Equal(t, 0, result.Created)
	require.Len(t, result.Errors, 3)
	assert.Equal(t, 2, result.Errors[1].Row)
	assert.Equal(t, model.ErrInvalidPrice.Message, result.Errors[1].Message)
}

func TestImporter_Import_StoreFailureAborts(t *testing.T) {
	store := newMemoryStore()
	store.findErr = errors.New("connection refused")
	importer := NewImporter(store, zerolog.Nop())

	result, err := importer.Import(context.Background(), testCatalog(), ModeSkip)

	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "row 2")
}

func TestImporter_Import_ContextCancelled(t *testing.T) {
	importer := NewImporter(newMemoryStore(), zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := importer.Import(ctx, testCatalog(), ModeSkip)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSeed(t *testing.T) {
	store := newMemoryStore()
	importer := NewImporter(store, zerolog.Nop())

	loader := &mockLoader{
		loadFunc: func(ctx context.Context, path string) (*Catalog, error) {
			switch path {
			case "first.csv":
				return &Catalog{Rows: []Row{{Line: 2, Input: model.ProductInput{Name: "Widget", Price: 1}}}}, nil
			case "second.csv":
				return &Catalog{Rows: []Row{
					{Line: 2, Input: model.ProductInput{Name: "Widget", Price: 99}},
					{Line: 3, Input: model.ProductInput{Name: "Gadget", Price: 2}},
				}}, nil
			}
			return nil, errors.New("no such file")
		},
	}

	require.NoError(t, Seed(context.Background(), loader, importer, []string{"first.csv", "second.csv"}, zerolog.Nop()))
	assert.Len(t, store.products, 2)

	widget, _ := store.FindByName(context.Background(), "Widget")
	assert.InDelta(t, 1.0, widget.Price, 0.001)

	err := Seed(context.Background(), loader, importer, []string{"first.csv", "missing.csv"}, zerolog.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.csv")

	assert.NoError(t, Seed(context.Background(), loader, importer, nil, zerolog.Nop()))
}
