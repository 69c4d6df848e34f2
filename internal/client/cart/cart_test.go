package cart

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/client/repositories/kv"
	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) (*Store, *kv.MemoryRepository) {
	t.Helper()
	repo := kv.NewMemoryRepository()
	return NewStore(repo, nil), repo
}

func item(id string, price float64) models.LineItem {
	return models.LineItem{ID: models.ID(id), Name: "item " + id, Price: models.NewPrice(price)}
}

func TestAdd_SameIDMergesQuantities(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.Add(ctx, item("A", 10), 1))
	require.NoError(t, s.Add(ctx, item("A", 10), 2))

	got := s.Load(ctx)
	require.Len(t, got, 1)
	assert.Equal(t, models.ID("A"), got[0].ID)
	assert.Equal(t, 3, got[0].Qty)
	assert.Equal(t, 10.0, got[0].Price.Float())
	assert.Equal(t, 30.0, s.Total(ctx))
}

func TestAdd_KeepsExistingDisplayFields(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.Add(ctx, models.LineItem{ID: "A", Name: "Hulk", Price: models.NewPrice(10)}, 1))
	require.NoError(t, s.Add(ctx, models.LineItem{ID: "A", Name: "Hulk (reprint)", Price: models.NewPrice(12)}, 1))

	got := s.Load(ctx)
	require.Len(t, got, 1)
	assert.Equal(t, "Hulk", got[0].Name)
	assert.Equal(t, 10.0, got[0].Price.Float())
	assert.Equal(t, 2, got[0].Qty)
}

func TestAdd_DefaultsQuantityAndKeepsOrder(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.Add(ctx, item("B", 1), 0))
	require.NoError(t, s.Add(ctx, item("A", 1), -4))
	require.NoError(t, s.Add(ctx, item("C", 1), 1))

	got := s.Load(ctx)
	require.Len(t, got, 3)
	assert.Equal(t, []models.ID{"B", "A", "C"}, []models.ID{got[0].ID, got[1].ID, got[2].ID})
	assert.Equal(t, 3, s.Count(ctx))
}

func TestAdd_RejectsMissingID(t *testing.T) {
	s, _ := newStore(t)
	require.ErrorIs(t, s.Add(context.Background(), models.LineItem{Name: "ghost"}, 1), ErrMissingID)
}

func TestSetQuantity_NeverBelowOne(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()
	require.NoError(t, s.Add(ctx, item("A", 10), 3))

	require.NoError(t, s.SetQuantity(ctx, "A", -10))
	got := s.Load(ctx)
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].Qty)

	require.NoError(t, s.SetQuantity(ctx, "A", 4))
	assert.Equal(t, 5, s.Load(ctx)[0].Qty)

	for _, delta := range []int{-1, -2, -1000, 0} {
		require.NoError(t, s.SetQuantity(ctx, "A", delta))
		assert.GreaterOrEqual(t, s.Load(ctx)[0].Qty, 1)
	}
}

func TestSetQuantity_UnknownIDIsNoop(t *testing.T) {
	s, repo := newStore(t)
	ctx := context.Background()
	require.NoError(t, s.Add(ctx, item("A", 10), 2))
	before, _ := repo.Get(ctx, common.CartStorageKey)

	require.NoError(t, s.SetQuantity(ctx, "Z", 5))

	after, _ := repo.Get(ctx, common.CartStorageKey)
	assert.Equal(t, before, after)
}

func TestRemove_ThenLoadNeverReturnsID(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()
	require.NoError(t, s.Add(ctx, item("A", 10), 1))
	require.NoError(t, s.Add(ctx, item("B", 5), 1))

	require.NoError(t, s.Remove(ctx, "A"))
	require.NoError(t, s.Remove(ctx, "missing"))

	for _, it := range s.Load(ctx) {
		assert.NotEqual(t, models.ID("A"), it.ID)
	}
	assert.Len(t, s.Load(ctx), 1)
}

func TestClear_ThenLoadIsEmpty(t *testing.T) {
	s, repo := newStore(t)
	ctx := context.Background()
	require.NoError(t, s.Add(ctx, item("A", 10), 1))

	require.NoError(t, s.Clear(ctx))

	assert.Empty(t, s.Load(ctx))
	v, err := repo.Get(ctx, common.CartStorageKey)
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestTotal(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()
	assert.Equal(t, 0.0, s.Total(ctx))

	require.NoError(t, s.Add(ctx, item("A", 10), 2))
	require.NoError(t, s.Add(ctx, item("B", 2.5), 4))
	require.NoError(t, s.Add(ctx, models.LineItem{ID: "C", Price: models.ParsePrice("consultar")}, 3))
	require.NoError(t, s.Add(ctx, models.LineItem{ID: "D"}, 1))

	var want float64
	for _, it := range s.Load(ctx) {
		want += it.Price.Float() * float64(it.Qty)
	}
	assert.Equal(t, want, s.Total(ctx))
	assert.Equal(t, 30.0, s.Total(ctx))
}

func TestLoad_MalformedStorageIsEmpty(t *testing.T) {
	ctx := context.Background()
	for name, raw := range map[string]string{
		"not json":    "definitely not json",
		"object":      `{"id":"A"}`,
		"wrong shape": `[{"id":{"nested":true}}]`,
		"truncated":   `[{"id":"A","qty":`,
	} {
		t.Run(name, func(t *testing.T) {
			s, repo := newStore(t)
			require.NoError(t, repo.Set(ctx, common.CartStorageKey, []byte(raw)))

			got := s.Load(ctx)
			assert.NotNil(t, got)
			assert.Empty(t, got)
			assert.Equal(t, 0.0, s.Total(ctx))
		})
	}
}

func TestLoad_NormalizesForeignData(t *testing.T) {
	s, repo := newStore(t)
	ctx := context.Background()
	require.NoError(t, repo.Set(ctx, common.CartStorageKey, []byte(`[
		{"id": 7, "name": "Hulk", "price": "10", "qty": 1},
		{"id": "7", "name": "Hulk again", "price": 10, "qty": 2},
		{"id": "8", "name": "Thor", "price": 5, "qty": 0},
		{"name": "no id", "price": 1, "qty": 1}
	]`)))

	got := s.Load(ctx)
	require.Len(t, got, 2)
	assert.Equal(t, models.ID("7"), got[0].ID)
	assert.Equal(t, "Hulk", got[0].Name)
	assert.Equal(t, 3, got[0].Qty)
	assert.Equal(t, 1, got[1].Qty)
	assert.Equal(t, 35.0, s.Total(ctx))
}

func TestMutationOverMalformedStorageStartsFresh(t *testing.T) {
	s, repo := newStore(t)
	ctx := context.Background()
	require.NoError(t, repo.Set(ctx, common.CartStorageKey, []byte("garbage")))

	require.NoError(t, s.Add(ctx, item("A", 10), 1))

	got := s.Load(ctx)
	require.Len(t, got, 1)
	assert.Equal(t, models.ID("A"), got[0].ID)
}

func TestSave_OverwritesAndNormalizes(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()
	require.NoError(t, s.Add(ctx, item("Z", 1), 1))

	require.NoError(t, s.Save(ctx, []models.LineItem{
		{ID: "A", Price: models.NewPrice(1), Qty: 1},
		{ID: "A", Price: models.NewPrice(1), Qty: 1},
		{ID: "B", Price: models.NewPrice(1), Qty: -3},
	}))

	got := s.Load(ctx)
	require.Len(t, got, 2)
	assert.Equal(t, 2, got[0].Qty)
	assert.Equal(t, 1, got[1].Qty)
}

func TestConcurrentAddsDoNotLoseUpdates(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, s.Add(ctx, item("A", 1), 1))
		}()
	}
	wg.Wait()

	got := s.Load(ctx)
	require.Len(t, got, 1)
	assert.Equal(t, 50, got[0].Qty)
}

type failingRepo struct {
	kv.Repository
	err error
}

func (f failingRepo) Get(context.Context, string) ([]byte, error) { return nil, f.err }
func (f failingRepo) Set(context.Context, string, []byte) error   { return f.err }
func (f failingRepo) Delete(context.Context, string) error        { return f.err }
func (f failingRepo) Update(context.Context, string, kv.UpdateFunc) error {
	return f.err
}

func TestStorageFailures(t *testing.T) {
	boom := errors.New("disk full")
	s := NewStore(failingRepo{err: boom}, nil)
	ctx := context.Background()

	assert.Empty(t, s.Load(ctx))
	assert.Equal(t, 0, s.Count(ctx))

	assert.ErrorIs(t, s.Add(ctx, item("A", 1), 1), boom)
	assert.ErrorIs(t, s.SetQuantity(ctx, "A", 1), boom)
	assert.ErrorIs(t, s.Remove(ctx, "A"), boom)
	assert.ErrorIs(t, s.Clear(ctx), boom)
	assert.ErrorIs(t, s.Save(ctx, nil), boom)
}

func TestBadgeFor(t *testing.T) {
	_, ok := BadgeFor(0)
	assert.False(t, ok)
	_, ok = BadgeFor(-2)
	assert.False(t, ok)

	b, ok := BadgeFor(1)
	require.True(t, ok)
	assert.Equal(t, Badge{Marker: BadgeMarker, Label: "1 item in cart"}, b)

	b, ok = BadgeFor(12)
	require.True(t, ok)
	assert.Equal(t, BadgeMarker, b.Marker)
	assert.Contains(t, b.Label, "12")
	assert.NotContains(t, b.Marker, "12")
}
