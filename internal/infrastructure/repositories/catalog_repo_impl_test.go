package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"
	"maisquecardapio.backend/internal/domain/entities"
	domainerrors "maisquecardapio.backend/internal/domain/errors"
)

func TestCatalogRepositories_CrossTenantIsolation(t *testing.T) {
	db := newTestDB(t)
	free, _ := seedPlans(t, db)
	a := seedEstablishment(t, db, free.ID, "tenant-a")
	b := seedEstablishment(t, db, free.ID, "tenant-b")
	categories := NewCategoryRepository(db)
	products := NewProductRepository(db)
	ctx := context.Background()

	cat := &entities.Category{EstablishmentID: a.ID, Name: "Lanches"}
	require.NoError(t, categories.Create(ctx, cat))
	p := &entities.Product{EstablishmentID: a.ID, CategoryID: null.Int64From(cat.ID), Name: "X-Burger", Price: 19.90, IsAvailable: true}
	require.NoError(t, products.Create(ctx, p))

	// tenant b guessing tenant a's ids
	err := categories.Update(ctx, &entities.Category{ID: cat.ID, EstablishmentID: b.ID, Name: "hijacked"})
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
	require.ErrorIs(t, categories.Delete(ctx, b.ID, cat.ID), domainerrors.ErrNotFound)
	err = products.Update(ctx, &entities.Product{ID: p.ID, EstablishmentID: b.ID, Name: "hijacked", Price: 0.01})
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
	require.ErrorIs(t, products.Delete(ctx, b.ID, p.ID), domainerrors.ErrNotFound)

	ok, err := categories.Exists(ctx, b.ID, cat.ID)
	require.NoError(t, err)
	require.False(t, ok)

	listA, err := products.List(ctx, a.ID, false)
	require.NoError(t, err)
	require.Len(t, listA, 1)
	require.Equal(t, "X-Burger", listA[0].Name)
	require.InDelta(t, 19.90, listA[0].Price, 0.0001)

	listB, err := products.List(ctx, b.ID, false)
	require.NoError(t, err)
	require.Empty(t, listB)

	cats, err := categories.List(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, cats, 1)
	require.Equal(t, "Lanches", cats[0].Name)
}

func TestProductRepository_AvailabilityCountAndCategoryDetach(t *testing.T) {
	db := newTestDB(t)
	free, _ := seedPlans(t, db)
	e := seedEstablishment(t, db, free.ID, "menu")
	categories := NewCategoryRepository(db)
	products := NewProductRepository(db)
	ctx := context.Background()

	cat := &entities.Category{EstablishmentID: e.ID, Name: "Bebidas"}
	require.NoError(t, categories.Create(ctx, cat))

	soda := &entities.Product{EstablishmentID: e.ID, CategoryID: null.Int64From(cat.ID), Name: "Refri", Price: 6, IsAvailable: true}
	juice := &entities.Product{EstablishmentID: e.ID, CategoryID: null.Int64From(cat.ID), Name: "Suco", Price: 8, IsAvailable: false}
	require.NoError(t, products.Create(ctx, soda))
	require.NoError(t, products.Create(ctx, juice))

	n, err := products.Count(ctx, e.ID)
	require.NoError(t, err)
	require.Equal(t, int64(2), n)

	available, err := products.List(ctx, e.ID, true)
	require.NoError(t, err)
	require.Len(t, available, 1)
	require.Equal(t, "Refri", available[0].Name)

	juice.IsAvailable = true
	juice.Description = "Laranja"
	require.NoError(t, products.Update(ctx, juice))
	available, err = products.List(ctx, e.ID, true)
	require.NoError(t, err)
	require.Len(t, available, 2)

	require.NoError(t, categories.Delete(ctx, e.ID, cat.ID))
	all, err := products.List(ctx, e.ID, false)
	require.NoError(t, err)
	for _, p := range all {
		require.False(t, p.CategoryID.Valid)
	}

	require.NoError(t, products.Delete(ctx, e.ID, soda.ID))
	n, err = products.Count(ctx, e.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), n)
}

func TestNeighborhoodRepository_CRUD(t *testing.T) {
	db := newTestDB(t)
	free, _ := seedPlans(t, db)
	e := seedEstablishment(t, db, free.ID, "delivery")
	other := seedEstablishment(t, db, free.ID, "other")
	repo := NewNeighborhoodRepository(db)
	ctx := context.Background()

	n := &entities.Neighborhood{EstablishmentID: e.ID, Name: "Centro", DeliveryFee: 5}
	require.NoError(t, repo.Create(ctx, n))

	ok, err := repo.Exists(ctx, e.ID, n.ID)
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = repo.Exists(ctx, other.ID, n.ID)
	require.NoError(t, err)
	require.False(t, ok)

	n.DeliveryFee = 7.5
	require.NoError(t, repo.Update(ctx, n))
	items, err := repo.List(ctx, e.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.InDelta(t, 7.5, items[0].DeliveryFee, 0.0001)

	require.ErrorIs(t, repo.Delete(ctx, other.ID, n.ID), domainerrors.ErrNotFound)
	require.NoError(t, repo.Delete(ctx, e.ID, n.ID))
	require.ErrorIs(t, repo.Update(ctx, n), domainerrors.ErrNotFound)
}
