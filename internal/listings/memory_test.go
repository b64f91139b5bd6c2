package listings

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedListing(t *testing.T, repo Repository, city string, price, size float64) Listing {
	t.Helper()
	l := Listing{
		ID:           uuid.New(),
		Title:        "Unit in " + city,
		Address:      "Main Road, " + city,
		City:         city,
		Size:         size,
		Price:        price,
		PropertyType: "retail",
		CreatedAt:    time.Now(),
	}
	require.NoError(t, repo.Create(context.Background(), &l))
	return l
}

func TestMemoryRepositoryCRUD(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	l := seedListing(t, repo, "Bangalore", 150000, 500)

	got, err := repo.GetByID(ctx, l.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, l.Title, got.Title)

	require.NoError(t, repo.Delete(ctx, l.ID))

	got, err = repo.GetByID(ctx, l.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	assert.Error(t, repo.Delete(ctx, l.ID))
}

func TestMemoryRepositorySearchFilters(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	seedListing(t, repo, "Bangalore", 150000, 500)
	seedListing(t, repo, "Bangalore", 400000, 2000)
	seedListing(t, repo, "Mumbai", 150000, 500)

	results, err := repo.Search(ctx, SearchFilter{City: "bangalore"}, 10)
	require.NoError(t, err)
	assert.Len(t, results, 2)

	results, err = repo.Search(ctx, SearchFilter{City: "Bangalore", MaxPrice: 200000}, 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 150000.0, results[0].Price)

	results, err = repo.Search(ctx, SearchFilter{MinSize: 1000}, 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 2000.0, results[0].Size)
}

func TestMemoryRepositorySearchOrderAndLimit(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		seedListing(t, repo, "Bangalore", 100000, 500)
	}
	featured := Listing{
		ID:           uuid.New(),
		Title:        "Featured unit",
		Address:      "MG Road",
		City:         "Bangalore",
		Size:         600,
		Price:        120000,
		PropertyType: "retail",
		IsFeatured:   true,
		CreatedAt:    time.Now().Add(-time.Hour),
	}
	require.NoError(t, repo.Create(ctx, &featured))

	results, err := repo.Search(ctx, SearchFilter{City: "Bangalore"}, 3)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, "Featured unit", results[0].Title)
}
