package cart

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"webgael/internal/domain"
)

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("item-%d", n)
	}
}

func TestMemory_AddOrMergeMergesSameProductAndColor(t *testing.T) {
	ctx := context.Background()
	clock := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	repo := NewMemory(nil, WithIDGenerator(sequentialIDs()), WithClock(func() time.Time { return clock }))

	first, merged, err := repo.AddOrMerge(ctx, AddItemInput{ProductID: "p", Color: "Red", Quantity: 1})
	require.NoError(t, err)
	assert.False(t, merged)
	assert.Equal(t, "item-1", first.ID)

	clock = clock.Add(time.Minute)
	second, merged, err := repo.AddOrMerge(ctx, AddItemInput{ProductID: "p", Color: "Red", Quantity: 2, Notes: "gift"})
	require.NoError(t, err)
	assert.True(t, merged)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 3, second.Quantity)
	assert.Equal(t, "gift", second.Notes)
	assert.True(t, second.UpdatedAt.After(second.CreatedAt))

	other, merged, err := repo.AddOrMerge(ctx, AddItemInput{ProductID: "p", Color: "Blue", Quantity: 1})
	require.NoError(t, err)
	assert.False(t, merged)
	assert.Equal(t, "item-2", other.ID)

	items, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Red", items[0].Color)
	assert.Equal(t, "Blue", items[1].Color)
}

func TestMemory_MergeKeepsNotesWhenNewNotesEmpty(t *testing.T) {
	ctx := context.Background()
	repo := NewMemory(nil)

	_, _, err := repo.AddOrMerge(ctx, AddItemInput{ProductID: "p", Color: "Red", Quantity: 1, Notes: "keep me"})
	require.NoError(t, err)
	item, _, err := repo.AddOrMerge(ctx, AddItemInput{ProductID: "p", Color: "Red", Quantity: 1})
	require.NoError(t, err)
	assert.Equal(t, "keep me", item.Notes)
}

func TestMemory_SetQuantity(t *testing.T) {
	ctx := context.Background()
	repo := NewMemory(nil)
	item, _, err := repo.AddOrMerge(ctx, AddItemInput{ProductID: "p", Color: "Blue", Quantity: 2})
	require.NoError(t, err)

	removed, err := repo.SetQuantity(ctx, item.ID, 5)
	require.NoError(t, err)
	assert.False(t, removed)
	got, err := repo.Get(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.Quantity)

	removed, err = repo.SetQuantity(ctx, item.ID, 0)
	require.NoError(t, err)
	assert.True(t, removed)
	_, err = repo.Get(ctx, item.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	_, err = repo.SetQuantity(ctx, "missing", 1)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestMemory_RemoveIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := NewMemory(nil)
	item, _, err := repo.AddOrMerge(ctx, AddItemInput{ProductID: "p", Color: "Red", Quantity: 1})
	require.NoError(t, err)

	ok, err := repo.Remove(ctx, item.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Remove(ctx, item.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemory_ListReturnsCopy(t *testing.T) {
	ctx := context.Background()
	repo := NewMemory(nil)
	_, _, err := repo.AddOrMerge(ctx, AddItemInput{ProductID: "p", Color: "Red", Quantity: 1})
	require.NoError(t, err)

	items, err := repo.List(ctx)
	require.NoError(t, err)
	items[0].Quantity = 99

	again, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, again[0].Quantity)
}

func TestMemory_Clear(t *testing.T) {
	ctx := context.Background()
	repo := NewMemory(nil)
	for _, color := range []string{"a", "b", "c"} {
		_, _, err := repo.AddOrMerge(ctx, AddItemInput{ProductID: "p", Color: color, Quantity: 1})
		require.NoError(t, err)
	}
	require.NoError(t, repo.Clear(ctx))
	items, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestMemory_AddOrMergeRejectsOverflow(t *testing.T) {
	ctx := context.Background()
	repo := NewMemory(nil)

	item, _, err := repo.AddOrMerge(ctx, AddItemInput{ProductID: "p", Color: "Red", Quantity: math.MaxInt})
	require.NoError(t, err)

	_, merged, err := repo.AddOrMerge(ctx, AddItemInput{ProductID: "p", Color: "Red", Quantity: 1})
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.False(t, merged)

	got, err := repo.Get(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, math.MaxInt, got.Quantity)
}

func TestMemory_TakeEmptiesTheStore(t *testing.T) {
	ctx := context.Background()
	repo := NewMemory(nil, WithIDGenerator(sequentialIDs()))
	for _, color := range []string{"a", "b"} {
		_, _, err := repo.AddOrMerge(ctx, AddItemInput{ProductID: "p", Color: color, Quantity: 2})
		require.NoError(t, err)
	}

	taken, err := repo.Take(ctx)
	require.NoError(t, err)
	require.Len(t, taken, 2)
	assert.Equal(t, "item-1", taken[0].ID)
	assert.Equal(t, "item-2", taken[1].ID)

	items, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)

	// Later adds start a fresh line and do not show up in what was taken.
	_, merged, err := repo.AddOrMerge(ctx, AddItemInput{ProductID: "p", Color: "a", Quantity: 1})
	require.NoError(t, err)
	assert.False(t, merged)
	assert.Len(t, taken, 2)
	assert.Equal(t, 2, taken[0].Quantity)
}

func TestMemory_ConcurrentAddsMergeIntoOneItem(t *testing.T) {
	ctx := context.Background()
	repo := NewMemory(nil)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, _ = repo.AddOrMerge(ctx, AddItemInput{ProductID: "p", Color: "Red", Quantity: 1})
		}()
	}
	wg.Wait()

	items, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 50, items[0].Quantity)
}
