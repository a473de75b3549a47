package app_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/scrimkit/scrimbot/internal/app"
)

func TestEnsureRoomIsIdempotent(t *testing.T) {
	platform := newFakePlatform()
	p := app.NewProvisioner(platform)
	ctx := context.Background()

	cat, err := p.EnsureCategory(ctx, "g1", "PUGs")
	require.NoError(t, err)

	first, err := p.EnsureRoom(ctx, "g1", "hidden-sova", cat.ID)
	require.NoError(t, err)
	second, err := p.EnsureRoom(ctx, "g1", "hidden-sova", cat.ID)
	require.NoError(t, err)

	require.Equal(t, first, second)
	// One category plus one room; the repeat call created nothing.
	require.Equal(t, 2, platform.creates)
}

func TestEnsureRoomDistinguishesParents(t *testing.T) {
	platform := newFakePlatform()
	p := app.NewProvisioner(platform)
	ctx := context.Background()

	catA, err := p.EnsureCategory(ctx, "g1", "PUGs")
	require.NoError(t, err)
	catB, err := p.EnsureCategory(ctx, "g1", "Other")
	require.NoError(t, err)

	a, err := p.EnsureRoom(ctx, "g1", "lobby", catA.ID)
	require.NoError(t, err)
	b, err := p.EnsureRoom(ctx, "g1", "lobby", catB.ID)
	require.NoError(t, err)
	require.NotEqual(t, a.ID, b.ID)
}

func TestEnsureRoomPropagatesCreateError(t *testing.T) {
	platform := newFakePlatform()
	platform.createErr = errors.New("rate limited")
	p := app.NewProvisioner(platform)

	_, err := p.EnsureCategory(context.Background(), "g1", "PUGs")
	require.ErrorContains(t, err, "rate limited")
}

func TestEnsureRoomConcurrentSameGuild(t *testing.T) {
	platform := newFakePlatform()
	p := app.NewProvisioner(platform)
	ctx := context.Background()

	errs := make(chan error, 8)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := p.EnsureCategory(ctx, "g1", "PUGs")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}
	// The per-guild lock serializes check-then-create.
	require.Equal(t, 1, platform.creates)
}
