package store_test

import (
	"context"
	"sync"
	"testing"

	"speed-camera-registry/be/models"
	"speed-camera-registry/be/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func camera(s1, s2, zip string) models.Camera {
	return models.Camera{
		CrossStreet1: s1,
		CrossStreet2: s2,
		Zipcode:      zip,
		SpeedLimit:   25,
		Direction:    "N",
	}
}

func ptr[T any](v T) *T { return &v }

// runStoreContract exercises behaviour every Store implementation must share.
func runStoreContract(t *testing.T, newStore func(t *testing.T) store.Store) {
	ctx := context.Background()

	t.Run("create assigns increasing ids", func(t *testing.T) {
		s := newStore(t)
		a, err := s.Create(ctx, camera("5th Ave", "W 42nd St", "10036"))
		require.NoError(t, err)
		b, err := s.Create(ctx, camera("Broadway", "W 34th St", "10001"))
		require.NoError(t, err)

		assert.NotZero(t, a.ID)
		assert.Greater(t, b.ID, a.ID)
	})

	t.Run("create ignores caller supplied id", func(t *testing.T) {
		s := newStore(t)
		in := camera("Park Ave", "E 59th St", "10022")
		in.ID = 999
		created, err := s.Create(ctx, in)
		require.NoError(t, err)
		assert.NotEqual(t, uint(999), created.ID)
	})

	t.Run("duplicate create rejected", func(t *testing.T) {
		s := newStore(t)
		_, err := s.Create(ctx, camera("7th Ave", "W 50th St", "10019"))
		require.NoError(t, err)

		_, err = s.Create(ctx, camera("7th Ave", "W 50th St", "10019"))
		assert.ErrorIs(t, err, store.ErrDuplicate)
	})

	t.Run("same streets in another zipcode or order are distinct", func(t *testing.T) {
		s := newStore(t)
		_, err := s.Create(ctx, camera("Main St", "1st Ave", "11111"))
		require.NoError(t, err)
		_, err = s.Create(ctx, camera("Main St", "1st Ave", "22222"))
		require.NoError(t, err)
		_, err = s.Create(ctx, camera("1st Ave", "Main St", "11111"))
		require.NoError(t, err)
		_, err = s.Create(ctx, camera("main st", "1st Ave", "11111"))
		require.NoError(t, err)
	})

	t.Run("get missing", func(t *testing.T) {
		s := newStore(t)
		_, err := s.Get(ctx, 12345)
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("partial update keeps other fields", func(t *testing.T) {
		s := newStore(t)
		created, err := s.Create(ctx, camera("7th Ave", "W 50th St", "10019"))
		require.NoError(t, err)

		updated, err := s.Update(ctx, created.ID, models.CameraPatch{SpeedLimit: ptr(30)})
		require.NoError(t, err)

		want := created
		want.SpeedLimit = 30
		assert.Equal(t, want, updated)

		got, err := s.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("update onto another intersection rejected", func(t *testing.T) {
		s := newStore(t)
		_, err := s.Create(ctx, camera("Market St", "5th St", "94103"))
		require.NoError(t, err)
		other, err := s.Create(ctx, camera("Market St", "6th St", "94103"))
		require.NoError(t, err)

		_, err = s.Update(ctx, other.ID, models.CameraPatch{CrossStreet2: ptr("5th St")})
		assert.ErrorIs(t, err, store.ErrDuplicate)
		var dup *store.DuplicateError
		require.ErrorAs(t, err, &dup)
		want := other
		want.CrossStreet2 = "5th St"
		assert.Equal(t, want, dup.Camera)

		got, err := s.Get(ctx, other.ID)
		require.NoError(t, err)
		assert.Equal(t, "6th St", got.CrossStreet2)
	})

	t.Run("update re-asserting own intersection succeeds", func(t *testing.T) {
		s := newStore(t)
		created, err := s.Create(ctx, camera("Lombard St", "Hyde St", "94133"))
		require.NoError(t, err)

		updated, err := s.Update(ctx, created.ID, models.CameraPatch{
			CrossStreet1: ptr("Lombard St"),
			CrossStreet2: ptr("Hyde St"),
			Zipcode:      ptr("94133"),
			Direction:    ptr("E"),
		})
		require.NoError(t, err)
		assert.Equal(t, "E", updated.Direction)
	})

	t.Run("update missing", func(t *testing.T) {
		s := newStore(t)
		_, err := s.Update(ctx, 12345, models.CameraPatch{SpeedLimit: ptr(30)})
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("delete then every operation reports not found", func(t *testing.T) {
		s := newStore(t)
		created, err := s.Create(ctx, camera("State St", "W Madison St", "60602"))
		require.NoError(t, err)

		require.NoError(t, s.Delete(ctx, created.ID))

		_, err = s.Get(ctx, created.ID)
		assert.ErrorIs(t, err, store.ErrNotFound)
		_, err = s.Update(ctx, created.ID, models.CameraPatch{SpeedLimit: ptr(30)})
		assert.ErrorIs(t, err, store.ErrNotFound)
		assert.ErrorIs(t, s.Delete(ctx, created.ID), store.ErrNotFound)
	})

	t.Run("ids are not reused after delete", func(t *testing.T) {
		s := newStore(t)
		a, err := s.Create(ctx, camera("A St", "B St", "33333"))
		require.NoError(t, err)
		require.NoError(t, s.Delete(ctx, a.ID))

		b, err := s.Create(ctx, camera("A St", "B St", "33333"))
		require.NoError(t, err)
		assert.Greater(t, b.ID, a.ID)
	})

	t.Run("scan and list by zipcode ordered by id", func(t *testing.T) {
		s := newStore(t)
		a, err := s.Create(ctx, camera("A St", "B St", "44444"))
		require.NoError(t, err)
		_, err = s.Create(ctx, camera("C St", "D St", "55555"))
		require.NoError(t, err)
		c, err := s.Create(ctx, camera("E St", "F St", "44444"))
		require.NoError(t, err)

		all, err := s.Scan(ctx)
		require.NoError(t, err)
		require.Len(t, all, 3)
		for i := 1; i < len(all); i++ {
			assert.Less(t, all[i-1].ID, all[i].ID)
		}

		zipped, err := s.ListByZipcode(ctx, "44444")
		require.NoError(t, err)
		assert.Equal(t, []models.Camera{a, c}, zipped)

		none, err := s.ListByZipcode(ctx, "99999")
		require.NoError(t, err)
		assert.NotNil(t, none)
		assert.Empty(t, none)
	})

	t.Run("concurrent colliding creates succeed once", func(t *testing.T) {
		s := newStore(t)
		const workers = 16

		var (
			wg        sync.WaitGroup
			mu        sync.Mutex
			succeeded int
			dupes     int
		)
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := s.Create(ctx, camera("Sunset Blvd", "N Highland Ave", "90028"))
				mu.Lock()
				defer mu.Unlock()
				switch {
				case err == nil:
					succeeded++
				case assert.ErrorIs(t, err, store.ErrDuplicate):
					dupes++
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, 1, succeeded)
		assert.Equal(t, workers-1, dupes)
	})

	t.Run("concurrent creates get distinct ids", func(t *testing.T) {
		s := newStore(t)
		const workers = 20

		ids := make(chan uint, workers)
		var wg sync.WaitGroup
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				c, err := s.Create(ctx, camera("Street", string(rune('A'+i))+" Ave", "66666"))
				if assert.NoError(t, err) {
					ids <- c.ID
				}
			}(i)
		}
		wg.Wait()
		close(ids)

		seen := map[uint]bool{}
		for id := range ids {
			assert.False(t, seen[id], "id %d assigned twice", id)
			seen[id] = true
		}
		assert.Len(t, seen, workers)
	})
}
