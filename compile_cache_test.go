package paramq

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileCache(t *testing.T) {
	t.Run("GetOrCreate", func(t *testing.T) {
		var cache compileCache[string, int]

		v, err := cache.GetOrCreate("a", func() (int, error) { return 42, nil })
		require.NoError(t, err)
		assert.Equal(t, 42, v)

		v, err = cache.GetOrCreate("a", func() (int, error) {
			t.Error("Factory function should not be called second time")
			return 99, nil
		})
		require.NoError(t, err)
		assert.Equal(t, 42, v)
	})

	t.Run("ErrorsAreCached", func(t *testing.T) {
		var cache compileCache[string, int]
		boom := errors.New("boom")
		calls := 0

		for i := 0; i < 3; i++ {
			_, err := cache.GetOrCreate("bad", func() (int, error) {
				calls++
				return 0, boom
			})
			assert.ErrorIs(t, err, boom)
		}
		assert.Equal(t, 1, calls)
	})

	t.Run("ConcurrentAccess", func(t *testing.T) {
		var cache compileCache[string, int]
		var calls atomic.Int32
		var wg sync.WaitGroup

		for i := 0; i < 32; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				v, err := cache.GetOrCreate("shared", func() (int, error) {
					calls.Add(1)
					return 7, nil
				})
				assert.NoError(t, err)
				assert.Equal(t, 7, v)
			}()
		}
		wg.Wait()
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("CompilePattern", func(t *testing.T) {
		a, err := compilePattern(`^x+$`)
		require.NoError(t, err)
		b, err := compilePattern(`^x+$`)
		require.NoError(t, err)
		assert.Same(t, a, b)

		_, err = compilePattern(`(`)
		assert.Error(t, err)
	})
}
