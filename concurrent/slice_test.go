package concurrent

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlice(t *testing.T) {
	t.Run("it should collect values appended concurrently", func(t *testing.T) {
		// GIVEN
		s := NewSlice[int]()
		var wg sync.WaitGroup

		// WHEN
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				s.Append(i)
			}()
		}
		wg.Wait()

		// THEN
		assert.Equal(t, 50, s.Length())
		assert.Len(t, s.Get(), 50)
	})

	t.Run("it should return a copy of its content", func(t *testing.T) {
		// GIVEN
		s := NewSlice[string]()
		s.Append("MongoService")

		// WHEN
		snapshot := s.Get()
		snapshot[0] = "changed"

		// THEN
		assert.Equal(t, "MongoService", s.GetAt(0))
	})

	t.Run("it should clear its content", func(t *testing.T) {
		// GIVEN
		s := NewSlice[string]()
		s.Append("PagesCollection")

		// WHEN
		s.Clear()

		// THEN
		assert.Equal(t, 0, s.Length())
	})
}
