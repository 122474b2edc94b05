package ordernum

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestampGenerator_Format(t *testing.T) {
	gen := NewTimestampGenerator()

	num := gen.Next(nil)
	assert.True(t, strings.HasPrefix(num, "ORD-"), "got %q", num)

	customerID := int64(42)
	num = gen.Next(&customerID)
	assert.True(t, strings.HasPrefix(num, "ORD-"), "got %q", num)
	assert.True(t, strings.HasSuffix(num, "-42"), "got %q", num)
}

func TestTimestampGenerator_UniqueUnderConcurrency(t *testing.T) {
	gen := NewTimestampGenerator()

	const goroutines = 50
	const perGoroutine = 10

	var mu sync.Mutex
	seen := make(map[string]struct{}, goroutines*perGoroutine)

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perGoroutine; j++ {
				num := gen.Next(nil)
				mu.Lock()
				seen[num] = struct{}{}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	require.Len(t, seen, goroutines*perGoroutine, "order numbers must be unique")
}
