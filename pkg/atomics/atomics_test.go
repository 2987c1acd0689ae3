package atomics

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFetchAddInt64(t *testing.T) {
	var v int64 = 10
	old := FetchAddInt64(&v, 5)
	assert.Equal(t, int64(10), old)
	assert.Equal(t, int64(15), v)
}

func TestFetchAddUint64Concurrent(t *testing.T) {
	var v uint64
	var wg sync.WaitGroup
	const workers = 32
	const perWorker = 1000
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				FetchAddUint64(&v, 1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, uint64(workers*perWorker), v)
}

func TestCasValInt64(t *testing.T) {
	var v int64 = 1
	assert.Equal(t, int64(1), CasValInt64(&v, 1, 2))
	assert.Equal(t, int64(2), v)
	assert.Equal(t, int64(2), CasValInt64(&v, 1, 3))
	assert.Equal(t, int64(2), v)
}

func TestCasBoolInt64(t *testing.T) {
	var v int64 = -1
	assert.True(t, CasBoolInt64(&v, -1, 7))
	assert.Equal(t, int64(7), v)
	assert.False(t, CasBoolInt64(&v, -1, 9))
	assert.Equal(t, int64(7), v)
}

func TestMaxInt64Concurrent(t *testing.T) {
	var v int64 = -1
	var wg sync.WaitGroup
	for i := int64(0); i < 200; i++ {
		wg.Add(1)
		go func(val int64) {
			defer wg.Done()
			MaxInt64(&v, val)
		}(i)
	}
	wg.Wait()
	assert.Equal(t, int64(199), v)
}
