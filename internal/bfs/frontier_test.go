package bfs

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/csrbfs/bfs500/internal/bitmap"
)

func TestFrontierBitmapRoundTrip(t *testing.T) {
	const nv = 500
	original := []int64{1, 2, 3, 17, 63, 64, 65, 200, 499, 0}
	bm := bitmap.Init(nv)
	vlist := make([]int64, nv)

	fillBitmapFromQueue(bm, original, 0, int64(len(original)), 4)
	out, in := fillQueueFromBitmap(bm, vlist, nv, 4, ThreadBufLen)

	got := append([]int64{}, vlist[out:in]...)
	want := append([]int64{}, original...)
	sort.Slice(got, func(i, j int) bool { return got[i] < got[j] })
	sort.Slice(want, func(i, j int) bool { return want[i] < want[j] })

	assert.Equal(t, want, got)
}

func TestFillQueueFromBitmapEmpty(t *testing.T) {
	bm := bitmap.Init(128)
	vlist := make([]int64, 128)
	out, in := fillQueueFromBitmap(bm, vlist, 128, 4, ThreadBufLen)
	assert.Equal(t, int64(0), out)
	assert.Equal(t, int64(0), in)
}
