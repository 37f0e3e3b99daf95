package utils

import (
	"math"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPartitionMap(t *testing.T) {
	{ // Test PartitionMap
		getHisto := func(K, Np int) (histo map[int]int) {
			pm := NewPartitionMap(Np, K)
			histo = make(map[int]int)
			for np := 0; np < pm.ParallelDegree; np++ {
				kMin, kMax := pm.GetBucketRange(np)
				histo[kMax-kMin]++
			}
			return
		}
		getTotal := func(histo map[int]int) (total int) {
			for key, count := range histo {
				total += key * count
			}
			return
		}
		// Never more buckets than items
		assert.Equal(t, map[int]int{1: 2}, getHisto(2, 32))
		assert.Equal(t, map[int]int{1: 32}, getHisto(32, 32))
		assert.Equal(t, map[int]int{8: 32}, getHisto(256, 32))
		assert.Equal(t, map[int]int{8: 1, 9: 31}, getHisto(287, 32))
		assert.Equal(t, 287, getTotal(getHisto(287, 32)))
		for n := 64; n < 2000; n++ {
			var (
				keys   [2]float64
				keyNum int
			)
			histo := getHisto(n, 32)
			for key := range histo {
				keys[keyNum] = float64(key)
				keyNum++
			}
			if keyNum == 2 {
				assert.Equal(t, 1., math.Abs(keys[0]-keys[1])) // Maximum imbalance of 1
			}
			assert.Equal(t, n, getTotal(histo))
		}
	}
	{ // Buckets tile [0, MaxIndex) in order
		for maxIndex := 10; maxIndex < 500; maxIndex++ {
			pm := NewPartitionMap(5, maxIndex)
			kMin, _ := pm.GetBucketRange(0)
			assert.Equal(t, 0, kMin)
			for bn := 1; bn < pm.ParallelDegree; bn++ {
				_, prevMax := pm.GetBucketRange(bn - 1)
				kMin, _ = pm.GetBucketRange(bn)
				assert.Equal(t, prevMax, kMin)
			}
			_, kMax := pm.GetBucketRange(pm.ParallelDegree - 1)
			assert.Equal(t, maxIndex, kMax)
		}
	}
	{ // Every index visited exactly once across buckets
		for _, np := range []int{1, 3, 8} {
			var (
				pm      = NewPartitionMap(np, 97)
				visited = make([]int32, 97)
			)
			pm.ForEachBucket(func(kMin, kMax int) {
				for k := kMin; k < kMax; k++ {
					atomic.AddInt32(&visited[k], 1)
				}
			})
			for k := range visited {
				assert.Equal(t, int32(1), visited[k])
			}
		}
	}
}
