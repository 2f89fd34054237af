package particles

import (
	"sync/atomic"
	"testing"
)

func TestTask_VisitsEveryElementOnce(t *testing.T) {
	for _, workers := range []int{0, 1, 2, 3, 8, 64} {
		for _, size := range []int{0, 1, 5, 17, 100} {
			data := make([]int, size)
			for i := range data {
				data[i] = i
			}
			visits := make([]int32, size)

			task(workers, data, func(i int, d int) {
				if i != d {
					t.Errorf("index %d got element %d", i, d)
				}
				atomic.AddInt32(&visits[i], 1)
			})

			for i, v := range visits {
				if v != 1 {
					t.Errorf("workers=%d size=%d: element %d visited %d times", workers, size, i, v)
				}
			}
		}
	}
}
