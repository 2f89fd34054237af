package particles

import "sync"

// task splits data in contiguous chunks, one per worker, and calls fn on every element
// with its index. It returns once all the elements are processed.
func task[T any](workersCount int, data []T, fn func(i int, data T)) {
	workersCount = max(DEFAULT_WORKERS, workersCount)
	dataSize := len(data)
	if workersCount == 1 {
		for i, d := range data {
			fn(i, d)
		}
		return
	}

	var wg sync.WaitGroup
	chunkSize := (dataSize + workersCount - 1) / workersCount

	for workerID := 0; workerID < workersCount; workerID++ {
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				fn(i, data[i])
			}
		}(workerID*chunkSize, min((workerID+1)*chunkSize, dataSize))
	}
	wg.Wait()
}
