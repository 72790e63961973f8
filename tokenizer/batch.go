package tokenizer

import (
	"runtime"
	"sync"

	"github.com/sudachigo/sudachi/morpheme"
)

// batchChunkSize is the number of texts one worker claims at a time,
// matching the teacher's ParseList/InflectList chunk size.
const batchChunkSize = 1000

// TokenizeBatch tokenizes every text in texts concurrently over a
// runtime.NumCPU() worker pool, adapting the teacher's ParseList/
// InflectList chunk-dispatch pattern to this package's single-call
// tokenize() (§5 permits a multi-text batch convenience on top of the
// mandated single-threaded-per-call core). Results line up with texts;
// the first error any worker hits is returned, after all workers finish.
func (t *Tokenizer) TokenizeBatch(texts []string, mode SplitMode) ([]*morpheme.List, error) {
	results := make([]*morpheme.List, len(texts))
	if len(texts) == 0 {
		return results, nil
	}

	numWorkers := runtime.NumCPU()
	if chunks := (len(texts) + batchChunkSize - 1) / batchChunkSize; numWorkers > chunks {
		numWorkers = chunks
	}

	type span struct{ start, end int }
	spans := make(chan span, numWorkers)

	var wg sync.WaitGroup
	var errOnce sync.Once
	var firstErr error

	wg.Add(numWorkers)
	for i := 0; i < numWorkers; i++ {
		go func() {
			defer wg.Done()
			for s := range spans {
				for idx := s.start; idx < s.end; idx++ {
					list, err := t.Tokenize(texts[idx], mode)
					if err != nil {
						errOnce.Do(func() { firstErr = err })
						continue
					}
					results[idx] = list
				}
			}
		}()
	}

	for i := 0; i < len(texts); i += batchChunkSize {
		end := i + batchChunkSize
		if end > len(texts) {
			end = len(texts)
		}
		spans <- span{i, end}
	}
	close(spans)
	wg.Wait()

	return results, firstErr
}
