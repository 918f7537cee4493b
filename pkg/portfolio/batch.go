package portfolio

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/sourcegraph/conc/pool"

	"github.com/tlemarchand/aval/internal/cache"
	"github.com/tlemarchand/aval/pkg/smartscore"
)

// defaultWorkerMultiplier is applied to NumCPU for the worker count. Batch
// work mixes file I/O with pure computation, so 2x keeps the pool busy.
const defaultWorkerMultiplier = 2

// FileResult is the outcome for one input file. Exactly one of Result and
// Err is set once the run completes. Cached marks a cache hit; DuplicateOf
// names the first file carrying identical bytes.
type FileResult struct {
	Path        string              `json:"path"`
	Dossier     *Dossier            `json:"-"`
	Result      *smartscore.Result  `json:"result,omitempty"`
	Err         error               `json:"-"`
	Error       string              `json:"error,omitempty"`
	Cached      bool                `json:"cached,omitempty"`
	DuplicateOf string              `json:"duplicate_of,omitempty"`
}

// Runner scores batches of dossier files.
type Runner struct {
	cache      *cache.Cache
	workers    int
	onProgress func()
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithCache memoizes results through the given cache.
func WithCache(c *cache.Cache) RunnerOption {
	return func(r *Runner) { r.cache = c }
}

// WithWorkers sets the pool size; non-positive values keep the default.
func WithWorkers(n int) RunnerOption {
	return func(r *Runner) {
		if n > 0 {
			r.workers = n
		}
	}
}

// WithProgress registers a callback invoked once per completed file.
func WithProgress(fn func()) RunnerOption {
	return func(r *Runner) { r.onProgress = fn }
}

// NewRunner builds a Runner.
func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{workers: runtime.NumCPU() * defaultWorkerMultiplier}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// loaded is one input file after the read phase.
type loaded struct {
	path    string
	data    []byte
	sum     uint64
	readErr error
}

// Run scores every file, in two phases: read and fingerprint everything,
// then score each distinct content once and fan the result out to its
// duplicates. Results come back in input order; per-file failures land in
// the corresponding FileResult instead of aborting the batch.
func (r *Runner) Run(ctx context.Context, paths []string) []FileResult {
	if len(paths) == 0 {
		return nil
	}

	files := make([]loaded, len(paths))
	readPool := pool.New().WithMaxGoroutines(r.workers)
	for i, path := range paths {
		readPool.Go(func() {
			data, err := os.ReadFile(path)
			files[i] = loaded{path: path, data: data, readErr: err}
			if err == nil {
				files[i].sum = xxhash.Sum64(data)
			}
		})
	}
	readPool.Wait()

	// First occurrence of each fingerprint is the one that gets scored.
	firstOf := make(map[uint64]int, len(files))
	for i, f := range files {
		if f.readErr != nil {
			continue
		}
		if _, seen := firstOf[f.sum]; !seen {
			firstOf[f.sum] = i
		}
	}

	results := make([]FileResult, len(paths))
	var mu sync.Mutex

	scorePool := pool.New().WithMaxGoroutines(r.workers).WithContext(ctx)
	for _, idx := range firstOf {
		scorePool.Go(func(ctx context.Context) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			fr := r.scoreOne(files[idx])
			mu.Lock()
			results[idx] = fr
			mu.Unlock()
			if r.onProgress != nil {
				r.onProgress()
			}
			return nil
		})
	}
	err := scorePool.Wait()

	for i, f := range files {
		if f.readErr != nil {
			results[i] = FileResult{Path: f.path, Err: f.readErr, Error: f.readErr.Error()}
			if r.onProgress != nil {
				r.onProgress()
			}
			continue
		}
		first := firstOf[f.sum]
		if first == i {
			if results[i].Path == "" {
				cancelErr := err
				if cancelErr == nil {
					cancelErr = ctx.Err()
				}
				results[i] = FileResult{Path: f.path, Err: cancelErr}
				if cancelErr != nil {
					results[i].Error = cancelErr.Error()
				}
			}
			continue
		}
		dup := results[first]
		dup.Path = f.path
		dup.DuplicateOf = files[first].path
		results[i] = dup
		if r.onProgress != nil {
			r.onProgress()
		}
	}
	return results
}

// scoreOne scores a single loaded file, consulting the cache first. The
// dossier is parsed even on a cache hit so callers keep its metadata.
func (r *Runner) scoreOne(f loaded) FileResult {
	fr := FileResult{Path: f.path}

	d, err := ParseDossier(f.data)
	if err != nil {
		fr.Err = fmt.Errorf("%s: %w", f.path, err)
		fr.Error = fr.Err.Error()
		return fr
	}
	fr.Dossier = d

	key := cache.Key("smartscore",
		cache.HashBytes(f.data),
		smartscore.Version,
		strconv.FormatUint(f.sum, 16))

	if r.cache != nil {
		if raw, ok := r.cache.Get(key); ok {
			var res smartscore.Result
			if err := json.Unmarshal(raw, &res); err == nil {
				fr.Result = &res
				fr.Cached = true
				return fr
			}
		}
	}

	res, err := d.Score()
	if err != nil {
		fr.Err = fmt.Errorf("%s: %w", f.path, err)
		fr.Error = fr.Err.Error()
		return fr
	}
	fr.Result = res

	if r.cache != nil {
		if raw, err := json.Marshal(res); err == nil {
			_ = r.cache.Set(key, raw)
		}
	}
	return fr
}
