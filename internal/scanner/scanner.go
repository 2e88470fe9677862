package scanner

import (
	"context"
	"runtime"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/khanhnv2901/r2s-cli/internal/cache"
	"github.com/khanhnv2901/r2s-cli/internal/model"
	"github.com/khanhnv2901/r2s-cli/internal/rules"
	"github.com/khanhnv2901/r2s-cli/internal/security"
	"github.com/khanhnv2901/r2s-cli/internal/shared/constants"
)

// reclaimThreshold is the target count past which memory is reclaimed
// between batches.
const reclaimThreshold = 1000

// Options configure a Scanner.
type Options struct {
	// Workers is the bounded pool size; zero means the default.
	Workers int
	// Timeout is a soft deadline over the whole dispatch/collect phase;
	// zero means none.
	Timeout time.Duration
	// UseCache enables reading and writing cached scan results.
	UseCache bool
	// Limits bound the JSON lockfile traversal.
	Limits TraversalLimits
}

// Scanner discovers scannable artifacts under a root path, dispatches them
// to format readers over a bounded worker pool, and aggregates deduplicated
// findings. Scan never fails: every error path degrades to an empty (or
// partial) finding list.
type Scanner struct {
	matcher *rules.Matcher
	cache   *cache.Cache
	log     *zap.SugaredLogger
	opts    Options
}

// New builds a Scanner. The cache may be nil, which disables caching
// regardless of Options.UseCache. A nil logger is replaced with a no-op one.
func New(m *rules.Matcher, c *cache.Cache, log *zap.SugaredLogger, opts Options) *Scanner {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	if opts.Workers <= 0 {
		opts.Workers = constants.DefaultScanWorkers
	}
	if opts.Limits == (TraversalLimits{}) {
		opts.Limits = DefaultTraversalLimits()
	}
	return &Scanner{matcher: m, cache: c, log: log, opts: opts}
}

// Scan validates the root path, discovers targets, runs the readers and
// returns the deduplicated findings. The returned slice is never nil and the
// method never returns an error: validation failures and reader errors are
// logged and contribute nothing.
func (s *Scanner) Scan(ctx context.Context, root string) []model.Finding {
	start := time.Now()

	resolved, err := security.ValidateScanRoot(root)
	if err != nil {
		s.log.Errorw("path validation failed", "path", root, "error", err)
		return []model.Finding{}
	}
	s.log.Infof("scanning path: %s", resolved)

	cacheKey := ""
	if s.cacheEnabled() {
		cacheKey = cache.Key(resolved, s.matcher.Rules().Fingerprint())
		if findings, ok := s.cache.Get(cacheKey); ok {
			s.log.Infow("returning cached scan result", "path", resolved, "findings", len(findings))
			if findings == nil {
				findings = []model.Finding{}
			}
			return findings
		}
	}

	targets := s.discover(resolved)
	s.log.Infof("scanning %d targets with %d workers", len(targets), s.opts.Workers)

	if s.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.Timeout)
		defer cancel()
	}

	findings := model.Dedupe(s.collect(ctx, targets))
	if findings == nil {
		findings = []model.Finding{}
	}

	if s.cacheEnabled() {
		s.cache.Set(cacheKey, findings)
	}

	s.log.Infof("scan completed in %.2fs", time.Since(start).Seconds())
	return findings
}

// collect dispatches targets in fixed-size batches over a bounded worker
// pool and merges their outputs. Ordering between workers is not guaranteed;
// callers needing stable output must sort.
func (s *Scanner) collect(ctx context.Context, targets []Target) []model.Finding {
	batchSize := constants.MaxBatchSize
	if max := 2 * s.opts.Workers; max < batchSize {
		batchSize = max
	}

	sem := make(chan struct{}, s.opts.Workers)
	var (
		mu       sync.Mutex
		findings []model.Finding
	)

	for offset := 0; offset < len(targets); offset += batchSize {
		if ctx.Err() != nil {
			s.log.Warnw("scan deadline reached, skipping remaining targets",
				"remaining", len(targets)-offset)
			break
		}

		end := offset + batchSize
		if end > len(targets) {
			end = len(targets)
		}

		var wg sync.WaitGroup
		for _, target := range targets[offset:end] {
			if ctx.Err() != nil {
				break
			}
			wg.Add(1)
			go func(t Target) {
				defer wg.Done()
				sem <- struct{}{}
				defer func() { <-sem }()

				result := s.scanTarget(t)

				mu.Lock()
				findings = append(findings, result...)
				mu.Unlock()
			}(target)
		}
		wg.Wait()

		if len(targets) > reclaimThreshold {
			runtime.GC()
		}
	}

	return findings
}

// scanTarget runs the reader for a single target, converting panics into an
// empty result so one bad artifact never aborts the whole scan.
func (s *Scanner) scanTarget(t Target) (findings []model.Finding) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Errorw("reader panicked", "kind", t.Kind.String(), "path", t.Path, "panic", r)
			findings = nil
		}
	}()

	switch t.Kind {
	case KindManifest:
		return readManifest(t.Path, s.matcher, s.log)
	case KindLockJSON:
		return readLockJSON(t.Path, s.matcher, s.log, s.opts.Limits)
	case KindLockText:
		return readLockText(t.Path, s.matcher, s.log)
	case KindLockBinary:
		return readLockBinary(t.Path, s.matcher, s.log)
	case KindNodeModulesDir:
		return readNodeModules(t.Path, s.matcher, s.log)
	}
	return nil
}

// ClearCache removes every cached scan result.
func (s *Scanner) ClearCache() {
	if s.cache != nil {
		s.cache.Clear()
	}
}

func (s *Scanner) cacheEnabled() bool {
	return s.opts.UseCache && s.cache != nil
}
