package filter

import (
	"log/slog"
	"time"

	"github.com/dlclark/regexp2"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/ivoronin/scenefilter/internal/logging"
)

const (
	// DefaultCacheSize is the number of compiled patterns kept by a Matcher.
	DefaultCacheSize = 512
	// DefaultMatchTimeout bounds a single pattern evaluation.
	DefaultMatchTimeout = 250 * time.Millisecond
)

// Matcher compiles and caches rule patterns. Patterns always match the whole
// subject: "1" matches "1" but not "10".
type Matcher struct {
	cache   *lru.Cache[string, *regexp2.Regexp]
	timeout time.Duration
	log     *slog.Logger
}

// NewMatcher returns a Matcher caching up to size compiled patterns.
// Non-positive arguments fall back to the defaults; a nil logger discards.
func NewMatcher(size int, timeout time.Duration, log *slog.Logger) *Matcher {
	if size <= 0 {
		size = DefaultCacheSize
	}
	if timeout <= 0 {
		timeout = DefaultMatchTimeout
	}
	if log == nil {
		log = logging.Discard()
	}
	cache, err := lru.New[string, *regexp2.Regexp](size)
	if err != nil {
		// only possible for size <= 0, excluded above
		panic(err)
	}
	return &Matcher{cache: cache, timeout: timeout, log: log}
}

// ValidatePattern reports a *PatternError when pattern does not compile.
func ValidatePattern(pattern string) error {
	// Check the bare pattern first so error offsets refer to user input.
	if _, err := regexp2.Compile(pattern, regexp2.None); err != nil {
		return &PatternError{Pattern: pattern, Err: err}
	}
	return nil
}

// compile returns the anchored, compiled form of pattern.
func (m *Matcher) compile(pattern string) (*regexp2.Regexp, error) {
	if re, ok := m.cache.Get(pattern); ok {
		return re, nil
	}
	if err := ValidatePattern(pattern); err != nil {
		return nil, err
	}
	re, err := regexp2.Compile(`\A(?:`+pattern+`)\z`, regexp2.None)
	if err != nil {
		return nil, &PatternError{Pattern: pattern, Err: err}
	}
	re.MatchTimeout = m.timeout
	m.cache.Add(pattern, re)
	return re, nil
}

// Match reports whether pattern matches all of subject. Patterns that fail
// to compile or time out never match.
func (m *Matcher) Match(pattern, subject string) bool {
	re, err := m.compile(pattern)
	if err != nil {
		m.log.Warn("skipping rule with invalid pattern", "pattern", pattern, "error", err)
		return false
	}
	ok, err := re.MatchString(subject)
	if err != nil {
		m.log.Warn("pattern evaluation failed", "pattern", pattern, "subject", subject, "error", err)
		return false
	}
	return ok
}

// Cached returns the number of compiled patterns currently held.
func (m *Matcher) Cached() int { return m.cache.Len() }
