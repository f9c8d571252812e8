package safe

import (
	"errors"
	"fmt"
	"regexp"
	"sync"
)

// ErrInvalidRegex is returned when a regex pattern cannot be compiled.
var ErrInvalidRegex = errors.New("invalid regular expression")

// maxCacheSize bounds the cache; reaching it clears the whole cache.
const maxCacheSize = 256

var (
	regexMu    sync.RWMutex
	regexCache = make(map[string]*regexp.Regexp)
)

func cacheLoad(key string) (*regexp.Regexp, bool) {
	regexMu.RLock()
	defer regexMu.RUnlock()

	re, ok := regexCache[key]

	return re, ok
}

func cacheStore(key string, re *regexp.Regexp) {
	regexMu.Lock()
	defer regexMu.Unlock()

	if len(regexCache) >= maxCacheSize {
		regexCache = make(map[string]*regexp.Regexp)
	}

	regexCache[key] = re
}

// Compile compiles a configured pattern with error return instead of panic.
// Compiled patterns are cached, so checkers may call it once per transaction.
func Compile(pattern string) (*regexp.Regexp, error) {
	if cached, ok := cacheLoad(pattern); ok {
		return cached, nil
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRegex, err)
	}

	cacheStore(pattern, re)

	return re, nil
}

// FindSubmatch compiles pattern and returns the submatches of s.
// A nil slice with a nil error means no match.
func FindSubmatch(pattern, s string) ([]string, error) {
	re, err := Compile(pattern)
	if err != nil {
		return nil, err
	}

	return re.FindStringSubmatch(s), nil
}
