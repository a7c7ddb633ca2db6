package nlp

import (
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Cache memoizes similarity scores. It is a latency optimization only:
// a miss always recomputes the identical value.
type Cache interface {
	Get(key string) (float64, bool)
	Set(key string, score float64)
}

// NopCache never stores anything. Handy for tests.
type NopCache struct{}

func (NopCache) Get(string) (float64, bool) { return 0, false }
func (NopCache) Set(string, float64)        {}

type ttlCache struct {
	inner *gocache.Cache
}

// NewTTLCache returns a Cache whose entries expire after ttl.
func NewTTLCache(ttl time.Duration) Cache {
	return &ttlCache{inner: gocache.New(ttl, 2*ttl)}
}

func (c *ttlCache) Get(key string) (float64, bool) {
	v, ok := c.inner.Get(key)
	if !ok {
		return 0, false
	}
	score, ok := v.(float64)
	return score, ok
}

func (c *ttlCache) Set(key string, score float64) {
	c.inner.SetDefault(key, score)
}

// Scorer computes lexical overlap between two texts as the Jaccard index
// over their stemmed token sets.
type Scorer struct {
	cache Cache
}

// NewScorer builds a Scorer backed by the given cache. A nil cache falls
// back to a 10 minute TTL cache.
func NewScorer(cache Cache) *Scorer {
	if cache == nil {
		cache = NewTTLCache(10 * time.Minute)
	}
	return &Scorer{cache: cache}
}

// Similarity returns a score in [0,1]. It is symmetric and yields 0 when
// both texts normalize to nothing.
func (s *Scorer) Similarity(text1, text2 string) float64 {
	key := fmt.Sprintf("similarity_%s_%s", text1, text2)
	if score, ok := s.cache.Get(key); ok {
		return score
	}

	set1 := tokenSet(Normalize(text1))
	set2 := tokenSet(Normalize(text2))

	intersection := 0
	for token := range set1 {
		if _, ok := set2[token]; ok {
			intersection++
		}
	}
	union := len(set1) + len(set2) - intersection

	score := 0.0
	if union > 0 {
		score = float64(intersection) / float64(union)
	}

	s.cache.Set(key, score)
	return score
}

func tokenSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, token := range tokens {
		set[token] = struct{}{}
	}
	return set
}
