package application

import (
	"math"
	"math/rand"
	"sync"

	"github.com/AzielCF/az-planner/calendar/domain/post"
)

// RandSource is the only source of nondeterminism in the planner.
// *rand.Rand satisfies it.
type RandSource interface {
	Float64() float64
	Intn(n int) int
}

type lockedSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSeededSource returns a RandSource safe for concurrent use.
// The same seed always yields the same sequence.
func NewSeededSource(seed int64) RandSource {
	return &lockedSource{rng: rand.New(rand.NewSource(seed))}
}

func (s *lockedSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64()
}

func (s *lockedSource) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(n)
}

// RateRange is a half-open interval [Min, Max) of engagement rates.
type RateRange struct {
	Min float64
	Max float64
}

var (
	LikesRate       = RateRange{Min: 0.03, Max: 0.05}
	ViewsRate       = RateRange{Min: 0.10, Max: 0.15}
	ReachRate       = RateRange{Min: 0.60, Max: 0.80}
	ImpressionsRate = RateRange{Min: 1.0, Max: 1.4}
	SharesRate      = RateRange{Min: 0.01, Max: 0.02}
	CommentsRate    = RateRange{Min: 0.005, Max: 0.010}
)

type Estimator struct {
	rng RandSource
}

func NewEstimator(rng RandSource) *Estimator {
	return &Estimator{rng: rng}
}

// Estimate draws every metric independently as floor(followers * rate).
func (e *Estimator) Estimate(followers int64) post.Metrics {
	return post.Metrics{
		Likes:       e.apply(followers, LikesRate),
		Views:       e.apply(followers, ViewsRate),
		Reach:       e.apply(followers, ReachRate),
		Impressions: e.apply(followers, ImpressionsRate),
		Shares:      e.apply(followers, SharesRate),
		Comments:    e.apply(followers, CommentsRate),
	}
}

// RandomPostType picks a content format uniformly.
func (e *Estimator) RandomPostType() post.PostType {
	return post.PostTypes[e.rng.Intn(len(post.PostTypes))]
}

func (e *Estimator) apply(followers int64, r RateRange) int64 {
	if followers <= 0 {
		return 0
	}
	rate := r.Min + e.rng.Float64()*(r.Max-r.Min)
	return int64(math.Floor(float64(followers) * rate))
}
