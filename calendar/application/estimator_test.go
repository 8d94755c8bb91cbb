package application

import (
	"math"
	"testing"

	"github.com/AzielCF/az-planner/calendar/domain/post"
	"github.com/stretchr/testify/assert"
)

// fixedSource always returns the same draw.
type fixedSource struct {
	f float64
	n int
}

func (s fixedSource) Float64() float64 { return s.f }
func (s fixedSource) Intn(n int) int   { return s.n % n }

func floorMul(followers int64, rate float64) int64 {
	return int64(math.Floor(float64(followers) * rate))
}

func TestEstimate_StaysInsideRateBounds(t *testing.T) {
	est := NewEstimator(NewSeededSource(42))
	ranges := map[string]RateRange{
		"likes":       LikesRate,
		"views":       ViewsRate,
		"reach":       ReachRate,
		"impressions": ImpressionsRate,
		"shares":      SharesRate,
		"comments":    CommentsRate,
	}

	for _, followers := range []int64{0, 1, 999, 156000, 892000, 12_345_678} {
		for i := 0; i < 200; i++ {
			m := est.Estimate(followers)
			got := map[string]int64{
				"likes":       m.Likes,
				"views":       m.Views,
				"reach":       m.Reach,
				"impressions": m.Impressions,
				"shares":      m.Shares,
				"comments":    m.Comments,
			}
			for name, r := range ranges {
				assert.GreaterOrEqual(t, got[name], floorMul(followers, r.Min), "%s lower bound for %d", name, followers)
				assert.LessOrEqual(t, got[name], floorMul(followers, r.Max), "%s upper bound for %d", name, followers)
			}
		}
	}
}

func TestEstimate_LowestDraw(t *testing.T) {
	est := NewEstimator(fixedSource{f: 0})
	m := est.Estimate(100000)

	assert.Equal(t, post.Metrics{
		Likes:       3000,
		Views:       10000,
		Comments:    500,
		Shares:      1000,
		Reach:       60000,
		Impressions: 100000,
	}, m)
}

func TestEstimate_SameSeedSameMetrics(t *testing.T) {
	a := NewEstimator(NewSeededSource(7))
	b := NewEstimator(NewSeededSource(7))

	for i := 0; i < 10; i++ {
		assert.Equal(t, a.Estimate(634000), b.Estimate(634000))
		assert.Equal(t, a.RandomPostType(), b.RandomPostType())
	}
}

func TestRandomPostType_IsKnownFormat(t *testing.T) {
	est := NewEstimator(NewSeededSource(1))
	for i := 0; i < 50; i++ {
		assert.Contains(t, post.PostTypes, est.RandomPostType())
	}
	assert.Equal(t, post.PostTypeReel, NewEstimator(fixedSource{n: 1}).RandomPostType())
}
