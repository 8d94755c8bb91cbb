package post

import "time"

type PostType string

const (
	PostTypeStatic    PostType = "Static"
	PostTypeReel      PostType = "Reel"
	PostTypeVideoEdit PostType = "Video Edit"
	PostTypeStory     PostType = "Story"
	PostTypeIGTV      PostType = "IGTV"
)

var PostTypes = []PostType{PostTypeStatic, PostTypeReel, PostTypeVideoEdit, PostTypeStory, PostTypeIGTV}

// Metrics are the estimated engagement numbers of a post.
type Metrics struct {
	Likes       int64 `json:"likes"`
	Views       int64 `json:"views"`
	Comments    int64 `json:"comments"`
	Shares      int64 `json:"shares"`
	Reach       int64 `json:"reach"`
	Impressions int64 `json:"impressions"`
}

// Add returns the field-wise sum of m and other.
func (m Metrics) Add(other Metrics) Metrics {
	return Metrics{
		Likes:       m.Likes + other.Likes,
		Views:       m.Views + other.Views,
		Comments:    m.Comments + other.Comments,
		Shares:      m.Shares + other.Shares,
		Reach:       m.Reach + other.Reach,
		Impressions: m.Impressions + other.Impressions,
	}
}

type Post struct {
	ID            int        `json:"id"`
	PageID        int        `json:"page_id"`
	PostType      PostType   `json:"post_type"`
	PostLink      string     `json:"post_link,omitempty"`
	ScheduledDate *time.Time `json:"scheduled_date,omitempty"`
	Metrics       Metrics    `json:"metrics"`
	CreatedAt     time.Time  `json:"created_at"`
}

// IsScheduledOn reports whether the post is scheduled on the given YYYY-MM-DD key.
func (p Post) IsScheduledOn(dateKey string) bool {
	if p.ScheduledDate == nil {
		return false
	}
	return p.ScheduledDate.Format("2006-01-02") == dateKey
}
