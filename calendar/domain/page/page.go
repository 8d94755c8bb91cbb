package page

type Category string

const (
	CategoryMeme      Category = "Meme"
	CategoryEdit      Category = "Edit"
	CategoryBollywood Category = "Bollywood"
)

// Categories is the closed, ordered set of page categories.
// Rollups and exports list categories in this order.
var Categories = []Category{CategoryMeme, CategoryEdit, CategoryBollywood}

func (c Category) IsValid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Page is a social-media account posts can be assigned to.
type Page struct {
	ID            int      `json:"id"`
	PageName      string   `json:"page_name"`
	Category      Category `json:"category"`
	FollowerCount int64    `json:"follower_count"`
	ProfileLink   string   `json:"profile_link"`
	IsActive      bool     `json:"is_active"`
}

// FindByID returns the page with id, if present.
func FindByID(pages []Page, id int) (Page, bool) {
	for _, p := range pages {
		if p.ID == id {
			return p, true
		}
	}
	return Page{}, false
}
