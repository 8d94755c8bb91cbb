package repository

import (
	"strings"

	"github.com/AzielCF/az-planner/calendar/domain/page"
)

// DefaultRoster returns the pages every planner session starts with.
func DefaultRoster() []page.Page {
	seed := []struct {
		id        int
		name      string
		category  page.Category
		followers int64
	}{
		{1, "@MemeZone", page.CategoryMeme, 245000},
		{2, "@EditMaster", page.CategoryEdit, 892000},
		{3, "@BollywoodHub", page.CategoryBollywood, 634000},
		{4, "@MemeKing", page.CategoryMeme, 156000},
		{5, "@VideoEditor", page.CategoryEdit, 423000},
		{6, "@FilmyWorld", page.CategoryBollywood, 789000},
		{7, "@MemeLord", page.CategoryMeme, 321000},
		{8, "@EditPro", page.CategoryEdit, 567000},
	}

	pages := make([]page.Page, 0, len(seed))
	for _, s := range seed {
		pages = append(pages, page.Page{
			ID:            s.id,
			PageName:      s.name,
			Category:      s.category,
			FollowerCount: s.followers,
			ProfileLink:   "https://instagram.com/" + strings.ToLower(strings.TrimPrefix(s.name, "@")),
			IsActive:      true,
		})
	}
	return pages
}
