package excel

import (
	"fmt"
	"strings"
	"time"

	"github.com/AzielCF/az-planner/calendar/application"
	"github.com/AzielCF/az-planner/calendar/domain/export"
	"github.com/AzielCF/az-planner/calendar/domain/page"
	"github.com/AzielCF/az-planner/calendar/domain/post"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

const (
	OverviewSheet = "Overview"
	maxSheetName  = 31
)

var (
	categoryHeader = []any{"Category", "Total Posts", "Avg Likes", "Avg Views", "Avg Reach", "Avg Impressions", "Avg Shares"}
	dateHeader     = []any{"Date", "Total Posts", "Total Likes", "Total Views", "Total Reach", "Total Impressions", "Total Shares"}
	postHeader     = []any{"Username", "Profile Link", "Followers", "Category", "Date of Post", "Post Type", "Likes", "Views", "Comments", "Shares", "Reach", "Impressions"}
)

// DayData is one exported calendar day.
type DayData struct {
	Date  string
	Posts []post.Post
	Pages []page.Page
}

type ExportData struct {
	Pages []page.Page
	Posts []post.Post
	Days  []DayData
}

// Writer renders ExportData into an xlsx workbook.
type Writer struct {
	now func() time.Time
}

func NewWriter() *Writer {
	return &Writer{now: time.Now}
}

// FileName is the download name of a workbook exported today.
func (w *Writer) FileName() string {
	return fmt.Sprintf("Social_Media_Calendar_%s.xlsx", w.now().Format("2006-01-02"))
}

// Render builds the Overview sheet plus one sheet per day with posts.
func (w *Writer) Render(data ExportData) (export.Workbook, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			logrus.Warnf("[EXPORT] failed to close workbook: %v", err)
		}
	}()

	if err := f.SetSheetName("Sheet1", OverviewSheet); err != nil {
		return export.Workbook{}, fmt.Errorf("rename overview sheet: %w", err)
	}
	if err := writeOverview(f, data); err != nil {
		return export.Workbook{}, err
	}

	sheets := 1
	for _, d := range data.Days {
		if len(d.Posts) == 0 {
			continue
		}
		if err := writeDay(f, d); err != nil {
			return export.Workbook{}, err
		}
		sheets++
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return export.Workbook{}, fmt.Errorf("write workbook: %w", err)
	}

	logrus.Debugf("[EXPORT] rendered workbook with %d sheets (%d bytes)", sheets, buf.Len())
	return export.Workbook{
		FileName: w.FileName(),
		Data:     buf.Bytes(),
		Sheets:   sheets,
	}, nil
}

func writeOverview(f *excelize.File, data ExportData) error {
	rows := [][]any{
		{"Social Media Content Calendar - Overview"},
		{},
		{"Category-wise Post Distribution"},
		categoryHeader,
	}

	for _, c := range application.CategoryRollup(data.Posts, data.Pages) {
		rows = append(rows, []any{string(c.Category), c.PostCount, c.AvgLikes, c.AvgViews, c.AvgReach, c.AvgImpressions, c.AvgShares})
	}

	total := application.TotalsRow(data.Posts)
	rows = append(rows,
		[]any{"TOTAL", total.PostCount, total.Likes, total.Views, total.Reach, total.Impressions, total.Shares},
		[]any{},
		[]any{"Date-wise Performance Summary"},
		dateHeader,
	)

	for _, d := range data.Days {
		if len(d.Posts) == 0 {
			continue
		}
		t := application.TotalsRow(d.Posts)
		rows = append(rows, []any{d.Date, t.PostCount, t.Likes, t.Views, t.Reach, t.Impressions, t.Shares})
	}

	return writeRows(f, OverviewSheet, rows)
}

func writeDay(f *excelize.File, d DayData) error {
	name := SheetName(d.Date)
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("create sheet %s: %w", name, err)
	}

	rows := [][]any{
		{"Posts for " + d.Date},
		{},
		postHeader,
	}
	for _, p := range d.Posts {
		pg, ok := page.FindByID(d.Pages, p.PageID)
		if !ok {
			continue
		}
		m := p.Metrics
		rows = append(rows, []any{
			pg.PageName, pg.ProfileLink, pg.FollowerCount, string(pg.Category), d.Date, string(p.PostType),
			m.Likes, m.Views, m.Comments, m.Shares, m.Reach, m.Impressions,
		})
	}

	return writeRows(f, name, rows)
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		values := row
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("write %s!%s: %w", sheet, cell, err)
		}
	}
	return nil
}

// SheetName turns a date key into a legal sheet name: '-' and the characters
// xlsx forbids (: \ / ? * [ ]) become '_', and the result is cut to 31 chars.
func SheetName(date string) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case '-', ':', '\\', '/', '?', '*', '[', ']':
			return '_'
		}
		return r
	}, date)
	if name == "" {
		name = "Sheet"
	}
	if len([]rune(name)) > maxSheetName {
		name = string([]rune(name)[:maxSheetName])
	}
	return name
}
