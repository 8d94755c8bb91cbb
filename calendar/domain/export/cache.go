package export

import (
	"context"
	"time"
)

// WorkbookCache keeps rendered workbooks so an unchanged calendar is not
// rendered twice. Get returns (nil, nil) on a miss.
type WorkbookCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Name() string
}

// Workbook is a rendered spreadsheet ready for download.
type Workbook struct {
	FileName string `json:"file_name"`
	Data     []byte `json:"-"`
	Sheets   int    `json:"sheets"`
}

const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
