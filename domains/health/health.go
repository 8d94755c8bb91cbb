package health

import (
	"context"
	"time"
)

type Component string

const (
	ComponentStore       Component = "calendar_store"
	ComponentExportCache Component = "export_cache"
	ComponentValkey      Component = "valkey"
)

type Status string

const (
	StatusOk    Status = "OK"
	StatusError Status = "ERROR"
)

type HealthRecord struct {
	Component   Component  `json:"component"`
	Status      Status     `json:"status"`
	LastMessage string     `json:"last_message"`
	LastChecked time.Time  `json:"last_checked"`
	LastSuccess *time.Time `json:"last_success,omitempty"`
}

type IHealthUsecase interface {
	GetStatus(ctx context.Context) ([]HealthRecord, error)
	CheckAll(ctx context.Context) ([]HealthRecord, error)
}
