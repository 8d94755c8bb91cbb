package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/AzielCF/az-planner/calendar/domain/event"
	"github.com/AzielCF/az-planner/calendar/domain/export"
	"github.com/AzielCF/az-planner/domains/health"
	"github.com/sirupsen/logrus"
)

// Pinger is satisfied by the valkey client.
type Pinger interface {
	Ping(ctx context.Context) error
}

type healthService struct {
	store  event.CalendarStore
	cache  export.WorkbookCache
	valkey Pinger

	mu      sync.Mutex
	records map[health.Component]health.HealthRecord
}

// NewHealthService checks the planner's runtime components. valkey may be nil.
func NewHealthService(store event.CalendarStore, cache export.WorkbookCache, valkey Pinger) health.IHealthUsecase {
	return &healthService{
		store:   store,
		cache:   cache,
		valkey:  valkey,
		records: make(map[health.Component]health.HealthRecord),
	}
}

func (s *healthService) GetStatus(ctx context.Context) ([]health.HealthRecord, error) {
	s.mu.Lock()
	empty := len(s.records) == 0
	s.mu.Unlock()
	if empty {
		return s.CheckAll(ctx)
	}
	return s.list(), nil
}

func (s *healthService) CheckAll(ctx context.Context) ([]health.HealthRecord, error) {
	s.report(health.ComponentStore, nil, fmt.Sprintf("%d pages, revision %d", len(s.store.Pages()), s.store.Revision()))

	if s.cache != nil {
		_, err := s.cache.Get(ctx, "health:probe")
		s.report(health.ComponentExportCache, err, "backend "+s.cache.Name())
	}

	if s.valkey != nil {
		checkCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		err := s.valkey.Ping(checkCtx)
		cancel()
		s.report(health.ComponentValkey, err, "PONG")
	}

	return s.list(), nil
}

func (s *healthService) report(component health.Component, err error, okMessage string) {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.records[component]
	rec.Component = component
	rec.LastChecked = now
	if err != nil {
		rec.Status = health.StatusError
		rec.LastMessage = err.Error()
		logrus.WithError(err).Warnf("[Health] %s check failed", component)
	} else {
		rec.Status = health.StatusOk
		rec.LastMessage = okMessage
		rec.LastSuccess = &now
	}
	s.records[component] = rec
}

func (s *healthService) list() []health.HealthRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]health.HealthRecord, 0, len(s.records))
	for _, rec := range s.records {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Component < out[j].Component })
	return out
}
