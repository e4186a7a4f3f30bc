package source

import (
	"context"
	"sync"
	"time"

	"github.com/hazadus/go-confplan/internal/schedule"
)

// Provider кэширует последний снимок источника
type Provider struct {
	src Source

	mu        sync.RWMutex
	snapshot  *schedule.Schedule
	fetchedAt time.Time
}

// NewProvider создает новый экземпляр Provider
func NewProvider(src Source) *Provider {
	return &Provider{src: src}
}

// NewStaticProvider создает Provider с готовым снимком
func NewStaticProvider(src Source, snapshot *schedule.Schedule) *Provider {
	return &Provider{src: src, snapshot: snapshot, fetchedAt: time.Now()}
}

// GetSchedule возвращает закэшированный снимок или загружает его
func (p *Provider) GetSchedule(ctx context.Context) (*schedule.Schedule, error) {
	p.mu.RLock()
	snapshot := p.snapshot
	p.mu.RUnlock()
	if snapshot != nil {
		return snapshot, nil
	}
	return p.Refresh(ctx)
}

// Refresh загружает снимок из источника. При ошибке кэш не меняется
func (p *Provider) Refresh(ctx context.Context) (*schedule.Schedule, error) {
	snapshot, err := p.src.GetSchedule(ctx)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	p.snapshot = snapshot
	p.fetchedAt = time.Now()
	p.mu.Unlock()
	return snapshot, nil
}

// FetchedAt время последней успешной загрузки
func (p *Provider) FetchedAt() time.Time {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.fetchedAt
}

// GetTimeline возвращает ленту снимка под фильтром
func (p *Provider) GetTimeline(ctx context.Context, f schedule.Filter, favs schedule.FavoriteChecker) (schedule.Timeline, error) {
	snapshot, err := p.GetSchedule(ctx)
	if err != nil {
		return schedule.Timeline{}, err
	}
	return schedule.ComputeTimeline(snapshot, f, favs)
}
