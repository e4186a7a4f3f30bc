package source

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	appLog "github.com/hazadus/go-confplan/internal/log"
	"github.com/hazadus/go-confplan/internal/schedule"
)

const refreshTimeout = time.Minute

// Refresher периодически обновляет снимок по cron-расписанию и передает
// новый снимок в OnUpdate. Загрузка идет в горутине cron
type Refresher struct {
	provider *Provider
	cron     *cron.Cron
	onUpdate func(*schedule.Schedule)
}

// NewRefresher создает новый экземпляр Refresher
func NewRefresher(provider *Provider, spec string, onUpdate func(*schedule.Schedule)) (*Refresher, error) {
	r := &Refresher{
		provider: provider,
		cron:     cron.New(),
		onUpdate: onUpdate,
	}
	if _, err := r.cron.AddFunc(spec, r.Run); err != nil {
		return nil, fmt.Errorf("неверное cron-расписание %q: %w", spec, err)
	}
	return r, nil
}

// Run выполняет одно обновление
func (r *Refresher) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	snapshot, err := r.provider.Refresh(ctx)
	if err != nil {
		appLog.Error("schedule refresh failed", err)
		return
	}
	appLog.Info("schedule refreshed", "days", len(snapshot.Days), "sessions", len(snapshot.Sessions()))
	if r.onUpdate != nil {
		r.onUpdate(snapshot)
	}
}

// Start запускает планировщик
func (r *Refresher) Start() {
	r.cron.Start()
}

// Stop останавливает планировщик и ждет завершения текущего обновления
func (r *Refresher) Stop() {
	<-r.cron.Stop().Done()
}
