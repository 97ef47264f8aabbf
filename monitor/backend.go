package monitor

import (
	"time"

	"github.com/wfunc/bingoserver/models"
	"github.com/wfunc/bingoserver/persistence"
)

// instrumentedBackend wraps a snapshot backend and records write
// latency and failures.
type instrumentedBackend struct {
	inner   persistence.Backend
	monitor *Monitor
}

// InstrumentBackend decorates backend with snapshot metrics.
func (m *Monitor) InstrumentBackend(inner persistence.Backend) persistence.Backend {
	return &instrumentedBackend{inner: inner, monitor: m}
}

func (b *instrumentedBackend) Save(rooms map[string]models.RoomState) error {
	start := time.Now()
	err := b.inner.Save(rooms)
	b.monitor.ObserveSnapshot(time.Since(start), err)
	return err
}

func (b *instrumentedBackend) Load() (map[string]models.RoomState, error) {
	return b.inner.Load()
}

func (b *instrumentedBackend) Close() error {
	return b.inner.Close()
}
