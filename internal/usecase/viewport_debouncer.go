package usecase

import (
	"sync"
	"time"

	"github.com/restaurant-resolver/internal/domain"
)

// DefaultDebounceWindow - окно затишья для коалесценции событий камеры
const DefaultDebounceWindow = 120 * time.Millisecond

// ViewportDebouncer сжимает поток событий камеры до последнего события
// в окне затишья. Во время жеста перетаскивания события приходят чаще
// кадровой частоты - пересчитывать viewport на каждое слишком дорого.
//
// Окно <= 0 отключает дебаунс: событие доставляется синхронно (для
// хостов, которые уже троттлят доставку событий камеры).
//
// Создаётся на каждую клиентскую сессию и явно останавливается через Stop.
type ViewportDebouncer struct {
	window time.Duration
	fire   func(domain.CameraEvent)

	mu      sync.Mutex
	pending *domain.CameraEvent
	timer   *time.Timer
	stopped bool
}

// NewViewportDebouncer - создание нового ViewportDebouncer
func NewViewportDebouncer(window time.Duration, fire func(domain.CameraEvent)) *ViewportDebouncer {
	return &ViewportDebouncer{
		window: window,
		fire:   fire,
	}
}

// Submit принимает очередное событие камеры. Более раннее ожидающее
// событие отбрасывается: доставляется только последнее в окне затишья.
func (d *ViewportDebouncer) Submit(event domain.CameraEvent) {
	if d.window <= 0 {
		d.fire(event)
		return
	}

	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.pending = &event
	if d.timer == nil {
		d.timer = time.AfterFunc(d.window, d.flush)
	} else {
		d.timer.Reset(d.window)
	}
	d.mu.Unlock()
}

func (d *ViewportDebouncer) flush() {
	d.mu.Lock()
	event := d.pending
	d.pending = nil
	d.mu.Unlock()

	if event != nil {
		d.fire(*event)
	}
}

// Stop отменяет таймер; ожидающее событие отбрасывается
func (d *ViewportDebouncer) Stop() {
	d.mu.Lock()
	d.stopped = true
	d.pending = nil
	if d.timer != nil {
		d.timer.Stop()
	}
	d.mu.Unlock()
}
