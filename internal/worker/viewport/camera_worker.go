package viewport

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/restaurant-resolver/internal/domain"
	"github.com/restaurant-resolver/internal/domain/repository"
	"github.com/restaurant-resolver/internal/usecase"
	"github.com/restaurant-resolver/internal/usecase/dto"
	"github.com/restaurant-resolver/internal/worker"
)

// queryTimeout - таймаут одного пересчёта viewport после затишья
const queryTimeout = 5 * time.Second

// CameraWorker обрабатывает события камеры из Redis Stream. События
// одной сессии проходят через дебаунсер: пересчёт запускается только
// после окна затишья, промежуточные позиции жеста отбрасываются.
type CameraWorker struct {
	*worker.BaseWorker
	streamRepo     repository.StreamRepository
	viewportUC     *usecase.ViewportUseCase
	consumerName   string
	debounceWindow time.Duration

	mu         sync.Mutex
	debouncers map[string]*usecase.ViewportDebouncer
}

// NewCameraWorker создает новый CameraWorker
func NewCameraWorker(
	streamRepo repository.StreamRepository,
	viewportUC *usecase.ViewportUseCase,
	consumerGroup string,
	debounceWindow time.Duration,
	logger *zap.Logger,
) *CameraWorker {
	hostname, _ := os.Hostname()
	consumerName := fmt.Sprintf("%s-%d", hostname, os.Getpid())

	return &CameraWorker{
		BaseWorker:     worker.NewBaseWorker("viewport-camera", consumerGroup, logger),
		streamRepo:     streamRepo,
		viewportUC:     viewportUC,
		consumerName:   consumerName,
		debounceWindow: debounceWindow,
		debouncers:     make(map[string]*usecase.ViewportDebouncer),
	}
}

// Start запускает воркер
func (w *CameraWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting CameraWorker",
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.consumerName),
		zap.Duration("debounce_window", w.debounceWindow))

	if err := w.streamRepo.CreateConsumerGroup(ctx, domain.StreamCameraEvents, w.ConsumerGroup()); err != nil {
		logger.Error("Failed to create consumer group", zap.Error(err))
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	msgChan, err := w.streamRepo.ConsumeStream(ctx, domain.StreamCameraEvents, w.ConsumerGroup(), w.consumerName)
	if err != nil {
		return fmt.Errorf("failed to consume stream: %w", err)
	}

	defer w.stopDebouncers()

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil

		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()

		case msg, ok := <-msgChan:
			if !ok {
				logger.Info("Stream channel closed")
				return nil
			}
			w.handleMessage(ctx, msg)
		}
	}
}

// handleMessage парсит событие и отдаёт его дебаунсеру сессии.
// Сообщение подтверждается сразу: потеря промежуточного события камеры
// не страшна, следующее событие перекроет его.
func (w *CameraWorker) handleMessage(ctx context.Context, msg domain.StreamMessage) {
	logger := w.Logger()

	var event domain.CameraEvent
	if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
		logger.Warn("Failed to parse camera event, skipping",
			zap.String("message_id", msg.ID),
			zap.Error(err))
		_ = w.streamRepo.AckMessage(ctx, domain.StreamCameraEvents, w.ConsumerGroup(), msg.ID)
		return
	}

	if event.SessionID == "" {
		logger.Warn("Camera event without session_id, skipping",
			zap.String("message_id", msg.ID))
		_ = w.streamRepo.AckMessage(ctx, domain.StreamCameraEvents, w.ConsumerGroup(), msg.ID)
		return
	}

	w.debouncerFor(event.SessionID).Submit(event)

	if err := w.streamRepo.AckMessage(ctx, domain.StreamCameraEvents, w.ConsumerGroup(), msg.ID); err != nil {
		logger.Error("Failed to ack message", zap.String("message_id", msg.ID), zap.Error(err))
	}
}

// debouncerFor возвращает дебаунсер сессии, создавая его при первом событии
func (w *CameraWorker) debouncerFor(sessionID string) *usecase.ViewportDebouncer {
	w.mu.Lock()
	defer w.mu.Unlock()

	d, ok := w.debouncers[sessionID]
	if !ok {
		d = usecase.NewViewportDebouncer(w.debounceWindow, func(event domain.CameraEvent) {
			w.processEvent(event)
		})
		w.debouncers[sessionID] = d
	}
	return d
}

// processEvent пересчитывает viewport для устоявшейся позиции камеры
// и публикует результат в стрим для шлюза
func (w *CameraWorker) processEvent(event domain.CameraEvent) {
	logger := w.Logger()

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	req := dto.ViewportQueryRequest{
		Lat:    event.Lat,
		Lon:    event.Lon,
		Zoom:   event.Zoom,
		Width:  event.Width,
		Height: event.Height,
		Rank:   event.Rank,
	}

	resp, err := w.viewportUC.Query(ctx, req)
	if err != nil {
		logger.Error("Viewport query failed",
			zap.String("session_id", event.SessionID),
			zap.Error(err))
		return
	}

	result := domain.ViewportResult{
		SessionID: event.SessionID,
		Points:    convertResultPoints(resp.Points),
		Total:     resp.Total,
	}

	if err := w.streamRepo.PublishToStream(ctx, domain.StreamViewportResults, result); err != nil {
		logger.Error("Failed to publish viewport result",
			zap.String("session_id", event.SessionID),
			zap.Error(err))
		return
	}

	logger.Debug("Viewport result published",
		zap.String("session_id", event.SessionID),
		zap.Int("points", len(result.Points)),
		zap.Int("total", result.Total))
}

// stopDebouncers останавливает дебаунсеры всех сессий
func (w *CameraWorker) stopDebouncers() {
	w.mu.Lock()
	defer w.mu.Unlock()

	for id, d := range w.debouncers {
		d.Stop()
		delete(w.debouncers, id)
	}
}

// convertResultPoints конвертирует DTO точки в событие для шлюза
func convertResultPoints(points []dto.ViewportPoint) []domain.ViewportResultPoint {
	result := make([]domain.ViewportResultPoint, len(points))
	for i, p := range points {
		result[i] = domain.ViewportResultPoint{
			ID:       p.ID,
			Name:     p.Name,
			Lat:      p.Lat,
			Lon:      p.Lon,
			Award:    p.Award,
			Priority: p.Priority,
			Visited:  p.Visited,
		}
	}
	return result
}
