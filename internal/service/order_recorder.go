package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"tapcard/internal/model"
	"tapcard/internal/repository"
)

const (
	recorderBatchSize     = 10
	recorderFlushInterval = time.Second
)

// OrderRecorder writes order submission logs in the background, batching
// inserts. A nil repository turns it into a no-op.
type OrderRecorder struct {
	repo repository.OrderLogRepository
	ch   chan model.OrderLog
	log  *zap.Logger
	wg   sync.WaitGroup
	once sync.Once
}

// NewOrderRecorder creates a recorder and starts its worker.
func NewOrderRecorder(repo repository.OrderLogRepository, log *zap.Logger) *OrderRecorder {
	r := &OrderRecorder{
		repo: repo,
		ch:   make(chan model.OrderLog, 100),
		log:  log,
	}
	if repo != nil {
		r.wg.Add(1)
		go r.worker()
	}
	return r
}

// Record queues entry. When the queue is full it is written synchronously.
func (r *OrderRecorder) Record(ctx context.Context, entry model.OrderLog) {
	if r == nil || r.repo == nil {
		return
	}
	select {
	case r.ch <- entry:
	default:
		if err := r.repo.Create(ctx, &entry); err != nil {
			r.log.Error("write order log", zap.Error(err))
		}
	}
}

// Close flushes pending entries and stops the worker.
func (r *OrderRecorder) Close() {
	if r == nil || r.repo == nil {
		return
	}
	r.once.Do(func() {
		close(r.ch)
		r.wg.Wait()
	})
}

func (r *OrderRecorder) worker() {
	defer r.wg.Done()
	batch := make([]model.OrderLog, 0, recorderBatchSize)
	ticker := time.NewTicker(recorderFlushInterval)
	defer ticker.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}
		if err := r.repo.CreateBatch(context.Background(), batch); err != nil {
			r.log.Error("write order log batch", zap.Int("size", len(batch)), zap.Error(err))
		}
		batch = batch[:0]
	}

	for {
		select {
		case entry, ok := <-r.ch:
			if !ok {
				flush()
				return
			}
			batch = append(batch, entry)
			if len(batch) >= recorderBatchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		}
	}
}
