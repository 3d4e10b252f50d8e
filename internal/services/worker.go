package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"alfredoptarigan/resumate/internal/logger"
	"alfredoptarigan/resumate/internal/repositories"
)

const pollInterval = 10 * time.Second

type Worker interface {
	Start(ctx context.Context)
	Stop()
	// EnqueueJob never blocks. A job the queue cannot take stays queued on
	// its session and is picked up by the poller.
	EnqueueJob(sessionID uuid.UUID) bool
}

type worker struct {
	sessionRepo  repositories.SessionRepository
	generator    GeneratorService
	jobQueue     chan uuid.UUID
	concurrency  int
	pollInterval time.Duration
	wg           sync.WaitGroup
	stopChan     chan struct{}
	stopOnce     sync.Once

	mu      sync.Mutex
	pending map[uuid.UUID]bool
}

func NewWorker(
	sessionRepo repositories.SessionRepository,
	generator GeneratorService,
	concurrency int,
	queueSize int,
) Worker {
	if concurrency <= 0 {
		concurrency = 1
	}
	if queueSize <= 0 {
		queueSize = 100
	}
	return &worker{
		sessionRepo:  sessionRepo,
		generator:    generator,
		jobQueue:     make(chan uuid.UUID, queueSize),
		concurrency:  concurrency,
		pollInterval: pollInterval,
		stopChan:     make(chan struct{}),
		pending:      make(map[uuid.UUID]bool),
	}
}

// Start implements Worker.
func (w *worker) Start(ctx context.Context) {
	log := logger.Get()
	log.WithField("concurrency", w.concurrency).Info("🚀 Starting worker")

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processJobs(ctx, i+1)
	}

	w.wg.Add(1)
	go w.pollQueuedSessions(ctx)

	log.Info("✅ Worker started successfully")
}

// Stop implements Worker.
func (w *worker) Stop() {
	w.stopOnce.Do(func() {
		logger.Get().Info("🛑 Stopping worker...")
		close(w.stopChan)
		w.wg.Wait()
		logger.Get().Info("✅ Worker stopped")
	})
}

// EnqueueJob implements Worker.
func (w *worker) EnqueueJob(sessionID uuid.UUID) bool {
	log := logger.Get().WithField("session_id", sessionID)

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.pending[sessionID] {
		return true
	}

	select {
	case <-w.stopChan:
		log.Warn("⚠️  Worker stopped, cannot enqueue job")
		return false
	default:
	}

	select {
	case w.jobQueue <- sessionID:
		w.pending[sessionID] = true
		log.Info("📥 Job enqueued")
		return true
	default:
		log.Warn("⚠️  Job queue full, leaving session for the poller")
		return false
	}
}

func (w *worker) processJobs(ctx context.Context, workerID int) {
	defer w.wg.Done()
	log := logger.Get().WithField("worker", workerID)
	log.Info("👷 Worker started processing jobs")

	for {
		select {
		case <-w.stopChan:
			log.Info("👷 Worker stopped")
			return
		case <-ctx.Done():
			log.Info("👷 Worker context cancelled")
			return
		case sessionID := <-w.jobQueue:
			jobLog := log.WithField("session_id", sessionID)
			jobLog.Info("👷 Processing job")
			if err := w.generator.Generate(ctx, sessionID); err != nil {
				jobLog.WithError(err).Error("❌ Job failed")
			} else {
				jobLog.Info("✅ Job completed")
			}

			w.mu.Lock()
			delete(w.pending, sessionID)
			w.mu.Unlock()
		}
	}
}

func (w *worker) pollQueuedSessions(ctx context.Context) {
	defer w.wg.Done()
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	log := logger.Get()
	log.Info("🔄 Starting queued sessions poller")

	for {
		select {
		case <-w.stopChan:
			log.Info("🔄 Queued sessions poller stopped")
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			queued, err := w.sessionRepo.FindQueued(10)
			if err != nil {
				log.WithError(err).Warn("⚠️  Failed to fetch queued sessions")
				continue
			}

			if len(queued) > 0 {
				log.WithField("count", len(queued)).Info("📋 Found queued sessions")
			}

			for _, s := range queued {
				w.EnqueueJob(s.ID)
			}
		}
	}
}
