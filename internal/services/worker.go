package services

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/google/uuid"
)

var (
	ErrQueueFull     = errors.New("job queue is full")
	ErrWorkerStopped = errors.New("worker is stopped")
)

type JobKind string

const (
	JobGenerate JobKind = "generate"
	JobPolish   JobKind = "polish"
)

type Job struct {
	WorkspaceID uuid.UUID
	Kind        JobKind
	Instruction string

	ctx   context.Context
	token uint64
}

type runningJob struct {
	token  uint64
	cancel context.CancelFunc
}

type Worker interface {
	Start(ctx context.Context)
	Stop()
	Enqueue(job Job) error
	// Cancel aborts the queued or running job of a workspace. It reports
	// whether there was one.
	Cancel(workspaceID uuid.UUID) bool
}

type worker struct {
	tailorService TailorService
	jobQueue      chan Job
	concurrency   int
	wg            sync.WaitGroup
	stopChan      chan struct{}
	stopOnce      sync.Once

	mu        sync.Mutex
	baseCtx   context.Context
	nextToken uint64
	jobs      map[uuid.UUID]runningJob
}

func NewWorker(tailorService TailorService, concurrency, queueSize int) Worker {
	if concurrency < 1 {
		concurrency = 1
	}
	if queueSize < 1 {
		queueSize = 1
	}

	return &worker{
		tailorService: tailorService,
		jobQueue:      make(chan Job, queueSize),
		concurrency:   concurrency,
		stopChan:      make(chan struct{}),
		baseCtx:       context.Background(),
		jobs:          make(map[uuid.UUID]runningJob),
	}
}

// Start implements Worker.
func (w *worker) Start(ctx context.Context) {
	log.Printf("🚀 Starting worker with %d concurrent workers\n", w.concurrency)

	w.mu.Lock()
	w.baseCtx = ctx
	w.mu.Unlock()

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processJobs(i + 1)
	}

	log.Println("✅ Worker started successfully")
}

// Stop implements Worker. Running jobs are cancelled and awaited.
func (w *worker) Stop() {
	w.stopOnce.Do(func() {
		log.Println("🛑 Stopping worker...")

		w.mu.Lock()
		close(w.stopChan)
		for _, running := range w.jobs {
			running.cancel()
		}
		w.mu.Unlock()

		w.wg.Wait()
		log.Println("✅ Worker stopped")
	})
}

// Enqueue implements Worker. It never blocks: a full queue is reported to
// the caller, which still owns the workspace's in-progress flag. The stop
// check and the send happen under w.mu, so an accepted job is always queued
// before Stop closes stopChan and gets drained.
func (w *worker) Enqueue(job Job) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	select {
	case <-w.stopChan:
		log.Printf("⚠️  Worker stopped, cannot enqueue job for %s\n", job.WorkspaceID)
		return ErrWorkerStopped
	default:
	}

	ctx, cancel := context.WithCancel(w.baseCtx)
	w.nextToken++
	job.ctx, job.token = ctx, w.nextToken

	select {
	case w.jobQueue <- job:
		w.jobs[job.WorkspaceID] = runningJob{token: job.token, cancel: cancel}
		log.Printf("📥 %s job for %s enqueued\n", job.Kind, job.WorkspaceID)
		return nil
	default:
		cancel()
		log.Printf("⚠️  Queue full, dropping %s job for %s\n", job.Kind, job.WorkspaceID)
		return ErrQueueFull
	}
}

// Cancel implements Worker.
func (w *worker) Cancel(workspaceID uuid.UUID) bool {
	w.mu.Lock()
	running, ok := w.jobs[workspaceID]
	w.mu.Unlock()

	if ok {
		log.Printf("🛑 Cancelling job for %s\n", workspaceID)
		running.cancel()
	}
	return ok
}

// release drops the job's cancel func unless a newer job for the same
// workspace has replaced it.
func (w *worker) release(job Job) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if running, ok := w.jobs[job.WorkspaceID]; ok && running.token == job.token {
		running.cancel()
		delete(w.jobs, job.WorkspaceID)
	}
}

func (w *worker) processJobs(workerID int) {
	defer w.wg.Done()
	log.Printf("🚀 Worker %d started processing jobs\n", workerID)

	for {
		select {
		case <-w.stopChan:
			w.drain()
			log.Printf("👷 Worker #%d stopped\n", workerID)
			return
		case job := <-w.jobQueue:
			w.process(workerID, job)
		}
	}
}

// drain runs what is still queued so no workspace is left flagged busy.
// Contexts are already cancelled by Stop, so each job finishes fast.
func (w *worker) drain() {
	for {
		select {
		case job := <-w.jobQueue:
			w.process(0, job)
		default:
			return
		}
	}
}

func (w *worker) process(workerID int, job Job) {
	defer w.release(job)

	ctx := job.ctx
	if ctx == nil {
		ctx = context.Background()
	}

	log.Printf("👷 Worker #%d processing %s job for %s\n", workerID, job.Kind, job.WorkspaceID)

	var err error
	switch job.Kind {
	case JobGenerate:
		err = w.tailorService.CompleteGeneration(ctx, job.WorkspaceID)
	case JobPolish:
		err = w.tailorService.CompletePolish(ctx, job.WorkspaceID, job.Instruction)
	default:
		log.Printf("⚠️  Worker #%d skipping unknown job kind %q\n", workerID, job.Kind)
		return
	}

	if err != nil {
		log.Printf("❌ Worker #%d failed %s job for %s: %v\n", workerID, job.Kind, job.WorkspaceID, err)
		return
	}
	log.Printf("✅ Worker #%d completed %s job for %s\n", workerID, job.Kind, job.WorkspaceID)
}
