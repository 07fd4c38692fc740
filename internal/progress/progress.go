// Package progress runs the Solver Driver's optional progress-reporter
// task: a single goroutine that logs roughly once a second
// while a solve is in flight, and nothing else. It never touches model
// state — only elapsed time and a caller-supplied percent-complete
// estimate — so it cannot introduce nondeterminism into the schedule
// itself, only into log timing.
package progress

import (
	"sync"
	"time"

	"github.com/careerdesk/staffsched/pkg/logger"
)

// Reporter ticks a SolverLogger.ProgressTick call once per Interval while
// running. A single goroutine suffices: there is exactly one thing to
// report, not a batch of jobs.
type Reporter struct {
	Interval time.Duration

	log     *logger.SolverLogger
	start   time.Time
	done    chan struct{}
	wg      sync.WaitGroup
	mu      sync.Mutex
	pctFunc func() float64
}

// NewReporter builds a Reporter that calls pctFunc for each tick's percent
// estimate. pctFunc must be safe to call concurrently with the solve.
func NewReporter(log *logger.SolverLogger, pctFunc func() float64) *Reporter {
	return &Reporter{
		Interval: time.Second,
		log:      log,
		pctFunc:  pctFunc,
	}
}

// Start begins ticking in a background goroutine. Safe to call at most
// once per Reporter; Stop must be called to join it.
func (r *Reporter) Start() {
	r.mu.Lock()
	r.start = time.Now()
	r.done = make(chan struct{})
	r.mu.Unlock()

	r.wg.Add(1)
	go r.run()
}

func (r *Reporter) run() {
	defer r.wg.Done()
	ticker := time.NewTicker(r.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-r.done:
			return
		case <-ticker.C:
			r.tick()
		}
	}
}

func (r *Reporter) tick() {
	r.mu.Lock()
	elapsed := time.Since(r.start)
	r.mu.Unlock()
	pct := 0.0
	if r.pctFunc != nil {
		pct = r.pctFunc()
	}
	r.log.ProgressTick(elapsed, pct)
}

// Stop signals the background goroutine to exit and blocks until it has,
// so a solve never returns with the reporter still running.
func (r *Reporter) Stop() {
	r.mu.Lock()
	done := r.done
	r.mu.Unlock()
	if done == nil {
		return
	}
	close(done)
	r.wg.Wait()
}
