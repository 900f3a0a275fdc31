package jobs

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"mediaforge/internal/convert"
	"mediaforge/internal/models"
	"mediaforge/internal/store"
)

// Validation errors surfaced synchronously with the submission response.
// No job record exists when one of these is returned.
var (
	ErrUnknownKind  = errors.New("unsupported conversion kind")
	ErrMissingInput = errors.New("a staged file or source url is required")
	ErrInvalidURL   = errors.New("source url is not well-formed")
)

// Progress checkpoints. Staging the input is the first half of the work; the
// strategy owns the rest and completion forces 100.
const (
	progressStaged   = 50
	progressComplete = 100
)

// defaultBusyWait bounds how long a worker waits for a free slot before the
// job fails as busy.
const defaultBusyWait = 10 * time.Second

// Dispatcher validates submissions, creates job records, and runs the
// matching strategy out-of-band. It is the only writer of a job record after
// the initial store.
type Dispatcher struct {
	registry *Registry
	store    *store.Store
	table    map[models.JobKind]convert.Strategy
	sem      chan struct{}
	busyWait time.Duration
	wg       sync.WaitGroup
}

// NewDispatcher wires the dispatcher. table must contain every supported
// kind; maxConcurrent bounds simultaneous external invocations.
func NewDispatcher(reg *Registry, st *store.Store, table map[models.JobKind]convert.Strategy, maxConcurrent int) *Dispatcher {
	return &Dispatcher{
		registry: reg,
		store:    st,
		table:    table,
		sem:      make(chan struct{}, maxConcurrent),
		busyWait: defaultBusyWait,
	}
}

// Submit validates the request, registers a processing job, and launches the
// strategy asynchronously. The returned job is the initial record; the caller
// polls for settlement. Invalid input never produces a job.
func (d *Dispatcher) Submit(kind models.JobKind, inputPath, originalName, sourceURL, quality string) (models.Job, error) {
	strategy, ok := d.table[kind]
	if !ok {
		return models.Job{}, ErrUnknownKind
	}
	if inputPath == "" && sourceURL == "" {
		return models.Job{}, ErrMissingInput
	}
	if sourceURL != "" {
		u, err := url.ParseRequestURI(sourceURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return models.Job{}, ErrInvalidURL
		}
	}

	job := &models.Job{
		ID:           uuid.NewString(),
		Kind:         kind,
		Status:       models.StatusProcessing,
		Progress:     progressStaged,
		OriginalName: originalName,
		InputPath:    inputPath,
		SourceURL:    sourceURL,
		CreatedAt:    time.Now(),
	}
	d.registry.Create(job)

	d.wg.Add(1)
	go d.run(job.ID, strategy, convert.Request{
		InputPath: inputPath,
		SourceURL: sourceURL,
		Quality:   quality,
	})

	return *job, nil
}

// run executes one strategy and performs the single settlement write for the
// job id. The staged input is removed right after settlement; it is not
// subject to the reaper's retention window.
func (d *Dispatcher) run(id string, strategy convert.Strategy, req convert.Request) {
	defer d.wg.Done()

	select {
	case d.sem <- struct{}{}:
		defer func() { <-d.sem }()
	case <-time.After(d.busyWait):
		d.registry.Update(id, func(j *models.Job) {
			j.Status = models.StatusError
			j.Error = "Server busy, try again later."
		})
		d.discardInput(req.InputPath)
		return
	}

	result, err := strategy(context.Background(), req)

	if err != nil {
		log.Warn().Str("job", id).Err(err).Msg("strategy failed")
		d.registry.Update(id, func(j *models.Job) {
			j.Status = models.StatusError
			j.Error = err.Error()
		})
	} else {
		d.registry.Update(id, func(j *models.Job) {
			j.Status = models.StatusCompleted
			j.Progress = progressComplete
			j.OutputPath = result.OutputPath
			j.OutputName = result.OutputName
			j.AudioPath = result.AudioPath
			j.AudioName = result.AudioName
		})
	}

	d.discardInput(req.InputPath)
}

func (d *Dispatcher) discardInput(path string) {
	if path != "" {
		d.store.Delete(path)
	}
}

// Wait blocks until in-flight jobs settle or the timeout elapses, so the
// shutdown path never tears the process down mid-write.
func (d *Dispatcher) Wait(timeout time.Duration) bool {
	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return true
	case <-time.After(timeout):
		return false
	}
}
