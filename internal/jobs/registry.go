package jobs

import (
	"sync"

	"mediaforge/internal/models"
)

// Registry is the in-memory job map. Records live for the process lifetime;
// there is no eviction and no persistence. Updates swap a fresh snapshot in,
// so readers always see a consistent record while the single completion
// writer for an id settles it.
type Registry struct {
	jobs sync.Map
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Create stores the initial record for a job id.
func (r *Registry) Create(job *models.Job) {
	r.jobs.Store(job.ID, job)
}

// Get returns a snapshot of the job, or false if the id is unknown.
func (r *Registry) Get(id string) (models.Job, bool) {
	val, ok := r.jobs.Load(id)
	if !ok {
		return models.Job{}, false
	}
	return *val.(*models.Job), true
}

// Update applies mutate to a copy of the stored record and swaps it in.
func (r *Registry) Update(id string, mutate func(*models.Job)) {
	val, ok := r.jobs.Load(id)
	if !ok {
		return
	}
	next := *val.(*models.Job)
	mutate(&next)
	r.jobs.Store(id, &next)
}

// Len counts stored records.
func (r *Registry) Len() int {
	n := 0
	r.jobs.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}
