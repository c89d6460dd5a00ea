package audit

import (
	"context"

	"pdpconsole/internal/platform/jobs"
)

// Async hands entries to the background job queue so page requests never wait
// on the audit store.
type Async struct {
	next Recorder
	jobs *jobs.Service
}

func NewAsync(next Recorder, jobsSvc *jobs.Service) *Async {
	return &Async{next: next, jobs: jobsSvc}
}

func (a *Async) Record(_ context.Context, entry Entry) error {
	a.jobs.Enqueue(jobs.JobAuditRecord, func(ctx context.Context) error {
		return a.next.Record(ctx, entry)
	})
	return nil
}
