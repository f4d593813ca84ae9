package jobs

import (
	"context"
	"time"

	"git.handmade.network/hmn/marsport/src/logging"
	"github.com/rs/zerolog"
)

/*
 * This package provides utilities for running and waiting on background tasks
 * in the server: the upstream monitor, the live shipment feed, and the perf
 * collector. It standardizes a few aspects of channels and contexts so that
 * background work can be canceled and shut down gracefully.
 */

// A Job is used to handle and track the completion of an asynchronous or
// background task.
type Job struct {
	Name   string
	Ctx    context.Context
	Logger zerolog.Logger
	cancel func()
	done   chan struct{}
}

func New(name string) *Job {
	logger := logging.With().Str("job", name).Logger()
	ctx, cancel := context.WithCancel(context.Background())
	ctx = logging.AttachLoggerToContext(&logger, ctx)
	return &Job{
		Name:   name,
		Ctx:    ctx,
		Logger: logger,
		cancel: cancel,
		done:   make(chan struct{}),
	}
}

// Go starts fn on its own goroutine as a new Job. The job is finished when fn
// returns, and panics are logged instead of taking down the server.
func Go(name string, fn func(job *Job)) *Job {
	job := New(name)
	go func() {
		defer job.Finish()
		defer logging.LogPanics(&job.Logger)
		fn(job)
	}()
	return job
}

// Noop returns a job that is already finished. Useful when a feature is
// disabled by config but the caller still expects a Job.
func Noop() *Job {
	return New("noop").Finish()
}

// Sends a cancel signal to the Job, indicating that it should finish its work
// and shut down. Internally, this cancels the Job's context.
func (j *Job) Cancel() {
	j.cancel()
}

// Returns a channel that can be waited on to receive a Cancel signal.
func (j *Job) Canceled() <-chan struct{} {
	return j.Ctx.Done()
}

// Marks the Job as finished, indicating that its work is completely done.
func (j *Job) Finish() *Job {
	close(j.done)
	return j
}

// Returns a channel that is closed when the Job is finished.
func (j *Job) Finished() <-chan struct{} {
	return j.done
}

// A utility for running and canceling multiple jobs at once. Because this type
// is simply a slice of Jobs, you can construct it using normal slice syntax.
type Jobs []*Job

// Cancels all tracked jobs, giving them a chance to finish gracefully. Will
// return when all jobs finish or when the timeout expires, whichever comes
// first. Returns a list of all jobs that did not finish on time.
func (jobs Jobs) CancelAndWait(timeout time.Duration) []string {
	allDoneChan := make(chan struct{})
	for _, job := range jobs {
		job.Cancel()
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	go func() {
		for _, job := range jobs {
			<-job.Finished()
		}
		close(allDoneChan)
	}()

	select {
	case <-timer.C:
		return jobs.ListUnfinished()
	case <-allDoneChan:
		return nil
	}
}

func (jobs Jobs) ListUnfinished() []string {
	unfinished := []string{}
	for _, job := range jobs {
		select {
		case <-job.Finished():
			continue
		default:
			unfinished = append(unfinished, job.Name)
		}
	}
	return unfinished
}
