package perf

import (
	"context"
	"time"

	"git.handmade.network/hmn/marsport/src/jobs"
)

type RequestPerf struct {
	Route  string
	Path   string // the path actually matched
	Method string
	Status int
	Start  time.Time
	End    time.Time
	Blocks []PerfBlock
}

type perfContextKey struct{}

// PerfContextKey looks up the *RequestPerf of the request a context belongs
// to, if there is one.
var PerfContextKey = perfContextKey{}

func ExtractPerf(ctx context.Context) *RequestPerf {
	if ctx == nil {
		return nil
	}
	rp, _ := ctx.Value(PerfContextKey).(*RequestPerf)
	return rp
}

func MakeNewRequestPerf(route string, method string, path string) *RequestPerf {
	return &RequestPerf{
		Start:  time.Now(),
		Route:  route,
		Path:   path,
		Method: method,
	}
}

func (rp *RequestPerf) EndRequest() {
	for rp.endOpenBlock() {
	}
	rp.End = time.Now()
}

// StartBlock is safe to call on a nil RequestPerf, for code that runs both
// inside and outside of requests.
func (rp *RequestPerf) StartBlock(category, description string) *PerfBlockHandle {
	if rp == nil {
		return nil
	}
	now := time.Now()
	checkpoint := PerfBlock{
		Start:       now,
		End:         time.Time{},
		Category:    category,
		Description: description,
	}
	rp.Blocks = append(rp.Blocks, checkpoint)
	return &PerfBlockHandle{rp: rp, index: len(rp.Blocks) - 1}
}

// endOpenBlock ends the most recently started block that is still open.
func (rp *RequestPerf) endOpenBlock() bool {
	for i := len(rp.Blocks) - 1; i >= 0; i -= 1 {
		if rp.Blocks[i].End.Equal(time.Time{}) {
			rp.Blocks[i].End = time.Now()
			return true
		}
	}
	return false
}

func (rp *RequestPerf) MsFromStart(block *PerfBlock) float64 {
	return float64(block.Start.Sub(rp.Start).Nanoseconds()) / 1000 / 1000
}

func (rp *RequestPerf) DurationMs() float64 {
	return float64(rp.End.Sub(rp.Start).Nanoseconds()) / 1000 / 1000
}

// PerfBlockHandle ends one specific block, for use with defer.
type PerfBlockHandle struct {
	rp    *RequestPerf
	index int
}

func (h *PerfBlockHandle) End() {
	if h == nil {
		return
	}
	if h.rp.Blocks[h.index].End.IsZero() {
		h.rp.Blocks[h.index].End = time.Now()
	}
}

type PerfBlock struct {
	Start       time.Time
	End         time.Time
	Category    string
	Description string
}

func (pb *PerfBlock) Duration() time.Duration {
	return pb.End.Sub(pb.Start)
}

func (pb *PerfBlock) DurationMs() float64 {
	return float64(pb.Duration().Nanoseconds()) / 1000 / 1000
}

// Only the most recent requests are kept; this is a debugging aid, not a
// metrics store.
const MaxStoredRequests = 1000

type PerfStorage struct {
	AllRequests []RequestPerf
}

type PerfCollector struct {
	In          chan<- RequestPerf
	Done        <-chan struct{}
	RequestCopy chan<- (chan<- PerfStorage)
}

func RunPerfCollector() (*PerfCollector, *jobs.Job) {
	in := make(chan RequestPerf)
	requestCopy := make(chan (chan<- PerfStorage))

	var storage PerfStorage

	job := jobs.Go("perf collector", func(job *jobs.Job) {
		for {
			select {
			case perf := <-in:
				storage.AllRequests = append(storage.AllRequests, perf)
				if len(storage.AllRequests) > MaxStoredRequests {
					storage.AllRequests = storage.AllRequests[len(storage.AllRequests)-MaxStoredRequests:]
				}
			case resultChan := <-requestCopy:
				resultChan <- PerfStorage{
					AllRequests: append([]RequestPerf(nil), storage.AllRequests...),
				}
			case <-job.Canceled():
				return
			}
		}
	})

	perfCollector := PerfCollector{
		In:          in,
		Done:        job.Finished(),
		RequestCopy: requestCopy,
	}
	return &perfCollector, job
}

// SubmitRun hands a finished request to the collector. It never blocks
// after the collector has shut down.
func (perfCollector *PerfCollector) SubmitRun(run *RequestPerf) {
	select {
	case perfCollector.In <- *run:
	case <-perfCollector.Done:
	}
}

func (perfCollector *PerfCollector) GetPerfCopy(ctx context.Context) *PerfStorage {
	resultChan := make(chan PerfStorage, 1)
	select {
	case perfCollector.RequestCopy <- resultChan:
	case <-perfCollector.Done:
		return &PerfStorage{}
	case <-ctx.Done():
		return &PerfStorage{}
	}
	perfStorageCopy := <-resultChan
	return &perfStorageCopy
}
