package domain

import (
	"io"
	"slices"
)

// JobRequest is one named unit of work inside a batch.
type JobRequest struct {
	Name     string
	Props    map[string]any
	Metadata *Metadata
}

// JobID returns the id the job was submitted under.
func (j *JobRequest) JobID() string {
	return j.Metadata.GetString("jobId")
}

// BatchContext is the mutable state shared by every job of a batch.
type BatchContext struct {
	Stopwatch *Stopwatch
	Metadata  *Metadata
}

// NewBatchContext creates a BatchContext around the given stopwatch.
func NewBatchContext(sw *Stopwatch) *BatchContext {
	return &BatchContext{
		Stopwatch: sw,
		Metadata:  NewMetadata(nil),
	}
}

// BatchRequest is a set of jobs submitted together.
type BatchRequest struct {
	Jobs    map[string]*JobRequest
	Context *BatchContext
}

// JobIDs returns the job ids in launch order.
func (b *BatchRequest) JobIDs() []string {
	ids := make([]string, 0, len(b.Jobs))
	for id := range b.Jobs {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// BatchHandlerRequest is the input of the batch stage.
type BatchHandlerRequest struct {
	BatchRequest          *BatchRequest
	BatchResponseMetadata *Metadata
}

// JobHandlerRequest is the input of the job and load stages.
type JobHandlerRequest struct {
	JobRequest            *JobRequest
	ParentBatchRequest    *BatchRequest
	JobResponseMetadata   *Metadata
	BatchResponseMetadata *Metadata
}

// Stopwatch returns the stopwatch of the parent batch.
func (r *JobHandlerRequest) Stopwatch() *Stopwatch {
	return r.ParentBatchRequest.Context.Stopwatch
}

// RenderHandlerRequest is the input of the render stage: the job request plus
// the module that was loaded for it.
type RenderHandlerRequest struct {
	*JobHandlerRequest
	Module *Module
}

// JobResponse is the per-job result. RenderDone settles once rendering finished.
// HTMLStream is set only when the renderer streams.
type JobResponse struct {
	Metadata   *Metadata
	RenderDone *RenderPromise
	HTMLStream *HTMLStream
}

// Name returns the module name recorded in the response metadata.
func (r *JobResponse) Name() string {
	return r.Metadata.GetString("name")
}

// JobHandlerResponse is the output of the job and render stages.
type JobHandlerResponse struct {
	JobRequest            *JobRequest
	JobResponse           *JobResponse
	ParentBatchRequest    *BatchRequest
	BatchResponseMetadata *Metadata
}

// BatchResponse holds the job responses keyed by job id. Settled, when set,
// is closed once every job settled and the batch timing is recorded.
type BatchResponse struct {
	Jobs     map[string]*JobResponse
	Metadata *Metadata
	Settled  <-chan struct{}
}

// BatchHandlerResponse is the output of the batch stage.
type BatchHandlerResponse struct {
	BatchRequest          *BatchRequest
	BatchResponse         *BatchResponse
	BatchResponseMetadata *Metadata
}

// RenderInput is everything a renderer is given for one job.
type RenderInput struct {
	Component             *Module
	Props                 map[string]any
	JobRequest            *JobRequest
	ParentBatchRequest    *BatchRequest
	JobResponseMetadata   *Metadata
	BatchResponseMetadata *Metadata
}

// RenderOutput is either a complete HTML string or a stream of HTML.
type RenderOutput struct {
	HTML   string
	Stream io.Reader
}

// TransformInput is the source handed to a transformer.
type TransformInput struct {
	Path   string
	Source string
}

// TransformResult is the outcome of one transformer.
// Any non-empty Errors aborts loading of the module.
type TransformResult struct {
	Errors            []string
	TransformedSource string
}
