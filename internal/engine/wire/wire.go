// Package wire converts between the JSON batch protocol and pipeline values.
package wire

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"strconv"
	"strings"
	"time"

	"go.trai.ch/bagel/internal/core/domain"
	"go.trai.ch/bagel/internal/core/ports"
	"go.trai.ch/zerr"
)

// RequestStartHeader carries the epoch milliseconds at which a proxy received the request.
const RequestStartHeader = "X-Request-Start"

// RequestOverheadEventName is the adhoc event recorded from RequestStartHeader.
const RequestOverheadEventName = "request overhead"

// ClientJob is one job of a client request.
type ClientJob struct {
	Name     string         `json:"name"`
	Metadata map[string]any `json:"metadata"`
	Data     map[string]any `json:"data"`
}

// ParseBatch decodes and validates a client request. The returned request
// carries a fresh stopwatch whose misuse warnings go to warn.
func ParseBatch(body []byte, warn func(string)) (*domain.BatchHandlerRequest, error) {
	var jobs map[string]*ClientJob
	if err := json.Unmarshal(body, &jobs); err != nil {
		return nil, domain.InvalidRequestError(
			zerr.Wrap(err, domain.ErrMalformedRequest.Error()), nil, domain.UnknownModuleName)
	}

	req := &domain.BatchRequest{
		Jobs:    make(map[string]*domain.JobRequest, len(jobs)),
		Context: domain.NewBatchContext(domain.NewStopwatch(warn)),
	}
	for id, job := range jobs {
		req.Jobs[id] = nil
		if job == nil || job.Name == "" {
			continue
		}
		metadata := domain.NewMetadata(job.Metadata)
		metadata.Set("jobId", id)
		req.Jobs[id] = &domain.JobRequest{
			Name:     job.Name,
			Props:    job.Data,
			Metadata: metadata,
		}
	}

	for _, id := range req.JobIDs() {
		if req.Jobs[id] == nil {
			return nil, domain.InvalidRequestError(
				errors.New("Malformed request from server. Request data: "+compact(body)), //nolint:staticcheck // protocol message

				map[string]any{"jobId": id},
				domain.UnknownModuleName,
			)
		}
	}

	return &domain.BatchHandlerRequest{
		BatchRequest:          req,
		BatchResponseMetadata: domain.NewMetadata(nil),
	}, nil
}

func compact(body []byte) string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, body); err != nil {
		return string(body)
	}
	return buf.String()
}

// RecordRequestOverhead adds the time between header and now to the
// stopwatch. Missing or unparsable headers are ignored.
func RecordRequestOverhead(sw *domain.Stopwatch, header string, now time.Time) {
	if header == "" {
		return
	}
	header = strings.TrimPrefix(strings.TrimSpace(header), "t=")
	start, err := strconv.ParseFloat(header, 64)
	if err != nil || start <= 0 {
		return
	}
	sw.Adhoc(domain.StopwatchDescriptor{Name: RequestOverheadEventName}, start, float64(now.UnixMilli()))
}

// ErrorBody is the response sent when a batch fails as a whole.
type ErrorBody struct {
	Success     bool                    `json:"success"`
	PerfProfile []domain.StopwatchEvent `json:"perfProfile"`
	Results     map[string]*JobResult   `json:"results"`
	Error       *domain.ErrorResponse   `json:"error"`
}

// ServerError logs err and builds the failure response for it.
func ServerError(err error, log ports.Logger) *ErrorBody {
	resp, ok := domain.AsErrorResponse(err)
	if !ok {
		resp = domain.BatchError(err, nil, 0)
	}

	var b strings.Builder
	b.WriteString("Caught error:\nJob Id: ")
	if id := resp.JobID(); id != "" {
		b.WriteString(id)
	} else {
		b.WriteString("BATCH")
	}
	if resp.Name != "" {
		b.WriteString("\nRoot Module: " + resp.Name)
	}
	b.WriteString("\nMessage: " + resp.Message)
	b.WriteString("\nStack trace: ")
	if len(resp.Stack) > 0 {
		b.WriteString(strings.Join(resp.Stack, " "))
	} else {
		b.WriteString("unknown stack trace")
	}
	log.Error(errors.New(b.String()))

	return &ErrorBody{
		Success:     false,
		PerfProfile: []domain.StopwatchEvent{},
		Results:     map[string]*JobResult{},
		Error:       resp,
	}
}

// JobResult is the outcome of one job.
type JobResult struct {
	Name     string                `json:"name"`
	HTML     *string               `json:"html"`
	Meta     map[string]any        `json:"meta"`
	Duration float64               `json:"duration"`
	Success  bool                  `json:"success"`
	Error    *domain.ErrorResponse `json:"error"`
	JobID    string                `json:"jobId"`
}

// Response is the body of a successful batch.
type Response struct {
	Results     map[string]*JobResult   `json:"results"`
	Error       []*domain.ErrorResponse `json:"error"`
	Success     bool                    `json:"success"`
	Metadata    map[string]any          `json:"metadata"`
	PerfProfile []domain.StopwatchEvent `json:"perfProfile"`
}

// ServerResponse waits for every render promise of resp and for the batch to
// settle, then builds the response body. It returns early with ctx's error
// if the client goes away first.
func ServerResponse(ctx context.Context, resp *domain.BatchHandlerResponse) (*Response, error) {
	jobs := resp.BatchResponse.Jobs
	for _, job := range jobs {
		if err := wait(ctx, job.RenderDone.Done()); err != nil {
			return nil, err
		}
	}
	if settled := resp.BatchResponse.Settled; settled != nil {
		if err := wait(ctx, settled); err != nil {
			return nil, err
		}
	}

	sw := resp.BatchRequest.Context.Stopwatch
	times := sw.Times()

	results := make(map[string]*JobResult, len(jobs))
	for id, job := range jobs {
		results[id] = jobResult(id, job, times)
	}

	metadata := resp.BatchResponse.Metadata.Snapshot()
	for k, v := range resp.BatchResponseMetadata.Snapshot() {
		metadata[k] = v
	}

	return &Response{
		Results:     results,
		Error:       []*domain.ErrorResponse{},
		Success:     true,
		Metadata:    metadata,
		PerfProfile: times,
	}, nil
}

func wait(ctx context.Context, done <-chan struct{}) error {
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func jobResult(id string, job *domain.JobResponse, times []domain.StopwatchEvent) *JobResult {
	name := job.Name()
	html, err := job.RenderDone.Wait()

	result := &JobResult{
		Name: name,
		Meta: map[string]any{
			"renderToStringTime":  duration(times, domain.RenderEventName(name)),
			"finalPropsFetchTime": duration(times, domain.InitialPropsEventName(name)),
		},
		Duration: duration(times, domain.JobEventName(name)),
		Success:  err == nil,
		JobID:    id,
	}
	for k, v := range job.Metadata.Snapshot() {
		result.Meta[k] = v
	}

	if err != nil {
		typed, ok := domain.AsErrorResponse(err)
		if !ok {
			typed = domain.JobError(err, nil, name)
		}
		result.Error = typed
		return result
	}
	result.HTML = &html
	return result
}

// duration sums stop minus start times of every event whose name contains key.
func duration(times []domain.StopwatchEvent, key string) float64 {
	var total float64
	for _, e := range times {
		if !strings.Contains(e.Name, key) {
			continue
		}
		if e.Type == domain.EventStart {
			total -= e.Time
		} else {
			total += e.Time
		}
	}
	return total
}

// Encode writes v as indented JSON. HTML is not escaped.
func Encode(w io.Writer, v any) error {
	return newEncoder(w, true).Encode(v)
}

// EncodeCompact writes v as single-line JSON. HTML is not escaped.
func EncodeCompact(w io.Writer, v any) error {
	return newEncoder(w, false).Encode(v)
}

// Marshal returns the JSON encoding of v without a trailing newline.
func Marshal(v any, indent bool) ([]byte, error) {
	var buf bytes.Buffer
	if err := newEncoder(&buf, indent).Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func newEncoder(w io.Writer, indent bool) *json.Encoder {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if indent {
		enc.SetIndent("", "  ")
	}
	return enc
}
