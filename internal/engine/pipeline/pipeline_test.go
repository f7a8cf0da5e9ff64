package pipeline_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/bagel/internal/core/domain"
	"go.trai.ch/bagel/internal/core/ports"
	"go.trai.ch/bagel/internal/core/ports/mocks"
	"go.trai.ch/bagel/internal/engine/hooks"
	"go.trai.ch/bagel/internal/engine/pipeline"
	"go.trai.ch/bagel/internal/engine/wire"
	"go.uber.org/mock/gomock"
)

type pipelineTestMocks struct {
	loader   *mocks.MockModuleLoader
	renderer *mocks.MockRenderer
	log      *mocks.MockLogger
}

func setupPipelineTest(t *testing.T, plugins []ports.Plugin, opts ...pipeline.Option) (*pipeline.Pipeline, pipelineTestMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := pipelineTestMocks{
		loader:   mocks.NewMockModuleLoader(ctrl),
		renderer: mocks.NewMockRenderer(ctrl),
		log:      mocks.NewMockLogger(ctrl),
	}

	mockSpan := mocks.NewMockSpan(ctrl)
	mockSpan.EXPECT().End().AnyTimes()
	mockSpan.EXPECT().RecordError(gomock.Any()).AnyTimes()
	mockSpan.EXPECT().SetAttribute(gomock.Any(), gomock.Any()).AnyTimes()

	tracer := mocks.NewMockTracer(ctrl)
	tracer.EXPECT().Start(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ string, _ ...ports.SpanOption) (context.Context, ports.Span) {
			return ctx, mockSpan
		},
	).AnyTimes()

	p := pipeline.New(m.loader, m.renderer, hooks.New(plugins), tracer, m.log, opts...)
	return p, m
}

// newBatch builds a batch of jobs keyed by id, each naming a module.
func newBatch(jobs map[string]string) *domain.BatchHandlerRequest {
	req := &domain.BatchRequest{
		Jobs:    make(map[string]*domain.JobRequest, len(jobs)),
		Context: domain.NewBatchContext(domain.NewStopwatch(nil)),
	}
	for id, name := range jobs {
		req.Jobs[id] = &domain.JobRequest{
			Name:     name,
			Props:    map[string]any{"id": id},
			Metadata: domain.NewMetadata(map[string]any{"jobId": id}),
		}
	}
	return &domain.BatchHandlerRequest{BatchRequest: req, BatchResponseMetadata: domain.NewMetadata(nil)}
}

func expectLoad(m pipelineTestMocks) {
	m.loader.EXPECT().Load(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, name, _ string, _ any) (*domain.Module, error) {
			return &domain.Module{ID: name}, nil
		},
	).AnyTimes()
}

func expectRender(m pipelineTestMocks) {
	m.renderer.EXPECT().Render(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, in *domain.RenderInput) (domain.RenderOutput, error) {
			return domain.RenderOutput{HTML: "<p>" + in.Component.ID + "</p>"}, nil
		},
	).AnyTimes()
}

// hookRecorder implements every lifecycle hook and records the calls.
type hookRecorder struct {
	mu    sync.Mutex
	calls []string
	fail  map[string]error
}

func (r *hookRecorder) record(hook, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, hook+" "+name)
	return r.fail[hook+" "+name]
}

func (r *hookRecorder) Name() string { return "recorder" }

func (r *hookRecorder) BeforeBatch(context.Context, *domain.BatchHandlerRequest) error {
	return r.record("beforeBatch", "")
}

func (r *hookRecorder) AfterBatch(context.Context, *domain.BatchHandlerResponse) error {
	return r.record("afterBatch", "")
}

func (r *hookRecorder) BeforeJob(_ context.Context, req *domain.JobHandlerRequest) error {
	return r.record("beforeJob", req.JobRequest.Name)
}

func (r *hookRecorder) AfterJob(_ context.Context, resp *domain.JobHandlerResponse) error {
	return r.record("afterJob", resp.JobRequest.Name)
}

func (r *hookRecorder) BeforeLoadModule(_ context.Context, req *domain.JobHandlerRequest) error {
	return r.record("beforeLoadModule", req.JobRequest.Name)
}

func (r *hookRecorder) AfterLoadModule(_ context.Context, req *domain.RenderHandlerRequest) error {
	return r.record("afterLoadModule", req.JobRequest.Name)
}

func (r *hookRecorder) BeforeRender(_ context.Context, req *domain.RenderHandlerRequest) error {
	return r.record("beforeRender", req.JobRequest.Name)
}

func (r *hookRecorder) AfterRender(_ context.Context, resp *domain.JobHandlerResponse) error {
	return r.record("afterRender", resp.JobRequest.Name)
}

func (r *hookRecorder) AfterRequestComplete(context.Context, *domain.BatchHandlerRequest) error {
	return r.record("afterRequestComplete", "")
}

func TestHandleBatch_Success(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		p, m := setupPipelineTest(t, nil)
		expectLoad(m)
		expectRender(m)
		req := newBatch(map[string]string{"1": "Header", "2": "Footer"})

		resp, err := p.HandleBatch(context.Background(), req)
		require.NoError(t, err)
		require.Len(t, resp.BatchResponse.Jobs, 2)
		assert.Same(t, req.BatchRequest, resp.BatchRequest)

		html, err := resp.BatchResponse.Jobs["1"].RenderDone.Wait()
		require.NoError(t, err)
		assert.Equal(t, "<p>Header</p>", html)
		assert.Equal(t, "Footer", resp.BatchResponse.Jobs["2"].Name())
		assert.Nil(t, resp.BatchResponse.Jobs["2"].HTMLStream)

		synctest.Wait()
		sw := req.BatchRequest.Context.Stopwatch
		assert.Len(t, sw.Events("", domain.BatchEventName()), 2)
		for id, name := range map[string]string{"1": "Header", "2": "Footer"} {
			assert.Len(t, sw.Events(id, domain.JobEventName(name)), 2)
			assert.Len(t, sw.Events(id, domain.LoadEventName(name)), 2)
			assert.Len(t, sw.Events(id, domain.RenderEventName(name)), 2)
		}
	})
}

func TestHandleBatch_LoadsFromRootDir(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		testLoadsFromRootDir(t)
		synctest.Wait()
	})
}

func testLoadsFromRootDir(t *testing.T) {
	p, m := setupPipelineTest(t, nil, pipeline.WithRootDir("/srv/components"))
	req := newBatch(map[string]string{"1": "./Header"})
	m.loader.EXPECT().Load(gomock.Any(), "./Header", "/srv/components", gomock.Any()).DoAndReturn(
		func(_ context.Context, name, _ string, reqCtx any) (*domain.Module, error) {
			jobReq, ok := reqCtx.(*domain.JobHandlerRequest)
			require.True(t, ok)
			assert.Same(t, req.BatchRequest.Jobs["1"], jobReq.JobRequest)
			return &domain.Module{ID: name}, nil
		},
	)
	expectRender(m)

	resp, err := p.HandleBatch(context.Background(), req)
	require.NoError(t, err)

	html, err := resp.BatchResponse.Jobs["1"].RenderDone.Wait()
	require.NoError(t, err)
	assert.Equal(t, "<p>./Header</p>", html)
}

func TestHandleBatch_HookOrder(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		rec := &hookRecorder{}
		p, m := setupPipelineTest(t, []ports.Plugin{rec})
		expectLoad(m)
		expectRender(m)
		req := newBatch(map[string]string{"1": "Hero"})

		resp, err := p.HandleBatch(context.Background(), req)
		require.NoError(t, err)
		_, err = resp.BatchResponse.Jobs["1"].RenderDone.Wait()
		require.NoError(t, err)
		require.NoError(t, p.AfterRequestComplete(context.Background(), req))

		assert.Equal(t, []string{
			"beforeBatch ",
			"beforeJob Hero",
			"beforeLoadModule Hero",
			"afterLoadModule Hero",
			"beforeRender Hero",
			"afterRender Hero",
			"afterJob Hero",
			"afterBatch ",
			"afterRequestComplete ",
		}, rec.calls)
	})
}

func TestHandleBatch_BeforeBatchFails(t *testing.T) {
	rec := &hookRecorder{fail: map[string]error{"beforeBatch ": errors.New("not today")}}
	p, _ := setupPipelineTest(t, []ports.Plugin{rec})
	req := newBatch(map[string]string{"1": "Hero"})
	req.BatchRequest.Context.Metadata.Set("traceId", "abc")

	_, err := p.HandleBatch(context.Background(), req)

	resp, ok := domain.AsErrorResponse(err)
	require.True(t, ok)
	assert.Equal(t, domain.ErrorTypeBatch, resp.Type)
	assert.Equal(t, "not today", resp.Message)
	assert.Equal(t, 500, resp.Code)
	assert.Equal(t, domain.UnknownModuleName, resp.Name)
	assert.Equal(t, "abc", resp.Metadata["traceId"])
	assert.Equal(t, []string{"beforeBatch "}, rec.calls)
}

func TestHandleBatch_JobFailureIsolated(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		rec := &hookRecorder{fail: map[string]error{"beforeJob Broken": errors.New("job hook failed")}}
		p, m := setupPipelineTest(t, []ports.Plugin{rec})
		expectLoad(m)
		expectRender(m)
		m.log.EXPECT().Error(gomock.Any()).AnyTimes()
		req := newBatch(map[string]string{"1": "Fine", "2": "Broken"})

		resp, err := p.HandleBatch(context.Background(), req)
		require.NoError(t, err)

		html, err := resp.BatchResponse.Jobs["1"].RenderDone.Wait()
		require.NoError(t, err)
		assert.Equal(t, "<p>Fine</p>", html)

		_, err = resp.BatchResponse.Jobs["2"].RenderDone.Wait()
		jobErr, ok := domain.AsErrorResponse(err)
		require.True(t, ok)
		assert.Equal(t, domain.ErrorTypeJob, jobErr.Type)
		assert.Equal(t, "Broken", jobErr.Name)
		assert.Equal(t, "2", jobErr.JobID())
		synctest.Wait()
	})
}

func TestHandleBatch_LoadFailure(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		p, m := setupPipelineTest(t, nil)
		m.loader.EXPECT().Load(gomock.Any(), "Missing", gomock.Any(), gomock.Any()).
			Return(nil, errors.New("Could not resolve module: Missing"))
		m.log.EXPECT().Error(gomock.Any())
		req := newBatch(map[string]string{"1": "Missing"})

		resp, err := p.HandleBatch(context.Background(), req)
		require.NoError(t, err)

		job := resp.BatchResponse.Jobs["1"]
		assert.Equal(t, "Missing", job.Name())
		_, err = job.RenderDone.Wait()
		loadErr, ok := domain.AsErrorResponse(err)
		require.True(t, ok)
		assert.Equal(t, domain.ErrorTypeLoadingModule, loadErr.Type)
		assert.Equal(t, "Could not resolve module: Missing", loadErr.Message)

		synctest.Wait()
		sw := req.BatchRequest.Context.Stopwatch
		assert.Len(t, sw.Events("1", domain.JobEventName("Missing")), 2)
		assert.Len(t, sw.Events("", domain.BatchEventName()), 2)
		assert.Empty(t, sw.Events("1", domain.RenderEventName("Missing")))
	})
}

func TestHandleBatch_RenderFailure(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		p, m := setupPipelineTest(t, nil)
		expectLoad(m)
		m.renderer.EXPECT().Render(gomock.Any(), gomock.Any()).Return(domain.RenderOutput{}, errors.New("render exploded"))
		m.log.EXPECT().Error(gomock.Any())
		req := newBatch(map[string]string{"1": "Hero"})

		resp, err := p.HandleBatch(context.Background(), req)
		require.NoError(t, err)

		_, err = resp.BatchResponse.Jobs["1"].RenderDone.Wait()
		renderErr, ok := domain.AsErrorResponse(err)
		require.True(t, ok)
		assert.Equal(t, domain.ErrorTypeRender, renderErr.Type)
		assert.Equal(t, "render exploded", renderErr.Message)
		synctest.Wait()
	})
}

func TestHandleBatch_StreamRender(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		p, m := setupPipelineTest(t, nil)
		expectLoad(m)
		pr, pw := io.Pipe()
		m.renderer.EXPECT().Render(gomock.Any(), gomock.Any()).Return(domain.RenderOutput{Stream: pr}, nil)
		req := newBatch(map[string]string{"1": "Hero"})

		resp, err := p.HandleBatch(context.Background(), req)
		require.NoError(t, err)
		job := resp.BatchResponse.Jobs["1"]
		require.NotNil(t, job.HTMLStream)

		go func() {
			_, _ = io.WriteString(pw, "<ul>")
			_, _ = io.WriteString(pw, "</ul>")
			_ = pw.Close()
		}()

		streamed, err := io.ReadAll(job.HTMLStream.NewReader())
		require.NoError(t, err)
		assert.Equal(t, "<ul></ul>", string(streamed))

		html, err := job.RenderDone.Wait()
		require.NoError(t, err)
		assert.Equal(t, "<ul></ul>", html)
	})
}

func TestHandleBatch_StreamError(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		p, m := setupPipelineTest(t, nil)
		expectLoad(m)
		m.log.EXPECT().Error(gomock.Any())
		pr, pw := io.Pipe()
		m.renderer.EXPECT().Render(gomock.Any(), gomock.Any()).Return(domain.RenderOutput{Stream: pr}, nil)

		resp, err := p.HandleBatch(context.Background(), newBatch(map[string]string{"1": "Hero"}))
		require.NoError(t, err)
		_ = pw.CloseWithError(errors.New("stream broke"))

		_, err = resp.BatchResponse.Jobs["1"].RenderDone.Wait()
		renderErr, ok := domain.AsErrorResponse(err)
		require.True(t, ok)
		assert.Equal(t, domain.ErrorTypeRender, renderErr.Type)
		assert.Equal(t, "stream broke", renderErr.Message)
		synctest.Wait()
	})
}

// metadataPlugin writes job response metadata before rendering.
type metadataPlugin struct{}

func (metadataPlugin) Name() string { return "metadata" }

func (metadataPlugin) BeforeRender(_ context.Context, req *domain.RenderHandlerRequest) error {
	req.JobResponseMetadata.Set("preload", []string{"a.css"})
	req.JobRequest.Props = map[string]any{"replaced": true}
	return nil
}

func TestHandleBatch_ResponseMetadata(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		testResponseMetadata(t)
		synctest.Wait()
	})
}

func testResponseMetadata(t *testing.T) {
	p, m := setupPipelineTest(t, []ports.Plugin{metadataPlugin{}})
	expectLoad(m)
	m.renderer.EXPECT().Render(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, in *domain.RenderInput) (domain.RenderOutput, error) {
			assert.Equal(t, map[string]any{"replaced": true}, in.Props)
			return domain.RenderOutput{HTML: "ok"}, nil
		},
	)

	resp, err := p.HandleBatch(context.Background(), newBatch(map[string]string{"1": "Hero"}))
	require.NoError(t, err)

	md := resp.BatchResponse.Jobs["1"].Metadata.Snapshot()
	assert.Equal(t, "Hero", md["name"])
	assert.Equal(t, []string{"a.css"}, md["preload"])
}

func TestHandleBatch_ConcurrencyLimit(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		p, m := setupPipelineTest(t, nil, pipeline.WithConcurrency(2))
		var inFlight, peak atomic.Int32
		m.loader.EXPECT().Load(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, name, _ string, _ any) (*domain.Module, error) {
				n := inFlight.Add(1)
				for {
					cur := peak.Load()
					if n <= cur || peak.CompareAndSwap(cur, n) {
						break
					}
				}
				time.Sleep(time.Millisecond)
				inFlight.Add(-1)
				return &domain.Module{ID: name}, nil
			},
		).Times(5)
		expectRender(m)

		jobs := make(map[string]string)
		for _, id := range strings.Split("a b c d e", " ") {
			jobs[id] = "Job" + id
		}

		resp, err := p.HandleBatch(context.Background(), newBatch(jobs))
		require.NoError(t, err)
		assert.Len(t, resp.BatchResponse.Jobs, 5)
		assert.LessOrEqual(t, peak.Load(), int32(2))
	})
}

// TestHandleBatch_ServerResponseTimings builds the response as soon as the
// promises settle and checks every timing was already recorded.
func TestHandleBatch_ServerResponseTimings(t *testing.T) {
	p, m := setupPipelineTest(t, nil)
	m.loader.EXPECT().Load(gomock.Any(), "Missing", gomock.Any(), gomock.Any()).
		Return(nil, errors.New("Could not resolve module: Missing")).AnyTimes()
	expectLoad(m)
	expectRender(m)
	m.log.EXPECT().Error(gomock.Any()).AnyTimes()

	for range 200 {
		req := newBatch(map[string]string{"1": "Header", "2": "Footer", "3": "Missing"})
		resp, err := p.HandleBatch(context.Background(), req)
		require.NoError(t, err)

		out, err := wire.ServerResponse(context.Background(), resp)
		require.NoError(t, err)

		for id, result := range out.Results {
			assert.GreaterOrEqual(t, result.Duration, 0.0, "job %s duration", id)
			assert.GreaterOrEqual(t, result.Meta["renderToStringTime"], 0.0, "job %s render time", id)
		}

		stops := make(map[string]bool)
		for _, e := range out.PerfProfile {
			if e.Type == domain.EventStop {
				stops[e.Name] = true
			}
		}
		assert.True(t, stops[domain.BatchEventName()], "batch stop")
		for _, name := range []string{"Header", "Footer", "Missing"} {
			assert.True(t, stops[domain.JobEventName(name)], "job stop for %s", name)
		}
		for _, name := range []string{"Header", "Footer"} {
			assert.True(t, stops[domain.RenderEventName(name)], "render stop for %s", name)
		}
		if t.Failed() {
			return
		}
	}
}
