package domain_test

import (
	"encoding/json"
	"errors"
	"os"
	"testing"

	"github.com/dop251/goja"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/bagel/internal/core/domain"
	"go.trai.ch/zerr"
)

func TestSerializeError_Defaults(t *testing.T) {
	resp := domain.SerializeError(errors.New(""), nil, "Hero", domain.ErrorTypeRender, 0)

	assert.Equal(t, "Hero", resp.Name)
	assert.Equal(t, domain.ErrorTypeRender, resp.Type)
	assert.Equal(t, "unknown error message", resp.Message)
	assert.Nil(t, resp.Stack)
	assert.Equal(t, os.Getpid(), resp.PID)
}

func TestSerializeError_JSException(t *testing.T) {
	rt := goja.New()
	_, err := rt.RunString(`function explode() { throw new Error("kaboom"); }
explode();`)
	require.Error(t, err)

	resp := domain.LoadModuleError(err, domain.NewMetadata(map[string]any{"jobId": "7"}), "Hero")

	assert.Equal(t, "kaboom", resp.Message)
	assert.Equal(t, "7", resp.JobID())
	require.NotEmpty(t, resp.Stack)
	assert.Contains(t, resp.Stack[0], "kaboom")
	assert.ErrorIs(t, resp, err)
}

func TestErrorResponse_MarshalJSON(t *testing.T) {
	resp := domain.SerializeError(errors.New("bad"), map[string]any{"jobId": "1"}, "Hero", domain.ErrorTypeJob, 0)
	resp.PID = 42

	data, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{"jobId":"1","name":"Hero","type":"JOB","message":"bad","stack":null,"pid":42}`, string(data))
}

type statusErr struct{}

func (statusErr) Error() string   { return "teapot" }
func (statusErr) StatusCode() int { return 418 }

func TestBatchError_Code(t *testing.T) {
	ctx := domain.NewBatchContext(domain.NewStopwatch(nil))
	ctx.Metadata.Set("ws", "conn")

	resp := domain.BatchError(errors.New("x"), ctx, 0)
	assert.Equal(t, 500, resp.Code)
	assert.Equal(t, domain.UnknownModuleName, resp.Name)
	assert.Equal(t, domain.ErrorTypeBatch, resp.Type)
	assert.Equal(t, "conn", resp.Metadata["ws"])

	assert.Equal(t, 418, domain.BatchError(statusErr{}, nil, 0).Code)
	assert.Equal(t, 400, domain.BatchError(statusErr{}, nil, 400).Code)
}

func TestAsErrorResponse(t *testing.T) {
	typed := domain.RenderError(errors.New("r"), nil, "Hero")
	wrapped := zerr.Wrap(typed, "outer")

	got, ok := domain.AsErrorResponse(wrapped)
	require.True(t, ok)
	assert.Same(t, typed, got)

	_, ok = domain.AsErrorResponse(errors.New("plain"))
	assert.False(t, ok)
	_, ok = domain.AsErrorResponse(&domain.ErrorResponse{Message: "untyped"})
	assert.False(t, ok)
}

func TestAnnotate(t *testing.T) {
	err := domain.Annotate(domain.ErrConfigNotFound, "cwd", "/srv")

	require.ErrorIs(t, err, domain.ErrConfigNotFound)
	assert.Equal(t, domain.ErrConfigNotFound.Error(), err.Error())

	var zErr *zerr.Error
	require.ErrorAs(t, err, &zErr)
	assert.Equal(t, "/srv", zErr.Metadata()["cwd"])
}
