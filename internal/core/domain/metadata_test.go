package domain_test

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/bagel/internal/core/domain"
)

func TestMetadata_NilReadsEmpty(t *testing.T) {
	var md *domain.Metadata

	v, ok := md.Get("x")
	assert.False(t, ok)
	assert.Nil(t, v)
	assert.Empty(t, md.GetString("x"))
	assert.Zero(t, md.Len())
	assert.Empty(t, md.Snapshot())
}

func TestMetadata_CopiesInput(t *testing.T) {
	in := map[string]any{"a": 1}
	md := domain.NewMetadata(in)
	in["a"] = 2

	v, _ := md.Get("a")
	assert.Equal(t, 1, v)
}

func TestMetadata_MergeAndSnapshot(t *testing.T) {
	md := domain.NewMetadata(map[string]any{"a": 1, "b": "x"})
	md.Merge(map[string]any{"b": "y", "c": true})

	snap := md.Snapshot()
	assert.Equal(t, map[string]any{"a": 1, "b": "y", "c": true}, snap)

	snap["d"] = 4
	assert.Equal(t, 3, md.Len())
}

func TestMetadata_JSON(t *testing.T) {
	md := domain.NewMetadata(map[string]any{"jobId": "1"})
	data, err := json.Marshal(md)
	require.NoError(t, err)
	assert.JSONEq(t, `{"jobId":"1"}`, string(data))

	var decoded domain.Metadata
	require.NoError(t, json.Unmarshal([]byte(`{"uuid":"u","n":2}`), &decoded))
	assert.Equal(t, "u", decoded.GetString("uuid"))
	assert.Equal(t, 2, decoded.Len())
}

func TestMetadata_ConcurrentWrites(t *testing.T) {
	md := domain.NewMetadata(nil)
	var wg sync.WaitGroup
	for i := range 50 {
		wg.Go(func() {
			md.Set(string(rune('a'+i%26)), i)
		})
	}
	wg.Wait()
	assert.Equal(t, 26, md.Len())
}
