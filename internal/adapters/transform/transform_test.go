package transform_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/bagel/internal/adapters/transform"
	"go.trai.ch/bagel/internal/core/domain"
)

func TestShebang(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		expected string
	}{
		{"no shebang", "module.exports = 1;", "module.exports = 1;"},
		{"shebang", "#!/usr/bin/env node\nmodule.exports = 1;", "\nmodule.exports = 1;"},
		{"shebang only", "#!/usr/bin/env node", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := transform.Shebang(domain.TransformInput{Path: "a.js", Source: tt.source})
			assert.Empty(t, res.Errors)
			assert.Equal(t, tt.expected, res.TransformedSource)
		})
	}
}

func TestJSON(t *testing.T) {
	res := transform.JSON(domain.TransformInput{Path: "/x/data.json", Source: "{\"a\": 1}\n"})
	assert.Empty(t, res.Errors)
	assert.Equal(t, `module.exports = {"a": 1};`, res.TransformedSource)

	res = transform.JSON(domain.TransformInput{Path: "/x/a.js", Source: "var a;"})
	assert.Equal(t, "var a;", res.TransformedSource)

	res = transform.JSON(domain.TransformInput{Path: "/x/bad.json", Source: "{"})
	assert.Equal(t, []string{"invalid JSON in /x/bad.json"}, res.Errors)
}

func TestLookup(t *testing.T) {
	_, ok := transform.Lookup("shebang")
	assert.True(t, ok)
	_, ok = transform.Lookup("json")
	assert.True(t, ok)
	_, ok = transform.Lookup("babel")
	assert.False(t, ok)
}
