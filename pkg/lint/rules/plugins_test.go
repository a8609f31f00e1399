package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequiredPluginRule(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		path      string
		input     string
		options   map[string]any
		wantDiags int
		wantFix   string
	}{
		{
			name:      "apply style",
			path:      "build.gradle",
			input:     "apply plugin: 'java'\n\ndependencies {\n}\n",
			wantDiags: 1,
			wantFix:   "apply plugin: 'java'\napply plugin: 'nebula.source-jar'\n\ndependencies {\n}\n",
		},
		{
			name:      "kotlin apply style",
			path:      "build.gradle.kts",
			input:     "apply(plugin = \"java\")\n",
			wantDiags: 1,
			wantFix:   "apply(plugin = \"java\")\napply(plugin = \"nebula.source-jar\")\n",
		},
		{
			name:      "plugins block",
			path:      "build.gradle",
			input:     "plugins {\n    id 'java'\n}\n",
			wantDiags: 1,
			wantFix:   "plugins {\n    id 'java'\n    id 'nebula.source-jar'\n}\n",
		},
		{
			name:      "kotlin plugins block",
			path:      "build.gradle.kts",
			input:     "plugins {\n    id(\"java\")\n}\n",
			wantDiags: 1,
			wantFix:   "plugins {\n    id(\"java\")\n    id(\"nebula.source-jar\")\n}\n",
		},
		{
			name:    "already applied",
			path:    "build.gradle",
			input:   "apply plugin: 'java'\napply plugin: 'nebula.source-jar'\n",
			wantFix: "apply plugin: 'java'\napply plugin: 'nebula.source-jar'\n",
		},
		{
			name:    "no anchor plugin",
			path:    "build.gradle",
			input:   "apply plugin: 'groovy'\n",
			wantFix: "apply plugin: 'groovy'\n",
		},
		{
			name:      "several required plugins keep their order",
			path:      "build.gradle",
			input:     "apply plugin: 'java'\n",
			options:   map[string]any{"plugins": []any{"a", "b"}},
			wantDiags: 2,
			wantFix:   "apply plugin: 'java'\napply plugin: 'a'\napply plugin: 'b'\n",
		},
		{
			name:      "custom anchor",
			path:      "build.gradle",
			input:     "apply plugin: 'application'\n",
			options:   map[string]any{"after": "application", "plugins": []any{"distribution"}},
			wantDiags: 1,
			wantFix:   "apply plugin: 'application'\napply plugin: 'distribution'\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			run := runRule(t, NewRequiredPluginRule(), tt.path, tt.input, tt.options)
			assert.Len(t, run.violations, tt.wantDiags)
			assert.Equal(t, tt.wantFix, run.fixed)
		})
	}
}

func TestRequiredPluginRule_Violation(t *testing.T) {
	t.Parallel()

	rule := NewRequiredPluginRule()
	assert.False(t, rule.DefaultEnabled())

	run := runRule(t, rule, "build.gradle", "apply plugin: 'java'\n", nil)
	require.Len(t, run.violations, 1)

	v := run.violations[0]
	assert.Equal(t, "Plugin 'nebula.source-jar' is required alongside 'java'", v.Message)
	assert.Equal(t, 1, v.StartLine)
	assert.Equal(t, 16, v.StartColumn)
	assert.Equal(t, 20, v.EndColumn)

	line, ok := run.ctx.Bookmarks.Get("plugin:java")
	assert.True(t, ok)
	assert.Equal(t, 1, line)

	line, ok = run.ctx.Bookmarks.Get("plugin:nebula.source-jar")
	assert.True(t, ok)
	assert.Zero(t, line, "absent plugins are marked with 0")
}
