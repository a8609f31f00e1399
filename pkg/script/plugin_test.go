package script_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gradlint/pkg/script"
)

func TestParsePlugin(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code  string
		id    string
		style script.PluginStyle
		span  script.Span
	}{
		{code: "apply plugin: 'java'", id: "java", style: script.PluginStyleApply, span: script.Span{Start: 16, End: 20}},
		{code: `apply(plugin = "nebula.source-jar")`, id: "nebula.source-jar", style: script.PluginStyleApply, span: script.Span{Start: 17, End: 34}},
		{code: "    id 'java'", id: "java", style: script.PluginStyleBlock, span: script.Span{Start: 9, End: 13}},
		{code: `    id("org.jetbrains.kotlin.jvm") version "1.9.0"`, id: "org.jetbrains.kotlin.jvm", style: script.PluginStyleBlock, span: script.Span{Start: 9, End: 33}},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			t.Parallel()

			got, ok := script.ParsePlugin(tt.code)
			require.True(t, ok)
			assert.Equal(t, tt.id, got.ID)
			assert.Equal(t, tt.style, got.Style)
			assert.Equal(t, tt.span, got.IDSpan)
		})
	}
}

func TestParsePluginRejects(t *testing.T) {
	t.Parallel()

	for _, code := range []string{
		"",
		"apply from: 'common.gradle'",
		"identity 'x'",
		"kotlin(\"jvm\")",
	} {
		_, ok := script.ParsePlugin(code)
		assert.False(t, ok, "ParsePlugin(%q)", code)
	}
}
