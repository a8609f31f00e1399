package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gradlint/pkg/lint"
)

func TestRegisterAll(t *testing.T) {
	registry := lint.NewRegistry()
	RegisterAll(registry)

	tests := []struct {
		id   string
		name string
	}{
		{"GL001", "deprecated-configuration"},
		{"GL002", "duplicate-dependency"},
		{"GL003", "dependency-tuple"},
		{"GL004", "required-plugin"},
		{"GL005", "repositories-before-dependencies"},
		{"GL006", "line-endings"},
		{"GL007", "empty-build-file"},
		{"GL008", "missing-settings-file"},
		{"GL009", "dynamic-version"},
		{"GL010", "trailing-whitespace"},
	}

	assert.Len(t, registry.Rules(), len(tests))

	for _, tt := range tests {
		rule, ok := registry.Get(tt.id)
		require.True(t, ok, "%s should be registered", tt.id)
		assert.Equal(t, tt.name, rule.Name())
		assert.NotEmpty(t, rule.Description(), "%s should have a description", tt.id)

		byName, ok := registry.Get(tt.name)
		require.True(t, ok, "%s should resolve by name", tt.name)
		assert.Equal(t, tt.id, byName.ID())
	}
}

func TestRegisterAll_Defaults(t *testing.T) {
	registry := lint.NewRegistry()
	RegisterAll(registry)

	optIn, _ := registry.Get("GL004")
	assert.False(t, optIn.DefaultEnabled(), "required-plugin is opt-in")

	dup, _ := registry.Get("GL002")
	assert.Equal(t, "error", string(dup.DefaultSeverity()))

	dynamic, _ := registry.Get("GL009")
	assert.False(t, dynamic.CanFix(), "dynamic-version has no fix")
}

func TestDefaultRegistry(t *testing.T) {
	_, ok := lint.DefaultRegistry.Get("GL001")
	assert.True(t, ok, "init should populate the default registry")
}
