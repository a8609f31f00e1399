package lint

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gradlint/pkg/config"
)

// mockRule for testing.
type mockRule struct {
	id   string
	name string
}

func (m *mockRule) ID() string                              { return m.id }
func (m *mockRule) Name() string                            { return m.name }
func (m *mockRule) Description() string                     { return "mock" }
func (m *mockRule) DefaultEnabled() bool                    { return true }
func (m *mockRule) DefaultSeverity() config.Severity        { return config.SeverityWarning }
func (m *mockRule) Tags() []string                          { return []string{"mock"} }
func (m *mockRule) CanFix() bool                            { return false }
func (m *mockRule) Apply(*RuleContext) ([]Violation, error) { return nil, nil }

func TestRegistry_Get(t *testing.T) {
	reg := NewRegistry()
	reg.Register(&mockRule{id: "GL009", name: "dynamic-version"})

	got, ok := reg.Get("GL009")
	assert.True(t, ok)
	assert.Equal(t, "dynamic-version", got.Name())

	got, ok = reg.Get("dynamic-version")
	assert.True(t, ok)
	assert.Equal(t, "GL009", got.ID())

	_, ok = reg.Get("nonexistent")
	assert.False(t, ok)
}

func TestRegistry_Resolve(t *testing.T) {
	reg := NewRegistry()
	reg.Register(&mockRule{id: "GL010", name: "trailing-whitespace"})

	tests := []struct {
		key    string
		wantID string
		wantOK bool
	}{
		{"GL010", "GL010", true},
		{"trailing-whitespace", "GL010", true},
		{"nonexistent", "", false},
	}

	for _, tt := range tests {
		id, ok := reg.Resolve(tt.key)
		assert.Equal(t, tt.wantOK, ok, "key: %s", tt.key)
		assert.Equal(t, tt.wantID, id, "key: %s", tt.key)
	}
}

func TestRegistry_RegisterReplaces(t *testing.T) {
	reg := NewRegistry()
	reg.Register(&mockRule{id: "GL001", name: "old"})
	reg.Register(&mockRule{id: "GL001", name: "deprecated-configuration"})

	got, ok := reg.Get("GL001")
	assert.True(t, ok)
	assert.Equal(t, "deprecated-configuration", got.Name())
	assert.Len(t, reg.Rules(), 1)

	_, ok = reg.Get("old")
	assert.False(t, ok, "the replaced rule's name no longer resolves")
}

func TestRegistry_RulesSorted(t *testing.T) {
	reg := NewRegistry()
	reg.Register(&mockRule{id: "GL002", name: "duplicate-dependency"})
	reg.Register(&mockRule{id: "GL001", name: "deprecated-configuration"})

	rules := reg.Rules()
	assert.Len(t, rules, 2)
	assert.Equal(t, "GL001", rules[0].ID())
	assert.Equal(t, "GL002", rules[1].ID())
}

func TestRegistry_RuleInfos(t *testing.T) {
	reg := NewRegistry()
	reg.Register(&mockRule{id: "GL002", name: "duplicate-dependency"})

	infos := reg.RuleInfos()
	assert.Equal(t, []config.RuleInfo{{
		ID:          "GL002",
		Name:        "duplicate-dependency",
		Description: "mock",
		Enabled:     true,
		Severity:    config.SeverityWarning,
		Tags:        []string{"mock"},
	}}, infos)
}
