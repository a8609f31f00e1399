package rules

import "github.com/yaklabco/gradlint/pkg/lint"

// RegisterAll registers all built-in rules with the given registry.
func RegisterAll(registry *lint.Registry) {
	// Dependency rules
	registry.Register(NewDeprecatedConfigurationRule()) // GL001
	registry.Register(NewDuplicateDependencyRule())     // GL002
	registry.Register(NewDependencyTupleRule())         // GL003
	registry.Register(NewDynamicVersionRule())          // GL009

	// Plugin rules
	registry.Register(NewRequiredPluginRule()) // GL004

	// Layout rules
	registry.Register(NewRepositoriesBeforeDependenciesRule()) // GL005
	registry.Register(NewEmptyBuildFileRule())                 // GL007
	registry.Register(NewMissingSettingsFileRule())            // GL008

	// Whitespace rules
	registry.Register(NewLineEndingsRule())        // GL006
	registry.Register(NewTrailingWhitespaceRule()) // GL010
}

// init registers all built-in rules with the default registry.
//
//nolint:gochecknoinits // Init is intentional for automatic rule registration
func init() {
	RegisterAll(lint.DefaultRegistry)
}
