package script_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gradlint/pkg/script"
)

func TestParseDependency(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		code string
		want script.Dependency
	}{
		{
			name: "groovy string notation",
			code: "    compile 'a:b:1'",
			want: script.Dependency{
				Configuration:     "compile",
				Group:             "a",
				Name:              "b",
				Version:           "1",
				Notation:          script.NotationString,
				ConfigurationSpan: script.Span{Start: 5, End: 12},
				ArgumentSpan:      script.Span{Start: 13, End: 20},
				VersionSpan:       script.Span{Start: 18, End: 19},
			},
		},
		{
			name: "kotlin call notation",
			code: `implementation("org.slf4j:slf4j-api:2.0.9")`,
			want: script.Dependency{
				Configuration:     "implementation",
				Group:             "org.slf4j",
				Name:              "slf4j-api",
				Version:           "2.0.9",
				Notation:          script.NotationString,
				ConfigurationSpan: script.Span{Start: 1, End: 15},
				ArgumentSpan:      script.Span{Start: 16, End: 43},
				VersionSpan:       script.Span{Start: 37, End: 42},
			},
		},
		{
			name: "classifier",
			code: "runtime 'a:b:1:jdk8'",
			want: script.Dependency{
				Configuration:     "runtime",
				Group:             "a",
				Name:              "b",
				Version:           "1",
				Classifier:        "jdk8",
				Notation:          script.NotationString,
				ConfigurationSpan: script.Span{Start: 1, End: 8},
				ArgumentSpan:      script.Span{Start: 9, End: 21},
				VersionSpan:       script.Span{Start: 14, End: 15},
			},
		},
		{
			name: "no version",
			code: "api 'a:b'",
			want: script.Dependency{
				Configuration:     "api",
				Group:             "a",
				Name:              "b",
				Notation:          script.NotationString,
				ConfigurationSpan: script.Span{Start: 1, End: 4},
				ArgumentSpan:      script.Span{Start: 5, End: 10},
			},
		},
		{
			name: "map notation",
			code: "testCompile group: 'junit', name: 'junit', version: '4.12'",
			want: script.Dependency{
				Configuration:     "testCompile",
				Group:             "junit",
				Name:              "junit",
				Version:           "4.12",
				Notation:          script.NotationMap,
				ConfigurationSpan: script.Span{Start: 1, End: 12},
				ArgumentSpan:      script.Span{Start: 13, End: 59},
				VersionSpan:       script.Span{Start: 54, End: 58},
			},
		},
		{
			name: "kotlin named arguments",
			code: `implementation(group = "g", name = "n")`,
			want: script.Dependency{
				Configuration:     "implementation",
				Group:             "g",
				Name:              "n",
				Notation:          script.NotationMap,
				ConfigurationSpan: script.Span{Start: 1, End: 15},
				ArgumentSpan:      script.Span{Start: 16, End: 39},
			},
		},
		{
			name: "columns count runes",
			code: "compile 'ä:b:1'",
			want: script.Dependency{
				Configuration:     "compile",
				Group:             "ä",
				Name:              "b",
				Version:           "1",
				Notation:          script.NotationString,
				ConfigurationSpan: script.Span{Start: 1, End: 8},
				ArgumentSpan:      script.Span{Start: 9, End: 16},
				VersionSpan:       script.Span{Start: 14, End: 15},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := script.ParseDependency(tt.code)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDependencyRejects(t *testing.T) {
	t.Parallel()

	for _, code := range []string{
		"",
		"    }",
		"implementation project(':core')",
		"compile files('libs/a.jar')",
		`implementation "a:b:$version"`,
		"compile 'justaname'",
		"compile ':b:1'",
		"compile 'a:b:c:d:e'",
		"compile name: 'b'",
		"compile group: 'a', name: 'b', transitive: 'false'",
		"mavenCentral()",
	} {
		_, ok := script.ParseDependency(code)
		assert.False(t, ok, "ParseDependency(%q)", code)
	}
}

func TestDependencyHelpers(t *testing.T) {
	t.Parallel()

	dep := script.Dependency{Group: "a", Name: "b", Classifier: "tests"}
	assert.Equal(t, "a:b", dep.Module())
	assert.Equal(t, "a:b::tests", dep.Coordinate())
}

func TestIsDynamic(t *testing.T) {
	t.Parallel()

	tests := []struct {
		version string
		want    bool
	}{
		{"1.2.3", false},
		{"", false},
		{"1.+", true},
		{"+", true},
		{"latest.release", true},
		{"latest.integration", true},
		{"[1.0,2.0)", true},
		{"(,2.0]", true},
		{"1.0-SNAPSHOT", false},
	}

	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, script.Dependency{Version: tt.version}.IsDynamic())
		})
	}
}
