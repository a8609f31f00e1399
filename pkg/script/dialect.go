package script

import (
	"bytes"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Dialect is the build-script language of a document.
type Dialect string

// Known dialects.
const (
	DialectGroovy  Dialect = "groovy"
	DialectKotlin  Dialect = "kotlin"
	DialectUnknown Dialect = "unknown"
)

// Kotlin DSL markers that never appear in Groovy build scripts.
var kotlinPattern = regexp.MustCompile(`(?m)^\s*(val|var)\s+\w+\s*[:=]|\bby\s+(extra|project|getting|creating)\b`)

// DetectDialect returns the dialect of a build script.
//
// The file name decides when it is conclusive. Otherwise a few Kotlin-only
// constructs are checked, and finally the go-enry classifier picks between
// Groovy and Kotlin.
func DetectDialect(path string, content []byte) Dialect {
	base := filepath.Base(path)
	switch {
	case strings.HasSuffix(base, ".gradle.kts"):
		return DialectKotlin
	case strings.HasSuffix(base, ".gradle"):
		return DialectGroovy
	}

	if lang, safe := enry.GetLanguageByExtension(base); safe {
		if d := fromLinguist(lang); d != DialectUnknown {
			return d
		}
	}

	if len(bytes.TrimSpace(content)) == 0 {
		return DialectUnknown
	}

	if kotlinPattern.Match(content) {
		return DialectKotlin
	}

	if lang, _ := enry.GetLanguageByClassifier(content, []string{"Groovy", "Kotlin"}); lang != "" {
		return fromLinguist(lang)
	}

	return DialectUnknown
}

func fromLinguist(lang string) Dialect {
	switch lang {
	case "Gradle", "Groovy":
		return DialectGroovy
	case "Kotlin", "Gradle Kotlin DSL":
		return DialectKotlin
	default:
		return DialectUnknown
	}
}

// SettingsFileName returns the settings file name matching the dialect.
func (d Dialect) SettingsFileName() string {
	if d == DialectKotlin {
		return "settings.gradle.kts"
	}
	return "settings.gradle"
}

// Quote wraps s in the dialect's preferred string quotes.
func (d Dialect) Quote(s string) string {
	if d == DialectKotlin {
		return `"` + s + `"`
	}
	return "'" + s + "'"
}
