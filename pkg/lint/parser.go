package lint

import (
	"context"
	"fmt"

	"github.com/yaklabco/gradlint/pkg/script"
)

// Parser turns build-script content into a Document.
//
// The lint package defines this interface in the consumer package.
// Implementations must be deterministic for a given (path, content) pair,
// safe for concurrent use, and free of I/O.
type Parser interface {
	// Parse converts raw build-script bytes into a Document. path is for
	// reporting only and must not be used for I/O.
	Parse(ctx context.Context, path string, content []byte) (*script.Document, error)
}

// ScriptParser is the default Parser backed by the script scanner.
type ScriptParser struct{}

// NewScriptParser returns the default parser.
func NewScriptParser() *ScriptParser {
	return &ScriptParser{}
}

// Parse scans content. It fails only when ctx is done.
func (ScriptParser) Parse(ctx context.Context, path string, content []byte) (*script.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return script.Parse(path, content), nil
}
