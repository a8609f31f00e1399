// Package rules provides the built-in lint rules for gradlint.
//
// # Rule Domains
//
//   - Dependencies:
//
//   - GL001: deprecated-configuration - compile, runtime and friends were removed in Gradle 7
//
//   - GL002: duplicate-dependency - the same coordinate declared twice
//
//   - GL003: dependency-tuple - map notation instead of 'group:name:version'
//
//   - GL009: dynamic-version - 1.+, latest.release and version ranges
//
//   - Plugins:
//
//   - GL004: required-plugin - companion plugins missing next to java (off by default)
//
//   - Layout:
//
//   - GL005: repositories-before-dependencies - dependencies with no repositories block
//
//   - GL007: empty-build-file - scripts without code
//
//   - GL008: missing-settings-file - builds without a settings script
//
//   - Whitespace:
//
//   - GL006: line-endings - CRLF line endings
//
//   - GL010: trailing-whitespace - spaces or tabs at the end of a line
//
// # Fixes
//
// Each fixable rule builds its fix against RuleContext.File with one of the
// fix package factories. The engine resolves overlapping fixes; a rejected
// fix is offered again on the next pass, against the updated text.
//
// Rules that need the same landmark (the line applying a plugin, the first
// top-level block of a kind) look it up through the shared Bookmarks, so the
// document is scanned once per landmark.
//
// # Rule Packs
//
// Rule packs are configuration presets for common use cases:
//
//   - core: everyday hygiene as warnings
//   - strict: every rule as an error, required-plugin included
//   - migration: the rules that move a build to Gradle 7 idioms
//
// Use PackByName or Packs to access pack definitions programmatically.
//
// # Registration
//
// Rules are registered with the default registry via RegisterAll.
package rules
