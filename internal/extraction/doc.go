// Package extraction defines the boundary between the application core and
// the external question-extraction service. The core consumes the Extractor
// interface; concrete implementations (e.g. the Gemini adapter under
// internal/platform/gemini) live outside this package, following the
// hexagonal architecture pattern.
package extraction
