// Package gemini implements the extraction.Extractor interface using
// Google's Gemini API. Documents are sent inline together with an
// instruction prompt, and the model is constrained to a structured JSON
// response schema describing the question batch.
package gemini
