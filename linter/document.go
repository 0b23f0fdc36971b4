package linter

// DocumentInfo contains a document and its metadata for linting
type DocumentInfo[T any] struct {
	// Document is the parsed document to lint
	Document T

	// Location is the path the document was read from, used for ignore globs and reporting
	Location string
}

// NewDocumentInfo creates a new DocumentInfo with the given document and location
func NewDocumentInfo[T any](doc T, location string) *DocumentInfo[T] {
	return &DocumentInfo[T]{
		Document: doc,
		Location: location,
	}
}

// LintOptions contains runtime options for linting
type LintOptions struct {
	// Concurrency limits how many rules run at once. Zero means no limit.
	Concurrency int

	// DisabledRules are skipped in addition to those disabled by configuration
	DisabledRules []string
}
