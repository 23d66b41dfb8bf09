package types

import "fmt"

// ParseError reports a structurally malformed or incomplete catalog
// document. Document names one of the three input streams, Path the
// JSON location that failed.
type ParseError struct {
	Document string `json:"document"`
	Path     string `json:"path"`
	Message  string `json:"message"`
	Err      error  `json:"-"`
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse %s: %s at %s: %v", e.Document, e.Message, e.Path, e.Err)
	}
	return fmt.Sprintf("parse %s: %s at %s", e.Document, e.Message, e.Path)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError builds a ParseError for one of the document streams.
func NewParseError(document, path, message string, err error) *ParseError {
	return &ParseError{Document: document, Path: path, Message: message, Err: err}
}
