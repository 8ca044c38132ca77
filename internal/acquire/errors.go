package acquire

import "errors"

// Errors used within the acquisition waterfall.
var (
	// ErrNotPDF indicates downloaded content failed the PDF signature
	// check. The waterfall treats this like a provider miss.
	ErrNotPDF = errors.New("downloaded content is not a PDF")

	// ErrNoOpenAccess indicates every provider was exhausted without a
	// verified download.
	ErrNoOpenAccess = errors.New("no open access PDF found")
)
