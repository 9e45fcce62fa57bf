package tui

import "github.com/eoflazer/paperclip/internal/extract"

// metadataMsg delivers the extractor's result (real or fallback) for a
// submitted URL.
type metadataMsg struct {
	url string
	res extract.Result
}

type errMsg struct {
	err error
}
