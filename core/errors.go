package core

import "errors"

// Pipeline errors. Every failure returned by a stage wraps exactly one of
// these so callers can classify it with errors.Is.
var (
	// ErrEmptyInput indicates a request with neither text nor URL.
	ErrEmptyInput = errors.New("no text to check")

	// ErrUntrustedSource indicates a URL outside the trusted prefix.
	ErrUntrustedSource = errors.New("untrusted source")

	// ErrDownload indicates the article could not be retrieved.
	ErrDownload = errors.New("download failed")

	// ErrExtraction indicates the page held no readable article text.
	ErrExtraction = errors.New("extraction failed")

	// ErrTemplateMissing indicates the prompt template could not be read.
	ErrTemplateMissing = errors.New("prompt template missing")

	// ErrUpstream indicates the model call failed.
	ErrUpstream = errors.New("upstream model error")

	// ErrNonCompliantResponse indicates the model answered conversationally.
	ErrNonCompliantResponse = errors.New("non-compliant response")

	// ErrTruncatedResponse indicates the model returned too little text.
	ErrTruncatedResponse = errors.New("truncated response")

	// ErrMalformedMarkup indicates correction markup without both colours.
	ErrMalformedMarkup = errors.New("malformed markup")

	// ErrPersistence indicates the last-output artifact could not be written.
	ErrPersistence = errors.New("persistence failed")
)

var messages = []struct {
	err error
	msg string
}{
	{ErrEmptyInput, "Please enter some text or an article URL."},
	{ErrUntrustedSource, "Only articles from the trusted news site can be checked."},
	{ErrDownload, "The article could not be downloaded."},
	{ErrExtraction, "No article text could be found at that URL."},
	{ErrTemplateMissing, "The proofreading prompt is not configured."},
	{ErrUpstream, "The proofreading service is unavailable. Please try again."},
	{ErrNonCompliantResponse, "The proofreader did not return corrected text. Please try again."},
	{ErrTruncatedResponse, "The proofreader returned an incomplete text. Please try again."},
	{ErrMalformedMarkup, "The proofreader returned badly marked corrections. Please try again."},
	{ErrPersistence, "The result could not be saved."},
}

// Message returns the user-visible message for err.
func Message(err error) string {
	for _, m := range messages {
		if errors.Is(err, m.err) {
			return m.msg
		}
	}
	return "Something went wrong."
}

// IsRejection reports whether err is a validation gate rejection.
func IsRejection(err error) bool {
	return errors.Is(err, ErrNonCompliantResponse) ||
		errors.Is(err, ErrTruncatedResponse) ||
		errors.Is(err, ErrMalformedMarkup)
}
