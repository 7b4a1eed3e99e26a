package core

import "fmt"

// Reason names the gate that rejected a model response.
type Reason string

// Rejection reasons, in gate order.
const (
	ReasonNonCompliant Reason = "non_compliant_response"
	ReasonTruncated    Reason = "truncated_response"
	ReasonMalformed    Reason = "malformed_markup"
)

// Outcome is the tagged result of validation: Accepted(content) or
// Rejected(reason). A rejected outcome carries no content.
type Outcome struct {
	content string
	reason  Reason
	detail  string
}

// Accepted returns an accepting outcome for content.
func Accepted(content string) Outcome {
	return Outcome{content: content}
}

// Rejected returns a rejecting outcome.
func Rejected(reason Reason, detail string) Outcome {
	return Outcome{reason: reason, detail: detail}
}

// IsAccepted reports whether the response passed every gate.
func (o Outcome) IsAccepted() bool { return o.reason == "" }

// Content returns the accepted content, or "" when rejected.
func (o Outcome) Content() string { return o.content }

// Reason returns the rejecting gate, or "" when accepted.
func (o Outcome) Reason() Reason { return o.reason }

// Detail describes what the rejecting gate saw.
func (o Outcome) Detail() string { return o.detail }

// Err converts a rejection into its sentinel error. It returns nil for an
// accepted outcome.
func (o Outcome) Err() error {
	var kind error
	switch o.reason {
	case "":
		return nil
	case ReasonNonCompliant:
		kind = ErrNonCompliantResponse
	case ReasonTruncated:
		kind = ErrTruncatedResponse
	case ReasonMalformed:
		kind = ErrMalformedMarkup
	default:
		return fmt.Errorf("unknown rejection %q: %s", o.reason, o.detail)
	}
	if o.detail == "" {
		return kind
	}
	return fmt.Errorf("%w: %s", kind, o.detail)
}
