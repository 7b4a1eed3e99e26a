package proofread

import (
	"context"

	"github.com/gaurav-prasanna/proofpipe/core"
	"github.com/gaurav-prasanna/proofpipe/core/prompt"
)

// MockProofreader returns the text to check unchanged, as a model would for
// error-free input. It never calls the network.
type MockProofreader struct{}

// Proofread implements core.Proofreader.
func (MockProofreader) Proofread(ctx context.Context, composed string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return prompt.Payload(composed), nil
}

var _ core.Proofreader = MockProofreader{}
