package workflow

import (
	"context"
	"fmt"
)

// structure turns the raw branch output into the validated terminal
// response: clean, parse, validate, then overwrite the classification with
// the pipeline's label. The overwrite happens after validation, so whatever
// classification the model put in its payload is discarded in favor of the
// authoritative one. Any failure here is fatal to the run; no partial
// object is ever produced.
func (e *Engine) structure(_ context.Context, s *State) error {
	cleaned := CleanJSON(s.Raw)
	if cleaned == nil {
		e.logger.Error("model output is not valid JSON", "raw", s.Raw)
		return fmt.Errorf("%w: model output is not valid JSON", ErrStructuring)
	}

	resp, err := ParseResponse(cleaned)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStructuring, err)
	}

	resp.Classification = s.Classify

	e.logger.Info("response structured",
		"classification", resp.Classification,
		"subject", resp.Subject,
	)
	s.Response = resp
	return nil
}
