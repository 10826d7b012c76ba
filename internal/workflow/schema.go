package workflow

import (
	"encoding/json"
	"fmt"
)

// rawResponse uses pointers so a missing field is distinguishable from an
// empty one. Unknown fields in the payload are ignored.
type rawResponse struct {
	Classification *string `json:"classification"`
	Subject        *string `json:"subject"`
	Body           *string `json:"body"`
	Reasoning      *string `json:"reasoning"`
	DelegateEmail  *string `json:"delegate_email"`
	FollowUpDate   *string `json:"follow_up_date"`
}

// ParseResponse validates a cleaned JSON payload against the response
// schema: classification, subject, body and reasoning must all be present
// and string-typed. Pure function, no defaults for missing fields.
func ParseResponse(data []byte) (*GeneratedResponse, error) {
	var raw rawResponse
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	for field, value := range map[string]*string{
		"classification": raw.Classification,
		"subject":        raw.Subject,
		"body":           raw.Body,
		"reasoning":      raw.Reasoning,
	} {
		if value == nil {
			return nil, fmt.Errorf("response missing required field %q", field)
		}
	}

	resp := &GeneratedResponse{
		Classification: *raw.Classification,
		Subject:        *raw.Subject,
		Body:           *raw.Body,
		Reasoning:      *raw.Reasoning,
	}
	if raw.DelegateEmail != nil {
		resp.DelegateEmail = *raw.DelegateEmail
	}
	if raw.FollowUpDate != nil {
		resp.FollowUpDate = *raw.FollowUpDate
	}
	return resp, nil
}
