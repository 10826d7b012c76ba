package workflow

import "testing"

func TestParseResponse_Valid(t *testing.T) {
	data := []byte(`{"classification":"X","subject":"S","body":"<p>B</p>","reasoning":"R"}`)

	resp, err := ParseResponse(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Classification != "X" || resp.Subject != "S" || resp.Body != "<p>B</p>" || resp.Reasoning != "R" {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestParseResponse_ExtrasIgnoredAndExtractionsCarried(t *testing.T) {
	data := []byte(`{
		"classification": "X",
		"subject": "S",
		"body": "B",
		"reasoning": "R",
		"delegate_email": "boss@example.com",
		"follow_up_date": "2026-12-01 09:00 UTC",
		"unknown_field": 42
	}`)

	resp, err := ParseResponse(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.DelegateEmail != "boss@example.com" {
		t.Errorf("expected delegate email carried, got %q", resp.DelegateEmail)
	}
	if resp.FollowUpDate != "2026-12-01 09:00 UTC" {
		t.Errorf("expected follow-up date carried, got %q", resp.FollowUpDate)
	}
}

func TestParseResponse_MissingField(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"missing classification", `{"subject":"S","body":"B","reasoning":"R"}`},
		{"missing subject", `{"classification":"X","body":"B","reasoning":"R"}`},
		{"missing body", `{"classification":"X","subject":"S","reasoning":"R"}`},
		{"missing reasoning", `{"classification":"X","subject":"S","body":"B"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseResponse([]byte(tt.data)); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestParseResponse_WrongType(t *testing.T) {
	data := []byte(`{"classification":"X","subject":42,"body":"B","reasoning":"R"}`)
	if _, err := ParseResponse(data); err == nil {
		t.Error("expected error for non-string subject, got nil")
	}
}
