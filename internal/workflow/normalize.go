package workflow

import (
	"encoding/json"
	"strings"
)

// CleanJSON strips code-fence markers (an opening fence, optionally tagged
// "json", and a closing fence) and surrounding whitespace from a raw model
// completion. Returns nil if the remainder is not valid JSON; callers must
// treat nil as "could not extract structured data".
func CleanJSON(raw string) []byte {
	cleaned := strings.TrimSpace(raw)
	if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```")
		cleaned = strings.TrimPrefix(cleaned, "json")
	}
	cleaned = strings.TrimSpace(cleaned)
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	if cleaned == "" || !json.Valid([]byte(cleaned)) {
		return nil
	}
	return []byte(cleaned)
}
