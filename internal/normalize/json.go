package normalize

import (
	"encoding/json"
)

// ParseJSONDocument parses a full-document JSON snapshot (the human-portable
// backup format, exactly the persisted shape) into a partial. Malformed JSON
// surfaces a SourceError; field omissions are handled by Normalize.
func ParseJSONDocument(filename string, content []byte) (Partial, error) {
	var partial Partial
	if err := json.Unmarshal(content, &partial); err != nil {
		return Partial{}, &SourceError{Name: filename, Message: "malformed JSON snapshot", Cause: err}
	}
	return partial, nil
}
