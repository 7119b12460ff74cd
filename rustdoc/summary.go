package rustdoc

import (
	"encoding/json"
	"strings"
)

// Summary returns the crate-level documentation summary stored in a
// record's top-level "doc" field, or "" when the record has none.
// Markup rustdoc embeds in the summary is left as is.
func Summary(record json.RawMessage) string {
	var r struct {
		Doc string `json:"doc"`
	}
	if err := json.Unmarshal(record, &r); err != nil {
		return ""
	}
	return strings.TrimSpace(r.Doc)
}
