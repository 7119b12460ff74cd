package rustdoc

import (
	"encoding/json"
	"strings"

	"github.com/fwojciec/docmerge"
)

const crateListVar = "window.ALL_CRATES"

// EncodeCrateList encodes the crate list script for the given unit names,
// in the order given.
func EncodeCrateList(names []string) ([]byte, error) {
	var b strings.Builder
	b.WriteString(crateListVar)
	b.WriteString(" = [")
	for i, name := range names {
		if err := docmerge.ValidateUnitName(name); err != nil {
			return nil, err
		}
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(`"` + name + `"`)
	}
	b.WriteString("];")
	return []byte(b.String()), nil
}

// DecodeCrateList returns the unit names assigned by a crate list script.
// Anything following the assigned array is ignored.
func DecodeCrateList(data []byte) ([]string, error) {
	text := string(data)

	i := strings.Index(text, crateListVar)
	if i < 0 {
		return nil, docmerge.Errorf(docmerge.EFORMAT, "no %s assignment found", crateListVar)
	}
	start := strings.IndexByte(text[i:], '[')
	if start < 0 {
		return nil, docmerge.Errorf(docmerge.EFORMAT, "%s is not assigned an array", crateListVar)
	}

	var names []string
	dec := json.NewDecoder(strings.NewReader(text[i+start:]))
	if err := dec.Decode(&names); err != nil {
		return nil, docmerge.Errorf(docmerge.EFORMAT, "invalid crate list: %v", err)
	}
	return names, nil
}
