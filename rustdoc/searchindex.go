// Package rustdoc encodes and decodes the generated data files of a rustdoc
// site: the search index and the crate list.
//
// A search index is a JavaScript file that hands a JSON payload to the
// client-side search through a call like
//
//	var searchIndex = new Map(JSON.parse('[\
//	["alpha",{...}],\
//	["beta",{...}]\
//	]'));
//
// The payload travels inside a single-quoted string literal, one unit per
// line joined with line continuations. Older generators embed an object
// keyed by unit name instead of an array of pairs.
package rustdoc

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strings"

	"github.com/fwojciec/docmerge"
)

// parseCall is the loader call whose string argument carries the payload.
const parseCall = "JSON.parse("

// DefaultWrapper is the wrapper written by current rustdoc releases.
var DefaultWrapper = docmerge.Wrapper{
	Prefix:  "var searchIndex = new Map(JSON.parse(",
	Suffix:  "));\nif (typeof exports !== 'undefined') exports.searchIndex = searchIndex;\nelse if (window.initSearch) window.initSearch(searchIndex);\n",
	Dialect: docmerge.DialectMap,
}

// DecodeSearchIndex decodes the contents of a search-index file.
func DecodeSearchIndex(data []byte) (*docmerge.SearchIndex, error) {
	text := string(data)

	call := strings.Index(text, parseCall)
	if call < 0 {
		return nil, docmerge.Errorf(docmerge.EFORMAT, "no %s call found", parseCall)
	}
	open := call + len(parseCall)
	for open < len(text) && isSpace(text[open]) {
		open++
	}
	if open >= len(text) || text[open] != '\'' {
		return nil, docmerge.Errorf(docmerge.EFORMAT, "%s is not followed by a single-quoted string", parseCall)
	}
	closing, err := scanString(text, open)
	if err != nil {
		return nil, err
	}
	if !strings.HasPrefix(strings.TrimLeft(text[closing+1:], " \t\r\n"), ")") {
		return nil, docmerge.Errorf(docmerge.EFORMAT, "%s call is not closed after its string argument", parseCall)
	}

	payload, err := unescapeString(text[open+1 : closing])
	if err != nil {
		return nil, err
	}

	idx := &docmerge.SearchIndex{
		Wrapper: docmerge.Wrapper{
			Prefix: text[:open],
			Suffix: text[closing+1:],
		},
	}

	body := strings.TrimSpace(payload)
	switch {
	case strings.HasPrefix(body, "["):
		idx.Wrapper.Dialect = docmerge.DialectMap
		idx.Entries, err = decodePairs([]byte(body))
	case strings.HasPrefix(body, "{"):
		idx.Wrapper.Dialect = docmerge.DialectObject
		idx.Entries, err = decodeObject([]byte(body))
	default:
		err = docmerge.Errorf(docmerge.EFORMAT, "payload is neither an array nor an object")
	}
	if err != nil {
		return nil, err
	}
	return idx, nil
}

func decodePairs(body []byte) ([]docmerge.Entry, error) {
	var pairs []json.RawMessage
	if err := json.Unmarshal(body, &pairs); err != nil {
		return nil, docmerge.Errorf(docmerge.EFORMAT, "invalid payload: %v", err)
	}

	entries := make([]docmerge.Entry, 0, len(pairs))
	for i, raw := range pairs {
		var pair []json.RawMessage
		if err := json.Unmarshal(raw, &pair); err != nil || len(pair) != 2 {
			return nil, docmerge.Errorf(docmerge.EFORMAT, "entry %d is not a [name, record] pair", i)
		}
		var name string
		if err := json.Unmarshal(pair[0], &name); err != nil {
			return nil, docmerge.Errorf(docmerge.EFORMAT, "entry %d has a non-string name", i)
		}
		if err := docmerge.ValidateUnitName(name); err != nil {
			return nil, docmerge.Errorf(docmerge.EFORMAT, "entry %d: %s", i, docmerge.ErrorMessage(err))
		}
		entries = append(entries, docmerge.Entry{Name: name, Record: pair[1]})
	}
	return entries, nil
}

func decodeObject(body []byte) ([]docmerge.Entry, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	if tok, err := dec.Token(); err != nil || tok != json.Delim('{') {
		return nil, docmerge.Errorf(docmerge.EFORMAT, "invalid payload: expected object")
	}

	var entries []docmerge.Entry
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, docmerge.Errorf(docmerge.EFORMAT, "invalid payload: %v", err)
		}
		name, _ := tok.(string)
		if err := docmerge.ValidateUnitName(name); err != nil {
			return nil, docmerge.Errorf(docmerge.EFORMAT, "entry %d: %s", len(entries), docmerge.ErrorMessage(err))
		}
		var record json.RawMessage
		if err := dec.Decode(&record); err != nil {
			return nil, docmerge.Errorf(docmerge.EFORMAT, "invalid record for %q: %v", name, err)
		}
		entries = append(entries, docmerge.Entry{Name: name, Record: record})
	}
	if tok, err := dec.Token(); err != nil || tok != json.Delim('}') {
		return nil, docmerge.Errorf(docmerge.EFORMAT, "invalid payload: unterminated object")
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, docmerge.Errorf(docmerge.EFORMAT, "invalid payload: trailing data after object")
	}
	return entries, nil
}

// EncodeSearchIndex encodes idx in the layout rustdoc writes. Decoding the
// output of rustdoc and encoding it again yields the same bytes.
func EncodeSearchIndex(idx *docmerge.SearchIndex) ([]byte, error) {
	w := idx.Wrapper
	if w.Prefix == "" && w.Suffix == "" {
		w = DefaultWrapper
	}

	open, closing := "[", "]"
	if w.Dialect == docmerge.DialectObject {
		open, closing = "{", "}"
	}

	var entry strings.Builder
	var b strings.Builder
	b.WriteString(w.Prefix)
	b.WriteByte('\'')
	b.WriteString(open)
	b.WriteString("\\\n")
	for i, e := range idx.Entries {
		if err := docmerge.ValidateUnitName(e.Name); err != nil {
			return nil, err
		}
		if !json.Valid(e.Record) {
			return nil, docmerge.Errorf(docmerge.EFORMAT, "record for %q is not valid JSON", e.Name)
		}
		if i > 0 {
			b.WriteString(",\\\n")
		}

		entry.Reset()
		if w.Dialect == docmerge.DialectObject {
			entry.WriteString(`"` + e.Name + `":`)
			entry.Write(e.Record)
		} else {
			entry.WriteString(`["` + e.Name + `",`)
			entry.Write(e.Record)
			entry.WriteString("]")
		}
		escapeString(&b, entry.String())
	}
	b.WriteString("\\\n")
	b.WriteString(closing)
	b.WriteByte('\'')
	b.WriteString(w.Suffix)
	return []byte(b.String()), nil
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}
