package appstore

import (
	"bytes"
	"encoding/json"
	"errors"
)

// The RSS JSON feed wraps every scalar as {"label": "..."}.
// Shape: {"feed":{"entry":[{"id":{"label":..},"im:rating":{"label":..},"author":{"name":{"label":..}},...}]}}

type Envelope struct {
	Feed Feed `json:"feed"`
}

type Feed struct {
	Entry Entries `json:"entry"`
}

type Entry struct {
	ID      Label  `json:"id"`
	Rating  Label  `json:"im:rating"`
	Author  Author `json:"author"`
	Title   Label  `json:"title"`
	Content Label  `json:"content"`
	Updated Label  `json:"updated"`
}

type Author struct {
	Name Label `json:"name"`
}

// Label is a single-field wrapper. Anything that is not {"label": "<string>"}
// decodes to an empty label instead of failing the page. The "label" key is
// matched exactly; encoding/json struct tags would also accept "LABEL".
type Label struct {
	Label string
}

func (l *Label) UnmarshalJSON(b []byte) error {
	*l = Label{}
	var w map[string]json.RawMessage
	if err := json.Unmarshal(b, &w); err != nil {
		return nil
	}
	raw, ok := w["label"]
	if !ok {
		return nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		l.Label = s
	}
	return nil
}

// Entries accepts both an array and a bare object; the feed emits the
// latter when a page holds exactly one review.
type Entries []Entry

var errEntryShape = errors.New("appstore: entry is neither array nor object")

func (es *Entries) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || bytes.Equal(b, []byte("null")):
		*es = nil
		return nil
	case b[0] == '[':
		var list []Entry
		if err := json.Unmarshal(b, &list); err != nil {
			return err
		}
		*es = list
		return nil
	case b[0] == '{':
		var one Entry
		if err := json.Unmarshal(b, &one); err != nil {
			return err
		}
		*es = Entries{one}
		return nil
	default:
		return errEntryShape
	}
}

// ParseEnvelope decodes a response body. Callers treat an error as an
// empty page.
func ParseEnvelope(body []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return Envelope{}, err
	}
	return env, nil
}
