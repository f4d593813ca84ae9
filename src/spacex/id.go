package spacex

import (
	"bytes"
	"strconv"

	"git.handmade.network/hmn/marsport/src/oops"
	"github.com/goccy/go-json"
)

// An ID identifies an upstream record. The live API uses hex strings while
// older API versions and our fixtures use numbers, so an ID remembers which
// form it arrived in and is written back out the same way.
type ID struct {
	value   string
	numeric bool
}

func StringID(s string) ID {
	return ID{value: s}
}

func NumericID(n int64) ID {
	return ID{value: strconv.FormatInt(n, 10), numeric: true}
}

func (id ID) String() string {
	return id.value
}

func (id ID) IsZero() bool {
	return id.value == ""
}

func (id ID) MarshalJSON() ([]byte, error) {
	if id.numeric {
		return []byte(id.value), nil
	}
	return json.Marshal(id.value)
}

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || string(b) == "null":
		*id = ID{}
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return oops.New(err, "invalid string id")
		}
		*id = ID{value: s}
	default:
		if _, err := strconv.ParseFloat(string(b), 64); err != nil {
			return oops.New(nil, "id must be a string or a number, got %s", b)
		}
		*id = ID{value: string(b), numeric: true}
	}
	return nil
}
