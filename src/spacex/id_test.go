package spacex

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDRoundTrip(t *testing.T) {
	for _, raw := range []string{`9`, `"9"`, `"5e9d0d95eda69973a809d1ec"`, `1.5`} {
		t.Run(raw, func(t *testing.T) {
			var id ID
			require.Nil(t, json.Unmarshal([]byte(raw), &id))

			out, err := json.Marshal(id)
			require.Nil(t, err)
			assert.Equal(t, raw, string(out))
		})
	}
}

func TestIDNull(t *testing.T) {
	var id ID
	require.Nil(t, json.Unmarshal([]byte(`null`), &id))
	assert.True(t, id.IsZero())
}

func TestIDRejectsObjects(t *testing.T) {
	var id ID
	assert.NotNil(t, json.Unmarshal([]byte(`{"a": 1}`), &id))
	assert.NotNil(t, json.Unmarshal([]byte(`true`), &id))
}
