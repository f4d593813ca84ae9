package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestItemOptionalFieldsOmitted(t *testing.T) {
	out, err := json.Marshal(Item{ID: "1", Name: "Rover", Phone: "+1 555 0100"})
	assert.Nil(t, err)
	assert.JSONEq(t, `{"id":"1","name":"Rover","phone":"+1 555 0100"}`, string(out))
}
