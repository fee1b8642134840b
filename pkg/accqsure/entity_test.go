package accqsure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeEntityIgnoresUnknownFields(t *testing.T) {
	var doc Document
	err := decodeEntity(map[string]interface{}{
		"entity_id":        "doc-1",
		"name":             "SOP",
		"some_new_field":   "ignored",
		"another_addition": 42,
	}, &doc)
	require.NoError(t, err)
	assert.Equal(t, "doc-1", doc.EntityID)
	assert.Equal(t, "SOP", doc.Name)
}

func TestDecodeEntityWeakTyping(t *testing.T) {
	// JSON numbers arrive as float64; integer fields still decode.
	var dt DocumentType
	err := decodeEntity(map[string]interface{}{
		"entity_id": "dt-1",
		"level":     float64(3),
	}, &dt)
	require.NoError(t, err)
	assert.Equal(t, 3, dt.Level)
}

func TestDecodeEntitySparsePayload(t *testing.T) {
	var ins Inspection
	err := decodeEntity(map[string]interface{}{
		"entity_id": "i-1",
	}, &ins)
	require.NoError(t, err)
	assert.Equal(t, "i-1", ins.EntityID)
	assert.Empty(t, ins.Status)
	assert.Empty(t, ins.ContentID)
}
