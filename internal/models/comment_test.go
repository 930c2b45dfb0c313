package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComment_MarshalJSON(t *testing.T) {
	t.Parallel()

	c := Comment{ID: 7, PostID: 3, AuthorID: 2, Body: "hi", Author: &User{ID: 2, Name: "bob"}}
	data, err := json.Marshal([]Comment{c})
	require.NoError(t, err)

	var out []map[string]any
	require.NoError(t, json.Unmarshal(data, &out))
	require.Len(t, out, 1)
	assert.Equal(t, float64(7), out[0]["_id"])
	assert.Equal(t, "hi", out[0]["body"])
	assert.Equal(t, map[string]any{"_id": float64(2), "name": "bob"}, out[0]["user"])

	c.Author = nil
	data, err = json.Marshal(&c)
	require.NoError(t, err)
	assert.NotContains(t, string(data), `"user"`)
}
