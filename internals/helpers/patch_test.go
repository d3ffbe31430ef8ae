package helper

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatchFieldStates(t *testing.T) {
	type body struct {
		Title PatchField[string] `json:"title"`
		Count PatchField[int]    `json:"count"`
	}

	t.Run("absent", func(t *testing.T) {
		var b body
		require.NoError(t, json.Unmarshal([]byte(`{}`), &b))
		assert.False(t, b.Title.ShouldUpdate())
		assert.False(t, b.Title.IsNull())
	})

	t.Run("null", func(t *testing.T) {
		var b body
		require.NoError(t, json.Unmarshal([]byte(`{"title":null}`), &b))
		assert.True(t, b.Title.ShouldUpdate())
		assert.True(t, b.Title.IsNull())
	})

	t.Run("value", func(t *testing.T) {
		var b body
		require.NoError(t, json.Unmarshal([]byte(`{"title":"Hi","count":3}`), &b))
		assert.True(t, b.Title.ShouldUpdate())
		assert.False(t, b.Title.IsNull())
		require.NotNil(t, b.Title.Value)
		assert.Equal(t, "Hi", *b.Title.Value)
		require.NotNil(t, b.Count.Value)
		assert.Equal(t, 3, *b.Count.Value)
	})
}

func TestPutPatch(t *testing.T) {
	var b struct {
		Title PatchField[string] `json:"title"`
		Room  PatchField[string] `json:"room"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"title":"Math","room":null}`), &b))

	upd := make(map[string]any)
	PutPatch(upd, "class_name", &b.Title)
	PutPatch(upd, "class_room", &b.Room)

	assert.Equal(t, "Math", upd["class_name"])
	val, ok := upd["class_room"]
	assert.True(t, ok)
	assert.Nil(t, val)
}
