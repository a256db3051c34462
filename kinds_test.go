package mediainfo

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreamKindNames(t *testing.T) {
	kinds := StreamKinds()
	require.Len(t, kinds, 7)
	for i, k := range kinds {
		assert.Equal(t, StreamKind(i), k)
		parsed, err := ParseStreamKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, parsed)
	}

	k, err := ParseStreamKind("audio")
	require.NoError(t, err)
	assert.Equal(t, StreamAudio, k)

	_, err = ParseStreamKind("Chapters")
	assert.Error(t, err)
	assert.Equal(t, "StreamKind(42)", StreamKind(42).String())
}

func TestStreamKindJSON(t *testing.T) {
	b, err := json.Marshal(Stream{Kind: StreamVideo, Index: 0, Fields: map[string]string{"Width": "1920"}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"Video","index":0,"fields":{"Width":"1920"}}`, string(b))

	var s Stream
	require.NoError(t, json.Unmarshal(b, &s))
	assert.Equal(t, StreamVideo, s.Kind)
}

func TestInfoKindValues(t *testing.T) {
	// Values cross the native boundary as integers and must match the
	// library's enum.
	assert.Equal(t, 0, int(InfoName))
	assert.Equal(t, 1, int(InfoText))
	assert.Equal(t, 7, int(InfoHowTo))
	assert.Equal(t, "MeasureText", InfoMeasureText.String())
	assert.Equal(t, 6, int(StreamMenu))
}

func TestFileOptionHas(t *testing.T) {
	opts := FileOptionNoRecursive | FileOptionCloseAll
	assert.True(t, opts.Has(FileOptionCloseAll))
	assert.False(t, opts.Has(FileOptionMax))
	assert.True(t, opts.Has(FileOptionNothing))
}
