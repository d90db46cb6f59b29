package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testPayload struct {
	ID    uint64            `json:"id" msgpack:"id"`
	Title string            `json:"title" msgpack:"title"`
	Score float64           `json:"score" msgpack:"score"`
	Tags  []string          `json:"tags" msgpack:"tags"`
	Attrs map[string]string `json:"attrs" msgpack:"attrs"`
	Blob  []byte            `json:"blob" msgpack:"blob"`
}

func TestCodec_RoundTrip(t *testing.T) {
	payload := testPayload{
		ID:    42,
		Title: "segment header",
		Score: 0.125,
		Tags:  []string{"a", "b", "c"},
		Attrs: map[string]string{"lang": "ar", "field": "aya"},
		Blob:  []byte{0x00, 0x01, 0xFE, 0xFF},
	}

	for _, c := range []Codec{Msgpack{}, JSON{}, GoJSON{}} {
		t.Run(c.Name(), func(t *testing.T) {
			data, err := c.Marshal(payload)
			require.NoError(t, err)

			var got testPayload
			require.NoError(t, c.Unmarshal(data, &got))
			assert.Equal(t, payload, got)
		})
	}
}

func TestCodec_ByName(t *testing.T) {
	for _, name := range []string{"msgpack", "json", "go-json"} {
		c, ok := ByName(name)
		require.True(t, ok, name)
		assert.Equal(t, name, c.Name())
	}

	_, ok := ByName("pickle")
	assert.False(t, ok)
}

func TestCodec_Default(t *testing.T) {
	require.NotNil(t, Default)
	assert.Equal(t, "msgpack", Default.Name())
}

func TestCodec_MustMarshal(t *testing.T) {
	data := MustMarshal(nil, map[string]int{"n": 1})
	assert.NotEmpty(t, data)

	assert.Panics(t, func() {
		MustMarshal(JSON{}, make(chan int))
	})
}
