package pubsub

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Kind    string    `msgpack:"kind"`
	MatchID int64     `msgpack:"match_id"`
	At      time.Time `msgpack:"at"`
	Names   []string  `msgpack:"names"`
}

func TestEncodeDecode(t *testing.T) {
	in := payload{Kind: "match-created", MatchID: 7, At: time.Date(2025, 6, 1, 22, 0, 0, 0, time.UTC), Names: []string{"Ana", "Bo"}}

	data, err := Encode(in)
	require.NoError(t, err)

	var out payload
	require.NoError(t, Decode(data, &out))
	assert.Equal(t, in.Kind, out.Kind)
	assert.Equal(t, in.MatchID, out.MatchID)
	assert.True(t, in.At.Equal(out.At))
	assert.Equal(t, in.Names, out.Names)
}

func TestDecode_RejectsGarbage(t *testing.T) {
	var out payload
	assert.Error(t, Decode([]byte{0xc1}, &out))
}

func TestMockRecordsPublishedEvents(t *testing.T) {
	var c PubSubClient = NewMock()
	require.NoError(t, c.SendMessage(context.Background(), EventMatchCreated, payload{MatchID: 7}))

	m := c.(*MockPubSubClient)
	calls := m.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, EventMatchCreated, calls[0].EventType)
	assert.Equal(t, payload{MatchID: 7}, calls[0].Data)

	// Subscribers decode with the package-level helper.
	raw, err := Encode(calls[0].Data)
	require.NoError(t, err)
	var out payload
	require.NoError(t, Decode(raw, &out))
	assert.Equal(t, int64(7), out.MatchID)

	m.Reset()
	assert.Empty(t, m.Calls())
	assert.NoError(t, c.Close())
}
