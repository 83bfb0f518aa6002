package messages

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializeDeserializeMessage(t *testing.T) {
	tests := []struct {
		name        string
		messageType string
		payload     interface{}
		decoded     interface{}
	}{
		{
			name:        "paste finished",
			messageType: MessageTypeServerPasteFinished,
			payload:     &ServerPasteFinished{PasteID: "a", World: "world", X: 1, Y: 64, Z: -3, Considered: 10, Placed: 8, Skipped: 2},
			decoded:     &ServerPasteFinished{},
		},
		{
			name:        "paste cancelled",
			messageType: MessageTypeServerPasteCancelled,
			payload:     &ServerPasteCancelled{PasteID: "b", Cursor: 500, Entries: 10000},
			decoded:     &ServerPasteCancelled{},
		},
		{
			name:        "schematic saved",
			messageType: MessageTypeServerSchematicSaved,
			payload:     &ServerSchematicSaved{Name: "tower", Path: "schematics/tower.schem.zst", Entries: 64, Compressed: true},
			decoded:     &ServerSchematicSaved{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewMessage(tt.messageType, 1700000000000, tt.payload)
			require.NoError(t, err)

			b, err := SerializeMessage(m)
			require.NoError(t, err)

			got, err := DeserializeMessage(b)
			require.NoError(t, err)
			assert.Equal(t, tt.messageType, got.Type)
			assert.Equal(t, int64(1700000000000), got.Timestamp)

			require.NoError(t, DecodePayload(got, tt.decoded))
			assert.Equal(t, tt.payload, tt.decoded)
		})
	}
}

func TestDeserializeMessage_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "not json", input: "paste_finished"},
		{name: "missing type", input: `{"timestamp":1,"payload":{}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DeserializeMessage([]byte(tt.input))
			assert.Error(t, err)
		})
	}
}

func TestNewMessage_UnmarshalablePayload(t *testing.T) {
	_, err := NewMessage(MessageTypeServerStats, 0, make(chan int))
	assert.Error(t, err)
}
