package messages

import "encoding/json"

const (
	// MessageBufferSize is the number of pending messages buffered per subscriber.
	MessageBufferSize = 64
)

// Message types
const (
	MessageTypeServerPasteFinished  = "paste_finished"
	MessageTypeServerPasteCancelled = "paste_cancelled"
	MessageTypeServerSchematicSaved = "schematic_saved"
	MessageTypeServerStats          = "stats"
)

// Message represents a generic message for serialization/deserialization
type Message struct {
	Type      string          `json:"type"`
	Timestamp int64           `json:"timestamp"`
	Payload   json.RawMessage `json:"payload"`
}

// ServerPasteFinished is sent once a paste job has considered every entry.
type ServerPasteFinished struct {
	PasteID    string `json:"paste_id"`
	World      string `json:"world"`
	X          int    `json:"x"`
	Y          int    `json:"y"`
	Z          int    `json:"z"`
	Considered int    `json:"considered"`
	Placed     int    `json:"placed"`
	Skipped    int    `json:"skipped"`
}

// ServerPasteCancelled is sent when an active paste job is removed.
type ServerPasteCancelled struct {
	PasteID string `json:"paste_id"`
	Cursor  int    `json:"cursor"`
	Entries int    `json:"entries"`
}

// ServerSchematicSaved is sent after a schematic file and its record are written.
type ServerSchematicSaved struct {
	Name       string `json:"name"`
	Path       string `json:"path"`
	Entries    int32  `json:"entries"`
	Compressed bool   `json:"compressed"`
}
