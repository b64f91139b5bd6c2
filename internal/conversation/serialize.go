package conversation

import (
	"encoding/json"
	"fmt"
)

// Serialize encodes the state as JSON. Timestamps transit as RFC 3339 text.
func Serialize(s ConversationState) ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshaling conversation state: %w", err)
	}
	return data, nil
}

// Deserialize rehydrates a state previously produced by Serialize.
func Deserialize(data []byte) (ConversationState, error) {
	var s ConversationState
	if err := json.Unmarshal(data, &s); err != nil {
		return ConversationState{}, fmt.Errorf("unmarshaling conversation state: %w", err)
	}
	if s.SessionID == "" {
		return ConversationState{}, fmt.Errorf("conversation state has no session ID")
	}
	return s, nil
}
