package realtime

// Event is the payload pushed over a user's channel when a notification fires.
type Event struct {
	Type     string `json:"type"`
	Message  string `json:"message"`
	EntityID uint   `json:"entity_id"`
}
