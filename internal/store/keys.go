package store

const (
	// StreamsTable maps room id -> Room JSON.
	StreamsTable = "streams"
	// MetadataTable maps room id -> StreamMetadata JSON.
	MetadataTable = "stream_metadata"

	messagesPrefix = "stream_messages:"
	membersPrefix  = "stream_members:"
)

// MessagesKey is the list holding a room's chat history.
func MessagesKey(roomID string) string {
	return messagesPrefix + roomID
}

// MembersKey is the set of connections joined to a room across instances.
func MembersKey(roomID string) string {
	return membersPrefix + roomID
}
