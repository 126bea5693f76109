package domain

import "encoding/json"

// ActionType tags an inbound frame.
type ActionType string

// Actions accepted from clients.
const (
	ActionStartStream      ActionType = "startStream"
	ActionEndStream        ActionType = "endStream"
	ActionUpdateLiveStatus ActionType = "updateStreamLiveStatus"
	ActionJoinStream       ActionType = "joinStream"
	ActionLeaveStream      ActionType = "leaveStream"
	ActionSendChatMessage  ActionType = "sendChatMessage"
	ActionRequestHistory   ActionType = "requestChatHistory"
	ActionPing             ActionType = "ping"
)

// Valid reports whether a is a known action.
func (a ActionType) Valid() bool {
	switch a {
	case ActionStartStream, ActionEndStream, ActionUpdateLiveStatus,
		ActionJoinStream, ActionLeaveStream, ActionSendChatMessage,
		ActionRequestHistory, ActionPing:
		return true
	}
	return false
}

// EventType tags an outbound frame.
type EventType string

// Events sent to clients.
const (
	EventStreamStarted     EventType = "streamStarted"
	EventStreamEnded       EventType = "streamEnded"
	EventViewerJoined      EventType = "viewerJoined"
	EventViewerLeft        EventType = "viewerLeft"
	EventRoleChanged       EventType = "roleChanged"
	EventLiveStatusChanged EventType = "streamLiveStatusChanged"
	EventChatMessage       EventType = "chatMessageReceived"
	EventChatHistory       EventType = "chatHistoryReceived"
	EventError             EventType = "error"
	EventPong              EventType = "pong"
)

// BaseMessage is the envelope shared by every frame.
type BaseMessage struct {
	Type ActionType `json:"type"`
}

// Client -> Server

// StartStreamMessage announces a new room.
type StartStreamMessage struct {
	Type   ActionType `json:"type"`
	Stream Room       `json:"stream"`
}

// StreamIDMessage carries only a room id (endStream, joinStream,
// leaveStream, requestChatHistory).
type StreamIDMessage struct {
	Type     ActionType `json:"type"`
	StreamID string     `json:"streamId"`
}

// LiveStatusMessage toggles a room's live flag.
type LiveStatusMessage struct {
	Type     ActionType `json:"type"`
	StreamID string     `json:"streamId"`
	IsLive   bool       `json:"isLive"`
}

// ChatSendMessage posts a chat line.
type ChatSendMessage struct {
	Type     ActionType `json:"type"`
	StreamID string     `json:"streamId"`
	Content  string     `json:"content"`
	Username string     `json:"username"`
}

// Server -> Client

// StreamStartedMessage is broadcast when a room is created.
type StreamStartedMessage struct {
	Type   EventType `json:"type"`
	Stream Room      `json:"stream"`
}

// StreamEndedMessage is broadcast when a room is removed.
type StreamEndedMessage struct {
	Type     EventType `json:"type"`
	StreamID string    `json:"streamId"`
}

// ViewerCountMessage is sent to room members on join and leave.
type ViewerCountMessage struct {
	Type     EventType `json:"type"`
	StreamID string    `json:"streamId"`
	Count    int       `json:"count"`
}

// RoleChangedMessage tells one connection its new role.
type RoleChangedMessage struct {
	Type     EventType `json:"type"`
	StreamID string    `json:"streamId"`
	Role     Role      `json:"role"`
}

// LiveStatusChangedMessage is broadcast when isLive flips.
type LiveStatusChangedMessage struct {
	Type     EventType `json:"type"`
	StreamID string    `json:"streamId"`
	IsLive   bool      `json:"isLive"`
}

// ChatMessageReceived is broadcast for each accepted chat line.
type ChatMessageReceived struct {
	Type     EventType   `json:"type"`
	StreamID string      `json:"streamId"`
	Message  ChatMessage `json:"message"`
}

// ChatHistoryReceived answers requestChatHistory.
type ChatHistoryReceived struct {
	Type     EventType     `json:"type"`
	StreamID string        `json:"streamId"`
	Messages []ChatMessage `json:"messages"`
}

// ErrorMessage reports a failed action to its sender.
type ErrorMessage struct {
	Type       EventType `json:"type"`
	Message    string    `json:"message"`
	StatusCode int       `json:"statusCode"`
}

// NewErrorMessage creates an error frame.
func NewErrorMessage(message string, statusCode int) *ErrorMessage {
	return &ErrorMessage{
		Type:       EventError,
		Message:    message,
		StatusCode: statusCode,
	}
}

// PongMessage answers ping.
type PongMessage struct {
	Type EventType `json:"type"`
}

// DecodeAction reads the type tag of a raw frame.
func DecodeAction(data []byte) (ActionType, error) {
	var base BaseMessage
	if err := json.Unmarshal(data, &base); err != nil {
		return "", Errorf(ErrBadRequest, "Invalid message format")
	}
	if !base.Type.Valid() {
		return "", Errorf(ErrBadRequest, "Unknown message type: %s", base.Type)
	}
	return base.Type, nil
}
