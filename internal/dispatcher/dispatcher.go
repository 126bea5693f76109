package dispatcher

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/weiawesome/stream-service/internal/audit"
	"github.com/weiawesome/stream-service/internal/domain"
	"github.com/weiawesome/stream-service/internal/events"
	"github.com/weiawesome/stream-service/internal/hub"
	"github.com/weiawesome/stream-service/pkg/log"
)

// Dispatcher authorizes client actions, applies them and publishes the
// resulting events. It is the only place that decides who may do what.
type Dispatcher struct {
	rooms    RoomRegistry
	history  ChatHistory
	sessions Sessions
	bus      Publisher
	now      func() time.Time
	newID    func() string
}

// New creates a dispatcher.
func New(rooms RoomRegistry, history ChatHistory, sessions Sessions, bus Publisher) *Dispatcher {
	return &Dispatcher{
		rooms:    rooms,
		history:  history,
		sessions: sessions,
		bus:      bus,
		now:      time.Now,
		newID:    func() string { return uuid.New().String() },
	}
}

// StartStream creates a room owned by the requester and announces it.
func (d *Dispatcher) StartStream(ctx context.Context, client *hub.Client, msg domain.StartStreamMessage) error {
	room := msg.Stream
	if room.Creator == "" {
		room.Creator = client.ParticipantID
	}
	if room.Creator != client.ParticipantID {
		audit.Log(ctx, audit.ActionDenied, client.ParticipantID, room.ID, "start rejected: creator mismatch")
		return domain.Errorf(domain.ErrUnauthorized, "Unauthorized")
	}
	d.applyDefaults(&room)

	if err := d.rooms.CreateRoom(ctx, &room); err != nil {
		return err
	}

	audit.Log(ctx, audit.ActionStart, client.ParticipantID, room.ID, "stream started")
	d.publish(ctx, client, events.ToEveryone(domain.EventStreamStarted, room.ID, domain.StreamStartedMessage{
		Type:   domain.EventStreamStarted,
		Stream: room,
	}))
	return nil
}

func (d *Dispatcher) applyDefaults(room *domain.Room) {
	if room.ID == "" {
		room.ID = d.newID()
	}
	if room.CreatedAt == "" {
		room.CreatedAt = d.now().UTC().Format(time.RFC3339)
	}
	if room.MarketCap == "" {
		room.MarketCap = domain.DefaultMarketCap
	}
	if room.Thumbnail == "" {
		room.Thumbnail = domain.DefaultThumbnail
	}
	room.Viewers = 0
}

// EndStream removes a room the requester created, with its roles and
// history, and drops every member.
func (d *Dispatcher) EndStream(ctx context.Context, client *hub.Client, streamID string) error {
	if _, err := d.authorizeCreator(ctx, client, streamID); err != nil {
		return err
	}

	if err := d.rooms.RemoveRoom(ctx, streamID); err != nil {
		return err
	}
	dropped := d.sessions.CloseRoom(streamID)

	audit.LogWithDetail(ctx, audit.ActionEnd, client.ParticipantID, streamID, "explicit", "stream ended")
	l := log.Ctx(ctx)
	l.Debug().Str(log.FieldStreamID, streamID).Int("members", dropped).Msg("room closed")

	d.publish(ctx, client, events.ToEveryone(domain.EventStreamEnded, streamID, domain.StreamEndedMessage{
		Type:     domain.EventStreamEnded,
		StreamID: streamID,
	}))
	return nil
}

// UpdateLiveStatus sets isLive on a room the requester created.
func (d *Dispatcher) UpdateLiveStatus(ctx context.Context, client *hub.Client, streamID string, isLive bool) error {
	if _, err := d.authorizeCreator(ctx, client, streamID); err != nil {
		return err
	}

	if _, err := d.rooms.MutateRoom(ctx, streamID, func(room *domain.Room) {
		room.IsLive = isLive
	}); err != nil {
		return err
	}

	audit.LogWithDetail(ctx, audit.ActionLiveStatus, client.ParticipantID, streamID, boolDetail(isLive), "live status changed")
	d.publish(ctx, client, events.ToEveryone(domain.EventLiveStatusChanged, streamID, domain.LiveStatusChangedMessage{
		Type:     domain.EventLiveStatusChanged,
		StreamID: streamID,
		IsLive:   isLive,
	}))
	return nil
}

// JoinStream adds the requester to a room as audience.
func (d *Dispatcher) JoinStream(ctx context.Context, client *hub.Client, streamID string) error {
	if streamID == "" {
		return domain.Errorf(domain.ErrBadRequest, "Stream ID required")
	}

	count, err := d.sessions.Join(ctx, client, streamID)
	if err != nil {
		return err
	}

	audit.Log(ctx, audit.ActionJoin, client.ParticipantID, streamID, "viewer joined")
	d.publish(ctx, client, events.ToRoom(domain.EventViewerJoined, streamID, domain.ViewerCountMessage{
		Type:     domain.EventViewerJoined,
		StreamID: streamID,
		Count:    count,
	}))
	d.publish(ctx, client, events.ToConnection(domain.EventRoleChanged, client.ID, domain.RoleChangedMessage{
		Type:     domain.EventRoleChanged,
		StreamID: streamID,
		Role:     domain.RoleAudience,
	}))
	return nil
}

// LeaveStream removes the requester from a room. Leaving twice is fine.
func (d *Dispatcher) LeaveStream(ctx context.Context, client *hub.Client, streamID string) error {
	if streamID == "" {
		return domain.Errorf(domain.ErrBadRequest, "Stream ID required")
	}

	count, err := d.sessions.Leave(ctx, client, streamID)
	if err != nil {
		return err
	}

	audit.Log(ctx, audit.ActionLeave, client.ParticipantID, streamID, "viewer left")
	d.publish(ctx, client, events.ToRoom(domain.EventViewerLeft, streamID, domain.ViewerCountMessage{
		Type:     domain.EventViewerLeft,
		StreamID: streamID,
		Count:    count,
	}))
	d.publish(ctx, client, events.ToConnection(domain.EventRoleChanged, client.ID, domain.RoleChangedMessage{
		Type:     domain.EventRoleChanged,
		StreamID: streamID,
		Role:     domain.RoleNone,
	}))
	return nil
}

// SendChatMessage records a chat line in an existing room and broadcasts it.
func (d *Dispatcher) SendChatMessage(ctx context.Context, client *hub.Client, msg domain.ChatSendMessage) error {
	if msg.StreamID == "" {
		return domain.Errorf(domain.ErrBadRequest, "Stream ID required")
	}
	if strings.TrimSpace(msg.Content) == "" {
		return domain.Errorf(domain.ErrBadRequest, "Message content required")
	}
	if _, err := d.rooms.GetRoom(ctx, msg.StreamID); err != nil {
		return err
	}

	username := msg.Username
	if username == "" {
		username = client.ParticipantID
	}
	chat := domain.ChatMessage{
		Username:  username,
		Content:   msg.Content,
		Timestamp: d.now().UnixMilli(),
	}
	if err := d.history.Append(ctx, msg.StreamID, chat); err != nil {
		return err
	}

	audit.Log(ctx, audit.ActionSendMessage, client.ParticipantID, msg.StreamID, "chat message sent")
	d.publish(ctx, client, events.ToEveryone(domain.EventChatMessage, msg.StreamID, domain.ChatMessageReceived{
		Type:     domain.EventChatMessage,
		StreamID: msg.StreamID,
		Message:  chat,
	}))
	return nil
}

// RequestChatHistory sends a room's history, newest first, to the requester.
func (d *Dispatcher) RequestChatHistory(ctx context.Context, client *hub.Client, streamID string) error {
	if streamID == "" {
		return domain.Errorf(domain.ErrBadRequest, "Stream ID required")
	}

	messages, err := d.history.List(ctx, streamID)
	if err != nil {
		return err
	}

	d.publish(ctx, client, events.ToConnection(domain.EventChatHistory, client.ID, domain.ChatHistoryReceived{
		Type:     domain.EventChatHistory,
		StreamID: streamID,
		Messages: messages,
	}))
	return nil
}

// Pong answers a heartbeat.
func (d *Dispatcher) Pong(ctx context.Context, client *hub.Client) {
	d.publish(ctx, client, events.ToConnection(domain.EventPong, client.ID, domain.PongMessage{Type: domain.EventPong}))
}

// Disconnect cleans up a closed connection and tells the remaining
// members of each affected room the new count.
func (d *Dispatcher) Disconnect(ctx context.Context, client *hub.Client) {
	counts := d.sessions.Disconnect(ctx, client)

	audit.Log(ctx, audit.ActionDisconnect, client.ParticipantID, "", "connection closed")
	for _, rc := range counts {
		d.publish(ctx, client, events.ToRoom(domain.EventViewerLeft, rc.RoomID, domain.ViewerCountMessage{
			Type:     domain.EventViewerLeft,
			StreamID: rc.RoomID,
			Count:    rc.Count,
		}))
	}
}

// Reject reports a failed action to the connection that sent it.
func (d *Dispatcher) Reject(ctx context.Context, connectionID string, err error) {
	status, message := translate(err)

	l := log.Ctx(ctx)
	evt := l.Warn()
	if status >= 500 {
		evt = l.Error()
	}
	evt.Err(err).Int(log.FieldStatus, status).Msg("action failed")

	d.bus.Publish(ctx, events.ToConnection(domain.EventError, connectionID, domain.NewErrorMessage(message, status)))
}

func (d *Dispatcher) authorizeCreator(ctx context.Context, client *hub.Client, streamID string) (*domain.Room, error) {
	if streamID == "" {
		return nil, domain.Errorf(domain.ErrBadRequest, "Stream ID required")
	}

	room, err := d.rooms.GetRoom(ctx, streamID)
	if err != nil {
		return nil, err
	}
	if room.Creator != client.ParticipantID {
		audit.Log(ctx, audit.ActionDenied, client.ParticipantID, streamID, "creator-only action rejected")
		return nil, domain.Errorf(domain.ErrUnauthorized, "Unauthorized")
	}
	return room, nil
}

func (d *Dispatcher) publish(ctx context.Context, client *hub.Client, e events.Event) {
	e.Actor = client.ParticipantID
	d.bus.Publish(ctx, e)
}

func boolDetail(b bool) string {
	if b {
		return "live"
	}
	return "offline"
}
