package audit

import (
	"context"

	"github.com/weiawesome/stream-service/pkg/log"
)

// Audit actions for state-changing requests.
const (
	ActionConnect     = "session.connect"
	ActionDisconnect  = "session.disconnect"
	ActionStart       = "stream.start"
	ActionEnd         = "stream.end"
	ActionLiveStatus  = "stream.live_status"
	ActionJoin        = "stream.join"
	ActionLeave       = "stream.leave"
	ActionSendMessage = "chat.send_message"
	ActionDenied      = "access.denied"
)

// Field constants for audit entries.
const (
	FieldDetail = "detail"
)

// Log emits a structured audit log entry via the context logger.
func Log(ctx context.Context, action, participantID, streamID, msg string) {
	l := log.Ctx(ctx)
	l.Info().
		Str(log.FieldLogType, log.LogTypeAudit).
		Str(log.FieldAction, action).
		Str(log.FieldParticipantID, participantID).
		Str(log.FieldStreamID, streamID).
		Msg(msg)
}

// LogWithDetail emits an audit log with extra detail field.
func LogWithDetail(ctx context.Context, action, participantID, streamID, detail, msg string) {
	l := log.Ctx(ctx)
	l.Info().
		Str(log.FieldLogType, log.LogTypeAudit).
		Str(log.FieldAction, action).
		Str(log.FieldParticipantID, participantID).
		Str(log.FieldStreamID, streamID).
		Str(FieldDetail, detail).
		Msg(msg)
}
