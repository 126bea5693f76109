package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/weiawesome/stream-service/pkg/log"
)

func TestLogWritesAuditEntry(t *testing.T) {
	r := require.New(t)

	var buf bytes.Buffer
	ctx := log.WithLogger(context.Background(), log.New(log.Config{Level: "info"}, &buf))

	LogWithDetail(ctx, ActionEnd, "alice", "s1", "explicit", "stream ended")

	var entry map[string]interface{}
	r.NoError(json.Unmarshal(buf.Bytes(), &entry))
	r.Equal(log.LogTypeAudit, entry[log.FieldLogType])
	r.Equal(ActionEnd, entry[log.FieldAction])
	r.Equal("alice", entry[log.FieldParticipantID])
	r.Equal("s1", entry[log.FieldStreamID])
	r.Equal("explicit", entry[FieldDetail])
	r.Equal("stream ended", entry["message"])
}
