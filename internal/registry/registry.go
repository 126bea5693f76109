package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/weiawesome/stream-service/internal/domain"
	"github.com/weiawesome/stream-service/internal/store"
	"github.com/weiawesome/stream-service/pkg/log"
)

// Registry owns room records and role maps.
type Registry struct {
	gw  store.Gateway
	now func() time.Time
}

// New creates a registry backed by gw.
func New(gw store.Gateway) *Registry {
	return &Registry{gw: gw, now: time.Now}
}

// CreateRoom stores room together with a role map naming its creator host.
func (r *Registry) CreateRoom(ctx context.Context, room *domain.Room) error {
	exists, err := r.gw.HashExists(ctx, store.StreamsTable, room.ID)
	if err != nil {
		return err
	}
	if exists {
		return domain.Errorf(domain.ErrRoomExists, "Stream already exists")
	}

	roomData, err := json.Marshal(room)
	if err != nil {
		return fmt.Errorf("failed to marshal room: %w", err)
	}
	meta := &domain.StreamMetadata{
		LastUpdated: r.now().UnixMilli(),
		RoleMap:     map[string]domain.Role{room.Creator: domain.RoleHost},
	}
	metaData, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}

	if err := r.gw.Batch(ctx, func(b store.Batch) {
		b.HashSet(store.StreamsTable, room.ID, string(roomData))
		b.HashSet(store.MetadataTable, room.ID, string(metaData))
	}); err != nil {
		return err
	}

	l := log.Ctx(ctx)
	l.Info().Str(log.FieldStreamID, room.ID).Str("creator", room.Creator).Msg("room created")
	return nil
}

// GetRoom returns the room with id.
func (r *Registry) GetRoom(ctx context.Context, id string) (*domain.Room, error) {
	data, err := r.gw.HashGet(ctx, store.StreamsTable, id)
	if errors.Is(err, store.ErrKeyNotFound) {
		return nil, domain.Errorf(domain.ErrNotFound, "Stream not found")
	}
	if err != nil {
		return nil, err
	}

	var room domain.Room
	if err := json.Unmarshal([]byte(data), &room); err != nil {
		return nil, fmt.Errorf("%w: decode room %s: %w", domain.ErrPersistence, id, err)
	}
	return &room, nil
}

// ListRooms returns every room, in no particular order. Undecodable
// records are skipped.
func (r *Registry) ListRooms(ctx context.Context) ([]domain.Room, error) {
	all, err := r.gw.HashGetAll(ctx, store.StreamsTable)
	if err != nil {
		return nil, err
	}

	rooms := make([]domain.Room, 0, len(all))
	for id, data := range all {
		var room domain.Room
		if err := json.Unmarshal([]byte(data), &room); err != nil {
			l := log.Ctx(ctx)
			l.Warn().Err(err).Str(log.FieldStreamID, id).Msg("skipping undecodable room")
			continue
		}
		rooms = append(rooms, room)
	}
	return rooms, nil
}

// RemoveRoom deletes the room, its role map and its chat history.
func (r *Registry) RemoveRoom(ctx context.Context, id string) error {
	exists, err := r.gw.HashExists(ctx, store.StreamsTable, id)
	if err != nil {
		return err
	}
	if !exists {
		return domain.Errorf(domain.ErrNotFound, "Stream not found")
	}

	if err := r.gw.Batch(ctx, func(b store.Batch) {
		b.HashDelete(store.StreamsTable, id)
		b.HashDelete(store.MetadataTable, id)
		b.Delete(store.MessagesKey(id), store.MembersKey(id))
	}); err != nil {
		return err
	}

	l := log.Ctx(ctx)
	l.Info().Str(log.FieldStreamID, id).Msg("room removed")
	return nil
}

// MutateRoom applies fn to the stored room and writes it back. The write
// only lands if the room still exists, so a concurrent removal is never
// undone. id and creator are restored after fn runs.
func (r *Registry) MutateRoom(ctx context.Context, id string, fn func(*domain.Room)) (*domain.Room, error) {
	room, err := r.GetRoom(ctx, id)
	if err != nil {
		return nil, err
	}

	creator := room.Creator
	fn(room)
	room.ID = id
	room.Creator = creator
	if room.Viewers < 0 {
		room.Viewers = 0
	}

	data, err := json.Marshal(room)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal room: %w", err)
	}

	ok, err := r.gw.HashReplace(ctx, store.StreamsTable, id, string(data))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.Errorf(domain.ErrNotFound, "Stream not found")
	}
	return room, nil
}

// SetRole sets or clears one participant's role. Clearing a role on a room
// without metadata is a no-op.
func (r *Registry) SetRole(ctx context.Context, id, participantID string, role domain.Role) error {
	meta, err := r.metadata(ctx, id)
	if err != nil {
		return err
	}
	if meta == nil {
		if role == domain.RoleNone {
			return nil
		}
		meta = domain.NewStreamMetadata()
	}

	if role == domain.RoleNone {
		if _, ok := meta.RoleMap[participantID]; !ok {
			return nil
		}
		delete(meta.RoleMap, participantID)
	} else {
		meta.RoleMap[participantID] = role
	}
	meta.LastUpdated = r.now().UnixMilli()

	data, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}
	return r.gw.HashSet(ctx, store.MetadataTable, id, string(data))
}

// GetRole returns the participant's role, or RoleNone.
func (r *Registry) GetRole(ctx context.Context, id, participantID string) (domain.Role, error) {
	meta, err := r.metadata(ctx, id)
	if err != nil || meta == nil {
		return domain.RoleNone, err
	}
	return meta.RoleMap[participantID], nil
}

// Metadata returns the role map of a room, or nil if none is stored.
func (r *Registry) Metadata(ctx context.Context, id string) (*domain.StreamMetadata, error) {
	return r.metadata(ctx, id)
}

func (r *Registry) metadata(ctx context.Context, id string) (*domain.StreamMetadata, error) {
	data, err := r.gw.HashGet(ctx, store.MetadataTable, id)
	if errors.Is(err, store.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	meta := domain.NewStreamMetadata()
	if err := json.Unmarshal([]byte(data), meta); err != nil {
		return nil, fmt.Errorf("%w: decode metadata %s: %w", domain.ErrPersistence, id, err)
	}
	if meta.RoleMap == nil {
		meta.RoleMap = make(map[string]domain.Role)
	}
	return meta, nil
}
