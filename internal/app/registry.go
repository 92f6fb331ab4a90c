package app

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/dkeye/watchparty/internal/core"
	"github.com/dkeye/watchparty/internal/domain"
	"github.com/rs/zerolog/log"
)

var (
	ErrRoomNotFound    = errors.New("room not found")
	ErrNotMember       = errors.New("not a member of room")
	ErrSessionNotBound = errors.New("session not bound")
)

type sessionEntry struct {
	Session core.MemberSession
	Cancel  context.CancelFunc
	Rooms   map[domain.RoomKey]struct{}
}

type roomEntry struct {
	room    *domain.Room
	members map[core.SessionID]struct{}
}

// Registry holds every room and every bound session of the process.
// A single mutex linearizes all room mutations. It is held for map work only,
// callers fan out after the call returns.
type Registry struct {
	mu       sync.RWMutex
	sessions map[core.SessionID]*sessionEntry
	rooms    map[domain.RoomKey]*roomEntry
}

func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[core.SessionID]*sessionEntry),
		rooms:    make(map[domain.RoomKey]*roomEntry),
	}
}

// JoinResult is what a join hands back for the unicast snapshot and the
// userJoined broadcast.
type JoinResult struct {
	Self     core.MemberSession
	Snapshot domain.PlaybackState
	Others   []core.MemberSession
	Created  bool
	Rejoined bool
}

// Departure lists who is left in a room after a member went away.
type Departure struct {
	Room      domain.RoomKey
	Remaining []core.MemberSession
	Deleted   bool
}

func (r *Registry) Bind(sid core.SessionID, sess core.MemberSession, cancel context.CancelFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[sid] = &sessionEntry{
		Session: sess,
		Cancel:  cancel,
		Rooms:   make(map[domain.RoomKey]struct{}),
	}
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Msg("bound session")
}

func (r *Registry) GetSession(sid core.SessionID) (core.MemberSession, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if e, ok := r.sessions[sid]; ok {
		return e.Session, true
	}
	return nil, false
}

// RoomsOf returns the rooms sid is currently a member of, sorted.
func (r *Registry) RoomsOf(sid core.SessionID) []domain.RoomKey {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.sessions[sid]
	if !ok {
		return nil
	}
	out := make([]domain.RoomKey, 0, len(e.Rooms))
	for key := range e.Rooms {
		out = append(out, key)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Get returns a copy of the playback state of key. Absent is not an error.
func (r *Registry) Get(key domain.RoomKey) (domain.PlaybackState, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.rooms[key]
	if !ok {
		return domain.PlaybackState{}, false
	}
	return e.room.Snapshot(), true
}

// GetOrCreate returns the playback state of key, inserting a default room when
// absent. The new room has no members until AddMember or Join; callers that
// never add one leave it for the next RemoveMember on key to collect.
func (r *Registry) GetOrCreate(key domain.RoomKey) domain.PlaybackState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.getOrCreateLocked(key).room.Snapshot()
}

// AddMember is an idempotent add that creates the room on first use.
func (r *Registry) AddMember(key domain.RoomKey, sid core.SessionID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.addMemberLocked(key, sid)
}

// RemoveMember is idempotent and deletes the room once it is empty.
func (r *Registry) RemoveMember(key domain.RoomKey, sid core.SessionID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.removeMemberLocked(key, sid)
}

// Join adds sid to key and returns the snapshot for the joiner together with
// the other members to notify. A session that is no longer bound (it
// disconnected while the join was in flight) is refused.
//
// deliver, when set, runs under the lock so the snapshot is queued on the
// joiner before any later room event. It must not block.
func (r *Registry) Join(sid core.SessionID, key domain.RoomKey, deliver func(core.MemberSession, domain.PlaybackState)) (JoinResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[sid]
	if !ok {
		return JoinResult{}, ErrSessionNotBound
	}
	_, existed := r.rooms[key]
	e, added := r.addMemberLocked(key, sid)
	res := JoinResult{
		Self:     s.Session,
		Snapshot: e.room.Snapshot(),
		Others:   r.membersLocked(e, sid),
		Created:  !existed,
		Rejoined: !added,
	}
	if deliver != nil {
		deliver(res.Self, res.Snapshot)
	}
	return res, nil
}

// Leave removes sid from key and reports the remaining members.
func (r *Registry) Leave(sid core.SessionID, key domain.RoomKey) (Departure, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.rooms[key]
	if !ok {
		return Departure{}, ErrRoomNotFound
	}
	if _, ok := e.members[sid]; !ok {
		return Departure{}, ErrNotMember
	}
	deleted := r.removeMemberLocked(key, sid)
	return Departure{
		Room:      key,
		Remaining: r.membersLocked(e, ""),
		Deleted:   deleted,
	}, nil
}

// Update applies fn to the room under the lock and returns every member,
// sender included, so the caller can pick its audience.
func (r *Registry) Update(sid core.SessionID, key domain.RoomKey, fn func(*domain.Room) error) ([]core.MemberSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, err := r.memberRoomLocked(sid, key)
	if err != nil {
		return nil, err
	}
	if err := fn(e.room); err != nil {
		return nil, err
	}
	return r.membersLocked(e, ""), nil
}

// Members returns every member of key, provided sid is one of them.
func (r *Registry) Members(sid core.SessionID, key domain.RoomKey) ([]core.MemberSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, err := r.memberRoomLocked(sid, key)
	if err != nil {
		return nil, err
	}
	return r.membersLocked(e, ""), nil
}

// Disconnect unbinds sid and drops it from every room it joined, walking the
// reverse index rather than every room.
func (r *Registry) Disconnect(sid core.SessionID) []Departure {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[sid]
	if !ok {
		return nil
	}
	out := make([]Departure, 0, len(s.Rooms))
	for key := range s.Rooms {
		e := r.rooms[key]
		deleted := r.removeMemberLocked(key, sid)
		d := Departure{Room: key, Deleted: deleted}
		if e != nil {
			d.Remaining = r.membersLocked(e, "")
		}
		out = append(out, d)
	}
	delete(r.sessions, sid)
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Int("rooms", len(out)).Msg("unbind session")
	return out
}

// Stats counts rooms and memberships. Read lock only.
func (r *Registry) Stats() core.Stats {
	r.mu.RLock()
	defer r.mu.RUnlock()
	st := core.Stats{ActiveRooms: len(r.rooms)}
	for _, e := range r.rooms {
		st.TotalUsers += len(e.members)
	}
	return st
}

func (r *Registry) List() []core.RoomInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]core.RoomInfo, 0, len(r.rooms))
	for _, e := range r.rooms {
		out = append(out, infoOf(e))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (r *Registry) Info(key domain.RoomKey) (core.RoomInfo, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.rooms[key]
	if !ok {
		return core.RoomInfo{}, false
	}
	return infoOf(e), true
}

func (r *Registry) Cancel(sid core.SessionID) bool {
	r.mu.RLock()
	e, ok := r.sessions[sid]
	r.mu.RUnlock()
	if !ok {
		return false
	}
	if e.Cancel != nil {
		e.Cancel()
	}
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Msg("canceled session")
	return true
}

// CancelAll cancels every bound session; used on shutdown.
func (r *Registry) CancelAll() int {
	r.mu.RLock()
	cancels := make([]context.CancelFunc, 0, len(r.sessions))
	for _, e := range r.sessions {
		if e.Cancel != nil {
			cancels = append(cancels, e.Cancel)
		}
	}
	r.mu.RUnlock()
	for _, cancel := range cancels {
		cancel()
	}
	return len(cancels)
}

func (r *Registry) getOrCreateLocked(key domain.RoomKey) *roomEntry {
	if e, ok := r.rooms[key]; ok {
		return e
	}
	e := &roomEntry{
		room:    domain.NewRoom(key),
		members: make(map[core.SessionID]struct{}),
	}
	r.rooms[key] = e
	log.Info().Str("module", "app.registry").Str("room", string(key)).Msg("room created")
	return e
}

func (r *Registry) addMemberLocked(key domain.RoomKey, sid core.SessionID) (*roomEntry, bool) {
	e := r.getOrCreateLocked(key)
	if _, ok := e.members[sid]; ok {
		return e, false
	}
	e.members[sid] = struct{}{}
	if s, ok := r.sessions[sid]; ok {
		s.Rooms[key] = struct{}{}
	}
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Str("room", string(key)).Int("members", len(e.members)).Msg("member added")
	return e, true
}

func (r *Registry) removeMemberLocked(key domain.RoomKey, sid core.SessionID) bool {
	if s, ok := r.sessions[sid]; ok {
		delete(s.Rooms, key)
	}
	e, ok := r.rooms[key]
	if !ok {
		return false
	}
	if _, ok := e.members[sid]; ok {
		delete(e.members, sid)
		log.Info().Str("module", "app.registry").Str("sid", string(sid)).Str("room", string(key)).Int("members", len(e.members)).Msg("member removed")
	}
	if len(e.members) > 0 {
		return false
	}
	delete(r.rooms, key)
	log.Info().Str("module", "app.registry").Str("room", string(key)).Msg("room deleted")
	return true
}

func (r *Registry) memberRoomLocked(sid core.SessionID, key domain.RoomKey) (*roomEntry, error) {
	e, ok := r.rooms[key]
	if !ok {
		return nil, ErrRoomNotFound
	}
	if _, ok := e.members[sid]; !ok {
		return nil, ErrNotMember
	}
	return e, nil
}

// membersLocked resolves member ids to live sessions, skipping except.
func (r *Registry) membersLocked(e *roomEntry, except core.SessionID) []core.MemberSession {
	out := make([]core.MemberSession, 0, len(e.members))
	for sid := range e.members {
		if sid == except {
			continue
		}
		if s, ok := r.sessions[sid]; ok {
			out = append(out, s.Session)
		}
	}
	return out
}

func infoOf(e *roomEntry) core.RoomInfo {
	s := e.room.Snapshot()
	return core.RoomInfo{
		Name:        e.room.Key,
		MemberCount: len(e.members),
		IsPlaying:   s.IsPlaying,
		CurrentTime: s.CurrentTime,
		VideoURL:    s.VideoURL,
	}
}
