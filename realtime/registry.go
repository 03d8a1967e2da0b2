package realtime

import (
	"sort"
	"strings"
	"sync"
)

// LawyersRoom is joined by every lawyer connection
const LawyersRoom = "lawyers"

// PersonalRoom is the room every connection of userID joins on connect
func PersonalRoom(userID string) string {
	return "user_" + userID
}

// RoomName is the conversation room shared by a and b. It is the same for (a, b) and (b, a).
func RoomName(a, b string) string {
	pair := []string{a, b}
	sort.Strings(pair)
	return strings.Join(pair, "_")
}

// Registry maps rooms to the sessions in them. It is safe for concurrent use.
type Registry struct {
	mu          sync.RWMutex
	rooms       map[string]map[*Session]struct{}
	memberships map[*Session]map[string]struct{}
}

// NewRegistry returns an empty Registry
func NewRegistry() *Registry {
	return &Registry{
		rooms:       make(map[string]map[*Session]struct{}),
		memberships: make(map[*Session]map[string]struct{}),
	}
}

// Add tracks s as a live connection that is in no room yet
func (r *Registry) Add(s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.memberships[s]; !ok {
		r.memberships[s] = make(map[string]struct{})
	}
}

// Remove drops s from every room and returns the rooms it was in
func (r *Registry) Remove(s *Session) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	joined, ok := r.memberships[s]
	if !ok {
		return nil
	}
	rooms := make([]string, 0, len(joined))
	for room := range joined {
		rooms = append(rooms, room)
		r.leaveLocked(s, room)
	}
	delete(r.memberships, s)
	sort.Strings(rooms)
	return rooms
}

// Join puts s in room. Joining twice is a no-op. Sessions that were removed cannot join.
func (r *Registry) Join(s *Session, room string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	joined, ok := r.memberships[s]
	if !ok {
		return false
	}
	members, ok := r.rooms[room]
	if !ok {
		members = make(map[*Session]struct{})
		r.rooms[room] = members
	}
	members[s] = struct{}{}
	joined[room] = struct{}{}
	return true
}

// Leave takes s out of room
func (r *Registry) Leave(s *Session, room string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.leaveLocked(s, room)
}

func (r *Registry) leaveLocked(s *Session, room string) {
	if members, ok := r.rooms[room]; ok {
		delete(members, s)
		if len(members) == 0 {
			delete(r.rooms, room)
		}
	}
	if joined, ok := r.memberships[s]; ok {
		delete(joined, room)
	}
}

// Members returns a snapshot of the sessions in room
func (r *Registry) Members(room string) []*Session {
	r.mu.RLock()
	defer r.mu.RUnlock()

	members := r.rooms[room]
	out := make([]*Session, 0, len(members))
	for s := range members {
		out = append(out, s)
	}
	return out
}

// All returns a snapshot of every live session
func (r *Registry) All() []*Session {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Session, 0, len(r.memberships))
	for s := range r.memberships {
		out = append(out, s)
	}
	return out
}

// Rooms returns the rooms s is in, sorted
func (r *Registry) Rooms(s *Session) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	joined := r.memberships[s]
	out := make([]string, 0, len(joined))
	for room := range joined {
		out = append(out, room)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of live sessions
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.memberships)
}
