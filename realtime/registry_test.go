package realtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoomNameIsSymmetric(t *testing.T) {
	assert.Equal(t, "u1_u2", RoomName("u1", "u2"))
	assert.Equal(t, "u1_u2", RoomName("u2", "u1"))

	a := "64a1b2c3d4e5f6789abcdef0"
	b := "54a1b2c3d4e5f6789abcdef0"
	assert.Equal(t, RoomName(a, b), RoomName(b, a))
	assert.Equal(t, b+"_"+a, RoomName(a, b))
}

func TestPersonalRoom(t *testing.T) {
	assert.Equal(t, "user_abc", PersonalRoom("abc"))
}

func TestRegistry_JoinLeaveRemove(t *testing.T) {
	r := NewRegistry()
	s1 := &Session{ID: "s1"}
	s2 := &Session{ID: "s2"}

	assert.False(t, r.Join(s1, "room"), "unknown sessions cannot join")

	r.Add(s1)
	r.Add(s2)
	assert.True(t, r.Join(s1, "room"))
	assert.True(t, r.Join(s1, "room"))
	assert.True(t, r.Join(s2, "room"))
	assert.True(t, r.Join(s1, "user_1"))

	assert.ElementsMatch(t, []*Session{s1, s2}, r.Members("room"))
	assert.Equal(t, []string{"room", "user_1"}, r.Rooms(s1))
	assert.Equal(t, 2, r.Len())

	r.Leave(s2, "room")
	assert.Equal(t, []*Session{s1}, r.Members("room"))

	assert.Equal(t, []string{"room", "user_1"}, r.Remove(s1))
	assert.Empty(t, r.Members("room"))
	assert.Empty(t, r.Members("user_1"))
	assert.Equal(t, []*Session{s2}, r.All())
	assert.Nil(t, r.Remove(s1))
	assert.False(t, r.Join(s1, "room"), "removed sessions cannot rejoin")
}
