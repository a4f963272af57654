package core

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dkeye/Notes/internal/domain"
)

func ids(ps []domain.Participant) []domain.SessionID {
	out := make([]domain.SessionID, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.ID)
	}
	return out
}

func TestRegistry_JoinLeave(t *testing.T) {
	req := require.New(t)
	reg := NewRegistry()

	// Given two sessions joining the same room
	req.Equal([]domain.SessionID{"a"}, ids(reg.Join("r1", "a", "ann")))
	users := reg.Join("r1", "b", "bob")

	// Then both are listed in join order
	req.Equal([]domain.SessionID{"a", "b"}, ids(users))
	req.Equal("bob", users[1].Username)

	// When the first leaves
	room, remaining, ok := reg.Leave("a")

	// Then the room survives with the other member
	req.True(ok)
	req.Equal(domain.RoomID("r1"), room)
	req.Equal([]domain.SessionID{"b"}, ids(remaining))

	// When the last leaves the room disappears
	_, remaining, ok = reg.Leave("b")
	req.True(ok)
	req.NotNil(remaining)
	req.Empty(remaining)
	req.Nil(reg.Members("r1"))
	req.Empty(reg.Rooms())
}

func TestRegistry_LeaveUnknownIsNoop(t *testing.T) {
	req := require.New(t)
	reg := NewRegistry()
	reg.Join("r1", "a", "ann")

	_, _, ok := reg.Leave("ghost")

	req.False(ok)
	req.Len(reg.Members("r1"), 1)
}

func TestRegistry_JoinMovesBetweenRooms(t *testing.T) {
	req := require.New(t)
	reg := NewRegistry()
	reg.Join("r1", "a", "ann")
	reg.Join("r1", "b", "bob")

	users := reg.Join("r2", "a", "ann")

	req.Equal([]domain.SessionID{"a"}, ids(users))
	req.Equal([]domain.SessionID{"b"}, ids(reg.Members("r1")))
	room, ok := reg.RoomOf("a")
	req.True(ok)
	req.Equal(domain.RoomID("r2"), room)
}

func TestRegistry_RejoinKeepsPosition(t *testing.T) {
	req := require.New(t)
	reg := NewRegistry()
	reg.Join("r1", "a", "ann")
	reg.Join("r1", "b", "bob")
	reg.Join("r1", "c", "cid")

	users := reg.Join("r1", "b", "bobby")

	req.Equal([]domain.SessionID{"a", "b", "c"}, ids(users))
	req.Equal("bobby", users[1].Username)
}

func TestRegistry_DuplicateNamesAreDistinct(t *testing.T) {
	req := require.New(t)
	reg := NewRegistry()
	reg.Join("r1", "a", "ann")
	users := reg.Join("r1", "b", "ann")

	req.Len(users, 2)
}

func TestRegistry_SnapshotsAreCopies(t *testing.T) {
	req := require.New(t)
	reg := NewRegistry()
	users := reg.Join("r1", "a", "ann")

	users[0].Username = "mallory"

	p, ok := reg.Participant("a")
	req.True(ok)
	req.Equal("ann", p.Username)
}

func TestRegistry_Rooms(t *testing.T) {
	req := require.New(t)
	reg := NewRegistry()
	reg.Join("zeta", "a", "ann")
	reg.Join("alpha", "b", "bob")
	reg.Join("alpha", "c", "cid")

	req.Equal([]RoomInfo{{ID: "alpha", MemberCount: 2}, {ID: "zeta", MemberCount: 1}}, reg.Rooms())
}

// Random join/leave sequences must keep every session in at most one room
// and never leave an empty room behind.
func TestRegistry_RandomSequencesKeepInvariants(t *testing.T) {
	req := require.New(t)
	rng := rand.New(rand.NewSource(7))
	reg := NewRegistry()
	model := map[domain.SessionID]domain.RoomID{}

	for step := 0; step < 2000; step++ {
		sid := domain.SessionID(fmt.Sprintf("s%d", rng.Intn(12)))
		if rng.Intn(3) == 0 {
			reg.Leave(sid)
			delete(model, sid)
		} else {
			room := domain.RoomID(fmt.Sprintf("r%d", rng.Intn(4)))
			reg.Join(room, sid, string(sid))
			model[sid] = room
		}

		seen := map[domain.SessionID]int{}
		total := 0
		for _, info := range reg.Rooms() {
			members := reg.Members(info.ID)
			req.NotEmpty(members, "room %s is empty", info.ID)
			for _, p := range members {
				seen[p.ID]++
				req.Equal(info.ID, model[p.ID])
			}
			total += len(members)
		}
		req.Equal(len(model), total)
		for sid, n := range seen {
			req.Equal(1, n, "session %s listed %d times", sid, n)
		}
	}
}
