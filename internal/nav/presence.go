package nav

import "github.com/tinytelemetry/smileguide/internal/model"

// Presence is the identity state the controller tracks: a user is either
// signed in or not. Fields of the user are never inspected.
type Presence int

const (
	Absent Presence = iota
	Present
)

// PresenceOf maps an optional user to its Presence.
func PresenceOf(u *model.User) Presence {
	if u == nil {
		return Absent
	}
	return Present
}

func (p Presence) String() string {
	if p == Present {
		return "present"
	}
	return "absent"
}

// Edge is the result of comparing two presence snapshots.
type Edge int

const (
	EdgeNone Edge = iota
	EdgeLogin
	EdgeLogout
)

func (e Edge) String() string {
	switch e {
	case EdgeLogin:
		return "login"
	case EdgeLogout:
		return "logout"
	default:
		return "none"
	}
}

var transitions = [2][2]Edge{
	Absent:  {Absent: EdgeNone, Present: EdgeLogin},
	Present: {Absent: EdgeLogout, Present: EdgeNone},
}

// Transition returns the edge produced by moving from one presence to another.
func Transition(from, to Presence) Edge {
	return transitions[from][to]
}
