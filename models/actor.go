package models

type Role string

const (
	RoleUser     Role = "USER"
	RoleProvider Role = "PROVIDER"
	RoleAdmin    Role = "ADMIN"
)

// Actor is the authenticated identity a request runs as.
type Actor struct {
	ID   int64
	Role Role
}

// Is reports whether the actor is the given role and id.
func (a Actor) Is(role Role, id int64) bool {
	return a.Role == role && a.ID == id
}

// Receiver returns the inbox owned by the actor. Admins have no inbox.
func (a Actor) Receiver() (Receiver, bool) {
	switch a.Role {
	case RoleUser:
		return Receiver{ID: a.ID, Type: ReceiverUser}, true
	case RoleProvider:
		return Receiver{ID: a.ID, Type: ReceiverProvider}, true
	}
	return Receiver{}, false
}
