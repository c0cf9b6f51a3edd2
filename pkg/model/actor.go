package model

// Actor is the identity attempting an operation, either an authenticated user
// or anonymous. Core operations receive it explicitly rather than reading
// identity from ambient state.
type Actor struct {
	user *User
}

// Anonymous returns an actor without an identity.
func Anonymous() Actor {
	return Actor{}
}

// NewActor returns an actor backed by an authenticated user.
func NewActor(user *User) Actor {
	return Actor{user: user}
}

func (a Actor) IsAuthenticated() bool {
	return a.user != nil
}

// User returns the authenticated user, or false for an anonymous actor.
func (a Actor) User() (*User, bool) {
	if a.user == nil {
		return nil, false
	}
	return a.user, true
}

// Is reports whether the actor is the user with the given id. Anonymous
// actors are nobody.
func (a Actor) Is(userID uint) bool {
	return a.user != nil && a.user.ID == userID
}
