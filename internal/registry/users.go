package registry

import (
	"auction-house/internal/auctionerrors"
	model "auction-house/internal/models"
	"auction-house/internal/rwlock"
)

// UserRegistry is the in-memory collection of users, guarded by one
// reader-priority lock. The lock protects entity fields as well as set
// membership; users are never deleted.
type UserRegistry struct {
	lock  rwlock.Lock
	users map[string]*model.User
}

// NewUserRegistry creates an empty user registry.
func NewUserRegistry() *UserRegistry {
	return &UserRegistry{
		users: make(map[string]*model.User),
	}
}

// Login authenticates a connection. An unknown username registers a new
// user with a zero balance. A user that is already online is rejected
// before the password is checked, matching the login protocol. On
// success the user is marked online and its connection rebound.
func (r *UserRegistry) Login(username, password string, conn model.Conn) error {
	r.lock.AcquireWrite()
	defer r.lock.ReleaseWrite()

	user, ok := r.users[username]
	if !ok {
		r.users[username] = &model.User{
			Username: username,
			Password: password,
			Conn:     conn,
			Online:   true,
		}
		return nil
	}

	if user.Online {
		return auctionerrors.ErrUserLoggedIn
	}
	if user.Password != password {
		return auctionerrors.ErrWrongPassword
	}

	user.Online = true
	user.Conn = conn
	return nil
}

// SetOffline clears the online flag on logout or disconnect.
func (r *UserRegistry) SetOffline(username string) {
	r.lock.AcquireWrite()
	defer r.lock.ReleaseWrite()

	if user, ok := r.users[username]; ok {
		user.Online = false
	}
}

// Balance returns the user's current balance.
func (r *UserRegistry) Balance(username string) int64 {
	r.lock.AcquireRead()
	defer r.lock.ReleaseRead()

	if user, ok := r.users[username]; ok {
		return user.Balance
	}
	return 0
}

// Settle transfers amount from the winning bidder to the auction
// creator in one write-lock section. Either side may be missing (a
// seeded auction's creator is not a real user); the present side is
// still adjusted.
func (r *UserRegistry) Settle(winner, creator string, amount int64) {
	r.lock.AcquireWrite()
	defer r.lock.ReleaseWrite()

	if user, ok := r.users[winner]; ok {
		user.Balance -= amount
	}
	if user, ok := r.users[creator]; ok {
		user.Balance += amount
	}
}

// OnlineUsers returns the usernames of all online users except the
// caller.
func (r *UserRegistry) OnlineUsers(except string) []string {
	r.lock.AcquireRead()
	defer r.lock.ReleaseRead()

	var names []string
	for _, user := range r.users {
		if user.Online && user.Username != except {
			names = append(names, user.Username)
		}
	}
	return names
}

// ForEach calls fn for every user while holding the read lock. fn must
// not call back into the registry.
func (r *UserRegistry) ForEach(fn func(*model.User)) {
	r.lock.AcquireRead()
	defer r.lock.ReleaseRead()

	for _, user := range r.users {
		fn(user)
	}
}
