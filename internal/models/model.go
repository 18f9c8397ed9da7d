package models

// MaxWatchers is the fixed capacity of an auction's watcher set.
const MaxWatchers = 5

// Conn is the reply destination of a live client session. The network
// layer implements it; internally generated jobs carry a nil Conn.
type Conn interface {
	Send(msgType byte, payload string) error
}

// User represents a registered participant. Users are created on first
// login and kept for the lifetime of the process; Conn is rebound on
// every successful login.
type User struct {
	Username string
	Password string
	Conn     Conn
	Balance  int64
	Online   bool
}

// Auction represents one auction listing. An auction with
// RemainingTicks == 0 is terminal: no further bids, watches or leaves
// are accepted, but it stays in the registry for history queries.
type Auction struct {
	ID             uint32
	ItemName       string
	Creator        string
	HighestBidder  string
	BuyNowPrice    uint64
	CurrentBid     uint64
	RemainingTicks uint32
	Watchers       [MaxWatchers]string
	Settled        bool
}

// Terminal reports whether the auction has ended.
func (a *Auction) Terminal() bool {
	return a.RemainingTicks == 0
}

// IsWatching reports whether username occupies a watcher slot.
func (a *Auction) IsWatching(username string) bool {
	for _, w := range a.Watchers {
		if w != "" && w == username {
			return true
		}
	}
	return false
}

// WatcherCount returns the number of occupied watcher slots.
func (a *Auction) WatcherCount() int {
	count := 0
	for _, w := range a.Watchers {
		if w != "" {
			count++
		}
	}
	return count
}

// AddWatcher binds username into a free watcher slot. It returns false
// when all slots are taken. Adding a user that is already watching is a
// no-op that succeeds.
func (a *Auction) AddWatcher(username string) bool {
	if a.IsWatching(username) {
		return true
	}
	for i, w := range a.Watchers {
		if w == "" {
			a.Watchers[i] = username
			return true
		}
	}
	return false
}

// RemoveWatcher clears username's watcher slot if it holds one.
func (a *Auction) RemoveWatcher(username string) {
	for i, w := range a.Watchers {
		if w == username {
			a.Watchers[i] = ""
			return
		}
	}
}

// Job is one unit of work flowing from a session (or the tick driver)
// through the job queue to a worker. Jobs reference entities by
// identifier only; the worker re-resolves them under the registry lock.
type Job struct {
	ID       string // correlation id for logging
	Type     byte
	Conn     Conn // nil for internally generated jobs
	Username string
	Args     []string
}
