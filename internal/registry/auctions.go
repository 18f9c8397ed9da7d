package registry

import (
	"auction-house/internal/auctionerrors"
	model "auction-house/internal/models"
	"auction-house/internal/rwlock"
)

// AuctionRegistry is the in-memory collection of auctions, guarded by
// one coarse reader-priority lock. Ids are assigned monotonically under
// the write lock and never reused; closed auctions are kept for
// history queries.
type AuctionRegistry struct {
	lock     rwlock.Lock
	nextID   uint32
	auctions []*model.Auction
}

// NewAuctionRegistry creates an empty auction registry. The first
// auction gets id 1.
func NewAuctionRegistry() *AuctionRegistry {
	return &AuctionRegistry{nextID: 1}
}

// Insert assigns the next id to the auction and adds it, returning the
// assigned id.
func (r *AuctionRegistry) Insert(a *model.Auction) uint32 {
	r.lock.AcquireWrite()
	defer r.lock.ReleaseWrite()

	a.ID = r.nextID
	r.nextID++
	r.auctions = append(r.auctions, a)
	return a.ID
}

// Snapshot returns a copy of the auction's current state, or
// ErrAuctionNotFound.
func (r *AuctionRegistry) Snapshot(id uint32) (model.Auction, error) {
	r.lock.AcquireRead()
	defer r.lock.ReleaseRead()

	for _, a := range r.auctions {
		if a.ID == id {
			return *a, nil
		}
	}
	return model.Auction{}, auctionerrors.ErrAuctionNotFound
}

// Mutate runs fn against the named auction under the write lock. It
// returns ErrAuctionNotFound if no such auction exists, otherwise fn's
// result. All field mutation of a located auction goes through here.
func (r *AuctionRegistry) Mutate(id uint32, fn func(*model.Auction) error) error {
	r.lock.AcquireWrite()
	defer r.lock.ReleaseWrite()

	for _, a := range r.auctions {
		if a.ID == id {
			return fn(a)
		}
	}
	return auctionerrors.ErrAuctionNotFound
}

// ForEach calls fn for every auction in insertion (id) order while
// holding the read lock. fn must not call back into the registry.
func (r *AuctionRegistry) ForEach(fn func(*model.Auction)) {
	r.lock.AcquireRead()
	defer r.lock.ReleaseRead()

	for _, a := range r.auctions {
		fn(a)
	}
}

// Tick decrements every active auction's remaining tick counter in one
// atomic write-lock sweep and returns the ids that reached zero. The
// caller enqueues the close jobs after the sweep; enqueueing under the
// lock could block against a full queue while workers wait on this
// same lock.
func (r *AuctionRegistry) Tick() []uint32 {
	r.lock.AcquireWrite()
	defer r.lock.ReleaseWrite()

	var expired []uint32
	for _, a := range r.auctions {
		if a.RemainingTicks == 0 {
			continue
		}
		a.RemainingTicks--
		if a.RemainingTicks == 0 {
			expired = append(expired, a.ID)
		}
	}
	return expired
}
