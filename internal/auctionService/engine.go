package auction

import (
	"sync"

	"auction-house/internal/auctionerrors"
	"auction-house/internal/jobqueue"
	model "auction-house/internal/models"
	"auction-house/internal/registry"
	"auction-house/utils"
)

// Engine is the single long-lived owner of the registries, the job
// queue, the worker pool and the tick driver. Stop tears everything
// down best-effort: workers finish their current job, nothing drains.
type Engine struct {
	users    *registry.UserRegistry
	auctions *registry.AuctionRegistry
	queue    *jobqueue.Queue
	svc      *Service
	ticker   Ticker
	workers  int

	wg       sync.WaitGroup
	done     chan struct{}
	stopOnce sync.Once
}

// NewEngine builds an engine with the given worker count. The queue
// capacity equals the worker count, bounding the jobs in flight. ticker
// may be nil for an engine driven entirely by explicit submissions
// (tests, tools).
func NewEngine(workers int, ticker Ticker) *Engine {
	users := registry.NewUserRegistry()
	auctions := registry.NewAuctionRegistry()
	queue := jobqueue.New(workers)

	return &Engine{
		users:    users,
		auctions: auctions,
		queue:    queue,
		svc:      NewService(users, auctions, queue),
		ticker:   ticker,
		workers:  workers,
		done:     make(chan struct{}),
	}
}

// Users exposes the user registry for the session layer's login path.
func (e *Engine) Users() *registry.UserRegistry {
	return e.users
}

// Auctions exposes the auction registry for seeding at startup.
func (e *Engine) Auctions() *registry.AuctionRegistry {
	return e.auctions
}

// Submit enqueues a job for the worker pool, blocking while the queue
// is full. It returns false once the engine has stopped.
func (e *Engine) Submit(job *model.Job) bool {
	return e.queue.Insert(job)
}

// Start launches the worker pool and, if a ticker is configured, the
// tick loop.
func (e *Engine) Start() {
	for i := 0; i < e.workers; i++ {
		e.wg.Add(1)
		go e.runWorker(i)
	}
	if e.ticker != nil {
		e.wg.Add(1)
		go e.runTicker()
	}
	utils.Info("engine started", map[string]any{"workers": e.workers})
}

// Stop shuts the engine down and waits for workers and the tick loop
// to exit. Safe to call more than once.
func (e *Engine) Stop() {
	e.stopOnce.Do(func() {
		close(e.done)
		if e.ticker != nil {
			e.ticker.Stop()
		}
		e.queue.Close()
	})
	e.wg.Wait()
}

func (e *Engine) runWorker(id int) {
	defer e.wg.Done()
	for {
		job, ok := e.queue.Remove()
		if !ok {
			return
		}
		e.svc.Dispatch(job)
	}
}

func (e *Engine) runTicker() {
	defer e.wg.Done()
	count := 0
	for {
		select {
		case <-e.done:
			return
		case _, ok := <-e.ticker.Ticks():
			if !ok {
				return
			}
			count++
			utils.Info("tick", map[string]any{"count": count})
			e.TickOnce()
		}
	}
}

// TickOnce runs one tick: an atomic sweep decrementing every active
// auction, then a close job for each auction that expired.
func (e *Engine) TickOnce() {
	for _, id := range e.auctions.Tick() {
		e.Submit(NewCloseJob(id))
	}
}

// ActiveAuctions returns snapshots of all auctions that are still
// running, in id order.
func (e *Engine) ActiveAuctions() []model.Auction {
	var out []model.Auction
	e.auctions.ForEach(func(a *model.Auction) {
		if !a.Terminal() {
			out = append(out, *a)
		}
	})
	return out
}

// AuctionByID returns a snapshot of one auction, or
// auctionerrors.ErrAuctionNotFound.
func (e *Engine) AuctionByID(id uint32) (model.Auction, error) {
	a, err := e.auctions.Snapshot(id)
	if err != nil {
		return model.Auction{}, auctionerrors.ErrAuctionNotFound
	}
	return a, nil
}

// OnlineUsers returns the usernames of every online user.
func (e *Engine) OnlineUsers() []string {
	return e.users.OnlineUsers("")
}

// Stats returns online user, active auction and total auction counts.
func (e *Engine) Stats() (online, active, total int) {
	online = len(e.users.OnlineUsers(""))
	e.auctions.ForEach(func(a *model.Auction) {
		total++
		if !a.Terminal() {
			active++
		}
	})
	return online, active, total
}
