package auction

import (
	"strconv"
	"strings"

	"auction-house/internal/auctionerrors"
	"auction-house/internal/jobqueue"
	model "auction-house/internal/models"
	"auction-house/internal/protocol"
	"auction-house/internal/registry"
	"auction-house/utils"
)

// Service implements the business rules for every job type. Handlers
// validate argument arity, run the auction lifecycle state machine
// against the registries, reply to the originating connection and
// broadcast to watchers.
type Service struct {
	users    *registry.UserRegistry
	auctions *registry.AuctionRegistry
	queue    *jobqueue.Queue
}

// NewService creates a Service over the given registries. The queue
// receives the internal close jobs synthesized by the buy-now path.
func NewService(users *registry.UserRegistry, auctions *registry.AuctionRegistry, queue *jobqueue.Queue) *Service {
	return &Service{
		users:    users,
		auctions: auctions,
		queue:    queue,
	}
}

// Dispatch executes one job. Unknown job types get ESERV.
func (s *Service) Dispatch(job *model.Job) {
	switch job.Type {
	case protocol.TypeAuctionCreate:
		s.handleCreate(job)
	case protocol.TypeAuctionWatch:
		s.handleWatch(job)
	case protocol.TypeAuctionLeave:
		s.handleLeave(job)
	case protocol.TypeAuctionBid:
		s.handleBid(job)
	case protocol.TypeAuctionClosed:
		s.handleClose(job)
	case protocol.TypeAuctionList:
		s.handleList(job)
	case protocol.TypeUserList:
		s.handleUserList(job)
	case protocol.TypeUserWins:
		s.handleUserWins(job)
	case protocol.TypeUserSales:
		s.handleUserSales(job)
	case protocol.TypeUserBalance:
		s.handleUserBalance(job)
	default:
		s.reply(job, protocol.TypeErrServ, "")
		s.audit(job, protocol.TypeErrServ, nil)
	}
}

// handleCreate validates and registers a new auction, replying with the
// assigned id.
func (s *Service) handleCreate(job *model.Job) {
	if !s.checkArity(job, 3) {
		return
	}

	itemName := job.Args[0]
	duration, derr := strconv.ParseUint(job.Args[1], 10, 32)
	buyNow, berr := strconv.ParseUint(job.Args[2], 10, 64)

	if derr != nil || berr != nil || duration < 1 || itemName == "" {
		s.reply(job, protocol.TypeErrInvalidArg, "")
		s.audit(job, protocol.TypeErrInvalidArg, map[string]any{"item": itemName})
		return
	}

	auction := &model.Auction{
		ItemName:       itemName,
		Creator:        job.Username,
		BuyNowPrice:    buyNow,
		RemainingTicks: uint32(duration),
	}
	id := s.auctions.Insert(auction)

	s.reply(job, protocol.TypeAuctionCreate, strconv.FormatUint(uint64(id), 10))
	s.audit(job, protocol.TypeAuctionCreate, map[string]any{
		"auction_id": id,
		"item":       itemName,
		"duration":   duration,
		"buy_now":    buyNow,
	})
}

// handleWatch subscribes the acting user to an auction's broadcasts.
func (s *Service) handleWatch(job *model.Job) {
	if !s.checkArity(job, 1) {
		return
	}
	id := parseAuctionID(job.Args[0])

	var itemName string
	var buyNow uint64
	err := s.auctions.Mutate(id, func(a *model.Auction) error {
		if a.Terminal() {
			return auctionerrors.ErrAuctionNotFound
		}
		if !a.AddWatcher(job.Username) {
			return auctionerrors.ErrWatchersFull
		}
		itemName = a.ItemName
		buyNow = a.BuyNowPrice
		return nil
	})
	if err != nil {
		s.replyError(job, err, map[string]any{"auction_id": id})
		return
	}

	payload := itemName + protocol.ArgDelim + strconv.FormatUint(buyNow, 10)
	s.reply(job, protocol.TypeAuctionWatch, payload)
	s.audit(job, protocol.TypeAuctionWatch, map[string]any{"auction_id": id})
}

// handleLeave unsubscribes the acting user. Leaving an auction the user
// was not watching still replies OK.
func (s *Service) handleLeave(job *model.Job) {
	if !s.checkArity(job, 1) {
		return
	}
	id := parseAuctionID(job.Args[0])

	err := s.auctions.Mutate(id, func(a *model.Auction) error {
		if a.Terminal() {
			return auctionerrors.ErrAuctionNotFound
		}
		a.RemoveWatcher(job.Username)
		return nil
	})
	if err != nil {
		s.replyError(job, err, map[string]any{"auction_id": id})
		return
	}

	s.reply(job, protocol.TypeOK, "")
	s.audit(job, protocol.TypeOK, map[string]any{"auction_id": id})
}

// handleBid applies a bid. A bid reaching a nonzero buy-now price ends
// the auction immediately: the bidder is acknowledged and settlement is
// deferred to an internal close job. A normal raise broadcasts an
// update to every watcher before the bidder's OK.
func (s *Service) handleBid(job *model.Job) {
	if !s.checkArity(job, 2) {
		return
	}
	id := parseAuctionID(job.Args[0])
	amount, err := strconv.ParseUint(job.Args[1], 10, 64)
	if err != nil {
		// Unparseable amounts behave like a zero bid.
		amount = 0
	}

	var buyNowHit bool
	var itemName string
	var watchers [model.MaxWatchers]string
	merr := s.auctions.Mutate(id, func(a *model.Auction) error {
		if a.Terminal() {
			return auctionerrors.ErrAuctionNotFound
		}
		if a.Creator == job.Username || !a.IsWatching(job.Username) {
			return auctionerrors.ErrBidDenied
		}
		if amount <= a.CurrentBid {
			return auctionerrors.ErrBidTooLow
		}

		a.CurrentBid = amount
		a.HighestBidder = job.Username
		if a.BuyNowPrice != 0 && amount >= a.BuyNowPrice {
			a.RemainingTicks = 0
			buyNowHit = true
		}
		itemName = a.ItemName
		watchers = a.Watchers
		return nil
	})
	if merr != nil {
		s.replyError(job, merr, map[string]any{"auction_id": id, "amount": amount})
		return
	}

	if buyNowHit {
		s.reply(job, protocol.TypeOK, "")
		s.audit(job, protocol.TypeOK, map[string]any{"auction_id": id, "amount": amount, "buy_now": true})
		s.queue.Insert(NewCloseJob(id))
		return
	}

	payload := strings.Join([]string{
		strconv.FormatUint(uint64(id), 10),
		itemName,
		job.Username,
		strconv.FormatUint(amount, 10),
	}, protocol.ArgDelim)
	s.broadcast(watchers, protocol.TypeAuctionUpdate, payload)

	s.reply(job, protocol.TypeOK, "")
	s.audit(job, protocol.TypeOK, map[string]any{"auction_id": id, "amount": amount})
}

// handleClose settles an auction exactly once and notifies every
// watcher. Close is internal: only jobs synthesized by the tick driver
// or the buy-now path may settle, and those never reply to a
// connection. A duplicate close for the same auction is a no-op.
func (s *Service) handleClose(job *model.Job) {
	// Only internally synthesized jobs may close an auction. A job
	// carrying a connection came from a client and is refused.
	if job.Conn != nil {
		s.reply(job, protocol.TypeErrServ, "")
		s.audit(job, protocol.TypeErrServ, map[string]any{"external_close": true})
		return
	}
	if len(job.Args) != 1 {
		s.audit(job, protocol.TypeErrServ, nil)
		return
	}
	id := parseAuctionID(job.Args[0])

	var winner, creator string
	var amount uint64
	var watchers [model.MaxWatchers]string
	alreadySettled := false
	err := s.auctions.Mutate(id, func(a *model.Auction) error {
		if a.Settled {
			alreadySettled = true
			return nil
		}
		a.Settled = true
		winner = a.HighestBidder
		creator = a.Creator
		amount = a.CurrentBid
		watchers = a.Watchers
		return nil
	})
	if err != nil {
		s.audit(job, protocol.TypeErrNotFound, map[string]any{"auction_id": id})
		return
	}
	if alreadySettled {
		s.audit(job, protocol.TypeOK, map[string]any{"auction_id": id, "duplicate": true})
		return
	}

	idStr := strconv.FormatUint(uint64(id), 10)
	var payload string
	if winner != "" {
		s.users.Settle(winner, creator, int64(amount))
		payload = strings.Join([]string{idStr, winner, strconv.FormatUint(amount, 10)}, protocol.ArgDelim)
	} else {
		payload = strings.Join([]string{idStr, "", ""}, protocol.ArgDelim)
	}
	s.broadcast(watchers, protocol.TypeAuctionClosed, payload)
	s.audit(job, protocol.TypeAuctionClosed, map[string]any{"auction_id": id, "winner": winner, "amount": amount})
}

// handleList reports all active auctions, one record per line. An empty
// payload is a valid reply when nothing is active.
func (s *Service) handleList(job *model.Job) {
	if !s.checkArity(job, 0) {
		return
	}

	var b strings.Builder
	s.auctions.ForEach(func(a *model.Auction) {
		if a.Terminal() {
			return
		}
		b.WriteString(strings.Join([]string{
			strconv.FormatUint(uint64(a.ID), 10),
			a.ItemName,
			strconv.FormatUint(a.BuyNowPrice, 10),
			strconv.Itoa(a.WatcherCount()),
			strconv.FormatUint(a.CurrentBid, 10),
			strconv.FormatUint(uint64(a.RemainingTicks), 10),
		}, protocol.FieldDelim))
		b.WriteString(protocol.RecordDelim)
	})

	s.reply(job, protocol.TypeAuctionList, b.String())
	s.audit(job, protocol.TypeAuctionList, nil)
}

// handleUserList reports every online user except the caller.
func (s *Service) handleUserList(job *model.Job) {
	if !s.checkArity(job, 0) {
		return
	}

	names := s.users.OnlineUsers(job.Username)
	payload := ""
	if len(names) > 0 {
		payload = strings.Join(names, protocol.RecordDelim) + protocol.RecordDelim
	}

	s.reply(job, protocol.TypeUserList, payload)
	s.audit(job, protocol.TypeUserList, nil)
}

// handleUserWins reports the terminal auctions won by the caller.
func (s *Service) handleUserWins(job *model.Job) {
	if !s.checkArity(job, 0) {
		return
	}

	var b strings.Builder
	s.auctions.ForEach(func(a *model.Auction) {
		if !a.Terminal() || a.HighestBidder != job.Username {
			return
		}
		b.WriteString(strings.Join([]string{
			strconv.FormatUint(uint64(a.ID), 10),
			a.ItemName,
			strconv.FormatUint(a.CurrentBid, 10),
		}, protocol.FieldDelim))
		b.WriteString(protocol.RecordDelim)
	})

	s.reply(job, protocol.TypeUserWins, b.String())
	s.audit(job, protocol.TypeUserWins, nil)
}

// handleUserSales reports the terminal auctions created by the caller.
// Unsold auctions report an explicit None/None winner and amount.
func (s *Service) handleUserSales(job *model.Job) {
	if !s.checkArity(job, 0) {
		return
	}

	var b strings.Builder
	s.auctions.ForEach(func(a *model.Auction) {
		if !a.Terminal() || a.Creator != job.Username {
			return
		}
		winner, amount := "None", "None"
		if a.HighestBidder != "" {
			winner = a.HighestBidder
			amount = strconv.FormatUint(a.CurrentBid, 10)
		}
		b.WriteString(strings.Join([]string{
			strconv.FormatUint(uint64(a.ID), 10),
			a.ItemName,
			winner,
			amount,
		}, protocol.FieldDelim))
		b.WriteString(protocol.RecordDelim)
	})

	s.reply(job, protocol.TypeUserSales, b.String())
	s.audit(job, protocol.TypeUserSales, nil)
}

// handleUserBalance reports the caller's balance.
func (s *Service) handleUserBalance(job *model.Job) {
	if !s.checkArity(job, 0) {
		return
	}

	balance := s.users.Balance(job.Username)
	s.reply(job, protocol.TypeUserBalance, strconv.FormatInt(balance, 10))
	s.audit(job, protocol.TypeUserBalance, map[string]any{"balance": balance})
}

// checkArity rejects a job whose argument count does not match the
// operation, with no state change.
func (s *Service) checkArity(job *model.Job, n int) bool {
	if len(job.Args) != n {
		s.reply(job, protocol.TypeErrServ, "")
		s.audit(job, protocol.TypeErrServ, map[string]any{"args": len(job.Args)})
		return false
	}
	return true
}

// reply sends a message back to the job's originating connection.
// Internal jobs have no connection and produce no reply.
func (s *Service) reply(job *model.Job, msgType byte, payload string) {
	if job.Conn == nil {
		return
	}
	if err := job.Conn.Send(msgType, payload); err != nil {
		utils.Warn("failed to send reply", map[string]any{
			"job_id": job.ID,
			"user":   job.Username,
			"type":   protocol.Name(msgType),
			"error":  err.Error(),
		})
	}
}

// replyError maps a business-rule rejection to its wire tag.
func (s *Service) replyError(job *model.Job, err error, fields map[string]any) {
	msgType := protocol.TypeErrServ
	switch err {
	case auctionerrors.ErrAuctionNotFound:
		msgType = protocol.TypeErrNotFound
	case auctionerrors.ErrWatchersFull:
		msgType = protocol.TypeErrFull
	case auctionerrors.ErrBidDenied:
		msgType = protocol.TypeErrDenied
	case auctionerrors.ErrBidTooLow:
		msgType = protocol.TypeErrBidLow
	case auctionerrors.ErrInvalidArg:
		msgType = protocol.TypeErrInvalidArg
	}
	s.reply(job, msgType, "")
	s.audit(job, msgType, fields)
}

// broadcast sends a message to every watcher that is online with a
// live connection. Runs under the user registry's read lock.
func (s *Service) broadcast(watchers [model.MaxWatchers]string, msgType byte, payload string) {
	s.users.ForEach(func(u *model.User) {
		if !u.Online || u.Conn == nil {
			return
		}
		for _, w := range watchers {
			if w != "" && w == u.Username {
				if err := u.Conn.Send(msgType, payload); err != nil {
					utils.Warn("failed to broadcast", map[string]any{
						"user":  u.Username,
						"type":  protocol.Name(msgType),
						"error": err.Error(),
					})
				}
				return
			}
		}
	})
}

// audit writes one structured log entry per handled job, reproducing
// the server's operation log.
func (s *Service) audit(job *model.Job, result byte, fields map[string]any) {
	entry := map[string]any{
		"job_id": job.ID,
		"op":     protocol.Name(job.Type),
		"result": protocol.Name(result),
	}
	if job.Username != "" {
		entry["user"] = job.Username
	}
	for k, v := range fields {
		entry[k] = v
	}
	utils.Info("job handled", entry)
}

// NewCloseJob synthesizes the internal close job shared by the buy-now
// path and the tick driver. It carries no connection and no acting
// user.
func NewCloseJob(auctionID uint32) *model.Job {
	return &model.Job{
		ID:   utils.GenerateID(),
		Type: protocol.TypeAuctionClosed,
		Args: []string{strconv.FormatUint(uint64(auctionID), 10)},
	}
}

// parseAuctionID parses an auction id argument; malformed ids behave
// like id 0, which never matches an auction.
func parseAuctionID(s string) uint32 {
	id, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0
	}
	return uint32(id)
}
