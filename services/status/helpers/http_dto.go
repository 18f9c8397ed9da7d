package helpers

// Response DTOs for the read-only status API
type AuctionResponse struct {
	ID             uint32 `json:"id"`
	ItemName       string `json:"item_name"`
	Creator        string `json:"creator"`
	HighestBidder  string `json:"highest_bidder,omitempty"`
	BuyNowPrice    uint64 `json:"buy_now_price"`
	CurrentBid     uint64 `json:"current_bid"`
	RemainingTicks uint32 `json:"remaining_ticks"`
	Watchers       int    `json:"watchers"`
}

type HealthResponse struct {
	OnlineUsers    int `json:"online_users"`
	ActiveAuctions int `json:"active_auctions"`
	TotalAuctions  int `json:"total_auctions"`
}
