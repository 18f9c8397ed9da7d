package helpers

import (
	"errors"
	"net/http"

	"auction-house/internal/auctionerrors"
	model "auction-house/internal/models"
	"auction-house/utils"
)

// MapErrorToHTTP maps engine errors to HTTP status code and message
func MapErrorToHTTP(err error) (int, string) {
	switch {
	case errors.Is(err, auctionerrors.ErrAuctionNotFound):
		return http.StatusNotFound, "auction not found"
	case errors.Is(err, auctionerrors.ErrInvalidArg):
		return http.StatusBadRequest, "invalid auction parameters"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// ToAuctionResponse converts an auction snapshot to its API shape
func ToAuctionResponse(a model.Auction) AuctionResponse {
	return AuctionResponse{
		ID:             a.ID,
		ItemName:       a.ItemName,
		Creator:        a.Creator,
		HighestBidder:  a.HighestBidder,
		BuyNowPrice:    a.BuyNowPrice,
		CurrentBid:     a.CurrentBid,
		RemainingTicks: a.RemainingTicks,
		Watchers:       a.WatcherCount(),
	}
}

// LogSuccess is a small helper to standardize logging of successful operations
func LogSuccess(handlerName, message string, ctx map[string]any) {
	utils.Info(handlerName+": "+message, ctx)
}
