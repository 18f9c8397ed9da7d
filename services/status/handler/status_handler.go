package handler

import (
	"fmt"
	"net/http"
	"strconv"

	model "auction-house/internal/models"
	"auction-house/services/status/helpers"
	"auction-house/utils"

	"github.com/gin-gonic/gin"
)

// StatusServiceInterface is the read-only view of the engine the status
// API consumes.
type StatusServiceInterface interface {
	ActiveAuctions() []model.Auction
	AuctionByID(id uint32) (model.Auction, error)
	OnlineUsers() []string
	Stats() (online, active, total int)
}

type StatusHandler struct {
	service StatusServiceInterface
}

func NewStatusHandler(service StatusServiceInterface) *StatusHandler {
	return &StatusHandler{service: service}
}

// HealthHandler handles GET /healthz
func (h *StatusHandler) HealthHandler(c *gin.Context) {
	online, active, total := h.service.Stats()
	resp := helpers.HealthResponse{
		OnlineUsers:    online,
		ActiveAuctions: active,
		TotalAuctions:  total,
	}
	utils.JSONResponse(c, http.StatusOK, resp, "ok")
}

// ListAuctionsHandler handles GET /auctions
func (h *StatusHandler) ListAuctionsHandler(c *gin.Context) {
	auctions := h.service.ActiveAuctions()

	resp := make([]helpers.AuctionResponse, 0, len(auctions))
	for _, a := range auctions {
		resp = append(resp, helpers.ToAuctionResponse(a))
	}

	utils.JSONResponse(c, http.StatusOK, resp, "active auctions retrieved successfully")
	helpers.LogSuccess("ListAuctionsHandler", "active auctions retrieved successfully", map[string]any{
		"count": len(resp),
	})
}

// GetAuctionHandler handles GET /auctions/:auction_id
func (h *StatusHandler) GetAuctionHandler(c *gin.Context) {
	idParam := c.Param("auction_id")
	id, err := strconv.ParseUint(idParam, 10, 32)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, fmt.Errorf("invalid auction id: %w", err), "invalid auction id")
		utils.Warn("GetAuctionHandler: invalid auction id", map[string]any{"auction_id": idParam})
		return
	}

	auction, err := h.service.AuctionByID(uint32(id))
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("GetAuctionHandler: auction lookup failed", map[string]any{"auction_id": idParam, "error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.ToAuctionResponse(auction), "auction retrieved successfully")
	helpers.LogSuccess("GetAuctionHandler", "auction retrieved successfully", map[string]any{
		"auction_id": auction.ID,
	})
}

// ListUsersHandler handles GET /users
func (h *StatusHandler) ListUsersHandler(c *gin.Context) {
	users := h.service.OnlineUsers()
	if users == nil {
		users = []string{}
	}

	utils.JSONResponse(c, http.StatusOK, users, "online users retrieved successfully")
	helpers.LogSuccess("ListUsersHandler", "online users retrieved successfully", map[string]any{
		"count": len(users),
	})
}
