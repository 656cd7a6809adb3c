// This is a http type of reporter.
// It fetches data from the engine's read-only accessors
// and publishes on the http routes.

package reporter

import (
	"errors"
	"net/http"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"

	"github.com/StellarBridge-io/swap-engine-go/engine"
	"github.com/StellarBridge-io/swap-engine-go/swaperr"
)

const (
	ROUTE_HELLO       = "/hello"
	ROUTE_SWAP        = "/swap"
	ROUTE_RESOLVER    = "/resolver"
	ROUTE_ANALYTICS   = "/analytics"
	ROUTE_SECRET_USED = "/secret_used"
	ROUTE_FILLS       = "/fills"
)

type HttpReporter struct {
	serverIP   string // listen ip
	serverPort string // listen port

	// upstream data source
	engine *engine.Engine
}

func NewHttpReporter(serverIP string, serverPort string, eng *engine.Engine) *HttpReporter {
	return &HttpReporter{
		serverIP:   serverIP,
		serverPort: serverPort,
		engine:     eng,
	}
}

// Hook up routes & handlers
func (h *HttpReporter) SetupRouter() *gin.Engine {
	router := gin.Default()

	router.GET(ROUTE_HELLO, Hello)
	router.GET(ROUTE_SWAP, h.Swap)
	router.GET(ROUTE_RESOLVER, h.Resolver)
	router.GET(ROUTE_ANALYTICS, h.Analytics)
	router.GET(ROUTE_SECRET_USED, h.SecretUsed)
	router.GET(ROUTE_FILLS, h.Fills)

	return router
}

// Hook up router & ip:port
func (h *HttpReporter) Run() {
	router := h.SetupRouter()
	address := h.serverIP + ":" + h.serverPort
	if err := router.Run(address); err != nil {
		panic(err)
	}
}

// Example route.
func Hello(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "world",
	})
}

func (h *HttpReporter) Swap(c *gin.Context) {
	swapId := c.Query("swap_id")
	if swapId == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "swap_id must be provided"})
		return
	}

	swap, err := h.engine.GetSwap(ethcommon.HexToHash(swapId))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"swap_id":              swapId,
		"initiator":            swap.Initiator.String(),
		"token":                swap.Token.String(),
		"amount":               swap.Amount.String(),
		"filled":               swap.Filled.String(),
		"secret_hash":          swap.SecretHash.String(),
		"timelock":             swap.Timelock,
		"state":                swap.State,
		"partial_fill_enabled": swap.PartialFillEnabled,
		"merkle_root":          swap.MerkleRoot.String(),
		"created_at":           swap.CreatedAt,
	})
}

func (h *HttpReporter) Resolver(c *gin.Context) {
	addr := c.Query("addr")
	if addr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "addr must be provided"})
		return
	}

	r, err := h.engine.GetResolver(ethcommon.HexToAddress(addr))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"addr":              addr,
		"stake":             r.Stake.String(),
		"reputation":        r.Reputation,
		"total_volume":      r.TotalVolume.String(),
		"success_rate":      r.SuccessRate,
		"active":            r.Active,
		"registration_time": r.RegistrationTime,
	})
}

func (h *HttpReporter) Analytics(c *gin.Context) {
	a, err := h.engine.GetAnalytics()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total_volume":            a.TotalVolume.String(),
		"total_swaps":             a.TotalSwaps,
		"total_resolvers":         a.TotalResolvers,
		"success_rate":            a.SuccessRate,
		"average_completion_time": a.AverageCompletionTime,
	})
}

func (h *HttpReporter) SecretUsed(c *gin.Context) {
	secret := c.Query("secret")
	if secret == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "secret must be provided"})
		return
	}

	used, err := h.engine.IsSecretUsed(ethcommon.HexToHash(secret))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"used": used})
}

func (h *HttpReporter) Fills(c *gin.Context) {
	swapId := c.Query("swap_id")
	if swapId == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "swap_id must be provided"})
		return
	}

	fills, err := h.engine.GetPartialFills(ethcommon.HexToHash(swapId))
	if err != nil {
		respondError(c, err)
		return
	}

	out := []gin.H{}
	for _, f := range fills {
		out = append(out, gin.H{
			"resolver":  f.Resolver.String(),
			"amount":    f.Amount.String(),
			"timestamp": f.Timestamp,
		})
	}
	c.JSON(http.StatusOK, gin.H{"data": out})
}

func respondError(c *gin.Context, err error) {
	var se *swaperr.Error
	if errors.As(err, &se) {
		status := http.StatusNotFound
		if se.IsCritical() {
			status = http.StatusInternalServerError
		}
		c.JSON(status, gin.H{"error": se.Message, "code": se.Code})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
