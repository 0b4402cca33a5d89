package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/betstack/bet-engine/internal/models"
	"github.com/betstack/bet-engine/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// BetHandler exposes the placement and settlement engines over HTTP
type BetHandler struct {
	service service.BetService
	logger  zerolog.Logger
}

// NewBetHandler creates a new bet handler
func NewBetHandler(svc service.BetService, logger zerolog.Logger) *BetHandler {
	return &BetHandler{
		service: svc,
		logger:  logger.With().Str("component", "bet_handler").Logger(),
	}
}

// NewRouter builds the API router with all middleware and routes registered
func NewRouter(svc service.BetService, logger zerolog.Logger) *gin.Engine {
	handler := NewBetHandler(svc, logger)

	router := gin.New()
	router.Use(
		RecoveryMiddleware(logger),
		LoggingMiddleware(logger),
		TracingMiddleware(),
		PrincipalMiddleware(),
	)

	v1 := router.Group("/v1")
	{
		v1.POST("/bets", handler.PlaceBet)
		v1.GET("/bets/:id", handler.GetBet)
		v1.GET("/users/:id/bets", handler.GetUserBets)
		v1.POST("/matches/:id/settle", handler.SettleMatch)
		v1.POST("/matches/:id/result", handler.RecordResult)
	}

	return router
}

type placeBetBody struct {
	Selections []service.SelectionInput `json:"selections"`
	Stake      decimal.Decimal          `json:"stake"`
}

// PlaceBet handles POST /v1/bets
func (h *BetHandler) PlaceBet(c *gin.Context) {
	principal := GetPrincipal(c)
	if principal.UserID == uuid.Nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": models.ErrUnauthenticated.Error()})
		return
	}

	var body placeBetBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed request body"})
		return
	}

	bet, err := h.service.PlaceBet(c.Request.Context(), &service.PlaceBetRequest{
		UserID:     principal.UserID,
		Selections: body.Selections,
		Stake:      body.Stake,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"bet_id": bet.ID.String()})
}

// SettleMatch handles POST /v1/matches/:id/settle
func (h *BetHandler) SettleMatch(c *gin.Context) {
	settledCount, err := h.service.SettleMatch(c.Request.Context(), GetPrincipal(c), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"settled_count": settledCount})
}

type recordResultBody struct {
	HomeScore *int   `json:"home_score"`
	AwayScore *int   `json:"away_score"`
	Status    string `json:"status"`
}

// RecordResult handles POST /v1/matches/:id/result
func (h *BetHandler) RecordResult(c *gin.Context) {
	var body recordResultBody
	if err := c.ShouldBindJSON(&body); err != nil || body.HomeScore == nil || body.AwayScore == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "match id, scores and status are required"})
		return
	}

	err := h.service.RecordMatchResult(c.Request.Context(), GetPrincipal(c), &service.RecordResultRequest{
		MatchID:   c.Param("id"),
		HomeScore: *body.HomeScore,
		AwayScore: *body.AwayScore,
		Status:    models.MatchStatus(body.Status),
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GetBet handles GET /v1/bets/:id
func (h *BetHandler) GetBet(c *gin.Context) {
	betID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid bet id"})
		return
	}

	bet, err := h.service.GetBetByID(c.Request.Context(), betID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, bet)
}

// GetUserBets handles GET /v1/users/:id/bets
func (h *BetHandler) GetUserBets(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	limit := intQuery(c, "limit", 50)
	offset := intQuery(c, "offset", 0)

	bets, err := h.service.GetUserBets(c.Request.Context(), userID, limit, offset)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"bets": bets})
}

// writeError maps domain errors to HTTP status codes; anything unexpected
// becomes an opaque 500 so store details never leak to callers
func (h *BetHandler) writeError(c *gin.Context, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	switch {
	case errors.Is(err, models.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrUserNotFound),
		errors.Is(err, models.ErrMatchNotFound),
		errors.Is(err, models.ErrBetNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrNoSelections),
		errors.Is(err, models.ErrTooManySelections),
		errors.Is(err, models.ErrInvalidStake),
		errors.Is(err, models.ErrMarketNotFound),
		errors.Is(err, models.ErrInvalidOdd):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrInsufficientFunds),
		errors.Is(err, models.ErrMatchNotBetable),
		errors.Is(err, models.ErrMatchNotFinished),
		errors.Is(err, models.ErrOddsChanged):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		h.logger.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func intQuery(c *gin.Context, name string, fallback int) int {
	if raw, ok := c.GetQuery(name); ok {
		if value, err := strconv.Atoi(raw); err == nil {
			return value
		}
	}
	return fallback
}
