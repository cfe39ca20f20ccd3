package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/GerardFevill/trade-vision/internal/apperrors"
	portssvc "github.com/GerardFevill/trade-vision/internal/core/ports/services"
	"github.com/GerardFevill/trade-vision/internal/dto"
	"github.com/GerardFevill/trade-vision/internal/middleware"
	"github.com/gin-gonic/gin"
)

// accountHandler holds the account data service dependency.
type accountHandler struct {
	accountService portssvc.AccountDataSvcFacade
}

// newAccountHandler creates a new accountHandler.
func newAccountHandler(accountService portssvc.AccountDataSvcFacade) *accountHandler {
	return &accountHandler{
		accountService: accountService,
	}
}

// registerAccountRoutes registers the cached account routes.
func registerAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountDataSvcFacade) {
	h := newAccountHandler(accountService)

	accounts := rg.Group("/accounts")
	{
		accounts.GET("", h.listAccounts)
		accounts.POST("/refresh", h.refreshAccounts)
		accounts.GET("/:id", h.getAccount)
		accounts.GET("/:id/history", h.balanceHistory)
	}
}

// listAccounts godoc
// @Summary List cached accounts
// @Description Lists every cached trading account summary
// @Tags accounts
// @Produce json
// @Success 200 {array} dto.AccountSummaryResponse "Account summaries"
// @Router /accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	accounts, err := h.accountService.ListAccounts(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list accounts", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list accounts"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListAccountSummaryResponse(accounts))
}

// getAccount godoc
// @Summary Get a cached account
// @Description Retrieves one cached trading account summary by login
// @Tags accounts
// @Produce json
// @Param id path int true "Account ID"
// @Success 200 {object} dto.AccountSummaryResponse "Account summary"
// @Failure 400 {object} map[string]string "Invalid account id"
// @Failure 404 {object} map[string]string "Account not found"
// @Router /accounts/{id} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	accountID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid account id"})
		return
	}

	account, err := h.accountService.GetAccount(c.Request.Context(), accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
			return
		}
		logger.Error("Failed to get account", "account_id", accountID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get account"})
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountSummaryResponse(account))
}

// balanceHistory godoc
// @Summary Get account balance history
// @Description Returns an account's trailing balance points. Days defaults to 30 and is capped at 365.
// @Tags accounts
// @Produce json
// @Param id path int true "Account ID"
// @Param days query int false "Trailing window in days" default(30)
// @Success 200 {array} dto.BalancePointResponse "Balance points, oldest first"
// @Failure 400 {object} map[string]string "Invalid account id"
// @Failure 404 {object} map[string]string "Account not found"
// @Router /accounts/{id}/history [get]
func (h *accountHandler) balanceHistory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	accountID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid account id"})
		return
	}

	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))

	points, err := h.accountService.BalanceHistory(c.Request.Context(), accountID, days)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
			return
		}
		logger.Error("Failed to get balance history", "account_id", accountID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get balance history"})
		return
	}

	c.JSON(http.StatusOK, dto.ToBalanceHistoryResponse(points))
}

// refreshAccounts godoc
// @Summary Refresh cached accounts
// @Description Pulls live facts from the terminal bridge for every cached account and appends balance history points
// @Tags accounts
// @Produce json
// @Success 200 {object} dto.RefreshResult "Number of accounts refreshed"
// @Failure 503 {object} map[string]string "Terminal bridge unavailable"
// @Router /accounts/refresh [post]
func (h *accountHandler) refreshAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	refreshed, err := h.accountService.RefreshAccounts(c.Request.Context())
	if err != nil {
		if errors.Is(err, apperrors.ErrUnavailable) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Terminal bridge unavailable"})
			return
		}
		logger.Error("Failed to refresh accounts", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to refresh accounts"})
		return
	}

	c.JSON(http.StatusOK, dto.RefreshResult{Refreshed: refreshed})
}
