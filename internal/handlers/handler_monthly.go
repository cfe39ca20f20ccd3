package handlers

import (
	"errors"
	"net/http"

	"github.com/GerardFevill/trade-vision/internal/apperrors"
	"github.com/GerardFevill/trade-vision/internal/core/domain"
	portssvc "github.com/GerardFevill/trade-vision/internal/core/ports/services"
	"github.com/GerardFevill/trade-vision/internal/dto"
	"github.com/GerardFevill/trade-vision/internal/middleware"
	"github.com/gin-gonic/gin"
)

// monthlyHandler holds the monthly lifecycle service dependency.
type monthlyHandler struct {
	monthlyService portssvc.MonthlySvcFacade
}

// newMonthlyHandler creates a new monthlyHandler.
func newMonthlyHandler(monthlyService portssvc.MonthlySvcFacade) *monthlyHandler {
	return &monthlyHandler{
		monthlyService: monthlyService,
	}
}

// registerMonthlyRoutes registers the monthly snapshot lifecycle routes
// nested under a portfolio.
func registerMonthlyRoutes(rg *gin.RouterGroup, monthlyService portssvc.MonthlySvcFacade) {
	h := newMonthlyHandler(monthlyService)

	portfolios := rg.Group("/portefeuilles/:id")
	{
		portfolios.GET("/monthly", h.monthlyHistory)
		portfolios.GET("/monthly/:month", h.getSnapshot)
		portfolios.GET("/monthly/:month/elite", h.getEliteSnapshot)
		portfolios.POST("/monthly/:month/open", h.openMonth)
		portfolios.PUT("/monthly/:month/withdrawals", h.updateWithdrawals)
		portfolios.POST("/monthly/:month/close", h.closeMonth)
		portfolios.GET("/monthly-current", h.currentMonthPreview)
		portfolios.POST("/monthly-current/close", h.closeCurrentMonth)
		portfolios.PUT("/monthly-current/starting-balance", h.updateStartingBalance)
		portfolios.POST("/sync-balances", h.syncStartingBalances)
	}
}

func parseMonthParam(c *gin.Context) (domain.MonthKey, bool) {
	month, err := domain.ParseMonthKey(c.Param("month"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid month, expected YYYY-MM"})
		return "", false
	}
	return month, true
}

// monthlyHistory godoc
// @Summary List recorded months
// @Description Lists the months with records for a portfolio, newest first
// @Tags monthly
// @Produce json
// @Param id path string true "Portfolio ID"
// @Success 200 {object} dto.MonthlyHistoryResponse "Recorded months"
// @Failure 404 {object} map[string]string "Portfolio not found"
// @Router /portefeuilles/{id}/monthly [get]
func (h *monthlyHandler) monthlyHistory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	portfolioID := c.Param("id")

	months, err := h.monthlyService.MonthlyHistory(c.Request.Context(), portfolioID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Portfolio not found"})
			return
		}
		logger.Error("Failed to list monthly history", "portfolio_id", portfolioID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list monthly history"})
		return
	}

	c.JSON(http.StatusOK, dto.MonthlyHistoryResponse{Months: months})
}

// getSnapshot godoc
// @Summary Get a monthly snapshot
// @Description Retrieves a persisted month. Closed months are served from stored rows only, never recomputed.
// @Tags monthly
// @Produce json
// @Param id path string true "Portfolio ID"
// @Param month path string true "Month (YYYY-MM)"
// @Success 200 {object} dto.MonthlySnapshotResponse "Monthly snapshot"
// @Failure 400 {object} map[string]string "Invalid month"
// @Failure 404 {object} map[string]string "No records for this month"
// @Router /portefeuilles/{id}/monthly/{month} [get]
func (h *monthlyHandler) getSnapshot(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	portfolioID := c.Param("id")

	month, ok := parseMonthParam(c)
	if !ok {
		return
	}

	snapshot, err := h.monthlyService.Snapshot(c.Request.Context(), portfolioID, month)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No records for this month"})
			return
		}
		logger.Error("Failed to get snapshot", "portfolio_id", portfolioID, "month", month, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get snapshot"})
		return
	}

	c.JSON(http.StatusOK, dto.ToMonthlySnapshotResponse(snapshot))
}

// getEliteSnapshot godoc
// @Summary Get an Elite monthly snapshot
// @Description Retrieves the tiered distribution variant of a persisted month. Valid only for Conservateur portfolios.
// @Tags monthly
// @Produce json
// @Param id path string true "Portfolio ID"
// @Param month path string true "Month (YYYY-MM)"
// @Success 200 {object} dto.EliteSnapshot "Elite snapshot"
// @Failure 400 {object} map[string]string "Invalid month or non-Conservateur portfolio"
// @Failure 404 {object} map[string]string "No records for this month"
// @Router /portefeuilles/{id}/monthly/{month}/elite [get]
func (h *monthlyHandler) getEliteSnapshot(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	portfolioID := c.Param("id")

	month, ok := parseMonthParam(c)
	if !ok {
		return
	}

	snapshot, err := h.monthlyService.EliteSnapshot(c.Request.Context(), portfolioID, month)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No records for this month"})
			return
		}
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to get elite snapshot", "portfolio_id", portfolioID, "month", month, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get elite snapshot"})
		return
	}

	c.JSON(http.StatusOK, snapshot)
}

// openMonth godoc
// @Summary Open a month
// @Description Records starting balances for a month. Already-recorded accounts are left untouched.
// @Tags monthly
// @Produce json
// @Param id path string true "Portfolio ID"
// @Param month path string true "Month (YYYY-MM)"
// @Success 204 "Month opened"
// @Failure 400 {object} map[string]string "Invalid month"
// @Failure 404 {object} map[string]string "Portfolio not found"
// @Failure 409 {object} map[string]string "Month already closed"
// @Router /portefeuilles/{id}/monthly/{month}/open [post]
func (h *monthlyHandler) openMonth(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	portfolioID := c.Param("id")

	month, ok := parseMonthParam(c)
	if !ok {
		return
	}

	if err := h.monthlyService.OpenMonth(c.Request.Context(), portfolioID, month); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Portfolio not found"})
			return
		}
		if errors.Is(err, apperrors.ErrMonthClosed) {
			c.JSON(http.StatusConflict, gin.H{"error": "Month already closed"})
			return
		}
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to open month", "portfolio_id", portfolioID, "month", month, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open month"})
		return
	}

	c.Status(http.StatusNoContent)
}

// updateWithdrawals godoc
// @Summary Update withdrawals for a month
// @Description Applies a set of withdrawal overrides to an open month
// @Tags monthly
// @Accept json
// @Produce json
// @Param id path string true "Portfolio ID"
// @Param month path string true "Month (YYYY-MM)"
// @Param withdrawals body dto.BulkWithdrawalRequest true "Withdrawal overrides"
// @Success 200 {object} map[string]int "Number of records updated"
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 404 {object} map[string]string "No record for an account in this month"
// @Failure 409 {object} map[string]string "Month already closed"
// @Router /portefeuilles/{id}/monthly/{month}/withdrawals [put]
func (h *monthlyHandler) updateWithdrawals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	portfolioID := c.Param("id")

	month, ok := parseMonthParam(c)
	if !ok {
		return
	}

	var req dto.BulkWithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	updated, err := h.monthlyService.UpdateWithdrawals(c.Request.Context(), portfolioID, month, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrMonthClosed) {
			c.JSON(http.StatusConflict, gin.H{"error": "Month already closed"})
			return
		}
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No record for this account and month"})
			return
		}
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to update withdrawals", "portfolio_id", portfolioID, "month", month, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update withdrawals"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"updated": updated})
}

// closeMonth godoc
// @Summary Close a month
// @Description Persists the given month's distribution as an immutable snapshot. Only the current month can be closed.
// @Tags monthly
// @Produce json
// @Param id path string true "Portfolio ID"
// @Param month path string true "Month (YYYY-MM)"
// @Success 200 {object} dto.CloseMonthResult "Close result"
// @Failure 400 {object} map[string]string "Invalid month or not the current month"
// @Failure 404 {object} map[string]string "Portfolio not found"
// @Failure 409 {object} map[string]string "Month already closed"
// @Router /portefeuilles/{id}/monthly/{month}/close [post]
func (h *monthlyHandler) closeMonth(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	portfolioID := c.Param("id")
	month, ok := parseMonthParam(c)
	if !ok {
		return
	}

	result, err := h.monthlyService.CloseMonth(c.Request.Context(), portfolioID, month)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Only the current month can be closed"})
			return
		}
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Portfolio not found"})
			return
		}
		if errors.Is(err, apperrors.ErrMonthClosed) {
			c.JSON(http.StatusConflict, gin.H{"error": "Month already closed"})
			return
		}
		if errors.Is(err, apperrors.ErrConfiguration) {
			logger.Error("Policy table inconsistency", "portfolio_id", portfolioID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to close month", "portfolio_id", portfolioID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to close month"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// currentMonthPreview godoc
// @Summary Preview the current month
// @Description Computes the unsaved projection of the open month from live balances. Recomputed on every call.
// @Tags monthly
// @Produce json
// @Param id path string true "Portfolio ID"
// @Success 200 {object} dto.CurrentMonthPreviewResponse "Current month preview"
// @Failure 404 {object} map[string]string "Portfolio not found"
// @Router /portefeuilles/{id}/monthly-current [get]
func (h *monthlyHandler) currentMonthPreview(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	portfolioID := c.Param("id")

	preview, err := h.monthlyService.CurrentMonthPreview(c.Request.Context(), portfolioID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Portfolio not found"})
			return
		}
		if errors.Is(err, apperrors.ErrConfiguration) {
			logger.Error("Policy table inconsistency", "portfolio_id", portfolioID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to compute preview", "portfolio_id", portfolioID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute preview"})
		return
	}

	c.JSON(http.StatusOK, dto.ToCurrentMonthPreviewResponse(preview))
}

// closeCurrentMonth godoc
// @Summary Close the current month
// @Description Persists the current month's distribution as an immutable snapshot and seeds the next month's starting balances. At-most-once.
// @Tags monthly
// @Produce json
// @Param id path string true "Portfolio ID"
// @Success 200 {object} dto.CloseMonthResult "Close result"
// @Failure 404 {object} map[string]string "Portfolio not found"
// @Failure 409 {object} map[string]string "Month already closed"
// @Router /portefeuilles/{id}/monthly-current/close [post]
func (h *monthlyHandler) closeCurrentMonth(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	portfolioID := c.Param("id")

	result, err := h.monthlyService.CloseCurrentMonth(c.Request.Context(), portfolioID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Portfolio not found"})
			return
		}
		if errors.Is(err, apperrors.ErrMonthClosed) {
			c.JSON(http.StatusConflict, gin.H{"error": "Month already closed"})
			return
		}
		if errors.Is(err, apperrors.ErrConfiguration) {
			logger.Error("Policy table inconsistency", "portfolio_id", portfolioID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to close month", "portfolio_id", portfolioID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to close month"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// updateStartingBalance godoc
// @Summary Override a starting balance
// @Description Overrides one account's starting balance for the current month
// @Tags monthly
// @Accept json
// @Produce json
// @Param id path string true "Portfolio ID"
// @Param balance body dto.UpdateStartingBalanceRequest true "Account id and starting balance"
// @Success 204 "Starting balance updated"
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 404 {object} map[string]string "Portfolio not found"
// @Failure 409 {object} map[string]string "Month already closed"
// @Router /portefeuilles/{id}/monthly-current/starting-balance [put]
func (h *monthlyHandler) updateStartingBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	portfolioID := c.Param("id")

	var req dto.UpdateStartingBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	if err := h.monthlyService.UpdateStartingBalance(c.Request.Context(), portfolioID, req.AccountID, req.StartingBalance); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Portfolio not found"})
			return
		}
		if errors.Is(err, apperrors.ErrMonthClosed) {
			c.JSON(http.StatusConflict, gin.H{"error": "Month already closed"})
			return
		}
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to update starting balance", "portfolio_id", portfolioID, "account_id", req.AccountID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update starting balance"})
		return
	}

	c.Status(http.StatusNoContent)
}

// syncStartingBalances godoc
// @Summary Sync starting balances from the terminal bridge
// @Description Re-derives the current month's starting balances from live terminal data and stores them as overrides
// @Tags monthly
// @Produce json
// @Param id path string true "Portfolio ID"
// @Success 200 {object} dto.SyncResult "Per-account sync outcomes"
// @Failure 404 {object} map[string]string "Portfolio not found"
// @Failure 409 {object} map[string]string "Month already closed"
// @Failure 503 {object} map[string]string "Terminal bridge unavailable"
// @Router /portefeuilles/{id}/sync-balances [post]
func (h *monthlyHandler) syncStartingBalances(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	portfolioID := c.Param("id")

	result, err := h.monthlyService.SyncStartingBalances(c.Request.Context(), portfolioID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Portfolio not found"})
			return
		}
		if errors.Is(err, apperrors.ErrMonthClosed) {
			c.JSON(http.StatusConflict, gin.H{"error": "Month already closed"})
			return
		}
		if errors.Is(err, apperrors.ErrUnavailable) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Terminal bridge unavailable"})
			return
		}
		logger.Error("Failed to sync starting balances", "portfolio_id", portfolioID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sync starting balances"})
		return
	}

	c.JSON(http.StatusOK, result)
}
