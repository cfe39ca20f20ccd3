package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/GerardFevill/trade-vision/internal/apperrors"
	"github.com/GerardFevill/trade-vision/internal/core/accounting"
	"github.com/GerardFevill/trade-vision/internal/core/domain"
	portssvc "github.com/GerardFevill/trade-vision/internal/core/ports/services"
	"github.com/GerardFevill/trade-vision/internal/dto"
	"github.com/GerardFevill/trade-vision/internal/middleware"
	"github.com/gin-gonic/gin"
)

// portfolioHandler holds the portfolio service dependency.
type portfolioHandler struct {
	portfolioService portssvc.PortfolioSvcFacade
}

// newPortfolioHandler creates a new portfolioHandler.
func newPortfolioHandler(portfolioService portssvc.PortfolioSvcFacade) *portfolioHandler {
	return &portfolioHandler{
		portfolioService: portfolioService,
	}
}

// registerPortfolioRoutes registers the portfolio CRUD and account
// association routes.
func registerPortfolioRoutes(rg *gin.RouterGroup, portfolioService portssvc.PortfolioSvcFacade) {
	h := newPortfolioHandler(portfolioService)

	portfolios := rg.Group("/portefeuilles")
	{
		portfolios.POST("", h.createPortfolio)
		portfolios.GET("", h.listPortfolios)
		portfolios.GET("/types", h.listPortfolioTypes)
		portfolios.GET("/clients", h.listClients)
		portfolios.GET("/used-accounts", h.listUsedAccounts)
		portfolios.GET("/:id", h.getPortfolio)
		portfolios.PUT("/:id", h.updatePortfolio)
		portfolios.DELETE("/:id", h.deletePortfolio)
		portfolios.POST("/:id/accounts", h.attachAccount)
		portfolios.DELETE("/:id/accounts/:accountID", h.detachAccount)
	}
}

// createPortfolio godoc
// @Summary Create a new portfolio
// @Description Creates a new portfolio with the provided name, type and client
// @Tags portfolios
// @Accept json
// @Produce json
// @Param portfolio body dto.CreatePortfolioRequest true "Portfolio details"
// @Success 201 {object} dto.PortfolioResponse "Created portfolio"
// @Failure 400 {object} map[string]string "Invalid request or unknown portfolio type"
// @Router /portefeuilles [post]
func (h *portfolioHandler) createPortfolio(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreatePortfolioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	portfolio, err := h.portfolioService.CreatePortfolio(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to create portfolio", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create portfolio"})
		return
	}

	c.JSON(http.StatusCreated, dto.ToPortfolioResponse(portfolio))
}

// listPortfolios godoc
// @Summary List portfolios
// @Description Lists portfolio summaries with aggregate balance and profit totals, optionally filtered by client
// @Tags portfolios
// @Produce json
// @Param client query string false "Filter by client name"
// @Success 200 {array} dto.PortfolioSummary "Portfolio summaries"
// @Router /portefeuilles [get]
func (h *portfolioHandler) listPortfolios(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	summaries, err := h.portfolioService.ListPortfolios(c.Request.Context(), c.Query("client"))
	if err != nil {
		logger.Error("Failed to list portfolios", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list portfolios"})
		return
	}

	c.JSON(http.StatusOK, summaries)
}

// listPortfolioTypes godoc
// @Summary List portfolio types
// @Description Lists the known portfolio types with their permitted lot factor tables
// @Tags portfolios
// @Produce json
// @Success 200 {object} dto.PortfolioTypesResponse "Types and lot factor tables"
// @Router /portefeuilles/types [get]
func (h *portfolioHandler) listPortfolioTypes(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	res := dto.PortfolioTypesResponse{Types: make(map[domain.PortfolioType][]float64, len(domain.PortfolioTypes))}
	seen := make(map[float64]bool)
	for _, t := range domain.PortfolioTypes {
		factors, err := accounting.AllowedLotFactors(t)
		if err != nil {
			logger.Error("Lot factor table lookup failed", "type", t, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list portfolio types"})
			return
		}
		res.Types[t] = factors
		for _, f := range factors {
			if !seen[f] {
				seen[f] = true
				res.AllFactors = append(res.AllFactors, f)
			}
		}
	}

	c.JSON(http.StatusOK, res)
}

// listClients godoc
// @Summary List clients
// @Description Lists the distinct client names across all portfolios
// @Tags portfolios
// @Produce json
// @Success 200 {array} string "Client names"
// @Router /portefeuilles/clients [get]
func (h *portfolioHandler) listClients(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	clients, err := h.portfolioService.ListClients(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list clients", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list clients"})
		return
	}

	c.JSON(http.StatusOK, clients)
}

// listUsedAccounts godoc
// @Summary List used account ids
// @Description Lists account ids already attached to any portfolio
// @Tags portfolios
// @Produce json
// @Success 200 {array} int "Attached account ids"
// @Router /portefeuilles/used-accounts [get]
func (h *portfolioHandler) listUsedAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	ids, err := h.portfolioService.ListUsedAccountIDs(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list used accounts", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list used accounts"})
		return
	}

	c.JSON(http.StatusOK, ids)
}

// getPortfolio godoc
// @Summary Get portfolio detail
// @Description Retrieves a portfolio with its accounts joined against cached account facts
// @Tags portfolios
// @Produce json
// @Param id path string true "Portfolio ID"
// @Success 200 {object} dto.PortfolioDetail "Portfolio detail"
// @Failure 404 {object} map[string]string "Portfolio not found"
// @Router /portefeuilles/{id} [get]
func (h *portfolioHandler) getPortfolio(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	portfolioID := c.Param("id")

	detail, err := h.portfolioService.GetPortfolioDetail(c.Request.Context(), portfolioID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Portfolio not found"})
			return
		}
		logger.Error("Failed to get portfolio", "portfolio_id", portfolioID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get portfolio"})
		return
	}

	c.JSON(http.StatusOK, detail)
}

// updatePortfolio godoc
// @Summary Update a portfolio
// @Description Updates a portfolio's name and/or type. A type change is rejected if an attached lot factor is not permitted by the new type.
// @Tags portfolios
// @Accept json
// @Produce json
// @Param id path string true "Portfolio ID"
// @Param portfolio body dto.UpdatePortfolioRequest true "Fields to update"
// @Success 200 {object} dto.PortfolioResponse "Updated portfolio"
// @Failure 400 {object} map[string]string "Invalid request or incompatible type change"
// @Failure 404 {object} map[string]string "Portfolio not found"
// @Router /portefeuilles/{id} [put]
func (h *portfolioHandler) updatePortfolio(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	portfolioID := c.Param("id")

	var req dto.UpdatePortfolioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	portfolio, err := h.portfolioService.UpdatePortfolio(c.Request.Context(), portfolioID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Portfolio not found"})
			return
		}
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to update portfolio", "portfolio_id", portfolioID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update portfolio"})
		return
	}

	c.JSON(http.StatusOK, dto.ToPortfolioResponse(portfolio))
}

// deletePortfolio godoc
// @Summary Delete a portfolio
// @Description Removes a portfolio and its account associations
// @Tags portfolios
// @Produce json
// @Param id path string true "Portfolio ID"
// @Success 204 "Portfolio deleted"
// @Failure 404 {object} map[string]string "Portfolio not found"
// @Router /portefeuilles/{id} [delete]
func (h *portfolioHandler) deletePortfolio(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	portfolioID := c.Param("id")

	if err := h.portfolioService.DeletePortfolio(c.Request.Context(), portfolioID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Portfolio not found"})
			return
		}
		logger.Error("Failed to delete portfolio", "portfolio_id", portfolioID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete portfolio"})
		return
	}

	c.Status(http.StatusNoContent)
}

// attachAccount godoc
// @Summary Attach an account to a portfolio
// @Description Attaches a trading account with a lot factor. The factor must be permitted by the portfolio type and the account must not belong to another portfolio.
// @Tags portfolios
// @Accept json
// @Produce json
// @Param id path string true "Portfolio ID"
// @Param account body dto.AttachAccountRequest true "Account id and lot factor"
// @Success 204 "Account attached"
// @Failure 400 {object} map[string]string "Invalid request, factor not permitted, or account already attached elsewhere"
// @Failure 404 {object} map[string]string "Portfolio not found"
// @Router /portefeuilles/{id}/accounts [post]
func (h *portfolioHandler) attachAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	portfolioID := c.Param("id")

	var req dto.AttachAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	if err := h.portfolioService.AttachAccount(c.Request.Context(), portfolioID, req); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Portfolio not found"})
			return
		}
		if errors.Is(err, apperrors.ErrValidation) || errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to attach account", "portfolio_id", portfolioID, "account_id", req.AccountID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to attach account"})
		return
	}

	c.Status(http.StatusNoContent)
}

// detachAccount godoc
// @Summary Detach an account from a portfolio
// @Description Removes a trading account from a portfolio
// @Tags portfolios
// @Produce json
// @Param id path string true "Portfolio ID"
// @Param accountID path int true "Account ID"
// @Success 204 "Account detached"
// @Failure 400 {object} map[string]string "Invalid account id"
// @Failure 404 {object} map[string]string "Portfolio or association not found"
// @Router /portefeuilles/{id}/accounts/{accountID} [delete]
func (h *portfolioHandler) detachAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	portfolioID := c.Param("id")

	accountID, err := strconv.ParseInt(c.Param("accountID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid account id"})
		return
	}

	if err := h.portfolioService.DetachAccount(c.Request.Context(), portfolioID, accountID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not attached to this portfolio"})
			return
		}
		logger.Error("Failed to detach account", "portfolio_id", portfolioID, "account_id", accountID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to detach account"})
		return
	}

	c.Status(http.StatusNoContent)
}
