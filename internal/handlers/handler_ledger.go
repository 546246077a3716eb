package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/prestadero/lending-backend/internal/apperrors"
	"github.com/prestadero/lending-backend/internal/core/domain"
	portssvc "github.com/prestadero/lending-backend/internal/core/ports/services"
	"github.com/prestadero/lending-backend/internal/dto"
	"github.com/prestadero/lending-backend/internal/middleware"
)

// ledgerHandler exposes the read side of the ledger for audit trails.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

// newLedgerHandler creates a new ledgerHandler.
func newLedgerHandler(ls portssvc.LedgerSvcFacade) *ledgerHandler {
	return &ledgerHandler{
		ledgerService: ls,
	}
}

// registerLedgerRoutes registers journal and chart-of-accounts routes.
func registerLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newLedgerHandler(ledgerService)

	ledger := rg.Group("/ledger")
	{
		ledger.GET("/journal-entries", h.listJournalEntries)
		ledger.GET("/journal-entries/payment/:paymentID", h.getJournalEntriesForPayment)
		ledger.GET("/accounting-entries/payment/:paymentID", h.getAccountingEntriesForPayment)
		ledger.GET("/accounts", h.listChartOfAccounts)
		ledger.GET("/accounts/:code", h.getChartAccount)
	}
}

func (h *ledgerHandler) listJournalEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	limit := 0
	if limitStr := c.Query("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = parsed
	}
	nextToken := c.Query("nextToken")

	entries, newToken, err := h.ledgerService.ListJournalEntries(c.Request.Context(), limit, nextToken)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to list journal entries", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list journal entries"})
		return
	}

	resp := dto.ListJournalEntriesResponse{
		Entries: dto.ToJournalEntryResponses(entries),
	}
	if newToken != "" {
		resp.NextToken = &newToken
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ledgerHandler) getJournalEntriesForPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	paymentID := c.Param("paymentID")

	entries, err := h.ledgerService.GetJournalEntriesBySource(c.Request.Context(), domain.SourcePayment, paymentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Journal entries not found"})
		} else {
			logger.Error("Failed to get journal entries", slog.String("payment_id", paymentID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve journal entries"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"entries": dto.ToJournalEntryResponses(entries)})
}

func (h *ledgerHandler) getAccountingEntriesForPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	paymentID := c.Param("paymentID")

	entries, err := h.ledgerService.GetAccountingEntriesBySource(c.Request.Context(), domain.SourcePayment, paymentID)
	if err != nil {
		logger.Error("Failed to get accounting entries", slog.String("payment_id", paymentID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve accounting entries"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

func (h *ledgerHandler) listChartOfAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	accounts, err := h.ledgerService.ListChartOfAccounts(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list chart of accounts", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list accounts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"accounts": dto.ToChartAccountResponses(accounts)})
}

func (h *ledgerHandler) getChartAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	code := c.Param("code")

	account, err := h.ledgerService.GetChartAccountByCode(c.Request.Context(), code)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
			return
		}
		logger.Error("Failed to get chart account", slog.String("code", code), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve account"})
		return
	}

	resp := dto.ToChartAccountResponses([]domain.ChartAccount{*account})
	c.JSON(http.StatusOK, resp[0])
}
