package controller

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/mahesh00009/CurToCryptoFrontend/internal/repo"
	"github.com/mahesh00009/CurToCryptoFrontend/pkg/types/convert"

	"github.com/gin-gonic/gin"
)

type ConvertRequest struct {
	Symbol  string `json:"symbol" binding:"required"`
	Amount  string `json:"amount" binding:"required"`
	Convert string `json:"convert"`
}

type ConvertResponse struct {
	Symbol          string `json:"symbol"`
	Amount          string `json:"amount"`
	Convert         string `json:"convert"`
	ConvertedAmount string `json:"convertedAmount"`
}

// Convert godoc
// @Summary Convert an amount
// @Description Convert an amount of a cryptocurrency into a target currency
// @Tags conversions
// @Accept json
// @Produce json
// @Param request body ConvertRequest true "Conversion request"
// @Success 200 {object} ConvertResponse
// @Failure 400 {object} APIError
// @Failure 502 {object} APIError
// @Router /api/convert [post]
func (c *Controller) Convert(ctx *gin.Context) {
	var body ConvertRequest
	if err := ctx.ShouldBindJSON(&body); err != nil {
		badRequestWithDetails(ctx, "Invalid input", err.Error())
		return
	}

	req := convert.Request{
		Symbol:  strings.ToUpper(strings.TrimSpace(body.Symbol)),
		Amount:  strings.TrimSpace(body.Amount),
		Convert: strings.ToUpper(strings.TrimSpace(body.Convert)),
	}
	if req.Convert == "" {
		req.Convert = convert.DefaultConvert
	}
	if err := req.Validate(); err != nil {
		badRequestWithDetails(ctx, "Invalid conversion request", err.Error())
		return
	}

	res, err := c.converter.ConvertCurrency(ctx.Request.Context(), req)
	if c.apiJournal != nil {
		c.apiJournal.RecordConversion(req, res, err)
	}
	if err != nil {
		c.logger.Error("conversion failed",
			"symbol", req.Symbol, "amount", req.Amount, "convert", req.Convert, "error", err)
		badGateway(ctx, "Conversion failed", err.Error())
		return
	}

	ctx.JSON(http.StatusOK, ConvertResponse{
		Symbol:          req.Symbol,
		Amount:          req.Amount,
		Convert:         req.Convert,
		ConvertedAmount: res.String(),
	})
}

// ListConversions godoc
// @Summary List journaled conversions
// @Description Get the most recent conversions, newest first
// @Tags conversions
// @Produce json
// @Param limit query int false "Limit (default 50, max 500)"
// @Param source query string false "Source (widget, api, cli)"
// @Param symbol query string false "Crypto symbol"
// @Success 200 {array} models.Conversion
// @Failure 400 {object} APIError
// @Failure 500 {object} APIError
// @Router /api/conversions [get]
func (c *Controller) ListConversions(ctx *gin.Context) {
	filter := repo.ConversionFilter{
		Source: ctx.Query("source"),
		Symbol: strings.ToUpper(ctx.Query("symbol")),
	}

	if limitStr := ctx.Query("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 0 {
			badRequest(ctx, "Invalid limit")
			return
		}
		filter.Limit = limit
	}

	conversions, err := c.repo.ListConversions(filter)
	if err != nil {
		internalError(ctx, "Failed to fetch conversions")
		return
	}
	ctx.JSON(http.StatusOK, conversions)
}

// GetConversion godoc
// @Summary Get a journaled conversion
// @Description Get a single journaled conversion by its ID
// @Tags conversions
// @Produce json
// @Param id path int true "Conversion ID"
// @Success 200 {object} models.Conversion
// @Failure 400 {object} APIError
// @Failure 404 {object} APIError
// @Router /api/conversions/{id} [get]
func (c *Controller) GetConversion(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		badRequest(ctx, "Invalid conversion ID")
		return
	}

	conversion, err := c.repo.GetConversionByID(id)
	if err != nil {
		notFound(ctx, "Conversion not found")
		return
	}
	ctx.JSON(http.StatusOK, conversion)
}

// ConversionStats godoc
// @Summary Conversion statistics
// @Description Get totals of journaled conversions by source
// @Tags conversions
// @Produce json
// @Success 200 {object} models.ConversionStats
// @Failure 500 {object} APIError
// @Router /api/conversions/stats [get]
func (c *Controller) ConversionStats(ctx *gin.Context) {
	stats, err := c.repo.ConversionStats()
	if err != nil {
		internalError(ctx, "Failed to compute conversion stats")
		return
	}
	ctx.JSON(http.StatusOK, stats)
}
