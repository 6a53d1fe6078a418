package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListCryptos godoc
// @Summary List top cryptocurrencies
// @Description Get the top cryptocurrency list offered by the conversion service
// @Tags currencies
// @Produce json
// @Success 200 {array} convert.Currency
// @Failure 502 {object} APIError
// @Router /api/cryptos [get]
func (c *Controller) ListCryptos(ctx *gin.Context) {
	list, err := c.lister.TopCryptos(ctx.Request.Context())
	if err != nil {
		c.logger.Error("failed to load currency list", "error", err)
		badGateway(ctx, "Failed to fetch cryptocurrencies", err.Error())
		return
	}
	ctx.JSON(http.StatusOK, list)
}

// ListCurrencies godoc
// @Summary List target currencies
// @Description Get the currency codes a conversion can target, fiat first
// @Tags currencies
// @Produce json
// @Success 200 {object} currencies.Catalog
// @Router /api/currencies [get]
func (c *Controller) ListCurrencies(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.catalog)
}
