package controllers

import (
	"strconv"

	"finquery/internal/analytics"
	"finquery/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type StocksController struct {
	DB     *gorm.DB
	Engine *analytics.Engine
	Logger *zap.SugaredLogger
}

// GetStocks lists recent price rows, optionally for a single ticker.
func (sc StocksController) GetStocks(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if err != nil || limit < 1 {
		RespondBadRequestErr(c, ErrInvalidLimit)
		return
	}

	prices, err := models.GetRecentPrices(sc.DB, c.Query("ticker"), limit)
	if err != nil {
		sc.Logger.Errorf("Error getting stock prices: %v", err)
		RespondInternalErr(c)
		return
	}

	RespondOK(c, prices)
}

func (sc StocksController) TopStocks(c *gin.Context) {
	rows, err := sc.Engine.TopStocksByAvgClose()
	respondCatalog(c, sc.Logger, "top stocks", rows, err)
}

func (sc StocksController) MonthlyAvgClose(c *gin.Context) {
	rows, err := sc.Engine.MonthlyAvgCloseRanking()
	respondCatalog(c, sc.Logger, "monthly average close", rows, err)
}

func (sc StocksController) VolatilityLeaders(c *gin.Context) {
	rows, err := sc.Engine.VolatilityLeaders()
	respondCatalog(c, sc.Logger, "volatility leaders", rows, err)
}

func (sc StocksController) AdvancedTradingMetrics(c *gin.Context) {
	rows, err := sc.Engine.AdvancedTradingMetrics()
	respondCatalog(c, sc.Logger, "advanced trading metrics", rows, err)
}
