package controllers

import (
	"strconv"

	"finquery/internal/analytics"
	"finquery/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CompaniesController struct {
	DB     *gorm.DB
	Engine *analytics.Engine
	Logger *zap.SugaredLogger
}

// GetCompanies lists companies matching an optional name or ticker
// query.
func (cc CompaniesController) GetCompanies(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 {
		RespondBadRequestErr(c, ErrInvalidLimit)
		return
	}

	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		RespondBadRequestErr(c, ErrInvalidOffset)
		return
	}

	companies, err := models.SearchCompanies(cc.DB, c.Query("query"), limit, offset)
	if err != nil {
		cc.Logger.Errorf("Error searching companies: %v", err)
		RespondInternalErr(c)
		return
	}

	RespondOK(c, companies)
}

func (cc CompaniesController) HighCashReserves(c *gin.Context) {
	rows, err := cc.Engine.HighCashReserveCompanies()
	respondCatalog(c, cc.Logger, "high cash reserves", rows, err)
}

func (cc CompaniesController) DebtToAssetRatio(c *gin.Context) {
	rows, err := cc.Engine.DebtToAssetRanking()
	respondCatalog(c, cc.Logger, "debt to asset ratio", rows, err)
}

func (cc CompaniesController) CashRichLowDebt(c *gin.Context) {
	rows, err := cc.Engine.CashRichLowDebt()
	respondCatalog(c, cc.Logger, "cash rich low debt", rows, err)
}

func (cc CompaniesController) LiquidityDebtRatio(c *gin.Context) {
	rows, err := cc.Engine.LiquidityDebtLeaders()
	respondCatalog(c, cc.Logger, "liquidity debt ratio", rows, err)
}

func (cc CompaniesController) LeverageDifferences(c *gin.Context) {
	rows, err := cc.Engine.LeverageGapPairs()
	respondCatalog(c, cc.Logger, "leverage differences", rows, err)
}

func (cc CompaniesController) SimilarDebtRatios(c *gin.Context) {
	rows, err := cc.Engine.SimilarDebtRatioPairs()
	respondCatalog(c, cc.Logger, "similar debt ratios", rows, err)
}

func (cc CompaniesController) SimilarInventoryRatios(c *gin.Context) {
	rows, err := cc.Engine.SimilarInventoryRatioPairs()
	respondCatalog(c, cc.Logger, "similar inventory ratios", rows, err)
}

func (cc CompaniesController) StrongLiquidity(c *gin.Context) {
	rows, err := cc.Engine.StrongLiquidityCompanies()
	respondCatalog(c, cc.Logger, "strong liquidity", rows, err)
}

func (cc CompaniesController) FinancialImprovement(c *gin.Context) {
	rows, err := cc.Engine.FinancialImprovement()
	respondCatalog(c, cc.Logger, "financial improvement", rows, err)
}
