package controllers

import (
	"github.com/gin-gonic/gin"
)

type Router struct {
	HealthController    *HealthController
	UsersController     *UsersController
	CompaniesController *CompaniesController
	StocksController    *StocksController
	SearchController    *SearchController

	// Auth guards the bearer-protected user routes.
	Auth gin.HandlerFunc
}

func (r Router) RegisterRoutes(router gin.IRouter) {
	//
	// Anonymous requests
	//
	router.GET("/health", r.HealthController.Status)

	router.POST("/users/register", r.UsersController.Register)
	router.POST("/users/login", r.UsersController.Login)
	router.POST("/users/oauth", r.UsersController.OAuth)

	api := router.Group("/api")
	api.GET("/companies", r.CompaniesController.GetCompanies)
	api.GET("/companies/high_cash_reserves", r.CompaniesController.HighCashReserves)
	api.GET("/companies/debt_to_asset_ratio", r.CompaniesController.DebtToAssetRatio)
	api.GET("/companies/cash_rich_low_debt", r.CompaniesController.CashRichLowDebt)
	api.GET("/companies/liquidity_debt_ratio", r.CompaniesController.LiquidityDebtRatio)
	api.GET("/companies/leverage_differences", r.CompaniesController.LeverageDifferences)
	api.GET("/companies/similar_debt_ratios", r.CompaniesController.SimilarDebtRatios)
	api.GET("/companies/similar_inventory_ratios", r.CompaniesController.SimilarInventoryRatios)
	api.GET("/companies/strong_liquidity", r.CompaniesController.StrongLiquidity)
	api.GET("/companies/financial_improvement", r.CompaniesController.FinancialImprovement)

	api.GET("/stocks", r.StocksController.GetStocks)
	api.GET("/stocks/top_stocks", r.StocksController.TopStocks)
	api.GET("/stocks/monthly_avg_close", r.StocksController.MonthlyAvgClose)
	api.GET("/stocks/volatility_leaders", r.StocksController.VolatilityLeaders)
	api.GET("/stock/advanced-trading-metrics", r.StocksController.AdvancedTradingMetrics)

	api.POST("/search", r.SearchController.Search)

	//
	// Authorized requests
	//
	authorized := router.Group("/users", r.Auth)
	authorized.POST("/logout", r.UsersController.Logout)
	authorized.POST("/companies", r.UsersController.TrackCompanies)
	authorized.DELETE("/companies", r.UsersController.UntrackCompany)
	authorized.DELETE("/delete", r.UsersController.DeleteUser)
	authorized.GET("/companies/data", r.UsersController.GetTrackedData)
}
