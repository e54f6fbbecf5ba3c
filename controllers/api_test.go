package controllers

import (
	"net/http"
	"testing"

	"finquery/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthEndpoint(t *testing.T) {
	engine, _ := newTestServer(t)

	resp := doJSON(t, engine, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "ok", decodeBody[map[string]string](t, resp)["status"])
}

func TestCatalogEndpointsReturnNotFoundWhenEmpty(t *testing.T) {
	engine, _ := newTestServer(t)

	paths := []string{
		"/api/companies/high_cash_reserves",
		"/api/companies/debt_to_asset_ratio",
		"/api/companies/cash_rich_low_debt",
		"/api/companies/liquidity_debt_ratio",
		"/api/companies/leverage_differences",
		"/api/companies/similar_debt_ratios",
		"/api/companies/similar_inventory_ratios",
		"/api/companies/strong_liquidity",
		"/api/companies/financial_improvement",
		"/api/stocks/top_stocks",
		"/api/stocks/monthly_avg_close",
		"/api/stocks/volatility_leaders",
		"/api/stock/advanced-trading-metrics",
	}

	for _, path := range paths {
		resp := doJSON(t, engine, http.MethodGet, path, "", nil)
		assert.Equalf(t, http.StatusNotFound, resp.Code, "path %s", path)
	}
}

func TestGetCompaniesFiltersAndPaginates(t *testing.T) {
	engine, db := newTestServer(t)

	companies := []models.Company{
		{Name: "Apple Inc.", Ticker: "AAPL", CIK: 320193},
		{Name: "Microsoft Corporation", Ticker: "MSFT", CIK: 789019},
		{Name: "GameStop Corp.", Ticker: "GME", CIK: 1326380},
	}
	require.NoError(t, db.Create(&companies).Error)

	resp := doJSON(t, engine, http.MethodGet, "/api/companies?query=apple", "", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	rows := decodeBody[[]models.Company](t, resp)
	require.Len(t, rows, 1)
	assert.Equal(t, "AAPL", rows[0].Ticker)

	resp = doJSON(t, engine, http.MethodGet, "/api/companies?limit=2", "", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Len(t, decodeBody[[]models.Company](t, resp), 2)

	resp = doJSON(t, engine, http.MethodGet, "/api/companies?limit=0", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	resp = doJSON(t, engine, http.MethodGet, "/api/companies?offset=-1", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestGetStocksByTicker(t *testing.T) {
	engine, db := newTestServer(t)

	prices := []models.StockPrice{
		{Ticker: "AAPL", Year: 2023, Month: 1, Day: 3, Open: 130.28, High: 130.90, Low: 124.17, Close: 125.07, Volume: 112_117_500},
		{Ticker: "AAPL", Year: 2023, Month: 1, Day: 4, Open: 126.89, High: 128.66, Low: 125.08, Close: 126.36, Volume: 89_113_600},
		{Ticker: "GME", Year: 2021, Month: 1, Day: 27, Open: 354.83, High: 380.00, Low: 249.00, Close: 347.51, Volume: 93_396_700},
	}
	require.NoError(t, db.Create(&prices).Error)

	resp := doJSON(t, engine, http.MethodGet, "/api/stocks?ticker=AAPL", "", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	rows := decodeBody[[]models.StockPrice](t, resp)
	require.Len(t, rows, 2)
	for _, row := range rows {
		assert.Equal(t, "AAPL", row.Ticker)
	}

	resp = doJSON(t, engine, http.MethodGet, "/api/stocks?limit=nope", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestSearchEndpoint(t *testing.T) {
	engine, db := newTestServer(t)

	rows := []models.Financial{
		{CIK: 1, Year: 2023, Month: 3, Assets: ptr(2_000_000), Liabilities: ptr(400_000)},
		{CIK: 2, Year: 2023, Month: 3, Assets: ptr(500_000), Liabilities: ptr(600_000)},
	}
	require.NoError(t, db.Create(&rows).Error)

	resp := doJSON(t, engine, http.MethodPost, "/api/search", "", map[string]any{
		"criteria": []map[string]string{
			{"feature": "assets", "operator": ">", "value": "1000000"},
		},
	})
	require.Equal(t, http.StatusOK, resp.Code)
	results := decodeBody[[]models.Financial](t, resp)
	require.Len(t, results, 1)
	assert.EqualValues(t, 1, results[0].CIK)

	// a match-free search is a success, not an error
	resp = doJSON(t, engine, http.MethodPost, "/api/search", "", map[string]any{
		"criteria": []map[string]string{
			{"feature": "assets", "operator": ">", "value": "999999999"},
		},
	})
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Empty(t, decodeBody[[]models.Financial](t, resp))

	// malformed criteria surface as client errors
	resp = doJSON(t, engine, http.MethodPost, "/api/search", "", map[string]any{
		"criteria": []map[string]string{
			{"feature": "hashed_password", "operator": ">", "value": "1"},
		},
	})
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	resp = doJSON(t, engine, http.MethodPost, "/api/search", "", map[string]any{
		"criteria": []map[string]string{},
	})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}
