package analytics

import (
	"math"
	"testing"

	"finquery/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestEngine returns an engine over an in-memory database with the
// full schema. The pool is pinned to one connection so every query
// sees the same in-memory file.
func newTestEngine(t *testing.T) *Engine {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.UserCompany{},
		&models.Company{},
		&models.Financial{},
		&models.StockPrice{},
	))

	return NewEngine(db)
}

func ptr(v float64) *float64 { return &v }

// loadMarketFixture seeds a small but complete market: three large
// caps with price history, a small cap below the liquidity floor, and
// a degenerate company whose asset figure is zero in every period.
func loadMarketFixture(t *testing.T, db *gorm.DB) {
	t.Helper()

	companies := []models.Company{
		{Name: "Apple Inc.", Ticker: "AAPL", CIK: 320193},
		{Name: "Microsoft Corporation", Ticker: "MSFT", CIK: 789019},
		{Name: "GameStop Corp.", Ticker: "GME", CIK: 1326380},
		{Name: "Penn Entertainment", Ticker: "PENN", CIK: 555},
		{Name: "Zero Industries", Ticker: "ZRO", CIK: 111},
	}
	require.NoError(t, db.Create(&companies).Error)

	financials := []models.Financial{
		{CIK: 320193, Year: 2022, Month: 9, Assets: ptr(352e9), Liabilities: ptr(302e9),
			CashAndEquivalents: ptr(23e9), AccountsReceivableCurrent: ptr(60e9),
			InventoryNet: ptr(4.9e9), LongTermDebt: ptr(98e9), AccountsPayableCurrent: ptr(64e9)},
		{CIK: 320193, Year: 2023, Month: 9, Assets: ptr(352e9), Liabilities: ptr(290e9),
			CashAndEquivalents: ptr(30e9), AccountsReceivableCurrent: ptr(61e9),
			InventoryNet: ptr(6.3e9), LongTermDebt: ptr(90e9)},

		{CIK: 789019, Year: 2022, Month: 6, Assets: ptr(364e9), Liabilities: ptr(198e9),
			CashAndEquivalents: ptr(104e9), InventoryNet: ptr(3.7e9), LongTermDebt: ptr(47e9)},
		{CIK: 789019, Year: 2023, Month: 6, Assets: ptr(411e9), Liabilities: ptr(205e9),
			CashAndEquivalents: ptr(111e9), InventoryNet: ptr(2.5e9), LongTermDebt: ptr(42e9)},

		{CIK: 555, Year: 2022, Month: 12, Assets: ptr(200e6), Liabilities: ptr(30e6),
			CashAndEquivalents: ptr(80e6), InventoryNet: ptr(10e6), LongTermDebt: ptr(5e6)},
		{CIK: 555, Year: 2023, Month: 12, Assets: ptr(210e6), Liabilities: ptr(30e6),
			CashAndEquivalents: ptr(90e6), InventoryNet: ptr(11e6), LongTermDebt: ptr(0)},

		// zero assets in every period, zero cash and debt in the first
		{CIK: 111, Year: 2021, Month: 12, Assets: ptr(0), Liabilities: ptr(10),
			CashAndEquivalents: ptr(0), LongTermDebt: ptr(0)},
		{CIK: 111, Year: 2022, Month: 12, Assets: ptr(0), Liabilities: ptr(10),
			CashAndEquivalents: ptr(5), LongTermDebt: ptr(3)},
		{CIK: 111, Year: 2023, Month: 12, Assets: ptr(0), Liabilities: ptr(10),
			CashAndEquivalents: ptr(10), LongTermDebt: ptr(1)},
	}
	require.NoError(t, db.Create(&financials).Error)

	prices := []models.StockPrice{
		{Ticker: "AAPL", Year: 2023, Month: 1, Day: 3, Open: 130.28, High: 130.90, Low: 124.17, Close: 125.07, Volume: 112_000_000},
		{Ticker: "AAPL", Year: 2023, Month: 1, Day: 4, Open: 126.89, High: 128.66, Low: 125.08, Close: 126.36, Volume: 89_000_000},
		{Ticker: "AAPL", Year: 2023, Month: 1, Day: 5, Open: 127.13, High: 127.77, Low: 124.76, Close: 125.02, Volume: 80_000_000},

		{Ticker: "MSFT", Year: 2023, Month: 1, Day: 3, Open: 243.08, High: 245.75, Low: 237.40, Close: 239.58, Volume: 25_000_000},
		{Ticker: "MSFT", Year: 2023, Month: 1, Day: 4, Open: 232.28, High: 232.87, Low: 225.96, Close: 229.10, Volume: 50_000_000},

		{Ticker: "GME", Year: 2021, Month: 1, Day: 27, Open: 354.83, High: 380.00, Low: 249.00, Close: 347.51, Volume: 93_000_000},
		{Ticker: "GME", Year: 2021, Month: 1, Day: 28, Open: 265.00, High: 483.00, Low: 112.25, Close: 193.60, Volume: 58_000_000},

		// thin trading, below the liquidity floor
		{Ticker: "PENN", Year: 2023, Month: 1, Day: 3, Open: 30.00, High: 31.00, Low: 29.50, Close: 30.20, Volume: 500_000},
	}
	require.NoError(t, db.Create(&prices).Error)
}

func requireFinite(t *testing.T, values ...float64) {
	t.Helper()
	for _, v := range values {
		require.False(t, math.IsNaN(v) || math.IsInf(v, 0), "value %v is not finite", v)
	}
}
