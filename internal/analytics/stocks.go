package analytics

// TopStock summarizes a ticker's close-price history together with the
// company's latest reported balance-sheet snapshot.
type TopStock struct {
	Ticker   string  `json:"ticker"`
	Name     string  `json:"name"`
	CIK      int64   `json:"cik"`
	MinClose float64 `json:"min_close"`
	MaxClose float64 `json:"max_close"`
	AvgClose float64 `json:"avg_close"`

	Assets       *float64 `json:"assets"`
	Cash         *float64 `json:"cash"`
	LongTermDebt *float64 `json:"long_term_debt"`
}

// TopStocksByAvgClose ranks tickers by mean close over their full price
// history and joins each to its company and most recent financial row.
func (e *Engine) TopStocksByAvgClose() ([]TopStock, error) {
	var rows []TopStock
	err := e.DB.Raw(`
		WITH ticker_stats AS (
			SELECT ticker,
			       MIN(close) AS min_close,
			       MAX(close) AS max_close,
			       AVG(close) AS avg_close
			FROM stock_prices
			GROUP BY ticker
		),
		latest_financials AS (
			SELECT *
			FROM (
				SELECT f.*,
				       ROW_NUMBER() OVER (PARTITION BY cik ORDER BY year DESC, month DESC) AS rn
				FROM financials f
			) ranked
			WHERE rn = 1
		)
		SELECT t.ticker, c.name, c.cik,
		       t.min_close, t.max_close, t.avg_close,
		       lf.assets, lf.cash_and_equivalents AS cash, lf.long_term_debt
		FROM ticker_stats t
		JOIN companies c ON c.ticker = t.ticker
		LEFT JOIN latest_financials lf ON lf.cik = c.cik
		ORDER BY t.avg_close DESC
		LIMIT ?`, topN).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}

type MonthlyAvgClose struct {
	Ticker    string  `json:"ticker"`
	Year      int     `json:"year"`
	Month     int     `json:"month"`
	AvgClose  float64 `json:"avg_close"`
	CloseRank int     `json:"rank"`
}

// MonthlyAvgCloseRanking ranks every (ticker, year, month) by mean
// close and keeps ranks up to 10. The cut is on rank, not row count, so
// ties can push the result past ten rows.
func (e *Engine) MonthlyAvgCloseRanking() ([]MonthlyAvgClose, error) {
	var rows []MonthlyAvgClose
	err := e.DB.Raw(`
		WITH monthly AS (
			SELECT ticker, year, month, AVG(close) AS avg_close
			FROM stock_prices
			GROUP BY ticker, year, month
		)
		SELECT ticker, year, month, avg_close, close_rank
		FROM (
			SELECT ticker, year, month, avg_close,
			       RANK() OVER (ORDER BY avg_close DESC) AS close_rank
			FROM monthly
		) ranked
		WHERE close_rank <= ?`, topN).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}

type MonthlyVolatility struct {
	Ticker         string  `json:"ticker"`
	Year           int     `json:"year"`
	Month          int     `json:"month"`
	AvgFluctuation float64 `json:"avg_fluctuation"`
}

// VolatilityLeaders ranks ticker-months by mean high-minus-low range,
// considering only days traded above the liquidity floor.
func (e *Engine) VolatilityLeaders() ([]MonthlyVolatility, error) {
	var rows []MonthlyVolatility
	err := e.DB.Raw(`
		SELECT ticker, year, month, AVG(high - low) AS avg_fluctuation
		FROM stock_prices
		WHERE volume > ?
		GROUP BY ticker, year, month
		ORDER BY avg_fluctuation DESC
		LIMIT ?`, minLiquidityVolume, topN).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}

// TradingMetrics carries per-month trading statistics for one ticker,
// with the quick ratio joined from the matching financial period when
// one was reported.
type TradingMetrics struct {
	Ticker string `json:"ticker"`
	Name   string `json:"name"`
	CIK    int64  `json:"cik"`
	Year   int    `json:"year"`
	Month  int    `json:"month"`

	AvgVolatility    float64  `json:"avg_volatility"`
	AvgDailyRange    *float64 `json:"avg_daily_range"`
	UpperHalfCloses  int      `json:"upper_half_closes"`
	VWAP             float64  `json:"vwap"`
	MonthPriceChange float64  `json:"month_price_change"`
	QuickRatio       *float64 `json:"quick_ratio"`
}

// AdvancedTradingMetrics computes monthly volatility, relative daily
// range, upper-half close count, volume-weighted average price and the
// first-to-last close change per ticker-month. Zero-volume months and
// zero-open days are excluded from the affected metrics.
func (e *Engine) AdvancedTradingMetrics() ([]TradingMetrics, error) {
	var rows []TradingMetrics
	err := e.DB.Raw(`
		WITH daily AS (
			SELECT ticker, year, month, open, high, low, close, volume,
			       FIRST_VALUE(close) OVER w AS first_close,
			       LAST_VALUE(close) OVER (PARTITION BY ticker, year, month ORDER BY day
			           ROWS BETWEEN UNBOUNDED PRECEDING AND UNBOUNDED FOLLOWING) AS last_close
			FROM stock_prices
			WINDOW w AS (PARTITION BY ticker, year, month ORDER BY day)
		),
		monthly AS (
			SELECT ticker, year, month,
			       AVG(high - low) AS avg_volatility,
			       AVG(CASE WHEN open > 0 THEN (high - low) / open END) AS avg_daily_range,
			       SUM(CASE WHEN close > (high + low) / 2 THEN 1 ELSE 0 END) AS upper_half_closes,
			       SUM(close * volume) / SUM(volume) AS vwap,
			       MAX(last_close) - MAX(first_close) AS month_price_change
			FROM daily
			GROUP BY ticker, year, month
			HAVING SUM(volume) > 0
		)
		SELECT m.ticker, c.name, c.cik, m.year, m.month,
		       m.avg_volatility, m.avg_daily_range, m.upper_half_closes,
		       m.vwap, m.month_price_change,
		       CASE WHEN f.liabilities IS NOT NULL AND f.liabilities <> 0
		            THEN (COALESCE(f.cash_and_equivalents, 0) + COALESCE(f.accounts_receivable_current, 0)) / f.liabilities
		       END AS quick_ratio
		FROM monthly m
		JOIN companies c ON c.ticker = m.ticker
		LEFT JOIN financials f ON f.cik = c.cik AND f.year = m.year AND f.month = m.month
		ORDER BY m.avg_volatility DESC
		LIMIT ?`, topN).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}
