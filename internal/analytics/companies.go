package analytics

// CashReserveCompany is a reporting period where cash exceeded half the
// company's liabilities, with a trailing three-period average of cash.
type CashReserveCompany struct {
	CIK    int64  `json:"cik"`
	Name   string `json:"name"`
	Ticker string `json:"ticker"`
	Year   int    `json:"year"`
	Month  int    `json:"month"`

	Cash           float64 `json:"cash"`
	Liabilities    float64 `json:"liabilities"`
	RollingAvgCash float64 `json:"rolling_avg_cash"`
}

// HighCashReserveCompanies finds periods where cash and equivalents
// exceeded half of liabilities. The rolling average covers the current
// period and the two preceding reported periods per company.
func (e *Engine) HighCashReserveCompanies() ([]CashReserveCompany, error) {
	var rows []CashReserveCompany
	err := e.DB.Raw(`
		WITH cash_windows AS (
			SELECT cik, year, month, cash_and_equivalents, liabilities,
			       AVG(cash_and_equivalents) OVER (
			           PARTITION BY cik ORDER BY year, month
			           ROWS BETWEEN 2 PRECEDING AND CURRENT ROW) AS rolling_avg_cash
			FROM financials
			WHERE cash_and_equivalents IS NOT NULL
		)
		SELECT w.cik, c.name, c.ticker, w.year, w.month,
		       w.cash_and_equivalents AS cash, w.liabilities, w.rolling_avg_cash
		FROM cash_windows w
		JOIN companies c ON c.cik = w.cik
		WHERE w.liabilities IS NOT NULL AND w.cash_and_equivalents > w.liabilities / 2
		ORDER BY w.cash_and_equivalents DESC
		LIMIT ?`, topN).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}

type DebtAssetVolatility struct {
	CIK    int64  `json:"cik"`
	Name   string `json:"name"`
	Ticker string `json:"ticker"`
	Year   int    `json:"year"`
	Month  int    `json:"month"`

	DebtToAssets  float64 `json:"debt_to_assets"`
	AvgVolatility float64 `json:"avg_volatility"`
}

// DebtToAssetRanking joins per-period leverage ratios to each ticker's
// mean daily price range and ranks by volatility. Periods without a
// positive asset figure have no defined ratio and are excluded.
func (e *Engine) DebtToAssetRanking() ([]DebtAssetVolatility, error) {
	var rows []DebtAssetVolatility
	err := e.DB.Raw(`
		WITH ratios AS (
			SELECT cik, year, month, long_term_debt / assets AS debt_to_assets
			FROM financials
			WHERE assets IS NOT NULL AND assets > 0 AND long_term_debt IS NOT NULL
		),
		volatility AS (
			SELECT ticker, AVG(high - low) AS avg_volatility
			FROM stock_prices
			GROUP BY ticker
		)
		SELECT r.cik, c.name, c.ticker, r.year, r.month, r.debt_to_assets, v.avg_volatility
		FROM ratios r
		JOIN companies c ON c.cik = r.cik
		JOIN volatility v ON v.ticker = c.ticker
		ORDER BY v.avg_volatility DESC
		LIMIT ?`, topN).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}

type CashRichCompany struct {
	CIK      int64   `json:"cik"`
	Name     string  `json:"name"`
	Ticker   string  `json:"ticker"`
	MaxClose float64 `json:"max_close"`
}

// CashRichLowDebt screens for companies that ever reported substantial
// cash alongside minimal long-term debt, ranked by their highest
// recorded close.
func (e *Engine) CashRichLowDebt() ([]CashRichCompany, error) {
	var rows []CashRichCompany
	err := e.DB.Raw(`
		WITH qualifying AS (
			SELECT DISTINCT cik
			FROM financials
			WHERE cash_and_equivalents > ? AND long_term_debt < ?
		)
		SELECT c.cik, c.name, c.ticker, MAX(s.close) AS max_close
		FROM qualifying q
		JOIN companies c ON c.cik = q.cik
		JOIN stock_prices s ON s.ticker = c.ticker
		GROUP BY c.cik, c.name, c.ticker
		ORDER BY max_close DESC
		LIMIT ?`, cashRichThreshold, lowDebtThreshold, topN).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}

// LiquidityDebtRatio carries cash over long-term debt for one period.
// A company with no debt gets the -1 sentinel instead of an undefined
// division.
type LiquidityDebtRatio struct {
	CIK    int64  `json:"cik"`
	Name   string `json:"name"`
	Ticker string `json:"ticker"`
	Year   int    `json:"year"`
	Month  int    `json:"month"`

	Ratio         float64 `json:"liquidity_debt_ratio"`
	FiscalQuarter string  `json:"fiscal_quarter"`
}

func (e *Engine) LiquidityDebtLeaders() ([]LiquidityDebtRatio, error) {
	var rows []LiquidityDebtRatio
	err := e.DB.Raw(`
		SELECT f.cik, c.name, c.ticker, f.year, f.month,
		       CASE WHEN f.long_term_debt IS NULL OR f.long_term_debt = 0 THEN -1
		            ELSE f.cash_and_equivalents / f.long_term_debt
		       END AS ratio,
		       CASE WHEN f.month BETWEEN 1 AND 3 THEN 'Q1'
		            WHEN f.month BETWEEN 4 AND 6 THEN 'Q2'
		            WHEN f.month BETWEEN 7 AND 9 THEN 'Q3'
		            ELSE 'Q4'
		       END AS fiscal_quarter
		FROM financials f
		JOIN companies c ON c.cik = f.cik
		WHERE f.cash_and_equivalents IS NOT NULL
		ORDER BY ratio DESC
		LIMIT ?`, topN).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}

type StrongLiquidityCompany struct {
	CIK    int64  `json:"cik"`
	Name   string `json:"name"`
	Ticker string `json:"ticker"`
	Year   int    `json:"year"`
	Month  int    `json:"month"`

	Cash               float64 `json:"cash"`
	Liabilities        float64 `json:"liabilities"`
	CashLiabilityRatio float64 `json:"cash_liability_ratio"`
}

// StrongLiquidityCompanies returns every period where cash exceeded
// twice the liabilities, ordered by the cash/liability ratio. Bounded
// only by how many rows match.
func (e *Engine) StrongLiquidityCompanies() ([]StrongLiquidityCompany, error) {
	var rows []StrongLiquidityCompany
	err := e.DB.Raw(`
		SELECT f.cik, c.name, c.ticker, f.year, f.month,
		       f.cash_and_equivalents AS cash, f.liabilities,
		       f.cash_and_equivalents / f.liabilities AS cash_liability_ratio
		FROM financials f
		JOIN companies c ON c.cik = f.cik
		WHERE f.liabilities IS NOT NULL AND f.liabilities > 0
		  AND f.cash_and_equivalents > f.liabilities * 2
		ORDER BY cash_liability_ratio DESC`).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}

// ImprovedCompany is a reporting period where cash grew and long-term
// debt shrank against the immediately preceding period, both by more
// than five percent.
type ImprovedCompany struct {
	CIK    int64  `json:"cik"`
	Name   string `json:"name"`
	Ticker string `json:"ticker"`
	Year   int    `json:"year"`
	Month  int    `json:"month"`

	Cash             float64 `json:"cash"`
	LongTermDebt     float64 `json:"long_term_debt"`
	CashChangePct    float64 `json:"cash_change_pct"`
	DebtReductionPct float64 `json:"debt_reduction_pct"`
	RollingAvgCash   float64 `json:"rolling_avg_cash"`
}

// FinancialImprovement compares each period against its predecessor per
// company. Periods whose previous cash or debt figure is zero or absent
// have no defined percentage change and are excluded by the guards.
func (e *Engine) FinancialImprovement() ([]ImprovedCompany, error) {
	var rows []ImprovedCompany
	err := e.DB.Raw(`
		WITH history AS (
			SELECT cik, year, month, cash_and_equivalents, long_term_debt,
			       LAG(cash_and_equivalents) OVER w AS prev_cash,
			       LAG(long_term_debt) OVER w AS prev_debt,
			       AVG(cash_and_equivalents) OVER (
			           PARTITION BY cik ORDER BY year, month
			           ROWS BETWEEN 2 PRECEDING AND CURRENT ROW) AS rolling_avg_cash
			FROM financials
			WINDOW w AS (PARTITION BY cik ORDER BY year, month)
		)
		SELECT h.cik, c.name, c.ticker, h.year, h.month,
		       h.cash_and_equivalents AS cash, h.long_term_debt,
		       (h.cash_and_equivalents - h.prev_cash) / h.prev_cash * 100 AS cash_change_pct,
		       (h.prev_debt - h.long_term_debt) / h.prev_debt * 100 AS debt_reduction_pct,
		       h.rolling_avg_cash
		FROM history h
		JOIN companies c ON c.cik = h.cik
		WHERE h.prev_cash IS NOT NULL AND h.prev_cash > 0
		  AND h.prev_debt IS NOT NULL AND h.prev_debt > 0
		  AND h.cash_and_equivalents IS NOT NULL AND h.long_term_debt IS NOT NULL
		  AND (h.cash_and_equivalents - h.prev_cash) / h.prev_cash > 0.05
		  AND (h.prev_debt - h.long_term_debt) / h.prev_debt > 0.05
		ORDER BY cash_change_pct DESC`).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}
