// Package analytics is the read-only analytical query layer over the
// financial and stock-price reference tables. It holds a fixed catalog
// of named aggregations plus a compiler that turns structured search
// criteria into a parameterized filter over financial rows.
//
// Every ratio in the catalog guards its denominator: a zero or NULL
// divisor excludes the row or yields a sentinel, it is never evaluated.
// Queries are computed fresh per call and may run concurrently; the
// engine carries no state beyond the connection pool.
package analytics

import "gorm.io/gorm"

const (
	// Liquidity floor for the volatility ranking.
	minLiquidityVolume = 1_000_000

	// Screen thresholds for the cash-rich/low-debt query.
	cashRichThreshold = 50_000_000
	lowDebtThreshold  = 10_000_000

	// Candidate-set cap bounding the leverage-gap self-join.
	leveragePairCandidates = 5000
	// Minimum debt/asset ratio difference for a leverage-gap pair.
	leverageGapThreshold = 0.1

	// Same-bucket pairs closer than this count as similar.
	similarRatioThreshold = 0.01

	topN = 10
)

type Engine struct {
	DB *gorm.DB
}

func NewEngine(db *gorm.DB) *Engine {
	return &Engine{DB: db}
}
