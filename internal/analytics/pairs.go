package analytics

import "fmt"

// CompanyPair relates two companies by a shared ratio. Pairs are
// ordered by CIK so a pair never appears reversed or self-matched.
type CompanyPair struct {
	CIKA      int64   `gorm:"column:cik_a" json:"cik_a"`
	CIKB      int64   `gorm:"column:cik_b" json:"cik_b"`
	RatioA    float64 `json:"ratio_a"`
	RatioB    float64 `json:"ratio_b"`
	RatioDiff float64 `json:"ratio_diff"`
}

// LeverageGapPairs finds pairs of companies whose average debt/asset
// ratios differ by more than the gap threshold. The candidate set is
// capped before the self-join to bound the pairwise comparison.
func (e *Engine) LeverageGapPairs() ([]CompanyPair, error) {
	var rows []CompanyPair
	err := e.DB.Raw(`
		WITH ratios AS (
			SELECT cik, AVG(long_term_debt / assets) AS debt_to_assets
			FROM financials
			WHERE assets IS NOT NULL AND assets > 0 AND long_term_debt IS NOT NULL
			GROUP BY cik
			ORDER BY debt_to_assets DESC
			LIMIT ?
		)
		SELECT a.cik AS cik_a, b.cik AS cik_b,
		       a.debt_to_assets AS ratio_a, b.debt_to_assets AS ratio_b,
		       ABS(a.debt_to_assets - b.debt_to_assets) AS ratio_diff
		FROM ratios a
		JOIN ratios b ON a.cik < b.cik
		WHERE ABS(a.debt_to_assets - b.debt_to_assets) > ?
		ORDER BY ratio_diff DESC
		LIMIT ?`, leveragePairCandidates, leverageGapThreshold, topN).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}

// SimilarDebtRatioPairs pairs companies with nearly identical average
// debt/asset ratios. Comparison cost is bounded by equal-population
// bucketing: only companies in the same of ten buckets are compared,
// and each company keeps at most its ten closest matches.
func (e *Engine) SimilarDebtRatioPairs() ([]CompanyPair, error) {
	return e.similarRatioPairs("long_term_debt", 10, 10)
}

// SimilarInventoryRatioPairs is the inventory/asset variant: five
// buckets, up to twenty matches kept per company.
func (e *Engine) SimilarInventoryRatioPairs() ([]CompanyPair, error) {
	return e.similarRatioPairs("inventory_net", 5, 20)
}

// similarRatioPairs runs the bucketed pairing for numerator/assets.
// The numerator is one of the fixed column names above, never user
// input. match_rank bounds matches only for the lower CIK of a pair;
// the higher side is bounded by the final LIMIT alone.
func (e *Engine) similarRatioPairs(numerator string, buckets, matchesPerCompany int) ([]CompanyPair, error) {
	var rows []CompanyPair
	query := fmt.Sprintf(`
		WITH ratios AS (
			SELECT cik, AVG(%[1]s / assets) AS ratio
			FROM financials
			WHERE assets IS NOT NULL AND assets > 0 AND %[1]s IS NOT NULL
			GROUP BY cik
		),
		bucketed AS (
			SELECT cik, ratio, NTILE(?) OVER (ORDER BY ratio) AS bucket
			FROM ratios
		),
		pairs AS (
			SELECT a.cik AS cik_a, b.cik AS cik_b,
			       a.ratio AS ratio_a, b.ratio AS ratio_b,
			       ABS(a.ratio - b.ratio) AS ratio_diff,
			       ROW_NUMBER() OVER (PARTITION BY a.cik ORDER BY ABS(a.ratio - b.ratio)) AS match_rank
			FROM bucketed a
			JOIN bucketed b ON a.bucket = b.bucket AND a.cik < b.cik
			WHERE ABS(a.ratio - b.ratio) < ?
		)
		SELECT cik_a, cik_b, ratio_a, ratio_b, ratio_diff
		FROM pairs
		WHERE match_rank <= ?
		ORDER BY ratio_diff
		LIMIT 50`, numerator)

	err := e.DB.Raw(query, buckets, similarRatioThreshold, matchesPerCompany).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}
