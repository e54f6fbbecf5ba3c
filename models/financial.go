package models

import "gorm.io/gorm"

// Financial is one reporting period for one company. Rows are
// append-only reference data; not every company reports every field
// every period, so the numeric columns are all nullable.
type Financial struct {
	CIK   int64 `gorm:"primaryKey;autoIncrement:false" json:"cik"`
	Year  int   `gorm:"primaryKey;autoIncrement:false" json:"year"`
	Month int   `gorm:"primaryKey;autoIncrement:false" json:"month"`

	AccountsPayableCurrent    *float64 `json:"accounts_payable"`
	Assets                    *float64 `json:"assets"`
	Liabilities               *float64 `json:"liabilities"`
	CashAndEquivalents        *float64 `json:"cash"`
	AccountsReceivableCurrent *float64 `json:"accounts_receivable"`
	InventoryNet              *float64 `json:"inventory"`
	LongTermDebt              *float64 `json:"long_term_debt"`
}

// GetLatestFinancials returns the most recent reporting period per CIK:
// max year, then max month within that year.
func GetLatestFinancials(db *gorm.DB, ciks []int64) ([]Financial, error) {
	if len(ciks) == 0 {
		return []Financial{}, nil
	}

	var financials []Financial
	err := db.Raw(`
		SELECT f.*
		FROM financials f
		JOIN (
			SELECT cik, year, month,
			       ROW_NUMBER() OVER (PARTITION BY cik ORDER BY year DESC, month DESC) AS rn
			FROM financials
			WHERE cik IN ?
		) latest ON latest.cik = f.cik AND latest.year = f.year AND latest.month = f.month
		WHERE latest.rn = 1
		ORDER BY f.cik`, ciks).Scan(&financials).Error
	if err != nil {
		return nil, err
	}

	return financials, nil
}
