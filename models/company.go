package models

import "gorm.io/gorm"

// Company is read-only reference data populated by the external
// acquisition scripts.
type Company struct {
	gorm.Model `json:"-"`
	// Company name.
	Name string `gorm:"not null" json:"name"`
	// Ticker symbol of the company. It is unique.
	Ticker string `gorm:"uniqueIndex" json:"ticker"`
	// SEC company identifier. Unique for US companies, and the join key
	// to financial and tracking records.
	CIK int64 `gorm:"uniqueIndex" json:"cik"`
}

// SearchCompanies matches companies by name or ticker prefix. An empty
// query lists companies in ticker order.
func SearchCompanies(db *gorm.DB, query string, limit, offset int) ([]Company, error) {
	var companies []Company
	tx := db.Offset(offset).Limit(limit).Order("ticker")
	if len(query) > 0 {
		tx = tx.Where("name LIKE ? OR ticker LIKE ?", "%"+query+"%", query+"%")
	}

	if err := tx.Find(&companies).Error; err != nil {
		return nil, err
	}

	return companies, nil
}
