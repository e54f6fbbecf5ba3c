package models

import "gorm.io/gorm"

// StockPrice is one trading day for one ticker. Append-only reference
// data.
type StockPrice struct {
	Ticker string `gorm:"primaryKey;size:12" json:"ticker"`
	Year   int    `gorm:"primaryKey;autoIncrement:false" json:"year"`
	Month  int    `gorm:"primaryKey;autoIncrement:false" json:"month"`
	Day    int    `gorm:"primaryKey;autoIncrement:false" json:"day"`

	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume int64   `json:"volume"`
}

// GetRecentPrices lists price rows newest first, optionally for a
// single ticker.
func GetRecentPrices(db *gorm.DB, ticker string, limit int) ([]StockPrice, error) {
	var prices []StockPrice
	tx := db.Order("year DESC, month DESC, day DESC, ticker").Limit(limit)
	if len(ticker) > 0 {
		tx = tx.Where("ticker = ?", ticker)
	}

	if err := tx.Find(&prices).Error; err != nil {
		return nil, err
	}

	return prices, nil
}
