package models

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
)

// UserCompany is a tracking row: the user follows the company with this
// CIK. Deletes are hard deletes so a re-track never collides with a
// tombstone under the unique index.
type UserCompany struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"uniqueIndex:idx_user_cik;not null" json:"user_id"`
	CIK       int64     `gorm:"uniqueIndex:idx_user_cik;not null" json:"cik"`
	CreatedAt time.Time `json:"-"`
}

// TrackCompanies inserts one tracking row per CIK. Each insert runs in
// its own transaction: a duplicate-key violation moves the CIK to the
// skipped set and the rest of the batch proceeds. Any other storage
// failure aborts the batch.
func TrackCompanies(db *gorm.DB, userID uint, ciks []int64) (added, skipped []int64, err error) {
	added = make([]int64, 0, len(ciks))
	skipped = make([]int64, 0)

	for _, cik := range ciks {
		insertErr := db.Transaction(func(tx *gorm.DB) error {
			return tx.Create(&UserCompany{UserID: userID, CIK: cik}).Error
		})
		if insertErr != nil {
			if IsDuplicateKeyError(insertErr) {
				skipped = append(skipped, cik)
				continue
			}

			return nil, nil, insertErr
		}

		added = append(added, cik)
	}

	return added, skipped, nil
}

// UntrackCompany deletes the tracking row if present. Removing a CIK
// that was never tracked is not an error.
func UntrackCompany(db *gorm.DB, userID uint, cik int64) error {
	return db.Where("user_id = ? AND cik = ?", userID, cik).Delete(&UserCompany{}).Error
}

func GetTrackedCIKs(db *gorm.DB, userID uint) ([]int64, error) {
	var ciks []int64
	err := db.Model(&UserCompany{}).Where("user_id = ?", userID).Order("cik").Pluck("cik", &ciks).Error
	if err != nil {
		return nil, err
	}

	return ciks, nil
}

// IsDuplicateKeyError matches unique-constraint violations across the
// Postgres and sqlite drivers.
func IsDuplicateKeyError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}
