package storage

import (
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/phillipDoubleU/showdex/internal/dex"
	"github.com/phillipDoubleU/showdex/internal/logging"
)

// OpenAndMigrate opens the SQLite database, keeps the schema current via
// AutoMigrate and seeds the move dex from the configured seed list when
// the table is empty.
func OpenAndMigrate(dataSourceName string, seed []dex.Move) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dataSourceName), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&MoveRecord{}, &SimulationRecord{}); err != nil {
		return nil, err
	}
	seedMoves(db, seed)
	return db, nil
}

func seedMoves(db *gorm.DB, seed []dex.Move) {
	var count int64
	db.Model(&MoveRecord{}).Count(&count)
	if count > 0 {
		return
	}
	records := make([]MoveRecord, 0, len(seed))
	for i := range seed {
		records = append(records, recordFromMove(&seed[i]))
	}
	if len(records) == 0 {
		return
	}
	if err := db.Create(&records).Error; err != nil {
		logging.Error("failed to seed move dex", err, nil)
		return
	}
	logging.Info("move dex seeded", logging.Fields{"moves": len(records)})
}
