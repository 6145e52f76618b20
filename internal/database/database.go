package database

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Aiko543/quotedeck/internal/entities"
)

// defaultQuotes seed an empty database so a fresh install has something to show.
var defaultQuotes = []entities.Quote{
	{Text: "The best way to get started is to quit talking and begin doing.", Category: "Motivation"},
	{Text: "Don't let yesterday take up too much of today.", Category: "Inspiration"},
	{Text: "It's not whether you get knocked down, it's whether you get up.", Category: "Resilience"},
}

type Database struct {
	DB *gorm.DB
}

func NewDatabase(dbPath string) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Auto-migrate all entities
	err = db.AutoMigrate(
		&entities.Quote{},
		&entities.Setting{},
		&entities.SyncRun{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	database := &Database{DB: db}

	if err := database.seedQuotes(); err != nil {
		return nil, fmt.Errorf("failed to seed quotes: %w", err)
	}

	log.Printf("Database initialized successfully at %s", dbPath)

	return database, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// seedQuotes inserts the default quote set when the store is empty.
// A database that has been emptied on purpose is indistinguishable from a
// fresh one, so seeding happens at startup only.
func (d *Database) seedQuotes() error {
	var count int64
	if err := d.DB.Model(&entities.Quote{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, quote := range defaultQuotes {
		quote.Key = uuid.NewString()
		if err := d.DB.Create(&quote).Error; err != nil {
			return fmt.Errorf("failed to create quote %q: %w", quote.Text, err)
		}
		log.Printf("Seeded quote: %s", quote.Category)
	}
	return nil
}
