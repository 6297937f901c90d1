package database

import (
	"errors"

	"github.com/graminroute/hub/internal/models"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Product{},
		&models.Retailer{},
		&models.Order{},
	)
}

// Seed loads the staple-goods catalog and a handful of Jangaon shops so
// a fresh database has something to pool. Existing rows are left alone.
func Seed(db *gorm.DB) error {
	products := []models.Product{
		{ID: "P001", Name: "Rice (50kg)", Category: "Grains", UnitPrice: 2500, ReorderLevel: 10},
		{ID: "P002", Name: "Wheat Flour (40kg)", Category: "Grains", UnitPrice: 1800, ReorderLevel: 15},
		{ID: "P003", Name: "Sugar (50kg)", Category: "Sweeteners", UnitPrice: 2200, ReorderLevel: 12},
		{ID: "P004", Name: "Cooking Oil (15L)", Category: "Oils", UnitPrice: 1500, ReorderLevel: 20},
		{ID: "P005", Name: "Pulses Mix (25kg)", Category: "Pulses", UnitPrice: 3000, ReorderLevel: 8},
	}

	for _, p := range products {
		var existing models.Product
		if err := db.Where("id = ?", p.ID).First(&existing).Error; errors.Is(err, gorm.ErrRecordNotFound) {
			if err := db.Create(&p).Error; err != nil {
				return err
			}
		}
	}

	retailers := []models.Retailer{
		{ID: "R001", Name: "Sri Balaji Kirana 0", Location: "Jangaon District", Lat: 17.750854, Lon: 79.122778, CurrentStock: 162},
		{ID: "R002", Name: "Sri Balaji Kirana 1", Location: "Jangaon District", Lat: 17.714069, Lon: 79.224329, CurrentStock: 57},
		{ID: "R003", Name: "Sri Balaji Kirana 2", Location: "Jangaon District", Lat: 17.692614, Lon: 79.233112, CurrentStock: 45},
		{ID: "R004", Name: "Sri Balaji Kirana 3", Location: "Jangaon District", Lat: 17.733689, Lon: 79.157468, CurrentStock: 156},
		{ID: "R005", Name: "Sri Balaji Kirana 4", Location: "Jangaon District", Lat: 17.663602, Lon: 79.206898, CurrentStock: 10},
		{ID: "R006", Name: "Sri Balaji Kirana 5", Location: "Jangaon District", Lat: 17.667480, Lon: 79.096357, CurrentStock: 44},
		{ID: "R007", Name: "Sri Balaji Kirana 6", Location: "Jangaon District", Lat: 17.800985, Lon: 79.112704, CurrentStock: 149},
		{ID: "R008", Name: "Sri Balaji Kirana 7", Location: "Jangaon District", Lat: 17.835891, Lon: 79.184357, CurrentStock: 134},
		{ID: "R009", Name: "Sri Balaji Kirana 8", Location: "Jangaon District", Lat: 17.762900, Lon: 79.184926, CurrentStock: 77},
		{ID: "R010", Name: "Sri Balaji Kirana 9", Location: "Jangaon District", Lat: 17.751378, Lon: 79.217296, CurrentStock: 57},
	}

	for _, r := range retailers {
		var existing models.Retailer
		if err := db.Where("id = ?", r.ID).First(&existing).Error; errors.Is(err, gorm.ErrRecordNotFound) {
			if err := db.Create(&r).Error; err != nil {
				return err
			}
		}
	}

	return nil
}
