package testhelpers

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/restaurant-resolver/internal/domain"
)

// InsertRestaurant inserts a single restaurant row, deriving the PostGIS
// geometry column from lat/lon
func InsertRestaurant(db *sql.DB, p domain.RestaurantPoint) error {
	_, err := db.ExecContext(context.Background(), `
		INSERT INTO restaurants (id, name, lat, lon, award, cuisine, address, geometry)
		VALUES ($1, $2, $3, $4, $5, $6, $7, ST_SetSRID(ST_MakePoint($4, $3), 4326))
	`, p.ID, p.Name, p.Lat, p.Lon, p.Award, p.Cuisine, p.Address)
	if err != nil {
		return fmt.Errorf("insert restaurant %s: %w", p.ID, err)
	}
	return nil
}

// InsertRestaurants inserts a set of restaurant rows
func InsertRestaurants(db *sql.DB, points []domain.RestaurantPoint) error {
	for _, p := range points {
		if err := InsertRestaurant(db, p); err != nil {
			return err
		}
	}
	return nil
}
