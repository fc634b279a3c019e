package postgres

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/restaurant-resolver/internal/domain"
	"github.com/restaurant-resolver/internal/domain/repository"
	"github.com/restaurant-resolver/internal/pkg/errors"
)

type restaurantRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewRestaurantRepository(db *DB) repository.RestaurantRepository {
	return &restaurantRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *restaurantRepository) GetByID(ctx context.Context, id string) (*domain.RestaurantPoint, error) {
	query := `
		SELECT id, name, lat, lon, award, cuisine, address
		FROM restaurants
		WHERE id = $1
	`

	var p domain.RestaurantPoint
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Lat, &p.Lon, &p.Award, &p.Cuisine, &p.Address,
	)

	if err == sql.ErrNoRows {
		return nil, errors.ErrRestaurantNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get restaurant by ID", zap.String("id", id), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	p.Source = domain.SourceDataset
	return &p, nil
}

func (r *restaurantRepository) QueryNear(
	ctx context.Context,
	lat, lon, radiusKm float64,
) ([]domain.RestaurantPoint, error) {
	query := `
		WITH point AS (
			SELECT ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography AS geom
		)
		SELECT
			id, name, lat, lon, award, cuisine, address,
			ST_Distance(geometry::geography, point.geom) AS distance
		FROM restaurants, point
		WHERE ST_DWithin(geometry::geography, point.geom, $3)
		ORDER BY distance
		LIMIT $4
	`

	// Convert radius from km to meters
	radiusMeters := radiusKm * 1000

	rows, err := r.db.QueryContext(ctx, query, lon, lat, radiusMeters, LimitRestaurants)
	if err != nil {
		r.logger.Error("Failed to query nearby restaurants", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	var points []domain.RestaurantPoint
	for rows.Next() {
		var p domain.RestaurantPoint
		var distance float64

		err := rows.Scan(&p.ID, &p.Name, &p.Lat, &p.Lon, &p.Award, &p.Cuisine, &p.Address, &distance)
		if err != nil {
			r.logger.Error("Failed to scan restaurant", zap.Error(err))
			continue
		}

		p.Source = domain.SourceDataset
		points = append(points, p)
	}

	return points, nil
}

func (r *restaurantRepository) All(ctx context.Context) ([]domain.RestaurantPoint, error) {
	query := `
		SELECT id, name, lat, lon, award, cuisine, address
		FROM restaurants
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to load restaurant dataset", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	var points []domain.RestaurantPoint
	for rows.Next() {
		var p domain.RestaurantPoint
		err := rows.Scan(&p.ID, &p.Name, &p.Lat, &p.Lon, &p.Award, &p.Cuisine, &p.Address)
		if err != nil {
			continue
		}
		p.Source = domain.SourceDataset
		points = append(points, p)
	}

	return points, nil
}
