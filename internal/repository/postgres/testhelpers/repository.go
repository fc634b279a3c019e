package testhelpers

import (
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/restaurant-resolver/internal/domain/repository"
	"github.com/restaurant-resolver/internal/repository/postgres"
)

// NewDBForTest creates a postgres.DB with test database and logger
func NewDBForTest(db *sqlx.DB, logger *zap.Logger) *postgres.DB {
	return postgres.NewDBForTest(db, logger)
}

// NewRestaurantRepositoryForTest creates a restaurant repository with test database and logger
func NewRestaurantRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.RestaurantRepository {
	pgDB := NewDBForTest(db, logger)
	return postgres.NewRestaurantRepository(pgDB)
}

// NewVisitRepositoryForTest creates a visit repository with test database and logger
func NewVisitRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.VisitRepository {
	pgDB := NewDBForTest(db, logger)
	return postgres.NewVisitRepository(pgDB)
}
