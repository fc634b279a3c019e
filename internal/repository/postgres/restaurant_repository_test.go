package postgres_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/restaurant-resolver/internal/domain"
	"github.com/restaurant-resolver/internal/domain/repository"
	"github.com/restaurant-resolver/internal/pkg/errors"
	"github.com/restaurant-resolver/internal/repository/postgres/testhelpers"
)

// RestaurantRepositoryTestSuite tests all methods of RestaurantRepository
type RestaurantRepositoryTestSuite struct {
	suite.Suite
	testDB *testhelpers.TestDB
	repo   repository.RestaurantRepository
	ctx    context.Context
}

// SetupSuite runs once before all tests in the suite
func (s *RestaurantRepositoryTestSuite) SetupSuite() {
	// Initialize test database connection
	s.testDB = testhelpers.SetupTestDB(s.T())

	// Apply migrations (skip if tables already exist)
	_ = testhelpers.ApplyMigrations(
		s.testDB.DB.DB,
		"../../../migrations",
	)

	// Clean up existing data first
	err := s.testDB.Cleanup(context.Background())
	s.NoError(err, "Failed to cleanup test database")

	// Load fixtures
	award3 := "3 Stars"
	award1 := "1 Star"
	cuisine := "French"
	err = testhelpers.InsertRestaurants(s.testDB.DB.DB, []domain.RestaurantPoint{
		{ID: "r1", Name: "Le Bernardin", Lat: 40.7614, Lon: -73.9819, Award: &award3, Cuisine: &cuisine},
		{ID: "r2", Name: "Joe's Pizza", Lat: 40.7306, Lon: -74.0021},
		{ID: "r3", Name: "Gramercy Tavern", Lat: 40.7384, Lon: -73.9885, Award: &award1},
		{ID: "r4", Name: "Septime", Lat: 48.8531, Lon: 2.3839},
	})
	s.NoError(err, "Failed to load fixtures")

	// Create repository using test helper that wraps DB with logger
	s.repo = testhelpers.NewRestaurantRepositoryForTest(s.testDB.DB, s.testDB.Logger)
}

// TearDownSuite runs once after all tests in the suite
func (s *RestaurantRepositoryTestSuite) TearDownSuite() {
	if s.testDB != nil {
		_ = s.testDB.Cleanup(context.Background())
		s.testDB.Close()
	}
}

// SetupTest runs before each test
func (s *RestaurantRepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()
}

// ============================================================================
// GetByID Tests
// ============================================================================

func (s *RestaurantRepositoryTestSuite) TestGetByID_Success() {
	// Act
	restaurant, err := s.repo.GetByID(s.ctx, "r1")

	// Assert
	s.NoError(err)
	s.NotNil(restaurant)
	s.Equal("r1", restaurant.ID)
	s.Equal("Le Bernardin", restaurant.Name)
	s.InDelta(40.7614, restaurant.Lat, 0.0001)
	s.InDelta(-73.9819, restaurant.Lon, 0.0001)
	s.NotNil(restaurant.Award)
	s.Equal("3 Stars", *restaurant.Award)
	s.NotNil(restaurant.Cuisine)
	s.Equal("French", *restaurant.Cuisine)
	s.Equal(domain.SourceDataset, restaurant.Source)
}

func (s *RestaurantRepositoryTestSuite) TestGetByID_NotFound() {
	// Act
	restaurant, err := s.repo.GetByID(s.ctx, "missing-id")

	// Assert
	s.ErrorIs(err, errors.ErrRestaurantNotFound)
	s.Nil(restaurant)
}

// ============================================================================
// QueryNear Tests
// ============================================================================

func (s *RestaurantRepositoryTestSuite) TestQueryNear_ReturnsSortedByDistance() {
	// Act - search near midtown Manhattan with a 6km radius
	points, err := s.repo.QueryNear(s.ctx, 40.7580, -73.9855, 6)

	// Assert - all three NYC restaurants, nearest first; Paris excluded
	s.NoError(err)
	s.Len(points, 3)
	s.Equal("r1", points[0].ID)
	s.Equal("r3", points[1].ID)
	s.Equal("r2", points[2].ID)
	for _, p := range points {
		s.Equal(domain.SourceDataset, p.Source)
	}
}

func (s *RestaurantRepositoryTestSuite) TestQueryNear_SmallRadius() {
	// Act - 1km around Le Bernardin only
	points, err := s.repo.QueryNear(s.ctx, 40.7614, -73.9819, 1)

	// Assert
	s.NoError(err)
	s.Len(points, 1)
	s.Equal("r1", points[0].ID)
}

func (s *RestaurantRepositoryTestSuite) TestQueryNear_NoResults() {
	// Act - middle of the Atlantic
	points, err := s.repo.QueryNear(s.ctx, 30.0, -40.0, 5)

	// Assert
	s.NoError(err)
	s.Empty(points)
}

// ============================================================================
// All Tests
// ============================================================================

func (s *RestaurantRepositoryTestSuite) TestAll_ReturnsFullDataset() {
	// Act
	points, err := s.repo.All(s.ctx)

	// Assert - ordered by id
	s.NoError(err)
	s.Len(points, 4)
	s.Equal("r1", points[0].ID)
	s.Equal("r4", points[3].ID)
}

func TestRestaurantRepositorySuite(t *testing.T) {
	suite.Run(t, new(RestaurantRepositoryTestSuite))
}
