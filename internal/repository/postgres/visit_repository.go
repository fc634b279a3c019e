package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/restaurant-resolver/internal/domain/repository"
	"github.com/restaurant-resolver/internal/pkg/errors"
)

type visitRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewVisitRepository(db *DB) repository.VisitRepository {
	return &visitRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *visitRepository) GetVisitedIDs(ctx context.Context) (map[string]struct{}, error) {
	query := `SELECT DISTINCT restaurant_id FROM visits`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to load visited ids", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	visited := make(map[string]struct{})
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			continue
		}
		visited[id] = struct{}{}
	}

	return visited, nil
}

func (r *visitRepository) MarkVisited(ctx context.Context, restaurantID string) error {
	query := `
		INSERT INTO visits (restaurant_id, visited_at)
		VALUES ($1, NOW())
		ON CONFLICT (restaurant_id) DO UPDATE SET visited_at = NOW()
	`

	if _, err := r.db.ExecContext(ctx, query, restaurantID); err != nil {
		r.logger.Error("Failed to mark restaurant as visited", zap.String("id", restaurantID), zap.Error(err))
		return errors.ErrDatabaseError
	}

	return nil
}
