package postgres

import (
	"context"
	"log/slog"

	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/platform/logger"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// PostgresStatsStore implements the store.StatsStore interface
// using a PostgreSQL database as the storage backend.
type PostgresStatsStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresStatsStore creates a new PostgreSQL implementation of the
// StatsStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresStatsStore(db store.DBTX, logger *slog.Logger) *PostgresStatsStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresStatsStore{
		db:     db,
		logger: logger.With(slog.String("component", "stats_store")),
	}
}

// Ensure PostgresStatsStore implements store.StatsStore interface
var _ store.StatsStore = (*PostgresStatsStore)(nil)

// UserTaskSummaries implements store.StatsStore.UserTaskSummaries
// Both counts come from one LEFT JOIN + GROUP BY pass over the tasks
// table. COUNT(DISTINCT t.id) guards against double-counting should the
// join ever fan out; the FILTER clause restricts the open count to the
// still-actionable statuses.
func (s *PostgresStatsStore) UserTaskSummaries(
	ctx context.Context,
) ([]*domain.UserTaskSummary, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT
			u.id,
			u.email,
			u.username,
			u.is_active,
			COUNT(DISTINCT t.id) FILTER (WHERE t.status IN ('TODO', 'DOING')) AS open_tasks,
			COUNT(DISTINCT t.id) AS total_tasks
		FROM users u
		LEFT JOIN tasks t ON t.user_id = u.id
		GROUP BY u.id, u.email, u.username, u.is_active, u.created_at
		ORDER BY u.created_at, u.id
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to query user task summaries",
			slog.String("error", err.Error()))
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	summaries := []*domain.UserTaskSummary{}
	for rows.Next() {
		var summary domain.UserTaskSummary
		if err := rows.Scan(
			&summary.ID,
			&summary.Email,
			&summary.Username,
			&summary.IsActive,
			&summary.OpenTasks,
			&summary.TotalTasks,
		); err != nil {
			log.Error("failed to scan summary row", slog.String("error", err.Error()))
			return nil, err
		}
		summaries = append(summaries, &summary)
	}
	if err := rows.Err(); err != nil {
		log.Error("error iterating summary rows", slog.String("error", err.Error()))
		return nil, err
	}

	log.Debug("computed user task summaries", slog.Int("user_count", len(summaries)))
	return summaries, nil
}
