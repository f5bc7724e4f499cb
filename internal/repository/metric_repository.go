package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/support-pipeline/internal/domain"
)

// MetricRepository appends and aggregates observability measurements.
type MetricRepository interface {
	Record(ctx context.Context, channel domain.Channel, metricType domain.MetricType, value float64, metadata map[string]any) error
	ChannelMetrics(ctx context.Context, channel *domain.Channel, hours int) ([]domain.ChannelMetric, error)
}

type metricRepository struct {
	pool *pgxpool.Pool
}

// NewMetricRepository instantiates repository.
func NewMetricRepository(pool *pgxpool.Pool) MetricRepository {
	return &metricRepository{pool: pool}
}

func (r *metricRepository) Record(ctx context.Context, channel domain.Channel, metricType domain.MetricType, value float64, metadata map[string]any) error {
	if metadata == nil {
		metadata = map[string]any{}
	}
	const query = `
        INSERT INTO agent_metrics (channel, metric_type, metric_value, metadata)
        VALUES ($1, $2, $3, $4)`
	_, err := r.pool.Exec(ctx, query, channel, metricType, value, metadata)
	return err
}

func (r *metricRepository) ChannelMetrics(ctx context.Context, channel *domain.Channel, hours int) ([]domain.ChannelMetric, error) {
	if hours <= 0 {
		hours = 24
	}
	base := `
        SELECT channel, metric_type, AVG(metric_value) AS avg_value, COUNT(*) AS count
        FROM agent_metrics
        WHERE recorded_at > NOW() - INTERVAL '1 hour' * $1`
	args := []any{hours}
	if channel != nil {
		base += ` AND channel = $2`
		args = append(args, *channel)
	}
	base += ` GROUP BY channel, metric_type`

	rows, err := r.pool.Query(ctx, base, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ChannelMetric
	for rows.Next() {
		var m domain.ChannelMetric
		if err := rows.Scan(&m.Channel, &m.MetricType, &m.AvgValue, &m.Count); err != nil {
			return nil, err
		}
		result = append(result, m)
	}
	return result, rows.Err()
}
