package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/support-pipeline/internal/domain"
)

// KnowledgeRepository searches product documentation.
type KnowledgeRepository interface {
	Search(ctx context.Context, query string, limit int) ([]domain.KnowledgeResult, error)
}

type knowledgeRepository struct {
	pool *pgxpool.Pool
}

// NewKnowledgeRepository instantiates repository.
func NewKnowledgeRepository(pool *pgxpool.Pool) KnowledgeRepository {
	return &knowledgeRepository{pool: pool}
}

// Search ranks articles with full-text search and falls back to substring
// matching when the query yields no tsquery hits.
func (r *knowledgeRepository) Search(ctx context.Context, query string, limit int) ([]domain.KnowledgeResult, error) {
	if limit <= 0 {
		limit = 5
	}
	const ranked = `
        SELECT id, title, content, category,
               ts_rank(to_tsvector('english', title || ' ' || content), plainto_tsquery('english', $1)) AS relevance
        FROM knowledge_base
        WHERE to_tsvector('english', title || ' ' || content) @@ plainto_tsquery('english', $1)
        ORDER BY relevance DESC
        LIMIT $2`
	results, err := r.search(ctx, ranked, query, limit)
	if err != nil {
		return nil, err
	}
	if len(results) > 0 {
		return results, nil
	}

	const fallback = `
        SELECT id, title, content, category, 0.5 AS relevance
        FROM knowledge_base
        WHERE content ILIKE '%' || $1 || '%' OR title ILIKE '%' || $1 || '%'
        LIMIT $2`
	return r.search(ctx, fallback, query, limit)
}

func (r *knowledgeRepository) search(ctx context.Context, query, term string, limit int) ([]domain.KnowledgeResult, error) {
	rows, err := r.pool.Query(ctx, query, term, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.KnowledgeResult
	for rows.Next() {
		var res domain.KnowledgeResult
		if err := rows.Scan(&res.ID, &res.Title, &res.Content, &res.Category, &res.Relevance); err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, rows.Err()
}
