package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned when an operation targets a missing record.
var ErrNotFound = errors.New("article not found")

// PgArticleRepository handles database operations for article records.
type PgArticleRepository struct {
	db *DB
}

var _ ArticleRepository = (*PgArticleRepository)(nil)

func NewArticleRepository(db *DB) *PgArticleRepository {
	return &PgArticleRepository{db: db}
}

const articleColumns = `id, article_id, COALESCE(source, ''), COALESCE(author, ''),
	title, COALESCE(description, ''), COALESCE(url, ''), COALESCE(image_url, ''),
	published_at, COALESCE(content, ''), category, COALESCE(summary, ''),
	summary_generated_at, view_count, save_count, created_at, updated_at`

func (r *PgArticleRepository) GetByArticleID(articleID string) (*Article, error) {
	row := r.db.QueryRow(`
		SELECT `+articleColumns+`
		FROM articles
		WHERE article_id = $1
	`, articleID)

	article, err := scanArticle(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get article: %w", err)
	}

	return article, nil
}

func (r *PgArticleRepository) UpsertSummary(articleID, summary string, fields NewArticleFields) (*Article, error) {
	publishedAt := fields.PublishedAt
	if publishedAt.IsZero() {
		publishedAt = time.Now().UTC()
	}

	row := r.db.QueryRow(`
		INSERT INTO articles (
			article_id, source, author, title, description, url, image_url,
			published_at, content, category, summary, summary_generated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW())
		ON CONFLICT (article_id) DO UPDATE SET
			summary = EXCLUDED.summary,
			summary_generated_at = EXCLUDED.summary_generated_at,
			updated_at = NOW()
		RETURNING `+articleColumns+`
	`, articleID, fields.Source, fields.Author, fields.Title, fields.Description,
		fields.URL, fields.ImageURL, publishedAt, fields.Content,
		NormalizeCategory(fields.Category), summary)

	article, err := scanArticle(row)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert summary for article %s: %w", articleID, err)
	}

	return article, nil
}

func (r *PgArticleRepository) IncrementViewCount(articleID string) error {
	return r.incrementCounter(articleID, "view_count")
}

func (r *PgArticleRepository) IncrementSaveCount(articleID string) error {
	return r.incrementCounter(articleID, "save_count")
}

func (r *PgArticleRepository) incrementCounter(articleID, column string) error {
	// column is one of two compile-time constants, never user input
	result, err := r.db.Exec(`
		UPDATE articles
		SET `+column+` = `+column+` + 1, updated_at = NOW()
		WHERE article_id = $1
	`, articleID)
	if err != nil {
		return fmt.Errorf("failed to increment %s: %w", column, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *PgArticleRepository) GetArticleCount() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM articles").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get article count: %w", err)
	}
	return count, nil
}

func (r *PgArticleRepository) GetSummaryStats() (int, int, error) {
	var total, summarized int
	err := r.db.QueryRow(`
		SELECT
			COUNT(*) AS total,
			COUNT(summary_generated_at) AS summarized
		FROM articles
	`).Scan(&total, &summarized)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to get summary stats: %w", err)
	}
	return total, summarized, nil
}

func scanArticle(row *sql.Row) (*Article, error) {
	var a Article
	err := row.Scan(
		&a.ID, &a.ArticleID, &a.Source, &a.Author,
		&a.Title, &a.Description, &a.URL, &a.ImageURL,
		&a.PublishedAt, &a.Content, &a.Category, &a.Summary,
		&a.SummaryGeneratedAt, &a.ViewCount, &a.SaveCount, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
