package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"doabli/internal/models"
)

var pageColumns = []string{"id", "title", "content", "project_id", "created_by_id", "parent_id", "created_at", "updated_at"}

type PageRepository interface {
	List(ctx context.Context, projectID *int64) ([]models.Page, error)
	GetByID(ctx context.Context, id int64) (*models.Page, error)
	Create(ctx context.Context, p *models.Page) error
	Update(ctx context.Context, id int64, u models.PageUpdate) (*models.Page, error)
	Delete(ctx context.Context, id int64) error
	// ParentChain returns id followed by each ancestor up to the root.
	ParentChain(ctx context.Context, id int64) ([]int64, error)
}

type pageRepository struct {
	db *sqlx.DB
}

func NewPageRepository(db *sqlx.DB) PageRepository {
	return &pageRepository{db: db}
}

func (r *pageRepository) List(ctx context.Context, projectID *int64) ([]models.Page, error) {
	q := psql.Select(pageColumns...).From("pages")
	if projectID != nil {
		q = q.Where(squirrel.Eq{"project_id": *projectID})
	}
	query, args, err := q.OrderBy("created_at DESC").ToSql()
	if err != nil {
		return nil, err
	}
	out := []models.Page{}
	if err := r.db.SelectContext(ctx, &out, query, args...); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *pageRepository) GetByID(ctx context.Context, id int64) (*models.Page, error) {
	query, args, err := psql.Select(pageColumns...).From("pages").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	var p models.Page
	if err := r.db.GetContext(ctx, &p, query, args...); err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *pageRepository) Create(ctx context.Context, p *models.Page) error {
	query, args, err := psql.Insert("pages").
		Columns("title", "content", "project_id", "created_by_id", "parent_id").
		Values(p.Title, p.Content, p.ProjectID, p.CreatedByID, p.ParentID).
		Suffix(returning(pageColumns)).
		ToSql()
	if err != nil {
		return err
	}
	return r.db.GetContext(ctx, p, query, args...)
}

// Update applies the non-nil fields. A zero ProjectID or ParentID clears the column.
func (r *pageRepository) Update(ctx context.Context, id int64, u models.PageUpdate) (*models.Page, error) {
	q := psql.Update("pages")
	if u.Title != nil {
		q = q.Set("title", *u.Title)
	}
	if u.Content != nil {
		q = q.Set("content", *u.Content)
	}
	if u.ProjectID != nil {
		q = q.Set("project_id", nullID(*u.ProjectID))
	}
	if u.ParentID != nil {
		q = q.Set("parent_id", nullID(*u.ParentID))
	}
	query, args, err := q.Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix(returning(pageColumns)).
		ToSql()
	if err != nil {
		return nil, err
	}
	var p models.Page
	if err := r.db.GetContext(ctx, &p, query, args...); err != nil {
		if noRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *pageRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM pages WHERE id = $1`, id)
	return err
}

func (r *pageRepository) ParentChain(ctx context.Context, id int64) ([]int64, error) {
	const q = `
		WITH RECURSIVE chain AS (
			SELECT id, parent_id, 1 AS depth FROM pages WHERE id = $1
			UNION ALL
			SELECT p.id, p.parent_id, c.depth + 1
			FROM pages p JOIN chain c ON p.id = c.parent_id
			WHERE c.depth < 256
		)
		SELECT id FROM chain ORDER BY depth`
	ids := []int64{}
	if err := r.db.SelectContext(ctx, &ids, q, id); err != nil {
		return nil, err
	}
	return ids, nil
}
