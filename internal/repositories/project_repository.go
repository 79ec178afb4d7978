package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"doabli/internal/models"
)

var projectColumns = []string{"id", "name", "description", "color", "owner_id", "created_at", "updated_at"}

type ProjectRepository interface {
	List(ctx context.Context, ownerID string) ([]models.Project, error)
	GetByID(ctx context.Context, id int64) (*models.Project, error)
	Create(ctx context.Context, p *models.Project) error
	Update(ctx context.Context, id int64, u models.ProjectUpdate) (*models.Project, error)
	// Delete removes the project; tasks, pages, members, automations and
	// invitations go with it through ON DELETE CASCADE.
	Delete(ctx context.Context, id int64) error
}

type projectRepository struct {
	db *sqlx.DB
}

func NewProjectRepository(db *sqlx.DB) ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) List(ctx context.Context, ownerID string) ([]models.Project, error) {
	q := psql.Select(projectColumns...).From("projects")
	if ownerID != "" {
		q = q.Where(squirrel.Eq{"owner_id": ownerID})
	}
	query, args, err := q.OrderBy("created_at DESC").ToSql()
	if err != nil {
		return nil, err
	}
	out := []models.Project{}
	if err := r.db.SelectContext(ctx, &out, query, args...); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *projectRepository) GetByID(ctx context.Context, id int64) (*models.Project, error) {
	query, args, err := psql.Select(projectColumns...).From("projects").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	var p models.Project
	if err := r.db.GetContext(ctx, &p, query, args...); err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *projectRepository) Create(ctx context.Context, p *models.Project) error {
	query, args, err := psql.Insert("projects").
		Columns("name", "description", "color", "owner_id").
		Values(p.Name, p.Description, p.Color, p.OwnerID).
		Suffix(returning(projectColumns)).
		ToSql()
	if err != nil {
		return err
	}
	return r.db.GetContext(ctx, p, query, args...)
}

func (r *projectRepository) Update(ctx context.Context, id int64, u models.ProjectUpdate) (*models.Project, error) {
	q := psql.Update("projects")
	if u.Name != nil {
		q = q.Set("name", *u.Name)
	}
	if u.Description != nil {
		q = q.Set("description", nullString(*u.Description))
	}
	if u.Color != nil {
		q = q.Set("color", *u.Color)
	}
	query, args, err := q.Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix(returning(projectColumns)).
		ToSql()
	if err != nil {
		return nil, err
	}
	var p models.Project
	if err := r.db.GetContext(ctx, &p, query, args...); err != nil {
		if noRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *projectRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = $1`, id)
	return err
}
