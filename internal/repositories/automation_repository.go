package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"doabli/internal/models"
)

var automationColumns = []string{
	"id", "name", "trigger", "actions", "is_active", "project_id", "created_by_id", "created_at", "updated_at",
}

type AutomationRepository interface {
	List(ctx context.Context, projectID *int64) ([]models.Automation, error)
	GetByID(ctx context.Context, id int64) (*models.Automation, error)
	Create(ctx context.Context, a *models.Automation) error
	Update(ctx context.Context, id int64, u models.AutomationUpdate) (*models.Automation, error)
	Delete(ctx context.Context, id int64) error
}

type automationRepository struct {
	db *sqlx.DB
}

func NewAutomationRepository(db *sqlx.DB) AutomationRepository {
	return &automationRepository{db: db}
}

func (r *automationRepository) List(ctx context.Context, projectID *int64) ([]models.Automation, error) {
	q := psql.Select(automationColumns...).From("automations")
	if projectID != nil {
		q = q.Where(squirrel.Eq{"project_id": *projectID})
	}
	query, args, err := q.OrderBy("created_at DESC").ToSql()
	if err != nil {
		return nil, err
	}
	out := []models.Automation{}
	if err := r.db.SelectContext(ctx, &out, query, args...); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *automationRepository) GetByID(ctx context.Context, id int64) (*models.Automation, error) {
	query, args, err := psql.Select(automationColumns...).From("automations").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	var a models.Automation
	if err := r.db.GetContext(ctx, &a, query, args...); err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (r *automationRepository) Create(ctx context.Context, a *models.Automation) error {
	query, args, err := psql.Insert("automations").
		Columns("name", "trigger", "actions", "is_active", "project_id", "created_by_id").
		Values(a.Name, a.Trigger, a.Actions, a.IsActive, a.ProjectID, a.CreatedByID).
		Suffix(returning(automationColumns)).
		ToSql()
	if err != nil {
		return err
	}
	return r.db.GetContext(ctx, a, query, args...)
}

func (r *automationRepository) Update(ctx context.Context, id int64, u models.AutomationUpdate) (*models.Automation, error) {
	q := psql.Update("automations")
	if u.Name != nil {
		q = q.Set("name", *u.Name)
	}
	if u.Trigger != nil {
		q = q.Set("trigger", *u.Trigger)
	}
	if u.Actions != nil {
		q = q.Set("actions", *u.Actions)
	}
	if u.IsActive != nil {
		q = q.Set("is_active", *u.IsActive)
	}
	if u.ProjectID != nil {
		q = q.Set("project_id", nullID(*u.ProjectID))
	}
	query, args, err := q.Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix(returning(automationColumns)).
		ToSql()
	if err != nil {
		return nil, err
	}
	var a models.Automation
	if err := r.db.GetContext(ctx, &a, query, args...); err != nil {
		if noRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *automationRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM automations WHERE id = $1`, id)
	return err
}
