package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"doabli/internal/models"
)

func TestPageCreateRequiresExistingParent(t *testing.T) {
	svc := NewPageService(newMemPages())
	ctx := context.Background()

	_, err := svc.Create(ctx, "u1", models.PageInput{Title: "child", ParentID: ptr(int64(77))})
	assert.ErrorIs(t, err, ErrParentNotFound)

	root, err := svc.Create(ctx, "u1", models.PageInput{Title: "root"})
	require.NoError(t, err)
	child, err := svc.Create(ctx, "u1", models.PageInput{Title: "child", ParentID: &root.ID})
	require.NoError(t, err)
	assert.Equal(t, root.ID, *child.ParentID)
}

func TestPageReparentCycleGuard(t *testing.T) {
	svc := NewPageService(newMemPages())
	ctx := context.Background()

	a, err := svc.Create(ctx, "u1", models.PageInput{Title: "a"})
	require.NoError(t, err)
	b, err := svc.Create(ctx, "u1", models.PageInput{Title: "b", ParentID: &a.ID})
	require.NoError(t, err)
	c, err := svc.Create(ctx, "u1", models.PageInput{Title: "c", ParentID: &b.ID})
	require.NoError(t, err)

	_, err = svc.Update(ctx, a.ID, models.PageUpdate{ParentID: &c.ID})
	assert.ErrorIs(t, err, ErrPageCycle)

	_, err = svc.Update(ctx, a.ID, models.PageUpdate{ParentID: &a.ID})
	assert.ErrorIs(t, err, ErrPageCycle)

	moved, err := svc.Update(ctx, c.ID, models.PageUpdate{ParentID: &a.ID})
	require.NoError(t, err)
	assert.Equal(t, a.ID, *moved.ParentID)

	detached, err := svc.Update(ctx, c.ID, models.PageUpdate{ParentID: ptr(int64(0))})
	require.NoError(t, err)
	assert.Nil(t, detached.ParentID)
}

func TestPageContentDefaultsToEmptyDocument(t *testing.T) {
	svc := NewPageService(newMemPages())
	p, err := svc.Create(context.Background(), "u1", models.PageInput{Title: "blank"})
	require.NoError(t, err)
	assert.Empty(t, p.Content.Blocks)
}
