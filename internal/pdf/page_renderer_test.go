package pdf

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"doabli/internal/models"
)

func TestRenderPage(t *testing.T) {
	page := &models.Page{
		ID:    4,
		Title: "Release notes",
		Content: models.PageContent{Blocks: []models.ContentBlock{
			{Type: models.BlockParagraph, Text: "First paragraph with café."},
			{Type: "heading", Text: "ignored"},
			{Type: models.BlockParagraph, Text: ""},
			{Type: models.BlockParagraph, Text: "Second paragraph."},
		}},
		UpdatedAt: time.Date(2025, 1, 2, 10, 0, 0, 0, time.UTC),
	}

	var buf bytes.Buffer
	require.NoError(t, NewPageRenderer("").RenderPage(&buf, page))

	out := buf.Bytes()
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	assert.True(t, bytes.Contains(out, []byte("%%EOF")))
}

func TestRenderPage_EmptyContent(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewPageRenderer("").RenderPage(&buf, &models.Page{ID: 1, Title: "Blank"}))
	assert.NotZero(t, buf.Len())
}

func TestRenderPage_Nil(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, NewPageRenderer("").RenderPage(&buf, nil))
	assert.Zero(t, buf.Len())
}

func TestRenderPage_MissingFont(t *testing.T) {
	var buf bytes.Buffer
	err := NewPageRenderer("/nonexistent/font.ttf").RenderPage(&buf, &models.Page{ID: 2, Title: "x"})
	assert.Error(t, err)
}

func TestDateLine(t *testing.T) {
	created := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "Updated 2024-12-31", dateLine(&models.Page{CreatedAt: created}))
	assert.Equal(t, "", dateLine(&models.Page{}))
}
