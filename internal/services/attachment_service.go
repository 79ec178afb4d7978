package services

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"doabli/internal/models"
	"doabli/internal/repositories"
)

const MaxAttachmentBytes = 25 << 20

type AttachmentService interface {
	List(ctx context.Context, taskID int64) ([]models.TaskAttachment, error)
	GetByID(ctx context.Context, id int64) (*models.TaskAttachment, error)
	// Upload stores r under the task's directory and records it.
	Upload(ctx context.Context, taskID int64, userID, fileName string, r io.Reader) (*models.TaskAttachment, error)
	Delete(ctx context.Context, id int64) error
	// SweepOrphans removes stored files of tasks that no longer exist.
	SweepOrphans(ctx context.Context) (int64, error)
}

type attachmentService struct {
	repo    repositories.AttachmentRepository
	tasks   repositories.TaskRepository
	rootDir string
}

func NewAttachmentService(repo repositories.AttachmentRepository, tasks repositories.TaskRepository, rootDir string) AttachmentService {
	return &attachmentService{repo: repo, tasks: tasks, rootDir: rootDir}
}

func (s *attachmentService) List(ctx context.Context, taskID int64) ([]models.TaskAttachment, error) {
	return s.repo.ListByTask(ctx, taskID)
}

func (s *attachmentService) GetByID(ctx context.Context, id int64) (*models.TaskAttachment, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *attachmentService) Upload(ctx context.Context, taskID int64, userID, fileName string, r io.Reader) (*models.TaskAttachment, error) {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, ErrTaskNotFound
	}

	name := cleanFileName(fileName)
	dir := filepath.Join(s.rootDir, "tasks", strconv.FormatInt(taskID, 10))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create attachment dir: %w", err)
	}
	path := filepath.Join(dir, uuid.NewString()+filepath.Ext(name))

	size, err := writeLimited(path, r, MaxAttachmentBytes)
	if err != nil {
		_ = os.Remove(path)
		return nil, err
	}

	var mime *string
	if m, err := mimetype.DetectFile(path); err == nil {
		v := m.String()
		mime = &v
	}

	a := &models.TaskAttachment{
		FileName:     name,
		FileSize:     &size,
		MimeType:     mime,
		FilePath:     path,
		TaskID:       taskID,
		UploadedByID: userID,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		_ = os.Remove(path)
		return nil, err
	}
	return a, nil
}

func (s *attachmentService) Delete(ctx context.Context, id int64) error {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if a != nil {
		if err := os.Remove(a.FilePath); err != nil && !os.IsNotExist(err) {
			log.Printf("[attachment][delete][warn] remove %s: %v", a.FilePath, err)
		}
	}
	return nil
}

// SweepOrphans deletes tasks/<id> directories whose task row is gone,
// e.g. after a project delete cascaded through its tasks.
func (s *attachmentService) SweepOrphans(ctx context.Context) (int64, error) {
	base := filepath.Join(s.rootDir, "tasks")
	entries, err := os.ReadDir(base)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("read attachment root: %w", err)
	}
	var removed int64
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		taskID, err := strconv.ParseInt(e.Name(), 10, 64)
		if err != nil {
			continue
		}
		task, err := s.tasks.GetByID(ctx, taskID)
		if err != nil {
			return removed, err
		}
		if task != nil {
			continue
		}
		if err := os.RemoveAll(filepath.Join(base, e.Name())); err != nil {
			log.Printf("[attachment][sweep][warn] task=%d: %v", taskID, err)
			continue
		}
		removed++
	}
	return removed, nil
}

func writeLimited(path string, r io.Reader, limit int64) (int64, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return 0, fmt.Errorf("create attachment: %w", err)
	}
	n, err := io.Copy(f, io.LimitReader(r, limit+1))
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return 0, fmt.Errorf("write attachment: %w", err)
	}
	if n > limit {
		return 0, ErrFileTooLarge
	}
	return n, nil
}

func cleanFileName(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	name = strings.TrimSpace(name)
	if name == "" || name == "." || name == "/" {
		return "file"
	}
	if len(name) > 255 {
		ext := filepath.Ext(name)
		if len(ext) > 32 {
			ext = ""
		}
		cut := 255 - len(ext)
		for cut > 0 && !utf8.RuneStart(name[cut]) {
			cut--
		}
		name = name[:cut] + ext
	}
	return name
}
