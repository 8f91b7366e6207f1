package file

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/momentum-hr/performance-backend-go/internal/domain/task"
	"github.com/momentum-hr/performance-backend-go/internal/domain/user"
	"github.com/momentum-hr/performance-backend-go/internal/pkg/storage"
)

// MaxAttachmentSize caps a single task attachment.
const MaxAttachmentSize int64 = 10 << 20

var allowedExts = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".xls":  true,
	".xlsx": true,
	".ppt":  true,
	".pptx": true,
	".txt":  true,
	".csv":  true,
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".zip":  true,
}

type AttachmentService interface {
	// Upload stores the file and records it as the task's attachment,
	// replacing any previous one.
	Upload(ctx context.Context, actor user.Actor, taskID, filename string, file io.Reader) (task.TaskResponse, error)

	// Remove clears the attachment and deletes the stored bytes.
	Remove(ctx context.Context, actor user.Actor, taskID string) (task.TaskResponse, error)
}

type attachmentServiceImpl struct {
	tasks   task.TaskService
	storage storage.FileStorage
	maxSize int64
}

func NewAttachmentService(tasks task.TaskService, fileStorage storage.FileStorage) AttachmentService {
	return &attachmentServiceImpl{
		tasks:   tasks,
		storage: fileStorage,
		maxSize: MaxAttachmentSize,
	}
}

// Upload implements file.AttachmentService.
func (s *attachmentServiceImpl) Upload(ctx context.Context, actor user.Actor, taskID, filename string, file io.Reader) (task.TaskResponse, error) {
	filename = filepath.Base(strings.TrimSpace(filename))
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExts[ext] {
		return task.TaskResponse{}, fmt.Errorf("%w: %q", task.ErrUnsupportedFile, ext)
	}

	current, err := s.tasks.Get(ctx, actor, taskID)
	if err != nil {
		return task.TaskResponse{}, err
	}

	key := task.AttachmentPrefix(current.ID) + uuid.Must(uuid.NewV7()).String() + ext
	storedKey, err := s.storage.Upload(ctx, &sizeLimitReader{r: file, remaining: s.maxSize}, key)
	if err != nil {
		return task.TaskResponse{}, fmt.Errorf("failed to store attachment: %w", err)
	}

	updated, err := s.tasks.AttachFile(ctx, actor, current.ID, task.AttachFileRequest{
		FileName:   filename,
		StorageRef: storedKey,
	})
	if err != nil {
		s.discard(ctx, current.ID, storedKey)
		return task.TaskResponse{}, err
	}

	if current.Attachment != nil && current.Attachment.StorageRef != storedKey {
		s.discard(ctx, current.ID, current.Attachment.StorageRef)
	}
	return updated, nil
}

// Remove implements file.AttachmentService.
func (s *attachmentServiceImpl) Remove(ctx context.Context, actor user.Actor, taskID string) (task.TaskResponse, error) {
	current, err := s.tasks.Get(ctx, actor, taskID)
	if err != nil {
		return task.TaskResponse{}, err
	}

	updated, err := s.tasks.DetachFile(ctx, actor, current.ID)
	if err != nil {
		return task.TaskResponse{}, err
	}
	if current.Attachment != nil {
		s.discard(ctx, current.ID, current.Attachment.StorageRef)
	}
	return updated, nil
}

// discard deletes a blob stored under the task; failures leave an orphan file
// and are only logged.
func (s *attachmentServiceImpl) discard(ctx context.Context, taskID, key string) {
	if !task.OwnsStorageRef(taskID, key) {
		slog.Warn("refusing to delete attachment outside task namespace", "task_id", taskID, "key", key)
		return
	}
	if err := s.storage.Delete(ctx, key); err != nil {
		slog.Warn("failed to delete attachment", "key", key, "error", err)
	}
}

type sizeLimitReader struct {
	r         io.Reader
	remaining int64
}

func (l *sizeLimitReader) Read(p []byte) (int, error) {
	n, err := l.r.Read(p)
	l.remaining -= int64(n)
	if l.remaining < 0 {
		return n, task.ErrFileTooLarge
	}
	return n, err
}
