package file

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentum-hr/performance-backend-go/internal/domain/task"
	"github.com/momentum-hr/performance-backend-go/internal/domain/user"
	"github.com/momentum-hr/performance-backend-go/internal/pkg/storage"
	"github.com/momentum-hr/performance-backend-go/internal/service/authz"
	taskService "github.com/momentum-hr/performance-backend-go/internal/service/task"
	"github.com/momentum-hr/performance-backend-go/internal/testutil"
)

type fixture struct {
	store   *testutil.Store
	svc     *attachmentServiceImpl
	tasks   task.TaskService
	storage *storage.LocalStorage
	sup     user.Actor
	emp     user.Actor
	taskID  string
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	store := testutil.NewStore()
	sup := store.SeedAccount("Sam", "Engineering", user.RoleSupervisor)
	emp := store.SeedAccount("Eve", "Engineering", user.RoleEmployee)
	store.AddToTeam(sup, emp)

	tasks := taskService.NewTaskService(store.Tx, store.Tasks, store.Teams, authz.NewAuthorizer(store.Teams))
	created, err := tasks.Create(context.Background(), sup, task.CreateTaskRequest{
		EmployeeID:  emp.EmployeeID,
		Description: "Quarterly report",
		DueDate:     time.Now().AddDate(0, 0, 14).Format("2006-01-02"),
		Priority:    "High",
	})
	require.NoError(t, err)

	fs, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	return fixture{
		store:   store,
		svc:     NewAttachmentService(tasks, fs).(*attachmentServiceImpl),
		tasks:   tasks,
		storage: fs,
		sup:     sup,
		emp:     emp,
		taskID:  created.ID,
	}
}

func (f fixture) stored(t *testing.T, key string) string {
	t.Helper()
	r, err := f.storage.Open(context.Background(), key)
	require.NoError(t, err)
	defer r.Close()
	b, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(b)
}

func TestUpload(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.svc.Upload(ctx, f.emp, f.taskID, "report.pdf", strings.NewReader("v1"))
	require.NoError(t, err)
	require.NotNil(t, first.Attachment)
	assert.Equal(t, "report.pdf", first.Attachment.FileName)
	assert.Equal(t, "v1", f.stored(t, first.Attachment.StorageRef))

	second, err := f.svc.Upload(ctx, f.emp, f.taskID, "../final.PDF", strings.NewReader("v2"))
	require.NoError(t, err)
	assert.Equal(t, "final.PDF", second.Attachment.FileName)
	assert.Equal(t, "v2", f.stored(t, second.Attachment.StorageRef))

	_, err = f.storage.Open(ctx, first.Attachment.StorageRef)
	assert.Error(t, err, "replaced attachment is deleted")
}

func TestUpload_Rejects(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Upload(ctx, f.emp, f.taskID, "run.exe", strings.NewReader("x"))
	assert.ErrorIs(t, err, task.ErrUnsupportedFile)

	_, err = f.svc.Upload(ctx, f.sup, f.taskID, "notes.txt", strings.NewReader("x"))
	assert.ErrorIs(t, err, task.ErrNotTaskOwner)

	f.svc.maxSize = 4
	_, err = f.svc.Upload(ctx, f.emp, f.taskID, "big.txt", strings.NewReader("too large"))
	assert.ErrorIs(t, err, task.ErrFileTooLarge)

	got, err := f.tasks.Get(ctx, f.emp, f.taskID)
	require.NoError(t, err)
	assert.Nil(t, got.Attachment)
}

func TestRemove(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	up, err := f.svc.Upload(ctx, f.emp, f.taskID, "report.pdf", strings.NewReader("v1"))
	require.NoError(t, err)

	resp, err := f.svc.Remove(ctx, f.emp, f.taskID)
	require.NoError(t, err)
	assert.Nil(t, resp.Attachment)

	_, err = f.storage.Open(ctx, up.Attachment.StorageRef)
	assert.Error(t, err)

	_, err = f.svc.Remove(ctx, f.emp, f.taskID)
	assert.ErrorIs(t, err, task.ErrNoAttachment)
}

func TestRemove_LeavesOtherTasksBlobs(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	victim, err := f.svc.Upload(ctx, f.emp, f.taskID, "report.pdf", strings.NewReader("victim"))
	require.NoError(t, err)
	victimKey := victim.Attachment.StorageRef

	mallory := f.store.SeedAccount("Mal", "Engineering", user.RoleEmployee)
	f.store.AddToTeam(f.sup, mallory)
	own, err := f.tasks.Create(ctx, f.sup, task.CreateTaskRequest{
		EmployeeID:  mallory.EmployeeID,
		Description: "Expense summary",
		DueDate:     time.Now().AddDate(0, 0, 14).Format("2006-01-02"),
		Priority:    "Low",
	})
	require.NoError(t, err)

	_, err = f.tasks.AttachFile(ctx, mallory, own.ID, task.AttachFileRequest{FileName: "report.pdf", StorageRef: victimKey})
	assert.ErrorIs(t, err, task.ErrForeignAttachment)

	_, err = f.svc.Remove(ctx, mallory, own.ID)
	assert.ErrorIs(t, err, task.ErrNoAttachment)

	f.svc.discard(ctx, own.ID, victimKey)
	assert.Equal(t, "victim", f.stored(t, victimKey))
}
