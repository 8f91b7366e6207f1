package task

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentum-hr/performance-backend-go/internal/domain/task"
	"github.com/momentum-hr/performance-backend-go/internal/domain/user"
	"github.com/momentum-hr/performance-backend-go/internal/pkg/validator"
	"github.com/momentum-hr/performance-backend-go/internal/service/authz"
	"github.com/momentum-hr/performance-backend-go/internal/testutil"
)

var fixedNow = time.Date(2025, time.November, 3, 9, 30, 0, 0, time.UTC)

type fixture struct {
	store *testutil.Store
	svc   *TaskServiceImpl
	sup   user.Actor
	emp   user.Actor
	admin user.Actor
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	store := testutil.NewStore()
	f := fixture{
		store: store,
		sup:   store.SeedAccount("Sam", "Engineering", user.RoleSupervisor),
		emp:   store.SeedAccount("Eve", "Engineering", user.RoleEmployee),
		admin: store.SeedAccount("Ada", "HR", user.RoleAdmin),
	}
	store.AddToTeam(f.sup, f.emp)

	svc := NewTaskService(store.Tx, store.Tasks, store.Teams, authz.NewAuthorizer(store.Teams)).(*TaskServiceImpl)
	svc.now = func() time.Time { return fixedNow }
	f.svc = svc
	return f
}

func (f fixture) assign(t *testing.T) task.TaskResponse {
	t.Helper()
	resp, err := f.svc.Create(context.Background(), f.sup, task.CreateTaskRequest{
		EmployeeID:  f.emp.EmployeeID,
		Description: "  Write quarterly report  ",
		DueDate:     "2025-11-20",
		Priority:    "High",
	})
	require.NoError(t, err)
	return resp
}

func (f fixture) setStatus(t *testing.T, id, status string) task.TaskResponse {
	t.Helper()
	resp, err := f.svc.UpdateStatus(context.Background(), f.emp, id, task.UpdateStatusRequest{Status: status})
	require.NoError(t, err)
	return resp
}

func TestCreate(t *testing.T) {
	f := newFixture(t)

	resp := f.assign(t)

	assert.Equal(t, "Write quarterly report", resp.Description)
	assert.Equal(t, string(task.StatusNotStarted), resp.Status)
	assert.Equal(t, string(task.ReviewPending), resp.ReviewStatus)
	assert.Equal(t, "2025-11-03", resp.CreatedDate)
	assert.Equal(t, f.sup.AccountID, resp.AssignedBy)
}

func TestCreate_Unauthorized(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	outsider := f.store.SeedAccount("Oscar", "Sales", user.RoleEmployee)
	req := task.CreateTaskRequest{
		EmployeeID:  outsider.EmployeeID,
		Description: "x",
		DueDate:     "2025-11-20",
		Priority:    "Low",
	}

	_, err := f.svc.Create(ctx, f.sup, req)
	assert.ErrorIs(t, err, user.ErrNotTeamManager)

	req.EmployeeID = f.emp.EmployeeID
	_, err = f.svc.Create(ctx, f.emp, req)
	assert.ErrorIs(t, err, user.ErrInsufficientPermissions)

	_, err = f.svc.Create(ctx, f.admin, req)
	assert.ErrorIs(t, err, user.ErrInsufficientPermissions)
}

func TestCreate_Validation(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Create(context.Background(), f.sup, task.CreateTaskRequest{
		EmployeeID:  f.emp.EmployeeID,
		Description: "x",
		DueDate:     "20/11/2025",
		Priority:    "Urgent",
	})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	fields := verrs.ToMap()
	assert.Contains(t, fields, "due_date")
	assert.Contains(t, fields, "priority")
}

func TestUpdateStatus_Lifecycle(t *testing.T) {
	f := newFixture(t)
	created := f.assign(t)

	inProgress := f.setStatus(t, created.ID, "In Progress")
	assert.Nil(t, inProgress.CompletedDate)

	completed := f.setStatus(t, created.ID, "Completed")
	require.NotNil(t, completed.CompletedDate)
	assert.Equal(t, "2025-11-03", *completed.CompletedDate)

	reopened := f.setStatus(t, created.ID, "In Progress")
	assert.Nil(t, reopened.CompletedDate)
	assert.Equal(t, string(task.ReviewPending), reopened.ReviewStatus)
}

func TestUpdateStatus_OnlyOwner(t *testing.T) {
	f := newFixture(t)
	created := f.assign(t)
	peer := f.store.SeedAccount("Pat", "Engineering", user.RoleEmployee)

	_, err := f.svc.UpdateStatus(context.Background(), peer, created.ID, task.UpdateStatusRequest{Status: "In Progress"})
	assert.ErrorIs(t, err, task.ErrNotTaskOwner)
}

func TestUpdateStatus_CannotSetAccepted(t *testing.T) {
	f := newFixture(t)
	created := f.assign(t)

	_, err := f.svc.UpdateStatus(context.Background(), f.emp, created.ID, task.UpdateStatusRequest{Status: "Accepted"})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}

func TestUpdateStatus_NotFound(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.UpdateStatus(context.Background(), f.emp, testutil.NewID(), task.UpdateStatusRequest{Status: "In Progress"})
	assert.ErrorIs(t, err, task.ErrTaskNotFound)
}

func TestReview_AcceptFreezesTask(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created := f.assign(t)
	f.setStatus(t, created.ID, "Completed")

	accepted, err := f.svc.Review(ctx, f.sup, created.ID, task.ReviewTaskRequest{Action: "accept", Notes: "great"})
	require.NoError(t, err)
	assert.Equal(t, string(task.StatusAccepted), accepted.Status)
	assert.Equal(t, string(task.ReviewAccepted), accepted.ReviewStatus)
	require.NotNil(t, accepted.ReviewedBy)
	assert.Equal(t, f.sup.AccountID, *accepted.ReviewedBy)

	_, err = f.svc.UpdateStatus(ctx, f.emp, created.ID, task.UpdateStatusRequest{Status: "In Progress"})
	assert.ErrorIs(t, err, task.ErrInvalidTransition)

	_, err = f.svc.AttachFile(ctx, f.emp, created.ID, task.AttachFileRequest{FileName: "a.pdf", StorageRef: "ref"})
	assert.ErrorIs(t, err, task.ErrTaskAccepted)

	_, err = f.svc.Review(ctx, f.sup, created.ID, task.ReviewTaskRequest{Action: "reject"})
	assert.ErrorIs(t, err, task.ErrTaskAccepted)
}

func TestReview_RejectReopens(t *testing.T) {
	f := newFixture(t)
	created := f.assign(t)
	f.setStatus(t, created.ID, "Completed")

	rejected, err := f.svc.Review(context.Background(), f.sup, created.ID, task.ReviewTaskRequest{Action: "reject", Notes: "needs sources"})
	require.NoError(t, err)

	assert.Equal(t, string(task.StatusInProgress), rejected.Status)
	assert.Equal(t, string(task.ReviewPending), rejected.ReviewStatus)
	assert.Nil(t, rejected.CompletedDate)
	assert.Equal(t, 1, rejected.RejectionCount)
	require.NotNil(t, rejected.ReviewNotes)
	assert.Equal(t, "needs sources", *rejected.ReviewNotes)
}

func TestReview_Guards(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created := f.assign(t)

	_, err := f.svc.Review(ctx, f.sup, created.ID, task.ReviewTaskRequest{Action: "accept"})
	assert.ErrorIs(t, err, task.ErrNotReviewable)

	_, err = f.svc.Review(ctx, f.sup, created.ID, task.ReviewTaskRequest{Action: "approve"})
	assert.ErrorIs(t, err, task.ErrInvalidReviewAction)

	f.setStatus(t, created.ID, "Completed")
	other := f.store.SeedAccount("Olga", "Engineering", user.RoleSupervisor)
	_, err = f.svc.Review(ctx, other, created.ID, task.ReviewTaskRequest{Action: "accept"})
	assert.ErrorIs(t, err, user.ErrNotTeamManager)
}

func TestMutationsRunInTransaction(t *testing.T) {
	f := newFixture(t)
	created := f.assign(t)
	before := f.store.Tx.Calls

	f.setStatus(t, created.ID, "In Progress")

	assert.Equal(t, before+1, f.store.Tx.Calls)
}

func TestStaleVersionIsRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created := f.assign(t)

	stale, err := f.store.Tasks.GetByID(ctx, created.ID)
	require.NoError(t, err)
	f.setStatus(t, created.ID, "In Progress")

	stale.Status = task.StatusCancelled
	_, err = f.store.Tasks.Update(ctx, stale)
	assert.ErrorIs(t, err, task.ErrConcurrentUpdate)
}

func TestAttachAndDetach(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created := f.assign(t)

	withFile, err := f.svc.AttachFile(ctx, f.emp, created.ID, task.AttachFileRequest{FileName: "report.pdf", StorageRef: task.AttachmentPrefix(created.ID) + "report.pdf"})
	require.NoError(t, err)
	require.NotNil(t, withFile.Attachment)
	assert.Equal(t, "report.pdf", withFile.Attachment.FileName)

	cleared, err := f.svc.DetachFile(ctx, f.emp, created.ID)
	require.NoError(t, err)
	assert.Nil(t, cleared.Attachment)

	_, err = f.svc.DetachFile(ctx, f.emp, created.ID)
	assert.ErrorIs(t, err, task.ErrNoAttachment)
}

func TestAttachFile_RejectsRefOfAnotherTask(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	mine := f.assign(t)
	other := f.assign(t)

	_, err := f.svc.AttachFile(ctx, f.emp, mine.ID, task.AttachFileRequest{
		FileName:   "report.pdf",
		StorageRef: task.AttachmentPrefix(other.ID) + "report.pdf",
	})
	assert.ErrorIs(t, err, task.ErrForeignAttachment)

	got, err := f.svc.Get(ctx, f.emp, mine.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Attachment)
}

func TestListTeam_RejectedIsNotAReviewStatus(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.ListTeam(context.Background(), f.sup, task.TaskFilter{ReviewStatus: "Rejected"})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "review_status")
}

func TestGetAndLists(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created := f.assign(t)
	second := f.assign(t)
	f.setStatus(t, second.ID, "Completed")

	got, err := f.svc.Get(ctx, f.emp, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	peer := f.store.SeedAccount("Pat", "Engineering", user.RoleEmployee)
	_, err = f.svc.Get(ctx, peer, created.ID)
	assert.ErrorIs(t, err, user.ErrInsufficientPermissions)

	mine, err := f.svc.ListMine(ctx, f.emp, task.TaskFilter{})
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	completed, err := f.svc.ListTeam(ctx, f.sup, task.TaskFilter{Status: "Completed"})
	require.NoError(t, err)
	require.Len(t, completed, 1)
	assert.Equal(t, second.ID, completed[0].ID)

	_, err = f.svc.ListTeam(ctx, f.sup, task.TaskFilter{EmployeeID: peer.EmployeeID})
	assert.ErrorIs(t, err, user.ErrNotTeamManager)

	_, err = f.svc.ListTeam(ctx, f.emp, task.TaskFilter{})
	assert.ErrorIs(t, err, user.ErrInsufficientPermissions)
}
