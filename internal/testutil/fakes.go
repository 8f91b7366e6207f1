// Package testutil provides in-memory repositories for service tests.
package testutil

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/momentum-hr/performance-backend-go/internal/domain/attendance"
	"github.com/momentum-hr/performance-backend-go/internal/domain/employee"
	"github.com/momentum-hr/performance-backend-go/internal/domain/evaluation"
	"github.com/momentum-hr/performance-backend-go/internal/domain/kpi"
	"github.com/momentum-hr/performance-backend-go/internal/domain/task"
	"github.com/momentum-hr/performance-backend-go/internal/domain/team"
	"github.com/momentum-hr/performance-backend-go/internal/domain/user"
)

func NewID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// Transactor runs fn inline and counts calls.
type Transactor struct {
	mu    sync.Mutex
	Calls int
}

func (t *Transactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	t.mu.Lock()
	t.Calls++
	t.mu.Unlock()
	return fn(ctx)
}

// ========== EMPLOYEES ==========

type Employees struct {
	mu   sync.RWMutex
	rows map[string]employee.Employee
	// CreateErr is returned by Create when set
	CreateErr error
	// Locked records ids passed to GetByIDForUpdate
	Locked []string
}

func NewEmployees() *Employees {
	return &Employees{rows: make(map[string]employee.Employee)}
}

func (r *Employees) Create(_ context.Context, e employee.Employee) (employee.Employee, error) {
	if r.CreateErr != nil {
		return employee.Employee{}, r.CreateErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.rows {
		if strings.EqualFold(existing.Email, e.Email) {
			return employee.Employee{}, employee.ErrEmailExists
		}
	}
	if e.ID == "" {
		e.ID = NewID()
	}
	r.rows[e.ID] = e
	return e, nil
}

func (r *Employees) GetByID(_ context.Context, id string) (employee.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.rows[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (r *Employees) GetByIDForUpdate(ctx context.Context, id string) (employee.Employee, error) {
	r.mu.Lock()
	r.Locked = append(r.Locked, id)
	r.mu.Unlock()
	return r.GetByID(ctx, id)
}

func (r *Employees) GetByIDs(_ context.Context, ids []string) ([]employee.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]employee.Employee, 0, len(ids))
	for _, id := range ids {
		if e, ok := r.rows[id]; ok {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *Employees) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, e := range r.rows {
		if strings.EqualFold(e.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func (r *Employees) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rows)
}

// ========== USERS ==========

type Users struct {
	mu   sync.RWMutex
	rows map[string]user.UserAccount
	// CreateErr is returned by Create when set
	CreateErr error
}

func NewUsers() *Users {
	return &Users{rows: make(map[string]user.UserAccount)}
}

func (r *Users) Create(_ context.Context, u user.UserAccount) (user.UserAccount, error) {
	if r.CreateErr != nil {
		return user.UserAccount{}, r.CreateErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.rows {
		if existing.Username == u.Username {
			return user.UserAccount{}, user.ErrUsernameExists
		}
	}
	if u.ID == "" {
		u.ID = NewID()
	}
	r.rows[u.ID] = u
	return u, nil
}

func (r *Users) GetByID(_ context.Context, id string) (user.UserAccount, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.rows[id]
	if !ok {
		return user.UserAccount{}, user.ErrUserNotFound
	}
	return u, nil
}

func (r *Users) GetByUsername(_ context.Context, username string) (user.UserAccount, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.rows {
		if u.Username == username {
			return u, nil
		}
	}
	return user.UserAccount{}, user.ErrUserNotFound
}

func (r *Users) GetByEmployeeID(_ context.Context, employeeID string) (user.UserAccount, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.rows {
		if u.EmployeeID == employeeID {
			return u, nil
		}
	}
	return user.UserAccount{}, user.ErrUserNotFound
}

func (r *Users) ExistsByUsername(_ context.Context, username string) (bool, error) {
	_, err := r.GetByUsername(context.Background(), username)
	return err == nil, nil
}

func (r *Users) UpdateLastLogin(_ context.Context, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.rows[id]
	if !ok {
		return user.ErrUserNotFound
	}
	u.LastLogin = &at
	r.rows[id] = u
	return nil
}

func (r *Users) roleOf(employeeID string) (user.Role, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.rows {
		if u.EmployeeID == employeeID {
			return u.Role, true
		}
	}
	return 0, false
}

func (r *Users) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rows)
}

// ========== TEAMS ==========

type Teams struct {
	mu        sync.RWMutex
	rows      []team.TeamMember
	employees *Employees
	users     *Users
}

func NewTeams(employees *Employees, users *Users) *Teams {
	return &Teams{employees: employees, users: users}
}

func (r *Teams) Upsert(_ context.Context, managerID, employeeID string) (team.TeamMember, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, m := range r.rows {
		if m.ManagerID == managerID && m.EmployeeID == employeeID {
			r.rows[i].IsActive = true
			r.rows[i].AddedDate = time.Now()
			return r.withEmployee(r.rows[i]), nil
		}
	}
	m := team.TeamMember{
		ID:         NewID(),
		ManagerID:  managerID,
		EmployeeID: employeeID,
		IsActive:   true,
		AddedDate:  time.Now(),
	}
	r.rows = append(r.rows, m)
	return r.withEmployee(m), nil
}

func (r *Teams) Deactivate(_ context.Context, managerID, employeeID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, m := range r.rows {
		if m.ManagerID == managerID && m.EmployeeID == employeeID && m.IsActive {
			r.rows[i].IsActive = false
			return nil
		}
	}
	return team.ErrMemberNotFound
}

func (r *Teams) GetActive(_ context.Context, managerID, employeeID string) (*team.TeamMember, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, m := range r.rows {
		if m.ManagerID == managerID && m.EmployeeID == employeeID && m.IsActive {
			out := r.withEmployee(m)
			return &out, nil
		}
	}
	return nil, nil
}

func (r *Teams) IsActiveMember(ctx context.Context, managerID, employeeID string) (bool, error) {
	m, err := r.GetActive(ctx, managerID, employeeID)
	return m != nil, err
}

func (r *Teams) ListActive(_ context.Context, managerID string) ([]team.TeamMember, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []team.TeamMember
	for _, m := range r.rows {
		if m.ManagerID == managerID && m.IsActive {
			out = append(out, r.withEmployee(m))
		}
	}
	return out, nil
}

func (r *Teams) SearchAvailable(_ context.Context, managerID, query string, limit int) ([]team.AvailableEmployee, error) {
	r.mu.RLock()
	onTeam := make(map[string]bool)
	for _, m := range r.rows {
		if m.ManagerID == managerID && m.IsActive {
			onTeam[m.EmployeeID] = true
		}
	}
	r.mu.RUnlock()

	r.employees.mu.RLock()
	candidates := make([]employee.Employee, 0, len(r.employees.rows))
	for _, e := range r.employees.rows {
		candidates = append(candidates, e)
	}
	r.employees.mu.RUnlock()
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].FullName() < candidates[j].FullName() })

	q := strings.ToLower(query)
	var out []team.AvailableEmployee
	for _, e := range candidates {
		if onTeam[e.ID] {
			continue
		}
		if role, ok := r.users.roleOf(e.ID); !ok || role != user.RoleEmployee {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(e.FullName()), q) && !strings.Contains(strings.ToLower(e.Email), q) {
			continue
		}
		out = append(out, team.AvailableEmployee{
			ID:         e.ID,
			FullName:   e.FullName(),
			Email:      e.Email,
			Department: e.Department,
			Position:   e.Position,
		})
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *Teams) withEmployee(m team.TeamMember) team.TeamMember {
	if r.employees == nil {
		return m
	}
	e, err := r.employees.GetByID(context.Background(), m.EmployeeID)
	if err != nil {
		return m
	}
	name := e.FullName()
	m.EmployeeName = &name
	m.EmployeeEmail = &e.Email
	m.Department = e.Department
	m.Position = e.Position
	return m
}

// ========== ATTENDANCE ==========

type Attendance struct {
	mu   sync.RWMutex
	rows []attendance.AttendanceRecord
	// Fail makes ListByEmployee return the mapped error for that employee
	Fail map[string]error
}

func NewAttendance() *Attendance {
	return &Attendance{Fail: make(map[string]error)}
}

func (r *Attendance) Create(_ context.Context, rec attendance.AttendanceRecord) (attendance.AttendanceRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.rows {
		if existing.EmployeeID == rec.EmployeeID && existing.Date.Equal(rec.Date) {
			return attendance.AttendanceRecord{}, attendance.ErrAttendanceExists
		}
	}
	if rec.ID == "" {
		rec.ID = NewID()
	}
	r.rows = append(r.rows, rec)
	return rec, nil
}

func (r *Attendance) ListByEmployee(_ context.Context, employeeID string, from, to *time.Time) ([]attendance.AttendanceRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if err := r.Fail[employeeID]; err != nil {
		return nil, err
	}
	var out []attendance.AttendanceRecord
	for _, rec := range r.rows {
		if rec.EmployeeID != employeeID {
			continue
		}
		if from != nil && rec.Date.Before(*from) {
			continue
		}
		if to != nil && rec.Date.After(*to) {
			continue
		}
		out = append(out, rec)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (r *Attendance) MarkCountedThrough(_ context.Context, employeeID string, cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for i, rec := range r.rows {
		if rec.EmployeeID == employeeID && !rec.IsCounted && !rec.Date.After(cutoff) {
			r.rows[i].IsCounted = true
			n++
		}
	}
	return n, nil
}

// ========== TASKS ==========

type Tasks struct {
	mu   sync.RWMutex
	rows map[string]task.Task
	seq  []string
	// Fail makes ListByEmployees return the mapped error when the employee is requested
	Fail map[string]error
}

func NewTasks() *Tasks {
	return &Tasks{rows: make(map[string]task.Task), Fail: make(map[string]error)}
}

func (r *Tasks) Create(_ context.Context, t task.Task) (task.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t.ID == "" {
		t.ID = NewID()
	}
	t.Version = 1
	r.rows[t.ID] = t
	r.seq = append(r.seq, t.ID)
	return t, nil
}

func (r *Tasks) GetByID(_ context.Context, id string) (task.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.rows[id]
	if !ok {
		return task.Task{}, task.ErrTaskNotFound
	}
	return t, nil
}

func (r *Tasks) GetByIDForUpdate(ctx context.Context, id string) (task.Task, error) {
	return r.GetByID(ctx, id)
}

func (r *Tasks) Update(_ context.Context, t task.Task) (task.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.rows[t.ID]
	if !ok {
		return task.Task{}, task.ErrTaskNotFound
	}
	if current.Version != t.Version {
		return task.Task{}, task.ErrConcurrentUpdate
	}
	t.Version++
	r.rows[t.ID] = t
	return t, nil
}

func (r *Tasks) ListByEmployees(_ context.Context, employeeIDs []string, filter task.TaskFilter) ([]task.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	wanted := make(map[string]bool, len(employeeIDs))
	for _, id := range employeeIDs {
		if err := r.Fail[id]; err != nil {
			return nil, err
		}
		wanted[id] = true
	}
	var out []task.Task
	for _, id := range r.seq {
		t := r.rows[id]
		if !wanted[t.EmployeeID] {
			continue
		}
		if filter.EmployeeID != "" && t.EmployeeID != filter.EmployeeID {
			continue
		}
		if filter.Status != "" && string(t.Status) != filter.Status {
			continue
		}
		if filter.ReviewStatus != "" && string(t.ReviewStatus) != filter.ReviewStatus {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (r *Tasks) MarkEvaluatedThrough(_ context.Context, employeeID string, cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, t := range r.rows {
		if t.EmployeeID == employeeID && !t.IsEvaluated && !t.CreatedDate.After(cutoff) {
			t.IsEvaluated = true
			r.rows[id] = t
			n++
		}
	}
	return n, nil
}

// ========== KPIS ==========

type KPIs struct {
	mu   sync.RWMutex
	rows map[string]kpi.KPI
	seq  []string
}

func NewKPIs() *KPIs {
	return &KPIs{rows: make(map[string]kpi.KPI)}
}

func (r *KPIs) Create(_ context.Context, k kpi.KPI) (kpi.KPI, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if k.ID == "" {
		k.ID = NewID()
	}
	r.rows[k.ID] = k
	r.seq = append(r.seq, k.ID)
	return k, nil
}

func (r *KPIs) GetByID(_ context.Context, id string) (kpi.KPI, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	k, ok := r.rows[id]
	if !ok {
		return kpi.KPI{}, kpi.ErrKPINotFound
	}
	return k, nil
}

func (r *KPIs) GetByIDs(_ context.Context, ids []string) ([]kpi.KPI, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []kpi.KPI
	for _, id := range ids {
		if k, ok := r.rows[id]; ok {
			out = append(out, k)
		}
	}
	return out, nil
}

func (r *KPIs) List(_ context.Context, activeOnly bool) ([]kpi.KPI, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []kpi.KPI
	for _, id := range r.seq {
		k := r.rows[id]
		if activeOnly && !k.IsActive {
			continue
		}
		out = append(out, k)
	}
	return out, nil
}

func (r *KPIs) Update(_ context.Context, k kpi.KPI) (kpi.KPI, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[k.ID]; !ok {
		return kpi.KPI{}, kpi.ErrKPINotFound
	}
	r.rows[k.ID] = k
	return k, nil
}

func (r *KPIs) ExistsByName(_ context.Context, name string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, k := range r.rows {
		if strings.EqualFold(k.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

// ========== EVALUATIONS ==========

type Evaluations struct {
	mu         sync.RWMutex
	rows       map[string]evaluation.Evaluation
	kpis       []evaluation.EvaluationKPI
	kpiCatalog *KPIs
}

func NewEvaluations(catalog *KPIs) *Evaluations {
	return &Evaluations{rows: make(map[string]evaluation.Evaluation), kpiCatalog: catalog}
}

func (r *Evaluations) Create(_ context.Context, e evaluation.Evaluation) (evaluation.Evaluation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.rows {
		if existing.EmployeeID == e.EmployeeID && existing.Period == e.Period {
			return evaluation.Evaluation{}, evaluation.ErrDuplicatePeriod
		}
	}
	if e.ID == "" {
		e.ID = NewID()
	}
	e.CreatedAt = time.Now()
	r.rows[e.ID] = e
	return e, nil
}

func (r *Evaluations) CreateKPIs(_ context.Context, rows []evaluation.EvaluationKPI) ([]evaluation.EvaluationKPI, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]evaluation.EvaluationKPI, 0, len(rows))
	for _, row := range rows {
		if row.ID == "" {
			row.ID = NewID()
		}
		r.kpis = append(r.kpis, row)
		out = append(out, row)
	}
	return out, nil
}

func (r *Evaluations) GetByID(_ context.Context, id string) (evaluation.Evaluation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.rows[id]
	if !ok {
		return evaluation.Evaluation{}, evaluation.ErrEvaluationNotFound
	}
	return e, nil
}

func (r *Evaluations) GetByIDForUpdate(ctx context.Context, id string) (evaluation.Evaluation, error) {
	return r.GetByID(ctx, id)
}

func (r *Evaluations) GetLatestByEmployee(ctx context.Context, employeeID string) (*evaluation.Evaluation, error) {
	list, err := r.ListByEmployee(ctx, employeeID)
	if err != nil || len(list) == 0 {
		return nil, err
	}
	return &list[0], nil
}

// ListByEmployee returns evaluations newest first.
func (r *Evaluations) ListByEmployee(_ context.Context, employeeID string) ([]evaluation.Evaluation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []evaluation.Evaluation
	for _, e := range r.rows {
		if e.EmployeeID == employeeID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EvaluationDate.After(out[j].EvaluationDate) })
	return out, nil
}

func (r *Evaluations) ListKPIs(_ context.Context, evaluationIDs []string) ([]evaluation.EvaluationKPI, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	wanted := make(map[string]bool, len(evaluationIDs))
	for _, id := range evaluationIDs {
		wanted[id] = true
	}
	var out []evaluation.EvaluationKPI
	for _, row := range r.kpis {
		if !wanted[row.EvaluationID] {
			continue
		}
		if r.kpiCatalog != nil {
			if k, err := r.kpiCatalog.GetByID(context.Background(), row.KPIID); err == nil {
				name := k.Name
				row.KPIName = &name
			}
		}
		out = append(out, row)
	}
	return out, nil
}

func (r *Evaluations) ExistsByPeriod(_ context.Context, employeeID, period string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, e := range r.rows {
		if e.EmployeeID == employeeID && e.Period == period {
			return true, nil
		}
	}
	return false, nil
}

func (r *Evaluations) MarkClosedOut(_ context.Context, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.rows[id]
	if !ok {
		return evaluation.ErrEvaluationNotFound
	}
	if e.ClosedOutAt == nil {
		e.ClosedOutAt = &at
		r.rows[id] = e
	}
	return nil
}
