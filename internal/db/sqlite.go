// Package db provides SQLite storage implementation.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/gopherwork/taskdog/internal/task"
)

const sqliteTimeLayout = time.RFC3339

// SQLite implements task.Repository using SQLite.
type SQLite struct {
	db *sql.DB
}

// New creates a new SQLite repository and runs migrations.
func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	if _, err := db.Exec(`PRAGMA foreign_keys = ON`); err != nil {
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close releases database resources.
func (s *SQLite) Close() error {
	return s.db.Close()
}

const baseTaskColumns = `
	id, name, priority, status, estimated_duration, deadline,
	planned_start, planned_end, actual_start, actual_end, actual_duration,
	is_fixed, is_archived, created_at, updated_at
`

// GetAll returns every task.
func (s *SQLite) GetAll(ctx context.Context) ([]*task.Task, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+baseTaskColumns+` FROM tasks`)
	if err != nil {
		return nil, fmt.Errorf("querying tasks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	tasks, err := scanTasks(rows)
	if err != nil {
		return nil, err
	}
	if err := s.hydrate(ctx, tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// GetByID retrieves a task by id. Returns task.ErrTaskNotFound if absent.
func (s *SQLite) GetByID(ctx context.Context, id int64) (*task.Task, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+baseTaskColumns+` FROM tasks WHERE id = ?`, id)
	t, err := scanTaskRow(row)
	if err == sql.ErrNoRows {
		return nil, task.ErrTaskNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying task: %w", err)
	}

	tasks := []*task.Task{t}
	if err := s.hydrate(ctx, tasks); err != nil {
		return nil, err
	}
	return t, nil
}

// GetByIDs retrieves multiple tasks by id, keyed by id. Missing ids
// are simply absent from the result map.
func (s *SQLite) GetByIDs(ctx context.Context, ids []int64) (map[int64]*task.Task, error) {
	result := make(map[int64]*task.Task, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	query := `SELECT ` + baseTaskColumns + ` FROM tasks WHERE id IN (` + placeholders(len(ids)) + `)`
	rows, err := s.db.QueryContext(ctx, query, int64SliceToArgs(ids)...)
	if err != nil {
		return nil, fmt.Errorf("querying tasks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	tasks, err := scanTasks(rows)
	if err != nil {
		return nil, err
	}
	if err := s.hydrate(ctx, tasks); err != nil {
		return nil, err
	}
	for _, t := range tasks {
		result[t.ID] = t
	}
	return result, nil
}

// List returns tasks matching filter.
func (s *SQLite) List(ctx context.Context, filter task.ListFilter) ([]*task.Task, error) {
	var conds []string
	var args []any

	if !filter.IncludeArchived {
		conds = append(conds, "is_archived = 0")
	}
	if filter.Status != nil {
		conds = append(conds, "status = ?")
		args = append(args, string(*filter.Status))
	}
	if filter.StartDate != "" {
		conds = append(conds, "(planned_end IS NULL OR planned_end >= ?)")
		args = append(args, filter.StartDate)
	}
	if filter.EndDate != "" {
		conds = append(conds, "(planned_start IS NULL OR planned_start <= ?)")
		args = append(args, filter.EndDate+"T23:59:59Z")
	}

	query := `SELECT ` + baseTaskColumns + ` FROM tasks`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying tasks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	tasks, err := scanTasks(rows)
	if err != nil {
		return nil, err
	}
	if err := s.hydrate(ctx, tasks); err != nil {
		return nil, err
	}

	if len(filter.Tags) == 0 {
		return tasks, nil
	}

	filtered := tasks[:0]
	for _, t := range tasks {
		if matchesTags(t, filter.Tags, filter.MatchAllTags) {
			filtered = append(filtered, t)
		}
	}
	return filtered, nil
}

func matchesTags(t *task.Task, tags []string, matchAll bool) bool {
	if matchAll {
		for _, tag := range tags {
			if !t.HasTag(tag) {
				return false
			}
		}
		return true
	}
	for _, tag := range tags {
		if t.HasTag(tag) {
			return true
		}
	}
	return false
}

// CountTasks returns the total number of tasks.
func (s *SQLite) CountTasks(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tasks`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting tasks: %w", err)
	}
	return n, nil
}

// CountTasksWithTags returns the number of tasks carrying at least one
// of the given tags.
func (s *SQLite) CountTasksWithTags(ctx context.Context, tags []string) (int, error) {
	if len(tags) == 0 {
		return 0, nil
	}
	query := `SELECT COUNT(DISTINCT task_id) FROM task_tags WHERE tag IN (` + placeholders(len(tags)) + `)`
	var n int
	err := s.db.QueryRowContext(ctx, query, stringSliceToArgs(tags)...).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting tagged tasks: %w", err)
	}
	return n, nil
}

// GetDailyWorkloadTotals sums DailyAllocations across tasks (all
// tasks, or only the given ids if non-empty) for dates in [start,
// end] inclusive, keyed by "2006-01-02".
func (s *SQLite) GetDailyWorkloadTotals(ctx context.Context, start, end string, taskIDs []int64) (map[string]float64, error) {
	query := `SELECT date, SUM(hours) FROM task_daily_allocations WHERE date >= ? AND date <= ?`
	args := []any{start, end}

	if len(taskIDs) > 0 {
		query += ` AND task_id IN (` + placeholders(len(taskIDs)) + `)`
		args = append(args, int64SliceToArgs(taskIDs)...)
	}
	query += ` GROUP BY date`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying daily workload totals: %w", err)
	}
	defer func() { _ = rows.Close() }()

	totals := make(map[string]float64)
	for rows.Next() {
		var date string
		var hours float64
		if err := rows.Scan(&date, &hours); err != nil {
			return nil, fmt.Errorf("scanning daily workload total: %w", err)
		}
		totals[date] = hours
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating daily workload totals: %w", err)
	}
	return totals, nil
}

// SaveAll performs a bulk upsert. Tasks with ID == 0 are inserted and
// get a repository-assigned id written back into the slice element;
// tasks with a nonzero ID are updated in place. Tag and dependency
// relations are rebuilt per task.
func (s *SQLite) SaveAll(ctx context.Context, tasks []*task.Task) error {
	if len(tasks) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, t := range tasks {
		if err := saveOne(ctx, tx, t); err != nil {
			return fmt.Errorf("saving task %q: %w", t.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

func saveOne(ctx context.Context, tx *sql.Tx, t *task.Task) error {
	now := t.UpdatedAt
	if now.IsZero() {
		now = t.CreatedAt
	}

	if t.ID == 0 {
		query := `
			INSERT INTO tasks (
				name, priority, status, estimated_duration, deadline,
				planned_start, planned_end, actual_start, actual_end, actual_duration,
				is_fixed, is_archived, created_at, updated_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`
		result, err := tx.ExecContext(ctx, query,
			t.Name, t.Priority, string(t.Status), nullFloat(t.EstimatedDuration), nullTime(t.Deadline),
			nullTime(t.PlannedStart), nullTime(t.PlannedEnd), nullTime(t.ActualStart), nullTime(t.ActualEnd), nullFloat(t.ActualDuration),
			boolToInt(t.IsFixed), boolToInt(t.IsArchived), formatTimeOrNow(t.CreatedAt), formatTimeOrNow(now),
		)
		if err != nil {
			return fmt.Errorf("inserting task: %w", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("getting last insert id: %w", err)
		}
		t.ID = id
	} else {
		query := `
			UPDATE tasks SET
				name = ?, priority = ?, status = ?, estimated_duration = ?, deadline = ?,
				planned_start = ?, planned_end = ?, actual_start = ?, actual_end = ?, actual_duration = ?,
				is_fixed = ?, is_archived = ?, updated_at = ?
			WHERE id = ?
		`
		_, err := tx.ExecContext(ctx, query,
			t.Name, t.Priority, string(t.Status), nullFloat(t.EstimatedDuration), nullTime(t.Deadline),
			nullTime(t.PlannedStart), nullTime(t.PlannedEnd), nullTime(t.ActualStart), nullTime(t.ActualEnd), nullFloat(t.ActualDuration),
			boolToInt(t.IsFixed), boolToInt(t.IsArchived), formatTimeOrNow(now), t.ID,
		)
		if err != nil {
			return fmt.Errorf("updating task: %w", err)
		}
	}

	if err := replaceTags(ctx, tx, t.ID, t.Tags); err != nil {
		return err
	}
	if err := replaceDependencies(ctx, tx, t.ID, t.DependsOn); err != nil {
		return err
	}
	if err := replaceDailyTable(ctx, tx, "task_daily_allocations", t.ID, t.DailyAllocations); err != nil {
		return err
	}
	if err := replaceDailyTable(ctx, tx, "task_actual_daily_hours", t.ID, t.ActualDailyHours); err != nil {
		return err
	}

	return nil
}

func replaceTags(ctx context.Context, tx *sql.Tx, taskID int64, tags []string) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM task_tags WHERE task_id = ?`, taskID); err != nil {
		return fmt.Errorf("clearing tags: %w", err)
	}
	for _, tag := range tags {
		if _, err := tx.ExecContext(ctx, `INSERT INTO task_tags (task_id, tag) VALUES (?, ?)`, taskID, tag); err != nil {
			return fmt.Errorf("inserting tag %q: %w", tag, err)
		}
	}
	return nil
}

func replaceDependencies(ctx context.Context, tx *sql.Tx, taskID int64, dependsOn []int64) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM task_dependencies WHERE task_id = ?`, taskID); err != nil {
		return fmt.Errorf("clearing dependencies: %w", err)
	}
	for i, dep := range dependsOn {
		query := `INSERT INTO task_dependencies (task_id, depends_on, position) VALUES (?, ?, ?)`
		if _, err := tx.ExecContext(ctx, query, taskID, dep, i); err != nil {
			return fmt.Errorf("inserting dependency %d: %w", dep, err)
		}
	}
	return nil
}

func replaceDailyTable(ctx context.Context, tx *sql.Tx, table string, taskID int64, hours map[string]float64) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM `+table+` WHERE task_id = ?`, taskID); err != nil {
		return fmt.Errorf("clearing %s: %w", table, err)
	}
	for date, h := range hours {
		query := `INSERT INTO ` + table + ` (task_id, date, hours) VALUES (?, ?, ?)`
		if _, err := tx.ExecContext(ctx, query, taskID, date, h); err != nil {
			return fmt.Errorf("inserting %s row: %w", table, err)
		}
	}
	return nil
}

// hydrate loads tags, dependencies, and daily hours for the given
// tasks in a handful of batched queries, rather than one round trip
// per child table per task.
func (s *SQLite) hydrate(ctx context.Context, tasks []*task.Task) error {
	if len(tasks) == 0 {
		return nil
	}

	ids := make([]int64, len(tasks))
	for i, t := range tasks {
		ids[i] = t.ID
	}

	tags, err := s.loadTags(ctx, ids)
	if err != nil {
		return err
	}
	deps, err := s.loadDependencies(ctx, ids)
	if err != nil {
		return err
	}
	planned, err := s.loadDailyTable(ctx, "task_daily_allocations", ids)
	if err != nil {
		return err
	}
	actual, err := s.loadDailyTable(ctx, "task_actual_daily_hours", ids)
	if err != nil {
		return err
	}

	for _, t := range tasks {
		t.Tags = tags[t.ID]
		t.DependsOn = deps[t.ID]
		if t.DailyAllocations = planned[t.ID]; t.DailyAllocations == nil {
			t.DailyAllocations = make(map[string]float64)
		}
		if t.ActualDailyHours = actual[t.ID]; t.ActualDailyHours == nil {
			t.ActualDailyHours = make(map[string]float64)
		}
	}
	return nil
}

func (s *SQLite) loadTags(ctx context.Context, ids []int64) (map[int64][]string, error) {
	result := make(map[int64][]string, len(ids))
	query := `SELECT task_id, tag FROM task_tags WHERE task_id IN (` + placeholders(len(ids)) + `) ORDER BY tag`
	rows, err := s.db.QueryContext(ctx, query, int64SliceToArgs(ids)...)
	if err != nil {
		return nil, fmt.Errorf("querying tags: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var taskID int64
		var tag string
		if err := rows.Scan(&taskID, &tag); err != nil {
			return nil, fmt.Errorf("scanning tag: %w", err)
		}
		result[taskID] = append(result[taskID], tag)
	}
	return result, rows.Err()
}

func (s *SQLite) loadDependencies(ctx context.Context, ids []int64) (map[int64][]int64, error) {
	result := make(map[int64][]int64, len(ids))
	query := `SELECT task_id, depends_on FROM task_dependencies WHERE task_id IN (` + placeholders(len(ids)) + `) ORDER BY task_id, position`
	rows, err := s.db.QueryContext(ctx, query, int64SliceToArgs(ids)...)
	if err != nil {
		return nil, fmt.Errorf("querying dependencies: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var taskID, dep int64
		if err := rows.Scan(&taskID, &dep); err != nil {
			return nil, fmt.Errorf("scanning dependency: %w", err)
		}
		result[taskID] = append(result[taskID], dep)
	}
	return result, rows.Err()
}

func (s *SQLite) loadDailyTable(ctx context.Context, table string, ids []int64) (map[int64]map[string]float64, error) {
	result := make(map[int64]map[string]float64, len(ids))
	query := `SELECT task_id, date, hours FROM ` + table + ` WHERE task_id IN (` + placeholders(len(ids)) + `)`
	rows, err := s.db.QueryContext(ctx, query, int64SliceToArgs(ids)...)
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", table, err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var taskID int64
		var date string
		var hours float64
		if err := rows.Scan(&taskID, &date, &hours); err != nil {
			return nil, fmt.Errorf("scanning %s row: %w", table, err)
		}
		if result[taskID] == nil {
			result[taskID] = make(map[string]float64)
		}
		result[taskID][date] = hours
	}
	return result, rows.Err()
}

// rowScanner abstracts *sql.Row and *sql.Rows so scanTaskRow can serve
// both a single-row QueryRow and a multi-row Query loop.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTaskRow(row rowScanner) (*task.Task, error) {
	var (
		t                                                           task.Task
		status                                                      string
		estimatedDuration, actualDuration                          sql.NullFloat64
		deadline, plannedStart, plannedEnd, actualStart, actualEnd sql.NullString
		createdAt, updatedAt                                        string
		isFixed, isArchived                                        int
	)

	err := row.Scan(
		&t.ID, &t.Name, &t.Priority, &status, &estimatedDuration, &deadline,
		&plannedStart, &plannedEnd, &actualStart, &actualEnd, &actualDuration,
		&isFixed, &isArchived, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	t.Status = task.Status(status)
	t.IsFixed = isFixed != 0
	t.IsArchived = isArchived != 0

	if estimatedDuration.Valid {
		v := estimatedDuration.Float64
		t.EstimatedDuration = &v
	}
	if actualDuration.Valid {
		v := actualDuration.Float64
		t.ActualDuration = &v
	}

	var parseErr error
	t.Deadline, parseErr = parseNullTime(deadline, parseErr)
	t.PlannedStart, parseErr = parseNullTime(plannedStart, parseErr)
	t.PlannedEnd, parseErr = parseNullTime(plannedEnd, parseErr)
	t.ActualStart, parseErr = parseNullTime(actualStart, parseErr)
	t.ActualEnd, parseErr = parseNullTime(actualEnd, parseErr)
	if parseErr != nil {
		return nil, parseErr
	}

	t.CreatedAt, err = time.Parse(sqliteTimeLayout, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	t.UpdatedAt, err = time.Parse(sqliteTimeLayout, updatedAt)
	if err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}

	return &t, nil
}

func scanTasks(rows *sql.Rows) ([]*task.Task, error) {
	var tasks []*task.Task
	for rows.Next() {
		t, err := scanTaskRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning task: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })
	return tasks, nil
}

func parseNullTime(s sql.NullString, prevErr error) (*time.Time, error) {
	if prevErr != nil {
		return nil, prevErr
	}
	if !s.Valid {
		return nil, nil
	}
	t, err := time.Parse(sqliteTimeLayout, s.String)
	if err != nil {
		return nil, fmt.Errorf("parsing timestamp %q: %w", s.String, err)
	}
	return &t, nil
}

func nullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(sqliteTimeLayout)
}

func nullFloat(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}

func formatTimeOrNow(t time.Time) string {
	if t.IsZero() {
		t = time.Now()
	}
	return t.Format(sqliteTimeLayout)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func placeholders(n int) string {
	ph := make([]string, n)
	for i := range ph {
		ph[i] = "?"
	}
	return strings.Join(ph, ", ")
}

func int64SliceToArgs(ids []int64) []any {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}

func stringSliceToArgs(ss []string) []any {
	args := make([]any, len(ss))
	for i, s := range ss {
		args[i] = s
	}
	return args
}
