package store

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/nissyi-gh/taskdeck/internal/model"
	"github.com/sirupsen/logrus"
)

// Saver persists a full snapshot of the collection.
type Saver interface {
	Save(tasks []model.Task) error
}

// Option configures a TaskStore.
type Option func(*TaskStore)

// WithClock replaces time.Now for id and createdAt assignment.
func WithClock(now func() time.Time) Option {
	return func(s *TaskStore) { s.now = now }
}

// WithLogger sets the logger used to report persistence failures.
func WithLogger(log logrus.FieldLogger) Option {
	return func(s *TaskStore) { s.log = log }
}

// TaskStore owns the task collection. All mutations go through it and each
// successful mutation is written to the Saver before the call returns.
type TaskStore struct {
	mu     sync.Mutex
	tasks  []model.Task
	nextID int64
	saver  Saver
	now    func() time.Time
	log    logrus.FieldLogger
}

// New returns a store holding tasks, typically the result of Adapter.Load.
func New(tasks []model.Task, saver Saver, opts ...Option) *TaskStore {
	s := &TaskStore{
		tasks: append([]model.Task(nil), tasks...),
		saver: saver,
		now:   time.Now,
		log:   logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}

	// Seeding past the wall clock keeps ids of deleted tasks from coming
	// back after a restart.
	s.nextID = s.now().UnixMilli()
	for _, t := range s.tasks {
		if t.ID >= s.nextID {
			s.nextID = t.ID + 1
		}
	}
	return s
}

// Tasks returns a copy of the collection in insertion order.
func (s *TaskStore) Tasks() []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Get returns the task with the given id.
func (s *TaskStore) Get(id int64) (model.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(id); i >= 0 {
		return s.tasks[i], true
	}
	return model.Task{}, false
}

// Len returns the number of tasks.
func (s *TaskStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// Create appends a task built from d. ok is false, and nothing changes, when
// the trimmed title is empty. The returned error reports a failed write; the
// task stays in memory regardless.
func (s *TaskStore) Create(d model.Draft) (task model.Task, ok bool, err error) {
	title := strings.TrimSpace(d.Title)
	if title == "" {
		return model.Task{}, false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	id := now.UnixMilli()
	if id < s.nextID {
		id = s.nextID
	}
	s.nextID = id + 1

	task = model.Task{
		ID:        id,
		Title:     title,
		Category:  strings.TrimSpace(d.Category),
		Priority:  normalizePriority(d.Priority),
		DueDate:   s.normalizeDueDate(d.DueDate, id),
		Completed: d.Completed,
		CreatedAt: now,
	}
	s.tasks = append(s.tasks, task)
	return task, true, s.persist("create", id)
}

// Update replaces the task with the same id in place. ok is false when no
// such task exists or the trimmed title is empty. CreatedAt is kept from the
// stored task.
func (s *TaskStore) Update(t model.Task) (ok bool, err error) {
	title := strings.TrimSpace(t.Title)
	if title == "" {
		return false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(t.ID)
	if i < 0 {
		return false, nil
	}
	t.Title = title
	t.Category = strings.TrimSpace(t.Category)
	t.Priority = normalizePriority(t.Priority)
	t.DueDate = s.normalizeDueDate(t.DueDate, t.ID)
	t.CreatedAt = s.tasks[i].CreatedAt
	s.tasks[i] = t
	return true, s.persist("update", t.ID)
}

// ToggleCompleted flips the completed flag of the task with the given id.
func (s *TaskStore) ToggleCompleted(id int64) (ok bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false, nil
	}
	s.tasks[i].Completed = !s.tasks[i].Completed
	return true, s.persist("toggle", id)
}

// Delete removes the task with the given id, keeping the order of the rest.
func (s *TaskStore) Delete(id int64) (ok bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false, nil
	}
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	return true, s.persist("delete", id)
}

func (s *TaskStore) indexOf(id int64) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (s *TaskStore) snapshot() []model.Task {
	out := make([]model.Task, len(s.tasks))
	for i, t := range s.tasks {
		t.DueDate = cloneDate(t.DueDate)
		out[i] = t
	}
	return out
}

// persist must be called with mu held so that writes land in mutation order.
func (s *TaskStore) persist(op string, id int64) error {
	if s.saver == nil {
		return nil
	}
	if err := s.saver.Save(s.snapshot()); err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{"op": op, "id": id}).Error("persist tasks failed")
		return fmt.Errorf("%s task %d: %w", op, id, err)
	}
	return nil
}

func normalizePriority(p model.Priority) model.Priority {
	if p.Valid() {
		return p
	}
	np, _ := model.ParsePriority(string(p))
	return np
}

// normalizeDueDate trims d and drops it when blank or not a calendar date.
func (s *TaskStore) normalizeDueDate(d *string, id int64) *string {
	due, err := model.NormalizeDueDate(d)
	if err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{"id": id, "due": *d}).Warn("dropping invalid due date")
		return nil
	}
	return due
}

func cloneDate(d *string) *string {
	if d == nil {
		return nil
	}
	v := *d
	return &v
}
