// Package memory is a process-local implementation of the repository contracts.
// It backs tests and the "memory" database driver.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/app/models"
	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/app/repositories"
	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/pkg/apperrors"
	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/pkg/helpers"
)

type store struct {
	mu       sync.RWMutex
	seq      int64
	courses  map[string]*models.Course
	batches  map[string]*models.Batch
	students map[string]*models.Student
	order    map[string]int64
	now      func() time.Time
}

// New returns repositories sharing one in-memory store.
func New() *repositories.Repositories {
	s := &store{
		courses:  map[string]*models.Course{},
		batches:  map[string]*models.Batch{},
		students: map[string]*models.Student{},
		order:    map[string]int64{},
		now:      time.Now,
	}
	return &repositories.Repositories{
		Courses:  &CourseRepository{s},
		Batches:  &BatchRepository{s},
		Students: &StudentRepository{s},
	}
}

// nextID must be called with mu held.
func (s *store) nextID() string {
	s.seq++
	id := uuid.New().String()
	s.order[id] = s.seq
	return id
}

func sortedByCreation[T any](s *store, m map[string]T, idOf func(T) string) []T {
	out := make([]T, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return s.order[idOf(out[i])] < s.order[idOf(out[j])] })
	return out
}

func copyCourse(c *models.Course) *models.Course {
	cp := *c
	return &cp
}

func copyBatch(b *models.Batch) *models.Batch {
	cp := *b
	cp.Courses = append([]string(nil), b.Courses...)
	cp.Students = append([]string{}, b.Students...)
	return &cp
}

func copyStudent(st *models.Student) *models.Student {
	cp := *st
	if st.ProfileImage != nil {
		img := *st.ProfileImage
		cp.ProfileImage = &img
	}
	cp.Certificates = append([]models.FileRef{}, st.Certificates...)
	return &cp
}

// CourseRepository implements repositories.CourseRepository
type CourseRepository struct{ s *store }

func (r *CourseRepository) Create(_ context.Context, c *models.Course) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.courses {
		if existing.Name == c.Name {
			return apperrors.ErrCourseNameExists
		}
	}
	c.ID = r.s.nextID()
	c.Touch(r.s.now())
	r.s.courses[c.ID] = copyCourse(c)
	return nil
}

func (r *CourseRepository) GetByID(_ context.Context, id string) (*models.Course, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.courses[id]
	if !ok {
		return nil, apperrors.ErrCourseNotFound
	}
	return copyCourse(c), nil
}

func (r *CourseRepository) List(_ context.Context) ([]*models.Course, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := sortedByCreation(r.s, r.s.courses, func(c *models.Course) string { return c.ID })
	for i, c := range list {
		list[i] = copyCourse(c)
	}
	return list, nil
}

func (r *CourseRepository) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.courses[id]
	if !ok {
		return apperrors.ErrCourseNotFound
	}
	for _, b := range r.s.batches {
		for _, name := range b.Courses {
			if name == c.Name {
				return apperrors.ErrCourseInUse
			}
		}
	}
	delete(r.s.courses, id)
	return nil
}

func (r *CourseRepository) Count(_ context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.s.courses)), nil
}

// BatchRepository implements repositories.BatchRepository
type BatchRepository struct{ s *store }

func (r *BatchRepository) Create(_ context.Context, b *models.Batch) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b.ID = r.s.nextID()
	b.Students = []string{}
	b.Touch(r.s.now())
	r.s.batches[b.ID] = copyBatch(b)
	return nil
}

func (r *BatchRepository) GetByID(_ context.Context, id string) (*models.Batch, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	b, ok := r.s.batches[id]
	if !ok {
		return nil, apperrors.ErrBatchNotFound
	}
	return copyBatch(b), nil
}

func (r *BatchRepository) List(_ context.Context) ([]*models.Batch, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := sortedByCreation(r.s, r.s.batches, func(b *models.Batch) string { return b.ID })
	for i, b := range list {
		list[i] = copyBatch(b)
	}
	return list, nil
}

func (r *BatchRepository) Update(_ context.Context, b *models.Batch) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.batches[b.ID]
	if !ok {
		return apperrors.ErrBatchNotFound
	}
	stored.BatchName = b.BatchName
	stored.Courses = append([]string(nil), b.Courses...)
	stored.StartDate = b.StartDate
	stored.EndDate = b.EndDate
	stored.Instructor = b.Instructor
	stored.Touch(r.s.now())
	*b = *copyBatch(stored)
	return nil
}

func (r *BatchRepository) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.batches[id]
	if !ok {
		return apperrors.ErrBatchNotFound
	}
	if len(b.Students) > 0 {
		return apperrors.ErrBatchHasStudents
	}
	delete(r.s.batches, id)
	return nil
}

// StudentRepository implements repositories.StudentRepository
type StudentRepository struct{ s *store }

func (r *StudentRepository) Enroll(_ context.Context, st *models.Student) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.batches[st.BatchID]
	if !ok {
		return apperrors.ErrBatchNotFound
	}
	for _, existing := range r.s.students {
		if existing.RollNo == st.RollNo {
			return apperrors.ErrRollNoExists
		}
	}
	st.ID = r.s.nextID()
	st.Touch(r.s.now())
	if st.Certificates == nil {
		st.Certificates = []models.FileRef{}
	}
	r.s.students[st.ID] = copyStudent(st)
	b.Students = append(b.Students, st.ID)
	b.UpdatedAt = st.CreatedAt
	return nil
}

func (r *StudentRepository) Unenroll(_ context.Context, id string) (*models.Student, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	st, ok := r.s.students[id]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	delete(r.s.students, id)
	if b, ok := r.s.batches[st.BatchID]; ok {
		kept := b.Students[:0]
		for _, sid := range b.Students {
			if sid != id {
				kept = append(kept, sid)
			}
		}
		b.Students = kept
		b.Touch(r.s.now())
	}
	return st, nil
}

func (r *StudentRepository) GetByID(_ context.Context, id string) (*models.Student, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	st, ok := r.s.students[id]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	return copyStudent(st), nil
}

func (r *StudentRepository) ListByIDs(_ context.Context, ids []string) ([]*models.Student, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*models.Student, 0, len(ids))
	for _, id := range ids {
		if st, ok := r.s.students[id]; ok {
			out = append(out, copyStudent(st))
		}
	}
	return out, nil
}

func (r *StudentRepository) Search(_ context.Context, f models.StudentFilter) ([]*models.Student, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	all := sortedByCreation(r.s, r.s.students, func(st *models.Student) string { return st.ID })
	var matched []*models.Student
	for _, st := range all {
		if helpers.ContainsFold(st.Name, f.Search) {
			matched = append(matched, st)
		}
	}
	total := int64(len(matched))
	page := []*models.Student{}
	if f.Offset < total {
		end := total
		if f.Limit > 0 && f.Offset+f.Limit < end {
			end = f.Offset + f.Limit
		}
		for _, st := range matched[f.Offset:end] {
			page = append(page, copyStudent(st))
		}
	}
	return page, total, nil
}
