package service

import (
	"context"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"anoa.com/campusplacement/internal/model"
	"anoa.com/campusplacement/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) Update(ctx context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) FindStudentsByDepartment(ctx context.Context, department string) ([]*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*model.User
	for _, user := range r.users {
		if user.Department == department && user.Role == model.RoleStudent {
			copied := *user
			result = append(result, &copied)
		}
	}
	return result, nil
}

type fakeJobRepo struct {
	mu    sync.Mutex
	jobs  map[uuid.UUID]*model.Job
	apps  *fakeApplicationRepo
	saved *fakeSavedJobRepo
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{jobs: make(map[uuid.UUID]*model.Job)}
}

func (r *fakeJobRepo) Create(ctx context.Context, job *model.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if job.ID == uuid.Nil {
		job.ID = uuid.New()
	}
	if job.CreatedAt.IsZero() {
		job.CreatedAt = time.Now()
	}
	copied := *job
	r.jobs[job.ID] = &copied
	return nil
}

func (r *fakeJobRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.jobs[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *job
	return &copied, nil
}

func (r *fakeJobRepo) matches(job *model.Job, location, jobType, search string) bool {
	if location != "" && !strings.Contains(strings.ToLower(job.Location), strings.ToLower(location)) {
		return false
	}
	if jobType != "" && job.Type != jobType {
		return false
	}
	if search != "" {
		needle := strings.ToLower(search)
		if !strings.Contains(strings.ToLower(job.Title), needle) &&
			!strings.Contains(strings.ToLower(job.Company), needle) &&
			!strings.Contains(strings.ToLower(job.Description), needle) {
			return false
		}
	}
	return true
}

func (r *fakeJobRepo) FindAll(ctx context.Context, location, jobType, search string) ([]*model.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*model.Job
	for _, job := range r.jobs {
		if !r.matches(job, location, jobType, search) {
			continue
		}
		copied := *job
		result = append(result, &copied)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (r *fakeJobRepo) FindByIDs(ctx context.Context, ids []uuid.UUID, location, jobType string) ([]*model.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*model.Job
	for _, id := range ids {
		if job, ok := r.jobs[id]; ok {
			if !r.matches(job, location, jobType, "") {
				continue
			}
			copied := *job
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (r *fakeJobRepo) Update(ctx context.Context, job *model.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.jobs[job.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copied := *job
	r.jobs[job.ID] = &copied
	return nil
}

func (r *fakeJobRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.jobs, id)
	if r.apps != nil {
		r.apps.mu.Lock()
		for appID, app := range r.apps.apps {
			if app.JobID == id {
				delete(r.apps.apps, appID)
			}
		}
		r.apps.mu.Unlock()
	}
	if r.saved != nil {
		r.saved.mu.Lock()
		for savedID, bookmark := range r.saved.saved {
			if bookmark.JobID == id {
				delete(r.saved.saved, savedID)
			}
		}
		r.saved.mu.Unlock()
	}
	return nil
}

type fakeApplicationRepo struct {
	mu   sync.Mutex
	apps map[uuid.UUID]*model.Application
}

func newFakeApplicationRepo() *fakeApplicationRepo {
	return &fakeApplicationRepo{apps: make(map[uuid.UUID]*model.Application)}
}

func (r *fakeApplicationRepo) Create(ctx context.Context, application *model.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.apps {
		if existing.StudentID == application.StudentID && existing.JobID == application.JobID {
			return apperror.New(apperror.ErrConflict, "you have already applied to this job")
		}
	}
	if application.ID == uuid.Nil {
		application.ID = uuid.New()
	}
	application.AppliedAt = time.Now()
	copied := *application
	r.apps[application.ID] = &copied
	return nil
}

func (r *fakeApplicationRepo) Exists(ctx context.Context, studentID, jobID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, app := range r.apps {
		if app.StudentID == studentID && app.JobID == jobID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeApplicationRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	app, ok := r.apps[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *app
	return &copied, nil
}

func (r *fakeApplicationRepo) FindByStudent(ctx context.Context, studentID uuid.UUID) ([]*model.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*model.Application
	for _, app := range r.apps {
		if app.StudentID == studentID {
			copied := *app
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (r *fakeApplicationRepo) FindByJob(ctx context.Context, jobID uuid.UUID) ([]*model.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*model.Application
	for _, app := range r.apps {
		if app.JobID == jobID {
			copied := *app
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (r *fakeApplicationRepo) FindAll(ctx context.Context) ([]*model.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*model.Application
	for _, app := range r.apps {
		copied := *app
		result = append(result, &copied)
	}
	return result, nil
}

func (r *fakeApplicationRepo) FindJobIDsByStudent(ctx context.Context, studentID uuid.UUID) ([]uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ids []uuid.UUID
	for _, app := range r.apps {
		if app.StudentID == studentID {
			ids = append(ids, app.JobID)
		}
	}
	return ids, nil
}

func (r *fakeApplicationRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string, rejectionReason *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	app, ok := r.apps[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	app.Status = status
	app.RejectionReason = rejectionReason
	return nil
}

func (r *fakeApplicationRepo) CountByJob(ctx context.Context, jobID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, app := range r.apps {
		if app.JobID == jobID {
			count++
		}
	}
	return count, nil
}

type fakeResumeRepo struct {
	mu      sync.Mutex
	resumes map[uuid.UUID]*model.Resume
	apps    *fakeApplicationRepo
}

func newFakeResumeRepo() *fakeResumeRepo {
	return &fakeResumeRepo{resumes: make(map[uuid.UUID]*model.Resume)}
}

func (r *fakeResumeRepo) Create(ctx context.Context, resume *model.Resume) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if resume.ID == uuid.Nil {
		resume.ID = uuid.New()
	}
	resume.UploadedAt = time.Now()
	copied := *resume
	r.resumes[resume.ID] = &copied
	return nil
}

func (r *fakeResumeRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Resume, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	resume, ok := r.resumes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *resume
	return &copied, nil
}

func (r *fakeResumeRepo) FindByStudent(ctx context.Context, studentID uuid.UUID) ([]*model.Resume, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*model.Resume
	for _, resume := range r.resumes {
		if resume.StudentID == studentID {
			copied := *resume
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (r *fakeResumeRepo) CountByStudent(ctx context.Context, studentID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, resume := range r.resumes {
		if resume.StudentID == studentID {
			count++
		}
	}
	return count, nil
}

func (r *fakeResumeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.resumes, id)
	if r.apps != nil {
		r.apps.mu.Lock()
		for _, app := range r.apps.apps {
			if app.ResumeID != nil && *app.ResumeID == id {
				app.ResumeID = nil
			}
		}
		r.apps.mu.Unlock()
	}
	return nil
}

func (r *fakeResumeRepo) SetDefault(ctx context.Context, studentID, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, resume := range r.resumes {
		if resume.StudentID == studentID {
			resume.IsDefault = resume.ID == id
		}
	}
	return nil
}

type fakeSavedJobRepo struct {
	mu    sync.Mutex
	saved map[uuid.UUID]*model.SavedJob
}

func newFakeSavedJobRepo() *fakeSavedJobRepo {
	return &fakeSavedJobRepo{saved: make(map[uuid.UUID]*model.SavedJob)}
}

func (r *fakeSavedJobRepo) Save(ctx context.Context, savedJob *model.SavedJob) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.saved {
		if existing.StudentID == savedJob.StudentID && existing.JobID == savedJob.JobID {
			return nil
		}
	}
	if savedJob.ID == uuid.Nil {
		savedJob.ID = uuid.New()
	}
	copied := *savedJob
	r.saved[savedJob.ID] = &copied
	return nil
}

func (r *fakeSavedJobRepo) Delete(ctx context.Context, studentID, jobID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, existing := range r.saved {
		if existing.StudentID == studentID && existing.JobID == jobID {
			delete(r.saved, id)
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeSavedJobRepo) Exists(ctx context.Context, studentID, jobID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.saved {
		if existing.StudentID == studentID && existing.JobID == jobID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeSavedJobRepo) FindByStudent(ctx context.Context, studentID uuid.UUID) ([]*model.SavedJob, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*model.SavedJob
	for _, existing := range r.saved {
		if existing.StudentID == studentID {
			copied := *existing
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (r *fakeSavedJobRepo) FindJobIDsByStudent(ctx context.Context, studentID uuid.UUID) ([]uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ids []uuid.UUID
	for _, existing := range r.saved {
		if existing.StudentID == studentID {
			ids = append(ids, existing.JobID)
		}
	}
	return ids, nil
}

type fakeNotificationRepo struct {
	mu            sync.Mutex
	notifications []*model.Notification
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{}
}

func (r *fakeNotificationRepo) Create(ctx context.Context, notification *model.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if notification.ID == uuid.Nil {
		notification.ID = uuid.New()
	}
	notification.CreatedAt = time.Now()
	copied := *notification
	r.notifications = append(r.notifications, &copied)
	return nil
}

func (r *fakeNotificationRepo) FindByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*model.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*model.Notification
	for _, n := range r.notifications {
		if n.UserID == userID {
			copied := *n
			result = append(result, &copied)
		}
	}
	if offset >= len(result) {
		return nil, nil
	}
	result = result[offset:]
	if limit > 0 && limit < len(result) {
		result = result[:limit]
	}
	return result, nil
}

func (r *fakeNotificationRepo) MarkAsRead(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.notifications {
		if n.ID == id && n.UserID == userID {
			n.IsRead = true
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeNotificationRepo) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.notifications {
		if n.UserID == userID {
			n.IsRead = true
		}
	}
	return nil
}

func (r *fakeNotificationRepo) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, n := range r.notifications {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (r *fakeNotificationRepo) DeleteReadBefore(ctx context.Context, before time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var kept []*model.Notification
	var deleted int64
	for _, n := range r.notifications {
		if n.IsRead && n.CreatedAt.Before(before) {
			deleted++
			continue
		}
		kept = append(kept, n)
	}
	r.notifications = kept
	return deleted, nil
}

type fakeRateLimiter struct {
	mu    sync.Mutex
	armed map[string]bool
}

func newFakeRateLimiter() *fakeRateLimiter {
	return &fakeRateLimiter{armed: make(map[string]bool)}
}

func (l *fakeRateLimiter) Acquire(ctx context.Context, userID uuid.UUID, action string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	key := userID.String() + ":" + action
	if l.armed[key] {
		return false, nil
	}
	l.armed[key] = true
	return true, nil
}

func (l *fakeRateLimiter) Remaining(ctx context.Context, userID uuid.UUID, action string) (time.Duration, error) {
	return time.Second, nil
}

type fakeJobSearch struct {
	available bool
	results   []uuid.UUID
	searchErr error
	indexed   map[string]*model.Job
	removed   []string
}

func newFakeJobSearch(available bool) *fakeJobSearch {
	return &fakeJobSearch{
		available: available,
		indexed:   make(map[string]*model.Job),
	}
}

func (s *fakeJobSearch) IsAvailable() bool { return s.available }

func (s *fakeJobSearch) IndexJob(job *model.Job) error {
	s.indexed[job.ID.String()] = job
	return nil
}

func (s *fakeJobSearch) RemoveJob(id string) error {
	delete(s.indexed, id)
	s.removed = append(s.removed, id)
	return nil
}

func (s *fakeJobSearch) Search(ctx context.Context, query string) ([]uuid.UUID, error) {
	if s.searchErr != nil {
		return nil, s.searchErr
	}
	return s.results, nil
}

type fakeDocumentStorage struct {
	mu        sync.Mutex
	uploads   map[string][]byte
	deleted   []string
	uploadErr error
}

func newFakeDocumentStorage() *fakeDocumentStorage {
	return &fakeDocumentStorage{uploads: make(map[string][]byte)}
}

func (s *fakeDocumentStorage) UploadDocument(ctx context.Context, r io.Reader, folder, fileName string) (string, error) {
	if s.uploadErr != nil {
		return "", s.uploadErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	url := "https://files.example.com/" + folder + "/" + fileName
	s.mu.Lock()
	s.uploads[url] = data
	s.mu.Unlock()
	return url, nil
}

func (s *fakeDocumentStorage) DeleteDocument(ctx context.Context, fileURL string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.uploads, fileURL)
	s.deleted = append(s.deleted, fileURL)
	return nil
}
