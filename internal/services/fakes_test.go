package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"bersih-backend/internal/models"
	"bersih-backend/internal/repositories"
)

var errFakeNotFound = errors.New("no rows")

func listAllOptions() repositories.ReportListOptions {
	return repositories.ReportListOptions{}
}

type fakeUserStore struct {
	mu    sync.Mutex
	seq   int
	users map[string]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]*models.User)}
}

func (f *fakeUserStore) Create(ctx context.Context, u *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return repositories.ErrDuplicateEmail
		}
	}
	f.seq++
	u.ID = fmt.Sprintf("%03d", f.seq)
	u.CreatedAt = time.Now()
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserStore) Get(ctx context.Context, id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, errFakeNotFound
	}
	return u, nil
}

func (f *fakeUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, errFakeNotFound
}

func (f *fakeUserStore) ListCitizens(ctx context.Context) ([]*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.User
	for _, u := range f.users {
		if u.Role == models.RoleWarga {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUserStore) ListUnapproved(ctx context.Context) ([]*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.User
	for _, u := range f.users {
		if u.Role == models.RoleWarga && !u.IsApproved {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUserStore) SetApproved(ctx context.Context, id string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return false, nil
	}
	u.IsApproved = true
	return true, nil
}

func (f *fakeUserStore) Delete(ctx context.Context, id string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[id]; !ok {
		return false, nil
	}
	delete(f.users, id)
	return true, nil
}

func (f *fakeUserStore) UpdatePasswordHash(ctx context.Context, id, hash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return errFakeNotFound
	}
	u.PasswordHash = hash
	return nil
}

func (f *fakeUserStore) UpdatePasswordHashByEmail(ctx context.Context, email, hash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			u.PasswordHash = hash
			return nil
		}
	}
	return errFakeNotFound
}

type fakeResetStore struct {
	mu     sync.Mutex
	resets map[string]*models.PasswordReset
}

func newFakeResetStore() *fakeResetStore {
	return &fakeResetStore{resets: make(map[string]*models.PasswordReset)}
}

func (f *fakeResetStore) Upsert(ctx context.Context, r *models.PasswordReset) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *r
	copied.CreatedAt = time.Now()
	f.resets[r.Email] = &copied
	return nil
}

func (f *fakeResetStore) Get(ctx context.Context, email string) (*models.PasswordReset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.resets[email]
	if !ok {
		return nil, errFakeNotFound
	}
	return r, nil
}

func (f *fakeResetStore) MarkUsed(ctx context.Context, email string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.resets[email]
	if !ok {
		return errFakeNotFound
	}
	r.Used = true
	return nil
}

type fakeReportStore struct {
	mu      sync.Mutex
	seq     int64
	reports map[int64]*models.Report
}

func newFakeReportStore() *fakeReportStore {
	return &fakeReportStore{reports: make(map[int64]*models.Report)}
}

func (f *fakeReportStore) Create(ctx context.Context, r *models.Report) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	r.ID = f.seq
	r.Status = models.StatusPending
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	copied := *r
	f.reports[r.ID] = &copied
	return nil
}

func (f *fakeReportStore) Get(ctx context.Context, id int64) (*models.Report, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.reports[id]
	if !ok {
		return nil, errFakeNotFound
	}
	copied := *r
	return &copied, nil
}

func (f *fakeReportStore) List(ctx context.Context, opts repositories.ReportListOptions) ([]*models.Report, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var all []*models.Report
	for _, r := range f.reports {
		if opts.OwnerID != "" && r.UserID != opts.OwnerID {
			continue
		}
		if opts.Status != nil && r.Status != *opts.Status {
			continue
		}
		if opts.From != nil && r.CreatedAt.Before(*opts.From) {
			continue
		}
		if opts.To != nil && r.CreatedAt.After(*opts.To) {
			continue
		}
		copied := *r
		all = append(all, &copied)
	}

	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ID > all[j].ID
	})

	if opts.AfterCreatedAt != nil {
		var filtered []*models.Report
		for _, r := range all {
			if r.CreatedAt.After(*opts.AfterCreatedAt) {
				continue
			}
			if r.CreatedAt.Equal(*opts.AfterCreatedAt) && r.ID >= opts.AfterID {
				continue
			}
			filtered = append(filtered, r)
		}
		all = filtered
	}

	if opts.Limit > 0 && len(all) > opts.Limit {
		all = all[:opts.Limit]
	}
	return all, nil
}

func (f *fakeReportStore) Resolve(ctx context.Context, id int64, adminID, feedback string, feedbackPhotos []string, resolvedAt time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.reports[id]
	if !ok || r.Status != models.StatusPending {
		return false, nil
	}
	r.Status = models.StatusComplete
	r.ResolvedAt = &resolvedAt
	r.FeedbackBy = &adminID
	r.FeedbackDescription = &feedback
	r.FeedbackImageURLs = feedbackPhotos
	return true, nil
}

func (f *fakeReportStore) DeleteBulk(ctx context.Context, ids []int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var deleted int64
	for _, id := range ids {
		if _, ok := f.reports[id]; ok {
			delete(f.reports, id)
			deleted++
		}
	}
	return deleted, nil
}

func (f *fakeReportStore) ListByYear(ctx context.Context, from, to time.Time) ([]*models.Report, error) {
	return f.List(ctx, repositories.ReportListOptions{From: &from, To: &to})
}

// fakeUploader fails on the Nth upload when failOn > 0 (1-based).
type fakeUploader struct {
	mu      sync.Mutex
	n       int
	failOn  int
	stored  []string
	deleted []string
}

func (f *fakeUploader) Upload(ctx context.Context, data []byte, contentType, name string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.n++
	if f.failOn > 0 && f.n == f.failOn {
		return "", errors.New("storage unavailable")
	}
	url := "https://cdn.example.com/" + name
	f.stored = append(f.stored, url)
	return url, nil
}

func (f *fakeUploader) Delete(ctx context.Context, url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, url)
	return nil
}

type fakeNotifier struct {
	mu      sync.Mutex
	reports []*models.Report
}

func (f *fakeNotifier) ReportSubmitted(r *models.Report) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reports = append(f.reports, r)
}
