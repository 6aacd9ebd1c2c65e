package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"study-hub/internal/model"
	"study-hub/internal/repository"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User // key: id
	seq   int
	// createErr 非 nil 时 Create 返回该错误（模拟唯一约束竞争等）
	createErr error
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	for _, u := range m.users {
		if u.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	if user.ID == "" {
		m.seq++
		user.ID = fmt.Sprintf("user-%d", m.seq)
	}
	user.CreatedAt = time.Now()
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) List(_ context.Context, filters *repository.UserListFilters, offset, limit int) ([]model.User, int64, error) {
	var all []model.User
	for _, u := range m.users {
		if filters != nil {
			if filters.Role != "" && u.Role != filters.Role {
				continue
			}
			if kw := strings.ToLower(filters.Keyword); kw != "" &&
				!strings.Contains(strings.ToLower(u.Name), kw) &&
				!strings.Contains(strings.ToLower(u.Email), kw) {
				continue
			}
		}
		all = append(all, *u)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })

	total := int64(len(all))
	if offset >= len(all) {
		return []model.User{}, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (m *mockUserRepo) Delete(_ context.Context, id string) error {
	delete(m.users, id)
	return nil
}

// ── Mock StudySessionRepository ──

type mockStudySessionRepo struct {
	sessions map[string]*model.StudySession
	seq      int
}

func newMockStudySessionRepo() *mockStudySessionRepo {
	return &mockStudySessionRepo{sessions: make(map[string]*model.StudySession)}
}

func (m *mockStudySessionRepo) Create(_ context.Context, s *model.StudySession) error {
	if s.ID == "" {
		m.seq++
		s.ID = fmt.Sprintf("session-%d", m.seq)
	}
	s.CreatedAt = time.Now()
	cp := *s
	m.sessions[s.ID] = &cp
	return nil
}

func (m *mockStudySessionRepo) GetByID(_ context.Context, id string) (*model.StudySession, error) {
	if s, ok := m.sessions[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStudySessionRepo) ListByUser(_ context.Context, userID, day string) ([]model.StudySession, error) {
	var result []model.StudySession
	for _, s := range m.sessions {
		if s.UserID != userID || (day != "" && s.Day != day) {
			continue
		}
		result = append(result, *s)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].StartTime != result[j].StartTime {
			return result[i].StartTime < result[j].StartTime
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (m *mockStudySessionRepo) Update(_ context.Context, s *model.StudySession) error {
	cp := *s
	m.sessions[s.ID] = &cp
	return nil
}

func (m *mockStudySessionRepo) Delete(_ context.Context, id string) error {
	delete(m.sessions, id)
	return nil
}

// ── Mock AssignmentRepository ──

type mockAssignmentRepo struct {
	assignments map[string]*model.Assignment
	seq         int
}

func newMockAssignmentRepo() *mockAssignmentRepo {
	return &mockAssignmentRepo{assignments: make(map[string]*model.Assignment)}
}

func (m *mockAssignmentRepo) Create(_ context.Context, a *model.Assignment) error {
	if a.ID == "" {
		m.seq++
		a.ID = fmt.Sprintf("assignment-%02d", m.seq)
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Date(2026, 1, 1, 0, 0, m.seq, 0, time.UTC)
	}
	cp := *a
	m.assignments[a.ID] = &cp
	return nil
}

func (m *mockAssignmentRepo) GetByID(_ context.Context, id string) (*model.Assignment, error) {
	if a, ok := m.assignments[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

// ListByUser 按 ID 顺序返回，排序交由 Service 负责
func (m *mockAssignmentRepo) ListByUser(_ context.Context, userID string, completed *bool) ([]model.Assignment, error) {
	var result []model.Assignment
	for _, a := range m.assignments {
		if a.UserID != userID || (completed != nil && a.Completed != *completed) {
			continue
		}
		result = append(result, *a)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockAssignmentRepo) Update(_ context.Context, a *model.Assignment) error {
	cp := *a
	m.assignments[a.ID] = &cp
	return nil
}

func (m *mockAssignmentRepo) Delete(_ context.Context, id string) error {
	delete(m.assignments, id)
	return nil
}

// ── Mock EvidenceRepository ──

type mockEvidenceRepo struct {
	evidence map[string]*model.RubricEvidence
	seq      int
}

func newMockEvidenceRepo() *mockEvidenceRepo {
	return &mockEvidenceRepo{evidence: make(map[string]*model.RubricEvidence)}
}

func (m *mockEvidenceRepo) Create(_ context.Context, e *model.RubricEvidence) error {
	if e.ID == "" {
		m.seq++
		e.ID = fmt.Sprintf("evidence-%02d", m.seq)
	}
	cp := *e
	m.evidence[e.ID] = &cp
	return nil
}

func (m *mockEvidenceRepo) GetByID(_ context.Context, id string) (*model.RubricEvidence, error) {
	if e, ok := m.evidence[id]; ok {
		cp := *e
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEvidenceRepo) List(_ context.Context, filters *repository.EvidenceFilters) ([]model.RubricEvidence, error) {
	var result []model.RubricEvidence
	for _, e := range m.evidence {
		if filters != nil {
			if filters.StudentEmail != "" && !strings.EqualFold(e.StudentEmail, filters.StudentEmail) {
				continue
			}
			if filters.Category != "" && e.RubricCategory != filters.Category {
				continue
			}
			if kw := strings.ToLower(filters.Search); kw != "" &&
				!strings.Contains(strings.ToLower(e.StudentName), kw) &&
				!strings.Contains(strings.ToLower(e.Subject), kw) &&
				!strings.Contains(strings.ToLower(e.Description), kw) {
				continue
			}
		}
		result = append(result, *e)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].DateSubmitted.Equal(result[j].DateSubmitted) {
			return result[i].DateSubmitted.After(result[j].DateSubmitted)
		}
		return result[i].ID > result[j].ID
	})
	return result, nil
}

func (m *mockEvidenceRepo) Delete(_ context.Context, id string) error {
	delete(m.evidence, id)
	return nil
}

// ── Mock TokenRevoker ──

type mockRevoker struct {
	revoked map[string]time.Duration
}

func newMockRevoker() *mockRevoker {
	return &mockRevoker{revoked: make(map[string]time.Duration)}
}

func (m *mockRevoker) BlacklistToken(_ context.Context, jti string, ttl time.Duration) error {
	m.revoked[jti] = ttl
	return nil
}

// ── 测试辅助 ──

type testRepos struct {
	repo        *repository.Repository
	users       *mockUserRepo
	sessions    *mockStudySessionRepo
	assignments *mockAssignmentRepo
	evidence    *mockEvidenceRepo
}

func newTestRepos() *testRepos {
	r := &testRepos{
		users:       newMockUserRepo(),
		sessions:    newMockStudySessionRepo(),
		assignments: newMockAssignmentRepo(),
		evidence:    newMockEvidenceRepo(),
	}
	r.repo = &repository.Repository{
		User:         r.users,
		StudySession: r.sessions,
		Assignment:   r.assignments,
		Evidence:     r.evidence,
		Pomodoro:     repository.NewMemoryPomodoroStore(),
	}
	return r
}

// fixedNow 返回固定时间的时钟
func fixedNow(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func mustDate(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}
