package service_test

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/flintapp/flint/internal/domain"
)

// memStore is an in-memory implementation of every repository
// interface, mirroring the filtering and uniqueness rules the postgres
// layer enforces. One instance backs all repos in a test so the
// cross-table behavior (candidate exclusion, match joins) works.
type memStore struct {
	mu sync.Mutex

	users    map[int64]*domain.User
	profiles map[int64]*domain.Profile // keyed by user id
	photos   map[int64]*domain.Photo
	swipes   map[[2]int64]*domain.Swipe
	matches  map[[2]int64]*domain.Match
	messages []*domain.Message

	nextUserID    int64
	nextProfileID int64
	nextPhotoID   int64
	nextMatchID   int64
	nextMessageID int64

	clock time.Time
}

func newMemStore() *memStore {
	return &memStore{
		users:    make(map[int64]*domain.User),
		profiles: make(map[int64]*domain.Profile),
		photos:   make(map[int64]*domain.Photo),
		swipes:   make(map[[2]int64]*domain.Swipe),
		matches:  make(map[[2]int64]*domain.Match),
		clock:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// tick returns a strictly increasing timestamp so ordering assertions
// are deterministic.
func (m *memStore) tick() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

// --- UserRepository ---

func (m *memStore) Create(ctx context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextUserID++
	user.ID = m.nextUserID
	cp := *user
	m.users[user.ID] = &cp
	return nil
}

func (m *memStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (m *memStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memStore) Deactivate(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		u.IsActive = false
	}
	return nil
}

// --- ProfileRepository ---

type profileRepo struct{ *memStore }

func (m *memStore) ProfileRepo() *profileRepo { return &profileRepo{m} }

func (r *profileRepo) Create(ctx context.Context, profile *domain.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextProfileID++
	profile.ID = r.nextProfileID
	cp := *profile
	r.profiles[profile.UserID] = &cp
	return nil
}

func (r *profileRepo) GetByUserID(ctx context.Context, userID int64) (*domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[userID]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *profileRepo) Update(ctx context.Context, profile *domain.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *profile
	r.profiles[profile.UserID] = &cp
	return nil
}

func (r *profileRepo) FindCandidates(ctx context.Context, requester *domain.Profile, limit int) ([]domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []domain.Profile
	for _, p := range r.profiles {
		if p.UserID == requester.UserID {
			continue
		}
		if u, ok := r.users[p.UserID]; !ok || !u.IsActive {
			continue
		}
		if p.Age != nil && (*p.Age < requester.MinAgePref || *p.Age > requester.MaxAgePref) {
			continue
		}
		if requester.InterestedInGender != nil && p.Gender != nil && *p.Gender != *requester.InterestedInGender {
			continue
		}
		if _, swiped := r.swipes[[2]int64{requester.UserID, p.UserID}]; swiped {
			continue
		}
		out = append(out, *p)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// --- PhotoRepository ---

type photoRepo struct{ *memStore }

func (m *memStore) PhotoRepo() *photoRepo { return &photoRepo{m} }

func (r *photoRepo) Add(ctx context.Context, photo *domain.Photo) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextPhotoID++
	photo.ID = r.nextPhotoID
	cp := *photo
	r.photos[photo.ID] = &cp
	return nil
}

func (r *photoRepo) ListByProfile(ctx context.Context, profileID int64) ([]domain.Photo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Photo
	for _, p := range r.photos {
		if p.ProfileID == profileID {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SortOrder != out[j].SortOrder {
			return out[i].SortOrder < out[j].SortOrder
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *photoRepo) GetOwned(ctx context.Context, photoID, userID int64) (*domain.Photo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	photo, ok := r.photos[photoID]
	if !ok {
		return nil, nil
	}
	profile, ok := r.profiles[userID]
	if !ok || profile.ID != photo.ProfileID {
		return nil, nil
	}
	cp := *photo
	return &cp, nil
}

func (r *photoRepo) Delete(ctx context.Context, photoID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.photos, photoID)
	return nil
}

// --- SwipeRepository ---

type swipeRepo struct{ *memStore }

func (m *memStore) SwipeRepo() *swipeRepo { return &swipeRepo{m} }

func (r *swipeRepo) Upsert(ctx context.Context, swipe *domain.Swipe) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := [2]int64{swipe.FromUserID, swipe.ToUserID}
	now := r.tick()
	if existing, ok := r.swipes[key]; ok {
		existing.Action = swipe.Action
		existing.UpdatedAt = now
		swipe.CreatedAt = existing.CreatedAt
		swipe.UpdatedAt = now
		return nil
	}
	swipe.CreatedAt = now
	swipe.UpdatedAt = now
	cp := *swipe
	r.swipes[key] = &cp
	return nil
}

func (r *swipeRepo) Get(ctx context.Context, fromUserID, toUserID int64) (*domain.Swipe, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.swipes[[2]int64{fromUserID, toUserID}]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *swipeRepo) CountPositiveReceived(ctx context.Context, userID int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, s := range r.swipes {
		if s.ToUserID == userID && s.Action.Positive() {
			count++
		}
	}
	return count, nil
}

// --- MatchRepository ---

type matchRepo struct{ *memStore }

func (m *memStore) MatchRepo() *matchRepo { return &matchRepo{m} }

func (r *matchRepo) Ensure(ctx context.Context, userA, userB int64) (*domain.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u1, u2 := domain.CanonicalPair(userA, userB)
	key := [2]int64{u1, u2}
	if existing, ok := r.matches[key]; ok {
		cp := *existing
		return &cp, nil
	}
	r.nextMatchID++
	m := &domain.Match{ID: r.nextMatchID, User1ID: u1, User2ID: u2, CreatedAt: r.tick()}
	r.matches[key] = m
	cp := *m
	return &cp, nil
}

func (r *matchRepo) GetByID(ctx context.Context, id int64) (*domain.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.matches {
		if m.ID == id {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *matchRepo) ListByUser(ctx context.Context, userID int64) ([]domain.MatchSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.MatchSummary
	for _, m := range r.matches {
		if !m.Involves(userID) {
			continue
		}
		otherID := m.User1ID
		if otherID == userID {
			otherID = m.User2ID
		}
		name := ""
		if p, ok := r.profiles[otherID]; ok {
			name = p.DisplayName
		}
		out = append(out, domain.MatchSummary{
			MatchID:     m.ID,
			OtherUserID: otherID,
			DisplayName: name,
			CreatedAt:   m.CreatedAt,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// --- MessageRepository ---

type messageRepo struct{ *memStore }

func (m *memStore) MessageRepo() *messageRepo { return &messageRepo{m} }

func (r *messageRepo) Create(ctx context.Context, msg *domain.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextMessageID++
	msg.ID = r.nextMessageID
	msg.CreatedAt = r.tick()
	cp := *msg
	r.messages = append(r.messages, &cp)
	return nil
}

func (r *messageRepo) ListByMatch(ctx context.Context, matchID int64) ([]domain.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Message
	for _, msg := range r.messages {
		if msg.MatchID == matchID {
			out = append(out, *msg)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// --- seeding helpers ---

func ptr[T any](v T) *T { return &v }

func itoa(id int64) string { return strconv.FormatInt(id, 10) }

// seedUser inserts an active user plus a profile and returns the user id.
func seedUser(s *memStore, displayName string, age *int, gender *string) int64 {
	user := &domain.User{Email: displayName + "@test.com", PasswordHash: "x", IsActive: true}
	_ = s.Create(context.Background(), user)
	profile := &domain.Profile{
		UserID:      user.ID,
		DisplayName: displayName,
		Age:         age,
		Gender:      gender,
		MinAgePref:  18,
		MaxAgePref:  99,
	}
	_ = s.ProfileRepo().Create(context.Background(), profile)
	return user.ID
}
