package handlers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"ptsportal/api/internal/auth"
	"ptsportal/api/internal/config"
	"ptsportal/api/internal/models"
	"ptsportal/api/internal/repository"
	"ptsportal/api/internal/security"
	"ptsportal/api/internal/service"
)

const testServiceAccount = "ops@pts-portal.iam.gserviceaccount.com"

// --- fakes ---

type fakeUserStore struct {
	users map[string]models.User // keyed by id

	created        []models.User
	deleted        []string
	roleUpdates    []string
	profileUpdates []models.User

	err error
}

func newFakeUserStore(users ...models.User) *fakeUserStore {
	s := &fakeUserStore{users: make(map[string]models.User)}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

func (f *fakeUserStore) Create(ctx context.Context, user models.User) error {
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, user)
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserStore) GetByID(ctx context.Context, id string) (models.User, error) {
	if f.err != nil {
		return models.User{}, f.err
	}
	user, ok := f.users[id]
	if !ok {
		return models.User{}, repository.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserStore) FindByEmail(ctx context.Context, email string) (models.User, error) {
	if f.err != nil {
		return models.User{}, f.err
	}
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return models.User{}, repository.ErrUserNotFound
}

func (f *fakeUserStore) FindIdentity(ctx context.Context, email string) (models.SessionUser, error) {
	user, err := f.FindByEmail(ctx, email)
	if err != nil {
		return models.SessionUser{}, err
	}
	return models.SessionUser{
		ID:         user.ID,
		Email:      user.Email,
		UserType:   user.UserType,
		ScheduleID: user.ScheduleID,
	}, nil
}

func (f *fakeUserStore) List(ctx context.Context) ([]models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]models.User, 0, len(f.users))
	for _, user := range f.users {
		out = append(out, user)
	}
	return out, nil
}

func (f *fakeUserStore) UpdateProfile(ctx context.Context, user models.User) error {
	if f.err != nil {
		return f.err
	}
	f.profileUpdates = append(f.profileUpdates, user)
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserStore) UpdateUserType(ctx context.Context, id string, userType models.UserType) error {
	if f.err != nil {
		return f.err
	}
	f.roleUpdates = append(f.roleUpdates, id+":"+string(userType))
	if user, ok := f.users[id]; ok {
		user.UserType = userType
		f.users[id] = user
	}
	return nil
}

func (f *fakeUserStore) Delete(ctx context.Context, id string) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, id)
	delete(f.users, id)
	return nil
}

type fakeCommitteeStore struct {
	committees map[string]models.Committee

	created       []models.Committee
	deletedIDs    []string
	imageUpdates  []string
	removed       []string
	addedOfficers []models.Officer

	deleteErr error
	officerErr error
}

func newFakeCommitteeStore(committees ...models.Committee) *fakeCommitteeStore {
	s := &fakeCommitteeStore{committees: make(map[string]models.Committee)}
	for _, committee := range committees {
		s.committees[committee.ID] = committee
	}
	return s
}

func (f *fakeCommitteeStore) Create(ctx context.Context, committee models.Committee) error {
	f.created = append(f.created, committee)
	f.committees[committee.ID] = committee
	return nil
}

func (f *fakeCommitteeStore) GetByID(ctx context.Context, id string) (models.Committee, error) {
	committee, ok := f.committees[id]
	if !ok {
		return models.Committee{}, repository.ErrCommitteeNotFound
	}
	return committee, nil
}

func (f *fakeCommitteeStore) List(ctx context.Context) ([]models.Committee, error) {
	out := make([]models.Committee, 0, len(f.committees))
	for _, committee := range f.committees {
		out = append(out, committee)
	}
	return out, nil
}

func (f *fakeCommitteeStore) Delete(ctx context.Context, id string) (string, error) {
	if f.deleteErr != nil {
		return "", f.deleteErr
	}
	committee, ok := f.committees[id]
	if !ok {
		return "", repository.ErrCommitteeNotFound
	}
	delete(f.committees, id)
	f.deletedIDs = append(f.deletedIDs, id)
	return committee.Name, nil
}

func (f *fakeCommitteeStore) AddOfficer(ctx context.Context, committeeID string, officer models.Officer) error {
	if f.officerErr != nil {
		return f.officerErr
	}
	f.addedOfficers = append(f.addedOfficers, officer)
	return nil
}

func (f *fakeCommitteeStore) UpdateOfficerImage(ctx context.Context, committeeID string, userID string, image string) error {
	if f.officerErr != nil {
		return f.officerErr
	}
	f.imageUpdates = append(f.imageUpdates, committeeID+"/"+userID+":"+image)
	return nil
}

func (f *fakeCommitteeStore) RemoveOfficer(ctx context.Context, committeeID string, userID string) error {
	if f.officerErr != nil {
		return f.officerErr
	}
	f.removed = append(f.removed, committeeID+"/"+userID)
	return nil
}

type fakeLibraryStore struct {
	entries map[string]models.LibraryEntry

	added   []string
	removed []string

	addErr    error
	removeErr error
}

func newFakeLibraryStore(entries ...models.LibraryEntry) *fakeLibraryStore {
	s := &fakeLibraryStore{entries: make(map[string]models.LibraryEntry)}
	for _, entry := range entries {
		s.entries[entry.ID] = entry
	}
	return s
}

func (f *fakeLibraryStore) Create(ctx context.Context, entry models.LibraryEntry) error {
	f.entries[entry.ID] = entry
	return nil
}

func (f *fakeLibraryStore) GetByID(ctx context.Context, id string) (models.LibraryEntry, error) {
	entry, ok := f.entries[id]
	if !ok {
		return models.LibraryEntry{}, repository.ErrLibraryNotFound
	}
	return entry, nil
}

func (f *fakeLibraryStore) List(ctx context.Context) ([]models.LibraryEntry, error) {
	out := make([]models.LibraryEntry, 0, len(f.entries))
	for _, entry := range f.entries {
		out = append(out, entry)
	}
	return out, nil
}

func (f *fakeLibraryStore) Delete(ctx context.Context, id string) error {
	if _, ok := f.entries[id]; !ok {
		return repository.ErrLibraryNotFound
	}
	delete(f.entries, id)
	return nil
}

func (f *fakeLibraryStore) AddContent(ctx context.Context, id string, name string) error {
	if f.addErr != nil {
		return f.addErr
	}
	f.added = append(f.added, id+":"+name)
	return nil
}

func (f *fakeLibraryStore) RemoveContent(ctx context.Context, id string, name string) error {
	if f.removeErr != nil {
		return f.removeErr
	}
	f.removed = append(f.removed, id+":"+name)
	return nil
}

type fakeTuteeStore struct {
	tutees map[string]models.Tutee

	calls []string
}

func newFakeTuteeStore(tutees ...models.Tutee) *fakeTuteeStore {
	s := &fakeTuteeStore{tutees: make(map[string]models.Tutee)}
	for _, tutee := range tutees {
		s.tutees[tutee.ID] = tutee
	}
	return s
}

func (f *fakeTuteeStore) List(ctx context.Context) ([]models.Tutee, error) {
	out := make([]models.Tutee, 0, len(f.tutees))
	for _, tutee := range f.tutees {
		out = append(out, tutee)
	}
	return out, nil
}

func (f *fakeTuteeStore) Create(ctx context.Context, tutee models.Tutee) error {
	f.calls = append(f.calls, "tutee.create:"+tutee.ID)
	f.tutees[tutee.ID] = tutee
	return nil
}

func (f *fakeTuteeStore) GetByID(ctx context.Context, id string) (models.Tutee, error) {
	tutee, ok := f.tutees[id]
	if !ok {
		return models.Tutee{}, repository.ErrTuteeNotFound
	}
	return tutee, nil
}

func (f *fakeTuteeStore) Delete(ctx context.Context, id string) error {
	f.calls = append(f.calls, "tutee:"+id)
	delete(f.tutees, id)
	return nil
}

type fakeScheduleStore struct {
	schedules map[string]models.Schedule
	calls     *[]string
}

func (f *fakeScheduleStore) Create(ctx context.Context, schedule models.Schedule) error {
	*f.calls = append(*f.calls, "schedule.create:"+schedule.ID)
	f.schedules[schedule.ID] = schedule
	return nil
}

func (f *fakeScheduleStore) GetByID(ctx context.Context, id string) (models.Schedule, error) {
	schedule, ok := f.schedules[id]
	if !ok {
		return models.Schedule{}, repository.ErrScheduleNotFound
	}
	return schedule, nil
}

func (f *fakeScheduleStore) Delete(ctx context.Context, id string) error {
	*f.calls = append(*f.calls, "schedule:"+id)
	delete(f.schedules, id)
	return nil
}

type fakePortraitStore struct {
	keys []string
	url  string
	err  error
}

func (f *fakePortraitStore) UploadPortrait(ctx context.Context, key string, contentType string, data io.Reader, size int64) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.keys = append(f.keys, key)
	return f.url + "/" + key, nil
}

type fakeProvider struct {
	profile     auth.Profile
	exchangeErr error
	fetchErr    error
}

func (f *fakeProvider) AuthCodeURL(state string) string {
	return "https://accounts.google.test/auth?state=" + state
}

func (f *fakeProvider) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	if f.exchangeErr != nil {
		return nil, f.exchangeErr
	}
	return &oauth2.Token{AccessToken: "access-" + code}, nil
}

func (f *fakeProvider) FetchProfile(ctx context.Context, token *oauth2.Token) (auth.Profile, error) {
	if f.fetchErr != nil {
		return auth.Profile{}, f.fetchErr
	}
	return f.profile, nil
}

// --- harness ---

type testEnv struct {
	cfg        *config.AppConfig
	users      *fakeUserStore
	committees *fakeCommitteeStore
	libraries  *fakeLibraryStore
	tutees     *fakeTuteeStore
	schedules  *fakeScheduleStore
	portraits  *fakePortraitStore
	provider   *fakeProvider
	router     *gin.Engine
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.AppConfig{
		Google: config.GoogleConfig{
			AllowedDomain:       "dlsu.edu.ph",
			ServiceAccountEmail: testServiceAccount,
		},
		Security: config.SecurityConfig{
			SessionSecret: "test-secret",
			SessionTTL:    time.Hour,
			SessionCookie: "pts_session",
			StateTTL:      5 * time.Minute,
		},
	}

	env := &testEnv{
		cfg:        cfg,
		users:      newFakeUserStore(),
		committees: newFakeCommitteeStore(),
		libraries:  newFakeLibraryStore(),
		tutees:     newFakeTuteeStore(),
		portraits:  &fakePortraitStore{url: "https://cdn.test/pts-portraits"},
		provider:   &fakeProvider{},
	}
	env.schedules = &fakeScheduleStore{
		schedules: make(map[string]models.Schedule),
		calls:     &env.tutees.calls,
	}

	logger := zerolog.Nop()
	gate := auth.NewGate(cfg.Google)

	h := HandlerSet{
		log:         logger,
		cfg:         cfg,
		provider:    env.provider,
		authService: service.NewAuthService(gate, env.users, cfg, logger),
		members:     service.NewMemberService(env.users, cfg.Google.ServiceAccountEmail, logger),
		tuteeSvc:    service.NewTuteeService(env.tutees, env.schedules, logger),
		users:       env.users,
		committees:  env.committees,
		libraries:   env.libraries,
		tutees:      env.tutees,
		schedules:   env.schedules,
		portraits:   env.portraits,
	}

	env.router = gin.New()
	h.Register(env.router.Group("/api"))
	return env
}

func (e *testEnv) token(t *testing.T, user models.SessionUser) string {
	t.Helper()
	token, err := security.GenerateSessionToken(e.cfg.Security.SessionSecret, user, "jti-test", e.cfg.Security.SessionTTL)
	require.NoError(t, err)
	return token
}

func (e *testEnv) adminToken(t *testing.T) string {
	return e.token(t, models.SessionUser{ID: "admin-1", Email: "admin@dlsu.edu.ph", UserType: models.UserTypeAdmin})
}

func (e *testEnv) serviceAccountToken(t *testing.T) string {
	return e.token(t, models.SessionUser{ID: "svc-1", Email: testServiceAccount, UserType: models.UserTypeAdmin})
}

func (e *testEnv) memberToken(t *testing.T) string {
	return e.token(t, models.SessionUser{ID: "member-1", Email: "member@dlsu.edu.ph", UserType: models.UserTypeMember})
}

func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}
