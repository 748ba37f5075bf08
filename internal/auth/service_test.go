package auth

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zerodivida/zerodivida/internal/shared"
)

// fakeRepo stores raw credential strings and classifies them on read, the
// same way the PostgreSQL repository does.
type fakeRepo struct {
	users     map[int64]*storedUser
	nextID    int64
	updateErr error
	findErr   error
	createErr error
}

type storedUser struct {
	name   string
	email  string
	cpf    string
	age    int
	stored string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: map[int64]*storedUser{}, nextID: 1}
}

func (f *fakeRepo) seed(email, cpf, stored string) int64 {
	id := f.nextID
	f.nextID++
	f.users[id] = &storedUser{name: "seeded", email: email, cpf: cpf, age: 30, stored: stored}
	return id
}

func (f *fakeRepo) find(match func(*storedUser) bool) (*User, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	for id, u := range f.users {
		if match(u) {
			return &User{
				ID:         id,
				Name:       u.name,
				Email:      u.email,
				CPF:        u.cpf,
				Age:        u.age,
				Credential: CredentialFromStored(u.stored),
			}, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (f *fakeRepo) FindByEmail(ctx context.Context, email string) (*User, error) {
	return f.find(func(u *storedUser) bool { return u.email == email })
}

func (f *fakeRepo) FindByCPF(ctx context.Context, cpf string) (*User, error) {
	return f.find(func(u *storedUser) bool { return u.cpf == cpf })
}

func (f *fakeRepo) ExistsByEmailOrCPF(ctx context.Context, email, cpf string) (bool, error) {
	for _, u := range f.users {
		if u.email == email || u.cpf == cpf {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) CreateUser(ctx context.Context, user NewUser) (int64, error) {
	if f.createErr != nil {
		return 0, f.createErr
	}
	if user.Credential.Kind() != CredentialHashed {
		return 0, errors.New("fake: non-hashed credential")
	}
	id := f.nextID
	f.nextID++
	f.users[id] = &storedUser{name: user.Name, email: user.Email, cpf: user.CPF, age: user.Age, stored: user.Credential.Stored()}
	return id, nil
}

func (f *fakeRepo) UpdateCredential(ctx context.Context, userID int64, cred Credential) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	u, ok := f.users[userID]
	if !ok {
		return shared.ErrNotFound
	}
	u.stored = cred.Stored()
	return nil
}

func (f *fakeRepo) GetProfile(ctx context.Context, id int64) (*Profile, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &Profile{ID: id, Name: u.name, Email: u.email}, nil
}

var _ Repository = (*fakeRepo)(nil)

func validInput() RegisterInput {
	return RegisterInput{Name: "Ana", Email: "a@b.com", CPF: "111", Age: 28, Password: "secret"}
}

func TestRegisterMissingFields(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nil, nil)

	cases := map[string]RegisterInput{
		"name":     {Email: "a@b.com", CPF: "111", Age: 28, Password: "secret"},
		"email":    {Name: "Ana", CPF: "111", Age: 28, Password: "secret"},
		"cpf":      {Name: "Ana", Email: "a@b.com", Age: 28, Password: "secret"},
		"age":      {Name: "Ana", Email: "a@b.com", CPF: "111", Password: "secret"},
		"password": {Name: "Ana", Email: "a@b.com", CPF: "111", Age: 28},
	}
	for field, in := range cases {
		_, err := svc.Register(context.Background(), in)
		require.ErrorIs(t, err, shared.ErrMissingField, "missing %s", field)
	}
	assert.Empty(t, repo.users, "no record may be created on validation failure")
}

func TestRegisterDuplicate(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nil, nil)

	_, err := svc.Register(context.Background(), validInput())
	require.NoError(t, err)

	sameEmail := validInput()
	sameEmail.CPF = "222"
	_, err = svc.Register(context.Background(), sameEmail)
	assert.ErrorIs(t, err, shared.ErrDuplicateUser)

	sameCPF := validInput()
	sameCPF.Email = "c@d.com"
	_, err = svc.Register(context.Background(), sameCPF)
	assert.ErrorIs(t, err, shared.ErrDuplicateUser)

	assert.Len(t, repo.users, 1)
}

func TestRegisterConcurrentDuplicate(t *testing.T) {
	// The pre-check sees no conflict, but the transactional insert reports
	// one, as when another registration lands between check and insert.
	repo := newFakeRepo()
	repo.createErr = shared.ErrDuplicateUser
	svc := NewService(repo, nil, nil)

	_, err := svc.Register(context.Background(), validInput())
	assert.ErrorIs(t, err, shared.ErrDuplicateUser)
	assert.Empty(t, repo.users)
}

func TestRegisterStoresHashedCredential(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nil, nil)

	id, err := svc.Register(context.Background(), validInput())
	require.NoError(t, err)

	stored := repo.users[id].stored
	assert.True(t, strings.HasPrefix(stored, "$2"), "credential must be a bcrypt hash, got %q", stored[:2])
	assert.NotContains(t, stored, "secret")

	got, err := svc.Authenticate(context.Background(), "a@b.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestAuthenticateSelectsLookupField(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nil, nil)

	id, err := svc.Register(context.Background(), validInput())
	require.NoError(t, err)

	byEmail, err := svc.Authenticate(context.Background(), "a@b.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, id, byEmail)

	byCPF, err := svc.Authenticate(context.Background(), "111", "secret")
	require.NoError(t, err)
	assert.Equal(t, id, byCPF)
}

func TestAuthenticateWrongPassword(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nil, nil)

	id, err := svc.Register(context.Background(), validInput())
	require.NoError(t, err)
	before := repo.users[id].stored

	_, err = svc.Authenticate(context.Background(), "111", "wrong")
	assert.ErrorIs(t, err, shared.ErrInvalidCredential)
	assert.Equal(t, before, repo.users[id].stored, "failed login must not mutate the credential")
}

func TestAuthenticateUnknownUser(t *testing.T) {
	svc := NewService(newFakeRepo(), nil, nil)

	_, err := svc.Authenticate(context.Background(), "nobody@b.com", "secret")
	assert.ErrorIs(t, err, shared.ErrUserNotFound)
}

func TestLegacyLoginMigratesCredential(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nil, nil)
	id := repo.seed("legacy@b.com", "999", "secret")

	got, err := svc.Authenticate(context.Background(), "legacy@b.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, id, got)

	stored := repo.users[id].stored
	require.True(t, strings.HasPrefix(stored, "$2"), "legacy credential must be upgraded, got %q", stored)

	// Idempotence across the migration boundary: the same password keeps working.
	_, err = svc.Authenticate(context.Background(), "legacy@b.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, stored, repo.users[id].stored, "second login must not rewrite the hash")
}

func TestLegacyLoginWrongPasswordDoesNotMigrate(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nil, nil)
	id := repo.seed("legacy@b.com", "999", "secret")

	_, err := svc.Authenticate(context.Background(), "999", "wrong")
	assert.ErrorIs(t, err, shared.ErrInvalidCredential)
	assert.Equal(t, "secret", repo.users[id].stored)
}

func TestMigrationWriteFailureDoesNotFailLogin(t *testing.T) {
	repo := newFakeRepo()
	repo.updateErr = errors.New("connection reset")
	svc := NewService(repo, nil, nil)
	id := repo.seed("legacy@b.com", "999", "secret")

	got, err := svc.Authenticate(context.Background(), "legacy@b.com", "secret")
	require.NoError(t, err, "migration failure must not surface to the caller")
	assert.Equal(t, id, got)
	assert.Equal(t, "secret", repo.users[id].stored)

	// Next login retries the upgrade once the write path recovers.
	repo.updateErr = nil
	_, err = svc.Authenticate(context.Background(), "legacy@b.com", "secret")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(repo.users[id].stored, "$2"))
}

func TestProfile(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nil, nil)
	id := repo.seed("p@b.com", "321", "whatever")

	profile, err := svc.Profile(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "p@b.com", profile.Email)

	_, err = svc.Profile(context.Background(), id+100)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
