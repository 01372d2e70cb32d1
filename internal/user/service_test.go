package user

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/veloria-studio/session-booking-backend/internal/auth"
)

// memRepo is an in-memory Repository keyed by email and id.
type memRepo struct {
	byEmail map[string]*User
	nextID  int
}

func newMemRepo() *memRepo {
	return &memRepo{byEmail: map[string]*User{}}
}

func (r *memRepo) GetByEmail(_ context.Context, email string) (*User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memRepo) GetByID(_ context.Context, id string) (*User, error) {
	for _, u := range r.byEmail {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memRepo) Create(_ context.Context, u *User) error {
	r.nextID++
	u.ID = fmt.Sprintf("user-%d", r.nextID)
	u.CreatedAt = time.Now()
	cp := *u
	r.byEmail[u.Email] = &cp
	return nil
}

func (r *memRepo) Update(_ context.Context, u *User) error {
	stored, ok := r.byEmail[u.Email]
	if !ok {
		return ErrNotFound
	}
	cp := *u
	cp.PasswordHash = stored.PasswordHash
	r.byEmail[u.Email] = &cp
	return nil
}

func (r *memRepo) UpdateLastLogin(_ context.Context, id string, t time.Time) error {
	for _, u := range r.byEmail {
		if u.ID == id {
			u.LastLoginAt = &t
			return nil
		}
	}
	return ErrNotFound
}

// plainHasher avoids bcrypt cost in tests.
type plainHasher struct{}

func (plainHasher) Hash(plain string) (string, error) { return "hashed:" + plain, nil }

func (plainHasher) Compare(hash, plain string) error {
	if hash != "hashed:"+plain {
		return fmt.Errorf("mismatch")
	}
	return nil
}

func TestRegisterAndLogin(t *testing.T) {
	svc := NewService(newMemRepo(), plainHasher{})
	ctx := context.Background()

	u, err := svc.Register(ctx, "  Ana@Example.COM ", "supersecret", "Ana", auth.RoleArtist)
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", u.Email)
	assert.Equal(t, auth.RoleArtist, u.Role)
	assert.True(t, u.IsActive)

	_, err = svc.Register(ctx, "ana@example.com", "supersecret", "", auth.RoleProfessional)
	assert.ErrorIs(t, err, ErrEmailAlreadyUsed)

	logged, err := svc.Login(ctx, "ana@example.com", "supersecret")
	require.NoError(t, err)
	assert.Equal(t, u.ID, logged.ID)

	_, err = svc.Login(ctx, "ana@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody@example.com", "supersecret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterValidation(t *testing.T) {
	svc := NewService(newMemRepo(), plainHasher{})
	ctx := context.Background()

	_, err := svc.Register(ctx, "", "supersecret", "", auth.RoleArtist)
	assert.Error(t, err)

	_, err = svc.Register(ctx, "bob@example.com", "short", "", auth.RoleArtist)
	assert.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "at least"))

	_, err = svc.Register(ctx, "bob@example.com", "supersecret", "", auth.RoleUnknown)
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestUpdateProfile(t *testing.T) {
	svc := NewService(newMemRepo(), plainHasher{})
	ctx := context.Background()

	u, err := svc.Register(ctx, "ana@example.com", "supersecret", "Ana", auth.RoleArtist)
	require.NoError(t, err)

	bio := "Berlin based vocalist."
	location := " Berlin "
	updated, err := svc.UpdateProfile(ctx, u.ID, UpdateProfileRequest{
		Bio:      &bio,
		Location: &location,
	})
	require.NoError(t, err)
	assert.Equal(t, "Berlin based vocalist.", updated.Bio)
	assert.Equal(t, "Berlin", updated.Location)
	// Untouched fields survive.
	require.NotNil(t, updated.DisplayName)
	assert.Equal(t, "Ana", *updated.DisplayName)

	// Blank display name clears it.
	blank := "  "
	updated, err = svc.UpdateProfile(ctx, u.ID, UpdateProfileRequest{DisplayName: &blank})
	require.NoError(t, err)
	assert.Nil(t, updated.DisplayName)

	_, err = svc.UpdateProfile(ctx, "missing", UpdateProfileRequest{Bio: &bio})
	assert.ErrorIs(t, err, ErrNotFound)
}
