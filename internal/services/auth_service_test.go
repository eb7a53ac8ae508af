package services

import (
	"sync"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/lostperson-api/internal/database/dbtest"
	"github.com/ahmetcoskunkizilkaya/lostperson-api/internal/dto"
	"github.com/ahmetcoskunkizilkaya/lostperson-api/internal/models"
	"github.com/ahmetcoskunkizilkaya/lostperson-api/internal/notify"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

type fakeNotifier struct {
	mu  sync.Mutex
	got []notify.Registration
}

func (f *fakeNotifier) NotifyRegistered(reg notify.Registration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.got = append(f.got, reg)
}

func newAuthService(t *testing.T) (*AuthService, *fakeNotifier) {
	t.Helper()
	n := &fakeNotifier{}
	return NewAuthService(dbtest.New(t), NewTokenIssuer(testSecret, time.Hour), n), n
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _ := newAuthService(t)

	require.NoError(t, svc.Register(&dto.RegisterRequest{
		Name: "Asha", Email: "a@x.com", Mobile: "111", Location: "Pune", Password: "secret",
	}))

	err := svc.Register(&dto.RegisterRequest{
		Name: "Someone Else", Email: "a@x.com", Mobile: "222", Location: "Delhi", Password: "other",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegister_StoresHashNotPlaintext(t *testing.T) {
	svc, _ := newAuthService(t)

	require.NoError(t, svc.Register(&dto.RegisterRequest{Name: "Asha", Email: "a@x.com", Password: " secret "}))

	var user models.User
	require.NoError(t, svc.db.Where("email = ?", "a@x.com").First(&user).Error)
	assert.NotContains(t, user.Password, "secret")

	ok, err := VerifyPassword(user.Password, "secret")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRegister_NotifiesAfterPersisting(t *testing.T) {
	svc, n := newAuthService(t)

	require.NoError(t, svc.Register(&dto.RegisterRequest{Name: "Asha", Email: "a@x.com", Password: "secret"}))
	_ = svc.Register(&dto.RegisterRequest{Name: "Asha", Email: "a@x.com", Password: "secret"})

	require.Len(t, n.got, 1)
	assert.Equal(t, "a@x.com", n.got[0].Email)
	assert.Equal(t, "Asha", n.got[0].Name)
}

func TestRegister_WithoutNotifier(t *testing.T) {
	svc := NewAuthService(dbtest.New(t), NewTokenIssuer(testSecret, time.Hour), nil)
	assert.NoError(t, svc.Register(&dto.RegisterRequest{Email: "a@x.com", Password: "secret"}))
}

func TestRegister_MissingFields(t *testing.T) {
	svc, _ := newAuthService(t)

	err := svc.Register(&dto.RegisterRequest{Name: "Asha", Password: "   "})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"email", "password"}, verr.Fields)
}

func TestLogin_TrimmedPasswordReturnsToken(t *testing.T) {
	svc, _ := newAuthService(t)
	require.NoError(t, svc.Register(&dto.RegisterRequest{Email: "a@x.com", Password: " secret "}))

	resp, err := svc.Login(&dto.LoginRequest{Email: "a@x.com", Password: "secret"})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, resp.UserID)

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(resp.Token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)

	sub, err := claims.GetSubject()
	require.NoError(t, err)
	assert.Equal(t, resp.UserID.String(), sub)

	exp, err := claims.GetExpirationTime()
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp.Time, 5*time.Second)
}

func TestLogin_UniformFailure(t *testing.T) {
	svc, _ := newAuthService(t)
	require.NoError(t, svc.Register(&dto.RegisterRequest{Email: "a@x.com", Password: "secret"}))

	_, wrongPassword := svc.Login(&dto.LoginRequest{Email: "a@x.com", Password: "nope"})
	_, unknownEmail := svc.Login(&dto.LoginRequest{Email: "b@x.com", Password: "secret"})

	assert.ErrorIs(t, wrongPassword, ErrInvalidCredentials)
	assert.ErrorIs(t, unknownEmail, ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestLogin_CorruptHash(t *testing.T) {
	svc, _ := newAuthService(t)
	require.NoError(t, svc.db.Create(&models.User{Email: "a@x.com", Password: "secret"}).Error)

	_, err := svc.Login(&dto.LoginRequest{Email: "a@x.com", Password: "secret"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
