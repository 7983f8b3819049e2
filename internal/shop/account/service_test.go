package account

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	errx "github.com/aura-storefront/server/internal/core/error"
)

func newService(t *testing.T) (*Service, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	svc := NewService(NewRedisStore(rdb, 30*time.Minute))
	svc.hashCost = bcrypt.MinCost
	return svc, mr
}

func TestUserIDDeterministic(t *testing.T) {
	assert.Equal(t, UserID("Budi@Contoh.com "), UserID("budi@contoh.com"))
	assert.NotEqual(t, UserID("a@b.co"), UserID("c@d.co"))
}

func TestAvatarURL(t *testing.T) {
	assert.Equal(t, "https://ui-avatars.com/api/?name=Aura+Member&background=262320&color=fff", AvatarURL(DefaultMemberName))
}

func TestLoginSessionLifecycle(t *testing.T) {
	svc, mr := newService(t)
	ctx := context.Background()

	sess, err := svc.Login(ctx, "Budi@Contoh.com", "rahasia")
	require.NoError(t, err)
	assert.NotEmpty(t, sess.Token)
	assert.Equal(t, DefaultMemberName, sess.User.Name)
	assert.Equal(t, "budi@contoh.com", sess.User.Email)
	assert.Equal(t, "budi", sess.User.Username)
	assert.Equal(t, 30*time.Minute, mr.TTL("session:"+sess.Token))

	u, err := svc.Current(ctx, sess.Token)
	require.NoError(t, err)
	assert.Equal(t, sess.User, u)

	require.NoError(t, svc.Logout(ctx, sess.Token))
	_, err = svc.Current(ctx, sess.Token)
	assert.ErrorIs(t, err, ErrUnauthorized)
	status, _ := errx.StatusOf(err)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestSessionExpires(t *testing.T) {
	svc, mr := newService(t)
	ctx := context.Background()

	sess, err := svc.Login(ctx, "a@b.co", "pw")
	require.NoError(t, err)
	mr.FastForward(31 * time.Minute)

	_, err = svc.Current(ctx, sess.Token)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestRegisterKeepsName(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	reg, err := svc.Register(ctx, "Sari Dewi", "sari@contoh.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "Sari Dewi", reg.User.Name)
	assert.Contains(t, reg.User.Avatar, "name=Sari+Dewi")

	login, err := svc.Login(ctx, "SARI@contoh.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "Sari Dewi", login.User.Name)
	assert.Equal(t, reg.User.ID, login.User.ID)
	assert.NotEqual(t, reg.Token, login.Token)
}

func TestValidation(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.Login(ctx, "not-an-email", "")
	var verr *errx.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, map[string]string{"email": "enter a valid email address", "password": "required"}, verr.Fields)

	_, err = svc.Register(ctx, "<b>", "x@y.co", "pw")
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "name")

	reg, err := svc.Register(ctx, "", "x@y.co", "pw")
	require.NoError(t, err)
	assert.Equal(t, DefaultMemberName, reg.User.Name)

	_, err = svc.Login(ctx, "x@y.co", strings.Repeat("a", 73))
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "must be at most 72 bytes", verr.Fields["password"])

	_, err = svc.Current(ctx, "")
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.NoError(t, svc.Logout(ctx, ""))
}

func TestLoginChecksPassword(t *testing.T) {
	svc, mr := newService(t)
	ctx := context.Background()

	_, err := svc.Login(ctx, "budi@contoh.com", "rahasia")
	require.NoError(t, err)

	raw, err := mr.Get("user:" + UserID("budi@contoh.com") + ":profile")
	require.NoError(t, err)
	assert.NotContains(t, raw, "rahasia")

	_, err = svc.Login(ctx, "BUDI@contoh.com", "tebakan")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	status, msg := errx.StatusOf(err)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "email or password is incorrect", msg)

	_, err = svc.Login(ctx, "budi@contoh.com", "rahasia")
	assert.NoError(t, err)
}

func TestRegisterRejectsTakenEmail(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Sari Dewi", "sari@contoh.com", "pw")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "Penyusup", "Sari@Contoh.com", "lain")
	assert.ErrorIs(t, err, ErrEmailTaken)
	status, _ := errx.StatusOf(err)
	assert.Equal(t, http.StatusConflict, status)

	login, err := svc.Login(ctx, "sari@contoh.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "Sari Dewi", login.User.Name)

	_, err = svc.Login(ctx, "sari@contoh.com", "lain")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "ana@contoh.com", "pw1")
	require.NoError(t, err)
	_, err = svc.Register(ctx, "Ana", "ana@contoh.com", "pw1")
	assert.ErrorIs(t, err, ErrEmailTaken)
}
