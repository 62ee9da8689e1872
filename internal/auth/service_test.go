package auth

import (
	"context"
	"errors"
	"os"
	"regexp"
	"testing"
	"time"

	"octopus/internal/logs"
	"octopus/internal/models"
)

func TestMain(m *testing.M) {
	logs.Init(logs.Options{Level: "error"})
	os.Exit(m.Run())
}

type memUsers struct {
	nextID uint
	byID   map[uint]*models.User
}

func newMemUsers() *memUsers { return &memUsers{nextID: 1, byID: map[uint]*models.User{}} }

func (m *memUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range m.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (m *memUsers) GetByID(_ context.Context, id uint) (*models.User, error) {
	return m.byID[id], nil
}

func (m *memUsers) Create(_ context.Context, u *models.User) error {
	u.ID = m.nextID
	m.nextID++
	m.byID[u.ID] = u
	return nil
}

type memChallenges struct {
	nextID uint
	byID   map[uint]*models.TwoFactorChallenge
}

func newMemChallenges() *memChallenges {
	return &memChallenges{nextID: 1, byID: map[uint]*models.TwoFactorChallenge{}}
}

func (m *memChallenges) Replace(_ context.Context, c *models.TwoFactorChallenge) error {
	for id, old := range m.byID {
		if old.UserID == c.UserID {
			delete(m.byID, id)
		}
	}
	c.ID = m.nextID
	m.nextID++
	m.byID[c.ID] = c
	return nil
}

func (m *memChallenges) GetByToken(_ context.Context, token string) (*models.TwoFactorChallenge, error) {
	for _, c := range m.byID {
		if c.Token == token {
			return c, nil
		}
	}
	return nil, nil
}

func (m *memChallenges) Consume(_ context.Context, token, code string) (bool, error) {
	for id, c := range m.byID {
		if c.Token == token && c.Code == code {
			delete(m.byID, id)
			return true, nil
		}
	}
	return false, nil
}

func (m *memChallenges) Delete(_ context.Context, id uint) error {
	delete(m.byID, id)
	return nil
}

func newTestService(t *testing.T) (*Service, *memUsers, *memChallenges, *TokenService) {
	t.Helper()
	users := newMemUsers()
	challenges := newMemChallenges()
	tokens := NewTokenService(testSecret, time.Hour)
	return NewService(users, challenges, tokens), users, challenges, tokens
}

func addUser(t *testing.T, users *memUsers, email string, twoFactor, active bool) *models.User {
	t.Helper()
	hash, err := HashPassword("secret123")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	u := &models.User{
		Email:            email,
		FullName:         "Test User",
		HashedPassword:   hash,
		Role:             models.RoleStandardUser,
		IsActive:         active,
		TwoFactorEnabled: twoFactor,
	}
	if err := users.Create(context.Background(), u); err != nil {
		t.Fatalf("Create: %v", err)
	}
	return u
}

func TestLoginIssuesToken(t *testing.T) {
	svc, users, _, tokens := newTestService(t)
	addUser(t, users, "a@example.com", false, true)

	res, err := svc.Login(context.Background(), "a@example.com", "secret123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if res.TwoFactorRequired {
		t.Fatal("2FA must not be required")
	}
	sub, ok := tokens.Validate(res.AccessToken)
	if !ok || sub != "a@example.com" {
		t.Fatalf("access token resolves to %q (ok=%v), want a@example.com", sub, ok)
	}
	if res.User == nil || res.User.Email != "a@example.com" {
		t.Fatal("login result must carry the user")
	}
}

func TestLoginBadCredentials(t *testing.T) {
	svc, users, _, _ := newTestService(t)
	addUser(t, users, "a@example.com", false, true)

	if _, err := svc.Login(context.Background(), "a@example.com", "wrong-pass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.Login(context.Background(), "ghost@example.com", "secret123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestLoginInactive(t *testing.T) {
	svc, users, _, _ := newTestService(t)
	addUser(t, users, "a@example.com", false, false)

	if _, err := svc.Login(context.Background(), "a@example.com", "secret123"); !errors.Is(err, ErrUserInactive) {
		t.Fatalf("err = %v, want ErrUserInactive", err)
	}
}

func TestLoginTwoFactorChallenge(t *testing.T) {
	svc, users, challenges, _ := newTestService(t)
	u := addUser(t, users, "a@example.com", true, true)

	res, err := svc.Login(context.Background(), "a@example.com", "secret123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if !res.TwoFactorRequired {
		t.Fatal("2FA must be required")
	}
	if res.AccessToken != "" {
		t.Fatal("login with 2FA enabled must never hand out a session token")
	}
	if res.TwoFactorToken == "" {
		t.Fatal("missing opaque challenge token")
	}

	rec, err := challenges.GetByToken(context.Background(), res.TwoFactorToken)
	if err != nil || rec == nil {
		t.Fatalf("challenge not stored: %v", err)
	}
	if rec.UserID != u.ID {
		t.Fatalf("challenge user = %d, want %d", rec.UserID, u.ID)
	}
	if !regexp.MustCompile(`^\d{6}$`).MatchString(rec.Code) {
		t.Fatalf("code %q is not exactly six digits", rec.Code)
	}
}

func TestLoginTwoFactorReplacesChallenge(t *testing.T) {
	svc, users, challenges, _ := newTestService(t)
	addUser(t, users, "a@example.com", true, true)
	ctx := context.Background()

	first, err := svc.Login(ctx, "a@example.com", "secret123")
	if err != nil {
		t.Fatalf("first login: %v", err)
	}
	firstRec, _ := challenges.GetByToken(ctx, first.TwoFactorToken)

	second, err := svc.Login(ctx, "a@example.com", "secret123")
	if err != nil {
		t.Fatalf("second login: %v", err)
	}
	if second.TwoFactorToken == first.TwoFactorToken {
		t.Fatal("second login must issue a fresh opaque token")
	}

	// старая пара token+code больше не работает
	if _, err := svc.VerifyTwoFactor(ctx, first.TwoFactorToken, firstRec.Code); !errors.Is(err, ErrChallengeNotFound) {
		t.Fatalf("stale challenge: err = %v, want ErrChallengeNotFound", err)
	}

	live := 0
	for _, c := range challenges.byID {
		live++
		if c.Token != second.TwoFactorToken {
			t.Fatalf("unexpected live challenge %q", c.Token)
		}
	}
	if live != 1 {
		t.Fatalf("live challenges = %d, want exactly 1", live)
	}
}

func TestVerifyTwoFactor(t *testing.T) {
	svc, users, challenges, tokens := newTestService(t)
	addUser(t, users, "a@example.com", true, true)
	ctx := context.Background()

	res, err := svc.Login(ctx, "a@example.com", "secret123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	rec, _ := challenges.GetByToken(ctx, res.TwoFactorToken)

	// неверный код — challenge остаётся жив
	wrong := "000000"
	if wrong == rec.Code {
		wrong = "000001"
	}
	if _, err := svc.VerifyTwoFactor(ctx, res.TwoFactorToken, wrong); !errors.Is(err, ErrCodeMismatch) {
		t.Fatalf("err = %v, want ErrCodeMismatch", err)
	}
	if still, _ := challenges.GetByToken(ctx, res.TwoFactorToken); still == nil {
		t.Fatal("mismatch must not consume the challenge")
	}

	// верная пара — успех и погашение
	done, err := svc.VerifyTwoFactor(ctx, res.TwoFactorToken, rec.Code)
	if err != nil {
		t.Fatalf("VerifyTwoFactor: %v", err)
	}
	if sub, ok := tokens.Validate(done.AccessToken); !ok || sub != "a@example.com" {
		t.Fatalf("access token resolves to %q (ok=%v)", sub, ok)
	}

	// повтор той же пары — replay отклоняется
	if _, err := svc.VerifyTwoFactor(ctx, res.TwoFactorToken, rec.Code); !errors.Is(err, ErrChallengeNotFound) {
		t.Fatalf("replay: err = %v, want ErrChallengeNotFound", err)
	}
}

func TestVerifyTwoFactorUnknownToken(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	if _, err := svc.VerifyTwoFactor(context.Background(), "deadbeef", "123456"); !errors.Is(err, ErrChallengeNotFound) {
		t.Fatalf("err = %v, want ErrChallengeNotFound", err)
	}
}

func TestVerifyTwoFactorExpired(t *testing.T) {
	svc, users, challenges, _ := newTestService(t)
	u := addUser(t, users, "a@example.com", true, true)
	ctx := context.Background()

	stale := &models.TwoFactorChallenge{
		UserID:    u.ID,
		Token:     "expiredtoken0000",
		Code:      "123456",
		ExpiresAt: time.Now().UTC().Add(-time.Minute),
	}
	if err := challenges.Replace(ctx, stale); err != nil {
		t.Fatalf("Replace: %v", err)
	}

	if _, err := svc.VerifyTwoFactor(ctx, "expiredtoken0000", "123456"); !errors.Is(err, ErrChallengeExpired) {
		t.Fatalf("err = %v, want ErrChallengeExpired", err)
	}
	// просроченная запись удалена при обнаружении
	if rec, _ := challenges.GetByToken(ctx, "expiredtoken0000"); rec != nil {
		t.Fatal("expired challenge must be deleted on detection")
	}
}

func TestRegister(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterInput{
		Email: "b@example.com", FullName: "B", Password: "12345",
	}); !errors.Is(err, ErrPasswordTooShort) {
		t.Fatalf("err = %v, want ErrPasswordTooShort", err)
	}

	u, err := svc.Register(ctx, RegisterInput{
		Email: "b@example.com", FullName: "B", Password: "123456",
		Role: models.RoleViewer, IsActive: true,
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if !CheckPassword("123456", u.HashedPassword) {
		t.Fatal("stored hash does not verify the password")
	}
	if u.Role != models.RoleViewer {
		t.Fatalf("role = %s, want VIEWER", u.Role)
	}

	if _, err := svc.Register(ctx, RegisterInput{
		Email: "b@example.com", FullName: "B2", Password: "123456",
	}); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("err = %v, want ErrEmailTaken", err)
	}
}

func TestNumericCodeFormat(t *testing.T) {
	re := regexp.MustCompile(`^\d{6}$`)
	for i := 0; i < 50; i++ {
		code, err := numericCode()
		if err != nil {
			t.Fatalf("numericCode: %v", err)
		}
		if !re.MatchString(code) {
			t.Fatalf("code %q is not six zero-padded digits", code)
		}
	}
}
