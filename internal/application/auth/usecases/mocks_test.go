package usecases

import (
	"context"
	"fmt"
	"strings"
	"time"

	"iothub/internal/domain/activation"
	"iothub/internal/domain/device"
	"iothub/internal/domain/resetpassword"
	"iothub/internal/domain/user"
	"iothub/internal/shared/errors"
	"iothub/internal/shared/logger"
)

func testLogger() logger.Interface {
	return logger.NewLogger()
}

// fakeUserRepo is an in-memory user.Repository.
type fakeUserRepo struct {
	byEmail map[string]*user.User
	byID    map[uint]*user.User
	nextID  uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byEmail: make(map[string]*user.User),
		byID:    make(map[uint]*user.User),
		nextID:  1,
	}
}

func (r *fakeUserRepo) Create(_ context.Context, u *user.User) error {
	if _, exists := r.byEmail[u.Email()]; exists {
		return errors.NewConflictError("User already exists")
	}
	u.SetID(r.nextID)
	r.nextID++
	r.byEmail[u.Email()] = u
	r.byID[u.ID()] = u
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uint) (*user.User, error) {
	if u, ok := r.byID[id]; ok {
		return u, nil
	}
	return nil, errors.NewNotFoundError("User not found")
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*user.User, error) {
	if u, ok := r.byEmail[email]; ok {
		return u, nil
	}
	return nil, errors.NewNotFoundError("User not found")
}

func (r *fakeUserRepo) Update(_ context.Context, u *user.User) error {
	if _, ok := r.byID[u.ID()]; !ok {
		return errors.NewNotFoundError("User not found")
	}
	r.byID[u.ID()] = u
	r.byEmail[u.Email()] = u
	return nil
}

func (r *fakeUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, ok := r.byEmail[email]
	return ok, nil
}

// fakeActivationRepo is an in-memory activation.Repository.
type fakeActivationRepo struct {
	byUserID map[uint]*activation.Token
	nextID   uint
}

func newFakeActivationRepo() *fakeActivationRepo {
	return &fakeActivationRepo{byUserID: make(map[uint]*activation.Token), nextID: 1}
}

func (r *fakeActivationRepo) Create(_ context.Context, t *activation.Token) error {
	if _, exists := r.byUserID[t.UserID()]; exists {
		return errors.NewConflictError("Activation token already exists for user")
	}
	t.SetID(r.nextID)
	r.nextID++
	r.byUserID[t.UserID()] = t
	return nil
}

func (r *fakeActivationRepo) GetByUserID(_ context.Context, userID uint) (*activation.Token, error) {
	if t, ok := r.byUserID[userID]; ok {
		return t, nil
	}
	return nil, errors.NewNotFoundError("Activation token not found")
}

func (r *fakeActivationRepo) DeleteByUserID(_ context.Context, userID uint) error {
	delete(r.byUserID, userID)
	return nil
}

// fakeResetRepo is an in-memory resetpassword.Repository.
type fakeResetRepo struct {
	byUserID map[uint]*resetpassword.Token
	nextID   uint
}

func newFakeResetRepo() *fakeResetRepo {
	return &fakeResetRepo{byUserID: make(map[uint]*resetpassword.Token), nextID: 1}
}

func (r *fakeResetRepo) Replace(_ context.Context, t *resetpassword.Token) error {
	t.SetID(r.nextID)
	r.nextID++
	r.byUserID[t.UserID()] = t
	return nil
}

func (r *fakeResetRepo) GetByUserID(_ context.Context, userID uint) (*resetpassword.Token, error) {
	if t, ok := r.byUserID[userID]; ok {
		return t, nil
	}
	return nil, errors.NewNotFoundError("Reset token not found")
}

func (r *fakeResetRepo) IncrementAttempts(_ context.Context, userID uint) error {
	t, ok := r.byUserID[userID]
	if !ok {
		return errors.NewNotFoundError("Reset token not found")
	}
	r.byUserID[userID] = resetpassword.ReconstructToken(
		t.ID(), t.UserID(), t.Code(), t.Attempts()+1, t.CreatedAt(), t.ExpiredAt(),
	)
	return nil
}

func (r *fakeResetRepo) DeleteByUserID(_ context.Context, userID uint) error {
	delete(r.byUserID, userID)
	return nil
}

// fakeDeviceRepo is an in-memory device.Repository.
type fakeDeviceRepo struct {
	byUUID map[string]*device.Device
	nextID uint
}

func newFakeDeviceRepo() *fakeDeviceRepo {
	return &fakeDeviceRepo{byUUID: make(map[string]*device.Device), nextID: 1}
}

func (r *fakeDeviceRepo) Create(_ context.Context, d *device.Device) error {
	if _, exists := r.byUUID[d.UUID()]; exists {
		return errors.NewConflictError("Device already exists")
	}
	d.SetID(r.nextID)
	r.nextID++
	r.byUUID[d.UUID()] = d
	return nil
}

func (r *fakeDeviceRepo) GetByUUID(_ context.Context, uuid string) (*device.Device, error) {
	if d, ok := r.byUUID[uuid]; ok {
		return d, nil
	}
	return nil, errors.NewNotFoundError("Device not found")
}

func (r *fakeDeviceRepo) ListByOwnerID(_ context.Context, ownerID uint) ([]*device.Device, error) {
	var out []*device.Device
	for _, d := range r.byUUID {
		if d.OwnerID() == ownerID {
			out = append(out, d)
		}
	}
	return out, nil
}

// fakeHasher marks hashes with a prefix instead of doing real work.
type fakeHasher struct {
	failHash bool
}

func (h *fakeHasher) Hash(password string) (string, error) {
	if h.failHash {
		return "", fmt.Errorf("hash failure")
	}
	return "hashed:" + password, nil
}

func (h *fakeHasher) Verify(password, hash string) bool {
	return hash == "hashed:"+password
}

// fakeCodes returns a fixed sequence of codes.
type fakeCodes struct {
	codes []string
	calls int
	fail  bool
}

func (c *fakeCodes) Generate(length int) (string, error) {
	if c.fail {
		return "", fmt.Errorf("entropy failure")
	}
	code := c.codes[c.calls%len(c.codes)]
	c.calls++
	if len(code) != length {
		return "", fmt.Errorf("fixture code %q does not match length %d", code, length)
	}
	return code, nil
}

// fakeMail records enqueued mail and can simulate queue failure.
type fakeMail struct {
	activations []string
	resets      []string
	fail        bool
}

func (m *fakeMail) EnqueueActivationMail(_ context.Context, email, _, code string) error {
	if m.fail {
		return fmt.Errorf("queue unavailable")
	}
	m.activations = append(m.activations, email+":"+code)
	return nil
}

func (m *fakeMail) EnqueueResetPasswordMail(_ context.Context, email, _, code string) error {
	if m.fail {
		return fmt.Errorf("queue unavailable")
	}
	m.resets = append(m.resets, email+":"+code)
	return nil
}

// fakeTx runs the function without a real transaction.
type fakeTx struct{}

func (fakeTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// fakeTokens implements TokenService with transparent string tokens of the
// form kind|subject|deviceUUID|expired.
type fakeTokens struct{}

func (fakeTokens) IssueSessionToken(email string) (string, error) {
	return "session|" + email + "||live", nil
}

func (fakeTokens) IssueDeviceAccessToken(ownerEmail, deviceUUID string, _, _ uint) (string, error) {
	return "access|" + ownerEmail + "|" + deviceUUID + "|live", nil
}

func (fakeTokens) IssueDeviceRefreshToken(ownerEmail string) (string, error) {
	return "refresh|" + ownerEmail + "||live", nil
}

func (fakeTokens) parse(token string) ([]string, error) {
	parts := strings.Split(token, "|")
	if len(parts) != 4 {
		return nil, errors.NewInvalidTokenError()
	}
	return parts, nil
}

func (t fakeTokens) ExtractSubject(token string) (string, error) {
	parts, err := t.parse(token)
	if err != nil {
		return "", err
	}
	return parts[1], nil
}

func (t fakeTokens) ExtractDeviceUUID(token string) (string, error) {
	parts, err := t.parse(token)
	if err != nil {
		return "", err
	}
	if parts[0] != "access" || parts[2] == "" {
		return "", errors.NewNotDeviceTokenError()
	}
	return parts[2], nil
}

func (t fakeTokens) IsExpired(token string) (bool, error) {
	parts, err := t.parse(token)
	if err != nil {
		return true, err
	}
	// Device access tokens never expire.
	if parts[0] == "access" {
		return false, nil
	}
	return parts[3] == "expired", nil
}

func (t fakeTokens) IsRefreshTokenValid(token string) bool {
	parts, err := t.parse(token)
	if err != nil {
		return false
	}
	return parts[0] == "refresh" && parts[3] == "live"
}

// seedUser registers and optionally enables a user directly in the repo.
func seedUser(repo *fakeUserRepo, email, password string, enabled bool) *user.User {
	u, err := user.NewUser("Test", "User", email, "hashed:"+password)
	if err != nil {
		panic(err)
	}
	if enabled {
		u.Enable()
	}
	if err := repo.Create(context.Background(), u); err != nil {
		panic(err)
	}
	return u
}

// seedResetToken plants a reset token with explicit attempt and expiry state.
func seedResetToken(repo *fakeResetRepo, userID uint, code string, attempts int, expiredAt time.Time) {
	repo.byUserID[userID] = resetpassword.ReconstructToken(
		repo.nextID, userID, code, attempts, time.Now().UTC().Add(-time.Minute), expiredAt,
	)
	repo.nextID++
}
