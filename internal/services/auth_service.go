package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"storefront/internal/domain"
)

var (
	ErrBadCreds        = errors.New("invalid email or password")
	ErrEmailRegistered = errors.New("this email is already registered")
	ErrNotLoggedIn     = errors.New("not logged in")
	errPasswordTooLong = errors.New("password too long")
	bcryptPrefixes     = []string{"$2a$", "$2b$", "$2y$"}
)

// AuthService is the no-database sign-in flow: the session's user record
// is the account. Passwords are kept only as bcrypt hashes.
type AuthService struct {
	Users *UserService
	Cost  int
}

func NewAuthService(users *UserService) *AuthService {
	return &AuthService{Users: users, Cost: bcrypt.DefaultCost}
}

type Profile struct {
	Name     string
	Email    string
	Phone    string
	Password string
}

func (s *AuthService) hash(pw string) (string, error) {
	if len(pw) > 72 {
		return "", errPasswordTooLong
	}
	b, err := bcrypt.GenerateFromPassword([]byte(pw), s.Cost)
	return string(b), err
}

func isHash(s string) bool {
	for _, p := range bcryptPrefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

// checkPassword accepts a bcrypt hash or, for records written before
// hashing, the plaintext. upgrade is true in the second case.
func checkPassword(stored, given string) (ok, upgrade bool) {
	if isHash(stored) {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(given)) == nil, false
	}
	ok = subtle.ConstantTimeCompare([]byte(stored), []byte(given)) == 1
	return ok, ok
}

// Register stores a new profile. It refuses an email equal (ignoring case)
// to the one already held by the session.
func (s *AuthService) Register(ctx context.Context, sid string, p Profile) (domain.UserRecord, error) {
	existing := s.Users.Get(ctx, sid)
	if existing.Email != "" && strings.EqualFold(existing.Email, strings.TrimSpace(p.Email)) {
		return domain.UserRecord{}, ErrEmailRegistered
	}
	return s.save(ctx, sid, p)
}

// Login signs in. When the session already holds a password for this email
// the password must match; otherwise the submitted profile becomes the
// account, as the quick login of the original dashboard did.
func (s *AuthService) Login(ctx context.Context, sid string, p Profile) (domain.UserRecord, error) {
	p.Password = strings.TrimSpace(p.Password)
	existing := s.Users.Get(ctx, sid)
	if existing.Password != "" && strings.EqualFold(existing.Email, strings.TrimSpace(p.Email)) {
		ok, upgrade := checkPassword(existing.Password, p.Password)
		if !ok {
			return domain.UserRecord{}, ErrBadCreds
		}
		if !upgrade {
			return existing, nil
		}
		hashed, err := s.hash(p.Password)
		if err != nil {
			return domain.UserRecord{}, err
		}
		existing.Password = hashed
		return s.Users.Set(ctx, sid, existing)
	}
	if p.Password == "" {
		return domain.UserRecord{}, ErrBadCreds
	}
	return s.save(ctx, sid, p)
}

// UpdateProfile edits the signed-in record. A blank password keeps the
// current one.
func (s *AuthService) UpdateProfile(ctx context.Context, sid string, p Profile) (domain.UserRecord, error) {
	existing := s.Users.Get(ctx, sid)
	if !IsLoggedIn(existing) {
		return domain.UserRecord{}, ErrNotLoggedIn
	}
	if strings.TrimSpace(p.Password) == "" {
		return s.Users.Set(ctx, sid, domain.UserRecord{
			Name: p.Name, Email: p.Email, Phone: p.Phone, Password: existing.Password,
		})
	}
	return s.save(ctx, sid, p)
}

func (s *AuthService) Logout(ctx context.Context, sid string) error {
	return s.Users.Clear(ctx, sid)
}

// Current returns the session user and whether it counts as logged in.
func (s *AuthService) Current(ctx context.Context, sid string) (domain.UserRecord, bool) {
	u := s.Users.Get(ctx, sid)
	return u, IsLoggedIn(u)
}

func (s *AuthService) save(ctx context.Context, sid string, p Profile) (domain.UserRecord, error) {
	hashed, err := s.hash(strings.TrimSpace(p.Password))
	if err != nil {
		return domain.UserRecord{}, err
	}
	return s.Users.Set(ctx, sid, domain.UserRecord{
		Name: p.Name, Email: p.Email, Phone: p.Phone, Password: hashed,
	})
}
