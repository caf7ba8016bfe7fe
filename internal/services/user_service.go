package services

import (
	"context"

	"storefront/internal/domain"
	applog "storefront/internal/log"
	"storefront/internal/repos"
)

// UserService persists only the canonical user shape. Reads migrate any
// legacy blob in place.
type UserService struct {
	Users *repos.UserRepo
}

func NewUserService(users *repos.UserRepo) *UserService {
	return &UserService{Users: users}
}

// Get returns the session user. A stored legacy shape is rewritten in
// canonical form; a canonical one is left untouched. Unreadable data reads
// as a blank record.
func (s *UserService) Get(ctx context.Context, sid string) domain.UserRecord {
	raw, ok, err := s.Users.Raw(ctx, sid)
	if err != nil {
		applog.Warn(nil, "user.read.fail", err, nil)
		return domain.UserRecord{}
	}
	if !ok {
		return domain.UserRecord{}
	}
	rec, valid := toRecord(raw)
	if !valid {
		applog.Warn(nil, "user.read.malformed", repos.ErrMalformed, nil)
		return domain.UserRecord{}
	}
	u := NormalizeUser(map[string]any(rec))
	canon, err := encodeUser(u)
	if err == nil && canon != raw {
		if err := s.Users.SaveRaw(ctx, sid, canon); err != nil {
			applog.Warn(nil, "user.migrate.fail", err, nil)
		} else {
			applog.Info(nil, "user.migrate", nil)
		}
	}
	return u
}

// Set normalizes input (any shape NormalizeUser accepts) and stores it.
func (s *UserService) Set(ctx context.Context, sid string, input any) (domain.UserRecord, error) {
	u := NormalizeUser(input)
	if _, err := s.Users.Save(ctx, sid, u); err != nil {
		return domain.UserRecord{}, err
	}
	return u, nil
}

func (s *UserService) Clear(ctx context.Context, sid string) error {
	return s.Users.Remove(ctx, sid)
}
