// Package session persists the bearer token and user record of one browser
// across requests and portal restarts.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ghaggin/internhub/internal/model"
)

const (
	TokenKey = "token"
	UserKey  = "user"
)

// KV is durable string storage scoped to one browser.
type KV interface {
	GetString(ctx context.Context, key string) string
	PutString(ctx context.Context, key, value string)
	Remove(ctx context.Context, key string)
}

var errCorruptUser = errors.New("stored user is not a json object")

type renewer interface {
	RenewToken(ctx context.Context) error
}

type Store struct {
	kv KV
}

func NewStore(kv KV) *Store {
	return &Store{kv: kv}
}

// Load returns the stored session. Anything short of a token plus a user
// that parses as a JSON object is treated as corruption: both keys are
// removed and ok is false.
func (s *Store) Load(ctx context.Context) (model.Session, bool) {
	token := s.kv.GetString(ctx, TokenKey)
	raw := s.kv.GetString(ctx, UserKey)

	user, err := decodeUser(raw)
	if token == "" || err != nil {
		s.Clear(ctx)
		return model.Session{}, false
	}

	return model.Session{Token: token, User: user}, true
}

// Save writes both keys. Callers pass a token and user they already hold.
func (s *Store) Save(ctx context.Context, token string, user *model.User) error {
	b, err := json.Marshal(user)
	if err != nil {
		return err
	}

	if r, ok := s.kv.(renewer); ok {
		if err := r.RenewToken(ctx); err != nil {
			return fmt.Errorf("renew session token: %w", err)
		}
	}

	s.kv.PutString(ctx, TokenKey, token)
	s.kv.PutString(ctx, UserKey, string(b))
	return nil
}

// SaveUser rewrites the user key only.
func (s *Store) SaveUser(ctx context.Context, user *model.User) error {
	b, err := json.Marshal(user)
	if err != nil {
		return err
	}
	s.kv.PutString(ctx, UserKey, string(b))
	return nil
}

func (s *Store) Clear(ctx context.Context) {
	s.kv.Remove(ctx, TokenKey)
	s.kv.Remove(ctx, UserKey)
}

func decodeUser(raw string) (*model.User, error) {
	if raw == "" || raw == "undefined" {
		return nil, errCorruptUser
	}

	var user *model.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errCorruptUser
	}
	return user, nil
}
