package redis

import (
	"context"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// ErrTokenNotFound is returned when a reset token is missing or expired
var ErrTokenNotFound = errors.New("reset token not found")

// ResetTokenTTL is how long a passcode reset token stays valid
const ResetTokenTTL = time.Hour

const resetKeyPrefix = "passcode-reset:"

// ResetTokenStore keeps single-use passcode reset tokens in Redis so that
// tokens survive restarts and work across multiple server instances.
type ResetTokenStore struct {
	ttl time.Duration
}

var (
	setResetValue    = Set
	getDelResetValue = GetDel
)

// NewResetTokenStore creates a new reset token store
func NewResetTokenStore() *ResetTokenStore {
	return &ResetTokenStore{ttl: ResetTokenTTL}
}

// Save stores a reset token mapped to the dealer it belongs to
func (s *ResetTokenStore) Save(ctx context.Context, token, dealerID string) error {
	return setResetValue(ctx, resetKeyPrefix+token, dealerID, s.ttl)
}

// Consume looks up a token and deletes it in the same call, enforcing
// single use. Returns the dealer ID the token was issued for. Only a
// missing key maps to ErrTokenNotFound; transport failures pass through
// so callers do not mistake an outage for a bad token.
func (s *ResetTokenStore) Consume(ctx context.Context, token string) (string, error) {
	dealerID, err := getDelResetValue(ctx, resetKeyPrefix+token)
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return "", ErrTokenNotFound
		}
		return "", err
	}
	if dealerID == "" {
		return "", ErrTokenNotFound
	}
	return dealerID, nil
}
