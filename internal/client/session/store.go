package session

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/fcpanel/internal/client/models"
	"github.com/dmitrijs2005/fcpanel/internal/common"
)

// Snapshot is the persisted session: the raw bearer token and the profile
// that was fetched with it.
type Snapshot struct {
	Token string
	User  models.User
}

// Store persists a Snapshot.
//
// Get returns common.ErrNoSession when either the token or the profile is
// missing and an error wrapping common.ErrCorruptProfile when the profile
// cannot be decoded. Set writes both values together. Clear removes both
// and succeeds on an empty store.
type Store interface {
	Get(ctx context.Context) (*Snapshot, error)
	Set(ctx context.Context, s Snapshot) error
	Clear(ctx context.Context) error
}

func encodeUser(u models.User) ([]byte, error) {
	b, err := json.Marshal(u)
	if err != nil {
		return nil, fmt.Errorf("encode user profile: %w", err)
	}
	return b, nil
}

// decodeSnapshot rebuilds a Snapshot from the raw stored values.
func decodeSnapshot(token, user []byte) (*Snapshot, error) {
	if len(token) == 0 || len(user) == 0 {
		return nil, common.ErrNoSession
	}

	var u models.User
	if err := json.Unmarshal(user, &u); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrCorruptProfile, err)
	}
	if u.Username == "" {
		return nil, fmt.Errorf("%w: missing username", common.ErrCorruptProfile)
	}
	return &Snapshot{Token: string(token), User: u}, nil
}

// compile-time checks
var (
	_ Store = (*SQLiteStore)(nil)
	_ Store = (*MemoryStore)(nil)
)
