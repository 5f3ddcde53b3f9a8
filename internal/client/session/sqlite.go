package session

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmitrijs2005/fcpanel/internal/client/repositories/kv"
	"github.com/dmitrijs2005/fcpanel/internal/common"
	"github.com/dmitrijs2005/fcpanel/internal/dbx"
)

// repoFunc binds a key/value repository to a connection or transaction.
type repoFunc func(db dbx.DBTX) kv.Repository

func sqliteRepo(db dbx.DBTX) kv.Repository {
	return kv.NewSQLiteRepository(db)
}

// SQLiteStore keeps the session in the "session" table of a migrated
// database (see OpenDatabase).
type SQLiteStore struct {
	db   *sql.DB
	repo repoFunc
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db, repo: sqliteRepo}
}

func (s *SQLiteStore) Get(ctx context.Context) (*Snapshot, error) {
	repo := s.repo(s.db)

	token, err := repo.Get(ctx, common.SessionTokenKey)
	if err != nil {
		return nil, err
	}
	user, err := repo.Get(ctx, common.SessionUserKey)
	if err != nil {
		return nil, err
	}
	return decodeSnapshot(token, user)
}

// Set writes token and profile in one transaction.
func (s *SQLiteStore) Set(ctx context.Context, snap Snapshot) error {
	if snap.Token == "" {
		return errors.New("refusing to store an empty token")
	}
	user, err := encodeUser(snap.User)
	if err != nil {
		return err
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repo(tx)
		if err := repo.Set(ctx, common.SessionTokenKey, []byte(snap.Token)); err != nil {
			return err
		}
		return repo.Set(ctx, common.SessionUserKey, user)
	})
}

// Clear deletes token and profile in one transaction; either both go or
// neither does.
func (s *SQLiteStore) Clear(ctx context.Context) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repo(tx)
		for _, key := range []string{common.SessionTokenKey, common.SessionUserKey} {
			if err := repo.Delete(ctx, key); err != nil {
				return err
			}
		}
		return nil
	})
}
