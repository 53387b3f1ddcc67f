package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/resilia/internal/common"
	"github.com/dmitrijs2005/resilia/internal/logging"
	"github.com/dmitrijs2005/resilia/internal/models"
	"github.com/dmitrijs2005/resilia/internal/repositories/kv"
)

// SessionManager tracks the single authenticated identity of this device.
//
// The session stores a full copy of the UserRecord taken at login. The copy
// is not refreshed when the account changes elsewhere; ApplyProfileUpdate is
// the only path that rewrites both the account and the session.
//
// States: logged out (no KeySession value) and logged in. Sessions never
// expire.
type SessionManager struct {
	repo     kv.Repository
	accounts *AccountDirectory
	log      logging.Logger
}

// NewSessionManager constructs a SessionManager. accounts must operate on the
// same substrate as repo.
func NewSessionManager(repo kv.Repository, accounts *AccountDirectory, log logging.Logger) *SessionManager {
	return &SessionManager{repo: repo, accounts: accounts, log: log}
}

// Login validates the credentials against the account directory and stores
// the matched record as the active session. On mismatch the existing session
// is left untouched and common.ErrInvalidCredentials is returned, whether the
// email is unknown or the password is wrong.
func (m *SessionManager) Login(ctx context.Context, email, password string) (*models.UserRecord, error) {
	user := m.accounts.FindByCredentials(ctx, email, password)
	if user == nil {
		m.log.Warn(ctx, "login failed")
		return nil, common.ErrInvalidCredentials
	}

	if err := saveSession(ctx, m.repo, *user); err != nil {
		return nil, err
	}

	m.log.Info(ctx, "user logged in", "email", user.Email)
	return user, nil
}

// Logout clears the active session. Logging out twice is fine.
func (m *SessionManager) Logout(ctx context.Context) error {
	if err := m.repo.Delete(ctx, KeySession); err != nil {
		return fmt.Errorf("%w: clear session: %w", common.ErrStorageUnavailable, err)
	}
	m.log.Debug(ctx, "session cleared")
	return nil
}

// Current returns the stored session snapshot, or nil when logged out. An
// unreadable session is reported as logged out.
func (m *SessionManager) Current(ctx context.Context) *models.UserRecord {
	user, _, err := kv.LoadJSON[*models.UserRecord](ctx, m.repo, KeySession)
	if err != nil {
		m.log.Warn(ctx, "session unreadable, treating as logged out", "error", err)
		return nil
	}
	return user
}

// ApplyProfileUpdate merges patch into the account of the logged-in user and
// replaces the session with the merged record, so Current reflects the edit
// immediately. Both writes are committed together when the substrate
// supports transactions.
//
// Returns common.ErrNoActiveSession when logged out and common.ErrNotFound
// when the session's account no longer exists.
func (m *SessionManager) ApplyProfileUpdate(ctx context.Context, patch models.ProfilePatch) (*models.UserRecord, error) {
	current := m.Current(ctx)
	if current == nil {
		return nil, common.ErrNoActiveSession
	}

	var updated *models.UserRecord
	err := kv.Atomic(ctx, m.repo, func(ctx context.Context, r kv.Repository) error {
		u, err := m.accounts.bind(r).Update(ctx, current.Email, patch)
		if err != nil {
			return err
		}
		if err := saveSession(ctx, r, *u); err != nil {
			return err
		}
		updated = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func saveSession(ctx context.Context, r kv.Repository, user models.UserRecord) error {
	if err := kv.SaveJSON(ctx, r, KeySession, user); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}
