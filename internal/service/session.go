package service

import (
	"context"
	"errors"
	"time"

	"github.com/NOTIVEAPP/notive-backend/internal/models"
	"github.com/NOTIVEAPP/notive-backend/internal/util"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SessionService issues and checks login sessions. A session is a Session row
// plus a signed token naming it; ending the session revokes the row.
type SessionService struct {
	db     *gorm.DB
	secret string
	ttl    time.Duration
	now    func() time.Time
}

func NewSessionService(db *gorm.DB, secret string, ttl time.Duration) *SessionService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SessionService{db: db, secret: secret, ttl: ttl, now: time.Now}
}

// Start opens a session bound to userID and returns its signed token.
func (s *SessionService) Start(ctx context.Context, userID uint) (string, time.Time, error) {
	sid := uuid.NewString()

	token, expires, err := util.GenerateSessionToken(s.secret, userID, sid, s.ttl)
	if err != nil {
		return "", time.Time{}, err
	}

	session := models.Session{
		ID:        sid,
		UserID:    userID,
		ExpiresAt: expires,
	}
	if err := s.db.WithContext(ctx).Create(&session).Error; err != nil {
		return "", time.Time{}, storageErr("create session", err)
	}
	return token, expires, nil
}

// Resolve returns the user and session ids a token is bound to.
// Bad signatures, expired tokens and revoked sessions yield ErrSessionInvalid.
func (s *SessionService) Resolve(ctx context.Context, token string) (uint, string, error) {
	claims, err := util.ParseSessionToken(s.secret, token)
	if err != nil {
		return 0, "", ErrSessionInvalid
	}

	var session models.Session
	err = s.db.WithContext(ctx).Where("id = ?", claims.SessionID).Take(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, "", ErrSessionInvalid
	}
	if err != nil {
		return 0, "", storageErr("find session", err)
	}

	if session.Revoked || session.UserID != claims.UserID || !s.now().Before(session.ExpiresAt) {
		return 0, "", ErrSessionInvalid
	}
	return session.UserID, session.ID, nil
}

// End revokes the session. Unknown ids are ignored.
func (s *SessionService) End(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.db.WithContext(ctx).Model(&models.Session{}).
		Where("id = ?", sessionID).
		Update("revoked", true).Error; err != nil {
		return storageErr("revoke session", err)
	}
	return nil
}
