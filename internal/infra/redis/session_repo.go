package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"telegram-robux-store/internal/domain/ports/repository"
)

var _ repository.SessionRepository = (*SessionRepo)(nil)

// SessionRepo keeps flow sessions in Redis so in-flight conversations
// survive a process restart.
type SessionRepo struct {
	client RedisClient
	ttl    time.Duration
}

func NewSessionRepo(client RedisClient, ttl time.Duration) *SessionRepo {
	if ttl <= 0 {
		ttl = 15 * time.Minute // plenty of time to finish any wizard
	}
	return &SessionRepo{client: client, ttl: ttl}
}

func (s *SessionRepo) sessionKey(tgID int64) string {
	return fmt.Sprintf("flow_session:%d", tgID)
}

func (s *SessionRepo) Set(ctx context.Context, tgID int64, sess *repository.FlowSession) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.sessionKey(tgID), data, s.ttl)
}

func (s *SessionRepo) Get(ctx context.Context, tgID int64) (*repository.FlowSession, error) {
	data, err := s.client.Get(ctx, s.sessionKey(tgID))
	if err != nil {
		if IsNil(err) {
			return nil, nil
		}
		return nil, err
	}
	var sess repository.FlowSession
	if err := json.Unmarshal([]byte(data), &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

func (s *SessionRepo) Clear(ctx context.Context, tgID int64) error {
	return s.client.Del(ctx, s.sessionKey(tgID))
}
