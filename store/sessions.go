// Package store holds the service's own state: admin sessions in a bolt
// file and booking leads in postgres. Everything else lives in the REST
// backend.
package store

import (
	"encoding/json"
	"errors"
	"time"

	bolt "github.com/boltdb/bolt"
	"github.com/google/uuid"

	"optimasfibre-web/models"
)

const sessionBucket = "sessions"

// ErrNotFound is returned when a session does not exist or has expired.
var ErrNotFound = errors.New("session not found")

type SessionStore struct {
	db  *bolt.DB
	now func() time.Time
}

// OpenSessions opens (or creates) the session database at path.
func OpenSessions(path string) (*SessionStore, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, err
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(sessionBucket))
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &SessionStore{db: db, now: time.Now}, nil
}

func (s *SessionStore) Close() error {
	return s.db.Close()
}

// Create stores a new session and fills in its ID and timestamps.
func (s *SessionStore) Create(sess *models.Session, ttl time.Duration) error {
	now := s.now().UTC()
	sess.ID = uuid.NewString()
	sess.CreatedAt = now
	if sess.ExpiresAt.IsZero() || sess.ExpiresAt.After(now.Add(ttl)) {
		sess.ExpiresAt = now.Add(ttl)
	}
	if sess.Theme == "" {
		sess.Theme = models.ThemeLight
	}
	return s.put(sess)
}

// Get returns the session with the given id. Expired sessions are deleted
// and reported as ErrNotFound.
func (s *SessionStore) Get(id string) (*models.Session, error) {
	var sess models.Session
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(sessionBucket)).Get([]byte(id))
		if v == nil {
			return ErrNotFound
		}
		return json.Unmarshal(v, &sess)
	})
	if err != nil {
		return nil, err
	}
	if sess.Expired(s.now()) {
		if err := s.Delete(id); err != nil {
			return nil, err
		}
		return nil, ErrNotFound
	}
	return &sess, nil
}

func (s *SessionStore) SetTheme(id string, theme models.Theme) (*models.Session, error) {
	var sess models.Session
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(sessionBucket))
		v := b.Get([]byte(id))
		if v == nil {
			return ErrNotFound
		}
		if err := json.Unmarshal(v, &sess); err != nil {
			return err
		}
		if sess.Theme == theme {
			return nil
		}
		sess.Theme = theme
		data, err := json.Marshal(sess)
		if err != nil {
			return err
		}
		return b.Put([]byte(id), data)
	})
	if err != nil {
		return nil, err
	}
	return &sess, nil
}

// Delete removes a session. Deleting an unknown id is not an error.
func (s *SessionStore) Delete(id string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(sessionBucket)).Delete([]byte(id))
	})
}

// PurgeExpired deletes every expired session and returns how many went.
func (s *SessionStore) PurgeExpired() (int, error) {
	now := s.now()
	purged := 0
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(sessionBucket))
		var expired [][]byte
		err := b.ForEach(func(k, v []byte) error {
			var sess models.Session
			if err := json.Unmarshal(v, &sess); err != nil || sess.Expired(now) {
				expired = append(expired, append([]byte(nil), k...))
			}
			return nil
		})
		if err != nil {
			return err
		}
		for _, k := range expired {
			if err := b.Delete(k); err != nil {
				return err
			}
		}
		purged = len(expired)
		return nil
	})
	return purged, err
}

func (s *SessionStore) put(sess *models.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(sessionBucket)).Put([]byte(sess.ID), data)
	})
}
