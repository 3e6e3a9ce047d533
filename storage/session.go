// nonogram.go - a nonogram puzzle solver and web service.
// Copyright (C) 2024 the nonogram.go authors.
//
// Licensed under the MIT license.  See the LICENSE file for details.

package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gomodule/redigo/redis"
	"github.com/google/uuid"
)

/*

sessions

*/

// A Session tracks one client across requests: which puzzle they
// last worked on and which solver they picked.  Sessions live in
// the cache and expire on their own; losing one costs the client
// nothing but their solver preference.
type Session struct {
	SID      string `json:"sid"`      // session ID
	PuzzleID string `json:"puzzleID"` // signature of the last puzzle solved
	Solver   string `json:"solver"`   // chosen solver name, "" for the default
	Created  string `json:"created"`  // RFC3339 time when the session was created
	Saved    string `json:"saved"`    // RFC3339 time when the session was last saved
}

const sessionTTL = 7 * 24 * time.Hour

func sessionKey(sid string) string {
	return "session:" + sid
}

// NewSession mints a session with a fresh random ID.
func NewSession() *Session {
	return &Session{
		SID:     uuid.NewString(),
		Created: time.Now().Format(time.RFC3339),
	}
}

// Save writes the session to the cache, refreshing its TTL.
func (s *Session) Save() error {
	s.Saved = time.Now().Format(time.RFC3339)
	encoded, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("Couldn't encode session %q: %v", s.SID, err)
	}
	return rdExecute(func(conn redis.Conn) error {
		_, err := conn.Do("SETEX", sessionKey(s.SID), int(sessionTTL.Seconds()), encoded)
		return err
	})
}

// LoadSession fetches a session by ID.  An expired or unknown
// session is not an error: both results are nil.
func LoadSession(sid string) (*Session, error) {
	var session *Session
	err := rdExecute(func(conn redis.Conn) error {
		encoded, err := redis.Bytes(conn.Do("GET", sessionKey(sid)))
		if err == redis.ErrNil {
			return nil
		}
		if err != nil {
			return err
		}
		session = &Session{}
		if err := json.Unmarshal(encoded, session); err != nil {
			session = nil
			return fmt.Errorf("Corrupt session %q: %v", sid, err)
		}
		return nil
	})
	return session, err
}
