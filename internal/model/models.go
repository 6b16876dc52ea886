package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"time"
)

var (
	ErrNotFound        = errors.New("calculation not found")
	ErrUnauthenticated = errors.New("no authenticated session")
	ErrNoClient        = errors.New("no client identity")
)

type User struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname,omitempty"`
	Email     string `json:"email"`
}

// Session is resolved once per request from the Moodle auth check and handed to
// every persistence call that needs to choose between the account and local stores.
// ClientID identifies the browser and scopes its local history.
type Session struct {
	Authenticated bool   `json:"authenticated"`
	User          *User  `json:"user"`
	Cookie        string `json:"-"`
	ClientID      string `json:"-"`
}

func Guest() Session {
	return Session{}
}

// RecordID accepts both string ids and the numeric ids older clients generated.
type RecordID string

func (id *RecordID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = RecordID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	if _, err := strconv.ParseFloat(n.String(), 64); err != nil {
		return err
	}
	*id = RecordID(n.String())
	return nil
}

// SavedCalculation is a named snapshot of a wizard run. Inputs and Results are kept as
// raw documents since the account store may hand them back as JSON-encoded strings.
type SavedCalculation struct {
	ID        RecordID        `json:"id"`
	Name      string          `json:"name"`
	Notes     string          `json:"notes"`
	Corridor  string          `json:"corridor"`
	Inputs    json.RawMessage `json:"inputs"`
	Results   json.RawMessage `json:"results"`
	Timestamp time.Time       `json:"timestamp"`
}
