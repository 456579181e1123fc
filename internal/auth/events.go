package auth

import (
	"context"
	"time"
)

// EventKind classifies authentication events.
type EventKind string

const (
	EventLoginSucceeded EventKind = "login.succeeded"
	EventLoginFailed    EventKind = "login.failed"
	EventLogout         EventKind = "logout"
)

// Event describes something that happened to a browser session's identity.
type Event struct {
	Kind       EventKind `json:"kind"`
	Username   string    `json:"username"`
	IdentityID string    `json:"identity_id,omitempty"`
	Role       string    `json:"role,omitempty"`
	RemoteAddr string    `json:"remote_addr,omitempty"`
	UserAgent  string    `json:"user_agent,omitempty"`
	At         time.Time `json:"at"`
}

// EventSink receives authentication events, typically for auditing.
type EventSink interface {
	RecordAuthEvent(ctx context.Context, event Event) error
}

// NopEventSink drops every event.
type NopEventSink struct{}

// RecordAuthEvent implements EventSink.
func (NopEventSink) RecordAuthEvent(context.Context, Event) error { return nil }

// Login attempt results reported to a LoginObserver.
const (
	LoginSuccess = "success"
	LoginFailure = "failure"
	LoginInvalid = "invalid"
	LoginError   = "error"
)

// LoginResults lists every result ObserveLogin may receive.
func LoginResults() []string {
	return []string{LoginSuccess, LoginFailure, LoginInvalid, LoginError}
}

// LoginObserver counts login attempts by result.
type LoginObserver interface {
	ObserveLogin(result string)
}

type nopObserver struct{}

func (nopObserver) ObserveLogin(string) {}
