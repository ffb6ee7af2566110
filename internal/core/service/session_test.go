package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/fsociety/forum/internal/core/domain"
	"github.com/fsociety/forum/internal/core/persist"
)

func newTestSession(t *testing.T, store *stubBlobStore, users UserResolver) *SessionManager {
	t.Helper()
	m := NewSessionManager(persist.New(store, persist.DefaultPrefix, zerolog.Nop()), zerolog.Nop())
	if err := m.Initialize(context.Background(), users); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	return m
}

func TestSessionManager_LoginSurvivesRestart(t *testing.T) {
	store := newStubBlobStore()
	users := newTestUserStore(t, store)
	neo, err := users.Register(context.Background(), "neo", "neo@x.com", "pw1")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	m := newTestSession(t, store, users)
	if m.State() != domain.StateLoggedOut {
		t.Fatalf("expected logged out at start")
	}
	if err := m.Login(context.Background(), *neo); err != nil {
		t.Fatalf("login: %v", err)
	}

	restarted := newTestSession(t, store, newTestUserStore(t, store))
	cur, ok := restarted.Current()
	if !ok || cur.ID != neo.ID {
		t.Fatalf("expected neo after restart, got %+v ok=%v", cur, ok)
	}
	if restarted.State() != domain.StateLoggedIn {
		t.Fatalf("expected logged in state")
	}
}

func TestSessionManager_LogoutSurvivesRestart(t *testing.T) {
	store := newStubBlobStore()
	users := newTestUserStore(t, store)
	admin, _ := users.FindByID(domain.SeedAdminID)

	m := newTestSession(t, store, users)
	if err := m.Login(context.Background(), *admin); err != nil {
		t.Fatalf("login: %v", err)
	}
	if err := m.Logout(context.Background()); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, ok := m.Current(); ok {
		t.Fatalf("expected no current user after logout")
	}
	if _, ok := store.blobs["fsociety-session"]; ok {
		t.Fatalf("session blob must be deleted on logout")
	}

	restarted := newTestSession(t, store, users)
	if _, ok := restarted.Current(); ok {
		t.Fatalf("expected no current user after restart")
	}
}

func TestSessionManager_DanglingSessionIsIgnored(t *testing.T) {
	store := newStubBlobStore()
	store.blobs["fsociety-session"] = []byte(`{"userId":"user-gone"}`)
	users := newTestUserStore(t, store)

	m := newTestSession(t, store, users)

	if _, ok := m.Current(); ok {
		t.Fatalf("dangling session must resolve to no user")
	}
}

func TestSessionManager_CurrentReturnsCopy(t *testing.T) {
	store := newStubBlobStore()
	users := newTestUserStore(t, store)
	admin, _ := users.FindByID(domain.SeedAdminID)

	m := newTestSession(t, store, users)
	if err := m.Login(context.Background(), *admin); err != nil {
		t.Fatalf("login: %v", err)
	}

	cur, _ := m.Current()
	cur.Username = "mutated"
	again, _ := m.Current()
	if again.Username != domain.SeedAdminUsername {
		t.Fatalf("Current must not expose internal state")
	}
}
