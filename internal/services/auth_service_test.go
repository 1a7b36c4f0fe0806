package services_test

import (
	"errors"
	"testing"

	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"pawhaven/internal/domain"
	"pawhaven/internal/repos"
	"pawhaven/internal/services"
)

func TestAuth_LoginAndSession(t *testing.T) {
	db := memdb(t)
	svc := &services.AuthService{Users: repos.NewUserRepo(db), Notify: services.LogNotifier{}}

	u, err := svc.Login("sid-1", "olivia@pawhaven.test", "Passw0rd!")
	if err != nil {
		t.Fatal(err)
	}
	if u.Role != domain.RoleOwner {
		t.Fatalf("want owner, got %s", u.Role)
	}

	cur, err := svc.CurrentUser("sid-1")
	if err != nil || cur == nil || cur.ID != u.ID {
		t.Fatalf("session should resolve to the user, got %+v (%v)", cur, err)
	}

	if err := svc.Logout("sid-1"); err != nil {
		t.Fatal(err)
	}
	if cur, _ := svc.CurrentUser("sid-1"); cur != nil {
		t.Fatal("session should be gone after logout")
	}
}

func TestAuth_BadCredentials(t *testing.T) {
	db := memdb(t)
	svc := &services.AuthService{Users: repos.NewUserRepo(db), Notify: services.LogNotifier{}}

	if _, err := svc.Login("sid-1", "olivia@pawhaven.test", "wrong-pass"); !errors.Is(err, services.ErrBadCreds) {
		t.Fatalf("want ErrBadCreds, got %v", err)
	}
	if _, err := svc.Login("sid-1", "nobody@pawhaven.test", "Passw0rd!"); !errors.Is(err, services.ErrBadCreds) {
		t.Fatalf("want ErrBadCreds for unknown email, got %v", err)
	}
}

func TestAuth_RegisterSitterGetsProfile(t *testing.T) {
	db := memdb(t)
	svc := &services.AuthService{Users: repos.NewUserRepo(db), Notify: services.LogNotifier{}}

	u, err := svc.Register("Nadia", "nadia@pawhaven.test", "Sitter4pets", domain.RoleSitter)
	if err != nil {
		t.Fatal(err)
	}

	sitter, err := repos.NewSitterRepo(db).Get(u.ID)
	if err != nil {
		t.Fatal(err)
	}
	if sitter.Verification != domain.VerifyPending {
		t.Fatalf("new sitter should start pending, got %s", sitter.Verification)
	}
}

func TestAuth_DuplicateEmail(t *testing.T) {
	db := memdb(t)
	svc := &services.AuthService{Users: repos.NewUserRepo(db), Notify: services.LogNotifier{}}

	if _, err := svc.Register("Olivia Again", "olivia@pawhaven.test", "Passw0rd!", domain.RoleOwner); !errors.Is(err, services.ErrEmailTaken) {
		t.Fatalf("want ErrEmailTaken, got %v", err)
	}
	// case-insensitive match
	if _, err := svc.Register("Olivia Again", "OLIVIA@pawhaven.test", "Passw0rd!", domain.RoleOwner); !errors.Is(err, services.ErrEmailTaken) {
		t.Fatalf("want ErrEmailTaken for different case, got %v", err)
	}
}
