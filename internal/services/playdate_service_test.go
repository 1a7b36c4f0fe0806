package services_test

import (
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"pawhaven/internal/domain"
	"pawhaven/internal/repos"
	"pawhaven/internal/services"
)

// seedSecondOwner registers another owner with one pet and returns both ids.
func seedSecondOwner(t *testing.T, db *sqlx.DB) (ownerID, petID string) {
	t.Helper()
	auth := &services.AuthService{Users: repos.NewUserRepo(db), Notify: services.LogNotifier{}}
	u, err := auth.Register("Theo", "theo@pawhaven.test", "Passw0rd!", domain.RoleOwner)
	if err != nil {
		t.Fatal(err)
	}
	p := &domain.Pet{ID: "pet-biscuit", OwnerID: u.ID, Name: "Biscuit", Species: "Dog"}
	if err := repos.NewPetRepo(db).Create(p); err != nil {
		t.Fatal(err)
	}
	return u.ID, p.ID
}

func TestPlaydate_InviteRespond(t *testing.T) {
	db := memdb(t)
	theoID, biscuitID := seedSecondOwner(t, db)
	svc := &services.PlaydateService{Playdates: repos.NewPlaydateRepo(db), Pets: repos.NewPetRepo(db), Notify: services.LogNotifier{}}

	pd, err := svc.Invite("u-olivia", "pet-rex", biscuitID, "2026-09-10", "15:00", "Riverside dog run")
	if err != nil {
		t.Fatal(err)
	}
	if pd.InviteeOwnerID != theoID {
		t.Fatalf("invitee should be resolved from the target pet, got %s", pd.InviteeOwnerID)
	}

	// both sides see it
	for _, uid := range []string{"u-olivia", theoID} {
		rows, err := svc.ListFor(uid)
		if err != nil {
			t.Fatal(err)
		}
		if len(rows) != 1 {
			t.Fatalf("user %s should see the invite, got %d rows", uid, len(rows))
		}
	}

	// requester cannot answer their own invite
	if err := svc.Respond(pd.ID, "u-olivia", true); err == nil {
		t.Fatal("requester must not answer the invite")
	}
	if err := svc.Respond(pd.ID, theoID, true); err != nil {
		t.Fatal(err)
	}

	// answered invites are settled
	if err := svc.Respond(pd.ID, theoID, false); err == nil {
		t.Fatal("settled invite must not flip")
	}
	if err := svc.Cancel(pd.ID, "u-olivia"); err == nil {
		t.Fatal("accepted invite must not be canceled")
	}
}

func TestPlaydate_GuardRails(t *testing.T) {
	db := memdb(t)
	_, biscuitID := seedSecondOwner(t, db)
	svc := &services.PlaydateService{Playdates: repos.NewPlaydateRepo(db), Pets: repos.NewPetRepo(db), Notify: services.LogNotifier{}}

	// inviting with someone else's pet
	if _, err := svc.Invite("u-olivia", biscuitID, "pet-rex", "2026-09-10", "15:00", "park"); !errors.Is(err, services.ErrNotYourPet) {
		t.Fatalf("want ErrNotYourPet, got %v", err)
	}
	// both pets belong to the requester
	if _, err := svc.Invite("u-olivia", "pet-rex", "pet-misha", "2026-09-10", "15:00", "park"); !errors.Is(err, services.ErrSelfPlaydate) {
		t.Fatalf("want ErrSelfPlaydate, got %v", err)
	}
}

func TestPlaydate_CancelWhilePending(t *testing.T) {
	db := memdb(t)
	_, biscuitID := seedSecondOwner(t, db)
	svc := &services.PlaydateService{Playdates: repos.NewPlaydateRepo(db), Pets: repos.NewPetRepo(db), Notify: services.LogNotifier{}}

	pd, err := svc.Invite("u-olivia", "pet-rex", biscuitID, "2026-09-11", "10:00", "park")
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.Cancel(pd.ID, "u-olivia"); err != nil {
		t.Fatal(err)
	}
	rows, err := svc.ListFor("u-olivia")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 0 {
		t.Fatalf("canceled invite should be gone, got %d rows", len(rows))
	}
}
