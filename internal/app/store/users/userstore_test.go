package userstore_test

import (
	"errors"
	"testing"

	"github.com/dalemusser/vastusite/internal/app/store"
	userstore "github.com/dalemusser/vastusite/internal/app/store/users"
	"github.com/dalemusser/vastusite/internal/app/system/indexes"
	"github.com/dalemusser/vastusite/internal/domain/models"
	"github.com/dalemusser/vastusite/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_GetByEmail_CaseInsensitive(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures := testutil.NewFixtures(t, db)
	admin := fixtures.CreateAdmin(ctx, "Asha Rao", "asha@example.com", "secret-pass")

	s := userstore.New(db)
	got, err := s.GetByEmail(ctx, "  Asha@Example.COM ")
	if err != nil {
		t.Fatalf("GetByEmail failed: %v", err)
	}
	if got.ID != admin.ID {
		t.Errorf("expected user %s, got %s", admin.ID.Hex(), got.ID.Hex())
	}

	if _, err := s.GetByEmail(ctx, "nobody@example.com"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := s.GetByID(ctx, primitive.NewObjectID()); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown id, got %v", err)
	}
}

func TestStore_Authenticate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures := testutil.NewFixtures(t, db)
	admin := fixtures.CreateAdmin(ctx, "Asha Rao", "asha@example.com", "secret-pass")
	fixtures.CreateDisabledAdmin(ctx, "Old Admin", "old@example.com", "secret-pass")

	s := userstore.New(db)

	got, err := s.Authenticate(ctx, "ASHA@example.com", "secret-pass")
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if got.ID != admin.ID {
		t.Errorf("authenticated wrong user")
	}

	tests := []struct {
		name     string
		email    string
		password string
		want     error
	}{
		{"wrong password", "asha@example.com", "nope", userstore.ErrWrongPassword},
		{"unknown email", "ghost@example.com", "secret-pass", userstore.ErrUnknownEmail},
		{"disabled", "old@example.com", "secret-pass", userstore.ErrDisabled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Authenticate(ctx, tt.email, tt.password)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}

	_, err = s.Authenticate(ctx, "asha@example.com", "nope")
	if !errors.Is(err, userstore.ErrInvalidCredentials) {
		t.Errorf("wrong password should match ErrInvalidCredentials, got %v", err)
	}
	_, err = s.Authenticate(ctx, "old@example.com", "nope")
	if !errors.Is(err, userstore.ErrInvalidCredentials) {
		t.Errorf("disabled account with wrong password should not reveal its state, got %v", err)
	}
}

func TestStore_EnsureAdmin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll: %v", err)
	}

	s := userstore.New(db)

	created, err := s.EnsureAdmin(ctx, "Owner@Example.com", "first-password", "")
	if err != nil {
		t.Fatalf("EnsureAdmin failed: %v", err)
	}
	if !created {
		t.Fatal("expected admin to be created")
	}

	u, err := s.GetByEmail(ctx, "owner@example.com")
	if err != nil {
		t.Fatalf("GetByEmail failed: %v", err)
	}
	if u.Role != models.RoleAdmin || u.Status != models.StatusActive {
		t.Errorf("unexpected role/status %q/%q", u.Role, u.Status)
	}
	if u.FullName != "Administrator" {
		t.Errorf("expected default name, got %q", u.FullName)
	}
	if u.PasswordHash == "first-password" || u.PasswordHash == "" {
		t.Error("password should be stored hashed")
	}

	// A second call with a new password leaves the account alone.
	created, err = s.EnsureAdmin(ctx, "owner@example.com", "second-password", "Owner")
	if err != nil {
		t.Fatalf("EnsureAdmin (again) failed: %v", err)
	}
	if created {
		t.Error("expected existing admin to be kept")
	}
	if _, err := s.Authenticate(ctx, "owner@example.com", "first-password"); err != nil {
		t.Errorf("original password should still work: %v", err)
	}

	n, err := db.Collection(models.CollectionUsers).CountDocuments(ctx, map[string]any{})
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 user, got %d", n)
	}
}

func TestStore_EnsureAdmin_RequiresCredentials(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := userstore.New(db).EnsureAdmin(ctx, "owner@example.com", "", ""); err == nil {
		t.Error("expected error for empty password")
	}
}

func TestStore_Create_DuplicateEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll: %v", err)
	}

	s := userstore.New(db)
	if _, err := s.Create(ctx, models.User{FullName: "A", Email: "a@example.com", PasswordHash: "x"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := s.Create(ctx, models.User{FullName: "B", Email: "A@example.com", PasswordHash: "y"}); !errors.Is(err, userstore.ErrDuplicateEmail) {
		t.Errorf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestStore_TouchLastLogin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures := testutil.NewFixtures(t, db)
	admin := fixtures.CreateAdmin(ctx, "Asha Rao", "asha@example.com", "secret-pass")

	s := userstore.New(db)
	if err := s.TouchLastLogin(ctx, admin.ID); err != nil {
		t.Fatalf("TouchLastLogin failed: %v", err)
	}
	u, err := s.GetByID(ctx, admin.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if u.LastLoginAt == nil || u.LastLoginAt.IsZero() {
		t.Error("expected last_login_at to be set")
	}
}

func TestFetcher_FetchSessionUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures := testutil.NewFixtures(t, db)
	admin := fixtures.CreateAdmin(ctx, "Asha Rao", "asha@example.com", "secret-pass")
	disabled := fixtures.CreateDisabledAdmin(ctx, "Old Admin", "old@example.com", "secret-pass")

	f := userstore.Fetcher{Store: userstore.New(db)}

	su, err := f.FetchSessionUser(ctx, admin.ID.Hex())
	if err != nil {
		t.Fatalf("FetchSessionUser failed: %v", err)
	}
	if su == nil {
		t.Fatal("expected session user")
	}
	if su.Email != "asha@example.com" || su.Name != "Asha Rao" || su.Role != models.RoleAdmin {
		t.Errorf("unexpected session user %+v", su)
	}

	for name, id := range map[string]string{
		"disabled":  disabled.ID.Hex(),
		"missing":   primitive.NewObjectID().Hex(),
		"malformed": "not-an-id",
	} {
		su, err := f.FetchSessionUser(ctx, id)
		if err != nil {
			t.Errorf("%s: unexpected error %v", name, err)
		}
		if su != nil {
			t.Errorf("%s: expected nil user, got %+v", name, su)
		}
	}
}
