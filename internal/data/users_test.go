package data

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/sakshamkanojia19/wishlist-server/internal/db"
)

// setupDB connects to the test database and drops the collections so
// every test starts clean. Skipped entirely unless MONGO_URI is set.
func setupDB(t *testing.T) *db.Client {
	t.Helper()

	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		t.Skip("MONGO_URI not set; skipping integration test")
	}

	ctx := context.Background()
	c, err := db.New(ctx, uri, "wishlist_test")
	if err != nil {
		t.Fatalf("db.New failed: %v", err)
	}

	_ = c.UsersCollection().Drop(ctx)
	_ = c.WishlistsCollection().Drop(ctx)
	_ = c.InvitationsCollection().Drop(ctx)

	if err := c.CreateIndexes(ctx); err != nil {
		t.Fatalf("CreateIndexes failed: %v", err)
	}

	return c
}

func TestUsersCreateAndGet(t *testing.T) {
	c := setupDB(t)
	defer func() { _ = c.Close(context.Background()) }()

	users := NewUsersStore(c.UsersCollection())

	ctx := context.Background()
	email := time.Now().UTC().Format("20060102-150405") + "-integration@example.com"

	user, err := users.CreateUser(ctx, email, "hashed-password", "Integration Tester")
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	if user.Email != email {
		t.Fatalf("expected email %s got %s", email, user.Email)
	}

	u2, err := users.GetUserByEmail(ctx, email)
	if err != nil {
		t.Fatalf("GetUserByEmail failed: %v", err)
	}
	if u2.Name != "Integration Tester" {
		t.Fatalf("GetUserByEmail returned wrong name: %s", u2.Name)
	}

	got, err := users.GetUserByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetUserByID failed: %v", err)
	}
	if got.Email != email {
		t.Fatalf("GetUserByID returned wrong email: %s", got.Email)
	}
}

func TestUsersEmailStoredNormalized(t *testing.T) {
	c := setupDB(t)
	defer func() { _ = c.Close(context.Background()) }()

	users := NewUsersStore(c.UsersCollection())
	ctx := context.Background()

	user, err := users.CreateUser(ctx, "  MiXeD.Case@Example.COM ", "hash", "")
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	if user.Email != "mixed.case@example.com" {
		t.Fatalf("email not normalized on create: %s", user.Email)
	}

	// Lookup with different casing must hit the same document.
	got, err := users.GetUserByEmail(ctx, "mixed.CASE@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail failed: %v", err)
	}
	if got.ID != user.ID {
		t.Fatalf("lookup returned a different user")
	}
}

func TestUsersDuplicateEmailRejected(t *testing.T) {
	c := setupDB(t)
	defer func() { _ = c.Close(context.Background()) }()

	users := NewUsersStore(c.UsersCollection())
	ctx := context.Background()

	if _, err := users.CreateUser(ctx, "dupe@example.com", "hash", ""); err != nil {
		t.Fatalf("first CreateUser failed: %v", err)
	}

	// Same address in different case collides on the unique index
	// because emails are normalized before storage.
	_, err := users.CreateUser(ctx, "DUPE@example.com", "hash2", "")
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}
