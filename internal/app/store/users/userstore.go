// internal/app/store/users/userstore.go
package userstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/dalemusser/vastusite/internal/app/store"
	"github.com/dalemusser/vastusite/internal/app/system/auth"
	"github.com/dalemusser/vastusite/internal/app/system/normalize"
	"github.com/dalemusser/vastusite/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials covers every failed password sign-in. Callers
	// that need the reason for auditing match the wrapped errors below.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnknownEmail       = fmt.Errorf("unknown email: %w", ErrInvalidCredentials)
	ErrWrongPassword      = fmt.Errorf("wrong password: %w", ErrInvalidCredentials)

	// ErrDisabled is returned for a correct password on a disabled account.
	ErrDisabled = errors.New("account disabled")

	// ErrDuplicateEmail is returned when attempting to create a user with an email that already exists.
	ErrDuplicateEmail = errors.New("a user with this email already exists")
)

// dummyHash is compared against when the email is unknown so a miss costs
// the same as a wrong password.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("vastusite-no-such-user"), bcrypt.DefaultCost)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(models.CollectionUsers)}
}

// GetByID loads a user by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	return store.FindOne[models.User](ctx, s.c, bson.M{"_id": id})
}

// GetByEmail looks up a user by case-insensitive email.
func (s *Store) GetByEmail(ctx context.Context, email string) (models.User, error) {
	return store.FindOne[models.User](ctx, s.c, bson.M{"email": normalize.Email(email)})
}

// Create inserts a user with an already-hashed password.
func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	u.ID = primitive.NewObjectID()
	u.FullName = normalize.Name(u.FullName)
	u.Email = normalize.Email(u.Email)
	if u.Role == "" {
		u.Role = models.RoleAdmin
	}
	if u.Status == "" {
		u.Status = models.StatusActive
	}
	now := store.Now()
	u.CreatedAt = now
	u.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, fmt.Errorf("insert user: %w", err)
	}
	return u, nil
}

// Authenticate checks an email/password pair. Failures wrap
// ErrInvalidCredentials, except a disabled account which is ErrDisabled.
func (s *Store) Authenticate(ctx context.Context, email, password string) (models.User, error) {
	u, err := s.GetByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return models.User{}, ErrUnknownEmail
	}
	if err != nil {
		return models.User{}, fmt.Errorf("load user: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return models.User{}, ErrWrongPassword
	}
	if !u.IsActive() {
		return models.User{}, ErrDisabled
	}
	return u, nil
}

// TouchLastLogin records a successful sign-in.
func (s *Store) TouchLastLogin(ctx context.Context, id primitive.ObjectID) error {
	now := store.Now()
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"last_login_at": now}})
	return err
}

// EnsureAdmin creates the bootstrap admin if no user has the email yet.
// An existing account is left untouched, password included, so changing
// the configured password after first start has no effect.
func (s *Store) EnsureAdmin(ctx context.Context, email, password, fullName string) (bool, error) {
	email = normalize.Email(email)
	if email == "" || password == "" {
		return false, errors.New("admin email and password are required")
	}

	_, err := s.GetByEmail(ctx, email)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return false, fmt.Errorf("look up admin: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return false, fmt.Errorf("hash password: %w", err)
	}
	if fullName == "" {
		fullName = "Administrator"
	}
	_, err = s.Create(ctx, models.User{
		FullName:     fullName,
		Email:        email,
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
		Status:       models.StatusActive,
	})
	if errors.Is(err, ErrDuplicateEmail) {
		// Another instance created it between the lookup and the insert.
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Fetcher adapts the store to auth.UserFetcher.
type Fetcher struct {
	Store *Store
}

// FetchSessionUser reloads the user behind a session. Missing, disabled and
// malformed ids yield (nil, nil) so the session is dropped.
func (f Fetcher) FetchSessionUser(ctx context.Context, id string) (*auth.SessionUser, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	u, err := f.Store.GetByID(ctx, oid)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if !u.IsActive() {
		return nil, nil
	}
	return SessionUserOf(u), nil
}

// SessionUserOf converts a stored user to its session form.
func SessionUserOf(u models.User) *auth.SessionUser {
	return &auth.SessionUser{
		ID:    u.ID.Hex(),
		Name:  u.FullName,
		Email: u.Email,
		Role:  u.Role,
	}
}
