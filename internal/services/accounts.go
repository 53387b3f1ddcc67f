// Package services contains the Resilia data-layer services. This file
// defines the account directory: registration, credential lookup and profile
// updates over the accounts collection.
package services

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/dmitrijs2005/resilia/internal/common"
	"github.com/dmitrijs2005/resilia/internal/logging"
	"github.com/dmitrijs2005/resilia/internal/models"
	"github.com/dmitrijs2005/resilia/internal/repositories/kv"
	"github.com/go-playground/validator/v10"
)

// AccountDirectory holds every registered UserRecord under KeyUsers and
// enforces one record per normalized email.
//
// Each operation reads the whole collection, changes it in memory and writes
// the whole collection back. Concurrent writers race with last-write-wins.
type AccountDirectory struct {
	repo     kv.Repository
	log      logging.Logger
	validate *validator.Validate
	now      func() time.Time
}

// NewAccountDirectory constructs an AccountDirectory over the given substrate.
func NewAccountDirectory(repo kv.Repository, log logging.Logger) *AccountDirectory {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &AccountDirectory{
		repo:     repo,
		log:      log,
		validate: v,
		now:      time.Now,
	}
}

// bind returns a copy of d that reads and writes through r.
func (d *AccountDirectory) bind(r kv.Repository) *AccountDirectory {
	c := *d
	c.repo = r
	return &c
}

// load returns the stored collection. Missing or unreadable storage yields an
// empty collection.
func (d *AccountDirectory) load(ctx context.Context) []models.UserRecord {
	users, _, err := kv.LoadJSON[[]models.UserRecord](ctx, d.repo, KeyUsers)
	if err != nil {
		d.log.Warn(ctx, "accounts collection unreadable, treating as empty", "error", err)
		return nil
	}
	return users
}

func (d *AccountDirectory) save(ctx context.Context, users []models.UserRecord) error {
	if err := kv.SaveJSON(ctx, d.repo, KeyUsers, users); err != nil {
		return fmt.Errorf("save accounts: %w", err)
	}
	return nil
}

func indexByEmail(users []models.UserRecord, normalized string) int {
	for i := range users {
		if users[i].Email == normalized {
			return i
		}
	}
	return -1
}

// Register validates and stores a new account. The email is normalized before
// it is compared or stored. Returns common.ErrMissingField when email or
// password is absent and common.ErrDuplicateEmail when the normalized email is
// already registered.
func (d *AccountDirectory) Register(ctx context.Context, in models.RegisterInput) error {
	in.Email = common.NormalizeEmail(in.Email)

	if err := d.validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("%w: %s", common.ErrMissingField, verrs[0].Field())
		}
		return fmt.Errorf("validate registration: %w", err)
	}

	users := d.load(ctx)
	if indexByEmail(users, in.Email) >= 0 {
		return common.ErrDuplicateEmail
	}

	age := in.Age
	if age == 0 {
		age = models.DefaultAge
	}

	users = append(users, models.UserRecord{
		Email:     in.Email,
		Password:  in.Password,
		Name:      in.Name,
		Surname:   in.Surname,
		Username:  in.Username,
		Age:       age,
		Gender:    in.Gender,
		CreatedAt: d.now().UTC(),
	})

	if err := d.save(ctx, users); err != nil {
		return err
	}

	d.log.Info(ctx, "user registered", "email", in.Email)
	return nil
}

// FindByCredentials returns a copy of the record whose normalized email and
// verbatim password both match, or nil.
func (d *AccountDirectory) FindByCredentials(ctx context.Context, email, password string) *models.UserRecord {
	normalized := common.NormalizeEmail(email)
	for _, u := range d.load(ctx) {
		if u.Email == normalized && u.Password == password {
			c := u.Clone()
			return &c
		}
	}
	return nil
}

// Update shallow-merges patch onto the record registered under email and
// stores the result. Email and password always keep their stored values,
// whatever the patch carries. Returns common.ErrNotFound when no record
// matches.
func (d *AccountDirectory) Update(ctx context.Context, email string, patch models.ProfilePatch) (*models.UserRecord, error) {
	users := d.load(ctx)
	i := indexByEmail(users, common.NormalizeEmail(email))
	if i < 0 {
		return nil, common.ErrNotFound
	}

	existing := users[i]
	merged := patch.Merge(existing)
	merged.Email = existing.Email
	merged.Password = existing.Password
	merged.CreatedAt = existing.CreatedAt

	users[i] = merged
	if err := d.save(ctx, users); err != nil {
		return nil, err
	}

	d.log.Info(ctx, "profile updated", "email", merged.Email)
	out := merged.Clone()
	return &out, nil
}

// List returns a snapshot of every registered record in registration order.
func (d *AccountDirectory) List(ctx context.Context) []models.UserRecord {
	return d.load(ctx)
}
