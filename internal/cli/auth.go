package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/resilia/internal/common"
	"github.com/dmitrijs2005/resilia/internal/models"
	"github.com/go-playground/validator/v10"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// ErrInvalidInput is returned when a form fails the front-end checks.
var ErrInvalidInput = errors.New("invalid input")

var formValidator = validator.New()

// registerForm carries the checks the registration screen applies before the
// account directory is involved.
type registerForm struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
	Confirm  string `validate:"eqfield=Password"`
}

func (f registerForm) problem() string {
	err := formValidator.Struct(f)
	if err == nil {
		return ""
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) || len(ve) == 0 {
		return err.Error()
	}
	switch ve[0].Field() {
	case "Email":
		return "Please enter a valid email."
	case "Password":
		return "Password must be at least 6 characters."
	default:
		return "Passwords do not match."
	}
}

// Register prompts for an email, a password and its confirmation, then
// creates the account.
//
// The password bytes are wiped before returning.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.reader, "Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	confirm, err := getPassword(a.reader, "Confirm password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	form := registerForm{Email: common.NormalizeEmail(email), Password: string(password), Confirm: string(confirm)}
	if msg := form.problem(); msg != "" {
		a.println(msg)
		return fmt.Errorf("%w: %s", ErrInvalidInput, msg)
	}

	err = a.accounts.Register(ctx, models.RegisterInput{Email: email, Password: string(password)})
	switch {
	case errors.Is(err, common.ErrDuplicateEmail):
		a.println("Email already registered.")
		return err
	case err != nil:
		return err
	}

	a.println("Account created successfully!")
	return nil
}

// Login authenticates against the account directory. The email is prompted
// for when empty.
func (a *App) Login(ctx context.Context, email string) error {
	var err error
	if email == "" {
		email, err = getSimpleText(a.reader, "Enter email", a.out)
		if err != nil {
			return err
		}
	}

	password, err := getPassword(a.reader, "Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	user, err := a.sessions.Login(ctx, email, string(password))
	if errors.Is(err, common.ErrInvalidCredentials) {
		a.println("Invalid email or password.")
		return err
	}
	if err != nil {
		return err
	}

	a.printf("Welcome back, %s!\n", user.DisplayName())
	return nil
}

// Logout ends the session. Logging out while logged out is not an error.
func (a *App) Logout(ctx context.Context) error {
	if err := a.sessions.Logout(ctx); err != nil {
		return err
	}
	a.println("Logged out.")
	return nil
}

// Whoami prints the session's profile.
func (a *App) Whoami(ctx context.Context) error {
	u := a.sessions.Current(ctx)
	if u == nil {
		a.println("Not logged in.")
		return nil
	}
	a.printProfile(u)
	return nil
}

// requireSession returns the session user or prints a hint and fails.
func (a *App) requireSession(ctx context.Context) (*models.UserRecord, error) {
	u := a.sessions.Current(ctx)
	if u == nil {
		a.println("Please log in first.")
		return nil, common.ErrNoActiveSession
	}
	return u, nil
}

func (a *App) printProfile(u *models.UserRecord) {
	photo := "none"
	if u.ProfilePhoto != nil {
		photo = "set"
	}

	a.printf("Email:             %s\n", u.Email)
	a.printf("Name:              %s\n", u.Name)
	a.printf("Surname:           %s\n", u.Surname)
	a.printf("Username:          %s\n", u.Username)
	a.printf("Age:               %d\n", u.Age)
	a.printf("Gender:            %s\n", u.Gender)
	a.printf("Bio:               %s\n", u.Bio)
	a.printf("Goals:             %s\n", u.Goals)
	a.printf("Emergency contact: %s\n", u.EmergencyContact)
	a.printf("Photo:             %s\n", photo)
	a.printf("Member since:      %s\n", u.CreatedAt.Local().Format(a.config.DateLayout))
}
