package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/resilia/internal/filex"
	"github.com/dmitrijs2005/resilia/internal/models"
)

// clearValue typed at a profile prompt empties the field.
const clearValue = "-"

// EditProfile walks through the editable profile fields. An empty answer
// keeps the current value and "-" clears it. Email and password are not
// editable.
func (a *App) EditProfile(ctx context.Context) error {
	u, err := a.requireSession(ctx)
	if err != nil {
		return err
	}

	var patch models.ProfilePatch
	fields := []struct {
		label string
		cur   string
		dst   **string
	}{
		{"Name", u.Name, &patch.Name},
		{"Surname", u.Surname, &patch.Surname},
		{"Username", u.Username, &patch.Username},
		{"Gender", u.Gender, &patch.Gender},
		{"Bio", u.Bio, &patch.Bio},
		{"Goals", u.Goals, &patch.Goals},
		{"Emergency contact", u.EmergencyContact, &patch.EmergencyContact},
	}

	a.println(`Press Enter to keep a value, "-" to clear it.`)
	for _, f := range fields {
		v, err := getSimpleText(a.reader, fmt.Sprintf("%s [%s]", f.label, f.cur), a.out)
		if err != nil {
			return err
		}
		switch v {
		case "":
		case clearValue:
			empty := ""
			*f.dst = &empty
		default:
			val := v
			*f.dst = &val
		}
	}

	for {
		v, err := getSimpleText(a.reader, fmt.Sprintf("Age [%d]", u.Age), a.out)
		if err != nil {
			return err
		}
		if v == "" {
			break
		}
		age, err := strconv.Atoi(v)
		if err != nil || age < 0 {
			a.println("Age must be a non-negative number.")
			continue
		}
		patch.Age = &age
		break
	}

	if patch.IsEmpty() {
		a.println("Nothing to update.")
		return nil
	}

	if _, err := a.sessions.ApplyProfileUpdate(ctx, patch); err != nil {
		return err
	}
	a.println("Profile updated.")
	return nil
}

// SetPhoto stores the image at path as the profile photo, or removes the
// photo when clear is set. An empty path is prompted for.
func (a *App) SetPhoto(ctx context.Context, path string, clear bool) error {
	if _, err := a.requireSession(ctx); err != nil {
		return err
	}

	var photo string
	if !clear {
		var err error
		if path == "" {
			path, err = getSimpleText(a.reader, "Path to image file", a.out)
			if err != nil {
				return err
			}
		}
		photo, err = filex.ReadDataURI(path)
		if err != nil {
			a.println("Could not use that file:", err)
			return err
		}
	}

	if _, err := a.sessions.ApplyProfileUpdate(ctx, models.ProfilePatch{ProfilePhoto: &photo}); err != nil {
		return err
	}

	if clear {
		a.println("Profile photo removed.")
	} else {
		a.println("Profile photo updated.")
	}
	return nil
}
