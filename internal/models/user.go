// Package models defines the data records persisted by the Resilia data layer.
package models

import "time"

// DefaultAge is the age assigned at registration when none is provided.
const DefaultAge = 13

// UserRecord is a registered account together with its profile.
// Serialized field names are part of the on-device storage format.
type UserRecord struct {
	// Email is the normalized (trimmed, lowercased) natural key.
	Email string `json:"email"`
	// Password is stored and compared verbatim.
	Password string `json:"password"`

	Name             string `json:"name"`
	Surname          string `json:"surname"`
	Username         string `json:"username"`
	Age              int    `json:"age"`
	Gender           string `json:"gender"`
	Bio              string `json:"bio"`
	Goals            string `json:"goals"`
	EmergencyContact string `json:"emergencyContact"`

	// ProfilePhoto is a data URI, or nil when the user has not set one.
	ProfilePhoto *string `json:"profilePhoto"`

	// CreatedAt is set once at registration and never changes.
	CreatedAt time.Time `json:"createdAt"`
}

// Clone returns a copy that shares no memory with r.
func (r UserRecord) Clone() UserRecord {
	c := r
	if r.ProfilePhoto != nil {
		p := *r.ProfilePhoto
		c.ProfilePhoto = &p
	}
	return c
}

// DisplayName is the name shown in greetings: name, then username, then "Friend".
func (r UserRecord) DisplayName() string {
	switch {
	case r.Name != "":
		return r.Name
	case r.Username != "":
		return r.Username
	default:
		return "Friend"
	}
}

// RegisterInput is the candidate account submitted at registration.
type RegisterInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
	Name     string `json:"name"`
	Surname  string `json:"surname"`
	Username string `json:"username"`
	Age      int    `json:"age"`
	Gender   string `json:"gender"`
}

// ProfilePatch is a shallow update of a UserRecord. Nil fields are left
// untouched. Email and Password may be set by a caller but are never applied.
type ProfilePatch struct {
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`

	Name             *string `json:"name,omitempty"`
	Surname          *string `json:"surname,omitempty"`
	Username         *string `json:"username,omitempty"`
	Age              *int    `json:"age,omitempty"`
	Gender           *string `json:"gender,omitempty"`
	Bio              *string `json:"bio,omitempty"`
	Goals            *string `json:"goals,omitempty"`
	EmergencyContact *string `json:"emergencyContact,omitempty"`

	// ProfilePhoto replaces the photo; an empty string clears it.
	ProfilePhoto *string `json:"profilePhoto,omitempty"`
}

// IsEmpty reports whether the patch changes no profile field.
func (p ProfilePatch) IsEmpty() bool {
	return p.Name == nil && p.Surname == nil && p.Username == nil && p.Age == nil &&
		p.Gender == nil && p.Bio == nil && p.Goals == nil && p.EmergencyContact == nil &&
		p.ProfilePhoto == nil
}

// Merge returns r with every non-nil patch field applied, Email and Password
// included. Callers that must protect credentials restore them afterwards.
func (p ProfilePatch) Merge(r UserRecord) UserRecord {
	out := r.Clone()
	if p.Email != nil {
		out.Email = *p.Email
	}
	if p.Password != nil {
		out.Password = *p.Password
	}
	setString(&out.Name, p.Name)
	setString(&out.Surname, p.Surname)
	setString(&out.Username, p.Username)
	if p.Age != nil {
		out.Age = *p.Age
	}
	setString(&out.Gender, p.Gender)
	setString(&out.Bio, p.Bio)
	setString(&out.Goals, p.Goals)
	setString(&out.EmergencyContact, p.EmergencyContact)
	if p.ProfilePhoto != nil {
		if *p.ProfilePhoto == "" {
			out.ProfilePhoto = nil
		} else {
			photo := *p.ProfilePhoto
			out.ProfilePhoto = &photo
		}
	}
	return out
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
