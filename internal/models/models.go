// Package models defines the records served by the API and the identity
// claims carried in access tokens.
package models

import "encoding/json"

// RolePatient is the only role issued at login.
const RolePatient = "patient"

// Document is a clinical document shown in the patient's library.
type Document struct {
	// ID is the unique identifier within the documents collection.
	ID string `json:"id"`
	// Date is when the document was issued; the dashboard orders by it.
	Date Timestamp `json:"date"`
	// IsFavorite marks documents pinned by the patient.
	IsFavorite bool `json:"isFavorite"`
	// Extra keeps fields this type does not declare.
	Extra Extra `json:"-"`
}

var documentKeys = []string{"id", "date", "isFavorite"}

// UnmarshalJSON decodes a document and keeps undeclared fields in Extra.
func (d *Document) UnmarshalJSON(b []byte) error {
	type plain Document
	if err := json.Unmarshal(b, (*plain)(d)); err != nil {
		return err
	}
	extra, err := captureExtra(b, documentKeys)
	d.Extra = extra
	return err
}

// MarshalJSON encodes the document together with its undeclared fields.
func (d Document) MarshalJSON() ([]byte, error) {
	type plain Document
	return marshalWithExtra(plain(d), d.Extra)
}

// Session is a therapy session booked by a patient.
type Session struct {
	// ID is the unique identifier within the sessions collection.
	ID string `json:"id"`
	// PacienteID references the owning patient (User.ID).
	PacienteID string `json:"pacienteId"`
	// Data is the scheduled date and time.
	Data Timestamp `json:"data"`
	// Finalizada is "true" once the session took place, "false" otherwise.
	// It is stored as a string.
	Finalizada string `json:"finalizada"`
	// Extra keeps fields this type does not declare.
	Extra Extra `json:"-"`
}

var sessionKeys = []string{"id", "pacienteId", "data", "finalizada"}

// UnmarshalJSON decodes a session and keeps undeclared fields in Extra.
func (s *Session) UnmarshalJSON(b []byte) error {
	type plain Session
	if err := json.Unmarshal(b, (*plain)(s)); err != nil {
		return err
	}
	extra, err := captureExtra(b, sessionKeys)
	s.Extra = extra
	return err
}

// MarshalJSON encodes the session together with its undeclared fields.
func (s Session) MarshalJSON() ([]byte, error) {
	type plain Session
	return marshalWithExtra(plain(s), s.Extra)
}

// Pending reports whether the session has not taken place yet.
func (s Session) Pending() bool {
	return s.Finalizada == "false"
}

// Review is a patient's rating of a psychologist.
type Review struct {
	// ID is the unique identifier within the reviews collection.
	ID string `json:"id"`
	// PsicologoID references the reviewed psychologist. Incoming payloads may
	// name it subjectId instead.
	PsicologoID string `json:"psicologoId"`
	// UserName is the display name of the reviewer.
	UserName string `json:"userName"`
	// Rating is the score given by the reviewer.
	Rating float64 `json:"rating"`
	// Extra keeps fields this type does not declare.
	Extra Extra `json:"-"`
}

var reviewKeys = []string{"id", "psicologoId", "userName", "rating"}

// UnmarshalJSON decodes a review, resolving the subjectId alias, and keeps
// undeclared fields in Extra.
func (r *Review) UnmarshalJSON(b []byte) error {
	type plain Review
	if err := json.Unmarshal(b, (*plain)(r)); err != nil {
		return err
	}
	extra, err := captureExtra(b, reviewKeys)
	if err != nil {
		return err
	}
	if raw, ok := extra["subjectId"]; ok && r.PsicologoID == "" {
		var subject string
		if json.Unmarshal(raw, &subject) == nil {
			r.PsicologoID = subject
			delete(extra, "subjectId")
		}
	}
	if len(extra) == 0 {
		extra = nil
	}
	r.Extra = extra
	return nil
}

// MarshalJSON encodes the review together with its undeclared fields.
func (r Review) MarshalJSON() ([]byte, error) {
	type plain Review
	return marshalWithExtra(plain(r), r.Extra)
}

// User is a stored account. Password is kept in plain text.
type User struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Extra    Extra  `json:"-"`
}

var userKeys = []string{"id", "email", "password"}

// UnmarshalJSON decodes a user and keeps undeclared fields in Extra.
func (u *User) UnmarshalJSON(b []byte) error {
	type plain User
	if err := json.Unmarshal(b, (*plain)(u)); err != nil {
		return err
	}
	extra, err := captureExtra(b, userKeys)
	u.Extra = extra
	return err
}

// MarshalJSON encodes the user together with its undeclared fields.
func (u User) MarshalJSON() ([]byte, error) {
	type plain User
	return marshalWithExtra(plain(u), u.Extra)
}

// Notification is passed through to clients untouched.
type Notification = json.RawMessage

// Claims is the identity carried inside an access token.
type Claims struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
	// IssuedAt and ExpiresAt are Unix seconds. They are filled in on
	// verified claims and ignored when issuing.
	IssuedAt  int64 `json:"iat,omitempty"`
	ExpiresAt int64 `json:"exp,omitempty"`
}

// Profile is the public view of an authenticated user.
type Profile struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Dashboard summarises the patient's home screen. Absent values encode as null.
type Dashboard struct {
	LastDocument *Document `json:"lastDocument"`
	NextSession  *Session  `json:"nextSession"`
}
