package models

import (
	"encoding/json"
	"fmt"
)

// Document keys with a fixed meaning. Everything else is a profile field.
const (
	FieldID     = "_id"
	FieldEmail  = "email"
	FieldNumber = "number"
	FieldPin    = "pin"
)

// User represents a registered account holder.
// Profile carries any additional fields supplied at registration; they are stored
// at the top level of the document next to email, number and pin.
type User struct {
	ID      string
	Email   string
	Number  string
	Pin     string // bcrypt hash, never plaintext
	Profile map[string]interface{}
}

// Document returns the stored form of the user, pin hash included and _id excluded.
func (u *User) Document() map[string]interface{} {
	doc := make(map[string]interface{}, len(u.Profile)+3)
	for k, v := range u.Profile {
		doc[k] = v
	}
	doc[FieldEmail] = u.Email
	if u.Number != "" {
		doc[FieldNumber] = u.Number
	}
	doc[FieldPin] = u.Pin
	return doc
}

// UserFromDocument builds a User from a stored document. The caller is expected
// to have converted any driver specific _id value to its string form.
func UserFromDocument(doc map[string]interface{}) *User {
	u := &User{Profile: make(map[string]interface{})}
	for k, v := range doc {
		switch k {
		case FieldID:
			u.ID = fmt.Sprint(v)
		case FieldEmail:
			u.Email, _ = v.(string)
		case FieldNumber:
			u.Number, _ = v.(string)
		case FieldPin:
			u.Pin, _ = v.(string)
		default:
			u.Profile[k] = v
		}
	}
	return u
}

// MarshalJSON flattens the profile into the top level object and leaves the pin hash out.
func (u User) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(u.Profile)+3)
	for k, v := range u.Profile {
		out[k] = v
	}
	if u.ID != "" {
		out[FieldID] = u.ID
	}
	out[FieldEmail] = u.Email
	if u.Number != "" {
		out[FieldNumber] = u.Number
	}
	return json.Marshal(out)
}

// InsertResult mirrors the acknowledgement returned by the store on insert
type InsertResult struct {
	Acknowledged bool   `json:"acknowledged"`
	InsertedID   string `json:"insertedId"`
}
