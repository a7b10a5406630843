package models

import (
	"encoding/json"
	"fmt"
)

// RegisterRequest is the body of POST /register. Keys other than email, number
// and pin are kept verbatim in Profile.
type RegisterRequest struct {
	Email   string
	Number  string
	Pin     string
	Profile map[string]interface{}
}

// UnmarshalJSON accepts any JSON object but requires the well known keys to be strings.
func (r *RegisterRequest) UnmarshalJSON(data []byte) error {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		return fmt.Errorf("register request must be a JSON object")
	}

	r.Profile = make(map[string]interface{}, len(raw))
	for k, v := range raw {
		switch k {
		case FieldEmail, FieldNumber, FieldPin:
			s, ok := v.(string)
			if !ok && v != nil {
				return fmt.Errorf("field %q must be a string", k)
			}
			switch k {
			case FieldEmail:
				r.Email = s
			case FieldNumber:
				r.Number = s
			case FieldPin:
				r.Pin = s
			}
		case FieldID:
			// assigned by the store
		default:
			r.Profile[k] = v
		}
	}
	return nil
}

// LoginRequest is the body of POST /login. ID is either an email or a number.
type LoginRequest struct {
	ID  string `json:"id"`
	Pin string `json:"pin"`
}

// AuthResponse represents the response after successful authentication
type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}
