package petfriends

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// AuthKey is the session token returned by Authenticate and required by every other call.
type AuthKey struct {
	Key string `json:"key"`
}

// Pet is a server-owned pet record. Every field travels as a string.
type Pet struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	AnimalType string `json:"animal_type"`
	Age        string `json:"age"`
	PetPhoto   string `json:"pet_photo"`
	UserID     string `json:"user_id,omitempty"`
	CreatedAt  string `json:"created_at,omitempty"`
}

// Result is the (status, body) envelope returned by every JSON-returning operation.
type Result struct {
	Status int
	Body   Body
}

// OK reports whether the server answered 200.
func (r Result) OK() bool { return r.Status == http.StatusOK }

// AuthKey decodes the key returned by Authenticate.
func (r Result) AuthKey() (AuthKey, error) {
	var key AuthKey
	if err := r.Body.Decode(&key); err != nil {
		return AuthKey{}, err
	}
	if key.Key == "" {
		return AuthKey{}, fmt.Errorf("%w: missing key field", ErrUnexpectedShape)
	}
	return key, nil
}

// Pets decodes a {"pets": [...]} listing.
func (r Result) Pets() ([]Pet, error) {
	var list struct {
		Pets json.RawMessage `json:"pets"`
	}
	if err := r.Body.Decode(&list); err != nil {
		return nil, err
	}
	if list.Pets == nil {
		return nil, fmt.Errorf("%w: missing pets field", ErrUnexpectedShape)
	}
	var pets []Pet
	if err := json.Unmarshal(list.Pets, &pets); err != nil {
		return nil, fmt.Errorf("decode pets: %w", err)
	}
	return pets, nil
}

// Pet decodes a single pet record.
func (r Result) Pet() (Pet, error) {
	var pet Pet
	if err := r.Body.Decode(&pet); err != nil {
		return Pet{}, err
	}
	if pet.ID == "" {
		return Pet{}, fmt.Errorf("%w: missing id field", ErrUnexpectedShape)
	}
	return pet, nil
}
