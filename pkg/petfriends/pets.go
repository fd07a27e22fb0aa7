package petfriends

import (
	"context"
	"net/http"

	"github.com/samvad-hq/petfriends-client/pkg/httpclient"
)

// Authenticate exchanges credentials for an auth key. The credentials are sent as
// headers and are not validated locally.
func (c *Client) Authenticate(ctx context.Context, email, password string) (Result, error) {
	return c.call(ctx, "authenticate", httpclient.Request{
		Method: http.MethodGet,
		URL:    c.endpoint("api", "key"),
		Headers: map[string]string{
			headerEmail:    email,
			headerPassword: password,
		},
	})
}

// ListPets lists pets matching filter. FilterAll and FilterMyPets are the values the
// server documents; anything else is passed through unchecked.
func (c *Client) ListPets(ctx context.Context, key AuthKey, filter string) (Result, error) {
	return c.call(ctx, "list_pets", httpclient.Request{
		Method:  http.MethodGet,
		URL:     c.endpoint("api", "pets"),
		Headers: authHeaders(key),
		Query:   map[string]string{"filter": filter},
	})
}

// CreatePetWithPhoto creates a pet with the photo at photoPath. A photo that cannot
// be opened yields a *PhotoError and nothing is sent.
func (c *Client) CreatePetWithPhoto(ctx context.Context, key AuthKey, name, animalType, age, photoPath string) (Result, error) {
	file, part, err := openPhoto(photoPath)
	if err != nil {
		return Result{}, err
	}
	defer file.Close()

	return c.call(ctx, "create_pet_with_photo", httpclient.Request{
		Method:  http.MethodPost,
		URL:     c.endpoint("api", "pets"),
		Headers: authHeaders(key),
		Form:    petForm(name, animalType, age),
		Parts:   []httpclient.Part{part},
	})
}

// CreatePetSimple creates a pet without a photo.
func (c *Client) CreatePetSimple(ctx context.Context, key AuthKey, name, animalType, age string) (Result, error) {
	return c.call(ctx, "create_pet_simple", httpclient.Request{
		Method:  http.MethodPost,
		URL:     c.endpoint("api", "create_pet_simple"),
		Headers: authHeaders(key),
		Form:    petForm(name, animalType, age),
	})
}

// UpdatePet replaces a pet's name, type and age. Ownership is enforced by the server.
func (c *Client) UpdatePet(ctx context.Context, key AuthKey, petID, name, animalType, age string) (Result, error) {
	return c.call(ctx, "update_pet", httpclient.Request{
		Method:  http.MethodPut,
		URL:     c.endpoint("api", "pets", petID),
		Headers: authHeaders(key),
		Form:    petForm(name, animalType, age),
	})
}

// DeletePet deletes a pet and returns only the status code; the body is discarded.
func (c *Client) DeletePet(ctx context.Context, key AuthKey, petID string) (int, error) {
	resp, err := c.send(ctx, "delete_pet", httpclient.Request{
		Method:  http.MethodDelete,
		URL:     c.endpoint("api", "pets", petID),
		Headers: authHeaders(key),
	})
	if err != nil {
		return 0, err
	}
	return resp.StatusCode(), nil
}

// SetPetPhoto replaces a pet's photo with the file at photoPath.
func (c *Client) SetPetPhoto(ctx context.Context, key AuthKey, petID, photoPath string) (Result, error) {
	file, part, err := openPhoto(photoPath)
	if err != nil {
		return Result{}, err
	}
	defer file.Close()

	return c.call(ctx, "set_pet_photo", httpclient.Request{
		Method:  http.MethodPost,
		URL:     c.endpoint("api", "pets", "set_photo", petID),
		Headers: authHeaders(key),
		Parts:   []httpclient.Part{part},
	})
}

func petForm(name, animalType, age string) map[string]string {
	return map[string]string{
		"name":        name,
		"animal_type": animalType,
		"age":         age,
	}
}
