package petfriends

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/samvad-hq/petfriends-client/internal/petstub"
	"github.com/samvad-hq/petfriends-client/pkg/httpclient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	ownerEmail    = "owner@example.com"
	ownerPassword = "secret"
	otherEmail    = "other@example.com"
)

var imagesDir = filepath.Join("..", "..", "testdata", "images")

// recordingClient captures the last request and replays a canned response.
type recordingClient struct {
	last     httpclient.Request
	partBody []byte
	status   int
	body     string
	err      error
}

type cannedResponse struct {
	body   []byte
	status int
}

func (r cannedResponse) Body() []byte        { return r.body }
func (r cannedResponse) StatusCode() int     { return r.status }
func (r cannedResponse) Header() http.Header { return http.Header{} }

func (c *recordingClient) Do(_ context.Context, req httpclient.Request) (httpclient.Response, error) {
	c.last = req
	for _, p := range req.Parts {
		data, err := io.ReadAll(p.Reader)
		if err != nil {
			return nil, err
		}
		c.partBody = data
	}
	if c.err != nil {
		return nil, c.err
	}
	status := c.status
	if status == 0 {
		status = http.StatusOK
	}
	return cannedResponse{body: []byte(c.body), status: status}, nil
}

func newStubClient(t *testing.T) (*Client, *petstub.Server) {
	t.Helper()
	stub := petstub.New()
	stub.AddUser(ownerEmail, ownerPassword)
	stub.AddUser(otherEmail, "other-secret")

	srv := httptest.NewServer(stub)
	t.Cleanup(srv.Close)

	client, err := New(srv.URL, nil, nil)
	require.NoError(t, err)
	return client, stub
}

func authKey(t *testing.T, c *Client) AuthKey {
	t.Helper()
	res, err := c.Authenticate(context.Background(), ownerEmail, ownerPassword)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, res.Status)
	key, err := res.AuthKey()
	require.NoError(t, err)
	return key
}

func TestNewValidatesBaseURL(t *testing.T) {
	_, err := New("", nil, nil)
	assert.Error(t, err)
	_, err = New("ftp://example.com", nil, nil)
	assert.Error(t, err)
	_, err = New("https://", nil, nil)
	assert.Error(t, err)

	c, err := New("https://example.com/base", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/base/", c.BaseURL())
}

func TestRequestWireFormat(t *testing.T) {
	rec := &recordingClient{body: `{}`}
	c, err := New("https://pets.example.com/", rec, nil)
	require.NoError(t, err)
	ctx := context.Background()
	key := AuthKey{Key: "k1"}

	_, err = c.Authenticate(ctx, "a@b.c", "pw")
	require.NoError(t, err)
	assert.Equal(t, http.MethodGet, rec.last.Method)
	assert.Equal(t, "https://pets.example.com/api/key", rec.last.URL)
	assert.Equal(t, map[string]string{"email": "a@b.c", "password": "pw"}, rec.last.Headers)

	_, err = c.ListPets(ctx, key, FilterAll)
	require.NoError(t, err)
	assert.Equal(t, "https://pets.example.com/api/pets", rec.last.URL)
	assert.Equal(t, map[string]string{"filter": ""}, rec.last.Query)
	assert.Equal(t, "k1", rec.last.Headers["auth_key"])

	_, err = c.CreatePetSimple(ctx, key, "Rex", "dog", "3")
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, rec.last.Method)
	assert.Equal(t, "https://pets.example.com/api/create_pet_simple", rec.last.URL)
	assert.Equal(t, map[string]string{"name": "Rex", "animal_type": "dog", "age": "3"}, rec.last.Form)
	assert.False(t, rec.last.IsMultipart())

	_, err = c.UpdatePet(ctx, key, "p1", "Rex", "dog", "4")
	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, rec.last.Method)
	assert.Equal(t, "https://pets.example.com/api/pets/p1", rec.last.URL)

	rec.status = http.StatusForbidden
	status, err := c.DeletePet(ctx, key, "p1")
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, http.MethodDelete, rec.last.Method)
	rec.status = 0

	_, err = c.SetPetPhoto(ctx, key, "p1", filepath.Join(imagesDir, "cat.gif"))
	require.NoError(t, err)
	assert.Equal(t, "https://pets.example.com/api/pets/set_photo/p1", rec.last.URL)
	require.Len(t, rec.last.Parts, 1)
	part := rec.last.Parts[0]
	assert.Equal(t, "pet_photo", part.Param)
	assert.Equal(t, "cat.gif", part.FileName)
	assert.Equal(t, "image/jpeg", part.ContentType, "declared type is always jpeg")
	assert.Equal(t, "GIF89a", string(rec.partBody[:6]))
	assert.Empty(t, rec.last.Form)
}

func TestPetIDIsPathEscaped(t *testing.T) {
	rec := &recordingClient{}
	c, err := New("https://pets.example.com", rec, nil)
	require.NoError(t, err)

	_, err = c.UpdatePet(context.Background(), AuthKey{Key: "k"}, "a/b c", "n", "t", "1")
	require.NoError(t, err)
	assert.Equal(t, "https://pets.example.com/api/pets/a%2Fb%20c", rec.last.URL)
}

func TestTransportErrorsAreReturnedUnmodified(t *testing.T) {
	boom := errors.New("connection refused")
	c, err := New("https://pets.example.com", &recordingClient{err: boom}, nil)
	require.NoError(t, err)
	ctx := context.Background()

	_, err = c.Authenticate(ctx, "a", "b")
	assert.Same(t, boom, err)

	status, err := c.DeletePet(ctx, AuthKey{Key: "k"}, "p")
	assert.Same(t, boom, err)
	assert.Zero(t, status)
}

func TestMissingPhotoIsAFilesystemError(t *testing.T) {
	rec := &recordingClient{}
	c, err := New("https://pets.example.com", rec, nil)
	require.NoError(t, err)

	_, err = c.CreatePetWithPhoto(context.Background(), AuthKey{Key: "k"}, "n", "t", "1", filepath.Join(imagesDir, "missing.jpg"))
	var photoErr *PhotoError
	require.ErrorAs(t, err, &photoErr)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.Empty(t, rec.last.URL, "no request must be sent")

	_, err = c.SetPetPhoto(context.Background(), AuthKey{Key: "k"}, "p", imagesDir)
	require.ErrorAs(t, err, &photoErr)
}

func TestPhotoFilesAreClosedAfterUpload(t *testing.T) {
	photo := filepath.Join(imagesDir, "meerkat.jpg")
	uploads := map[string]func(c *Client) error{
		"create_pet_with_photo": func(c *Client) error {
			_, err := c.CreatePetWithPhoto(context.Background(), AuthKey{Key: "k"}, "n", "t", "1", photo)
			return err
		},
		"set_pet_photo": func(c *Client) error {
			_, err := c.SetPetPhoto(context.Background(), AuthKey{Key: "k"}, "p", photo)
			return err
		},
	}
	transports := map[string]error{
		"success":         nil,
		"transport_error": errors.New("connection reset"),
	}

	for opName, upload := range uploads {
		for outcome, transportErr := range transports {
			t.Run(opName+"/"+outcome, func(t *testing.T) {
				rec := &recordingClient{err: transportErr}
				c, err := New("https://pets.example.com", rec, nil)
				require.NoError(t, err)

				err = upload(c)
				if transportErr != nil {
					assert.Same(t, transportErr, err)
				} else {
					require.NoError(t, err)
				}

				require.Len(t, rec.last.Parts, 1)
				file, ok := rec.last.Parts[0].Reader.(*os.File)
				require.True(t, ok, "photo part must be backed by the opened file")
				_, err = file.Read(make([]byte, 1))
				assert.ErrorIs(t, err, os.ErrClosed)
			})
		}
	}
}

func TestAuthenticateAgainstStub(t *testing.T) {
	c, _ := newStubClient(t)
	ctx := context.Background()

	res, err := c.Authenticate(ctx, ownerEmail, ownerPassword)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.Status)
	assert.True(t, res.Body.IsJSON())

	res, err = c.Authenticate(ctx, ownerEmail, "wrong")
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, res.Status)
	assert.Equal(t, BodyText, res.Body.Kind())
	assert.Contains(t, res.Body.Text(), "wasn't found")

	_, err = res.AuthKey()
	assert.ErrorIs(t, err, ErrTextBody)
}

func TestPetLifecycleAgainstStub(t *testing.T) {
	c, stub := newStubClient(t)
	ctx := context.Background()
	key := authKey(t, c)

	res, err := c.CreatePetWithPhoto(ctx, key, "Rex", "dog", "3", filepath.Join(imagesDir, "meerkat.jpg"))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, res.Status)
	pet, err := res.Pet()
	require.NoError(t, err)
	assert.Equal(t, "Rex", pet.Name)
	assert.NotEmpty(t, pet.PetPhoto)

	res, err = c.UpdatePet(ctx, key, pet.ID, "Max", "cat", "4")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, res.Status)

	res, err = c.ListPets(ctx, key, FilterMyPets)
	require.NoError(t, err)
	pets, err := res.Pets()
	require.NoError(t, err)
	require.Len(t, pets, 1)
	assert.Equal(t, Pet{ID: pet.ID, Name: "Max", AnimalType: "cat", Age: "4"}, Pet{
		ID: pets[0].ID, Name: pets[0].Name, AnimalType: pets[0].AnimalType, Age: pets[0].Age,
	})

	res, err = c.SetPetPhoto(ctx, key, pet.ID, filepath.Join(imagesDir, "fry.jpg"))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, res.Status)

	status, err := c.DeletePet(ctx, key, pet.ID)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)
	assert.Empty(t, stub.PetsOf(ownerEmail))
}

func TestRejectedInputsAgainstStub(t *testing.T) {
	c, stub := newStubClient(t)
	ctx := context.Background()
	key := authKey(t, c)

	res, err := c.CreatePetWithPhoto(ctx, key, "Gif", "cat", "1", filepath.Join(imagesDir, "cat.gif"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, res.Status)

	res, err = c.CreatePetSimple(ctx, key, "", "", "")
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, res.Status)

	res, err = c.CreatePetSimple(ctx, key, "Rex", "dog", "-2")
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, res.Status)

	res, err = c.ListPets(ctx, AuthKey{Key: "12345"}, FilterAll)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, res.Status)

	foreign, err := stub.SeedPet(otherEmail, "Other", "cat", "2")
	require.NoError(t, err)
	res, err = c.UpdatePet(ctx, key, foreign.ID, "Mine", "dog", "1")
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, res.Status)
	assert.False(t, res.Body.IsJSON())
}
