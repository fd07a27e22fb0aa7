package scenario

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/samvad-hq/petfriends-client/pkg/petfriends"
)

// Credentials of the test account.
type Credentials struct {
	Email    string
	Password string
}

// Images are the fixture files uploaded by photo scenarios.
type Images struct {
	JPEG    string
	AltJPEG string
	GIF     string
}

// DefaultImages points at the bundled fixtures inside dir.
func DefaultImages(dir string) Images {
	return Images{
		JPEG:    filepath.Join(dir, "meerkat.jpg"),
		AltJPEG: filepath.Join(dir, "fry.jpg"),
		GIF:     filepath.Join(dir, "cat.gif"),
	}
}

// PetRecorder is told about pets scenarios create and delete.
type PetRecorder interface {
	Record(id string) error
	Forget(id string) error
}

// Env is everything a scenario needs to talk to the server.
type Env struct {
	Client          *petfriends.Client
	Credentials     Credentials
	InvalidPassword string
	Images          Images
	// ForeignPetIndex is where the search for another user's pet starts in the
	// unfiltered listing.
	ForeignPetIndex int
	Recorder        PetRecorder
}

// Validate reports missing settings.
func (e *Env) Validate() error {
	if e == nil || e.Client == nil {
		return errors.New("scenario env has no client")
	}
	if e.Credentials.Email == "" || e.Credentials.Password == "" {
		return errors.New("scenario env has no credentials")
	}
	if e.InvalidPassword == "" || e.InvalidPassword == e.Credentials.Password {
		return errors.New("scenario env needs an invalid password different from the valid one")
	}
	if e.ForeignPetIndex < 0 {
		return errors.New("foreign pet index must not be negative")
	}
	return nil
}

func (e *Env) authenticate(ctx context.Context) (petfriends.AuthKey, error) {
	res, err := e.Client.Authenticate(ctx, e.Credentials.Email, e.Credentials.Password)
	if err != nil {
		return petfriends.AuthKey{}, err
	}
	if err := expectResult("authenticate", res, http.StatusOK); err != nil {
		return petfriends.AuthKey{}, err
	}
	key, err := res.AuthKey()
	if err != nil {
		return petfriends.AuthKey{}, failf("authenticate: %v", err)
	}
	return key, nil
}

func (e *Env) listPets(ctx context.Context, key petfriends.AuthKey, filter string) ([]petfriends.Pet, error) {
	res, err := e.Client.ListPets(ctx, key, filter)
	if err != nil {
		return nil, err
	}
	op := fmt.Sprintf("list pets (filter %q)", filter)
	if err := expectResult(op, res, http.StatusOK); err != nil {
		return nil, err
	}
	pets, err := res.Pets()
	if err != nil {
		return nil, failf("%s: %v", op, err)
	}
	return pets, nil
}

func (e *Env) firstOwnPet(ctx context.Context, key petfriends.AuthKey) (petfriends.Pet, error) {
	pets, err := e.listPets(ctx, key, petfriends.FilterMyPets)
	if err != nil {
		return petfriends.Pet{}, err
	}
	if len(pets) == 0 {
		return petfriends.Pet{}, fmt.Errorf("%w: the account owns no pets", ErrNoData)
	}
	return pets[0], nil
}

// foreignPet returns the first pet at or after ForeignPetIndex in the unfiltered
// listing that the account does not own.
func (e *Env) foreignPet(ctx context.Context, key petfriends.AuthKey) (petfriends.Pet, error) {
	own, err := e.listPets(ctx, key, petfriends.FilterMyPets)
	if err != nil {
		return petfriends.Pet{}, err
	}
	owned := make(map[string]struct{}, len(own))
	for _, p := range own {
		owned[p.ID] = struct{}{}
	}

	all, err := e.listPets(ctx, key, petfriends.FilterAll)
	if err != nil {
		return petfriends.Pet{}, err
	}
	for i := e.ForeignPetIndex; i < len(all); i++ {
		if _, mine := owned[all[i].ID]; !mine {
			return all[i], nil
		}
	}
	return petfriends.Pet{}, fmt.Errorf("%w: no foreign pet at or after index %d of %d", ErrNoData, e.ForeignPetIndex, len(all))
}

func (e *Env) recordCreated(res petfriends.Result) error {
	if e.Recorder == nil || !res.OK() {
		return nil
	}
	pet, err := res.Pet()
	if err != nil {
		return nil
	}
	if err := e.Recorder.Record(pet.ID); err != nil {
		return fmt.Errorf("record created pet: %w", err)
	}
	return nil
}

func (e *Env) forgetDeleted(id string) error {
	if e.Recorder == nil {
		return nil
	}
	if err := e.Recorder.Forget(id); err != nil {
		return fmt.Errorf("forget deleted pet: %w", err)
	}
	return nil
}

func findPet(pets []petfriends.Pet, id string) (petfriends.Pet, bool) {
	for _, p := range pets {
		if p.ID == id {
			return p, true
		}
	}
	return petfriends.Pet{}, false
}
