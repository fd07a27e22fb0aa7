package scenario

import (
	"context"
	"net/http"
	"strings"

	"github.com/samvad-hq/petfriends-client/pkg/petfriends"
)

var (
	unknownKey     = petfriends.AuthKey{Key: "12345"}
	unknownLongKey = petfriends.AuthKey{Key: "1234567890"}
)

func authInvalidPassword(ctx context.Context, env *Env) error {
	res, err := env.Client.Authenticate(ctx, env.Credentials.Email, env.InvalidPassword)
	if err != nil {
		return err
	}
	return expectResult("authenticate with invalid password", res, http.StatusForbidden)
}

func listInvalidKey(ctx context.Context, env *Env) error {
	res, err := env.Client.ListPets(ctx, unknownKey, petfriends.FilterAll)
	if err != nil {
		return err
	}
	return expectResult("list pets with unknown key", res, http.StatusForbidden)
}

func createSimpleInvalidKey(ctx context.Context, env *Env) error {
	res, err := env.Client.CreatePetSimple(ctx, unknownKey, "Test", "Test", "4")
	if err != nil {
		return err
	}
	return expectResult("create pet simple with unknown key", res, http.StatusForbidden)
}

func createSimpleEmptyFields(ctx context.Context, env *Env) error {
	return createSimpleRejected(ctx, env, "create pet simple with empty fields", "", "", "")
}

func createSimpleNegativeAge(ctx context.Context, env *Env) error {
	return createSimpleRejected(ctx, env, "create pet simple with negative age", uniqueName("Test pet"), "just pet", "-2")
}

func createSimpleRejected(ctx context.Context, env *Env, op, name, animalType, age string) error {
	key, err := env.authenticate(ctx)
	if err != nil {
		return err
	}
	res, err := env.Client.CreatePetSimple(ctx, key, name, animalType, age)
	if err != nil {
		return err
	}
	if err := env.recordCreated(res); err != nil {
		return err
	}
	return expectResult(op, res, http.StatusBadRequest)
}

func deleteWithInvalidKey(ctx context.Context, env *Env) error {
	key, err := env.authenticate(ctx)
	if err != nil {
		return err
	}
	pet, err := env.firstOwnPet(ctx, key)
	if err != nil {
		return err
	}
	status, err := env.Client.DeletePet(ctx, unknownLongKey, pet.ID)
	if err != nil {
		return err
	}
	return expectStatus("delete pet with unknown key", status, http.StatusForbidden)
}

func deleteForeignPet(ctx context.Context, env *Env) error {
	key, err := env.authenticate(ctx)
	if err != nil {
		return err
	}
	pet, err := env.foreignPet(ctx, key)
	if err != nil {
		return err
	}
	status, err := env.Client.DeletePet(ctx, key, pet.ID)
	if err != nil {
		return err
	}
	return expectStatus("delete another user's pet", status, http.StatusForbidden)
}

func updateForeignPet(ctx context.Context, env *Env) error {
	key, err := env.authenticate(ctx)
	if err != nil {
		return err
	}
	pet, err := env.foreignPet(ctx, key)
	if err != nil {
		return err
	}

	name, animalType, age := uniqueName("Test name"), uniqueName("test type"), "test"
	res, err := env.Client.UpdatePet(ctx, key, pet.ID, name, animalType, age)
	if err != nil {
		return err
	}
	if err := expectResult("update another user's pet", res, http.StatusForbidden); err != nil {
		return err
	}

	pets, err := env.listPets(ctx, key, petfriends.FilterAll)
	if err != nil {
		return err
	}
	got, ok := findPet(pets, pet.ID)
	if !ok {
		return failf("update another user's pet: pet %s no longer listed", pet.ID)
	}
	var stored []string
	if got.Name == name {
		stored = append(stored, "name")
	}
	if got.AnimalType == animalType {
		stored = append(stored, "animal_type")
	}
	if got.Age == age {
		stored = append(stored, "age")
	}
	if len(stored) > 0 {
		return failf("update another user's pet: rejected update stored %s", strings.Join(stored, ", "))
	}
	return nil
}

func setPhotoForeignPet(ctx context.Context, env *Env) error {
	key, err := env.authenticate(ctx)
	if err != nil {
		return err
	}
	pet, err := env.foreignPet(ctx, key)
	if err != nil {
		return err
	}
	res, err := env.Client.SetPetPhoto(ctx, key, pet.ID, env.Images.AltJPEG)
	if err != nil {
		return err
	}
	return expectRejected("set photo of another user's pet", res.Status)
}

func createWithGIFPhoto(ctx context.Context, env *Env) error {
	key, err := env.authenticate(ctx)
	if err != nil {
		return err
	}
	res, err := env.Client.CreatePetWithPhoto(ctx, key, uniqueName("Test pet"), "test", "1", env.Images.GIF)
	if err != nil {
		return err
	}
	if err := env.recordCreated(res); err != nil {
		return err
	}
	return expectRejected("create pet with gif photo", res.Status)
}
