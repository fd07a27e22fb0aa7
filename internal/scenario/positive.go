package scenario

import (
	"context"
	"net/http"
	"slices"

	"github.com/samvad-hq/petfriends-client/pkg/petfriends"
)

func authValidKey(ctx context.Context, env *Env) error {
	res, err := env.Client.Authenticate(ctx, env.Credentials.Email, env.Credentials.Password)
	if err != nil {
		return err
	}
	if err := expectResult("authenticate", res, http.StatusOK); err != nil {
		return err
	}
	if _, err := res.AuthKey(); err != nil {
		return failf("authenticate: body has no key: %v", err)
	}
	return nil
}

func listMyPets(ctx context.Context, env *Env) error {
	key, err := env.authenticate(ctx)
	if err != nil {
		return err
	}
	pets, err := env.listPets(ctx, key, petfriends.FilterMyPets)
	if err != nil {
		return err
	}
	if len(pets) == 0 {
		return failf("list my pets: expected at least one pet")
	}
	return nil
}

func listAllStable(ctx context.Context, env *Env) error {
	key, err := env.authenticate(ctx)
	if err != nil {
		return err
	}
	first, err := env.listPets(ctx, key, petfriends.FilterAll)
	if err != nil {
		return err
	}
	second, err := env.listPets(ctx, key, petfriends.FilterAll)
	if err != nil {
		return err
	}

	a, b := petIDs(first), petIDs(second)
	slices.Sort(a)
	slices.Sort(b)
	if !slices.Equal(a, b) {
		return failf("list all pets: ids changed between two reads (%d vs %d pets)", len(a), len(b))
	}
	return nil
}

func createWithPhoto(ctx context.Context, env *Env) error {
	key, err := env.authenticate(ctx)
	if err != nil {
		return err
	}
	name := uniqueName("Test pet")
	res, err := env.Client.CreatePetWithPhoto(ctx, key, name, "test", "1", env.Images.JPEG)
	if err != nil {
		return err
	}
	if err := env.recordCreated(res); err != nil {
		return err
	}
	if err := expectResult("create pet with photo", res, http.StatusOK); err != nil {
		return err
	}
	return expectName("create pet with photo", res, name)
}

func createSimple(ctx context.Context, env *Env) error {
	key, err := env.authenticate(ctx)
	if err != nil {
		return err
	}
	name := uniqueName("Test create simple")
	res, err := env.Client.CreatePetSimple(ctx, key, name, "test type", "5")
	if err != nil {
		return err
	}
	if err := env.recordCreated(res); err != nil {
		return err
	}
	if err := expectResult("create pet simple", res, http.StatusOK); err != nil {
		return err
	}
	return expectName("create pet simple", res, name)
}

func updateOwnPet(ctx context.Context, env *Env) error {
	key, err := env.authenticate(ctx)
	if err != nil {
		return err
	}
	pet, err := env.firstOwnPet(ctx, key)
	if err != nil {
		return err
	}

	name, animalType, age := uniqueName("Test name"), "test type", "5"
	res, err := env.Client.UpdatePet(ctx, key, pet.ID, name, animalType, age)
	if err != nil {
		return err
	}
	if err := expectResult("update pet", res, http.StatusOK); err != nil {
		return err
	}

	pets, err := env.listPets(ctx, key, petfriends.FilterMyPets)
	if err != nil {
		return err
	}
	got, ok := findPet(pets, pet.ID)
	if !ok {
		return failf("update pet: pet %s missing from my pets after update", pet.ID)
	}
	if got.Name != name || got.AnimalType != animalType || got.Age != age {
		return failf("update pet: stored (%q, %q, %q), sent (%q, %q, %q)",
			got.Name, got.AnimalType, got.Age, name, animalType, age)
	}
	return nil
}

func deleteOwnPet(ctx context.Context, env *Env) error {
	key, err := env.authenticate(ctx)
	if err != nil {
		return err
	}
	pet, err := env.firstOwnPet(ctx, key)
	if err != nil {
		return err
	}

	status, err := env.Client.DeletePet(ctx, key, pet.ID)
	if err != nil {
		return err
	}
	if err := expectStatus("delete pet", status, http.StatusOK); err != nil {
		return err
	}
	if err := env.forgetDeleted(pet.ID); err != nil {
		return err
	}

	pets, err := env.listPets(ctx, key, petfriends.FilterMyPets)
	if err != nil {
		return err
	}
	if _, ok := findPet(pets, pet.ID); ok {
		return failf("delete pet: pet %s still listed after delete", pet.ID)
	}
	return nil
}

func setPhotoOwnPet(ctx context.Context, env *Env) error {
	key, err := env.authenticate(ctx)
	if err != nil {
		return err
	}
	pet, err := env.firstOwnPet(ctx, key)
	if err != nil {
		return err
	}

	res, err := env.Client.SetPetPhoto(ctx, key, pet.ID, env.Images.AltJPEG)
	if err != nil {
		return err
	}
	if err := expectResult("set pet photo", res, http.StatusOK); err != nil {
		return err
	}
	got, err := res.Pet()
	if err != nil {
		return failf("set pet photo: %v", err)
	}
	if got.ID != pet.ID {
		return failf("set pet photo: expected id %s, got %s", pet.ID, got.ID)
	}
	if got.PetPhoto == "" {
		return failf("set pet photo: pet_photo is empty")
	}
	return nil
}

func expectName(op string, res petfriends.Result, want string) error {
	pet, err := res.Pet()
	if err != nil {
		return failf("%s: %v", op, err)
	}
	if pet.Name != want {
		return failf("%s: expected name %q, got %q", op, want, pet.Name)
	}
	return nil
}

func petIDs(pets []petfriends.Pet) []string {
	ids := make([]string, len(pets))
	for i, p := range pets {
		ids[i] = p.ID
	}
	return ids
}
