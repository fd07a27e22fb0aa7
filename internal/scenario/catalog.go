package scenario

// All returns every scenario in run order: positive checks first, then negative ones.
func All() []Scenario {
	return []Scenario{
		{ID: "auth-valid-key", Kind: Positive, Description: "valid credentials return 200 and a key", Run: authValidKey},
		{ID: "list-my-pets", Kind: Positive, Description: "my_pets listing returns 200 and at least one pet", Run: listMyPets},
		{ID: "list-all-stable", Kind: Positive, Description: "two unfiltered listings return the same ids", Run: listAllStable},
		{ID: "create-with-photo", Kind: Positive, Description: "creating a pet with a JPEG photo echoes its name", Run: createWithPhoto},
		{ID: "create-simple", Kind: Positive, Description: "creating a pet without photo echoes its name", Run: createSimple},
		{ID: "update-own-pet", Kind: Positive, Description: "updating the first own pet stores the sent fields", Run: updateOwnPet},
		{ID: "set-photo-own-pet", Kind: Positive, Description: "replacing the photo of the first own pet returns it with a photo", Run: setPhotoOwnPet},
		{ID: "delete-own-pet", Kind: Positive, Description: "deleting the first own pet removes it from my_pets", Run: deleteOwnPet},

		{ID: "auth-invalid-password", Kind: Negative, Description: "an invalid password returns 403", Run: authInvalidPassword},
		{ID: "list-invalid-key", Kind: Negative, Description: "listing with an unknown key returns 403", Run: listInvalidKey},
		{ID: "create-simple-invalid-key", Kind: Negative, Description: "creating with an unknown key returns 403", Run: createSimpleInvalidKey},
		{ID: "create-simple-empty-fields", Kind: Negative, Description: "creating with empty fields returns 400", Run: createSimpleEmptyFields},
		{ID: "create-simple-negative-age", Kind: Negative, Description: "creating with a negative age returns 400", Run: createSimpleNegativeAge},
		{ID: "delete-invalid-key", Kind: Negative, Description: "deleting an own pet with an unknown key returns 403", Run: deleteWithInvalidKey},
		{ID: "delete-foreign-pet", Kind: Negative, Description: "deleting another user's pet returns 403", Run: deleteForeignPet},
		{ID: "update-foreign-pet", Kind: Negative, Description: "updating another user's pet returns 403 and changes nothing", Run: updateForeignPet},
		{ID: "set-photo-foreign-pet", Kind: Negative, Description: "replacing another user's pet photo is rejected", Run: setPhotoForeignPet},
		{ID: "create-with-gif-photo", Kind: Negative, Description: "creating a pet with a GIF photo is rejected", Run: createWithGIFPhoto},
	}
}
