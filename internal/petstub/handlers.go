package petstub

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-chi/chi/v5"
)

const (
	maxUploadBytes = 10 << 20
	filterMyPets   = "my_pets"
)

var acceptedPhotoTypes = []string{"image/jpeg", "image/png"}

func (s *Server) handleKey(w http.ResponseWriter, r *http.Request) {
	email := r.Header.Get("email")
	password := r.Header.Get("password")

	s.mu.Lock()
	u, ok := s.byEmail[email]
	s.mu.Unlock()

	if !ok || email == "" || u.password != password {
		writeText(w, http.StatusForbidden, "This user wasn't found in database")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"key": u.key})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	u := userFrom(r.Context())
	filter := r.URL.Query().Get("filter")

	s.mu.Lock()
	defer s.mu.Unlock()

	var pets []Pet
	switch filter {
	case "":
		pets = make([]Pet, 0, s.pageSize)
		for i, p := range s.pets {
			if i == s.pageSize {
				break
			}
			pets = append(pets, *p)
		}
	case filterMyPets:
		pets = s.ownedLocked(u)
	default:
		writeText(w, http.StatusBadRequest, "Filter value is incorrect")
		return
	}
	writeJSON(w, http.StatusOK, map[string][]Pet{"pets": pets})
}

func (s *Server) handleCreateSimple(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeText(w, http.StatusBadRequest, "Malformed form data")
		return
	}
	name, animalType, age := r.PostForm.Get("name"), r.PostForm.Get("animal_type"), r.PostForm.Get("age")
	if err := validatePet(name, animalType, age); err != nil {
		writeText(w, http.StatusBadRequest, err.Error())
		return
	}

	u := userFrom(r.Context())
	s.mu.Lock()
	pet := *s.insertLocked(u, name, animalType, age, "")
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, pet)
}

func (s *Server) handleCreateWithPhoto(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeText(w, http.StatusBadRequest, "Malformed multipart data")
		return
	}
	name, animalType, age := r.FormValue("name"), r.FormValue("animal_type"), r.FormValue("age")
	if err := validatePet(name, animalType, age); err != nil {
		writeText(w, http.StatusBadRequest, err.Error())
		return
	}
	photo, err := readPhoto(r)
	if err != nil {
		writeText(w, http.StatusBadRequest, err.Error())
		return
	}

	u := userFrom(r.Context())
	s.mu.Lock()
	pet := *s.insertLocked(u, name, animalType, age, photo)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, pet)
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeText(w, http.StatusBadRequest, "Malformed form data")
		return
	}
	u := userFrom(r.Context())
	id := chi.URLParam(r, "petID")

	s.mu.Lock()
	defer s.mu.Unlock()

	pet := s.findLocked(id)
	if pet == nil {
		writeText(w, http.StatusBadRequest, "Pet with this id wasn't found")
		return
	}
	if pet.UserID != u.id {
		writeText(w, http.StatusForbidden, "This pet belongs to another user")
		return
	}
	name, animalType, age := r.PostForm.Get("name"), r.PostForm.Get("animal_type"), r.PostForm.Get("age")
	if err := validatePet(name, animalType, age); err != nil {
		writeText(w, http.StatusBadRequest, err.Error())
		return
	}
	pet.Name, pet.AnimalType, pet.Age = name, animalType, age

	writeJSON(w, http.StatusOK, *pet)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	u := userFrom(r.Context())
	id := chi.URLParam(r, "petID")

	s.mu.Lock()
	defer s.mu.Unlock()

	pet := s.findLocked(id)
	if pet == nil {
		writeText(w, http.StatusBadRequest, "Pet with this id wasn't found")
		return
	}
	if pet.UserID != u.id {
		writeText(w, http.StatusForbidden, "This pet belongs to another user")
		return
	}
	s.removeLocked(id)
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleSetPhoto(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeText(w, http.StatusBadRequest, "Malformed multipart data")
		return
	}
	u := userFrom(r.Context())
	id := chi.URLParam(r, "petID")

	s.mu.Lock()
	defer s.mu.Unlock()

	pet := s.findLocked(id)
	if pet == nil {
		writeText(w, http.StatusBadRequest, "Pet with this id wasn't found")
		return
	}
	if pet.UserID != u.id {
		writeText(w, http.StatusForbidden, "This pet belongs to another user")
		return
	}
	photo, err := readPhoto(r)
	if err != nil {
		writeText(w, http.StatusBadRequest, err.Error())
		return
	}
	pet.PetPhoto = photo

	writeJSON(w, http.StatusOK, *pet)
}

// readPhoto sniffs the uploaded pet_photo and returns it as a data URI. The declared
// part content type is ignored.
func readPhoto(r *http.Request) (string, error) {
	file, _, err := r.FormFile("pet_photo")
	if err != nil {
		return "", errors.New("pet_photo is required")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("read pet_photo: %w", err)
	}
	mime := mimetype.Detect(data)
	for _, accepted := range acceptedPhotoTypes {
		if mime.Is(accepted) {
			return "data:" + accepted + ";base64," + base64.StdEncoding.EncodeToString(data), nil
		}
	}
	return "", fmt.Errorf("unsupported photo type %s", mime.String())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeText(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, "<p>"+msg+"</p>")
}
