// Package petstub is an in-memory stand-in for the PetFriends service. It implements the
// same seven endpoints, answers errors with HTML text the way the real service does, and
// lets tests seed users and pets instead of relying on shared live data.
package petstub

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// DefaultPageSize is how many pets an unfiltered listing returns.
const DefaultPageSize = 100

// Pet is the stored and wire form of a pet record.
type Pet struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	AnimalType string `json:"animal_type"`
	Age        string `json:"age"`
	PetPhoto   string `json:"pet_photo"`
	UserID     string `json:"user_id"`
	CreatedAt  string `json:"created_at"`
}

type user struct {
	id       string
	email    string
	password string
	key      string
}

// Server holds users and pets, newest pet first.
type Server struct {
	mu       sync.Mutex
	byEmail  map[string]*user
	byKey    map[string]*user
	pets     []*Pet
	pageSize int
	router   chi.Router
}

// New returns an empty server with the default page size.
func New() *Server {
	s := &Server{
		byEmail:  make(map[string]*user),
		byKey:    make(map[string]*user),
		pageSize: DefaultPageSize,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/key", s.handleKey)

		r.Group(func(r chi.Router) {
			r.Use(s.requireKey)
			r.Get("/pets", s.handleList)
			r.Post("/pets", s.handleCreateWithPhoto)
			r.Post("/create_pet_simple", s.handleCreateSimple)
			r.Put("/pets/{petID}", s.handleUpdate)
			r.Delete("/pets/{petID}", s.handleDelete)
			r.Post("/pets/set_photo/{petID}", s.handleSetPhoto)
		})
	})
	return r
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// SetPageSize changes how many pets an unfiltered listing returns.
func (s *Server) SetPageSize(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n > 0 {
		s.pageSize = n
	}
}

// AddUser registers an account and returns its auth key.
func (s *Server) AddUser(email, password string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := &user{
		id:       uuid.NewString(),
		email:    email,
		password: password,
		key:      strings.ReplaceAll(uuid.NewString(), "-", ""),
	}
	if old, ok := s.byEmail[email]; ok {
		delete(s.byKey, old.key)
	}
	s.byEmail[email] = u
	s.byKey[u.key] = u
	return u.key
}

// SeedPet stores a pet owned by email without a photo.
func (s *Server) SeedPet(email, name, animalType, age string) (Pet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	owner, ok := s.byEmail[email]
	if !ok {
		return Pet{}, fmt.Errorf("unknown user %q", email)
	}
	return *s.insertLocked(owner, name, animalType, age, ""), nil
}

// PetByID returns a copy of the stored pet.
func (s *Server) PetByID(id string) (Pet, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p := s.findLocked(id); p != nil {
		return *p, true
	}
	return Pet{}, false
}

// PetsOf returns copies of the pets owned by email, newest first.
func (s *Server) PetsOf(email string) []Pet {
	s.mu.Lock()
	defer s.mu.Unlock()

	owner, ok := s.byEmail[email]
	if !ok {
		return nil
	}
	return s.ownedLocked(owner)
}

func (s *Server) insertLocked(owner *user, name, animalType, age, photo string) *Pet {
	p := &Pet{
		ID:         uuid.NewString(),
		Name:       name,
		AnimalType: animalType,
		Age:        strings.TrimSpace(age),
		PetPhoto:   photo,
		UserID:     owner.id,
		CreatedAt:  strconv.FormatFloat(float64(time.Now().UnixMicro())/1e6, 'f', 6, 64),
	}
	s.pets = append([]*Pet{p}, s.pets...)
	return p
}

func (s *Server) findLocked(id string) *Pet {
	for _, p := range s.pets {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (s *Server) removeLocked(id string) {
	for i, p := range s.pets {
		if p.ID == id {
			s.pets = append(s.pets[:i], s.pets[i+1:]...)
			return
		}
	}
}

func (s *Server) ownedLocked(owner *user) []Pet {
	out := make([]Pet, 0)
	for _, p := range s.pets {
		if p.UserID == owner.id {
			out = append(out, *p)
		}
	}
	return out
}

type ctxKey struct{}

func (s *Server) requireKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get("auth_key")

		s.mu.Lock()
		u, ok := s.byKey[key]
		s.mu.Unlock()

		if key == "" || !ok {
			writeText(w, http.StatusForbidden, "Please provide 'auth_key' Header")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, u)))
	})
}

func userFrom(ctx context.Context) *user {
	u, _ := ctx.Value(ctxKey{}).(*user)
	return u
}

var (
	errNameRequired = errors.New("name is required")
	errTypeRequired = errors.New("animal_type is required")
	errAgeInvalid   = errors.New("age must be a number")
	errAgeNegative  = errors.New("age must not be negative")
)

func validatePet(name, animalType, age string) error {
	if strings.TrimSpace(name) == "" {
		return errNameRequired
	}
	if strings.TrimSpace(animalType) == "" {
		return errTypeRequired
	}
	n, err := strconv.Atoi(strings.TrimSpace(age))
	if err != nil {
		return errAgeInvalid
	}
	if n < 0 {
		return errAgeNegative
	}
	return nil
}
