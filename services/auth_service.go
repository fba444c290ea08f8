package services

import (
	"context"
	"errors"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"hotel-nepal/models"
	"hotel-nepal/store"
	"hotel-nepal/utils"
	"hotel-nepal/validation"
)

const passwordHashCost = 10

type RegisterRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Phone     string `json:"phone"`
}

// names prefers first_name/last_name and splits a single "name" otherwise.
func (r RegisterRequest) names() (first, last string) {
	first, last = strings.TrimSpace(r.FirstName), strings.TrimSpace(r.LastName)
	if first != "" {
		return first, last
	}
	parts := strings.Fields(r.Name)
	if len(parts) == 0 {
		return "", last
	}
	if last == "" {
		last = strings.Join(parts[1:], " ")
	}
	return parts[0], last
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ProfileUpdateRequest changes only the fields that are present.
type ProfileUpdateRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Phone     *string `json:"phone"`
	Password  *string `json:"password"`
}

type AuthService struct {
	users  store.UserRepository
	tokens *utils.TokenManager
	policy validation.PasswordPolicy

	// compared against when the account does not exist, so both login
	// failures cost one bcrypt comparison
	dummyHash func() []byte
}

func NewAuthService(users store.UserRepository, tokens *utils.TokenManager, policy validation.PasswordPolicy) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
		policy: policy,
		dummyHash: sync.OnceValue(func() []byte {
			h, _ := bcrypt.GenerateFromPassword([]byte("hotel-nepal-placeholder"), passwordHashCost)
			return h
		}),
	}
}

func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (models.PublicUser, error) {
	first, last := req.names()
	if verr := validation.Registration(validation.RegistrationInput{
		FirstName: first, Email: req.Email, Password: req.Password, Phone: req.Phone,
	}, s.policy); verr != nil {
		return models.PublicUser{}, verr
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return models.PublicUser{}, ErrEmailTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return models.PublicUser{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), passwordHashCost)
	if err != nil {
		return models.PublicUser{}, err
	}

	u := models.User{
		FirstName: first,
		LastName:  last,
		Email:     email,
		Password:  string(hash),
		Phone:     strings.TrimSpace(req.Phone),
	}
	if err := s.users.Create(ctx, &u); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return models.PublicUser{}, ErrEmailTaken
		}
		return models.PublicUser{}, err
	}
	return u.Public(), nil
}

// Login answers ErrInvalidCredentials for an unknown email and for a wrong
// password alike.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (string, models.PublicUser, error) {
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return "", models.PublicUser{}, &validation.Error{Status: 400, Message: "Email and password are required"}
	}

	u, err := s.users.FindByEmail(ctx, req.Email)
	if errors.Is(err, store.ErrNotFound) {
		_ = bcrypt.CompareHashAndPassword(s.dummyHash(), []byte(req.Password))
		return "", models.PublicUser{}, ErrInvalidCredentials
	}
	if err != nil {
		return "", models.PublicUser{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.Password)); err != nil {
		return "", models.PublicUser{}, ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(u.ID, u.Email)
	if err != nil {
		return "", models.PublicUser{}, err
	}
	return token, u.Public(), nil
}

func (s *AuthService) Profile(ctx context.Context, userID uint) (models.PublicUser, error) {
	u, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return models.PublicUser{}, ErrUserNotFound
	}
	if err != nil {
		return models.PublicUser{}, err
	}
	return u.Public(), nil
}

func (s *AuthService) ListUsers(ctx context.Context) ([]models.PublicUser, error) {
	users, err := s.users.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.PublicUser, 0, len(users))
	for _, u := range users {
		out = append(out, u.Public())
	}
	return out, nil
}

func (s *AuthService) UpdateProfile(ctx context.Context, userID uint, req ProfileUpdateRequest) (models.PublicUser, error) {
	if verr := validation.ProfilePatch(req.FirstName, req.Phone, req.Password, s.policy); verr != nil {
		return models.PublicUser{}, verr
	}

	var u models.UserUpdate
	if req.FirstName != nil {
		first := strings.TrimSpace(*req.FirstName)
		u.FirstName = &first
	}
	if req.LastName != nil {
		last := strings.TrimSpace(*req.LastName)
		u.LastName = &last
	}
	if req.Phone != nil {
		phone := strings.TrimSpace(*req.Phone)
		u.Phone = &phone
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), passwordHashCost)
		if err != nil {
			return models.PublicUser{}, err
		}
		pw := string(hash)
		u.Password = &pw
	}

	updated, err := s.users.Update(ctx, userID, u)
	if errors.Is(err, store.ErrNotFound) {
		return models.PublicUser{}, ErrUserNotFound
	}
	if err != nil {
		return models.PublicUser{}, err
	}
	return updated.Public(), nil
}

func (s *AuthService) DeleteUser(ctx context.Context, id uint) (models.PublicUser, error) {
	u, err := s.users.Delete(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return models.PublicUser{}, ErrUserNotFound
	}
	if err != nil {
		return models.PublicUser{}, err
	}
	return u.Public(), nil
}
