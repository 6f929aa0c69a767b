package service

import (
	"errors"
	"net/mail"

	"github.com/google/uuid"
	"github.com/rohits-web03/blogd/internal/auth"
	"github.com/rohits-web03/blogd/internal/models"
	"github.com/rohits-web03/blogd/internal/repositories"
	"gorm.io/gorm"
)

// AuthService registers users, checks credentials, and issues tokens.
type AuthService struct {
	users  *repositories.UserRepository
	tokens *auth.TokenManager
}

func NewAuthService(users *repositories.UserRepository, tokens *auth.TokenManager) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// UserResponse is the caller-facing shape of a user. The password hash
// never leaves the service layer.
type UserResponse struct {
	ID     string   `json:"_id"`
	Email  string   `json:"email"`
	Name   string   `json:"name"`
	Status string   `json:"status"`
	Posts  []string `json:"posts"`
}

// LoginResult is what a successful authentication returns.
type LoginResult struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
}

// Register creates a new user. It collects every violated field before
// failing, and rejects an already-registered email with a conflict.
func (s *AuthService) Register(email, name, password string) (*UserResponse, error) {
	var fields []string
	if _, err := mail.ParseAddress(email); err != nil {
		fields = append(fields, "email is invalid")
	}
	if len(password) < 8 {
		fields = append(fields, "invalid password")
	}
	if len(fields) > 0 {
		return nil, errValidation("invalid input", fields...)
	}

	_, err := s.users.ByEmail(email)
	switch {
	case err == nil:
		return nil, errConflict("user exists already")
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:    email,
		Name:     name,
		Password: hash,
	}
	if err := s.users.Create(user); err != nil {
		return nil, err
	}
	return userResponse(user), nil
}

// Login verifies the credentials and issues a 1-hour token binding the
// user id and email.
func (s *AuthService) Login(email, password string) (*LoginResult, error) {
	user, err := s.users.ByEmail(email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errNotFound("user not found")
	}
	if err != nil {
		return nil, err
	}

	if !auth.CheckPassword(user.Password, password) {
		return nil, errAuth()
	}

	token, err := s.tokens.Issue(user.ID.String(), user.Email)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, UserID: user.ID.String()}, nil
}

// LoginWithGoogle signs a user in through a verified Google identity,
// creating the account on first sight. Google-backed accounts carry no
// usable password hash.
func (s *AuthService) LoginWithGoogle(email, name string) (*LoginResult, error) {
	user, err := s.users.ByEmail(email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = &models.User{
			Email:    email,
			Name:     name,
			Password: "",
		}
		if err := s.users.Create(user); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(user.ID.String(), user.Email)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, UserID: user.ID.String()}, nil
}

// CurrentUser returns the caller's own profile with their post references.
func (s *AuthService) CurrentUser(userID string) (*UserResponse, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, errNotFound("user not found")
	}
	user, err := s.users.ByIDWithPosts(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errNotFound("user not found")
	}
	if err != nil {
		return nil, err
	}
	return userResponse(user), nil
}

// UpdateStatus replaces the caller's status text.
func (s *AuthService) UpdateStatus(userID, status string) (*UserResponse, error) {
	user, err := s.loadUser(userID)
	if err != nil {
		return nil, err
	}

	user.Status = status
	if err := s.users.Save(user); err != nil {
		return nil, err
	}
	return userResponse(user), nil
}

func (s *AuthService) loadUser(userID string) (*models.User, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, errNotFound("user not found")
	}
	user, err := s.users.ByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errNotFound("user not found")
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func userResponse(user *models.User) *UserResponse {
	posts := make([]string, 0, len(user.Posts))
	for _, p := range user.Posts {
		posts = append(posts, p.ID.String())
	}
	return &UserResponse{
		ID:     user.ID.String(),
		Email:  user.Email,
		Name:   user.Name,
		Status: user.Status,
		Posts:  posts,
	}
}
