package services

import (
	"blogicum/internal/db"
	"blogicum/internal/models"
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

type RegistrationInput struct {
	Username string
	Email    string
	Password string
}

type ProfileInput struct {
	FirstName string
	LastName  string
	Username  string
	Email     string
}

type UserService struct {
	repo db.Repository
	cost int
}

func NewUserService(repo db.Repository) *UserService {
	return &UserService{repo: repo, cost: bcrypt.DefaultCost}
}

// HashPassword returns the bcrypt hash of password.
func HashPassword(password string, cost int) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	return string(bytes), err
}

// CheckPasswordHash reports whether password matches hash.
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

func (s *UserService) UserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.repo.UserByID(ctx, id)
}

// UsernameTaken reports whether username belongs to a user other than exceptID.
func (s *UserService) UsernameTaken(ctx context.Context, username string, exceptID uint) (bool, error) {
	return s.repo.UsernameTaken(ctx, username, exceptID)
}

func (s *UserService) Register(ctx context.Context, in RegistrationInput) (*models.User, error) {
	hash, err := HashPassword(in.Password, s.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, ErrPasswordTooLong
	}
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := &models.User{
		Username: in.Username,
		Email:    in.Email,
		Password: hash,
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, db.ErrDuplicate) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.repo.UserByUsername(ctx, username)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !CheckPasswordHash(password, user.Password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// UpdateProfile rewrites the user's names, username and email.
func (s *UserService) UpdateProfile(ctx context.Context, userID uint, in ProfileInput) (*models.User, error) {
	var updated *models.User
	err := s.repo.Transaction(ctx, func(tx db.Repository) error {
		user, err := tx.UserByID(ctx, userID)
		if err != nil {
			return err
		}
		taken, err := tx.UsernameTaken(ctx, in.Username, user.ID)
		if err != nil {
			return err
		}
		if taken {
			return ErrUsernameTaken
		}
		user.FirstName = in.FirstName
		user.LastName = in.LastName
		user.Username = in.Username
		user.Email = in.Email
		if err := tx.SaveUser(ctx, user); err != nil {
			if errors.Is(err, db.ErrDuplicate) {
				return ErrUsernameTaken
			}
			return fmt.Errorf("save user: %w", err)
		}
		updated = user
		return nil
	})
	return updated, err
}

// DeleteUser removes the user with their posts and comments.
func (s *UserService) DeleteUser(ctx context.Context, username string) error {
	user, err := s.repo.UserByUsername(ctx, username)
	if err != nil {
		return err
	}
	return s.repo.DeleteUser(ctx, user.ID)
}
