package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Dosada05/cricket-system/models"
	"github.com/Dosada05/cricket-system/repositories"
	"github.com/Dosada05/cricket-system/storage"
)

type UserService interface {
	GetProfile(ctx context.Context, userID int) (*models.User, error)
	UpdateProfile(ctx context.Context, userID int, input UpdateProfileInput) (*models.User, error)
	UploadProfilePhoto(ctx context.Context, userID int, contentType string, content io.Reader) (*models.User, error)
	DeleteAccount(ctx context.Context, userID int) error
	List(ctx context.Context) ([]*models.User, error)
}

type UpdateProfileInput struct {
	FullName    *string            `json:"full_name,omitempty"`
	Age         *int               `json:"age,omitempty"`
	Nationality *string            `json:"nationality,omitempty"`
	PlayerRole  *models.PlayerRole `json:"player_role,omitempty"`
}

type userService struct {
	userRepo repositories.UserRepository
	uploader storage.FileUploader
}

func NewUserService(userRepo repositories.UserRepository, uploader storage.FileUploader) UserService {
	return &userService{
		userRepo: userRepo,
		uploader: uploader,
	}
}

func (s *userService) GetProfile(ctx context.Context, userID int) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user %d: %w", userID, err)
	}
	populateUserPhotoURL(user, s.uploader)
	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID int, input UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user %d: %w", userID, err)
	}

	if input.FullName != nil {
		user.FullName = strings.TrimSpace(*input.FullName)
	}
	if input.Age != nil {
		if *input.Age < minPlayerAge || *input.Age > maxPlayerAge {
			return nil, ErrInvalidAge
		}
		user.Age = input.Age
	}
	if input.Nationality != nil {
		user.Nationality = input.Nationality
	}
	if input.PlayerRole != nil {
		if !input.PlayerRole.Valid() {
			return nil, ErrInvalidPlayerRole
		}
		user.PlayerRole = *input.PlayerRole
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update user %d: %w", userID, err)
	}

	populateUserPhotoURL(user, s.uploader)
	return user, nil
}

func (s *userService) UploadProfilePhoto(ctx context.Context, userID int, contentType string, content io.Reader) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user %d: %w", userID, err)
	}
	if s.uploader == nil {
		return nil, errors.New("file storage is not configured")
	}

	ext, err := extensionFromContentType(contentType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}

	oldKey := user.PhotoKey
	key := fmt.Sprintf("users/%d/photo%s", userID, ext)

	if _, err := s.uploader.Upload(ctx, key, contentType, content); err != nil {
		return nil, fmt.Errorf("failed to upload profile photo: %w", err)
	}
	if err := s.userRepo.UpdatePhotoKey(ctx, userID, &key); err != nil {
		return nil, fmt.Errorf("failed to persist photo key: %w", err)
	}

	// Старый объект со сменившимся расширением больше недостижим — удаляем.
	if oldKey != nil && *oldKey != "" && *oldKey != key {
		_ = s.uploader.Delete(ctx, *oldKey)
	}

	user.PhotoKey = &key
	populateUserPhotoURL(user, s.uploader)
	return user, nil
}

func (s *userService) DeleteAccount(ctx context.Context, userID int) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to load user %d: %w", userID, err)
	}

	if err := s.userRepo.Delete(ctx, userID); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user %d: %w", userID, err)
	}

	if user.PhotoKey != nil && *user.PhotoKey != "" && s.uploader != nil {
		_ = s.uploader.Delete(ctx, *user.PhotoKey)
	}
	return nil
}

func (s *userService) List(ctx context.Context) ([]*models.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	for _, u := range users {
		populateUserPhotoURL(u, s.uploader)
	}
	return users, nil
}

func extensionFromContentType(contentType string) (string, error) {
	switch contentType {
	case "image/jpeg", "image/jpg":
		return ".jpg", nil
	case "image/png":
		return ".png", nil
	case "image/webp":
		return ".webp", nil
	default:
		return "", fmt.Errorf("unsupported image content type %q", contentType)
	}
}
