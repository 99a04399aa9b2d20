package service

import (
	"errors"
	"fmt"

	"forumhub/internal/http-api/dto"
	"forumhub/internal/http-api/repository"

	"gorm.io/gorm"
)

type UserService interface {
	GetProfile(userID string) (*dto.UserProfileResponse, error)
	UpdateProfile(userID, requesterID string, req dto.UpdateProfileRequest) (*dto.UserProfileResponse, error)
	Delete(userID, requesterID string) error
	List(requesterID string) ([]dto.UserProfileResponse, error)
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) GetProfile(userID string) (*dto.UserProfileResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %s: %w", userID, ErrNotFound)
		}
		return nil, err
	}
	return dto.FromModelToUserProfile(user), nil
}

// UpdateProfile applies a partial profile update. Only the account
// owner or a superuser may touch a profile.
func (s *userService) UpdateProfile(userID, requesterID string, req dto.UpdateProfileRequest) (*dto.UserProfileResponse, error) {
	if err := s.requireSelfOrSuperuser(userID, requesterID); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %s: %w", userID, ErrNotFound)
		}
		return nil, err
	}

	if req.Avatar != nil {
		user.Avatar = *req.Avatar
	}
	if req.College != nil {
		user.College = *req.College
	}
	if req.Major != nil {
		user.Major = *req.Major
	}
	if req.Address != nil {
		user.Address = *req.Address
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.BirthDate != nil {
		user.BirthDate = req.BirthDate
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return dto.FromModelToUserProfile(user), nil
}

func (s *userService) Delete(userID, requesterID string) error {
	if err := s.requireSelfOrSuperuser(userID, requesterID); err != nil {
		return err
	}
	if _, err := s.userRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("user %s: %w", userID, ErrNotFound)
		}
		return err
	}
	return s.userRepo.Delete(userID)
}

// List is a staff-only directory of every account.
func (s *userService) List(requesterID string) ([]dto.UserProfileResponse, error) {
	requester, err := s.userRepo.FindByID(requesterID)
	if err != nil {
		return nil, err
	}
	if !requester.IsSuperuser && !requester.IsStaff {
		return nil, ErrForbidden
	}

	users, err := s.userRepo.List()
	if err != nil {
		return nil, err
	}
	profiles := make([]dto.UserProfileResponse, 0, len(users))
	for i := range users {
		profiles = append(profiles, *dto.FromModelToUserProfile(&users[i]))
	}
	return profiles, nil
}

func (s *userService) requireSelfOrSuperuser(userID, requesterID string) error {
	if userID == requesterID {
		return nil
	}
	requester, err := s.userRepo.FindByID(requesterID)
	if err != nil {
		return err
	}
	if !requester.IsSuperuser {
		return ErrForbidden
	}
	return nil
}
