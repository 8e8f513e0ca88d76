package service

import (
	"context"
	"errors"

	"makementors-be/internal/dto"
	"makementors-be/internal/entity"
	"makementors-be/internal/repository/specification"
	"makementors-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IUserService interface {
	GetProfile(ctx context.Context, userId uuid.UUID) (*dto.UserProfileResponse, error)
	UpdateProfile(ctx context.Context, userId uuid.UUID, req *dto.UpdateProfileRequest) error
	UpdatePreferences(ctx context.Context, userId uuid.UUID, req *dto.UpdatePreferencesRequest) error
	GetSubscriptionStatus(ctx context.Context, userId uuid.UUID) (*dto.SubscriptionStatusResponse, error)
}

type userService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewUserService(uowFactory unitofwork.RepositoryFactory) IUserService {
	return &userService{
		uowFactory: uowFactory,
	}
}

func (s *userService) GetProfile(ctx context.Context, userId uuid.UUID) (*dto.UserProfileResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("user not found")
	}

	res := &dto.UserProfileResponse{
		Id:        user.Id,
		Email:     user.Email,
		FullName:  user.FullName,
		Role:      string(user.Role),
		Status:    string(user.Status),
		CreatedAt: user.CreatedAt,
	}
	if user.Preferences != nil {
		res.Preferences = &dto.ChatPreferencesDTO{
			Name:            user.Preferences.Name,
			Goal:            user.Preferences.Goal,
			ExperienceLevel: user.Preferences.ExperienceLevel,
		}
	}
	return res, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userId uuid.UUID, req *dto.UpdateProfileRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return err
	}
	if user == nil {
		return errors.New("user not found")
	}

	user.FullName = req.FullName
	if req.Email != "" && req.Email != user.Email {
		existing, _ := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
		if existing != nil {
			return errors.New("email already in use")
		}
		user.Email = req.Email
	}

	return uow.UserRepository().Update(ctx, user)
}

func (s *userService) UpdatePreferences(ctx context.Context, userId uuid.UUID, req *dto.UpdatePreferencesRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	prefs := &entity.ChatPreferences{
		Name:            req.Name,
		Goal:            req.Goal,
		ExperienceLevel: req.ExperienceLevel,
	}
	return uow.UserRepository().UpdatePreferences(ctx, userId, prefs)
}

func (s *userService) GetSubscriptionStatus(ctx context.Context, userId uuid.UUID) (*dto.SubscriptionStatusResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	sub, err := uow.SubscriberRepository().FindOne(ctx, specification.UserOwnedBy{UserID: userId})
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return &dto.SubscriptionStatusResponse{
			Subscribed:       false,
			SubscriptionTier: string(entity.SubscriptionTierFree),
		}, nil
	}

	return &dto.SubscriptionStatusResponse{
		Subscribed:       sub.Subscribed,
		SubscriptionTier: string(sub.SubscriptionTier),
		SubscriptionEnd:  sub.SubscriptionEnd,
	}, nil
}
