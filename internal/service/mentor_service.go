package service

import (
	"context"
	"errors"
	"time"

	"makementors-be/internal/dto"
	"makementors-be/internal/entity"
	"makementors-be/internal/pkg/logger"
	"makementors-be/internal/repository/specification"
	"makementors-be/internal/repository/unitofwork"
	"makementors-be/pkg/persona"

	"github.com/google/uuid"
)

type IMentorService interface {
	GetTemplates(ctx context.Context, category string) ([]*dto.MentorTemplateResponse, error)
	GetTemplate(ctx context.Context, templateId string) (*dto.MentorTemplateResponse, error)
	CreateMentor(ctx context.Context, userId uuid.UUID, req *dto.CreateMentorRequest) (*dto.MentorResponse, error)
	GetMentors(ctx context.Context, userId uuid.UUID) ([]*dto.MentorResponse, error)
	GetMentor(ctx context.Context, userId, mentorId uuid.UUID) (*dto.MentorResponse, error)
	UpdateMentor(ctx context.Context, userId, mentorId uuid.UUID, req *dto.UpdateMentorRequest) (*dto.MentorResponse, error)
	DeleteMentor(ctx context.Context, userId, mentorId uuid.UUID) error
}

type mentorService struct {
	uowFactory unitofwork.RepositoryFactory
	resolver   *persona.Resolver
	logger     logger.ILogger
}

func NewMentorService(uowFactory unitofwork.RepositoryFactory, resolver *persona.Resolver, logger logger.ILogger) IMentorService {
	return &mentorService{
		uowFactory: uowFactory,
		resolver:   resolver,
		logger:     logger,
	}
}

func templateToResponse(t *entity.MentorTemplate) *dto.MentorTemplateResponse {
	return &dto.MentorTemplateResponse{
		TemplateId:  t.TemplateId,
		DisplayName: t.DisplayName,
		Category:    t.Category,
		Description: t.Description,
		Icon:        t.Icon,
	}
}

func mentorToResponse(m *entity.Mentor) *dto.MentorResponse {
	return &dto.MentorResponse{
		Id:          m.Id,
		Name:        m.Name,
		Description: m.Description,
		Color:       m.Color,
		Icon:        m.Icon,
		CreatedAt:   m.CreatedAt,
	}
}

func (s *mentorService) GetTemplates(ctx context.Context, category string) ([]*dto.MentorTemplateResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.OrderBy{Field: "display_name"},
	}
	if category != "" {
		specs = append(specs, specification.ByCategory{Category: category})
	}

	templates, err := uow.MentorTemplateRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.MentorTemplateResponse, len(templates))
	for i, t := range templates {
		res[i] = templateToResponse(t)
	}
	return res, nil
}

func (s *mentorService) GetTemplate(ctx context.Context, templateId string) (*dto.MentorTemplateResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	template, err := uow.MentorTemplateRepository().FindOne(ctx, specification.ByTemplateID{TemplateID: templateId})
	if err != nil {
		return nil, err
	}
	if template == nil {
		return nil, errors.New("template not found")
	}
	return templateToResponse(template), nil
}

func (s *mentorService) CreateMentor(ctx context.Context, userId uuid.UUID, req *dto.CreateMentorRequest) (*dto.MentorResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	mentor := &entity.Mentor{
		Id:           uuid.New(),
		OwnerUserId:  userId,
		Name:         req.Name,
		Description:  req.Description,
		Color:        req.Color,
		Icon:         req.Icon,
		SystemPrompt: persona.CustomSystemPrompt(req.Name, req.Description),
		CreatedAt:    time.Now(),
	}

	if err := uow.MentorRepository().Create(ctx, mentor); err != nil {
		return nil, err
	}

	s.logger.Info("MentorService", "Custom mentor created", map[string]interface{}{
		"mentor_id": mentor.Id,
		"user_id":   userId,
	})

	return mentorToResponse(mentor), nil
}

func (s *mentorService) GetMentors(ctx context.Context, userId uuid.UUID) ([]*dto.MentorResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	mentors, err := uow.MentorRepository().FindAll(ctx,
		specification.OwnedByUser{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.MentorResponse, len(mentors))
	for i, m := range mentors {
		res[i] = mentorToResponse(m)
	}
	return res, nil
}

func (s *mentorService) GetMentor(ctx context.Context, userId, mentorId uuid.UUID) (*dto.MentorResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	mentor, err := s.findOwnedMentor(ctx, uow, userId, mentorId)
	if err != nil {
		return nil, err
	}
	return mentorToResponse(mentor), nil
}

func (s *mentorService) findOwnedMentor(ctx context.Context, uow unitofwork.UnitOfWork, userId, mentorId uuid.UUID) (*entity.Mentor, error) {
	mentor, err := uow.MentorRepository().FindOne(ctx, specification.ByID{ID: mentorId})
	if err != nil {
		return nil, err
	}
	if mentor == nil || mentor.OwnerUserId != userId {
		return nil, errors.New("mentor not found")
	}
	return mentor, nil
}

func (s *mentorService) UpdateMentor(ctx context.Context, userId, mentorId uuid.UUID, req *dto.UpdateMentorRequest) (*dto.MentorResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	mentor, err := s.findOwnedMentor(ctx, uow, userId, mentorId)
	if err != nil {
		return nil, err
	}

	mentor.Name = req.Name
	mentor.Description = req.Description
	mentor.Color = req.Color
	mentor.Icon = req.Icon
	mentor.SystemPrompt = persona.CustomSystemPrompt(req.Name, req.Description)

	if err := uow.MentorRepository().Update(ctx, mentor); err != nil {
		return nil, err
	}

	return mentorToResponse(mentor), nil
}

func (s *mentorService) DeleteMentor(ctx context.Context, userId, mentorId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := s.findOwnedMentor(ctx, uow, userId, mentorId); err != nil {
		return err
	}

	return uow.MentorRepository().Delete(ctx, mentorId)
}
