package unitofwork

import (
	"context"

	"makementors-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	MentorTemplateRepository() contract.MentorTemplateRepository
	MentorRepository() contract.MentorRepository
	ChatSessionRepository() contract.ChatSessionRepository
	ChatMessageRepository() contract.ChatMessageRepository
	SubscriberRepository() contract.SubscriberRepository
}
