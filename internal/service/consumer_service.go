package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"makementors-be/internal/constant"
	"makementors-be/internal/dto"
	"makementors-be/internal/repository/specification"
	"makementors-be/internal/repository/unitofwork"
	"makementors-be/pkg/llm"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService is the auto-titling worker: it renames freshly created
// sessions from their first exchange so the sidebar never shows a wall
// of "New conversation" entries.
type consumerService struct {
	pubSub     *gochannel.GoChannel
	topicName  string
	uowFactory unitofwork.RepositoryFactory
	provider   llm.LLMProvider
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	provider llm.LLMProvider,
) IConsumerService {
	return &consumerService{
		pubSub:     pubSub,
		topicName:  topicName,
		uowFactory: uowFactory,
		provider:   provider,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.ChatCompletedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal chat completed message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.ChatSessionRepository().FindOne(ctx, specification.ByID{ID: payload.ChatSessionId})
	if err != nil {
		log.Printf("[ERROR] Failed to get session %s: %v", payload.ChatSessionId, err)
		msg.Nack() // Nack for retriable errors
		return
	}
	if session == nil {
		log.Printf("[WARN] Session not found, skipping titling: %s", payload.ChatSessionId)
		msg.Ack() // Session deleted? Ack.
		return
	}
	if session.Title != constant.DefaultSessionTitle {
		// Already titled, either by a previous run or by the user.
		msg.Ack()
		return
	}

	prompt := fmt.Sprintf(constant.SessionTitlePrompt, payload.UserText, payload.AssistantText)
	title, err := cs.provider.Generate(ctx, prompt)
	if err != nil {
		log.Printf("[ERROR] Failed to generate title for session %s: %v", payload.ChatSessionId, err)
		msg.Nack()
		return
	}

	title = sanitizeTitle(title)
	if title == "" {
		log.Printf("[WARN] Empty title generated for session %s, keeping default", payload.ChatSessionId)
		msg.Ack()
		return
	}

	session.Title = title
	if err := uow.ChatSessionRepository().Update(ctx, session); err != nil {
		log.Printf("[ERROR] Failed to save title for session %s: %v", payload.ChatSessionId, err)
		msg.Nack()
		return
	}

	log.Printf("[SUCCESS] Session %s titled: %q", payload.ChatSessionId, title)
	msg.Ack()
}

// sanitizeTitle trims quotes and whitespace the model likes to add and
// caps the length so the sidebar stays readable.
func sanitizeTitle(raw string) string {
	title := strings.TrimSpace(raw)
	title = strings.Trim(title, `"'`)
	title = strings.ReplaceAll(title, "\n", " ")
	if len(title) > 120 {
		title = title[:120]
	}
	return strings.TrimSpace(title)
}
