package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"makementors-be/internal/constant"
	"makementors-be/internal/dto"
	"makementors-be/internal/entity"
	"makementors-be/internal/pkg/logger"
	"makementors-be/internal/repository/specification"
	"makementors-be/internal/repository/unitofwork"
	"makementors-be/pkg/llm"
	"makementors-be/pkg/persona"
	"makementors-be/pkg/relay"

	"github.com/google/uuid"
)

// degradedWarning tells the client its answer arrived but won't be
// saved, on both the streaming and buffered paths.
const degradedWarning = "conversation could not be saved"

// StreamPrep is everything a send needs, resolved up front so the HTTP
// layer can expose the session id in a response header before the body
// starts streaming. The mentor reference is parsed exactly once here;
// downstream code only ever sees the resolved persona.
type StreamPrep struct {
	Persona  persona.Persona
	History  []llm.Message
	UserId   *uuid.UUID
	UserText string

	SessionId uuid.UUID
	// HasSession is false for anonymous sends and for sends whose
	// session could not be resolved or created.
	HasSession bool
	// SessionErr records why HasSession is false when a session was
	// wanted; the relay turns it into degraded mode.
	SessionErr error
}

type IChatService interface {
	PrepareStream(ctx context.Context, userId *uuid.UUID, req *dto.StreamChatRequest) (*StreamPrep, error)
	StreamChat(ctx context.Context, prep *StreamPrep, emit func(chunk dto.StreamChunk) error) relay.Outcome
	Chat(ctx context.Context, prep *StreamPrep) (*dto.StreamChatResponse, error)

	CreateSession(ctx context.Context, userId uuid.UUID, req *dto.CreateSessionRequest) (*dto.CreateSessionResponse, error)
	GetAllSessions(ctx context.Context, userId uuid.UUID) ([]dto.GetAllSessionsResponse, error)
	GetChatHistory(ctx context.Context, userId uuid.UUID, chatSessionId uuid.UUID) ([]dto.GetChatHistoryResponse, error)
	RenameSession(ctx context.Context, userId uuid.UUID, req *dto.RenameSessionRequest) error
	DeleteSession(ctx context.Context, userId uuid.UUID, chatSessionId uuid.UUID) error
}

type chatService struct {
	uowFactory unitofwork.RepositoryFactory
	resolver   *persona.Resolver
	relay      *relay.Relay
	publisher  IPublisherService
	logger     logger.ILogger
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	resolver *persona.Resolver,
	relayer *relay.Relay,
	publisher IPublisherService,
	logger logger.ILogger,
) IChatService {
	return &chatService{
		uowFactory: uowFactory,
		resolver:   resolver,
		relay:      relayer,
		publisher:  publisher,
		logger:     logger,
	}
}

// PrepareStream resolves the persona, folds preferences into the system
// prompt, and resolves or lazily creates the chat session. It only
// returns an error for requests that cannot produce an answer at all;
// persistence problems are downgraded, never fatal.
func (s *chatService) PrepareStream(ctx context.Context, userId *uuid.UUID, req *dto.StreamChatRequest) (*StreamPrep, error) {
	if len(req.Messages) == 0 {
		return nil, errors.New("messages must not be empty")
	}

	ref := persona.ParseMentorRef(req.MentorId)
	p := s.resolver.Resolve(ctx, ref)

	prefs := s.effectivePreferences(ctx, userId, req.UserPreferences)
	history := buildHistory(p, prefs, req.Messages)

	prep := &StreamPrep{
		Persona:  p,
		History:  history,
		UserId:   userId,
		UserText: lastUserText(req.Messages),
	}

	s.resolveSession(ctx, prep, ref, req)
	return prep, nil
}

func (s *chatService) effectivePreferences(ctx context.Context, userId *uuid.UUID, override *dto.ChatPreferencesDTO) *entity.ChatPreferences {
	if override != nil {
		return &entity.ChatPreferences{
			Name:            override.Name,
			Goal:            override.Goal,
			ExperienceLevel: override.ExperienceLevel,
		}
	}
	if userId == nil {
		return nil
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: *userId})
	if err != nil || user == nil {
		return nil
	}
	return user.Preferences
}

// buildHistory prepends the persona system prompt and drops any system
// messages the client sent; the server owns the system turn.
func buildHistory(p persona.Persona, prefs *entity.ChatPreferences, messages []dto.ChatMessageDTO) []llm.Message {
	history := make([]llm.Message, 0, len(messages)+1)
	history = append(history, llm.Message{
		Role:    constant.ChatMessageRoleSystem,
		Content: persona.BuildSystemPrompt(p, prefs),
	})
	for _, m := range messages {
		if m.Role == constant.ChatMessageRoleSystem {
			continue
		}
		history = append(history, llm.Message{Role: m.Role, Content: m.Content})
	}
	return history
}

func lastUserText(messages []dto.ChatMessageDTO) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == constant.ChatMessageRoleUser {
			return messages[i].Content
		}
	}
	return ""
}

// resolveSession fills prep's session fields. Three paths: reuse an
// existing session (and append the new user message), lazily create one
// backfilled with the whole transcript, or run anonymously.
func (s *chatService) resolveSession(ctx context.Context, prep *StreamPrep, ref persona.MentorRef, req *dto.StreamChatRequest) {
	if req.ChatSessionId != "" {
		sessionId, err := uuid.Parse(req.ChatSessionId)
		if err != nil {
			prep.SessionErr = errors.New("invalid chat session id")
			return
		}
		if prep.UserId == nil {
			prep.SessionErr = errors.New("session reuse requires authentication")
			return
		}
		uow := s.uowFactory.NewUnitOfWork(ctx)
		session, err := uow.ChatSessionRepository().FindOne(ctx,
			specification.ByID{ID: sessionId},
			specification.UserOwnedBy{UserID: *prep.UserId},
		)
		if err != nil {
			prep.SessionErr = err
			return
		}
		if session == nil {
			prep.SessionErr = errors.New("session not found or access denied")
			return
		}
		if prep.UserText != "" {
			err = uow.ChatMessageRepository().Create(ctx, &entity.ChatMessage{
				Id:            uuid.New(),
				ChatSessionId: session.Id,
				UserId:        *prep.UserId,
				Role:          constant.ChatMessageRoleUser,
				Content:       prep.UserText,
			})
			if err != nil {
				prep.SessionErr = err
				return
			}
		}
		prep.SessionId = session.Id
		prep.HasSession = true
		return
	}

	if prep.UserId == nil {
		// Anonymous sends get an answer but nothing is saved.
		return
	}

	sessionId, err := s.createSessionWithBackfill(ctx, *prep.UserId, ref, req.Messages)
	if err != nil {
		prep.SessionErr = err
		return
	}
	prep.SessionId = sessionId
	prep.HasSession = true
}

// createSessionWithBackfill lazily creates the session on the first
// send and copies the client-side transcript into it in original order,
// so the pre-session welcome message survives.
func (s *chatService) createSessionWithBackfill(ctx context.Context, userId uuid.UUID, ref persona.MentorRef, messages []dto.ChatMessageDTO) (uuid.UUID, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return uuid.Nil, err
	}
	defer uow.Rollback()

	session := &entity.ChatSession{
		Id:         uuid.New(),
		UserId:     userId,
		MentorId:   ref.Id(),
		MentorType: string(ref.Kind),
		Title:      constant.DefaultSessionTitle,
	}
	if err := uow.ChatSessionRepository().Create(ctx, session); err != nil {
		return uuid.Nil, err
	}

	// Stagger CreatedAt so the backfilled transcript keeps its order.
	base := time.Now()
	backfill := make([]*entity.ChatMessage, 0, len(messages))
	for i, m := range messages {
		if m.Role == constant.ChatMessageRoleSystem {
			continue
		}
		backfill = append(backfill, &entity.ChatMessage{
			Id:            uuid.New(),
			ChatSessionId: session.Id,
			UserId:        userId,
			Role:          m.Role,
			Content:       m.Content,
			CreatedAt:     base.Add(time.Duration(i) * time.Millisecond),
		})
	}
	if len(backfill) > 0 {
		if err := uow.ChatMessageRepository().CreateBulk(ctx, backfill); err != nil {
			return uuid.Nil, err
		}
	}

	if err := uow.Commit(); err != nil {
		return uuid.Nil, err
	}
	return session.Id, nil
}

// StreamChat runs one prepared send through the relay, mapping relay
// chunks onto the wire DTO. The first chunk carries the session id so
// clients that cannot read headers still learn it.
func (s *chatService) StreamChat(ctx context.Context, prep *StreamPrep, emit func(chunk dto.StreamChunk) error) relay.Outcome {
	first := true
	hooks := relay.Hooks{
		ResolveSession: prep.resolveHook(),
		Emit: func(chunk relay.Chunk) error {
			if emit == nil {
				return nil
			}
			out := dto.StreamChunk{Content: chunk.Content, Done: chunk.Done}
			if first {
				if prep.HasSession {
					out.SessionId = prep.SessionId.String()
				}
				if prep.SessionErr != nil {
					out.Warning = degradedWarning
				}
			}
			first = false
			return emit(out)
		},
		Persist: s.persistHook(prep),
	}
	return s.relay.Run(ctx, prep.History, hooks)
}

// Chat is the non-streaming variant: same relay, buffered answer.
func (s *chatService) Chat(ctx context.Context, prep *StreamPrep) (*dto.StreamChatResponse, error) {
	out := s.relay.Run(ctx, prep.History, relay.Hooks{
		ResolveSession: prep.resolveHook(),
		Persist:        s.persistHook(prep),
	})
	if out.Cancelled() {
		return nil, context.Canceled
	}
	res := &dto.StreamChatResponse{
		Response:  out.Text,
		SessionId: out.SessionID,
	}
	if out.Degraded {
		res.Warning = degradedWarning
	}
	return res, nil
}

func (p *StreamPrep) resolveHook() func(ctx context.Context) (string, error) {
	return func(ctx context.Context) (string, error) {
		if p.SessionErr != nil {
			return "", p.SessionErr
		}
		if !p.HasSession {
			return "", nil
		}
		return p.SessionId.String(), nil
	}
}

// persistHook writes the finished assistant message and hands the
// exchange to the titling worker.
func (s *chatService) persistHook(prep *StreamPrep) func(ctx context.Context, sessionID, content string) error {
	return func(ctx context.Context, sessionID, content string) error {
		sid, err := uuid.Parse(sessionID)
		if err != nil {
			return err
		}
		var uid uuid.UUID
		if prep.UserId != nil {
			uid = *prep.UserId
		}

		uow := s.uowFactory.NewUnitOfWork(ctx)
		err = uow.ChatMessageRepository().Create(ctx, &entity.ChatMessage{
			Id:            uuid.New(),
			ChatSessionId: sid,
			UserId:        uid,
			Role:          constant.ChatMessageRoleAssistant,
			Content:       content,
		})
		if err != nil {
			return err
		}

		s.publishChatCompleted(ctx, sid, uid, prep.UserText, content)
		return nil
	}
}

func (s *chatService) publishChatCompleted(ctx context.Context, sessionId, userId uuid.UUID, userText, assistantText string) {
	if s.publisher == nil {
		return
	}
	payload, err := json.Marshal(dto.ChatCompletedMessage{
		ChatSessionId: sessionId,
		UserId:        userId,
		UserText:      userText,
		AssistantText: assistantText,
	})
	if err != nil {
		return
	}
	if err := s.publisher.Publish(ctx, payload); err != nil {
		s.logger.Warn("ChatService", "Failed to enqueue chat completed event", map[string]interface{}{
			"chat_session_id": sessionId.String(),
			"error":           err.Error(),
		})
	}
}

// --- Session management ---

func (s *chatService) CreateSession(ctx context.Context, userId uuid.UUID, req *dto.CreateSessionRequest) (*dto.CreateSessionResponse, error) {
	ref := persona.ParseMentorRef(req.MentorId)

	title := req.Title
	if title == "" {
		title = constant.DefaultSessionTitle
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	session := &entity.ChatSession{
		Id:         uuid.New(),
		UserId:     userId,
		MentorId:   ref.Id(),
		MentorType: string(ref.Kind),
		Title:      title,
	}
	if err := uow.ChatSessionRepository().Create(ctx, session); err != nil {
		return nil, err
	}
	return &dto.CreateSessionResponse{Id: session.Id}, nil
}

func (s *chatService) GetAllSessions(ctx context.Context, userId uuid.UUID) ([]dto.GetAllSessionsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	sessions, err := uow.ChatSessionRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	res := make([]dto.GetAllSessionsResponse, 0, len(sessions))
	for _, session := range sessions {
		res = append(res, dto.GetAllSessionsResponse{
			Id:         session.Id,
			MentorId:   session.MentorId,
			MentorType: session.MentorType,
			Title:      session.Title,
			CreatedAt:  session.CreatedAt,
			UpdatedAt:  session.UpdatedAt,
		})
	}
	return res, nil
}

func (s *chatService) GetChatHistory(ctx context.Context, userId uuid.UUID, chatSessionId uuid.UUID) ([]dto.GetChatHistoryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.ChatSessionRepository().FindOne(ctx,
		specification.ByID{ID: chatSessionId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, errors.New("session not found or access denied")
	}

	messages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.ByChatSessionID{ChatSessionID: chatSessionId},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	res := make([]dto.GetChatHistoryResponse, 0, len(messages))
	for _, m := range messages {
		res = append(res, dto.GetChatHistoryResponse{
			Id:        m.Id,
			Role:      m.Role,
			Content:   m.Content,
			CreatedAt: m.CreatedAt,
		})
	}
	return res, nil
}

func (s *chatService) RenameSession(ctx context.Context, userId uuid.UUID, req *dto.RenameSessionRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.ChatSessionRepository().FindOne(ctx,
		specification.ByID{ID: req.ChatSessionId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if session == nil {
		return errors.New("session not found or access denied")
	}

	session.Title = req.Title
	return uow.ChatSessionRepository().Update(ctx, session)
}

func (s *chatService) DeleteSession(ctx context.Context, userId uuid.UUID, chatSessionId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.ChatSessionRepository().FindOne(ctx,
		specification.ByID{ID: chatSessionId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if session == nil {
		return errors.New("session not found or access denied")
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.ChatMessageRepository().DeleteByChatSessionId(ctx, chatSessionId); err != nil {
		return err
	}
	if err := uow.ChatSessionRepository().Delete(ctx, chatSessionId); err != nil {
		return err
	}
	return uow.Commit()
}
