package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"kindred/internal/cache"
	"kindred/internal/models"
	"kindred/internal/repository"
)

const maxMessageLength = 2000

// MessageService provides conversation logic gated on confirmed matches.
type MessageService struct {
	messageRepo  repository.MessageRepository
	userRepo     repository.UserRepository
	matchService *MatchService
}

// NewMessageService returns a new MessageService.
func NewMessageService(messageRepo repository.MessageRepository, userRepo repository.UserRepository, matchService *MatchService) *MessageService {
	return &MessageService{
		messageRepo:  messageRepo,
		userRepo:     userRepo,
		matchService: matchService,
	}
}

// Send delivers a message from sender to receiver. The match gate is checked
// on every send; an unmatched or expired pair is refused outright.
func (s *MessageService) Send(ctx context.Context, senderID, receiverID uint, content string) (*models.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, models.NewValidationError("Message content is required")
	}
	if len(content) > maxMessageLength {
		return nil, models.NewValidationError("Message content is too long")
	}
	if senderID == receiverID {
		return nil, models.NewValidationError("Cannot message yourself")
	}

	if _, err := s.userRepo.GetByID(ctx, receiverID); err != nil {
		return nil, err
	}

	matched, err := s.matchService.CanMessage(ctx, senderID, receiverID)
	if err != nil {
		return nil, err
	}
	if !matched {
		return nil, models.NewForbiddenError("Can only message matched users")
	}

	msg := &models.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
	}
	if err := s.messageRepo.Create(ctx, msg); err != nil {
		return nil, err
	}
	cache.InvalidateUnreadCount(ctx, receiverID)
	return msg, nil
}

// History returns the thread between the user and a counterpart, oldest first,
// and marks the counterpart's messages as read. The same gate applies to
// reading as to sending.
func (s *MessageService) History(ctx context.Context, userID, counterpartID uint, limit, offset int) ([]models.Message, error) {
	matched, err := s.matchService.CanMessage(ctx, userID, counterpartID)
	if err != nil {
		return nil, err
	}
	if !matched {
		return nil, models.NewForbiddenError("Can only message matched users")
	}

	messages, err := s.messageRepo.ListBetween(ctx, userID, counterpartID, limit, offset)
	if err != nil {
		return nil, err
	}

	if err := s.messageRepo.MarkReadFrom(ctx, counterpartID, userID); err != nil {
		return nil, err
	}
	cache.InvalidateUnreadCount(ctx, userID)
	return messages, nil
}

// Conversations returns one entry per confirmed match, carrying the last
// message and unread count, ordered by most recent activity.
func (s *MessageService) Conversations(ctx context.Context, userID uint) ([]models.Conversation, error) {
	matches, err := s.matchService.MatchesFor(ctx, userID)
	if err != nil {
		return nil, err
	}

	conversations := make([]models.Conversation, 0, len(matches))
	for _, match := range matches {
		last, err := s.messageRepo.LastBetween(ctx, userID, match.Counterpart.ID)
		if err != nil {
			return nil, err
		}
		unread, err := s.messageRepo.CountUnreadFrom(ctx, match.Counterpart.ID, userID)
		if err != nil {
			return nil, err
		}
		conversations = append(conversations, models.Conversation{
			User:        match.Counterpart,
			LastMessage: last,
			MatchedAt:   match.MatchedAt,
			UnreadCount: unread,
		})
	}

	// Most recently active threads first; threads with no messages fall back
	// to match recency.
	sort.SliceStable(conversations, func(i, j int) bool {
		return conversationActivity(conversations[i]).After(conversationActivity(conversations[j]))
	})
	return conversations, nil
}

// UnreadCount returns the user's total unread message count. The count is
// cached briefly and invalidated on send and read.
func (s *MessageService) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := cache.CacheAside(ctx, cache.UnreadCountKey(userID), &count, cache.UnreadCountTTL, func() error {
		var fetchErr error
		count, fetchErr = s.messageRepo.CountUnreadFor(ctx, userID)
		return fetchErr
	})
	return count, err
}

func conversationActivity(c models.Conversation) time.Time {
	if c.LastMessage != nil {
		return c.LastMessage.CreatedAt
	}
	return c.MatchedAt
}
