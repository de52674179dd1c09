package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/flintapp/flint/internal/domain"
	"github.com/flintapp/flint/internal/repository"
)

var (
	ErrMatchNotFound  = errors.New("match not found")
	ErrNotParticipant = errors.New("you are not part of this match")
	ErrEmptyMessage   = errors.New("message needs text content or an image")
)

type MatchService struct {
	matchRepo   repository.MatchRepository
	messageRepo repository.MessageRepository
}

func NewMatchService(matchRepo repository.MatchRepository, messageRepo repository.MessageRepository) *MatchService {
	return &MatchService{
		matchRepo:   matchRepo,
		messageRepo: messageRepo,
	}
}

func (s *MatchService) List(ctx context.Context, userID int64) ([]domain.MatchSummary, error) {
	summaries, err := s.matchRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if summaries == nil {
		summaries = []domain.MatchSummary{}
	}
	return summaries, nil
}

// EnsureParticipant resolves the match and verifies userID is one of
// its two members. Both the HTTP message endpoints and the websocket
// room join go through this check.
func (s *MatchService) EnsureParticipant(ctx context.Context, userID, matchID int64) (*domain.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if match == nil {
		return nil, ErrMatchNotFound
	}
	if !match.Involves(userID) {
		return nil, ErrNotParticipant
	}
	return match, nil
}

// History returns the match's messages ordered by creation time
// ascending (id breaks ties), participant-only.
func (s *MatchService) History(ctx context.Context, userID, matchID int64) ([]domain.Message, error) {
	if _, err := s.EnsureParticipant(ctx, userID, matchID); err != nil {
		return nil, err
	}

	messages, err := s.messageRepo.ListByMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if messages == nil {
		messages = []domain.Message{}
	}
	return messages, nil
}

// SendMessage persists one message from userID into the match. At
// least one of content and imageURL must be non-empty. The persisted
// row (with server-assigned id and timestamp) is returned; broadcasting
// to connected clients is the relay's business, not this method's, so
// the plain HTTP write path stays broadcast-free.
func (s *MatchService) SendMessage(ctx context.Context, userID, matchID int64, content, imageURL *string) (*domain.Message, error) {
	if _, err := s.EnsureParticipant(ctx, userID, matchID); err != nil {
		return nil, err
	}

	content = normalize(content)
	imageURL = normalize(imageURL)
	if content == nil && imageURL == nil {
		return nil, ErrEmptyMessage
	}

	msg := &domain.Message{
		MatchID:  matchID,
		SenderID: userID,
		Content:  content,
		ImageURL: imageURL,
	}
	if err := s.messageRepo.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("creating message: %w", err)
	}
	return msg, nil
}

// normalize maps empty strings to nil so the "content and/or image"
// rule sees one representation of absent.
func normalize(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
