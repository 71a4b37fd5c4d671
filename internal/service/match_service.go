// Package service contains the business logic layer of the application.
package service

import (
	"context"

	"kindred/internal/models"
	"kindred/internal/repository"
)

// MatchService implements the swipe decision engine and the derived match
// views. All match state lives in the interaction ledger; this service never
// stores a separate "match" record.
type MatchService struct {
	interactionRepo repository.InteractionRepository
	userRepo        repository.UserRepository
}

// NewMatchService returns a new MatchService.
func NewMatchService(interactionRepo repository.InteractionRepository, userRepo repository.UserRepository) *MatchService {
	return &MatchService{
		interactionRepo: interactionRepo,
		userRepo:        userRepo,
	}
}

// Decide records a LIKE or PASS from actor toward target and reports whether
// the decision completed a mutual match.
//
// A PASS always lands as a REJECTED row. A LIKE first looks for a reverse
// PENDING row (target previously liked actor): if one exists it is flipped to
// ACCEPTED in place, so exactly one row represents the match and the original
// initiator is preserved. Otherwise a new PENDING row is inserted. A reverse
// REJECTED row never upgrades: liking someone who passed on you leaves their
// pass untouched and records your like as an ordinary PENDING row.
//
// The ordered-pair uniqueness constraint backs every insert, so two
// concurrent first interactions for the same pair resolve to one winner and
// one DUPLICATE_INTERACTION error.
func (s *MatchService) Decide(ctx context.Context, actorID, targetID uint, action models.InteractionAction) (*models.DecisionOutcome, error) {
	if actorID == targetID {
		return nil, models.NewSelfInteractionError()
	}
	if action != models.ActionLike && action != models.ActionPass {
		return nil, models.NewInvalidActionError()
	}

	if _, err := s.userRepo.GetByID(ctx, targetID); err != nil {
		return nil, err
	}

	existing, err := s.interactionRepo.Find(ctx, actorID, targetID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewDuplicateInteractionError()
	}

	if action == models.ActionPass {
		interaction := &models.Interaction{
			InitiatorID: actorID,
			ReceiverID:  targetID,
			Status:      models.InteractionStatusRejected,
		}
		if err := s.interactionRepo.Insert(ctx, interaction); err != nil {
			return nil, err
		}
		return &models.DecisionOutcome{Matched: false, Interaction: interaction}, nil
	}

	reverse, err := s.interactionRepo.FindPending(ctx, targetID, actorID)
	if err != nil {
		return nil, err
	}
	if reverse != nil {
		if err := s.interactionRepo.UpdateStatus(ctx, reverse.ID, models.InteractionStatusAccepted); err != nil {
			return nil, err
		}
		reverse.Status = models.InteractionStatusAccepted
		return &models.DecisionOutcome{Matched: true, Interaction: reverse}, nil
	}

	interaction := &models.Interaction{
		InitiatorID: actorID,
		ReceiverID:  targetID,
		Status:      models.InteractionStatusPending,
	}
	if err := s.interactionRepo.Insert(ctx, interaction); err != nil {
		return nil, err
	}
	return &models.DecisionOutcome{Matched: false, Interaction: interaction}, nil
}

// MatchesFor returns the user's confirmed matches, newest first, each carrying
// the counterpart's public card. Both sides of a match see the same row.
func (s *MatchService) MatchesFor(ctx context.Context, userID uint) ([]models.MatchSummary, error) {
	interactions, err := s.interactionRepo.ListAcceptedFor(ctx, userID)
	if err != nil {
		return nil, err
	}

	summaries := make([]models.MatchSummary, 0, len(interactions))
	for _, interaction := range interactions {
		counterpartID := interaction.CounterpartID(userID)
		counterpart, err := s.userRepo.GetByIDWithPhotos(ctx, counterpartID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, models.MatchSummary{
			MatchID:     interaction.ID,
			MatchedAt:   interaction.CreatedAt,
			Counterpart: counterpart.Public(),
		})
	}
	return summaries, nil
}

// CanMessage reports whether two users share a confirmed match. Messaging is
// closed by default: only an ACCEPTED interaction in either direction opens
// the conversation.
func (s *MatchService) CanMessage(ctx context.Context, userA, userB uint) (bool, error) {
	interaction, err := s.interactionRepo.FindAcceptedBetween(ctx, userA, userB)
	if err != nil {
		return false, err
	}
	return interaction != nil, nil
}
