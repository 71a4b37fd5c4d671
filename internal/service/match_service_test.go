package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"kindred/internal/models"
)

func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", code)
	}
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != code {
		t.Fatalf("expected %s app error, got %#v", code, err)
	}
}

func TestMatchServiceDecideSelf(t *testing.T) {
	svc := NewMatchService(noopInteractionRepo(), noopUserRepo())
	_, err := svc.Decide(context.Background(), 3, 3, models.ActionLike)
	assertAppErrorCode(t, err, models.CodeSelfInteraction)
}

func TestMatchServiceDecideUnknownAction(t *testing.T) {
	svc := NewMatchService(noopInteractionRepo(), noopUserRepo())
	_, err := svc.Decide(context.Background(), 1, 2, models.InteractionAction("SUPERLIKE"))
	assertAppErrorCode(t, err, models.CodeInvalidAction)
}

func TestMatchServiceDecideTargetMissing(t *testing.T) {
	users := noopUserRepo()
	users.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		return nil, models.NewNotFoundError("User", id)
	}

	svc := NewMatchService(noopInteractionRepo(), users)
	_, err := svc.Decide(context.Background(), 1, 99, models.ActionLike)
	assertAppErrorCode(t, err, models.CodeNotFound)
}

func TestMatchServiceDecideDuplicate(t *testing.T) {
	repo := noopInteractionRepo()
	repo.findFn = func(context.Context, uint, uint) (*models.Interaction, error) {
		return &models.Interaction{ID: 4, InitiatorID: 1, ReceiverID: 2, Status: models.InteractionStatusPending}, nil
	}

	svc := NewMatchService(repo, noopUserRepo())
	_, err := svc.Decide(context.Background(), 1, 2, models.ActionLike)
	assertAppErrorCode(t, err, models.CodeDuplicateInteraction)
}

func TestMatchServiceDecidePassRecordsRejected(t *testing.T) {
	repo := noopInteractionRepo()
	var inserted *models.Interaction
	repo.insertFn = func(_ context.Context, interaction *models.Interaction) error {
		inserted = interaction
		return nil
	}

	svc := NewMatchService(repo, noopUserRepo())
	outcome, err := svc.Decide(context.Background(), 1, 2, models.ActionPass)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome.Matched {
		t.Fatal("pass must never produce a match")
	}
	if inserted == nil || inserted.Status != models.InteractionStatusRejected {
		t.Fatalf("expected REJECTED row, got %#v", inserted)
	}
	if inserted.InitiatorID != 1 || inserted.ReceiverID != 2 {
		t.Fatalf("unexpected pair: %#v", inserted)
	}
}

func TestMatchServiceDecideFirstLikeIsPending(t *testing.T) {
	repo := noopInteractionRepo()
	var inserted *models.Interaction
	repo.insertFn = func(_ context.Context, interaction *models.Interaction) error {
		inserted = interaction
		return nil
	}

	svc := NewMatchService(repo, noopUserRepo())
	outcome, err := svc.Decide(context.Background(), 1, 2, models.ActionLike)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome.Matched {
		t.Fatal("one-sided like must not match")
	}
	if inserted == nil || inserted.Status != models.InteractionStatusPending {
		t.Fatalf("expected PENDING row, got %#v", inserted)
	}
}

func TestMatchServiceDecideMutualLikeFlipsExistingRow(t *testing.T) {
	repo := noopInteractionRepo()
	repo.findPendingFn = func(_ context.Context, initiatorID, receiverID uint) (*models.Interaction, error) {
		if initiatorID == 2 && receiverID == 1 {
			return &models.Interaction{ID: 7, InitiatorID: 2, ReceiverID: 1, Status: models.InteractionStatusPending}, nil
		}
		return nil, nil
	}

	var flippedID uint
	var flippedTo models.InteractionStatus
	repo.updateStatusFn = func(_ context.Context, id uint, status models.InteractionStatus) error {
		flippedID = id
		flippedTo = status
		return nil
	}
	repo.insertFn = func(context.Context, *models.Interaction) error {
		t.Fatal("mutual like must flip the existing row, not insert a second one")
		return nil
	}

	svc := NewMatchService(repo, noopUserRepo())
	outcome, err := svc.Decide(context.Background(), 1, 2, models.ActionLike)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !outcome.Matched {
		t.Fatal("reciprocal like must report a match")
	}
	if flippedID != 7 || flippedTo != models.InteractionStatusAccepted {
		t.Fatalf("expected row 7 flipped to ACCEPTED, got %d -> %s", flippedID, flippedTo)
	}
	// The original initiator survives the flip.
	if outcome.Interaction.InitiatorID != 2 || outcome.Interaction.ReceiverID != 1 {
		t.Fatalf("initiator not preserved: %#v", outcome.Interaction)
	}
	if outcome.Interaction.Status != models.InteractionStatusAccepted {
		t.Fatalf("expected ACCEPTED, got %s", outcome.Interaction.Status)
	}
}

func TestMatchServiceDecideLikeAfterReverseRejectStaysPending(t *testing.T) {
	// Target passed on actor earlier. FindPending sees nothing because the
	// reverse row is REJECTED, so the like lands as an ordinary PENDING row
	// and no match forms.
	repo := noopInteractionRepo()
	var inserted *models.Interaction
	repo.insertFn = func(_ context.Context, interaction *models.Interaction) error {
		inserted = interaction
		return nil
	}

	svc := NewMatchService(repo, noopUserRepo())
	outcome, err := svc.Decide(context.Background(), 1, 2, models.ActionLike)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome.Matched {
		t.Fatal("a rejected reverse row must never upgrade to a match")
	}
	if inserted == nil || inserted.Status != models.InteractionStatusPending {
		t.Fatalf("expected PENDING row, got %#v", inserted)
	}
}

func TestMatchServiceDecideConstraintRaceSurfacesDuplicate(t *testing.T) {
	repo := noopInteractionRepo()
	repo.insertFn = func(context.Context, *models.Interaction) error {
		// What the repository returns when the unique (initiator, receiver)
		// constraint rejects the second of two concurrent inserts.
		return models.NewDuplicateInteractionError()
	}

	svc := NewMatchService(repo, noopUserRepo())
	_, err := svc.Decide(context.Background(), 1, 2, models.ActionLike)
	assertAppErrorCode(t, err, models.CodeDuplicateInteraction)
}

func TestMatchServiceMatchesFor(t *testing.T) {
	now := time.Now()
	repo := noopInteractionRepo()
	repo.listAcceptedForFn = func(context.Context, uint) ([]models.Interaction, error) {
		return []models.Interaction{
			{ID: 10, InitiatorID: 5, ReceiverID: 1, Status: models.InteractionStatusAccepted, CreatedAt: now},
			{ID: 3, InitiatorID: 1, ReceiverID: 8, Status: models.InteractionStatusAccepted, CreatedAt: now.Add(-time.Hour)},
		}, nil
	}

	users := noopUserRepo()
	users.getByIDWithPhotosFn = func(_ context.Context, id uint) (*models.User, error) {
		return &models.User{ID: id, FirstName: "User"}, nil
	}

	svc := NewMatchService(repo, users)
	matches, err := svc.MatchesFor(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}
	// Counterpart resolution works from either side of the row.
	if matches[0].Counterpart.ID != 5 {
		t.Fatalf("expected counterpart 5, got %d", matches[0].Counterpart.ID)
	}
	if matches[1].Counterpart.ID != 8 {
		t.Fatalf("expected counterpart 8, got %d", matches[1].Counterpart.ID)
	}
	if matches[0].MatchID != 10 || matches[1].MatchID != 3 {
		t.Fatalf("repository ordering not preserved: %#v", matches)
	}
}

func TestMatchServiceCanMessage(t *testing.T) {
	repo := noopInteractionRepo()
	repo.findAcceptedBetweenFn = func(_ context.Context, userA, userB uint) (*models.Interaction, error) {
		if (userA == 1 && userB == 2) || (userA == 2 && userB == 1) {
			return &models.Interaction{ID: 1, Status: models.InteractionStatusAccepted}, nil
		}
		return nil, nil
	}

	svc := NewMatchService(repo, noopUserRepo())

	ok, err := svc.CanMessage(context.Background(), 1, 2)
	if err != nil || !ok {
		t.Fatalf("expected matched pair to message, got ok=%v err=%v", ok, err)
	}
	ok, err = svc.CanMessage(context.Background(), 1, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("unmatched pair must not message")
	}
}
