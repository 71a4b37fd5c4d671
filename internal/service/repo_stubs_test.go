package service

import (
	"context"

	"kindred/internal/models"
)

type interactionRepoStub struct {
	findFn                func(context.Context, uint, uint) (*models.Interaction, error)
	findPendingFn         func(context.Context, uint, uint) (*models.Interaction, error)
	insertFn              func(context.Context, *models.Interaction) error
	updateStatusFn        func(context.Context, uint, models.InteractionStatus) error
	listAcceptedForFn     func(context.Context, uint) ([]models.Interaction, error)
	findAcceptedBetweenFn func(context.Context, uint, uint) (*models.Interaction, error)
	listReceiverIDsForFn  func(context.Context, uint) ([]uint, error)
}

func (s *interactionRepoStub) Find(ctx context.Context, initiatorID, receiverID uint) (*models.Interaction, error) {
	return s.findFn(ctx, initiatorID, receiverID)
}
func (s *interactionRepoStub) FindPending(ctx context.Context, initiatorID, receiverID uint) (*models.Interaction, error) {
	return s.findPendingFn(ctx, initiatorID, receiverID)
}
func (s *interactionRepoStub) Insert(ctx context.Context, interaction *models.Interaction) error {
	return s.insertFn(ctx, interaction)
}
func (s *interactionRepoStub) UpdateStatus(ctx context.Context, id uint, status models.InteractionStatus) error {
	return s.updateStatusFn(ctx, id, status)
}
func (s *interactionRepoStub) ListAcceptedFor(ctx context.Context, userID uint) ([]models.Interaction, error) {
	return s.listAcceptedForFn(ctx, userID)
}
func (s *interactionRepoStub) FindAcceptedBetween(ctx context.Context, userA, userB uint) (*models.Interaction, error) {
	return s.findAcceptedBetweenFn(ctx, userA, userB)
}
func (s *interactionRepoStub) ListReceiverIDsFor(ctx context.Context, initiatorID uint) ([]uint, error) {
	return s.listReceiverIDsForFn(ctx, initiatorID)
}

type userRepoStub struct {
	getByIDFn           func(context.Context, uint) (*models.User, error)
	getByEmailFn        func(context.Context, string) (*models.User, error)
	getByIDWithPhotosFn func(context.Context, uint) (*models.User, error)
	createFn            func(context.Context, *models.User) error
	updateFn            func(context.Context, *models.User) error
	listFn              func(context.Context, int, int) ([]models.User, error)
	setBannedFn         func(context.Context, uint, bool) error
	setRoleFn           func(context.Context, uint, models.UserRole) error
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByIDWithPhotos(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDWithPhotosFn(ctx, id)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.listFn(ctx, limit, offset)
}
func (s *userRepoStub) SetBanned(ctx context.Context, id uint, banned bool) error {
	return s.setBannedFn(ctx, id, banned)
}
func (s *userRepoStub) SetRole(ctx context.Context, id uint, role models.UserRole) error {
	return s.setRoleFn(ctx, id, role)
}

type messageRepoStub struct {
	createFn          func(context.Context, *models.Message) error
	listBetweenFn     func(context.Context, uint, uint, int, int) ([]models.Message, error)
	lastBetweenFn     func(context.Context, uint, uint) (*models.Message, error)
	countUnreadForFn  func(context.Context, uint) (int64, error)
	countUnreadFromFn func(context.Context, uint, uint) (int64, error)
	markReadFromFn    func(context.Context, uint, uint) error
}

func (s *messageRepoStub) Create(ctx context.Context, msg *models.Message) error {
	return s.createFn(ctx, msg)
}
func (s *messageRepoStub) ListBetween(ctx context.Context, userA, userB uint, limit, offset int) ([]models.Message, error) {
	return s.listBetweenFn(ctx, userA, userB, limit, offset)
}
func (s *messageRepoStub) LastBetween(ctx context.Context, userA, userB uint) (*models.Message, error) {
	return s.lastBetweenFn(ctx, userA, userB)
}
func (s *messageRepoStub) CountUnreadFor(ctx context.Context, receiverID uint) (int64, error) {
	return s.countUnreadForFn(ctx, receiverID)
}
func (s *messageRepoStub) CountUnreadFrom(ctx context.Context, senderID, receiverID uint) (int64, error) {
	return s.countUnreadFromFn(ctx, senderID, receiverID)
}
func (s *messageRepoStub) MarkReadFrom(ctx context.Context, senderID, receiverID uint) error {
	return s.markReadFromFn(ctx, senderID, receiverID)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:           func(context.Context, uint) (*models.User, error) { return &models.User{}, nil },
		getByEmailFn:        func(context.Context, string) (*models.User, error) { return nil, nil },
		getByIDWithPhotosFn: func(context.Context, uint) (*models.User, error) { return &models.User{}, nil },
		createFn:            func(context.Context, *models.User) error { return nil },
		updateFn:            func(context.Context, *models.User) error { return nil },
		listFn:              func(context.Context, int, int) ([]models.User, error) { return nil, nil },
		setBannedFn:         func(context.Context, uint, bool) error { return nil },
		setRoleFn:           func(context.Context, uint, models.UserRole) error { return nil },
	}
}

func noopInteractionRepo() *interactionRepoStub {
	return &interactionRepoStub{
		findFn:                func(context.Context, uint, uint) (*models.Interaction, error) { return nil, nil },
		findPendingFn:         func(context.Context, uint, uint) (*models.Interaction, error) { return nil, nil },
		insertFn:              func(context.Context, *models.Interaction) error { return nil },
		updateStatusFn:        func(context.Context, uint, models.InteractionStatus) error { return nil },
		listAcceptedForFn:     func(context.Context, uint) ([]models.Interaction, error) { return nil, nil },
		findAcceptedBetweenFn: func(context.Context, uint, uint) (*models.Interaction, error) { return nil, nil },
		listReceiverIDsForFn:  func(context.Context, uint) ([]uint, error) { return nil, nil },
	}
}

func noopMessageRepo() *messageRepoStub {
	return &messageRepoStub{
		createFn:          func(context.Context, *models.Message) error { return nil },
		listBetweenFn:     func(context.Context, uint, uint, int, int) ([]models.Message, error) { return nil, nil },
		lastBetweenFn:     func(context.Context, uint, uint) (*models.Message, error) { return nil, nil },
		countUnreadForFn:  func(context.Context, uint) (int64, error) { return 0, nil },
		countUnreadFromFn: func(context.Context, uint, uint) (int64, error) { return 0, nil },
		markReadFromFn:    func(context.Context, uint, uint) error { return nil },
	}
}
