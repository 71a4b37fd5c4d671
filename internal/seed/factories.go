// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"kindred/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedOptions tune factory behaviour.
type SeedOptions struct {
	// MaxDays bounds the created_at spread for generated records.
	MaxDays int
	// DryRun logs what would be created without writing to the DB.
	DryRun bool
}

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by seed presets and tests.
type Factory struct {
	db   *gorm.DB
	opts SeedOptions
	rng  *rand.Rand
	// synthetic ID counter when running in DryRun mode
	nextID uint
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts SeedOptions) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:     db,
		opts:   opts,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		nextID: 1000,
	}
}

var seedGenders = []string{"male", "female", "nonbinary"}

var seedBioTemplates = []string{
	"Big fan of %s and weekend %s trips. Looking for someone to share tacos with.",
	"%s enthusiast. Will absolutely beat you at %s. Dog person, obviously.",
	"Part-time %s nerd, full-time optimist. Ask me about my %s phase.",
	"Here for good conversation, %s, and finding the best %s spot in town.",
}

var seedInterests = []string{
	"hiking", "climbing", "cooking", "live music", "photography", "trivia",
	"board games", "road cycling", "pottery", "standup comedy", "bouldering",
	"vinyl collecting", "sci-fi", "yoga", "karaoke", "street food",
}

// randomBio composes a short profile bio from the template pool.
func (f *Factory) randomBio() string {
	tmpl := seedBioTemplates[f.rng.Intn(len(seedBioTemplates))]
	return fmt.Sprintf(tmpl,
		seedInterests[f.rng.Intn(len(seedInterests))],
		seedInterests[f.rng.Intn(len(seedInterests))])
}

// pastTime returns a timestamp up to opts.MaxDays in the past for a
// realistic created_at spread.
func (f *Factory) pastTime() time.Time {
	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 90
	}
	daysBack := f.rng.Intn(maxDays)
	hoursBack := f.rng.Intn(24)
	minsBack := f.rng.Intn(60)
	return time.Now().Add(-time.Duration(daysBack)*24*time.Hour -
		time.Duration(hoursBack)*time.Hour -
		time.Duration(minsBack)*time.Minute)
}

// CreateUser constructs and persists a sample `models.User` with a profile
// and a couple of photos. Optional override functions may modify the
// generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := &models.User{
		Email:         gofakeit.Email(),
		FirstName:     gofakeit.FirstName(),
		LastName:      gofakeit.LastName(),
		Role:          models.UserRoleMember,
		EmailVerified: true,
		CreatedAt:     f.pastTime(),
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash seed password: %w", err)
	}
	user.Password = string(hashed)

	for _, override := range overrides {
		override(user)
	}

	if f.opts.DryRun {
		f.nextID++
		user.ID = f.nextID
		log.Printf("[dry-run] CreateUser: %s %s <%s> (no DB write)", user.FirstName, user.LastName, user.Email)
		return user, nil
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateProfile persists a generated dating profile for the given user.
func (f *Factory) CreateProfile(user *models.User, overrides ...func(*models.Profile)) (*models.Profile, error) {
	profile := &models.Profile{
		UserID:    user.ID,
		Bio:       f.randomBio(),
		Age:       gofakeit.Number(models.MinProfileAge, 45),
		Gender:    seedGenders[f.rng.Intn(len(seedGenders))],
		Location:  gofakeit.City(),
		CreatedAt: user.CreatedAt,
	}

	for _, override := range overrides {
		override(profile)
	}

	if f.opts.DryRun {
		f.nextID++
		profile.ID = f.nextID
		return profile, nil
	}

	if err := f.db.Create(profile).Error; err != nil {
		return nil, err
	}
	return profile, nil
}

// CreatePhotos persists n placeholder photos for the given user.
func (f *Factory) CreatePhotos(user *models.User, n int) ([]models.Photo, error) {
	photos := make([]models.Photo, 0, n)
	for i := 0; i < n; i++ {
		key := fmt.Sprintf("photos/%d/%s", user.ID, gofakeit.UUID())
		photos = append(photos, models.Photo{
			UserID:    user.ID,
			URL:       fmt.Sprintf("https://i.pravatar.cc/600?u=%s", gofakeit.UUID()),
			ObjectKey: key,
			CreatedAt: user.CreatedAt.Add(time.Duration(i) * time.Minute),
		})
	}

	if f.opts.DryRun {
		log.Printf("[dry-run] CreatePhotos: %d photos for user %d (no DB write)", n, user.ID)
		return photos, nil
	}

	if err := f.db.Create(&photos).Error; err != nil {
		return nil, err
	}
	return photos, nil
}

// CreateInteraction persists a directed swipe record.
func (f *Factory) CreateInteraction(initiatorID, receiverID uint, status models.InteractionStatus) (*models.Interaction, error) {
	interaction := &models.Interaction{
		InitiatorID: initiatorID,
		ReceiverID:  receiverID,
		Status:      status,
		CreatedAt:   f.pastTime(),
	}

	if f.opts.DryRun {
		f.nextID++
		interaction.ID = f.nextID
		return interaction, nil
	}

	if err := f.db.Create(interaction).Error; err != nil {
		return nil, err
	}
	return interaction, nil
}

// CreateMessage persists a direct message between two users.
func (f *Factory) CreateMessage(senderID, receiverID uint, sentAt time.Time) (*models.Message, error) {
	message := &models.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    gofakeit.Sentence(f.rng.Intn(12) + 3),
		IsRead:     f.rng.Intn(2) == 0,
		CreatedAt:  sentAt,
	}
	if message.IsRead {
		readAt := sentAt.Add(time.Duration(f.rng.Intn(120)+1) * time.Minute)
		message.ReadAt = &readAt
	}

	if f.opts.DryRun {
		f.nextID++
		message.ID = f.nextID
		return message, nil
	}

	if err := f.db.Create(message).Error; err != nil {
		return nil, err
	}
	return message, nil
}
