package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"kindred/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	ShouldClean bool
}

// Seeder populates the database with realistic demo data: users with
// profiles and photos, a mesh of swipes with some mutual matches, and
// message history between matched pairs.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
	rng     *rand.Rand
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{
		db:      db,
		factory: NewFactory(db, SeedOptions{MaxDays: 90}),
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ClearAll removes all seeded rows. Order matters: messages and
// interactions reference users.
func (s *Seeder) ClearAll() error {
	log.Println("Clearing existing data...")
	tables := []string{"messages", "interactions", "photos", "profiles", "subscriptions", "verification_tokens", "users"}
	for _, table := range tables {
		if err := s.db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	return nil
}

// Seed runs the full pipeline: users, swipes, messages.
func (s *Seeder) Seed(opts Options) error {
	log.Printf("🌱 Starting database seeding with %d users...", opts.NumUsers)

	if opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			log.Println("⚠️  Warning: Could not clear all existing data, but continuing anyway...")
		}
	}

	users, err := s.SeedUsers(opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("✓ %d test users created", len(users))

	matches, err := s.SeedSwipes(users)
	if err != nil {
		return fmt.Errorf("failed to create swipes: %w", err)
	}
	log.Printf("✓ swipe mesh created with %d mutual matches", len(matches))

	sent, err := s.SeedMessages(matches)
	if err != nil {
		return fmt.Errorf("failed to create messages: %w", err)
	}
	log.Printf("✓ %d messages created", sent)

	return nil
}

// SeedUsers creates n users, each with a profile and one to three photos.
// The first user is promoted to admin for easy panel access.
func (s *Seeder) SeedUsers(n int) ([]*models.User, error) {
	users := make([]*models.User, 0, n)
	for i := 0; i < n; i++ {
		var overrides []func(*models.User)
		if i == 0 {
			overrides = append(overrides, func(u *models.User) {
				u.Email = "admin@kindred.local"
				u.Role = models.UserRoleAdmin
			})
		}

		user, err := s.factory.CreateUser(overrides...)
		if err != nil {
			return nil, err
		}
		if _, err := s.factory.CreateProfile(user); err != nil {
			return nil, err
		}
		if _, err := s.factory.CreatePhotos(user, s.rng.Intn(3)+1); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

// SeedSwipes builds a directed swipe mesh over the users. Roughly a third
// of pairs interact; of those, likes outnumber passes three to one, and a
// portion of reciprocated likes are collapsed into ACCEPTED matches the
// same way the decision engine would record them.
func (s *Seeder) SeedSwipes(users []*models.User) ([]*models.Interaction, error) {
	var matches []*models.Interaction

	for i, actor := range users {
		for j, target := range users {
			if i == j || s.rng.Intn(3) != 0 {
				continue
			}

			// A row in either direction means this pair already interacted.
			if s.pairExists(actor.ID, target.ID) {
				continue
			}

			if s.rng.Intn(4) == 0 {
				if _, err := s.factory.CreateInteraction(actor.ID, target.ID, models.InteractionStatusRejected); err != nil {
					return nil, err
				}
				continue
			}

			status := models.InteractionStatusPending
			if s.rng.Intn(3) == 0 {
				status = models.InteractionStatusAccepted
			}
			interaction, err := s.factory.CreateInteraction(actor.ID, target.ID, status)
			if err != nil {
				return nil, err
			}
			if status == models.InteractionStatusAccepted {
				matches = append(matches, interaction)
			}
		}
	}
	return matches, nil
}

// SeedMessages writes a short conversation for each mutual match.
func (s *Seeder) SeedMessages(matches []*models.Interaction) (int, error) {
	total := 0
	for _, match := range matches {
		count := s.rng.Intn(12) + 2
		sentAt := match.CreatedAt
		for i := 0; i < count; i++ {
			sentAt = sentAt.Add(time.Duration(s.rng.Intn(180)+1) * time.Minute)
			sender, receiver := match.InitiatorID, match.ReceiverID
			if i%2 == 1 {
				sender, receiver = receiver, sender
			}
			if _, err := s.factory.CreateMessage(sender, receiver, sentAt); err != nil {
				return total, err
			}
			total++
		}
	}
	return total, nil
}

func (s *Seeder) pairExists(a, b uint) bool {
	var count int64
	s.db.Model(&models.Interaction{}).
		Where("(initiator_id = ? AND receiver_id = ?) OR (initiator_id = ? AND receiver_id = ?)", a, b, b, a).
		Count(&count)
	return count > 0
}
