// Package seed fills a database with demo users, posts, follows, likes and
// direct messages. It is meant for development only.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"warbler/backend/internal/models"
	"warbler/backend/internal/store"

	"github.com/brianvoe/gofakeit/v6"
)

// DefaultPassword is given to every generated user.
const DefaultPassword = "password123"

// Options controls how much data Run creates.
type Options struct {
	Users          int
	Messages       int
	DirectMessages int
	// PrivateRatio is the share of users created with a private profile.
	PrivateRatio float64
	// AdminUsername, when set, is created first and granted admin rights.
	AdminUsername string
	AdminPassword string
}

// Result counts what Run created.
type Result struct {
	Users          []models.User
	Messages       int
	Follows        int
	Likes          int
	DirectMessages int
}

// Seeder writes generated data through the store.
type Seeder struct {
	store *store.Store
	faker *gofakeit.Faker
}

// NewSeeder creates a Seeder. The same non-zero seed generates the same
// content on every run; zero picks a random seed.
func NewSeeder(st *store.Store, seed int64) *Seeder {
	return &Seeder{store: st, faker: gofakeit.New(seed)}
}

// Run creates the data described by opts.
func (s *Seeder) Run(ctx context.Context, opts Options) (*Result, error) {
	res := &Result{}

	if opts.AdminUsername != "" {
		password := opts.AdminPassword
		if password == "" {
			password = DefaultPassword
		}
		admin, err := s.store.Register(ctx, opts.AdminUsername, password)
		if err != nil {
			return nil, fmt.Errorf("create admin: %w", err)
		}
		if err := s.store.SetAdmin(ctx, admin.ID, true); err != nil {
			return nil, fmt.Errorf("grant admin: %w", err)
		}
		admin.IsAdmin = true
		res.Users = append(res.Users, *admin)
	}

	for len(res.Users) < opts.Users+boolToInt(opts.AdminUsername != "") {
		user, err := s.store.Register(ctx, s.username(), DefaultPassword)
		if errors.Is(err, models.ErrConflict) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("create user: %w", err)
		}
		if s.faker.Float64Range(0, 1) < opts.PrivateRatio {
			if _, err := s.store.TogglePrivacy(ctx, user.ID); err != nil {
				return nil, err
			}
			user.IsPrivate = true
		}
		res.Users = append(res.Users, *user)
	}
	if len(res.Users) < 2 {
		return res, nil
	}

	if err := s.follows(ctx, res); err != nil {
		return nil, err
	}

	messageIDs := make([]uint, 0, opts.Messages)
	for i := 0; i < opts.Messages; i++ {
		author := s.pick(res.Users)
		msg, err := s.store.PostMessage(ctx, author.ID, s.faker.Sentence(s.faker.Number(4, 14)))
		if err != nil {
			return nil, fmt.Errorf("post message: %w", err)
		}
		messageIDs = append(messageIDs, msg.ID)
	}
	res.Messages = len(messageIDs)

	for _, id := range messageIDs {
		for j := s.faker.Number(0, 3); j > 0; j-- {
			err := s.store.Like(ctx, s.pick(res.Users).ID, id)
			if errors.Is(err, models.ErrConflict) {
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("like message: %w", err)
			}
			res.Likes++
		}
	}

	for i := 0; i < opts.DirectMessages; i++ {
		from, to := s.pair(res.Users)
		if _, err := s.store.SendDirectMessage(ctx, from.ID, to.ID, s.faker.Sentence(s.faker.Number(2, 10))); err != nil {
			return nil, fmt.Errorf("send direct message: %w", err)
		}
		res.DirectMessages++
	}

	slog.Info("seed complete",
		"users", len(res.Users),
		"messages", res.Messages,
		"follows", res.Follows,
		"likes", res.Likes,
		"direct_messages", res.DirectMessages,
	)
	return res, nil
}

// follows makes every user follow a few others. Requests to private users
// are accepted about half the time.
func (s *Seeder) follows(ctx context.Context, res *Result) error {
	for _, follower := range res.Users {
		for j := s.faker.Number(1, 3); j > 0; j-- {
			followee := s.pick(res.Users)
			if followee.ID == follower.ID {
				continue
			}
			status, err := s.store.Follow(ctx, follower.ID, followee.ID)
			if errors.Is(err, models.ErrConflict) {
				continue
			}
			if err != nil {
				return fmt.Errorf("follow: %w", err)
			}
			if status == models.FollowPending && s.faker.Bool() {
				if err := s.store.AcceptFollow(ctx, followee.ID, follower.ID); err != nil {
					return fmt.Errorf("accept follow: %w", err)
				}
			}
			res.Follows++
		}
	}
	return nil
}

func (s *Seeder) username() string {
	name := fmt.Sprintf("%s%d", s.faker.Username(), s.faker.Number(100, 999))
	if len(name) > 50 {
		name = name[:50]
	}
	return name
}

func (s *Seeder) pick(users []models.User) models.User {
	return users[s.faker.Number(0, len(users)-1)]
}

// pair returns two distinct users.
func (s *Seeder) pair(users []models.User) (models.User, models.User) {
	i := s.faker.Number(0, len(users)-1)
	j := s.faker.Number(0, len(users)-2)
	if j >= i {
		j++
	}
	return users[i], users[j]
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
