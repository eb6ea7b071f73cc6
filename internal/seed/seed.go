package seed

import (
	"context"
	"fmt"

	"selam/internal/middleware"
	"selam/internal/models"
	"selam/internal/repository"
)

// Options configures a seeding run.
type Options struct {
	NumUsers       int
	NumPosts       int
	NumDuaRequests int
	NumCommunities int
	NumEvents      int
}

// DefaultOptions is a small but lively dataset.
var DefaultOptions = Options{
	NumUsers:       20,
	NumPosts:       60,
	NumDuaRequests: 25,
	NumCommunities: 5,
	NumEvents:      8,
}

// Summary counts what a run created.
type Summary struct {
	Users       int
	Posts       int
	DuaRequests int
	Likes       int
	Comments    int
	Bookmarks   int
	Communities int
	Members     int
	Events      int
	Attendees   int
}

// Seeder writes demo data through a Storage, so it works against every
// backend.
type Seeder struct {
	store   repository.Storage
	factory *Factory
}

// NewSeeder binds a Seeder to store. seed fixes the gofakeit sequence; 0 is
// random.
func NewSeeder(store repository.Storage, seed int64) *Seeder {
	return &Seeder{store: store, factory: NewFactory(seed)}
}

// Run creates users, their posts and dua requests, then spreads likes,
// comments and bookmarks over them and fills communities and events.
func (s *Seeder) Run(ctx context.Context, opts Options) (Summary, error) {
	var sum Summary
	if opts.NumUsers <= 0 {
		return sum, fmt.Errorf("seed: at least one user is required")
	}
	f := s.factory.faker

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		u, err := s.store.CreateUser(ctx, s.factory.BuildUser())
		if err != nil {
			return sum, fmt.Errorf("seed user: %w", err)
		}
		users = append(users, u)
	}
	sum.Users = len(users)
	pick := func() *models.User { return users[f.Number(0, len(users)-1)] }

	targets := make([]models.Target, 0, opts.NumPosts+opts.NumDuaRequests)
	for i := 0; i < opts.NumPosts; i++ {
		p, err := s.store.CreatePost(ctx, s.factory.BuildPost(pick().ID))
		if err != nil {
			return sum, fmt.Errorf("seed post: %w", err)
		}
		targets = append(targets, models.PostTarget(p.ID))
		sum.Posts++
	}
	for i := 0; i < opts.NumDuaRequests; i++ {
		d, err := s.store.CreateDuaRequest(ctx, s.factory.BuildDuaRequest(pick().ID))
		if err != nil {
			return sum, fmt.Errorf("seed dua request: %w", err)
		}
		targets = append(targets, models.DuaRequestTarget(d.ID))
		sum.DuaRequests++
	}

	if err := s.engage(ctx, users, targets, &sum); err != nil {
		return sum, err
	}
	if err := s.groups(ctx, users, opts, &sum); err != nil {
		return sum, err
	}

	middleware.Logger.InfoContext(ctx, "seed complete",
		"users", sum.Users,
		"posts", sum.Posts,
		"dua_requests", sum.DuaRequests,
		"likes", sum.Likes,
		"comments", sum.Comments,
		"communities", sum.Communities,
		"events", sum.Events,
	)
	return sum, nil
}

// engage gives each user a handful of likes, comments and bookmarks. A toggle
// that lands on an already liked target removes the like, so the counts
// track the final state.
func (s *Seeder) engage(ctx context.Context, users []*models.User, targets []models.Target, sum *Summary) error {
	if len(targets) == 0 {
		return nil
	}
	f := s.factory.faker
	pickTarget := func() models.Target { return targets[f.Number(0, len(targets)-1)] }

	for _, u := range users {
		for i := f.Number(0, 8); i > 0; i-- {
			liked, err := s.store.ToggleLike(ctx, u.ID, pickTarget())
			if err != nil {
				return fmt.Errorf("seed like: %w", err)
			}
			if liked {
				sum.Likes++
			} else {
				sum.Likes--
			}
		}
		for i := f.Number(0, 3); i > 0; i-- {
			t := pickTarget()
			in := models.CreateCommentInput{
				UserID:   u.ID,
				Content:  f.Sentence(f.Number(3, 12)),
				IsPrayer: t.Kind() == models.TargetDuaRequest && f.Bool(),
			}
			switch t.Kind() {
			case models.TargetPost:
				id := t.ID()
				in.PostID = &id
			case models.TargetDuaRequest:
				id := t.ID()
				in.DuaRequestID = &id
			}
			if _, err := s.store.CreateComment(ctx, in); err != nil {
				return fmt.Errorf("seed comment: %w", err)
			}
			sum.Comments++
		}
		for i := f.Number(0, 2); i > 0; i-- {
			on, err := s.store.ToggleBookmark(ctx, u.ID, pickTarget())
			if err != nil {
				return fmt.Errorf("seed bookmark: %w", err)
			}
			if on {
				sum.Bookmarks++
			} else {
				sum.Bookmarks--
			}
		}
	}
	return nil
}

func (s *Seeder) groups(ctx context.Context, users []*models.User, opts Options, sum *Summary) error {
	f := s.factory.faker
	pick := func() *models.User { return users[f.Number(0, len(users)-1)] }

	for i := 0; i < opts.NumCommunities; i++ {
		c, err := s.store.CreateCommunity(ctx, s.factory.BuildCommunity(pick().ID))
		if err != nil {
			return fmt.Errorf("seed community: %w", err)
		}
		sum.Communities++
		sum.Members++
		joined := map[string]bool{c.CreatedBy: true}
		for j := f.Number(0, len(users)/2); j > 0; j-- {
			u := pick()
			if joined[u.ID] {
				continue
			}
			if err := s.store.JoinCommunity(ctx, c.ID, u.ID); err != nil {
				return fmt.Errorf("seed join: %w", err)
			}
			joined[u.ID] = true
			sum.Members++
		}
	}

	for i := 0; i < opts.NumEvents; i++ {
		e, err := s.store.CreateEvent(ctx, s.factory.BuildEvent(pick().ID))
		if err != nil {
			return fmt.Errorf("seed event: %w", err)
		}
		sum.Events++
		seen := make(map[string]bool)
		for j := f.Number(0, len(users)); j > 0; j-- {
			u := pick()
			if seen[u.ID] {
				continue
			}
			err := s.store.AttendEvent(ctx, e.ID, u.ID)
			if models.IsValidation(err) {
				// full
				break
			}
			if err != nil {
				return fmt.Errorf("seed attend: %w", err)
			}
			seen[u.ID] = true
			sum.Attendees++
		}
	}
	return nil
}
