// Command seed fills the configured storage backend with demo data.
package main

import (
	"context"
	"flag"
	"log"

	"selam/internal/bootstrap"
	"selam/internal/config"
	"selam/internal/repository"
	"selam/internal/seed"
)

func main() {
	numUsers := flag.Int("users", seed.DefaultOptions.NumUsers, "Number of users to create")
	numPosts := flag.Int("posts", seed.DefaultOptions.NumPosts, "Number of posts to create")
	numDuas := flag.Int("duas", seed.DefaultOptions.NumDuaRequests, "Number of dua requests to create")
	numCommunities := flag.Int("communities", seed.DefaultOptions.NumCommunities, "Number of communities to create")
	numEvents := flag.Int("events", seed.DefaultOptions.NumEvents, "Number of events to create")
	fakerSeed := flag.Int64("seed", 0, "gofakeit seed (0 = random)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()
	rt, err := bootstrap.InitRuntime(ctx, cfg, bootstrap.Options{})
	if err != nil {
		log.Fatalf("Failed to initialize runtime: %v", err)
	}
	defer func() {
		if err := rt.Close(); err != nil {
			log.Printf("close: %v", err)
		}
	}()

	if rt.Backend == repository.BackendMemory {
		log.Println("Warning: seeding the in-memory backend; the data is gone when this process exits")
	}

	sum, err := seed.NewSeeder(rt.Store, *fakerSeed).Run(ctx, seed.Options{
		NumUsers:       *numUsers,
		NumPosts:       *numPosts,
		NumDuaRequests: *numDuas,
		NumCommunities: *numCommunities,
		NumEvents:      *numEvents,
	})
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Printf("Seeded %s: %d users, %d posts, %d dua requests, %d likes, %d comments, %d bookmarks, %d communities (%d members), %d events (%d attendees)",
		rt.Backend, sum.Users, sum.Posts, sum.DuaRequests, sum.Likes, sum.Comments, sum.Bookmarks,
		sum.Communities, sum.Members, sum.Events, sum.Attendees)
}
