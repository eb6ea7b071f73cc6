package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"selam/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stepClock advances one second per reading so creation order is strict.
type stepClock struct {
	mu sync.Mutex
	t  time.Time
}

func newStepClock() *stepClock {
	return &stepClock{t: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(time.Second)
	return c.t
}

type storageFactory func(t *testing.T, now func() time.Time) Storage

func strPtr(s string) *string { return &s }

func mustUser(t *testing.T, s Storage, name string) *models.User {
	t.Helper()
	u, err := s.CreateUser(context.Background(), models.CreateUserInput{
		Email:    name + "@example.com",
		Name:     name,
		Username: name,
	})
	require.NoError(t, err)
	return u
}

func mustPost(t *testing.T, s Storage, userID string, tags ...string) *models.Post {
	t.Helper()
	p, err := s.CreatePost(context.Background(), models.CreatePostInput{
		UserID:  userID,
		Content: "selam " + fmt.Sprint(tags),
		Tags:    tags,
	})
	require.NoError(t, err)
	return p
}

func mustDua(t *testing.T, s Storage, userID, title string) *models.DuaRequest {
	t.Helper()
	d, err := s.CreateDuaRequest(context.Background(), models.CreateDuaRequestInput{
		UserID:   userID,
		Title:    title,
		Content:  "please pray for " + title,
		Category: "health",
	})
	require.NoError(t, err)
	return d
}

func postIDs(posts []*models.Post) []string {
	ids := make([]string, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.ID)
	}
	return ids
}

// runStorageContract checks the behaviour every Storage backend shares.
func runStorageContract(t *testing.T, newStorage storageFactory) {
	ctx := context.Background()
	setup := func(t *testing.T) Storage {
		return newStorage(t, newStepClock().Now)
	}

	t.Run("Ping", func(t *testing.T) {
		assert.NoError(t, setup(t).Ping(ctx))
	})

	t.Run("Users", func(t *testing.T) {
		s := setup(t)
		u := mustUser(t, s, "ayse")
		assert.NotEmpty(t, u.ID)
		assert.Equal(t, models.RoleUser, u.Role)

		got, err := s.GetUser(ctx, u.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "ayse", got.Username)

		got, err = s.GetUserByUsername(ctx, "ayse")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, u.ID, got.ID)

		got, err = s.GetUserByEmail(ctx, "ayse@example.com")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, u.ID, got.ID)

		for _, id := range []string{uuid.NewString(), "not-a-uuid"} {
			got, err = s.GetUser(ctx, id)
			assert.NoError(t, err)
			assert.Nil(t, got)
		}
		got, err = s.GetUserByUsername(ctx, "nobody")
		assert.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("DuplicateUser", func(t *testing.T) {
		s := setup(t)
		mustUser(t, s, "ayse")

		_, err := s.CreateUser(ctx, models.CreateUserInput{Email: "ayse@example.com", Name: "x", Username: "other"})
		assert.True(t, models.IsConflict(err), "email: %v", err)

		_, err = s.CreateUser(ctx, models.CreateUserInput{Email: "other@example.com", Name: "x", Username: "ayse"})
		assert.True(t, models.IsConflict(err), "username: %v", err)
	})

	t.Run("UpdateUser", func(t *testing.T) {
		s := setup(t)
		u := mustUser(t, s, "ayse")
		mustUser(t, s, "fatma")

		updated, err := s.UpdateUser(ctx, u.ID, models.UpdateUserInput{
			Name: strPtr("Ayşe Yılmaz"),
			Bio:  strPtr("Istanbul"),
		})
		require.NoError(t, err)
		require.NotNil(t, updated)
		assert.Equal(t, "Ayşe Yılmaz", updated.Name)
		require.NotNil(t, updated.Bio)
		assert.Equal(t, "Istanbul", *updated.Bio)
		assert.Equal(t, "ayse", updated.Username)

		got, err := s.GetUser(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, "Ayşe Yılmaz", got.Name)

		_, err = s.UpdateUser(ctx, u.ID, models.UpdateUserInput{Username: strPtr("fatma")})
		assert.True(t, models.IsConflict(err), "%v", err)

		missing, err := s.UpdateUser(ctx, uuid.NewString(), models.UpdateUserInput{Name: strPtr("x")})
		assert.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("CreatePostDefaults", func(t *testing.T) {
		s := setup(t)
		u := mustUser(t, s, "ayse")
		p := mustPost(t, s, u.ID)

		assert.Equal(t, models.PostTypeText, p.Type)
		assert.Equal(t, models.DefaultCategory, p.Category)
		assert.Zero(t, p.LikesCount)
		assert.Zero(t, p.CommentsCount)
		assert.Zero(t, p.SharesCount)

		got, err := s.GetPost(ctx, p.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		require.NotNil(t, got.User)
		assert.Equal(t, "ayse", got.User.Username)
		assert.Equal(t, models.DefaultCategory, got.Category)

		_, err = s.CreatePost(ctx, models.CreatePostInput{UserID: uuid.NewString(), Content: "orphan"})
		assert.True(t, models.IsNotFound(err), "%v", err)

		got, err = s.GetPost(ctx, uuid.NewString())
		assert.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("FeedOrderAndPaging", func(t *testing.T) {
		s := setup(t)
		u := mustUser(t, s, "ayse")
		p1 := mustPost(t, s, u.ID)
		p2 := mustPost(t, s, u.ID)
		p3 := mustPost(t, s, u.ID)

		posts, err := s.GetPosts(ctx, models.PostFilter{})
		require.NoError(t, err)
		assert.Equal(t, []string{p3.ID, p2.ID, p1.ID}, postIDs(posts))
		for _, p := range posts {
			require.NotNil(t, p.User)
			assert.Equal(t, u.ID, p.User.ID)
		}

		posts, err = s.GetPosts(ctx, models.PostFilter{Limit: 2, Offset: 1})
		require.NoError(t, err)
		assert.Equal(t, []string{p2.ID, p1.ID}, postIDs(posts))

		posts, err = s.GetPosts(ctx, models.PostFilter{Limit: 10, Offset: 10})
		require.NoError(t, err)
		assert.NotNil(t, posts)
		assert.Empty(t, posts)
	})

	t.Run("SameInstantOrdersByID", func(t *testing.T) {
		fixed := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
		s := newStorage(t, func() time.Time { return fixed })
		u := mustUser(t, s, "ayse")
		first := mustPost(t, s, u.ID)
		second := mustPost(t, s, u.ID)

		want := []string{first.ID, second.ID}
		sort.Sort(sort.Reverse(sort.StringSlice(want)))

		for range 2 {
			posts, err := s.GetPosts(ctx, models.PostFilter{})
			require.NoError(t, err)
			assert.Equal(t, want, postIDs(posts))
		}
	})

	t.Run("FeedTagFilter", func(t *testing.T) {
		s := setup(t)
		u := mustUser(t, s, "ayse")
		both := mustPost(t, s, u.ID, "ramazan", "iftar")
		iftar := mustPost(t, s, u.ID, "iftar")
		mustPost(t, s, u.ID, "ramazan_2025")
		mustPost(t, s, u.ID)

		posts, err := s.GetPosts(ctx, models.PostFilter{Tag: "ramazan"})
		require.NoError(t, err)
		assert.Equal(t, []string{both.ID}, postIDs(posts))

		posts, err = s.GetPosts(ctx, models.PostFilter{Tag: "iftar"})
		require.NoError(t, err)
		assert.Equal(t, []string{iftar.ID, both.ID}, postIDs(posts))

		posts, err = s.GetPosts(ctx, models.PostFilter{Tag: "ramazan%"})
		require.NoError(t, err)
		assert.Empty(t, posts)
	})

	t.Run("ToggleLike", func(t *testing.T) {
		s := setup(t)
		u := mustUser(t, s, "ayse")
		p := mustPost(t, s, u.ID)
		target := models.PostTarget(p.ID)

		liked, err := s.ToggleLike(ctx, u.ID, target)
		require.NoError(t, err)
		assert.True(t, liked)

		has, err := s.GetUserLike(ctx, u.ID, target)
		require.NoError(t, err)
		assert.True(t, has)

		got, err := s.GetPost(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, got.LikesCount)

		liked, err = s.ToggleLike(ctx, u.ID, target)
		require.NoError(t, err)
		assert.False(t, liked)

		has, err = s.GetUserLike(ctx, u.ID, target)
		require.NoError(t, err)
		assert.False(t, has)

		got, err = s.GetPost(ctx, p.ID)
		require.NoError(t, err)
		assert.Zero(t, got.LikesCount)
	})

	t.Run("ToggleLikeRejectsBadTargets", func(t *testing.T) {
		s := setup(t)
		u := mustUser(t, s, "ayse")
		p := mustPost(t, s, u.ID)

		_, err := s.ToggleLike(ctx, u.ID, models.Target{})
		assert.True(t, models.IsValidation(err), "%v", err)

		_, err = s.ToggleLike(ctx, u.ID, models.PostTarget(uuid.NewString()))
		assert.True(t, models.IsNotFound(err), "%v", err)

		_, err = s.ToggleLike(ctx, u.ID, models.DuaRequestTarget("nope"))
		assert.True(t, models.IsNotFound(err), "%v", err)

		_, err = s.ToggleLike(ctx, uuid.NewString(), models.PostTarget(p.ID))
		assert.True(t, models.IsNotFound(err), "%v", err)

		_, err = s.GetUserLike(ctx, u.ID, models.Target{})
		assert.True(t, models.IsValidation(err), "%v", err)

		has, err := s.GetUserLike(ctx, u.ID, models.PostTarget(uuid.NewString()))
		assert.NoError(t, err)
		assert.False(t, has)
	})

	t.Run("PrayersCountFromDuaLikes", func(t *testing.T) {
		s := setup(t)
		u1 := mustUser(t, s, "ayse")
		u2 := mustUser(t, s, "fatma")
		d := mustDua(t, s, u1.ID, "sifa")
		target := models.DuaRequestTarget(d.ID)

		for _, u := range []*models.User{u1, u2} {
			prayed, err := s.ToggleLike(ctx, u.ID, target)
			require.NoError(t, err)
			assert.True(t, prayed)
		}

		duas, err := s.GetDuaRequests(ctx, models.DuaRequestFilter{})
		require.NoError(t, err)
		require.Len(t, duas, 1)
		assert.Equal(t, 2, duas[0].PrayersCount)
		require.NotNil(t, duas[0].User)
		assert.Equal(t, u1.ID, duas[0].User.ID)

		// The same user may like the post and the dua independently.
		p := mustPost(t, s, u1.ID)
		liked, err := s.ToggleLike(ctx, u1.ID, models.PostTarget(p.ID))
		require.NoError(t, err)
		assert.True(t, liked)
		has, err := s.GetUserLike(ctx, u1.ID, target)
		require.NoError(t, err)
		assert.True(t, has)
	})

	t.Run("ToggleBookmark", func(t *testing.T) {
		s := setup(t)
		u := mustUser(t, s, "ayse")
		p := mustPost(t, s, u.ID)
		d := mustDua(t, s, u.ID, "sabir")

		for _, target := range []models.Target{models.PostTarget(p.ID), models.DuaRequestTarget(d.ID)} {
			on, err := s.ToggleBookmark(ctx, u.ID, target)
			require.NoError(t, err)
			assert.True(t, on, target.String())

			has, err := s.GetUserBookmark(ctx, u.ID, target)
			require.NoError(t, err)
			assert.True(t, has, target.String())

			liked, err := s.GetUserLike(ctx, u.ID, target)
			require.NoError(t, err)
			assert.False(t, liked, "bookmarks and likes are separate")

			on, err = s.ToggleBookmark(ctx, u.ID, target)
			require.NoError(t, err)
			assert.False(t, on, target.String())
		}

		_, err := s.ToggleBookmark(ctx, u.ID, models.Target{})
		assert.True(t, models.IsValidation(err), "%v", err)
	})

	t.Run("Comments", func(t *testing.T) {
		s := setup(t)
		u := mustUser(t, s, "ayse")
		p := mustPost(t, s, u.ID)
		d := mustDua(t, s, u.ID, "sifa")

		first, err := s.CreateComment(ctx, models.CreateCommentInput{UserID: u.ID, PostID: &p.ID, Content: "amin"})
		require.NoError(t, err)
		second, err := s.CreateComment(ctx, models.CreateCommentInput{UserID: u.ID, PostID: &p.ID, Content: "maşallah"})
		require.NoError(t, err)
		prayer, err := s.CreateComment(ctx, models.CreateCommentInput{UserID: u.ID, DuaRequestID: &d.ID, Content: "Allah şifa versin", IsPrayer: true})
		require.NoError(t, err)
		assert.True(t, prayer.IsPrayer)
		assert.Equal(t, models.DuaRequestTarget(d.ID), prayer.Target())

		comments, err := s.GetCommentsByPostID(ctx, p.ID)
		require.NoError(t, err)
		require.Len(t, comments, 2)
		assert.Equal(t, second.ID, comments[0].ID)
		assert.Equal(t, first.ID, comments[1].ID)
		require.NotNil(t, comments[0].User)
		assert.Equal(t, "ayse", comments[0].User.Username)

		comments, err = s.GetCommentsByDuaRequestID(ctx, d.ID)
		require.NoError(t, err)
		require.Len(t, comments, 1)
		assert.Equal(t, prayer.ID, comments[0].ID)

		got, err := s.GetPost(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, got.CommentsCount)

		duas, err := s.GetDuaRequests(ctx, models.DuaRequestFilter{})
		require.NoError(t, err)
		require.Len(t, duas, 1)
		assert.Equal(t, 1, duas[0].CommentsCount)

		comments, err = s.GetCommentsByPostID(ctx, uuid.NewString())
		require.NoError(t, err)
		assert.NotNil(t, comments)
		assert.Empty(t, comments)
	})

	t.Run("CommentTargetShape", func(t *testing.T) {
		s := setup(t)
		u := mustUser(t, s, "ayse")
		p := mustPost(t, s, u.ID)
		d := mustDua(t, s, u.ID, "sifa")

		_, err := s.CreateComment(ctx, models.CreateCommentInput{UserID: u.ID, PostID: &p.ID, DuaRequestID: &d.ID, Content: "x"})
		assert.True(t, models.IsValidation(err), "both: %v", err)

		_, err = s.CreateComment(ctx, models.CreateCommentInput{UserID: u.ID, Content: "x"})
		assert.True(t, models.IsValidation(err), "neither: %v", err)

		_, err = s.CreateComment(ctx, models.CreateCommentInput{UserID: u.ID, PostID: strPtr(uuid.NewString()), Content: "x"})
		assert.True(t, models.IsNotFound(err), "missing post: %v", err)

		_, err = s.CreateComment(ctx, models.CreateCommentInput{UserID: uuid.NewString(), PostID: &p.ID, Content: "x"})
		assert.True(t, models.IsNotFound(err), "missing user: %v", err)
	})

	t.Run("DeletePostCascades", func(t *testing.T) {
		s := setup(t)
		u := mustUser(t, s, "ayse")
		p := mustPost(t, s, u.ID)
		other := mustPost(t, s, u.ID)

		for _, post := range []*models.Post{p, other} {
			_, err := s.ToggleLike(ctx, u.ID, models.PostTarget(post.ID))
			require.NoError(t, err)
			_, err = s.ToggleBookmark(ctx, u.ID, models.PostTarget(post.ID))
			require.NoError(t, err)
			_, err = s.CreateComment(ctx, models.CreateCommentInput{UserID: u.ID, PostID: &post.ID, Content: "amin"})
			require.NoError(t, err)
		}

		deleted, err := s.DeletePost(ctx, p.ID)
		require.NoError(t, err)
		assert.True(t, deleted)

		got, err := s.GetPost(ctx, p.ID)
		require.NoError(t, err)
		assert.Nil(t, got)

		has, err := s.GetUserLike(ctx, u.ID, models.PostTarget(p.ID))
		require.NoError(t, err)
		assert.False(t, has)
		has, err = s.GetUserBookmark(ctx, u.ID, models.PostTarget(p.ID))
		require.NoError(t, err)
		assert.False(t, has)
		comments, err := s.GetCommentsByPostID(ctx, p.ID)
		require.NoError(t, err)
		assert.Empty(t, comments)

		kept, err := s.GetPost(ctx, other.ID)
		require.NoError(t, err)
		require.NotNil(t, kept)
		assert.Equal(t, 1, kept.LikesCount)
		assert.Equal(t, 1, kept.CommentsCount)

		deleted, err = s.DeletePost(ctx, p.ID)
		require.NoError(t, err)
		assert.False(t, deleted)

		deleted, err = s.DeletePost(ctx, "not-a-uuid")
		require.NoError(t, err)
		assert.False(t, deleted)
	})

	t.Run("DuaRequests", func(t *testing.T) {
		s := setup(t)
		u := mustUser(t, s, "ayse")
		older := mustDua(t, s, u.ID, "sifa")
		newer := mustDua(t, s, u.ID, "sabir")

		assert.Zero(t, newer.PrayersCount)
		assert.False(t, newer.IsUrgent)

		duas, err := s.GetDuaRequests(ctx, models.DuaRequestFilter{})
		require.NoError(t, err)
		require.Len(t, duas, 2)
		assert.Equal(t, newer.ID, duas[0].ID)
		assert.Equal(t, older.ID, duas[1].ID)

		duas, err = s.GetDuaRequests(ctx, models.DuaRequestFilter{Limit: 1, Offset: 1})
		require.NoError(t, err)
		require.Len(t, duas, 1)
		assert.Equal(t, older.ID, duas[0].ID)

		_, err = s.CreateDuaRequest(ctx, models.CreateDuaRequestInput{UserID: uuid.NewString(), Title: "x", Content: "x", Category: "x"})
		assert.True(t, models.IsNotFound(err), "%v", err)
	})

	t.Run("Communities", func(t *testing.T) {
		s := setup(t)
		owner := mustUser(t, s, "ayse")
		member := mustUser(t, s, "fatma")

		c, err := s.CreateCommunity(ctx, models.CreateCommunityInput{
			Name:        "Kadıköy Gönüllüleri",
			Description: "Mahalle yardımlaşması",
			Category:    "volunteer",
			CreatedBy:   owner.ID,
		})
		require.NoError(t, err)
		assert.Equal(t, 1, c.MemberCount)

		require.NoError(t, s.JoinCommunity(ctx, c.ID, member.ID))
		require.NoError(t, s.JoinCommunity(ctx, c.ID, member.ID))
		require.NoError(t, s.JoinCommunity(ctx, c.ID, owner.ID))

		communities, err := s.GetCommunities(ctx)
		require.NoError(t, err)
		require.Len(t, communities, 1)
		assert.Equal(t, 2, communities[0].MemberCount)
		require.NotNil(t, communities[0].Creator)
		assert.Equal(t, owner.ID, communities[0].Creator.ID)

		err = s.JoinCommunity(ctx, uuid.NewString(), member.ID)
		assert.True(t, models.IsNotFound(err), "%v", err)
		err = s.JoinCommunity(ctx, c.ID, uuid.NewString())
		assert.True(t, models.IsNotFound(err), "%v", err)

		_, err = s.CreateCommunity(ctx, models.CreateCommunityInput{Name: "x", Description: "x", Category: "x", CreatedBy: uuid.NewString()})
		assert.True(t, models.IsNotFound(err), "%v", err)
	})

	t.Run("Events", func(t *testing.T) {
		s := setup(t)
		organizer := mustUser(t, s, "ayse")
		guest := mustUser(t, s, "fatma")
		late := mustUser(t, s, "zeynep")

		defaults, err := s.CreateEvent(ctx, models.CreateEventInput{
			Title:     "İftar",
			Type:      "iftar",
			Date:      "2025-03-10",
			Time:      "19:05",
			CreatedBy: organizer.ID,
		})
		require.NoError(t, err)
		assert.Equal(t, models.DefaultEventCapacity, defaults.Capacity)
		assert.Equal(t, models.DefaultEventPrice, defaults.Price)

		paid, err := s.CreateEvent(ctx, models.CreateEventInput{
			Title:     "Kermes",
			Type:      "charity",
			Date:      "2025-03-12",
			Time:      "11:00",
			Price:     "12.5",
			CreatedBy: organizer.ID,
		})
		require.NoError(t, err)
		assert.Equal(t, models.Price("12.50"), paid.Price)
		listed, err := s.GetEvents(ctx)
		require.NoError(t, err)
		prices := map[string]models.Price{}
		for _, ev := range listed {
			prices[ev.ID] = ev.Price
		}
		assert.Equal(t, models.Price("12.50"), prices[paid.ID])
		assert.Equal(t, models.DefaultEventPrice, prices[defaults.ID])

		e, err := s.CreateEvent(ctx, models.CreateEventInput{
			Title:     "Sohbet",
			Type:      "lecture",
			Date:      "2025-03-11",
			Time:      "20:00",
			Capacity:  1,
			Tags:      []string{"ilim"},
			CreatedBy: organizer.ID,
		})
		require.NoError(t, err)
		assert.Zero(t, e.AttendeesCount)

		require.NoError(t, s.AttendEvent(ctx, e.ID, guest.ID))
		require.NoError(t, s.AttendEvent(ctx, e.ID, guest.ID))

		err = s.AttendEvent(ctx, e.ID, late.ID)
		assert.True(t, models.IsValidation(err), "%v", err)

		events, err := s.GetEvents(ctx)
		require.NoError(t, err)
		require.Len(t, events, 3)
		assert.Equal(t, e.ID, events[0].ID)
		assert.Equal(t, 1, events[0].AttendeesCount)
		assert.Equal(t, []string{"ilim"}, []string(events[0].Tags))
		require.NotNil(t, events[0].Creator)
		assert.Equal(t, organizer.ID, events[0].Creator.ID)
		assert.Zero(t, events[1].AttendeesCount)
		assert.Zero(t, events[2].AttendeesCount)

		err = s.AttendEvent(ctx, uuid.NewString(), guest.ID)
		assert.True(t, models.IsNotFound(err), "%v", err)
		err = s.AttendEvent(ctx, defaults.ID, uuid.NewString())
		assert.True(t, models.IsNotFound(err), "%v", err)
	})

	t.Run("ConcurrentToggles", func(t *testing.T) {
		s := setup(t)
		author := mustUser(t, s, "author")
		p := mustPost(t, s, author.ID)
		target := models.PostTarget(p.ID)

		const users = 8
		likers := make([]*models.User, users)
		for i := range likers {
			likers[i] = mustUser(t, s, fmt.Sprintf("liker%d", i))
		}

		var wg sync.WaitGroup
		for _, u := range likers {
			wg.Add(1)
			go func(userID string) {
				defer wg.Done()
				_, err := s.ToggleLike(ctx, userID, target)
				assert.NoError(t, err)
			}(u.ID)
		}
		wg.Wait()

		got, err := s.GetPost(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, users, got.LikesCount)

		// An even number of toggles by one user leaves the pair unliked.
		for i := 0; i < 6; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := s.ToggleBookmark(ctx, author.ID, target)
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		has, err := s.GetUserBookmark(ctx, author.ID, target)
		require.NoError(t, err)
		assert.False(t, has)
	})
}
