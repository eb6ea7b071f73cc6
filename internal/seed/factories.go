// Package seed provides helpers to create demo data through the storage
// interface. These helpers are intended for development and testing only.
package seed

import (
	"fmt"
	"strings"
	"time"

	"selam/internal/models"

	"github.com/brianvoe/gofakeit/v6"
)

var (
	postCategories      = []string{"Genel", "Ramazan", "Cuma", "Hadis", "Sohbet", "Kuran"}
	duaCategories       = []string{"Sağlık", "Aile", "İş", "Eğitim", "Genel", "Yolculuk"}
	communityCategories = []string{"Gençlik", "Aile", "Eğitim", "Yardımlaşma", "Spor"}
	eventTypes          = []string{"iftar", "sohbet", "kermes", "seminer", "kuran_kursu"}
	tagPool             = []string{"ramazan", "cuma", "iftar", "sahur", "kandil", "bayram", "dua", "hadis", "zekat"}

	postOpeners = []string{
		"Hayırlı cumalar", "Allah kabul etsin", "Bugünün hadisi", "Selamün aleyküm",
		"Ramazan hazırlıkları", "Kandiliniz mübarek olsun",
	}
	duaTitles = []string{
		"Şifa için dua", "Sınav için dua", "Ailem için dua", "Yeni iş için dua",
		"Yolculuk için dua", "Hasta annem için dua",
	}
)

// Factory builds insert projections with gofakeit. A Factory built with the
// same seed yields the same sequence of inputs.
type Factory struct {
	faker *gofakeit.Faker
	now   time.Time
	seq   int
}

// NewFactory creates a Factory. seed 0 picks a random seed.
func NewFactory(seed int64) *Factory {
	return &Factory{faker: gofakeit.New(seed), now: time.Now()}
}

func (f *Factory) next() int {
	f.seq++
	return f.seq
}

// BuildUser returns a user with a unique username and email.
func (f *Factory) BuildUser() models.CreateUserInput {
	first, last := f.faker.FirstName(), f.faker.LastName()
	n := f.next()
	username := fmt.Sprintf("%s%s%d", slug(first), slug(last[:1]), n)
	if len(username) < 3 {
		username = "user" + username
	}
	bio := f.faker.Sentence(8)
	city := f.faker.City()
	return models.CreateUserInput{
		Email:    fmt.Sprintf("%s@example.com", username),
		Name:     first + " " + last,
		Username: username,
		Bio:      &bio,
		Location: &city,
	}
}

// BuildPost returns a post by userID. Roughly one in four is an image post.
func (f *Factory) BuildPost(userID string) models.CreatePostInput {
	in := models.CreatePostInput{
		UserID:   userID,
		Content:  f.faker.RandomString(postOpeners) + ". " + f.faker.Paragraph(1, 2, 12, " "),
		Type:     models.PostTypeText,
		Category: f.faker.RandomString(postCategories),
		Tags:     f.tags(3),
	}
	if f.faker.Number(1, 4) == 1 {
		media := fmt.Sprintf("https://picsum.photos/seed/%s/800/800", f.faker.UUID())
		in.Type = models.PostTypeImage
		in.MediaURL = &media
	}
	return in
}

// BuildDuaRequest returns a dua request by userID.
func (f *Factory) BuildDuaRequest(userID string) models.CreateDuaRequestInput {
	return models.CreateDuaRequestInput{
		UserID:      userID,
		Title:       f.faker.RandomString(duaTitles),
		Content:     f.faker.Paragraph(1, 2, 10, " "),
		Category:    f.faker.RandomString(duaCategories),
		IsUrgent:    f.faker.Number(1, 5) == 1,
		IsAnonymous: f.faker.Number(1, 4) == 1,
		Tags:        f.tags(2),
	}
}

// BuildCommunity returns a community created by createdBy.
func (f *Factory) BuildCommunity(createdBy string) models.CreateCommunityInput {
	city := f.faker.City()
	return models.CreateCommunityInput{
		Name:        fmt.Sprintf("%s %s", city, f.faker.RandomString(communityCategories)),
		Description: f.faker.Sentence(12),
		Category:    f.faker.RandomString(communityCategories),
		IsPrivate:   f.faker.Number(1, 6) == 1,
		Location:    &city,
		CreatedBy:   createdBy,
	}
}

// BuildEvent returns an event in the next 60 days created by createdBy.
func (f *Factory) BuildEvent(createdBy string) models.CreateEventInput {
	at := f.now.AddDate(0, 0, f.faker.Number(1, 60))
	contact := f.faker.Phone()
	price := "0"
	if f.faker.Number(1, 3) == 1 {
		price = fmt.Sprintf("%d.00", f.faker.Number(5, 250))
	}
	return models.CreateEventInput{
		Title:            f.faker.RandomString(eventTypes) + " " + f.faker.City(),
		Description:      f.faker.Paragraph(1, 2, 10, " "),
		Type:             f.faker.RandomString(eventTypes),
		Date:             at.Format(models.EventDateLayout),
		Time:             fmt.Sprintf("%02d:%02d", f.faker.Number(9, 21), 15*f.faker.Number(0, 3)),
		LocationName:     f.faker.Company(),
		LocationAddress:  f.faker.Street(),
		LocationCity:     f.faker.City(),
		OrganizerName:    f.faker.Name(),
		OrganizerContact: &contact,
		Capacity:         f.faker.Number(5, 150),
		Price:            price,
		IsOnline:         f.faker.Number(1, 5) == 1,
		Tags:             f.tags(2),
		Requirements:     []string{f.faker.Sentence(4)},
		CreatedBy:        createdBy,
	}
}

// tags picks up to max distinct tags.
func (f *Factory) tags(max int) []string {
	n := f.faker.Number(0, max)
	picked := make([]string, 0, n)
	seen := make(map[string]bool, n)
	for len(picked) < n {
		t := f.faker.RandomString(tagPool)
		if seen[t] {
			continue
		}
		seen[t] = true
		picked = append(picked, t)
	}
	return picked
}

// slug lowercases s and keeps ASCII letters and digits.
func slug(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		}
		return -1
	}, s)
}
