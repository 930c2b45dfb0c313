package seed

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/brianvoe/gofakeit/v6"
)

// Options sizes a generated fixture.
type Options struct {
	Users         int
	Groups        int
	PostsPerGroup int
	MaxComments   int
	// Seed makes generation repeatable; zero picks a random seed.
	Seed int64
}

// Generate builds a random fixture. Every group gets a random subset of
// users as members, and only members author its posts and comments.
func Generate(opts Options) *Fixture {
	faker := gofakeit.New(opts.Seed)
	fx := &Fixture{}

	for i := 0; i < opts.Users; i++ {
		first := strings.ToLower(faker.FirstName())
		fx.Users = append(fx.Users, UserFixture{
			Name:     faker.FirstName() + " " + faker.LastName(),
			Email:    fmt.Sprintf("%s.%d@example.com", first, i+1),
			Password: DefaultPassword,
		})
	}
	if len(fx.Users) == 0 {
		return fx
	}

	for g := 0; g < opts.Groups; g++ {
		creator := fx.Users[faker.Number(0, len(fx.Users)-1)].Email
		members := []string{creator}
		for _, u := range fx.Users {
			if u.Email != creator && faker.Bool() {
				members = append(members, u.Email)
			}
		}

		group := GroupFixture{
			Name:    capitalize(faker.HipsterWord()) + " " + capitalize(faker.Noun()),
			Bio:     faker.HipsterSentence(8),
			Creator: creator,
			Members: members[1:],
		}
		for p := 0; p < opts.PostsPerGroup; p++ {
			post := PostFixture{
				Author:  members[faker.Number(0, len(members)-1)],
				Title:   strings.TrimSuffix(faker.Sentence(5), "."),
				Content: faker.Paragraph(1, 3, 12, " "),
			}
			if opts.MaxComments > 0 {
				for c := faker.Number(0, opts.MaxComments); c > 0; c-- {
					post.Comments = append(post.Comments, CommentFixture{
						Author: members[faker.Number(0, len(members)-1)],
						Body:   faker.Sentence(10),
					})
				}
			}
			group.Posts = append(group.Posts, post)
		}
		fx.Groups = append(fx.Groups, group)
	}
	return fx
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
