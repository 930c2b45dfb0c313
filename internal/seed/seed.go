package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"forum/internal/middleware"
	"forum/internal/service"
)

// Seeder applies fixtures through the service layer.
type Seeder struct {
	users    *service.UserService
	groups   *service.GroupService
	posts    *service.PostService
	comments *service.CommentService
}

// Result counts what Apply created.
type Result struct {
	Users    int
	Groups   int
	Posts    int
	Comments int
}

func NewSeeder(users *service.UserService, groups *service.GroupService, posts *service.PostService, comments *service.CommentService) *Seeder {
	return &Seeder{users: users, groups: groups, posts: posts, comments: comments}
}

// Apply creates everything in fx. Users that already exist are logged in
// instead, so a fixture can be applied to a populated database.
func (s *Seeder) Apply(ctx context.Context, fx *Fixture) (*Result, error) {
	res := &Result{}
	ids := make(map[string]uint, len(fx.Users))

	for _, u := range fx.Users {
		password := u.Password
		if password == "" {
			password = DefaultPassword
		}
		session, err := s.users.Register(ctx, service.RegisterInput{Name: u.Name, Email: u.Email, Password: password})
		if errors.Is(err, service.ErrDuplicateEmail) {
			session, err = s.users.Login(ctx, service.LoginInput{Email: u.Email, Password: password})
		} else if err == nil {
			res.Users++
		}
		if err != nil {
			return res, fmt.Errorf("user %s: %w", u.Email, err)
		}
		ids[u.Email] = session.User.ID
	}

	lookup := func(email string) (uint, error) {
		id, ok := ids[email]
		if !ok {
			return 0, fmt.Errorf("unknown user %q", email)
		}
		return id, nil
	}

	for _, g := range fx.Groups {
		creatorID, err := lookup(g.Creator)
		if err != nil {
			return res, fmt.Errorf("group %s: %w", g.Name, err)
		}
		group, err := s.groups.Create(ctx, service.CreateGroupInput{UserID: creatorID, Name: g.Name, Bio: g.Bio})
		if err != nil {
			return res, fmt.Errorf("group %s: %w", g.Name, err)
		}
		res.Groups++

		for _, email := range g.Members {
			memberID, err := lookup(email)
			if err != nil {
				return res, fmt.Errorf("group %s: %w", g.Name, err)
			}
			if _, err := s.groups.Join(ctx, group.ID, memberID); err != nil && !errors.Is(err, service.ErrAlreadyMember) {
				return res, fmt.Errorf("join %s to %s: %w", email, g.Name, err)
			}
		}

		for _, p := range g.Posts {
			authorID, err := lookup(p.Author)
			if err != nil {
				return res, fmt.Errorf("post %q: %w", p.Title, err)
			}
			post, err := s.posts.Create(ctx, service.CreatePostInput{UserID: authorID, GroupID: group.ID, Title: p.Title, Content: p.Content})
			if err != nil {
				return res, fmt.Errorf("post %q: %w", p.Title, err)
			}
			res.Posts++

			for _, c := range p.Comments {
				commenterID, err := lookup(c.Author)
				if err != nil {
					return res, fmt.Errorf("comment on %q: %w", p.Title, err)
				}
				if _, err := s.comments.Create(ctx, service.CreateCommentInput{
					UserID: commenterID, GroupID: group.ID, PostID: post.ID, Body: c.Body,
				}); err != nil {
					return res, fmt.Errorf("comment on %q: %w", p.Title, err)
				}
				res.Comments++
			}
		}
	}

	middleware.Logger.InfoContext(ctx, "seed applied",
		slog.Int("users", res.Users),
		slog.Int("groups", res.Groups),
		slog.Int("posts", res.Posts),
		slog.Int("comments", res.Comments),
	)
	return res, nil
}
