package service

import (
	"context"

	"forum/internal/guard"
	"forum/internal/models"
	"forum/internal/repository"
)

var ErrPostNotFound = models.NewNotFoundError("Post not found")

type PostService struct {
	postRepo  repository.PostRepository
	groupRepo repository.GroupRepository
}

type CreatePostInput struct {
	UserID  uint
	GroupID uint
	Title   string
	Content string
}

type UpdatePostInput struct {
	UserID  uint
	GroupID uint
	PostID  uint
	Title   string
	Content string
}

type DeletePostInput struct {
	UserID  uint
	GroupID uint
	PostID  uint
}

func NewPostService(postRepo repository.PostRepository, groupRepo repository.GroupRepository) *PostService {
	return &PostService{postRepo: postRepo, groupRepo: groupRepo}
}

// List returns a group's posts with their comments. Reading needs no
// membership.
func (s *PostService) List(ctx context.Context, groupID uint) ([]models.Post, error) {
	posts, err := s.postRepo.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, internal(err)
	}
	if posts == nil {
		posts = []models.Post{}
	}
	for i := range posts {
		if posts[i].Comments == nil {
			posts[i].Comments = []models.Comment{}
		}
		posts[i].CommentsCount = len(posts[i].Comments)
	}
	return posts, nil
}

func validatePost(title, content string) error {
	if title == "" || content == "" {
		return models.NewValidationError("Title and content are required")
	}
	if tooShort(title, MinPostLength) || tooShort(content, MinPostLength) {
		return models.NewValidationError("Title and content must be at least 3 characters")
	}
	return nil
}

// Create posts into a group the author belongs to.
func (s *PostService) Create(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	title, content := cleanText(in.Title), cleanText(in.Content)
	if err := validatePost(title, content); err != nil {
		return nil, err
	}

	group, err := loadGroup(ctx, s.groupRepo, in.GroupID)
	if err != nil {
		return nil, err
	}
	if err := authorize(ctx, in.UserID, guard.ForGroup(group), guard.RelationMember); err != nil {
		return nil, err
	}

	post := &models.Post{GroupID: group.ID, AuthorID: in.UserID, Title: title, Content: content}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, internal(err)
	}
	return s.reload(ctx, post.ID)
}

// Update edits title and content. Only the author may do this.
func (s *PostService) Update(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.load(ctx, in.PostID)
	if err != nil {
		return nil, err
	}
	if err := guard.MatchParent(post.GroupID, in.GroupID); err != nil {
		return nil, err
	}
	if err := authorize(ctx, in.UserID, guard.Target{AuthorID: post.AuthorID}, guard.RelationAuthor); err != nil {
		return nil, err
	}

	title, content := cleanText(in.Title), cleanText(in.Content)
	if err := validatePost(title, content); err != nil {
		return nil, err
	}

	post.Title, post.Content = title, content
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, internal(err)
	}
	return s.reload(ctx, post.ID)
}

// Delete removes a post and its comments. The author or the group creator
// may do this.
func (s *PostService) Delete(ctx context.Context, in DeletePostInput) error {
	post, err := s.load(ctx, in.PostID)
	if err != nil {
		return err
	}
	if err := guard.MatchParent(post.GroupID, in.GroupID); err != nil {
		return err
	}
	group, err := loadGroup(ctx, s.groupRepo, post.GroupID)
	if err != nil {
		return err
	}
	if err := authorize(ctx, in.UserID, guard.ForPost(post, group), guard.RelationAuthorOrGroupCreator); err != nil {
		return err
	}

	if err := s.postRepo.DeleteWithComments(ctx, post.ID); err != nil {
		return internal(err)
	}
	return nil
}

func (s *PostService) load(ctx context.Context, id uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, internal(err)
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	return post, nil
}

func (s *PostService) reload(ctx context.Context, id uint) (*models.Post, error) {
	post, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	post.Comments = []models.Comment{}
	return post, nil
}
