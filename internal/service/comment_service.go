package service

import (
	"context"

	"forum/internal/guard"
	"forum/internal/models"
	"forum/internal/repository"
)

var (
	ErrCommentNotFound = models.NewNotFoundError("Comment not found")
	// ErrPostNotInGroup is returned when creating a comment on a post that is
	// missing or lives in another group.
	ErrPostNotInGroup = models.NewNotFoundError("Post not found in this group")
)

type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	groupRepo   repository.GroupRepository
}

type CreateCommentInput struct {
	UserID  uint
	GroupID uint
	PostID  uint
	Body    string
}

type UpdateCommentInput struct {
	UserID    uint
	GroupID   uint
	PostID    uint
	CommentID uint
	Body      string
}

type DeleteCommentInput struct {
	UserID    uint
	GroupID   uint
	PostID    uint
	CommentID uint
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
	groupRepo repository.GroupRepository,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		groupRepo:   groupRepo,
	}
}

func commentBody(raw string) (string, error) {
	body := cleanText(raw)
	if body == "" {
		return "", models.NewValidationError("Comment body is required")
	}
	return body, nil
}

// Create comments on a post of a group the author belongs to.
func (s *CommentService) Create(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	body, err := commentBody(in.Body)
	if err != nil {
		return nil, err
	}

	group, err := loadGroup(ctx, s.groupRepo, in.GroupID)
	if err != nil {
		return nil, err
	}
	if err := authorize(ctx, in.UserID, guard.ForGroup(group), guard.RelationMember); err != nil {
		return nil, err
	}

	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, internal(err)
	}
	if post == nil || post.GroupID != group.ID {
		return nil, ErrPostNotInGroup
	}

	comment := &models.Comment{PostID: post.ID, AuthorID: in.UserID, Body: body}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, internal(err)
	}
	return s.load(ctx, comment.ID)
}

// Update edits a comment's body. Only the author may do this.
func (s *CommentService) Update(ctx context.Context, in UpdateCommentInput) (*models.Comment, error) {
	comment, _, err := s.resolve(ctx, in.CommentID, in.PostID, in.GroupID)
	if err != nil {
		return nil, err
	}
	if err := authorize(ctx, in.UserID, guard.Target{AuthorID: comment.AuthorID}, guard.RelationAuthor); err != nil {
		return nil, err
	}

	body, err := commentBody(in.Body)
	if err != nil {
		return nil, err
	}
	comment.Body = body
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, internal(err)
	}
	return s.load(ctx, comment.ID)
}

// Delete removes a comment. The author or the group creator may do this.
func (s *CommentService) Delete(ctx context.Context, in DeleteCommentInput) error {
	comment, post, err := s.resolve(ctx, in.CommentID, in.PostID, in.GroupID)
	if err != nil {
		return err
	}
	group, err := loadGroup(ctx, s.groupRepo, post.GroupID)
	if err != nil {
		return err
	}
	if err := authorize(ctx, in.UserID, guard.ForComment(comment, group), guard.RelationAuthorOrGroupCreator); err != nil {
		return err
	}

	if err := s.commentRepo.Delete(ctx, comment.ID); err != nil {
		return internal(err)
	}
	return nil
}

// resolve loads a comment and its post and checks both against the route.
func (s *CommentService) resolve(ctx context.Context, commentID, postID, groupID uint) (*models.Comment, *models.Post, error) {
	comment, err := s.load(ctx, commentID)
	if err != nil {
		return nil, nil, err
	}
	if err := guard.MatchParent(comment.PostID, postID); err != nil {
		return nil, nil, err
	}

	post, err := s.postRepo.GetByID(ctx, comment.PostID)
	if err != nil {
		return nil, nil, internal(err)
	}
	if post == nil {
		return nil, nil, ErrPostNotFound
	}
	if err := guard.MatchParent(post.GroupID, groupID); err != nil {
		return nil, nil, err
	}
	return comment, post, nil
}

func (s *CommentService) load(ctx context.Context, id uint) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, internal(err)
	}
	if comment == nil {
		return nil, ErrCommentNotFound
	}
	return comment, nil
}
