package server

import (
	"strings"

	"forum/internal/service"

	"github.com/gofiber/fiber/v2"
)

// commentRequest accepts the text under either key.
type commentRequest struct {
	Body string `json:"body"`
	Text string `json:"text"`
}

func (r commentRequest) text() string {
	if strings.TrimSpace(r.Body) != "" {
		return r.Body
	}
	return r.Text
}

// CreateComment handles POST /community/groups/:groupId/posts/:postId/comments
// @Summary Comment on a post
// @Tags comments
// @Accept json
// @Produce json
// @Param groupId path int true "Group ID"
// @Param postId path int true "Post ID"
// @Param request body commentRequest true "Comment"
// @Success 201 {object} models.Comment
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /community/groups/{groupId}/posts/{postId}/comments [post]
func (s *Server) CreateComment(c *fiber.Ctx) error {
	ids, err := parseIDs(c, "groupId", "postId")
	if err != nil {
		return nil
	}
	var req commentRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	comment, err := s.commentService.Create(c.UserContext(), service.CreateCommentInput{
		UserID:  actor(c),
		GroupID: ids[0],
		PostID:  ids[1],
		Body:    req.text(),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

// UpdateComment handles PUT /community/groups/:groupId/posts/:postId/comments/:commentId
// @Summary Edit a comment
// @Description Only the author may edit
// @Tags comments
// @Accept json
// @Produce json
// @Param groupId path int true "Group ID"
// @Param postId path int true "Post ID"
// @Param commentId path int true "Comment ID"
// @Param request body commentRequest true "Comment"
// @Success 200 {object} models.Comment
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /community/groups/{groupId}/posts/{postId}/comments/{commentId} [put]
func (s *Server) UpdateComment(c *fiber.Ctx) error {
	ids, err := parseIDs(c, "groupId", "postId", "commentId")
	if err != nil {
		return nil
	}
	var req commentRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	comment, err := s.commentService.Update(c.UserContext(), service.UpdateCommentInput{
		UserID:    actor(c),
		GroupID:   ids[0],
		PostID:    ids[1],
		CommentID: ids[2],
		Body:      req.text(),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(comment)
}

// DeleteComment handles DELETE /community/groups/:groupId/posts/:postId/comments/:commentId
// @Summary Delete a comment
// @Description The author or the group creator may delete
// @Tags comments
// @Produce json
// @Param groupId path int true "Group ID"
// @Param postId path int true "Post ID"
// @Param commentId path int true "Comment ID"
// @Success 200 {object} object{message=string}
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /community/groups/{groupId}/posts/{postId}/comments/{commentId} [delete]
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	ids, err := parseIDs(c, "groupId", "postId", "commentId")
	if err != nil {
		return nil
	}

	err = s.commentService.Delete(c.UserContext(), service.DeleteCommentInput{
		UserID:    actor(c),
		GroupID:   ids[0],
		PostID:    ids[1],
		CommentID: ids[2],
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Comment deleted successfully"})
}
