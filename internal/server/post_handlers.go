package server

import (
	"forum/internal/service"

	"github.com/gofiber/fiber/v2"
)

type postRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// ListPosts handles GET /community/groups/:groupId/posts
// @Summary List a group's posts
// @Description Newest first, with authors and comments
// @Tags posts
// @Produce json
// @Param groupId path int true "Group ID"
// @Success 200 {array} models.Post
// @Router /community/groups/{groupId}/posts [get]
func (s *Server) ListPosts(c *fiber.Ctx) error {
	groupID, err := parseID(c, "groupId")
	if err != nil {
		return nil
	}

	posts, err := s.postService.List(c.UserContext(), groupID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(posts)
}

// CreatePost handles POST /community/groups/:groupId/posts
// @Summary Create a post
// @Tags posts
// @Accept json
// @Produce json
// @Param groupId path int true "Group ID"
// @Param request body postRequest true "Post"
// @Success 201 {object} models.Post
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /community/groups/{groupId}/posts [post]
func (s *Server) CreatePost(c *fiber.Ctx) error {
	groupID, err := parseID(c, "groupId")
	if err != nil {
		return nil
	}
	var req postRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	post, err := s.postService.Create(c.UserContext(), service.CreatePostInput{
		UserID:  actor(c),
		GroupID: groupID,
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// UpdatePost handles PUT /community/groups/:groupId/posts/:postId
// @Summary Edit a post
// @Description Only the author may edit
// @Tags posts
// @Accept json
// @Produce json
// @Param groupId path int true "Group ID"
// @Param postId path int true "Post ID"
// @Param request body postRequest true "Post"
// @Success 200 {object} models.Post
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /community/groups/{groupId}/posts/{postId} [put]
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	ids, err := parseIDs(c, "groupId", "postId")
	if err != nil {
		return nil
	}
	var req postRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	post, err := s.postService.Update(c.UserContext(), service.UpdatePostInput{
		UserID:  actor(c),
		GroupID: ids[0],
		PostID:  ids[1],
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(post)
}

// DeletePost handles DELETE /community/groups/:groupId/posts/:postId
// @Summary Delete a post and its comments
// @Description The author or the group creator may delete
// @Tags posts
// @Produce json
// @Param groupId path int true "Group ID"
// @Param postId path int true "Post ID"
// @Success 200 {object} object{message=string}
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /community/groups/{groupId}/posts/{postId} [delete]
func (s *Server) DeletePost(c *fiber.Ctx) error {
	ids, err := parseIDs(c, "groupId", "postId")
	if err != nil {
		return nil
	}

	err = s.postService.Delete(c.UserContext(), service.DeletePostInput{
		UserID:  actor(c),
		GroupID: ids[0],
		PostID:  ids[1],
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Post deleted successfully"})
}
