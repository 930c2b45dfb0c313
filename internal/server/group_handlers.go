package server

import (
	"forum/internal/service"

	"github.com/gofiber/fiber/v2"
)

type createGroupRequest struct {
	GroupName string `json:"groupName"`
	ServerBio string `json:"serverBio"`
}

// CreateGroup handles POST /community/groups
// @Summary Create a group
// @Description The creator becomes the first member
// @Tags groups
// @Accept json
// @Produce json
// @Param request body createGroupRequest true "Group"
// @Success 201 {object} models.Group
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /community/groups [post]
func (s *Server) CreateGroup(c *fiber.Ctx) error {
	var req createGroupRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	group, err := s.groupService.Create(c.UserContext(), service.CreateGroupInput{
		UserID: actor(c),
		Name:   req.GroupName,
		Bio:    req.ServerBio,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(group)
}

// ListGroups handles GET /community/groups
// @Summary List groups
// @Tags groups
// @Produce json
// @Success 200 {array} models.Group
// @Router /community/groups [get]
func (s *Server) ListGroups(c *fiber.Ctx) error {
	groups, err := s.groupService.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(groups)
}

// JoinGroup handles POST /community/groups/:groupId/join
// @Summary Join a group
// @Tags groups
// @Produce json
// @Param groupId path int true "Group ID"
// @Success 200 {object} object{message=string,group=models.Group}
// @Failure 400 {object} models.ErrorResponse
// @Router /community/groups/{groupId}/join [post]
func (s *Server) JoinGroup(c *fiber.Ctx) error {
	groupID, err := parseID(c, "groupId")
	if err != nil {
		return nil
	}

	group, err := s.groupService.Join(c.UserContext(), groupID, actor(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Successfully joined the group",
		"group":   group,
	})
}
