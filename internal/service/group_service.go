package service

import (
	"context"

	"forum/internal/cache"
	"forum/internal/models"
	"forum/internal/repository"
)

var (
	ErrGroupNotFound = models.NewNotFoundError("Group not found")
	// ErrJoinUnknownGroup keeps the join route's 400 for a missing group.
	ErrJoinUnknownGroup = models.NewValidationError("Group doesn't exist")
	ErrAlreadyMember    = models.NewValidationError("User is already member")
)

type GroupService struct {
	groupRepo repository.GroupRepository
	listCache *cache.GroupList
}

type CreateGroupInput struct {
	UserID uint
	Name   string
	Bio    string
}

// NewGroupService wires the group rules. listCache may be nil.
func NewGroupService(groupRepo repository.GroupRepository, listCache *cache.GroupList) *GroupService {
	return &GroupService{groupRepo: groupRepo, listCache: listCache}
}

// Create makes a group whose creator is its first member.
func (s *GroupService) Create(ctx context.Context, in CreateGroupInput) (*models.Group, error) {
	name := cleanText(in.Name)
	if name == "" {
		return nil, models.NewValidationError("Group name is required")
	}
	bio := cleanText(in.Bio)
	if bio == "" {
		bio = models.DefaultGroupBio
	}

	group := &models.Group{Name: name, Bio: bio, CreatorID: in.UserID}
	if err := s.groupRepo.Create(ctx, group); err != nil {
		return nil, internal(err)
	}
	s.listCache.Invalidate(ctx)
	return group, nil
}

func (s *GroupService) List(ctx context.Context) ([]models.Group, error) {
	groups, err := s.listCache.Get(ctx, s.groupRepo.List)
	if err != nil {
		return nil, internal(err)
	}
	if groups == nil {
		groups = []models.Group{}
	}
	return groups, nil
}

// Join adds userID to the group's member set.
func (s *GroupService) Join(ctx context.Context, groupID, userID uint) (*models.Group, error) {
	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return nil, internal(err)
	}
	if group == nil {
		return nil, ErrJoinUnknownGroup
	}
	if group.HasMember(userID) {
		return nil, ErrAlreadyMember
	}

	added, err := s.groupRepo.AddMember(ctx, groupID, userID)
	if err != nil {
		return nil, internal(err)
	}
	if !added {
		return nil, ErrAlreadyMember
	}

	group.MemberIDs = append(group.MemberIDs, userID)
	s.listCache.Invalidate(ctx)
	return group, nil
}

// loadGroup fetches a group, mapping absence to ErrGroupNotFound.
func loadGroup(ctx context.Context, repo repository.GroupRepository, id uint) (*models.Group, error) {
	group, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, internal(err)
	}
	if group == nil {
		return nil, ErrGroupNotFound
	}
	return group, nil
}
