package repository

import (
	"context"
	"fmt"

	"forum/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GroupRepository persists groups and their member sets.
type GroupRepository interface {
	Create(ctx context.Context, group *models.Group) error
	GetByID(ctx context.Context, id uint) (*models.Group, error)
	List(ctx context.Context) ([]models.Group, error)
	AddMember(ctx context.Context, groupID, userID uint) (bool, error)
}

type groupRepository struct {
	db *gorm.DB
}

// NewGroupRepository returns a new GroupRepository implementation.
func NewGroupRepository(db *gorm.DB) GroupRepository {
	return &groupRepository{db: db}
}

// Create stores group and enrols its creator in the same transaction.
func (r *groupRepository) Create(ctx context.Context, group *models.Group) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Members").Create(group).Error; err != nil {
			return err
		}
		member := models.GroupMember{GroupID: group.ID, UserID: group.CreatorID}
		if err := tx.Create(&member).Error; err != nil {
			return err
		}
		group.Members = []models.GroupMember{member}
		return nil
	})
	if err != nil {
		return fmt.Errorf("create group: %w", err)
	}
	group.SyncMemberIDs()
	return nil
}

func (r *groupRepository) GetByID(ctx context.Context, id uint) (*models.Group, error) {
	var group models.Group
	if err := r.db.WithContext(ctx).Preload("Members").First(&group, id).Error; err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get group %d: %w", id, err)
	}
	group.SyncMemberIDs()
	return &group, nil
}

func (r *groupRepository) List(ctx context.Context) ([]models.Group, error) {
	var groups []models.Group
	err := r.db.WithContext(ctx).
		Preload("Members", func(db *gorm.DB) *gorm.DB { return db.Order("joined_at asc") }).
		Order("id asc").
		Find(&groups).Error
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	for i := range groups {
		groups[i].SyncMemberIDs()
	}
	return groups, nil
}

// AddMember inserts the membership row and reports whether it was new.
// Concurrent joins of the same user collapse into one row.
func (r *groupRepository) AddMember(ctx context.Context, groupID, userID uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.GroupMember{GroupID: groupID, UserID: userID})
	if result.Error != nil {
		return false, fmt.Errorf("add member %d to group %d: %w", userID, groupID, result.Error)
	}
	return result.RowsAffected > 0, nil
}
