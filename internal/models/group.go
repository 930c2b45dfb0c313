package models

import (
	"slices"
	"time"
)

// DefaultGroupBio is stored when a group is created without a bio.
const DefaultGroupBio = "Not Provided"

// Group is a community with a creator and a member set.
type Group struct {
	ID        uint          `gorm:"primaryKey" json:"_id"`
	Name      string        `gorm:"size:100;not null" json:"groupName"`
	Bio       string        `gorm:"type:text" json:"serverBio"`
	CreatorID uint          `gorm:"not null;index" json:"creator"`
	Members   []GroupMember `gorm:"foreignKey:GroupID;constraint:OnDelete:CASCADE" json:"-"`
	MemberIDs []uint        `gorm:"-" json:"members"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// GroupMember is one row of a group's member set.
type GroupMember struct {
	GroupID  uint      `gorm:"primaryKey;autoIncrement:false"`
	UserID   uint      `gorm:"primaryKey;autoIncrement:false;index"`
	JoinedAt time.Time `gorm:"autoCreateTime"`
}

// SyncMemberIDs copies the loaded member rows into MemberIDs.
func (g *Group) SyncMemberIDs() {
	ids := make([]uint, 0, len(g.Members))
	for _, m := range g.Members {
		ids = append(ids, m.UserID)
	}
	g.MemberIDs = ids
}

// HasMember tests set membership, so duplicated ids are harmless.
func (g *Group) HasMember(userID uint) bool {
	return slices.Contains(g.MemberIDs, userID)
}
