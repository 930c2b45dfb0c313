// Package guard decides whether an acting identity may mutate a group, post
// or comment. Every handler that creates, edits or deletes content goes
// through Check and MatchParent instead of comparing ids inline.
package guard

import (
	"errors"
	"fmt"

	"forum/internal/models"
)

// Relation is the link the actor must have with the target.
type Relation int

const (
	// RelationMember requires the actor to be in the group's member set.
	RelationMember Relation = iota
	// RelationAuthor requires the actor to have written the resource.
	RelationAuthor
	// RelationAuthorOrGroupCreator also admits the creator of the owning group.
	RelationAuthorOrGroupCreator
)

func (r Relation) String() string {
	switch r {
	case RelationMember:
		return "member"
	case RelationAuthor:
		return "author"
	case RelationAuthorOrGroupCreator:
		return "author_or_group_creator"
	default:
		return fmt.Sprintf("relation(%d)", int(r))
	}
}

var (
	ErrNotAMember = models.NewForbiddenError("NOT_A_MEMBER", "You are not a member of this group")
	ErrNotAuthor  = models.NewForbiddenError("NOT_AUTHOR", "Only the author can edit this")
	// ErrNotAuthorized is returned when neither the author nor the group creator acts.
	ErrNotAuthorized = models.NewForbiddenError("NOT_AUTHORIZED", "You are not allowed to delete this")
	// ErrResourceMismatch is a client error: the route names a parent the
	// resource does not belong to.
	ErrResourceMismatch = models.NewValidationError("Resource does not belong to the requested parent")
)

// Target is what the decision needs to know about a resource.
type Target struct {
	AuthorID       uint
	GroupCreatorID uint
	Members        []uint
}

// ForGroup targets a group for membership checks.
func ForGroup(g *models.Group) Target {
	return Target{GroupCreatorID: g.CreatorID, Members: g.MemberIDs}
}

// ForPost targets a post owned by g.
func ForPost(p *models.Post, g *models.Group) Target {
	t := ForGroup(g)
	t.AuthorID = p.AuthorID
	return t
}

// ForComment targets a comment whose post is owned by g.
func ForComment(c *models.Comment, g *models.Group) Target {
	t := ForGroup(g)
	t.AuthorID = c.AuthorID
	return t
}

// Check returns nil when actor holds rel over t. No relation grants edit
// rights to anyone but the author.
func Check(actor uint, t Target, rel Relation) error {
	if actor == 0 {
		return ErrNotAuthorized
	}
	switch rel {
	case RelationMember:
		for _, m := range t.Members {
			if m == actor {
				return nil
			}
		}
		return ErrNotAMember
	case RelationAuthor:
		if t.AuthorID == actor {
			return nil
		}
		return ErrNotAuthor
	case RelationAuthorOrGroupCreator:
		if t.AuthorID == actor || t.GroupCreatorID == actor {
			return nil
		}
		return ErrNotAuthorized
	default:
		return fmt.Errorf("guard: unknown relation %s", rel)
	}
}

// MatchParent verifies that the parent id stored on a resource equals the one
// named by the route.
func MatchParent(actual, route uint) error {
	if actual != route {
		return ErrResourceMismatch
	}
	return nil
}

// IsDenied reports whether err came from Check.
func IsDenied(err error) bool {
	return errors.Is(err, ErrNotAMember) || errors.Is(err, ErrNotAuthor) || errors.Is(err, ErrNotAuthorized)
}
