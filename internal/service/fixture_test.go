package service

import (
	"context"
	"testing"

	"forum/internal/models"
	"forum/internal/repository"
	"forum/internal/testutil"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// forumFixture is a migrated database with alice (creator of G1) and bob.
type forumFixture struct {
	db       *gorm.DB
	groups   *GroupService
	posts    *PostService
	comments *CommentService
	alice    *models.User
	bob      *models.User
	carol    *models.User
	g1       *models.Group
}

func newForumFixture(t *testing.T) *forumFixture {
	t.Helper()
	db := testutil.NewDB(t)
	groupRepo := repository.NewGroupRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	f := &forumFixture{
		db:       db,
		groups:   NewGroupService(groupRepo, nil),
		posts:    NewPostService(postRepo, groupRepo),
		comments: NewCommentService(commentRepo, postRepo, groupRepo),
		alice:    testutil.CreateUser(t, db, "alice", "a@x.com"),
		bob:      testutil.CreateUser(t, db, "bob", "b@x.com"),
		carol:    testutil.CreateUser(t, db, "carol", "c@x.com"),
	}

	g1, err := f.groups.Create(context.Background(), CreateGroupInput{UserID: f.alice.ID, Name: "G1"})
	require.NoError(t, err)
	f.g1 = g1
	return f
}

func (f *forumFixture) join(t *testing.T, groupID, userID uint) {
	t.Helper()
	_, err := f.groups.Join(context.Background(), groupID, userID)
	require.NoError(t, err)
}

func (f *forumFixture) post(t *testing.T, groupID, authorID uint) *models.Post {
	t.Helper()
	p, err := f.posts.Create(context.Background(), CreatePostInput{UserID: authorID, GroupID: groupID, Title: "Hello", Content: "World"})
	require.NoError(t, err)
	return p
}

func (f *forumFixture) comment(t *testing.T, groupID, postID, authorID uint) *models.Comment {
	t.Helper()
	c, err := f.comments.Create(context.Background(), CreateCommentInput{UserID: authorID, GroupID: groupID, PostID: postID, Body: "nice"})
	require.NoError(t, err)
	return c
}
