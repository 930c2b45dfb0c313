package service

import (
	"context"
	"testing"

	"forum/internal/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentService_Create(t *testing.T) {
	f := newForumFixture(t)
	ctx := context.Background()
	post := f.post(t, f.g1.ID, f.alice.ID)

	_, err := f.comments.Create(ctx, CreateCommentInput{UserID: f.alice.ID, GroupID: f.g1.ID, PostID: post.ID, Body: "  "})
	assertStatus(t, err, 400)

	_, err = f.comments.Create(ctx, CreateCommentInput{UserID: f.bob.ID, GroupID: f.g1.ID, PostID: post.ID, Body: "hi"})
	assert.ErrorIs(t, err, guard.ErrNotAMember)

	_, err = f.comments.Create(ctx, CreateCommentInput{UserID: f.alice.ID, GroupID: f.g1.ID + 5, PostID: post.ID, Body: "hi"})
	assert.ErrorIs(t, err, ErrGroupNotFound)

	g2, err := f.groups.Create(ctx, CreateGroupInput{UserID: f.alice.ID, Name: "G2"})
	require.NoError(t, err)
	_, err = f.comments.Create(ctx, CreateCommentInput{UserID: f.alice.ID, GroupID: g2.ID, PostID: post.ID, Body: "hi"})
	assert.ErrorIs(t, err, ErrPostNotInGroup)
	assertStatus(t, err, 404)

	f.join(t, f.g1.ID, f.bob.ID)
	c, err := f.comments.Create(ctx, CreateCommentInput{UserID: f.bob.ID, GroupID: f.g1.ID, PostID: post.ID, Body: " a<b && b>c &lt; "})
	require.NoError(t, err)
	assert.Equal(t, "a<b && b>c &lt;", c.Body)
	require.NotNil(t, c.Author)
	assert.Equal(t, "bob", c.Author.Name)
}

func TestCommentService_Update(t *testing.T) {
	f := newForumFixture(t)
	ctx := context.Background()
	f.join(t, f.g1.ID, f.bob.ID)
	post := f.post(t, f.g1.ID, f.alice.ID)
	other := f.post(t, f.g1.ID, f.alice.ID)
	c := f.comment(t, f.g1.ID, post.ID, f.bob.ID)

	_, err := f.comments.Update(ctx, UpdateCommentInput{UserID: f.alice.ID, GroupID: f.g1.ID, PostID: post.ID, CommentID: c.ID, Body: "x"})
	assert.ErrorIs(t, err, guard.ErrNotAuthor)

	_, err = f.comments.Update(ctx, UpdateCommentInput{UserID: f.bob.ID, GroupID: f.g1.ID, PostID: other.ID, CommentID: c.ID, Body: "x"})
	assert.ErrorIs(t, err, guard.ErrResourceMismatch)

	_, err = f.comments.Update(ctx, UpdateCommentInput{UserID: f.bob.ID, GroupID: f.g1.ID + 1, PostID: post.ID, CommentID: c.ID, Body: "x"})
	assert.ErrorIs(t, err, guard.ErrResourceMismatch)

	_, err = f.comments.Update(ctx, UpdateCommentInput{UserID: f.bob.ID, GroupID: f.g1.ID, PostID: post.ID, CommentID: c.ID + 10, Body: "x"})
	assert.ErrorIs(t, err, ErrCommentNotFound)

	updated, err := f.comments.Update(ctx, UpdateCommentInput{UserID: f.bob.ID, GroupID: f.g1.ID, PostID: post.ID, CommentID: c.ID, Body: "edited"})
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Body)
}

func TestCommentService_Delete(t *testing.T) {
	f := newForumFixture(t)
	ctx := context.Background()
	f.join(t, f.g1.ID, f.bob.ID)
	f.join(t, f.g1.ID, f.carol.ID)
	post := f.post(t, f.g1.ID, f.bob.ID)
	byBob := f.comment(t, f.g1.ID, post.ID, f.bob.ID)
	byCarol := f.comment(t, f.g1.ID, post.ID, f.carol.ID)

	err := f.comments.Delete(ctx, DeleteCommentInput{UserID: f.carol.ID, GroupID: f.g1.ID, PostID: post.ID, CommentID: byBob.ID})
	assert.ErrorIs(t, err, guard.ErrNotAuthorized)

	require.NoError(t, f.comments.Delete(ctx, DeleteCommentInput{UserID: f.bob.ID, GroupID: f.g1.ID, PostID: post.ID, CommentID: byBob.ID}))
	require.NoError(t, f.comments.Delete(ctx, DeleteCommentInput{UserID: f.alice.ID, GroupID: f.g1.ID, PostID: post.ID, CommentID: byCarol.ID}))

	err = f.comments.Delete(ctx, DeleteCommentInput{UserID: f.bob.ID, GroupID: f.g1.ID, PostID: post.ID, CommentID: byBob.ID})
	assert.ErrorIs(t, err, ErrCommentNotFound)
}
