package server

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type forumClient struct {
	t *testing.T
	s *Server
}

func (fc forumClient) register(name, email string) (string, uint) {
	fc.t.Helper()
	res := call(fc.t, fc.s, http.MethodPost, "/api/register", map[string]string{
		"name": name, "email": email, "password": "secret1",
	}, "")
	require.Equal(fc.t, http.StatusCreated, res.Status, res.Body)
	require.NotNil(fc.t, res.Token)
	return res.Token.Value, uint(res.Body["user"].(map[string]any)["_id"].(float64))
}

func (fc forumClient) createGroup(token, name string) uint {
	fc.t.Helper()
	res := call(fc.t, fc.s, http.MethodPost, "/community/groups", map[string]string{"groupName": name}, token)
	require.Equal(fc.t, http.StatusCreated, res.Status, res.Body)
	return uint(res.Body["_id"].(float64))
}

func (fc forumClient) createPost(token string, groupID uint, title string) uint {
	fc.t.Helper()
	res := call(fc.t, fc.s, http.MethodPost, fmt.Sprintf("/community/groups/%d/posts", groupID),
		map[string]string{"title": title, "content": "some content"}, token)
	require.Equal(fc.t, http.StatusCreated, res.Status, res.Body)
	return uint(res.Body["_id"].(float64))
}

func TestScenario_RegisterAndLogin(t *testing.T) {
	s := newTestServer(t, nil)

	res := call(t, s, http.MethodPost, "/api/register", map[string]string{
		"name": "alice", "email": "a@x.com", "password": "secret1",
	}, "")
	assert.Equal(t, http.StatusCreated, res.Status)
	require.NotNil(t, res.Token)
	assert.True(t, res.Token.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, res.Token.SameSite)

	res = call(t, s, http.MethodPost, "/api/register", map[string]string{
		"name": "alice", "email": "a@x.com", "password": "secret1",
	}, "")
	assert.Equal(t, http.StatusBadRequest, res.Status)
	assert.Equal(t, "User already exists", res.Body["message"])

	res = call(t, s, http.MethodPost, "/api/login", map[string]string{"email": "a@x.com", "password": "secret2"}, "")
	assert.Equal(t, http.StatusUnauthorized, res.Status)
	assert.Equal(t, "Invalid credentials", res.Body["message"])

	res = call(t, s, http.MethodPost, "/api/login", map[string]string{"email": "a@x.com", "password": "secret1"}, "")
	assert.Equal(t, http.StatusOK, res.Status)
	require.NotNil(t, res.Token)

	profile := call(t, s, http.MethodGet, "/api/profile", nil, res.Token.Value)
	assert.Equal(t, http.StatusOK, profile.Status)
	assert.Equal(t, "a@x.com", profile.Body["user"].(map[string]any)["email"])
}

func TestScenario_GroupPostsAndDeletion(t *testing.T) {
	s := newTestServer(t, nil)
	fc := forumClient{t: t, s: s}
	alice, aliceID := fc.register("alice", "a@x.com")
	bob, _ := fc.register("bob", "b@x.com")

	g1 := fc.createGroup(alice, "G1")
	groups := call(t, s, http.MethodGet, "/community/groups", nil, "")
	require.Equal(t, http.StatusOK, groups.Status)
	require.Len(t, groups.List, 1)
	group := groups.List[0].(map[string]any)
	assert.Equal(t, "G1", group["groupName"])
	assert.Equal(t, "Not Provided", group["serverBio"])
	assert.Equal(t, float64(aliceID), group["creator"])
	assert.Equal(t, []any{float64(aliceID)}, group["members"])

	postsPath := fmt.Sprintf("/community/groups/%d/posts", g1)
	res := call(t, s, http.MethodPost, postsPath, map[string]string{"title": "hello", "content": "hello"}, bob)
	assert.Equal(t, http.StatusForbidden, res.Status)
	assert.Equal(t, "You are not a member of this group", res.Body["message"])

	joinPath := fmt.Sprintf("/community/groups/%d/join", g1)
	res = call(t, s, http.MethodPost, joinPath, nil, bob)
	assert.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, "Successfully joined the group", res.Body["message"])

	res = call(t, s, http.MethodPost, joinPath, nil, bob)
	assert.Equal(t, http.StatusBadRequest, res.Status)
	assert.Equal(t, "User is already member", res.Body["message"])

	res = call(t, s, http.MethodPost, "/community/groups/999/join", nil, bob)
	assert.Equal(t, http.StatusBadRequest, res.Status)
	assert.Equal(t, "Group doesn't exist", res.Body["message"])

	res = call(t, s, http.MethodPost, postsPath, map[string]string{"title": "hello", "content": "hello"}, bob)
	require.Equal(t, http.StatusCreated, res.Status)
	postID := uint(res.Body["_id"].(float64))
	postPath := fmt.Sprintf("%s/%d", postsPath, postID)

	res = call(t, s, http.MethodPut, postPath, map[string]string{"title": "edited", "content": "edited"}, alice)
	assert.Equal(t, http.StatusForbidden, res.Status)

	res = call(t, s, http.MethodDelete, postPath, nil, alice)
	assert.Equal(t, http.StatusOK, res.Status)

	res = call(t, s, http.MethodPut, postPath, map[string]string{"title": "edited", "content": "edited"}, bob)
	assert.Equal(t, http.StatusNotFound, res.Status)
	assert.Equal(t, "Post not found", res.Body["message"])
}

func TestScenario_Comments(t *testing.T) {
	s := newTestServer(t, nil)
	fc := forumClient{t: t, s: s}
	alice, _ := fc.register("alice", "a@x.com")
	bob, _ := fc.register("bob", "b@x.com")
	carol, _ := fc.register("carol", "c@x.com")

	g1 := fc.createGroup(alice, "G1")
	g2 := fc.createGroup(alice, "G2")
	for _, token := range []string{bob, carol} {
		res := call(t, s, http.MethodPost, fmt.Sprintf("/community/groups/%d/join", g1), nil, token)
		require.Equal(t, http.StatusOK, res.Status)
	}
	postID := fc.createPost(bob, g1, "first post")
	commentsPath := fmt.Sprintf("/community/groups/%d/posts/%d/comments", g1, postID)

	res := call(t, s, http.MethodPost, commentsPath, map[string]string{}, bob)
	assert.Equal(t, http.StatusBadRequest, res.Status)
	assert.Equal(t, "Comment body is required", res.Body["message"])

	res = call(t, s, http.MethodPost, commentsPath, map[string]string{"text": "via text"}, carol)
	require.Equal(t, http.StatusCreated, res.Status)
	assert.Equal(t, "via text", res.Body["body"])
	assert.Equal(t, "carol", res.Body["user"].(map[string]any)["name"])
	carolComment := uint(res.Body["_id"].(float64))

	res = call(t, s, http.MethodPost, commentsPath, map[string]string{"body": "by bob"}, bob)
	require.Equal(t, http.StatusCreated, res.Status)

	res = call(t, s, http.MethodPost, fmt.Sprintf("/community/groups/%d/posts/%d/comments", g2, postID),
		map[string]string{"body": "wrong group"}, alice)
	assert.Equal(t, http.StatusNotFound, res.Status)
	assert.Equal(t, "Post not found in this group", res.Body["message"])

	listed := call(t, s, http.MethodGet, fmt.Sprintf("/community/groups/%d/posts", g1), nil, "")
	require.Equal(t, http.StatusOK, listed.Status)
	require.Len(t, listed.List, 1)
	post := listed.List[0].(map[string]any)
	assert.Equal(t, float64(2), post["commentsCount"])
	assert.Equal(t, float64(0), post["score"])
	assert.Nil(t, post["userVote"])
	assert.Equal(t, "bob", post["author"].(map[string]any)["name"])
	comments := post["comments"].([]any)
	assert.Equal(t, "carol", comments[0].(map[string]any)["user"].(map[string]any)["name"])

	commentPath := fmt.Sprintf("%s/%d", commentsPath, carolComment)
	res = call(t, s, http.MethodPut, commentPath, map[string]string{"body": "hijack"}, bob)
	assert.Equal(t, http.StatusForbidden, res.Status)

	res = call(t, s, http.MethodPut, fmt.Sprintf("/community/groups/%d/posts/%d/comments/%d", g2, postID, carolComment),
		map[string]string{"body": "moved"}, carol)
	assert.Equal(t, http.StatusBadRequest, res.Status)

	res = call(t, s, http.MethodPut, commentPath, map[string]string{"body": "edited"}, carol)
	assert.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, "edited", res.Body["body"])

	res = call(t, s, http.MethodDelete, commentPath, nil, bob)
	assert.Equal(t, http.StatusForbidden, res.Status)

	res = call(t, s, http.MethodDelete, commentPath, nil, alice)
	assert.Equal(t, http.StatusOK, res.Status)

	res = call(t, s, http.MethodDelete, commentPath, nil, carol)
	assert.Equal(t, http.StatusNotFound, res.Status)

	res = call(t, s, http.MethodDelete, fmt.Sprintf("/community/groups/%d/posts/%d", g1, postID), nil, bob)
	assert.Equal(t, http.StatusOK, res.Status)
	listed = call(t, s, http.MethodGet, fmt.Sprintf("/community/groups/%d/posts", g1), nil, "")
	assert.Empty(t, listed.List)
}

func TestScenario_TextStoredAsTyped(t *testing.T) {
	s := newTestServer(t, nil)
	fc := forumClient{t: t, s: s}
	alice, _ := fc.register("alice", "a@x.com")
	g1 := fc.createGroup(alice, "a<b & c")

	const text = "if a<b && b>c &lt;"
	res := call(t, s, http.MethodPost, fmt.Sprintf("/community/groups/%d/posts", g1),
		map[string]string{"title": text, "content": text}, alice)
	require.Equal(t, http.StatusCreated, res.Status, res.Body)
	postID := uint(res.Body["_id"].(float64))

	res = call(t, s, http.MethodPost, fmt.Sprintf("/community/groups/%d/posts/%d/comments", g1, postID),
		map[string]string{"body": "  " + text + "  "}, alice)
	require.Equal(t, http.StatusCreated, res.Status, res.Body)
	assert.Equal(t, text, res.Body["body"])

	groups := call(t, s, http.MethodGet, "/community/groups", nil, "")
	require.Len(t, groups.List, 1)
	assert.Equal(t, "a<b & c", groups.List[0].(map[string]any)["groupName"])

	listed := call(t, s, http.MethodGet, fmt.Sprintf("/community/groups/%d/posts", g1), nil, "")
	require.Len(t, listed.List, 1)
	post := listed.List[0].(map[string]any)
	assert.Equal(t, text, post["title"])
	assert.Equal(t, text, post["content"])

	comment := post["comments"].([]any)[0].(map[string]any)
	assert.Equal(t, text, comment["body"])
	user := comment["user"].(map[string]any)
	assert.Equal(t, "alice", user["name"])
	assert.NotContains(t, user, "email")
	assert.NotContains(t, user, "createdAt")
}

func TestScenario_ProtectedRoutesNeedSession(t *testing.T) {
	s := newTestServer(t, nil)

	for _, route := range []struct{ method, path string }{
		{http.MethodPost, "/community/groups"},
		{http.MethodPost, "/community/groups/1/join"},
		{http.MethodPost, "/community/groups/1/posts"},
		{http.MethodPut, "/community/groups/1/posts/1"},
		{http.MethodDelete, "/community/groups/1/posts/1"},
		{http.MethodPost, "/community/groups/1/posts/1/comments"},
		{http.MethodPut, "/community/groups/1/posts/1/comments/1"},
		{http.MethodDelete, "/community/groups/1/posts/1/comments/1"},
	} {
		res := call(t, s, route.method, route.path, map[string]string{}, "")
		assert.Equal(t, http.StatusUnauthorized, res.Status, route.path)

		res = call(t, s, route.method, route.path, map[string]string{}, "garbage")
		assert.Equal(t, http.StatusForbidden, res.Status, route.path)
	}
}

func TestScenario_GroupCache(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	s := newTestServer(t, rdb)
	fc := forumClient{t: t, s: s}
	alice, _ := fc.register("alice", "a@x.com")

	res := call(t, s, http.MethodGet, "/community/groups", nil, "")
	require.Equal(t, http.StatusOK, res.Status)
	assert.Empty(t, res.List)

	fc.createGroup(alice, "G1")
	res = call(t, s, http.MethodGet, "/community/groups", nil, "")
	assert.Len(t, res.List, 1)

	ready := call(t, s, http.MethodGet, "/health/ready", nil, "")
	assert.Equal(t, http.StatusOK, ready.Status)
	assert.Equal(t, "healthy", ready.Body["checks"].(map[string]any)["redis"])
}
