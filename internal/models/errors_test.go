package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusOf(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", NewNotFoundError("Post not found"), http.StatusNotFound},
		{"validation", NewValidationError("bad"), http.StatusBadRequest},
		{"conflict is a bad request", NewConflictError("User already exists"), http.StatusBadRequest},
		{"unauthorized", NewUnauthorizedError("nope"), http.StatusUnauthorized},
		{"forbidden", NewForbiddenError("NOT_AUTHOR", "nope"), http.StatusForbidden},
		{"wrapped app error", fmt.Errorf("ctx: %w", NewNotFoundError("x")), http.StatusNotFound},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, StatusOf(tt.err))
		})
	}
}

func TestRespondWithError_HidesInternalDetails(t *testing.T) {
	app := fiber.New()
	app.Get("/internal", func(c *fiber.Ctx) error {
		return RespondWithError(c, fiber.StatusInternalServerError,
			NewInternalError(errors.New("dial tcp 10.0.0.1:5432: refused")))
	})
	app.Get("/validation", func(c *fiber.Ctx) error {
		return RespondWithError(c, fiber.StatusBadRequest, NewValidationError("Title and content are required"))
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/internal", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.NotContains(t, string(body), "10.0.0.1")

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/validation", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	var out ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "Title and content are required", out.Message)
	assert.Equal(t, "VALIDATION_ERROR", out.Code)
}

func TestGroup_Membership(t *testing.T) {
	g := &Group{Members: []GroupMember{{GroupID: 1, UserID: 7}, {GroupID: 1, UserID: 9}, {GroupID: 1, UserID: 9}}}
	g.SyncMemberIDs()

	assert.Equal(t, []uint{7, 9, 9}, g.MemberIDs)
	assert.True(t, g.HasMember(9))
	assert.False(t, g.HasMember(8))
}
