package services

import (
	"context"
	"errors"
	"testing"

	"event-handlers-api/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_CreateAndGet(t *testing.T) {
	repo := newFaultyRepo()
	svc := NewUserService(repo, testDeps())
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, &models.CreateUserRequest{
		Username:   "ada",
		Email:      "ada@example.com",
		Phone:      "+44 20-7946-0958",
		Department: "Engineering",
	})
	require.NoError(t, err)
	assert.Equal(t, "id-1", user.ID())
	assert.Equal(t, models.StatusActive, user.Status())
	assert.Equal(t, "+442079460958", user["phone"])
	assert.Equal(t, user[models.FieldCreatedAt], user["updated_at"])

	got, err := svc.GetUser(ctx, "id-1")
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", got["email"])
}

func TestUserService_CreateValidation(t *testing.T) {
	tests := []struct {
		name    string
		req     models.CreateUserRequest
		wantMsg string
	}{
		{name: "missing username and name", req: models.CreateUserRequest{Email: "a@b.co"}, wantMsg: "Username is required"},
		{name: "missing email", req: models.CreateUserRequest{Username: "ada"}, wantMsg: "Email is required"},
		{name: "bad email", req: models.CreateUserRequest{Username: "ada", Email: "nope"}, wantMsg: "Invalid email format"},
		{name: "bad phone", req: models.CreateUserRequest{Username: "ada", Email: "a@b.co", Phone: "invalid-phone"}, wantMsg: "Invalid phone number format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFaultyRepo()
			req := tt.req
			_, err := NewUserService(repo, testDeps()).CreateUser(context.Background(), &req)

			var ve *models.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.wantMsg, ve.Message)
			assert.Equal(t, 0, repo.puts)
		})
	}
}

func TestUserService_GetErrors(t *testing.T) {
	repo := newFaultyRepo()
	svc := NewUserService(repo, testDeps())

	_, err := svc.GetUser(context.Background(), "never-written")
	assert.True(t, models.IsNotFoundError(err))

	_, err = svc.GetUser(context.Background(), "  ")
	assert.True(t, models.IsValidationError(err))

	repo.getErr = errors.New("timeout")
	_, err = svc.GetUser(context.Background(), "x")
	assert.True(t, models.IsDependencyError(err))
}

func TestUserService_List(t *testing.T) {
	repo := newFaultyRepo()
	svc := NewUserService(repo, testDeps())
	ctx := context.Background()

	empty, err := svc.ListUsers(ctx, 0)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Len(t, empty, 0)

	for _, name := range []string{"a", "b", "c"} {
		_, err := svc.CreateUser(ctx, &models.CreateUserRequest{Username: name, Email: name + "@example.com"})
		require.NoError(t, err)
	}

	all, err := svc.ListUsers(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	limited, err := svc.ListUsers(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	repo.scanErr = errors.New("scan failed")
	_, err = svc.ListUsers(ctx, 0)
	assert.True(t, models.IsDependencyError(err))
}
