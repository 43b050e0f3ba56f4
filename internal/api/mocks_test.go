package api

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/pageza/recipe-nexus/backend/internal/model"
	"github.com/pageza/recipe-nexus/backend/internal/types"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const (
	goodToken  = "good-token"
	otherToken = "other-token"
)

type mockAggregator struct{ mock.Mock }

func (m *mockAggregator) GetMerged(ctx context.Context, term, category string) ([]byte, error) {
	args := m.Called(ctx, term, category)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}

type mockRecipeService struct{ mock.Mock }

func (m *mockRecipeService) Create(ctx context.Context, author string, req types.CreateRecipeRequest) (*model.LocalRecipe, error) {
	args := m.Called(ctx, author, req)
	r, _ := args.Get(0).(*model.LocalRecipe)
	return r, args.Error(1)
}

func (m *mockRecipeService) Get(ctx context.Context, id string) (*model.LocalRecipe, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*model.LocalRecipe)
	return r, args.Error(1)
}

func (m *mockRecipeService) Delete(ctx context.Context, actor, id string) error {
	return m.Called(ctx, actor, id).Error(0)
}

type mockExternalService struct{ mock.Mock }

func (m *mockExternalService) Categories(ctx context.Context) ([]byte, error) {
	args := m.Called(ctx)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}

func (m *mockExternalService) Search(ctx context.Context, term string) ([]byte, error) {
	args := m.Called(ctx, term)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}

func (m *mockExternalService) Recipe(ctx context.Context, id string) ([]byte, error) {
	args := m.Called(ctx, id)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}

func (m *mockExternalService) Filter(ctx context.Context, category, area string) ([]byte, error) {
	args := m.Called(ctx, category, area)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}

type mockAuthService struct{ mock.Mock }

func (m *mockAuthService) Register(ctx context.Context, username, password string) (*model.User, error) {
	args := m.Called(ctx, username, password)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *mockAuthService) Login(ctx context.Context, username, password string) (*types.LoginResponse, error) {
	args := m.Called(ctx, username, password)
	r, _ := args.Get(0).(*types.LoginResponse)
	return r, args.Error(1)
}

func (m *mockAuthService) GenerateToken(claims *types.TokenClaims) (string, error) {
	args := m.Called(claims)
	return args.String(0), args.Error(1)
}

// ValidateToken accepts goodToken as alice and otherToken as bob without
// recording calls.
func (m *mockAuthService) ValidateToken(token string) (*types.TokenClaims, error) {
	switch token {
	case goodToken:
		return &types.TokenClaims{UserID: uuid.New(), Username: "alice"}, nil
	case otherToken:
		return &types.TokenClaims{UserID: uuid.New(), Username: "bob"}, nil
	}
	return nil, errors.New("invalid token")
}
