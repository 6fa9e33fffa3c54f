package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"helpdesk/internal/auth"
	"helpdesk/internal/model"
)

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name          string
		username      string
		email         string
		password      string
		role          model.Role
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:     "successful registration",
			username: "alice",
			email:    "alice@example.com",
			password: "password123",
			role:     model.RoleClient,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "alice").Return(nil, gorm.ErrRecordNotFound)
				m.On("FindByEmail", mock.Anything, "alice@example.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:     "username already taken",
			username: "bob",
			email:    "new@example.com",
			password: "password123",
			role:     model.RoleClient,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "bob").Return(&model.User{Username: "bob"}, nil)
			},
			expectedError: ErrUserAlreadyExists,
		},
		{
			name:     "email already taken",
			username: "carol",
			email:    "taken@example.com",
			password: "password123",
			role:     model.RoleClient,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "carol").Return(nil, gorm.ErrRecordNotFound)
				m.On("FindByEmail", mock.Anything, "taken@example.com").Return(&model.User{Email: "taken@example.com"}, nil)
			},
			expectedError: ErrUserAlreadyExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			jwtService := auth.NewJWTService("test-secret")
			mockTokenStore := new(MockTokenStore)

			service := NewAuthService(mockRepo, jwtService, mockTokenStore)
			user, err := service.Register(context.Background(), tt.username, tt.email, tt.password, tt.role)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, user)
				assert.Equal(t, tt.username, user.Username)
				assert.Equal(t, tt.email, user.Email)
				assert.Equal(t, tt.role, user.Role)
				assert.NotEmpty(t, user.PasswordHash)
				if assert.NotNil(t, user.NotificationPreference) {
					assert.True(t, user.NotificationPreference.EmailNotifications)
				}
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	tests := []struct {
		name          string
		username      string
		password      string
		setupMock     func(*MockUserRepository, *MockTokenStore)
		expectedError error
	}{
		{
			name:     "successful login",
			username: "alice",
			password: "password123",
			setupMock: func(mRepo *MockUserRepository, mToken *MockTokenStore) {
				hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), 10)
				userID := uuid.New()
				mRepo.On("FindByUsername", mock.Anything, "alice").Return(&model.User{
					ID:           userID,
					Username:     "alice",
					Email:        "alice@example.com",
					PasswordHash: string(hashedPassword),
					Role:         model.RoleClient,
				}, nil)
				mToken.On("StoreRefreshToken", mock.Anything, mock.Anything, userID.String(), "alice@example.com", mock.Anything).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:     "unknown username",
			username: "ghost",
			password: "password123",
			setupMock: func(mRepo *MockUserRepository, mToken *MockTokenStore) {
				mRepo.On("FindByUsername", mock.Anything, "ghost").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: ErrInvalidCredentials,
		},
		{
			name:     "wrong password",
			username: "alice",
			password: "wrong",
			setupMock: func(mRepo *MockUserRepository, mToken *MockTokenStore) {
				hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), 10)
				mRepo.On("FindByUsername", mock.Anything, "alice").Return(&model.User{
					ID:           uuid.New(),
					Username:     "alice",
					PasswordHash: string(hashedPassword),
				}, nil)
			},
			expectedError: ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			mockTokenStore := new(MockTokenStore)
			tt.setupMock(mockRepo, mockTokenStore)

			jwtService := auth.NewJWTService("test-secret")
			service := NewAuthService(mockRepo, jwtService, mockTokenStore)

			accessToken, refreshToken, user, err := service.Login(context.Background(), tt.username, tt.password)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Empty(t, accessToken)
				assert.Empty(t, refreshToken)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, accessToken)
				assert.NotEmpty(t, refreshToken)
				assert.NotNil(t, user)
				assert.Equal(t, tt.username, user.Username)
			}

			mockRepo.AssertExpectations(t)
			mockTokenStore.AssertExpectations(t)
		})
	}
}

func TestAuthService_RefreshToken_ReloadsRole(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret")
	userID := uuid.New()
	user := &model.User{
		ID:       userID,
		Username: "alice",
		Email:    "alice@example.com",
		Role:     model.RoleClient,
	}

	tokenID, refreshToken, err := jwtService.GenerateRefreshToken(user)
	assert.NoError(t, err)

	mockRepo := new(MockUserRepository)
	mockTokenStore := new(MockTokenStore)
	mockTokenStore.On("GetRefreshToken", mock.Anything, tokenID).Return(userID.String(), "alice@example.com", nil)

	// The role was changed after the refresh token was issued.
	promoted := *user
	promoted.Role = model.RoleSupport
	mockRepo.On("FindByID", mock.Anything, userID).Return(&promoted, nil)

	service := NewAuthService(mockRepo, jwtService, mockTokenStore)
	accessToken, err := service.RefreshToken(context.Background(), refreshToken)

	assert.NoError(t, err)
	assert.NotEmpty(t, accessToken)

	claims, err := jwtService.ValidateToken(accessToken)
	assert.NoError(t, err)
	assert.Equal(t, model.RoleSupport, claims.Role)

	mockRepo.AssertExpectations(t)
	mockTokenStore.AssertExpectations(t)
}

func TestAuthService_RefreshToken_Invalid(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockTokenStore := new(MockTokenStore)
	service := NewAuthService(mockRepo, auth.NewJWTService("test-secret"), mockTokenStore)

	accessToken, err := service.RefreshToken(context.Background(), "not-a-token")
	assert.Equal(t, ErrInvalidRefreshToken, err)
	assert.Empty(t, accessToken)
}
