package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/akumarujon/imf-gadget-api/internal/auth"
	apperrors "github.com/akumarujon/imf-gadget-api/internal/errors"
	"github.com/akumarujon/imf-gadget-api/internal/model"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

// MockTokenStore is a mock implementation of TokenStoreInterface.
type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) RevokeToken(ctx context.Context, tokenID string, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) IsTokenRevoked(ctx context.Context, tokenID string) (bool, error) {
	args := m.Called(ctx, tokenID)
	return args.Bool(0), args.Error(1)
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name          string
		username      string
		password      string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:     "successful registration",
			username: "ethan.hunt",
			password: "secret99",
			setupMock: func(mRepo *MockUserRepository) {
				mRepo.On("FindByUsername", mock.Anything, "ethan.hunt").Return(nil, gorm.ErrRecordNotFound)
				mRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:     "duplicate username",
			username: "ethan.hunt",
			password: "secret99",
			setupMock: func(mRepo *MockUserRepository) {
				mRepo.On("FindByUsername", mock.Anything, "ethan.hunt").Return(&model.User{
					Username: "ethan.hunt",
				}, nil)
			},
			expectedError: apperrors.ErrDuplicateUsername,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			jwtService := auth.NewJWTService("test-secret")
			mockTokenStore := new(MockTokenStore)

			service := NewAuthService(mockRepo, jwtService, mockTokenStore)
			user, err := service.Register(context.Background(), tt.username, tt.password)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, user)
				assert.Equal(t, tt.username, user.Username)
				assert.NotEmpty(t, user.PasswordHash)
				assert.NotEqual(t, tt.password, user.PasswordHash)
				// stored hash verifies against the original password
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(tt.password)))
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
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:     "successful login",
			username: "ethan.hunt",
			password: "secret99",
			setupMock: func(mRepo *MockUserRepository) {
				hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("secret99"), 10)
				mRepo.On("FindByUsername", mock.Anything, "ethan.hunt").Return(&model.User{
					Username:     "ethan.hunt",
					PasswordHash: string(hashedPassword),
				}, nil)
			},
			expectedError: nil,
		},
		{
			name:     "unknown user",
			username: "bob_never_registered",
			password: "x",
			setupMock: func(mRepo *MockUserRepository) {
				mRepo.On("FindByUsername", mock.Anything, "bob_never_registered").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrUnknownUser,
		},
		{
			name:     "wrong password",
			username: "ethan.hunt",
			password: "wrong",
			setupMock: func(mRepo *MockUserRepository) {
				hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("secret99"), 10)
				mRepo.On("FindByUsername", mock.Anything, "ethan.hunt").Return(&model.User{
					Username:     "ethan.hunt",
					PasswordHash: string(hashedPassword),
				}, nil)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			jwtService := auth.NewJWTService("test-secret")
			service := NewAuthService(mockRepo, jwtService, new(MockTokenStore))

			token, err := service.Login(context.Background(), tt.username, tt.password)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Empty(t, token)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, token)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

// Unknown-user and wrong-password failures must be indistinguishable to the
// caller even though the internal sentinels differ.
func TestAuthService_LoginFailuresShareExternalMessage(t *testing.T) {
	unknownErr := apperrors.MapErrorToHTTP(apperrors.ErrUnknownUser)
	wrongPassErr := apperrors.MapErrorToHTTP(apperrors.ErrInvalidCredentials)

	assert.NotEqual(t, apperrors.ErrUnknownUser, apperrors.ErrInvalidCredentials)
	assert.Equal(t, unknownErr.Message, wrongPassErr.Message)
	assert.Equal(t, unknownErr.StatusCode, wrongPassErr.StatusCode)
}

func TestAuthService_VerifyToken(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockTokenStore := new(MockTokenStore)
	jwtService := auth.NewJWTService("test-secret")
	service := NewAuthService(mockRepo, jwtService, mockTokenStore)

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("secret99"), 10)
	mockRepo.On("FindByUsername", mock.Anything, "alice").Return(&model.User{
		Username:     "alice",
		PasswordHash: string(hashedPassword),
	}, nil)
	mockTokenStore.On("IsTokenRevoked", mock.Anything, mock.Anything).Return(false, nil)

	token, err := service.Login(context.Background(), "alice", "secret99")
	assert.NoError(t, err)

	identity, err := service.VerifyToken(context.Background(), token)
	assert.NoError(t, err)
	assert.Equal(t, "alice", identity.Username)
}

func TestAuthService_VerifyToken_Revoked(t *testing.T) {
	mockTokenStore := new(MockTokenStore)
	jwtService := auth.NewJWTService("test-secret")
	service := NewAuthService(new(MockUserRepository), jwtService, mockTokenStore)

	_, token, err := jwtService.GenerateToken("alice")
	assert.NoError(t, err)

	mockTokenStore.On("IsTokenRevoked", mock.Anything, mock.Anything).Return(true, nil)

	identity, err := service.VerifyToken(context.Background(), token)
	assert.Equal(t, apperrors.ErrInvalidToken, err)
	assert.Nil(t, identity)
}

func TestAuthService_VerifyToken_Garbage(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret")
	service := NewAuthService(new(MockUserRepository), jwtService, new(MockTokenStore))

	identity, err := service.VerifyToken(context.Background(), "garbage")
	assert.Equal(t, apperrors.ErrInvalidToken, err)
	assert.Nil(t, identity)
}

func TestAuthService_VerifyToken_Missing(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret")
	service := NewAuthService(new(MockUserRepository), jwtService, new(MockTokenStore))

	identity, err := service.VerifyToken(context.Background(), "")
	assert.Equal(t, apperrors.ErrMissingToken, err)
	assert.Nil(t, identity)
}

func TestTokenErrorsMapToUnauthorized(t *testing.T) {
	for _, err := range []error{apperrors.ErrMissingToken, apperrors.ErrInvalidToken} {
		httpErr := apperrors.MapErrorToHTTP(err)
		assert.Equal(t, 401, httpErr.StatusCode)
	}
}

func TestAuthService_Logout(t *testing.T) {
	mockTokenStore := new(MockTokenStore)
	jwtService := auth.NewJWTService("test-secret")
	service := NewAuthService(new(MockUserRepository), jwtService, mockTokenStore)

	tokenID, token, err := jwtService.GenerateToken("alice")
	assert.NoError(t, err)

	mockTokenStore.On("RevokeToken", mock.Anything, tokenID, mock.Anything).Return(nil)

	assert.NoError(t, service.Logout(context.Background(), token))
	mockTokenStore.AssertExpectations(t)
}
