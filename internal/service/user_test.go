package service

import (
	"context"
	"testing"

	"github.com/YusovID/rental-booking-service/internal/apperrors"
	"github.com/YusovID/rental-booking-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUserServiceImpl_CreateUser(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name          string
		req           UserRequest
		setupMocks    func(t *testing.T, transactor *TransactorMock, repo *UserRepositoryMock)
		expectedError error
	}{
		{
			name: "Success: email normalized and default reputation",
			req:  UserRequest{Email: "  Guest@Example.COM ", FirstName: "Ann", LastName: "Lee", Role: domain.RoleClient},
			setupMocks: func(t *testing.T, transactor *TransactorMock, repo *UserRepositoryMock) {
				expectTx(t, transactor, true)
				repo.On("CreateUser", mock.Anything, mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
					return u.Email == "guest@example.com" && u.ReputationScore == domain.DefaultReputation
				})).Run(func(args mock.Arguments) {
					args.Get(2).(*domain.User).ID = 1
				}).Return(nil).Once()
			},
		},
		{
			name: "Failure: email taken",
			req:  UserRequest{Email: "guest@example.com", FirstName: "Ann", LastName: "Lee", Role: domain.RoleClient},
			setupMocks: func(t *testing.T, transactor *TransactorMock, repo *UserRepositoryMock) {
				expectTx(t, transactor, false)
				repo.On("CreateUser", mock.Anything, mock.Anything, mock.Anything).
					Return(&apperrors.EmailTakenError{Email: "guest@example.com"}).Once()
			},
			expectedError: apperrors.ErrAlreadyExists,
		},
		{
			name:          "Failure: unknown role",
			req:           UserRequest{Email: "guest@example.com", FirstName: "Ann", LastName: "Lee", Role: "GUEST"},
			setupMocks:    func(t *testing.T, transactor *TransactorMock, repo *UserRepositoryMock) {},
			expectedError: apperrors.ErrValidation,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			transactor := new(TransactorMock)
			repo := new(UserRepositoryMock)
			tc.setupMocks(t, transactor, repo)

			svc := NewUserService(transactor, testLogger(), repo)

			user, err := svc.CreateUser(ctx, tc.req)

			if tc.expectedError != nil {
				assert.Nil(t, user)
				assert.ErrorIs(t, err, tc.expectedError)
			} else {
				require.NoError(t, err)
				assert.Equal(t, int64(1), user.ID)
				assert.Equal(t, 5.0, user.ReputationScore)
			}

			transactor.AssertExpectations(t)
			repo.AssertExpectations(t)
		})
	}
}

func TestUserServiceImpl_GetUser_NotFound(t *testing.T) {
	transactor := new(TransactorMock)
	repo := new(UserRepositoryMock)
	repo.On("GetUser", mock.Anything, mock.Anything, int64(404)).Return(nil, apperrors.ErrNotFound).Once()

	user, err := NewUserService(transactor, testLogger(), repo).GetUser(context.Background(), 404)

	assert.Nil(t, user)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	repo.AssertExpectations(t)
}
