package userdelivery

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	gomock "github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/o-lebedeva/tx-bank/internal/domain"
	"github.com/o-lebedeva/tx-bank/internal/middleware"
	"github.com/o-lebedeva/tx-bank/pkg/errorspkg"
	"github.com/o-lebedeva/tx-bank/pkg/randompkg"
	"github.com/o-lebedeva/tx-bank/pkg/tokenpkg"
)

func randomUserWithoutPassword() domain.UserWithoutPassword {
	return domain.UserWithoutPassword{
		ID:        randompkg.Int32Between(1, 100),
		Username:  randompkg.Owner(),
		FullName:  randompkg.Owner(),
		Email:     randompkg.Email(),
		Role:      "user",
		CreatedAt: time.Now().Truncate(time.Second).UTC(),
	}
}

func setupServer(t *testing.T, service Service, tokenMaker tokenpkg.Maker) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)
	server := gin.New()

	handler := NewHandler(service, tokenMaker, time.Minute)

	server.POST("/users", handler.Create)
	server.POST("/users/login", handler.Login)
	server.GET("/users/:id", middleware.AuthMiddleware(tokenMaker), handler.Get)
	server.GET("/users",
		middleware.AuthMiddleware(tokenMaker), middleware.AdminMiddleware(), handler.List)

	return server
}

func TestCreateAPI(t *testing.T) {
	t.Parallel()

	user := randomUserWithoutPassword()
	password := randompkg.String(10)

	tokenMaker, err := tokenpkg.NewPasetoMaker(randompkg.String(32))
	require.NoError(t, err)

	testCases := []struct {
		name          string
		requestBody   gin.H
		buildStubs    func(service *MockService)
		checkResponse func(recorder *httptest.ResponseRecorder)
	}{
		{
			name: "OK",
			requestBody: gin.H{
				"username": user.Username,
				"password": password,
				"fullname": user.FullName,
				"email":    user.Email,
			},
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Create(gomock.Any(), user.Username, password, user.FullName, user.Email).
					Times(1).
					Return(user, nil)
			},
			checkResponse: func(recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusCreated, recorder.Code)

				var got userResponse
				require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
				require.Equal(t, user.Username, got.Data.User.Username)
			},
		},
		{
			name: "InvalidEmail",
			requestBody: gin.H{
				"username": user.Username,
				"password": password,
				"fullname": user.FullName,
				"email":    "not-an-email",
			},
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Create(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Times(0)
			},
			checkResponse: func(recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusBadRequest, recorder.Code)
			},
		},
		{
			name: "DuplicateUsername",
			requestBody: gin.H{
				"username": user.Username,
				"password": password,
				"fullname": user.FullName,
				"email":    user.Email,
			},
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Create(gomock.Any(), user.Username, password, user.FullName, user.Email).
					Times(1).
					Return(domain.UserWithoutPassword{}, domain.ErrUsernameAlreadyExists)
			},
			checkResponse: func(recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusConflict, recorder.Code)
			},
		},
		{
			name: "InternalErr",
			requestBody: gin.H{
				"username": user.Username,
				"password": password,
				"fullname": user.FullName,
				"email":    user.Email,
			},
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Create(gomock.Any(), user.Username, password, user.FullName, user.Email).
					Times(1).
					Return(domain.UserWithoutPassword{}, errorspkg.ErrInternal)
			},
			checkResponse: func(recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusInternalServerError, recorder.Code)
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			service := NewMockService(ctrl)
			tc.buildStubs(service)

			server := setupServer(t, service, tokenMaker)

			body, err := json.Marshal(tc.requestBody)
			require.NoError(t, err)

			recorder := httptest.NewRecorder()
			request, err := http.NewRequest(http.MethodPost, "/users", bytes.NewReader(body))
			require.NoError(t, err)

			server.ServeHTTP(recorder, request)

			tc.checkResponse(recorder)
		})
	}
}

func TestLoginAPI(t *testing.T) {
	t.Parallel()

	user := randomUserWithoutPassword()
	password := randompkg.String(10)

	tokenMaker, err := tokenpkg.NewPasetoMaker(randompkg.String(32))
	require.NoError(t, err)

	testCases := []struct {
		name          string
		requestBody   gin.H
		buildStubs    func(service *MockService)
		checkResponse func(recorder *httptest.ResponseRecorder)
	}{
		{
			name: "OK",
			requestBody: gin.H{
				"username": user.Username,
				"password": password,
			},
			buildStubs: func(service *MockService) {
				service.EXPECT().
					GetByCredentials(gomock.Any(), user.Username, password).
					Times(1).
					Return(user, nil)
			},
			checkResponse: func(recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusOK, recorder.Code)

				var got struct {
					AccessToken string `json:"access_token"`
				}
				require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
				require.NotEmpty(t, got.AccessToken)

				payload, err := tokenMaker.VerifyToken(got.AccessToken)
				require.NoError(t, err)
				require.Equal(t, user.Username, payload.Username)
				require.Equal(t, user.Role, payload.Role)
			},
		},
		{
			name: "WrongCredentials",
			requestBody: gin.H{
				"username": user.Username,
				"password": password,
			},
			buildStubs: func(service *MockService) {
				service.EXPECT().
					GetByCredentials(gomock.Any(), user.Username, password).
					Times(1).
					Return(domain.UserWithoutPassword{}, domain.ErrWrongCredentials)
			},
			checkResponse: func(recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusUnauthorized, recorder.Code)
			},
		},
		{
			name: "ShortPassword",
			requestBody: gin.H{
				"username": user.Username,
				"password": "abc",
			},
			buildStubs: func(service *MockService) {
				service.EXPECT().
					GetByCredentials(gomock.Any(), gomock.Any(), gomock.Any()).
					Times(0)
			},
			checkResponse: func(recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusBadRequest, recorder.Code)
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			service := NewMockService(ctrl)
			tc.buildStubs(service)

			server := setupServer(t, service, tokenMaker)

			body, err := json.Marshal(tc.requestBody)
			require.NoError(t, err)

			recorder := httptest.NewRecorder()
			request, err := http.NewRequest(http.MethodPost, "/users/login", bytes.NewReader(body))
			require.NoError(t, err)

			server.ServeHTTP(recorder, request)

			tc.checkResponse(recorder)
		})
	}
}

func TestListAPI(t *testing.T) {
	t.Parallel()

	user := randomUserWithoutPassword()

	tokenMaker, err := tokenpkg.NewPasetoMaker(randompkg.String(32))
	require.NoError(t, err)

	testCases := []struct {
		name          string
		role          string
		buildStubs    func(service *MockService)
		checkResponse func(recorder *httptest.ResponseRecorder)
	}{
		{
			name: "OK",
			role: domain.RoleAdmin,
			buildStubs: func(service *MockService) {
				service.EXPECT().
					List(gomock.Any()).
					Times(1).
					Return([]domain.UserWithoutPassword{user}, nil)
			},
			checkResponse: func(recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusOK, recorder.Code)
			},
		},
		{
			name: "NotAdmin",
			role: "user",
			buildStubs: func(service *MockService) {
				service.EXPECT().List(gomock.Any()).Times(0)
			},
			checkResponse: func(recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusForbidden, recorder.Code)
			},
		},
		{
			name: "EmptyStore",
			role: domain.RoleAdmin,
			buildStubs: func(service *MockService) {
				service.EXPECT().
					List(gomock.Any()).
					Times(1).
					Return(nil, domain.ErrNoUsers)
			},
			checkResponse: func(recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusNotFound, recorder.Code)
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			service := NewMockService(ctrl)
			tc.buildStubs(service)

			server := setupServer(t, service, tokenMaker)

			recorder := httptest.NewRecorder()
			request, err := http.NewRequest(http.MethodGet, "/users", nil)
			require.NoError(t, err)

			middleware.AddAuthorization(t, request, tokenMaker,
				middleware.AuthTypeBearer, user.Username, tc.role, time.Minute)
			server.ServeHTTP(recorder, request)

			tc.checkResponse(recorder)
		})
	}
}

func TestGetAPI(t *testing.T) {
	t.Parallel()

	user := randomUserWithoutPassword()

	tokenMaker, err := tokenpkg.NewPasetoMaker(randompkg.String(32))
	require.NoError(t, err)

	testCases := []struct {
		name          string
		url           string
		buildStubs    func(service *MockService)
		checkResponse func(recorder *httptest.ResponseRecorder)
	}{
		{
			name: "OK",
			url:  fmt.Sprintf("/users/%d", user.ID),
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Get(gomock.Any(), gomock.Eq(user.ID)).
					Times(1).
					Return(user, nil)
			},
			checkResponse: func(recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusOK, recorder.Code)

				var got userResponse
				require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
				require.Equal(t, user, got.Data.User)
			},
		},
		{
			name: "InvalidID",
			url:  "/users/0",
			buildStubs: func(service *MockService) {
				service.EXPECT().Get(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusBadRequest, recorder.Code)
			},
		},
		{
			name: "NotFound",
			url:  fmt.Sprintf("/users/%d", user.ID),
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Get(gomock.Any(), gomock.Eq(user.ID)).
					Times(1).
					Return(domain.UserWithoutPassword{}, domain.ErrUserNotFound)
			},
			checkResponse: func(recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusNotFound, recorder.Code)
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			service := NewMockService(ctrl)
			tc.buildStubs(service)

			server := setupServer(t, service, tokenMaker)

			recorder := httptest.NewRecorder()
			request, err := http.NewRequest(http.MethodGet, tc.url, nil)
			require.NoError(t, err)

			middleware.AddAuthorization(t, request, tokenMaker,
				middleware.AuthTypeBearer, user.Username, "user", time.Minute)
			server.ServeHTTP(recorder, request)

			tc.checkResponse(recorder)
		})
	}
}
