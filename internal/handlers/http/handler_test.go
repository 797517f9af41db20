package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/BorisRostovskiy/usertable/internal/clients"
	"github.com/BorisRostovskiy/usertable/internal/repository"
	"github.com/BorisRostovskiy/usertable/internal/repository/memory"
	"github.com/BorisRostovskiy/usertable/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/golang/mock/gomock"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	id1              = service.UserID("1")
	id2              = service.UserID("2")
	email1           = "user_one@gmail.com"
	email2           = "user_two@gmail.com"
	somethingHappens = "something happens"
)

func addChiURLParams(r *http.Request, params map[string]string) *http.Request {
	ctx := chi.NewRouteContext()
	for k, v := range params {
		ctx.URLParams.Add(k, v)
	}

	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, ctx))
}

var somethingHappensError = fmt.Errorf("%v", somethingHappens)

func userOne() *service.User {
	return &service.User{ID: id1, Name: "User One", Email: email1}
}

type expectation struct {
	responseCode    int
	responsePayload string
}

func assertResponse(t *testing.T, w *httptest.ResponseRecorder, want expectation) {
	t.Helper()
	res := w.Result()
	defer func() { _ = res.Body.Close() }()
	data, err := io.ReadAll(res.Body)
	assert.NoError(t, err)
	assert.Equal(t, want.responseCode, res.StatusCode)
	assert.Equal(t, want.responsePayload, string(data))
}

func TestServer_CreateUser(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	logger := logrus.New()
	notificationSvc := clients.NewMockChannelNotificator(ctrl)
	repo := service.NewMockUserRepo(ctrl)
	httpSvc := handler{log: logger, api: service.New(repo, logger, notificationSvc)}

	tests := map[string]struct {
		reqPayload string
		want       expectation
		repo       func(r *service.MockUserRepo)
		notify     func(n *clients.MockChannelNotificator)
	}{
		"CreateUser Ok": {
			reqPayload: `{"name": " User One ", "email": "User_One@gmail.com"}`,
			repo: func(r *service.MockUserRepo) {
				r.EXPECT().
					CreateUser(gomock.Any(), &service.User{Name: "User One", Email: email1}).
					Return(userOne(), nil).Times(1)
			},
			notify: func(n *clients.MockChannelNotificator) {
				n.EXPECT().Notify(gomock.Any(), clients.ChannelCreate,
					fmt.Sprintf("user with ID=%s has been created", id1))
			},
			want: expectation{
				responseCode:    http.StatusCreated,
				responsePayload: `{"id":"1","name":"User One","email":"user_one@gmail.com"}`,
			},
		},
		"No Email Error": {
			reqPayload: `{"name": "User One"}`,
			repo:       func(r *service.MockUserRepo) {},
			notify:     func(n *clients.MockChannelNotificator) {},
			want: expectation{
				responseCode:    http.StatusBadRequest,
				responsePayload: `{"code":101,"message":"invalid user: empty email"}`,
			},
		},
		"No Name Error": {
			reqPayload: `{"name": "   ", "email": "user_one@gmail.com"}`,
			repo:       func(r *service.MockUserRepo) {},
			notify:     func(n *clients.MockChannelNotificator) {},
			want: expectation{
				responseCode:    http.StatusBadRequest,
				responsePayload: `{"code":101,"message":"invalid user: empty name"}`,
			},
		},
		"Malformed payload Error": {
			reqPayload: `{`,
			repo:       func(r *service.MockUserRepo) {},
			notify:     func(n *clients.MockChannelNotificator) {},
			want: expectation{
				responseCode:    http.StatusBadRequest,
				responsePayload: `{"code":101,"message":"malformed data: unexpected EOF"}`,
			},
		},
		"Duplicate key Error": {
			reqPayload: `{"name": "User One", "email": "user_one@gmail.com"}`,
			repo: func(r *service.MockUserRepo) {
				r.EXPECT().
					CreateUser(gomock.Any(), gomock.Any()).
					Return(nil, repository.DuplicateKeyError).Times(1)
			},
			notify: func(n *clients.MockChannelNotificator) {},
			want: expectation{
				responseCode:    http.StatusConflict,
				responsePayload: `{"code":300,"message":"user already exists"}`,
			},
		},
		"Other repo problem Error": {
			reqPayload: `{"name": "User One", "email": "user_one@gmail.com"}`,
			repo: func(r *service.MockUserRepo) {
				r.EXPECT().
					CreateUser(gomock.Any(), gomock.Any()).
					Return(nil, somethingHappensError).Times(1)
			},
			notify: func(n *clients.MockChannelNotificator) {},
			want: expectation{
				responseCode:    http.StatusInternalServerError,
				responsePayload: `{"code":100,"message":"service internal error"}`,
			},
		},
	}
	for scenario, tt := range tests {
		t.Run(scenario, func(t *testing.T) {
			tt.repo(repo)
			tt.notify(notificationSvc)

			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodPost, "/api/v1/users", strings.NewReader(tt.reqPayload))

			err := httpSvc.createUser(r).WriteTo(w)
			assert.NoError(t, err)
			assertResponse(t, w, tt.want)
		})
	}
}

func TestServer_ListUsers(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	logger := logrus.New()
	notificationSvc := clients.NewMockChannelNotificator(ctrl)
	repo := service.NewMockUserRepo(ctrl)
	httpSvc := handler{log: logger, api: service.New(repo, logger, notificationSvc)}

	tests := map[string]struct {
		want expectation
		repo func(r *service.MockUserRepo)
	}{
		"ListUsers Ok": {
			repo: func(r *service.MockUserRepo) {
				r.EXPECT().
					ListUsers(gomock.Any()).
					Return([]service.User{
						*userOne(),
						*userOne().WithID(id2).WithName("User Two").WithEmail(email2),
					}, nil).Times(1)
			},
			want: expectation{
				responseCode:    http.StatusOK,
				responsePayload: `[{"id":"1","name":"User One","email":"user_one@gmail.com"},{"id":"2","name":"User Two","email":"user_two@gmail.com"}]`,
			},
		},
		"ListUsers empty response": {
			repo: func(r *service.MockUserRepo) {
				r.EXPECT().ListUsers(gomock.Any()).
					Return([]service.User{}, nil).Times(1)
			},
			want: expectation{
				responseCode:    http.StatusOK,
				responsePayload: `[]`,
			},
		},
		"ListUsers nil response": {
			repo: func(r *service.MockUserRepo) {
				r.EXPECT().ListUsers(gomock.Any()).
					Return(nil, nil).Times(1)
			},
			want: expectation{
				responseCode:    http.StatusOK,
				responsePayload: `[]`,
			},
		},
		"ListUsers repo Error": {
			repo: func(r *service.MockUserRepo) {
				r.EXPECT().ListUsers(gomock.Any()).
					Return(nil, somethingHappensError).Times(1)
			},
			want: expectation{
				responseCode:    http.StatusInternalServerError,
				responsePayload: `{"code":100,"message":"internal server error"}`,
			},
		},
	}

	for scenario, tt := range tests {
		t.Run(scenario, func(t *testing.T) {
			tt.repo(repo)
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)

			err := httpSvc.listUsers(r).WriteTo(w)
			assert.NoError(t, err)
			assertResponse(t, w, tt.want)
		})
	}
}

func TestServer_UpdateUser(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	logger := logrus.New()
	notificationSvc := clients.NewMockChannelNotificator(ctrl)
	repo := service.NewMockUserRepo(ctrl)
	httpSvc := handler{log: logger, api: service.New(repo, logger, notificationSvc)}

	tests := map[string]struct {
		reqPayload string
		urlVars    map[string]string
		want       expectation
		repo       func(r *service.MockUserRepo)
		notify     func(n *clients.MockChannelNotificator)
	}{
		"Update user OK": {
			urlVars:    map[string]string{"uid": string(id1)},
			reqPayload: fmt.Sprintf(`{"email": "%s"}`, strings.ToUpper(email2)),
			repo: func(r *service.MockUserRepo) {
				r.EXPECT().GetUser(gomock.Any(), id1).Return(userOne(), nil).Times(1)
				r.EXPECT().UpdateUser(gomock.Any(), userOne().WithEmail(email2)).Return(nil).Times(1)
			},
			notify: func(n *clients.MockChannelNotificator) {
				n.EXPECT().Notify(gomock.Any(), clients.ChannelUpdate, fmt.Sprintf("user with ID=%s has been updated", id1))
			},
			want: expectation{
				responseCode:    http.StatusOK,
				responsePayload: `null`,
			},
		},
		"Update user name only OK": {
			urlVars:    map[string]string{"uid": string(id1)},
			reqPayload: `{"name": "Renamed"}`,
			repo: func(r *service.MockUserRepo) {
				r.EXPECT().GetUser(gomock.Any(), id1).Return(userOne(), nil).Times(1)
				r.EXPECT().UpdateUser(gomock.Any(), userOne().WithName("Renamed")).Return(nil).Times(1)
			},
			notify: func(n *clients.MockChannelNotificator) {
				n.EXPECT().Notify(gomock.Any(), clients.ChannelUpdate, fmt.Sprintf("user with ID=%s has been updated", id1))
			},
			want: expectation{
				responseCode:    http.StatusOK,
				responsePayload: `null`,
			},
		},
		"Update user structure is empty error": {
			urlVars:    map[string]string{"uid": string(id1)},
			reqPayload: `{}`,
			repo: func(r *service.MockUserRepo) {
				r.EXPECT().GetUser(gomock.Any(), id1).Return(userOne(), nil).Times(1)
			},
			notify: func(n *clients.MockChannelNotificator) {},
			want: expectation{
				responseCode:    http.StatusBadRequest,
				responsePayload: `{"code":103,"message":"empty request"}`,
			},
		},
		"Update user id empty error": {
			urlVars:    map[string]string{},
			reqPayload: fmt.Sprintf(`{"email": "%s"}`, email2),
			repo:       func(r *service.MockUserRepo) {},
			notify:     func(n *clients.MockChannelNotificator) {},
			want: expectation{
				responseCode:    http.StatusBadRequest,
				responsePayload: `{"code":101,"message":"failed to parse request: user id is mandatory"}`,
			},
		},
		"Update no users found error": {
			urlVars:    map[string]string{"uid": string(id1)},
			reqPayload: fmt.Sprintf(`{"email": "%s"}`, email2),
			repo: func(r *service.MockUserRepo) {
				r.EXPECT().GetUser(gomock.Any(), id1).Return(nil, repository.NoUsersFoundError).Times(1)
			},
			notify: func(n *clients.MockChannelNotificator) {},
			want: expectation{
				responseCode:    http.StatusNotFound,
				responsePayload: `{"code":200,"message":"user not found"}`,
			},
		},
		"Update duplicate key error": {
			urlVars:    map[string]string{"uid": string(id1)},
			reqPayload: fmt.Sprintf(`{"email": "%s"}`, email2),
			repo: func(r *service.MockUserRepo) {
				r.EXPECT().GetUser(gomock.Any(), id1).Return(userOne(), nil).Times(1)
				r.EXPECT().UpdateUser(gomock.Any(), userOne().WithEmail(email2)).Return(repository.DuplicateKeyError).Times(1)
			},
			notify: func(n *clients.MockChannelNotificator) {},
			want: expectation{
				responseCode:    http.StatusConflict,
				responsePayload: `{"code":102,"message":"duplicate key error"}`,
			},
		},
		"Update repo something happens error": {
			urlVars:    map[string]string{"uid": string(id1)},
			reqPayload: fmt.Sprintf(`{"email": "%s"}`, email2),
			repo: func(r *service.MockUserRepo) {
				r.EXPECT().GetUser(gomock.Any(), id1).Return(userOne(), nil).Times(1)
				r.EXPECT().UpdateUser(gomock.Any(), userOne().WithEmail(email2)).Return(somethingHappensError).Times(1)
			},
			notify: func(n *clients.MockChannelNotificator) {},
			want: expectation{
				responseCode:    http.StatusInternalServerError,
				responsePayload: `{"code":100,"message":"internal server error"}`,
			},
		},
	}
	for scenario, tt := range tests {
		t.Run(scenario, func(t *testing.T) {
			tt.repo(repo)
			tt.notify(notificationSvc)
			r := addChiURLParams(
				httptest.NewRequest(http.MethodPut, "/api/v1/users/"+tt.urlVars["uid"], strings.NewReader(tt.reqPayload)),
				tt.urlVars)
			w := httptest.NewRecorder()

			err := httpSvc.updateUser(r).WriteTo(w)
			assert.NoError(t, err)
			assertResponse(t, w, tt.want)
		})
	}
}

func TestServer_DeleteUser(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	logger := logrus.New()
	notificationSvc := clients.NewMockChannelNotificator(ctrl)
	repo := service.NewMockUserRepo(ctrl)
	httpSvc := handler{log: logger, api: service.New(repo, logger, notificationSvc)}

	tests := map[string]struct {
		urlVars map[string]string
		want    expectation
		repo    func(r *service.MockUserRepo)
		notify  func(n *clients.MockChannelNotificator)
	}{
		"DeleteUser Ok": {
			urlVars: map[string]string{"uid": string(id1)},
			repo: func(r *service.MockUserRepo) {
				r.EXPECT().DeleteUser(gomock.Any(), id1).Return(nil).Times(1)
			},
			notify: func(n *clients.MockChannelNotificator) {
				n.EXPECT().Notify(gomock.Any(), clients.ChannelDelete, fmt.Sprintf("user with ID=%s has been deleted", id1))
			},
			want: expectation{
				responseCode:    http.StatusOK,
				responsePayload: `null`,
			},
		},
		"Delete user no id error": {
			urlVars: map[string]string{},
			repo:    func(r *service.MockUserRepo) {},
			notify:  func(n *clients.MockChannelNotificator) {},
			want: expectation{
				responseCode:    http.StatusBadRequest,
				responsePayload: `{"code":101,"message":"failed to parse request: id is mandatory"}`,
			},
		},
		"Delete user not found error": {
			urlVars: map[string]string{"uid": string(id1)},
			repo: func(r *service.MockUserRepo) {
				r.EXPECT().DeleteUser(gomock.Any(), id1).Return(repository.NoUsersFoundError).Times(1)
			},
			notify: func(n *clients.MockChannelNotificator) {},
			want: expectation{
				responseCode:    http.StatusNotFound,
				responsePayload: `{"code":200,"message":"user not found"}`,
			},
		},
		"Delete user repo error": {
			urlVars: map[string]string{"uid": string(id1)},
			repo: func(r *service.MockUserRepo) {
				r.EXPECT().DeleteUser(gomock.Any(), id1).Return(somethingHappensError).Times(1)
			},
			notify: func(n *clients.MockChannelNotificator) {},
			want: expectation{
				responseCode:    http.StatusInternalServerError,
				responsePayload: `{"code":100,"message":"internal server error"}`,
			},
		},
	}
	for scenario, tt := range tests {
		t.Run(scenario, func(t *testing.T) {
			tt.repo(repo)
			tt.notify(notificationSvc)
			r := addChiURLParams(httptest.NewRequest(http.MethodDelete, "/api/v1/users/"+tt.urlVars["uid"], nil), tt.urlVars)
			w := httptest.NewRecorder()

			err := httpSvc.deleteUser(r).WriteTo(w)
			assert.NoError(t, err)
			assertResponse(t, w, tt.want)
		})
	}
}

func TestRouter(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	users := service.New(memory.New(), logger, clients.NewChannelNotificationSvc(logger))
	srv := httptest.NewServer(New(logger, users, nil))
	defer srv.Close()

	do := func(method, path, body string) (int, string) {
		req, err := http.NewRequest(method, srv.URL+path, strings.NewReader(body))
		require.NoError(t, err)
		res, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer func() { _ = res.Body.Close() }()
		data, err := io.ReadAll(res.Body)
		require.NoError(t, err)
		assert.Equal(t, "application/json; charset=utf-8", res.Header.Get(HeaderContentType))
		return res.StatusCode, string(data)
	}

	code, body := do(http.MethodGet, "/api/v1/users", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, `[]`, body)

	code, _ = do(http.MethodPost, "/api/v1/users", `{"name":"User One","email":"user_one@gmail.com"}`)
	assert.Equal(t, http.StatusCreated, code)

	code, body = do(http.MethodGet, "/api/v1/users", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, `"name":"User One"`)

	code, body = do(http.MethodPut, "/api/v1/users/missing", `{"name":"x"}`)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, `{"code":200,"message":"user not found"}`, body)

	code, _ = do(http.MethodDelete, "/api/v1/users/missing", "")
	assert.Equal(t, http.StatusNotFound, code)
}
