package web

import (
	"context"
	"errors"
	"testing"

	"github.com/BorisRostovskiy/usertable/internal/service"

	"github.com/stretchr/testify/assert"
)

type fakeMutator struct {
	created service.User
	err     error
	calls   []service.User
}

func (f *fakeMutator) CreateUser(_ context.Context, in service.User) (service.User, error) {
	f.calls = append(f.calls, in)
	return f.created, f.err
}

func (f *fakeMutator) UpdateUser(_ context.Context, in service.User) error {
	f.calls = append(f.calls, in)
	return f.err
}

func (f *fakeMutator) DeleteUser(_ context.Context, id service.UserID) error {
	f.calls = append(f.calls, service.User{ID: id})
	return f.err
}

type recordingChannel struct {
	success []string
	failure []string
}

func (c *recordingChannel) NotifySuccess(msg string) { c.success = append(c.success, msg) }
func (c *recordingChannel) NotifyFailure(msg string) { c.failure = append(c.failure, msg) }

func TestCreateUserModal_Submit(t *testing.T) {
	tests := map[string]struct {
		apiErr      error
		wantErr     bool
		wantAppends int
		success     []string
		failure     []string
	}{
		"created": {
			wantAppends: 1,
			success:     []string{msgUserCreated},
		},
		"users api failure": {
			apiErr:  errors.New("create user: unexpected status 409"),
			wantErr: true,
			failure: []string{msgUserCreateFailed},
		},
	}
	for scenario, tt := range tests {
		t.Run(scenario, func(t *testing.T) {
			api := &fakeMutator{created: service.User{ID: "7", Name: "Bo", Email: "b@x.com"}, err: tt.apiErr}
			ch := &recordingChannel{}
			var appended []service.User
			m := createUserModal{api: api, notify: ch, onUserCreated: func(u service.User) {
				appended = append(appended, u)
			}}

			err := m.Submit(context.Background(), " Bo ", " b@x.com")

			assert.Equal(t, tt.wantErr, err != nil)
			assert.Len(t, appended, tt.wantAppends)
			if tt.wantAppends > 0 {
				assert.Equal(t, api.created, appended[0])
			}
			assert.Equal(t, []service.User{{Name: "Bo", Email: "b@x.com"}}, api.calls)
			assert.Equal(t, tt.success, ch.success)
			assert.Equal(t, tt.failure, ch.failure)
		})
	}
}

func TestEditUserModal_Submit(t *testing.T) {
	tests := map[string]struct {
		id        string
		apiErr    error
		wantCalls int
		success   []string
		failure   []string
	}{
		"updated":   {id: "1", wantCalls: 1, success: []string{msgUserUpdated}},
		"api error": {id: "1", apiErr: errors.New("boom"), wantCalls: 1, failure: []string{msgUserUpdateFailed}},
		"no id":     {id: "  ", failure: []string{msgUserUpdateFailed}},
	}
	for scenario, tt := range tests {
		t.Run(scenario, func(t *testing.T) {
			api := &fakeMutator{err: tt.apiErr}
			ch := &recordingChannel{}
			err := editUserModal{api: api, notify: ch}.Submit(context.Background(), tt.id, "Ann", "")

			assert.Equal(t, tt.failure != nil, err != nil)
			assert.Len(t, api.calls, tt.wantCalls)
			assert.Equal(t, tt.success, ch.success)
			assert.Equal(t, tt.failure, ch.failure)
		})
	}
}

func TestDeleteUserModal_Submit(t *testing.T) {
	tests := map[string]struct {
		id        string
		apiErr    error
		wantCalls int
		success   []string
		failure   []string
	}{
		"deleted":   {id: "1", wantCalls: 1, success: []string{msgUserDeleted}},
		"api error": {id: "1", apiErr: errors.New("boom"), wantCalls: 1, failure: []string{msgUserDeleteFailed}},
		"no id":     {id: "", failure: []string{msgUserDeleteFailed}},
	}
	for scenario, tt := range tests {
		t.Run(scenario, func(t *testing.T) {
			api := &fakeMutator{err: tt.apiErr}
			ch := &recordingChannel{}
			err := deleteUserModal{api: api, notify: ch}.Submit(context.Background(), tt.id)

			assert.Equal(t, tt.failure != nil, err != nil)
			assert.Len(t, api.calls, tt.wantCalls)
			assert.Equal(t, tt.success, ch.success)
			assert.Equal(t, tt.failure, ch.failure)
		})
	}
}
