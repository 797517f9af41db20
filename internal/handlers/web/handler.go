package web

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/BorisRostovskiy/usertable/internal/log"
	"github.com/BorisRostovskiy/usertable/internal/service"
	"github.com/BorisRostovskiy/usertable/internal/toast"
	"github.com/BorisRostovskiy/usertable/internal/view"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const (
	SessionCookie = "usertable_view"

	HeaderContentType   = "Content-Type"
	HeaderContentLength = "Content-Length"
)

type stateResponse struct {
	Status view.Status    `json:"status"`
	Users  []service.User `json:"users"`
	Toasts []toast.Toast  `json:"toasts"`
}

// session returns the caller's view, mounting a new one when the cookie
// is missing or its view is gone.
func (h handler) session(w http.ResponseWriter, r *http.Request) *view.Session {
	if c, err := r.Cookie(SessionCookie); err == nil {
		if s, ok := h.views.Lookup(c.Value); ok {
			return s
		}
	}
	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return h.views.Open(id)
}

func (h handler) page(w http.ResponseWriter, r *http.Request) {
	s := h.session(w, r)

	ctx, cancel := context.WithTimeout(r.Context(), h.views.Config().RenderWait)
	defer cancel()
	if err := s.View.Await(ctx); err != nil {
		h.log.WithField("component", "web_handler").
			Debugf("rendering view %s before its load settled: %v", s.View.ID(), err)
	}

	var buf bytes.Buffer
	if err := view.Page(s.View.Snapshot(), s.Toasts.Active()).Render(r.Context(), &buf); err != nil {
		log.WithError(r, err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set(HeaderContentType, "text/html; charset=utf-8")
	w.Header().Set(HeaderContentLength, strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		h.log.Errorf("failed to write page: %s", err)
	}
}

func (h handler) createUser(w http.ResponseWriter, r *http.Request) {
	s := h.session(w, r)
	m := createUserModal{api: h.api, notify: s.Toasts, onUserCreated: s.OnUserCreated()}
	if err := m.Submit(r.Context(), r.PostFormValue("name"), r.PostFormValue("email")); err != nil {
		log.WithError(r, err)
	}
	backToTable(w, r)
}

func (h handler) editUser(w http.ResponseWriter, r *http.Request) {
	s := h.session(w, r)
	m := editUserModal{api: h.api, notify: s.Toasts}
	if err := m.Submit(r.Context(), r.PostFormValue("id"), r.PostFormValue("name"), r.PostFormValue("email")); err != nil {
		log.WithError(r, err)
	}
	backToTable(w, r)
}

func (h handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	s := h.session(w, r)
	m := deleteUserModal{api: h.api, notify: s.Toasts}
	if err := m.Submit(r.Context(), r.PostFormValue("id")); err != nil {
		log.WithError(r, err)
	}
	backToTable(w, r)
}

func (h handler) dismissToast(w http.ResponseWriter, r *http.Request) {
	s := h.session(w, r)
	tid := chi.URLParam(r, "tid")
	if !s.Toasts.Dismiss(tid) {
		log.WithErrorf(r, "toast %q is not queued", tid)
	}
	backToTable(w, r)
}

func (h handler) resetSession(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(SessionCookie); err == nil {
		h.views.Close(c.Value)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
	backToTable(w, r)
}

func (h handler) state(w http.ResponseWriter, r *http.Request) {
	s := h.session(w, r)
	snap := s.View.Snapshot()
	data, err := json.Marshal(stateResponse{
		Status: snap.Status,
		Users:  snap.Users,
		Toasts: s.Toasts.Active(),
	})
	if err != nil {
		log.WithError(r, err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set(HeaderContentType, "application/json; charset=utf-8")
	w.Header().Set(HeaderContentLength, strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func backToTable(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
