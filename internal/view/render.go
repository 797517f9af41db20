package view

import (
	"context"
	"io"
	"net/url"

	"github.com/BorisRostovskiy/usertable/internal/service"
	"github.com/BorisRostovskiy/usertable/internal/toast"
	"github.com/a-h/templ"
)

const EmptyMarker = "No Users in Database"

// Table renders the list: the empty marker, or one row per record keyed by id.
func Table(users []service.User) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if len(users) == 0 {
			return write(w, `<h3 id="h3">`, EmptyMarker, `</h3>`)
		}
		if err := write(w,
			`<table class="table table-bordered table-hover">`,
			`<thead class="thead-dark"><tr><th>Id</th><th>Name</th><th>Email</th></tr></thead>`,
			`<tbody>`); err != nil {
			return err
		}
		for _, u := range users {
			id := templ.EscapeString(u.ID.String())
			if err := write(w,
				`<tr data-key="`, id, `">`,
				`<td>`, id, `</td>`,
				`<td>`, templ.EscapeString(u.Name), `</td>`,
				`<td>`, templ.EscapeString(u.Email), `</td>`,
				`</tr>`); err != nil {
				return err
			}
		}
		return write(w, `</tbody></table>`)
	})
}

// Toasts renders the notification region with a dismiss button per toast
func Toasts(items []toast.Toast) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if err := write(w, `<div id="toasts" class="toaster">`); err != nil {
			return err
		}
		for _, t := range items {
			if err := write(w,
				`<div class="toast toast-`, templ.EscapeString(string(t.Kind)), `" data-toast-id="`, templ.EscapeString(t.ID), `">`,
				`<span>`, templ.EscapeString(t.Message), `</span>`,
				`<form method="post" action="/toasts/`, templ.EscapeString(url.PathEscape(t.ID)), `/dismiss">`,
				`<button type="submit" class="btn-close" aria-label="Close">&times;</button>`,
				`</form></div>`); err != nil {
				return err
			}
		}
		return write(w, `</div>`)
	})
}

// Modals renders the create, edit and delete forms
func Modals() templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		return write(w,
			`<section id="create-user-modal" class="modal-form">`,
			`<h2>Create User</h2>`,
			`<form method="post" action="/users">`,
			`<input type="text" name="name" placeholder="Name">`,
			`<input type="email" name="email" placeholder="Email">`,
			`<button type="submit" class="btn btn-primary">Create</button>`,
			`</form></section>`,

			`<section id="edit-user-modal" class="modal-form">`,
			`<h2>Edit User</h2>`,
			`<form method="post" action="/users/edit">`,
			`<input type="text" name="id" placeholder="Id">`,
			`<input type="text" name="name" placeholder="Name">`,
			`<input type="email" name="email" placeholder="Email">`,
			`<button type="submit" class="btn btn-warning">Edit</button>`,
			`</form></section>`,

			`<section id="delete-user-modal" class="modal-form">`,
			`<h2>Delete User</h2>`,
			`<form method="post" action="/users/delete">`,
			`<input type="text" name="id" placeholder="Id">`,
			`<button type="submit" class="btn btn-danger">Delete</button>`,
			`</form></section>`,
		)
	})
}

// Page is the full user table document
func Page(s Snapshot, toasts []toast.Toast) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := write(w,
			`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`,
			`<title>User Table</title></head><body data-status="`, s.Status.String(), `">`); err != nil {
			return err
		}
		if err := Toasts(toasts).Render(ctx, w); err != nil {
			return err
		}
		if err := write(w, `<div class="container mt-5"><h1 class="mb-4" id="h1">User Table</h1>`); err != nil {
			return err
		}
		if err := Modals().Render(ctx, w); err != nil {
			return err
		}
		if err := Table(s.Users).Render(ctx, w); err != nil {
			return err
		}
		return write(w, `</div></body></html>`)
	})
}

func write(w io.Writer, parts ...string) error {
	for _, p := range parts {
		if _, err := io.WriteString(w, p); err != nil {
			return err
		}
	}
	return nil
}
