package httpx

import (
	"io"
	"net/http"
)

// Minimal page shells. Rendering and layout live in the frontend; these exist
// so the guarded page routes answer with something concrete and the guard
// redirects have real destinations.
const (
	homePage = `<!doctype html>
<html lang="en"><head><meta charset="utf-8"><title>Gurmat Academy</title></head>
<body><main id="app" data-page="home"></main></body></html>
`
	studentDashboardPage = `<!doctype html>
<html lang="en"><head><meta charset="utf-8"><title>Student Dashboard - Gurmat Academy</title></head>
<body><main id="app" data-page="student-dashboard"></main></body></html>
`
	adminPage = `<!doctype html>
<html lang="en"><head><meta charset="utf-8"><title>Administration - Gurmat Academy</title></head>
<body><main id="app" data-page="admin"></main></body></html>
`
	loginPage = `<!doctype html>
<html lang="en"><head><meta charset="utf-8"><title>Sign In - Gurmat Academy</title></head>
<body><main id="app" data-page="login"></main></body></html>
`
	signedOutPage = `<!doctype html>
<html lang="en"><head><meta charset="utf-8"><title>Signed Out - Gurmat Academy</title></head>
<body><main id="app" data-page="signed-out"></main></body></html>
`
)

// pageHandler serves a static HTML shell.
func pageHandler(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if _, err := io.WriteString(w, body); err != nil {
			// Nothing more to do if the client connection is gone.
			return
		}
	}
}
