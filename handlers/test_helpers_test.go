package handlers

import (
	"net/http"
	"net/http/httptest"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// newTestRequestEvent builds a RequestEvent around an httptest recorder so
// handlers can be exercised without a running server.
func newTestRequestEvent(app *pocketbase.PocketBase, req *http.Request, rec *httptest.ResponseRecorder) *core.RequestEvent {
	event := &core.RequestEvent{}
	event.App = app
	event.Request = req
	event.Response = rec

	return event
}
