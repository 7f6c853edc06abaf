package web_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/ardanlabs/ledger/foundation/web"
	"github.com/google/uuid"
)

func Test_TraceID(t *testing.T) {
	const zero = "00000000-0000-0000-0000-000000000000"

	if id := web.GetTraceID(context.Background()); id != zero {
		t.Logf("got: %s", id)
		t.Logf("exp: %s", zero)
		t.Fatalf("Should get the zero trace id outside of a request.")
	}

	var got string
	h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		got = web.GetTraceID(ctx)
		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}

	app := web.NewApp(make(chan os.Signal, 1))
	app.Handle(http.MethodGet, "v1", "/trace", h)

	w := httptest.NewRecorder()
	app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/trace", nil))

	if w.Code != http.StatusNoContent {
		t.Logf("got: %d", w.Code)
		t.Fatalf("Should route the request to the handler.")
	}

	if _, err := uuid.Parse(got); err != nil || got == zero {
		t.Logf("got: %s", got)
		t.Fatalf("Should get a trace id for the request.")
	}
}
