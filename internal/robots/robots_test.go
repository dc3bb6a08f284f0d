package robots

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestCheckerAllowed(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			hits.Add(1)
			w.Write([]byte("User-agent: *\nDisallow: /private/\n\nUser-agent: facscope\nDisallow: /nobots/\n"))
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewChecker(srv.Client(), "", zerolog.Nop())
	ctx := context.Background()

	assert.True(t, c.Allowed(ctx, srv.URL+"/faculty/1"))
	assert.False(t, c.Allowed(ctx, srv.URL+"/nobots/page"))
	assert.True(t, c.Allowed(ctx, srv.URL))
	assert.EqualValues(t, 1, hits.Load(), "robots.txt is fetched once per host")
}

func TestCheckerMissingRobotsAllows(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	c := NewChecker(srv.Client(), "facscope", zerolog.Nop())
	assert.True(t, c.Allowed(context.Background(), srv.URL+"/anything"))
}

func TestCheckerUnreachableHostAllows(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewChecker(nil, "facscope", zerolog.Nop())
	assert.True(t, c.Allowed(context.Background(), url+"/page"))
}

func TestCheckerRejectsBadURL(t *testing.T) {
	c := NewChecker(nil, "", zerolog.Nop())
	assert.False(t, c.Allowed(context.Background(), "not a url"))
	assert.False(t, c.Allowed(context.Background(), "::"))
}
