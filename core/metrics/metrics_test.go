package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddlewareAndHandler(t *testing.T) {
	app := fiber.New()
	app.Use(Middleware())
	app.Get("/moderation/queues/:queue", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/metrics", Handler())

	before := testutil.ToFloat64(httpReqTotal.WithLabelValues("GET", "/moderation/queues/:queue", "200"))

	resp, err := app.Test(httptest.NewRequest("GET", "/moderation/queues/matches", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	after := testutil.ToFloat64(httpReqTotal.WithLabelValues("GET", "/moderation/queues/:queue", "200"))
	assert.Equal(t, before+1, after)

	QueueLoads.WithLabelValues("matches", "ok").Inc()

	resp, err = app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "animalsearch_http_requests_total")
	assert.Contains(t, string(body), "animalsearch_moderation_queue_loads_total")
}
