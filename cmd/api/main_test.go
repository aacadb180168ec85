package main

import (
	"io"
	"net/http/httptest"
	"sync"
	"testing"

	"docstore/docs"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterSwagger_FixedHost(t *testing.T) {
	orig := docs.SwaggerInfo.Host
	t.Cleanup(func() { docs.SwaggerInfo.Host = orig })

	app := fiber.New()
	registerSwagger(app, "docs.example:8080")

	var wg sync.WaitGroup
	for _, host := range []string{"client-a.test", "client-b.test", "client-c.test"} {
		wg.Add(1)
		go func(host string) {
			defer wg.Done()
			req := httptest.NewRequest("GET", "/swagger/doc.json", nil)
			req.Host = host
			resp, err := app.Test(req)
			if !assert.NoError(t, err) {
				return
			}
			body, _ := io.ReadAll(resp.Body)
			assert.Equal(t, fiber.StatusOK, resp.StatusCode)
			assert.Contains(t, string(body), `"host": "docs.example:8080"`)
			assert.NotContains(t, string(body), host)
		}(host)
	}
	wg.Wait()

	require.Equal(t, "docs.example:8080", docs.SwaggerInfo.Host)
}
