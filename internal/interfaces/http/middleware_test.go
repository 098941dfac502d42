package http_test

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jhoicas/sigep-gc/internal/interfaces/http"
	"github.com/jhoicas/sigep-gc/pkg/logger"
)

func TestOriginAllowed(t *testing.T) {
	tests := []struct {
		name       string
		origins    []string
		production bool
		origin     string
		want       bool
	}{
		{"lista vacía en desarrollo", nil, false, "http://localhost:5173", true},
		{"lista vacía en producción", nil, true, "https://front.example.com", false},
		{"en la lista", []string{"https://front.example.com"}, true, "https://front.example.com", true},
		{"barra final ignorada", []string{"https://front.example.com/"}, true, "https://front.example.com", true},
		{"fuera de la lista", []string{"https://front.example.com"}, true, "https://evil.example.com", false},
		{"comodín", []string{"https://a.example.com", "*"}, true, "https://b.example.com", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, apphttp.OriginAllowed(tt.origins, tt.production)(tt.origin))
		})
	}
}

func TestCORS_ConCredenciales(t *testing.T) {
	app := fiber.New()
	app.Use(apphttp.CORS([]string{"https://front.example.com"}, true))
	app.Get("/x", func(c *fiber.Ctx) error { return c.SendString("ok") })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "https://front.example.com")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "https://front.example.com", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", resp.Header.Get("Access-Control-Allow-Credentials"))
}

type obsRecorder struct {
	mu     sync.Mutex
	routes []string
	status []int
}

func (o *obsRecorder) ObserveHTTP(_, route string, status int, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.routes = append(o.routes, route)
	o.status = append(o.status, status)
}

func TestRequestLogger_ObservaRutaYStatus(t *testing.T) {
	log := logger.Nop()
	obs := &obsRecorder{}
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler(log)})
	app.Use(apphttp.RequestLogger(log, obs))
	app.Get("/pedidos/:id", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })
	app.Get("/falla", func(c *fiber.Ctx) error { return fiber.NewError(fiber.StatusTeapot, "tetera") })

	for _, path := range []string{"/pedidos/7", "/falla"} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil), -1)
		require.NoError(t, err)
		resp.Body.Close()
	}

	assert.Equal(t, []string{"/pedidos/:id", "/falla"}, obs.routes, "se usa el patrón, no el path concreto")
	assert.Equal(t, []int{fiber.StatusNoContent, fiber.StatusTeapot}, obs.status)
}
