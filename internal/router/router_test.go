package router

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/gema-grade-evaluator/internal/config"
	"github.com/noah-isme/gema-grade-evaluator/internal/handler"
	"github.com/noah-isme/gema-grade-evaluator/internal/middleware"
	"github.com/noah-isme/gema-grade-evaluator/internal/service"
	"github.com/noah-isme/gema-grade-evaluator/internal/utils"
)

const routerSecret = "router-secret"

const evaluateBody = `{
  "course": {"id": 1},
  "assignment_group": {"id": 2, "course_id": 1, "assignments": [
    {"id": 1, "name": "Quiz", "due_at": "2023-10-01T00:00:00Z", "points_possible": 10}
  ]},
  "submissions": [],
  "evaluated_at": "2023-10-10T00:00:00Z"
}`

func newApp(withAuth bool) *fiber.App {
	logger := zerolog.Nop()
	evaluator := service.NewGradeEvaluator(logger)
	reportService := service.NewGradeReportService(evaluator, utils.NewValidator(), logger)

	cfg := config.Config{AppName: "GEMA Grade Evaluator", AppEnv: "test", LatePenalty: 0.1, RateLimit: 100}
	deps := Dependencies{GradeHandler: handler.NewGradeHandler(reportService, logger)}
	if withAuth {
		deps.JWTMiddleware = middleware.JWTProtected(routerSecret)
	}

	app := fiber.New()
	middleware.Register(app, middleware.Config{Logger: &logger})
	Register(app, cfg, deps)
	return app
}

func evaluateRequest(token string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/grades/evaluate", bytes.NewBufferString(evaluateBody))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func tokenFor(t *testing.T, role string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "7",
		"role": role,
		"exp":  time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(routerSecret))
	require.NoError(t, err)
	return token
}

func TestRouterHealth(t *testing.T) {
	resp, err := newApp(false).Test(httptest.NewRequest(http.MethodGet, "/api/v1/health", nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, "GEMA Grade Evaluator", resp.Header.Get("X-Application"))
	require.NotEmpty(t, resp.Header.Get("X-Correlation-ID"))
}

func TestRouterEvaluateWithoutAuth(t *testing.T) {
	resp, err := newApp(false).Test(evaluateRequest(""), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRouterEvaluateRequiresToken(t *testing.T) {
	app := newApp(true)

	resp, err := app.Test(evaluateRequest(""), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, err = app.Test(evaluateRequest(tokenFor(t, middleware.RoleStudent)), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp, err = app.Test(evaluateRequest(tokenFor(t, middleware.RoleTeacher)), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRouterMetricsEndpoint(t *testing.T) {
	app := newApp(false)

	_, err := app.Test(evaluateRequest(""), -1)
	require.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	require.Contains(t, string(body), "grading_evaluations_total")
	require.Contains(t, string(body), "grading_http_requests_total")
}
