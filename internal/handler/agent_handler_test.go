package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"studyforge/internal/dto"
	"studyforge/internal/handler"
	"studyforge/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newMultipartForm writes fields into buf and returns the content type header.
func newMultipartForm(t *testing.T, buf *bytes.Buffer, fields map[string]string) string {
	t.Helper()
	writer := multipart.NewWriter(buf)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	require.NoError(t, writer.Close())
	return writer.FormDataContentType()
}

// MockAgentService
type MockAgentService struct {
	ProcessFunc func(ctx context.Context, req *dto.AgentMessageRequest) (*dto.AgentMessageResponse, error)
	ClearFunc   func(ctx context.Context, sessionID string) error
}

func (m *MockAgentService) Process(ctx context.Context, req *dto.AgentMessageRequest) (*dto.AgentMessageResponse, error) {
	if m.ProcessFunc != nil {
		return m.ProcessFunc(ctx, req)
	}
	panic("MockAgentService.ProcessFunc not implemented")
}
func (m *MockAgentService) Clear(ctx context.Context, sessionID string) error {
	if m.ClearFunc != nil {
		return m.ClearFunc(ctx, sessionID)
	}
	panic("MockAgentService.ClearFunc not implemented")
}

func newAgentApp(svc *MockAgentService) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(),
	})
	h := handler.NewAgentHandler(svc)
	app.Post("/api/agent/message", h.Message)
	app.Delete("/api/agent/context/:session_id", h.Clear)
	return app
}

func TestAgentHandler_Message(t *testing.T) {
	t.Run("multipart message keeps session id", func(t *testing.T) {
		mockSvc := &MockAgentService{
			ProcessFunc: func(ctx context.Context, req *dto.AgentMessageRequest) (*dto.AgentMessageResponse, error) {
				assert.Equal(t, "explain this topic", req.Message)
				assert.Equal(t, "session-42", req.SessionID)
				return &dto.AgentMessageResponse{
					Message:   "Here is an explanation.",
					SessionID: req.SessionID,
				}, nil
			},
		}
		app := newAgentApp(mockSvc)

		var buf bytes.Buffer
		form := newMultipartForm(t, &buf, map[string]string{
			"message":    "explain this topic",
			"session_id": "session-42",
		})
		req := httptest.NewRequest("POST", "/api/agent/message", &buf)
		req.Header.Set("Content-Type", form)

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var parsed dto.AgentMessageResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&parsed))
		assert.Equal(t, "session-42", parsed.SessionID)
	})

	t.Run("missing session id gets a generated one", func(t *testing.T) {
		var seenSessionID string
		mockSvc := &MockAgentService{
			ProcessFunc: func(ctx context.Context, req *dto.AgentMessageRequest) (*dto.AgentMessageResponse, error) {
				seenSessionID = req.SessionID
				return &dto.AgentMessageResponse{Message: "ok", SessionID: req.SessionID}, nil
			},
		}
		app := newAgentApp(mockSvc)

		body, _ := json.Marshal(fiber.Map{"message": "hello"})
		req := httptest.NewRequest("POST", "/api/agent/message", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.NotEmpty(t, seenSessionID)
	})
}

func TestAgentHandler_Clear(t *testing.T) {
	var clearedSessionID string
	mockSvc := &MockAgentService{
		ClearFunc: func(ctx context.Context, sessionID string) error {
			clearedSessionID = sessionID
			return nil
		},
	}
	app := newAgentApp(mockSvc)

	req := httptest.NewRequest("DELETE", "/api/agent/context/session-42", nil)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "session-42", clearedSessionID)

	var parsed dto.AgentClearResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&parsed))
	assert.True(t, parsed.Cleared)
	assert.Equal(t, "session-42", parsed.SessionID)
}
