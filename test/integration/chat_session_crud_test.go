package integration

import (
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"makementors-be/internal/bootstrap"
	"makementors-be/internal/config"
	"makementors-be/internal/dto"
	"makementors-be/internal/model"
	"makementors-be/internal/pkg/serverutils"
	"makementors-be/internal/server"
	"makementors-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func TestChatSessionCRUD(t *testing.T) {
	// Setup
	if err := godotenv.Load("../../.env"); err != nil {
		t.Logf("Warning: Could not load ../../.env: %v", err)
		os.Setenv("JWT_SECRET", "default_secret")
	}
	cfg := config.Load()
	if cfg.Database.Connection == "" {
		t.Skip("DB_CONNECTION_STRING not set, skipping integration test")
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	container := bootstrap.NewContainer(db, cfg)
	srv := server.New(cfg, container)
	app := srv.GetApp()

	// 1. Seed an active user
	userPass := "chatuser123"
	userHash, _ := bcrypt.GenerateFromPassword([]byte(userPass), bcrypt.DefaultCost)
	userHashStr := string(userHash)

	userId := uuid.New()
	user := &model.User{
		Id:            userId,
		Email:         "chatcrud@example.com",
		FullName:      "Chat CRUD User",
		PasswordHash:  &userHashStr,
		Role:          "user",
		Status:        "active",
		EmailVerified: true,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	db.Create(user)
	defer db.Unscoped().Delete(&model.User{}, userId)

	// 2. Login to get a token
	loginReq := dto.LoginRequest{
		Email:    "chatcrud@example.com",
		Password: userPass,
	}
	loginBody, _ := json.Marshal(loginReq)
	req := httptest.NewRequest("POST", "/api/auth/login", strings.NewReader(string(loginBody)))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var loginRes serverutils.BaseResponse[dto.LoginResponse]
	json.NewDecoder(resp.Body).Decode(&loginRes)
	token := loginRes.Data.AccessToken
	assert.NotEmpty(t, token)

	authHeader := "Bearer " + token

	// 3. Create a session bound to a template mentor
	createReq := dto.CreateSessionRequest{
		MentorId: "career_strategist",
		Title:    "Integration test session",
	}
	createBody, _ := json.Marshal(createReq)
	req = httptest.NewRequest("POST", "/api/chat/v1/sessions", strings.NewReader(string(createBody)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", authHeader)
	resp, err = app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var createRes serverutils.BaseResponse[dto.CreateSessionResponse]
	json.NewDecoder(resp.Body).Decode(&createRes)
	sessionId := createRes.Data.Id
	assert.NotEqual(t, uuid.Nil, sessionId)
	defer db.Unscoped().Delete(&model.ChatSession{}, sessionId)

	// 4. List sessions, the new one must be there with its mentor binding
	req = httptest.NewRequest("GET", "/api/chat/v1/sessions", nil)
	req.Header.Set("Authorization", authHeader)
	resp, err = app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var listRes serverutils.BaseResponse[[]dto.GetAllSessionsResponse]
	json.NewDecoder(resp.Body).Decode(&listRes)

	found := false
	for _, s := range listRes.Data {
		if s.Id == sessionId {
			found = true
			assert.Equal(t, "career_strategist", s.MentorId)
			assert.Equal(t, "template", s.MentorType)
			assert.Equal(t, "Integration test session", s.Title)
		}
	}
	assert.True(t, found, "created session missing from list")

	// 5. Rename
	renameReq := dto.RenameSessionRequest{Title: "Renamed session"}
	renameBody, _ := json.Marshal(renameReq)
	req = httptest.NewRequest("PUT", fmt.Sprintf("/api/chat/v1/sessions/%s", sessionId), strings.NewReader(string(renameBody)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", authHeader)
	resp, err = app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	// 6. History of a fresh session is empty
	req = httptest.NewRequest("GET", fmt.Sprintf("/api/chat/v1/sessions/%s/messages", sessionId), nil)
	req.Header.Set("Authorization", authHeader)
	resp, err = app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var historyRes serverutils.BaseResponse[[]dto.GetChatHistoryResponse]
	json.NewDecoder(resp.Body).Decode(&historyRes)
	assert.Empty(t, historyRes.Data)

	// 7. Another user must not see this session
	req = httptest.NewRequest("GET", fmt.Sprintf("/api/chat/v1/sessions/%s/messages", sessionId), nil)
	resp, err = app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)

	// 8. Delete
	req = httptest.NewRequest("DELETE", fmt.Sprintf("/api/chat/v1/sessions/%s", sessionId), nil)
	req.Header.Set("Authorization", authHeader)
	resp, err = app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	// Deleted session is gone from history reads
	req = httptest.NewRequest("GET", fmt.Sprintf("/api/chat/v1/sessions/%s/messages", sessionId), nil)
	req.Header.Set("Authorization", authHeader)
	resp, err = app.Test(req, -1)
	assert.NoError(t, err)
	assert.NotEqual(t, 200, resp.StatusCode)
}
