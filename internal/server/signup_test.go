package server

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	signupdomain "github.com/griddesk/griddesk/internal/signup/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSignupService struct {
	called  bool
	lastReq signupdomain.Request
	err     error
}

func (f *fakeSignupService) Signup(ctx context.Context, req signupdomain.Request) (*signupdomain.Result, error) {
	f.called = true
	f.lastReq = req
	_ = ctx
	if f.err != nil {
		return nil, f.err
	}
	return &signupdomain.Result{UserID: snowflake.ID(200), Role: req.Role}, nil
}

func newSignupRouter(signupSvc signupdomain.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	srv := &Server{signupsvc: signupSvc}
	router := gin.New()
	router.Use(ErrorHandlingMiddleware())
	router.POST("/signup", srv.Signup)
	return router
}

func TestSignupHandlerMapsLegacyServiceTypes(t *testing.T) {
	signupSvc := &fakeSignupService{}
	router := newSignupRouter(signupSvc)

	body := `{
		"name": "Tess Tech",
		"username": "tess",
		"password": "correct-horse",
		"role": "Employee",
		"position": "Technician",
		"serviceTypes": ["Electricity", "Gas"],
		"skills": [{"serviceType": "Water", "proficiency": 5}]
	}`
	req := httptest.NewRequest(http.MethodPost, "/signup", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	require.Equal(t, http.StatusCreated, resp.Code)
	require.True(t, signupSvc.called)

	assert.Equal(t, "tess", signupSvc.lastReq.Username)
	assert.Equal(t, "Tess Tech", signupSvc.lastReq.DisplayName)
	require.Len(t, signupSvc.lastReq.Skills, 3)

	// Explicit skills keep their rating, bare service types get the default.
	assert.Equal(t, "Water", signupSvc.lastReq.Skills[0].ServiceType)
	assert.Equal(t, 5, signupSvc.lastReq.Skills[0].Proficiency)
	assert.Equal(t, defaultSkillProficiency, signupSvc.lastReq.Skills[1].Proficiency)
	assert.Equal(t, defaultSkillProficiency, signupSvc.lastReq.Skills[2].Proficiency)

	assert.Contains(t, resp.Body.String(), "User registered successfully")
}

func TestSignupHandlerRejectsMalformedBody(t *testing.T) {
	signupSvc := &fakeSignupService{}
	router := newSignupRouter(signupSvc)

	req := httptest.NewRequest(http.MethodPost, "/signup", bytes.NewBufferString(`{"username": 42`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.False(t, signupSvc.called)
}

func TestSignupHandlerPropagatesServiceError(t *testing.T) {
	signupSvc := &fakeSignupService{err: signupdomain.ErrInvalidRole}
	router := newSignupRouter(signupSvc)

	req := httptest.NewRequest(http.MethodPost, "/signup", bytes.NewBufferString(`{"username":"x","password":"correct-horse","role":"superuser"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}
