package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/eduintel/eli-api/internal/dto"
	"github.com/eduintel/eli-api/internal/models"
	appErrors "github.com/eduintel/eli-api/pkg/errors"
)

type fakeAuthSrv struct {
	resp *dto.LoginResponse
	err  error
}

func (f *fakeAuthSrv) Login(context.Context, dto.LoginRequest) (*dto.LoginResponse, error) {
	return f.resp, f.err
}

func TestAuthHandlerLogin(t *testing.T) {
	srv := &fakeAuthSrv{resp: &dto.LoginResponse{
		Token:    "signed-token",
		Reviewer: &models.Reviewer{ID: "rev-1", Email: "reviewer@example.edu"},
	}}
	handler := NewAuthHandler(srv)

	c, rec := testContext(t, http.MethodPost, "/auth/login", dto.LoginRequest{
		Email:    "reviewer@example.edu",
		Password: "correct horse",
	})
	handler.Login(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	var envelope responseEnvelope
	_ = json.Unmarshal(rec.Body.Bytes(), &envelope)
	var resp dto.LoginResponse
	_ = json.Unmarshal(envelope.Data, &resp)
	assert.Equal(t, "signed-token", resp.Token)
}

func TestAuthHandlerLoginMissingFields(t *testing.T) {
	handler := NewAuthHandler(&fakeAuthSrv{})

	c, rec := testContext(t, http.MethodPost, "/auth/login", map[string]string{"email": "reviewer@example.edu"})
	handler.Login(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthHandlerLoginBadCredentials(t *testing.T) {
	handler := NewAuthHandler(&fakeAuthSrv{err: appErrors.Clone(appErrors.ErrInvalidCredentials, "invalid email or password")})

	c, rec := testContext(t, http.MethodPost, "/auth/login", dto.LoginRequest{
		Email:    "reviewer@example.edu",
		Password: "wrong",
	})
	handler.Login(c)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
