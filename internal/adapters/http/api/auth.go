// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"errors"
	"net/http"

	"github.com/abeldarick/ASDM-PRONO/internal/adapters/users"
	"github.com/abeldarick/ASDM-PRONO/internal/contract"
)

type credentialsResponse struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
}

// handleRegister handles POST /api/auth/register.
func (s *Server) handleRegister(w http.ResponseWriter, req *request) {
	creds, err := s.deps.Register(req.http.Context(),
		stringField(req.body, "email"),
		stringField(req.body, "password"),
		stringField(req.body, "name"),
	)
	if err != nil {
		if errors.Is(err, users.ErrEmailTaken) {
			s.reject(w, &contract.FieldError{Field: "email", Reason: "already registered"})
			return
		}
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, credentialsResponse{Token: creds.Token, UserID: creds.UserID})
}

// handleLogin handles POST /api/auth/login.
func (s *Server) handleLogin(w http.ResponseWriter, req *request) {
	creds, err := s.deps.Login(req.http.Context(),
		stringField(req.body, "email"),
		stringField(req.body, "password"),
	)
	if err != nil {
		if errors.Is(err, users.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, codeAuthRequired, err)
			return
		}
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, credentialsResponse{Token: creds.Token, UserID: creds.UserID})
}
