package main

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/PaulBabatuyi/msgBoard-REST/internal/data"
	"github.com/PaulBabatuyi/msgBoard-REST/internal/hub"
	"github.com/PaulBabatuyi/msgBoard-REST/internal/metrics"
	"github.com/PaulBabatuyi/msgBoard-REST/internal/normalize"
	"github.com/PaulBabatuyi/msgBoard-REST/internal/service"
	"github.com/PaulBabatuyi/msgBoard-REST/internal/validate"
)

// userService is the slice of the user service the handlers call.
type userService interface {
	SaveUser(ctx context.Context, cand service.Credentials) service.Result[data.SafeUser]
	GetUserByUsername(ctx context.Context, username string) service.Result[data.SafeUser]
	LoginUser(ctx context.Context, cand service.Credentials) service.Result[data.SafeUser]
	DeleteUserByUsername(ctx context.Context, username string) service.Result[data.SafeUser]
	UpdateUser(ctx context.Context, username string, patch data.UserPatch) service.Result[data.SafeUser]
}

// messageService is the slice of the message service the handlers call.
type messageService interface {
	SaveMessage(ctx context.Context, cand service.MessageCandidate) service.Result[data.Message]
	GetMessages(ctx context.Context) []*data.Message
}

// notifier is the side channel for board events. Publishing must never
// block or fail the HTTP response; the hub upholds that.
type notifier interface {
	Publish(eventType string, data any)
}

// pinger reports persistence liveness for the health endpoint.
type pinger interface {
	Ping(ctx context.Context) error
}

// api holds the wired dependencies of the HTTP handlers.
type api struct {
	users     userService
	msgs      messageService
	notify    notifier
	collector *metrics.Collector
	health    pinger
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// handleSignup creates an account.
// POST /user/signup
func (a *api) handleSignup(w http.ResponseWriter, r *http.Request) {
	var body validate.UserBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || !validate.User(body) {
		writeError(w, http.StatusBadRequest, "Invalid user body")
		return
	}

	res := a.users.SaveUser(r.Context(), service.Credentials{Username: body.Username, Password: body.Password})
	if !res.Ok() {
		writeError(w, http.StatusInternalServerError, res.Err())
		return
	}

	if a.collector != nil {
		a.collector.RecordUserCreated()
	}
	writeJSON(w, http.StatusCreated, res.Value())
}

// handleLogin checks credentials and returns the safe projection.
// POST /user/login
func (a *api) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body validate.UserBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || !validate.User(body) {
		writeError(w, http.StatusBadRequest, "Invalid user body")
		return
	}

	res := a.users.LoginUser(r.Context(), service.Credentials{Username: body.Username, Password: body.Password})
	if !res.Ok() {
		writeError(w, http.StatusInternalServerError, res.Err())
		return
	}

	writeJSON(w, http.StatusOK, res.Value())
}

// handleResetPassword replaces the stored password.
// PATCH /user/resetPassword
func (a *api) handleResetPassword(w http.ResponseWriter, r *http.Request) {
	var body validate.UserBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || !validate.User(body) {
		writeError(w, http.StatusBadRequest, "username/new password is required")
		return
	}

	res := a.users.UpdateUser(r.Context(), body.Username, data.UserPatch{Password: &body.Password})
	if !res.Ok() {
		writeError(w, http.StatusInternalServerError, res.Err())
		return
	}

	writeJSON(w, http.StatusOK, res.Value())
}

// handleGetUser looks up an account by the path username.
// GET /user/getUser/{username}
func (a *api) handleGetUser(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	if normalize.Blank(username) {
		writeError(w, http.StatusBadRequest, "Invalid username is required")
		return
	}

	res := a.users.GetUserByUsername(r.Context(), username)
	if !res.Ok() {
		writeError(w, http.StatusInternalServerError, res.Err())
		return
	}

	writeJSON(w, http.StatusOK, res.Value())
}

// handleDeleteUser removes an account and returns its final projection.
// DELETE /user/deleteUser/{username}
func (a *api) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	res := a.users.DeleteUserByUsername(r.Context(), username)
	if !res.Ok() {
		writeError(w, http.StatusInternalServerError, res.Err())
		return
	}

	writeJSON(w, http.StatusOK, res.Value())
}

// addMessageRequest wraps the message payload the way clients send it.
type addMessageRequest struct {
	MessageToAdd *validate.MessageBody `json:"messageToAdd"`
}

// handleAddMessage persists a message and notifies subscribers.
// POST /messaging/addMessage
func (a *api) handleAddMessage(w http.ResponseWriter, r *http.Request) {
	var body addMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.MessageToAdd == nil {
		writeError(w, http.StatusBadRequest, "Invalid request")
		return
	}
	if !validate.Message(*body.MessageToAdd) {
		writeError(w, http.StatusBadRequest, "Invalid message body")
		return
	}

	res := a.msgs.SaveMessage(r.Context(), service.MessageCandidate{
		Msg:         body.MessageToAdd.Msg,
		MsgFrom:     body.MessageToAdd.MsgFrom,
		MsgDateTime: body.MessageToAdd.MsgDateTime,
	})
	if !res.Ok() {
		writeError(w, http.StatusInternalServerError, res.Err())
		return
	}

	// Best-effort push to connected subscribers. Delivery failure never
	// affects the response; the record is already persisted.
	if a.notify != nil {
		a.notify.Publish(hub.EventMessageUpdate, res.Value())
	}
	if a.collector != nil {
		a.collector.RecordMessageSaved()
	}

	writeJSON(w, http.StatusOK, res.Value())
}

// handleGetMessages lists the whole board, oldest first.
// GET /messaging/getMessages
func (a *api) handleGetMessages(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.msgs.GetMessages(r.Context()))
}

// handleHealthz probes the persistence connection.
// GET /healthz
func (a *api) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if a.health != nil {
		if err := a.health.Ping(r.Context()); err != nil {
			http.Error(w, "unhealthy", http.StatusServiceUnavailable)
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
