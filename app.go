// Package securechat is an authorization-gated direct-messaging service:
// users sign in with Firebase, are checked against an email allow list,
// and exchange messages in per-pair Firestore-backed rooms. There is no
// push channel; the client re-fetches state on every interaction.
package securechat

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/GoogleCloudPlatform/functions-framework-go/functions"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/securechat/securechat/allowlist"
	"github.com/securechat/securechat/auth"
	"github.com/securechat/securechat/chat"
	"github.com/securechat/securechat/config"
	"github.com/securechat/securechat/contract"
	"github.com/securechat/securechat/directory"
	"github.com/securechat/securechat/log"
	"github.com/securechat/securechat/metrics"
	"github.com/securechat/securechat/room"
	"github.com/securechat/securechat/session"
)

const (
	ErrorMsgLogField = "errorMsg"
	userIDLogField   = "userID"
	emailLogField    = "email"
	roomIDLogField   = "roomID"

	sessionCookieName = "securechat_session"
)

// verifier is the identity gateway consumed by the login handler.
type verifier interface {
	Authenticate(r *http.Request) (*auth.Profile, error)
}

// App wires the session store, directory, message store, and gate behind
// the HTTP surface.
type App struct {
	webConfig []byte
	allow     allowlist.AllowList
	verifier  verifier
	sessions  *session.Store
	dir       *directory.Service
	messages  *chat.Store
	limiter   *sendLimiter
	collector *metrics.Collector
	registry  *prometheus.Registry
	mux       http.Handler
}

var (
	initOnce sync.Once
	app      *App
	initErr  error
)

func init() {
	functions.HTTP("App", Handler)
}

// Handler is the functions-framework entry point. Initialization runs on
// the first request; a failed startup keeps refusing every interaction
// rather than serving an unconfigured app.
func Handler(w http.ResponseWriter, r *http.Request) {
	initOnce.Do(func() {
		cfg, err := config.Load()
		if err != nil {
			initErr = err
			return
		}
		app, initErr = NewApp(r.Context(), cfg)
	})
	if initErr != nil {
		log.LoggerFromContext(r.Context()).Error("startup failed", slog.String(ErrorMsgLogField, initErr.Error()))
		http.Error(w, "Service Unavailable", http.StatusServiceUnavailable)
		return
	}
	app.mux.ServeHTTP(w, r)
}

func NewApp(ctx context.Context, cfg config.Config) (*App, error) {
	v, err := auth.NewVerifier(ctx, cfg.FirebaseCredentials)
	if err != nil {
		return nil, err
	}

	allow := allowlist.Parse(cfg.AllowedUsers)
	if allow.Len() == 0 {
		log.LoggerFromContext(ctx).Warn("allow list is empty, no user will be admitted")
	}

	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	a := &App{
		webConfig: []byte(cfg.FirebaseWebConfig),
		allow:     allow,
		verifier:  v,
		sessions:  session.NewStore(),
		dir:       directory.New(directory.Firestore{}, collector),
		messages:  chat.NewStore(chat.Firestore{}),
		limiter:   newSendLimiter(),
		collector: collector,
		registry:  registry,
	}
	a.mux = a.routes()
	return a, nil
}

func (a *App) routes() http.Handler {
	r := chi.NewRouter()
	r.Get("/metrics", metrics.Handler(a.registry).ServeHTTP)
	r.Route("/api", func(r chi.Router) {
		r.Get("/config", a.handleWebConfig)
		r.Post("/login", a.handleLogin)
		r.Post("/logout", a.handleLogout)
		r.Group(func(r chi.Router) {
			r.Use(a.requireSession)
			r.Get("/partners", a.handlePartners)
			r.Get("/messages", a.handleMessages)
			r.Post("/messages", a.handleSend)
		})
	})
	return r
}

type sessionCtxKey struct{}

// requireSession gates the chat routes on an Authorized session and
// scopes the request logger to the user.
func (a *App) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie(sessionCookieName)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "not signed in")
			return
		}
		sess, ok := a.sessions.Get(c.Value)
		if !ok || !sess.IsAuthorized() {
			writeError(w, http.StatusUnauthorized, "not signed in")
			return
		}
		logger := log.LoggerFromContext(r.Context()).With(slog.String(userIDLogField, sess.Identity.UID))
		ctx := log.WithLogger(r.Context(), logger)
		ctx = context.WithValue(ctx, sessionCtxKey{}, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func sessionFromContext(ctx context.Context) session.Session {
	s, _ := ctx.Value(sessionCtxKey{}).(session.Session)
	return s
}

// handleWebConfig serves the Firebase web-client configuration the
// single-page client needs for its login widget.
func (a *App) handleWebConfig(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write(a.webConfig)
}

// handleLogin runs the full admission sequence: verify the ID token,
// check the allow list, transition the session. Only an Admitted outcome
// stores a session; the rejection states are rendered and discarded, so
// the stored state stays Anonymous.
func (a *App) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := log.LoggerFromContext(ctx)

	// a login attempt always starts from Anonymous
	a.expireSession(w, r)

	profile, err := a.verifier.Authenticate(r)
	if err != nil {
		sess := session.New().LoginFailed(err.Error())
		a.collector.RecordLogin("failed")
		logger.Error("authentication failed", slog.String(ErrorMsgLogField, err.Error()))
		writeError(w, http.StatusUnauthorized, sess.LastError)
		return
	}

	id := session.Identity{UID: profile.UID, Email: profile.Email, DisplayName: profile.DisplayName}
	decision := a.allow.Admit(profile.Email)
	sess := session.New().Login(id, decision)

	switch decision {
	case allowlist.Admitted:
		a.collector.RecordLogin("admitted")
		// profile write failures must not block the chat
		a.dir.UpsertIdentity(ctx, directory.Entry{
			UID:         profile.UID,
			Email:       profile.Email,
			DisplayName: profile.DisplayName,
		})
		sid := a.sessions.Create(sess)
		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookieName,
			Value:    sid,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteStrictMode,
		})
		logger.Info("user admitted", slog.String(userIDLogField, profile.UID))
		writeJSON(w, http.StatusOK, contract.LoginResponse{
			UID:         profile.UID,
			Email:       profile.Email,
			DisplayName: profile.DisplayName,
		})
	case allowlist.Denied:
		a.collector.RecordLogin("denied")
		logger.Warn("user denied", slog.String(emailLogField, profile.Email))
		writeError(w, http.StatusForbidden, sess.LastError)
	default:
		a.collector.RecordLogin("invalid")
		logger.Warn("auth payload carried no email", slog.String(userIDLogField, profile.UID))
		writeError(w, http.StatusBadRequest, sess.LastError)
	}
}

func (a *App) handleLogout(w http.ResponseWriter, r *http.Request) {
	a.expireSession(w, r)
	w.WriteHeader(http.StatusNoContent)
}

func (a *App) expireSession(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(sessionCookieName); err == nil {
		a.sessions.Delete(c.Value)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

func (a *App) handlePartners(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r.Context())
	entries := a.dir.Partners(r.Context(), sess.Identity.UID)

	resp := contract.PartnersResponse{Partners: make([]contract.Partner, 0, len(entries))}
	for _, e := range entries {
		resp.Partners = append(resp.Partners, contract.Partner{
			UID:         e.UID,
			Email:       e.Email,
			DisplayName: e.DisplayName,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (a *App) handleMessages(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := log.LoggerFromContext(ctx)
	sess := sessionFromContext(ctx)

	partnerUID := r.URL.Query().Get("partner_uid")
	if partnerUID == "" {
		// room derivation is gated on a resolved partner uid
		writeError(w, http.StatusBadRequest, "partner_uid is required")
		return
	}
	roomID := room.ID(sess.Identity.UID, partnerUID)

	resp := contract.MessagesResponse{RoomID: roomID, Messages: []contract.Message{}}
	msgs, err := a.messages.List(ctx, roomID)
	if err != nil {
		// degrade to an empty window; the error renders inline
		logger.Error("failed to load messages",
			slog.String(ErrorMsgLogField, err.Error()),
			slog.String(roomIDLogField, roomID),
		)
		resp.Error = "failed to load messages"
		writeJSON(w, http.StatusOK, resp)
		return
	}
	for _, m := range msgs {
		resp.Messages = append(resp.Messages, contract.Message{
			SenderUID:   m.SenderUID,
			SenderName:  m.SenderName,
			ContentHTML: chat.RenderBody(m.Content),
			SentAt:      chat.FormatTimestamp(m.Timestamp),
			Mine:        m.SenderUID == sess.Identity.UID,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (a *App) handleSend(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := log.LoggerFromContext(ctx)
	sess := sessionFromContext(ctx)

	var req contract.SendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Bad Request")
		return
	}
	if req.PartnerUID == "" {
		writeError(w, http.StatusBadRequest, "partner_uid is required")
		return
	}
	if !a.limiter.allow(sess.Identity.UID) {
		writeError(w, http.StatusTooManyRequests, "too many messages, slow down")
		return
	}

	roomID := room.ID(sess.Identity.UID, req.PartnerUID)
	if req.Content == "" {
		// blank sends are skipped, not rejected
		a.collector.RecordMessageDropped()
		w.WriteHeader(http.StatusCreated)
		return
	}
	err := a.messages.Append(ctx, roomID, sess.Identity.UID, sess.Identity.DisplayName, req.PartnerUID, req.Content)
	if err != nil {
		logger.Error("failed to send message",
			slog.String(ErrorMsgLogField, err.Error()),
			slog.String(roomIDLogField, roomID),
		)
		writeError(w, http.StatusServiceUnavailable, "failed to send message")
		return
	}
	a.collector.RecordMessageSent()
	w.WriteHeader(http.StatusCreated)
}
