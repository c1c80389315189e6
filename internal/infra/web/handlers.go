// File: internal/infra/web/handlers.go
package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"sticker-hunt-backend/internal/domain"
	"sticker-hunt-backend/internal/domain/model"
	"sticker-hunt-backend/internal/infra/metrics"
	redisinfra "sticker-hunt-backend/internal/infra/redis"
)

// Client-facing messages. These are part of the wire contract: the event
// web app matches on them, so changing one is a breaking change.
const (
	msgMisconfigured     = "Function misconfigured. Contact the event team."
	msgAuthRequired      = "Authentication required."
	msgInvalidPayload    = "Invalid request payload."
	msgSignatureRequired = "Signed stickers require a signature."
	msgSignatureMismatch = "Signature mismatch."
	msgAuthExpired       = "Authentication expired. Please sign in again."
	msgStickerNotFound   = "Invalid or inactive sticker."
	msgAlreadyClaimed    = "Sticker already claimed."
	msgClaimFailed       = "Unable to claim sticker at this time."
	msgTooManyAttempts   = "Too many claim attempts."
)

type envelope struct {
	OK     bool            `json:"ok"`
	Claim  *claimPayload   `json:"claim,omitempty"`
	Claims []*claimPayload `json:"claims,omitempty"`
	User   *userPayload    `json:"user,omitempty"`
	Token  string          `json:"token,omitempty"`
	Error  string          `json:"error,omitempty"`
	Status int             `json:"status,omitempty"`
}

type claimPayload struct {
	ID        string    `json:"id"`
	StickerID string    `json:"stickerId"`
	EventID   string    `json:"eventId"`
	Code      string    `json:"code"`
	Name      *string   `json:"name,omitempty"`
	ImageURL  *string   `json:"imageUrl,omitempty"`
	Rarity    *string   `json:"rarity,omitempty"`
	ClaimedAt time.Time `json:"claimedAt"`
}

type userPayload struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName"`
	CreatedAt   time.Time `json:"createdAt"`
}

func toClaimPayload(c *model.Claim) *claimPayload {
	return &claimPayload{
		ID:        c.ID,
		StickerID: c.StickerID,
		EventID:   c.EventID,
		Code:      c.Code,
		Name:      c.StickerName,
		ImageURL:  c.StickerImageURL,
		Rarity:    c.StickerRarity,
		ClaimedAt: c.ClaimedAt,
	}
}

func toUserPayload(u *model.User) *userPayload {
	return &userPayload{ID: u.ID, Email: u.Email, DisplayName: u.DisplayName, CreatedAt: u.CreatedAt}
}

func writeJSON(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// fail mirrors the HTTP status into the body so clients behind proxies
// that rewrite status codes still see the real outcome.
func fail(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, envelope{OK: false, Error: msg, Status: status})
}

type claimRequest struct {
	Code      string `json:"code"`
	Signature string `json:"sig"`
}

// claimHandler is the redemption endpoint. Checks run strictly in order:
// configuration, credential presence, payload shape, sticker signature,
// session validity, rate limit, and only then the store. Nothing touches
// the database before the caller's session is proven.
func (s *Server) claimHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		start := time.Now()
		defer func() {
			metrics.ObserveClaimLatency(float64(time.Since(start).Milliseconds()))
		}()

		if s.claimUC == nil || s.identity == nil || s.signer == nil {
			s.log.Error().Msg("claim endpoint missing dependencies")
			metrics.IncClaimOutcome("error")
			fail(w, http.StatusInternalServerError, msgMisconfigured)
			return
		}

		headerUserID := strings.TrimSpace(r.Header.Get("X-User-ID"))
		token := sessionToken(r)
		if headerUserID == "" || token == "" {
			metrics.IncClaimOutcome("unauthorized")
			fail(w, http.StatusUnauthorized, msgAuthRequired)
			return
		}

		var req claimRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			metrics.IncClaimOutcome("invalid")
			fail(w, http.StatusBadRequest, msgInvalidPayload)
			return
		}
		code := strings.TrimSpace(req.Code)
		if code == "" {
			metrics.IncClaimOutcome("invalid")
			fail(w, http.StatusBadRequest, msgInvalidPayload)
			return
		}

		if err := s.signer.Verify(code, strings.TrimSpace(req.Signature)); err != nil {
			metrics.IncClaimOutcome("unauthorized")
			if errors.Is(err, domain.ErrSignatureRequired) {
				fail(w, http.StatusUnauthorized, msgSignatureRequired)
				return
			}
			fail(w, http.StatusUnauthorized, msgSignatureMismatch)
			return
		}

		user, err := s.identity.Resolve(ctx, token)
		if err != nil || user.ID != headerUserID {
			metrics.IncClaimOutcome("unauthorized")
			fail(w, http.StatusUnauthorized, msgAuthExpired)
			return
		}

		if ok := s.allowClaim(ctx, user.ID); !ok {
			metrics.IncClaimOutcome("rate_limited")
			fail(w, http.StatusTooManyRequests, msgTooManyAttempts)
			return
		}

		claim, err := s.claimUC.Redeem(ctx, user, code)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrStickerNotFound):
				metrics.IncClaimOutcome("not_found")
				fail(w, http.StatusNotFound, msgStickerNotFound)
			case errors.Is(err, domain.ErrAlreadyClaimed):
				fail(w, http.StatusConflict, msgAlreadyClaimed)
			default:
				s.log.Error().Err(err).Str("user_id", user.ID).Msg("claim failed")
				metrics.IncClaimOutcome("error")
				fail(w, http.StatusInternalServerError, msgClaimFailed)
			}
			return
		}

		writeJSON(w, http.StatusOK, envelope{OK: true, Claim: toClaimPayload(claim)})
	}
}

// allowClaim applies the per-user attempt limit. A limiter outage fails
// open: the store's uniqueness constraint still caps the damage at one
// claim, and redemption must not depend on Redis being up.
func (s *Server) allowClaim(ctx context.Context, userID string) bool {
	ok, err := s.limiter.Allow(ctx, redisinfra.ClaimKey(userID))
	if err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Msg("rate limiter unavailable")
		return true
	}
	return ok
}

func (s *Server) listClaimsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		token := sessionToken(r)
		if token == "" {
			fail(w, http.StatusUnauthorized, msgAuthRequired)
			return
		}
		user, err := s.identity.Resolve(ctx, token)
		if err != nil {
			fail(w, http.StatusUnauthorized, msgAuthExpired)
			return
		}

		claims, err := s.claimUC.ListForUser(ctx, user.ID)
		if err != nil {
			s.log.Error().Err(err).Str("user_id", user.ID).Msg("list claims failed")
			fail(w, http.StatusInternalServerError, msgClaimFailed)
			return
		}

		out := make([]*claimPayload, 0, len(claims))
		for _, c := range claims {
			out = append(out, toClaimPayload(c))
		}
		writeJSON(w, http.StatusOK, envelope{OK: true, Claims: out})
	}
}

// statsHandler serves the public event scoreboard. Counts only, no codes;
// nothing here helps enumerate unclaimed stickers.
func (s *Server) statsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		totals, err := s.statsUC.Totals(ctx, s.eventID)
		if err != nil {
			s.log.Error().Err(err).Str("event_id", s.eventID).Msg("stats failed")
			fail(w, http.StatusInternalServerError, "Unable to load event stats.")
			return
		}

		response := struct {
			EventID  string `json:"eventId"`
			Users    int    `json:"users"`
			Stickers int    `json:"stickers"`
			Claimed  int    `json:"claimed"`
		}{
			EventID:  s.eventID,
			Users:    totals.Users,
			Stickers: totals.Stickers,
			Claimed:  totals.Claimed,
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(response)
	}
}

type registerRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Password    string `json:"password"`
}

func (s *Server) registerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			fail(w, http.StatusBadRequest, msgInvalidPayload)
			return
		}

		user, err := s.userUC.Register(ctx, req.Email, req.DisplayName, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrInvalidArgument):
				fail(w, http.StatusBadRequest, msgInvalidPayload)
			case errors.Is(err, domain.ErrAlreadyExists):
				fail(w, http.StatusConflict, "An account with this email already exists.")
			default:
				s.log.Error().Err(err).Msg("register failed")
				fail(w, http.StatusInternalServerError, "Unable to create account.")
			}
			return
		}

		writeJSON(w, http.StatusCreated, envelope{OK: true, User: toUserPayload(user)})
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) loginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			fail(w, http.StatusBadRequest, msgInvalidPayload)
			return
		}

		token, user, err := s.identity.CreateSession(ctx, req.Email, req.Password)
		if err != nil {
			if errors.Is(err, domain.ErrInvalidCredentials) {
				fail(w, http.StatusUnauthorized, "Invalid email or password.")
				return
			}
			s.log.Error().Err(err).Msg("login failed")
			fail(w, http.StatusInternalServerError, "Unable to sign in.")
			return
		}

		s.setSessionCookie(w, token, s.identity.SessionTTLSeconds())
		writeJSON(w, http.StatusOK, envelope{OK: true, User: toUserPayload(user), Token: token})
	}
}

func (s *Server) logoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.clearSessionCookie(w)
		writeJSON(w, http.StatusOK, envelope{OK: true})
	}
}

func (s *Server) meHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		token := sessionToken(r)
		if token == "" {
			fail(w, http.StatusUnauthorized, msgAuthRequired)
			return
		}
		user, err := s.identity.Resolve(ctx, token)
		if err != nil {
			fail(w, http.StatusUnauthorized, msgAuthExpired)
			return
		}
		writeJSON(w, http.StatusOK, envelope{OK: true, User: toUserPayload(user)})
	}
}
