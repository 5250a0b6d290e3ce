package public

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/formflow-pro/formflow-services/api/internal/interfaces/http/common"
	participantapp "github.com/formflow-pro/formflow-services/api/internal/participant/application"
	participantdomain "github.com/formflow-pro/formflow-services/api/internal/participant/domain"
	"github.com/golang-jwt/jwt/v5"
)

type participantClaims struct {
	jwt.RegisteredClaims
	CampaignID string `json:"campaignId"`
}

// signInHandler は PIN と参加者識別子からキャンペーンを解決し、
// (参加者, キャンペーン) に束縛されたアクセストークンを発行する。
// 同一 PIN のキャンペーンが複数一致した場合は 409 で候補を返し、
// campaignId を指定した再試行を求める。
func (h *Handler) signInHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req publicSignInRequest
		if err := json.NewDecoder(io.LimitReader(r.Body, common.MaxJSONRequestBody)).Decode(&req); err != nil {
			common.WriteError(h.logger, w, http.StatusBadRequest, "リクエストの形式が不正です")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		identity, err := h.signInService.Resolve(ctx, req.ParticipantID, req.PIN, strings.TrimSpace(req.CampaignID))
		if err != nil {
			var ambiguous *participantdomain.AmbiguousCampaignError
			switch {
			case errors.Is(err, participantdomain.ErrAuthFailure):
				common.WriteError(h.logger, w, http.StatusUnauthorized, err.Error())
			case errors.As(err, &ambiguous):
				candidates := make([]publicCampaignChoiceResponse, 0, len(ambiguous.Candidates))
				for _, choice := range ambiguous.Candidates {
					candidates = append(candidates, publicCampaignChoiceResponse{ID: choice.ID, Name: choice.Name})
				}
				common.WriteJSON(h.logger, w, http.StatusConflict, map[string]any{
					"error":      ambiguous.Error(),
					"candidates": candidates,
				})
			default:
				h.logger.Printf("participant sign-in failed: %v", err)
				common.WriteError(h.logger, w, http.StatusInternalServerError, "サインインに失敗しました")
			}
			return
		}

		token, err := h.issueToken(*identity)
		if err != nil {
			h.logger.Printf("participant token issue failed: %v", err)
			common.WriteError(h.logger, w, http.StatusInternalServerError, "サインインに失敗しました")
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, publicSignInResponse{
			Token:         token,
			ParticipantID: identity.ParticipantID,
			CampaignID:    identity.CampaignID,
			CampaignName:  identity.CampaignName,
		})
	}
}

func (h *Handler) issueToken(identity participantapp.Identity) (string, error) {
	now := time.Now()
	claims := participantClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.ParticipantID,
			Issuer:    h.tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(h.tokenTTL)),
		},
		CampaignID: identity.CampaignID,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(h.tokenSecret)
}

// participantMiddleware は Bearer トークンを検証し、参加者セッションを
// コンテキストへ詰める。トークンは常に 1 キャンペーンへ束縛されている。
func (h *Handler) participantMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := strings.TrimSpace(r.Header.Get("Authorization"))
		const bearerPrefix = "Bearer "
		if !strings.HasPrefix(authHeader, bearerPrefix) {
			common.WriteError(h.logger, w, http.StatusUnauthorized, "Bearer トークンを指定してください")
			return
		}
		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, bearerPrefix))
		if tokenString == "" {
			common.WriteError(h.logger, w, http.StatusUnauthorized, "アクセストークンが空です")
			return
		}

		claims := &participantClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
			if token.Method != jwt.SigningMethodHS256 {
				return nil, fmt.Errorf("unexpected signing method: %s", token.Method.Alg())
			}
			return h.tokenSecret, nil
		}, jwt.WithLeeway(30*time.Second))
		if err != nil || !token.Valid || claims.Subject == "" || claims.CampaignID == "" {
			common.WriteError(h.logger, w, http.StatusUnauthorized, "アクセストークンが無効です")
			return
		}
		if h.tokenIssuer != "" && claims.Issuer != h.tokenIssuer {
			common.WriteError(h.logger, w, http.StatusUnauthorized, "アクセストークンが無効です")
			return
		}

		session := common.ParticipantSession{
			ParticipantID: claims.Subject,
			CampaignID:    claims.CampaignID,
		}
		next.ServeHTTP(w, r.WithContext(common.ContextWithParticipant(r.Context(), session)))
	})
}
