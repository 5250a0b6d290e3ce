package application

import (
	"context"
	"strings"

	"github.com/formflow-pro/formflow-services/api/internal/participant/domain"
)

type signInService struct {
	campaigns   CampaignRepository
	submissions SubmissionRepository
}

// NewSignInService は SignInService を生成する。
func NewSignInService(campaigns CampaignRepository, submissions SubmissionRepository) SignInService {
	return &signInService{campaigns: campaigns, submissions: submissions}
}

// Resolve は入力された PIN に一致するキャンペーンを列挙し、各候補について
// 複合 ID の回答ドキュメントが存在するかを確かめる。一致がちょうど 1 件の
// ときだけ成功する。複数一致した場合は AmbiguousCampaignError で候補を返し、
// campaignID を明示した再試行を要求する。PIN と識別子のどちらが誤っていても
// 返すエラーは同じ ErrAuthFailure で、内訳は漏らさない。
func (s *signInService) Resolve(ctx context.Context, participantID, pin, campaignID string) (*Identity, error) {
	participantID = strings.TrimSpace(participantID)
	pin = strings.TrimSpace(pin)
	if participantID == "" || pin == "" {
		return nil, domain.ErrAuthFailure
	}

	candidates, err := s.campaigns.FindByPIN(ctx, pin)
	if err != nil {
		return nil, err
	}

	matches := make([]domain.CampaignView, 0, 1)
	for _, candidate := range candidates {
		if campaignID != "" && candidate.ID != campaignID {
			continue
		}
		exists, err := s.submissions.Exists(ctx, domain.CompositeID(candidate.ID, participantID))
		if err != nil {
			return nil, err
		}
		if exists {
			matches = append(matches, candidate)
		}
	}

	switch len(matches) {
	case 0:
		return nil, domain.ErrAuthFailure
	case 1:
		return &Identity{
			ParticipantID: participantID,
			CampaignID:    matches[0].ID,
			CampaignName:  matches[0].Name,
		}, nil
	default:
		choices := make([]domain.CampaignChoice, 0, len(matches))
		for _, match := range matches {
			choices = append(choices, domain.CampaignChoice{ID: match.ID, Name: match.Name})
		}
		return nil, &domain.AmbiguousCampaignError{Candidates: choices}
	}
}
