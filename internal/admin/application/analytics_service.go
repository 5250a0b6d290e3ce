package application

import (
	"context"
	"sort"
	"time"

	admindomain "github.com/formflow-pro/formflow-services/api/internal/admin/domain"
	participantdomain "github.com/formflow-pro/formflow-services/api/internal/participant/domain"
)

// WindowKind は集計対象期間の種別。
type WindowKind string

const (
	WindowAll           WindowKind = "all"
	WindowLast60Minutes WindowKind = "60m"
	WindowLast48Hours   WindowKind = "48h"
	WindowCustom        WindowKind = "custom"
)

// Window は集計対象期間。Start/End は Custom のときだけ意味を持つ。
type Window struct {
	Kind  WindowKind
	Start time.Time
	End   time.Time
}

// NewCustomWindow は日付指定の期間を日の先頭〜末尾へ正規化する。
func NewCustomWindow(start, end time.Time, loc *time.Location) Window {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, loc)
	e := time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), loc)
	return Window{Kind: WindowCustom, Start: s, End: e}
}

// SeriesPoint はグラフの 1 バケット。At はバケット先頭の時刻で、
// ソートはラベル文字列ではなく必ずこの時刻で行う。
type SeriesPoint struct {
	Label string
	Count int
	At    time.Time
}

// Report はキャンペーン 1 件分の集計結果。
// スカラー値 3 つは期間フィルタと無関係に全回答から計算する。
type Report struct {
	Series            []SeriesPoint
	Completed         int
	Pending           int
	ParticipationRate float64
}

// AnalyticsService はキャンペーンの提出状況を集計するユースケース。
type AnalyticsService interface {
	Report(ctx context.Context, campaignID, adminID string, window Window) (*Report, error)
}

type analyticsService struct {
	campaigns   CampaignRepository
	submissions SubmissionRepository
	location    *time.Location
	now         func() time.Time
}

// NewAnalyticsService は AnalyticsService を生成する。
func NewAnalyticsService(campaigns CampaignRepository, submissions SubmissionRepository, loc *time.Location) AnalyticsService {
	return &analyticsService{campaigns: campaigns, submissions: submissions, location: loc, now: time.Now}
}

func (s *analyticsService) Report(ctx context.Context, campaignID, adminID string, window Window) (*Report, error) {
	campaign, err := s.campaigns.FindByID(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if campaign.AdminID != adminID {
		return nil, admindomain.ErrNotFound
	}

	records, err := s.submissions.FindByCampaign(ctx, campaignID, "")
	if err != nil {
		return nil, err
	}

	completed := 0
	for _, record := range records {
		status := participantdomain.Status(record.Status)
		if status == participantdomain.StatusSubmitted || status == participantdomain.StatusUpdated {
			completed++
		}
	}

	rate := 0.0
	if campaign.ParticipantCount > 0 {
		rate = float64(completed) / float64(campaign.ParticipantCount) * 100
	}

	return &Report{
		Series:            BuildSeries(records, window, s.now(), s.location),
		Completed:         completed,
		Pending:           campaign.ParticipantCount - completed,
		ParticipationRate: rate,
	}, nil
}

// BuildSeries は提出時刻を期間でフィルタし、期間種別に応じた粒度で
// バケット詰めした時系列を返す。粒度は 60 分指定なら分、48 時間指定なら時、
// それ以外は日。バケットはバケット先頭時刻の昇順。
func BuildSeries(records []SubmissionRecord, window Window, now time.Time, loc *time.Location) []SeriesPoint {
	var from, to time.Time
	switch window.Kind {
	case WindowLast60Minutes:
		from = now.Add(-time.Hour)
	case WindowLast48Hours:
		from = now.Add(-48 * time.Hour)
	case WindowCustom:
		from = window.Start
		to = window.End
	}

	counts := make(map[time.Time]int)
	for _, record := range records {
		if record.SubmittedAt == nil {
			continue
		}
		at := *record.SubmittedAt
		if !from.IsZero() && at.Before(from) {
			continue
		}
		if !to.IsZero() && at.After(to) {
			continue
		}
		counts[bucketStart(at, window.Kind, loc)]++
	}

	series := make([]SeriesPoint, 0, len(counts))
	for at, count := range counts {
		series = append(series, SeriesPoint{
			Label: bucketLabel(at, window.Kind),
			Count: count,
			At:    at,
		})
	}
	sort.Slice(series, func(i, j int) bool { return series[i].At.Before(series[j].At) })
	return series
}

func bucketStart(at time.Time, kind WindowKind, loc *time.Location) time.Time {
	local := at.In(loc)
	switch kind {
	case WindowLast60Minutes:
		return time.Date(local.Year(), local.Month(), local.Day(), local.Hour(), local.Minute(), 0, 0, loc)
	case WindowLast48Hours:
		return time.Date(local.Year(), local.Month(), local.Day(), local.Hour(), 0, 0, 0, loc)
	default:
		return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	}
}

func bucketLabel(at time.Time, kind WindowKind) string {
	switch kind {
	case WindowLast60Minutes:
		return at.Format("15:04")
	case WindowLast48Hours:
		return at.Format("Mon 3PM")
	default:
		return at.Format("2006/01/02")
	}
}
