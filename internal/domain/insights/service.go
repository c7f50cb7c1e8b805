package insights

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yanqian/aqi-analyst/internal/domain/dataset"
	"github.com/yanqian/aqi-analyst/internal/domain/liveaqi"
	"github.com/yanqian/aqi-analyst/internal/domain/prompt"
	"github.com/yanqian/aqi-analyst/internal/infra/llm/gemini"
	apperrors "github.com/yanqian/aqi-analyst/pkg/errors"
	"github.com/yanqian/aqi-analyst/pkg/metrics"
)

// Service exposes the analysis workflows for both tabs: uploaded datasets
// and live city lookups.
type Service interface {
	CreateSession(ctx context.Context, req UploadRequest) (SessionResponse, error)
	GetSession(ctx context.Context, id uuid.UUID) (SessionResponse, error)
	DeleteSession(ctx context.Context, id uuid.UUID) error
	AnalyzeDataset(ctx context.Context, id uuid.UUID, rawIntent string) (Insight, error)
	AnalyzeLive(ctx context.Context, city, rawIntent string) (Insight, error)
	CompareLive(ctx context.Context, cityA, cityB string) (Insight, error)
}

// Generator abstracts the LLM provider.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// TokenCounter estimates the token footprint of a prompt. Best effort: an
// error just means the response carries no usage data.
type TokenCounter interface {
	Count(text string) (int, error)
}

type service struct {
	cfg      Config
	sessions SessionRepository
	live     liveaqi.Service
	llm      Generator
	tokens   TokenCounter
	logger   *slog.Logger
	now      func() time.Time
}

// NewService wires up the insights domain.
func NewService(cfg Config, sessions SessionRepository, live liveaqi.Service, llm Generator, tokens TokenCounter, logger *slog.Logger) Service {
	return &service{
		cfg:      cfg,
		sessions: sessions,
		live:     live,
		llm:      llm,
		tokens:   tokens,
		logger:   logger.With("component", "insights.service"),
		now:      time.Now,
	}
}

// CreateSession validates the uploaded CSV and opens a fresh analysis
// session owning the resulting Dataset.
func (s *service) CreateSession(ctx context.Context, req UploadRequest) (SessionResponse, error) {
	if len(req.Content) == 0 {
		return SessionResponse{}, apperrors.Wrap(apperrors.CodeInvalidInput, "file content cannot be empty", nil)
	}
	if s.cfg.MaxFileBytes > 0 && int64(len(req.Content)) > s.cfg.MaxFileBytes {
		return SessionResponse{}, apperrors.Wrap(apperrors.CodeInvalidInput, "file exceeds maximum allowed size", nil)
	}

	ds, err := dataset.ParseCSV(strings.NewReader(string(req.Content)))
	if err != nil {
		return SessionResponse{}, err
	}

	session := Session{
		ID:        uuid.New(),
		Filename:  strings.TrimSpace(req.Filename),
		Data:      ds,
		CreatedAt: s.now(),
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return SessionResponse{}, apperrors.Wrap(apperrors.CodeInvalidInput, "failed to store analysis session", err)
	}
	s.logger.Info("analysis session created", "session_id", session.ID, "records", ds.Len(), "cities", len(ds.Cities()))

	return s.toResponse(session), nil
}

// GetSession returns the overview for an existing session.
func (s *service) GetSession(ctx context.Context, id uuid.UUID) (SessionResponse, error) {
	session, ok, err := s.sessions.Get(ctx, id)
	if err != nil {
		return SessionResponse{}, err
	}
	if !ok {
		return SessionResponse{}, apperrors.Wrap(apperrors.CodeNotFound, "analysis session not found", nil)
	}
	return s.toResponse(session), nil
}

// DeleteSession tears down a session and its Dataset. Deleting an unknown
// session is a no-op.
func (s *service) DeleteSession(ctx context.Context, id uuid.UUID) error {
	return s.sessions.Delete(ctx, id)
}

// AnalyzeDataset composes a digest-backed prompt for the requested intent
// and asks the LLM. The digest is computed once per session and memoized.
func (s *service) AnalyzeDataset(ctx context.Context, id uuid.UUID, rawIntent string) (Insight, error) {
	intent, err := prompt.ParseIntent(rawIntent)
	if err != nil {
		return Insight{}, err
	}

	session, ok, err := s.sessions.Get(ctx, id)
	if err != nil {
		return Insight{}, err
	}
	if !ok {
		return Insight{}, apperrors.Wrap(apperrors.CodeNotFound, "analysis session not found", nil)
	}

	digest := session.Digest
	if digest == "" {
		digest = dataset.BuildDigest(session.Data)
		if err := s.sessions.SetDigest(ctx, session.ID, digest); err != nil {
			return Insight{}, apperrors.Wrap(apperrors.CodeInvalidInput, "failed to memoize digest", err)
		}
		s.logger.Info("dataset digest computed", "session_id", session.ID, "bytes", len(digest))
	}

	text, err := prompt.ForDigest(intent, digest)
	if err != nil {
		return Insight{}, err
	}
	return s.generate(ctx, intent, text), nil
}

// AnalyzeLive performs a live lookup and asks the LLM for an explanation or
// health advisory.
func (s *service) AnalyzeLive(ctx context.Context, city, rawIntent string) (Insight, error) {
	intent, err := prompt.ParseIntent(rawIntent)
	if err != nil {
		return Insight{}, err
	}

	record, err := s.live.Lookup(ctx, city)
	if err != nil {
		return Insight{}, err
	}

	text, err := prompt.ForRecord(intent, record)
	if err != nil {
		return Insight{}, err
	}
	return s.generate(ctx, intent, text), nil
}

// CompareLive looks up two cities and asks the LLM to compare them.
func (s *service) CompareLive(ctx context.Context, cityA, cityB string) (Insight, error) {
	recordA, err := s.live.Lookup(ctx, cityA)
	if err != nil {
		return Insight{}, err
	}
	recordB, err := s.live.Lookup(ctx, cityB)
	if err != nil {
		return Insight{}, err
	}

	text := prompt.ForCityPair(recordA, recordB)
	return s.generate(ctx, prompt.IntentCompare, text), nil
}

// generate calls the LLM and converts every failure into displayable text.
// The request never fails because of the provider; the failure code keeps
// the distinction machine readable.
func (s *service) generate(ctx context.Context, intent prompt.Intent, text string) Insight {
	start := s.now()
	content, err := s.llm.Generate(ctx, text)
	out := Insight{
		Intent:     intent,
		LatencyMs:  s.now().Sub(start).Milliseconds(),
		TokenUsage: s.estimateUsage(text),
	}

	switch {
	case errors.Is(err, gemini.ErrNoCredential):
		out.Insight = CredentialSentinel
		out.FailureCode = apperrors.CodeCredentialMissing
	case err != nil:
		s.logger.Error("llm generation failed", "intent", intent, "error", err)
		out.Insight = "Error connecting to Gemini: " + err.Error()
		out.FailureCode = apperrors.CodeGenerationFailure
	default:
		out.Insight = content
		out.Generated = true
	}
	return out
}

func (s *service) estimateUsage(text string) *metrics.TokenUsage {
	if s.tokens == nil {
		return nil
	}
	count, err := s.tokens.Count(text)
	if err != nil || count <= 0 {
		return nil
	}
	return &metrics.TokenUsage{PromptTokens: count, TotalTokens: count}
}

func (s *service) toResponse(session Session) SessionResponse {
	start, end := session.Data.DateRange()

	preview := session.Data.Readings
	if s.cfg.PreviewRows > 0 && len(preview) > s.cfg.PreviewRows {
		preview = preview[:s.cfg.PreviewRows]
	}

	return SessionResponse{
		SessionID: session.ID,
		Filename:  session.Filename,
		Records:   session.Data.Len(),
		Cities:    session.Data.Cities(),
		StartDate: start.Format("2006-01-02"),
		EndDate:   end.Format("2006-01-02"),
		Preview:   preview,
		Series:    chartSeries(session.Data),
	}
}

// chartSeries aggregates readings into a per-day, per-city mean, the shape
// the frontend charts directly.
func chartSeries(ds dataset.Dataset) []ChartPoint {
	type key struct {
		date string
		city string
	}
	sums := make(map[key]float64)
	counts := make(map[key]int)
	for _, r := range ds.Readings {
		k := key{date: r.Date.Format("2006-01-02"), city: r.City}
		sums[k] += r.AQI
		counts[k]++
	}

	points := make([]ChartPoint, 0, len(sums))
	for k, sum := range sums {
		points = append(points, ChartPoint{
			Date: k.date,
			City: k.city,
			AQI:  sum / float64(counts[k]),
		})
	}
	sort.Slice(points, func(i, j int) bool {
		if points[i].Date == points[j].Date {
			return points[i].City < points[j].City
		}
		return points[i].Date < points[j].Date
	})
	return points
}
