package insights

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/yanqian/aqi-analyst/internal/domain/dataset"
	"github.com/yanqian/aqi-analyst/internal/domain/prompt"
	"github.com/yanqian/aqi-analyst/pkg/metrics"
)

// CredentialSentinel is the displayable text returned when no LLM key is
// configured. The literal is part of the UI contract.
const CredentialSentinel = "Error: Gemini API key missing."

// Config controls the dataset analysis domain.
type Config struct {
	MaxFileBytes int64
	PreviewRows  int
	SessionTTL   time.Duration
}

// Session owns one uploaded Dataset and its memoized digest. A new upload
// creates a new session; the old one expires with its TTL.
type Session struct {
	ID        uuid.UUID
	Filename  string
	Data      dataset.Dataset
	Digest    string
	CreatedAt time.Time
}

// SessionRepository stores analysis sessions for the lifetime of the
// process.
type SessionRepository interface {
	Save(ctx context.Context, session Session) error
	Get(ctx context.Context, id uuid.UUID) (Session, bool, error)
	SetDigest(ctx context.Context, id uuid.UUID, digest string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// UploadRequest captures a CSV submission.
type UploadRequest struct {
	Filename string
	Content  []byte
}

// ChartPoint is one aggregated point of the per-city daily series rendered
// by the frontend.
type ChartPoint struct {
	Date string  `json:"date"`
	City string  `json:"city"`
	AQI  float64 `json:"aqi"`
}

// SessionResponse is the overview returned after an upload.
type SessionResponse struct {
	SessionID uuid.UUID         `json:"sessionId"`
	Filename  string            `json:"filename"`
	Records   int               `json:"records"`
	Cities    []string          `json:"cities"`
	StartDate string            `json:"startDate"`
	EndDate   string            `json:"endDate"`
	Preview   []dataset.Reading `json:"preview"`
	Series    []ChartPoint      `json:"series"`
}

// Insight carries a displayable analysis result. Insight text is always
// renderable; Generated and FailureCode preserve the success/failure
// distinction the text alone would lose.
type Insight struct {
	Intent      prompt.Intent       `json:"intent"`
	Insight     string              `json:"insight"`
	Generated   bool                `json:"generated"`
	FailureCode string              `json:"failureCode,omitempty"`
	LatencyMs   int64               `json:"latencyMs"`
	TokenUsage  *metrics.TokenUsage `json:"tokenUsage,omitempty"`
}
