package tokenizer

import (
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

const encodingName = "cl100k_base"

// Estimator counts prompt tokens with a tiktoken BPE. Gemini does not share
// OpenAI's vocabularies, so counts are an estimate used for usage metrics
// only.
type Estimator struct {
	once     sync.Once
	encoding *tiktoken.Tiktoken
	initErr  error
}

// NewEstimator constructs a lazy estimator; the encoding loads on first use
// so startup never blocks on BPE data.
func NewEstimator() *Estimator {
	return &Estimator{}
}

// Count returns the number of tokens in text.
func (e *Estimator) Count(text string) (int, error) {
	e.once.Do(func() {
		e.encoding, e.initErr = tiktoken.GetEncoding(encodingName)
	})
	if e.initErr != nil {
		return 0, e.initErr
	}
	return len(e.encoding.Encode(text, nil, nil)), nil
}
