package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"learnmatch/internal/domain/job"

	"github.com/google/uuid"
)

// MatchCache stores computed match results. Implementations may be no-ops; a
// failing cache never fails a match.
type MatchCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

type matchCacheKeyInput struct {
	CategoryID    string `json:"category_id"`
	JobTypeID     string `json:"job_type_id"`
	RequiredCount int    `json:"required_count"`
}

// MatchCacheKey identifies a learner's result for a posting by exactly the posting
// fields the scorer reads. Skill names are not scored, only how many there are, so
// blank entries count like any other.
func MatchCacheKey(learnerID uuid.UUID, posting job.Posting) string {
	in := matchCacheKeyInput{
		CategoryID:    posting.CategoryID.String(),
		JobTypeID:     posting.JobTypeID.String(),
		RequiredCount: len(posting.RequiredSkills),
	}

	b, _ := json.Marshal(in)
	sum := sha256.Sum256(b)
	return MatchCachePrefix(learnerID) + hex.EncodeToString(sum[:])
}

func MatchCachePrefix(learnerID uuid.UUID) string {
	return "match:" + learnerID.String() + ":"
}

func MatchCachePattern(learnerID uuid.UUID) string {
	return MatchCachePrefix(learnerID) + "*"
}
