package service

import (
	"context"

	"github.com/riverqueue/river"
	"github.com/riverqueue/river/rivertype"
)

const postEmbeddingKind = "post_embedding"

// EmbeddingsQueueName is the River queue used for post embedding jobs.
const EmbeddingsQueueName = "embeddings"

// PostEmbeddingInserter inserts embedding jobs (e.g. the River client).
type PostEmbeddingInserter interface {
	Insert(ctx context.Context, args river.JobArgs, opts *river.InsertOpts) (*rivertype.JobInsertResult, error)
}

// PostEmbeddingArgs is the job payload for generating and storing the
// embedding of one post. Uniqueness is by PostID so duplicate create events
// for the same post do not fan out into duplicate jobs.
type PostEmbeddingArgs struct {
	PostID int64 `json:"post_id" river:"unique"`
}

// Kind returns the River job kind.
func (PostEmbeddingArgs) Kind() string { return postEmbeddingKind }

var _ river.JobArgs = PostEmbeddingArgs{}
