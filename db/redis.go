package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	ArticleQueueKey = "briefly:queue:articles"
	SeenKeyPrefix   = "briefly:seen:"
)

// ErrQueueEmpty is returned by Pop when no job arrived before the timeout.
var ErrQueueEmpty = errors.New("queue empty")

// Job is an article waiting to be summarized by the worker.
type Job struct {
	ID          string    `json:"id"`
	ExternalID  string    `json:"external_id,omitempty"`
	URL         string    `json:"url"`
	Source      string    `json:"source"`
	Headline    string    `json:"headline"`
	Publisher   string    `json:"publisher,omitempty"`
	PublishedAt time.Time `json:"published_at"`
	QueuedAt    time.Time `json:"queued_at"`
}

func NewJob(url, source, headline string) Job {
	return Job{
		ID:       uuid.NewString(),
		URL:      url,
		Source:   source,
		Headline: headline,
		QueuedAt: time.Now().UTC(),
	}
}

func ConnectRedis(ctx context.Context, redisURL string) (*redis.Client, error) {
	if redisURL == "" {
		return nil, errors.New("REDIS_URL environment variable is not set")
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		opt = &redis.Options{Addr: redisURL}
	}

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}
	return client, nil
}

type Queue struct {
	client *redis.Client
	key    string
}

func NewQueue(client *redis.Client, key string) *Queue {
	return &Queue{client: client, key: key}
}

func (q *Queue) Push(ctx context.Context, job Job) error {
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("encode job: %w", err)
	}
	return q.client.LPush(ctx, q.key, data).Err()
}

// Pop blocks for up to timeout waiting for the oldest job.
func (q *Queue) Pop(ctx context.Context, timeout time.Duration) (*Job, error) {
	result, err := q.client.BRPop(ctx, timeout, q.key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrQueueEmpty
	}
	if err != nil {
		return nil, err
	}

	var job Job
	if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
		return nil, fmt.Errorf("decode job %q: %w", result[1], err)
	}
	return &job, nil
}

// MarkSeen records externalID for source and reports whether it was new.
// Entries expire after ttl. An empty externalID is always new.
func (q *Queue) MarkSeen(ctx context.Context, source, externalID string, ttl time.Duration) (bool, error) {
	if externalID == "" {
		return true, nil
	}
	return q.client.SetNX(ctx, SeenKeyPrefix+source+":"+externalID, 1, ttl).Result()
}

func (q *Queue) Len(ctx context.Context) (int64, error) {
	return q.client.LLen(ctx, q.key).Result()
}
