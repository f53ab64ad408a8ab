package redis

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/nitron/internal/domain"
)

// Options tunes a Store. Zero values pick sensible defaults.
type Options struct {
	// Location is the zone used for day labels (default time.Local)
	Location *time.Location
	// Now stamps new records (default time.Now)
	Now func() time.Time
}

// Store persists bookmarks and history in Redis
type Store struct {
	mu     sync.Mutex
	client *redis.Client
	loc    *time.Location
	now    func() time.Time
}

var _ domain.RecordStore = (*Store)(nil)

// NewStore creates a new Redis store
func NewStore(client *redis.Client, opts Options) *Store {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Store{
		client: client,
		loc:    opts.Location,
		now:    opts.Now,
	}
}

// Ping checks the connection
func (s *Store) Ping(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return domain.Unavailable("ping redis", s.client.Ping(ctx).Err())
}

// Close releases the client. Call once at shutdown.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.client.Close()
}

// insert writes the record, its timeline entry and its url index entry in
// one MULTI/EXEC so a single record is never half written.
func (s *Store) insert(ctx context.Context, c Collection, url string, at time.Time, payload []byte) error {
	seq, err := s.client.Incr(ctx, SeqKey(c)).Result()
	if err != nil {
		return err
	}
	id := formatID(seq)

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, RecordKey(c, id), payload, 0)
		pipe.ZAdd(ctx, TimelineKey(c), redis.Z{Score: float64(at.UnixMilli()), Member: id})
		pipe.ZAdd(ctx, URLIndexKey(c, url), redis.Z{Score: float64(seq), Member: id})
		return nil
	})
	return err
}

// list returns raw record payloads, newest first. Records whose payload has
// vanished are skipped.
func (s *Store) list(ctx context.Context, c Collection) ([]string, error) {
	ids, err := s.client.ZRevRange(ctx, TimelineKey(c), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	return s.payloads(ctx, c, ids)
}

func (s *Store) payloads(ctx context.Context, c Collection, ids []string) ([]string, error) {
	if len(ids) == 0 {
		return []string{}, nil
	}

	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, RecordKey(c, id))
	}

	vals, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(vals))
	for _, v := range vals {
		if raw, ok := v.(string); ok {
			out = append(out, raw)
		}
	}
	return out, nil
}

// deleteFirst removes the oldest record carrying url. No match is a no-op.
func (s *Store) deleteFirst(ctx context.Context, c Collection, url string) error {
	ids, err := s.client.ZRange(ctx, URLIndexKey(c, url), 0, 0).Result()
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}
	id := ids[0]

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, RecordKey(c, id))
		pipe.ZRem(ctx, TimelineKey(c), id)
		pipe.ZRem(ctx, URLIndexKey(c, url), id)
		return nil
	})
	return err
}

// idsBefore returns timeline IDs scored strictly below cutoff
func (s *Store) idsBefore(ctx context.Context, c Collection, cutoff time.Time) ([]string, error) {
	return s.client.ZRangeByScore(ctx, TimelineKey(c), &redis.ZRangeBy{
		Min: "-inf",
		Max: "(" + strconv.FormatInt(cutoff.UnixMilli(), 10),
	}).Result()
}
