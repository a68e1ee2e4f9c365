package errreport

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"
)

// RedisSink pushes JSON records onto a capped Redis list, newest first.
type RedisSink struct {
	client redis.UniversalClient
	key    string
	max    int64
}

// NewRedisSink creates a sink writing to key and keeping at most max entries.
func NewRedisSink(client redis.UniversalClient, key string, max int64) *RedisSink {
	if key == "" {
		key = "errors:log"
	}
	if max <= 0 {
		max = 1000
	}
	return &RedisSink{client: client, key: key, max: max}
}

func (s *RedisSink) Append(ctx context.Context, rec Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return errors.Join(ErrSinkAppend, err)
	}

	_, err = s.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.LPush(ctx, s.key, data)
		p.LTrim(ctx, s.key, 0, s.max-1)
		return nil
	})
	if err != nil {
		return errors.Join(ErrSinkAppend, err)
	}
	return nil
}

// Recent returns up to n records, newest first.
func (s *RedisSink) Recent(ctx context.Context, n int64) ([]Record, error) {
	if n <= 0 {
		return nil, nil
	}
	items, err := s.client.LRange(ctx, s.key, 0, n-1).Result()
	if err != nil {
		return nil, errors.Join(ErrSinkRead, err)
	}

	records := make([]Record, 0, len(items))
	for _, item := range items {
		var rec Record
		if err := json.Unmarshal([]byte(item), &rec); err != nil {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}
