package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/osse101/catchbot/internal/domain"
	"github.com/osse101/catchbot/internal/logger"
	"github.com/osse101/catchbot/internal/repository"
)

// RedisOptions configures the Redis client
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisClient connects and pings, retrying a few times while Redis starts
func NewRedisClient(ctx context.Context, opts RedisOptions) (*redis.Client, error) {
	log := logger.FromContext(ctx).With("addr", opts.Addr, "db", opts.DB)

	rdb := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	var err error
	for i := 0; i < redisConnectRetries; i++ {
		if err = rdb.Ping(ctx).Err(); err == nil {
			log.Info(LogMsgRedisConnected)
			return rdb, nil
		}
		log.Warn(LogMsgRedisNotReady, "retry", i+1, "error", err)
		select {
		case <-ctx.Done():
			_ = rdb.Close()
			return nil, fmt.Errorf(ErrMsgRedisConnectFailed, opts.Addr, ctx.Err())
		case <-time.After(redisConnectBackoff):
		}
	}
	_ = rdb.Close()
	return nil, fmt.Errorf(ErrMsgRedisConnectFailed, opts.Addr, err)
}

// NamespaceKey returns "{namespace}:{key}"
func NamespaceKey(namespace, key string) string {
	return namespace + ":" + key
}

// BuildAttemptsKey returns "catchbot:attempts:{accountID}:{bucket}"
func BuildAttemptsKey(accountID, bucket string) string {
	return NamespaceKey(KeyNamespace, NamespaceKey(AttemptsPrefix, NamespaceKey(accountID, bucket)))
}

// BuildLockKey returns "catchbot:lock:{accountID}:{bucket}"
func BuildLockKey(accountID, bucket string) string {
	return NamespaceKey(KeyNamespace, NamespaceKey(LockPrefix, NamespaceKey(accountID, bucket)))
}

// RedisStore keeps attempts in one sorted set per bucket, scored by Unix
// milliseconds. Bucket locks are SET NX PX keys holding a random token.
type RedisStore struct {
	rdb        redis.UniversalClient
	lockTTL    time.Duration
	lockWait   time.Duration
	attemptTTL time.Duration
	release    *redis.Script
}

// NewRedisStore creates a store over rdb
func NewRedisStore(rdb redis.UniversalClient) *RedisStore {
	return &RedisStore{
		rdb:        rdb,
		lockTTL:    DefaultLockTTL,
		lockWait:   DefaultLockWait,
		attemptTTL: DefaultAttemptTTL,
		release:    redis.NewScript(releaseLockScript),
	}
}

// WithAttemptTTL sets how long an idle bucket's attempts are kept
func (s *RedisStore) WithAttemptTTL(ttl time.Duration) *RedisStore {
	if ttl > 0 {
		s.attemptTTL = ttl
	}
	return s
}

var _ repository.Attempts = (*RedisStore)(nil)

func toScore(t time.Time) string {
	return strconv.FormatInt(t.UTC().UnixMilli(), 10)
}

// CountAttemptsSince counts members scored at or after since
func (s *RedisStore) CountAttemptsSince(ctx context.Context, accountID, bucket string, since time.Time) (int, error) {
	n, err := s.rdb.ZCount(ctx, BuildAttemptsKey(accountID, bucket), toScore(since), "+inf").Result()
	if err != nil {
		return 0, domain.Infrastructure("redis zcount", err)
	}
	return int(n), nil
}

// OldestAttemptSince returns the lowest score at or after since
func (s *RedisStore) OldestAttemptSince(ctx context.Context, accountID, bucket string, since time.Time) (*time.Time, error) {
	res, err := s.rdb.ZRangeArgsWithScores(ctx, redis.ZRangeArgs{
		Key:     BuildAttemptsKey(accountID, bucket),
		Start:   toScore(since),
		Stop:    "+inf",
		ByScore: true,
		Count:   1,
	}).Result()
	if err != nil {
		return nil, domain.Infrastructure("redis zrange", err)
	}
	if len(res) == 0 {
		return nil, nil
	}
	oldest := time.UnixMilli(int64(res[0].Score)).UTC()
	return &oldest, nil
}

func attemptMember(record domain.AttemptRecord) string {
	token := record.Token
	if token == "" {
		token = uuid.NewString()
	}
	return toScore(record.AttemptedAt) + "-" + token
}

// InsertAttempt adds one member and refreshes the bucket's expiry
func (s *RedisStore) InsertAttempt(ctx context.Context, record domain.AttemptRecord) error {
	key := BuildAttemptsKey(record.AccountID, record.Bucket)
	member := attemptMember(record)

	pipe := s.rdb.TxPipeline()
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(record.AttemptedAt.UTC().UnixMilli()), Member: member})
	pipe.PExpire(ctx, key, s.attemptTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return domain.Infrastructure("redis zadd", err)
	}
	return nil
}

// RemoveAttempt removes the member written for record. Records without a
// token cannot be matched and are left to expire.
func (s *RedisStore) RemoveAttempt(ctx context.Context, record domain.AttemptRecord) error {
	if record.Token == "" {
		return nil
	}
	key := BuildAttemptsKey(record.AccountID, record.Bucket)
	if err := s.rdb.ZRem(ctx, key, attemptMember(record)).Err(); err != nil {
		return domain.Infrastructure("redis zrem", err)
	}
	return nil
}

// Transactional is false: Redis writes never roll back with a SQL transaction
func (s *RedisStore) Transactional() bool {
	return false
}

// WithBucketLock takes the bucket lock, runs fn and releases the lock if it
// still holds it. fn must finish within the lock TTL. tx is not used; the
// caller undoes attempts through RemoveAttempt.
func (s *RedisStore) WithBucketLock(ctx context.Context, accountID, bucket string, _ repository.AttemptTx, fn func(ctx context.Context, ops repository.AttemptOps) error) error {
	key := BuildLockKey(accountID, bucket)
	token := uuid.NewString()

	if err := s.acquire(ctx, key, token); err != nil {
		return err
	}
	defer func() {
		// Release with a fresh context so a cancelled request still frees the bucket.
		releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), time.Second)
		defer cancel()
		if err := s.release.Run(releaseCtx, s.rdb, []string{key}, token).Err(); err != nil && !errors.Is(err, redis.Nil) {
			logger.FromContext(ctx).Warn(LogMsgLockReleaseFailed, "key", key, "error", err)
		}
	}()

	return fn(ctx, s)
}

func (s *RedisStore) acquire(ctx context.Context, key, token string) error {
	deadline := time.Now().Add(s.lockWait)
	for {
		ok, err := s.rdb.SetNX(ctx, key, token, s.lockTTL).Result()
		if err != nil {
			return domain.Infrastructure("redis lock", err)
		}
		if ok {
			return nil
		}
		if time.Now().After(deadline) {
			return domain.Infrastructure("redis lock", ErrLockTimeout)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(lockRetryInterval):
		}
	}
}

// DeleteAttemptsBefore trims every bucket's members scored before cutoff
func (s *RedisStore) DeleteAttemptsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	pattern := NamespaceKey(KeyNamespace, NamespaceKey(AttemptsPrefix, "*"))
	maxScore := "(" + toScore(cutoff)

	var total int64
	iter := s.rdb.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		n, err := s.rdb.ZRemRangeByScore(ctx, iter.Val(), "-inf", maxScore).Result()
		if err != nil {
			return total, domain.Infrastructure("redis zremrangebyscore", err)
		}
		total += n
	}
	if err := iter.Err(); err != nil {
		return total, domain.Infrastructure("redis scan", err)
	}
	if total > 0 {
		logger.FromContext(ctx).Info(LogMsgAttemptsPurged, "deleted", total)
	}
	return total, nil
}

// Ping checks connectivity
func (s *RedisStore) Ping(ctx context.Context) error {
	return domain.Infrastructure("redis ping", s.rdb.Ping(ctx).Err())
}
