package cache

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// Open returns the backend named by target:
//
//   - "" or "none": [NullCache]
//   - redis://, rediss://: [RedisCache]
//   - mongodb://, mongodb+srv://: [MongoCache], database from the URI path
//   - file:///dir or a plain path: [FileCache]
func Open(ctx context.Context, target string) (Cache, error) {
	switch {
	case target == "" || target == "none":
		return NewNullCache(), nil
	case strings.HasPrefix(target, "redis://"), strings.HasPrefix(target, "rediss://"):
		return NewRedisCache(ctx, target)
	case strings.HasPrefix(target, "mongodb://"), strings.HasPrefix(target, "mongodb+srv://"):
		u, err := url.Parse(target)
		if err != nil {
			return nil, fmt.Errorf("parse mongo uri: %w", err)
		}
		return NewMongoCache(ctx, target, strings.Trim(u.Path, "/"))
	case strings.HasPrefix(target, "file://"):
		return NewFileCache(strings.TrimPrefix(target, "file://"))
	case strings.Contains(target, "://"):
		return nil, fmt.Errorf("unsupported cache backend %q", target)
	default:
		return NewFileCache(target)
	}
}
