package app

import (
	"context"
	"net/http"
	"sync"
	"time"

	"go-hrcore/internal/shared/apperror"
	"go-hrcore/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

const readinessTimeout = 2 * time.Second

type pinger interface {
	PingContext(ctx context.Context) error
}

func liveness(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"status": "ok"}, nil)
}

// readiness pings every backing store in parallel and names the ones that
// failed.
func readiness(db pinger, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
		defer cancel()

		var (
			mu   sync.Mutex
			down = map[string]string{}
		)
		check := func(name string, ping func(context.Context) error) func() error {
			return func() error {
				if err := ping(ctx); err != nil {
					mu.Lock()
					down[name] = err.Error()
					mu.Unlock()
				}
				return nil
			}
		}

		var g errgroup.Group
		g.Go(check("postgres", db.PingContext))
		g.Go(check("redis", func(ctx context.Context) error { return rdb.Ping(ctx).Err() }))
		_ = g.Wait()

		if len(down) > 0 {
			response.ServiceError(c, apperror.Detailed(apperror.ErrServiceUnavailable, "dependency check failed", down))
			return
		}
		response.Success(c, http.StatusOK, gin.H{"status": "ready"}, nil)
	}
}
