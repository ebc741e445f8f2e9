package cache

import (
	"testing"

	"github.com/redis/go-redis/v9"
)

func TestApplyOptions(t *testing.T) {
	tests := []struct {
		name        string
		opts        Options
		wantPool    int
		wantMinIdle int
	}{
		{"configured bounds win", Options{PoolSize: 25, MinIdleConns: 5}, 25, 5},
		{"zero values keep parsed settings", Options{}, 0, 0},
		{"partial override", Options{PoolSize: 8}, 8, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &redis.Options{}
			applyOptions(cfg, tt.opts)

			if cfg.PoolSize != tt.wantPool {
				t.Errorf("expected pool size %d, got %d", tt.wantPool, cfg.PoolSize)
			}
			if cfg.MinIdleConns != tt.wantMinIdle {
				t.Errorf("expected min idle conns %d, got %d", tt.wantMinIdle, cfg.MinIdleConns)
			}
			if cfg.PoolTimeout == 0 {
				t.Error("expected a pool timeout to be set")
			}
			if cfg.ConnMaxIdleTime == 0 {
				t.Error("expected a max idle time to be set")
			}
		})
	}
}
