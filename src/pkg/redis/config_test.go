package redis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTuningDefaults(t *testing.T) {
	tuning := tuningFrom(&CfgRedis{})

	assert.Equal(t, 10, tuning.PoolSize)
	assert.Equal(t, 2, tuning.MaxRetries)
	assert.Equal(t, 5*time.Second, tuning.DialTimeout)
	assert.Equal(t, 3*time.Second, tuning.ReadTimeout)
	assert.Equal(t, 3*time.Second, tuning.WriteTimeout)
}

func TestTuningFromConfig(t *testing.T) {
	tuning := tuningFrom(&CfgRedis{
		PoolSize:        25,
		MaxRetries:      4,
		DialTimeoutSec:  2,
		ReadTimeoutSec:  1,
		WriteTimeoutSec: 1,
	})

	assert.Equal(t, 25, tuning.PoolSize)
	assert.Equal(t, 4, tuning.MaxRetries)
	assert.Equal(t, 2*time.Second, tuning.DialTimeout)
	assert.Equal(t, time.Second, tuning.ReadTimeout)
	assert.Equal(t, time.Second, tuning.WriteTimeout)
}
