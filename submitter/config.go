package submitter

import (
	"github.com/0xPolygon/rollupchain/config/types"
	"github.com/ethereum/go-ethereum/common"
)

type Config struct {
	// Address is the identity batches are appended with, it must be an authorized submitter
	Address common.Address `mapstructure:"Address"`
	// Interval is the time between two rounds of submission
	Interval types.Duration `mapstructure:"Interval"`
	// MaxBatchSize is the maximum number of transactions of a submitted batch
	MaxBatchSize uint64 `mapstructure:"MaxBatchSize"`
	// RetryAfterErrorPeriod is the time that will be waited when an unexpected error happens before retry
	RetryAfterErrorPeriod types.Duration `mapstructure:"RetryAfterErrorPeriod"`
	// MaxRetryAttemptsAfterError is the maximum number of consecutive failed rounds before giving up.
	// Any number smaller than zero will be considered as unlimited retries
	MaxRetryAttemptsAfterError int `mapstructure:"MaxRetryAttemptsAfterError"`
}
