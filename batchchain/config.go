package batchchain

import (
	"github.com/0xPolygon/rollupchain/config/types"
	"github.com/ethereum/go-ethereum/common"
)

// Config is the configuration of the transaction and state chains
type Config struct {
	// ForceInclusionPeriod is how long the submitters have the exclusive right to append a
	// queued entry. After that anybody can force its inclusion. It also bounds how old
	// the timestamp of a submitted batch can be. Only whole seconds are taken into account.
	ForceInclusionPeriod types.Duration `mapstructure:"ForceInclusionPeriod"`
	// Submitters are the identities allowed to append batches
	Submitters []common.Address `mapstructure:"Submitters"`
	// QueueProducer is the only identity allowed to enqueue L1 originated elements
	QueueProducer common.Address `mapstructure:"QueueProducer"`
	// PermissionlessSubmission lets anybody append batches, Submitters is ignored
	PermissionlessSubmission bool `mapstructure:"PermissionlessSubmission"`
}

func (c Config) authorizer() Authorizer {
	if c.PermissionlessSubmission {
		return AllowAll{}
	}
	return NewSubmitterSet(c.Submitters...)
}

func (c Config) forceInclusionPeriodSeconds() uint64 {
	return uint64(c.ForceInclusionPeriod.Seconds())
}
