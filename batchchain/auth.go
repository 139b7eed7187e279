package batchchain

import (
	"sync"

	"github.com/ethereum/go-ethereum/common"
)

// Authorizer decides who may submit batches
type Authorizer interface {
	IsAuthorizedSubmitter(caller common.Address) bool
}

// SingleSubmitter authorizes exactly one identity
type SingleSubmitter common.Address

func NewSingleSubmitter(submitter common.Address) SingleSubmitter {
	return SingleSubmitter(submitter)
}

func (s SingleSubmitter) IsAuthorizedSubmitter(caller common.Address) bool {
	return common.Address(s) == caller
}

// SubmitterSet authorizes any member of a set that can be changed at runtime,
// e.g. to rotate sequencers
type SubmitterSet struct {
	mu      sync.RWMutex
	members map[common.Address]struct{}
}

func NewSubmitterSet(submitters ...common.Address) *SubmitterSet {
	s := &SubmitterSet{members: make(map[common.Address]struct{}, len(submitters))}
	for _, submitter := range submitters {
		s.members[submitter] = struct{}{}
	}
	return s
}

func (s *SubmitterSet) IsAuthorizedSubmitter(caller common.Address) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.members[caller]
	return ok
}

func (s *SubmitterSet) Add(submitter common.Address) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.members[submitter] = struct{}{}
}

func (s *SubmitterSet) Remove(submitter common.Address) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.members, submitter)
}

func (s *SubmitterSet) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.members)
}

// AllowAll authorizes everybody
type AllowAll struct{}

func (AllowAll) IsAuthorizedSubmitter(common.Address) bool {
	return true
}
