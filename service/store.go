package service

import (
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/nestavo/contracts/backend/config"
	"github.com/nestavo/contracts/backend/model"
)

// ContractStore is an in-memory keyed store for contracts.
// Reads return deep copies; all mutations go through Update, which serializes
// read-modify-write per contract id so concurrent signings of the same contract
// cannot race on the derived status. Different contracts proceed in parallel.
type ContractStore struct {
	mu           sync.RWMutex
	contracts    map[string]*model.ContractData
	locks        map[string]*sync.Mutex
	maxContracts int // Maximum contracts to keep, 0 = unlimited
}

func NewContractStore(cfg *config.StoreConfig) *ContractStore {
	maxContracts := 0
	if cfg != nil && cfg.MaxContracts > 0 {
		maxContracts = cfg.MaxContracts
	}
	return &ContractStore{
		contracts:    make(map[string]*model.ContractData),
		locks:        make(map[string]*sync.Mutex),
		maxContracts: maxContracts,
	}
}

// Create inserts a new contract. Duplicate ids are rejected.
func (s *ContractStore) Create(contract *model.ContractData) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.contracts[contract.ID]; exists {
		return model.ErrDuplicateContractID
	}

	stored := contract.Clone()
	stored.UpdatedAt = time.Now()
	s.contracts[contract.ID] = stored
	s.locks[contract.ID] = &sync.Mutex{}

	s.cleanupIfNeeded()
	return nil
}

// Get returns a copy of the contract with the given id.
func (s *ContractStore) Get(id string) (*model.ContractData, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	contract, ok := s.contracts[id]
	if !ok {
		return nil, model.ErrContractNotFound
	}
	return contract.Clone(), nil
}

// GetByType returns copies of all contracts of the given type, oldest first.
func (s *ContractStore) GetByType(ct model.ContractType) []*model.ContractData {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*model.ContractData
	for _, c := range s.contracts {
		if c.Type == ct {
			result = append(result, c.Clone())
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result
}

// Update applies fn to a working copy of the contract under the contract's
// exclusive lock. The store is only written if fn succeeds, so a failed update
// leaves the last successful state untouched. Returns a copy of the new state.
func (s *ContractStore) Update(id string, fn func(*model.ContractData) error) (*model.ContractData, error) {
	s.mu.RLock()
	lock, ok := s.locks[id]
	s.mu.RUnlock()
	if !ok {
		return nil, model.ErrContractNotFound
	}

	lock.Lock()
	defer lock.Unlock()

	s.mu.RLock()
	current, ok := s.contracts[id]
	s.mu.RUnlock()
	if !ok {
		return nil, model.ErrContractNotFound
	}

	next := current.Clone()
	if err := fn(next); err != nil {
		return nil, err
	}
	next.UpdatedAt = time.Now()

	// Cleanup may evict the contract while fn runs; a blind write would
	// re-insert it without a lock entry, leaving it readable but never
	// updatable again. Re-check presence before committing.
	s.mu.Lock()
	if _, ok := s.locks[id]; !ok {
		s.mu.Unlock()
		return nil, model.ErrContractNotFound
	}
	s.contracts[id] = next
	s.mu.Unlock()

	return next.Clone(), nil
}

// Count returns the number of contracts in the store.
func (s *ContractStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.contracts)
}

// cleanupIfNeeded removes oldest contracts if store exceeds maxContracts
// Must be called with lock held
func (s *ContractStore) cleanupIfNeeded() {
	if s.maxContracts <= 0 {
		return // Unlimited
	}

	if len(s.contracts) <= s.maxContracts {
		return
	}

	contracts := make([]*model.ContractData, 0, len(s.contracts))
	for _, c := range s.contracts {
		contracts = append(contracts, c)
	}
	sort.Slice(contracts, func(i, j int) bool {
		return contracts[i].CreatedAt.Before(contracts[j].CreatedAt)
	})

	removeCount := len(contracts) - s.maxContracts
	for i := 0; i < removeCount; i++ {
		slog.Info("auto-cleaning old contract",
			"contract_id", contracts[i].ID,
			"created_at", contracts[i].CreatedAt,
		)
		delete(s.contracts, contracts[i].ID)
		delete(s.locks, contracts[i].ID)
	}
}
