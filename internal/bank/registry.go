package bank

import (
	"fmt"
	"strings"
	"sync"

	"github.com/hance08/banksim/internal/clock"
	"github.com/hance08/banksim/internal/idgen"
	"github.com/hance08/banksim/internal/ledger"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Env is the state shared by every bank and account of one simulation
// session. Separate sessions use separate Envs.
type Env struct {
	Clock    clock.Clock
	IDs      *idgen.Allocator
	Ledger   *ledger.Ledger
	Accounts *AccountRegistry
	Banks    *Registry
}

func NewEnv(c clock.Clock, ids *idgen.Allocator) *Env {
	env := &Env{
		Clock:  c,
		IDs:    ids,
		Ledger: ledger.New(c),
	}
	env.Accounts = &AccountRegistry{ids: ids, accounts: make(map[string]*Account)}
	env.Banks = &Registry{env: env, banks: make(map[string]*Bank)}
	return env
}

// AccountRegistry resolves account ids across all banks of a session.
type AccountRegistry struct {
	mu       sync.RWMutex
	ids      *idgen.Allocator
	accounts map[string]*Account
}

func (r *AccountRegistry) Get(id string) (*Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	acc, ok := r.accounts[id]
	if !ok {
		return nil, fmt.Errorf("account %s: %w", id, ErrNotFound)
	}
	return acc, nil
}

// Owner returns the client id of an account.
func (r *AccountRegistry) Owner(id string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	acc, ok := r.accounts[id]
	if !ok {
		return "", false
	}
	return acc.clientID, true
}

func (r *AccountRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.accounts)
}

func (r *AccountRegistry) add(acc *Account) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.accounts[acc.id] = acc
}

func (r *AccountRegistry) remove(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.accounts[id]; !ok {
		return fmt.Errorf("account %s: %w", id, ErrNotFound)
	}
	delete(r.accounts, id)
	r.ids.Release(id)
	return nil
}

// Registry looks banks up by their unique name.
type Registry struct {
	mu    sync.RWMutex
	env   *Env
	banks map[string]*Bank
}

func (r *Registry) New(name string, cfg Config) (*Bank, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("bank name is empty: %w", ErrInvalidConfig)
	}
	if cfg.DepositTerm == 0 {
		cfg.DepositTerm = DefaultDepositTerm
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.banks[name]; ok {
		return nil, fmt.Errorf("bank with the name '%s' already exists: %w", name, ErrDuplicateName)
	}

	b := &Bank{
		name:      name,
		env:       r.env,
		cfg:       cfg,
		accounts:  make(map[string][]*Account),
		blacklist: make(map[string]struct{}),
	}
	r.banks[name] = b
	return b, nil
}

func (r *Registry) Get(name string) (*Bank, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.banks[name]
	if !ok {
		return nil, fmt.Errorf("no bank with name %s: %w", name, ErrNotFound)
	}
	return b, nil
}

func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := maps.Keys(r.banks)
	slices.Sort(names)
	return names
}

// All returns the banks ordered by name.
func (r *Registry) All() []*Bank {
	names := r.Names()

	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Bank, 0, len(names))
	for _, name := range names {
		if b, ok := r.banks[name]; ok {
			out = append(out, b)
		}
	}
	return out
}
