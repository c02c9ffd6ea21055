// Package client keeps the people who own accounts. A client with missing
// optional profile fields is considered suspicious by every bank.
package client

import (
	"errors"
	"fmt"
	"sync"

	"github.com/hance08/banksim/internal/idgen"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

const IDSize = 32

var ErrNotFound = errors.New("client not found")

type Client struct {
	ID       string
	Name     string
	Surname  string
	Address  *string
	Passport *string
}

// Info is the part of a client that banks care about.
type Info struct {
	ClientID   string
	Suspicious bool
}

func (c *Client) Info() Info {
	return Info{
		ClientID:   c.ID,
		Suspicious: c.Address == nil || c.Passport == nil,
	}
}

// Optional holds the optional profile fields. Nil fields are left unchanged on update.
type Optional struct {
	Address  *string
	Passport *string
}

type Registry struct {
	mu      sync.RWMutex
	ids     *idgen.Allocator
	clients map[string]*Client
}

func NewRegistry(ids *idgen.Allocator) *Registry {
	return &Registry{ids: ids, clients: make(map[string]*Client)}
}

func (r *Registry) New(name, surname string, opt Optional) string {
	c := &Client{
		ID:       r.ids.Allocate(IDSize),
		Name:     name,
		Surname:  surname,
		Address:  opt.Address,
		Passport: opt.Passport,
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.clients[c.ID] = c
	return c.ID
}

// Get returns a copy of the client.
func (r *Registry) Get(id string) (*Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.clients[id]
	if !ok {
		return nil, fmt.Errorf("client %q: %w", id, ErrNotFound)
	}
	cp := *c
	return &cp, nil
}

func (r *Registry) Info(id string) (Info, error) {
	c, err := r.Get(id)
	if err != nil {
		return Info{}, err
	}
	return c.Info(), nil
}

// UpdateOptional fills in optional fields and returns the client's new info.
func (r *Registry) UpdateOptional(id string, opt Optional) (Info, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.clients[id]
	if !ok {
		return Info{}, fmt.Errorf("client %q: %w", id, ErrNotFound)
	}
	if opt.Address != nil {
		c.Address = opt.Address
	}
	if opt.Passport != nil {
		c.Passport = opt.Passport
	}
	return c.Info(), nil
}

// Remove drops the client and releases its id.
func (r *Registry) Remove(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.clients[id]; !ok {
		return fmt.Errorf("client %q: %w", id, ErrNotFound)
	}
	delete(r.clients, id)
	r.ids.Release(id)
	return nil
}

// IDs returns every client id in sorted order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := maps.Keys(r.clients)
	slices.Sort(ids)
	return ids
}
