package service

import (
	"errors"
	"fmt"

	"github.com/hance08/banksim/internal/client"
	"github.com/hance08/banksim/internal/validation"
)

// ErrClientHasAccounts is returned when removing a client that still holds accounts.
var ErrClientHasAccounts = errors.New("client still holds accounts")

func (s *Service) NewClient(name, surname string, opt client.Optional) (string, error) {
	if err := validation.ValidateName("client name", name); err != nil {
		return "", s.result("new client", err, "name", name)
	}
	if err := validation.ValidateName("client surname", surname); err != nil {
		return "", s.result("new client", err, "surname", surname)
	}

	id := s.Clients.New(name, surname, opt)
	c, err := s.Clients.Get(id)
	if err != nil {
		return "", s.result("new client", err, "client", id)
	}
	return id, s.result("new client", nil, "client", id, "suspicious", c.Info().Suspicious)
}

// UpdateClientOptionalInfo fills in a client's optional fields and pushes the
// new suspicious flag to every bank.
func (s *Service) UpdateClientOptionalInfo(clientID string, opt client.Optional) error {
	info, err := s.Clients.UpdateOptional(clientID, opt)
	if err != nil {
		return s.result("update client", err, "client", clientID)
	}

	for _, b := range s.Env.Banks.All() {
		b.UpdateClientInfo(info)
	}
	return s.result("update client", nil, "client", clientID, "suspicious", info.Suspicious)
}

// ClientAccounts lists the ids of every account the client holds, banks in
// name order.
func (s *Service) ClientAccounts(clientID string) []string {
	var ids []string
	for _, b := range s.Env.Banks.All() {
		ids = append(ids, b.ClientAccounts(clientID)...)
	}
	return ids
}

// RemoveClient drops a client with no open accounts and releases its id.
func (s *Service) RemoveClient(clientID string) error {
	if _, err := s.Clients.Get(clientID); err != nil {
		return s.result("remove client", err, "client", clientID)
	}
	if held := s.ClientAccounts(clientID); len(held) > 0 {
		err := fmt.Errorf("client %s has %d account(s): %w", clientID, len(held), ErrClientHasAccounts)
		return s.result("remove client", err, "client", clientID)
	}
	return s.result("remove client", s.Clients.Remove(clientID), "client", clientID)
}
