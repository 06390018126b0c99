package core

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// CreateAdmin adds a panel operator account. The password is stored as a
// bcrypt hash.
func (s *Service) CreateAdmin(username, password, email string) (*ConfigDocument, error) {
	username = strings.TrimSpace(username)
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return s.mutate(func(doc *ConfigDocument) error {
		for _, a := range doc.Admins {
			if a.Username == username {
				return fmt.Errorf("%w: %s", ErrDuplicateAdmin, username)
			}
		}
		doc.Admins = append(doc.Admins, AdminAccount{
			ID:       nextAdminID(doc),
			Username: username,
			Password: string(hash),
			Email:    strings.TrimSpace(email),
		})
		return nil
	})
}

// UpdateAdminPassword rehashes and replaces the password for the account
// with the given id.
func (s *Service) UpdateAdminPassword(id int, password string) (*ConfigDocument, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return s.mutate(func(doc *ConfigDocument) error {
		for i := range doc.Admins {
			if doc.Admins[i].ID == id {
				doc.Admins[i].Password = string(hash)
				return nil
			}
		}
		return fmt.Errorf("%w: admin id %d", ErrNotFound, id)
	})
}

// DeleteAdmin removes the account by id unconditionally.
func (s *Service) DeleteAdmin(id int) (*ConfigDocument, error) {
	return s.mutate(func(doc *ConfigDocument) error {
		kept := doc.Admins[:0]
		for _, a := range doc.Admins {
			if a.ID != id {
				kept = append(kept, a)
			}
		}
		doc.Admins = kept
		return nil
	})
}

// Authenticate verifies a username/password pair against the stored
// bcrypt hash and returns the matching account.
func (s *Service) Authenticate(username, password string) (*AdminAccount, error) {
	doc, err := s.Document()
	if err != nil {
		return nil, err
	}
	for i := range doc.Admins {
		if doc.Admins[i].Username != username {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(doc.Admins[i].Password), []byte(password)) != nil {
			return nil, ErrBadCredentials
		}
		return &doc.Admins[i], nil
	}
	return nil, ErrBadCredentials
}
