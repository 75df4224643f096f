package certify

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"certportal/models"
	"certportal/stores"
)

// ensureAccount finds the student account for an email, creating one with
// a random one-time credential when none exists. An existing account is
// returned unchanged; the row's name never overwrites stored data.
func (p *Pipeline) ensureAccount(email, name string) (*models.User, error) {
	existing, err := p.Accounts.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	// The credential is never communicated to the student through this
	// pipeline; they claim the account via the password reset flow.
	hash, err := bcrypt.GenerateFromPassword([]byte(randBase36(8)), p.SaltRound)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:     name,
		Email:    email,
		Password: string(hash),
		Role:     "student",
	}

	if err := p.Accounts.Insert(user); err != nil {
		if errors.Is(err, stores.ErrDuplicateEmail) {
			// Lost a race with a concurrent writer; the stored
			// account is authoritative.
			return p.Accounts.FindByEmail(email)
		}
		return nil, err
	}

	return user, nil
}
