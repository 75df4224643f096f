package certify

import (
	"errors"
	"fmt"
	"strings"

	"certportal/models"
	"certportal/stores"
)

// in-memory CertificateStore

type mockCertStore struct {
	certs     []*models.Certificate
	findErr   error
	insertErr error
}

func newMockCertStore() *mockCertStore {
	return &mockCertStore{}
}

func (m *mockCertStore) FindByCertID(certID string) (*models.Certificate, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	for _, c := range m.certs {
		if c.CertID == certID {
			return c, nil
		}
	}
	return nil, nil
}

func (m *mockCertStore) FindByName(query string) (*models.Certificate, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	q := strings.ToLower(query)
	for _, c := range m.certs {
		if strings.Contains(strings.ToLower(c.StudentName), q) {
			return c, nil
		}
	}
	return nil, nil
}

func (m *mockCertStore) Insert(cert *models.Certificate) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	for _, c := range m.certs {
		if c.CertID == cert.CertID {
			return stores.ErrDuplicateCertID
		}
	}
	m.certs = append(m.certs, cert)
	return nil
}

func (m *mockCertStore) ListRecent(limit int) ([]models.Certificate, error) {
	var out []models.Certificate
	for i := len(m.certs) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, *m.certs[i])
	}
	return out, nil
}

// in-memory AccountStore

type mockAccountStore struct {
	users     map[string]*models.User
	nextID    uint
	inserts   int
	insertErr error
}

func newMockAccountStore() *mockAccountStore {
	return &mockAccountStore{users: make(map[string]*models.User)}
}

func (m *mockAccountStore) FindByEmail(email string) (*models.User, error) {
	if u, ok := m.users[email]; ok {
		return u, nil
	}
	return nil, nil
}

func (m *mockAccountStore) FindByID(id uint) (*models.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (m *mockAccountStore) FindByResetToken(token string) (*models.User, error) {
	for _, u := range m.users {
		if u.ResetToken == token {
			return u, nil
		}
	}
	return nil, nil
}

func (m *mockAccountStore) Insert(user *models.User) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	if _, ok := m.users[user.Email]; ok {
		return stores.ErrDuplicateEmail
	}
	m.nextID++
	user.ID = m.nextID
	m.users[user.Email] = user
	m.inserts++
	return nil
}

func (m *mockAccountStore) Save(user *models.User) error {
	m.users[user.Email] = user
	return nil
}

func (m *mockAccountStore) ListStudents() ([]models.User, error) {
	var out []models.User
	for _, u := range m.users {
		if u.Role == "student" {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (m *mockAccountStore) Delete(id uint) error {
	for email, u := range m.users {
		if u.ID == id {
			delete(m.users, email)
			return nil
		}
	}
	return errors.New("not found")
}

// fakeRenderer records calls without touching the filesystem.

type fakeRenderer struct {
	calls   int
	failErr error
}

func (f *fakeRenderer) Render(cert *models.Certificate, signaturePath string) (string, error) {
	f.calls++
	if f.failErr != nil {
		return "", f.failErr
	}
	return fmt.Sprintf("generated_pdfs/%s.pdf", cert.CertID), nil
}

func newTestPipeline() (*Pipeline, *mockCertStore, *mockAccountStore, *fakeRenderer) {
	certs := newMockCertStore()
	accounts := newMockAccountStore()
	renderer := &fakeRenderer{}
	// bcrypt MinCost keeps provisioning fast in tests
	return NewPipeline(certs, accounts, renderer, 4), certs, accounts, renderer
}
