// internal/domain/staff/service.go
package staff

import (
	"context"
	"sync"

	"github.com/tazvirotechnologies-max/cafepos-terminal/internal/domain/session"
	"github.com/tazvirotechnologies-max/cafepos-terminal/internal/gateway"
	"github.com/tazvirotechnologies-max/cafepos-terminal/internal/pkg/apperrors"
)

// Fetcher is the slice of the back-office client staff management needs
type Fetcher interface {
	Staff(ctx context.Context) ([]gateway.StaffUser, error)
	CreateStaff(ctx context.Context, req *gateway.CreateStaffRequest) error
	SetStaffActive(ctx context.Context, id int64, active bool) error
	DeleteStaff(ctx context.Context, id int64) error
}

// Service manages staff accounts through the back office.
//
// Consistency is mutate-then-refresh for create and delete. ToggleActive is
// the one deliberate exception: the cached entry is patched optimistically
// so the toggle feels instant at the counter, and Refresh re-syncs from the
// server afterwards. A failed toggle rolls the patch back.
type Service struct {
	gw Fetcher

	mu     sync.Mutex
	cached []gateway.StaffUser
}

// NewService creates a new staff management service
func NewService(gw Fetcher) *Service {
	return &Service{gw: gw}
}

// Refresh re-reads the staff list from the server and returns it
func (s *Service) Refresh(ctx context.Context) ([]gateway.StaffUser, error) {
	staff, err := s.gw.Staff(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.cached = staff
	s.mu.Unlock()

	return s.List(), nil
}

// List returns the cached staff list
func (s *Service) List() []gateway.StaffUser {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]gateway.StaffUser, len(s.cached))
	copy(out, s.cached)
	return out
}

// Create adds a staff account, validating the role locally first
func (s *Service) Create(ctx context.Context, username, password, role string) error {
	if username == "" || password == "" {
		return apperrors.New(apperrors.CodeValidation, "Fill all fields")
	}
	parsed, err := session.ParseRole(role)
	if err != nil {
		return err
	}

	return s.gw.CreateStaff(ctx, &gateway.CreateStaffRequest{
		Username: username,
		Password: password,
		Role:     string(parsed),
	})
}

// ToggleActive flips a staff account's active flag. The cached list is
// patched before the server call returns; the caller should Refresh soon
// after to re-sync.
func (s *Service) ToggleActive(ctx context.Context, id int64) error {
	s.mu.Lock()
	var target *gateway.StaffUser
	for i := range s.cached {
		if s.cached[i].ID == id {
			target = &s.cached[i]
			break
		}
	}
	if target == nil {
		s.mu.Unlock()
		return apperrors.New(apperrors.CodeValidation, "Unknown staff member")
	}
	target.IsActive = !target.IsActive
	wantActive := target.IsActive
	s.mu.Unlock()

	if err := s.gw.SetStaffActive(ctx, id, wantActive); err != nil {
		// Roll the optimistic patch back so the cache matches the server
		s.mu.Lock()
		for i := range s.cached {
			if s.cached[i].ID == id {
				s.cached[i].IsActive = !wantActive
			}
		}
		s.mu.Unlock()
		return err
	}

	return nil
}

// Delete removes a staff account
func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperrors.New(apperrors.CodeValidation, "Invalid staff id")
	}
	return s.gw.DeleteStaff(ctx, id)
}
