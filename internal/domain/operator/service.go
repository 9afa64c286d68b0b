// internal/domain/operator/service.go
package operator

import (
	"context"
	"errors"
	"fmt"

	"github.com/your-org/pos-backend/internal/config"
	"github.com/your-org/pos-backend/internal/pkg/auth"
	"gorm.io/gorm"
)

var (
	// ErrInvalidCredentials is returned for a wrong name or PIN
	ErrInvalidCredentials = errors.New("invalid name or PIN")
	// ErrOperatorInactive is returned when a deactivated operator signs in
	ErrOperatorInactive = errors.New("operator is deactivated")
)

// Service handles operator lookup and PIN authentication
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new operator service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// Authenticate verifies the PIN for the named operator
func (s *Service) Authenticate(ctx context.Context, name, pin string) (*Operator, error) {
	var op Operator
	result := s.db.WithContext(ctx).Where("name = ?", name).First(&op)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up operator: %w", result.Error)
	}

	if !auth.VerifyPIN(pin, op.PINHash) {
		return nil, ErrInvalidCredentials
	}
	if !op.IsActive {
		return nil, ErrOperatorInactive
	}

	return &op, nil
}

// GetOperator retrieves an operator by id
func (s *Service) GetOperator(ctx context.Context, id string) (*Operator, error) {
	var op Operator
	result := s.db.WithContext(ctx).Where("id = ?", id).First(&op)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("operator not found")
		}
		return nil, fmt.Errorf("failed to retrieve operator: %w", result.Error)
	}
	return &op, nil
}
