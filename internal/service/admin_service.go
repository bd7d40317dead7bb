package service

import (
	"context"

	"github.com/Raghugowd/Internx-sub001/internal/model"
	"github.com/Raghugowd/Internx-sub001/internal/repository"
)

// AdminService handles admin business logic.
type AdminService struct {
	adminRepo *repository.AdminRepository
}

// NewAdminService creates a new AdminService.
func NewAdminService(adminRepo *repository.AdminRepository) *AdminService {
	return &AdminService{adminRepo: adminRepo}
}

// GetByUsername retrieves an admin by username.
func (s *AdminService) GetByUsername(ctx context.Context, username string) (*model.Admin, error) {
	return s.adminRepo.GetByUsername(ctx, username)
}

// GetByID retrieves an admin by ID.
func (s *AdminService) GetByID(ctx context.Context, id int) (*model.Admin, error) {
	return s.adminRepo.GetByID(ctx, id)
}

// Create creates a new admin.
func (s *AdminService) Create(ctx context.Context, admin *model.Admin) error {
	return s.adminRepo.Create(ctx, admin)
}
