package service

import (
	"context"
	"errors"
	"strings"

	"github.com/Raghugowd/Internx-sub001/internal/model"
	"github.com/Raghugowd/Internx-sub001/internal/repository"
	"github.com/rs/zerolog"
)

var ErrEmailAlreadyRegistered = errors.New("email already registered")

// OTPVerifier is the challenge interface the registration flow needs.
// *OTPService is the production implementation.
type OTPVerifier interface {
	Verify(ctx context.Context, email, code string) error
	Consume(ctx context.Context, email string)
}

// UserService handles intern account business logic, most importantly the
// all-or-nothing registration flow.
type UserService struct {
	userRepo    *repository.UserRepository
	authService *AuthService
	otpService  OTPVerifier
	attachments *AttachmentService
	log         zerolog.Logger
}

// NewUserService creates a new UserService.
func NewUserService(
	userRepo *repository.UserRepository,
	authService *AuthService,
	otpService OTPVerifier,
	attachments *AttachmentService,
	log zerolog.Logger,
) *UserService {
	return &UserService{
		userRepo:    userRepo,
		authService: authService,
		otpService:  otpService,
		attachments: attachments,
		log:         log,
	}
}

// GetByEmail retrieves a user by email.
func (s *UserService) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.userRepo.GetByEmail(ctx, email)
}

// GetByID retrieves a user by ID.
func (s *UserService) GetByID(ctx context.Context, id int) (*model.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// Register creates an account from a verified registration request. The
// order guarantees a failed attempt leaves no trace: attachments are decoded
// and checked before anything is written, the OTP challenge is matched before
// the row is inserted, and stored files are removed again if the insert
// fails. The challenge is consumed only after the account exists.
func (s *UserService) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	exists, err := s.userRepo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailAlreadyRegistered
	}

	if err := s.otpService.Verify(ctx, req.Email, req.OTP); err != nil {
		return nil, err
	}

	// Decode and check every attachment before any write.
	var resumeData, photoData []byte
	if req.Resume != nil {
		if resumeData, err = s.attachments.Validate(req.Resume, AttachmentResume); err != nil {
			return nil, err
		}
	}
	if req.Photo != nil {
		if photoData, err = s.attachments.Validate(req.Photo, AttachmentPhoto); err != nil {
			return nil, err
		}
	}

	hash, err := s.authService.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	var stored []string
	cleanup := func() {
		for _, url := range stored {
			if err := s.attachments.Remove(url); err != nil {
				s.log.Warn().Err(err).Str("url", url).Msg("failed to remove orphaned attachment")
			}
		}
	}

	user := &model.User{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		School:       req.School,
		PUCollege:    req.PUCollege,
		College:      req.College,
		Course:       req.Course,
		Degree:       req.Degree,
		YearOfStudy:  req.YearOfStudy,
		Skills:       NormalizeSkills(req.Skills),
		PasswordHash: hash,
	}

	if resumeData != nil {
		url, err := s.attachments.Save(resumeData, req.Resume.ContentType, AttachmentResume)
		if err != nil {
			return nil, err
		}
		stored = append(stored, url)
		user.ResumeURL = url
	}
	if photoData != nil {
		url, err := s.attachments.Save(photoData, req.Photo.ContentType, AttachmentPhoto)
		if err != nil {
			cleanup()
			return nil, err
		}
		stored = append(stored, url)
		user.PhotoURL = url
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		cleanup()
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailAlreadyRegistered
		}
		return nil, err
	}

	s.otpService.Consume(ctx, req.Email)
	return user, nil
}

// NormalizeSkills trims entries and drops empties, preserving order.
func NormalizeSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		if t := strings.TrimSpace(s); t != "" {
			out = append(out, t)
		}
	}
	return out
}
