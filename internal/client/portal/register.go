package portal

import (
	"context"
	"strings"

	"github.com/Raghugowd/Internx-sub001/internal/client/fileenc"
	"github.com/Raghugowd/Internx-sub001/internal/client/session"
	"github.com/Raghugowd/Internx-sub001/internal/model"
)

// MinPasswordLength is the client-side password floor, mirrored by the
// server's payload validation.
const MinPasswordLength = 6

// RegistrationDraft is the transient, uncommitted set of fields and
// attachments assembled before submission. A failed submission leaves no
// trace anywhere; nothing here is persisted.
type RegistrationDraft struct {
	Name            string
	Email           string
	Phone           string
	Password        string
	ConfirmPassword string

	School      string
	PUCollege   string
	College     string
	Course      string
	Degree      string
	YearOfStudy string

	// Skills is the raw comma-separated form input; it is normalized into
	// an ordered tag list at submission time.
	Skills string

	// OTP is the code the user received by email.
	OTP string

	// Optional attachment paths. Empty means omitted.
	ResumePath string
	PhotoPath  string
}

// Register validates the draft locally, encodes its attachments, and submits
// one atomic creation request. On success the returned (token, user) pair is
// committed to the session store with kind user. Pre-flight failures return
// a *ValidationError and make no network call.
func (s *Service) Register(ctx context.Context, draft *RegistrationDraft) (*session.Principal, error) {
	if err := s.validateDraft(draft); err != nil {
		return nil, err
	}

	req := &model.RegisterRequest{
		Name:        strings.TrimSpace(draft.Name),
		Email:       draft.Email,
		Phone:       strings.TrimSpace(draft.Phone),
		Password:    draft.Password,
		OTP:         draft.OTP,
		School:      strings.TrimSpace(draft.School),
		PUCollege:   strings.TrimSpace(draft.PUCollege),
		College:     strings.TrimSpace(draft.College),
		Course:      strings.TrimSpace(draft.Course),
		Degree:      strings.TrimSpace(draft.Degree),
		YearOfStudy: strings.TrimSpace(draft.YearOfStudy),
		Skills:      NormalizeSkills(draft.Skills),
	}

	if draft.ResumePath != "" {
		enc, err := fileenc.Encode(draft.ResumePath)
		if err != nil {
			return nil, err
		}
		req.Resume = attachmentPayload(enc)
	}
	if draft.PhotoPath != "" {
		enc, err := fileenc.Encode(draft.PhotoPath)
		if err != nil {
			return nil, err
		}
		req.Photo = attachmentPayload(enc)
	}

	token, user, err := s.api.Register(ctx, req)
	if err != nil {
		return nil, err
	}

	p := session.Principal{Kind: session.KindUser, User: user}
	if err := s.store.Commit(token, p); err != nil {
		return nil, err
	}
	return &p, nil
}

// validateDraft runs every pre-submission check. Order matters only for
// which error the caller sees first; none of these touch the network.
func (s *Service) validateDraft(draft *RegistrationDraft) error {
	if !emailPattern.MatchString(draft.Email) {
		return &ValidationError{Field: "email", Reason: "must be a valid email address"}
	}
	if !s.otpRequested(draft.Email) {
		return &ValidationError{Field: "otp", Reason: "request a verification code for this email first"}
	}
	if len(draft.Password) < MinPasswordLength {
		return &ValidationError{Field: "password", Reason: "must be at least 6 characters"}
	}
	if draft.Password != draft.ConfirmPassword {
		return &ValidationError{Field: "confirm_password", Reason: "passwords do not match"}
	}
	if strings.TrimSpace(draft.Name) == "" {
		return &ValidationError{Field: "name", Reason: "is required"}
	}
	if strings.TrimSpace(draft.OTP) == "" {
		return &ValidationError{Field: "otp", Reason: "is required"}
	}
	return nil
}

// NormalizeSkills splits a comma-separated skills string into an ordered
// list of trimmed, non-empty tags.
func NormalizeSkills(raw string) []string {
	parts := strings.Split(raw, ",")
	skills := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			skills = append(skills, t)
		}
	}
	return skills
}

func attachmentPayload(e fileenc.Encoded) *model.AttachmentPayload {
	return &model.AttachmentPayload{
		FileName:    e.FileName,
		ContentType: e.ContentType,
		Data:        e.Data,
	}
}
