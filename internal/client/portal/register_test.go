package portal

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/Raghugowd/Internx-sub001/internal/client/api"
	"github.com/Raghugowd/Internx-sub001/internal/client/fileenc"
	"github.com/Raghugowd/Internx-sub001/internal/client/session"
	"github.com/Raghugowd/Internx-sub001/internal/model"
	"github.com/stretchr/testify/require"
)

func validDraft() *RegistrationDraft {
	return &RegistrationDraft{
		Name:            "Asha Rao",
		Email:           "asha@example.com",
		Phone:           "9876543210",
		Password:        "secret1",
		ConfirmPassword: "secret1",
		College:         "NMAMIT",
		Skills:          "Go, Rust,  Python ",
		OTP:             "482913",
	}
}

// registrationHandler accepts send-otp and register, capturing the register
// payload for inspection.
func registrationHandler(captured *model.RegisterRequest) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/auth/send-otp":
			writeData(w, map[string]string{"message": "sent"})
		case "/api/v1/auth/register":
			if err := json.NewDecoder(r.Body).Decode(captured); err != nil {
				writeError(w, http.StatusBadRequest, "INVALID_PAYLOAD")
				return
			}
			writeData(w, model.RegisterResponse{
				Token: "fresh-tok",
				User:  model.User{ID: 11, Name: captured.Name, Email: captured.Email, Skills: captured.Skills},
			})
		default:
			writeError(w, http.StatusNotFound, "NOT_FOUND")
		}
	})
}

func TestRegisterHappyPath(t *testing.T) {
	var captured model.RegisterRequest
	tp := newTestPortal(t, registrationHandler(&captured))

	require.NoError(t, tp.svc.RequestOTP(context.Background(), "asha@example.com"))

	p, err := tp.svc.Register(context.Background(), validDraft())
	require.NoError(t, err)
	require.Equal(t, session.KindUser, p.Kind)
	require.Equal(t, "Asha Rao", p.User.Name)

	require.Equal(t, "482913", captured.OTP)
	require.Equal(t, []string{"Go", "Rust", "Python"}, captured.Skills)
	require.Nil(t, captured.Resume)
	require.Nil(t, captured.Photo)

	require.Equal(t, "fresh-tok", tp.store.Token())
	cur := tp.svc.Current()
	require.NotNil(t, cur)
	require.Equal(t, session.KindUser, cur.Kind)
}

func TestRegisterEncodesAttachments(t *testing.T) {
	var captured model.RegisterRequest
	tp := newTestPortal(t, registrationHandler(&captured))

	dir := t.TempDir()
	resumePath := filepath.Join(dir, "resume.pdf")
	resumeContent := []byte("%PDF-1.4 resume body")
	require.NoError(t, os.WriteFile(resumePath, resumeContent, 0o600))

	photoPath := filepath.Join(dir, "photo.png")
	photoContent := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 1, 2, 3}
	require.NoError(t, os.WriteFile(photoPath, photoContent, 0o600))

	require.NoError(t, tp.svc.RequestOTP(context.Background(), "asha@example.com"))

	draft := validDraft()
	draft.ResumePath = resumePath
	draft.PhotoPath = photoPath

	_, err := tp.svc.Register(context.Background(), draft)
	require.NoError(t, err)

	require.NotNil(t, captured.Resume)
	require.Equal(t, "resume.pdf", captured.Resume.FileName)
	decoded, err := fileenc.Decode(fileenc.Encoded{FileName: "resume.pdf", Data: captured.Resume.Data})
	require.NoError(t, err)
	require.Equal(t, resumeContent, decoded)

	require.NotNil(t, captured.Photo)
	require.Equal(t, "photo.png", captured.Photo.FileName)
	require.Contains(t, captured.Photo.ContentType, "image/png")
}

func TestRegisterWithoutOTPRequestIsLocalFailure(t *testing.T) {
	var captured model.RegisterRequest
	tp := newTestPortal(t, registrationHandler(&captured))

	_, err := tp.svc.Register(context.Background(), validDraft())

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "otp", verr.Field)
	require.EqualValues(t, 0, tp.requests.Load(), "no network call before the OTP gate passes")
	require.Nil(t, tp.svc.Current())
}

func TestRegisterPreFlightValidation(t *testing.T) {
	var captured model.RegisterRequest
	tp := newTestPortal(t, registrationHandler(&captured))

	require.NoError(t, tp.svc.RequestOTP(context.Background(), "asha@example.com"))
	afterOTP := tp.requests.Load()

	cases := []struct {
		name      string
		mutate    func(d *RegistrationDraft)
		wantField string
	}{
		{"bad email", func(d *RegistrationDraft) { d.Email = "not-an-email" }, "email"},
		{"short password", func(d *RegistrationDraft) { d.Password, d.ConfirmPassword = "abc12", "abc12" }, "password"},
		{"password mismatch", func(d *RegistrationDraft) { d.Password, d.ConfirmPassword = "Secret1", "Secret2" }, "confirm_password"},
		{"missing name", func(d *RegistrationDraft) { d.Name = "   " }, "name"},
		{"missing otp", func(d *RegistrationDraft) { d.OTP = "" }, "otp"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			draft := validDraft()
			tc.mutate(draft)

			_, err := tp.svc.Register(context.Background(), draft)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			require.Equal(t, tc.wantField, verr.Field)
		})
	}

	require.Equal(t, afterOTP, tp.requests.Load(), "pre-flight failures must stay off the network")
	require.Nil(t, tp.svc.Current())
}

func TestRegisterBoundaryPasswordLength(t *testing.T) {
	var captured model.RegisterRequest
	tp := newTestPortal(t, registrationHandler(&captured))
	require.NoError(t, tp.svc.RequestOTP(context.Background(), "asha@example.com"))

	draft := validDraft()
	draft.Password, draft.ConfirmPassword = "abc123", "abc123"

	_, err := tp.svc.Register(context.Background(), draft)
	require.NoError(t, err, "a 6-character password is the minimum, not below it")
}

func TestRegisterServerRejectionLeavesNoSession(t *testing.T) {
	tp := newTestPortal(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/auth/send-otp":
			writeData(w, map[string]string{"message": "sent"})
		case "/api/v1/auth/register":
			writeError(w, http.StatusConflict, "EMAIL_ALREADY_REGISTERED")
		}
	}))

	require.NoError(t, tp.svc.RequestOTP(context.Background(), "asha@example.com"))

	_, err := tp.svc.Register(context.Background(), validDraft())
	require.ErrorIs(t, err, api.ErrEmailAlreadyRegistered)
	require.Nil(t, tp.svc.Current())
	require.Empty(t, tp.store.Token())
}

func TestRegisterMissingAttachmentFile(t *testing.T) {
	var captured model.RegisterRequest
	tp := newTestPortal(t, registrationHandler(&captured))
	require.NoError(t, tp.svc.RequestOTP(context.Background(), "asha@example.com"))
	afterOTP := tp.requests.Load()

	draft := validDraft()
	draft.ResumePath = filepath.Join(t.TempDir(), "missing.pdf")

	_, err := tp.svc.Register(context.Background(), draft)
	require.ErrorIs(t, err, os.ErrNotExist)
	require.Equal(t, afterOTP, tp.requests.Load(), "encoding failures must not submit anything")
}

func TestNormalizeSkills(t *testing.T) {
	cases := []struct {
		raw  string
		want []string
	}{
		{"Go, Rust,  Python ", []string{"Go", "Rust", "Python"}},
		{"", []string{}},
		{" , ,", []string{}},
		{"solo", []string{"solo"}},
		{"a,,b", []string{"a", "b"}},
	}

	for _, tc := range cases {
		require.Equal(t, tc.want, NormalizeSkills(tc.raw), "raw %q", tc.raw)
	}
}
