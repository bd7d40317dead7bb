package service

import (
	"context"
	"encoding/base64"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/Raghugowd/Internx-sub001/internal/config"
	"github.com/Raghugowd/Internx-sub001/internal/model"
	"github.com/Raghugowd/Internx-sub001/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// stubOTP accepts every code; registration tests here exercise the write
// path, not the challenge lifecycle.
type stubOTP struct {
	consumed []string
}

func (s *stubOTP) Verify(ctx context.Context, email, code string) error { return nil }
func (s *stubOTP) Consume(ctx context.Context, email string)            { s.consumed = append(s.consumed, email) }

// stubRow satisfies pgx.Row with a fixed scan outcome.
type stubRow struct {
	scan func(dest ...any) error
}

func (r stubRow) Scan(dest ...any) error { return r.scan(dest...) }

// stubDB answers the email-exists probe with false and fails every insert
// with the configured error.
type stubDB struct {
	insertErr error
	inserts   int
}

func (db *stubDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (db *stubDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, errors.New("unexpected query")
}

func (db *stubDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if strings.Contains(sql, "SELECT EXISTS") {
		return stubRow{scan: func(dest ...any) error {
			*(dest[0].(*bool)) = false
			return nil
		}}
	}
	db.inserts++
	return stubRow{scan: func(dest ...any) error { return db.insertErr }}
}

func registrationFixture(t *testing.T, insertErr error) (*UserService, *stubOTP, string) {
	t.Helper()

	cfg := &config.Config{
		UploadDir:          t.TempDir(),
		MaxAttachmentBytes: 1024 * 1024,
		BcryptCost:         bcrypt.MinCost,
	}
	otp := &stubOTP{}
	repo := repository.NewUserRepository(&stubDB{insertErr: insertErr})

	svc := NewUserService(repo, NewAuthService(cfg), otp, NewAttachmentService(cfg), zerolog.Nop())
	return svc, otp, cfg.UploadDir
}

func registerRequestWithAttachments() *model.RegisterRequest {
	return &model.RegisterRequest{
		Name:     "Asha Rao",
		Email:    "asha@example.com",
		Phone:    "9876543210",
		Password: "secret1",
		OTP:      "482913",
		Resume: &model.AttachmentPayload{
			FileName:    "resume.pdf",
			ContentType: "application/pdf",
			Data:        base64.StdEncoding.EncodeToString([]byte("%PDF-1.4 resume")),
		},
		Photo: &model.AttachmentPayload{
			FileName:    "photo.png",
			ContentType: "image/png",
			Data:        base64.StdEncoding.EncodeToString([]byte{0x89, 'P', 'N', 'G'}),
		},
	}
}

func uploadedFiles(t *testing.T, dir string) []os.DirEntry {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	return entries
}

func TestRegisterFailedInsertRemovesStoredAttachments(t *testing.T) {
	svc, otp, uploadDir := registrationFixture(t, errors.New("connection reset"))

	_, err := svc.Register(context.Background(), registerRequestWithAttachments())
	require.Error(t, err)

	require.Empty(t, uploadedFiles(t, uploadDir), "a failed insert must leave no orphaned attachment files")
	require.Empty(t, otp.consumed, "the challenge survives a failed registration")
}

func TestRegisterDuplicateInsertRemovesStoredAttachments(t *testing.T) {
	// The unique-email race: EmailExists said no, but the insert collides.
	svc, otp, uploadDir := registrationFixture(t, &pgconn.PgError{Code: "23505"})

	_, err := svc.Register(context.Background(), registerRequestWithAttachments())
	require.ErrorIs(t, err, ErrEmailAlreadyRegistered)

	require.Empty(t, uploadedFiles(t, uploadDir))
	require.Empty(t, otp.consumed)
}

func TestRegisterSuccessStoresAttachmentsAndConsumesOTP(t *testing.T) {
	svc, otp, uploadDir := registrationFixture(t, nil)

	user, err := svc.Register(context.Background(), registerRequestWithAttachments())
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(user.ResumeURL, "/uploads/"))
	require.True(t, strings.HasPrefix(user.PhotoURL, "/uploads/"))

	require.Len(t, uploadedFiles(t, uploadDir), 2)
	require.Equal(t, []string{"asha@example.com"}, otp.consumed)
}

func TestRegisterInvalidAttachmentWritesNothing(t *testing.T) {
	db := &stubDB{}
	cfg := &config.Config{
		UploadDir:          t.TempDir(),
		MaxAttachmentBytes: 1024 * 1024,
		BcryptCost:         bcrypt.MinCost,
	}
	svc := NewUserService(repository.NewUserRepository(db), NewAuthService(cfg), &stubOTP{}, NewAttachmentService(cfg), zerolog.Nop())

	req := registerRequestWithAttachments()
	req.Photo.ContentType = "application/zip"

	_, err := svc.Register(context.Background(), req)
	require.ErrorIs(t, err, ErrUnsupportedFileType)

	require.Empty(t, uploadedFiles(t, cfg.UploadDir), "attachments are checked before anything is written")
	require.Zero(t, db.inserts)
}

func TestNormalizeSkillEntries(t *testing.T) {
	cases := []struct {
		name string
		in   []string
		want []string
	}{
		{"trims whitespace", []string{" Go ", "Rust", "  Python"}, []string{"Go", "Rust", "Python"}},
		{"drops empties", []string{"Go", "", "  ", "SQL"}, []string{"Go", "SQL"}},
		{"preserves order", []string{"z", "a", "m"}, []string{"z", "a", "m"}},
		{"nil input", nil, []string{}},
		{"all empty", []string{"", " "}, []string{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, NormalizeSkills(tc.in))
		})
	}
}
