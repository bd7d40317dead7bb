package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/Raghugowd/Internx-sub001/internal/client/api"
	"github.com/Raghugowd/Internx-sub001/internal/client/portal"
	"github.com/Raghugowd/Internx-sub001/internal/client/session"
	"golang.org/x/term"
)

const defaultBaseURL = "http://localhost:8080"

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: internx <command>

Commands:
  send-otp      Request an email verification code
  register      Create a new intern account
  login         Sign in as an intern
  admin-login   Sign in as an administrator
  whoami        Show the current session
  logout        End the current session

The server address is taken from INTERNX_API_URL (default `+defaultBaseURL+`).`)
	os.Exit(2)
}

func main() {
	if len(os.Args) < 2 {
		usage()
	}

	// ─── Build Client Stack ────────────────────────────────────────────
	baseURL := os.Getenv("INTERNX_API_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	apiClient := api.New(baseURL)

	path, err := session.DefaultPath()
	if err != nil {
		fatalf("resolve session path: %v", err)
	}
	store := session.NewStore(path, apiClient)
	svc := portal.New(apiClient, store)

	ctx := context.Background()
	if err := svc.RestoreSession(ctx); err != nil {
		fatalf("restore session: %v", err)
	}

	// ─── Dispatch ──────────────────────────────────────────────────────
	switch os.Args[1] {
	case "send-otp":
		err = cmdSendOTP(ctx, svc)
	case "register":
		err = cmdRegister(ctx, svc)
	case "login":
		err = cmdLogin(ctx, svc)
	case "admin-login":
		err = cmdAdminLogin(ctx, svc)
	case "whoami":
		err = cmdWhoami(svc)
	case "logout":
		err = svc.Logout()
		if err == nil {
			fmt.Println("Logged out.")
		}
	default:
		usage()
	}

	if err != nil {
		fatalf("%v", describe(err))
	}
}

func cmdSendOTP(ctx context.Context, svc *portal.Service) error {
	email := prompt("Email: ")
	if err := svc.RequestOTP(ctx, email); err != nil {
		return err
	}
	fmt.Println("Verification code sent. Check your inbox.")
	return nil
}

func cmdRegister(ctx context.Context, svc *portal.Service) error {
	draft := &portal.RegistrationDraft{}

	fmt.Println("=== Create Intern Account ===")
	draft.Name = prompt("Full name: ")
	draft.Email = prompt("Email: ")

	// The OTP challenge must be outstanding before the draft is submitted.
	if err := svc.RequestOTP(ctx, draft.Email); err != nil {
		return err
	}
	fmt.Println("A verification code has been sent to your email.")
	draft.OTP = prompt("Verification code: ")

	draft.Phone = prompt("Phone: ")
	draft.Password = promptPassword("Password: ")
	draft.ConfirmPassword = promptPassword("Confirm password: ")
	draft.School = prompt("School (optional): ")
	draft.PUCollege = prompt("PU college (optional): ")
	draft.College = prompt("College (optional): ")
	draft.Course = prompt("Course (optional): ")
	draft.Degree = prompt("Degree (optional): ")
	draft.YearOfStudy = prompt("Year of study (optional): ")
	draft.Skills = prompt("Skills (comma-separated, optional): ")
	draft.ResumePath = prompt("Resume file path (optional): ")
	draft.PhotoPath = prompt("Photo file path (optional): ")

	p, err := svc.Register(ctx, draft)
	if err != nil {
		return err
	}
	fmt.Printf("\nWelcome, %s! You are now signed in.\n", p.User.Name)
	return nil
}

func cmdLogin(ctx context.Context, svc *portal.Service) error {
	email := prompt("Email: ")
	password := promptPassword("Password: ")

	p, err := svc.LoginAsUser(ctx, email, password)
	if err != nil {
		return err
	}
	fmt.Printf("Signed in as %s (%s).\n", p.User.Name, p.User.Email)
	return nil
}

func cmdAdminLogin(ctx context.Context, svc *portal.Service) error {
	username := prompt("Username: ")
	password := promptPassword("Password: ")

	p, err := svc.LoginAsAdmin(ctx, username, password)
	if err != nil {
		return err
	}
	fmt.Printf("Signed in as administrator %s.\n", p.Admin.Username)
	return nil
}

func cmdWhoami(svc *portal.Service) error {
	p := svc.Current()
	if p == nil {
		fmt.Println("Not signed in.")
		return nil
	}
	switch p.Kind {
	case session.KindUser:
		fmt.Printf("Intern: %s <%s> (id %d)\n", p.User.Name, p.User.Email, p.User.ID)
	case session.KindAdmin:
		fmt.Printf("Administrator: %s <%s> (id %d)\n", p.Admin.Username, p.Admin.Email, p.Admin.ID)
	}
	return nil
}

// ─── Helpers ───────────────────────────────────────────────────────────

var stdin = bufio.NewReader(os.Stdin)

func prompt(label string) string {
	fmt.Print(label)
	line, _ := stdin.ReadString('\n')
	return strings.TrimSpace(line)
}

func promptPassword(label string) string {
	fmt.Print(label)
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return ""
	}
	return string(raw)
}

// describe turns sentinel errors into user-facing messages.
func describe(err error) string {
	var verr *portal.ValidationError
	if errors.As(err, &verr) {
		return fmt.Sprintf("invalid input: %s", verr)
	}

	switch {
	case errors.Is(err, api.ErrInvalidCredentials):
		return "invalid credentials"
	case errors.Is(err, api.ErrOTPInvalidOrExpired):
		return "the verification code is wrong or has expired; request a new one"
	case errors.Is(err, api.ErrEmailAlreadyRegistered):
		return "an account with this email already exists"
	case errors.Is(err, api.ErrAttachmentTooLarge):
		return "an attachment exceeds the size limit"
	case errors.Is(err, api.ErrUnsupportedAttachmentType):
		return "an attachment has an unsupported file type"
	case errors.Is(err, api.ErrServerUnavailable):
		return "the server is unreachable; try again later"
	}
	return err.Error()
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "internx: "+format+"\n", args...)
	os.Exit(1)
}
