// Package accounts signs visitors in and out and manages their backend account.
package accounts

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/mail"
	"sort"
	"strings"

	"github.com/vektah/gqlparser/v2/gqlerror"
	"go.uber.org/zap"
	"paskoocheh/internal/gql"
	"paskoocheh/internal/session"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrNotSignedIn        = errors.New("not signed in")
)

type User struct {
	ID       string
	Username string
	Email    string
	Language string
	Points   int
}

// FormErrors maps a form field to its messages. The empty field name holds form-wide messages.
type FormErrors map[string][]string

func (e FormErrors) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		name := field
		if name == "" {
			name = "form"
		}
		parts = append(parts, name+": "+strings.Join(e[field], ", "))
	}
	return "invalid form: " + strings.Join(parts, "; ")
}

func (e FormErrors) add(field string, message string) {
	e[field] = append(e[field], message)
}

func (e FormErrors) orNil() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// Message codes placed in FormErrors by local validation. Backend messages pass through as-is.
const (
	MessageRequired = "required"
	MessageInvalid  = "invalid"
	MessageMismatch = "mismatch"
)

// ClientSource is satisfied by *gql.SDK.
type ClientSource interface {
	Client(ctx context.Context, tokens session.TokenStore, method string) gql.Client
}

type Service struct {
	clients ClientSource
	logger  *zap.Logger
}

func NewService(clients ClientSource, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{clients: clients, logger: logger}
}

// SignIn exchanges credentials for a token and stores it in tokens.
func (s *Service) SignIn(ctx context.Context, tokens session.TokenStore, username string, password string) error {
	username = strings.TrimSpace(username)
	formErrors := FormErrors{}
	if username == "" {
		formErrors.add("username", MessageRequired)
	}
	if password == "" {
		formErrors.add("password", MessageRequired)
	}
	if err := formErrors.orNil(); err != nil {
		return err
	}

	client := s.clients.Client(ctx, nil, http.MethodPost)
	response, err := gql.SignIn(ctx, client, username, password)
	if err != nil {
		if isGraphQLError(err) {
			return ErrInvalidCredentials
		}
		return fmt.Errorf("sign in: %w", err)
	}
	if response.TokenAuth == nil || response.TokenAuth.Token == "" {
		return ErrInvalidCredentials
	}

	if err := tokens.SetToken(ctx, response.TokenAuth.Token); err != nil {
		return fmt.Errorf("store token: %w", err)
	}
	gql.ResetRequestCache(ctx)
	return nil
}

// SignOut clears the stored token. Revocation is best effort and never fails the sign-out.
func (s *Service) SignOut(ctx context.Context, tokens session.TokenStore) error {
	token := tokens.Token(ctx)
	if token == "" {
		return nil
	}

	client := s.clients.Client(ctx, tokens, http.MethodPost)
	if client.HasAccessToken {
		if _, err := gql.RevokeToken(ctx, client, tokens.Token(ctx)); err != nil {
			s.logger.Info("token revocation failed", zap.Error(err))
		}
	}

	gql.ResetRequestCache(ctx)
	if err := tokens.ClearToken(ctx); err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	return nil
}

// CurrentUser returns the signed-in user, or nil for anonymous visitors. A token the backend
// rejects is cleared and reported as signed out. Transport failures are returned.
func (s *Service) CurrentUser(ctx context.Context, tokens session.TokenStore) (*User, error) {
	if tokens == nil {
		return nil, nil
	}

	client := s.clients.Client(ctx, tokens, http.MethodPost)
	if !client.HasAccessToken {
		return nil, nil
	}

	response, err := gql.CurrentUser(ctx, client)
	if err != nil && !isGraphQLError(err) {
		return nil, fmt.Errorf("current user: %w", err)
	}
	if err != nil || response.Me == nil {
		s.logger.Debug("backend rejected session token", zap.Error(err))
		gql.ResetRequestCache(ctx)
		if clearErr := tokens.ClearToken(ctx); clearErr != nil {
			s.logger.Warn("clear rejected token", zap.Error(clearErr))
		}
		return nil, nil
	}

	user := mapUser(*response.Me)
	return &user, nil
}

type SignUpInput struct {
	Username        string
	Email           string
	Password        string
	PasswordConfirm string
	Language        string
	ReferralCode    string
}

func (s *Service) SignUp(ctx context.Context, tokens session.TokenStore, input SignUpInput) (User, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.TrimSpace(input.Email)

	formErrors := FormErrors{}
	if input.Username == "" {
		formErrors.add("username", MessageRequired)
	}
	validateEmail(formErrors, input.Email, true)
	if input.Password == "" {
		formErrors.add("password", MessageRequired)
	} else if input.Password != input.PasswordConfirm {
		formErrors.add("passwordConfirm", MessageMismatch)
	}
	if err := formErrors.orNil(); err != nil {
		return User{}, err
	}

	client := s.clients.Client(ctx, nil, http.MethodPost)
	response, err := gql.SignUp(ctx, client, gql.SignUpInput{
		Username:     input.Username,
		Email:        input.Email,
		Password:     input.Password,
		Language:     optional(input.Language),
		ReferralCode: optional(input.ReferralCode),
	})
	if err != nil {
		return User{}, fmt.Errorf("sign up: %w", err)
	}

	switch result := response.SignUp.(type) {
	case *gql.SignUpSignUpSignUpSuccess:
		if err := tokens.SetToken(ctx, result.Token); err != nil {
			return User{}, fmt.Errorf("store token: %w", err)
		}
		gql.ResetRequestCache(ctx)
		return mapUser(result.User), nil
	case *gql.SignUpSignUpFormErrors:
		return User{}, mapFormErrors(result.Errors)
	case nil:
		return User{}, errors.New("sign up: empty result")
	default:
		return User{}, fmt.Errorf("sign up: unexpected result %s", result.GetTypename())
	}
}

// RequestPasswordReset asks the backend to mail a reset link. Apart from validation errors it
// always succeeds, so the form never reveals whether an address is registered.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	formErrors := FormErrors{}
	validateEmail(formErrors, email, true)
	if err := formErrors.orNil(); err != nil {
		return err
	}

	client := s.clients.Client(ctx, nil, http.MethodPost)
	response, err := gql.RequestPasswordReset(ctx, client, email)
	if err != nil {
		s.logger.Warn("password reset request failed", zap.Error(err))
		return nil
	}
	if !response.RequestPasswordReset.Ok {
		s.logger.Info("password reset not accepted by backend")
	}
	return nil
}

type Settings struct {
	Email    string
	Language string
}

func (s *Service) UpdateSettings(ctx context.Context, tokens session.TokenStore, settings Settings) (User, error) {
	client := s.clients.Client(ctx, tokens, http.MethodPost)
	if !client.HasAccessToken {
		return User{}, ErrNotSignedIn
	}

	settings.Email = strings.TrimSpace(settings.Email)
	formErrors := FormErrors{}
	validateEmail(formErrors, settings.Email, false)
	if err := formErrors.orNil(); err != nil {
		return User{}, err
	}

	response, err := gql.UpdateSettings(ctx, client, gql.SettingsInput{
		Email:    optional(settings.Email),
		Language: optional(settings.Language),
	})
	if err != nil {
		if isGraphQLError(err) {
			return User{}, ErrNotSignedIn
		}
		return User{}, fmt.Errorf("update settings: %w", err)
	}

	switch result := response.UpdateSettings.(type) {
	case *gql.UpdateSettingsUpdateSettingsSettingsUpdated:
		return mapUser(result.User), nil
	case *gql.UpdateSettingsUpdateSettingsFormErrors:
		return User{}, mapFormErrors(result.Errors)
	case nil:
		return User{}, errors.New("update settings: empty result")
	default:
		return User{}, fmt.Errorf("update settings: unexpected result %s", result.GetTypename())
	}
}

func validateEmail(formErrors FormErrors, email string, required bool) {
	if email == "" {
		if required {
			formErrors.add("email", MessageRequired)
		}
		return
	}
	if _, err := mail.ParseAddress(email); err != nil {
		formErrors.add("email", MessageInvalid)
	}
}

func mapUser(source gql.User) User {
	user := User{
		ID:       source.Id,
		Username: source.Username,
		Points:   source.Points,
	}
	if source.Email != nil {
		user.Email = *source.Email
	}
	if source.Language != nil {
		user.Language = *source.Language
	}
	return user
}

func mapFormErrors(source []gql.FieldError) FormErrors {
	out := FormErrors{}
	for _, fieldError := range source {
		for _, message := range fieldError.Messages {
			out.add(fieldError.Field, message)
		}
	}
	if len(out) == 0 {
		out.add("", MessageInvalid)
	}
	return out
}

// isGraphQLError reports whether the backend answered with GraphQL errors rather than failing
// at the transport level.
func isGraphQLError(err error) bool {
	var list gqlerror.List
	if errors.As(err, &list) {
		return true
	}
	var single *gqlerror.Error
	return errors.As(err, &single)
}

func optional(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}
