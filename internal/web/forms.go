package web

import (
	"errors"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/alexedwards/scs/v2"
	"go.uber.org/zap"
	"paskoocheh/internal/accounts"
	"paskoocheh/internal/locale"
	"paskoocheh/internal/routes"
	"paskoocheh/internal/web/appcore"
	"paskoocheh/internal/web/components"
)

// forms handles the POST side of the account pages. Successful submissions redirect; failed
// ones render the same page again with the visitor's input and the messages.
type forms struct {
	appCtx   *appcore.Context
	sessions *scs.SessionManager
	limiter  *loginLimiter
	logger   *zap.Logger
}

func (f *forms) signIn(w http.ResponseWriter, r *http.Request) {
	state := f.appCtx.ResolveRequest(r.Context(), r)
	returnTo := r.URL.Query().Get("return")
	if !f.parse(w, r) {
		return
	}

	values := map[string]string{"username": r.PostForm.Get("username")}
	renderForm := func(status int, form appcore.FormView) {
		form.Values = values
		view := appcore.NewSignInView(state, returnTo, form)
		f.render(w, r, status, view, components.SignInPage(view))
	}

	if !f.limiter.Allow(r) {
		renderForm(http.StatusTooManyRequests, appcore.FormView{Message: state.T.T("form.tooMany")})
		return
	}

	err := f.appCtx.Services().Accounts.SignIn(r.Context(), f.appCtx.Tokens(), r.PostForm.Get("username"), r.PostForm.Get("password"))
	var formErrors accounts.FormErrors
	switch {
	case err == nil:
		f.renew(r)
		http.Redirect(w, r, routes.SafeReturnPath(returnTo, routes.Build(routes.Home, state.Args())), http.StatusSeeOther)
	case errors.As(err, &formErrors):
		renderForm(http.StatusUnprocessableEntity, appcore.FormView{Errors: formErrors})
	case errors.Is(err, accounts.ErrInvalidCredentials):
		renderForm(http.StatusUnprocessableEntity, appcore.FormView{Message: state.T.T("signin.invalid")})
	default:
		f.logger.Error("sign in failed", zap.Error(err))
		renderForm(http.StatusBadGateway, appcore.FormView{Message: state.T.T("form.failed")})
	}
}

func (f *forms) signUp(w http.ResponseWriter, r *http.Request) {
	state := f.appCtx.ResolveRequest(r.Context(), r)
	if !f.parse(w, r) {
		return
	}

	input := accounts.SignUpInput{
		Username:        r.PostForm.Get("username"),
		Email:           r.PostForm.Get("email"),
		Password:        r.PostForm.Get("password"),
		PasswordConfirm: r.PostForm.Get("passwordConfirm"),
		Language:        string(state.Locale),
		ReferralCode:    strings.TrimSpace(r.PostForm.Get("referralCode")),
	}
	renderForm := func(status int, form appcore.FormView) {
		form.Values = map[string]string{
			"username":     input.Username,
			"email":        input.Email,
			"referralCode": input.ReferralCode,
		}
		view := appcore.NewSignUpView(state, form)
		f.render(w, r, status, view, components.SignUpPage(view))
	}

	if !f.limiter.Allow(r) {
		renderForm(http.StatusTooManyRequests, appcore.FormView{Message: state.T.T("form.tooMany")})
		return
	}

	_, err := f.appCtx.Services().Accounts.SignUp(r.Context(), f.appCtx.Tokens(), input)
	var formErrors accounts.FormErrors
	switch {
	case err == nil:
		f.renew(r)
		http.Redirect(w, r, routes.Build(routes.Home, state.Args()), http.StatusSeeOther)
	case errors.As(err, &formErrors):
		renderForm(http.StatusUnprocessableEntity, appcore.FormView{Errors: formErrors})
	default:
		f.logger.Error("sign up failed", zap.Error(err))
		renderForm(http.StatusBadGateway, appcore.FormView{Message: state.T.T("form.failed")})
	}
}

func (f *forms) resetPassword(w http.ResponseWriter, r *http.Request) {
	state := f.appCtx.ResolveRequest(r.Context(), r)
	if !f.parse(w, r) {
		return
	}

	email := r.PostForm.Get("email")
	renderForm := func(status int, form appcore.FormView) {
		form.Values = map[string]string{"email": email}
		view := appcore.NewResetView(state, form, false)
		f.render(w, r, status, view, components.ResetPasswordPage(view))
	}

	if !f.limiter.Allow(r) {
		renderForm(http.StatusTooManyRequests, appcore.FormView{Message: state.T.T("form.tooMany")})
		return
	}

	err := f.appCtx.Services().Accounts.RequestPasswordReset(r.Context(), email)
	var formErrors accounts.FormErrors
	switch {
	case err == nil:
		http.Redirect(w, r, appcore.WithFlag(routes.Build(routes.ResetPassword, state.Args()), appcore.FlagSent), http.StatusSeeOther)
	case errors.As(err, &formErrors):
		renderForm(http.StatusUnprocessableEntity, appcore.FormView{Errors: formErrors})
	default:
		f.logger.Error("password reset failed", zap.Error(err))
		renderForm(http.StatusBadGateway, appcore.FormView{Message: state.T.T("form.failed")})
	}
}

// settings saves the profile. A changed language moves the visitor to that locale.
func (f *forms) settings(w http.ResponseWriter, r *http.Request) {
	state := f.appCtx.ResolveRequest(r.Context(), r)
	if !f.parse(w, r) {
		return
	}

	settings := accounts.Settings{
		Email:    r.PostForm.Get("email"),
		Language: strings.TrimSpace(r.PostForm.Get("language")),
	}
	if settings.Language != "" {
		if _, ok := locale.Parse(settings.Language); !ok {
			settings.Language = ""
		}
	}
	renderForm := func(status int, form appcore.FormView) {
		form.Values = map[string]string{"email": settings.Email, "language": settings.Language}
		view := appcore.NewSettingsView(state, form, false)
		f.render(w, r, status, view, components.SettingsPage(view))
	}

	user, err := f.appCtx.Services().Accounts.UpdateSettings(r.Context(), f.appCtx.Tokens(), settings)
	var formErrors accounts.FormErrors
	switch {
	case err == nil:
		args := state.Args()
		if code, ok := locale.Parse(user.Language); ok {
			args.Locale = code
		}
		http.Redirect(w, r, appcore.WithFlag(routes.Build(routes.Settings, args), appcore.FlagSaved), http.StatusSeeOther)
	case errors.Is(err, accounts.ErrNotSignedIn):
		args := state.Args()
		args.ReturnTo = routes.Build(routes.Settings, state.Args())
		http.Redirect(w, r, routes.Build(routes.SignIn, args), http.StatusSeeOther)
	case errors.As(err, &formErrors):
		renderForm(http.StatusUnprocessableEntity, appcore.FormView{Errors: formErrors})
	default:
		f.logger.Error("update settings failed", zap.Error(err))
		renderForm(http.StatusBadGateway, appcore.FormView{Message: state.T.T("form.failed")})
	}
}

func (f *forms) signOut(w http.ResponseWriter, r *http.Request) {
	code, ok := locale.FromPath(r.URL.Path)
	if !ok {
		code = f.appCtx.Settings().Defaults.Locale
	}

	if err := f.appCtx.Services().Accounts.SignOut(r.Context(), f.appCtx.Tokens()); err != nil {
		f.logger.Error("sign out failed", zap.Error(err))
	}
	f.renew(r)
	http.Redirect(w, r, routes.Build(routes.Home, routes.Args{Locale: code}), http.StatusSeeOther)
}

func (f *forms) parse(w http.ResponseWriter, r *http.Request) bool {
	if err := r.ParseForm(); err != nil {
		setCacheControl(w, cacheControlPrivate)
		http.Error(w, "invalid form", http.StatusBadRequest)
		return false
	}
	return true
}

// renew issues a new session id when the visitor's identity changes.
func (f *forms) renew(r *http.Request) {
	if f.sessions == nil {
		return
	}
	if err := f.sessions.RenewToken(r.Context()); err != nil {
		f.logger.Warn("renew session", zap.Error(err))
	}
}

func (f *forms) render(w http.ResponseWriter, r *http.Request, status int, view appcore.Layout, page templ.Component) {
	setCacheControl(w, cacheControlPrivate)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := components.Layout(view, page).Render(r.Context(), w); err != nil {
		f.logger.Error("render form page", zap.String("path", r.URL.Path), zap.Error(err))
	}
}
