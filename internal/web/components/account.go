package components

import (
	"github.com/a-h/templ"
	"paskoocheh/internal/i18n"
	"paskoocheh/internal/locale"
	"paskoocheh/internal/web/appcore"
)

type field struct {
	name         string
	label        string
	kind         string
	autocomplete string
	required     bool
}

func SignInPage(view appcore.SignInView) templ.Component {
	t := view.T

	return component(func(h *html) {
		h.el("h1", t.T("signin.title"))
		form(h, t, view.Form, t.T("signin.submit"), []field{
			{name: "username", label: t.T("signin.username"), kind: "text", autocomplete: "username", required: true},
			{name: "password", label: t.T("signin.password"), kind: "password", autocomplete: "current-password", required: true},
		})
		h.open("p", "class", "form-links")
		h.link(view.ResetURL, t.T("signin.forgot"))
		h.raw(" ")
		h.link(view.SignUpURL, t.T("signin.noAccount"))
		h.close("p")
	})
}

func SignUpPage(view appcore.SignUpView) templ.Component {
	t := view.T

	return component(func(h *html) {
		h.el("h1", t.T("signup.title"))
		form(h, t, view.Form, t.T("signup.submit"), []field{
			{name: "username", label: t.T("signin.username"), kind: "text", autocomplete: "username", required: true},
			{name: "email", label: t.T("signup.email"), kind: "email", autocomplete: "email", required: true},
			{name: "password", label: t.T("signin.password"), kind: "password", autocomplete: "new-password", required: true},
			{name: "passwordConfirm", label: t.T("signup.passwordConfirm"), kind: "password", autocomplete: "new-password", required: true},
			{name: "referralCode", label: t.T("signup.referralCode"), kind: "text", autocomplete: "off"},
		})
		h.open("p", "class", "form-links")
		h.link(view.SignInURL, t.T("signup.haveAccount"))
		h.close("p")
	})
}

func ResetPasswordPage(view appcore.ResetView) templ.Component {
	t := view.T

	return component(func(h *html) {
		h.el("h1", t.T("reset.title"))
		if view.Sent {
			h.el("p", t.T("reset.sent"), "class", "notice", "role", "status")
			return
		}
		form(h, t, view.Form, t.T("reset.submit"), []field{
			{name: "email", label: t.T("signup.email"), kind: "email", autocomplete: "email", required: true},
		})
	})
}

func SettingsPage(view appcore.SettingsView) templ.Component {
	t := view.T

	return component(func(h *html) {
		h.el("h1", t.T("settings.title"))
		if view.Saved {
			h.el("p", t.T("settings.saved"), "class", "notice", "role", "status")
		}

		formStart(h, t, view.Form)
		input(h, t, view.Form, field{name: "email", label: t.T("signup.email"), kind: "email", autocomplete: "email"})

		h.open("div", "class", "field")
		h.el("label", t.T("settings.language"), "for", "field-language")
		h.open("select", "id", "field-language", "name", "language")
		current := view.Form.Value("language")
		for _, code := range locale.Supported() {
			selected := ""
			if string(code) == current {
				selected = "selected"
			}
			h.el("option", languageName(code), "value", string(code), selected, "")
		}
		h.close("select")
		fieldErrors(h, t, view.Form, "language")
		h.close("div")

		h.el("button", t.T("settings.submit"), "type", "submit")
		h.close("form")
	})
}

func RewardsPage(view appcore.RewardsView) templ.Component {
	t := view.T
	summary := view.Summary

	return component(func(h *html) {
		h.el("h1", t.T("rewards.title"))

		h.open("section", "class", "points")
		h.el("h2", t.T("rewards.points"))
		h.el("p", t.Number(summary.Points), "class", "total")
		if summary.Tier != nil {
			h.el("p", t.T("rewards.currentTier")+": "+summary.Tier.Name)
		}
		if summary.NextTier != nil {
			h.el("p", t.T("rewards.nextTier")+": "+summary.NextTier.Name+" ("+t.Number(summary.ToNextTier)+")")
		}
		h.close("section")

		if len(summary.Tiers) > 0 {
			h.open("section", "class", "tiers")
			h.el("h2", t.T("rewards.tiers"))
			h.open("ol")
			for _, tier := range summary.Tiers {
				if summary.Tier != nil && summary.Tier.Name == tier.Name {
					h.open("li", "aria-current", "true")
				} else {
					h.open("li")
				}
				h.text(tier.Name + " · " + t.Number(tier.Threshold))
				h.close("li")
			}
			h.close("ol")
			h.close("section")
		}

		if summary.Referral != nil {
			h.open("section", "class", "referral")
			h.el("h2", t.T("rewards.referral"))
			h.el("p", t.T("rewards.referralCode")+": "+summary.Referral.Code)
			h.el("p", t.T("rewards.referralCount")+": "+t.Number(summary.Referral.Count))
			if summary.Referral.Link != "" {
				h.open("input", "type", "text", "readonly", "readonly", "value", summary.Referral.Link,
					"aria-label", t.T("rewards.referral"))
			}
			h.close("section")
		}

		if len(summary.History) > 0 {
			h.open("section", "class", "history")
			h.el("h2", t.T("rewards.history"))
			h.open("ul")
			for _, entry := range summary.History {
				h.open("li")
				h.el("time", shortDate(entry.CreatedAt), "datetime", entry.CreatedAt)
				h.text(" " + entry.Reason + " ")
				h.el("strong", t.Number(entry.Points))
				h.close("li")
			}
			h.close("ul")
			h.close("section")
		}
	})
}

func form(h *html, t i18n.Translator, view appcore.FormView, submit string, fields []field) {
	formStart(h, t, view)
	for _, f := range fields {
		input(h, t, view, f)
	}
	h.el("button", submit, "type", "submit")
	h.close("form")
}

// formStart opens the form and writes the form-wide messages.
func formStart(h *html, t i18n.Translator, view appcore.FormView) {
	h.open("form", "method", "post", "action", view.Action, "novalidate", "")
	if view.Message != "" {
		h.el("p", view.Message, "class", "form-error", "role", "alert")
	}
	for _, message := range view.FieldErrors(t, "") {
		h.el("p", message, "class", "form-error", "role", "alert")
	}
}

func input(h *html, t i18n.Translator, view appcore.FormView, f field) {
	id := "field-" + f.name
	value := ""
	if f.kind != "password" {
		value = view.Value(f.name)
	}
	required := ""
	if f.required {
		required = "required"
	}
	invalid := ""
	if len(view.Errors[f.name]) > 0 {
		invalid = "aria-invalid"
	}

	h.open("div", "class", "field")
	h.el("label", f.label, "for", id)
	h.open("input", "id", id, "name", f.name, "type", f.kind, "value", value,
		"autocomplete", f.autocomplete, required, "", invalid, "true",
		"aria-describedby", id+"-errors")
	fieldErrors(h, t, view, f.name)
	h.close("div")
}

func fieldErrors(h *html, t i18n.Translator, view appcore.FormView, name string) {
	messages := view.FieldErrors(t, name)
	h.open("ul", "id", "field-"+name+"-errors", "class", "field-errors")
	for _, message := range messages {
		h.el("li", message)
	}
	h.close("ul")
}

func languageName(code locale.Code) string {
	switch code {
	case locale.Farsi:
		return "فارسی"
	default:
		return "English"
	}
}
