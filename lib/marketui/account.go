// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package marketui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bureau-foundation/tripswap/lib/apiclient"
	"github.com/bureau-foundation/tripswap/lib/market"
)

// loginScreen collects credentials and stores the returned token in
// the session.
type loginScreen struct {
	env  *env
	form *form

	email    int
	password int
}

func newLoginScreen(environment *env) *loginScreen {
	screen := &loginScreen{env: environment, form: newForm("Log in", environment.keys, environment.theme)}
	screen.email = screen.form.addText("Email", environment.client.Session().Email(), "you@example.com")
	screen.password = screen.form.addPassword("Password")
	return screen
}

func (screen *loginScreen) init() tea.Cmd {
	if screen.form.value(screen.email) != "" {
		return screen.form.setFocus(screen.password)
	}
	return screen.form.start()
}

func (screen *loginScreen) update(message tea.Msg) tea.Cmd {
	switch message := message.(type) {
	case loginResultMsg:
		screen.form.busy = false
		if message.err != nil {
			screen.form.err = apiclient.UserMessage(message.err, apiclient.LoginFailedMessage)
			screen.env.logger.Debug("login failed", "error", message.err)
			return nil
		}
		if err := screen.env.client.Session().SignIn(message.token, message.email); err != nil {
			screen.form.err = "Could not save session: " + err.Error()
			return nil
		}
		return navigate(navigateMsg{to: routeHome, notice: "Welcome back."})

	case tea.KeyMsg:
		if key.Matches(message, screen.env.keys.SwitchAccount) {
			return navigate(navigateMsg{to: routeSignup})
		}
	}

	submit, cmd := screen.form.update(message)
	if !submit {
		return cmd
	}
	return screen.submit()
}

func (screen *loginScreen) submit() tea.Cmd {
	credentials := market.Credentials{
		Email:    screen.form.value(screen.email),
		Password: screen.form.value(screen.password),
	}
	if err := credentials.Validate(); err != nil {
		screen.form.err = err.Error()
		return nil
	}
	screen.form.err = ""
	screen.form.busy = true

	environment := screen.env
	return func() tea.Msg {
		response, err := environment.client.Login(environment.ctx, credentials)
		return loginResultMsg{email: credentials.Email, token: response.Token, err: err}
	}
}

func (screen *loginScreen) view(width, height int) string {
	return centered(screen.form.view(), width, height)
}

func (screen *loginScreen) help() string {
	return "Tab next  Enter log in  C-n create account"
}

func (screen *loginScreen) capturesText() bool { return true }

// signupScreen creates an account and sends the user to login.
type signupScreen struct {
	env  *env
	form *form

	name, email, phone, gender, password, confirm int
}

func newSignupScreen(environment *env) *signupScreen {
	screen := &signupScreen{env: environment, form: newForm("Create account", environment.keys, environment.theme)}
	screen.name = screen.form.addText("Name", "", "")
	screen.email = screen.form.addText("Email", "", "you@example.com")
	screen.phone = screen.form.addText("Phone", "", "")
	screen.gender = screen.form.addChoice("Gender", genderOptions(), genderLabels(), string(market.GenderMale))
	screen.password = screen.form.addPassword("Password")
	screen.confirm = screen.form.addPassword("Confirm password")
	return screen
}

func (screen *signupScreen) init() tea.Cmd {
	return screen.form.start()
}

func (screen *signupScreen) update(message tea.Msg) tea.Cmd {
	switch message := message.(type) {
	case signupResultMsg:
		screen.form.busy = false
		if message.err != nil {
			screen.form.err = apiclient.UserMessage(message.err, apiclient.SignupFailedMessage)
			return nil
		}
		return navigate(navigateMsg{to: routeLogin, notice: "Account created. Please log in."})

	case tea.KeyMsg:
		if key.Matches(message, screen.env.keys.SwitchAccount) {
			return navigate(navigateMsg{to: routeLogin})
		}
	}

	submit, cmd := screen.form.update(message)
	if !submit {
		return cmd
	}
	return screen.submit()
}

func (screen *signupScreen) submit() tea.Cmd {
	request := market.SignupRequest{
		Name:            screen.form.value(screen.name),
		Email:           screen.form.value(screen.email),
		Phone:           screen.form.value(screen.phone),
		Gender:          market.Gender(screen.form.value(screen.gender)),
		Password:        screen.form.value(screen.password),
		ConfirmPassword: screen.form.value(screen.confirm),
	}
	if err := request.Validate(); err != nil {
		if errors.Is(err, market.ErrPasswordMismatch) {
			screen.form.err = "Passwords do not match."
		} else {
			screen.form.err = err.Error()
		}
		return nil
	}
	screen.form.err = ""
	screen.form.busy = true

	environment := screen.env
	return func() tea.Msg {
		return signupResultMsg{err: environment.client.Signup(environment.ctx, request)}
	}
}

func (screen *signupScreen) view(width, height int) string {
	return centered(screen.form.view(), width, height)
}

func (screen *signupScreen) help() string {
	return "Tab next  ←→ gender  Enter sign up  C-n log in instead"
}

func (screen *signupScreen) capturesText() bool { return true }

func genderOptions() []string {
	options := make([]string, len(market.Genders))
	for index, gender := range market.Genders {
		options[index] = string(gender)
	}
	return options
}

func genderLabels() []string {
	labels := make([]string, len(market.Genders))
	for index, gender := range market.Genders {
		labels[index] = gender.Label()
	}
	return labels
}

func classOptions() []string {
	options := make([]string, len(market.Classes))
	for index, class := range market.Classes {
		options[index] = string(class)
	}
	return options
}

func classLabels() []string {
	labels := make([]string, len(market.Classes))
	for index, class := range market.Classes {
		labels[index] = class.Label()
	}
	return labels
}

// centered places a block in the middle of the body area.
func centered(block string, width, height int) string {
	placed := lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, block)
	return strings.TrimRight(placed, "\n")
}
