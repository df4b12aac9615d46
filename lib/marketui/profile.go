// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package marketui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bureau-foundation/tripswap/lib/apiclient"
	"github.com/bureau-foundation/tripswap/lib/listing"
	"github.com/bureau-foundation/tripswap/lib/market"
	"github.com/bureau-foundation/tripswap/lib/tui"
)

const (
	profileLoadFailedMessage = "Failed to load profile"
	profileSaveFailedMessage = "Failed to update profile"
)

// profileScreen shows the signed-in user's account record.
type profileScreen struct {
	env *env

	loading bool
	loaded  bool
	profile market.Profile
	err     string
}

func newProfileScreen(environment *env) *profileScreen {
	return &profileScreen{env: environment}
}

func (screen *profileScreen) init() tea.Cmd {
	return screen.fetch()
}

func (screen *profileScreen) fetch() tea.Cmd {
	screen.loading = true
	environment := screen.env
	return func() tea.Msg {
		profile, err := environment.client.Profile(environment.ctx)
		return profileLoadedMsg{profile: profile, err: err}
	}
}

func (screen *profileScreen) update(message tea.Msg) tea.Cmd {
	switch message := message.(type) {
	case profileLoadedMsg:
		screen.loading = false
		if message.err != nil {
			screen.loaded = false
			if apiclient.IsUnauthorized(message.err) {
				screen.err = listing.RedirectingMessage
				return redirectToLogin(screen.env.clock, screen.env.redirectDelay)
			}
			screen.err = apiclient.UserMessage(message.err, profileLoadFailedMessage)
			screen.env.logger.Warn("profile fetch failed", "error", message.err)
			return nil
		}
		screen.err = ""
		screen.loaded = true
		screen.profile = message.profile
		return nil

	case tea.KeyMsg:
		switch {
		case key.Matches(message, screen.env.keys.Refresh):
			return screen.fetch()
		case key.Matches(message, screen.env.keys.Edit):
			if screen.loaded {
				return navigate(navigateMsg{to: routeProfileEdit, profile: screen.profile})
			}
		}
	}
	return nil
}

func (screen *profileScreen) view(width, height int) string {
	theme := screen.env.theme
	faint := lipgloss.NewStyle().Foreground(theme.FaintText)

	switch {
	case screen.err != "":
		color := theme.ErrorForeground
		if screen.err == listing.RedirectingMessage {
			color = theme.WarningForeground
		}
		return centered(lipgloss.NewStyle().Foreground(color).Render(screen.err), width, height)
	case !screen.loaded:
		return centered(faint.Render("Loading profile..."), width, height)
	}
	return centered(renderProfile(theme, screen.profile), width, height)
}

func renderProfile(theme tui.Theme, profile market.Profile) string {
	title := lipgloss.NewStyle().Bold(true).Foreground(theme.HeaderForeground)
	label := lipgloss.NewStyle().Foreground(theme.FaintText)
	value := lipgloss.NewStyle().Foreground(theme.NormalText)

	const labelWidth = 16
	row := func(name, text string) string {
		if text == "" {
			text = "-"
		}
		return label.Render(padRight(name+":", labelWidth)) + value.Render(text)
	}

	image := "-"
	if profile.ProfileImage != "" {
		image = profile.ProfileImage
		if tui.IsWebURL(image) {
			image = tui.Hyperlink(image, lipgloss.NewStyle().Foreground(theme.LinkForeground).Underline(true).Render(image))
		}
	}

	lines := []string{
		title.Render(profile.Name),
		"",
		row("Email", profile.Email),
		row("Phone", profile.Phone),
		row("Gender", profile.Gender.Label()),
		row("Member since", profile.MemberSince()),
		row("Tickets sold", fmt.Sprint(profile.TicketsSold)),
		row("Tickets bought", fmt.Sprint(profile.TicketsBought)),
		label.Render(padRight("Picture:", labelWidth)) + image,
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.BorderColor).
		Padding(1, 3).
		Render(strings.Join(lines, "\n"))
}

func (screen *profileScreen) help() string {
	return "e edit  r refresh"
}

func (screen *profileScreen) capturesText() bool { return false }

// profileEditScreen edits name, phone, gender, and picture. Email is
// the account identity and is not editable.
type profileEditScreen struct {
	env  *env
	form *form

	name, phone, gender, image int
}

func newProfileEditScreen(environment *env, profile market.Profile) *profileEditScreen {
	screen := &profileEditScreen{env: environment, form: newForm("Edit profile", environment.keys, environment.theme)}
	gender := profile.Gender
	if gender == "" {
		gender = market.GenderMale
	}
	screen.name = screen.form.addText("Name", profile.Name, "full name")
	screen.phone = screen.form.addText("Phone", profile.Phone, "phone")
	screen.gender = screen.form.addChoice("Gender", genderOptions(), genderLabels(), string(gender))
	screen.image = screen.form.addText("Picture", profile.ProfileImage, "image URL")
	return screen
}

func (screen *profileEditScreen) init() tea.Cmd {
	return screen.form.start()
}

func (screen *profileEditScreen) update(message tea.Msg) tea.Cmd {
	switch message := message.(type) {
	case profileSavedMsg:
		screen.form.busy = false
		if message.err != nil {
			if apiclient.IsUnauthorized(message.err) {
				screen.form.err = listing.RedirectingMessage
				return redirectToLogin(screen.env.clock, screen.env.redirectDelay)
			}
			screen.form.err = apiclient.UserMessage(message.err, profileSaveFailedMessage)
			return nil
		}
		return navigate(navigateMsg{to: routeProfile, notice: "Profile updated."})

	case tea.KeyMsg:
		if key.Matches(message, screen.env.keys.Close) && !screen.form.busy {
			return navigate(navigateMsg{to: routeProfile})
		}
	}

	submit, cmd := screen.form.update(message)
	if !submit {
		return cmd
	}

	update := market.ProfileUpdate{
		Name:         screen.form.value(screen.name),
		Phone:        screen.form.value(screen.phone),
		Gender:       market.Gender(screen.form.value(screen.gender)),
		ProfileImage: screen.form.value(screen.image),
	}
	if err := update.Validate(); err != nil {
		screen.form.err = err.Error()
		return nil
	}
	screen.form.err = ""
	screen.form.busy = true
	environment := screen.env
	return func() tea.Msg {
		profile, err := environment.client.EditProfile(environment.ctx, update)
		return profileSavedMsg{profile: profile, err: err}
	}
}

func (screen *profileEditScreen) view(width, height int) string {
	return centered(screen.form.view(), width, height)
}

func (screen *profileEditScreen) help() string {
	return "Tab next  ←→ choose  C-s save  Esc cancel"
}

func (screen *profileEditScreen) capturesText() bool { return true }
