// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package marketui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/bureau-foundation/tripswap/lib/apiclient"
	"github.com/bureau-foundation/tripswap/lib/clock"
	"github.com/bureau-foundation/tripswap/lib/listing"
	"github.com/bureau-foundation/tripswap/lib/market"
	"github.com/bureau-foundation/tripswap/lib/tui"
)

// DefaultRedirectDelay is the pause between a rejected token and the
// jump to the login screen.
const DefaultRedirectDelay = 1500 * time.Millisecond

// Options configures a [Model].
type Options struct {
	// Client performs every API call. Required.
	Client *apiclient.Client

	// Context bounds API calls. Nil means context.Background().
	Context context.Context

	// Clock supplies today's date and the redirect timer. Nil means
	// clock.Real().
	Clock clock.Clock

	// RedirectDelay is the pause before navigating to login after a
	// 401. Zero means DefaultRedirectDelay.
	RedirectDelay time.Duration

	// PriceCeiling is the listing view's initial maximum price. Zero
	// means listing.MaxPriceCeiling.
	PriceCeiling decimal.Decimal

	// Defaults pre-fills optional fields of the create form.
	Defaults market.TicketInput

	// Theme and Keys default to tui.DefaultTheme and DefaultKeyMap.
	Theme *tui.Theme
	Keys  *KeyMap

	// Logger receives background events. Pair it with a
	// [TUILogHandler] so records reach the status bar.
	Logger *slog.Logger
}

// env is what every screen needs from the router.
type env struct {
	ctx           context.Context
	client        *apiclient.Client
	clock         clock.Clock
	redirectDelay time.Duration
	priceCeiling  decimal.Decimal
	defaults      market.TicketInput
	theme         tui.Theme
	keys          KeyMap
	logger        *slog.Logger

	// listingTags and myTicketsTags outlive the screens, which are
	// rebuilt on every navigation, so a response to an earlier mount
	// never counts as the latest.
	listingTags   listing.Sequencer
	myTicketsTags listing.Sequencer

	// bodyWidth and bodyHeight are the screen area below the header,
	// updated on every resize.
	bodyWidth  int
	bodyHeight int
}

// screen is one page of the application.
type screen interface {
	// init returns the commands to run when the screen is shown.
	init() tea.Cmd

	// update handles a message while the screen is current.
	update(message tea.Msg) tea.Cmd

	// view renders the screen body into width x height cells.
	view(width, height int) string

	// help returns the key hints for the status bar.
	help() string

	// capturesText reports whether typed characters belong to the
	// screen (a focused form field or the quick search input), which
	// disables single-letter global bindings.
	capturesText() bool
}

// Model is the root bubbletea model. It routes messages to the current
// screen and draws the header and status bar around it.
type Model struct {
	env *env

	current      screen
	currentRoute route

	// myTickets is kept across an edit so a successful update can
	// patch it in place and a conflict can mark it stale.
	myTickets *myTicketsScreen

	width  int
	height int

	notice           string
	noticeIsError    bool
	noticeGeneration int
}

// NewModel creates the root model. It starts on the home screen when
// the client's session holds a token, and on login otherwise.
func NewModel(options Options) Model {
	environment := &env{
		ctx:           options.Context,
		client:        options.Client,
		clock:         options.Clock,
		redirectDelay: options.RedirectDelay,
		priceCeiling:  options.PriceCeiling,
		defaults:      options.Defaults,
		theme:         tui.DefaultTheme,
		keys:          DefaultKeyMap,
		logger:        options.Logger,
	}
	if environment.ctx == nil {
		environment.ctx = context.Background()
	}
	if environment.clock == nil {
		environment.clock = clock.Real()
	}
	if environment.redirectDelay == 0 {
		environment.redirectDelay = DefaultRedirectDelay
	}
	if environment.priceCeiling.IsZero() {
		environment.priceCeiling = listing.MaxPriceCeiling
	}
	if options.Theme != nil {
		environment.theme = *options.Theme
	}
	if options.Keys != nil {
		environment.keys = *options.Keys
	}
	if environment.logger == nil {
		environment.logger = slog.New(slog.DiscardHandler)
	}

	model := Model{env: environment, width: 100, height: 30}
	environment.bodyWidth = model.width
	environment.bodyHeight = model.bodyHeight()
	start := navigateMsg{to: routeLogin}
	if options.Client.Session().Authenticated() {
		start = navigateMsg{to: routeHome}
	}
	model.current, model.myTickets = model.build(start)
	model.currentRoute = start.to
	return model
}

// Init implements tea.Model.
func (model Model) Init() tea.Cmd {
	return model.current.init()
}

// Route returns the name of the current screen.
func (model Model) Route() string {
	return model.currentRoute.String()
}

// Update implements tea.Model.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		model.env.bodyWidth = message.Width
		model.env.bodyHeight = model.bodyHeight()
		return model, nil

	case navigateMsg:
		return model.navigate(message)

	case noticeMsg:
		return model.setNotice(message.text, message.isError)

	case noticeFadeMsg:
		if message.generation == model.noticeGeneration {
			model.notice = ""
		}
		return model, nil

	case logRecordMsg:
		return model.setNotice(message.Summary, message.Level >= slog.LevelError)

	case myTicketsLoadedMsg, ticketDeletedMsg:
		// An edit opened from my tickets keeps that screen alive, and its
		// results still belong to it.
		if model.myTickets != nil {
			return model, model.myTickets.update(message)
		}

	case logoutResultMsg:
		if message.err != nil {
			model.env.logger.Warn("logout request failed; local session cleared", "error", message.err)
		}
		return model.navigate(navigateMsg{to: routeLogin, notice: "Signed out."})

	case tea.KeyMsg:
		if key.Matches(message, model.env.keys.ForceQuit) {
			return model, tea.Quit
		}
		if model.current.capturesText() && message.Type == tea.KeyRunes {
			return model, model.current.update(message)
		}
		if next, cmd, handled := model.handleGlobalKey(message); handled {
			return next, cmd
		}
	}
	return model, model.current.update(message)
}

// handleGlobalKey handles quit and cross-screen navigation.
func (model Model) handleGlobalKey(message tea.KeyMsg) (Model, tea.Cmd, bool) {
	keys := model.env.keys
	if key.Matches(message, keys.Quit) {
		return model, tea.Quit, true
	}
	if model.public() {
		return model, nil, false
	}

	var target route
	switch {
	case key.Matches(message, keys.GoHome):
		target = routeHome
	case key.Matches(message, keys.GoBrowse):
		target = routeTickets
	case key.Matches(message, keys.GoMine):
		target = routeMyTickets
	case key.Matches(message, keys.GoSell):
		target = routeCreate
	case key.Matches(message, keys.GoProfile):
		target = routeProfile
	case key.Matches(message, keys.Logout):
		return model, model.logout(), true
	default:
		return model, nil, false
	}
	if target == model.currentRoute {
		return model, nil, true
	}
	next, cmd := model.navigate(navigateMsg{to: target})
	return next.(Model), cmd, true
}

// public reports whether the current screen is usable signed out.
func (model Model) public() bool {
	return model.currentRoute == routeLogin || model.currentRoute == routeSignup
}

func (model Model) logout() tea.Cmd {
	environment := model.env
	return func() tea.Msg {
		return logoutResultMsg{err: environment.client.Logout(environment.ctx)}
	}
}

func (model Model) navigate(message navigateMsg) (tea.Model, tea.Cmd) {
	model.env.logger.Debug("navigate", "from", model.currentRoute.String(), "to", message.to.String())

	var cmds []tea.Cmd
	if message.to == routeMyTickets && message.resume && model.myTickets != nil {
		model.current = model.myTickets
		cmds = append(cmds, model.myTickets.resume())
	} else {
		var retained *myTicketsScreen
		model.current, retained = model.build(message)
		if retained != nil || message.to != routeEdit {
			model.myTickets = retained
		}
		cmds = append(cmds, model.current.init())
	}
	model.currentRoute = message.to

	if message.notice != "" {
		next, cmd := model.setNotice(message.notice, false)
		model = next.(Model)
		cmds = append(cmds, cmd)
	}
	return model, tea.Batch(cmds...)
}

// build constructs the screen for a navigation. The second result is
// the my-tickets screen to retain, if the new screen is one.
func (model Model) build(message navigateMsg) (screen, *myTicketsScreen) {
	switch message.to {
	case routeSignup:
		return newSignupScreen(model.env), nil
	case routeHome:
		return newHomeScreen(model.env), nil
	case routeTickets:
		return newListingScreen(model.env, message.search), nil
	case routeMyTickets:
		mine := newMyTicketsScreen(model.env)
		return mine, mine
	case routeCreate:
		return newCreateScreen(model.env), nil
	case routeEdit:
		return newEditScreen(model.env, message.ticket, model.myTickets), nil
	case routeProfile:
		return newProfileScreen(model.env), nil
	case routeProfileEdit:
		return newProfileEditScreen(model.env, message.profile), nil
	default:
		return newLoginScreen(model.env), nil
	}
}

func (model Model) setNotice(text string, isError bool) (tea.Model, tea.Cmd) {
	model.notice = text
	model.noticeIsError = isError
	model.noticeGeneration++
	generation := model.noticeGeneration
	return model, tea.Tick(noticeFadeDelay, func(time.Time) tea.Msg {
		return noticeFadeMsg{generation: generation}
	})
}

// View implements tea.Model.
func (model Model) View() string {
	header := model.renderHeader()
	status := model.renderStatus()
	bodyHeight := model.bodyHeight()
	body := tui.FitHeight(model.current.view(model.width, bodyHeight), bodyHeight)

	separator := lipgloss.NewStyle().
		Foreground(model.env.theme.BorderColor).
		Render(strings.Repeat("─", max(model.width, 1)))
	return strings.Join([]string{header, body, separator, status}, "\n")
}

// bodyHeight is the height left for the screen after the one-line
// header, the separator, and the status bar.
func (model Model) bodyHeight() int {
	return max(model.height-3, 1)
}

var tabs = []struct {
	route route
	label string
}{
	{routeHome, "Home"},
	{routeTickets, "Browse"},
	{routeMyTickets, "My Tickets"},
	{routeCreate, "Sell"},
	{routeProfile, "Profile"},
}

func (model Model) renderHeader() string {
	theme := model.env.theme
	brand := lipgloss.NewStyle().Bold(true).Foreground(theme.AccentForeground).Render(" tripswap ")
	if model.public() {
		return brand
	}

	activeStyle := lipgloss.NewStyle().Bold(true).
		Foreground(theme.SelectedForeground).
		Background(theme.SelectedBackground)
	inactiveStyle := lipgloss.NewStyle().Foreground(theme.FaintText)

	parts := []string{brand}
	for index, tab := range tabs {
		label := fmt.Sprintf(" F%d %s ", index+1, tab.label)
		active := tab.route == model.currentRoute ||
			(tab.route == routeMyTickets && model.currentRoute == routeEdit) ||
			(tab.route == routeProfile && model.currentRoute == routeProfileEdit)
		if active {
			parts = append(parts, activeStyle.Render(label))
		} else {
			parts = append(parts, inactiveStyle.Render(label))
		}
	}
	if email := model.env.client.Session().Email(); email != "" {
		parts = append(parts, inactiveStyle.Render("  "+email))
	}
	return strings.Join(parts, "")
}

func (model Model) renderStatus() string {
	theme := model.env.theme
	if model.notice != "" {
		style := lipgloss.NewStyle().Foreground(theme.SuccessForeground).Bold(true)
		if model.noticeIsError {
			style = lipgloss.NewStyle().Foreground(theme.ErrorForeground).Bold(true)
		}
		return " " + style.Render(model.notice)
	}

	help := " " + model.current.help()
	if !model.public() {
		help += "  F10 logout"
	}
	help += "  q quit"
	return lipgloss.NewStyle().Foreground(theme.HelpText).MaxWidth(max(model.width, 1)).Render(help)
}

// Run starts the TUI program on the alternate screen and blocks until
// the user quits. If handler is non-nil it is attached to the program
// so log records reach the status bar.
func Run(options Options, handler *TUILogHandler) error {
	program := tea.NewProgram(NewModel(options), tea.WithAltScreen(), tea.WithContext(contextOrBackground(options.Context)))
	if handler != nil {
		handler.SetProgram(program)
	}
	_, err := program.Run()
	return err
}

func contextOrBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
