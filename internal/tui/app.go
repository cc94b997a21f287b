package tui

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"wordquest/internal/tui/api"
	"wordquest/internal/tui/config"
	"wordquest/internal/tui/focus"
	"wordquest/internal/tui/styles"
	"wordquest/internal/tui/views"
)

// View represents different screens in the TUI
type View int

const (
	ViewAuth View = iota
	ViewDashboard
	ViewBrowse
	ViewMissions
)

// Model is the root Bubble Tea model
type Model struct {
	// Configuration
	config *config.Config

	// API client
	apiClient *api.Client

	// Live event feed (achievements, unlocks)
	eventsClient *api.EventsClient

	// Focus manager
	focusManager *focus.Manager

	// Current view
	currentView  View
	previousView View

	// Key bindings
	keys KeyMap

	// Window dimensions
	width  int
	height int

	// User state
	isAuthenticated bool
	currentUser     string
	currentUserID   string
	token           string

	// Latest feed notification shown in the status bar
	notification string

	// View models
	authModel      views.AuthModel
	dashboardModel views.DashboardModel
	browseModel    views.BrowseModel
	missionsModel  views.MissionsModel

	// Error state
	err error
}

// New creates a new TUI application
func New(cfg *config.Config) *Model {
	apiClient := api.NewClient(cfg.GetHTTPBaseURL())
	focusMgr := focus.NewManager()

	m := &Model{
		config:          cfg,
		apiClient:       apiClient,
		focusManager:    focusMgr,
		currentView:     ViewAuth,
		keys:            DefaultKeyMap(),
		isAuthenticated: false,
	}

	// Initialize view models
	m.authModel = views.NewAuthModel(apiClient)
	m.dashboardModel = views.NewDashboardModel(apiClient)
	m.browseModel = views.NewBrowseModel(apiClient)
	m.missionsModel = views.NewMissionsModel(apiClient)

	return m
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return m.authModel.Init()
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		// Propagate to views
		m.authModel, _ = m.authModel.Update(msg)
		m.dashboardModel, _ = m.dashboardModel.Update(msg)
		m.browseModel, _ = m.browseModel.Update(msg)
		m.missionsModel, _ = m.missionsModel.Update(msg)
		return m, nil

	case tea.KeyMsg:
		// Global key bindings (only when not in input mode)
		switch {
		case key.Matches(msg, m.keys.Quit):
			if m.eventsClient != nil {
				m.eventsClient.Close()
			}
			return m, tea.Quit

		case key.Matches(msg, m.keys.Dashboard):
			if m.isAuthenticated && m.currentView != ViewAuth {
				m.previousView = m.currentView
				m.currentView = ViewDashboard
				return m, m.dashboardModel.Init()
			}

		case key.Matches(msg, m.keys.Books):
			if m.isAuthenticated && m.currentView != ViewAuth {
				m.previousView = m.currentView
				m.currentView = ViewBrowse
				return m, m.browseModel.Init()
			}
		}

	// Handle auth messages
	case views.AuthSuccessMsg:
		m.isAuthenticated = true
		m.currentUser = msg.Username
		m.token = msg.Token
		m.apiClient.SetToken(msg.Token)
		if msg.User != nil {
			m.currentUserID = msg.User.ID
		}
		m.currentView = ViewDashboard
		return m, tea.Batch(m.dashboardModel.Init(), m.connectEvents())

	case views.AuthErrorMsg:
		m.err = msg.Err
		return m, nil

	// Handle navigation from views
	case views.SelectBookMsg:
		m.previousView = m.currentView
		m.currentView = ViewMissions
		return m, m.missionsModel.SetBook(msg.BookID, msg.Title)

	// Live feed events
	case feedConnectedMsg:
		m.eventsClient = msg.client
		return m, m.waitForEvent()

	case feedEventMsg:
		m.notification = describeEvent(msg.event)
		var cmd tea.Cmd
		// Refresh the dashboard when an achievement lands while it is visible
		if msg.event.Type == "achievement_unlocked" && m.currentView == ViewDashboard {
			cmd = m.dashboardModel.Init()
		}
		return m, tea.Batch(cmd, m.waitForEvent())

	case feedClosedMsg:
		m.eventsClient = nil
		return m, nil
	}

	// Route to current view
	return m.updateCurrentView(msg)
}

// updateCurrentView routes updates to the active view
func (m Model) updateCurrentView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewAuth:
		m.authModel, cmd = m.authModel.Update(msg)
	case ViewDashboard:
		m.dashboardModel, cmd = m.dashboardModel.Update(msg)
	case ViewBrowse:
		m.browseModel, cmd = m.browseModel.Update(msg)
	case ViewMissions:
		m.missionsModel, cmd = m.missionsModel.Update(msg)
	}

	return m, cmd
}

// View renders the UI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	// Render current view
	var content string
	switch m.currentView {
	case ViewAuth:
		content = m.authModel.View()
	case ViewDashboard:
		content = m.dashboardModel.View()
	case ViewBrowse:
		content = m.browseModel.View()
	case ViewMissions:
		content = m.missionsModel.View()
	default:
		content = "Unknown view"
	}

	// Add status bar if authenticated
	var statusBar string
	if m.isAuthenticated {
		statusBar = m.renderStatusBar()
	}

	// Apply app style and combine
	return styles.AppStyle.Render(content + "\n\n" + statusBar)
}

// renderStatusBar renders the bottom status bar
func (m Model) renderStatusBar() string {
	// Current view name
	viewName := ""
	switch m.currentView {
	case ViewDashboard:
		viewName = "Dashboard"
	case ViewBrowse:
		viewName = "Books"
	case ViewMissions:
		viewName = "Missions"
	}

	left := styles.StatusBarActiveStyle.Render("● " + viewName)
	if m.notification != "" {
		left += "  " + styles.BadgeSuccessStyle.Render(m.notification)
	}
	right := styles.StatusBarStyle.Render("User: " + m.currentUser + " | 1-2 views | ? help | q quit")

	// Calculate spacing
	spacing := m.width - len(left) - len(right) - 4
	if spacing < 0 {
		spacing = 0
	}
	spaces := ""
	for i := 0; i < spacing; i++ {
		spaces += " "
	}

	return left + spaces + right
}

// connectEvents dials the WebSocket event feed after login
func (m Model) connectEvents() tea.Cmd {
	wsURL := m.config.GetWebSocketURL()
	token := m.token
	return func() tea.Msg {
		client := api.NewEventsClient(wsURL, token)
		if err := client.Connect(); err != nil {
			// The feed is a nicety; the TUI works without it
			return feedClosedMsg{}
		}
		return feedConnectedMsg{client: client}
	}
}

// waitForEvent blocks on the next feed event
func (m Model) waitForEvent() tea.Cmd {
	client := m.eventsClient
	if client == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-client.Events()
		if !ok {
			return feedClosedMsg{}
		}
		return feedEventMsg{event: ev}
	}
}

// describeEvent turns a feed event into a short status-bar notice
func describeEvent(ev api.FeedEvent) string {
	switch ev.Type {
	case "achievement_unlocked":
		var p api.AchievementPayload
		if err := json.Unmarshal(ev.Payload, &p); err == nil && p.Title != "" {
			return fmt.Sprintf("🏆 %s (+%d pts)", p.Title, p.Points)
		}
		return "🏆 Achievement unlocked!"
	case "mission_unlocked":
		return "🔓 New mission unlocked!"
	default:
		return ""
	}
}

// Messages

// feedConnectedMsg carries the live events client once connected
type feedConnectedMsg struct {
	client *api.EventsClient
}

// feedEventMsg wraps a single feed event
type feedEventMsg struct {
	event api.FeedEvent
}

// feedClosedMsg signals the feed connection ended
type feedClosedMsg struct{}

// ErrorMsg is sent when an error occurs
type ErrorMsg struct {
	Err error
}

// Login authenticates against the API and reports the result as a message
func (m *Model) Login(username, password string) tea.Cmd {
	return func() tea.Msg {
		resp, err := m.apiClient.Login(context.Background(), username, password)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return views.AuthSuccessMsg{
			Username: resp.User.Username,
			Token:    resp.Token,
			User:     &resp.User,
		}
	}
}

// Register creates an account then logs in
func (m *Model) Register(username, email, name, password string) tea.Cmd {
	return func() tea.Msg {
		resp, err := m.apiClient.Register(context.Background(), username, email, name, password)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return views.AuthSuccessMsg{
			Username: resp.User.Username,
			Token:    resp.Token,
			User:     &resp.User,
		}
	}
}
