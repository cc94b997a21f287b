package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"wordquest/internal/tui/api"
	"wordquest/internal/tui/styles"
	"wordquest/pkg/models"
)

// DashboardModel displays the player's standing, the leaderboard and achievements
type DashboardModel struct {
	apiClient *api.Client

	// Data
	rank         *models.UserRank
	leaderboard  []models.LeaderboardEntry
	achievements []models.Achievement

	// State
	loading     bool
	err         error
	selectedTab int // 0 = leaderboard, 1 = achievements
	cursor      int

	// Window size
	width  int
	height int
}

// NewDashboardModel creates a new dashboard model
func NewDashboardModel(apiClient *api.Client) DashboardModel {
	return DashboardModel{
		apiClient:   apiClient,
		selectedTab: 0,
		cursor:      0,
	}
}

// Init initializes and loads data
func (m DashboardModel) Init() tea.Cmd {
	return tea.Batch(m.loadRank(), m.loadLeaderboard(), m.loadAchievements())
}

// Update handles messages
func (m DashboardModel) Update(msg tea.Msg) (DashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, key.NewBinding(key.WithKeys("tab"))):
			m.selectedTab = (m.selectedTab + 1) % 2
			m.cursor = 0
			return m, nil

		case key.Matches(msg, key.NewBinding(key.WithKeys("j", "down"))):
			m.cursor++
			m.clampCursor()
			return m, nil

		case key.Matches(msg, key.NewBinding(key.WithKeys("k", "up"))):
			m.cursor--
			m.clampCursor()
			return m, nil

		case key.Matches(msg, key.NewBinding(key.WithKeys("r"))):
			m.loading = true
			return m, tea.Batch(m.loadRank(), m.loadLeaderboard(), m.loadAchievements())
		}

	case RankLoadedMsg:
		m.rank = msg.Rank
		return m, nil

	case LeaderboardLoadedMsg:
		m.loading = false
		m.leaderboard = msg.Entries
		return m, nil

	case AchievementsLoadedMsg:
		m.loading = false
		m.achievements = msg.Achievements
		return m, nil

	case DashboardErrorMsg:
		m.loading = false
		m.err = msg.Err
		return m, nil
	}

	return m, nil
}

// View renders the dashboard
func (m DashboardModel) View() string {
	var b strings.Builder

	// Title
	b.WriteString(styles.TitleStyle.Render("📊 Dashboard"))
	b.WriteString("\n\n")

	// Player standing
	if m.rank != nil {
		standing := fmt.Sprintf("Rank #%d of %d  •  %d pts", m.rank.Rank, m.rank.TotalUsers, m.rank.Points)
		b.WriteString(styles.BadgePrimaryStyle.Render(standing))
		b.WriteString("\n\n")
	}

	// Tabs
	boardTab := styles.TabStyle.Render("🏆 Leaderboard")
	achievementTab := styles.TabStyle.Render("🎖 Achievements")

	if m.selectedTab == 0 {
		boardTab = styles.TabActiveStyle.Render("🏆 Leaderboard")
	} else {
		achievementTab = styles.TabActiveStyle.Render("🎖 Achievements")
	}

	b.WriteString(boardTab + " " + achievementTab)
	b.WriteString("\n")
	b.WriteString(styles.RenderDivider(40))
	b.WriteString("\n\n")

	// Loading state
	if m.loading {
		b.WriteString(styles.SpinnerStyle.Render("⟳ "))
		b.WriteString(styles.InfoStyle.Render("Loading..."))
		return b.String()
	}

	// Error state
	if m.err != nil {
		b.WriteString(styles.ErrorStyle.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
		b.WriteString(styles.HelpStyle.Render("Press 'r' to retry"))
		return b.String()
	}

	// Content based on selected tab
	if m.selectedTab == 0 {
		b.WriteString(m.renderLeaderboard())
	} else {
		b.WriteString(m.renderAchievements())
	}

	// Help
	b.WriteString("\n\n")
	b.WriteString(styles.HelpStyle.Render("↑/↓ navigate • Tab switch • r refresh"))

	return b.String()
}

// renderLeaderboard renders the top players by points
func (m DashboardModel) renderLeaderboard() string {
	if len(m.leaderboard) == 0 {
		return styles.InfoStyle.Render("No players on the leaderboard yet")
	}

	var b strings.Builder
	for i, entry := range m.leaderboard {
		if i >= 10 { // Limit display
			break
		}

		prefix := "  "
		style := styles.ListItemStyle
		if i == m.cursor {
			prefix = "▸ "
			style = styles.ListItemSelectedStyle
		}

		rank := styles.BadgePrimaryStyle.Render(fmt.Sprintf("#%d", entry.Rank))
		name := styles.ListItemTitleStyle.Render(styles.Truncate(entry.Username, 24))
		points := styles.BadgeSuccessStyle.Render(fmt.Sprintf("%d pts", entry.Points))

		line := fmt.Sprintf("%s%s %s %s", prefix, rank, name, points)
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	return b.String()
}

// renderAchievements renders the player's unlocked achievements
func (m DashboardModel) renderAchievements() string {
	if len(m.achievements) == 0 {
		return styles.InfoStyle.Render("No achievements unlocked yet. Complete missions to earn them!")
	}

	var b strings.Builder
	for i, a := range m.achievements {
		prefix := "  "
		style := styles.ListItemStyle
		if i == m.cursor {
			prefix = "▸ "
			style = styles.ListItemSelectedStyle
		}

		title := styles.ListItemTitleStyle.Render(a.Title)
		points := styles.BadgeSuccessStyle.Render(fmt.Sprintf("+%d", a.Points))

		line := fmt.Sprintf("%s🏅 %s %s", prefix, title, points)
		b.WriteString(style.Render(line))

		// Description on next line for selected item
		if i == m.cursor && a.Description != "" {
			b.WriteString("\n    ")
			b.WriteString(styles.ListItemDescStyle.Render(styles.Truncate(a.Description, 60)))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// clampCursor keeps cursor in bounds
func (m *DashboardModel) clampCursor() {
	var max int
	if m.selectedTab == 0 {
		max = len(m.leaderboard) - 1
	} else {
		max = len(m.achievements) - 1
	}

	if max < 0 {
		max = 0
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor > max {
		m.cursor = max
	}
}

// loadRank loads the player's own standing
func (m DashboardModel) loadRank() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		rank, err := m.apiClient.GetMyRank(ctx)
		if err != nil {
			return DashboardErrorMsg{Err: err}
		}
		return RankLoadedMsg{Rank: rank}
	}
}

// loadLeaderboard loads the top players
func (m DashboardModel) loadLeaderboard() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		entries, err := m.apiClient.GetLeaderboard(ctx, 10)
		if err != nil {
			return DashboardErrorMsg{Err: err}
		}
		return LeaderboardLoadedMsg{Entries: entries}
	}
}

// loadAchievements loads the player's achievements
func (m DashboardModel) loadAchievements() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		achievements, err := m.apiClient.GetAchievements(ctx)
		if err != nil {
			return DashboardErrorMsg{Err: err}
		}
		return AchievementsLoadedMsg{Achievements: achievements}
	}
}

// Messages

// RankLoadedMsg is sent when the player's standing is loaded
type RankLoadedMsg struct {
	Rank *models.UserRank
}

// LeaderboardLoadedMsg is sent when the leaderboard is loaded
type LeaderboardLoadedMsg struct {
	Entries []models.LeaderboardEntry
}

// AchievementsLoadedMsg is sent when achievements are loaded
type AchievementsLoadedMsg struct {
	Achievements []models.Achievement
}

// DashboardErrorMsg is sent on dashboard errors
type DashboardErrorMsg struct {
	Err error
}
