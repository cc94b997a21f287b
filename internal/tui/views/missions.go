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

// missionsLevel tracks which list the cursor is on
type missionsLevel int

const (
	levelChapters missionsLevel = iota
	levelMissions
)

// MissionsModel shows a book's chapters and each chapter's mission
// progression with lock state, best scores and attempts.
type MissionsModel struct {
	apiClient *api.Client

	// Data
	bookID    string
	bookTitle string
	chapters  []models.Chapter
	statuses  []models.MissionStatus

	// State
	level          missionsLevel
	chapterCursor  int
	missionCursor  int
	loading        bool
	err            error
	positionedInfo string // confirmation after recording a position

	// Window size
	width  int
	height int
}

// NewMissionsModel creates a new missions model
func NewMissionsModel(apiClient *api.Client) MissionsModel {
	return MissionsModel{apiClient: apiClient}
}

// SetBook points the view at a book and loads its chapters
func (m *MissionsModel) SetBook(bookID, title string) tea.Cmd {
	m.bookID = bookID
	m.bookTitle = title
	m.chapters = nil
	m.statuses = nil
	m.level = levelChapters
	m.chapterCursor = 0
	m.missionCursor = 0
	m.err = nil
	m.loading = true
	return m.loadChapters()
}

// Init is a no-op; data loads when a book is selected
func (m MissionsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m MissionsModel) Update(msg tea.Msg) (MissionsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, key.NewBinding(key.WithKeys("j", "down"))):
			m.moveCursor(1)
			return m, nil

		case key.Matches(msg, key.NewBinding(key.WithKeys("k", "up"))):
			m.moveCursor(-1)
			return m, nil

		case key.Matches(msg, key.NewBinding(key.WithKeys("esc", "backspace"))):
			if m.level == levelMissions {
				m.level = levelChapters
				m.missionCursor = 0
				m.positionedInfo = ""
				return m, nil
			}
			return m, nil

		case key.Matches(msg, key.NewBinding(key.WithKeys("r"))):
			m.loading = true
			if m.level == levelMissions {
				return m, m.loadStatuses(m.currentChapterID())
			}
			return m, m.loadChapters()

		case key.Matches(msg, key.NewBinding(key.WithKeys("enter"))):
			if m.level == levelChapters && len(m.chapters) > 0 {
				m.level = levelMissions
				m.missionCursor = 0
				m.loading = true
				return m, m.loadStatuses(m.chapters[m.chapterCursor].ID)
			}
			if m.level == levelMissions && len(m.statuses) > 0 {
				status := m.statuses[m.missionCursor]
				if !status.Unlocked {
					m.err = fmt.Errorf("mission is locked: score %d%%+ on the previous one", models.UnlockThreshold)
					return m, nil
				}
				m.err = nil
				return m, m.recordPosition(status.Mission)
			}
			return m, nil
		}

	case ChaptersLoadedMsg:
		m.loading = false
		m.chapters = msg.Chapters
		return m, nil

	case MissionStatusLoadedMsg:
		m.loading = false
		m.statuses = msg.Statuses
		return m, nil

	case PositionRecordedMsg:
		m.positionedInfo = fmt.Sprintf("Resumed at %q. Submit answers with the CLI: wordquest progress submit --mission-id %s",
			msg.MissionTitle, msg.MissionID)
		return m, nil

	case MissionsErrorMsg:
		m.loading = false
		m.err = msg.Err
		return m, nil
	}

	return m, nil
}

// View renders the missions view
func (m MissionsModel) View() string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render("🎯 " + m.bookTitle))
	b.WriteString("\n\n")

	if m.loading {
		b.WriteString(styles.SpinnerStyle.Render("⟳ "))
		b.WriteString(styles.InfoStyle.Render("Loading..."))
		return b.String()
	}

	if m.err != nil {
		b.WriteString(styles.ErrorStyle.Render("Error: " + m.err.Error()))
		b.WriteString("\n\n")
	}

	if m.level == levelChapters {
		b.WriteString(m.renderChapters())
		b.WriteString("\n\n")
		b.WriteString(styles.HelpStyle.Render("↑/↓ navigate • Enter open chapter • esc back • r refresh"))
		return b.String()
	}

	b.WriteString(m.renderMissions())

	if m.positionedInfo != "" {
		b.WriteString("\n")
		b.WriteString(styles.InfoStyle.Render(m.positionedInfo))
	}

	b.WriteString("\n\n")
	b.WriteString(styles.HelpStyle.Render("↑/↓ navigate • Enter resume here • esc chapters • r refresh"))
	return b.String()
}

// renderChapters renders the chapter list
func (m MissionsModel) renderChapters() string {
	if len(m.chapters) == 0 {
		return styles.InfoStyle.Render("This book has no chapters yet")
	}

	var b strings.Builder
	for i, ch := range m.chapters {
		prefix := "  "
		style := styles.ListItemStyle
		if i == m.chapterCursor {
			prefix = "▸ "
			style = styles.ListItemSelectedStyle
		}

		pos := styles.BadgePrimaryStyle.Render(fmt.Sprintf("Ch %d", ch.Position))
		title := styles.ListItemTitleStyle.Render(styles.Truncate(ch.Title, 40))

		b.WriteString(style.Render(fmt.Sprintf("%s%s %s", prefix, pos, title)))
		b.WriteString("\n")
	}
	return b.String()
}

// renderMissions renders the chapter's mission progression
func (m MissionsModel) renderMissions() string {
	if len(m.statuses) == 0 {
		return styles.InfoStyle.Render("This chapter has no missions yet")
	}

	var b strings.Builder
	for i, st := range m.statuses {
		prefix := "  "
		style := styles.ListItemStyle
		if i == m.missionCursor {
			prefix = "▸ "
			style = styles.ListItemSelectedStyle
		}

		marker := "🔒"
		if st.Completed {
			marker = "✓"
		} else if st.Unlocked {
			marker = "▶"
		}

		title := styles.ListItemTitleStyle.Render(styles.Truncate(st.Mission.Title, 34))
		mode := styles.BadgeWarningStyle.Render(st.Mission.Mode)

		line := fmt.Sprintf("%s%s %s %s", prefix, marker, title, mode)
		if st.Progress != nil && st.Progress.Attempts > 0 {
			line += " " + styles.BadgeSuccessStyle.Render(
				fmt.Sprintf("best %d%% (%d tries)", st.Progress.BestScore, st.Progress.Attempts))
		}

		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}

// moveCursor moves the active cursor by delta, clamped to the list
func (m *MissionsModel) moveCursor(delta int) {
	if m.level == levelChapters {
		m.chapterCursor += delta
		if m.chapterCursor < 0 {
			m.chapterCursor = 0
		}
		if max := len(m.chapters) - 1; m.chapterCursor > max && max >= 0 {
			m.chapterCursor = max
		}
		return
	}

	m.missionCursor += delta
	if m.missionCursor < 0 {
		m.missionCursor = 0
	}
	if max := len(m.statuses) - 1; m.missionCursor > max && max >= 0 {
		m.missionCursor = max
	}
}

// currentChapterID returns the chapter the mission list belongs to
func (m MissionsModel) currentChapterID() string {
	if m.chapterCursor < len(m.chapters) {
		return m.chapters[m.chapterCursor].ID
	}
	return ""
}

// loadChapters loads the book's chapters
func (m MissionsModel) loadChapters() tea.Cmd {
	bookID := m.bookID
	return func() tea.Msg {
		ctx := context.Background()
		chapters, err := m.apiClient.ListChapters(ctx, bookID)
		if err != nil {
			return MissionsErrorMsg{Err: err}
		}
		return ChaptersLoadedMsg{Chapters: chapters}
	}
}

// loadStatuses loads mission progress for a chapter
func (m MissionsModel) loadStatuses(chapterID string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		statuses, err := m.apiClient.GetChapterStatus(ctx, chapterID)
		if err != nil {
			return MissionsErrorMsg{Err: err}
		}
		return MissionStatusLoadedMsg{Statuses: statuses}
	}
}

// recordPosition saves the navigation cursor at the chosen mission
func (m MissionsModel) recordPosition(mission models.Mission) tea.Cmd {
	bookID := m.bookID
	return func() tea.Msg {
		ctx := context.Background()
		if err := m.apiClient.RecordPosition(ctx, bookID, mission.ChapterID, mission.ID); err != nil {
			return MissionsErrorMsg{Err: err}
		}
		return PositionRecordedMsg{MissionID: mission.ID, MissionTitle: mission.Title}
	}
}

// Messages

// ChaptersLoadedMsg is sent when the chapter list is loaded
type ChaptersLoadedMsg struct {
	Chapters []models.Chapter
}

// MissionStatusLoadedMsg is sent when a chapter's mission statuses are loaded
type MissionStatusLoadedMsg struct {
	Statuses []models.MissionStatus
}

// PositionRecordedMsg is sent after the reading position is saved
type PositionRecordedMsg struct {
	MissionID    string
	MissionTitle string
}

// MissionsErrorMsg is sent on mission view errors
type MissionsErrorMsg struct {
	Err error
}
