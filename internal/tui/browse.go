// Package tui hosts the read-only library browser.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/rosdahl/spindle/internal/catalog"
	"github.com/rosdahl/spindle/internal/ui/styles"
)

// BrowseModel is the bubbletea model for browsing a library.
type BrowseModel struct {
	library string
	tracks  []catalog.Track

	filter    textinput.Model
	filtered  []catalog.Track
	filtering bool

	cursor int
	offset int
	width  int
	height int
}

// NewBrowseModel creates a browser over the given tracks.
func NewBrowseModel(library string, tracks []catalog.Track) BrowseModel {
	ti := textinput.New()
	ti.Placeholder = "Filter by title, artist or album..."
	ti.CharLimit = 100
	ti.Width = 50

	return BrowseModel{
		library:  library,
		tracks:   tracks,
		filter:   ti,
		filtered: tracks,
		width:    80,
		height:   24,
	}
}

// Init initializes the model.
func (m BrowseModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.filtering {
			switch msg.String() {
			case "ctrl+c":
				return m, tea.Quit
			case "esc", "enter":
				m.filtering = false
				m.filter.Blur()
				return m, nil
			}
			var cmd tea.Cmd
			m.filter, cmd = m.filter.Update(msg)
			m.applyFilter()
			return m, cmd
		}

		switch msg.String() {
		case "ctrl+c", "esc", "q":
			return m, tea.Quit

		case "/":
			m.filtering = true
			return m, m.filter.Focus()

		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}

		case "down", "j":
			if m.cursor < len(m.filtered)-1 {
				m.cursor++
			}

		case "g", "home":
			m.cursor = 0

		case "G", "end":
			if len(m.filtered) > 0 {
				m.cursor = len(m.filtered) - 1
			}
		}
		m.clampScroll()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.filter.Width = msg.Width - 4
		m.clampScroll()
	}

	return m, nil
}

func (m *BrowseModel) applyFilter() {
	query := strings.ToLower(strings.TrimSpace(m.filter.Value()))
	if query == "" {
		m.filtered = m.tracks
	} else {
		filtered := make([]catalog.Track, 0, len(m.tracks))
		for _, track := range m.tracks {
			haystack := strings.ToLower(track.DisplayTitle() + " " + track.Artist + " " + track.Album)
			if strings.Contains(haystack, query) {
				filtered = append(filtered, track)
			}
		}
		m.filtered = filtered
	}
	m.cursor = 0
	m.offset = 0
}

// visibleRows is the list height after header, filter and help lines.
func (m BrowseModel) visibleRows() int {
	rows := m.height - 7
	if rows < 3 {
		rows = 3
	}
	return rows
}

func (m *BrowseModel) clampScroll() {
	rows := m.visibleRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// View renders the model.
func (m BrowseModel) View() string {
	var b strings.Builder

	header := fmt.Sprintf("%s (%d tracks)", m.library, len(m.tracks))
	if len(m.filtered) != len(m.tracks) {
		header += fmt.Sprintf(", %d shown", len(m.filtered))
	}
	b.WriteString(styles.Title.Render(header))
	b.WriteString("\n\n")

	b.WriteString(m.filter.View())
	b.WriteString("\n\n")

	if len(m.filtered) == 0 {
		b.WriteString(styles.Muted.Render("No matching tracks"))
		b.WriteString("\n")
	} else {
		rows := m.visibleRows()
		end := m.offset + rows
		if end > len(m.filtered) {
			end = len(m.filtered)
		}
		for i := m.offset; i < end; i++ {
			b.WriteString(m.renderRow(i))
			b.WriteString("\n")
		}
		if end < len(m.filtered) {
			b.WriteString(styles.Dim.Render(fmt.Sprintf("  ...%d more", len(m.filtered)-end)))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(styles.Dim.Render("↑/↓ navigate • / filter • esc/q quit"))

	return b.String()
}

func (m BrowseModel) renderRow(i int) string {
	track := m.filtered[i]

	marker := "  "
	if track.Favourite {
		marker = styles.Favourite.Render("♥ ")
	}

	title := truncate(track.DisplayTitle(), 34)
	artist := truncate(track.Artist, 22)
	duration := formatClock(track.Duration)
	plays := fmt.Sprintf("%d plays", track.ListenCount)

	line := fmt.Sprintf("%s%s  %s  %s  %s",
		marker, title,
		styles.Subtitle.Render(artist),
		styles.Muted.Render(duration),
		styles.Dim.Render(plays))

	if i == m.cursor {
		return styles.Selected.Render("▸ " + line)
	}
	return "  " + line
}

func truncate(text string, width int) string {
	if runewidth.StringWidth(text) > width {
		text = runewidth.Truncate(text, width, "...")
	}
	return runewidth.FillRight(text, width)
}

func formatClock(seconds float64) string {
	total := int(seconds + 0.5)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// RunBrowser opens the browser over the library's tracks and blocks
// until the user quits.
func RunBrowser(library string, tracks []catalog.Track) error {
	p := tea.NewProgram(NewBrowseModel(library, tracks), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
