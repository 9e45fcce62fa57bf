package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/eoflazer/paperclip/internal/browser"
	"github.com/eoflazer/paperclip/internal/config"
	"github.com/eoflazer/paperclip/internal/extract"
	"github.com/eoflazer/paperclip/internal/store"
	"github.com/eoflazer/paperclip/internal/view"
	"go.uber.org/zap"
)

type mode int

const (
	modeList mode = iota
	modeAdd
	modeConfirmDelete
	modeHelp
)

type App struct {
	cfg *config.Config
	st  *store.Store
	svc *extract.Service
	log *zap.Logger

	tab    view.Filter
	cursor int
	mode   mode

	width  int
	height int

	urlInput textinput.Model
	spinner  spinner.Model

	// adding is true while a metadata lookup is in flight; it disables
	// resubmission but leaves the rest of the UI usable.
	adding      bool
	inputErr    string
	deleteID    string
	deleteTitle string
	err         error
}

// RunOpts holds all parameters for launching the TUI.
type RunOpts struct {
	Cfg     *config.Config
	Store   *store.Store
	Service *extract.Service
	Log     *zap.Logger
}

func NewApp(opts RunOpts) *App {
	ti := textinput.New()
	ti.Placeholder = "Paste a URL to add to your reading list..."
	ti.Prompt = inputPromptStyle.Render("+ ")
	ti.CharLimit = 500

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = spinnerStyle

	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}

	return &App{
		cfg:      opts.Cfg,
		st:       opts.Store,
		svc:      opts.Service,
		log:      log,
		tab:      view.FilterAll,
		urlInput: ti,
		spinner:  sp,
	}
}

func (a *App) Init() tea.Cmd {
	return nil
}

// visible recomputes the projection from the live collection. There is no
// cached copy anywhere; every render and every cursor clamp goes through
// this.
func (a *App) visible() []store.Item {
	return view.Visible(a.st.Items(), a.tab)
}

func (a *App) selected() *store.Item {
	items := a.visible()
	if len(items) == 0 || a.cursor >= len(items) {
		return nil
	}
	it := items[a.cursor]
	return &it
}

func (a *App) clampCursor() {
	if n := len(a.visible()); a.cursor >= n {
		a.cursor = max(0, n-1)
	}
}

// lookupCmd runs the extraction off the update loop. The service absorbs
// every failure into the fallback, so the message always carries a complete
// result.
func (a *App) lookupCmd(rawURL string) tea.Cmd {
	svc := a.svc
	return func() tea.Msg {
		res := svc.Lookup(context.Background(), rawURL)
		return metadataMsg{url: rawURL, res: res}
	}
}

func openBrowserCmd(url string) tea.Cmd {
	return func() tea.Msg {
		if err := browser.Open(url); err != nil {
			return errMsg{err: err}
		}
		return nil
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		// Clear sticky error on any keypress
		a.err = nil
		return a.handleKey(msg)

	case metadataMsg:
		a.adding = false
		if _, err := a.st.Add(msg.url, store.Metadata{
			Title:    msg.res.Title,
			Author:   msg.res.Author,
			SiteName: msg.res.SiteName,
			Summary:  msg.res.Summary,
		}); err != nil {
			a.log.Error("saving item failed", zap.String("url", msg.url), zap.Error(err))
			a.err = err
			return a, nil
		}
		// New item sits at the head of Active and Unread
		a.cursor = 0
		return a, nil

	case errMsg:
		a.err = msg.err
		return a, nil

	case spinner.TickMsg:
		if a.adding {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global keys
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}

	switch a.mode {
	case modeAdd:
		return a.handleAddKey(msg)
	case modeConfirmDelete:
		return a.handleConfirmKey(msg)
	case modeHelp:
		if msg.String() == "?" || msg.String() == "esc" || msg.String() == "q" {
			a.mode = modeList
		}
		return a, nil
	}

	// List mode
	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "j", "down":
		if a.cursor < len(a.visible())-1 {
			a.cursor++
		}
		return a, nil
	case "k", "up":
		if a.cursor > 0 {
			a.cursor--
		}
		return a, nil
	case "a":
		a.mode = modeAdd
		a.urlInput.Focus()
		return a, textinput.Blink
	case "tab":
		a.tab = nextTab(a.tab)
		a.cursor = 0
		return a, nil
	case "1", "2", "3", "4":
		idx := int(msg.String()[0] - '1')
		a.tab = tabOrder[idx]
		a.cursor = 0
		return a, nil
	case "r":
		a.toggleRead()
		return a, nil
	case "e":
		a.toggleArchive()
		return a, nil
	case "d":
		if it := a.selected(); it != nil {
			a.deleteID = it.ID
			a.deleteTitle = it.Title
			a.mode = modeConfirmDelete
		}
		return a, nil
	case "o", "enter":
		if it := a.selected(); it != nil {
			return a, openBrowserCmd(it.URL)
		}
		return a, nil
	case "?":
		a.mode = modeHelp
		return a, nil
	}

	return a, nil
}

func (a *App) handleAddKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.mode = modeList
		a.inputErr = ""
		a.urlInput.Blur()
		return a, nil
	case "enter":
		if a.adding {
			// One in-flight lookup at a time
			return a, nil
		}
		raw := strings.TrimSpace(a.urlInput.Value())
		if err := extract.ValidateURL(raw); err != nil {
			a.inputErr = err.Error()
			return a, nil
		}
		a.inputErr = ""
		a.adding = true
		a.urlInput.SetValue("")
		a.urlInput.Blur()
		a.mode = modeList
		return a, tea.Batch(a.lookupCmd(raw), a.spinner.Tick)
	}

	a.inputErr = ""
	var cmd tea.Cmd
	a.urlInput, cmd = a.urlInput.Update(msg)
	return a, cmd
}

func (a *App) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "y" {
		if err := a.st.Remove(a.deleteID); err != nil {
			a.err = err
		}
		a.clampCursor()
	}
	// Anything but y declines: no state change
	a.deleteID = ""
	a.deleteTitle = ""
	a.mode = modeList
	return a, nil
}

func (a *App) toggleRead() {
	it := a.selected()
	if it == nil {
		return
	}
	target := store.StatusRead
	if it.Status == store.StatusRead {
		target = store.StatusUnread
	}
	if err := a.st.UpdateStatus(it.ID, target); err != nil {
		a.err = err
	}
	a.clampCursor()
}

func (a *App) toggleArchive() {
	it := a.selected()
	if it == nil {
		return
	}
	target := store.StatusArchived
	if it.Status == store.StatusArchived {
		target = store.StatusUnread
	}
	if err := a.st.UpdateStatus(it.ID, target); err != nil {
		a.err = err
	}
	a.clampCursor()
}

func (a *App) View() string {
	if a.width == 0 {
		return lipgloss.NewStyle().Foreground(colorAccent).Render("  paperclip")
	}

	if a.mode == modeHelp {
		return a.renderHelp()
	}

	items := a.st.Items()
	counts := view.Tally(items)
	visible := view.Visible(items, a.tab)

	// Layout calculations
	headerHeight := 1
	inputHeight := 2 // input + inline error line
	tabsHeight := 1
	statusHeight := 1
	contentHeight := a.height - headerHeight - inputHeight - tabsHeight - statusHeight - 2 // borders

	listWidth := int(float64(a.width) * 0.4)
	detailWidth := a.width - listWidth - 1 // gap

	if contentHeight < 3 {
		contentHeight = 3
	}

	// Header
	headerLeft := headerStyle.Render("paperclip")
	headerRight := headerUnreadStyle.Render(fmt.Sprintf("%d unread", counts.Unread))
	headerGap := a.width - lipgloss.Width(headerLeft) - lipgloss.Width(headerRight)
	if headerGap < 0 {
		headerGap = 0
	}
	header := headerLeft + fmt.Sprintf("%*s", headerGap, "") + headerRight

	// Add input with inline validation error underneath
	input := " " + a.urlInput.View()
	errLine := ""
	if a.inputErr != "" {
		errLine = " " + inputErrStyle.Render(a.inputErr)
	}

	// Filter tabs
	tabs := renderTabs(a.tab, counts, a.width)

	// List pane
	innerListW := listWidth - 4 // border + padding
	listContent := renderList(visible, a.cursor, contentHeight, innerListW)
	listPane := listPaneStyle.Width(listWidth - 2).Height(contentHeight).Render(listContent)

	// Detail pane
	var sel *store.Item
	if len(visible) > 0 && a.cursor < len(visible) {
		sel = &visible[a.cursor]
	}
	innerDetailW := detailWidth - 4
	detailContent := renderDetail(sel, innerDetailW, contentHeight)
	detailPane := detailPaneStyle.Width(detailWidth - 2).Height(contentHeight).Render(detailContent)

	content := lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)

	// Status bar
	status := renderStatusBar(len(visible), tabLabel(a.tab), a.width, a.adding)
	if a.adding {
		status = a.spinner.View() + " " + status
	}
	if a.mode == modeConfirmDelete {
		status = confirmStyle.Render(fmt.Sprintf(" Delete %q? This cannot be undone. (y/n)", truncateStr(a.deleteTitle, 40)))
	}
	if a.err != nil {
		status = inputErrStyle.Render(" " + a.err.Error())
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, input, errLine, tabs, content, status)
}

func (a *App) renderHelp() string {
	title := lipgloss.NewStyle().Foreground(colorAccent).Bold(true).Render("paperclip")
	dim := helpDimStyle

	help := title + dim.Render(" — Keyboard Shortcuts") + "\n\n" +
		dim.Render("Navigation") + "\n" +
		"  j/k, ↑/↓     Move through the list\n" +
		"  1-4, tab      Switch filter tab\n\n" +
		dim.Render("Actions") + "\n" +
		"  a             Add a URL\n" +
		"  r             Mark read / unread\n" +
		"  e             Archive / unarchive\n" +
		"  d             Delete (asks for confirmation)\n" +
		"  o, enter      Open in browser\n\n" +
		dim.Render("General") + "\n" +
		"  ?             Toggle this help\n" +
		"  q, ctrl+c    Quit"

	card := helpCardStyle.Render(help)

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card)
}

// Run starts the TUI application.
func Run(opts RunOpts) error {
	app := NewApp(opts)
	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
