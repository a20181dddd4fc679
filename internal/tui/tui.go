// Package tui is the interactive Bubble Tea front end over the store.
package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/idilsaglam/sheettracker/internal/model"
	"github.com/idilsaglam/sheettracker/internal/store"
	"github.com/idilsaglam/sheettracker/internal/view"
	"go.uber.org/zap"
)

const partyDuration = 3 * time.Second

// Importer is what the TUI needs to run imports.
type Importer interface {
	ParseWorkbook(ctx context.Context, filename string, r io.Reader) ([]model.Question, error)
	ParseGitHub(ctx context.Context, url string) ([]model.Question, error)
}

// Options wires the TUI to the store's side channels. Celebration and
// Confirmation must be the same values the store was built with.
type Options struct {
	Logger       *zap.Logger
	Celebration  *Celebration
	Confirmation *Confirmation
}

type promptKind int

const (
	promptNone promptKind = iota
	promptGitHub
	promptExcel
	promptClear
)

// listItem adapts a stored question to bubbles/list.Item
type listItem struct {
	index int // position in the store
	q     model.Question
}

func (i listItem) Title() string       { return i.q.Title }
func (i listItem) Description() string { return i.q.Link }
func (i listItem) FilterValue() string { return i.q.Title + " " + i.q.Category }

type importDoneMsg struct {
	label     string
	name      string
	questions []model.Question
	err       error
}

type partyOverMsg struct{}

type modelTUI struct {
	store        *store.Store
	importer     Importer
	logger       *zap.Logger
	celebration  *Celebration
	confirmation *Confirmation
	ctx          context.Context
	cancel       context.CancelFunc

	list  list.Model
	mode  view.Mode
	bar   progress.Model
	spin  spinner.Model
	input textinput.Model

	prompt    promptKind
	inflight  int
	status    string
	statusErr bool
	party     bool
	width     int
	height    int
}

// Custom delegate to control how items render (single line)
type itemDelegate struct{}

func (d itemDelegate) Height() int                         { return 1 }
func (d itemDelegate) Spacing() int                        { return 0 }
func (d itemDelegate) Update(tea.Msg, *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(listItem)
	if !ok {
		return
	}
	box := mutedStyle.Render(boxUnchecked)
	text := it.q.Title
	if it.q.Completed {
		box = successStyle.Render(boxChecked)
		text = doneStyle.Render(text)
	}
	line := fmt.Sprintf("%s %s", box, text)
	if it.q.Category != "" {
		line += "  " + mutedStyle.Render(it.q.Category)
	}
	prefix := "  "
	if index == m.Index() {
		prefix = selectedStyle.Render("> ")
	}
	fmt.Fprintln(w, prefix+line)
}

// Run starts the Bubble Tea program. Every change is persisted by the
// store as it happens; quitting cancels imports still in flight.
func Run(s *store.Store, imp Importer, opts Options) error {
	m := newModel(s, imp, opts)
	defer m.cancel()

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func newModel(s *store.Store, imp Importer, opts Options) modelTUI {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Celebration == nil {
		opts.Celebration = &Celebration{}
	}
	if opts.Confirmation == nil {
		opts.Confirmation = &Confirmation{}
	}
	ctx, cancel := context.WithCancel(context.Background())

	l := list.New(nil, itemDelegate{}, 0, 0)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle
	l.Styles.HelpStyle = helpStyle
	l.Styles.PaginationStyle = helpStyle
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("question", "questions")

	// Extend help with our bindings
	bindings := []key.Binding{
		key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
		key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "all/completed/pending")),
		key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "import GitHub")),
		key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "import sheet")),
		key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "clear all")),
	}
	l.AdditionalShortHelpKeys = func() []key.Binding { return bindings[:3] }
	l.AdditionalFullHelpKeys = func() []key.Binding { return bindings }

	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 2048

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = accentStyle

	m := modelTUI{
		store:        s,
		importer:     imp,
		logger:       opts.Logger,
		celebration:  opts.Celebration,
		confirmation: opts.Confirmation,
		ctx:          ctx,
		cancel:       cancel,
		list:         l,
		mode:         view.ModeAll,
		bar:          progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		spin:         sp,
		input:        ti,
	}
	m.refresh()
	return m
}

// Update and View implement Bubble Tea's Model on modelTUI
func (m modelTUI) Init() tea.Cmd { return nil }

func (m modelTUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil

	case importDoneMsg:
		return m.finishImport(msg)

	case partyOverMsg:
		m.party = false
		return m, nil

	case spinner.TickMsg:
		if m.inflight == 0 {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.prompt != promptNone {
			return m.updatePrompt(msg)
		}
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "ctrl+c", "q":
			m.cancel()
			return m, tea.Quit
		case "esc":
			if m.list.FilterState() == list.Unfiltered {
				m.cancel()
				return m, tea.Quit
			}
		case " ":
			return m.toggleSelected()
		case "d":
			return m.deleteSelected()
		case "tab":
			m.mode = m.mode.Next()
			return m, m.refresh()
		case "C":
			if m.store.Len() > 0 {
				m.prompt = promptClear
			}
			return m, nil
		case "i":
			return m.openInput(promptGitHub, "https://github.com/user/repo/blob/main/README.md")
		case "o":
			return m.openInput(promptExcel, "path/to/sheet.xlsx")
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m modelTUI) toggleSelected() (tea.Model, tea.Cmd) {
	it, ok := m.list.SelectedItem().(listItem)
	if !ok {
		return m, nil
	}
	if err := m.store.Toggle(it.index); err != nil {
		m.setStatus(err.Error(), true)
		return m, nil
	}
	cmds := []tea.Cmd{m.refresh()}
	if m.celebration.Take() {
		m.party = true
		cmds = append(cmds, tea.Tick(partyDuration, func(time.Time) tea.Msg { return partyOverMsg{} }))
	}
	return m, tea.Batch(cmds...)
}

func (m modelTUI) deleteSelected() (tea.Model, tea.Cmd) {
	it, ok := m.list.SelectedItem().(listItem)
	if !ok {
		return m, nil
	}
	if err := m.store.Delete(it.index); err != nil {
		m.setStatus(err.Error(), true)
		return m, nil
	}
	m.setStatus("Removed "+it.q.Title, false)
	return m, m.refresh()
}

func (m modelTUI) openInput(kind promptKind, placeholder string) (tea.Model, tea.Cmd) {
	m.prompt = kind
	m.input.SetValue("")
	m.input.Placeholder = placeholder
	return m, m.input.Focus()
}

func (m modelTUI) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.prompt == promptClear {
		switch strings.ToLower(msg.String()) {
		case "y":
			m.confirmation.Arm()
		case "n", "esc", "enter":
		default:
			return m, nil
		}
		m.prompt = promptNone
		cleared, err := m.store.ClearAll()
		switch {
		case err != nil:
			m.setStatus(err.Error(), true)
		case cleared:
			m.setStatus("Cleared all questions", false)
		default:
			m.setStatus("Kept your sheet", false)
		}
		return m, m.refresh()
	}

	switch msg.String() {
	case "esc":
		m.closeInput()
		return m, nil
	case "enter":
		kind, target := m.prompt, strings.TrimSpace(m.input.Value())
		m.closeInput()
		if target == "" {
			return m, nil
		}
		m.inflight++
		if kind == promptExcel {
			m.setStatus("Parsing Excel file...", false)
		} else {
			m.setStatus("Fetching from GitHub...", false)
		}
		return m, tea.Batch(m.importCmd(kind, target), m.spin.Tick)
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *modelTUI) closeInput() {
	m.prompt = promptNone
	m.input.SetValue("")
	m.input.Blur()
}

// importCmd runs the import off the UI loop; the result comes back as an
// importDoneMsg.
func (m modelTUI) importCmd(kind promptKind, target string) tea.Cmd {
	ctx, imp := m.ctx, m.importer
	return func() tea.Msg {
		if kind == promptExcel {
			f, err := os.Open(target)
			if err != nil {
				return importDoneMsg{label: "Excel", name: target, err: err}
			}
			defer f.Close()
			qs, err := imp.ParseWorkbook(ctx, filepath.Base(target), f)
			return importDoneMsg{label: "Excel", name: target, questions: qs, err: err}
		}
		qs, err := imp.ParseGitHub(ctx, target)
		return importDoneMsg{label: "GitHub", name: target, questions: qs, err: err}
	}
}

func (m modelTUI) finishImport(msg importDoneMsg) (tea.Model, tea.Cmd) {
	if m.inflight > 0 {
		m.inflight--
	}
	if msg.err != nil {
		m.logger.Warn("import failed", zap.String("source", msg.name), zap.Error(msg.err))
		m.setStatus("Import Failed: "+msg.err.Error(), true)
		return m, nil
	}
	added, err := m.store.Add(msg.questions)
	if err != nil {
		m.setStatus(err.Error(), true)
		return m, m.refresh()
	}
	status := fmt.Sprintf("Added %d questions from %s.", len(msg.questions), msg.label)
	if skipped := len(msg.questions) - added; skipped > 0 {
		status += fmt.Sprintf(" (%d already tracked)", skipped)
	}
	m.setStatus(status, false)
	return m, m.refresh()
}

func (m *modelTUI) setStatus(s string, isErr bool) {
	m.status, m.statusErr = s, isErr
}

// refresh rebuilds the visible items from the store under the current mode.
func (m *modelTUI) refresh() tea.Cmd {
	entries := view.Filter(m.store.Questions(), m.mode, "")
	items := make([]list.Item, 0, len(entries))
	for _, e := range entries {
		items = append(items, listItem{index: e.Index, q: e.Question})
	}
	cmd := m.list.SetItems(items)
	if n := len(items); n > 0 && m.list.Index() >= n {
		m.list.Select(n - 1)
	}
	m.list.Title = m.title()
	return cmd
}

func (m modelTUI) title() string {
	done, pending := m.store.Stats()
	return fmt.Sprintf("%s   %s %d  %s %d  %s %d  %s",
		titleStyle.Render("Your Sheet"),
		successStyle.Render("✔"), done,
		pendingStyle.Render("•"), pending,
		accentStyle.Render("Total"), done+pending,
		mutedStyle.Render("["+string(m.mode)+"]"),
	)
}

func (m *modelTUI) resize() {
	w, h := m.width, m.height
	if w == 0 || h == 0 {
		w, h = 80, 24
	}
	m.bar.Width = max(10, w-24)
	m.list.SetSize(w-4, max(3, h-9))
	m.input.Width = max(10, w-10)
}

func (m modelTUI) View() string {
	var b strings.Builder

	sum := view.Progress(m.store.Questions())
	fmt.Fprintf(&b, "%s  %s\n", m.bar.ViewAs(float64(sum.Percent)/100),
		mutedStyle.Render(fmt.Sprintf("%d / %d Questions", sum.Completed, sum.Total)))
	if m.party {
		b.WriteString(confetti(40) + "\n")
		b.WriteString(titleStyle.Render("🎉 All questions completed!") + "\n")
	}
	b.WriteString("\n")

	if m.store.Len() == 0 {
		b.WriteString(mutedStyle.Render("No questions yet. Press i to import from GitHub or o to open a spreadsheet.") + "\n")
	} else {
		b.WriteString(m.list.View() + "\n")
	}

	switch m.prompt {
	case promptClear:
		b.WriteString(panelString(errorStyle.Render(store.ClearPrompt) + "\n" + helpStyle.Render("y / n")))
	case promptGitHub, promptExcel:
		title := "Import from GitHub"
		if m.prompt == promptExcel {
			title = "Import spreadsheet (.xlsx, .csv)"
		}
		b.WriteString(panelString(title + "\n" + m.input.View()))
	default:
		line := m.status
		if m.statusErr {
			line = errorStyle.Render(line)
		}
		if m.inflight > 0 {
			line = m.spin.View() + " " + line
		}
		b.WriteString(line)
	}
	return panelString(b.String())
}
