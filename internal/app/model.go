package app

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/rs/zerolog"

	"verdiff/internal/artifact"
	"verdiff/internal/clipboard"
	"verdiff/internal/config"
	"verdiff/internal/diffview"
	"verdiff/internal/document"
	"verdiff/internal/notes"
)

type focusPane int

const (
	focusVersions focusPane = iota
	focusDiff
	focusNotes
)

const noComparisonText = "No comparison selected. Pick a version and press enter."

type documentLoadedMsg struct {
	doc document.Document
	err error
}

type diffBuiltMsg struct {
	desc       artifact.ChangeDescriptor
	current    artifact.VersionedContent
	comparison artifact.Comparison
	result     diffview.DiffResult
	rows       []diffview.DiffRow
	err        error
}

type clipboardResultMsg struct {
	what string
	err  error
}

type alertTickMsg struct{}

type noteAnchor struct {
	Side notes.Side
	Line int
}

// Model is the Bubble Tea state container for the app.
type Model struct {
	keys    KeyMap
	focus   focusPane
	docPath string
	docSvc  document.Service
	logger  zerolog.Logger
	cfg     config.AppConfig

	width  int
	height int
	ready  bool

	doc           document.Document
	docLoaded     bool
	versionCursor int
	versionScroll int
	versionPaneW  int
	versionsHide  bool

	// descriptor is the active comparison selection; nil means no comparison
	// is open. The displayed result is replaced wholesale whenever it changes.
	descriptor *artifact.ChangeDescriptor
	pending    bool

	comparison  artifact.Comparison
	result      diffview.DiffResult
	diffRows    []diffview.DiffRow
	highlighter *diffview.Highlighter
	diffCursor  int
	oldView     viewport.Model
	newView     viewport.Model
	diffDirty   bool
	oldWidth    int
	newWidth    int
	helpOpen    bool

	noteStore       notes.Store
	notes           map[string]notes.Note
	notesCursor     int
	notesReturn     focusPane
	noteInputActive bool
	noteInputModel  textinput.Model
	noteInputErr    string
	noteEditAnchor  *noteAnchor

	alertMsg   string
	alertUntil time.Time

	loadingDoc   bool
	buildingDiff bool
	err          error
}

func NewModel(docPath string, logger zerolog.Logger) (Model, error) {
	cfg, _, cfgErr := config.Load()
	if cfgErr != nil {
		return Model{}, fmt.Errorf("load config: %w", cfgErr)
	}

	store, err := notes.NewStore()
	if err != nil {
		return Model{}, err
	}
	loadedNotes, loadErr := store.Load()
	noteMap := make(map[string]notes.Note, len(loadedNotes))
	for _, n := range loadedNotes {
		noteMap[notes.AnchorKey(n.DocumentID, n.ArtifactIndex, n.Side, n.Line)] = n
	}

	noteInput := textinput.New()
	noteInput.Prompt = ""
	noteInput.Placeholder = "Type note"
	noteInput.CharLimit = 4096
	noteInput.Cursor.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("51"))
	noteInput.PlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))

	m := Model{
		keys:           defaultKeyMap(),
		focus:          focusVersions,
		docPath:        docPath,
		docSvc:         document.NewFileService(),
		logger:         logger,
		cfg:            cfg,
		versionPaneW:   cfg.VersionPaneWidth,
		notesReturn:    focusDiff,
		noteStore:      store,
		notes:          noteMap,
		noteInputModel: noteInput,
		diffDirty:      true,
		oldWidth:       -1,
		newWidth:       -1,
		loadingDoc:     true,
	}
	if loadErr != nil {
		m.setAlert(fmt.Sprintf("failed to load notes: %v", loadErr))
	}

	m.oldView = viewport.New(1, 1)
	m.newView = viewport.New(1, 1)
	m.setPaneText(noComparisonText)
	return m, nil
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadDocumentCmd(), alertTickCmd())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resizePanes()
		m.diffDirty = true
		m.refreshDiffContent()
		return m, nil

	case documentLoadedMsg:
		return m.handleDocumentLoaded(msg)

	case diffBuiltMsg:
		return m.handleDiffBuilt(msg)

	case clipboardResultMsg:
		if msg.err != nil {
			m.setAlert(fmt.Sprintf("export failed: %v", msg.err))
			return m, nil
		}
		m.setAlert(fmt.Sprintf("Copied %s to clipboard.", msg.what))
		return m, nil

	case alertTickMsg:
		if m.alertMsg != "" && !m.alertUntil.IsZero() && time.Now().After(m.alertUntil) {
			m.alertMsg = ""
			m.alertUntil = time.Time{}
		}
		return m, alertTickCmd()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleDocumentLoaded(msg documentLoadedMsg) (tea.Model, tea.Cmd) {
	m.loadingDoc = false
	m.err = msg.err
	if msg.err != nil {
		return m, nil
	}

	firstLoad := !m.docLoaded
	m.doc = msg.doc
	m.docLoaded = true
	m.clampVersionCursor()

	if firstLoad && m.descriptor == nil && len(m.doc.Contents) > 0 {
		// Open on the latest version by default.
		m.versionCursor = len(m.doc.Contents) - 1
		desc := m.descriptorForEntry(m.versionCursor)
		m.descriptor = &desc
	}

	if m.descriptor != nil {
		// Re-resolve: a previously pending version may have arrived.
		m.buildingDiff = true
		return m, m.buildDiffCmd(m.doc, *m.descriptor)
	}
	return m, nil
}

func (m Model) handleDiffBuilt(msg diffBuiltMsg) (tea.Model, tea.Cmd) {
	if m.descriptor == nil || *m.descriptor != msg.desc {
		// A newer selection superseded this computation; discard its output.
		m.logger.Debug().
			Int("artifact_index", msg.desc.ArtifactIndex).
			Msg("dropping stale diff result")
		return m, nil
	}
	m.buildingDiff = false

	if msg.err != nil {
		if errors.Is(msg.err, artifact.ErrNotFound) {
			m.pending = true
			m.diffRows = nil
			m.result = diffview.DiffResult{}
			m.comparison = artifact.Comparison{}
			m.setPaneText(fmt.Sprintf("Version %d is not available yet.\nPress r to reload the document.", msg.desc.ArtifactIndex))
			return m, nil
		}
		// Unexpected diff engine failure: keep whatever is on screen.
		m.logger.Error().Err(msg.err).Msg("diff computation failed")
		m.setAlert(fmt.Sprintf("diff failed: %v", msg.err))
		return m, nil
	}

	m.pending = false
	m.comparison = msg.comparison
	m.result = msg.result
	m.diffRows = msg.rows
	m.diffCursor = 0
	m.highlighter = nil
	if msg.current.Kind == artifact.KindCode {
		m.highlighter = diffview.NewHighlighter(msg.current.Language, msg.comparison.FileName, m.cfg.SyntaxStyle)
	}

	if len(m.diffRows) == 0 {
		m.setPaneText("No changes between these versions.")
		return m, nil
	}

	m.oldView.GotoTop()
	m.newView.GotoTop()
	m.diffDirty = true
	m.refreshDiffContent()
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.noteInputActive {
		return m.handleNoteInput(msg)
	}
	if m.focus == focusNotes && isRuneKey(msg, "q") {
		m.focus = m.notesReturn
		return m, nil
	}

	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}
	if key.Matches(msg, m.keys.ToggleFocus) {
		switch m.focus {
		case focusVersions:
			m.focus = focusDiff
		case focusDiff:
			m.notesReturn = focusDiff
			m.focus = focusNotes
		default:
			m.focus = focusVersions
			m.versionsHide = false
		}
		return m, nil
	}
	if key.Matches(msg, m.keys.NotesView) {
		if m.focus == focusNotes {
			m.focus = m.notesReturn
		} else {
			m.notesReturn = m.focus
			m.focus = focusNotes
		}
		return m, nil
	}
	if key.Matches(msg, m.keys.Help) {
		m.helpOpen = !m.helpOpen
		return m, nil
	}
	if key.Matches(msg, m.keys.Refresh) {
		m.loadingDoc = true
		return m, m.loadDocumentCmd()
	}
	if key.Matches(msg, m.keys.Close) {
		m.closeComparison()
		return m, nil
	}
	if key.Matches(msg, m.keys.BaseOlder) {
		return m, m.rebaseComparison(-1)
	}
	if key.Matches(msg, m.keys.BaseNewer) {
		return m, m.rebaseComparison(1)
	}
	if key.Matches(msg, m.keys.ToggleVersions) {
		m.versionsHide = !m.versionsHide
		if m.versionsHide && m.focus == focusVersions {
			m.focus = focusDiff
		}
		m.resizePanes()
		return m, nil
	}

	switch m.focus {
	case focusVersions:
		return m.updateVersionsPane(msg)
	case focusNotes:
		return m.updateNotesPane(msg)
	default:
		return m.updateDiffPane(msg)
	}
}

func (m Model) updateVersionsPane(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Down):
		m.versionCursor++
		m.clampVersionCursor()
		m.ensureVersionCursorVisible()
	case key.Matches(msg, m.keys.Up):
		m.versionCursor--
		m.clampVersionCursor()
		m.ensureVersionCursorVisible()
	case key.Matches(msg, m.keys.Top):
		m.versionCursor = 0
		m.ensureVersionCursorVisible()
	case key.Matches(msg, m.keys.Bottom):
		m.versionCursor = len(m.doc.Contents) - 1
		m.clampVersionCursor()
		m.ensureVersionCursorVisible()
	case key.Matches(msg, m.keys.Open):
		return m.openComparisonAtCursor()
	case isRuneKey(msg, "l"):
		m.focus = focusDiff
	}
	return m, nil
}

func (m Model) updateDiffPane(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Down):
		m.moveDiffCursor(1)
	case key.Matches(msg, m.keys.Up):
		m.moveDiffCursor(-1)
	case key.Matches(msg, m.keys.Top):
		m.moveDiffCursorTo(0)
	case key.Matches(msg, m.keys.Bottom):
		m.moveDiffCursorTo(len(m.diffRows) - 1)
	case key.Matches(msg, m.keys.PageDown):
		m.moveDiffCursor(m.diffPageSize())
	case key.Matches(msg, m.keys.PageUp):
		m.moveDiffCursor(-m.diffPageSize())
	case key.Matches(msg, m.keys.ScrollDown):
		m.scrollDiffWindow(1)
	case key.Matches(msg, m.keys.ScrollUp):
		m.scrollDiffWindow(-1)
	case key.Matches(msg, m.keys.Export):
		if m.descriptor == nil || len(m.result.Hunks) == 0 {
			m.setAlert("No changes to export.")
			return m, nil
		}
		return m, m.exportDiffCmd()
	case key.Matches(msg, m.keys.Note):
		return m.startNoteEdit(false)
	case key.Matches(msg, m.keys.EditNote):
		return m.startNoteEdit(true)
	case key.Matches(msg, m.keys.DeleteNote):
		m.deleteNoteAtCursor()
	case isRuneKey(msg, "h"):
		if !m.versionsHide {
			m.focus = focusVersions
		}
	}
	return m, nil
}

func (m Model) updateNotesPane(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := m.sortedDocumentNotes()
	switch {
	case key.Matches(msg, m.keys.Down):
		m.notesCursor++
		m.clampNotesCursor(items)
	case key.Matches(msg, m.keys.Up):
		m.notesCursor--
		m.clampNotesCursor(items)
	case key.Matches(msg, m.keys.Top):
		m.notesCursor = 0
	case key.Matches(msg, m.keys.Bottom):
		m.notesCursor = len(items) - 1
		m.clampNotesCursor(items)
	case key.Matches(msg, m.keys.DeleteNote):
		if m.notesCursor < len(items) {
			m.deleteNote(items[m.notesCursor])
		}
	case key.Matches(msg, m.keys.Export):
		if len(items) == 0 {
			m.setAlert("No notes to export.")
			return m, nil
		}
		return m, m.exportNotesCmd(items)
	case key.Matches(msg, m.keys.Open):
		if m.notesCursor < len(items) {
			m.jumpToNoteInDiff(items[m.notesCursor])
		}
	}
	return m, nil
}

func (m Model) handleNoteInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.noteInputActive = false
		m.noteInputErr = ""
		m.noteEditAnchor = nil
		return m, nil
	case "enter":
		return m.saveNoteInput()
	}

	var cmd tea.Cmd
	m.noteInputModel, cmd = m.noteInputModel.Update(msg)
	return m, cmd
}

func (m Model) saveNoteInput() (tea.Model, tea.Cmd) {
	body := strings.TrimSpace(m.noteInputModel.Value())
	if body == "" {
		m.noteInputErr = "note cannot be empty"
		return m, nil
	}
	if m.descriptor == nil || m.noteEditAnchor == nil {
		m.noteInputActive = false
		return m, nil
	}

	anchor := *m.noteEditAnchor
	keyStr := notes.AnchorKey(m.doc.ID, m.descriptor.ArtifactIndex, anchor.Side, anchor.Line)
	n := notes.Note{
		DocumentID:    m.doc.ID,
		ArtifactIndex: m.descriptor.ArtifactIndex,
		Side:          anchor.Side,
		Line:          anchor.Line,
		Body:          body,
		Label:         artifact.Label(*m.descriptor),
		CreatedAt:     time.Now().UTC(),
	}
	if existing, ok := m.notes[keyStr]; ok {
		n.CreatedAt = existing.CreatedAt
	}
	m.notes[keyStr] = n

	m.noteInputActive = false
	m.noteInputErr = ""
	m.noteEditAnchor = nil
	m.diffDirty = true
	m.refreshDiffContent()

	if err := m.persistNotes(); err != nil {
		m.setAlert(fmt.Sprintf("failed to save notes: %v", err))
	}
	return m, nil
}

func (m Model) startNoteEdit(requireExisting bool) (tea.Model, tea.Cmd) {
	anchor, ok := m.currentAnchor()
	if !ok {
		m.setAlert("No line selected to annotate.")
		return m, nil
	}

	keyStr := notes.AnchorKey(m.doc.ID, m.descriptor.ArtifactIndex, anchor.Side, anchor.Line)
	existing, exists := m.notes[keyStr]
	if requireExisting && !exists {
		m.setAlert("No note on this line.")
		return m, nil
	}

	m.noteEditAnchor = &anchor
	m.noteInputActive = true
	m.noteInputErr = ""
	m.noteInputModel.SetValue(existing.Body)
	m.noteInputModel.CursorEnd()
	return m, m.noteInputModel.Focus()
}

func (m *Model) deleteNoteAtCursor() {
	anchor, ok := m.currentAnchor()
	if !ok {
		return
	}
	keyStr := notes.AnchorKey(m.doc.ID, m.descriptor.ArtifactIndex, anchor.Side, anchor.Line)
	if _, exists := m.notes[keyStr]; !exists {
		m.setAlert("No note on this line.")
		return
	}
	delete(m.notes, keyStr)
	m.diffDirty = true
	m.refreshDiffContent()
	if err := m.persistNotes(); err != nil {
		m.setAlert(fmt.Sprintf("failed to save notes: %v", err))
	}
}

func (m *Model) deleteNote(n notes.Note) {
	delete(m.notes, notes.AnchorKey(n.DocumentID, n.ArtifactIndex, n.Side, n.Line))
	if err := m.persistNotes(); err != nil {
		m.setAlert(fmt.Sprintf("failed to save notes: %v", err))
	}
}

func (m *Model) jumpToNoteInDiff(n notes.Note) {
	if m.descriptor == nil || n.ArtifactIndex != m.descriptor.ArtifactIndex {
		m.setAlert("Note belongs to a different comparison.")
		return
	}
	for i, row := range m.diffRows {
		if n.Side == notes.SideOld && row.OldLine != nil && *row.OldLine == n.Line {
			m.moveDiffCursorTo(i)
			m.focus = focusDiff
			return
		}
		if n.Side == notes.SideNew && row.NewLine != nil && *row.NewLine == n.Line {
			m.moveDiffCursorTo(i)
			m.focus = focusDiff
			return
		}
	}
	m.setAlert("Note line is not in the current diff.")
}

// currentAnchor picks the annotation anchor for the cursor row, preferring
// the new side when both are present.
func (m *Model) currentAnchor() (noteAnchor, bool) {
	if m.descriptor == nil || m.diffCursor >= len(m.diffRows) {
		return noteAnchor{}, false
	}
	row := m.diffRows[m.diffCursor]
	if row.NewLine != nil {
		return noteAnchor{Side: notes.SideNew, Line: *row.NewLine}, true
	}
	if row.OldLine != nil {
		return noteAnchor{Side: notes.SideOld, Line: *row.OldLine}, true
	}
	return noteAnchor{}, false
}

func (m *Model) hasNote(line int, side diffview.Side) bool {
	if m.descriptor == nil {
		return false
	}
	noteSide := notes.SideNew
	if side == diffview.SideOld {
		noteSide = notes.SideOld
	}
	_, ok := m.notes[notes.AnchorKey(m.doc.ID, m.descriptor.ArtifactIndex, noteSide, line)]
	return ok
}

func (m Model) sortedDocumentNotes() []notes.Note {
	out := make([]notes.Note, 0, len(m.notes))
	for _, n := range m.notes {
		if n.DocumentID == m.doc.ID {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ArtifactIndex != out[j].ArtifactIndex {
			return out[i].ArtifactIndex < out[j].ArtifactIndex
		}
		if out[i].Line != out[j].Line {
			return out[i].Line < out[j].Line
		}
		return out[i].Side < out[j].Side
	})
	return out
}

func (m Model) persistNotes() error {
	all := make([]notes.Note, 0, len(m.notes))
	for _, n := range m.notes {
		all = append(all, n)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.Before(all[j].CreatedAt)
	})
	return m.noteStore.Save(all)
}

// openComparisonAtCursor selects the version under the cursor. The first
// version renders as a create; later versions compare against their
// immediate predecessor.
func (m Model) openComparisonAtCursor() (tea.Model, tea.Cmd) {
	if len(m.doc.Contents) == 0 {
		return m, nil
	}
	desc := m.descriptorForEntry(m.versionCursor)
	if m.descriptor != nil && *m.descriptor == desc {
		m.focus = focusDiff
		return m, nil
	}
	m.descriptor = &desc
	m.pending = false
	m.buildingDiff = true
	m.focus = focusDiff
	return m, m.buildDiffCmd(m.doc, desc)
}

func (m Model) descriptorForEntry(i int) artifact.ChangeDescriptor {
	c := m.doc.Contents[i]
	if i == 0 {
		return artifact.ChangeDescriptor{ChangeType: artifact.ChangeCreate, ArtifactIndex: c.Index}
	}
	return artifact.ChangeDescriptor{
		ChangeType:    artifact.ChangeUpdate,
		ArtifactIndex: c.Index,
		PreviousIndex: m.doc.Contents[i-1].Index,
	}
}

// rebaseComparison moves the comparison base to an older or newer version,
// clamped between the first version and the shown version's predecessor.
func (m *Model) rebaseComparison(delta int) tea.Cmd {
	if m.descriptor == nil || m.descriptor.ChangeType != artifact.ChangeUpdate {
		return nil
	}
	curPos := m.positionOfIndex(m.descriptor.ArtifactIndex)
	prevPos := m.positionOfIndex(m.descriptor.PreviousIndex)
	if curPos < 0 || prevPos < 0 {
		return nil
	}
	target := prevPos + delta
	if target < 0 || target >= curPos {
		return nil
	}

	desc := *m.descriptor
	desc.PreviousIndex = m.doc.Contents[target].Index
	m.descriptor = &desc
	m.buildingDiff = true
	return m.buildDiffCmd(m.doc, desc)
}

func (m *Model) positionOfIndex(index int) int {
	for i, c := range m.doc.Contents {
		if c.Index == index {
			return i
		}
	}
	return -1
}

// closeComparison clears the active selection and everything derived from it
// before the next frame renders.
func (m *Model) closeComparison() {
	m.descriptor = nil
	m.pending = false
	m.buildingDiff = false
	m.comparison = artifact.Comparison{}
	m.result = diffview.DiffResult{}
	m.diffRows = nil
	m.diffCursor = 0
	m.highlighter = nil
	m.setPaneText(noComparisonText)
	m.focus = focusVersions
}

func (m Model) loadDocumentCmd() tea.Cmd {
	path := m.docPath
	service := m.docSvc
	return func() tea.Msg {
		doc, err := service.LoadDocument(context.Background(), path)
		return documentLoadedMsg{doc: doc, err: err}
	}
}

// buildDiffCmd resolves desc against a snapshot of the history and computes
// the diff off the update loop. The message carries desc so stale results can
// be recognised and discarded.
func (m Model) buildDiffCmd(doc document.Document, desc artifact.ChangeDescriptor) tea.Cmd {
	return func() tea.Msg {
		comp, err := artifact.Resolve(doc.Contents, desc)
		if err != nil {
			return diffBuiltMsg{desc: desc, err: err}
		}
		result, err := diffview.BuildDiff(comp.OldText, comp.NewText)
		if err != nil {
			return diffBuiltMsg{desc: desc, err: err}
		}

		var current artifact.VersionedContent
		for _, c := range doc.Contents {
			if c.Index == desc.ArtifactIndex {
				current = c
				break
			}
		}
		return diffBuiltMsg{
			desc:       desc,
			current:    current,
			comparison: comp,
			result:     result,
			rows:       diffview.RowsFromResult(result),
		}
	}
}

func (m Model) exportDiffCmd() tea.Cmd {
	fileName := m.comparison.FileName
	result := m.result
	return func() tea.Msg {
		text, err := diffview.UnifiedDiff(fileName, result)
		if err != nil {
			return clipboardResultMsg{what: "diff", err: err}
		}
		return clipboardResultMsg{what: "diff", err: clipboard.CopyText(context.Background(), text)}
	}
}

func (m Model) exportNotesCmd(items []notes.Note) tea.Cmd {
	title := "Notes for " + m.doc.Title
	snapshot := append([]notes.Note(nil), items...)
	return func() tea.Msg {
		text := notes.ExportPlain(snapshot, title)
		return clipboardResultMsg{what: "notes", err: clipboard.CopyText(context.Background(), text)}
	}
}

func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	help := m.helpText()
	footer := lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Render(truncateLinesToWidth(help, m.width))
	footerHeight := lipgloss.Height(footer)

	dock := ""
	dockHeight := 0
	if m.noteInputActive {
		dock = m.renderNoteDock()
		dockHeight = lipgloss.Height(dock)
	} else if m.alertMsg != "" {
		dock = m.renderAlertDock()
		dockHeight = lipgloss.Height(dock)
	}

	leftW, rightW := paneWidths(m.width, m.versionPaneW, m.versionsHide, true)
	oldPaneW, newPaneW := splitRightPanes(rightW)
	// lipgloss Height applies to content height; borders add 2 more rows.
	paneContentHeight := max(1, m.height-footerHeight-dockHeight-2)
	newOldWidth := max(1, oldPaneW)
	newNewWidth := max(1, newPaneW)
	if m.oldView.Width != newOldWidth || m.newView.Width != newNewWidth {
		m.diffDirty = true
	}
	m.oldView.Width = newOldWidth
	m.newView.Width = newNewWidth
	m.oldView.Height = max(1, paneContentHeight-4)
	m.newView.Height = max(1, paneContentHeight-4)
	m.refreshDiffContent()

	content := ""
	if m.focus == focusNotes {
		content = m.renderNotesPane(m.width, paneContentHeight)
	} else {
		content = m.renderDiffPanes(oldPaneW, newPaneW, paneContentHeight)
		if !m.versionsHide {
			leftPane := m.renderVersionsPane(leftW, paneContentHeight)
			content = lipgloss.JoinHorizontal(lipgloss.Top, leftPane, content)
		}
	}

	body := content
	if dock != "" {
		body = lipgloss.JoinVertical(lipgloss.Left, body, dock)
	}
	return lipgloss.JoinVertical(lipgloss.Left, body, footer)
}

func (m Model) helpText() string {
	if !m.helpOpen {
		return "tab focus | m notes view | j/k move | enter open | [ ] change base | x close | c/e/d note | y export | z hide versions | r reload | ? help | q quit"
	}
	return strings.Join([]string{
		"Global: q quit, tab switch focus, m notes view, x close comparison, r reload document, ? toggle help",
		"Versions pane: j/k move, g/G top/bottom, enter open comparison, l focus diff",
		"Diff pane: j/k move cursor, ctrl-e/ctrl-y scroll, ctrl-f/ctrl-b page, g/G top/bottom, [ ] older/newer base, h focus versions, z hide version list",
		"Notes: c create, e edit, d delete on cursor line; y exports (diff pane: unified diff, notes view: notes)",
		"Notes view: j/k move, d delete, enter jump to diff, q back",
	}, "\n")
}

func (m Model) renderVersionsPane(width, height int) string {
	border := lipgloss.NormalBorder()
	borderColor := lipgloss.Color("245")
	if m.focus == focusVersions {
		borderColor = lipgloss.Color("39")
	}

	paneStyle := lipgloss.NewStyle().
		Width(max(1, width)).
		Height(max(1, height)).
		Border(border).
		BorderForeground(borderColor)

	docTitle := m.doc.Title
	if docTitle == "" {
		docTitle = "Document"
	}
	title := fmt.Sprintf("%s (%d versions)", docTitle, len(m.doc.Contents))
	if m.loadingDoc {
		title += " (loading...)"
	}

	innerW := max(1, width)
	bodyLines := make([]string, 0, len(m.doc.Contents)+2)
	bodyLines = append(bodyLines, ansi.Truncate(title, innerW, ""))
	bodyLines = append(bodyLines, "")

	if len(m.doc.Contents) == 0 {
		bodyLines = append(bodyLines, "No versions in this document")
	} else {
		pageSize := m.versionListPageSize()
		start := m.versionScroll
		maxScroll := len(m.doc.Contents) - pageSize
		if maxScroll < 0 {
			maxScroll = 0
		}
		if start > maxScroll {
			start = maxScroll
		}
		if start < 0 {
			start = 0
		}
		end := start + pageSize
		if end > len(m.doc.Contents) {
			end = len(m.doc.Contents)
		}

		for i := start; i < end; i++ {
			c := m.doc.Contents[i]
			prefix := "  "
			if i == m.versionCursor {
				prefix = "> "
			}
			shownMark := " "
			baseMark := " "
			if m.descriptor != nil {
				if m.descriptor.ArtifactIndex == c.Index {
					shownMark = "*"
				}
				if m.descriptor.ChangeType == artifact.ChangeUpdate && m.descriptor.PreviousIndex == c.Index {
					baseMark = "^"
				}
			}
			name := c.Title
			if name == "" {
				name = "Untitled"
			}
			line := fmt.Sprintf("%s%s%s v%d %s (%s)", prefix, shownMark, baseMark, c.Index, name, c.Kind)

			lineStyle := lipgloss.NewStyle().Width(innerW).MaxWidth(innerW)
			if i == m.versionCursor {
				lineStyle = lineStyle.Foreground(lipgloss.Color("39")).Bold(true)
			}
			bodyLines = append(bodyLines, lineStyle.Render(line))
		}
	}

	if m.err != nil {
		bodyLines = append(bodyLines, "")
		bodyLines = append(bodyLines, fmt.Sprintf("error: %v", m.err))
	}

	return paneStyle.Render(strings.Join(bodyLines, "\n"))
}

func (m Model) renderDiffPanes(oldWidth, newWidth, height int) string {
	oldPane := m.renderDiffSidePane(oldWidth, height, "Old", m.oldView.View(), false)
	newPane := m.renderDiffSidePane(newWidth, height, "New", m.newView.View(), true)
	return lipgloss.JoinHorizontal(lipgloss.Top, oldPane, newPane)
}

func (m Model) renderDiffSidePane(width, height int, sideLabel, body string, withRightBorder bool) string {
	border := lipgloss.NormalBorder()
	borderColor := lipgloss.Color("245")
	if m.focus == focusDiff {
		borderColor = lipgloss.Color("39")
	}

	paneStyle := lipgloss.NewStyle().
		Width(max(1, width)).
		Height(max(1, height)).
		Border(border, true, withRightBorder, true, true).
		BorderForeground(borderColor)

	title := sideLabel
	if m.comparison.FileName != "" {
		title = sideLabel + ": " + m.comparison.FileName
	}
	if m.descriptor != nil {
		title += " — " + artifact.Label(*m.descriptor)
		if !m.pending && !m.buildingDiff {
			title += fmt.Sprintf(" [+%d −%d]", m.result.Additions, m.result.Deletions)
		}
	}
	if m.buildingDiff {
		title += " (computing...)"
	}

	innerW := max(1, width)
	header := lipgloss.NewStyle().Bold(true).Width(innerW).MaxWidth(innerW).Render(title)

	return paneStyle.Render(header + "\n\n" + body)
}

func (m Model) renderNotesPane(width, height int) string {
	border := lipgloss.NormalBorder()
	borderColor := lipgloss.Color("39")

	paneStyle := lipgloss.NewStyle().
		Width(max(1, width-2)).
		Height(max(1, height)).
		Border(border).
		BorderForeground(borderColor)

	items := m.sortedDocumentNotes()
	title := fmt.Sprintf("Notes (%d)", len(items))

	innerW := max(1, width-2)
	bodyLines := []string{ansi.Truncate(title, innerW, ""), ""}

	if len(items) == 0 {
		bodyLines = append(bodyLines, "No notes for this document yet. Press c on a diff line to add one.")
	}
	for i, n := range items {
		prefix := "  "
		if i == m.notesCursor {
			prefix = "> "
		}
		head := fmt.Sprintf("%s%d) %s %s:%d", prefix, i+1, n.Label, n.Side, n.Line)
		lineStyle := lipgloss.NewStyle().Width(innerW).MaxWidth(innerW)
		if i == m.notesCursor {
			lineStyle = lineStyle.Foreground(lipgloss.Color("39")).Bold(true)
		}
		bodyLines = append(bodyLines, lineStyle.Render(head))
		bodyLines = append(bodyLines, lipgloss.NewStyle().Width(innerW).MaxWidth(innerW).Render("     "+n.Body))
	}

	return paneStyle.Render(strings.Join(bodyLines, "\n"))
}

func (m Model) renderNoteDock() string {
	title := "Add Note"
	if m.noteEditAnchor != nil && m.descriptor != nil {
		keyStr := notes.AnchorKey(m.doc.ID, m.descriptor.ArtifactIndex, m.noteEditAnchor.Side, m.noteEditAnchor.Line)
		if _, exists := m.notes[keyStr]; exists {
			title = "Edit Note"
		}
	}

	contentW := max(10, m.width-2)
	inputWidth := max(1, contentW-9)
	input := m.noteInputModel
	input.Width = inputWidth
	inputBox := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("63")).
		Padding(0, 1).
		Render(input.View())
	hint := lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Render("Enter save | Esc cancel")

	bodyLines := []string{inputBox, "", hint}
	if m.noteInputErr != "" {
		bodyLines = append(bodyLines, "")
		bodyLines = append(bodyLines, lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Render("Error: "+m.noteInputErr))
	}

	return m.renderDockPanel(title, lipgloss.Color("39"), lipgloss.Color("39"), strings.Join(bodyLines, "\n"))
}

func (m Model) renderAlertDock() string {
	hint := lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Render("Auto-hides after 3s")
	body := strings.Join([]string{
		m.alertMsg,
		"",
		hint,
	}, "\n")
	return m.renderDockPanel("Notice", lipgloss.Color("220"), lipgloss.Color("220"), body)
}

func (m Model) renderDockPanel(title string, titleColor, borderColor lipgloss.Color, body string) string {
	contentW := max(10, m.width-2)
	titleText := ansi.Truncate(title, max(1, contentW-2), "")
	titleBar := lipgloss.NewStyle().
		Width(contentW).
		Padding(0, 1).
		Bold(true).
		Foreground(lipgloss.Color("230")).
		Background(titleColor).
		Render(titleText)

	bodyBlock := lipgloss.NewStyle().
		Width(contentW).
		Padding(1, 2).
		Render(body)

	return lipgloss.NewStyle().
		Width(contentW).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Render(titleBar + "\n" + bodyBlock)
}

func (m *Model) setPaneText(text string) {
	m.oldView.GotoTop()
	m.newView.GotoTop()
	m.oldView.SetContent(text)
	m.newView.SetContent(text)
}

func (m *Model) resizePanes() {
	_, rightW := paneWidths(m.width, m.versionPaneW, m.versionsHide, true)
	oldPaneW, newPaneW := splitRightPanes(rightW)
	m.oldView.Width = max(1, oldPaneW)
	m.newView.Width = max(1, newPaneW)
	m.oldView.Height = max(1, m.height-6)
	m.newView.Height = max(1, m.height-6)
	m.diffDirty = true
}

func (m *Model) refreshDiffContent() {
	if len(m.diffRows) == 0 {
		return
	}
	m.clampDiffCursor()
	if !m.diffDirty && m.oldWidth == m.oldView.Width && m.newWidth == m.newView.Width {
		m.ensureCursorVisible()
		return
	}

	var highlight func(string) string
	if m.highlighter != nil {
		highlight = m.highlighter.Line
	}
	oldLines, newLines := diffview.RenderSplit(
		m.diffRows,
		m.oldView.Width,
		m.newView.Width,
		m.diffCursor,
		m.hasNote,
		highlight,
	)
	m.oldView.SetContent(strings.Join(oldLines, "\n"))
	m.newView.SetContent(strings.Join(newLines, "\n"))
	m.oldWidth = m.oldView.Width
	m.newWidth = m.newView.Width
	m.diffDirty = false
	m.ensureCursorVisible()
}

func (m *Model) ensureCursorVisible() {
	visibleHeight := m.oldView.Height
	if m.newView.Height < visibleHeight {
		visibleHeight = m.newView.Height
	}
	if visibleHeight <= 0 {
		return
	}
	if m.diffCursor < m.oldView.YOffset {
		m.oldView.SetYOffset(m.diffCursor)
		m.newView.SetYOffset(m.diffCursor)
		return
	}
	bottom := m.oldView.YOffset + visibleHeight - 1
	if m.diffCursor > bottom {
		next := m.diffCursor - visibleHeight + 1
		m.oldView.SetYOffset(next)
		m.newView.SetYOffset(next)
	}
}

func (m *Model) moveDiffCursor(delta int) {
	m.moveDiffCursorTo(m.diffCursor + delta)
}

func (m *Model) moveDiffCursorTo(target int) {
	if len(m.diffRows) == 0 {
		m.diffCursor = 0
		return
	}
	m.diffCursor = target
	m.clampDiffCursor()
	m.diffDirty = true
	m.refreshDiffContent()
}

func (m *Model) scrollDiffWindow(delta int) {
	if delta == 0 || len(m.diffRows) == 0 {
		return
	}
	visible := m.oldView.Height
	if m.newView.Height < visible {
		visible = m.newView.Height
	}
	if visible <= 0 {
		visible = 1
	}

	maxTop := len(m.diffRows) - visible
	if maxTop < 0 {
		maxTop = 0
	}
	newTop := m.oldView.YOffset + delta
	if newTop < 0 {
		newTop = 0
	}
	if newTop > maxTop {
		newTop = maxTop
	}
	m.oldView.SetYOffset(newTop)
	m.newView.SetYOffset(newTop)

	// Keep the cursor inside the scrolled window.
	if m.diffCursor < newTop {
		m.moveDiffCursorTo(newTop)
	} else if m.diffCursor > newTop+visible-1 {
		m.moveDiffCursorTo(newTop + visible - 1)
	}
}

func (m *Model) diffPageSize() int {
	visible := m.oldView.Height
	if m.newView.Height < visible {
		visible = m.newView.Height
	}
	if visible <= 1 {
		return 1
	}
	return visible - 1
}

func (m *Model) clampDiffCursor() {
	if m.diffCursor < 0 {
		m.diffCursor = 0
	}
	if m.diffCursor >= len(m.diffRows) {
		m.diffCursor = len(m.diffRows) - 1
	}
	if m.diffCursor < 0 {
		m.diffCursor = 0
	}
}

func (m *Model) clampVersionCursor() {
	if m.versionCursor >= len(m.doc.Contents) {
		m.versionCursor = len(m.doc.Contents) - 1
	}
	if m.versionCursor < 0 {
		m.versionCursor = 0
	}
}

func (m *Model) clampNotesCursor(items []notes.Note) {
	if m.notesCursor >= len(items) {
		m.notesCursor = len(items) - 1
	}
	if m.notesCursor < 0 {
		m.notesCursor = 0
	}
}

func (m *Model) versionListPageSize() int {
	if m.height <= 0 {
		return 1
	}
	// Pane title, blank separator, borders and footer all eat rows.
	size := m.height - 8
	if size < 1 {
		size = 1
	}
	return size
}

func (m *Model) ensureVersionCursorVisible() {
	pageSize := m.versionListPageSize()
	if m.versionCursor < m.versionScroll {
		m.versionScroll = m.versionCursor
	}
	if m.versionCursor >= m.versionScroll+pageSize {
		m.versionScroll = m.versionCursor - pageSize + 1
	}
	if m.versionScroll < 0 {
		m.versionScroll = 0
	}
}

func isRuneKey(msg tea.KeyMsg, key string) bool {
	return msg.String() == key
}

func alertTickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(time.Time) tea.Msg {
		return alertTickMsg{}
	})
}

func (m *Model) setAlert(msg string) {
	m.alertMsg = msg
	m.alertUntil = time.Now().Add(3 * time.Second)
}

func truncateLinesToWidth(text string, width int) string {
	if width <= 0 {
		return text
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = ansi.Truncate(line, width, "")
	}
	return strings.Join(lines, "\n")
}
