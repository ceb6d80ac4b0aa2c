package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/LISSConsulting/LISSTech.TabKit/internal/config"
	"github.com/LISSConsulting/LISSTech.TabKit/internal/pages"
	"github.com/LISSConsulting/LISSTech.TabKit/internal/store"
	"github.com/LISSConsulting/LISSTech.TabKit/internal/tabs"
	"github.com/LISSConsulting/LISSTech.TabKit/internal/tui"
	"github.com/LISSConsulting/LISSTech.TabKit/internal/tui/components"
)

// viewFlags are the command-line overrides shared by view and check.
type viewFlags struct {
	page            string
	initial         string
	prerender       int
	prerenderSet    bool
	destroyInactive bool
	destroySet      bool
	position        string
	noStore         bool
}

// apply writes the overrides into cfg and revalidates it.
func (f viewFlags) apply(cfg *config.Config) error {
	if f.page != "" {
		cfg.Tabs.Page = config.NewPageRef(tabs.ParsePage(f.page))
	}
	if f.initial != "" {
		cfg.Tabs.InitialPage = config.NewPageRef(tabs.ParsePage(f.initial))
	}
	if f.prerenderSet {
		cfg.Tabs.PrerenderSiblings = f.prerender
	}
	if f.destroySet {
		cfg.Tabs.DestroyInactive = f.destroyInactive
	}
	if f.position != "" {
		cfg.TabBar.Position = f.position
	}
	if f.noStore {
		cfg.Store.Enabled = false
	}
	return cfg.Validate()
}

// loadProject loads and validates tabkit.toml and returns it with the
// project root, the directory holding the file.
func loadProject(configPath string) (*config.Config, string, error) {
	if configPath == "" {
		found, err := config.Find()
		if err != nil {
			return nil, "", err
		}
		configPath = found
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, "", err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", fmt.Errorf("config: %s: %w", configPath, err)
	}
	root, err := filepath.Abs(filepath.Dir(configPath))
	if err != nil {
		return nil, "", fmt.Errorf("resolve project root: %w", err)
	}
	return cfg, root, nil
}

// projectPages returns the project root and pages directory. Without a
// tabkit.toml anywhere up the tree the working directory and the default
// pages directory are used.
func projectPages(configPath string) (string, string, error) {
	if configPath == "" {
		if _, err := config.Find(); err != nil {
			dir, wdErr := os.Getwd()
			if wdErr != nil {
				return "", "", fmt.Errorf("get working directory: %w", wdErr)
			}
			return dir, config.Defaults().Tabs.PagesDir, nil
		}
	}
	cfg, root, err := loadProject(configPath)
	if err != nil {
		return "", "", err
	}
	return root, cfg.Tabs.PagesDir, nil
}

// tabEntry is a resolved tab with the content bound to it.
type tabEntry struct {
	tab     tabs.Tab
	origin  string // "text", "file <path>", "page <path>" or "" when unbound
	content tabs.Content[string]
}

// collectTabs builds the tab list: [[tab]] entries in config order, then
// every discovered page whose key no entry claimed. An entry without file or
// text takes the page with the same key.
func collectTabs(cfg *config.Config, root string) ([]tabEntry, error) {
	found, err := pages.List(root, cfg.Tabs.PagesDir)
	if err != nil {
		return nil, err
	}
	byKey := make(map[string]pages.Page, len(found))
	for _, p := range found {
		byKey[p.Key] = p
	}

	claimed := make(map[string]bool, len(cfg.Tab))
	entries := make([]tabEntry, 0, len(cfg.Tab)+len(found))
	for _, t := range cfg.Tab {
		e := tabEntry{tab: tabs.Tab{Key: t.Key, Title: t.Title}}
		switch {
		case t.Text != "":
			e.origin, e.content = "text", tabs.Static[string]{Value: t.Text}
		case t.File != "":
			e.origin, e.content = "file "+t.File, pages.File(root, t.File)
		case t.Key != "":
			if p, ok := byKey[t.Key]; ok {
				e.origin, e.content = "page "+p.Path, pages.File(root, p.Path)
				if e.tab.Title == "" {
					e.tab.Title = p.Title
				}
			}
		}
		if t.Key != "" {
			claimed[t.Key] = true
		}
		entries = append(entries, e)
	}

	var rest []pages.Page
	for _, p := range found {
		if !claimed[p.Key] {
			rest = append(rest, p)
		}
	}
	for i, it := range pages.Items(root, rest) {
		entries = append(entries, tabEntry{
			tab:     rest[i].Tab(),
			origin:  "page " + rest[i].Path,
			content: it.Content,
		})
	}
	return entries, nil
}

// splitEntries returns the tab list and a content source aligned with it.
func splitEntries(entries []tabEntry) ([]tabs.Tab, tabs.Source[string]) {
	list := make([]tabs.Tab, len(entries))
	items := make([]tabs.Item[string], len(entries))
	for i, e := range entries {
		list[i] = e.tab
		items[i] = tabs.Item[string]{Key: e.tab.Key, Content: e.content}
	}
	return list, tabs.NewSource(items...)
}

// controllerOptions maps the [tabs] and [tab_bar] sections onto controller
// options.
func controllerOptions(cfg *config.Config, list []tabs.Tab) tabs.Options {
	opts := tabs.DefaultOptions()
	opts.Tabs = list
	opts.InitialPage = cfg.Tabs.InitialPage.Page()
	opts.Page = cfg.Tabs.Page.Page()
	opts.PrerenderSiblings = cfg.Tabs.PrerenderSiblings
	opts.DestroyInactive = cfg.Tabs.DestroyInactive
	opts.Animated = cfg.Tabs.Animated
	opts.TabBarPosition = tabs.ParsePosition(cfg.TabBar.Position)
	opts.TabBarPageSize = cfg.TabBar.PageSize
	opts.Style = tabs.Style{
		ActiveColor:     cfg.TabBar.ActiveColor,
		InactiveColor:   cfg.TabBar.InactiveColor,
		BackgroundColor: cfg.TabBar.BackgroundColor,
		UnderlineColor:  cfg.TabBar.UnderlineColor,
	}
	return opts
}

// viewerOptions maps config onto the viewer options for ctrl.
func viewerOptions(cfg *config.Config, root string, ctrl *tabs.Controller[string]) tui.Options {
	opts := tui.Options{
		Controller:   ctrl,
		AccentColor:  cfg.TUI.AccentColor,
		ProjectName:  cfg.Project.Name,
		WorkDir:      root,
		TabBarHidden: cfg.TabBar.Hidden,
	}
	if cfg.Tabs.Swipeable {
		opts.Swipe = tui.NewSwipeTracker(tui.ParseDirection(cfg.Tabs.Direction), cfg.Tabs.DistanceToChange)
	}
	if ctrl.Controlled() {
		opts.Owner = tui.FollowOwner
	}
	opts.Reload = func() ([]tabs.Tab, tabs.Source[string], error) {
		entries, err := collectTabs(cfg, root)
		if err != nil {
			return nil, tabs.Source[string]{}, err
		}
		list, src := splitEntries(entries)
		return list, src, nil
	}
	return opts
}

// resolvePath makes a config-relative path absolute against root.
func resolvePath(root, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}

// setupLogging routes the standard logger to tui.log_file, or discards it
// so log output cannot corrupt the alt screen.
func setupLogging(cfg *config.Config, root string) (func(), error) {
	if cfg.TUI.LogFile == "" {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}
	f, err := tea.LogToFile(resolvePath(root, cfg.TUI.LogFile), "tabkit")
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return func() { _ = f.Close() }, nil
}

// executeView loads config, builds the controller and runs the viewer.
func executeView(configPath string, flags viewFlags) error {
	cfg, root, err := loadProject(configPath)
	if err != nil {
		return err
	}
	if err := flags.apply(cfg); err != nil {
		return err
	}
	entries, err := collectTabs(cfg, root)
	if err != nil {
		return err
	}

	closeLog, err := setupLogging(cfg, root)
	if err != nil {
		return err
	}
	defer closeLog()

	list, src := splitEntries(entries)
	opts := controllerOptions(cfg, list)
	opts.Logger = log.Default()

	var rec *recorder
	if cfg.Store.Enabled {
		st, err := openSession(cfg, root)
		if err != nil {
			return err
		}
		defer st.Close()
		rec = newRecorder(st)
		rec.wire(&opts)
	}

	ctrl := tabs.New(opts, src)
	viewOpts := viewerOptions(cfg, root, ctrl)
	if rec != nil {
		rec.attach(ctrl)
		viewOpts.OnRequest = rec.request
	}

	program := tea.NewProgram(tui.New(viewOpts), tea.WithAltScreen(), tea.WithMouseCellMotion())
	return finishTUI(program)
}

// finishTUI runs the bubbletea program until the user quits.
func finishTUI(program *tea.Program) error {
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

// executeCheck resolves the tabs and initial state without starting the
// viewer.
func executeCheck(w io.Writer, configPath string, flags viewFlags) error {
	cfg, root, err := loadProject(configPath)
	if err != nil {
		return err
	}
	if err := flags.apply(cfg); err != nil {
		return err
	}
	entries, err := collectTabs(cfg, root)
	if err != nil {
		return err
	}
	list, src := splitEntries(entries)
	ctrl := tabs.New(controllerOptions(cfg, list), src)
	fmt.Fprint(w, formatCheck(cfg.Project.Name, entries, ctrl))
	return nil
}

// formatCheck renders the resolved tabs, marking the active one and those
// inside the render window.
func formatCheck(project string, entries []tabEntry, ctrl *tabs.Controller[string]) string {
	if len(entries) == 0 {
		return "No tabs configured. Add [[tab]] entries to tabkit.toml or pages to the pages directory.\n"
	}

	var b strings.Builder
	title := "Tabs"
	if project != "" {
		title += " (" + project + ")"
	}
	b.WriteString(title + "\n")
	b.WriteString(strings.Repeat("─", runewidth.StringWidth(title)) + "\n")

	st := ctrl.State()
	for i, e := range entries {
		marker := " "
		if i == st.CurrentTab {
			marker = "▸"
		}
		key := e.tab.Key
		if key == "" {
			key = "-"
		}
		origin := e.origin
		if origin == "" {
			origin = "-"
		}
		mounted := ""
		if ctrl.ShouldMount(i) {
			mounted = "mounted"
		}
		fmt.Fprintf(&b, "  %s %2d  %s %s %s %s\n",
			marker, i,
			runewidth.FillRight(key, 14),
			runewidth.FillRight(components.Label(e.tab, i), 20),
			runewidth.FillRight(origin, 28),
			mounted)
	}

	mode := "uncontrolled"
	if ctrl.Controlled() {
		mode = "controlled by page " + ctrl.Options().Page.String()
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "  %-20s %d\n", "Active tab:", st.CurrentTab)
	fmt.Fprintf(&b, "  %-20s [%d, %d]\n", "Render window:", st.Window.Min, st.Window.Max)
	fmt.Fprintf(&b, "  %-20s %s\n", "Mode:", mode)
	return b.String()
}

// sessionDir returns the absolute session log directory.
func sessionDir(cfg *config.Config, root string) string {
	return resolvePath(root, cfg.Store.Dir)
}

// openSession starts a new session log and prunes old ones.
func openSession(cfg *config.Config, root string) (*store.JSONL, error) {
	dir := sessionDir(cfg, root)
	st, err := store.NewJSONL(dir)
	if err != nil {
		return nil, err
	}
	if err := store.EnforceRetention(dir, cfg.Store.Retention); err != nil {
		log.Printf("store: retention: %v", err)
	}
	return st, nil
}

// executeHistory prints the latest session, or one visit's raw events.
func executeHistory(w io.Writer, configPath string, visit int) error {
	cfg, root, err := loadProject(configPath)
	if err != nil {
		return err
	}

	path, err := store.Latest(sessionDir(cfg, root))
	if errors.Is(err, store.ErrNoSessions) {
		fmt.Fprintln(w, "No sessions recorded. Run 'tabkit view' first.")
		return nil
	}
	if err != nil {
		return err
	}

	st, err := store.Open(path)
	if err != nil {
		return err
	}
	defer st.Close()
	return printHistory(w, st, visit)
}

// printHistory writes the session summary, or the events of visit when it
// is positive.
func printHistory(w io.Writer, r store.Reader, visit int) error {
	if visit > 0 {
		events, err := r.VisitLog(visit)
		if err != nil {
			return err
		}
		fmt.Fprint(w, formatVisitLog(visit, events))
		return nil
	}

	summary, err := r.SessionSummary()
	if err != nil {
		return err
	}
	tabSummaries, err := r.Tabs()
	if err != nil {
		return err
	}
	visits, err := r.Visits()
	if err != nil {
		return err
	}
	fmt.Fprint(w, formatHistory(summary, tabSummaries, visits))
	return nil
}

// formatHistory renders a session summary with per-tab and per-visit lines.
func formatHistory(s store.SessionSummary, tabSummaries []store.TabSummary, visits []store.Visit) string {
	var b strings.Builder
	b.WriteString("Session " + s.SessionID + "\n")
	b.WriteString("───────\n")
	fmt.Fprintf(&b, "  %-20s %s\n", "Started:", s.StartedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "  %-20s %d (%d rejected)\n", "Requests:", s.Requests, s.Rejected)
	fmt.Fprintf(&b, "  %-20s %d\n", "Commits:", s.Commits)
	fmt.Fprintf(&b, "  %-20s %d\n", "Evictions:", s.Evictions)
	if s.Commits > 0 {
		fmt.Fprintf(&b, "  %-20s %s (%d)\n", "Last tab:", orKey(s.LastTitle, s.LastKey), s.LastIndex)
	}

	if len(tabSummaries) > 0 {
		b.WriteString("\nTabs\n")
		for _, t := range tabSummaries {
			fmt.Fprintf(&b, "  %s %3d visits  last %s\n",
				runewidth.FillRight(orKey(t.Title, t.Key), 24),
				t.Visits,
				t.LastAt.Local().Format("15:04:05"))
		}
	}

	if len(visits) > 0 {
		b.WriteString("\nVisits\n")
		for _, v := range visits {
			dur := "open"
			if !v.EndAt.IsZero() {
				dur = v.Duration().Round(time.Second).String()
			}
			forced := ""
			if v.Forced {
				forced = "  forced"
			}
			fmt.Fprintf(&b, "  #%-3d %2d → %-2d  %s %s%s\n",
				v.Number, v.From, v.To,
				runewidth.FillRight(orKey(v.Title, v.Key), 24),
				dur, forced)
		}
	}
	return b.String()
}

// formatVisitLog renders the raw events recorded during one visit.
func formatVisitLog(visit int, events []store.Event) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Visit #%d\n", visit)
	b.WriteString("─────────\n")
	for _, e := range events {
		line := fmt.Sprintf("  %s  %-8s %2d → %-2d", e.Timestamp.Local().Format("15:04:05.000"), e.Kind, e.From, e.To)
		if e.Key != "" {
			line += "  " + e.Key
		}
		if e.Forced {
			line += "  forced"
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

// orKey returns title, falling back to key and then "-".
func orKey(title, key string) string {
	switch {
	case title != "":
		return title
	case key != "":
		return key
	default:
		return "-"
	}
}

// formatPageList renders discovered pages.
func formatPageList(pagesDir string, found []pages.Page) string {
	if len(found) == 0 {
		return fmt.Sprintf("No pages found in %s/\n", pagesDir)
	}

	var b strings.Builder
	b.WriteString("Pages\n")
	b.WriteString("─────\n")
	for _, p := range found {
		fmt.Fprintf(&b, "  %3d  %s %s %s\n",
			p.Order,
			runewidth.FillRight(p.Key, 20),
			runewidth.FillRight(p.Title, 24),
			p.Path)
	}
	return b.String()
}

// formatScaffoldResult renders the outcome of `tabkit init`.
func formatScaffoldResult(created []string) string {
	if len(created) == 0 {
		return "All files already exist. Nothing to create.\n"
	}
	var b strings.Builder
	for _, path := range created {
		fmt.Fprintf(&b, "Created %s\n", path)
	}
	return b.String()
}

// openEditor launches the given editor with the file path, connecting stdio.
func openEditor(editor, path string) error {
	cmd := exec.Command(editor, path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
