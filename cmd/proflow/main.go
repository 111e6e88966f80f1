// Command proflow prepares presentation documents: it generates
// scripture, song, and info presentations from templates, inspects and
// diffs existing documents, and bundles playlists for hand-off.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"proflow/core/bible"
	"proflow/core/codec"
	"proflow/core/generate"
	"proflow/core/lyrics"
	"proflow/core/playlist"
	"proflow/core/presentation"
	"proflow/core/template"
	"proflow/internal/config"
	"proflow/internal/library"
	"proflow/internal/logging"
)

const version = "0.4.0"

// CLI defines the command-line interface for proflow.
var CLI struct {
	// Global flags
	Config    string `help:"Config file path" type:"path"`
	LogLevel  string `name:"log-level" help:"Override log level (debug|info|warn|error)"`
	LogFormat string `name:"log-format" help:"Override log format (json|text)"`

	Dump     DumpCmd       `cmd:"" help:"Print the structure of a document"`
	Diff     DiffCmd       `cmd:"" help:"Compare two documents structurally"`
	Extract  ExtractCmd    `cmd:"" help:"Extract editable text from a document"`
	Generate GenerateGroup `cmd:"" help:"Generate presentations from templates"`
	Bundle   BundleCmd     `cmd:"" help:"Bundle documents into a playlist archive"`
	Library  LibraryGroup  `cmd:"" help:"Library index operations"`
	Version  VersionCmd    `cmd:"" help:"Print version information"`
}

// DumpCmd prints a document's structure.
type DumpCmd struct {
	Path string `arg:"" help:"Document path" type:"existingfile"`
	JSON bool   `help:"Dump the full tree as JSON"`
}

func (c *DumpCmd) Run() error {
	doc, err := codec.ReadFile(c.Path)
	if err != nil {
		return err
	}
	if c.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	}

	fmt.Printf("%s (category %s, version %d)\n", doc.Name, doc.Category, doc.Version)
	if warn := codec.VersionError(doc); warn != nil {
		fmt.Printf("  warning: %v\n", warn)
	}
	for ci, cue := range doc.Cues {
		fmt.Printf("  cue[%d] %q\n", ci, cue.Name)
		for ai, act := range cue.Actions {
			fmt.Printf("    action[%d] %s", ai, act.Type)
			if act.Slide != nil && act.Slide.Slide != nil {
				fmt.Printf(" (%d elements)", len(act.Slide.Slide.Elements))
			}
			fmt.Println()
		}
	}
	for _, cg := range doc.CueGroups {
		if cg.Group != nil {
			fmt.Printf("  group %q (%d cues)\n", cg.Group.Name, len(cg.CueIdentifiers))
		}
	}
	for _, arr := range doc.Arrangements {
		marker := ""
		if arr.UUID == doc.SelectedArrangement {
			marker = " [selected]"
		}
		fmt.Printf("  arrangement %q%s\n", arr.Name, marker)
	}
	return nil
}

// DiffCmd compares two documents.
type DiffCmd struct {
	A string `arg:"" help:"First document" type:"existingfile"`
	B string `arg:"" help:"Second document" type:"existingfile"`

	Strict     bool `help:"Compare identifiers too"`
	IgnoreText bool `name:"ignore-text" help:"Ignore text payloads, compare structure and style only"`
}

func (c *DiffCmd) Run() error {
	a, err := codec.ReadFile(c.A)
	if err != nil {
		return err
	}
	b, err := codec.ReadFile(c.B)
	if err != nil {
		return err
	}

	mismatches := presentation.Diff(a, b, presentation.DiffOptions{
		IgnoreIdentity: !c.Strict,
		IgnoreText:     c.IgnoreText,
	})
	for _, m := range mismatches {
		fmt.Println(m)
	}
	if len(mismatches) > 0 {
		return fmt.Errorf("documents differ in %d places", len(mismatches))
	}
	fmt.Println("documents match")
	return nil
}

// ExtractCmd prints a document's text in editor form.
type ExtractCmd struct {
	Path string `arg:"" help:"Document path" type:"existingfile"`
}

func (c *ExtractCmd) Run() error {
	doc, err := codec.ReadFile(c.Path)
	if err != nil {
		return err
	}
	for i, st := range presentation.ExtractText(doc) {
		if i > 0 {
			fmt.Println()
		}
		fmt.Printf("[%s]\n", st.CueName)
		for _, line := range st.Lines {
			fmt.Println(line)
		}
	}
	return nil
}

// GenerateGroup contains the generation commands.
type GenerateGroup struct {
	Scripture GenScriptureCmd `cmd:"" help:"Generate a scripture presentation"`
	Song      GenSongCmd      `cmd:"" help:"Generate a song presentation from lyrics"`
	Info      GenInfoCmd      `cmd:"" help:"Generate an announcements presentation"`
}

// GenScriptureCmd generates a scripture presentation.
type GenScriptureCmd struct {
	Reference   string `arg:"" help:"Scripture reference, e.g. 'Isaiah 35:1-2'"`
	Translation string `short:"t" help:"Translation override (wins over the reference's own marker and the configured default)"`
	Output      string `short:"o" help:"Output directory (defaults to the library path)" type:"path"`
}

func (c *GenScriptureCmd) Run(cfg config.Config) error {
	g := newGenerator(cfg, c.Output)
	res, err := g.Scripture(context.Background(), c.Reference, c.Translation)
	if err != nil {
		return err
	}
	fmt.Println(res.Path)
	return nil
}

// GenSongCmd generates a song presentation.
type GenSongCmd struct {
	Path   string `arg:"" help:"Lyrics file: plain text with [Verse]/[Chorus] headers, or OpenLyrics XML" type:"existingfile"`
	Title  string `help:"Song title (defaults to the filename or the XML title)"`
	Output string `short:"o" help:"Output directory (defaults to the library path)" type:"path"`
}

func (c *GenSongCmd) Run(cfg config.Config) error {
	var song *lyrics.Song
	var err error
	if strings.EqualFold(filepath.Ext(c.Path), ".xml") {
		song, err = lyrics.ImportOpenLyricsFile(c.Path)
	} else {
		var raw []byte
		raw, err = os.ReadFile(c.Path)
		if err == nil {
			title := c.Title
			if title == "" {
				title = strings.TrimSuffix(filepath.Base(c.Path), filepath.Ext(c.Path))
			}
			song, err = lyrics.ParseText(title, string(raw))
		}
	}
	if err != nil {
		return err
	}
	if c.Title != "" {
		song.Title = c.Title
	}

	res, err := newGenerator(cfg, c.Output).Song(context.Background(), song)
	if err != nil {
		return err
	}
	fmt.Println(res.Path)
	return nil
}

// GenInfoCmd generates an announcements presentation.
type GenInfoCmd struct {
	Title  string `arg:"" help:"Presentation title"`
	Path   string `arg:"" help:"Text file, one paragraph per slide (blank-line separated)" type:"existingfile"`
	Output string `short:"o" help:"Output directory (defaults to the library path)" type:"path"`
}

func (c *GenInfoCmd) Run(cfg config.Config) error {
	raw, err := os.ReadFile(c.Path)
	if err != nil {
		return err
	}
	var paragraphs []string
	for _, block := range strings.Split(strings.ReplaceAll(string(raw), "\r\n", "\n"), "\n\n") {
		if block = strings.TrimSpace(block); block != "" {
			paragraphs = append(paragraphs, block)
		}
	}

	res, err := newGenerator(cfg, c.Output).Info(context.Background(), c.Title, paragraphs)
	if err != nil {
		return err
	}
	fmt.Println(res.Path)
	return nil
}

// BundleCmd bundles documents into a playlist archive.
type BundleCmd struct {
	Output string   `arg:"" help:"Playlist output path (.propl)" type:"path"`
	Files  []string `arg:"" help:"Documents, in playlist order" type:"existingfile"`

	Name string `help:"Playlist name (defaults to the output filename)"`
}

func (c *BundleCmd) Run() error {
	name := c.Name
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(c.Output), filepath.Ext(c.Output))
	}

	var entries []playlist.Entry
	for _, path := range c.Files {
		doc, err := codec.ReadFile(path)
		if err != nil {
			return err
		}
		entries = append(entries, playlist.Entry{Name: doc.Name, Document: doc})
	}
	if err := playlist.Write(c.Output, name, entries); err != nil {
		return err
	}
	fmt.Println(c.Output)
	return nil
}

// LibraryGroup contains library index operations.
type LibraryGroup struct {
	Index  LibraryIndexCmd  `cmd:"" help:"Rebuild the library index"`
	Search LibrarySearchCmd `cmd:"" help:"Search the library index by name"`
}

// LibraryIndexCmd rebuilds the library index.
type LibraryIndexCmd struct{}

func (c *LibraryIndexCmd) Run(cfg config.Config) error {
	x, err := openIndex(cfg)
	if err != nil {
		return err
	}
	defer x.Close()

	count, err := x.Rebuild(context.Background())
	if err != nil {
		return err
	}
	fmt.Printf("indexed %d documents\n", count)
	return nil
}

// LibrarySearchCmd searches the library index.
type LibrarySearchCmd struct {
	Query string `arg:"" help:"Name fragment to search for"`
}

func (c *LibrarySearchCmd) Run(cfg config.Config) error {
	x, err := openIndex(cfg)
	if err != nil {
		return err
	}
	defer x.Close()

	docs, err := x.Search(context.Background(), c.Query)
	if err != nil {
		return err
	}
	for _, d := range docs {
		fmt.Printf("%s\t%s\n", d.Name, d.Path)
	}
	if len(docs) == 0 {
		fmt.Fprintln(os.Stderr, "no matches")
	}
	return nil
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Printf("proflow %s (format version %d)\n", version, presentation.FormatVersion)
	return nil
}

func newGenerator(cfg config.Config, outputDir string) *generate.Generator {
	if outputDir == "" {
		outputDir = cfg.LibraryPath
	}
	bibles := bible.NewStore(cfg.BibleDataPath)
	if cfg.Translation != "" {
		bibles.Default = cfg.Translation
	}
	return &generate.Generator{
		Templates: template.NewCache(cfg.TemplatePath, cfg.LibraryPath),
		Bibles:    bibles,
		OutputDir: outputDir,
	}
}

func openIndex(cfg config.Config) (*library.Index, error) {
	dbPath := filepath.Join(cfg.LibraryPath, ".proflow-index.db")
	return library.Open(dbPath, cfg.LibraryPath)
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("proflow"),
		kong.Description("Presentation document toolkit: generate, inspect, diff, bundle"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)

	cfg, err := config.Load(CLI.Config)
	ctx.FatalIfErrorf(err)
	if CLI.LogLevel != "" {
		cfg.Log.Level = CLI.LogLevel
	}
	if CLI.LogFormat != "" {
		cfg.Log.Format = CLI.LogFormat
	}
	logging.InitLogger(cfg.LogLevel(), cfg.LogFormat())

	err = ctx.Run(cfg)
	ctx.FatalIfErrorf(err)
}
