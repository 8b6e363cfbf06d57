package compdb

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"syscall"

	"github.com/standardbeagle/ccprops2compdb/internal/jsonc"
	"github.com/standardbeagle/ccprops2compdb/internal/logging"
	"github.com/standardbeagle/ccprops2compdb/internal/properties"
)

// Mode is how a document is turned into a database.
type Mode int

const (
	// ModePassThrough copies a bare-array document unchanged.
	ModePassThrough Mode = iota
	// ModeMergeEmbedded copies entries embedded in compileCommands.
	ModeMergeEmbedded
	// ModeMergeReferenced concatenates the database files named in
	// compileCommands.
	ModeMergeReferenced
	// ModeGenerate synthesizes one entry per source file.
	ModeGenerate
)

func (m Mode) String() string {
	switch m {
	case ModePassThrough:
		return "pass-through"
	case ModeMergeEmbedded:
		return "merge-embedded"
	case ModeMergeReferenced:
		return "merge-referenced"
	case ModeGenerate:
		return "generate"
	default:
		return "unknown"
	}
}

// Plan is a resolved document. Only the fields belonging to Mode are set.
type Plan struct {
	Mode Mode

	// Entries for ModePassThrough and ModeMergeEmbedded.
	Entries []json.RawMessage

	// References for ModeMergeReferenced, in the order they are read.
	References []string

	// Settings for ModeGenerate.
	Settings properties.Settings
}

// Resolve decides the mode for doc once, up front.
func Resolve(doc *properties.Document) (*Plan, error) {
	if doc.Shape == properties.ShapeEntries {
		return &Plan{Mode: ModePassThrough, Entries: doc.Entries}, nil
	}
	if doc.Configuration == nil {
		return nil, properties.ErrNoConfigurations
	}

	cc, err := doc.Configuration.CompileCommands()
	if err != nil {
		return nil, err
	}

	switch cc.Kind {
	case properties.ReferenceEmbedded:
		return &Plan{Mode: ModeMergeEmbedded, Entries: cc.Entries}, nil
	case properties.ReferenceFiles:
		return &Plan{Mode: ModeMergeReferenced, References: cc.Paths}, nil
	default:
		return &Plan{Mode: ModeGenerate, Settings: doc.Configuration.Settings()}, nil
	}
}

// Result is the outcome of executing a Plan.
type Result struct {
	Mode     Mode
	Database Database

	// Skipped lists referenced database files that did not exist.
	Skipped []string
}

// Resolver executes plans.
type Resolver struct {
	logger    logging.Logger
	directory string
	readFile  func(string) ([]byte, error)
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger used for warnings about skipped references.
func WithLogger(l logging.Logger) Option {
	return func(r *Resolver) { r.logger = l }
}

// WithDirectory sets the directory stamped on synthesized entries.
func WithDirectory(dir string) Option {
	return func(r *Resolver) { r.directory = dir }
}

// NewResolver creates a Resolver. Without WithDirectory the working
// directory is captured here, once.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{
		logger:   logging.Default(),
		readFile: os.ReadFile,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.directory == "" {
		r.directory = WorkingDir()
	}
	return r
}

// Directory returns the directory stamped on synthesized entries.
func (r *Resolver) Directory() string {
	return r.directory
}

// Execute builds the database described by plan. sources is only used in
// ModeGenerate.
func (r *Resolver) Execute(plan *Plan, sources []string) (*Result, error) {
	if plan.Mode != ModeGenerate && len(sources) > 0 {
		r.logger.Info("ignoring source files, configuration provides compile commands",
			"mode", plan.Mode.String(), "sources", len(sources))
	}

	res := &Result{Mode: plan.Mode}

	switch plan.Mode {
	case ModePassThrough, ModeMergeEmbedded:
		res.Database = append(Database{}, plan.Entries...)

	case ModeMergeReferenced:
		db := Database{}
		for _, path := range plan.References {
			entries, err := r.readReferenced(path)
			if isMissing(err) {
				r.logger.Warn("referenced compile commands file not found, skipping", "path", path)
				res.Skipped = append(res.Skipped, path)
				continue
			}
			if err != nil {
				return nil, err
			}
			r.logger.Debug("merged referenced database", "path", path, "entries", len(entries))
			db = append(db, entries...)
		}
		res.Database = db

	case ModeGenerate:
		db, err := r.generate(plan.Settings, sources)
		if err != nil {
			return nil, err
		}
		res.Database = db

	default:
		return nil, fmt.Errorf("unknown mode %d", plan.Mode)
	}

	return res, nil
}

func (r *Resolver) readReferenced(path string) ([]json.RawMessage, error) {
	data, err := r.readFile(path)
	if err != nil {
		if isMissing(err) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: read %s: %w", ErrInvalidReferencedDatabase, path, err)
	}

	var top json.RawMessage
	if err := jsonc.Unmarshal(data, &top); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidReferencedDatabase, path, err)
	}
	if trimmed := bytes.TrimSpace(top); len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("%w: %s", ErrInvalidReferencedDatabase, path)
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(top, &entries); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidReferencedDatabase, path, err)
	}
	return entries, nil
}

// isMissing reports whether err means the file does not exist. A path whose
// parent is a regular file fails with ENOTDIR and counts as missing.
func isMissing(err error) bool {
	return errors.Is(err, os.ErrNotExist) || errors.Is(err, syscall.ENOTDIR)
}

func (r *Resolver) generate(settings properties.Settings, sources []string) (Database, error) {
	if len(sources) == 0 {
		return nil, ErrNoSourcesProvided
	}
	if !settings.HasCompilerPath() {
		return nil, ErrMissingCompilerPath
	}

	synth := NewSynthesizer(settings, r.directory)
	db := make(Database, 0, len(sources))
	for _, src := range sources {
		if err := db.Append(synth.Entry(src)); err != nil {
			return nil, fmt.Errorf("encode entry for %s: %w", src, err)
		}
	}
	return db, nil
}

// Build loads the document at input, resolves it and executes the plan.
func (r *Resolver) Build(input string, sources []string) (*Result, error) {
	doc, err := properties.Load(input)
	if err != nil {
		return nil, err
	}

	if doc.Shape == properties.ShapeProperties && doc.ConfigurationCount > 1 {
		r.logger.Debug("using first configuration only",
			"name", doc.Configuration.Name, "ignored", doc.ConfigurationCount-1)
	}

	plan, err := Resolve(doc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", input, err)
	}
	r.logger.Debug("resolved mode", "input", input, "mode", plan.Mode.String())

	return r.Execute(plan, sources)
}
