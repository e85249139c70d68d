package relocation

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/goliatone/go-docnav/internal/logging"
	"github.com/goliatone/go-docnav/internal/markdown"
	"github.com/goliatone/go-docnav/internal/naming"
	"github.com/goliatone/go-docnav/pkg/interfaces"
)

const (
	defaultExtension      = ".md"
	defaultAssetURLPrefix = "/images"
)

// ErrStagingDirRequired indicates the relocator was built without a staging directory.
var ErrStagingDirRequired = errors.New("relocation: staging directory required")

// Config configures a Relocator. Paths are used as given; relative paths
// resolve against the working directory.
type Config struct {
	StagingDir     string
	DestinationDir string
	// AssetsDir receives relocated images. Image relocation is disabled when empty.
	AssetsDir      string
	AssetURLPrefix string
	Extension      string
	// InjectTitleHeading prepends "# <title>" to moved documents lacking a
	// level-1 heading.
	InjectTitleHeading bool
	// DryRun computes destinations without touching the filesystem.
	DryRun bool
	Logger interfaces.Logger
	Clock  func() time.Time
	Suffix func() string
}

// Relocator moves staged documents into the documentation tree.
type Relocator struct {
	stagingDir     string
	destinationDir string
	assetsDir      string
	assetURLPrefix string
	extension      string
	injectTitle    bool
	dryRun         bool
	logger         interfaces.Logger
	now            func() time.Time
	suffix         func() string
}

// New builds a Relocator from cfg.
func New(cfg Config) (*Relocator, error) {
	staging := strings.TrimSpace(cfg.StagingDir)
	if staging == "" {
		return nil, ErrStagingDirRequired
	}
	dest := strings.TrimSpace(cfg.DestinationDir)
	if dest == "" {
		dest = staging
	}

	ext := strings.TrimSpace(cfg.Extension)
	if ext == "" {
		ext = defaultExtension
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}

	prefix := strings.TrimRight(strings.TrimSpace(cfg.AssetURLPrefix), "/")
	if prefix == "" && strings.TrimSpace(cfg.AssetURLPrefix) == "" {
		prefix = defaultAssetURLPrefix
	}

	now := cfg.Clock
	if now == nil {
		now = time.Now
	}
	suffix := cfg.Suffix
	if suffix == nil {
		suffix = randomSuffix
	}

	return &Relocator{
		stagingDir:     filepath.Clean(staging),
		destinationDir: filepath.Clean(dest),
		assetsDir:      strings.TrimSpace(cfg.AssetsDir),
		assetURLPrefix: prefix,
		extension:      ext,
		injectTitle:    cfg.InjectTitleHeading,
		dryRun:         cfg.DryRun,
		logger:         logging.Or(cfg.Logger),
		now:            now,
		suffix:         suffix,
	}, nil
}

// Run relocates every staged document. Per-file failures are recorded in the
// result and do not stop the batch; the returned error is only set when ctx
// is cancelled, in which case the result covers the files handled so far.
func (r *Relocator) Run(ctx context.Context) (interfaces.RelocationResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	var result interfaces.RelocationResult

	names, err := r.stagedDocuments()
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			r.logger.Info("relocation.staging.missing", "dir", r.stagingDir)
			return result, nil
		}
		r.logger.Error("relocation.staging.unreadable", "dir", r.stagingDir, "error", err)
		result.Failed = append(result.Failed, interfaces.RelocationFailure{Path: r.stagingDir, Err: err})
		return result, nil
	}
	if len(names) == 0 {
		r.logger.Debug("relocation.staging.empty", "dir", r.stagingDir)
		return result, nil
	}

	moved := make(map[string]string)
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		r.relocateDocument(name, moved, &result)
	}

	r.logger.Info("relocation.completed",
		"moved", len(result.Moved),
		"assets", len(result.Assets),
		"failed", len(result.Failed),
		"skipped", result.Skipped,
		"dry_run", r.dryRun,
	)
	return result, nil
}

// stagedDocuments lists the top-level document files of the staging directory.
func (r *Relocator) stagedDocuments() ([]string, error) {
	entries, err := os.ReadDir(r.stagingDir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !naming.HasExtension(entry.Name(), r.extension) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}

func (r *Relocator) relocateDocument(name string, moved map[string]string, result *interfaces.RelocationResult) {
	source := filepath.Join(r.stagingDir, name)
	logger := logging.WithDocumentContext(r.logger, source, "", "relocate")

	fail := func(err error) {
		logger.Error("relocation.document.failed", "error", err)
		result.Failed = append(result.Failed, interfaces.RelocationFailure{Path: source, Err: err})
	}

	content, err := os.ReadFile(source)
	if err != nil {
		fail(fmt.Errorf("read: %w", err))
		return
	}

	fm, _, err := markdown.ParseFrontMatter(content)
	if err != nil {
		logger.Warn("relocation.frontmatter.degraded", "error", err)
	}

	dest, err := Destination(r.destinationDir, fm, name, r.extension)
	if err != nil {
		fail(err)
		return
	}
	if filepath.Clean(dest) == source {
		logger.Debug("relocation.document.in_place")
		result.Skipped++
		return
	}

	rewritten := r.relocateImages(source, content, moved, result, logger)
	if r.injectTitle && fm.HasTitle() {
		if out, injected := markdown.InjectTitleHeading(rewritten, fm.Title); injected {
			logger.Debug("relocation.heading.injected", "title", fm.Title)
			rewritten = out
		}
	}

	if r.dryRun {
		logger.Info("relocation.document.planned", "destination", dest)
		result.Moved = append(result.Moved, interfaces.RelocatedDocument{Source: source, Destination: dest})
		return
	}

	if exists(dest) {
		logger.Warn("relocation.document.overwrite", "destination", dest)
	}
	if string(rewritten) == string(content) {
		err = moveFile(source, dest)
	} else {
		err = writeMoved(source, dest, rewritten)
	}
	if err != nil {
		fail(err)
		return
	}

	logger.Info("relocation.document.moved", "destination", dest)
	result.Moved = append(result.Moved, interfaces.RelocatedDocument{Source: source, Destination: dest})
}

// relocateImages moves every local image referenced by content and returns
// the content with rewritten references. moved maps absolute source paths to
// URLs so an image shared by several documents moves once.
func (r *Relocator) relocateImages(document string, content []byte, moved map[string]string, result *interfaces.RelocationResult, logger interfaces.Logger) []byte {
	if r.assetsDir == "" {
		return content
	}
	refs := findImageRefs(content)
	if len(refs) == 0 {
		return content
	}

	urls := make(map[string]string)
	for _, ref := range refs {
		if _, done := urls[ref.src]; done {
			continue
		}
		rel, ok := r.localImagePath(ref.src)
		if !ok {
			continue
		}
		source := filepath.Join(r.stagingDir, rel)
		if url, ok := moved[source]; ok {
			urls[ref.src] = url
			continue
		}

		info, err := os.Stat(source)
		if err != nil || info.IsDir() {
			logger.Warn("relocation.image.missing", "src", ref.src, "resolved", source)
			continue
		}

		generated := r.assetName(source)
		target := filepath.Join(r.assetsDir, generated)
		url := r.assetURLPrefix + "/" + generated

		if !r.dryRun {
			if err := moveFile(source, target); err != nil {
				logger.Error("relocation.image.failed", "src", ref.src, "error", err)
				result.Failed = append(result.Failed, interfaces.RelocationFailure{Path: source, Err: err})
				continue
			}
		}

		logger.Debug("relocation.image.moved", "src", ref.src, "destination", target)
		moved[source] = url
		urls[ref.src] = url
		result.Assets = append(result.Assets, interfaces.RelocatedAsset{
			Document:    document,
			Source:      source,
			Destination: target,
			URL:         url,
		})
	}
	return rewriteRefs(content, refs, urls)
}
