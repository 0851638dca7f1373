package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"slices"
	"sort"
	"strings"

	"github.com/samber/lo"
	"github.com/trebuchet-org/deployledger/internal/domain/config"
	"github.com/trebuchet-org/deployledger/internal/domain/models"
	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// UnresolvedSection collects core entries whose source file could not be found
const UnresolvedSection = "Unresolved"

// Output file names of the generated tables
const (
	CoreTableFile         = "coreTable.md"
	VaultsTableFile       = "vaultsTable.md"
	OptionRewardTableFile = "optionRewardTable.md"
	OptionPSTableFile     = "optionPSTable.md"
)

// openTable describes how one open category is documented
type openTable struct {
	category    models.Category
	file        string
	title       string
	description string
}

var openTables = []openTable{
	{category: models.CategoryVaults, file: VaultsTableFile, title: "Vaults", description: "Underwriter vault"},
	{category: models.CategoryOptionReward, file: OptionRewardTableFile, title: "Option rewards", description: "Option reward program"},
	{category: models.CategoryOptionPS, file: OptionPSTableFile, title: "Physically settled options", description: "Physically settled option"},
}

var (
	coreColumns = []string{"Contract", "Description", "Address", "Explorer", "Source"}
	openColumns = []string{"Name", "Description", "Address", "Explorer"}
)

// TablesResult lists what a render pass produced
type TablesResult struct {
	Chain    config.Chain
	Files    []string
	Warnings []string
}

// GenerateTables renders the deployment record of a chain into Markdown tables
type GenerateTables struct {
	config   *config.RuntimeConfig
	chains   ChainRegistry
	store    MetadataStore
	files    FileIndex
	renderer TableRenderer
	writer   DocumentWriter
	catalog  models.RoleCatalog
	log      *slog.Logger
}

// NewGenerateTables creates a new GenerateTables use case
func NewGenerateTables(
	cfg *config.RuntimeConfig,
	chains ChainRegistry,
	store MetadataStore,
	files FileIndex,
	renderer TableRenderer,
	writer DocumentWriter,
	catalog models.RoleCatalog,
	log *slog.Logger,
) *GenerateTables {
	return &GenerateTables{
		config:   cfg,
		chains:   chains,
		store:    store,
		files:    files,
		renderer: renderer,
		writer:   writer,
		catalog:  catalog,
		log:      log.With("component", "GenerateTables"),
	}
}

// Run loads the record of a chain and regenerates its tables
func (uc *GenerateTables) Run(ctx context.Context, chainID uint64) (*TablesResult, error) {
	record, err := uc.store.Load(ctx, chainID)
	if err != nil {
		return nil, err
	}
	return uc.RenderRecord(ctx, chainID, record)
}

// RenderRecord regenerates the tables of a chain from an in-memory record
func (uc *GenerateTables) RenderRecord(ctx context.Context, chainID uint64, record *models.DeploymentRecord) (*TablesResult, error) {
	docs, result, err := uc.Render(ctx, chainID, record)
	if err != nil {
		return nil, err
	}

	for _, file := range result.Files {
		if err := uc.writer.WriteDocument(ctx, file, docs[file]); err != nil {
			return nil, err
		}
	}
	uc.log.Debug("tables generated", "chain", result.Chain.Name, "files", len(result.Files))
	return result, nil
}

// Render builds every table document of a chain without writing them.
// Documents are keyed by their path relative to the deployments directory.
func (uc *GenerateTables) Render(ctx context.Context, chainID uint64, record *models.DeploymentRecord) (map[string][]byte, *TablesResult, error) {
	chain, err := uc.chains.Chain(chainID)
	if err != nil {
		return nil, nil, err
	}
	metadataPath, err := uc.chains.MetadataPath(chainID)
	if err != nil {
		return nil, nil, err
	}
	dir := path.Dir(metadataPath)

	result := &TablesResult{Chain: chain}
	docs := make(map[string][]byte)
	add := func(file string, doc *models.TableDocument) {
		rel := path.Join(dir, file)
		docs[rel] = uc.renderer.Render(doc)
		result.Files = append(result.Files, rel)
	}

	core, warnings := uc.coreDocument(ctx, chain, record)
	result.Warnings = warnings
	add(CoreTableFile, core)

	if chain.DisplayName == uc.config.Ledger.NoOpenCategories {
		uc.log.Debug("skipping open categories", "chain", chain.DisplayName)
		return docs, result, nil
	}
	for _, table := range openTables {
		add(table.file, uc.openDocument(chain, table, record.Named(table.category)))
	}
	return docs, result, nil
}

type coreRow struct {
	name        string
	description string
	entry       *models.ContractEntry
	sourcePath  string
}

func (uc *GenerateTables) coreDocument(ctx context.Context, chain config.Chain, record *models.DeploymentRecord) (*models.TableDocument, []string) {
	var warnings []string
	sections := make(map[string][]coreRow)
	caser := cases.Title(language.English)

	roles := lo.Keys(record.Core)
	slices.Sort(roles)

	for _, role := range roles {
		entry := record.Core[role]
		if entry == nil {
			continue
		}
		display := uc.catalog.Display(role, entry.ContractType)
		row := coreRow{name: display.Name, description: display.Description, entry: entry}

		section := UnresolvedSection
		if sourcePath, ok := uc.files.ResolveFilePath(ctx, display.Contract); ok {
			row.sourcePath = sourcePath
			section = caser.String(sectionSegment(sourcePath))
		} else {
			msg := fmt.Sprintf("no source file found for %s (core.%s)", display.Contract, role)
			uc.log.Warn("unresolved contract", "contract", display.Contract, "role", role)
			warnings = append(warnings, msg)
		}
		sections[section] = append(sections[section], row)
	}

	names := make([]string, 0, len(sections))
	for name := range sections {
		if name != UnresolvedSection {
			names = append(names, name)
		}
	}
	sortFold(names, func(s string) string { return s })
	if _, ok := sections[UnresolvedSection]; ok {
		names = append(names, UnresolvedSection)
	}

	doc := &models.TableDocument{Title: fmt.Sprintf("Core contracts on %s", chain.DisplayName)}
	for _, name := range names {
		rows := sections[name]
		sortFold(rows, func(r coreRow) string { return r.name })

		section := models.TableSection{Title: name, Columns: coreColumns}
		for _, row := range rows {
			section.Rows = append(section.Rows, []string{
				row.name,
				row.description,
				row.entry.Address,
				explorerLink(chain, row.entry.Address),
				uc.sourceLink(row.entry.CommitHash, row.sourcePath),
			})
		}
		doc.Sections = append(doc.Sections, section)
	}
	if len(doc.Sections) == 0 {
		doc.Sections = append(doc.Sections, models.TableSection{Columns: coreColumns})
	}
	return doc, warnings
}

func (uc *GenerateTables) openDocument(chain config.Chain, table openTable, entries *models.NamedEntries) *models.TableDocument {
	section := models.TableSection{Columns: openColumns}
	for _, name := range entries.Names() {
		entry, _ := entries.Get(name)
		if entry == nil {
			continue
		}
		section.Rows = append(section.Rows, []string{
			name,
			table.description,
			entry.Address,
			explorerLink(chain, entry.Address),
		})
	}

	return &models.TableDocument{
		Title:    fmt.Sprintf("%s on %s", table.title, chain.DisplayName),
		Sections: []models.TableSection{section},
	}
}

func (uc *GenerateTables) sourceLink(commit, sourcePath string) string {
	if commit == "" || sourcePath == "" {
		return ""
	}
	repo := strings.TrimSuffix(uc.config.Ledger.RepositoryURL, "/")
	return fmt.Sprintf("[📄](%s/blob/%s/%s)", repo, commit, sourcePath)
}

func explorerLink(chain config.Chain, address string) string {
	if address == "" {
		return ""
	}
	return fmt.Sprintf("[🔗](%s)", explorerURL(chain, address))
}

// sectionSegment returns the directory a source file is grouped under: the
// second path segment, or the first for files directly below the sources root
func sectionSegment(sourcePath string) string {
	segments := strings.Split(sourcePath, "/")
	if len(segments) >= 3 {
		return segments[1]
	}
	return segments[0]
}

// sortFold orders items case-insensitively, breaking ties byte-wise so the
// order never depends on map iteration
func sortFold[T any](items []T, key func(T) string) {
	c := collate.New(language.English, collate.IgnoreCase)
	sort.SliceStable(items, func(i, j int) bool {
		a, b := key(items[i]), key(items[j])
		if cmp := c.CompareString(a, b); cmp != 0 {
			return cmp < 0
		}
		return a < b
	})
}
