package adapters

import (
	"github.com/google/wire"
	"github.com/spf13/afero"
	"github.com/trebuchet-org/deployledger/internal/adapters/blockchain"
	"github.com/trebuchet-org/deployledger/internal/adapters/chains"
	"github.com/trebuchet-org/deployledger/internal/adapters/contracts"
	"github.com/trebuchet-org/deployledger/internal/adapters/fs"
	"github.com/trebuchet-org/deployledger/internal/adapters/git"
	"github.com/trebuchet-org/deployledger/internal/adapters/interactive"
	"github.com/trebuchet-org/deployledger/internal/adapters/markdown"
	"github.com/trebuchet-org/deployledger/internal/adapters/progress"
	"github.com/trebuchet-org/deployledger/internal/adapters/verification"
	"github.com/trebuchet-org/deployledger/internal/domain/models"
	"github.com/trebuchet-org/deployledger/internal/usecase"
)

// ProvideFs provides the host filesystem
func ProvideFs() afero.Fs {
	return afero.NewOsFs()
}

// ProvideCommandRunner runs external tools as subprocesses
func ProvideCommandRunner() verification.CommandRunner {
	return verification.ExecRunner
}

// ProvideRoleCatalog provides the documentation metadata of the core roles
func ProvideRoleCatalog() models.RoleCatalog {
	return models.DefaultRoleCatalog()
}

// ChainSet provides the static chain registry
var ChainSet = wire.NewSet(
	chains.NewRegistry,
	wire.Bind(new(usecase.ChainRegistry), new(*chains.Registry)),
)

// FSSet provides filesystem-based implementations
var FSSet = wire.NewSet(
	ProvideFs,

	fs.NewMetadataStore,
	wire.Bind(new(usecase.MetadataStore), new(*fs.MetadataStore)),

	fs.NewDocumentWriter,
	wire.Bind(new(usecase.DocumentWriter), new(*fs.DocumentWriter)),

	fs.NewPlanReader,
	wire.Bind(new(usecase.PlanReader), new(*fs.PlanReader)),
)

// ContractsSet provides the source and artifact index
var ContractsSet = wire.NewSet(
	contracts.NewFileIndex,
	wire.Bind(new(usecase.FileIndex), new(*contracts.FileIndex)),
	wire.Bind(new(usecase.ArtifactIndex), new(*contracts.FileIndex)),
)

// VerificationSet provides explorer verification through forge
var VerificationSet = wire.NewSet(
	ProvideCommandRunner,
	verification.NewForgeVerifier,
	wire.Bind(new(usecase.ContractVerifier), new(*verification.ForgeVerifier)),
)

// RenderSet provides the table renderer
var RenderSet = wire.NewSet(
	markdown.NewRenderer,
	wire.Bind(new(usecase.TableRenderer), new(*markdown.Renderer)),
)

// InteractiveSet provides interactive implementations
var InteractiveSet = wire.NewSet(
	interactive.NewPrompter,
	wire.Bind(new(usecase.Confirmer), new(*interactive.Prompter)),
	wire.Bind(new(usecase.ChainSelector), new(*interactive.Prompter)),
)

// BlockchainSet provides JSON-RPC connections
var BlockchainSet = wire.NewSet(
	blockchain.NewDialer,
	wire.Bind(new(usecase.ChainDialer), new(*blockchain.Dialer)),
)

// GitSet provides the source revision
var GitSet = wire.NewSet(
	git.NewRevision,
	wire.Bind(new(usecase.SourceControl), new(*git.Revision)),
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	ProvideRoleCatalog,
	progress.NewSink,

	ChainSet,
	FSSet,
	ContractsSet,
	VerificationSet,
	RenderSet,
	InteractiveSet,
	BlockchainSet,
	GitSet,
)
