package render

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/trebuchet-org/deployledger/internal/config"
	domainconfig "github.com/trebuchet-org/deployledger/internal/domain/config"
)

// ChainsRenderer renders the supported chains
type ChainsRenderer struct {
	out io.Writer
}

// NewChainsRenderer creates a new chains renderer
func NewChainsRenderer(out io.Writer) *ChainsRenderer {
	return &ChainsRenderer{out: out}
}

// Render lists each chain with the env var its RPC endpoint is read from
func (r *ChainsRenderer) Render(chains []domainconfig.Chain) error {
	t := newConsoleTable("CHAIN ID", "NAME", "DISPLAY NAME", "EXPLORER", "RPC ENV")
	for _, chain := range chains {
		envVar := config.RPCEnvVarName(chain.Name)
		if os.Getenv(envVar) == "" {
			envVar = faintStyle.Sprint(envVar + " (unset)")
		}
		t.AppendRow([]any{strconv.FormatUint(chain.ID, 10), chain.Name, chain.DisplayName, chain.ExplorerURL, envVar})
	}
	_, err := fmt.Fprintln(r.out, t.Render())
	return err
}

var _ Renderer[[]domainconfig.Chain] = (*ChainsRenderer)(nil)
