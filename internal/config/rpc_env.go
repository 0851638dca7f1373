package config

import (
	"os"
	"strings"
	"unicode"
)

// RPCEnvVarName generates the conventional env var name for a chain's RPC URL.
// Convention: camelCase words split by underscores, uppercase, append _RPC_URL.
// Examples: arbitrum -> ARBITRUM_RPC_URL, arbitrumGoerli -> ARBITRUM_GOERLI_RPC_URL
func RPCEnvVarName(chainName string) string {
	var b strings.Builder
	runes := []rune(chainName)
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) && unicode.IsLower(runes[i-1]) {
			b.WriteByte('_')
		}
		b.WriteRune(unicode.ToUpper(r))
	}
	name := strings.NewReplacer("-", "_", ".", "_").Replace(b.String())
	return name + "_RPC_URL"
}

// ResolveRPCURL picks the RPC URL of a chain: the explicit value, then the
// local fork endpoint when forking, then the chain's env var.
func ResolveRPCURL(explicit, chainName string, fork bool) string {
	if explicit != "" {
		return explicit
	}
	if fork {
		return DefaultForkRPCURL
	}
	return os.Getenv(RPCEnvVarName(chainName))
}
