package models

import (
	"slices"
	"strings"
	"unicode"
)

// CoreRole identifies the function of a core protocol contract.
// The set is closed: only the roles declared here may appear under "core".
type CoreRole string

const (
	RoleChainlinkAdapterImplementation      CoreRole = "ChainlinkAdapterImplementation"
	RoleChainlinkAdapterProxy               CoreRole = "ChainlinkAdapterProxy"
	RolePremiaDiamond                       CoreRole = "PremiaDiamond"
	RolePoolFactoryImplementation           CoreRole = "PoolFactoryImplementation"
	RolePoolFactoryProxy                    CoreRole = "PoolFactoryProxy"
	RolePoolFactoryDeployer                 CoreRole = "PoolFactoryDeployer"
	RoleUserSettingsImplementation          CoreRole = "UserSettingsImplementation"
	RoleUserSettingsProxy                   CoreRole = "UserSettingsProxy"
	RoleExchangeHelper                      CoreRole = "ExchangeHelper"
	RoleReferralImplementation              CoreRole = "ReferralImplementation"
	RoleReferralProxy                       CoreRole = "ReferralProxy"
	RoleVxPremiaImplementation              CoreRole = "VxPremiaImplementation"
	RoleVxPremiaProxy                       CoreRole = "VxPremiaProxy"
	RoleERC20Router                         CoreRole = "ERC20Router"
	RolePoolBase                            CoreRole = "PoolBase"
	RolePoolCore                            CoreRole = "PoolCore"
	RolePoolDepositWithdraw                 CoreRole = "PoolDepositWithdraw"
	RolePoolTrade                           CoreRole = "PoolTrade"
	RoleOrderbookStream                     CoreRole = "OrderbookStream"
	RoleVaultRegistryImplementation         CoreRole = "VaultRegistryImplementation"
	RoleVaultRegistryProxy                  CoreRole = "VaultRegistryProxy"
	RoleVaultMiningImplementation           CoreRole = "VaultMiningImplementation"
	RoleVaultMiningProxy                    CoreRole = "VaultMiningProxy"
	RoleOptionMathExternal                  CoreRole = "OptionMathExternal"
	RoleUnderwriterVaultImplementation      CoreRole = "UnderwriterVaultImplementation"
	RoleVolatilityOracleImplementation      CoreRole = "VolatilityOracleImplementation"
	RoleVolatilityOracleProxy               CoreRole = "VolatilityOracleProxy"
	RoleOptionPSFactoryImplementation       CoreRole = "OptionPSFactoryImplementation"
	RoleOptionPSFactoryProxy                CoreRole = "OptionPSFactoryProxy"
	RoleOptionPSImplementation              CoreRole = "OptionPSImplementation"
	RoleOptionRewardFactoryImplementation   CoreRole = "OptionRewardFactoryImplementation"
	RoleOptionRewardFactoryProxy            CoreRole = "OptionRewardFactoryProxy"
	RoleOptionRewardImplementation          CoreRole = "OptionRewardImplementation"
	RoleFeeConverterImplementation          CoreRole = "FeeConverterImplementation"
	RoleRewardDistributorImplementation     CoreRole = "RewardDistributorImplementation"
	RoleDualMiningImplementation            CoreRole = "DualMiningImplementation"
	RoleDualMiningManager                   CoreRole = "DualMiningManager"
	RolePriceRepositoryImplementation       CoreRole = "PriceRepositoryImplementation"
	RolePriceRepositoryProxy                CoreRole = "PriceRepositoryProxy"
	RoleSettlementPriceOracleImplementation CoreRole = "SettlementPriceOracleImplementation"
)

// CoreRoles lists every valid core role in declaration order
var CoreRoles = []CoreRole{
	RoleChainlinkAdapterImplementation,
	RoleChainlinkAdapterProxy,
	RolePremiaDiamond,
	RolePoolFactoryImplementation,
	RolePoolFactoryProxy,
	RolePoolFactoryDeployer,
	RoleUserSettingsImplementation,
	RoleUserSettingsProxy,
	RoleExchangeHelper,
	RoleReferralImplementation,
	RoleReferralProxy,
	RoleVxPremiaImplementation,
	RoleVxPremiaProxy,
	RoleERC20Router,
	RolePoolBase,
	RolePoolCore,
	RolePoolDepositWithdraw,
	RolePoolTrade,
	RoleOrderbookStream,
	RoleVaultRegistryImplementation,
	RoleVaultRegistryProxy,
	RoleVaultMiningImplementation,
	RoleVaultMiningProxy,
	RoleOptionMathExternal,
	RoleUnderwriterVaultImplementation,
	RoleVolatilityOracleImplementation,
	RoleVolatilityOracleProxy,
	RoleOptionPSFactoryImplementation,
	RoleOptionPSFactoryProxy,
	RoleOptionPSImplementation,
	RoleOptionRewardFactoryImplementation,
	RoleOptionRewardFactoryProxy,
	RoleOptionRewardImplementation,
	RoleFeeConverterImplementation,
	RoleRewardDistributorImplementation,
	RoleDualMiningImplementation,
	RoleDualMiningManager,
	RolePriceRepositoryImplementation,
	RolePriceRepositoryProxy,
	RoleSettlementPriceOracleImplementation,
}

// IsValid reports whether the role belongs to the closed role set
func (r CoreRole) IsValid() bool {
	return slices.Contains(CoreRoles, r)
}

// RoleNames returns the role identifiers as strings
func RoleNames() []string {
	names := make([]string, len(CoreRoles))
	for i, role := range CoreRoles {
		names[i] = string(role)
	}
	return names
}

// RoleInfo describes how a core role is presented in documentation
type RoleInfo struct {
	// Family is the human name of the component the role belongs to
	Family string
	// Contract is the Solidity contract name used to locate the source file
	Contract string
	// Summary is a one-line description of the component
	Summary string
}

// RoleDisplay is the rendered name and description for one core entry
type RoleDisplay struct {
	Name        string
	Description string
	Contract    string
}

// RoleCatalog maps core roles to their documentation metadata
type RoleCatalog map[CoreRole]RoleInfo

// Display resolves the name and description of a role for a given contract type.
// Roles missing from the catalog fall back to the raw role name.
func (c RoleCatalog) Display(role CoreRole, contractType ContractType) RoleDisplay {
	info, ok := c[role]
	if !ok {
		return RoleDisplay{Name: string(role), Contract: string(role)}
	}

	display := RoleDisplay{Name: info.Family, Description: info.Summary, Contract: info.Contract}
	switch contractType {
	case ContractTypeProxy:
		display.Name = withSuffix(info.Family, "Proxy")
		display.Description = "Proxy of the " + lowerFirst(info.Summary)
	case ContractTypeImplementation:
		display.Name = withSuffix(info.Family, "Implementation")
		display.Description = "Implementation of the " + lowerFirst(info.Summary)
	case ContractTypeDiamondProxy:
		display.Name = withSuffix(info.Family, "Diamond")
		display.Description = info.Summary + " (diamond proxy)"
	case ContractTypeDiamondFacet:
		display.Name = withSuffix(info.Family, "Facet")
		display.Description = info.Summary + " (diamond facet)"
	}
	return display
}

// withSuffix appends word unless the family name already ends with it
func withSuffix(family, word string) string {
	if strings.HasSuffix(family, " "+word) || family == word {
		return family
	}
	return family + " " + word
}

// lowerFirst lowercases the first letter unless the word is an acronym
func lowerFirst(s string) string {
	runes := []rune(s)
	if len(runes) == 0 || (len(runes) > 1 && unicode.IsUpper(runes[1])) {
		return s
	}
	runes[0] = unicode.ToLower(runes[0])
	return string(runes)
}

// DefaultRoleCatalog returns the documentation metadata for all core roles
func DefaultRoleCatalog() RoleCatalog {
	return RoleCatalog{
		RoleChainlinkAdapterImplementation:      {Family: "Chainlink Adapter", Contract: "ChainlinkAdapter", Summary: "Oracle adapter for Chainlink price feeds"},
		RoleChainlinkAdapterProxy:               {Family: "Chainlink Adapter", Contract: "ChainlinkAdapterProxy", Summary: "Oracle adapter for Chainlink price feeds"},
		RolePremiaDiamond:                       {Family: "Premia Diamond", Contract: "Premia", Summary: "Diamond routing every pool call to its facets"},
		RolePoolFactoryImplementation:           {Family: "Pool Factory", Contract: "PoolFactory", Summary: "Factory deploying option pools"},
		RolePoolFactoryProxy:                    {Family: "Pool Factory", Contract: "PoolFactoryProxy", Summary: "Factory deploying option pools"},
		RolePoolFactoryDeployer:                 {Family: "Pool Factory Deployer", Contract: "PoolFactoryDeployer", Summary: "Deterministic deployer used by the pool factory"},
		RoleUserSettingsImplementation:          {Family: "User Settings", Contract: "UserSettings", Summary: "Per-user operator and action authorization"},
		RoleUserSettingsProxy:                   {Family: "User Settings", Contract: "UserSettingsProxy", Summary: "Per-user operator and action authorization"},
		RoleExchangeHelper:                      {Family: "Exchange Helper", Contract: "ExchangeHelper", Summary: "Helper executing swaps on external exchanges"},
		RoleReferralImplementation:              {Family: "Referral", Contract: "Referral", Summary: "Referral rebate accounting"},
		RoleReferralProxy:                       {Family: "Referral", Contract: "ReferralProxy", Summary: "Referral rebate accounting"},
		RoleVxPremiaImplementation:              {Family: "VxPremia", Contract: "VxPremia", Summary: "Vote-escrowed PREMIA staking"},
		RoleVxPremiaProxy:                       {Family: "VxPremia", Contract: "VxPremiaProxy", Summary: "Vote-escrowed PREMIA staking"},
		RoleERC20Router:                         {Family: "ERC20 Router", Contract: "ERC20Router", Summary: "Router pulling approved tokens into pools"},
		RolePoolBase:                            {Family: "Pool Base", Contract: "PoolBase", Summary: "ERC1155 position token logic of the pool"},
		RolePoolCore:                            {Family: "Pool Core", Contract: "PoolCore", Summary: "Core exercise and settlement logic of the pool"},
		RolePoolDepositWithdraw:                 {Family: "Pool Deposit Withdraw", Contract: "PoolDepositWithdraw", Summary: "Range order deposit and withdrawal logic of the pool"},
		RolePoolTrade:                           {Family: "Pool Trade", Contract: "PoolTrade", Summary: "Trading and quote filling logic of the pool"},
		RoleOrderbookStream:                     {Family: "Orderbook Stream", Contract: "OrderbookStream", Summary: "Event stream publishing orderbook quotes"},
		RoleVaultRegistryImplementation:         {Family: "Vault Registry", Contract: "VaultRegistry", Summary: "Registry of vaults and their settings"},
		RoleVaultRegistryProxy:                  {Family: "Vault Registry", Contract: "VaultRegistryProxy", Summary: "Registry of vaults and their settings"},
		RoleVaultMiningImplementation:           {Family: "Vault Mining", Contract: "VaultMining", Summary: "Liquidity mining rewards for vault depositors"},
		RoleVaultMiningProxy:                    {Family: "Vault Mining", Contract: "VaultMiningProxy", Summary: "Liquidity mining rewards for vault depositors"},
		RoleOptionMathExternal:                  {Family: "Option Math", Contract: "OptionMathExternal", Summary: "Externally linked option pricing library"},
		RoleUnderwriterVaultImplementation:      {Family: "Underwriter Vault", Contract: "UnderwriterVault", Summary: "Vault underwriting options for the pools"},
		RoleVolatilityOracleImplementation:      {Family: "Volatility Oracle", Contract: "VolatilityOracle", Summary: "Implied volatility surface oracle"},
		RoleVolatilityOracleProxy:               {Family: "Volatility Oracle", Contract: "VolatilityOracleProxy", Summary: "Implied volatility surface oracle"},
		RoleOptionPSFactoryImplementation:       {Family: "OptionPS Factory", Contract: "OptionPSFactory", Summary: "Factory deploying physically settled options"},
		RoleOptionPSFactoryProxy:                {Family: "OptionPS Factory", Contract: "OptionPSFactoryProxy", Summary: "Factory deploying physically settled options"},
		RoleOptionPSImplementation:              {Family: "OptionPS", Contract: "OptionPS", Summary: "Physically settled option"},
		RoleOptionRewardFactoryImplementation:   {Family: "OptionReward Factory", Contract: "OptionRewardFactory", Summary: "Factory deploying option reward programs"},
		RoleOptionRewardFactoryProxy:            {Family: "OptionReward Factory", Contract: "OptionRewardFactoryProxy", Summary: "Factory deploying option reward programs"},
		RoleOptionRewardImplementation:          {Family: "OptionReward", Contract: "OptionReward", Summary: "Option reward program"},
		RoleFeeConverterImplementation:          {Family: "Fee Converter", Contract: "FeeConverter", Summary: "Converter swapping protocol fees into USDC"},
		RoleRewardDistributorImplementation:     {Family: "Reward Distributor", Contract: "RewardDistributor", Summary: "Distributor of option reward payouts"},
		RoleDualMiningImplementation:            {Family: "Dual Mining", Contract: "DualMining", Summary: "Secondary reward stream for vault mining"},
		RoleDualMiningManager:                   {Family: "Dual Mining Manager", Contract: "DualMiningManager", Summary: "Manager deploying dual mining programs"},
		RolePriceRepositoryImplementation:       {Family: "Price Repository", Contract: "PriceRepository", Summary: "Repository of settlement prices"},
		RolePriceRepositoryProxy:                {Family: "Price Repository", Contract: "PriceRepositoryProxy", Summary: "Repository of settlement prices"},
		RoleSettlementPriceOracleImplementation: {Family: "Settlement Price Oracle", Contract: "SettlementPriceOracle", Summary: "Oracle reading prices from the price repository"},
	}
}
