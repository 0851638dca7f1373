package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeploymentRecord_PutReplacesWholeEntry(t *testing.T) {
	record := NewRecord()
	target := CoreTarget{Role: RoleVxPremiaProxy}

	require.NoError(t, record.Put(target, &ContractEntry{
		Address: "0x1111111111111111111111111111111111111111",
		Owner:   "0x2222222222222222222222222222222222222222",
		TxHash:  "0xabc",
		Block:   10,
	}))
	require.NoError(t, record.Put(target, &ContractEntry{
		Address: "0x3333333333333333333333333333333333333333",
	}))

	entry, ok := record.Entry(target)
	require.True(t, ok)
	assert.Equal(t, "0x3333333333333333333333333333333333333333", entry.Address)
	assert.Empty(t, entry.Owner)
	assert.Empty(t, entry.TxHash)
	assert.Zero(t, entry.Block)
}

func TestDeploymentRecord_PutCreatesCategories(t *testing.T) {
	record := &DeploymentRecord{}

	require.NoError(t, record.Put(FeeConverterTarget{Slot: FeeConverterTreasury}, &ContractEntry{Address: "0x01"}))
	require.NoError(t, record.Put(NamedTarget{Category: CategoryDualMining, Name: "pSV-1"}, &ContractEntry{Address: "0x02"}))
	require.NoError(t, record.Put(CoreTarget{Role: RoleERC20Router}, &ContractEntry{Address: "0x03"}))

	require.NotNil(t, record.FeeConverter)
	assert.Equal(t, "0x01", record.FeeConverter.Treasury.Address)
	assert.Equal(t, []string{"pSV-1"}, record.DualMining.Names())
	assert.Equal(t, "0x03", record.Core[RoleERC20Router].Address)

	assert.Error(t, record.Put(CoreTarget{Role: "NotARole"}, &ContractEntry{}))
	assert.Error(t, record.Put(NamedTarget{Category: CategoryTokens, Name: "USDC"}, &ContractEntry{}))
}

func TestDeploymentRecord_JSONShape(t *testing.T) {
	raw := `{
  "addresses": {"treasury": "0xt", "insuranceFund": "0xi", "dao": "0xd", "lzEndpoint": "0xl"},
  "tokens": {"USDC": "0xu"},
  "core": {"PoolFactoryProxy": {"address": "0xAAA", "contractType": "Proxy", "deploymentArgs": [], "commitHash": "c", "owner": ""}},
  "vaults": {
    "zz-last-alphabetically": {"address": "0x1", "contractType": "Proxy", "deploymentArgs": [], "commitHash": "c", "owner": ""},
    "aa-first-alphabetically": {"address": "0x2", "contractType": "Proxy", "deploymentArgs": [], "commitHash": "c", "owner": ""}
  }
}`

	var record DeploymentRecord
	require.NoError(t, json.Unmarshal([]byte(raw), &record))

	assert.Equal(t, []string{"zz-last-alphabetically", "aa-first-alphabetically"}, record.Vaults.Names())
	assert.Nil(t, record.OptionPS)
	assert.Nil(t, record.FeeConverter)

	require.NoError(t, record.Put(NamedTarget{Category: CategoryVaults, Name: "mm-appended"}, &ContractEntry{Address: "0x3"}))

	data, err := json.Marshal(&record)
	require.NoError(t, err)

	var generic map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &generic))
	assert.NotContains(t, generic, "optionPS")
	assert.NotContains(t, generic, "feeConverter")

	var vaults NamedEntries
	require.NoError(t, json.Unmarshal(generic["vaults"], &vaults))
	assert.Equal(t, []string{"zz-last-alphabetically", "aa-first-alphabetically", "mm-appended"}, vaults.Names())

	entry, ok := vaults.Get("mm-appended")
	require.True(t, ok)
	assert.Equal(t, "0x3", entry.Address)
}

func TestDeploymentRecord_MarshalEmptyCategories(t *testing.T) {
	data, err := json.Marshal(NewRecord())
	require.NoError(t, err)
	assert.Contains(t, string(data), `"tokens":{}`)
	assert.Contains(t, string(data), `"core":{}`)

	data, err = json.Marshal(&DeploymentRecord{Vaults: NewNamedEntries()})
	require.NoError(t, err)
	assert.Equal(t, `{"vaults":{}}`, string(data))
}

func TestContractEntry_MarshalOmitsMissingTransaction(t *testing.T) {
	data, err := json.Marshal(&ContractEntry{Address: "0xBBB", ContractType: ContractTypeImplementation})
	require.NoError(t, err)

	assert.JSONEq(t, `{"address":"0xBBB","contractType":"Implementation","deploymentArgs":[],"commitHash":"","owner":""}`, string(data))
}

func TestDeploymentRecord_CloneIsDeep(t *testing.T) {
	record := NewRecord()
	require.NoError(t, record.Put(CoreTarget{Role: RolePoolCore}, &ContractEntry{Address: "0x1", DeploymentArgs: []string{"a"}}))
	record.Tokens["USDC"] = "0xu"

	clone := record.Clone()
	clone.Core[RolePoolCore].DeploymentArgs[0] = "b"
	clone.Tokens["USDC"] = "0xother"

	assert.Equal(t, "a", record.Core[RolePoolCore].DeploymentArgs[0])
	assert.Equal(t, "0xu", record.Tokens["USDC"])
}

func TestRoleCatalog_Display(t *testing.T) {
	catalog := DefaultRoleCatalog()

	for _, role := range CoreRoles {
		_, ok := catalog[role]
		assert.True(t, ok, "role %s has no catalog entry", role)
	}

	proxy := catalog.Display(RolePoolFactoryProxy, ContractTypeProxy)
	assert.Equal(t, "Pool Factory Proxy", proxy.Name)
	assert.Equal(t, "Proxy of the factory deploying option pools", proxy.Description)
	assert.Equal(t, "PoolFactoryProxy", proxy.Contract)

	router := catalog.Display(RoleERC20Router, ContractTypeImplementation)
	assert.Equal(t, "ERC20 Router Implementation", router.Name)
	assert.Equal(t, "Implementation of the router pulling approved tokens into pools", router.Description)

	facet := catalog.Display(RolePoolBase, ContractTypeDiamondFacet)
	assert.Equal(t, "Pool Base Facet", facet.Name)
	assert.Equal(t, "ERC1155 position token logic of the pool (diamond facet)", facet.Description)

	unknown := RoleCatalog{}.Display(RolePoolTrade, ContractTypeStandalone)
	assert.Equal(t, "PoolTrade", unknown.Name)
	assert.Empty(t, unknown.Description)
}
