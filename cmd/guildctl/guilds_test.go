package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wetee-dao/guildgate/internal/model"
)

func resetWriteFlags() {
	useSudo, useGov, deposit, memberScope, memberID = false, false, "", string(model.MemberScopeGlobal), 0
}

func TestWithGov(t *testing.T) {
	resetWriteFlags()
	ext, err := withGov()
	require.NoError(t, err)
	assert.Nil(t, ext)

	resetWriteFlags()
	useSudo = true
	ext, err = withGov()
	require.NoError(t, err)
	assert.Equal(t, &model.WithGov{RunType: model.GovRunSudo}, ext)

	resetWriteFlags()
	useGov, deposit, memberScope, memberID = true, "100", "guild", 3
	ext, err = withGov()
	require.NoError(t, err)
	assert.Equal(t, model.GovRunGov, ext.RunType)
	assert.Equal(t, "100", ext.Amount.String())
	assert.Equal(t, model.MemberData{Scope: model.MemberScopeGuild, ID: 3}, ext.Member)

	resetWriteFlags()
	useGov, deposit = true, "100000000000000000000000"
	ext, err = withGov()
	require.NoError(t, err)
	assert.Equal(t, "100000000000000000000000", ext.Amount.String())

	resetWriteFlags()
	useGov, deposit = true, "-1"
	_, err = withGov()
	assert.ErrorContains(t, err, "--deposit")

	resetWriteFlags()
	deposit = "5"
	_, err = withGov()
	assert.Error(t, err)
	resetWriteFlags()
}

func TestParseUint(t *testing.T) {
	v, err := parseUint("7", "dao-id", 64)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), v)

	_, err = parseUint("-1", "dao-id", 64)
	assert.ErrorContains(t, err, "dao-id")

	_, err = parseUint("4294967296", "index", 32)
	assert.Error(t, err)
}

func TestValidation(t *testing.T) {
	assert.NoError(t, validation(nil))

	req := model.CreateGuildRequest{From: "5GrwvaEF5zXb26Fz9rcQpDWS57CtERHpNehXCPcNoHGKutQY"}
	assert.Error(t, validation(req.Validate()))
}

func TestCommandTree(t *testing.T) {
	for _, path := range [][]string{
		{"guilds", "list"},
		{"guilds", "info"},
		{"guilds", "members"},
		{"guilds", "create"},
		{"guilds", "join"},
		{"account", "import"},
	} {
		cmd, _, err := rootCmd.Find(path)
		require.NoError(t, err, path)
		assert.Equal(t, path[len(path)-1], cmd.Name())
	}
}
