package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gradlint/pkg/config"
)

func TestRulesCommand_RuleFormatFlag(t *testing.T) {
	cmd := newRulesCommand()
	flag := cmd.Flags().Lookup("rule-format")
	require.NotNil(t, flag)
	assert.Equal(t, "combined", flag.DefValue)
}

func TestOutputRulesJSON(t *testing.T) {
	var buf bytes.Buffer
	err := outputRulesJSON(&buf, []config.RuleInfo{
		{ID: "GL009", Name: "dynamic-version", Severity: config.SeverityWarning, Enabled: true},
	})
	require.NoError(t, err)

	var got []ruleInfo
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "dynamic-version", got[0].Name)
	assert.Equal(t, "warning", got[0].Severity)
	assert.False(t, got[0].Fixable)
}
