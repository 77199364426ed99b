package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/devdash/devdash/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSONSuccess_BasicData(t *testing.T) {
	var buf bytes.Buffer

	err := WriteJSONSuccess(&buf, map[string]string{"key": "value"})
	require.NoError(t, err)

	var env JSONEnvelope
	require.NoError(t, json.Unmarshal(buf.Bytes(), &env))

	assert.True(t, env.Success)
	assert.Nil(t, env.Error)
	dataMap, ok := env.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "value", dataMap["key"])
}

func TestWriteJSONSuccess_Indented(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSONSuccess(&buf, []int{1}))
	assert.Contains(t, buf.String(), "\n  \"success\": true")
}

func TestWriteJSONFromError(t *testing.T) {
	var buf bytes.Buffer

	err := errors.New(errors.ErrInput, "Bad pane", "Use 1-6")
	require.NoError(t, WriteJSONFromError(&buf, err))

	var env JSONEnvelope
	require.NoError(t, json.Unmarshal(buf.Bytes(), &env))

	assert.False(t, env.Success)
	assert.Nil(t, env.Data)
	require.NotNil(t, env.Error)
	assert.Equal(t, ErrCodeInvalidInput, env.Error.Code)
	assert.Equal(t, "Bad pane", env.Error.Message)
	assert.Equal(t, "Use 1-6", env.Error.Suggestion)
}

func TestErrorToJSON(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
		wantMsg  string
	}{
		{
			name:     "config not found",
			err:      errors.New(errors.ErrConfig, "Specified config file not found: x.yaml", "Check the path"),
			wantCode: ErrCodeConfigNotFound,
			wantMsg:  "Specified config file not found: x.yaml",
		},
		{
			name:     "config invalid",
			err:      errors.New(errors.ErrConfig, "refresh_seconds must be at least 1", ""),
			wantCode: ErrCodeConfigInvalid,
			wantMsg:  "refresh_seconds must be at least 1",
		},
		{
			name:     "collect",
			err:      errors.New(errors.ErrCollect, "git failed", ""),
			wantCode: ErrCodeCollectFailed,
			wantMsg:  "git failed",
		},
		{
			name:     "plugin",
			err:      errors.New(errors.ErrPlugin, "plugin hung", ""),
			wantCode: ErrCodePluginFailed,
			wantMsg:  "plugin hung",
		},
		{
			name:     "exec with cause",
			err:      errors.WrapWithCode(fmt.Errorf("exit status 1"), errors.ErrExec, "Command failed", ""),
			wantCode: ErrCodeCommandFailed,
			wantMsg:  "Command failed: exit status 1",
		},
		{
			name:     "wrapped structured error",
			err:      fmt.Errorf("outer: %w", errors.New(errors.ErrInput, "Bad input", "")),
			wantCode: ErrCodeInvalidInput,
			wantMsg:  "Bad input",
		},
		{
			name:     "plain error",
			err:      fmt.Errorf("boom"),
			wantCode: ErrCodeUnknown,
			wantMsg:  "boom",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ErrorToJSON(tt.err)
			require.NotNil(t, got)
			assert.Equal(t, tt.wantCode, got.Code)
			assert.Equal(t, tt.wantMsg, got.Message)
		})
	}
}

func TestErrorToJSON_Nil(t *testing.T) {
	assert.Nil(t, ErrorToJSON(nil))
}

func TestMapErrorCode_Unknown(t *testing.T) {
	assert.Equal(t, ErrCodeUnknown, mapErrorCode("SOMETHING", "x"))
}
