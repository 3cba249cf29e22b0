package version_test

import (
	"encoding/json"
	"runtime"
	"testing"

	// Packages
	version "github.com/mutablelogic/go-tools/pkg/version"
	assert "github.com/stretchr/testify/assert"
)

func Test_version_001(t *testing.T) {
	assert := assert.New(t)

	info := version.New("tools")
	assert.Equal("tools", info.Name)
	assert.NotEmpty(info.Version)
	assert.Equal(runtime.Version(), info.Compiler)
	assert.Equal(runtime.GOOS+"/"+runtime.GOARCH, info.Platform)

	var v map[string]any
	if assert.NoError(json.Unmarshal([]byte(info.String()), &v)) {
		assert.Equal("tools", v["name"])
	}
}

func Test_version_002(t *testing.T) {
	assert := assert.New(t)

	version.GitTag = "v1.2.3"
	t.Cleanup(func() { version.GitTag = "" })
	assert.Equal("v1.2.3", version.Version())
	assert.Equal("v1.2.3", version.New("tools").Tag)
}
