package version

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGet(t *testing.T) {
	info := Get()

	assert.Equal(t, Version, info.Version)
	assert.Equal(t, CommitHash, info.CommitHash)
	assert.Equal(t, BuildTime, info.BuildTime)
	assert.Equal(t, runtime.Version(), info.GoVersion)
	assert.Equal(t, runtime.GOOS+"/"+runtime.GOARCH, info.Platform)
}

func TestString(t *testing.T) {
	info := Info{Version: "v1.2.3", CommitHash: "abc1234", BuildTime: "2026-08-31"}

	assert.Equal(t, "opticgen v1.2.3 (commit abc1234, built 2026-08-31)", info.String())
}
