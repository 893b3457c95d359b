package commands

import (
	"testing"

	"github.com/oliverbestmann/webgpu/wgpu"
	"github.com/stretchr/testify/require"
)

func TestDepthStateWritesDepth(t *testing.T) {
	state := depthState(wgpu.TextureFormatDepth24Plus)

	require.Equal(t, wgpu.TextureFormatDepth24Plus, state.Format)
	require.Equal(t, wgpu.OptionalBoolTrue, state.DepthWriteEnabled)
	require.Equal(t, wgpu.CompareFunctionLess, state.DepthCompare)
}
