package orion

import "github.com/oliverbestmann/webgpu/wgpu"

// BlendStateOverlay blends the menu bars with straight alpha over the
// rendered scene.
var BlendStateOverlay = wgpu.BlendStateAlphaBlending
