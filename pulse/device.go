package pulse

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/oliverbestmann/webgpu/wgpu"
)

var wgpuLogLevels = map[string]wgpu.LogLevel{
	"OFF":   wgpu.LogLevelOff,
	"ERROR": wgpu.LogLevelError,
	"WARN":  wgpu.LogLevelWarn,
	"INFO":  wgpu.LogLevelInfo,
	"DEBUG": wgpu.LogLevelDebug,
	"TRACE": wgpu.LogLevelTrace,
}

func init() {
	runtime.LockOSThread()

	if level, ok := wgpuLogLevels[strings.ToUpper(os.Getenv("WGPU_LOG_LEVEL"))]; ok {
		wgpu.SetLogLevel(level)
	}
}

// Context encapsulates the low level state of the webgpu context,
// this includes the Device, Surface and active Adapter
type Context struct {
	*wgpu.Device
	*wgpu.Queue
	Surface *wgpu.Surface
	Adapter *wgpu.Adapter
}

type ContextOptions struct {
	// use a software adapter, useful on machines without a gpu
	ForceFallbackAdapter bool
}

// ContextOptionsFromEnv reads WGPU_FORCE_FALLBACK_ADAPTER.
func ContextOptionsFromEnv() ContextOptions {
	return ContextOptions{
		ForceFallbackAdapter: os.Getenv("WGPU_FORCE_FALLBACK_ADAPTER") == "1",
	}
}

// New creates a context rendering to the surface described by sd,
// configured from the environment.
func New(sd *wgpu.SurfaceDescriptor) (*Context, error) {
	return NewWithOptions(sd, ContextOptionsFromEnv())
}

func NewWithOptions(sd *wgpu.SurfaceDescriptor, opts ContextOptions) (st *Context, err error) {
	defer func() {
		if err != nil && st != nil {
			st.Release()
			st = nil
		}
	}()

	st = &Context{}

	instance := wgpu.CreateInstance(nil)
	defer instance.Release()

	st.Surface = instance.CreateSurface(sd)

	// the adapter must be able to present to our surface
	st.Adapter, err = instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: opts.ForceFallbackAdapter,
		CompatibleSurface:    st.Surface,
	})

	if err != nil {
		return st, fmt.Errorf("request adapter: %w", err)
	}

	st.Device, err = st.Adapter.RequestDevice(nil)
	if err != nil {
		return st, fmt.Errorf("request device: %w", err)
	}

	st.Queue = st.Device.GetQueue()

	slog.Info("Gpu device ready", slog.Bool("fallbackAdapter", opts.ForceFallbackAdapter))

	return st, nil
}

// Release frees the context in reverse order of creation. It is safe
// to call on a partially initialized context.
func (d *Context) Release() {
	if d.Queue != nil {
		d.Queue.Release()
		d.Queue = nil
	}

	if d.Device != nil {
		d.Device.Release()
		d.Device = nil
	}

	if d.Adapter != nil {
		d.Adapter.Release()
		d.Adapter = nil
	}

	if d.Surface != nil {
		d.Surface.Release()
		d.Surface = nil
	}
}
