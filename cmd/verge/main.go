// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"runtime/pprof"
	"runtime/trace"
	"strings"
	"sync"
	"sync/atomic"
	"time"
	"unsafe"

	"github.com/gobuffalo/envy"
	log "github.com/sirupsen/logrus"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/devblok/verge/asset"
	"github.com/devblok/verge/core"
	"github.com/devblok/verge/model"
)

func init() {
	runtime.LockOSThread()
}

// Essential globals
var (
	vkInstance core.Instance
	vkRenderer *core.VulkanRenderer
	sdlWindow  *sdl.Window
	sdlSurface unsafe.Pointer

	frameCounter int64
	totalFrames  int64
)

// Profiling
var (
	cpuProfile   = flag.String("cpuprof", "", "Profile CPU usage to file")
	memProfile   = flag.String("memprof", "", "Profile memory usage into a file")
	traceProfile = flag.String("trace", "", "Trace output for profiling")
	debug        = flag.Bool("vkdbg", false, "Load the Vulkan validation layer")
)

// Assets
var (
	pakArchives  = flag.String("pak", "", "Comma separated pak archives to mount")
	materialName = flag.String("material", "default", "Material to stage on the renderer")
	textureName  = flag.String("texture", "", "Texture asset for the staged material")
	meshName     = flag.String("mesh", "", "Wavefront OBJ asset to render")
)

var configuration = core.Configuration{
	Time: core.TimeConfiguration{
		FramesPerSecond: 2000,
		EventPollDelay:  50,
	},
	Renderer: core.RendererConfiguration{
		ScreenWidth:   800,
		ScreenHeight:  600,
		SwapchainSize: 3,
		DeviceExtensions: []string{
			"VK_KHR_swapchain",
		},
		ShaderDirectory: envy.Get("VERGE_SHADER_DIR", "./assets/shaders"),
	},
}

func newWindow() *sdl.Window {
	window, err := sdl.CreateWindow("Verge",
		sdl.WINDOWPOS_UNDEFINED,
		sdl.WINDOWPOS_UNDEFINED,
		int32(configuration.Renderer.ScreenWidth),
		int32(configuration.Renderer.ScreenHeight),
		sdl.WINDOW_VULKAN|sdl.WINDOW_RESIZABLE)
	if err != nil {
		log.Fatal(err)
	}
	return window
}

func main() {
	flag.Parse()

	if *debug {
		log.SetLevel(log.DebugLevel)
	}

	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			log.Fatal(err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal(err)
		}
		defer pprof.StopCPUProfile()
	}

	if *traceProfile != "" {
		f, err := os.Create(*traceProfile)
		if err != nil {
			log.Fatal(err)
		}
		if err := trace.Start(f); err != nil {
			log.Fatal(err)
		}
		defer trace.Stop()
	}

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		log.Fatal(err)
	}
	defer sdl.Quit()

	if err := sdl.VulkanLoadLibrary(""); err != nil {
		log.Fatal(err)
	}
	defer sdl.VulkanUnloadLibrary()

	sdlWindow = newWindow()
	configuration.Renderer.FramebufferSize = func() (uint32, uint32) {
		width, height := sdlWindow.VulkanGetDrawableSize()
		return uint32(width), uint32(height)
	}

	{
		cfg := core.InstanceConfiguration{
			DebugMode:  *debug,
			Extensions: sdlWindow.VulkanGetInstanceExtensions(),
			Layers:     []string{},
		}

		if vi, err := core.NewVulkanInstance(core.DefaultVulkanApplicationInfo, sdl.VulkanGetVkGetInstanceProcAddr(), cfg); err != nil {
			log.Fatal(err)
		} else {
			vkInstance = vi
		}
		defer vkInstance.Destroy()
	}

	if srf, err := sdlWindow.VulkanCreateSurface(vkInstance.Inner()); err != nil {
		log.Fatal(err)
	} else {
		sdlSurface = srf
		vkInstance.SetSurface(sdlSurface)
	}

	var rendererErr error
	vkRenderer, rendererErr = core.NewVulkanRenderer(vkInstance, configuration.Renderer)
	if rendererErr != nil {
		log.Fatal(rendererErr)
	}

	var anySuitable bool
	for _, dev := range vkInstance.AvailableDevices() {
		if suitable, reason := vkRenderer.DeviceIsSuitable(dev); suitable {
			anySuitable = true
		} else {
			log.Debugf("device rejected: %s", reason)
		}
	}
	if !anySuitable {
		log.Fatal(core.ErrNoSuitableDevice)
	}

	db := newAssetDatabase()
	defer db.Close()

	var stagedMesh model.Object
	if *meshName != "" {
		mesh, err := db.Mesh(*meshName)
		if err != nil {
			log.Fatal(err)
		}
		stagedMesh = mesh
	}

	if material, err := db.Material(*materialName, *textureName); err != nil {
		log.Warnf("material %s unavailable, falling back to the shader directory: %s", *materialName, err.Error())
		vkRenderer.Stage(stagedMesh, core.Material{})
	} else {
		vkRenderer.Stage(stagedMesh, material)
	}

	if err := vkRenderer.Initialise(); err != nil {
		log.Fatal(err)
	}
	defer vkRenderer.Destroy()

	timeService := core.NewTime(configuration.Time)

	ctx, cancel := context.WithCancel(context.Background())

	programSync := sync.WaitGroup{}

	/* Frame counter loop */
	programSync.Add(1)
	go func(ctx context.Context, wg *sync.WaitGroup) {
	CounterLoop:
		for {
			select {
			case <-ctx.Done():
				break CounterLoop
			default:
				count := atomic.SwapInt64(&frameCounter, 0)
				log.Debugf("fps: %d, cgo calls: %d", count, runtime.NumCgoCall())
				time.Sleep(time.Second)
			}
		}
		wg.Done()
	}(ctx, &programSync)

	/* Renderer loop */
	programSync.Add(1)
	go func(ctx context.Context, wg *sync.WaitGroup) {
	DrawLoop:
		for {
			select {
			case <-ctx.Done():
				log.Debug("render loop exited")
				break DrawLoop
			case <-timeService.FpsTicker().C:
				switch err := vkRenderer.Render(); err {
				case nil:
					atomic.AddInt64(&frameCounter, 1)
					atomic.AddInt64(&totalFrames, 1)
				case core.ErrFrameTimeout:
					log.Warn("frame timed out, retrying")
				default:
					log.Error("render: " + err.Error())
					cancel()
				}
			}
		}
		wg.Done()
	}(ctx, &programSync)

	/* Event loop */
EventLoop:
	for {
		select {
		case <-ctx.Done():
			break EventLoop
		case <-timeService.EventTicker().C:
			var event sdl.Event
			for event = sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
				switch et := event.(type) {
				case *sdl.KeyboardEvent:
					if et.Keysym.Sym == sdl.K_ESCAPE {
						cancel()
						continue EventLoop
					}
				case *sdl.WindowEvent:
					if et.Event == sdl.WINDOWEVENT_RESIZED {
						vkRenderer.NotifyResize()
					}
				case *sdl.QuitEvent:
					cancel()
					continue EventLoop
				}
			}
		}
	}

	programSync.Wait()

	log.Infof("rendered %d frames in %.1fs", atomic.LoadInt64(&totalFrames), timeService.Elapsed())

	if *memProfile != "" {
		f, err := os.Create(*memProfile)
		if err != nil {
			log.Fatal(err)
		}
		if err := pprof.WriteHeapProfile(f); err != nil {
			log.Fatal(err)
		}
	}
}

func newAssetDatabase() *asset.Database {
	cfg := asset.DatabaseConfig{
		Dirs: []string{envy.Get("VERGE_ASSET_DIR", "./assets")},
	}
	if *pakArchives != "" {
		cfg.Archives = strings.Split(*pakArchives, ",")
	}
	db, err := asset.NewDatabase(cfg)
	if err != nil {
		log.Fatal(err)
	}
	return db
}
