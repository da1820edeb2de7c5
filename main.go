//go:build darwin || linux || windows

/*
Mesh viewer built on the engine package. It loads the configured .vao meshes
in the background and draws them with an orbit camera.
Drag to orbit, +/- to zoom.
*/
package main

import (
	"context"
	"errors"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/anima/engine"
	"github.com/spaghettifunk/anima/engine/core"
	"github.com/spaghettifunk/anima/engine/renderer/gles"
	"golang.org/x/mobile/app"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"
	"golang.org/x/mobile/event/touch"
	"golang.org/x/mobile/gl"
)

const vertexShader = `#version 300 es
uniform mat4 mvp;
in vec3 position;
out vec3 shade;
void main() {
	gl_Position = mvp * vec4(position, 1.0);
	shade = normalize(position) * 0.5 + 0.5;
}`

const fragmentShader = `#version 300 es
precision mediump float;
in vec3 shade;
out vec4 color;
void main() {
	color = vec4(shade, 1.0);
}`

type viewer struct {
	engine  *engine.Engine
	program gl.Program
	mvp     gl.Uniform

	sz       size.Event
	dragging bool
	lastX    float32
	lastY    float32
}

func loadConfig() *engine.ApplicationConfig {
	path := os.Getenv("ANIMA_CONFIG")
	if path == "" {
		path = "anima.toml"
	}
	cfg, err := engine.LoadConfig(path)
	if errors.Is(err, os.ErrNotExist) {
		return engine.DefaultApplicationConfig()
	}
	if err != nil {
		core.LogFatal("config %s: %s", path, err)
	}
	return cfg
}

func main() {
	e, err := engine.New(loadConfig())
	if err != nil {
		core.LogFatal(err.Error())
	}
	if err := e.Initialize(); err != nil {
		core.LogFatal(err.Error())
	}
	defer e.Shutdown()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go e.LoadModels(ctx)

	v := &viewer{engine: e}
	app.Main(func(a app.App) {
		var glctx gl.Context
		for ev := range a.Events() {
			switch ev := a.Filter(ev).(type) {
			case lifecycle.Event:
				switch ev.Crosses(lifecycle.StageVisible) {
				case lifecycle.CrossOn:
					glctx, _ = ev.DrawContext.(gl.Context)
					v.onStart(glctx)
					a.Send(paint.Event{})
				case lifecycle.CrossOff:
					v.onStop(glctx)
					glctx = nil
				}
			case size.Event:
				v.sz = ev
			case paint.Event:
				if glctx == nil || ev.External {
					continue
				}
				v.onPaint(glctx)
				a.Publish()
				a.Send(paint.Event{})
			case touch.Event:
				v.onTouch(ev)
			case key.Event:
				v.onKey(ev)
			}
		}
	})
}

func (v *viewer) onStart(glctx gl.Context) {
	program, err := gles.NewProgram(glctx, vertexShader, fragmentShader)
	if err != nil {
		core.LogError("creating GL program: %s", err)
		return
	}
	v.program = program
	v.mvp = glctx.GetUniformLocation(program, "mvp")
	glctx.Enable(gl.DEPTH_TEST)
	v.engine.StartRendering(glctx)
}

func (v *viewer) onStop(glctx gl.Context) {
	v.engine.StopRendering()
	glctx.DeleteProgram(v.program)
}

func (v *viewer) onPaint(glctx gl.Context) {
	glctx.ClearColor(0.1, 0.1, 0.12, 1)
	glctx.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	if !v.program.Init {
		return
	}
	glctx.UseProgram(v.program)

	aspect := float32(1)
	if v.sz.HeightPx > 0 {
		aspect = float32(v.sz.WidthPx) / float32(v.sz.HeightPx)
	}
	cam := v.engine.Camera()
	mvp := cam.Projection(aspect).Mul4(cam.View())
	glctx.UniformMatrix4fv(v.mvp, mvp[:])

	if _, err := v.engine.Frame(); err != nil {
		core.LogError("frame: %s", err)
	}
}

func (v *viewer) onTouch(ev touch.Event) {
	switch ev.Type {
	case touch.TypeBegin:
		v.dragging = true
	case touch.TypeMove:
		if v.dragging {
			v.engine.Camera().Rotate(mgl32.DegToRad(v.lastX-ev.X)*0.5, mgl32.DegToRad(ev.Y-v.lastY)*0.5)
		}
	case touch.TypeEnd:
		v.dragging = false
	}
	v.lastX, v.lastY = ev.X, ev.Y
}

func (v *viewer) onKey(ev key.Event) {
	if ev.Direction != key.DirPress && ev.Direction != key.DirNone {
		return
	}
	switch ev.Rune {
	case '+', '=':
		v.engine.Camera().Zoom(1 / 1.1)
	case '-':
		v.engine.Camera().Zoom(1.1)
	}
}
