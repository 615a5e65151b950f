// Package renderer provides OpenGL rendering functionality.
package renderer

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/folio3d/internal/engine/camera"
	"github.com/Faultbox/folio3d/internal/engine/lighting"
	"github.com/Faultbox/folio3d/internal/engine/scene"
)

// Config holds renderer configuration.
type Config struct {
	Width    int
	Height   int
	Lighting lighting.Setup
}

// meshBuffers is the GPU copy of one scene mesh.
type meshBuffers struct {
	vao   uint32
	vbo   uint32
	count int32
}

// Renderer draws the scene graph with flat-shaded, single-light lighting.
type Renderer struct {
	config Config
	log    *zap.Logger

	program  uint32
	locMVP   int32
	locModel int32
	locColor int32
	locLight int32
	locSun   int32
	locAmb   int32
	locShade int32

	lightDir mgl32.Vec3
	sunColor mgl32.Vec3
	ambient  mgl32.Vec3
	meshes   map[*scene.Mesh]*meshBuffers
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config, log *zap.Logger) (*Renderer, error) {
	if log == nil {
		log = zap.NewNop()
	}
	r := &Renderer{
		config:   cfg,
		log:      log,
		lightDir: cfg.Lighting.Sun.Direction(),
		sunColor: cfg.Lighting.Sun.Color,
		ambient:  cfg.Lighting.Ambient.Level(),
		meshes:   make(map[*scene.Mesh]*meshBuffers),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	version := gl.GoStr(gl.GetString(gl.VERSION))
	rendererName := gl.GoStr(gl.GetString(gl.RENDERER))
	log.Info("OpenGL initialized",
		zap.String("version", version),
		zap.String("renderer", rendererName),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.ClearColor(0.53, 0.81, 0.92, 1.0) // sky blue

	var err error
	r.program, err = createShaderProgram(vertexShaderSource, fragmentShaderSource)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}
	r.locMVP = gl.GetUniformLocation(r.program, gl.Str("uMVP\x00"))
	r.locModel = gl.GetUniformLocation(r.program, gl.Str("uModel\x00"))
	r.locColor = gl.GetUniformLocation(r.program, gl.Str("uColor\x00"))
	r.locLight = gl.GetUniformLocation(r.program, gl.Str("uLightDir\x00"))
	r.locSun = gl.GetUniformLocation(r.program, gl.Str("uSunColor\x00"))
	r.locAmb = gl.GetUniformLocation(r.program, gl.Str("uAmbient\x00"))
	r.locShade = gl.GetUniformLocation(r.program, gl.Str("uShade\x00"))

	r.Resize(cfg.Width, cfg.Height)
	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer", zap.Int("meshes", len(r.meshes)))
	for _, b := range r.meshes {
		gl.DeleteVertexArrays(1, &b.vao)
		gl.DeleteBuffers(1, &b.vbo)
	}
	r.meshes = nil
	if r.program != 0 {
		gl.DeleteProgram(r.program)
	}
}

// Resize handles window resize. Sizes are framebuffer pixels.
func (r *Renderer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// ReadPixels returns the current back buffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	pixels := make([]byte, w*h*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, w, h
}

// Render clears the frame and draws every visible mesh under root.
func (r *Renderer) Render(root *scene.Node, cam *camera.FollowCamera) {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	if root == nil || cam == nil {
		return
	}

	viewProj := cam.ViewProjection()
	gl.UseProgram(r.program)
	gl.Uniform3f(r.locLight, r.lightDir.X(), r.lightDir.Y(), r.lightDir.Z())
	gl.Uniform3f(r.locSun, r.sunColor.X(), r.sunColor.Y(), r.sunColor.Z())
	gl.Uniform3f(r.locAmb, r.ambient.X(), r.ambient.Y(), r.ambient.Z())

	for _, item := range collectDrawList(root) {
		b, err := r.buffersFor(item.mesh)
		if err != nil {
			r.log.Warn("mesh upload failed", zap.String("mesh", item.mesh.Name), zap.Error(err))
			continue
		}
		mvp := viewProj.Mul4(item.model)
		gl.UniformMatrix4fv(r.locMVP, 1, false, &mvp[0])
		gl.UniformMatrix4fv(r.locModel, 1, false, &item.model[0])
		c := item.mesh.Color
		gl.Uniform3f(r.locColor, c[0], c[1], c[2])
		gl.Uniform1f(r.locShade, item.shade)

		gl.BindVertexArray(b.vao)
		gl.DrawArrays(gl.TRIANGLES, 0, b.count)
	}
	gl.BindVertexArray(0)
}

func (r *Renderer) buffersFor(mesh *scene.Mesh) (*meshBuffers, error) {
	if b, ok := r.meshes[mesh]; ok {
		return b, nil
	}

	vertices := buildVertices(mesh)
	if len(vertices) == 0 {
		return nil, fmt.Errorf("mesh %q has no triangles", mesh.Name)
	}

	b := &meshBuffers{count: int32(len(vertices) / floatsPerVertex)}
	gl.GenVertexArrays(1, &b.vao)
	gl.BindVertexArray(b.vao)

	gl.GenBuffers(1, &b.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)

	stride := int32(floatsPerVertex * 4)
	// Position attribute (location = 0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, nil)
	gl.EnableVertexAttribArray(0)
	// Normal attribute (location = 1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride, unsafe.Pointer(uintptr(3*4)))
	gl.EnableVertexAttribArray(1)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	r.meshes[mesh] = b
	r.log.Debug("mesh uploaded",
		zap.String("mesh", mesh.Name),
		zap.Int32("vertices", b.count),
	)
	return b, nil
}

func createShaderProgram(vertexSource, fragmentSource string) (uint32, error) {
	vertexShader, err := compileShader(vertexSource, gl.VERTEX_SHADER)
	if err != nil {
		return 0, fmt.Errorf("vertex shader: %w", err)
	}
	defer gl.DeleteShader(vertexShader)

	fragmentShader, err := compileShader(fragmentSource, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, fmt.Errorf("fragment shader: %w", err)
	}
	defer gl.DeleteShader(fragmentShader)

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		return 0, fmt.Errorf("link failed: %s", log)
	}

	return program, nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)

	csources, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		return 0, fmt.Errorf("compile failed: %s", log)
	}

	return shader, nil
}
