// Package renderer draws terrain meshes with OpenGL.
package renderer

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/siliconia/internal/logger"
	"github.com/Faultbox/siliconia/internal/terrain"
)

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int

	// CellSize scales mesh X and Z from cells to world units.
	CellSize float32
}

// gpuMesh is one uploaded terrain mesh.
type gpuMesh struct {
	name       string
	vao        uint32
	vbo        uint32
	ebo        uint32
	indexCount int32
	model      mgl32.Mat4
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config Config

	shaderProgram uint32
	locMVP        int32

	meshes []gpuMesh
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	if cfg.CellSize <= 0 {
		cfg.CellSize = 1
	}
	r := &Renderer{
		config: cfg,
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	version := gl.GoStr(gl.GetString(gl.VERSION))
	rendererName := gl.GoStr(gl.GetString(gl.RENDERER))
	logger.Info("OpenGL initialized",
		zap.String("version", version),
		zap.String("renderer", rendererName),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.ClearColor(0.1, 0.1, 0.15, 1.0) // Dark blue-gray background
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))

	var err error
	r.shaderProgram, err = createShaderProgram()
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}
	r.locMVP = gl.GetUniformLocation(r.shaderProgram, gl.Str("uMVP\x00"))

	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	logger.Debug("closing renderer")
	for i := range r.meshes {
		m := &r.meshes[i]
		gl.DeleteVertexArrays(1, &m.vao)
		gl.DeleteBuffers(1, &m.vbo)
		gl.DeleteBuffers(1, &m.ebo)
	}
	r.meshes = nil
	if r.shaderProgram != 0 {
		gl.DeleteProgram(r.shaderProgram)
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Upload copies a mesh to the GPU. Meshes without triangles are skipped.
func (r *Renderer) Upload(mesh *terrain.Mesh) {
	if len(mesh.Indices) == 0 {
		logger.Debug("skipping mesh without triangles", zap.String("mesh", mesh.Name))
		return
	}

	var m gpuMesh
	m.name = mesh.Name
	m.indexCount = int32(len(mesh.Indices))
	m.model = mesh.Model(r.config.CellSize)

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	stride := int32(unsafe.Sizeof(terrain.Vertex{}))

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(mesh.Vertices)*int(stride), unsafe.Pointer(&mesh.Vertices[0]), gl.STATIC_DRAW)

	gl.GenBuffers(1, &m.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(mesh.Indices)*4, unsafe.Pointer(&mesh.Indices[0]), gl.STATIC_DRAW)

	// Position attribute (location = 0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, nil)
	gl.EnableVertexAttribArray(0)

	// Color attribute (location = 1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride, gl.PtrOffset(int(unsafe.Offsetof(terrain.Vertex{}.Color))))
	gl.EnableVertexAttribArray(1)

	gl.BindVertexArray(0)

	r.meshes = append(r.meshes, m)
	logger.Debug("mesh uploaded",
		zap.String("mesh", m.name),
		zap.Uint32("vao", m.vao),
		zap.Int32("indices", m.indexCount),
	)
}

// ReadPixels returns the current framebuffer as RGBA rows, bottom row first.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	pixels := make([]byte, w*h*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&pixels[0]))
	return pixels, w, h
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// Draw renders every uploaded mesh with projection * view * model.
func (r *Renderer) Draw(view, projection mgl32.Mat4) {
	gl.UseProgram(r.shaderProgram)
	vp := projection.Mul4(view)
	for i := range r.meshes {
		m := &r.meshes[i]
		mvp := vp.Mul4(m.model)
		gl.UniformMatrix4fv(r.locMVP, 1, false, &mvp[0])
		gl.BindVertexArray(m.vao)
		gl.DrawElements(gl.TRIANGLES, m.indexCount, gl.UNSIGNED_INT, nil)
	}
	gl.BindVertexArray(0)
}

func createShaderProgram() (uint32, error) {
	vertexShaderSource := `
		#version 410 core

		layout (location = 0) in vec3 aPos;
		layout (location = 1) in vec3 aColor;

		uniform mat4 uMVP;

		out vec3 vertexColor;

		void main() {
			gl_Position = uMVP * vec4(aPos, 1.0);
			vertexColor = aColor;
		}
	` + "\x00"

	fragmentShaderSource := `
		#version 410 core

		in vec3 vertexColor;
		out vec4 FragColor;

		void main() {
			FragColor = vec4(vertexColor, 1.0);
		}
	` + "\x00"

	vertexShader, err := compileShader(vertexShaderSource, gl.VERTEX_SHADER)
	if err != nil {
		return 0, fmt.Errorf("vertex shader: %w", err)
	}
	defer gl.DeleteShader(vertexShader)

	fragmentShader, err := compileShader(fragmentShaderSource, gl.FRAGMENT_SHADER)
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
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("link failed: %s", log)
	}

	logger.Debug("shader program created", zap.Uint32("program", program))
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
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("compile failed: %s", log)
	}

	return shader, nil
}
