package renderer

import (
	"fmt"
	"log"
	"runtime"
	"sync"

	"github.com/Carmen-Shannon/kinetic-ring/common"
	"github.com/Carmen-Shannon/kinetic-ring/engine/model"
	"github.com/Carmen-Shannon/kinetic-ring/engine/scene"
	"github.com/cogentcore/webgpu/wgpu"
)

// drawSlot holds the GPU resources of one draw position in the frame: the plane's fan vertices and its uniforms.
// Slots are reused across frames; vertex buffers grow when a mesh needs more room.
type drawSlot struct {
	uniform    *wgpu.Buffer
	vertex     *wgpu.Buffer
	vertexSize uint64
	bindGroup  *wgpu.BindGroup
}

func (s *drawSlot) release() {
	if s.bindGroup != nil {
		s.bindGroup.Release()
	}
	if s.uniform != nil {
		s.uniform.Release()
	}
	if s.vertex != nil {
		s.vertex.Release()
	}
}

// imageTexture is the GPU copy of one RenderImage.
type imageTexture struct {
	texture   *wgpu.Texture
	view      *wgpu.TextureView
	bindGroup *wgpu.BindGroup
}

func (t *imageTexture) release() {
	if t.bindGroup != nil {
		t.bindGroup.Release()
	}
	if t.view != nil {
		t.view.Release()
	}
	if t.texture != nil {
		t.texture.Release()
	}
}

// wgpuRendererBackendImpl draws textured ring planes with a single WebGPU render pipeline.
type wgpuRendererBackendImpl struct {
	mu     *sync.Mutex
	device *wgpu.Device
	queue  *wgpu.Queue

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	surface  *wgpu.Surface

	surfaceFormat        *wgpu.TextureFormat
	msaaTexture          *wgpu.Texture
	msaaTextureView      *wgpu.TextureView
	depthTexture         *wgpu.Texture
	depthTextureView     *wgpu.TextureView
	renderPassDescriptor *wgpu.RenderPassDescriptor

	presentMode wgpu.PresentMode
	sampleCount MSAASampleCount
	clearColor  ClearColor

	pipeline      *wgpu.RenderPipeline
	drawLayout    *wgpu.BindGroupLayout
	textureLayout *wgpu.BindGroupLayout
	sampler       *wgpu.Sampler

	indexBuffer  *wgpu.Buffer
	indexCount   uint32
	outlineCount int

	slots    []*drawSlot
	textures *residency[*imageTexture]
	tick     uint64
}

var _ RendererBackend = &wgpuRendererBackendImpl{}

func newWGPURendererBackend(surfaceDescriptor *wgpu.SurfaceDescriptor, forceFallbackAdapter bool, sampleCount MSAASampleCount, clearColor ClearColor, textureIdleFrames uint64) (*wgpuRendererBackendImpl, error) {
	runtime.LockOSThread()
	b := &wgpuRendererBackendImpl{
		mu:          &sync.Mutex{},
		instance:    wgpu.CreateInstance(nil),
		presentMode: wgpu.PresentModeFifo,
		sampleCount: sampleCount,
		clearColor:  clearColor,
		textures:    newResidency[*imageTexture](textureIdleFrames),
	}
	b.surface = b.instance.CreateSurface(surfaceDescriptor)

	a, err := b.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: forceFallbackAdapter,
		CompatibleSurface:    b.surface,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to request adapter: %w", err)
	}
	b.adapter = a

	limits := wgpu.DefaultLimits()
	d, err := a.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Main Device",
		RequiredLimits: &wgpu.RequiredLimits{
			Limits: limits,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to request device: %w", err)
	}
	b.device = d
	b.queue = d.GetQueue()

	capabilities := b.surface.GetCapabilities(b.adapter)
	b.surfaceFormat = &capabilities.Formats[0]

	if err := b.createPipeline(); err != nil {
		return nil, fmt.Errorf("failed to create plane pipeline: %w", err)
	}
	return b, nil
}

// createPipeline builds the bind group layouts, sampler and the textured plane pipeline.
func (b *wgpuRendererBackendImpl) createPipeline() error {
	module, err := b.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: "Plane Shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: planeShaderSource(),
		},
	})
	if err != nil {
		return err
	}
	defer module.Release()

	b.drawLayout, err = b.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Draw Uniforms Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: DrawUniformsSize,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create draw layout: %w", err)
	}

	b.textureLayout, err = b.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Plane Texture Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageFragment,
				Texture: wgpu.TextureBindingLayout{
					SampleType:    wgpu.TextureSampleTypeFloat,
					ViewDimension: wgpu.TextureViewDimension2D,
				},
			},
			{
				Binding:    1,
				Visibility: wgpu.ShaderStageFragment,
				Sampler: wgpu.SamplerBindingLayout{
					Type: wgpu.SamplerBindingTypeFiltering,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create texture layout: %w", err)
	}

	b.sampler, err = b.device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         "Plane Sampler",
		AddressModeU:  wgpu.AddressModeClampToEdge,
		AddressModeV:  wgpu.AddressModeClampToEdge,
		AddressModeW:  wgpu.AddressModeClampToEdge,
		MagFilter:     wgpu.FilterModeLinear,
		MinFilter:     wgpu.FilterModeLinear,
		MipmapFilter:  wgpu.MipmapFilterModeLinear,
		LodMinClamp:   0,
		LodMaxClamp:   32,
		MaxAnisotropy: 1,
	})
	if err != nil {
		return fmt.Errorf("failed to create sampler: %w", err)
	}

	pipelineLayout, err := b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "Plane Pipeline Layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{b.drawLayout, b.textureLayout},
	})
	if err != nil {
		return err
	}
	defer pipelineLayout.Release()

	b.pipeline, err = b.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "Plane Render Pipeline",
		Layout: pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: vertexEntryPoint,
			Buffers: []wgpu.VertexBufferLayout{
				{
					ArrayStride: model.GPUVertexStride,
					StepMode:    wgpu.VertexStepModeVertex,
					Attributes: []wgpu.VertexAttribute{
						{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
						{Format: wgpu.VertexFormatFloat32x2, Offset: 12, ShaderLocation: 1},
					},
				},
			},
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: fragmentEntryPoint,
			Targets: []wgpu.ColorTargetState{
				{
					Format: *b.surfaceFormat,
					// Texels are premultiplied by the image package, so the source factor is One.
					Blend: &wgpu.BlendState{
						Color: wgpu.BlendComponent{
							SrcFactor: wgpu.BlendFactorOne,
							DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
							Operation: wgpu.BlendOperationAdd,
						},
						Alpha: wgpu.BlendComponent{
							SrcFactor: wgpu.BlendFactorOne,
							DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
							Operation: wgpu.BlendOperationAdd,
						},
					},
					WriteMask: wgpu.ColorWriteMaskAll,
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		Multisample: wgpu.MultisampleState{
			Count: uint32(b.sampleCount),
			Mask:  0xFFFFFFFF,
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:            wgpu.TextureFormatDepth24Plus,
			DepthWriteEnabled: true,
			DepthCompare:      wgpu.CompareFunctionLess,
			StencilFront: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
			StencilBack: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
		},
	})
	return err
}

func (b *wgpuRendererBackendImpl) ConfigureSurface(width, height int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if width <= 0 || height <= 0 {
		return
	}

	capabilities := b.surface.GetCapabilities(b.adapter)
	b.surface.Configure(b.adapter, b.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      *b.surfaceFormat,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: b.presentMode,
		AlphaMode:   capabilities.AlphaModes[0],
	})

	b.releaseTargets()

	count := uint32(b.sampleCount)
	msaaEnabled := count > 1
	size := wgpu.Extent3D{
		Width:              uint32(width),
		Height:             uint32(height),
		DepthOrArrayLayers: 1,
	}

	var err error
	if msaaEnabled {
		// The render pass draws into the MSAA texture and resolves into the swapchain view.
		b.msaaTexture, err = b.device.CreateTexture(&wgpu.TextureDescriptor{
			Label:         "MSAA Texture",
			Size:          size,
			MipLevelCount: 1,
			SampleCount:   count,
			Dimension:     wgpu.TextureDimension2D,
			Format:        *b.surfaceFormat,
			Usage:         wgpu.TextureUsageRenderAttachment,
		})
		if err != nil {
			panic(err)
		}
		b.msaaTextureView, err = b.msaaTexture.CreateView(nil)
		if err != nil {
			panic(err)
		}
	}

	// Depth texture sample count must match the color attachment.
	b.depthTexture, err = b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         "Depth Texture",
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   count,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatDepth24Plus,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		panic(err)
	}
	b.depthTextureView, err = b.depthTexture.CreateView(nil)
	if err != nil {
		panic(err)
	}

	storeOp := wgpu.StoreOpStore
	if msaaEnabled {
		storeOp = wgpu.StoreOpDiscard
	}
	b.renderPassDescriptor = &wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:    b.msaaTextureView, // nil when MSAA is off; set per frame
				LoadOp:  wgpu.LoadOpClear,
				StoreOp: storeOp,
				ClearValue: wgpu.Color{
					R: b.clearColor[0], G: b.clearColor[1], B: b.clearColor[2], A: b.clearColor[3],
				},
			},
		},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            b.depthTextureView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpDiscard,
			DepthClearValue: 1.0,
		},
	}
}

func (b *wgpuRendererBackendImpl) releaseTargets() {
	if b.msaaTextureView != nil {
		b.msaaTextureView.Release()
		b.msaaTextureView = nil
	}
	if b.msaaTexture != nil {
		b.msaaTexture.Release()
		b.msaaTexture = nil
	}
	if b.depthTextureView != nil {
		b.depthTextureView.Release()
		b.depthTextureView = nil
	}
	if b.depthTexture != nil {
		b.depthTexture.Release()
		b.depthTexture = nil
	}
}

func (b *wgpuRendererBackendImpl) SetPresentMode(mode PresentMode) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch mode {
	case PresentModeUncapped:
		b.presentMode = wgpu.PresentModeImmediate
	case PresentModeVSync:
		fallthrough
	default:
		b.presentMode = wgpu.PresentModeFifo
	}
}

// ensureIndices rebuilds the shared fan index buffer when the outline length changes.
func (b *wgpuRendererBackendImpl) ensureIndices(outline int) error {
	if b.indexBuffer != nil && b.outlineCount == outline {
		return nil
	}
	indices := model.FanIndices(outline)
	if len(indices) == 0 {
		return fmt.Errorf("plane outline of %d vertices cannot be triangulated", outline)
	}
	data := common.SliceToBytes(indices)
	buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Plane Index Buffer",
		Size:  uint64(len(data)),
		Usage: wgpu.BufferUsageIndex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return err
	}
	b.queue.WriteBuffer(buf, 0, data)

	if b.indexBuffer != nil {
		b.indexBuffer.Release()
	}
	b.indexBuffer = buf
	b.indexCount = uint32(len(indices))
	b.outlineCount = outline
	return nil
}

// slot returns draw slot i, creating its uniform buffer and bind group on first use and growing its vertex buffer
// to hold vertexBytes.
func (b *wgpuRendererBackendImpl) slot(i int, vertexBytes uint64) (*drawSlot, error) {
	for len(b.slots) <= i {
		uniform, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: fmt.Sprintf("Draw %d Uniform Buffer", len(b.slots)),
			Size:  DrawUniformsSize,
			Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			return nil, err
		}
		bg, err := b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
			Label:  fmt.Sprintf("Draw %d Bind Group", len(b.slots)),
			Layout: b.drawLayout,
			Entries: []wgpu.BindGroupEntry{
				{Binding: 0, Buffer: uniform, Offset: 0, Size: wgpu.WholeSize},
			},
		})
		if err != nil {
			uniform.Release()
			return nil, err
		}
		b.slots = append(b.slots, &drawSlot{uniform: uniform, bindGroup: bg})
	}

	s := b.slots[i]
	if s.vertexSize < vertexBytes {
		buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: fmt.Sprintf("Draw %d Vertex Buffer", i),
			Size:  vertexBytes,
			Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			return nil, err
		}
		if s.vertex != nil {
			s.vertex.Release()
		}
		s.vertex = buf
		s.vertexSize = vertexBytes
	}
	return s, nil
}

// texture returns the resident texture of img, uploading it on first use.
func (b *wgpuRendererBackendImpl) texture(img *common.RenderImage) (*imageTexture, error) {
	if t, ok := b.textures.get(img.ID, b.tick); ok {
		return t, nil
	}

	staging := img.Texture
	tex, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:     img.Name + " Texture",
		Usage:     wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
		Dimension: wgpu.TextureDimension2D,
		Size: wgpu.Extent3D{
			Width:              staging.Width,
			Height:             staging.Height,
			DepthOrArrayLayers: 1,
		},
		Format:        wgpu.TextureFormatRGBA8UnormSrgb,
		MipLevelCount: 1,
		SampleCount:   1,
	})
	if err != nil {
		return nil, err
	}

	b.queue.WriteTexture(
		&wgpu.ImageCopyTexture{
			Texture:  tex,
			MipLevel: 0,
			Origin:   wgpu.Origin3D{},
			Aspect:   wgpu.TextureAspectAll,
		},
		staging.Pixels,
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  staging.Width * 4,
			RowsPerImage: staging.Height,
		},
		&wgpu.Extent3D{
			Width:              staging.Width,
			Height:             staging.Height,
			DepthOrArrayLayers: 1,
		},
	)

	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return nil, err
	}
	bg, err := b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  img.Name + " Bind Group",
		Layout: b.textureLayout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, TextureView: view},
			{Binding: 1, Sampler: b.sampler},
		},
	})
	if err != nil {
		view.Release()
		tex.Release()
		return nil, err
	}

	t := &imageTexture{texture: tex, view: view, bindGroup: bg}
	b.textures.put(img.ID, b.tick, t)
	return t, nil
}

func (b *wgpuRendererBackendImpl) DrawFrame(frame scene.Frame) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.renderPassDescriptor == nil {
		return 0, fmt.Errorf("surface is not configured")
	}
	b.tick++

	// Upload everything before the pass so a failed allocation never leaves a half-recorded frame.
	type prepared struct {
		slot    *drawSlot
		texture *imageTexture
	}
	commands := drawList(frame.Commands)
	draws := make([]prepared, 0, len(commands))
	for _, cmd := range commands {
		if err := b.ensureIndices(len(cmd.Mesh.Outline)); err != nil {
			return 0, err
		}

		vertices := model.MarshalVertices(cmd.Mesh.FanVertices())
		s, err := b.slot(len(draws), uint64(len(vertices)))
		if err != nil {
			return 0, fmt.Errorf("failed to allocate draw slot: %w", err)
		}
		t, err := b.texture(cmd.Image)
		if err != nil {
			return 0, fmt.Errorf("failed to upload texture %q: %w", cmd.Image.Name, err)
		}

		b.queue.WriteBuffer(s.vertex, 0, vertices)
		b.queue.WriteBuffer(s.uniform, 0, DrawUniforms{MVP: cmd.MVP, Opacity: 1}.Marshal())
		draws = append(draws, prepared{slot: s, texture: t})
	}

	surfaceTexture, err := b.surface.GetCurrentTexture()
	if err != nil {
		return 0, err
	}
	defer surfaceTexture.Release()

	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		return 0, err
	}
	defer view.Release()

	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		return 0, err
	}
	defer encoder.Release()

	if b.sampleCount > 1 {
		b.renderPassDescriptor.ColorAttachments[0].ResolveTarget = view
	} else {
		b.renderPassDescriptor.ColorAttachments[0].View = view
	}
	pass := encoder.BeginRenderPass(b.renderPassDescriptor)
	if len(draws) > 0 {
		pass.SetPipeline(b.pipeline)
		pass.SetIndexBuffer(b.indexBuffer, wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
		for _, d := range draws {
			pass.SetBindGroup(0, d.slot.bindGroup, nil)
			pass.SetBindGroup(1, d.texture.bindGroup, nil)
			pass.SetVertexBuffer(0, d.slot.vertex, 0, wgpu.WholeSize)
			pass.DrawIndexed(b.indexCount, 1, 0, 0, 0)
		}
	}
	pass.End()
	pass.Release()

	commandBuffer, err := encoder.Finish(nil)
	if err != nil {
		return 0, err
	}
	b.queue.Submit(commandBuffer)
	commandBuffer.Release()
	b.surface.Present()

	for _, t := range b.textures.evict(b.tick) {
		t.release()
	}
	return len(draws), nil
}

func (b *wgpuRendererBackendImpl) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, t := range b.textures.drain() {
		t.release()
	}
	for _, s := range b.slots {
		s.release()
	}
	b.slots = nil
	if b.indexBuffer != nil {
		b.indexBuffer.Release()
		b.indexBuffer = nil
	}
	b.releaseTargets()

	if b.sampler != nil {
		b.sampler.Release()
	}
	if b.pipeline != nil {
		b.pipeline.Release()
	}
	if b.textureLayout != nil {
		b.textureLayout.Release()
	}
	if b.drawLayout != nil {
		b.drawLayout.Release()
	}
	if b.queue != nil {
		b.queue.Release()
	}
	if b.device != nil {
		b.device.Release()
	}
	if b.adapter != nil {
		b.adapter.Release()
	}
	if b.surface != nil {
		b.surface.Release()
	}
	if b.instance != nil {
		b.instance.Release()
	}
	log.Printf("[Renderer] released GPU resources")
}
