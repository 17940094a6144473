package assets

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/gonewx/lungfx/internal/meshfile"
)

// ProceduralPrefix 程序化模型来源前缀
// 形如 "procedural:lung" 或 "procedural:lung:42"（指定种子）
const ProceduralPrefix = "procedural:"

// ModelFuture 一次性的模型加载结果
//
// 加载在后台 goroutine 中进行，完成后依次调用 Then 注册的回调。
// 回调运行在加载 goroutine 上，调用方如需修改场景，
// 应把工作投递回渲染循环（见 scenes.ViewerScene.Post）。
type ModelFuture struct {
	done chan struct{}

	mu        sync.Mutex
	meshes    []MeshData
	err       error
	callbacks []func([]MeshData, error)
}

func newModelFuture() *ModelFuture {
	return &ModelFuture{done: make(chan struct{})}
}

// resolve 设置结果并触发回调，只能调用一次
func (f *ModelFuture) resolve(meshes []MeshData, err error) {
	f.mu.Lock()
	f.meshes = meshes
	f.err = err
	callbacks := f.callbacks
	f.callbacks = nil
	close(f.done)
	f.mu.Unlock()

	for _, cb := range callbacks {
		cb(meshes, err)
	}
}

// Then 注册加载完成回调
// 如果已经完成，回调在当前 goroutine 立即执行
func (f *ModelFuture) Then(fn func([]MeshData, error)) {
	f.mu.Lock()
	select {
	case <-f.done:
		meshes, err := f.meshes, f.err
		f.mu.Unlock()
		fn(meshes, err)
		return
	default:
	}
	f.callbacks = append(f.callbacks, fn)
	f.mu.Unlock()
}

// Await 阻塞等待加载结果
func (f *ModelFuture) Await(ctx context.Context) ([]MeshData, error) {
	select {
	case <-f.done:
		return f.meshes, f.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Done 返回完成信号通道
func (f *ModelFuture) Done() <-chan struct{} {
	return f.done
}

// Loader 模型加载器
type Loader struct {
	readFile func(path string) ([]byte, error)
}

// NewLoader 创建加载器
//
// 参数：
//   - readFile: 文件读取函数（如 embedded.ReadFile）；nil 时使用 os.ReadFile
func NewLoader(readFile func(path string) ([]byte, error)) *Loader {
	if readFile == nil {
		readFile = os.ReadFile
	}
	return &Loader{readFile: readFile}
}

// Load 同步加载模型并归一化
//
// 参数：
//   - source: "procedural:lung[:seed]" 或 YAML 网格描述文件路径
func (l *Loader) Load(source string) ([]MeshData, error) {
	var meshes []MeshData

	if strings.HasPrefix(source, ProceduralPrefix) {
		opts, err := parseProceduralSource(source)
		if err != nil {
			return nil, err
		}
		meshes = GenerateLung(opts)
	} else {
		data, err := l.readFile(source)
		if err != nil {
			return nil, fmt.Errorf("failed to read model '%s': %w", source, err)
		}
		file, err := meshfile.ParseMeshData(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse model '%s': %w", source, err)
		}
		meshes = FromMeshFile(file)
	}

	NormalizeModel(meshes, DefaultModelSize, DefaultModelYOffset)
	log.Printf("[ModelLoader] Loaded %d meshes from %s", len(meshes), source)
	return meshes, nil
}

// LoadAsync 在后台加载模型
func (l *Loader) LoadAsync(source string) *ModelFuture {
	f := newModelFuture()
	go func() {
		meshes, err := l.Load(source)
		if err != nil {
			log.Printf("[ModelLoader] Error loading model: %v", err)
		}
		f.resolve(meshes, err)
	}()
	return f
}

// parseProceduralSource 解析 "procedural:lung[:seed]"
func parseProceduralSource(source string) (LungOptions, error) {
	opts := DefaultLungOptions()
	parts := strings.Split(strings.TrimPrefix(source, ProceduralPrefix), ":")

	if parts[0] != "lung" {
		return opts, fmt.Errorf("unknown procedural model '%s'", parts[0])
	}
	if len(parts) > 1 {
		seed, err := strconv.ParseInt(parts[1], 10, 64)
		if err != nil {
			return opts, fmt.Errorf("invalid procedural seed '%s': %w", parts[1], err)
		}
		opts.Seed = seed
	}
	return opts, nil
}
