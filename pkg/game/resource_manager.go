package game

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"io"
	"io/fs"
	"log"
	"path"
	"slices"
	"strings"

	"github.com/decker502/birthday/internal/audio"
	"github.com/decker502/birthday/internal/placeholders"
	"github.com/hajimehoshi/ebiten/v2"
	ebaudio "github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

// ResourceManager is responsible for centralized management of card resources.
// It provides loading and caching mechanisms for images, sounds and fonts,
// ensuring that resources are loaded only once and reused by every scene.
//
// 资源按ID加载（data/resources.yaml）：
//   - 图片：外部文件优先，缺失时用 internal/placeholders 程序化生成
//   - 音频：外部 WAV/MP3/OGG 优先，缺失时用 internal/audio 合成
//   - 字体：外部 TTF/OTF 优先，默认使用 Go 字体
//
// Thread Safety Note:
// This implementation is NOT thread-safe. All loading happens on the game loop.
type ResourceManager struct {
	audioContext *ebaudio.Context
	files        fs.FS // 外部资源文件系统，可为 nil（全部使用生成资源）

	imageCache  map[string]*ebiten.Image // path -> Image
	imagesByID  map[string]*ebiten.Image
	clipsByID   map[string]*SoundClip
	fontCache   map[string]*text.GoTextFace // ID 或 "face:size" -> Face
	fontSources map[string]*text.GoTextFaceSource

	config    *ResourceConfig
	imageDefs map[string]ImageResource
	soundDefs map[string]SoundResource
	fontDefs  map[string]FontResource
}

// SoundClip 解码后的 PCM 数据（16 位小端双声道，采样率与音频上下文一致）
type SoundClip struct {
	PCM  []byte
	Loop bool
}

// NewResourceManager creates and initializes a new ResourceManager instance.
//
// Parameters:
//   - audioContext: The global audio context used for decoding and playing audio.
//   - files: Optional file system holding asset overrides (may be nil).
func NewResourceManager(audioContext *ebaudio.Context, files fs.FS) *ResourceManager {
	return &ResourceManager{
		audioContext: audioContext,
		files:        files,
		imageCache:   make(map[string]*ebiten.Image),
		imagesByID:   make(map[string]*ebiten.Image),
		clipsByID:    make(map[string]*SoundClip),
		fontCache:    make(map[string]*text.GoTextFace),
		fontSources:  make(map[string]*text.GoTextFaceSource),
		imageDefs:    make(map[string]ImageResource),
		soundDefs:    make(map[string]SoundResource),
		fontDefs:     make(map[string]FontResource),
	}
}

// LoadResourceConfig parses the resource configuration YAML.
// This method should be called once during startup, before loading any resources.
func (rm *ResourceManager) LoadResourceConfig(data []byte) error {
	cfg, err := ParseResourceConfig(data)
	if err != nil {
		return err
	}
	rm.config = cfg
	rm.buildResourceMap()
	return nil
}

// buildResourceMap 建立 资源ID -> 定义 的索引
func (rm *ResourceManager) buildResourceMap() {
	rm.imageDefs = make(map[string]ImageResource)
	rm.soundDefs = make(map[string]SoundResource)
	rm.fontDefs = make(map[string]FontResource)

	for _, group := range rm.config.Groups {
		for _, img := range group.Images {
			rm.imageDefs[img.ID] = img
		}
		for _, snd := range group.Sounds {
			rm.soundDefs[snd.ID] = snd
		}
		for _, font := range group.Fonts {
			rm.fontDefs[font.ID] = font
		}
	}
}

// readFile 从外部资源文件系统读取
func (rm *ResourceManager) readFile(p string) ([]byte, error) {
	if rm.files == nil {
		return nil, fmt.Errorf("no asset file system: %w", fs.ErrNotExist)
	}
	data, err := fs.ReadFile(rm.files, p)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", p, err)
	}
	return data, nil
}

func (rm *ResourceManager) fullPath(p string) string {
	base := ""
	if rm.config != nil {
		base = rm.config.BasePath
	}
	return buildFullPath(base, p)
}

// LoadImage loads an image file from the asset file system and caches it.
// Supported formats: PNG and JPEG.
func (rm *ResourceManager) LoadImage(p string) (*ebiten.Image, error) {
	if cached, exists := rm.imageCache[p]; exists {
		return cached, nil
	}

	data, err := rm.readFile(p)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", p, err)
	}

	ebitenImg := ebiten.NewImageFromImage(img)
	rm.imageCache[p] = ebitenImg
	return ebitenImg, nil
}

// LoadImageByID loads an image resource using its resource ID.
// 外部文件加载失败时记录警告并回退到生成器
func (rm *ResourceManager) LoadImageByID(resourceID string) (*ebiten.Image, error) {
	if img, ok := rm.imagesByID[resourceID]; ok {
		return img, nil
	}
	def, exists := rm.imageDefs[resourceID]
	if !exists {
		return nil, fmt.Errorf("image resource ID not found: %s", resourceID)
	}

	if def.Path != "" {
		img, err := rm.LoadImage(rm.fullPath(def.Path))
		if err == nil {
			rm.imagesByID[resourceID] = img
			return img, nil
		}
		if def.Generator == nil {
			return nil, fmt.Errorf("image %s: %w", resourceID, err)
		}
		log.Printf("[ResourceManager] %s: %v, using generated placeholder", resourceID, err)
	}

	generated, err := placeholders.Generate(def.Generator.PlaceholderSpec(def.Cols))
	if err != nil {
		return nil, fmt.Errorf("image %s: %w", resourceID, err)
	}
	img := ebiten.NewImageFromImage(generated)
	rm.imagesByID[resourceID] = img
	log.Printf("[ResourceManager] Generated %s (%s %dx%d)", resourceID, def.Generator.Kind,
		generated.Bounds().Dx(), generated.Bounds().Dy())
	return img, nil
}

// SheetGrid 返回精灵表的列数和行数
// 未声明时：生成的精灵表按帧数推算，普通图片为 1x1
func (rm *ResourceManager) SheetGrid(resourceID string) (cols, rows int) {
	def, ok := rm.imageDefs[resourceID]
	if !ok {
		return 1, 1
	}
	frames := 1
	if def.Generator != nil && def.Generator.Frames > 0 {
		frames = def.Generator.Frames
	}
	cols, rows = def.Cols, def.Rows
	if cols < 1 {
		// 与生成器一致：未指定列数时排成一行
		cols = frames
	}
	if rows < 1 {
		rows = (frames + cols - 1) / cols
	}
	return cols, rows
}

// LoadSound 加载音频资源并解码为 PCM
func (rm *ResourceManager) LoadSound(resourceID string) (*SoundClip, error) {
	if clip, ok := rm.clipsByID[resourceID]; ok {
		return clip, nil
	}
	def, exists := rm.soundDefs[resourceID]
	if !exists {
		return nil, fmt.Errorf("sound resource ID not found: %s", resourceID)
	}
	if rm.audioContext == nil {
		return nil, fmt.Errorf("sound %s: no audio context", resourceID)
	}

	var pcm []byte
	var err error
	if def.Path != "" {
		pcm, err = rm.decodeAudioFile(rm.fullPath(def.Path))
		if err != nil && def.Tone == nil {
			return nil, fmt.Errorf("sound %s: %w", resourceID, err)
		}
		if err != nil {
			log.Printf("[ResourceManager] %s: %v, using synthesized tone", resourceID, err)
		}
	}
	if pcm == nil {
		pcm, err = rm.synthesize(*def.Tone)
		if err != nil {
			return nil, fmt.Errorf("sound %s: %w", resourceID, err)
		}
	}

	clip := &SoundClip{PCM: pcm, Loop: def.Loop}
	rm.clipsByID[resourceID] = clip
	return clip, nil
}

// decodeAudioFile decodes WAV / MP3 / OGG into PCM at the context sample rate.
func (rm *ResourceManager) decodeAudioFile(p string) ([]byte, error) {
	data, err := rm.readFile(p)
	if err != nil {
		return nil, err
	}
	reader := bytes.NewReader(data)
	sampleRate := rm.audioContext.SampleRate()

	var stream io.Reader
	switch ext := strings.ToLower(path.Ext(p)); ext {
	case ".wav":
		s, err := wav.DecodeWithSampleRate(sampleRate, reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode WAV audio %s: %w", p, err)
		}
		stream = s
	case ".mp3":
		s, err := mp3.DecodeWithSampleRate(sampleRate, reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode MP3 audio %s: %w", p, err)
		}
		stream = s
	case ".ogg":
		s, err := vorbis.DecodeWithSampleRate(sampleRate, reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode OGG audio %s: %w", p, err)
		}
		stream = s
	default:
		return nil, fmt.Errorf("unsupported audio format: %s (supported: .wav, .mp3, .ogg)", ext)
	}

	pcm, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio %s: %w", p, err)
	}
	return pcm, nil
}

func (rm *ResourceManager) synthesize(spec ToneSpec) ([]byte, error) {
	tone, err := spec.AudioTone()
	if err != nil {
		return nil, err
	}
	stream, err := audio.Synthesize(tone, rm.audioContext.SampleRate())
	if err != nil {
		return nil, err
	}
	return io.ReadAll(stream)
}

// NewSoundPlayer 为音频资源创建新的播放器
// 每次调用返回独立的播放器，因此同一音效可以叠加播放；Loop 资源无限循环
func (rm *ResourceManager) NewSoundPlayer(resourceID string) (*ebaudio.Player, error) {
	clip, err := rm.LoadSound(resourceID)
	if err != nil {
		return nil, err
	}
	if clip.Loop {
		loop := ebaudio.NewInfiniteLoop(bytes.NewReader(clip.PCM), int64(len(clip.PCM)))
		player, err := rm.audioContext.NewPlayer(loop)
		if err != nil {
			return nil, fmt.Errorf("failed to create audio player for %s: %w", resourceID, err)
		}
		return player, nil
	}
	return rm.audioContext.NewPlayerFromBytes(clip.PCM), nil
}

// goFontTTF 内置 Go 字体
func goFontTTF(face string) ([]byte, error) {
	switch face {
	case "", "regular":
		return goregular.TTF, nil
	case "bold":
		return gobold.TTF, nil
	case "italic":
		return goitalic.TTF, nil
	case "mono":
		return gomono.TTF, nil
	}
	return nil, fmt.Errorf("unknown built-in font face %q (regular, bold, italic, mono)", face)
}

// fontSource 取得（并缓存）字体源；path 非空时从外部文件加载
func (rm *ResourceManager) fontSource(face, p string) (*text.GoTextFaceSource, error) {
	if face == "" {
		face = "regular"
	}
	key := face
	if p != "" {
		key = "file:" + p
	}
	if src, ok := rm.fontSources[key]; ok {
		return src, nil
	}

	var data []byte
	var err error
	if p != "" {
		data, err = rm.readFile(p)
	} else {
		data, err = goFontTTF(face)
	}
	if err != nil {
		return nil, err
	}

	src, err := text.NewGoTextFaceSource(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create font source for %s: %w", key, err)
	}
	rm.fontSources[key] = src
	return src, nil
}

// Face 返回指定内置字体和字号的文字 Face
func (rm *ResourceManager) Face(face string, size float64) (*text.GoTextFace, error) {
	cacheKey := fmt.Sprintf("%s:%.1f", face, size)
	if cached, ok := rm.fontCache[cacheKey]; ok {
		return cached, nil
	}
	src, err := rm.fontSource(face, "")
	if err != nil {
		return nil, err
	}
	f := &text.GoTextFace{Source: src, Size: size, Direction: text.DirectionLeftToRight}
	rm.fontCache[cacheKey] = f
	return f, nil
}

// LoadFontByID 按资源ID加载字体，外部字体加载失败时回退到内置字体
func (rm *ResourceManager) LoadFontByID(resourceID string) (*text.GoTextFace, error) {
	if cached, ok := rm.fontCache[resourceID]; ok {
		return cached, nil
	}
	def, exists := rm.fontDefs[resourceID]
	if !exists {
		return nil, fmt.Errorf("font resource ID not found: %s", resourceID)
	}

	var src *text.GoTextFaceSource
	var err error
	if def.Path != "" {
		src, err = rm.fontSource("", rm.fullPath(def.Path))
		if err != nil {
			log.Printf("[ResourceManager] %s: %v, using built-in font", resourceID, err)
		}
	}
	if src == nil {
		if src, err = rm.fontSource(def.Face, ""); err != nil {
			return nil, fmt.Errorf("font %s: %w", resourceID, err)
		}
	}

	f := &text.GoTextFace{Source: src, Size: def.Size, Direction: text.DirectionLeftToRight}
	rm.fontCache[resourceID] = f
	return f, nil
}

// FontFace 按资源ID取指定字号的字体
// 字体来源与 LoadFontByID 相同（外部文件优先），按 "ID@size" 缓存
func (rm *ResourceManager) FontFace(resourceID string, size float64) (*text.GoTextFace, error) {
	cacheKey := fmt.Sprintf("%s@%.1f", resourceID, size)
	if cached, ok := rm.fontCache[cacheKey]; ok {
		return cached, nil
	}
	base, err := rm.LoadFontByID(resourceID)
	if err != nil {
		return nil, err
	}
	if size <= 0 {
		size = base.Size
	}
	f := &text.GoTextFace{Source: base.Source, Size: size, Direction: text.DirectionLeftToRight}
	rm.fontCache[cacheKey] = f
	return f, nil
}

// LoadResourceGroup loads all resources in a specified group.
func (rm *ResourceManager) LoadResourceGroup(groupName string) error {
	if rm.config == nil {
		return fmt.Errorf("resource config not loaded - call LoadResourceConfig first")
	}
	group, exists := rm.config.Groups[groupName]
	if !exists {
		return fmt.Errorf("resource group not found: %s", groupName)
	}

	for _, img := range group.Images {
		if _, err := rm.LoadImageByID(img.ID); err != nil {
			return fmt.Errorf("failed to load image %s in group %s: %w", img.ID, groupName, err)
		}
	}
	for _, snd := range group.Sounds {
		if _, err := rm.LoadSound(snd.ID); err != nil {
			return fmt.Errorf("failed to load sound %s in group %s: %w", snd.ID, groupName, err)
		}
	}
	for _, font := range group.Fonts {
		if _, err := rm.LoadFontByID(font.ID); err != nil {
			return fmt.Errorf("failed to load font %s in group %s: %w", font.ID, groupName, err)
		}
	}

	log.Printf("[ResourceManager] Loaded group %s (%d images, %d sounds, %d fonts)",
		groupName, len(group.Images), len(group.Sounds), len(group.Fonts))
	return nil
}

// GroupNames 返回配置中的资源组名（按名称排序）
func (rm *ResourceManager) GroupNames() []string {
	if rm.config == nil {
		return nil
	}
	names := make([]string, 0, len(rm.config.Groups))
	for name := range rm.config.Groups {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
