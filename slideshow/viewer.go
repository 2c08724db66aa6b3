package slideshow

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"galleroon/state"
	"galleroon/storage"
)

// ErrMissingSelection 表示没有指定分类或文件夹
var ErrMissingSelection = errors.New("category or folder not specified")

// MissingSelectionMessage 是缺少分类或文件夹时展示的文案
const MissingSelectionMessage = "Category or folder not specified"

// View 是幻灯片在某一时刻的快照
type View struct {
	Category string
	Folder   string
	Images   []string
	Pager    Pager
	Loading  bool
	Err      error
	Message  string
}

// Index 返回当前显示的下标，序列为空时返回 false
func (v View) Index() (int, bool) {
	return v.Pager.Index(len(v.Images))
}

// Current 返回当前显示的图片 URL
func (v View) Current() (string, bool) {
	i, ok := v.Index()
	if !ok {
		return "", false
	}
	return v.Images[i], true
}

// Thumbnail 是缩略图条中的一项
type Thumbnail struct {
	Index  int
	URL    string
	Active bool
}

// Thumbnails 返回缩略图条的只读投影，当前显示的那张 Active 为 true
func (v View) Thumbnails() []Thumbnail {
	current, ok := v.Index()
	thumbs := make([]Thumbnail, len(v.Images))
	for i, u := range v.Images {
		thumbs[i] = Thumbnail{Index: i, URL: u, Active: ok && i == current}
	}
	return thumbs
}

// Viewer 驱动幻灯片页面：加载图片序列并响应翻页输入
type Viewer struct {
	bucket storage.Bucket
	log    zerolog.Logger
	store  *state.Store[View]

	mu         sync.Mutex
	generation uint64
	wg         sync.WaitGroup
}

// NewViewer 创建幻灯片控制器
func NewViewer(bucket storage.Bucket, log zerolog.Logger) *Viewer {
	return &Viewer{
		bucket: bucket,
		log:    log.With().Str("component", "slideshow").Logger(),
		store:  state.New(View{}),
	}
}

// Store 返回幻灯片状态
func (v *Viewer) Store() *state.Store[View] { return v.store }

// Open 为 (category, folder) 重新加载图片序列，翻页状态回到第一张。
// 较早发起、较晚返回的加载结果会被丢弃。
func (v *Viewer) Open(category, folder string) error {
	v.mu.Lock()
	v.generation++
	gen := v.generation

	if category == "" || folder == "" {
		v.store.Set(View{Category: category, Folder: folder, Err: ErrMissingSelection, Message: MissingSelectionMessage})
		v.mu.Unlock()
		return ErrMissingSelection
	}
	v.store.Set(View{Category: category, Folder: folder, Loading: true})
	v.mu.Unlock()

	v.wg.Add(1)
	go func() {
		defer v.wg.Done()
		images, err := LoadSequence(context.Background(), v.bucket, category, folder, v.log)
		v.finish(gen, category, folder, images, err)
	}()
	return nil
}

// OpenLink 解析导航地址后调用 Open
func (v *Viewer) OpenLink(link string) error {
	category, folder, err := ParseLink(link)
	if err != nil && !errors.Is(err, ErrMissingSelection) {
		return err
	}
	return v.Open(category, folder)
}

// Wait 阻塞直到所有已发起的加载结束
func (v *Viewer) Wait() { v.wg.Wait() }

func (v *Viewer) finish(gen uint64, category, folder string, images []string, err error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if gen != v.generation {
		v.log.Debug().Str("category", category).Str("folder", folder).Msg("丢弃过期的加载结果")
		return
	}

	next := View{Category: category, Folder: folder, Images: images}
	if err != nil {
		next.Images = nil
		next.Err = err
		next.Message = storage.UserMessage(err)
	}
	v.store.Set(next)
}

// Advance 翻 step 页；序列为空或仍在加载时不做任何事
func (v *Viewer) Advance(step int) bool {
	return v.move(func(p Pager, _ int) Pager { return p.Advance(step) })
}

// Next 前进一页
func (v *Viewer) Next() bool { return v.Advance(1) }

// Prev 后退一页
func (v *Viewer) Prev() bool { return v.Advance(-1) }

// JumpTo 跳到缩略图 index，超出范围时忽略
func (v *Viewer) JumpTo(index int) bool {
	return v.move(func(p Pager, n int) Pager {
		if index < 0 || index >= n {
			return p
		}
		return p.JumpTo(index)
	})
}

// HandleKey 处理按键，返回是否翻页
func (v *Viewer) HandleKey(name string) bool {
	step, ok := StepForKey(name)
	if !ok {
		return false
	}
	return v.Advance(step)
}

// HandleSwipe 处理拖动释放，返回是否翻页
func (v *Viewer) HandleSwipe(offset, velocity float64) bool {
	step, ok := StepForSwipe(offset, velocity)
	if !ok {
		return false
	}
	return v.Advance(step)
}

// move 与 Open/finish 共用 v.mu，翻页和加载结果按同一顺序写入状态
func (v *Viewer) move(fn func(p Pager, n int) Pager) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	moved := false
	v.store.Update(func(cur View) View {
		if cur.Loading || len(cur.Images) == 0 {
			return cur
		}
		next := fn(cur.Pager, len(cur.Images))
		moved = next != cur.Pager
		cur.Pager = next
		return cur
	})
	return moved
}
