package config

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// hintConfigDebounce 同一文件最后一次事件之后的静默时间
// 编辑器保存时常连续产生 Write/Rename/Create，静默之后才投递
const hintConfigDebounce = 100 * time.Millisecond

// HintConfigWatcher 监听配置文件变化，实现热重载
//
// 监听在后台 goroutine 中进行，只把变化的文件路径投递到 Events；
// 游戏循环在 Update 中非阻塞地读取 Events 并重新加载配置，
// 因此所有配置修改仍然发生在游戏线程上
type HintConfigWatcher struct {
	watcher *fsnotify.Watcher
	Events  chan string
	Errors  chan error
	files   map[string]bool
	closeCh chan struct{}
	once    sync.Once
}

// NewHintConfigWatcher 创建配置文件监听器
// 监听文件所在目录（编辑器常以"写临时文件再改名"的方式保存）
//
// 参数：
//   - paths: 需要监听的文件路径（配置文件、目标脚本）
//
// 返回：
//   - *HintConfigWatcher: 监听器实例
//   - error: 创建或添加监听目录失败
func NewHintConfigWatcher(paths ...string) (*HintConfigWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	files := make(map[string]bool, len(paths))
	dirs := make(map[string]bool)
	for _, p := range paths {
		if p == "" {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			_ = w.Close()
			return nil, err
		}
		files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}

	for dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, err
		}
	}

	watcher := &HintConfigWatcher{
		watcher: w,
		Events:  make(chan string, 16),
		Errors:  make(chan error, 1),
		files:   files,
		closeCh: make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

// Close 停止监听并关闭通道，可重复调用
func (w *HintConfigWatcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
	})
	return err
}

// Poll 非阻塞地取出所有待处理的变化文件（去重）
// 由游戏循环每帧调用
func (w *HintConfigWatcher) Poll() []string {
	var changed []string
	seen := make(map[string]bool)
	for {
		select {
		case name := <-w.Events:
			if !seen[name] {
				seen[name] = true
				changed = append(changed, name)
			}
		default:
			return changed
		}
	}
}

func (w *HintConfigWatcher) run() {
	pending := make(map[string]*time.Timer)
	ready := make(chan string)
	defer func() {
		for _, t := range pending {
			t.Stop()
		}
	}()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			name, err := filepath.Abs(event.Name)
			if err != nil || !w.files[name] {
				continue
			}
			// 每个新事件都把该文件的投递时间推后
			if t, ok := pending[name]; ok {
				t.Reset(hintConfigDebounce)
				continue
			}
			pending[name] = time.AfterFunc(hintConfigDebounce, func() {
				select {
				case ready <- name:
				case <-w.closeCh:
				}
			})
		case name := <-ready:
			delete(pending, name)
			select {
			case w.Events <- name:
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
				// 上一个错误还没被取走，丢弃
			}
		case <-w.closeCh:
			return
		}
	}
}
