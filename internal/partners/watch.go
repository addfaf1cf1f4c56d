package partners

import (
	"context"
	"path/filepath"

	"partner-map/internal/logger"

	"github.com/fsnotify/fsnotify"
)

// 文档注释：监听数据文件变化
// 背景：编辑器保存常以“写临时文件再重命名”完成，因此监听所在目录并按文件名过滤。
// 约束：onChange 在监听协程中调用，调用方需自行投递到事件循环；ctx 结束后关闭监听器。
func Watch(ctx context.Context, path string, onChange func()) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := w.Add(filepath.Dir(path)); err != nil {
		_ = w.Close()
		return err
	}
	target := filepath.Clean(path)
	go func() {
		defer w.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != target {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
					logger.L().Debug("partners_file_changed", "path", ev.Name, "op", ev.Op.String())
					onChange()
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				logger.L().Warn("partners_watch_error", "err", err)
			}
		}
	}()
	return nil
}
