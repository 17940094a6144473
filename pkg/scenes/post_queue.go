package scenes

import "sync"

// PostQueue 跨 goroutine 投递到渲染循环执行的任务队列
//
// 后台加载完成的回调通过 Post 投递，渲染循环在每帧开始时调用 Drain 执行，
// 保证场景状态只在渲染循环中被修改。
type PostQueue struct {
	mu    sync.Mutex
	tasks []func()
}

// Post 投递任务，可在任意 goroutine 调用
func (q *PostQueue) Post(fn func()) {
	q.mu.Lock()
	q.tasks = append(q.tasks, fn)
	q.mu.Unlock()
}

// Drain 按投递顺序执行当前所有任务
// 任务执行期间新投递的任务留到下一次 Drain
//
// 返回：
//   - int: 执行的任务数
func (q *PostQueue) Drain() int {
	q.mu.Lock()
	tasks := q.tasks
	q.tasks = nil
	q.mu.Unlock()

	for _, fn := range tasks {
		fn()
	}
	return len(tasks)
}

// Len 当前排队的任务数
func (q *PostQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.tasks)
}
