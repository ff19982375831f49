package crawlers

import (
	"errors"

	"github.com/RecoveryAshes/sitescrape/internal/models"
)

var (
	// ErrAlreadyVisited URL已访问过
	ErrAlreadyVisited = errors.New("URL已访问")

	// ErrAlreadyQueued URL已在待爬队列中
	ErrAlreadyQueued = errors.New("URL已在队列中")
)

// URLQueue 待爬队列(frontier)与已访问集合
// 先进先出,即广度优先; 不变量: 已访问的URL永远不会出现在待爬队列中
// 仅由单个爬取循环使用,不做并发保护
type URLQueue struct {
	// 待处理URL (FIFO)
	pending []models.URLItem

	// 待处理URL集合,用于去重
	pendingSet map[string]struct{}

	// 已访问URL集合,只增不减
	visited map[string]struct{}
}

// NewURLQueue 创建URL队列实例
func NewURLQueue() *URLQueue {
	return &URLQueue{
		pendingSet: make(map[string]struct{}),
		visited:    make(map[string]struct{}),
	}
}

// Push 添加URL到待爬队列
// 已访问或已排队的URL返回错误
func (q *URLQueue) Push(urlStr string, sourceURL string) error {
	if _, ok := q.visited[urlStr]; ok {
		return ErrAlreadyVisited
	}
	if _, ok := q.pendingSet[urlStr]; ok {
		return ErrAlreadyQueued
	}

	q.pending = append(q.pending, models.URLItem{URL: urlStr, SourceURL: sourceURL})
	q.pendingSet[urlStr] = struct{}{}
	return nil
}

// Pop 取出最早加入的URL
// 队列为空时返回false
func (q *URLQueue) Pop() (models.URLItem, bool) {
	if len(q.pending) == 0 {
		return models.URLItem{}, false
	}

	item := q.pending[0]
	q.pending[0] = models.URLItem{}
	q.pending = q.pending[1:]
	delete(q.pendingSet, item.URL)
	return item, true
}

// MarkVisited 标记URL为已访问
func (q *URLQueue) MarkVisited(urlStr string) {
	q.visited[urlStr] = struct{}{}
}

// IsVisited 检查URL是否已访问
func (q *URLQueue) IsVisited(urlStr string) bool {
	_, ok := q.visited[urlStr]
	return ok
}

// isPending 检查URL是否在待爬队列中
func (q *URLQueue) isPending(urlStr string) bool {
	_, ok := q.pendingSet[urlStr]
	return ok
}

// PendingCount 返回当前待处理URL数量
func (q *URLQueue) PendingCount() int {
	return len(q.pending)
}

// VisitedCount 返回已访问URL数量
func (q *URLQueue) VisitedCount() int {
	return len(q.visited)
}

// pendingURLs 按出队顺序返回待处理URL的副本
func (q *URLQueue) pendingURLs() []string {
	urls := make([]string, 0, len(q.pending))
	for _, item := range q.pending {
		urls = append(urls, item.URL)
	}
	return urls
}
