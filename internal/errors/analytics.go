package errors

import (
	"sync"
	"time"
)

// ErrorAnalytics 错误分析，按错误码与调用维度计数
type ErrorAnalytics struct {
	mu            sync.RWMutex
	TotalErrors   int
	ErrorsByCode  map[ErrorCode]int
	ErrorsByOp    map[string]int
	LastErrorTime time.Time
}

// NewErrorAnalytics 创建错误分析器
func NewErrorAnalytics() *ErrorAnalytics {
	return &ErrorAnalytics{
		ErrorsByCode: make(map[ErrorCode]int),
		ErrorsByOp:   make(map[string]int),
	}
}

// Record 记录错误
func (a *ErrorAnalytics) Record(err *TracedError) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.TotalErrors++
	a.ErrorsByCode[err.Code]++
	a.ErrorsByOp[err.Context.Op]++
	a.LastErrorTime = time.Now()
}

// GetStats 获取统计信息
func (a *ErrorAnalytics) GetStats() map[string]interface{} {
	a.mu.RLock()
	defer a.mu.RUnlock()

	byCode := make(map[ErrorCode]int, len(a.ErrorsByCode))
	for code, count := range a.ErrorsByCode {
		byCode[code] = count
	}
	byOp := make(map[string]int, len(a.ErrorsByOp))
	for op, count := range a.ErrorsByOp {
		byOp[op] = count
	}

	return map[string]interface{}{
		"total_errors":   a.TotalErrors,
		"errors_by_code": byCode,
		"errors_by_op":   byOp,
		"last_error":     a.LastErrorTime,
	}
}
