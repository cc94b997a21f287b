package utils

import (
	"fmt"
	"sync"
	"time"
)

// GenerateID creates schema-aligned IDs
// Format: prefix-timestamp-counter (e.g., "book-1705612800000-001")
func GenerateID(prefix string) string {
	timestamp := time.Now().UnixMilli()
	counter := atomicCounter()
	return fmt.Sprintf("%s-%d-%03d", prefix, timestamp, counter)
}

// GenerateBookID creates book-specific ID
func GenerateBookID() string {
	return GenerateID("book")
}

// GenerateChapterID creates chapter-specific ID
func GenerateChapterID() string {
	return GenerateID("chapter")
}

// GenerateMissionID creates mission-specific ID
func GenerateMissionID() string {
	return GenerateID("mission")
}

// atomicCounter provides thread-safe sequential counters
var (
	counter int64
	mu      sync.Mutex
)

func atomicCounter() int {
	mu.Lock()
	defer mu.Unlock()
	counter++
	return int(counter)
}
