package provisioning

import (
	"fmt"
	"log"
	"sync"
)

// Observer receives progress reporting from pipeline phases.
type Observer interface {
	// Printf logs a formatted progress message.
	Printf(format string, v ...interface{})
}

// ConsoleObserver implements Observer using the standard log package.
type ConsoleObserver struct{}

// NewConsoleObserver creates a new console-based observer.
func NewConsoleObserver() *ConsoleObserver {
	return &ConsoleObserver{}
}

func (o *ConsoleObserver) Printf(format string, v ...interface{}) {
	log.Printf(format, v...)
}

// MockObserver records messages for assertions in tests.
type MockObserver struct {
	mu       sync.Mutex
	Messages []string
}

// NewMockObserver creates a new recording observer.
func NewMockObserver() *MockObserver {
	return &MockObserver{}
}

func (o *MockObserver) Printf(format string, v ...interface{}) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.Messages = append(o.Messages, fmt.Sprintf(format, v...))
}
