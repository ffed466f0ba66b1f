package ssh

import "context"

// MockCommunicator is a mock implementation of Communicator.
type MockCommunicator struct {
	ExecuteFunc    func(ctx context.Context, command string) (string, error)
	UploadFileFunc func(ctx context.Context, content []byte, remotePath string) error

	// Recorded calls, in order.
	Executed []string
	Uploaded []string
}

func (m *MockCommunicator) Execute(ctx context.Context, command string) (string, error) {
	m.Executed = append(m.Executed, command)
	if m.ExecuteFunc != nil {
		return m.ExecuteFunc(ctx, command)
	}
	return "", nil
}

func (m *MockCommunicator) UploadFile(ctx context.Context, content []byte, remotePath string) error {
	m.Uploaded = append(m.Uploaded, remotePath)
	if m.UploadFileFunc != nil {
		return m.UploadFileFunc(ctx, content, remotePath)
	}
	return nil
}
