// Package ssh provides the transport for remote bootstrap: command
// execution and file upload over the SSH protocol, authenticated by the
// locally generated private key.
package ssh

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/ssh"
)

// SSHCommunicator implements Communicator using the SSH protocol.
type SSHCommunicator struct {
	host       string
	user       string
	privateKey []byte
}

// NewSSHCommunicator creates a new SSHCommunicator.
func NewSSHCommunicator(host, user string, privateKey []byte) *SSHCommunicator {
	return &SSHCommunicator{
		host:       host,
		user:       user,
		privateKey: privateKey,
	}
}

func (c *SSHCommunicator) dial(ctx context.Context) (*ssh.Client, error) {
	signer, err := ssh.ParsePrivateKey(c.privateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %w", err)
	}

	config := &ssh.ClientConfig{
		User: c.user,
		Auth: []ssh.AuthMethod{
			ssh.PublicKeys(signer),
		},
		// The instance was created moments ago; there is no prior host
		// key to pin against.
		HostKeyCallback: ssh.InsecureIgnoreHostKey(), // #nosec G106
		Timeout:         10 * time.Second,
	}

	var client *ssh.Client
	// The instance accepts connections some time after creation reports
	// success, so dialing is retried on a fixed interval.
	for i := 0; i < 10; i++ {
		client, err = ssh.Dial("tcp", c.host+":22", config)
		if err == nil {
			return client, nil
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(5 * time.Second):
			continue
		}
	}
	return nil, fmt.Errorf("failed to dial ssh: %w", err)
}

func (c *SSHCommunicator) Execute(ctx context.Context, command string) (string, error) {
	client, err := c.dial(ctx)
	if err != nil {
		return "", err
	}
	defer client.Close()

	session, err := client.NewSession()
	if err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}
	defer session.Close()

	output, err := session.CombinedOutput(command)
	if err != nil {
		return string(output), fmt.Errorf("failed to execute command: %w, output: %s", err, output)
	}

	return string(output), nil
}

// UploadFile streams content into a remote file through a shell on the
// far side. Avoids requiring an SFTP subsystem on the minimal image.
func (c *SSHCommunicator) UploadFile(ctx context.Context, content []byte, remotePath string) error {
	client, err := c.dial(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	session, err := client.NewSession()
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	defer session.Close()

	stdin, err := session.StdinPipe()
	if err != nil {
		return fmt.Errorf("failed to open stdin pipe: %w", err)
	}

	cmd := fmt.Sprintf("cat > %q && chmod 0755 %q", remotePath, remotePath)
	if err := session.Start(cmd); err != nil {
		return fmt.Errorf("failed to start upload: %w", err)
	}

	if _, err := stdin.Write(content); err != nil {
		return fmt.Errorf("failed to write upload stream: %w", err)
	}
	if err := stdin.Close(); err != nil {
		return fmt.Errorf("failed to close upload stream: %w", err)
	}

	if err := session.Wait(); err != nil {
		return fmt.Errorf("upload to %s failed: %w", remotePath, err)
	}
	return nil
}
