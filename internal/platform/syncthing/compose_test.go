package syncthing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/ostred/syncup/internal/config"
)

func TestNewCompose_CredentialSubstitution(t *testing.T) {
	t.Parallel()
	cfg := config.Default()
	cfg.GUIUser = "alice"
	cfg.GUIPassword = "hunter2"

	doc := NewCompose(cfg)
	svc, ok := doc.Services["syncthing"]
	require.True(t, ok)

	assert.Equal(t, "alice", svc.Environment["GUI_USER"])
	assert.Equal(t, "hunter2", svc.Environment["GUI_PASSWORD"])
	assert.Len(t, svc.Environment, 2, "only the two credential values are rendered")

	// Credential choice must not alter the rest of the document.
	base := NewCompose(config.Default()).Services["syncthing"]
	assert.Equal(t, base.Image, svc.Image)
	assert.Equal(t, base.Ports, svc.Ports)
	assert.Equal(t, base.Volumes, svc.Volumes)
	assert.Equal(t, base.Restart, svc.Restart)
}

func TestNewCompose_DefaultsLeaveCredentialsUnset(t *testing.T) {
	t.Parallel()
	svc := NewCompose(config.Default()).Services["syncthing"]

	assert.Empty(t, svc.Environment["GUI_USER"])
	assert.Empty(t, svc.Environment["GUI_PASSWORD"])
}

func TestNewCompose_PortsAndVolumes(t *testing.T) {
	t.Parallel()
	svc := NewCompose(config.Default()).Services["syncthing"]

	assert.ElementsMatch(t, []string{
		"8384:8384/tcp",
		"22000:22000/tcp",
		"21027:21027/udp",
	}, svc.Ports)

	assert.ElementsMatch(t, []string{
		"/opt/syncthing/config:/var/syncthing/config",
		"/opt/syncthing/data:/var/syncthing/data",
	}, svc.Volumes)
}

func TestRender_RoundTrips(t *testing.T) {
	t.Parallel()
	cfg := config.Default()
	cfg.GUIUser = "alice"
	cfg.GUIPassword = "hunter2"

	out, err := NewCompose(cfg).Render()
	require.NoError(t, err)

	var parsed Compose
	require.NoError(t, yaml.Unmarshal(out, &parsed))

	svc := parsed.Services["syncthing"]
	assert.Equal(t, Image, svc.Image)
	assert.Equal(t, "alice", svc.Environment["GUI_USER"])
	assert.Equal(t, "hunter2", svc.Environment["GUI_PASSWORD"])
	assert.Equal(t, "unless-stopped", svc.Restart)
}
