// Package syncthing generates the artifacts installed on the instance:
// the Docker Compose service definition and the bootstrap script that
// installs the container runtime and starts the service.
package syncthing

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/ostred/syncup/internal/config"
)

// Paths on the instance. The compose file and both bind mounts live
// under AppDir; the bootstrap script creates them.
const (
	AppDir      = "/opt/syncthing"
	ConfigDir   = AppDir + "/config"
	DataDir     = AppDir + "/data"
	ComposePath = AppDir + "/docker-compose.yml"
)

// Image is the container image reference for the sync service.
const Image = "syncthing/syncthing:latest"

// Compose is the service definition document. It is assembled from
// typed fields and serialized once, rather than substituting text into
// a template.
type Compose struct {
	Services map[string]Service `yaml:"services"`
}

// Service describes the single sync container.
type Service struct {
	Image         string            `yaml:"image"`
	ContainerName string            `yaml:"container_name"`
	Restart       string            `yaml:"restart"`
	Environment   map[string]string `yaml:"environment"`
	Ports         []string          `yaml:"ports"`
	Volumes       []string          `yaml:"volumes"`
}

// NewCompose builds the service definition from configuration. The GUI
// credential values come straight from cfg; when the operator leaves
// them unset the rendered document carries empty values and credentials
// are configured on first login instead.
func NewCompose(cfg *config.Config) *Compose {
	return &Compose{
		Services: map[string]Service{
			"syncthing": {
				Image:         Image,
				ContainerName: "syncthing",
				Restart:       "unless-stopped",
				Environment: map[string]string{
					"GUI_USER":     cfg.GUIUser,
					"GUI_PASSWORD": cfg.GUIPassword,
				},
				Ports: []string{
					fmt.Sprintf("%d:%d/tcp", config.PortWebUI, config.PortWebUI),
					fmt.Sprintf("%d:%d/tcp", config.PortSync, config.PortSync),
					fmt.Sprintf("%d:%d/udp", config.PortDiscovery, config.PortDiscovery),
				},
				Volumes: []string{
					ConfigDir + ":/var/syncthing/config",
					DataDir + ":/var/syncthing/data",
				},
			},
		},
	}
}

// Render serializes the document to YAML.
func (c *Compose) Render() ([]byte, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to render compose document: %w", err)
	}
	return out, nil
}
