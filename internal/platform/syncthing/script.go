package syncthing

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/ostred/syncup/internal/config"
)

// RemoteScriptPath is where the rendered bootstrap script is uploaded
// before execution.
const RemoteScriptPath = "/tmp/syncup-bootstrap.sh"

// Backoff parameters for the in-script package-manager retries. They
// mirror the retry combinator defaults so transient apt lock contention
// on the small instance gets the same bounded treatment remotely.
const (
	scriptMaxAttempts     = 5
	scriptInitialDelaySec = 1
)

var scriptTemplate = template.Must(template.New("bootstrap").Parse(`#!/usr/bin/env bash
set -euo pipefail

log() { echo "[bootstrap] $*"; }

# Bounded exponential backoff: {{.MaxAttempts}} attempts, starting at
# {{.InitialDelaySec}}s and doubling. apt on a freshly booted micro
# instance loses races against unattended-upgrades, so every package
# operation goes through this.
retry() {
	local max={{.MaxAttempts}} delay={{.InitialDelaySec}} attempt=1 rc=0
	while true; do
		"$@" && return 0 || rc=$?
		if [ "$attempt" -ge "$max" ]; then
			log "giving up after $attempt attempts (exit $rc): $*"
			return "$rc"
		fi
		log "attempt $attempt/$max failed (exit $rc), retrying in ${delay}s: $*"
		sleep "$delay"
		delay=$((delay * 2))
		attempt=$((attempt + 1))
	done
}

export DEBIAN_FRONTEND=noninteractive

log "clearing stuck package manager state"
pkill -9 -f 'apt-get|apt |dpkg' 2>/dev/null || true
rm -f /var/lib/apt/lists/lock /var/cache/apt/archives/lock \
	/var/lib/dpkg/lock /var/lib/dpkg/lock-frontend
dpkg --configure -a || true

# snapd eats a large share of the 1GB on an e2-micro and nothing here
# needs it.
log "removing snapd"
apt-get purge -y snapd 2>/dev/null || true

log "installing container runtime"
retry apt-get update -qq
if ! retry apt-get install -y -qq docker.io docker-compose-plugin; then
	log "distro packages failed, falling back to get.docker.com"
	retry sh -c 'curl -fsSL https://get.docker.com | sh'
fi
systemctl enable --now docker

log "writing service definition"
mkdir -p {{.ConfigDir}} {{.DataDir}}
cat > {{.ComposePath}} <<'COMPOSE_EOF'
{{.ComposeYAML}}COMPOSE_EOF

log "starting sync service"
(cd {{.AppDir}} && docker compose up -d)

sleep 5
if ! docker compose -f {{.ComposePath}} ps | grep -Eiq 'running|up'; then
	log "service failed to start; dumping logs"
	docker compose -f {{.ComposePath}} logs --tail=100 || true
	exit 1
fi
log "sync service is running"

log "installing health-check cron entry"
CRON_LINE='*/5 * * * * cd {{.AppDir}} && docker compose up -d >/dev/null 2>&1'
(crontab -l 2>/dev/null; echo "$CRON_LINE") | sort -u | crontab -

log "bootstrap complete"
`))

type scriptData struct {
	ComposeYAML     string
	AppDir          string
	ConfigDir       string
	DataDir         string
	ComposePath     string
	MaxAttempts     int
	InitialDelaySec int
}

// RenderBootstrapScript produces the self-contained script executed on
// the instance with elevated privileges. The compose document is
// embedded verbatim so the script needs no network access beyond the
// package mirrors and the image registry.
func RenderBootstrapScript(cfg *config.Config) ([]byte, error) {
	composeYAML, err := NewCompose(cfg).Render()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	err = scriptTemplate.Execute(&buf, scriptData{
		ComposeYAML:     string(composeYAML),
		AppDir:          AppDir,
		ConfigDir:       ConfigDir,
		DataDir:         DataDir,
		ComposePath:     ComposePath,
		MaxAttempts:     scriptMaxAttempts,
		InitialDelaySec: scriptInitialDelaySec,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to render bootstrap script: %w", err)
	}
	return buf.Bytes(), nil
}
