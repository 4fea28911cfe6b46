// Package sysinfo gathers the identity lines the report opens with. Every
// field degrades to "unknown" rather than failing the run; a report with a
// missing hostname is still worth sending.
package sysinfo

import (
	"context"
	"io"
	"net/http"
	"runtime"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/host"
	"github.com/tidwall/gjson"

	"github.com/pkgherald/pkgherald/internal/httpx"
	"github.com/pkgherald/pkgherald/internal/logging"
)

// DefaultIPEndpoint answers with a {"ip": "..."} JSON body.
const DefaultIPEndpoint = "https://api.ipify.org?format=json"

// Unknown fills any field that could not be gathered.
const Unknown = "unknown"

// Info is the host identity a report opens with.
type Info struct {
	Hostname string
	OS       string // platform description, e.g. "debian 12.5"
	Arch     string
	PublicIP string
}

// Provider gathers host identity.
type Provider interface {
	Collect(ctx context.Context) Info
}

// Collector implements Provider with gopsutil host facts and a public-IP
// lookup over HTTPS.
type Collector struct {
	client   *http.Client
	endpoint string

	// hostInfo is swappable for tests.
	hostInfo func() (*host.InfoStat, error)
}

// New returns a Collector querying endpoint for the public IP
// (DefaultIPEndpoint when empty).
func New(endpoint string) *Collector {
	if endpoint == "" {
		endpoint = DefaultIPEndpoint
	}
	return &Collector{
		client:   httpx.NewClient(10 * time.Second),
		endpoint: endpoint,
		hostInfo: host.Info,
	}
}

// Collect gathers hostname, platform, architecture and public IP. It never
// fails; unavailable fields come back as Unknown.
func (c *Collector) Collect(ctx context.Context) Info {
	log := logging.L("sysinfo")

	info := Info{
		Hostname: Unknown,
		OS:       Unknown,
		Arch:     runtime.GOARCH,
		PublicIP: Unknown,
	}

	if hostInfo, err := c.hostInfo(); err == nil {
		if hostInfo.Hostname != "" {
			info.Hostname = hostInfo.Hostname
		}
		if hostInfo.Platform != "" {
			info.OS = strings.TrimSpace(hostInfo.Platform + " " + hostInfo.PlatformVersion)
		}
	} else {
		log.Debugw("host info unavailable", "error", err)
	}

	if ip := c.publicIP(ctx); ip != "" {
		info.PublicIP = ip
	}

	return info
}

// publicIP queries the configured endpoint. JSON bodies are read through
// their "ip" field; anything else is taken as a bare-text address so plain
// responders keep working. Returns "" when the lookup fails.
func (c *Collector) publicIP(ctx context.Context) string {
	log := logging.L("sysinfo")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		log.Debugw("building public IP request", "endpoint", c.endpoint, "error", err)
		return ""
	}

	resp, err := c.client.Do(req)
	if err != nil {
		log.Debugw("public IP lookup failed", "endpoint", c.endpoint, "error", err)
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Debugw("public IP lookup returned non-200", "endpoint", c.endpoint, "status", resp.StatusCode)
		return ""
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		log.Debugw("reading public IP response", "error", err)
		return ""
	}

	if value := gjson.GetBytes(body, "ip"); value.Exists() {
		return strings.TrimSpace(value.String())
	}
	return strings.TrimSpace(string(body))
}
