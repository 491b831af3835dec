package profile

import (
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
)

// Profile is the configuration to start the main server.
type Profile struct {
	// Mode can be "prod" or "dev"
	Mode string
	// Addr is the binding address for server
	Addr string
	// Port is the binding port for server
	Port int
	// Data is the data directory holding uploads and generated calendars
	Data string
	// Version is the current version of server
	Version string

	// Origins is the list of allowed CORS origins for the upload endpoint.
	Origins []string

	// AI configuration for the vision extraction provider.
	AIBaseURL   string // CLASSCAL_AI_BASE_URL (default: https://api.openai.com/v1)
	AIAPIKey    string // CLASSCAL_AI_API_KEY (legacy: OPENAI_API_KEY)
	AIModel     string // CLASSCAL_AI_MODEL (default: gpt-4o)
	AIMaxTokens int    // CLASSCAL_AI_MAX_TOKENS (default: 1500)
	AITimeout   time.Duration

	// RateLimitRPS / RateLimitBurst bound per-client upload throughput.
	RateLimitRPS   float64
	RateLimitBurst int
}

func (p *Profile) IsDev() bool {
	return p.Mode != "prod"
}

// UploadDir returns the directory where uploaded source images are written.
// Contents are removed per request.
func (p *Profile) UploadDir() string {
	return filepath.Join(p.Data, "uploads")
}

// CalendarDir returns the directory where generated calendar documents are
// written. Retained until external cleanup.
func (p *Profile) CalendarDir() string {
	return filepath.Join(p.Data, "calendars")
}

// Normalize fills in missing values with defaults so a partially populated
// profile still behaves correctly.
func (p *Profile) Normalize() {
	if p.Mode != "prod" && p.Mode != "dev" {
		p.Mode = "dev"
	}
	if p.Addr == "" {
		p.Addr = "127.0.0.1"
	}
	if p.Port == 0 {
		p.Port = 8081
	}
	if p.Data == "" {
		p.Data = "./data"
	}
	if len(p.Origins) == 0 {
		p.Origins = []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	}
	if p.AIBaseURL == "" {
		p.AIBaseURL = "https://api.openai.com/v1"
	}
	if p.AIAPIKey == "" {
		p.AIAPIKey = os.Getenv("OPENAI_API_KEY")
	}
	if p.AIModel == "" {
		p.AIModel = "gpt-4o"
	}
	if p.AIMaxTokens <= 0 {
		p.AIMaxTokens = 1500
	}
	if p.AITimeout <= 0 {
		p.AITimeout = 60 * time.Second
	}
	if p.RateLimitRPS <= 0 {
		p.RateLimitRPS = 2
	}
	if p.RateLimitBurst <= 0 {
		p.RateLimitBurst = 5
	}
}

// Validate normalizes the profile and checks that it is usable.
func (p *Profile) Validate() error {
	p.Normalize()

	dataDir, err := filepath.Abs(p.Data)
	if err != nil {
		return errors.Wrapf(err, "unable to resolve data directory %q", p.Data)
	}
	p.Data = dataDir

	if p.AIAPIKey == "" {
		return errors.New("AI API key is required, set CLASSCAL_AI_API_KEY or OPENAI_API_KEY")
	}
	return nil
}
