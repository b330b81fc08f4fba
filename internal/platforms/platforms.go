// Package platforms classifies GA4 traffic rows into named source
// categories: one of the known LLM answer engines, a marketing channel
// derived from the session medium, direct, or other.
package platforms

import (
	"fmt"
	"strings"
	"sync"

	"go.elara.ws/pcre"
	"gopkg.in/yaml.v3"

	"embed"
)

// Channel names returned for non-LLM traffic.
const (
	Organic  = "organic"
	Paid     = "paid"
	Referral = "referral"
	Email    = "email"
	Social   = "social"
	Direct   = "direct"
	Other    = "other"
)

//go:embed database/platforms.yml
var databaseFiles embed.FS

// PlatformEntry is one LLM answer engine from the embedded pattern database.
type PlatformEntry struct {
	Name  string `yaml:"name"`
	Regex string `yaml:"regex"`
	Color string `yaml:"color"`
}

// Compiled regex cache, shared across lookups.
type regexCache struct {
	compiled map[string]*pcre.Regexp
	mutex    sync.RWMutex
}

func newRegexCache() *regexCache {
	return &regexCache{
		compiled: make(map[string]*pcre.Regexp),
	}
}

func (rc *regexCache) get(pattern string) (*pcre.Regexp, error) {
	rc.mutex.RLock()
	if regex, exists := rc.compiled[pattern]; exists {
		rc.mutex.RUnlock()
		return regex, nil
	}
	rc.mutex.RUnlock()

	rc.mutex.Lock()
	defer rc.mutex.Unlock()

	// Double-check pattern
	if regex, exists := rc.compiled[pattern]; exists {
		return regex, nil
	}

	regex, err := pcre.Compile(pattern)
	if err != nil {
		return nil, err
	}
	rc.compiled[pattern] = regex
	return regex, nil
}

type detector struct {
	entries []PlatformEntry
	cache   *regexCache
}

var (
	instance *detector
	once     sync.Once
)

func getDetector() *detector {
	once.Do(func() {
		instance = &detector{cache: newRegexCache()}
		if data, err := databaseFiles.ReadFile("database/platforms.yml"); err == nil {
			if err := yaml.Unmarshal(data, &instance.entries); err != nil {
				fmt.Printf("Error parsing platforms.yml: %v\n", err)
			}
		}
	})
	return instance
}

// matchLLM tests the value against every LLM pattern in database order and
// returns the first matching platform name.
func (d *detector) matchLLM(value string) string {
	if value == "" {
		return ""
	}
	for _, entry := range d.entries {
		regex, err := d.cache.get("(?i)" + entry.Regex)
		if err != nil {
			continue
		}
		if regex.MatchString(value) {
			return entry.Name
		}
	}
	return ""
}

// Detect classifies a traffic row from its session source, session medium
// and page referrer. LLM patterns are tested against the referrer first,
// then against the source; the medium decides the channel otherwise.
// Inputs may be empty; Detect always returns a non-empty name.
func Detect(source, medium, referrer string) string {
	d := getDetector()

	if name := d.matchLLM(referrer); name != "" {
		return name
	}
	if name := d.matchLLM(source); name != "" {
		return name
	}

	switch strings.ToLower(strings.TrimSpace(medium)) {
	case "organic":
		return Organic
	case "cpc", "paid":
		return Paid
	case "referral":
		return Referral
	case "email":
		return Email
	case "social":
		return Social
	}

	if strings.EqualFold(strings.TrimSpace(source), "(direct)") {
		return Direct
	}
	return Other
}

// Names returns the LLM platform names in database (priority) order.
func Names() []string {
	d := getDetector()
	names := make([]string, len(d.entries))
	for i, entry := range d.entries {
		names[i] = entry.Name
	}
	return names
}

// IsLLM reports whether name is one of the known LLM answer engines.
func IsLLM(name string) bool {
	for _, entry := range getDetector().entries {
		if entry.Name == name {
			return true
		}
	}
	return false
}

// Color returns the chart color for an LLM platform, or "" if unknown.
func Color(name string) string {
	for _, entry := range getDetector().entries {
		if entry.Name == name {
			return entry.Color
		}
	}
	return ""
}
