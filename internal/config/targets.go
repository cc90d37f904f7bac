package config

import (
	"fmt"
	"net/url"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hamed0406/infrawatch/internal/domain"
)

// registryFile is the on-disk target registry. One list per kind, read once
// at startup; there is no hot reload.
type registryFile struct {
	Servers []struct {
		Name string `yaml:"name"`
		Host string `yaml:"host"`
	} `yaml:"servers"`
	Ports []struct {
		Name string `yaml:"name"`
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
	} `yaml:"ports"`
	Websites []struct {
		Name           string `yaml:"name"`
		URL            string `yaml:"url"`
		ExpectedStatus int    `yaml:"expected_status"`
	} `yaml:"websites"`
	Containers []struct {
		Name      string `yaml:"name"`
		Container string `yaml:"container"`
	} `yaml:"containers"`
	Services []struct {
		Name    string `yaml:"name"`
		Service string `yaml:"service"`
	} `yaml:"services"`
}

// LoadTargets reads and validates the registry, returning targets in
// registration order.
func LoadTargets(path string) ([]domain.Target, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read targets file: %w", err)
	}
	var f registryFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse targets file: %w", err)
	}

	var out []domain.Target
	for _, s := range f.Servers {
		out = append(out, domain.Target{Name: s.Name, Kind: domain.KindServer, Host: s.Host})
	}
	for _, p := range f.Ports {
		out = append(out, domain.Target{Name: p.Name, Kind: domain.KindPort, Host: p.Host, Port: p.Port})
	}
	for _, w := range f.Websites {
		out = append(out, domain.Target{
			Name: w.Name, Kind: domain.KindWebsite,
			URL: w.URL, ExpectedStatus: w.ExpectedStatus,
		})
	}
	for _, c := range f.Containers {
		name := c.Container
		if name == "" {
			name = c.Name
		}
		out = append(out, domain.Target{Name: c.Name, Kind: domain.KindContainer, Container: name})
	}
	for _, s := range f.Services {
		name := s.Service
		if name == "" {
			name = s.Name
		}
		out = append(out, domain.Target{Name: s.Name, Kind: domain.KindService, Service: name})
	}

	if err := validateTargets(out); err != nil {
		return nil, err
	}
	return out, nil
}

func validateTargets(targets []domain.Target) error {
	if len(targets) == 0 {
		return fmt.Errorf("target registry is empty")
	}
	seen := make(map[string]bool, len(targets))
	for _, t := range targets {
		if t.Name == "" {
			return fmt.Errorf("%s target with empty name", t.Kind)
		}
		if seen[t.ID()] {
			return fmt.Errorf("duplicate %s target %q", t.Kind, t.Name)
		}
		seen[t.ID()] = true

		switch t.Kind {
		case domain.KindServer:
			if t.Host == "" {
				return fmt.Errorf("server %q: host is required", t.Name)
			}
		case domain.KindPort:
			if t.Host == "" {
				return fmt.Errorf("port %q: host is required", t.Name)
			}
			if t.Port < 1 || t.Port > 65535 {
				return fmt.Errorf("port %q: port %d out of range", t.Name, t.Port)
			}
		case domain.KindWebsite:
			u, err := url.Parse(t.URL)
			if err != nil || u.Scheme == "" || u.Host == "" {
				return fmt.Errorf("website %q: invalid url %q", t.Name, t.URL)
			}
		}
	}
	return nil
}
