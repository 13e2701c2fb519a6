package main

import (
	"fmt"
	"os"

	yaml "go.yaml.in/yaml/v3"

	"github.com/ddnshook/ddnshook/log"
	"github.com/ddnshook/ddnshook/resolver"
	"github.com/ddnshook/ddnshook/updater"
	"github.com/ddnshook/ddnshook/zone"
)

// zonesFile mirrors the YAML layout of the --config file: named backend definitions and
// a mapping of zone names to the backend managing each of them. For example:
//
//	backends:
//	  primary:
//	    type: rfc2136
//	    server: 192.0.2.53
//	    key_name: update-key
//	    key_secret: c2VjcmV0c2VjcmV0c2VjcmV0c2VjcmV0
//	    key_algorithm: hmac-sha256
//	  cf:
//	    type: cloudflare
//	    api_token: wont-tell-you
//	zones:
//	  example.com: primary
//	  2.0.192.in-addr.arpa: primary
//	  example.org: cf
type zonesFile struct {
	Backends map[string]*backendConfig `yaml:"backends"`
	Zones    map[string]string         `yaml:"zones"`
}

type backendConfig struct {
	Type string `yaml:"type"` // rfc2136, cloudflare or dummy

	// rfc2136
	Server       string `yaml:"server"`
	KeyName      string `yaml:"key_name"`
	KeySecret    string `yaml:"key_secret"`
	KeyAlgorithm string `yaml:"key_algorithm"`

	// cloudflare
	APIToken string `yaml:"api_token"`
}

// loadZoneRegistry builds the immutable zone registry from the zones file. It is also
// called on SIGHUP so all errors come back to the caller rather than being fatal.
func loadZoneRegistry(path string, res resolver.Resolver) (*zone.Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("zones file:%w", err)
	}
	var zf zonesFile
	if err = yaml.Unmarshal(data, &zf); err != nil {
		return nil, fmt.Errorf("zones file %s:%w", path, err)
	}

	return buildZoneRegistry(&zf, res)
}

// buildZoneRegistry converts the parsed YAML into backends and registered zones. A
// backend definition is constructed once and shared by every zone which names it, bar
// cloudflare which needs a per-zone API container for the zone ID.
//
// rfc2136 and cloudflare backends can answer queries so they are wired in as each
// zone's query capability; dummy deliberately is not.
func buildZoneRegistry(zf *zonesFile, res resolver.Resolver) (*zone.Registry, error) {
	if len(zf.Zones) == 0 {
		return nil, fmt.Errorf("zones file defines no zones")
	}

	nsupdates := make(map[string]*updater.NSUpdate)
	reg := zone.NewRegistry()
	for zoneName, backendName := range zf.Zones {
		bc, ok := zf.Backends[backendName]
		if !ok {
			return nil, fmt.Errorf("zone %s names undefined backend '%s'",
				zoneName, backendName)
		}

		z := &zone.Zone{Name: zoneName}
		switch bc.Type {
		case "rfc2136":
			u := nsupdates[backendName]
			if u == nil {
				if len(bc.Server) == 0 {
					return nil, fmt.Errorf("backend '%s': rfc2136 requires a server",
						backendName)
				}
				u = updater.NewNSUpdate(bc.Server, bc.KeyName, bc.KeySecret,
					bc.KeyAlgorithm, res)
				nsupdates[backendName] = u
			}
			z.Updater = u
			z.Queryer = u

		case "cloudflare":
			u, err := updater.NewCloudflare(bc.APIToken, zoneName)
			if err != nil {
				return nil, fmt.Errorf("backend '%s':%w", backendName, err)
			}
			z.Updater = u
			z.Queryer = u

		case "dummy":
			z.Updater = updater.NewDummy(log.Out())

		default:
			return nil, fmt.Errorf("backend '%s': unknown type '%s'",
				backendName, bc.Type)
		}

		if err := reg.Add(z); err != nil {
			return nil, err
		}
	}

	return reg, nil
}
