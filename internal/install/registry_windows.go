//go:build windows

package install

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sys/windows/registry"
)

const (
	vendorKeyPath    = `SOFTWARE\Volumetric Graphics`
	productKeyPrefix = "Volumetric Studio "
	developmentName  = "Development"
	executableName   = "VolumetricStudio.exe"
)

// findExecutable scans the vendor registry key for installed studio versions.
//
// A "Volumetric Studio Development" key wins when PreferDevelopment is set;
// otherwise the version matching VersionHint, or the highest registered
// version, is used. Released builds keep the executable under bin\system.
func findExecutable(opts Options) (string, error) {
	vendor, err := registry.OpenKey(registry.LOCAL_MACHINE, vendorKeyPath, registry.READ)
	if err != nil {
		return "", fmt.Errorf("%w: open registry key %q: %w", ErrNotFound, vendorKeyPath, err)
	}
	defer vendor.Close()

	names, err := vendor.ReadSubKeyNames(-1)
	if err != nil {
		return "", fmt.Errorf("%w: read registry subkeys: %w", ErrNotFound, err)
	}

	bestVersion := ""
	bestKeyName := ""
	for _, name := range names {
		if !strings.HasPrefix(name, productKeyPrefix) {
			continue
		}
		version := strings.TrimPrefix(name, productKeyPrefix)
		if version == developmentName {
			if opts.PreferDevelopment {
				folder, err := readPathValue(vendor, name)
				if err != nil {
					return "", err
				}
				return statExecutable(filepath.Join(folder, executableName))
			}
			continue
		}
		if version == opts.VersionHint {
			bestVersion = version
			bestKeyName = name
			break
		}
		if bestKeyName == "" || compareVersions(version, bestVersion) > 0 {
			bestVersion = version
			bestKeyName = name
		}
	}

	if bestKeyName == "" {
		return "", fmt.Errorf("%w: no studio versions registered under %q", ErrNotFound, vendorKeyPath)
	}

	folder, err := readPathValue(vendor, bestKeyName)
	if err != nil {
		return "", err
	}
	return statExecutable(filepath.Join(folder, "bin", "system", executableName))
}

func readPathValue(vendor registry.Key, subKey string) (string, error) {
	key, err := registry.OpenKey(registry.LOCAL_MACHINE, vendorKeyPath+`\`+subKey, registry.READ)
	if err != nil {
		return "", fmt.Errorf("%w: open registry key %q: %w", ErrNotFound, subKey, err)
	}
	defer key.Close()
	path, _, err := key.GetStringValue("Path")
	if err != nil {
		return "", fmt.Errorf("%w: read Path value of %q: %w", ErrNotFound, subKey, err)
	}
	return path, nil
}

func statExecutable(path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("%w: executable %q: %w", ErrNotFound, path, err)
	}
	return path, nil
}
