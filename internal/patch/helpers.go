package patch

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"howett.net/plist"
)

var fullNvramAccessTools = []string{
	"CleanNvram.efi",
	"ControlMsrE2.efi",
	"OpenControl.efi",
}

var loadEarlyDrivers = []string{
	"OpenVariableRuntimeDxe.efi",
}

// Helpers builds OpenCore entries from files on disk. It is exposed to
// instructions as "helpers".
type Helpers struct{}

// Kext returns a Kernel.Add entry for the kext bundle at filename.
func (Helpers) Kext(filename string) (Kext, error) {
	if _, err := os.Stat(filename); err != nil {
		return Kext{}, fmt.Errorf("kext: %w", err)
	}

	plistPath := path.Join("Contents", "Info.plist")
	kext := Kext{
		Arch:       "Any",
		BundlePath: filepath.Base(filename),
		Enabled:    true,
		MinKernel:  DefaultMinKernel,
		PlistPath:  plistPath,
	}

	f, err := os.Open(filepath.Join(filename, "Contents", "Info.plist"))
	if err != nil {
		return kext, nil
	}
	defer func() { _ = f.Close() }()

	var info KextInfo
	if err := plist.NewDecoder(f).Decode(&info); err != nil {
		return kext, nil
	}

	// codeless kexts have no executable
	if info.CFBundleExecutable != "" {
		kext.ExecutablePath = path.Join("Contents", "MacOS", info.CFBundleExecutable)
	}
	kext.MinKernel = info.MinKernel()

	return kext, nil
}

// ACPI returns an ACPI.Add entry for the compiled .aml table at filename.
func (Helpers) ACPI(filename string) (ACPIEntry, error) {
	if _, err := os.Stat(filename); err != nil {
		return ACPIEntry{}, fmt.Errorf("acpi: %w", err)
	}

	return ACPIEntry{
		Enabled: true,
		Path:    filepath.Base(filename),
	}, nil
}

// Tool returns a Misc.Tools entry for the .efi tool at filename.
func (Helpers) Tool(filename string) (Tool, error) {
	if _, err := os.Stat(filename); err != nil {
		return Tool{}, fmt.Errorf("tool: %w", err)
	}

	nameExt := filepath.Base(filename)

	return Tool{
		Auxiliary:       true,
		Enabled:         true,
		Flavour:         "Auto",
		FullNvramAccess: slices.Contains(fullNvramAccessTools, nameExt),
		Name:            strings.TrimSuffix(nameExt, filepath.Ext(nameExt)),
		Path:            nameExt,
	}, nil
}

// Driver returns a UEFI.Drivers entry for the .efi driver at filename.
func (Helpers) Driver(filename string) (Driver, error) {
	if _, err := os.Stat(filename); err != nil {
		return Driver{}, fmt.Errorf("driver: %w", err)
	}

	nameExt := filepath.Base(filename)

	return Driver{
		Enabled:   true,
		LoadEarly: slices.Contains(loadEarlyDrivers, nameExt),
		Path:      nameExt,
	}, nil
}
