package patch

// ACPIEntry is an ACPI table entry in OpenCore's "ACPI.Add" list.
type ACPIEntry struct {
	Comment string
	Enabled bool
	Path    string
}

// Kext is a kernel extension entry in OpenCore's "Kernel.Add" list.
type Kext struct {
	Arch           string
	BundlePath     string
	Comment        string
	Enabled        bool
	ExecutablePath string
	MaxKernel      string
	MinKernel      string
	PlistPath      string
}

// Tool is an entry in OpenCore's "Misc.Tools" list.
type Tool struct {
	Arguments       string
	Auxiliary       bool
	Comment         string
	Enabled         bool
	Flavour         string
	FullNvramAccess bool
	Name            string
	Path            string
	RealPath        bool
	TextMode        bool
}

// Driver is a UEFI driver entry in OpenCore's "UEFI.Drivers" list.
type Driver struct {
	Arguments string
	Comment   string
	Enabled   bool
	LoadEarly bool
	Path      string
}

// DefaultMinKernel is used when a kext does not declare a libkern dependency.
const DefaultMinKernel = "8.0.0"

const libkernBundle = "com.apple.kpi.libkern"

// KextInfo holds the entries of a kext's Contents/Info.plist used to build a
// [Kext].
type KextInfo struct {
	CFBundleExecutable     string             `plist:"CFBundleExecutable,omitempty"`
	OSBundleLibrariesX8664 *map[string]string `plist:"OSBundleLibraries_x86_64,omitempty"`
	OSBundleLibraries      map[string]string  `plist:"OSBundleLibraries,omitempty"`
}

// MinKernel returns the libkern version the kext links against. The x86_64
// specific library list takes precedence when present.
func (ki KextInfo) MinKernel() string {
	libs := ki.OSBundleLibraries
	if ki.OSBundleLibrariesX8664 != nil {
		libs = *ki.OSBundleLibrariesX8664
	}

	if v, ok := libs[libkernBundle]; ok {
		return v
	}

	return DefaultMinKernel
}
