package patch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const kextInfo = `<?xml version="1.0" encoding="UTF-8"?>
<plist version="1.0">
<dict>
	<key>CFBundleExecutable</key>
	<string>Lilu</string>
	<key>OSBundleLibraries</key>
	<dict>
		<key>com.apple.kpi.libkern</key>
		<string>10.0.0</string>
	</dict>
	<key>OSBundleLibraries_x86_64</key>
	<dict>
		<key>com.apple.kpi.libkern</key>
		<string>12.0.0</string>
	</dict>
</dict>
</plist>
`

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func TestHelpers_Kext(t *testing.T) {
	dir := t.TempDir()

	lilu := filepath.Join(dir, "Lilu.kext")
	if err := os.MkdirAll(filepath.Join(lilu, "Contents"), 0o755); err != nil {
		t.Fatalf("failed to create kext: %v", err)
	}
	if err := os.WriteFile(filepath.Join(lilu, "Contents", "Info.plist"), []byte(kextInfo), 0o644); err != nil {
		t.Fatalf("failed to write Info.plist: %v", err)
	}

	codeless := filepath.Join(dir, "USBMap.kext")
	if err := os.MkdirAll(codeless, 0o755); err != nil {
		t.Fatalf("failed to create kext: %v", err)
	}

	tests := []struct {
		name    string
		path    string
		want    Kext
		wantErr bool
	}{
		{
			name: "kext with executable",
			path: lilu,
			want: Kext{
				Arch:           "Any",
				BundlePath:     "Lilu.kext",
				Enabled:        true,
				ExecutablePath: "Contents/MacOS/Lilu",
				MinKernel:      "12.0.0",
				PlistPath:      "Contents/Info.plist",
			},
		},
		{
			name: "kext without Info.plist",
			path: codeless,
			want: Kext{
				Arch:       "Any",
				BundlePath: "USBMap.kext",
				Enabled:    true,
				MinKernel:  DefaultMinKernel,
				PlistPath:  "Contents/Info.plist",
			},
		},
		{
			name:    "missing kext",
			path:    filepath.Join(dir, "Missing.kext"),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Helpers{}.Kext(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Kext() error = %v, wantErr %v", err, tt.wantErr)
			}

			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Kext() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestHelpers_Entries(t *testing.T) {
	dir := t.TempDir()

	acpi := filepath.Join(dir, "ACPI", "SSDT-EC.aml")
	tool := filepath.Join(dir, "Tools", "CleanNvram.efi")
	shell := filepath.Join(dir, "Tools", "OpenShell.efi")
	driver := filepath.Join(dir, "Drivers", "OpenVariableRuntimeDxe.efi")
	for _, p := range []string{acpi, tool, shell, driver} {
		touch(t, p)
	}

	h := Helpers{}

	gotACPI, err := h.ACPI(acpi)
	if err != nil {
		t.Fatalf("ACPI() error = %v", err)
	}
	if diff := cmp.Diff(ACPIEntry{Enabled: true, Path: "SSDT-EC.aml"}, gotACPI); diff != "" {
		t.Errorf("ACPI() mismatch (-want +got):\n%s", diff)
	}

	gotTool, err := h.Tool(tool)
	if err != nil {
		t.Fatalf("Tool() error = %v", err)
	}
	wantTool := Tool{
		Auxiliary:       true,
		Enabled:         true,
		Flavour:         "Auto",
		FullNvramAccess: true,
		Name:            "CleanNvram",
		Path:            "CleanNvram.efi",
	}
	if diff := cmp.Diff(wantTool, gotTool); diff != "" {
		t.Errorf("Tool() mismatch (-want +got):\n%s", diff)
	}

	gotShell, err := h.Tool(shell)
	if err != nil {
		t.Fatalf("Tool() error = %v", err)
	}
	if gotShell.FullNvramAccess {
		t.Error("OpenShell.efi should not get full NVRAM access")
	}

	gotDriver, err := h.Driver(driver)
	if err != nil {
		t.Fatalf("Driver() error = %v", err)
	}
	if diff := cmp.Diff(Driver{Enabled: true, LoadEarly: true, Path: "OpenVariableRuntimeDxe.efi"}, gotDriver); diff != "" {
		t.Errorf("Driver() mismatch (-want +got):\n%s", diff)
	}

	for name, fn := range map[string]func(string) error{
		"acpi":   func(p string) error { _, err := h.ACPI(p); return err },
		"tool":   func(p string) error { _, err := h.Tool(p); return err },
		"driver": func(p string) error { _, err := h.Driver(p); return err },
	} {
		if err := fn(filepath.Join(dir, "missing")); err == nil {
			t.Errorf("%s: expected error for missing file", name)
		}
	}
}
