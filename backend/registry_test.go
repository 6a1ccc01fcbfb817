package backend

import (
	"errors"
	"slices"
	"testing"
)

type fakeBackend struct {
	name   string
	opened *Options
}

func (b *fakeBackend) Name() string { return b.name }

func (b *fakeBackend) Open(opts Options) (Target, error) {
	b.opened = &opts
	return nil, errors.New("fake: no target")
}

// withRegistry runs the test against an empty registry.
func withRegistry(t *testing.T) {
	t.Helper()
	registryMu.Lock()
	saved := backends
	backends = make(map[string]BackendFactory)
	registryMu.Unlock()

	t.Cleanup(func() {
		registryMu.Lock()
		backends = saved
		registryMu.Unlock()
	})
}

func TestRegistry(t *testing.T) {
	withRegistry(t)

	if Default() != nil {
		t.Error("Default() on an empty registry should be nil")
	}
	if len(Available()) != 0 {
		t.Errorf("Available() = %v, want empty", Available())
	}

	Register("software", func() Backend { return &fakeBackend{name: "software"} })
	Register("term", func() Backend { return &fakeBackend{name: "term"} })

	if got := Available(); !slices.Equal(got, []string{"software", "term"}) {
		t.Errorf("Available() = %v", got)
	}
	if !IsRegistered("term") || IsRegistered("gl") {
		t.Error("IsRegistered() mismatch")
	}
	if b := Get("gl"); b != nil {
		t.Errorf("Get(gl) = %v, want nil", b)
	}
	if b := Get("software"); b == nil || b.Name() != "software" {
		t.Errorf("Get(software) = %v", b)
	}

	Unregister("term")
	if IsRegistered("term") {
		t.Error("term still registered after Unregister")
	}
}

func TestDefaultPriority(t *testing.T) {
	tests := []struct {
		name       string
		registered []string
		want       string
	}{
		{"software only", []string{BackendSoftware}, BackendSoftware},
		{"term over software", []string{BackendSoftware, BackendTerm}, BackendTerm},
		{"gl over all", []string{BackendSoftware, BackendTerm, BackendGL}, BackendGL},
		{"unknown names ignored", []string{"vulkan"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withRegistry(t)
			for _, name := range tt.registered {
				Register(name, func() Backend { return &fakeBackend{name: name} })
			}

			b := Default()
			got := ""
			if b != nil {
				got = b.Name()
			}
			if got != tt.want {
				t.Errorf("Default() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOpen(t *testing.T) {
	withRegistry(t)

	fake := &fakeBackend{name: BackendSoftware}
	Register(BackendSoftware, func() Backend { return fake })

	if _, err := Open("gl", Options{}); !errors.Is(err, ErrBackendNotAvailable) {
		t.Errorf("Open(gl) error = %v, want ErrBackendNotAvailable", err)
	}

	if _, err := Open("", Options{Width: 7}); err == nil {
		t.Error("fake Open should fail")
	}
	if fake.opened == nil || fake.opened.Width != 7 {
		t.Errorf("default backend not opened with the options: %+v", fake.opened)
	}
}
