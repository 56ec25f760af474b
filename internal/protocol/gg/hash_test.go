package gg

import "testing"

func TestLoginHash(t *testing.T) {
	tests := []struct {
		password string
		seed     uint32
		want     uint32
	}{
		{"", 0x12345678, 0x12345678},
		{"a", 0x00000001, 0x3D3EC383},
		{"password", 0x0012D687, 0xBC3FA18E},
		{"secret", 0x000F4240, 0xFB4793E0},
		{"zaq1@WSX", 0x00098967, 0x419CE4CD},
		{"correct horse", 0xDEADBEEF, 0xDA5216C8},
	}

	for _, tt := range tests {
		if got := LoginHash(tt.password, tt.seed); got != tt.want {
			t.Errorf("LoginHash(%q, 0x%08X) = 0x%08X, want 0x%08X",
				tt.password, tt.seed, got, tt.want)
		}
	}
}

func TestLoginHash_Deterministic(t *testing.T) {
	first := LoginHash("tajne", 0x00055D4A)
	for i := 0; i < 100; i++ {
		if got := LoginHash("tajne", 0x00055D4A); got != first {
			t.Fatalf("iteration %d: got 0x%08X, want 0x%08X", i, got, first)
		}
	}
}

func TestLoginHash_SeedSensitivity(t *testing.T) {
	if LoginHash("tajne", 1) == LoginHash("tajne", 2) {
		t.Error("different seeds produced the same hash")
	}
	if LoginHash("tajne", 1) == LoginHash("inne", 1) {
		t.Error("different passwords produced the same hash")
	}
}
