// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"os/exec"
	"runtime"
	"testing"
)

func TestExitCodeValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		value     ExitCode
		wantValid bool
	}{
		{name: "zero is valid", value: 0, wantValid: true},
		{name: "one is valid", value: 1, wantValid: true},
		{name: "255 is valid", value: 255, wantValid: true},
		{name: "negative is invalid", value: -1, wantValid: false},
		{name: "256 is invalid", value: 256, wantValid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.value.Validate()
			if tt.wantValid && err != nil {
				t.Errorf("ExitCode(%d).Validate() returned error for valid value: %v", tt.value, err)
			}
			if !tt.wantValid {
				if err == nil {
					t.Fatal("ExitCode.Validate() returned nil for invalid value")
				}
				if !errors.Is(err, ErrInvalidExitCode) {
					t.Errorf("error does not wrap ErrInvalidExitCode: %v", err)
				}
			}
		})
	}
}

func TestFromProcessStateNil(t *testing.T) {
	t.Parallel()

	if got := FromProcessState(nil); got != ExitNoStatus {
		t.Errorf("FromProcessState(nil) = %d, want %d", got, ExitNoStatus)
	}
}

func TestFromWaitError(t *testing.T) {
	t.Parallel()

	if code, ok := FromWaitError(nil); !ok || code != ExitSuccess {
		t.Errorf("FromWaitError(nil) = %d, %v; want 0, true", code, ok)
	}

	if code, ok := FromWaitError(errors.New("boom")); ok || code != ExitFailure {
		t.Errorf("FromWaitError(non-exit error) = %d, %v; want 1, false", code, ok)
	}
}

func TestFromWaitErrorChildStatus(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses a POSIX shell")
	}
	t.Parallel()

	err := exec.Command("sh", "-c", "exit 7").Run()
	code, ok := FromWaitError(err)
	if !ok || code != 7 {
		t.Errorf("FromWaitError(exit 7) = %d, %v; want 7, true", code, ok)
	}
}

func TestFromWaitErrorSignalFallsBackToZero(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("signals are not reported on windows")
	}
	t.Parallel()

	err := exec.Command("sh", "-c", "kill -9 $$").Run()
	code, ok := FromWaitError(err)
	if !ok || code != ExitNoStatus {
		t.Errorf("FromWaitError(killed) = %d, %v; want %d, true", code, ok, ExitNoStatus)
	}
}
